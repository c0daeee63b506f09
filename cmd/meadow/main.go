// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"runtime/pprof"

	"github.com/SoftbearStudios/meadow/cloud"
	"github.com/SoftbearStudios/meadow/config"
	"github.com/SoftbearStudios/meadow/meadow"
	"github.com/SoftbearStudios/meadow/render"
	"github.com/SoftbearStudios/meadow/store"
)

type options struct {
	configPath string
	seed       int64
	out        string
	png        string
	size       int
	samples    bool
	cache      string
	publish    bool
	region     string
	stage      string
}

func main() {
	var (
		cpuProfile string
		opts       options
	)

	flag.StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flag.StringVar(&opts.configPath, "config", "", "meadow yaml `file` (defaults if empty)")
	flag.Int64Var(&opts.seed, "seed", 0, "override the config seed if non-zero")
	flag.StringVar(&opts.out, "out", "layout.json", "write layout json to `file` (- for stdout, empty to skip)")
	flag.StringVar(&opts.png, "png", "", "write a preview png to `file`")
	flag.IntVar(&opts.size, "size", 1024, "preview width in pixels")
	flag.BoolVar(&opts.samples, "samples", true, "draw flora in the preview")
	flag.StringVar(&opts.cache, "cache", "", "layout cache `directory`")
	flag.BoolVar(&opts.publish, "publish", false, "upload the layout and record the build")
	flag.StringVar(&opts.region, "region", "us-east-1", "aws region for -publish")
	flag.StringVar(&opts.stage, "stage", "dev", "deployment stage for -publish")
	flag.Parse()

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(opts); err != nil {
		log.Println(err)
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func run(opts options) error {
	c := meadow.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if c, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}
	if opts.seed != 0 {
		c.Seed = opts.seed
	}

	planner := meadow.NewPlanner(c)
	planner.Logger = log.New(os.Stderr, "", log.LstdFlags)

	var (
		layout meadow.Layout
		digest string
		err    error
	)
	if opts.cache != "" {
		s, err := store.Open(opts.cache)
		if err != nil {
			return err
		}
		defer s.Close()

		if layout, digest, err = s.Build(c); err != nil {
			return err
		}
		log.Printf("layout %s: %s", digest, layout.Summary())
	} else {
		if digest, err = config.Digest(c); err != nil {
			return err
		}
		layout = planner.Build(rand.New(rand.NewSource(planner.Seed)))
	}

	if opts.out != "" {
		buf, err := meadow.MarshalLayout(&layout)
		if err != nil {
			return err
		}
		if opts.out == "-" {
			_, err = os.Stdout.Write(append(buf, '\n'))
		} else {
			err = os.WriteFile(opts.out, buf, 0644)
		}
		if err != nil {
			return err
		}
	}

	if opts.png != "" {
		file, err := os.Create(opts.png)
		if err != nil {
			return err
		}
		defer file.Close()

		img := render.Render(&layout, planner.Fields.DensityField, render.Options{Size: opts.size, Bounds: true, Samples: opts.samples})
		if err = render.WritePNG(file, img); err != nil {
			return err
		}
	}

	if opts.publish {
		cl, err := cloud.New(opts.region, opts.stage)
		if err != nil {
			return err
		}
		key, err := cl.Publish(c.Name, digest, &layout)
		if err != nil {
			return err
		}
		log.Printf("published %s to %s", key, cl)
	}
	return nil
}
