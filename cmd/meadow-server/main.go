// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	_ "net/http/pprof"

	"github.com/SoftbearStudios/meadow/cloud"
	"github.com/SoftbearStudios/meadow/config"
	"github.com/SoftbearStudios/meadow/meadow"
	"github.com/SoftbearStudios/meadow/server"
	"github.com/SoftbearStudios/meadow/store"
	"golang.org/x/net/netutil"
)

func main() {
	var (
		configPath     string
		port           int
		maxConnections int
		cache          string
		region         string
		stage          string
	)

	flag.StringVar(&configPath, "config", "", "meadow yaml file (defaults if empty)")
	flag.IntVar(&port, "port", 8192, "http service port")
	flag.IntVar(&maxConnections, "max-connections", 256, "maximum number of inbound TCP connections")
	flag.StringVar(&cache, "cache", "", "base seed layout cache directory (in memory if empty)")
	flag.StringVar(&region, "region", "", "aws region (offline if empty)")
	flag.StringVar(&stage, "stage", "dev", "deployment stage")
	flag.Parse()

	base := meadow.DefaultConfig()
	if configPath != "" {
		var err error
		if base, err = config.Load(configPath); err != nil {
			log.Fatal(err)
		}
	}

	var (
		s   *store.Store
		err error
	)
	if cache != "" {
		s, err = store.Open(cache)
	} else {
		s, err = store.OpenMemory()
	}
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	var cl *cloud.Cloud
	if region != "" {
		if cl, err = cloud.New(region, stage); err != nil {
			log.Println("cloud error, continuing offline:", err)
			cl = nil
		}
	}

	hub := server.NewHub(base, s, cl)
	log.Printf("meadow server %s started on :%d", cl, port)
	http.Handle("/", hub.Handler())

	l, err := net.Listen("tcp", fmt.Sprint(":", port))
	if err != nil {
		log.Fatalf("Listen: %v", err)
	}
	defer l.Close()

	l = netutil.LimitListener(l, maxConnections)

	log.Fatal("ListenAndServe: ", http.Serve(l, nil))
}
