// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/SoftbearStudios/meadow/cloud"
	"github.com/SoftbearStudios/meadow/cloud/db"
	"github.com/SoftbearStudios/meadow/config"
	"github.com/SoftbearStudios/meadow/meadow"
	"github.com/SoftbearStudios/meadow/render"
	"github.com/SoftbearStudios/meadow/store"
)

const (
	defaultPreviewSize = 512
	maxPreviewSize     = 2048
)

var errBadSeed = errors.New("invalid seed")

// Hub serves layouts built from a base config. Each request may override the seed.
type Hub struct {
	base   meadow.Config
	store  *store.Store // caches the base seed, nil means no caching
	cloud  *cloud.Cloud // nil means offline
	builds int64
	status atomic.Value // []byte
}

// Status is served on the index.
type Status struct {
	Builds int64          `json:"builds"`
	Cloud  string         `json:"cloud"`
	Digest string         `json:"digest,omitempty"`
	Seed   int64          `json:"seed"`
	Last   meadow.Summary `json:"last"`
}

func NewHub(base meadow.Config, store *store.Store, cloud *cloud.Cloud) *Hub {
	h := &Hub{
		base:  base.Clamp(),
		store: store,
		cloud: cloud,
	}
	h.setStatus(Status{Cloud: cloud.String(), Seed: h.base.Seed})
	return h
}

// Handler routes every endpoint of the hub.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.serveIndex)
	mux.HandleFunc("/layout", h.serveLayout)
	mux.HandleFunc("/preview.png", h.servePreview)
	mux.HandleFunc("/ws", h.serveWs)
	mux.HandleFunc("/publish", h.servePublish)
	mux.HandleFunc("/builds", h.serveBuilds)
	return mux
}

// Build returns the layout for seed. Only the base seed is kept in the store, so
// clients choosing arbitrary seeds cannot grow it.
func (h *Hub) Build(seed int64) (layout meadow.Layout, digest string, err error) {
	c := h.base
	c.Seed = seed

	if h.store != nil && seed == h.base.Seed {
		layout, digest, err = h.store.Build(c)
	} else {
		digest, err = config.Digest(c)
		if err == nil {
			layout = meadow.NewPlanner(c).Build(rand.New(rand.NewSource(seed)))
		}
	}
	if err != nil {
		return
	}

	summary := layout.Summary()
	builds := atomic.AddInt64(&h.builds, 1)
	log.Printf("build %s seed %d: %s", digest, seed, summary)
	h.setStatus(Status{
		Builds: builds,
		Cloud:  h.cloud.String(),
		Digest: digest,
		Seed:   seed,
		Last:   summary,
	})
	return
}

func (h *Hub) setStatus(status Status) {
	buf, err := meadow.JSON.Marshal(status)
	if err != nil {
		log.Println("status error", err)
		return
	}
	h.status.Store(buf)
}

func (h *Hub) seed(r *http.Request) (int64, error) {
	s := r.URL.Query().Get("seed")
	if s == "" {
		return h.base.Seed, nil
	}
	seed, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errBadSeed
	}
	return seed, nil
}

func (h *Hub) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	buf, ok := h.status.Load().([]byte)
	if ok {
		_, _ = w.Write(buf)
	}
}

func (h *Hub) serveLayout(w http.ResponseWriter, r *http.Request) {
	seed, err := h.seed(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	layout, _, err := h.Build(seed)
	if err != nil {
		log.Println("layout error", err)
		http.Error(w, "build failed", http.StatusInternalServerError)
		return
	}

	buf, err := meadow.MarshalLayout(&layout)
	if err != nil {
		log.Println("encode error", err)
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf)
}

func (h *Hub) servePreview(w http.ResponseWriter, r *http.Request) {
	seed, err := h.seed(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	size := defaultPreviewSize
	if s := r.URL.Query().Get("size"); s != "" {
		if size, err = strconv.Atoi(s); err != nil || size < 1 || size > maxPreviewSize {
			http.Error(w, "invalid size", http.StatusBadRequest)
			return
		}
	}

	layout, _, err := h.Build(seed)
	if err != nil {
		log.Println("layout error", err)
		http.Error(w, "build failed", http.StatusInternalServerError)
		return
	}

	c := h.base
	c.Seed = seed
	density := meadow.NewPlanner(c).Fields.DensityField
	img := render.Render(&layout, density, render.Options{Size: size, Bounds: true, Samples: true})

	w.Header().Set("Content-Type", "image/png")
	if err = render.WritePNG(w, img); err != nil {
		log.Println("preview error", err)
	}
}

// servePublish uploads the layout for seed under the name query parameter.
func (h *Hub) servePublish(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.cloud == nil {
		http.Error(w, "offline", http.StatusServiceUnavailable)
		return
	}

	seed, err := h.seed(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	layout, digest, err := h.Build(seed)
	if err != nil {
		log.Println("layout error", err)
		http.Error(w, "build failed", http.StatusInternalServerError)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = h.base.Name
	}
	key, err := h.cloud.Publish(name, digest, &layout)
	if err != nil {
		log.Println("publish error", err)
		http.Error(w, "publish failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = meadow.JSON.NewEncoder(w).Encode(map[string]string{"key": key, "digest": digest})
}

func (h *Hub) serveBuilds(w http.ResponseWriter, r *http.Request) {
	builds, err := h.cloud.Builds(r.URL.Query().Get("name"))
	if err != nil {
		log.Println("builds error", err)
		http.Error(w, "read failed", http.StatusBadGateway)
		return
	}
	if builds == nil {
		builds = []db.Build{}
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	_ = meadow.JSON.NewEncoder(w).Encode(builds)
}
