// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/SoftbearStudios/meadow/meadow"
	"gopkg.in/yaml.v3"
)

// Load reads a meadow authoring file. Keys missing from the file keep their defaults.
func Load(path string) (meadow.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return meadow.Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over meadow.DefaultConfig and clamps the result.
func Parse(data []byte) (meadow.Config, error) {
	config := meadow.DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return meadow.Config{}, fmt.Errorf("parse config: %w", err)
	}
	return config.Clamp(), nil
}

// Digest identifies the layout a config builds. Configs that clamp to the same
// values share a digest.
func Digest(config meadow.Config) (string, error) {
	buf, err := meadow.JSON.Marshal(config.Clamp())
	if err != nil {
		return "", fmt.Errorf("digest config: %w", err)
	}
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:]), nil
}
