// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"fmt"
	"strings"
	"time"

	"github.com/SoftbearStudios/meadow/cloud/db"
	"github.com/SoftbearStudios/meadow/cloud/fs"
	"github.com/SoftbearStudios/meadow/meadow"
	"github.com/finnbear/moderation"
)

const (
	// LayoutCacheSeconds is how long clients may cache a published layout.
	LayoutCacheSeconds = 300
	// BuildTTL is how long a build record is kept.
	BuildTTL = 30 * 24 * time.Hour

	maxNameLength = 32 // runes
	defaultName   = "meadow"
)

// A nil cloud is valid to use with any methods (acts as a no-op)
// This just means layouts are not published
type Cloud struct {
	region   string
	stage    string
	database db.Database
	fs       fs.Filesystem
}

func (cloud *Cloud) String() string {
	var builder strings.Builder
	builder.WriteByte('[')
	if cloud == nil {
		builder.WriteString("offline")
	} else {
		builder.WriteString(cloud.region)
		builder.WriteByte(' ')
		builder.WriteString(cloud.stage)
	}
	builder.WriteByte(']')
	return builder.String()
}

// New connects to DynamoDB and S3 in region. Returns nil cloud on error.
func New(region, stage string) (*Cloud, error) {
	session, err := getAWSSession(region)
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}

	database, err := db.NewDynamoDBDatabase(session, stage)
	if err != nil {
		return nil, err
	}
	filesystem, err := fs.NewS3Filesystem(session, stage)
	if err != nil {
		return nil, err
	}

	return NewWith(region, stage, database, filesystem), nil
}

// NewWith creates a Cloud on existing services.
func NewWith(region, stage string, database db.Database, filesystem fs.Filesystem) *Cloud {
	return &Cloud{
		region:   region,
		stage:    stage,
		database: database,
		fs:       filesystem,
	}
}

// LayoutKey is where a published layout is stored.
func LayoutKey(digest string) string {
	return "layouts/" + digest + ".json"
}

// Publish uploads layout and records the build. Returns the uploaded key.
func (cloud *Cloud) Publish(name, digest string, layout *meadow.Layout) (string, error) {
	if cloud == nil {
		return "", nil
	}

	published := *layout
	published.Name = CleanName(name)

	buf, err := meadow.MarshalLayout(&published)
	if err != nil {
		return "", fmt.Errorf("encode layout: %w", err)
	}

	key := LayoutKey(digest)
	if err = cloud.fs.UploadStaticFile(key, LayoutCacheSeconds, buf); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	now := time.Now()
	summary := layout.Summary()
	err = cloud.database.PutBuild(db.Build{
		Digest:    digest,
		Name:      published.Name,
		Seed:      layout.Seed,
		Flora:     summary.Flora,
		Landmarks: summary.Landmarks,
		Water:     summary.Water,
		Created:   now.Unix(),
		TTL:       now.Add(BuildTTL).Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("record build: %w", err)
	}
	return key, nil
}

// Builds lists published builds, optionally only those named name.
func (cloud *Cloud) Builds(name string) ([]db.Build, error) {
	if cloud == nil {
		return nil, nil
	}
	if name != "" {
		return cloud.database.ReadBuildsByName(CleanName(name))
	}
	return cloud.database.ReadBuilds()
}

// CleanName makes an author supplied layout name fit for a public bucket.
func CleanName(name string) string {
	name = strings.TrimSpace(strings.ToValidUTF8(name, ""))
	if runes := []rune(name); len(runes) > maxNameLength {
		name = strings.TrimSpace(string(runes[:maxNameLength]))
	}
	if moderation.Scan(name).Is(moderation.Inappropriate) {
		name, _ = moderation.Censor(name, moderation.Inappropriate)
	}
	if name == "" {
		return defaultName
	}
	return name
}
