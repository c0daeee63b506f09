// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

// Build records one published layout.
type Build struct {
	Digest    string `dynamo:"digest" json:"digest"`
	Name      string `dynamo:"name" json:"name"`
	Seed      int64  `dynamo:"seed" json:"seed"`
	Flora     int    `dynamo:"flora" json:"flora"`
	Landmarks int    `dynamo:"landmarks" json:"landmarks"`
	Water     int    `dynamo:"water" json:"water"`
	Created   int64  `dynamo:"created" json:"created"`
	TTL       int64  `dynamo:"ttl,omitempty" json:"-"`
}
