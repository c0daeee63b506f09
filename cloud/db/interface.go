// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

type Database interface {
	PutBuild(build Build) error
	ReadBuilds() (builds []Build, err error)
	ReadBuildsByName(name string) (builds []Build, err error)
}
