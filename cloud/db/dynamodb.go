// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/guregu/dynamo"
)

type DynamoDBDatabase struct {
	svc         *dynamodb.DynamoDB
	db          *dynamo.DB
	buildsTable dynamo.Table
}

func NewDynamoDBDatabase(session *session.Session, stage string) (*DynamoDBDatabase, error) {
	ddb := &DynamoDBDatabase{svc: dynamodb.New(session)}
	ddb.db = dynamo.NewFromIface(ddb.svc)
	ddb.buildsTable = ddb.db.Table("meadow-" + stage + "-builds")
	return ddb, nil
}

func (ddb *DynamoDBDatabase) PutBuild(build Build) error {
	return ddb.buildsTable.Put(build).Run()
}

func (ddb *DynamoDBDatabase) ReadBuilds() (builds []Build, err error) {
	query := ddb.buildsTable.Scan().Iter()

	for {
		var build Build
		ok := query.Next(&build)
		if !ok {
			err = query.Err()
			return
		}
		builds = append(builds, build)
	}
}

func (ddb *DynamoDBDatabase) ReadBuildsByName(name string) (builds []Build, err error) {
	query := ddb.buildsTable.Scan().Filter("'name' = ?", name).Iter()

	for {
		var build Build
		ok := query.Next(&build)
		if !ok {
			err = query.Err()
			return
		}
		builds = append(builds, build)
	}
}
