// containers.go
//
// A content publishing site with a versioned schema and archive navigation
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of publishdb.
// publishdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// publishdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with publishdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/localnerve/publishdb/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Credentials used for every throwaway database server.
const (
	containerDatabase = "publishdb"
	containerUser     = "publishdb"
	containerPassword = "publishdb-test"
)

// DatabaseContainer is a running database server and the configuration
// that reaches it from the host.
type DatabaseContainer struct {
	Container testcontainers.Container
	Config    *config.Config
}

type containerSpec struct {
	image string
	port  string
	env   map[string]string
	ready wait.Strategy
}

func specFor(dbType string) (containerSpec, error) {
	switch dbType {
	case "postgres":
		return containerSpec{
			image: "postgres:16-alpine",
			port:  "5432",
			env: map[string]string{
				"POSTGRES_PASSWORD": containerPassword,
				"POSTGRES_USER":     containerUser,
				"POSTGRES_DB":       containerDatabase,
			},
			// The entrypoint restarts the server once after init.
			ready: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		}, nil
	case "mysql":
		return containerSpec{
			image: "mariadb:11",
			port:  "3306",
			env: map[string]string{
				"MARIADB_ROOT_PASSWORD": containerPassword,
				"MARIADB_DATABASE":      containerDatabase,
				"MARIADB_USER":          containerUser,
				"MARIADB_PASSWORD":      containerPassword,
			},
			ready: wait.ForLog("ready for connections").WithOccurrence(2),
		}, nil
	}
	return containerSpec{}, fmt.Errorf("no test container for DB_TYPE %s", dbType)
}

// StartDatabase starts a server for dbType ("postgres" or "mysql") and waits
// until it accepts connections.
func StartDatabase(ctx context.Context, dbType string) (*DatabaseContainer, error) {
	spec, err := specFor(dbType)
	if err != nil {
		return nil, err
	}
	port, err := nat.NewPort("tcp", spec.port)
	if err != nil {
		return nil, fmt.Errorf("container port: %w", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        spec.image,
			ExposedPorts: []string{string(port)},
			Env:          spec.env,
			WaitingFor: wait.ForAll(
				spec.ready,
				wait.ForListeningPort(port),
			).WithDeadline(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", spec.image, err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	mapped, err := container.MappedPort(ctx, port)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &DatabaseContainer{
		Container: container,
		Config: &config.Config{
			DBType:            dbType,
			DBHost:            host,
			DBPort:            mapped.Port(),
			DBDatabase:        containerDatabase,
			DBUser:            containerUser,
			DBPassword:        containerPassword,
			DBConnectionLimit: 5,
			DBLogLevel:        "silent",
		},
	}, nil
}

// Terminate stops and removes the container.
func (d *DatabaseContainer) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}
