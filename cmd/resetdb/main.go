// main.go
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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/localnerve/publishdb/internal/config"
	"github.com/localnerve/publishdb/internal/database"
	"go.uber.org/zap"
)

func main() {
	var sure bool
	flag.BoolVar(&sure, "i-am-really-sure", false, "confirm that every site table should be dropped")
	var recreate bool
	flag.BoolVar(&recreate, "recreate", false, "create empty tables again after dropping")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logr.Sync() }()

	ctx := context.Background()
	registry := database.DefaultRegistry()

	if !sure {
		// Fail before connecting at all.
		if err := registry.DropAllTables(ctx, nil, false); errors.Is(err, database.ErrNotConfirmed) {
			fmt.Fprintln(os.Stderr, "Refusing to drop tables: pass --i-am-really-sure to confirm.")
			os.Exit(2)
		}
	}

	db, err := database.Connect(cfg, logr)
	if err != nil {
		logr.Fatal("connect database", zap.Error(err))
	}
	defer database.Close(db)

	if err := registry.DropAllTables(ctx, db, sure); err != nil {
		logr.Fatal("drop tables", zap.Error(err))
	}
	logr.Warn("dropped every site table",
		zap.String("type", cfg.DBType),
		zap.String("database", cfg.DBDatabase),
	)

	if recreate {
		if err := registry.CreateTables(ctx, db, logr); err != nil {
			logr.Fatal("create tables", zap.Error(err))
		}
	}
}
