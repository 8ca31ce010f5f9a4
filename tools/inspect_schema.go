package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/localnerve/publishdb/data"
	"github.com/localnerve/publishdb/internal/database"
	"github.com/localnerve/publishdb/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	legacy := flag.Bool("legacy", false, "start from the pre-versioning schema and upgrade it")
	flag.Parse()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}
	// Every pooled connection to :memory: is a separate database
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if *legacy {
		if err := testutil.ExecScript(db, data.LegacySQLiteSchema); err != nil {
			log.Fatal(err)
		}
	}

	logr, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	registry := database.DefaultRegistry()
	if err := registry.CreateTables(ctx, db, logr); err != nil {
		log.Fatal(err)
	}

	// Get the schema
	var ddl []string
	db.Raw("SELECT sql FROM sqlite_master WHERE sql IS NOT NULL ORDER BY type DESC, name").Scan(&ddl)
	for _, stmt := range ddl {
		fmt.Printf("%s;\n\n", stmt)
	}

	versions, err := registry.Versions(ctx, db)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("=== Schema versions ===")
	for _, table := range registry.Tables() {
		fmt.Printf("%-18s %d\n", table.Name(), versions[table.Name()])
	}
}
