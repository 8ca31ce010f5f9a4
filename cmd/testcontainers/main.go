package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/localnerve/publishdb/internal/testutil"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var dbType string
	flag.StringVar(&dbType, "db", "postgres", "database server to start: postgres or mysql")
	flag.Parse()

	usage := `
Start a throwaway database server for running publishdb locally.

Usage:

testcontainers [-h] [-db postgres|mysql]

Prints the DB_* environment for the server, then waits for Ctrl-C and
removes the container.
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	db, err := testutil.StartDatabase(ctx, dbType)
	if err != nil {
		log.Fatalf("Failed to start database container: %v", err)
	}

	cfg := db.Config
	fmt.Printf("DB_TYPE=%s\nDB_HOST=%s\nDB_PORT=%s\nDB_DATABASE=%s\nDB_USER=%s\nDB_PASSWORD=%s\n",
		cfg.DBType, cfg.DBHost, cfg.DBPort, cfg.DBDatabase, cfg.DBUser, cfg.DBPassword)

	<-ctx.Done()
	log.Printf("Received signal, terminating database container...")
	if err := db.Terminate(context.Background()); err != nil {
		log.Printf("Failed to terminate container: %v", err)
		os.Exit(1)
	}
}
