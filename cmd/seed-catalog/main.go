package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lisongmechlab/lsml-sub001/internal/catalog"
)

func main() {
	input := flag.String("input", "catalog.yaml", "YAML catalog to seed from")
	sqlitePath := flag.String("sqlite", "", "SQLite file to write")
	dsn := flag.String("db", os.Getenv("DATABASE_URL"), "Postgres connection string")
	flag.Parse()
	if *sqlitePath == "" && *dsn == "" {
		log.Fatal("Usage: --input <catalog.yaml> [--sqlite <out.db>] [--db <postgres url>]")
	}

	m, err := catalog.LoadYAML(*input)
	if err != nil {
		log.Fatalf("Load: %v", err)
	}
	doc := catalog.DocumentOf(m)
	ctx := context.Background()

	if *sqlitePath != "" {
		db, err := catalog.ConnectSQLite(*sqlitePath, false)
		if err != nil {
			log.Fatalf("SQLite: %v", err)
		}
		defer db.Close()
		if err := catalog.InitSQLite(ctx, db); err != nil {
			log.Fatalf("SQLite schema: %v", err)
		}
		if err := catalog.WriteSQLite(ctx, db, doc); err != nil {
			log.Fatalf("SQLite write: %v", err)
		}
		fmt.Printf("Wrote %d items, %d chassis to %s\n", len(doc.Items), len(doc.Chassis), *sqlitePath)
	}

	if *dsn != "" {
		pool, err := catalog.ConnectPostgres(ctx, *dsn)
		if err != nil {
			log.Fatalf("Postgres: %v", err)
		}
		defer pool.Close()
		store := catalog.NewPGStore(pool)
		if err := store.Migrate(ctx); err != nil {
			log.Fatalf("Postgres schema: %v", err)
		}
		if err := store.Upsert(ctx, doc); err != nil {
			log.Fatalf("Postgres upsert: %v", err)
		}
		fmt.Printf("Upserted %d items, %d chassis\n", len(doc.Items), len(doc.Chassis))
	}
}
