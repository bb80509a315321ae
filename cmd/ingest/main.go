package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lisongmechlab/lsml-sub001/internal/catalog"
	"github.com/lisongmechlab/lsml-sub001/internal/command"
	"github.com/lisongmechlab/lsml-sub001/internal/config"
	"github.com/lisongmechlab/lsml-sub001/internal/ingestion"
	"github.com/lisongmechlab/lsml-sub001/internal/loadout"
	"github.com/lisongmechlab/lsml-sub001/internal/logger"
)

// ingest resolves every .mtf file under a directory against the catalog and
// loads it onto an empty loadout, reporting what could not be built.
func main() {
	dir := flag.String("dir", ".", "Path to mekfiles directory")
	verbose := flag.Bool("verbose", false, "Print each loaded mech")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config: %v", err)
	}
	logger.Init(cfg.Logging)

	cat, err := catalog.Open(context.Background(), cfg.Catalog)
	if err != nil {
		log.Fatalf("Catalog: %v", err)
	}

	var files []string
	err = filepath.Walk(*dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() && strings.HasSuffix(strings.ToLower(info.Name()), ".mtf") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking directory: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Found %d .mtf files\n", len(files))
	if len(files) == 0 {
		return
	}

	var parsed, loaded, partial int
	unknown := map[string]int{}
	var errs []string

	for i, f := range files {
		data, err := ingestion.ParseMTF(f)
		if err != nil {
			errs = append(errs, fmt.Sprintf("  %s: %v", filepath.Base(f), err))
			continue
		}
		parsed++

		stock, unresolved, err := ingestion.Resolve(data, cat)
		if err != nil {
			errs = append(errs, fmt.Sprintf("  %s: %v", filepath.Base(f), err))
			continue
		}
		if len(unresolved) > 0 {
			partial++
			for _, name := range unresolved {
				unknown[name]++
			}
		}

		l := loadout.New(stock.Chassis)
		if err := command.NewLoadStock(nil, l, stock).Apply(); err != nil {
			errs = append(errs, fmt.Sprintf("  %s: %v", filepath.Base(f), err))
			continue
		}
		loaded++

		if *verbose {
			fmt.Printf("  %-40s %6.2ft  armor %3d  items %d\n", data.FullName(), l.Mass(), l.TotalArmor(), len(l.Items()))
		}
		if (i+1)%500 == 0 {
			fmt.Printf("  Progress: %d / %d files processed\n", i+1, len(files))
		}
	}

	fmt.Printf("\nResults:\n")
	fmt.Printf("  Parsed:   %d / %d (%.1f%%)\n", parsed, len(files), float64(parsed)/float64(len(files))*100)
	fmt.Printf("  Loaded:   %d\n", loaded)
	fmt.Printf("  Partial:  %d (with unresolved crits)\n", partial)

	if len(unknown) > 0 {
		fmt.Printf("\nUnresolved crits:\n")
		for name, n := range unknown {
			fmt.Printf("  %4d  %s\n", n, name)
		}
	}
	if len(errs) > 0 {
		fmt.Printf("\nFirst %d errors:\n", min(len(errs), 20))
		for i, e := range errs {
			if i >= 20 {
				break
			}
			fmt.Println(e)
		}
	}
}
