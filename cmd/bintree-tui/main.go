// bintree TUI: interactive viewer for unbalanced binary search trees.
//
// Usage:
//
//	bintree-tui [flags]
//
// Flags:
//
//	--db       Path to SQLite database file (default: ~/.bintree/bintree.db)
//	--values   Comma separated starting values (default: random)
//	--count    Number of random values per regeneration (default: 10)
//	--max      Largest random value (default: 255)
//	--depth    Number of levels drawn (default: 6)
//	--no-db    Run without the history database
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Mr-Dark-debug/bintree/internal/config"
	"github.com/Mr-Dark-debug/bintree/internal/database"
	"github.com/Mr-Dark-debug/bintree/internal/sequence"
	"github.com/Mr-Dark-debug/bintree/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg := config.DefaultConfig()

	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database file")
	raw := flag.String("values", "", "Comma separated starting values")
	flag.IntVar(&cfg.Count, "count", cfg.Count, "Number of random values")
	flag.IntVar(&cfg.MaxValue, "max", cfg.MaxValue, "Largest random value")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 = random)")
	flag.IntVar(&cfg.Depth, "depth", cfg.Depth, "Number of levels drawn")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "Cell width (0 = fit widest value)")
	noDB := flag.Bool("no-db", false, "Run without the history database")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Bad flags: %v", err)
	}

	values := sequence.Random(sequence.NewRand(cfg.Seed), cfg.Count, cfg.MaxValue)
	if *raw != "" {
		var err error
		values, err = sequence.Parse(*raw)
		if err != nil {
			log.Fatalf("Bad --values: %v", err)
		}
	}

	var store database.Store
	if !*noDB {
		dbDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			log.Fatalf("Failed to create database directory %s: %v", dbDir, err)
		}
		svc, err := database.NewDBService(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to open database at %s: %v\n"+
				"Run with --no-db to start without history.", cfg.DBPath, err)
		}
		defer svc.Close()
		store = svc
	}

	model := tui.NewModel(store, cfg, values)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
