// bintree CLI: build unbalanced binary search trees and draw them.
//
// Usage:
//
//	bintree <command> [flags]
//
// Commands:
//
//	render    Build a tree and print its diagram
//	inorder   Print the sorted (in-order) values of a tree
//	analyze   Report on the shape of a tree
//	list      List saved sequences
//	show      Redraw a saved sequence
//	delete    Remove a saved sequence
//	version   Print version information
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Mr-Dark-debug/bintree/internal/analysis"
	"github.com/Mr-Dark-debug/bintree/internal/bst"
	"github.com/Mr-Dark-debug/bintree/internal/config"
	"github.com/Mr-Dark-debug/bintree/internal/database"
	"github.com/Mr-Dark-debug/bintree/internal/render"
	"github.com/Mr-Dark-debug/bintree/internal/sequence"
	"github.com/Mr-Dark-debug/bintree/pkg/jsonutil"
	"github.com/Mr-Dark-debug/bintree/pkg/timeutil"
)

var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.DefaultConfig()

	switch os.Args[1] {
	case "render":
		cmdRender(cfg)
	case "inorder":
		cmdInOrder(cfg)
	case "analyze":
		cmdAnalyze(cfg)
	case "list":
		cmdList(cfg)
	case "show":
		cmdShow(cfg)
	case "delete":
		cmdDelete(cfg)
	case "version":
		fmt.Printf("bintree v%s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`bintree: unbalanced binary search trees on the console

Usage:
  bintree <command> [flags]

Commands:
  render     Build a tree and print its diagram
  inorder    Print the sorted (in-order) values of a tree
  analyze    Report on the shape of a tree
  list       List saved sequences
  show       Redraw a saved sequence
  delete     Remove a saved sequence
  version    Print version information

Run 'bintree <command> --help' for details on each command.`)
}

// treeFlags registers the flags shared by commands that build a tree
// and returns a pointer to the --values flag.
func treeFlags(fs *flag.FlagSet, cfg *config.Config) *string {
	values := fs.String("values", "", "Comma separated values (default: random)")
	fs.IntVar(&cfg.Count, "count", cfg.Count, "Number of random values")
	fs.IntVar(&cfg.MaxValue, "max", cfg.MaxValue, "Largest random value")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 = random)")
	fs.IntVar(&cfg.Depth, "depth", cfg.Depth, "Number of levels drawn")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Cell width (0 = fit widest value)")
	fs.BoolVar(&cfg.Color, "color", cfg.Color, "Colour the diagram")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	return values
}

// resolveValues parses --values, or draws random values when empty.
func resolveValues(raw string, cfg config.Config) []int {
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Bad flags: %v", err)
	}
	if raw == "" {
		return sequence.Random(sequence.NewRand(cfg.Seed), cfg.Count, cfg.MaxValue)
	}
	values, err := sequence.Parse(raw)
	if err != nil {
		log.Fatalf("Bad --values: %v", err)
	}
	return values
}

// openStore opens the history database, creating its directory.
func openStore(path string) *database.DBService {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create database directory %s: %v", dir, err)
		}
	}
	store, err := database.NewDBService(path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	return store
}

// printTree prints the input sequence followed by the diagram.
func printTree(values []int, cfg config.Config) {
	fmt.Println(sequence.Format(values))
	fmt.Print("\n\n\n")

	tree := bst.FromSlice(values)
	if err := render.Tree(os.Stdout, tree, cfg.RenderOptions(values)...); err != nil {
		log.Fatalf("Render failed: %v", err)
	}
	fmt.Println()
}

// cmdRender builds a tree from --values or random input and draws it.
func cmdRender(cfg config.Config) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	raw := treeFlags(fs, &cfg)
	save := fs.Bool("save", false, "Save the sequence to the history database")
	label := fs.String("label", "", "Label for a saved sequence")
	fs.Parse(os.Args[2:])

	values := resolveValues(*raw, cfg)
	printTree(values, cfg)

	if *save {
		store := openStore(cfg.DBPath)
		defer store.Close()

		id, err := store.InsertSequence(&database.Sequence{Label: *label, Values: values})
		if err != nil {
			log.Fatalf("Save failed: %v", err)
		}
		log.Printf("[INFO] Saved sequence #%d", id)
	}
}

// cmdInOrder prints the in-order walk of a tree.
func cmdInOrder(cfg config.Config) {
	fs := flag.NewFlagSet("inorder", flag.ExitOnError)
	raw := treeFlags(fs, &cfg)
	pre := fs.Bool("pre", false, "Print the pre-order walk instead")
	outputFormat := fs.String("format", "text", "Output format: text, json")
	fs.Parse(os.Args[2:])

	values := resolveValues(*raw, cfg)
	tree := bst.FromSlice(values)

	walk := tree.InOrder()
	if *pre {
		walk = tree.PreOrder()
	}

	switch *outputFormat {
	case "json":
		fmt.Println(jsonutil.PrettyJSON(jsonutil.MustMarshal(map[string][]int{
			"input": values,
			"walk":  walk,
		})))
	case "text":
		fmt.Println(sequence.Format(values))
		fmt.Println(sequence.Format(walk))
	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", *outputFormat)
		os.Exit(1)
	}
}

// cmdAnalyze reports on the shape of a tree, either built from flags
// or loaded from the history with --id.
func cmdAnalyze(cfg config.Config) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	raw := treeFlags(fs, &cfg)
	id := fs.Int64("id", 0, "Analyze a saved sequence")
	outputFormat := fs.String("format", "markdown", "Output format: markdown, json")
	fs.Parse(os.Args[2:])

	var report *analysis.Report
	if *id != 0 {
		store := openStore(cfg.DBPath)
		defer store.Close()

		var err error
		report, err = analysis.NewAnalyzer(store, cfg.Depth).AnalyzeSequence(*id)
		if err != nil {
			log.Fatalf("Analysis failed: %v", err)
		}
	} else {
		report = analysis.Analyze(resolveValues(*raw, cfg), cfg.Depth)
	}

	switch *outputFormat {
	case "json":
		b, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(b))
	case "markdown":
		fmt.Print(analysis.FormatReport(report))
	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", *outputFormat)
		os.Exit(1)
	}
}

// cmdList lists saved sequences, newest first.
func cmdList(cfg config.Config) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	search := fs.String("search", "", "Only sequences whose label contains this text")
	minHeight := fs.Int("min-height", 0, "Only trees at least this tall")
	limit := fs.Int("limit", 20, "Maximum results")
	outputFormat := fs.String("format", "text", "Output format: text, json")
	fs.Parse(os.Args[2:])

	store := openStore(cfg.DBPath)
	defer store.Close()

	var (
		seqs []*database.Sequence
		err  error
	)
	if *search != "" {
		seqs, err = store.SearchLabel(*search, *limit)
	} else {
		filter := database.SequenceFilter{Limit: *limit}
		if *minHeight > 0 {
			filter.MinHeight = minHeight
		}
		seqs, err = store.QuerySequences(filter)
	}
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}

	if *outputFormat == "json" {
		b, _ := json.MarshalIndent(seqs, "", "  ")
		fmt.Println(string(b))
		return
	}

	if len(seqs) == 0 {
		fmt.Println("No saved sequences.")
		return
	}
	for _, s := range seqs {
		fmt.Printf("#%-5d n=%-4d h=%-4d %-19s  %s %s\n",
			s.SequenceID, s.Size, s.Height,
			timeutil.FormatTimestampFull(s.CreatedAt),
			sequence.Format(s.Values), s.Label)
	}
}

// cmdShow redraws a saved sequence.
func cmdShow(cfg config.Config) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	fs.IntVar(&cfg.Depth, "depth", cfg.Depth, "Number of levels drawn")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Cell width (0 = fit widest value)")
	fs.BoolVar(&cfg.Color, "color", cfg.Color, "Colour the diagram")
	fs.Parse(os.Args[2:])

	id := parseID(fs)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Bad flags: %v", err)
	}

	store := openStore(cfg.DBPath)
	defer store.Close()

	seq, err := store.GetSequence(id)
	if err != nil {
		log.Fatalf("Load failed: %v", err)
	}

	fmt.Printf("#%d %s (%s)\n", seq.SequenceID, seq.Label, timeutil.RelativeTime(seq.CreatedAt))
	printTree(seq.Values, cfg)
}

// cmdDelete removes a saved sequence.
func cmdDelete(cfg config.Config) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	fs.Parse(os.Args[2:])

	id := parseID(fs)

	store := openStore(cfg.DBPath)
	defer store.Close()

	if err := store.DeleteSequence(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "No sequence #%d\n", id)
			os.Exit(1)
		}
		log.Fatalf("Delete failed: %v", err)
	}
	log.Printf("[INFO] Deleted sequence #%d", id)
}

// parseID reads the single positional sequence ID.
func parseID(fs *flag.FlagSet) int64 {
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: %s takes exactly one sequence ID\n", fs.Name())
		fs.Usage()
		os.Exit(1)
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: bad sequence ID %q\n", fs.Arg(0))
		os.Exit(1)
	}
	return id
}
