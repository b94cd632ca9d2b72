// Command genfixture reads a region CSV and writes the option tree the wizard
// derives from it as a JSON fixture, {level1: {level2: [level3...]}}. It uses
// the domain option functions so the fixture matches what the UI shows.
//
// Usage:
//
//	go run ./cmd/genfixture -csv data/regions.csv -out testdata/region_tree.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/couchcryptid/forecast-download-wizard/internal/domain"
)

// optionTree maps level1 -> level2 -> sorted level3 options.
type optionTree map[string]map[string][]string

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := flag.String("csv", "", "path to the region CSV")
	out := flag.String("out", "", "output path for the JSON fixture")
	flag.Parse()

	if *csvPath == "" || *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv, -out")
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	tree, err := buildTree(f)
	if err != nil {
		return err
	}
	log.Printf("level1: %d, level2: %d, level3: %d", len(tree), countLevel2(tree), countLevel3(tree))

	if err := writeJSON(*out, tree); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s", *out)
	return nil
}

func buildTree(r io.Reader) (optionTree, error) {
	records, err := domain.ParseRegionCSV(r)
	if err != nil {
		return nil, fmt.Errorf("parse region csv: %w", err)
	}
	idx := domain.NewRegionIndex(records)

	tree := optionTree{}
	for _, l1 := range idx.Level1Options() {
		level2 := map[string][]string{}
		for _, l2 := range idx.Level2Options(l1) {
			level2[l2] = idx.Level3Options(l1, l2)
		}
		tree[l1] = level2
	}
	return tree, nil
}

func countLevel2(t optionTree) int {
	n := 0
	for _, l2 := range t {
		n += len(l2)
	}
	return n
}

func countLevel3(t optionTree) int {
	n := 0
	for _, l2 := range t {
		for _, l3 := range l2 {
			n += len(l3)
		}
	}
	return n
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
