// Command regioncheck performs integrity checks on a region lookup table
// before it is published: that it parses, that the three-level hierarchy is
// complete, and that every leaf carries a unique request code.
//
// Usage:
//
//	go run ./cmd/regioncheck -csv data/regions.csv
//	go run ./cmd/regioncheck -csv https://example.com/regions.csv
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/forecast-download-wizard/internal/adapter/regionsource"
	"github.com/couchcryptid/forecast-download-wizard/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	location := flag.String("csv", "", "path or http(s) URL of the region CSV")
	timeout := flag.Duration("timeout", 30*time.Second, "fetch timeout for remote CSVs")
	flag.Parse()

	if *location == "" {
		flag.Usage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	src := regionsource.NewClient(*location, *timeout, logger)
	data, err := src.Fetch(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(os.Stdout, data))
}

func run(out io.Writer, data []byte) int {
	fmt.Fprintln(out, "=== Region Table Validation ===")
	fmt.Fprintln(out)

	records, parse := validateParse(data)
	phases := []*phase{
		parse,
		validateHierarchy(records),
		validateRequestCodes(records),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-20s %s\n", p.name, status)
	}

	idx := domain.NewRegionIndex(records)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Records: %d, level1: %d\n", idx.Len(), len(idx.Level1Options()))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

func validateParse(data []byte) ([]domain.RegionRecord, *phase) {
	p := &phase{name: "parse"}
	records, err := domain.ParseRegionCSV(bytes.NewReader(data))
	if err != nil {
		p.errorf("%v", err)
		return nil, p
	}
	if len(records) == 0 {
		p.errorf("no records after header")
	}
	return records, p
}

// Rows dropped during parsing shift record positions, so findings name the
// region path rather than a line number.
func validateHierarchy(records []domain.RegionRecord) *phase {
	p := &phase{name: "hierarchy"}
	seen := make(map[[3]string]bool, len(records))
	for _, r := range records {
		path := regionPath(r)
		if r.Level2 == "" {
			p.errorf("%s: empty Level2", path)
		}
		if r.Level3 == "" {
			p.errorf("%s: empty Level3", path)
		}
		if strings.Contains(r.Level3, "·") {
			p.errorf("%s: Level3 %q still contains a middle dot", path, r.Level3)
		}
		key := [3]string{r.Level1, r.Level2, r.Level3}
		if seen[key] {
			p.errorf("%s: duplicate region path", path)
			continue
		}
		seen[key] = true
	}
	return p
}

func validateRequestCodes(records []domain.RegionRecord) *phase {
	p := &phase{name: "request codes"}
	owners := make(map[string]string, len(records))
	for _, r := range records {
		path := regionPath(r)
		if r.ReqListLast == "" {
			p.errorf("%s: empty ReqList_Last", path)
			continue
		}
		if owner, ok := owners[r.ReqListLast]; ok && owner != path {
			p.errorf("code %s shared by %q and %q", r.ReqListLast, owner, path)
			continue
		}
		owners[r.ReqListLast] = path
	}
	return p
}

func regionPath(r domain.RegionRecord) string {
	return strings.Join([]string{r.Level1, r.Level2, r.Level3}, " > ")
}
