package domain

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// RegionRecord is one row of the region lookup table: a three-level
// administrative path plus the KMA request code of its leaf.
type RegionRecord struct {
	Level1      string `json:"level1"`
	Level2      string `json:"level2"`
	Level3      string `json:"level3"`
	ReqListLast string `json:"req_list_last"`
}

// middleDot appears in some neighbourhood names (e.g. "종로1·2·3·4가동") and is
// rewritten to a period so names survive the download service's path handling.
const middleDot = "·"

// NormalizeLevel3 applies the Level3 naming rule: every middle dot becomes a period.
func NormalizeLevel3(s string) string {
	return strings.ReplaceAll(s, middleDot, ".")
}

// ParseRegionCSV reads the region table. The first row is a header and is
// discarded. Fields are trimmed, rows with an empty Level1 are dropped, and
// missing trailing columns read as empty strings. Malformed quoting is an
// error rather than a field that swallows the rest of the file.
func ParseRegionCSV(r io.Reader) ([]RegionRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read region header: %w", err)
	}

	var records []RegionRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read region row: %w", err)
		}

		rec := RegionRecord{
			Level1:      column(row, 0),
			Level2:      column(row, 1),
			Level3:      NormalizeLevel3(column(row, 2)),
			ReqListLast: column(row, 3),
		}
		if rec.Level1 == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func column(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
