package domain

import "sort"

// Level1Options returns the sorted, de-duplicated non-empty Level1 values.
func Level1Options(records []RegionRecord) []string {
	return distinctSorted(records, func(RegionRecord) bool { return true },
		func(r RegionRecord) string { return r.Level1 })
}

// Level2Options returns the sorted, de-duplicated non-empty Level2 values of
// records whose Level1 equals level1.
func Level2Options(records []RegionRecord, level1 string) []string {
	return distinctSorted(records, func(r RegionRecord) bool { return r.Level1 == level1 },
		func(r RegionRecord) string { return r.Level2 })
}

// Level3Options returns the sorted, de-duplicated non-empty Level3 values of
// records matching both level1 and level2.
func Level3Options(records []RegionRecord, level1, level2 string) []string {
	return distinctSorted(records, func(r RegionRecord) bool { return r.Level1 == level1 && r.Level2 == level2 },
		func(r RegionRecord) string { return r.Level3 })
}

func distinctSorted(records []RegionRecord, match func(RegionRecord) bool, field func(RegionRecord) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range records {
		if r.Level1 == "" || !match(r) {
			continue
		}
		v := field(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// RegionIndex is the immutable in-memory region table loaded at startup.
// The zero value is an empty index.
type RegionIndex struct {
	records []RegionRecord
}

// NewRegionIndex builds an index over a copy of records. Records with an
// empty Level1 are dropped.
func NewRegionIndex(records []RegionRecord) *RegionIndex {
	cp := make([]RegionRecord, 0, len(records))
	for _, r := range records {
		if r.Level1 != "" {
			cp = append(cp, r)
		}
	}
	return &RegionIndex{records: cp}
}

// Len reports the number of records.
func (x *RegionIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.records)
}

// Records returns a copy of the underlying records.
func (x *RegionIndex) Records() []RegionRecord {
	if x == nil {
		return nil
	}
	cp := make([]RegionRecord, len(x.records))
	copy(cp, x.records)
	return cp
}

func (x *RegionIndex) rows() []RegionRecord {
	if x == nil {
		return nil
	}
	return x.records
}

func (x *RegionIndex) Level1Options() []string { return Level1Options(x.rows()) }

func (x *RegionIndex) Level2Options(level1 string) []string {
	return Level2Options(x.rows(), level1)
}

func (x *RegionIndex) Level3Options(level1, level2 string) []string {
	return Level3Options(x.rows(), level1, level2)
}

// RequestCode returns the ReqList_Last code of the first record matching the
// full region path.
func (x *RegionIndex) RequestCode(level1, level2, level3 string) (string, bool) {
	for _, r := range x.rows() {
		if r.Level1 == level1 && r.Level2 == level2 && r.Level3 == level3 {
			return r.ReqListLast, true
		}
	}
	return "", false
}
