package store

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
)

// row is one CSV record paired with its header index, so columns are looked
// up by name and a missing column reads as an empty cell.
type row struct {
	index  map[string]int
	fields []string
}

func (r row) cell(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return cleanCell(r.fields[i])
}

// cleanCell normalizes a raw cell, mapping the null-like spellings the
// upstream exports produce ("", "nan", "none", "null") to the empty string.
func cleanCell(v string) string {
	s := strings.TrimSpace(v)
	switch strings.ToLower(s) {
	case "", "nan", "none", "null":
		return ""
	}
	return s
}

// readRows reads a CSV file into header-indexed rows. A missing or unreadable
// file, or one without a header, yields no rows. Ragged rows are tolerated;
// short rows read missing columns as empty cells.
func readRows(path string) []row {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var out []row
	for {
		fields, err := r.Read()
		if err != nil {
			break
		}
		out = append(out, row{index: index, fields: fields})
	}
	return out
}

// decodeDiag counts fields that carried a value the decoder could not use
// and had to default. Ingestion never fails on these; the count is logged so
// corrupt exports are visible without blocking the dataset.
type decodeDiag struct {
	defaulted int
}

// ticketID parses the identifier column. Identifiers must be positive
// integers; anything else invalidates the row.
func (r row) ticketID(col string) (int, bool) {
	s := r.cell(col)
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// seconds parses a duration cell into an optional non-negative value.
// Absent, unparsable, or negative cells all decode to nil.
func (r row) seconds(col string, diag *decodeDiag) *float64 {
	s := r.cell(col)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		diag.defaulted++
		return nil
	}
	return &v
}

// score parses an optional float cell (NPS/CSAT), which may be negative.
func (r row) score(col string, diag *decodeDiag) *float64 {
	s := r.cell(col)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		diag.defaulted++
		return nil
	}
	return &v
}

// count parses an integer count cell, defaulting to zero. Float spellings
// ("3.0") from pandas exports are accepted and truncated.
func (r row) count(col string, diag *decodeDiag) int {
	s := r.cell(col)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			diag.defaulted++
			return 0
		}
		return n
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0 {
		return int(v)
	}
	diag.defaulted++
	return 0
}

// flag parses a boolean cell. The exports spell truth as "1", "true" or
// "yes"; numeric cells above zero (counts reused as signals) also read as
// true. Everything else, including absence, is false.
func (r row) flag(col string) bool {
	s := strings.ToLower(r.cell(col))
	switch s {
	case "1", "true", "yes":
		return true
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v > 0
	}
	return false
}
