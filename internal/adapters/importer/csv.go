package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const bom = "\ufeff"

func parseCSV(text string) (Batch, error) {
	b := Batch{Format: FormatCSV}

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(text, bom)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return b, fmt.Errorf("%w: csv: missing header row", ErrParse)
	}
	if err != nil {
		return b, fmt.Errorf("%w: csv header: %w", ErrParse, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	if !hasAny(cols, idKeys) || !hasAny(cols, brandKeys) {
		return b, fmt.Errorf("%w: csv: header has no id or brand column", ErrParse)
	}

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			b.Rejected++
			continue
		}
		if err != nil {
			return b, fmt.Errorf("%w: csv: %w", ErrParse, err)
		}
		b.collect(func(key string) string {
			i, ok := cols[strings.ToLower(key)]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		})
	}
	return b, nil
}

func hasAny(cols map[string]int, keys []string) bool {
	for _, k := range keys {
		if _, ok := cols[strings.ToLower(k)]; ok {
			return true
		}
	}
	return false
}
