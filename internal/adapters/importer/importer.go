// Package importer reads water records from pasted CSV or JSON text, merges
// them into a dataset and writes them back out.
package importer

import (
	"fmt"
	"strings"

	"github.com/okian/waterradar/internal/domain/model"
	"github.com/okian/waterradar/internal/domain/normalize"
)

// Format is an import/export text format.
type Format string

// Supported formats. FormatAuto picks one from the text.
const (
	FormatAuto Format = "auto"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat maps a format name (case-insensitive) to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, FormatCSV, FormatJSON:
		return f, nil
	case "":
		return FormatAuto, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// DetectFormat guesses JSON when the text starts with '[' or '{', CSV
// otherwise.
func DetectFormat(text string) Format {
	t := strings.TrimSpace(strings.TrimPrefix(text, bom))
	if strings.HasPrefix(t, "[") || strings.HasPrefix(t, "{") {
		return FormatJSON
	}
	return FormatCSV
}

// Batch is the outcome of parsing one document.
type Batch struct {
	Format   Format
	Records  []model.Water
	Rejected int
}

// Parse reads text in format f.
func Parse(f Format, text string) (Batch, error) {
	if f == FormatAuto {
		f = DetectFormat(text)
	}
	switch f {
	case FormatCSV:
		return parseCSV(text)
	case FormatJSON:
		return parseJSON(text)
	}
	return Batch{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// ParseCSV reads CSV text with a header row. Rows lacking an id or brand
// name are dropped.
func ParseCSV(text string) ([]model.Water, error) {
	b, err := parseCSV(text)
	return b.Records, err
}

// ParseJSON reads a JSON array, or an object wrapping the array under
// "waters", "data" or "items". Items lacking an id or brand name are dropped.
func ParseJSON(text string) ([]model.Water, error) {
	b, err := parseJSON(text)
	return b.Records, err
}

// Column synonyms, tried in order.
var (
	idKeys         = []string{"id", "slug", "code"}
	brandKeys      = []string{"brand_name", "name", "brand"}
	countryKeys    = []string{"country_code", "countryCode", "country"}
	flagKeys       = []string{"flag_emoji", "flag"}
	groupKeys      = []string{"group", "region"}
	sourceKeys     = []string{"source_type", "source"}
	confidenceKeys = []string{"confidence_level", "confidence"}
	notesKeys      = []string{"notes"}
	phKeys         = []string{"ph"}
	tdsKeys        = []string{"tds_mg_l", "tds"}
	caKeys         = []string{"ca_mg_l", "ca"}
	mgKeys         = []string{"mg_mg_l", "mg"}
	naKeys         = []string{"na_mg_l", "na"}
	kKeys          = []string{"k_mg_l", "k"}
	clKeys         = []string{"cl_mg_l", "cl"}
	sparklingKeys  = []string{"sparkling", "gas"}
)

// getter returns the raw text of one field, "" when absent.
type getter func(key string) string

// text returns the first non-empty value among keys.
func (g getter) text(keys []string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(g(k)); v != "" {
			return v
		}
	}
	return ""
}

// number returns the first value among keys that parses as a number.
func (g getter) number(keys []string) string {
	for _, k := range keys {
		if v := g(k); normalize.Number(v) != nil {
			return v
		}
	}
	return ""
}

// boolean returns the first value among keys that parses as a boolean.
func (g getter) boolean(keys []string) string {
	for _, k := range keys {
		if v := g(k); normalize.Bool(v) != nil {
			return v
		}
	}
	return ""
}

func (g getter) input() normalize.Input {
	return normalize.Input{
		ID:          g.text(idKeys),
		BrandName:   g.text(brandKeys),
		CountryCode: g.text(countryKeys),
		Flag:        g.text(flagKeys),
		Group:       g.text(groupKeys),
		SourceType:  g.text(sourceKeys),
		Confidence:  g.text(confidenceKeys),
		Notes:       g.text(notesKeys),
		PH:          g.number(phKeys),
		TDS:         g.number(tdsKeys),
		Calcium:     g.number(caKeys),
		Magnesium:   g.number(mgKeys),
		Sodium:      g.number(naKeys),
		Potassium:   g.number(kKeys),
		Chloride:    g.number(clKeys),
		Sparkling:   g.boolean(sparklingKeys),
	}
}

// collect normalizes one item into b, counting rejections.
func (b *Batch) collect(g getter) {
	w, err := normalize.Normalize(g.input())
	if err != nil {
		b.Rejected++
		return
	}
	b.Records = append(b.Records, w)
}
