package importer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/waterradar/internal/domain/classify"
	"github.com/okian/waterradar/internal/domain/model"
)

// exportColumns is the CSV header written by ExportCSV. Every column is
// readable by ParseCSV.
var exportColumns = []string{
	"id", "brand_name", "country_code", "flag_emoji", "group", "category",
	"ph", "tds_mg_l", "ca_mg_l", "mg_mg_l", "na_mg_l", "k_mg_l", "cl_mg_l",
	"sparkling", "source_type", "confidence_level", "notes",
}

// ExportCSV writes ws as CSV with a header row. Unknown values are empty
// cells; category is derived at export time.
func ExportCSV(ws []model.Water) (string, error) {
	var sb strings.Builder
	cw := csv.NewWriter(&sb)
	if err := cw.Write(exportColumns); err != nil {
		return "", fmt.Errorf("export csv: %w", err)
	}
	for _, w := range ws {
		row := []string{
			w.ID, w.BrandName, w.CountryCode, w.Flag, string(w.Group), string(classify.Classify(w)),
			num(w.PH), num(w.TDS), num(w.Calcium), num(w.Magnesium), num(w.Sodium), num(w.Potassium), num(w.Chloride),
			boolean(w.Sparkling), string(w.SourceType), string(w.Confidence), w.Notes,
		}
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("export csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("export csv: %w", err)
	}
	return sb.String(), nil
}

type exportedWater struct {
	model.Water
	Category model.Category `json:"category"`
}

// ExportJSON writes ws as {"waters":[...]}. Unknown values are null.
func ExportJSON(ws []model.Water) ([]byte, error) {
	doc := struct {
		Waters []exportedWater `json:"waters"`
	}{Waters: make([]exportedWater, 0, len(ws))}
	for _, w := range ws {
		doc.Waters = append(doc.Waters, exportedWater{Water: w, Category: classify.Classify(w)})
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export json: %w", err)
	}
	return b, nil
}

func num(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func boolean(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}
