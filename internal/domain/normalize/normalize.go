// Package normalize turns loosely-typed external input into canonical water
// records.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/waterradar/internal/domain/model"
)

// GlobeFlag is shown when no valid country code is available.
const GlobeFlag = "🌍"

const regionalIndicatorA = 0x1F1E6

// Input is a partial record as read from text sources. Every field is the raw
// textual value; empty means absent.
type Input struct {
	ID          string
	BrandName   string
	CountryCode string
	Flag        string
	Group       string
	SourceType  string
	Confidence  string
	Notes       string

	PH        string
	TDS       string
	Calcium   string
	Magnesium string
	Sodium    string
	Potassium string
	Chloride  string

	Sparkling string
}

// Normalize parses in and returns a canonical record. Unparseable numbers
// and booleans become unknown. Inputs without id or brand name are rejected
// with an error wrapping ErrRejected.
func Normalize(in Input) (model.Water, error) {
	w := model.Water{
		ID:          in.ID,
		BrandName:   in.BrandName,
		CountryCode: strings.TrimSpace(in.CountryCode),
		Flag:        strings.TrimSpace(in.Flag),
		Notes:       strings.TrimSpace(in.Notes),
		PH:          Number(in.PH),
		TDS:         Number(in.TDS),
		Calcium:     Number(in.Calcium),
		Magnesium:   Number(in.Magnesium),
		Sodium:      Number(in.Sodium),
		Potassium:   Number(in.Potassium),
		Chloride:    Number(in.Chloride),
		Sparkling:   Bool(in.Sparkling),
	}
	if g, ok := ParseGroup(in.Group); ok {
		w.Group = g
	}
	if s, ok := ParseSourceType(in.SourceType); ok {
		w.SourceType = s
	}
	if c, ok := ParseConfidence(in.Confidence); ok {
		w.Confidence = c
	}
	return Fill(w)
}

// Fill validates identity and applies defaults to an already typed partial
// record: group Europe, source seed, confidence low, flag from country code.
// Metrics are left untouched, so absent values stay unknown.
func Fill(w model.Water) (model.Water, error) {
	w.ID = strings.TrimSpace(w.ID)
	w.BrandName = strings.TrimSpace(w.BrandName)
	if w.ID == "" {
		return model.Water{}, fmt.Errorf("%w: %w", ErrRejected, ErrMissingID)
	}
	if w.BrandName == "" {
		return model.Water{}, fmt.Errorf("%w: %w", ErrRejected, ErrMissingBrand)
	}
	if w.Group == "" {
		w.Group = model.GroupEurope
	}
	if w.SourceType == "" {
		w.SourceType = model.SourceSeed
	}
	if w.Confidence == "" {
		w.Confidence = model.ConfidenceLow
	}
	if w.Flag == "" {
		w.Flag = Flag(w.CountryCode)
	}
	return w, nil
}

// Flag derives a flag emoji from a two-letter ISO country code. Anything else
// yields GlobeFlag.
func Flag(code string) string {
	cc := strings.ToUpper(strings.TrimSpace(code))
	if len(cc) != 2 || !isASCIIUpper(cc[0]) || !isASCIIUpper(cc[1]) {
		return GlobeFlag
	}
	return string([]rune{
		regionalIndicatorA + rune(cc[0]-'A'),
		regionalIndicatorA + rune(cc[1]-'A'),
	})
}

func isASCIIUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

// Number parses a loosely formatted number. A comma decimal separator is
// accepted. Empty, non-numeric and non-finite input yields nil (unknown).
func Number(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

var (
	truthy = map[string]bool{"1": true, "true": true, "yes": true, "y": true, "да": true}
	falsy  = map[string]bool{"0": true, "false": true, "no": true, "n": true, "нет": true}
)

// Bool parses a tri-state boolean. Unrecognized tokens yield nil.
func Bool(s string) *bool {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return nil
	case truthy[s]:
		return model.Bool(true)
	case falsy[s]:
		return model.Bool(false)
	}
	return nil
}

// ParseGroup maps a group token (case-insensitive) to a Group.
func ParseGroup(s string) (model.Group, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "russia":
		return model.GroupRussia, true
	case "europe":
		return model.GroupEurope, true
	case "therapeutic":
		return model.GroupTherapeutic, true
	}
	return "", false
}

// ParseSourceType maps a source token to a SourceType. Legacy tokens
// ("pickaqua", "approx") are accepted.
func ParseSourceType(s string) (model.SourceType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "official":
		return model.SourceOfficial, true
	case "third-party-estimate", "third_party_estimate", "third-party", "pickaqua", "estimate":
		return model.SourceThirdPartyEstimate, true
	case "approximate", "approx":
		return model.SourceApproximate, true
	case "seed":
		return model.SourceSeed, true
	}
	return "", false
}

// ParseConfidence maps a confidence token to a Confidence.
func ParseConfidence(s string) (model.Confidence, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return model.ConfidenceHigh, true
	case "medium", "med":
		return model.ConfidenceMedium, true
	case "low":
		return model.ConfidenceLow, true
	}
	return "", false
}
