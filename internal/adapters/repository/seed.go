package repository

import (
	"github.com/okian/waterradar/internal/domain/model"
	"github.com/okian/waterradar/internal/domain/normalize"
)

// Seed returns the built-in sample waters, normalized.
func Seed() []model.Water {
	raw := []model.Water{
		{
			ID: "evian", BrandName: "Evian", CountryCode: "FR", Group: model.GroupEurope,
			PH: model.Float(7.2), TDS: model.Float(345),
			Calcium: model.Float(80), Magnesium: model.Float(26), Sodium: model.Float(6.5),
			Potassium: model.Float(1.0), Chloride: model.Float(10),
			Sparkling: model.Bool(false), SourceType: model.SourceSeed, Confidence: model.ConfidenceHigh,
		},
		{
			ID: "sanpellegrino", BrandName: "San Pellegrino", CountryCode: "IT", Group: model.GroupEurope,
			PH: model.Float(7.8), TDS: model.Float(915),
			Calcium: model.Float(160), Magnesium: model.Float(50), Sodium: model.Float(33),
			Potassium: model.Float(2.0), Chloride: model.Float(49),
			Sparkling: model.Bool(true), SourceType: model.SourceSeed, Confidence: model.ConfidenceHigh,
		},
		{
			ID: "borjomi", BrandName: "Borjomi", CountryCode: "GE", Group: model.GroupTherapeutic,
			PH: model.Float(6.6), TDS: model.Float(5500),
			Calcium: model.Float(120), Magnesium: model.Float(50), Sodium: model.Float(1200),
			Potassium: model.Float(35), Chloride: model.Float(600),
			Sparkling: model.Bool(true), SourceType: model.SourceSeed, Confidence: model.ConfidenceHigh,
			Notes: "Medicinal table water",
		},
		{
			ID: "volvic", BrandName: "Volvic", CountryCode: "FR", Group: model.GroupEurope,
			PH: model.Float(7.0), TDS: model.Float(130),
			Calcium: model.Float(12), Magnesium: model.Float(8), Sodium: model.Float(12),
			Potassium: model.Float(6), Chloride: model.Float(15),
			Sparkling: model.Bool(false), SourceType: model.SourceSeed, Confidence: model.ConfidenceMedium,
		},
		{
			ID: "baikal", BrandName: "Байкал (Baikal)", CountryCode: "RU", Group: model.GroupRussia,
			PH: model.Float(7.2), TDS: model.Float(120),
			Calcium: model.Float(25), Magnesium: model.Float(8), Sodium: model.Float(4),
			Potassium: model.Float(1), Chloride: model.Float(5),
			Sparkling: model.Bool(false), SourceType: model.SourceSeed, Confidence: model.ConfidenceLow,
		},
		{
			ID: "acqua_panna_partial", BrandName: "Acqua Panna (partial)", CountryCode: "IT", Group: model.GroupEurope,
			PH: model.Float(8.0), TDS: model.Float(190),
			Sparkling: model.Bool(false), SourceType: model.SourceSeed, Confidence: model.ConfidenceLow,
			Notes: "Incomplete label, ranks below complete records",
		},
	}

	out := make([]model.Water, 0, len(raw))
	for _, w := range raw {
		if n, err := normalize.Fill(w); err == nil {
			out = append(out, n)
		}
	}
	return out
}
