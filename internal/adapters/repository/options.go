// Package repository holds the in-memory working dataset of water records.
package repository

import (
	"github.com/okian/waterradar/internal/domain/model"
	"golang.org/x/text/language"
)

// Option applies a configuration option to the Dataset.
type Option func(*Dataset)

// WithWaters sets the initial records. Later duplicates of an id replace
// earlier ones.
func WithWaters(ws []model.Water) Option {
	return func(d *Dataset) {
		d.initial = append(d.initial, ws...)
	}
}

// WithSeed loads the built-in seed waters when enabled.
func WithSeed(enabled bool) Option {
	return func(d *Dataset) {
		d.seed = enabled
	}
}

// WithLanguage sets the collation language for brand-sorted listings.
func WithLanguage(tag language.Tag) Option {
	return func(d *Dataset) {
		d.lang = tag
	}
}
