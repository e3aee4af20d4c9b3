// Package render writes reports and water listings as terminal tables or
// JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/okian/waterradar/internal/domain/achievements"
	"github.com/okian/waterradar/internal/domain/classify"
	"github.com/okian/waterradar/internal/domain/model"
	"github.com/okian/waterradar/internal/domain/types"
	"github.com/olekukonko/tablewriter"
)

const unknownCell = "-"

var categoryPaint = map[model.Category]func(a ...interface{}) string{
	model.CategoryDaily:       color.New(color.FgGreen).SprintFunc(),
	model.CategoryRotate:      color.New(color.FgYellow).SprintFunc(),
	model.CategoryTherapeutic: color.New(color.FgRed).SprintFunc(),
	model.CategoryUnknown:     color.New(color.FgHiBlack).SprintFunc(),
}

// Category returns the category name, colored when the terminal allows it.
func Category(c model.Category) string {
	if paint, ok := categoryPaint[c]; ok {
		return paint(string(c))
	}
	return string(c)
}

// Report writes r as a ranked table followed by the winner and rotation plan.
func Report(w io.Writer, r types.Report) error {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Water", "Score", "Category", "Coverage", "Minimum", "Reasons", "Badges")
	for _, e := range r.Entries {
		row := []string{
			strconv.Itoa(e.Rank),
			label(e.Flag, e.Brand),
			strconv.FormatFloat(e.Score, 'f', 1, 64),
			Category(e.Category),
			fmt.Sprintf("%d/%d", e.CoverageCount, e.CoverageTotal),
			yesNo(e.HasMinimum),
			strings.Join(e.Reasons, " "),
			strings.Join(e.Achievements, " "),
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("render report: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if _, err := fmt.Fprintf(w, "Profile: %s\n", r.Profile); err != nil {
		return err
	}
	if r.Winner != nil {
		if _, err := fmt.Fprintf(w, "Winner: %s (%.1f)\n", label(r.Winner.Flag, r.Winner.Brand), r.Winner.Score); err != nil {
			return err
		}
	}
	if len(r.Rotation) > 0 {
		days := make([]string, len(r.Rotation))
		for i, d := range r.Rotation {
			days[i] = fmt.Sprintf("%d:%s", d.Day, d.WaterID)
		}
		if _, err := fmt.Fprintf(w, "Rotation: %s\n", strings.Join(days, " ")); err != nil {
			return err
		}
	}
	if !r.Comparable {
		if _, err := fmt.Fprintln(w, "Select at least two waters to compare."); err != nil {
			return err
		}
	}
	if len(r.Missing) > 0 {
		if _, err := fmt.Fprintf(w, "Missing: %s\n", strings.Join(r.Missing, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// Entry writes a single ranked entry as a two-column table.
func Entry(w io.Writer, e types.Entry) error {
	table := tablewriter.NewWriter(w)
	table.Header("Field", "Value")
	rows := [][]string{
		{"Water", label(e.Flag, e.Brand)},
		{"Score", strconv.FormatFloat(e.Score, 'f', 1, 64)},
		{"Category", Category(e.Category)},
		{"Coverage", fmt.Sprintf("%d/%d", e.CoverageCount, e.CoverageTotal)},
		{"Minimum", yesNo(e.HasMinimum)},
		{"Reasons", strings.Join(e.Reasons, " ")},
		{"Badges", strings.Join(e.Achievements, " ")},
	}
	for _, m := range model.Metrics {
		if st, ok := e.Statuses[m]; ok {
			rows = append(rows, []string{"Status " + string(m), st})
		}
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("render entry: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render entry: %w", err)
	}
	return nil
}

// Waters writes a listing of records with their derived category and badges.
// A nil registry omits badges.
func Waters(w io.Writer, ws []model.Water, badges *achievements.Registry) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Water", "Group", "Category", "pH", "TDS", "Ca", "Mg", "Na", "K", "Cl", "Confidence", "Badges")
	for _, water := range ws {
		var tags []string
		if badges != nil {
			for _, t := range badges.Tags(water) {
				tags = append(tags, string(t))
			}
		}
		row := []string{
			water.ID,
			label(water.Flag, water.BrandName),
			string(water.Group),
			Category(classify.Classify(water)),
			number(water.PH),
			number(water.TDS),
			number(water.Calcium),
			number(water.Magnesium),
			number(water.Sodium),
			number(water.Potassium),
			number(water.Chloride),
			string(water.Confidence),
			strings.Join(tags, " "),
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("render waters: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render waters: %w", err)
	}
	return nil
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	return nil
}

func label(flag, brand string) string {
	if flag == "" {
		return brand
	}
	return flag + " " + brand
}

func number(v *float64) string {
	if v == nil {
		return unknownCell
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
