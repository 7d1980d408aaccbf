// Package report describes every dashboard report as data: which view it reads, how it may be
// filtered and ordered, and how its columns are displayed. Handlers, the normalizer and the display
// mapper are shared; only a Definition differs between reports.
package report

import (
	"errors"
	"fmt"

	"github.com/maxviazov/reporting-dashboard/internal/model"
)

// Layout selects how a report page renders its rows.
type Layout string

const (
	LayoutTable Layout = "table"
	LayoutCards Layout = "cards"
)

// FilterKind distinguishes fixed-set filters from free text.
type FilterKind int

const (
	// FreeText passes user text through; empty means no filter.
	FreeText FilterKind = iota
	// Enum accepts only Allowed values and falls back to Default otherwise.
	Enum
)

// Filter binds one query-string parameter to a predicate over view columns.
type Filter struct {
	Param       string
	Label       string
	Kind        FilterKind
	Match       model.PredicateKind
	Columns     []string
	Allowed     []string
	Default     string
	Placeholder string
	// Options are suggested values rendered as quick links; they do not restrict input.
	Options []string
}

// Format controls how a cell value is rendered.
type Format int

const (
	FormatText Format = iota
	FormatInteger
	FormatDecimal
	FormatCurrency
	FormatPercent
	FormatHours
	FormatRank
	FormatStatus
)

// Thresholds classify a number into severity bands.
// Normal orientation: value > Severe is severe, value > Warning is warning.
// Inverted orientation (lower is worse): value < Severe is severe, value < Warning is warning.
type Thresholds struct {
	Severe   float64
	Warning  float64
	Inverted bool
}

// StatusStyle is how a view-computed status label is shown.
type StatusStyle struct {
	Label string
	Tone  model.Tone
}

// Column describes one displayed field.
type Column struct {
	Key    string
	Label  string
	Format Format
	// Digits is the number of fraction digits for currency and decimal formats.
	Digits int
	// Bands turns a percent column into a coloured bar.
	Bands *Thresholds
	// Statuses maps raw view labels to display styles; DefaultStatus covers the rest.
	Statuses      map[string]StatusStyle
	DefaultStatus *StatusStyle
	// Fallback names a column read when Key is missing or null.
	Fallback string
	// Secondary renders under the primary value in the same cell (e.g. an id).
	Secondary string
}

// Definition is the per-report configuration.
type Definition struct {
	Slug        string
	Number      int
	Domain      string
	Category    string
	Title       string
	Description string
	View        string
	Layout      Layout
	Filters     []Filter
	Order       []model.OrderTerm
	// Tiebreak is appended to Order so rows with equal sort keys keep a stable position across pages.
	Tiebreak  string
	Paginated bool
	Columns   []Column
	// KeyColumn identifies a row; it is used for card titles.
	KeyColumn    string
	EmptyMessage string
}

// OrderTerms returns Order with the tiebreak appended when it is not already a sort key.
func (d Definition) OrderTerms() []model.OrderTerm {
	out := make([]model.OrderTerm, 0, len(d.Order)+1)
	out = append(out, d.Order...)
	if d.Tiebreak == "" {
		return out
	}
	for _, o := range d.Order {
		if o.Column == d.Tiebreak {
			return out
		}
	}
	return append(out, model.OrderTerm{Column: d.Tiebreak})
}

var (
	errInvalidDefinition = errors.New("invalid report definition")
)

// Validate checks the invariants the query layer relies on.
func (d Definition) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w %q: %s", errInvalidDefinition, d.Slug, fmt.Sprintf(format, args...))
	}
	if d.Slug == "" {
		return fail("slug is required")
	}
	if d.View == "" {
		return fail("view is required")
	}
	if len(d.OrderTerms()) == 0 {
		return fail("at least one order column is required")
	}
	if d.Layout != LayoutTable && d.Layout != LayoutCards {
		return fail("unknown layout %q", d.Layout)
	}
	if len(d.Columns) == 0 {
		return fail("no columns")
	}
	seen := make(map[string]bool, len(d.Filters))
	for _, f := range d.Filters {
		if f.Param == "" || len(f.Columns) == 0 {
			return fail("filter needs a param and columns")
		}
		if seen[f.Param] {
			return fail("duplicate filter param %q", f.Param)
		}
		seen[f.Param] = true
		if f.Match == model.Equals && len(f.Columns) != 1 {
			return fail("equality filter %q must target one column", f.Param)
		}
		if f.Kind == Enum {
			if len(f.Allowed) == 0 {
				return fail("enum filter %q has no allowed values", f.Param)
			}
			if f.Default != "" && !contains(f.Allowed, f.Default) {
				return fail("enum filter %q default %q is not allowed", f.Param, f.Default)
			}
		}
	}
	for _, c := range d.Columns {
		if c.Bands != nil {
			b := *c.Bands
			if (!b.Inverted && b.Severe < b.Warning) || (b.Inverted && b.Severe > b.Warning) {
				return fail("column %q thresholds are out of order", c.Key)
			}
		}
	}
	return nil
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
