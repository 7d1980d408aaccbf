// Package model contains the request-scoped shapes shared across layers.
// It stays lean: the only behavior here is pagination arithmetic.
package model

import "math"

// Row is one record as returned by a view. The view owns its schema.
type Row map[string]any

// PredicateKind tells the statement builder how to compare a column with the bound value.
type PredicateKind int

const (
	// Equals compares a single column with the value.
	Equals PredicateKind = iota
	// Contains is a case-insensitive substring match over one or more columns joined with OR.
	Contains
)

func (k PredicateKind) String() string {
	switch k {
	case Equals:
		return "equals"
	case Contains:
		return "contains"
	default:
		return "unknown"
	}
}

// Predicate narrows the rows of a view. Each predicate binds exactly one parameter.
type Predicate struct {
	Kind    PredicateKind
	Columns []string
	Value   string
}

// OrderTerm is one ORDER BY key.
type OrderTerm struct {
	Column string
	Desc   bool
}

// ReportQuery is built once per request from URL parameters and discarded afterwards.
type ReportQuery struct {
	View       string
	Predicates []Predicate
	Order      []OrderTerm
	Page       int
	PageSize   int
	Paginated  bool
}

// Limit returns the LIMIT of the page window.
func (q ReportQuery) Limit() int { return q.PageSize }

// Offset returns the OFFSET of the page window; pages are 1-based.
// A window that would not fit in an int saturates instead of wrapping negative.
func (q ReportQuery) Offset() int {
	if q.Page <= 1 || q.PageSize <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.PageSize {
		return math.MaxInt / q.PageSize * q.PageSize
	}
	return (q.Page - 1) * q.PageSize
}

// ReportPage carries the rows of one page and, when it was requested, the exact total.
type ReportPage struct {
	Rows     []Row
	Total    *int
	Page     int
	PageSize int
}

// HasNext reports whether another page exists.
// With a known total the answer is exact. Without it, a full page is taken as a hint that more rows
// follow, which is wrong when the total is an exact multiple of the page size.
func (p ReportPage) HasNext() bool {
	if p.PageSize <= 0 {
		return false
	}
	if p.Total != nil {
		return p.Page < p.TotalPages()
	}
	return len(p.Rows) == p.PageSize
}

// HasPrev reports whether a previous page exists.
func (p ReportPage) HasPrev() bool { return p.Page > 1 }

// TotalPages returns the number of pages, or 0 when the total is unknown.
func (p ReportPage) TotalPages() int {
	if p.Total == nil || p.PageSize <= 0 {
		return 0
	}
	n := *p.Total / p.PageSize
	if *p.Total%p.PageSize != 0 {
		n++
	}
	return n
}

// Band is a severity tier used for display styling only.
type Band string

const (
	BandNormal  Band = "normal"
	BandWarning Band = "warning"
	BandSevere  Band = "severe"
)

// Tone is the visual style attached to a cell.
type Tone string

const (
	ToneNeutral   Tone = ""
	ToneSuccess   Tone = "success"
	ToneAttention Tone = "attention"
	ToneDanger    Tone = "danger"
	ToneAccent    Tone = "accent"
	ToneGold      Tone = "gold"
	ToneSilver    Tone = "silver"
	ToneBronze    Tone = "bronze"
)

// Cell is a presentation-ready value.
type Cell struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Text  string `json:"text"`
	// Detail is a secondary line shown under Text, such as an id or an email.
	Detail string `json:"detail,omitempty"`
	Tone   Tone   `json:"tone,omitempty"`
	// Percent is set for bar cells and is clamped to [0, 100].
	Percent *float64 `json:"percent,omitempty"`
	Band    Band     `json:"band,omitempty"`
}

// DisplayRow is a mapped row, in column order.
type DisplayRow struct {
	Cells []Cell `json:"cells"`
}
