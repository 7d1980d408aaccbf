package service

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/maxviazov/reporting-dashboard/internal/model"
	"github.com/maxviazov/reporting-dashboard/internal/report"
)

const (
	// DefaultPageSize applies when the configured size is not positive.
	DefaultPageSize = 5
	// maxTextLen caps free-text filters; longer input is truncated.
	maxTextLen = 100
	// maxOffset bounds the row window so OFFSET stays a positive 32-bit value.
	maxOffset = math.MaxInt32
)

// Normalize converts raw URL parameters into a complete query for def. It never fails:
// malformed values degrade to defaults.
func Normalize(def report.Definition, params url.Values, pageSize int) (model.ReportQuery, Params) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	q := model.ReportQuery{
		View:      def.View,
		Order:     def.OrderTerms(),
		Page:      1,
		PageSize:  pageSize,
		Paginated: def.Paginated,
	}
	if def.Paginated {
		q.Page = normalizePage(params.Get("page"), pageSize)
	}

	norm := make(Params, len(def.Filters))
	for _, f := range def.Filters {
		var v string
		switch f.Kind {
		case report.Enum:
			v = normalizeEnum(params.Get(f.Param), f.Allowed, f.Default)
		default:
			v = normalizeText(params.Get(f.Param))
		}
		if v == "" {
			continue
		}
		norm[f.Param] = v
		cols := make([]string, len(f.Columns))
		copy(cols, f.Columns)
		q.Predicates = append(q.Predicates, model.Predicate{Kind: f.Match, Columns: cols, Value: v})
	}
	return q, norm
}

// normalizePage parses a 1-based page number. Pages whose window would start past maxOffset,
// including digits too long for an int, clamp to the last reachable page.
func normalizePage(raw string, pageSize int) int {
	last := maxOffset/pageSize + 1
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case errors.Is(err, strconv.ErrRange) && n > 0:
		return last
	case err != nil || n <= 0:
		return 1
	case n > last:
		return last
	}
	return n
}

// normalizeEnum returns the canonical allowed value matching raw, or def.
func normalizeEnum(raw string, allowed []string, def string) string {
	s := strings.TrimSpace(raw)
	for _, a := range allowed {
		if strings.EqualFold(a, s) {
			return a
		}
	}
	return def
}

func normalizeText(raw string) string {
	s := strings.TrimSpace(raw)
	if r := []rune(s); len(r) > maxTextLen {
		s = strings.TrimSpace(string(r[:maxTextLen]))
	}
	return s
}
