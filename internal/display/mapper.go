// Package display turns raw view rows into presentation-ready cells.
// Nothing here computes business status; labels and ranks come from the views as-is.
package display

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/maxviazov/reporting-dashboard/internal/model"
	"github.com/maxviazov/reporting-dashboard/internal/report"
)

// Missing is rendered for null or unreadable values.
const Missing = "-"

// Mapper formats values for one locale and currency symbol. It is safe for concurrent use.
type Mapper struct {
	tag     language.Tag
	printer *message.Printer
	symbol  string
}

// NewMapper builds a mapper for a BCP 47 locale such as "es-MX".
func NewMapper(locale, currencySymbol string) (*Mapper, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &Mapper{tag: tag, printer: message.NewPrinter(tag), symbol: currencySymbol}, nil
}

// Locale returns the language tag the mapper formats for.
func (m *Mapper) Locale() language.Tag { return m.tag }

// Currency renders v with locale grouping and exactly digits fraction digits.
// Rounding happens before the sign is chosen so values that round to zero carry no minus.
func (m *Mapper) Currency(v float64, digits int) string {
	if digits < 0 {
		digits = 0
	}
	scale := math.Pow10(digits)
	v = math.Round(v*scale) / scale
	sign := ""
	if v < 0 {
		sign = "-"
	}
	return sign + m.symbol + m.decimal(math.Abs(v), digits, digits)
}

// Integer renders v rounded to a whole number with locale grouping.
func (m *Mapper) Integer(v float64) string {
	return m.decimal(math.Round(v), 0, 0)
}

// Decimal renders v with up to digits fraction digits.
func (m *Mapper) Decimal(v float64, digits int) string {
	return m.decimal(v, 0, digits)
}

func (m *Mapper) decimal(v float64, minDigits, maxDigits int) string {
	return m.printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(minDigits),
		number.MaxFractionDigits(maxDigits),
	))
}

// Classify places value into a severity band.
// Bounds are exclusive: with Severe 90 and Warning 75, 92 is severe, 90 is warning and 75 is normal.
// Inverted thresholds treat low values as bad and compare with <.
func Classify(value float64, t report.Thresholds) model.Band {
	if t.Inverted {
		switch {
		case value < t.Severe:
			return model.BandSevere
		case value < t.Warning:
			return model.BandWarning
		default:
			return model.BandNormal
		}
	}
	switch {
	case value > t.Severe:
		return model.BandSevere
	case value > t.Warning:
		return model.BandWarning
	default:
		return model.BandNormal
	}
}

// Status resolves a view-computed label to its display style.
func Status(raw string, styles map[string]report.StatusStyle, fallback *report.StatusStyle) report.StatusStyle {
	if s, ok := styles[raw]; ok {
		return s
	}
	if fallback != nil {
		return *fallback
	}
	return report.StatusStyle{Label: raw}
}

// Map renders every column of def for one row. The row is only read.
func (m *Mapper) Map(def report.Definition, row model.Row) model.DisplayRow {
	out := model.DisplayRow{Cells: make([]model.Cell, 0, len(def.Columns))}
	for _, col := range def.Columns {
		out.Cells = append(out.Cells, m.Cell(col, row))
	}
	return out
}

// MapAll maps rows in order.
func (m *Mapper) MapAll(def report.Definition, rows []model.Row) []model.DisplayRow {
	out := make([]model.DisplayRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, m.Map(def, r))
	}
	return out
}

// Cell renders a single column.
func (m *Mapper) Cell(col report.Column, row model.Row) model.Cell {
	cell := model.Cell{Key: col.Key, Label: col.Label, Text: Missing}
	if col.Secondary != "" {
		if v, ok := row[col.Secondary]; ok && v != nil {
			cell.Detail = m.text(v)
		}
	}

	v, ok := row[col.Key]
	if (!ok || v == nil) && col.Fallback != "" {
		v, ok = row[col.Fallback]
	}
	if !ok || v == nil {
		return cell
	}

	switch col.Format {
	case report.FormatText:
		cell.Text = m.text(v)
	case report.FormatStatus:
		st := Status(m.text(v), col.Statuses, col.DefaultStatus)
		cell.Text, cell.Tone = st.Label, st.Tone
	case report.FormatRank:
		f, ok := ToFloat(v)
		if !ok {
			break
		}
		rank := strconv.Itoa(int(math.Round(f)))
		cell.Text = rank
		if st, ok := col.Statuses[rank]; ok {
			cell.Tone = st.Tone
		}
	default:
		f, ok := ToFloat(v)
		if !ok {
			break
		}
		m.number(&cell, col, f)
	}
	return cell
}

func (m *Mapper) number(cell *model.Cell, col report.Column, f float64) {
	switch col.Format {
	case report.FormatCurrency:
		cell.Text = m.Currency(f, col.Digits)
	case report.FormatInteger:
		cell.Text = m.Integer(f)
	case report.FormatDecimal:
		cell.Text = m.Decimal(f, col.Digits)
	case report.FormatHours:
		cell.Text = m.Decimal(f, 1) + " h"
	case report.FormatPercent:
		digits := col.Digits
		if digits == 0 {
			digits = 1
		}
		cell.Text = m.Decimal(f, digits) + "%"
		if col.Bands != nil {
			p := math.Max(0, math.Min(100, f))
			cell.Percent = &p
			cell.Band = Classify(f, *col.Bands)
		}
	}
}

func (m *Mapper) text(v any) string {
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return Missing
		}
		return t
	case time.Time:
		return t.Format(time.DateOnly)
	case pgtype.Date:
		if !t.Valid {
			return Missing
		}
		return t.Time.Format(time.DateOnly)
	case pgtype.Numeric:
		f, ok := ToFloat(t)
		if !ok {
			return Missing
		}
		return m.Decimal(f, 2)
	case float32, float64:
		f, _ := ToFloat(t)
		return m.Decimal(f, 2)
	default:
		return fmt.Sprint(v)
	}
}

// ToFloat coerces the numeric shapes pgx hands back for view columns.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case pgtype.Numeric:
		if !n.Valid || n.NaN {
			return 0, false
		}
		f8, err := n.Float64Value()
		if err != nil || !f8.Valid {
			return 0, false
		}
		return f8.Float64, true
	case pgtype.Float8:
		return n.Float64, n.Valid
	case pgtype.Int8:
		return float64(n.Int64), n.Valid
	case pgtype.Int4:
		return float64(n.Int32), n.Valid
	default:
		return 0, false
	}
}
