package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportQuery_Offset(t *testing.T) {
	cases := []struct {
		name string
		q    ReportQuery
		want int
	}{
		{"first page", ReportQuery{Page: 1, PageSize: 5}, 0},
		{"zero page", ReportQuery{Page: 0, PageSize: 5}, 0},
		{"third page", ReportQuery{Page: 3, PageSize: 5}, 10},
		{"no page size", ReportQuery{Page: 4, PageSize: 0}, 0},
		{"saturates", ReportQuery{Page: 3689348814741910324, PageSize: 5}, math.MaxInt / 5 * 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.q.Offset())
		})
	}
}

func TestReportPage_HasNext(t *testing.T) {
	total := func(n int) *int { return &n }
	cases := []struct {
		name string
		p    ReportPage
		want bool
	}{
		{"more rows", ReportPage{Page: 1, PageSize: 5, Total: total(12)}, true},
		{"last partial page", ReportPage{Page: 3, PageSize: 5, Total: total(12)}, false},
		{"exact multiple", ReportPage{Page: 2, PageSize: 5, Total: total(10)}, false},
		{"empty", ReportPage{Page: 1, PageSize: 5, Total: total(0)}, false},
		{"far past the end", ReportPage{Page: 3689348814741910324, PageSize: 5, Total: total(12)}, false},
		{"max int page", ReportPage{Page: math.MaxInt, PageSize: 5, Total: total(12)}, false},
		{"unknown total full page", ReportPage{Rows: make([]Row, 5), Page: 1, PageSize: 5}, true},
		{"unknown total short page", ReportPage{Rows: make([]Row, 2), Page: 1, PageSize: 5}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.p.HasNext())
		})
	}
}

func TestReportPage_TotalPages(t *testing.T) {
	total := func(n int) *int { return &n }
	assert.Equal(t, 3, ReportPage{PageSize: 5, Total: total(12)}.TotalPages())
	assert.Equal(t, 2, ReportPage{PageSize: 5, Total: total(10)}.TotalPages())
	assert.Equal(t, 0, ReportPage{PageSize: 5, Total: total(0)}.TotalPages())
	assert.Equal(t, 0, ReportPage{PageSize: 5}.TotalPages())
}
