package service_test

import (
	"math"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/reporting-dashboard/internal/model"
	"github.com/maxviazov/reporting-dashboard/internal/report"
	"github.com/maxviazov/reporting-dashboard/internal/service"
)

func def(t *testing.T, slug string) report.Definition {
	t.Helper()
	d, ok := report.Default().Get(slug)
	require.True(t, ok, slug)
	return d
}

func TestNormalize_Page(t *testing.T) {
	d := def(t, "high-salaries")
	const lastPage = math.MaxInt32/5 + 1
	cases := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-3", 1},
		{"1.5", 1},
		{" 2 ", 2},
		{"7", 7},
		{"429496730", lastPage},
		{"429496731", lastPage},
		{"3689348814741910324", lastPage},
		{"99999999999999999999999", lastPage},
	}
	for _, tc := range cases {
		t.Run("page="+tc.raw, func(t *testing.T) {
			q, _ := service.Normalize(d, url.Values{"page": {tc.raw}}, 5)
			assert.Equal(t, tc.want, q.Page)
			assert.Equal(t, 5, q.PageSize)
			assert.GreaterOrEqual(t, q.Page, 1)
			assert.GreaterOrEqual(t, q.Offset(), 0)
			assert.LessOrEqual(t, q.Offset(), math.MaxInt32)
		})
	}
}

func TestNormalize_HugePageIsPastTheEnd(t *testing.T) {
	q, _ := service.Normalize(def(t, "high-salaries"), url.Values{"page": {"3689348814741910324"}}, 5)
	total := 12
	page := model.ReportPage{Page: q.Page, PageSize: q.PageSize, Total: &total}
	assert.False(t, page.HasNext())
	assert.True(t, page.HasPrev())
}

func TestNormalize_UnpaginatedIgnoresPage(t *testing.T) {
	q, _ := service.Normalize(def(t, "department-metrics"), url.Values{"page": {"4"}}, 5)
	assert.Equal(t, 1, q.Page)
	assert.False(t, q.Paginated)
}

func TestNormalize_DefaultPageSize(t *testing.T) {
	q, _ := service.Normalize(def(t, "teacher-load"), nil, 0)
	assert.Equal(t, service.DefaultPageSize, q.PageSize)
	assert.Equal(t, 1, q.Page)
}

func TestNormalize_EnumFallback(t *testing.T) {
	d := def(t, "active-projects")
	active, _ := service.Normalize(d, url.Values{"status": {"active"}}, 5)

	for _, raw := range []string{"bogus", "", "  ", "DROP TABLE"} {
		t.Run(raw, func(t *testing.T) {
			q, p := service.Normalize(d, url.Values{"status": {raw}}, 5)
			assert.Equal(t, active, q)
			assert.Equal(t, "active", p.Get("status"))
		})
	}

	missing, _ := service.Normalize(d, url.Values{}, 5)
	assert.Equal(t, active, missing)
}

func TestNormalize_EnumCaseInsensitive(t *testing.T) {
	q, p := service.Normalize(def(t, "active-projects"), url.Values{"status": {" On_Hold "}}, 5)
	require.Len(t, q.Predicates, 1)
	assert.Equal(t, model.Predicate{Kind: model.Equals, Columns: []string{"status"}, Value: "on_hold"}, q.Predicates[0])
	assert.Equal(t, "on_hold", p.Get("status"))
}

func TestNormalize_FreeText(t *testing.T) {
	d := def(t, "high-salaries")

	q, p := service.Normalize(d, url.Values{"q": {"  garc "}}, 5)
	require.Len(t, q.Predicates, 1)
	assert.Equal(t, model.Contains, q.Predicates[0].Kind)
	assert.Equal(t, []string{"first_name", "last_name"}, q.Predicates[0].Columns)
	assert.Equal(t, "garc", q.Predicates[0].Value)
	assert.Equal(t, "garc", p.Get("q"))

	empty, ep := service.Normalize(d, url.Values{"q": {""}}, 5)
	none, _ := service.Normalize(d, url.Values{}, 5)
	assert.Equal(t, none, empty)
	assert.Empty(t, empty.Predicates)
	assert.Empty(t, ep)
}

func TestNormalize_TruncatesLongText(t *testing.T) {
	q, _ := service.Normalize(def(t, "high-salaries"), url.Values{"q": {strings.Repeat("ñ", 300)}}, 5)
	require.Len(t, q.Predicates, 1)
	assert.Len(t, []rune(q.Predicates[0].Value), 100)
}

func TestNormalize_TermIsEquality(t *testing.T) {
	q, _ := service.Normalize(def(t, "course-performance"), url.Values{"term": {"2025-1"}}, 5)
	require.Len(t, q.Predicates, 1)
	assert.Equal(t, model.Equals, q.Predicates[0].Kind)
}

func TestNormalize_OrderEndsWithTiebreak(t *testing.T) {
	for _, d := range report.Default().All() {
		q, _ := service.Normalize(d, nil, 5)
		require.NotEmpty(t, q.Order, d.Slug)
		assert.Equal(t, d.Tiebreak, q.Order[len(q.Order)-1].Column, d.Slug)
		assert.Equal(t, d.View, q.View)
	}
}

func TestNormalize_IgnoresUnknownParams(t *testing.T) {
	d := def(t, "teacher-load")
	q, p := service.Normalize(d, url.Values{"q": {"x"}, "evil": {"1"}}, 5)
	assert.Empty(t, q.Predicates)
	assert.Empty(t, p)
}

func TestParams_Encode(t *testing.T) {
	p := service.Params{"q": "garc ía", "status": "active"}
	assert.Equal(t, "q=garc+%C3%ADa&status=active", p.Encode(1))
	assert.Equal(t, "page=3&q=garc+%C3%ADa&status=active", p.Encode(3))
	assert.Equal(t, "", service.Params{}.Encode(1))
}
