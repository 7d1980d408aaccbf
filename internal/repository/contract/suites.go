// Package contract holds storage-agnostic behavior suites for repository implementations.
package contract

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/maxviazov/reporting-dashboard/internal/model"
	"github.com/maxviazov/reporting-dashboard/internal/repository"
)

// Employee is a seed record behind vw_high_salary_analysis.
type Employee struct {
	FirstName  string
	LastName   string
	Position   string
	Department string
	Salary     float64
}

// Project is a seed record behind vw_active_projects.
type Project struct {
	Name   string
	Status string
	Hours  int
}

// Seeder loads fixture rows for one subtest.
type Seeder struct {
	Employees func(ctx context.Context, es []Employee) error
	Projects  func(ctx context.Context, ps []Project) error
}

// ViewFactory returns a fresh repository over empty fixture tables.
type ViewFactory func(t *testing.T) (repo repository.ViewRepository, seed Seeder, cleanup func())

// PingerFactory returns a readiness probe bound to the store under test.
type PingerFactory func(t *testing.T) (repository.Pinger, func())

const pageSize = 5

func salaryQuery(page int, search string) model.ReportQuery {
	return model.ReportQuery{
		View:       "vw_high_salary_analysis",
		Predicates: []model.Predicate{{Kind: model.Contains, Columns: []string{"first_name", "last_name"}, Value: search}},
		Order:      []model.OrderTerm{{Column: "salary", Desc: true}, {Column: "employee_id"}},
		Page:       page,
		PageSize:   pageSize,
		Paginated:  true,
	}
}

func employees(n int) []Employee {
	out := make([]Employee, n)
	for i := range out {
		out[i] = Employee{
			FirstName:  fmt.Sprintf("Emp%02d", i),
			LastName:   "Doe",
			Position:   "Analyst",
			Department: "Finance",
			// duplicate salaries on purpose so the tiebreak column decides the order
			Salary: float64(50000 + (i/2)*1000),
		}
	}
	return out
}

func fetchPage(t *testing.T, repo repository.ViewRepository, q model.ReportQuery) model.ReportPage {
	t.Helper()
	ctx := context.Background()
	rows, err := repo.Rows(ctx, q)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	total, err := repo.Count(ctx, q.View, q.Predicates)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	return model.ReportPage{Rows: rows, Total: &total, Page: q.Page, PageSize: q.PageSize}
}

func RunViewRepositoryContract(t *testing.T, makeRepo ViewFactory) {
	t.Helper()

	t.Run("rows_bounded_by_page_size", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		if err := seed.Employees(context.Background(), employees(12)); err != nil {
			t.Fatalf("seed: %v", err)
		}
		want := []int{5, 5, 2, 0}
		for i, n := range want {
			p := fetchPage(t, repo, salaryQuery(i+1, ""))
			if len(p.Rows) != n {
				t.Fatalf("page %d: want %d rows, got %d", i+1, n, len(p.Rows))
			}
			if *p.Total != 12 {
				t.Fatalf("page %d: want total 12, got %d", i+1, *p.Total)
			}
		}
	})

	t.Run("has_next_matches_next_page", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		if err := seed.Employees(context.Background(), employees(11)); err != nil {
			t.Fatalf("seed: %v", err)
		}
		for page := 1; page <= 4; page++ {
			cur := fetchPage(t, repo, salaryQuery(page, ""))
			next := fetchPage(t, repo, salaryQuery(page+1, ""))
			if cur.HasNext() != (len(next.Rows) > 0) {
				t.Fatalf("page %d: has_next=%v but next page has %d rows", page, cur.HasNext(), len(next.Rows))
			}
		}
	})

	t.Run("exact_multiple_has_no_phantom_page", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		if err := seed.Employees(context.Background(), employees(5)); err != nil {
			t.Fatalf("seed: %v", err)
		}
		p := fetchPage(t, repo, salaryQuery(1, ""))
		if p.HasNext() {
			t.Fatalf("exact count must not advertise a next page")
		}
		heuristic := model.ReportPage{Rows: p.Rows, Page: 1, PageSize: pageSize}
		if !heuristic.HasNext() {
			t.Fatalf("length heuristic expected to report a phantom page")
		}
	})

	t.Run("search_is_case_insensitive_substring", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		es := append(employees(3), Employee{FirstName: "Garcia", LastName: "Lopez", Position: "CFO", Department: "Finance", Salary: 120000})
		if err := seed.Employees(context.Background(), es); err != nil {
			t.Fatalf("seed: %v", err)
		}
		p := fetchPage(t, repo, salaryQuery(1, "garc"))
		if len(p.Rows) != 1 || *p.Total != 1 {
			t.Fatalf("want exactly one match, got rows=%d total=%d", len(p.Rows), *p.Total)
		}
		if p.Rows[0]["first_name"] != "Garcia" {
			t.Fatalf("unexpected row: %v", p.Rows[0])
		}
	})

	t.Run("empty_search_equals_no_filter", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		if err := seed.Employees(context.Background(), employees(7)); err != nil {
			t.Fatalf("seed: %v", err)
		}
		withEmpty := fetchPage(t, repo, salaryQuery(1, ""))
		unfiltered := salaryQuery(1, "")
		unfiltered.Predicates = nil
		without := fetchPage(t, repo, unfiltered)
		if *withEmpty.Total != *without.Total || len(withEmpty.Rows) != len(without.Rows) {
			t.Fatalf("empty search changed the result set")
		}
		for i := range without.Rows {
			if withEmpty.Rows[i]["employee_id"] != without.Rows[i]["employee_id"] {
				t.Fatalf("row %d differs", i)
			}
		}
	})

	t.Run("idempotent_ordering", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		if err := seed.Employees(context.Background(), employees(10)); err != nil {
			t.Fatalf("seed: %v", err)
		}
		for page := 1; page <= 2; page++ {
			a := fetchPage(t, repo, salaryQuery(page, ""))
			b := fetchPage(t, repo, salaryQuery(page, ""))
			if len(a.Rows) != len(b.Rows) {
				t.Fatalf("page %d length changed", page)
			}
			for i := range a.Rows {
				if a.Rows[i]["employee_id"] != b.Rows[i]["employee_id"] {
					t.Fatalf("page %d row %d changed between identical queries", page, i)
				}
			}
		}
	})

	t.Run("equality_filter", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ps := []Project{
			{Name: "E-commerce", Status: "active", Hours: 120},
			{Name: "Finance Dashboard", Status: "active", Hours: 90},
			{Name: "Legacy Port", Status: "on_hold", Hours: 10},
			{Name: "Sales AI", Status: "completed", Hours: 300},
		}
		if err := seed.Projects(context.Background(), ps); err != nil {
			t.Fatalf("seed: %v", err)
		}
		q := model.ReportQuery{
			View:       "vw_active_projects",
			Predicates: []model.Predicate{{Kind: model.Equals, Columns: []string{"status"}, Value: "active"}},
			Order:      []model.OrderTerm{{Column: "total_hours_worked", Desc: true}, {Column: "project_id"}},
			Page:       1,
			PageSize:   pageSize,
			Paginated:  true,
		}
		p := fetchPage(t, repo, q)
		if len(p.Rows) != 2 || *p.Total != 2 {
			t.Fatalf("want 2 active projects, got rows=%d total=%d", len(p.Rows), *p.Total)
		}
		if p.Rows[0]["project_name"] != "E-commerce" {
			t.Fatalf("unexpected order: %v", p.Rows[0]["project_name"])
		}
	})

	t.Run("missing_view_is_query_error", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		q := salaryQuery(1, "")
		q.View = "vw_does_not_exist"
		_, err := repo.Rows(context.Background(), q)
		if !errors.Is(err, repository.ErrViewNotFound) || !errors.Is(err, repository.ErrQuery) {
			t.Fatalf("expected ErrViewNotFound, got %v", err)
		}
		_, err = repo.Count(context.Background(), q.View, nil)
		if !errors.Is(err, repository.ErrViewNotFound) {
			t.Fatalf("expected ErrViewNotFound from count, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("ping failed: %v", err)
		}
	})
}
