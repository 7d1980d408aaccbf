package report

import (
	"fmt"

	"github.com/maxviazov/reporting-dashboard/internal/model"
)

const (
	DomainHR       = "hr"
	DomainAcademic = "academic"
)

// ProjectStatuses are the values vw_active_projects exposes in its status column.
var ProjectStatuses = []string{"active", "completed", "on_hold"}

var (
	budgetBands     = &Thresholds{Severe: 90, Warning: 75}
	attendanceBands = &Thresholds{Severe: 80, Warning: 90, Inverted: true}
	passRateBands   = &Thresholds{Severe: 60, Warning: 75, Inverted: true}

	rankStyles = map[string]StatusStyle{
		"1": {Label: "1", Tone: model.ToneGold},
		"2": {Label: "2", Tone: model.ToneSilver},
		"3": {Label: "3", Tone: model.ToneBronze},
	}
)

// Catalog is an ordered, slug-indexed set of report definitions.
type Catalog struct {
	defs   []Definition
	bySlug map[string]int
}

// NewCatalog validates and indexes definitions.
func NewCatalog(defs ...Definition) (*Catalog, error) {
	c := &Catalog{defs: make([]Definition, 0, len(defs)), bySlug: make(map[string]int, len(defs))}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.bySlug[d.Slug]; dup {
			return nil, fmt.Errorf("%w %q: duplicate slug", errInvalidDefinition, d.Slug)
		}
		c.bySlug[d.Slug] = len(c.defs)
		c.defs = append(c.defs, d)
	}
	return c, nil
}

// Default returns the catalog shipped with the dashboard.
func Default() *Catalog {
	c, err := NewCatalog(append(HRReports(), AcademicReports()...)...)
	if err != nil {
		panic(err)
	}
	return c
}

// Get looks a report up by slug.
func (c *Catalog) Get(slug string) (Definition, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Definition{}, false
	}
	return c.defs[i], true
}

// All returns definitions in catalog order.
func (c *Catalog) All() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// HRReports are the HR and finance reports.
func HRReports() []Definition {
	return []Definition{
		{
			Slug:        "department-metrics",
			Number:      1,
			Domain:      DomainHR,
			Category:    "Finance",
			Title:       "Department Metrics",
			Description: "Headcount, monthly payroll and budget usage per department.",
			View:        "vw_department_metrics",
			Layout:      LayoutTable,
			Order:       []model.OrderTerm{{Column: "average_salary", Desc: true}},
			Tiebreak:    "department_id",
			KeyColumn:   "department_name",
			Columns: []Column{
				{Key: "department_name", Label: "Department", Secondary: "department_id"},
				{Key: "employee_count", Label: "Headcount", Format: FormatInteger},
				{Key: "average_salary", Label: "Average salary", Format: FormatCurrency},
				{Key: "total_monthly_payroll", Label: "Monthly payroll", Format: FormatCurrency},
				{Key: "budget_usage_pct", Label: "Budget usage", Format: FormatPercent, Bands: budgetBands},
			},
			EmptyMessage: "No departments found.",
		},
		{
			Slug:        "active-projects",
			Number:      2,
			Domain:      DomainHR,
			Category:    "Operations",
			Title:       "Project Portfolio",
			Description: "Projects by status with staffing and consumed hours.",
			View:        "vw_active_projects",
			Layout:      LayoutCards,
			Filters: []Filter{{
				Param:   "status",
				Label:   "Status",
				Kind:    Enum,
				Match:   model.Equals,
				Columns: []string{"status"},
				Allowed: ProjectStatuses,
				Default: "active",
				Options: ProjectStatuses,
			}},
			Order:     []model.OrderTerm{{Column: "total_hours_worked", Desc: true}},
			Tiebreak:  "project_id",
			Paginated: true,
			KeyColumn: "project_name",
			Columns: []Column{
				{Key: "project_name", Label: "Project", Secondary: "project_id"},
				{Key: "status", Label: "Status", Format: FormatStatus, Statuses: map[string]StatusStyle{
					"active":    {Label: "In progress", Tone: model.ToneSuccess},
					"completed": {Label: "Completed", Tone: model.ToneAccent},
					"on_hold":   {Label: "On hold", Tone: model.ToneAttention},
				}},
				{Key: "budget", Label: "Budget", Format: FormatCurrency},
				{Key: "assigned_employees", Label: "Team", Format: FormatInteger},
				{Key: "total_hours_worked", Label: "Total hours", Format: FormatHours},
			},
			EmptyMessage: "No projects with this status.",
		},
		{
			Slug:        "high-salaries",
			Number:      3,
			Domain:      DomainHR,
			Category:    "Human Resources",
			Title:       "Salary Analysis",
			Description: "Employees paid above the company average.",
			View:        "vw_high_salary_analysis",
			Layout:      LayoutTable,
			Filters: []Filter{{
				Param:       "q",
				Label:       "Employee",
				Kind:        FreeText,
				Match:       model.Contains,
				Columns:     []string{"first_name", "last_name"},
				Placeholder: "Search employee...",
			}},
			Order:     []model.OrderTerm{{Column: "salary", Desc: true}},
			Tiebreak:  "employee_id",
			Paginated: true,
			KeyColumn: "employee_id",
			Columns: []Column{
				{Key: "first_name", Label: "First name"},
				{Key: "last_name", Label: "Last name"},
				{Key: "position", Label: "Position"},
				{Key: "department_name", Label: "Department"},
				{Key: "salary", Label: "Salary", Format: FormatCurrency, Digits: 2},
				{Key: "salary_status", Label: "Category", Format: FormatStatus,
					Statuses:      map[string]StatusStyle{"High Earner": {Label: "Elite", Tone: model.ToneAttention}},
					DefaultStatus: &StatusStyle{Label: "Superior", Tone: model.ToneSuccess},
				},
			},
			EmptyMessage: "No employees found.",
		},
		{
			Slug:        "budget-health",
			Number:      4,
			Domain:      DomainHR,
			Category:    "Accounting",
			Title:       "Budget Control",
			Description: "Remaining funds per department with deficit alerts.",
			View:        "vw_budget_health",
			Layout:      LayoutTable,
			Filters: []Filter{{
				Param:       "dept",
				Label:       "Department",
				Kind:        FreeText,
				Match:       model.Contains,
				Columns:     []string{"department_name"},
				Placeholder: "Filter department...",
			}},
			Order:     []model.OrderTerm{{Column: "remaining_budget"}},
			Tiebreak:  "department_name",
			KeyColumn: "department_name",
			Columns: []Column{
				{Key: "department_name", Label: "Department"},
				{Key: "total_budget", Label: "Total budget", Format: FormatCurrency},
				{Key: "remaining_budget", Label: "Remaining", Format: FormatCurrency},
				{Key: "budget_status", Label: "Health", Format: FormatStatus, Statuses: map[string]StatusStyle{
					"Deficit":  {Label: "Deficit", Tone: model.ToneDanger},
					"Critical": {Label: "Critical", Tone: model.ToneDanger},
					"Warning":  {Label: "Warning", Tone: model.ToneAttention},
					"Healthy":  {Label: "Healthy", Tone: model.ToneSuccess},
				}},
			},
			EmptyMessage: "No departments found.",
		},
		{
			Slug:        "productivity-rank",
			Number:      5,
			Domain:      DomainHR,
			Category:    "Productivity",
			Title:       "Top Performers",
			Description: "Hours ranking per strategic project.",
			View:        "vw_employee_productivity_rank",
			Layout:      LayoutTable,
			Filters: []Filter{{
				Param:   "project",
				Label:   "Project",
				Kind:    FreeText,
				Match:   model.Contains,
				Columns: []string{"project_name"},
				Options: []string{"E-commerce Platform", "Finance Dashboard", "Sales Forecasting AI"},
			}},
			Order:     []model.OrderTerm{{Column: "project_name"}, {Column: "productivity_rank"}},
			Tiebreak:  "employee_id",
			KeyColumn: "full_name",
			Columns: []Column{
				{Key: "productivity_rank", Label: "Rank", Format: FormatRank, Statuses: rankStyles},
				{Key: "full_name", Label: "Employee", Fallback: "employee_name"},
				{Key: "project_name", Label: "Project"},
				{Key: "hours_worked", Label: "Hours", Format: FormatHours},
			},
			EmptyMessage: "No ranking for this project.",
		},
	}
}

// AcademicReports are the school reports.
func AcademicReports() []Definition {
	return []Definition{
		{
			Slug:        "course-performance",
			Number:      1,
			Domain:      DomainAcademic,
			Category:    "Academics",
			Title:       "Course Performance",
			Description: "Average grade and pass rate per course and term.",
			View:        "vw_course_performance",
			Layout:      LayoutTable,
			Filters: []Filter{{
				Param:       "term",
				Label:       "Term",
				Kind:        FreeText,
				Match:       model.Equals,
				Columns:     []string{"term"},
				Placeholder: "e.g. 2025-1",
			}},
			Order:     []model.OrderTerm{{Column: "average_grade", Desc: true}},
			Tiebreak:  "course_id",
			KeyColumn: "course_name",
			Columns: []Column{
				{Key: "course_name", Label: "Course", Secondary: "course_id"},
				{Key: "term", Label: "Term"},
				{Key: "enrolled_students", Label: "Students", Format: FormatInteger},
				{Key: "average_grade", Label: "Average grade", Format: FormatDecimal, Digits: 2},
				{Key: "pass_rate", Label: "Pass rate", Format: FormatPercent, Bands: passRateBands},
			},
			EmptyMessage: "No courses for this term.",
		},
		{
			Slug:        "teacher-load",
			Number:      2,
			Domain:      DomainAcademic,
			Category:    "Staff",
			Title:       "Teacher Load",
			Description: "Groups and students assigned to each teacher.",
			View:        "vw_teacher_load",
			Layout:      LayoutTable,
			Order:       []model.OrderTerm{{Column: "total_students", Desc: true}},
			Tiebreak:    "teacher_id",
			Paginated:   true,
			KeyColumn:   "teacher_name",
			Columns: []Column{
				{Key: "teacher_name", Label: "Teacher", Secondary: "teacher_id"},
				{Key: "groups_count", Label: "Groups", Format: FormatInteger},
				{Key: "total_students", Label: "Students", Format: FormatInteger},
				{Key: "load_status", Label: "Load", Format: FormatStatus, Statuses: map[string]StatusStyle{
					"Critical Overload": {Label: "Critical Overload", Tone: model.ToneDanger},
					"High Load":         {Label: "High Load", Tone: model.ToneAttention},
					"Normal":            {Label: "Normal", Tone: model.ToneSuccess},
				}},
			},
			EmptyMessage: "No teachers found.",
		},
		{
			Slug:        "students-at-risk",
			Number:      3,
			Domain:      DomainAcademic,
			Category:    "Student Success",
			Title:       "Students at Risk",
			Description: "Students with low grades or attendance.",
			View:        "vw_students_at_risk",
			Layout:      LayoutTable,
			Filters: []Filter{{
				Param:       "q",
				Label:       "Student",
				Kind:        FreeText,
				Match:       model.Contains,
				Columns:     []string{"student_name", "email"},
				Placeholder: "Search by name or email...",
			}},
			Order:     []model.OrderTerm{{Column: "average_grade"}},
			Tiebreak:  "student_id",
			Paginated: true,
			KeyColumn: "student_name",
			Columns: []Column{
				{Key: "student_name", Label: "Student", Secondary: "email"},
				{Key: "program", Label: "Program"},
				{Key: "average_grade", Label: "Average grade", Format: FormatDecimal, Digits: 2},
				{Key: "attendance_percentage", Label: "Attendance", Format: FormatPercent, Bands: attendanceBands},
				{Key: "risk_level", Label: "Risk", Format: FormatStatus, Statuses: map[string]StatusStyle{
					"High":   {Label: "High", Tone: model.ToneDanger},
					"Medium": {Label: "Medium", Tone: model.ToneAttention},
					"Low":    {Label: "Low", Tone: model.ToneSuccess},
				}},
			},
			EmptyMessage: "No students found.",
		},
		{
			Slug:        "attendance-by-group",
			Number:      4,
			Domain:      DomainAcademic,
			Category:    "Attendance",
			Title:       "Attendance Compliance",
			Description: "Attendance percentage per group, lowest first.",
			View:        "vw_attendance_by_group",
			Layout:      LayoutCards,
			Order:       []model.OrderTerm{{Column: "attendance_percentage"}},
			Tiebreak:    "group_id",
			KeyColumn:   "course_name",
			Columns: []Column{
				{Key: "course_name", Label: "Course", Secondary: "group_id"},
				{Key: "teacher_name", Label: "Teacher"},
				{Key: "total_classes_recorded", Label: "Records", Format: FormatInteger},
				{Key: "attendance_percentage", Label: "Attendance", Format: FormatPercent, Digits: 1, Bands: attendanceBands},
			},
			EmptyMessage: "No attendance records.",
		},
		{
			Slug:        "student-rank",
			Number:      5,
			Domain:      DomainAcademic,
			Category:    "Rankings",
			Title:       "Student Ranking",
			Description: "GPA ranking within each program.",
			View:        "vw_student_rank",
			Layout:      LayoutTable,
			Filters: []Filter{{
				Param:       "program",
				Label:       "Program",
				Kind:        FreeText,
				Match:       model.Contains,
				Columns:     []string{"program"},
				Placeholder: "Filter program...",
			}},
			Order:     []model.OrderTerm{{Column: "program"}, {Column: "program_rank"}},
			Tiebreak:  "student_id",
			KeyColumn: "student_name",
			Columns: []Column{
				{Key: "program_rank", Label: "Rank", Format: FormatRank, Statuses: rankStyles},
				{Key: "student_name", Label: "Student"},
				{Key: "program", Label: "Program"},
				{Key: "gpa", Label: "GPA", Format: FormatDecimal, Digits: 2},
			},
			EmptyMessage: "Select a program to see its ranking.",
		},
	}
}
