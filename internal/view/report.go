package view

import (
	"fmt"
	"strings"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/maxviazov/reporting-dashboard/internal/model"
	"github.com/maxviazov/reporting-dashboard/internal/report"
	"github.com/maxviazov/reporting-dashboard/internal/service"
)

// ReportPage renders one page of a report.
func ReportPage(reports []report.Definition, p service.Page) Node {
	def := p.Report
	var content Node
	switch {
	case len(p.Rows) == 0:
		label, href := clearLink(def, p.Params)
		content = emptyStateCard(EmptyMessage(def, p.Params), label, href)
	case def.Layout == report.LayoutCards:
		content = cardGrid(def, p.Rows)
	default:
		content = dataTable(def, p.Rows)
	}
	return appPage(def.Title, def.Slug, reports,
		reportHeader(def),
		filterCard(def, p.Params),
		content,
		paginationCard(def, p),
	)
}

// ErrorPage renders a failure in place of the report body.
func ErrorPage(reports []report.Definition, def *report.Definition, title, message string) Node {
	active := ""
	var header Node
	if def != nil {
		active = def.Slug
		header = reportHeader(*def)
	}
	return appPage(title, active, reports,
		header,
		Div(
			Class(cardClass("flash-error")),
			H2(Text(title)),
			P(Text(message)),
			P(A(Href("/"), Text("Back to reports"))),
		),
	)
}

// EmptyMessage names the active filters when they explain the empty result.
func EmptyMessage(def report.Definition, params service.Params) string {
	if len(params) == 0 {
		if def.EmptyMessage != "" {
			return def.EmptyMessage
		}
		return "No results."
	}
	parts := make([]string, 0, len(params))
	for _, f := range def.Filters {
		if v := params.Get(f.Param); v != "" {
			parts = append(parts, fmt.Sprintf("%s %q", strings.ToLower(f.Label), v))
		}
	}
	return "No results for " + strings.Join(parts, ", ") + "."
}

func clearLink(def report.Definition, params service.Params) (string, string) {
	if len(params) == 0 {
		return "", ""
	}
	for _, f := range def.Filters {
		if f.Kind == report.FreeText && params.Get(f.Param) != "" {
			return "Clear filters", ReportHref(def.Slug)
		}
	}
	return "", ""
}

func reportHeader(def report.Definition) Node {
	return Header(
		Class("report-header"),
		P(Class(mutedClass()), Textf("%s · Report %d", def.Category, def.Number)),
		H1(Class("page-title"), Text(def.Title)),
		P(Class(mutedClass()), Text(def.Description)),
	)
}

func filterCard(def report.Definition, params service.Params) Node {
	if len(def.Filters) == 0 {
		return nil
	}
	controls := make([]Node, 0, len(def.Filters)+1)
	var quick []Node
	for _, f := range def.Filters {
		id := "filter-" + f.Param
		current := params.Get(f.Param)
		switch f.Kind {
		case report.Enum:
			opts := make([]Node, 0, len(f.Allowed))
			for _, a := range f.Allowed {
				opts = append(opts, Option(Value(a), Text(a), If(a == current, Selected())))
			}
			controls = append(controls, Label(For(id), Text(f.Label)), Select(ID(id), Name(f.Param), Class("form-control"), Group(opts)))
		default:
			controls = append(controls,
				Label(For(id), Text(f.Label)),
				Input(ID(id), Type("search"), Name(f.Param), Value(current), Placeholder(f.Placeholder), Class("form-control"), AutoComplete("off")),
			)
		}
		for _, o := range f.Options {
			q := service.Params{}
			for k, v := range params {
				q[k] = v
			}
			q[f.Param] = o
			className := "btn btn-sm"
			if strings.EqualFold(o, current) {
				className += " btn-primary"
			}
			quick = append(quick, A(Href(ReportHref(def.Slug)+"?"+q.Encode(1)), Class(className), Text(o)))
		}
	}
	controls = append(controls, Button(Type("submit"), Class("btn btn-primary"), Text("Apply")))
	return Div(
		Class(cardClass("toolbar")),
		Form(Method("get"), Action(ReportHref(def.Slug)), Group(controls)),
		If(len(quick) > 0, Div(Class("quick-filters"), Group(quick))),
	)
}

func dataTable(def report.Definition, rows []model.DisplayRow) Node {
	head := make([]Node, 0, len(def.Columns))
	for _, c := range def.Columns {
		head = append(head, Th(Text(c.Label)))
	}
	body := make([]Node, 0, len(rows))
	for _, r := range rows {
		cells := make([]Node, 0, len(r.Cells))
		for _, c := range r.Cells {
			cells = append(cells, Td(Attr("data-key", c.Key), cellContent(c)))
		}
		body = append(body, Tr(Group(cells)))
	}
	return Div(Class(cardClass("table-wrap")), Table(Class("data-table"), THead(Tr(Group(head))), TBody(Group(body))))
}

func cardGrid(def report.Definition, rows []model.DisplayRow) Node {
	cards := make([]Node, 0, len(rows))
	for _, r := range rows {
		var title model.Cell
		fields := make([]Node, 0, len(r.Cells))
		for _, c := range r.Cells {
			if c.Key == def.KeyColumn {
				title = c
				continue
			}
			fields = append(fields, Div(Class("card-field"), Span(Class(mutedClass()), Text(c.Label)), Div(cellContent(c))))
		}
		cards = append(cards, Article(
			Class(cardClass("report-card")),
			H3(Text(title.Text)),
			If(title.Detail != "", P(Class(mutedClass()), Text(title.Detail))),
			Group(fields),
		))
	}
	return Div(Class("card-grid"), Group(cards))
}

func paginationCard(def report.Definition, p service.Page) Node {
	res := p.Result
	if !def.Paginated {
		return P(Class(mutedClass()), Textf("%d rows.", len(res.Rows)))
	}
	summary := fmt.Sprintf("Page %d", res.Page)
	if pages := res.TotalPages(); pages > 0 {
		summary = fmt.Sprintf("Page %d of %d · %d rows", res.Page, pages, *res.Total)
	}
	base := ReportHref(def.Slug) + "?"
	var prev, next Node
	if res.HasPrev() {
		prev = A(Href(base+p.Params.Encode(res.Page-1)), Class("btn"), Attr("rel", "prev"), Text("<- Previous"))
	}
	if res.HasNext() {
		next = A(Href(base+p.Params.Encode(res.Page+1)), Class("btn"), Attr("rel", "next"), Text("Next ->"))
	}
	return Div(
		Class(cardClass("pagination")),
		Div(prev),
		P(Class(mutedClass()), Text(summary)),
		Div(next),
	)
}
