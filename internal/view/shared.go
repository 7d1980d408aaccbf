// Package view renders dashboard pages as HTML with gomponents.
package view

import (
	"fmt"
	"io"
	"strings"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/maxviazov/reporting-dashboard/internal/model"
	"github.com/maxviazov/reporting-dashboard/internal/report"
)

// StaticPrefix is where the embedded stylesheet is served.
const StaticPrefix = "/static"

const appName = "Reporting Dashboard"

// Render writes a full document.
func Render(w io.Writer, page Node) error {
	return Doctype(page).Render(w)
}

// ReportHref is the page URL of a report.
func ReportHref(slug string) string { return "/reports/" + slug }

func appPage(title, active string, reports []report.Definition, body ...Node) Node {
	content := make([]Node, 0, len(body))
	for _, n := range body {
		if n != nil {
			content = append(content, n)
		}
	}
	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | "+appName)),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href(StaticPrefix+"/app.css")),
		),
		Body(
			Main(Class("app-shell"),
				Aside(
					Class("app-sidebar"),
					Div(
						Class("brand"),
						A(Href("/"), Strong(Text(appName))),
						P(Class(mutedClass()), Text("Read-only reports over database views")),
					),
					navigation(active, reports),
				),
				Section(
					Class("app-main"),
					Group(content),
				),
			),
		),
	)
}

func navigation(active string, reports []report.Definition) Node {
	nodes := make([]Node, 0, len(reports)+2)
	domain := ""
	for _, d := range reports {
		if d.Domain != domain {
			domain = d.Domain
			nodes = append(nodes, H2(Text(domainTitle(domain))))
		}
		className := "app-nav-link"
		if d.Slug == active {
			className += " active"
		}
		nodes = append(nodes, A(Href(ReportHref(d.Slug)), Class(className), Textf("%d. %s", d.Number, d.Title)))
	}
	return Nav(Class("app-nav"), Group(nodes))
}

func domainTitle(domain string) string {
	switch domain {
	case report.DomainHR:
		return "HR & Finance"
	case report.DomainAcademic:
		return "Academic"
	default:
		return domain
	}
}

func cardClass(extra ...string) string {
	parts := []string{"card"}
	parts = append(parts, extra...)
	return strings.Join(parts, " ")
}

func mutedClass() string {
	return "muted"
}

func emptyStateCard(message, ctaLabel, ctaHref string) Node {
	cta := Node(nil)
	if ctaLabel != "" && ctaHref != "" {
		cta = A(Href(ctaHref), Class("btn btn-primary"), Text(ctaLabel))
	}
	return Div(
		Class(cardClass("blankslate")),
		P(Class(mutedClass()), Text(message)),
		cta,
	)
}

func statusLabel(text string, tone model.Tone) Node {
	className := "Label"
	if tone != model.ToneNeutral {
		className += " Label--" + string(tone)
	}
	return Span(Class(className), Text(text))
}

func bar(percent float64, band model.Band) Node {
	className := "bar"
	if band != "" && band != model.BandNormal {
		className += " bar--" + string(band)
	}
	return Div(Class(className), Span(Style(fmt.Sprintf("width: %.1f%%", percent))))
}

// cellContent renders a mapped cell: status/rank cells as labels, percent cells with a bar.
func cellContent(c model.Cell) Node {
	var main Node = Text(c.Text)
	if c.Tone != model.ToneNeutral {
		main = statusLabel(c.Text, c.Tone)
	}
	var extra []Node
	if c.Percent != nil {
		extra = append(extra, bar(*c.Percent, c.Band))
	}
	if c.Detail != "" {
		extra = append(extra, Span(Class("cell-detail"), Text(c.Detail)))
	}
	return Group(append([]Node{main}, extra...))
}
