package view

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/maxviazov/reporting-dashboard/internal/report"
)

// IndexPage lists every report as a card, grouped by domain.
func IndexPage(reports []report.Definition) Node {
	sections := make([]Node, 0, 2)
	for _, domain := range []string{report.DomainHR, report.DomainAcademic} {
		cards := make([]Node, 0, len(reports))
		for _, d := range reports {
			if d.Domain != domain {
				continue
			}
			cards = append(cards, A(
				Href(ReportHref(d.Slug)),
				Class(cardClass("report-card")),
				P(Class(mutedClass()), Textf("Report %d · %s", d.Number, d.Category)),
				H3(Text(d.Title)),
				P(Text(d.Description)),
			))
		}
		if len(cards) == 0 {
			continue
		}
		sections = append(sections, Section(
			H2(Text(domainTitle(domain))),
			Div(Class("card-grid"), Group(cards)),
		))
	}
	if len(sections) == 0 {
		sections = append(sections, emptyStateCard("No reports are configured.", "", ""))
	}
	return appPage("Reports", "", reports,
		H1(Class("page-title"), Text("Reports")),
		P(Class(mutedClass()), Text("Select a report to open it.")),
		Group(sections),
	)
}
