// Package components renders the dashboard markup.
//
// Views are html/template documents wrapped as templ components, so full
// pages and datastar fragment patches share one set of templates.
package components

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/assetops/internal/section"
	"github.com/leapstack-labs/assetops/internal/table"
	"github.com/leapstack-labs/assetops/internal/ui/features/common"
	"github.com/leapstack-labs/assetops/internal/ui/resources"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("components").
		Funcs(template.FuncMap{"static": resources.StaticPath}).
		ParseFS(templateFS, "templates/*.html"),
)

// PageData is everything a full section page renders.
type PageData struct {
	Site    common.Site
	Sidebar common.SidebarData
	IsDev   bool
	Section SectionView
}

// SectionView is the main column of a section page.
type SectionView struct {
	Key         string
	Icon        string
	Header      string
	UploadLabel string
	Accept      string
	Flashes     []common.Flash
	HasTable    bool
	EmptyInfo   string
	Grid        GridView
	Panel       PanelView
	ExportURL   string
	ExportLabel string
}

// GridView is the editable table.
type GridView struct {
	Key     string
	Icon    string
	Title   string
	Columns []table.Column
	Rows    []GridRow
}

// GridRow is one editable row.
type GridRow struct {
	Index int
	Cells []GridCell
}

// GridCell is one editable cell.
type GridCell struct {
	Col     int
	Value   string
	Numeric bool
}

// PanelView holds the metrics and the optional chart.
type PanelView struct {
	Key        string
	Metrics    []section.Metric
	ChartTitle string
	ChartURL   string
}

func render(name string, data any) templ.Component {
	return templ.FromGoHTML(templates.Lookup(name), data)
}

// Page renders a complete HTML document.
func Page(data PageData) templ.Component {
	return render("page", data)
}

// SectionBody renders the section column, element id "section-body".
func SectionBody(view SectionView) templ.Component {
	return render("section-body", view)
}

// Grid renders the editable table, element id "grid".
func Grid(view GridView) templ.Component {
	return render("grid", view)
}

// Panel renders metrics and chart, element id "panel".
func Panel(view PanelView) templ.Component {
	return render("panel", view)
}
