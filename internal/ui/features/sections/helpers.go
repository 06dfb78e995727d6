package sections

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/leapstack-labs/assetops/internal/section"
	"github.com/leapstack-labs/assetops/internal/sheet"
	"github.com/leapstack-labs/assetops/internal/table"
	"github.com/leapstack-labs/assetops/internal/ui/features/common"
	"github.com/leapstack-labs/assetops/internal/ui/features/common/components"
)

// buildSectionView assembles the section column for the session's table.
func (h *Handlers) buildSectionView(sec section.Section, sessionID string, flashes []common.Flash) (components.SectionView, error) {
	key := string(sec.Key)
	view := components.SectionView{
		Key:         key,
		Icon:        sec.Icon,
		Header:      sec.Header,
		UploadLabel: sec.UploadLabel,
		Accept:      strings.Join(sheet.Extensions, ","),
		Flashes:     flashes,
		EmptyInfo:   sec.EmptyInfo,
		ExportURL:   common.SectionPath(sec.Key) + "/export.csv",
		ExportLabel: sec.ExportLabel,
	}

	t, ok := h.store.Get(sessionID, sec.Key)
	if !ok {
		return view, nil
	}

	panel, err := buildPanel(sec, t)
	if err != nil {
		return view, err
	}
	view.HasTable = true
	view.Grid = buildGrid(sec, t)
	view.Panel = panel
	return view, nil
}

func buildGrid(sec section.Section, t *table.Table) components.GridView {
	cols := t.Columns()
	rows := make([]components.GridRow, t.Len())
	for i := range rows {
		values, _ := t.Row(i)
		cells := make([]components.GridCell, len(values))
		for j, v := range values {
			cells[j] = components.GridCell{
				Col:     j,
				Value:   v,
				Numeric: cols[j].Kind.Numeric(),
			}
		}
		rows[i] = components.GridRow{Index: i, Cells: cells}
	}

	return components.GridView{
		Key:     string(sec.Key),
		Icon:    sec.GridIcon,
		Title:   sec.GridTitle,
		Columns: cols,
		Rows:    rows,
	}
}

func buildPanel(sec section.Section, t *table.Table) (components.PanelView, error) {
	metrics, err := sec.Evaluate(t)
	if err != nil {
		return components.PanelView{}, err
	}

	panel := components.PanelView{
		Key:     string(sec.Key),
		Metrics: metrics,
	}
	if sec.Chart.Available(t) {
		panel.ChartTitle = sec.Chart.Title
		panel.ChartURL = fmt.Sprintf("%s/chart.svg?v=%s", common.SectionPath(sec.Key), fingerprint(t))
	}
	return panel, nil
}

// fingerprint changes whenever the table's content does, so a patched
// panel makes the browser fetch the redrawn chart.
func fingerprint(t *table.Table) string {
	h := fnv.New64a()
	_ = t.WriteCSV(h)
	return fmt.Sprintf("%x", h.Sum64())
}
