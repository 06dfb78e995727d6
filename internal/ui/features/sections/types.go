// Package sections provides the upload, grid, metrics and export feature for
// each dashboard section.
package sections

// CellEdit is one grid cell change sent by the browser.
type CellEdit struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value string `json:"value"`
}

// EditSignals represents the signals sent from the frontend on cell change.
type EditSignals struct {
	Edit CellEdit `json:"edit"`
}
