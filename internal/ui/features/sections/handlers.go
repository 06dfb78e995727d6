package sections

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/assetops/internal/chart"
	"github.com/leapstack-labs/assetops/internal/section"
	"github.com/leapstack-labs/assetops/internal/session"
	"github.com/leapstack-labs/assetops/internal/sheet"
	"github.com/leapstack-labs/assetops/internal/table"
	"github.com/leapstack-labs/assetops/internal/ui/features/common"
	"github.com/leapstack-labs/assetops/internal/ui/features/common/components"
	"github.com/leapstack-labs/assetops/internal/ui/notifier"
)

// DefaultMaxUploadBytes bounds an upload when the server sets no limit.
const DefaultMaxUploadBytes = 32 << 20

// Handlers provides HTTP handlers for the section feature.
type Handlers struct {
	store        *session.Store
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	site         common.Site
	maxUpload    int64
	logger       *slog.Logger
	isDev        bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps Deps) *Handlers {
	maxUpload := deps.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		store:        deps.Store,
		sessionStore: deps.SessionStore,
		notifier:     deps.Notifier,
		site:         deps.Site,
		maxUpload:    maxUpload,
		logger:       logger,
		isDev:        deps.IsDev,
	}
}

// section resolves the {section} URL parameter, answering 404 when unknown.
func (h *Handlers) section(w http.ResponseWriter, r *http.Request) (section.Section, bool) {
	sec, err := section.Lookup(chi.URLParam(r, "section"))
	if err != nil {
		http.NotFound(w, r)
		return section.Section{}, false
	}
	return sec, true
}

// table returns a copy of the caller's table for key.
func (h *Handlers) table(r *http.Request, key section.Key) (*table.Table, bool) {
	id, ok := common.LookupSessionID(h.sessionStore, r)
	if !ok {
		return nil, false
	}
	return h.store.Get(id, key)
}

// SectionPage renders the full page of one section.
func (h *Handlers) SectionPage(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.section(w, r)
	if !ok {
		return
	}

	sess, id := common.EnsureSession(h.sessionStore, r)
	flashes := common.TakeFlashes(sess)
	if err := sess.Save(r, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	view, err := h.buildSectionView(sec, id, flashes)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := components.PageData{
		Site:    h.site,
		Sidebar: common.BuildSidebar(sec.Key),
		IsDev:   h.isDev,
		Section: view,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.Page(data).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Upload parses a spreadsheet and stores it as the section's table, then
// redirects back to the section page with a flash message. A file that
// fails to parse leaves the previous table in place.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.section(w, r)
	if !ok {
		return
	}

	sess, id := common.EnsureSession(h.sessionStore, r)

	t, filename, err := h.readUpload(w, r)
	if err != nil {
		h.logger.Warn("upload failed",
			slog.String("section", string(sec.Key)),
			slog.String("file", filename),
			slog.String("error", err.Error()))
		common.AddError(sess, fmt.Sprintf("%s: %v", sec.ErrorPrefix, err))
	} else {
		h.store.Put(id, sec.Key, t)
		h.logger.Info("table uploaded",
			slog.String("section", string(sec.Key)),
			slog.String("file", filename),
			slog.Int("rows", t.Len()),
			slog.Int("columns", t.Width()))
		common.AddSuccess(sess, sec.Loaded)
		h.notifier.Broadcast(notifier.Topic(id, string(sec.Key)))
	}

	if err := sess.Save(r, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, common.SectionPath(sec.Key), http.StatusSeeOther)
}

func (h *Handlers) readUpload(w http.ResponseWriter, r *http.Request) (*table.Table, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", fmt.Errorf("file exceeds the %d MB upload limit", h.maxUpload>>20)
		}
		return nil, "", fmt.Errorf("invalid upload: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("no file selected: %w", err)
	}
	defer func() { _ = file.Close() }()

	t, err := sheet.Read(file, header.Filename)
	return t, header.Filename, err
}

// ExportCSV downloads the edited table as CSV.
func (h *Handlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.section(w, r)
	if !ok {
		return
	}

	t, ok := h.table(r, sec.Key)
	if !ok {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := t.WriteCSV(&buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": sec.ExportFilename(),
	}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

// ChartSVG renders the section's line chart.
func (h *Handlers) ChartSVG(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.section(w, r)
	if !ok {
		return
	}
	if sec.Chart == nil {
		http.NotFound(w, r)
		return
	}

	t, ok := h.table(r, sec.Key)
	if !ok {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := chart.LineSVG(&buf, t, sec.Chart, chart.Options{}); err != nil {
		if errors.Is(err, chart.ErrNotEnoughPoints) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// SectionUpdates is the long-lived SSE endpoint for a section page.
// It re-renders the section whenever its table changes in another request
// of the same session. It does not send initial state; SectionPage did.
func (h *Handlers) SectionUpdates(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.section(w, r)
	if !ok {
		return
	}

	id, ok := common.LookupSessionID(h.sessionStore, r)
	sse := datastar.NewSSE(w, r)
	if !ok {
		return
	}

	topic := notifier.Topic(id, string(sec.Key))
	updates := h.notifier.Subscribe(topic)
	defer h.notifier.Unsubscribe(topic, updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case _, open := <-updates:
			if !open {
				// Session expired.
				return
			}
			view, err := h.buildSectionView(sec, id, nil)
			if err != nil {
				_ = sse.ConsoleError(err)
				continue
			}
			if err := sse.PatchElementTempl(components.SectionBody(view)); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// EditCellSSE applies one cell edit and patches the metrics panel.
func (h *Handlers) EditCellSSE(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.section(w, r)
	if !ok {
		return
	}

	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals EditSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(fmt.Errorf("failed to read signals: %w", err))
		return
	}

	sse := datastar.NewSSE(w, r)
	edit := signals.Edit
	t, err := h.update(r, sec.Key, func(t *table.Table) error {
		return t.SetCell(edit.Row, edit.Col, edit.Value)
	})
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	panel, err := buildPanel(sec, t)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(components.Panel(panel)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// AddRowSSE appends an empty row and patches the grid and panel.
func (h *Handlers) AddRowSSE(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.section(w, r)
	if !ok {
		return
	}

	sse := datastar.NewSSE(w, r)
	t, err := h.update(r, sec.Key, func(t *table.Table) error {
		t.AppendRow()
		return nil
	})
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	h.patchGridAndPanel(sse, sec, t)
}

// DeleteRowSSE removes a row and patches the grid and panel.
func (h *Handlers) DeleteRowSSE(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.section(w, r)
	if !ok {
		return
	}

	row, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil {
		http.Error(w, "invalid row", http.StatusBadRequest)
		return
	}

	sse := datastar.NewSSE(w, r)
	t, err := h.update(r, sec.Key, func(t *table.Table) error {
		return t.DeleteRow(row)
	})
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	h.patchGridAndPanel(sse, sec, t)
}

// update mutates the caller's table and pings other listeners of it.
func (h *Handlers) update(r *http.Request, key section.Key, fn func(*table.Table) error) (*table.Table, error) {
	id, ok := common.LookupSessionID(h.sessionStore, r)
	if !ok {
		return nil, session.ErrNoTable
	}
	t, err := h.store.Update(id, key, fn)
	if err != nil {
		return nil, err
	}
	h.notifier.Broadcast(notifier.Topic(id, string(key)))
	return t, nil
}

func (h *Handlers) patchGridAndPanel(sse *datastar.ServerSentEventGenerator, sec section.Section, t *table.Table) {
	if err := sse.PatchElementTempl(components.Grid(buildGrid(sec, t))); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	panel, err := buildPanel(sec, t)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(components.Panel(panel)); err != nil {
		_ = sse.ConsoleError(err)
	}
}
