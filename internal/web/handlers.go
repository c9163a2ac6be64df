package web

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/cardsort/internal/core"
	"github.com/JonMunkholm/cardsort/internal/logging"
	"github.com/JonMunkholm/cardsort/internal/web/templates"
)

// handleIndex renders the page for the caller's session.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.View(sessionID(r))
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	// Keep the variant of the loaded file selected; fall back to the default
	selected := view.Variant.Key
	if _, ok := core.Get(selected); !ok {
		selected = s.cfg.Sort.DefaultVariant
	}

	params := templates.PageParams{
		Variants: s.service.ListVariants(),
		Selected: selected,
		View:     view,
		Banner:   view.Banner(),
		MaxKeys:  s.service.MaxSortKeys(),
	}
	if def, ok := core.Get(view.Variant.Key); ok && !def.Info.UserSortable {
		params.FixedOrder = def.FixedSpec.String()
	}

	render(r.Context(), w, templates.Page(params), http.StatusOK)
}

// handleUpload replaces the session's dataset with the uploaded file.
// Failures are shown in the page banner.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	log := logging.WithFields(r.Context(), "session", id)

	file, header, err := readUpload(w, r, s.cfg.Upload.MaxFileSize)
	if err != nil {
		log.Warn("upload rejected", "error", err)
		_ = s.service.Fail(id, err)
		redirectHome(w, r)
		return
	}
	defer file.Close()
	defer r.MultipartForm.RemoveAll()

	// Determine variant from the form
	variant := r.FormValue("variant")
	if variant == "" {
		variant = s.cfg.Sort.DefaultVariant
	}

	res, err := s.service.Upload(r.Context(), id, variant, header.Filename, file)
	switch {
	case errors.Is(err, core.ErrSuperseded):
		log.Info("upload superseded", "file", header.Filename)
	case err != nil:
		log.Warn("upload failed", "file", header.Filename, "variant", variant, "error", err)
	default:
		log.Info("upload parsed",
			"file", header.Filename,
			"variant", variant,
			"rows", res.Rows,
			"filtered", res.Filtered,
		)
	}

	redirectHome(w, r)
}

// handleSort applies the sort form to the session's dataset.
func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	if err := r.ParseForm(); err != nil {
		_ = s.service.SetError(id, err)
		redirectHome(w, r)
		return
	}

	view, err := s.service.View(id)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	// Edit the current spec slot by slot
	spec, err := buildSortSpec(view.Spec, r.PostForm, s.service.MaxSortKeys())
	if err != nil {
		_ = s.service.SetError(id, err)
		redirectHome(w, r)
		return
	}

	if err := s.service.Sort(r.Context(), id, spec); err != nil && !errors.Is(err, core.ErrSuperseded) {
		logging.WithFields(r.Context(), "session", id).Warn("sort failed", "spec", spec.String(), "error", err)
		// A processing failure is already recorded on the session.
		if !errors.Is(err, core.ErrProcessing) {
			_ = s.service.SetError(id, err)
		}
	}

	redirectHome(w, r)
}

// handleDownload streams the session's current dataset as CSV.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name, data, err := s.service.Export(sessionID(r))
	if err != nil {
		status := statusFor(err)
		// No link is shown for an empty dataset, so treat it as missing
		if errors.Is(err, core.ErrNothingToExport) {
			status = http.StatusNotFound
		}
		s.respondError(w, r, err, status)
		return
	}

	attachment(w, name, len(data))
	_, _ = w.Write(data)
}

// handleReset discards the session's dataset.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Reset(sessionID(r)); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	redirectHome(w, r)
}
