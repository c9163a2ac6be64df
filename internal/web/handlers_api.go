package web

import (
	"encoding/json"
	"net/http"

	"github.com/JonMunkholm/cardsort/internal/core"
	"github.com/JonMunkholm/cardsort/internal/logging"
	"github.com/go-chi/chi/v5"
)

// variantResponse is the JSON form of a registered variant.
type variantResponse struct {
	Key          string `json:"key"`
	Label        string `json:"label"`
	Description  string `json:"description"`
	ExportName   string `json:"export_name"`
	UserSortable bool   `json:"user_sortable"`
	FixedOrder   string `json:"fixed_order,omitempty"`
}

// handleListVariants returns every registered variant.
func (s *Server) handleListVariants(w http.ResponseWriter, r *http.Request) {
	defs := core.All()
	out := make([]variantResponse, len(defs))
	for i, def := range defs {
		out[i] = variantResponse{
			Key:          def.Info.Key,
			Label:        def.Info.Label,
			Description:  def.Info.Description,
			ExportName:   def.Info.ExportName,
			UserSortable: def.Info.UserSortable,
		}
		if !def.Info.UserSortable {
			out[i].FixedOrder = def.FixedSpec.String()
		}
	}
	writeJSON(w, r, out)
}

// handleProcess runs the whole pipeline on one uploaded file and returns the
// sorted CSV. Sort keys come from repeated sort=column:dir query parameters.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	variant := chi.URLParam(r, "variant")

	// Reject bad sort keys before reading the body
	spec, err := parseSortParams(r.URL.Query())
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	file, header, err := readUpload(w, r, s.cfg.Upload.MaxFileSize)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	defer file.Close()
	defer r.MultipartForm.RemoveAll()

	name, data, err := s.service.Process(r.Context(), variant, file, spec)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	logging.WithFields(r.Context(), "variant", variant).Info("file processed",
		"file", header.Filename,
		"bytes", len(data),
		"sort", spec.String(),
	)

	attachment(w, name, len(data))
	_, _ = w.Write(data)
}

// handleHealth reports liveness plus a few load figures.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]any{
		"status":        "ok",
		"sessions":      s.service.SessionCount(),
		"active_parses": s.service.Limiter().Active(),
	})
}

// writeJSON encodes v as JSON and writes it to w.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
	}
}
