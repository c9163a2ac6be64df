package web

// handlers_common.go holds helpers shared by the page and API handlers.

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/cardsort/internal/core"
	"github.com/JonMunkholm/cardsort/internal/logging"
	"github.com/a-h/templ"
)

// render writes a component with the given status. The component is rendered
// into a buffer first so a template error never leaves a half-written page.
func render(ctx context.Context, w http.ResponseWriter, c templ.Component, status int) {
	buf := templ.GetBuffer()
	defer templ.ReleaseBuffer(buf)

	if err := c.Render(ctx, buf); err != nil {
		logging.FromContext(ctx).Error("render failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// redirectHome sends the browser back to the page after a form post.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// readUpload parses a multipart body capped at maxSize and returns the "file" part.
// The caller must close the file and remove the form.
func readUpload(w http.ResponseWriter, r *http.Request, maxSize int64) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, fmt.Errorf("file too large: %w", err)
		}
		return nil, nil, fmt.Errorf("%w: %v", errInvalidForm, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, errNoFile
	}
	return file, header, nil
}

// buildSortSpec turns the column0..N / dir0..N slots of the sort form into a
// spec, reusing current: filled slots update or extend it in order and any
// keys left over are removed. Blank slots are skipped.
func buildSortSpec(current core.SortSpec, form url.Values, maxKeys int) (core.SortSpec, error) {
	spec := current
	n := 0
	for i := 0; i < maxKeys; i++ {
		idx := strconv.Itoa(i)
		col := form.Get("column" + idx)
		if col == "" {
			continue
		}
		dir, err := core.ParseDirection(form.Get("dir" + idx))
		if err != nil {
			return current, err
		}

		key := core.SortKey{Column: col, Dir: dir}
		if n < spec.Len() {
			if spec, err = spec.Update(n, key); err != nil {
				return current, err
			}
		} else {
			spec = spec.Add(key)
		}
		n++
	}

	for spec.Len() > n {
		var err error
		if spec, err = spec.Remove(spec.Len() - 1); err != nil {
			return current, err
		}
	}
	return spec, nil
}

// parseSortParams reads repeated sort=column:dir query parameters.
func parseSortParams(q url.Values) (core.SortSpec, error) {
	spec := core.NewSortSpec()
	for _, raw := range q["sort"] {
		key, err := core.ParseSortKey(raw)
		if err != nil {
			return core.SortSpec{}, err
		}
		spec = spec.Add(key)
	}
	return spec, nil
}

// attachment sets the headers for a CSV download.
func attachment(w http.ResponseWriter, name string, size int) {
	w.Header().Set("Content-Type", core.ExportContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(size))
}
