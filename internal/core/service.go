package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/JonMunkholm/cardsort/internal/config"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session ids.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSuperseded is returned to an upload whose result was discarded
	// because a newer upload started for the same session.
	ErrSuperseded = errors.New("upload superseded by a newer one")
)

// Service owns the per-session pipeline state: the current dataset, the
// sort spec applied to it and the last error. Datasets live in memory only.
type Service struct {
	limiter       *UploadLimiter
	locale        language.Tag
	uploadTimeout time.Duration
	sessionTTL    time.Duration
	sweepInterval time.Duration
	maxKeys       int

	mu       sync.RWMutex
	sessions map[string]*session

	now func() time.Time
}

type session struct {
	id         string
	variant    string
	fileName   string
	dataset    Dataset
	hasData    bool
	spec       SortSpec
	sorted     bool
	parsed     int
	filtered   int
	err        error
	generation uint64
	lastSeen   time.Time
}

// UploadResult summarizes a successful upload.
type UploadResult struct {
	Variant  string
	FileName string
	Parsed   int // data rows read from the file
	Filtered int // rows dropped as noise
	Rows     int // rows kept
}

// SessionView is a read-only snapshot of a session for rendering.
type SessionView struct {
	ID       string
	Variant  VariantInfo
	FileName string
	Columns  []string
	Rows     [][]string
	Spec     SortSpec
	Sorted   bool
	Parsed   int
	Filtered int
	Err      error
}

// HasData reports whether there is at least one record to show or export.
func (v SessionView) HasData() bool { return len(v.Rows) > 0 }

// Banner returns the error text for the view, or "".
func (v SessionView) Banner() string { return BannerMessage(v.Err) }

// NewService creates a Service from the application config.
func NewService(cfg *config.Config) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}

	return &Service{
		limiter:       NewUploadLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime),
		locale:        ResolveLocale(cfg.Sort.Locale),
		uploadTimeout: cfg.Upload.Timeout,
		sessionTTL:    cfg.Session.TTL,
		sweepInterval: cfg.Session.CleanupInterval,
		maxKeys:       cfg.Sort.MaxKeys,
		sessions:      make(map[string]*session),
		now:           time.Now,
	}, nil
}

// Locale returns the collation locale used for sorting.
func (s *Service) Locale() language.Tag { return s.locale }

// Limiter exposes the upload limiter, mainly so shutdown can wait for it to drain.
func (s *Service) Limiter() *UploadLimiter { return s.limiter }

// MaxSortKeys returns how many sort keys a user may choose.
func (s *Service) MaxSortKeys() int { return s.maxKeys }

// ListVariants returns information about all registered variants.
func (s *Service) ListVariants() []VariantInfo {
	defs := All()
	infos := make([]VariantInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// NewSession creates an empty session and returns its id.
func (s *Service) NewSession(variant string) string {
	id := uuid.New().String()

	s.mu.Lock()
	s.sessions[id] = &session{id: id, variant: variant, lastSeen: s.now()}
	s.mu.Unlock()

	return id
}

// HasSession reports whether id names a live session.
func (s *Service) HasSession(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

// Upload parses r as the given variant and makes the result the session's
// dataset. Uploads for one session are last-write-wins: if a newer upload
// starts while this one parses, this result is dropped and ErrSuperseded is
// returned. A failed upload leaves the session with the error and no dataset.
func (s *Service) Upload(ctx context.Context, sessionID, variant, fileName string, r io.Reader) (UploadResult, error) {
	gen, err := s.beginUpload(sessionID, variant, fileName)
	if err != nil {
		return UploadResult{}, err
	}

	res, err := s.parse(ctx, variant, r)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return UploadResult{}, ErrSessionNotFound
	}
	if sess.generation != gen {
		slog.Debug("discarding superseded upload", "session", sessionID, "file", fileName)
		return UploadResult{}, ErrSuperseded
	}

	sess.lastSeen = s.now()
	if err != nil {
		sess.err = err
		return UploadResult{}, err
	}

	sess.dataset = res.Dataset
	sess.hasData = true
	sess.parsed = res.Parsed
	sess.filtered = res.Filtered

	return UploadResult{
		Variant:  variant,
		FileName: fileName,
		Parsed:   res.Parsed,
		Filtered: res.Filtered,
		Rows:     res.Dataset.Len(),
	}, nil
}

// beginUpload clears the session and claims a new generation for it.
func (s *Service) beginUpload(sessionID, variant, fileName string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return 0, ErrSessionNotFound
	}

	sess.generation++
	sess.variant = variant
	sess.fileName = fileName
	sess.dataset = Dataset{}
	sess.hasData = false
	sess.spec = SortSpec{}
	sess.sorted = false
	sess.parsed, sess.filtered = 0, 0
	sess.err = nil
	sess.lastSeen = s.now()

	return sess.generation, nil
}

// parse runs the variant's parse stages under the limiter and upload timeout.
func (s *Service) parse(ctx context.Context, variant string, r io.Reader) (ParseResult, error) {
	def, err := Lookup(variant)
	if err != nil {
		return ParseResult{}, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return ParseResult{}, err
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	return ParseAndFilter(ctx, def, r)
}

// Sort orders the session's dataset by spec and stores both. Variants with a
// fixed order ignore spec. Sorting a session without data is a no-op.
func (s *Service) Sort(ctx context.Context, sessionID string, spec SortSpec) error {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.RUnlock()
		return ErrSessionNotFound
	}
	gen, variant, ds, hasData := sess.generation, sess.variant, sess.dataset, sess.hasData
	s.mu.RUnlock()

	if !hasData {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	def, err := Lookup(variant)
	if err != nil {
		return err
	}
	effective := SpecFor(def, spec)
	sorted, err := SortFor(def, ds, effective, s.locale)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok = s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	if sess.generation != gen {
		return ErrSuperseded
	}

	sess.lastSeen = s.now()
	if err != nil {
		sess.err = err
		sess.dataset = Dataset{}
		sess.hasData = false
		return err
	}

	sess.dataset = sorted
	sess.spec = effective
	sess.sorted = true
	sess.err = nil
	return nil
}

// View returns a snapshot of the session.
func (s *Service) View(sessionID string) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return SessionView{}, ErrSessionNotFound
	}
	sess.lastSeen = s.now()

	view := SessionView{
		ID:       sess.id,
		FileName: sess.fileName,
		Spec:     sess.spec,
		Sorted:   sess.sorted,
		Parsed:   sess.parsed,
		Filtered: sess.filtered,
		Err:      sess.err,
	}
	if def, ok := Get(sess.variant); ok {
		view.Variant = def.Info
	} else {
		view.Variant = VariantInfo{Key: sess.variant}
	}
	if sess.hasData {
		view.Columns = append([]string(nil), sess.dataset.Columns...)
		view.Rows = sess.dataset.Rows()
	}
	return view, nil
}

// Export serializes the session's current dataset. It returns the download
// file name for the session's variant alongside the bytes.
func (s *Service) Export(sessionID string) (string, []byte, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return "", nil, ErrSessionNotFound
	}
	sess.lastSeen = s.now()
	variant, ds, hasData := sess.variant, sess.dataset, sess.hasData
	s.mu.Unlock()

	if !hasData {
		return "", nil, ErrNothingToExport
	}

	def, err := Lookup(variant)
	if err != nil {
		return "", nil, err
	}
	data, err := Serialize(ds)
	if err != nil {
		return "", nil, err
	}
	return def.Info.ExportName, data, nil
}

// Reset discards the session's dataset, spec and error. Any upload still
// parsing for the session is superseded.
func (s *Service) Reset(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	*sess = session{
		id:         sess.id,
		variant:    sess.variant,
		generation: sess.generation + 1,
		lastSeen:   s.now(),
	}
	return nil
}

// Fail records an upload that was rejected before parsing. Like a failed
// parse it leaves the session with the error and no dataset.
func (s *Service) Fail(sessionID string, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	*sess = session{
		id:         sess.id,
		variant:    sess.variant,
		generation: sess.generation + 1,
		err:        err,
		lastSeen:   s.now(),
	}
	return nil
}

// SetError shows err on the session without touching its dataset.
func (s *Service) SetError(sessionID string, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	sess.err = err
	sess.lastSeen = s.now()
	return nil
}

// Process runs the whole pipeline once without touching any session:
// parse, filter, normalize, sort and serialize.
func (s *Service) Process(ctx context.Context, variant string, r io.Reader, spec SortSpec) (string, []byte, error) {
	res, err := s.parse(ctx, variant, r)
	if err != nil {
		return "", nil, err
	}

	def, err := Lookup(variant)
	if err != nil {
		return "", nil, err
	}
	sorted, err := SortFor(def, res.Dataset, spec, s.locale)
	if err != nil {
		return "", nil, err
	}

	data, err := Serialize(sorted)
	if err != nil {
		return "", nil, err
	}
	return def.Info.ExportName, data, nil
}

// StartSessionJanitor sweeps idle sessions until ctx is cancelled.
func (s *Service) StartSessionJanitor(ctx context.Context) {
	if s.sweepInterval <= 0 || s.sessionTTL <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					slog.Debug("expired idle sessions", "count", n)
				}
			}
		}
	}()
}

// Sweep removes sessions idle for longer than the session TTL and returns
// how many were removed.
func (s *Service) Sweep() int {
	cutoff := s.now().Add(-s.sessionTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// SessionCount returns the number of live sessions.
func (s *Service) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
