package bundle

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"app-webserver/core/apperr"
	"app-webserver/core/metrics"

	"github.com/klauspost/compress/zip"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// IndexFile is the marker whose presence means an extraction is complete.
const IndexFile = "index.html"

// Bundle is a UI archive extracted to disk.
type Bundle struct {
	// Hash is the uppercase hex MD5 of the raw archive bytes.
	Hash string
	// Path is the absolute extraction directory, <root>/Temp/SPA/<Hash>.
	Path string
	// Index is the content of index.html, kept in memory for SPA fallback.
	Index []byte
}

// Store materializes a bundle under a storage root, once per Store.
type Store struct {
	root    string
	logger  *zap.Logger
	metrics *metrics.Registry

	mu     sync.Mutex
	bundle *Bundle
}

// extractions collapses concurrent materializations of the same target
// directory across Stores in one process.
var extractions singleflight.Group

// NewStore creates a Store rooted at the application storage folder.
// metrics may be nil.
func NewStore(root string, logger *zap.Logger, m *metrics.Registry) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{root: root, logger: logger, metrics: m}
}

// Hash returns the content hash used as the extraction directory name.
func Hash(data []byte) string {
	sum := md5.Sum(data)
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// SpaRoot is the directory holding every extraction, <root>/Temp/SPA.
func (s *Store) SpaRoot() string {
	return filepath.Join(s.root, "Temp", "SPA")
}

// Current returns the materialized bundle, or an InvalidState error before
// the first successful Materialize.
func (s *Store) Current() (*Bundle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bundle == nil {
		return nil, apperr.New(apperr.KindInvalidState, "bundle has not been materialized")
	}
	return s.bundle, nil
}

// Materialize extracts src unless an extraction of the same content already
// exists, and closes src on success. Later calls return the cached Bundle and
// never touch src.
func (s *Store) Materialize(src io.ReadCloser) (*Bundle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bundle != nil {
		return s.bundle, nil
	}
	if s.root == "" {
		return nil, apperr.New(apperr.KindStorageUnavailable, "storage root is not configured")
	}
	if src == nil {
		return nil, apperr.New(apperr.KindInvalidState, "bundle stream is nil")
	}

	data, err := io.ReadAll(src)
	if err != nil {
		if errors.Is(err, os.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
			return nil, apperr.Wrap(apperr.KindInvalidState, err, "bundle stream already disposed")
		}
		return nil, apperr.Wrap(apperr.KindStorageUnavailable, err, "read bundle stream")
	}
	if len(data) == 0 {
		return nil, apperr.New(apperr.KindInvalidState, "bundle stream is empty or already consumed")
	}

	hash := Hash(data)
	target := filepath.Join(s.SpaRoot(), hash)
	if abs, err := filepath.Abs(target); err == nil {
		target = abs
	}

	v, err, _ := extractions.Do(target, func() (any, error) {
		return s.materialize(data, hash, target)
	})
	if err != nil {
		return nil, err
	}

	_ = src.Close()
	s.bundle = v.(*Bundle)
	return s.bundle, nil
}

func (s *Store) materialize(data []byte, hash, target string) (*Bundle, error) {
	marker := filepath.Join(target, IndexFile)

	_, err := os.Stat(marker)
	switch {
	case err == nil:
		s.logger.Debug("Bundle cache hit", zap.String("hash", hash), zap.String("path", target))
		s.count("hit")
	case errors.Is(err, fs.ErrNotExist):
		s.count("miss")
		if err := s.purge(); err != nil {
			return nil, err
		}
		files, err := extract(data, target)
		if err != nil {
			_ = os.RemoveAll(target)
			return nil, err
		}
		s.logger.Info("Extracted UI bundle",
			zap.String("hash", hash),
			zap.String("path", target),
			zap.Int("files", files))
	default:
		return nil, apperr.Wrap(apperr.KindStorageUnavailable, err, "stat %s", marker)
	}

	index, err := os.ReadFile(marker)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			_ = os.RemoveAll(target)
			return nil, apperr.New(apperr.KindArchiveCorrupt, "bundle has no %s", IndexFile)
		}
		return nil, apperr.Wrap(apperr.KindStorageUnavailable, err, "read %s", marker)
	}

	return &Bundle{Hash: hash, Path: target, Index: index}, nil
}

// purge removes every previous extraction so only one version stays on disk.
func (s *Store) purge() error {
	spaRoot := s.SpaRoot()
	entries, err := os.ReadDir(spaRoot)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperr.Wrap(apperr.KindStorageUnavailable, err, "list %s", spaRoot)
	}
	for _, e := range entries {
		p := filepath.Join(spaRoot, e.Name())
		if err := os.RemoveAll(p); err != nil {
			s.logger.Warn("Failed to remove stale bundle", zap.String("path", p), zap.Error(err))
		}
	}
	return nil
}

func (s *Store) count(result string) {
	if s.metrics != nil {
		s.metrics.Extractions.WithLabelValues(result).Inc()
	}
}

// extract writes every archive entry below target and returns the file count.
func extract(data []byte, target string) (int, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, apperr.Wrap(apperr.KindArchiveCorrupt, err, "open bundle archive")
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return 0, apperr.Wrap(apperr.KindStorageUnavailable, err, "create %s", target)
	}

	files := 0
	for _, f := range zr.File {
		name := filepath.FromSlash(strings.ReplaceAll(f.Name, `\`, "/"))
		if !filepath.IsLocal(name) {
			return files, apperr.New(apperr.KindArchiveCorrupt, "illegal entry path %q", f.Name)
		}
		dest := filepath.Join(target, name)

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return files, apperr.Wrap(apperr.KindStorageUnavailable, err, "create %s", dest)
			}
			continue
		}
		if err := extractFile(f, dest); err != nil {
			return files, err
		}
		files++
	}
	return files, nil
}

func extractFile(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return apperr.Wrap(apperr.KindStorageUnavailable, err, "create %s", filepath.Dir(dest))
	}

	rc, err := f.Open()
	if err != nil {
		return apperr.Wrap(apperr.KindArchiveCorrupt, err, "open entry %s", f.Name)
	}
	defer rc.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return apperr.Wrap(apperr.KindStorageUnavailable, err, "create %s", dest)
	}

	r := &trackedReader{r: rc}
	_, copyErr := io.Copy(out, r)
	closeErr := out.Close()
	if copyErr != nil {
		if r.err != nil {
			return apperr.Wrap(apperr.KindArchiveCorrupt, copyErr, "decompress entry %s", f.Name)
		}
		return apperr.Wrap(apperr.KindStorageUnavailable, copyErr, "write %s", dest)
	}
	if closeErr != nil {
		return apperr.Wrap(apperr.KindStorageUnavailable, closeErr, "write %s", dest)
	}
	return nil
}

// trackedReader remembers read-side failures so decompression errors can be
// told apart from disk write errors after io.Copy.
type trackedReader struct {
	r   io.Reader
	err error
}

func (t *trackedReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF {
		t.err = err
	}
	return n, err
}
