// Package loader owns the currently loaded ReqIF source: it unpacks plain,
// compressed and .reqifz inputs, keeps an immutable copy of the raw bytes,
// notifies subscribers of changes and resolves XHTML object payloads.
package loader

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/ReqIF/core/cache"
	"github.com/FocuswithJustin/ReqIF/core/errors"
	"github.com/FocuswithJustin/ReqIF/core/reqif"
	"github.com/FocuswithJustin/ReqIF/core/xhtml"
	"github.com/FocuswithJustin/ReqIF/internal/logging"
	"github.com/FocuswithJustin/ReqIF/internal/validation"
)

// Options configures a Loader.
type Options struct {
	// Logger receives load events. Nil uses the global logger.
	Logger *slog.Logger

	// BaseDir resolves relative object references of uncompressed sources.
	// LoadFile defaults it to the directory of the file.
	BaseDir string

	// Store persists computed data URIs. Optional.
	Store *PayloadStore

	// Codec decodes documents. Nil builds one with Logger.
	Codec *reqif.Codec
}

// state is the loaded snapshot. It is replaced wholesale, never mutated.
type state struct {
	name      string
	digest    string
	container Container
	source    []byte
	documents []*reqif.ReqIF
	entries   []string
	archive   *zip.Reader
	baseDir   string
	payloads  *cache.Cache[xhtml.ExternalObject, string]
}

// Loader holds at most one loaded source at a time.
type Loader struct {
	logger  *slog.Logger
	codec   *reqif.Codec
	store   *PayloadStore
	baseDir string

	loadMu sync.Mutex // serialises Load and Reset
	mu     sync.RWMutex
	cur    state

	subs subscribers
}

// New creates an empty loader.
func New(opts Options) *Loader {
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetLogger()
	}
	codec := opts.Codec
	if codec == nil {
		codec = reqif.NewCodec(reqif.Options{Logger: logger})
	}
	return &Loader{
		logger:  logger,
		codec:   codec,
		store:   opts.Store,
		baseDir: opts.BaseDir,
	}
}

// Digest returns the hex BLAKE3-256 digest of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Load reads r completely, decodes it and replaces the loaded state. On error
// the previous state is kept and no event fires.
func (l *Loader) Load(ctx context.Context, r io.Reader, name string) error {
	return l.load(ctx, r, name, l.baseDir)
}

// LoadFile loads the file at path.
func (l *Loader) LoadFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.NewIO("open", path, err)
	}
	defer f.Close()

	base := l.baseDir
	if base == "" {
		base = filepath.Dir(path)
	}
	return l.load(ctx, f, filepath.Base(path), base)
}

func (l *Loader) load(ctx context.Context, r io.Reader, name, baseDir string) error {
	l.loadMu.Lock()
	defer l.loadMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	ctx = logging.WithDocument(ctx, name)
	logger := logging.LoggerFromContext(ctx, l.logger)

	data, err := validation.ReadAllLimited(r, validation.MaxSourceSize)
	if err != nil {
		return errors.NewIO("read", name, err)
	}

	dec, err := decode(ctx, l.codec, data)
	if err != nil {
		return errors.Wrapf(err, "load %s", name)
	}

	next := state{
		name:      name,
		digest:    Digest(data),
		container: dec.container,
		source:    data,
		documents: dec.documents,
		entries:   dec.entries,
		archive:   dec.archive,
		baseDir:   baseDir,
		payloads: cache.New[xhtml.ExternalObject, string](cache.Config[string]{
			SizeFunc: func(v string) int64 { return int64(len(v)) },
		}),
	}

	l.mu.Lock()
	l.cur = next
	l.mu.Unlock()

	logging.LoadEvent(logger, EventLoaded.String(), name,
		"container", string(next.container),
		"digest", next.digest,
		"documents", len(next.documents),
		"bytes", len(data))
	logging.Timing(logger, "load", start)

	l.subs.notify(Event{
		Kind:      EventLoaded,
		Name:      name,
		Digest:    next.digest,
		Container: next.container,
		Documents: len(next.documents),
	})
	return nil
}

// Reset drops the loaded state, its payload cache and the source copy.
func (l *Loader) Reset() {
	l.loadMu.Lock()
	defer l.loadMu.Unlock()

	l.mu.Lock()
	name := l.cur.name
	l.cur = state{}
	l.mu.Unlock()

	logging.LoadEvent(l.logger, EventReset.String(), name)
	l.subs.notify(Event{Kind: EventReset, Name: name})
}

// Subscribe registers fn for change events and returns a function that
// removes it. Callbacks run synchronously after the state changed.
func (l *Loader) Subscribe(fn func(Event)) (unsubscribe func()) {
	return l.subs.add(fn)
}

func (l *Loader) snapshot() state {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cur
}

// Loaded reports whether a source is loaded.
func (l *Loader) Loaded() bool {
	return l.snapshot().digest != ""
}

// Name returns the name the current source was loaded under.
func (l *Loader) Name() string {
	return l.snapshot().name
}

// Digest returns the digest of the current source, or "" when nothing is loaded.
func (l *Loader) Digest() string {
	return l.snapshot().digest
}

// Container returns how the current source was packaged.
func (l *Loader) Container() Container {
	return l.snapshot().container
}

// Source returns a fresh reader over the raw bytes of the current source.
// Nothing loaded yields an empty reader.
func (l *Loader) Source() io.Reader {
	return bytes.NewReader(l.snapshot().source)
}

// Document returns the first decoded document, or nil.
func (l *Loader) Document() *reqif.ReqIF {
	docs := l.snapshot().documents
	if len(docs) == 0 {
		return nil
	}
	return docs[0]
}

// Documents returns every decoded document in archive order.
func (l *Loader) Documents() []*reqif.ReqIF {
	docs := l.snapshot().documents
	return append([]*reqif.ReqIF(nil), docs...)
}

// Entries returns the archive entry names the documents were read from.
// Empty for non-archive sources.
func (l *Loader) Entries() []string {
	return append([]string(nil), l.snapshot().entries...)
}

// CacheStats reports payload cache statistics for the current source.
func (l *Loader) CacheStats() cache.Stats {
	st := l.snapshot()
	if st.payloads == nil {
		return cache.Stats{}
	}
	return st.payloads.Stats()
}
