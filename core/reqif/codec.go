package reqif

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/FocuswithJustin/ReqIF/core/errors"
	"github.com/FocuswithJustin/ReqIF/internal/logging"
)

// DefaultIndent is the indentation used when Options.Indent is empty.
const DefaultIndent = "  "

// Options configures a Codec.
type Options struct {
	// Logger receives unknown-element warnings and debug timing notices.
	// Nil discards them.
	Logger *slog.Logger
	// Indent is the per-level indentation of written documents.
	Indent string
	// Compact disables indentation and line breaks.
	Compact bool
}

// Codec reads and writes ReqIF documents. A Codec holds no per-document
// state and may be shared; each call works on its own graph.
type Codec struct {
	logger *slog.Logger
	indent string
}

// NewCodec creates a codec.
func NewCodec(opts Options) *Codec {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	indent := opts.Indent
	if indent == "" {
		indent = DefaultIndent
	}
	if opts.Compact {
		indent = ""
	}
	return &Codec{logger: logger, indent: indent}
}

// Read decodes a document, blocking until the stream is consumed.
func (c *Codec) Read(r io.Reader) (*ReqIF, error) {
	return c.read(blocking{}, r)
}

// ReadContext decodes a document and stops with ctx's error as soon as ctx
// is done. No partial document is returned.
func (c *Codec) ReadContext(ctx context.Context, r io.Reader) (*ReqIF, error) {
	return c.read(cancellable{ctx: ctx}, r)
}

func (c *Codec) read(cp checkpoint, r io.Reader) (*ReqIF, error) {
	start := time.Now()
	doc, err := newReader(r, cp, c.logger).document()
	if err != nil {
		return nil, errors.Wrap(err, "read ReqIF")
	}
	logging.Timing(c.logger, "read", start,
		"spec_objects", len(doc.CoreContent.SpecObjects),
		"specifications", len(doc.CoreContent.Specifications))
	return doc, nil
}

// Write encodes doc, blocking until everything is written.
func (c *Codec) Write(w io.Writer, doc *ReqIF) error {
	return c.write(blocking{}, w, doc)
}

// WriteContext encodes doc and stops with ctx's error as soon as ctx is done.
func (c *Codec) WriteContext(ctx context.Context, w io.Writer, doc *ReqIF) error {
	return c.write(cancellable{ctx: ctx}, w, doc)
}

func (c *Codec) write(cp checkpoint, w io.Writer, doc *ReqIF) error {
	if doc == nil {
		return errors.NewSerialization("ReqIF", "", "", "Document")
	}
	start := time.Now()
	x := newXMLWriter(bufio.NewWriter(w), cp, c.indent)
	if err := (&writer{x: x}).document(doc); err != nil {
		return errors.Wrap(err, "write ReqIF")
	}
	if err := x.flush(); err != nil {
		return errors.NewIO("write", "", err)
	}
	logging.Timing(c.logger, "write", start)
	return nil
}
