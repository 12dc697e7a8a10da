// Command reqif inspects and rewrites ReqIF requirement exchange documents.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/ReqIF/core/errors"
	"github.com/FocuswithJustin/ReqIF/core/loader"
	"github.com/FocuswithJustin/ReqIF/core/reqif"
	"github.com/FocuswithJustin/ReqIF/core/sqlite"
	"github.com/FocuswithJustin/ReqIF/core/xhtml"
	"github.com/FocuswithJustin/ReqIF/internal/logging"
	"github.com/FocuswithJustin/ReqIF/internal/validation"
)

const version = "0.1.0"

// Injectable for tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Globals are flags shared by every command.
type Globals struct {
	LogLevel  string        `name:"log-level" help:"Log level (debug, info, warn, error)" default:"warn" env:"REQIF_LOG_LEVEL"`
	LogFormat string        `name:"log-format" help:"Log format (text, json)" default:"text" env:"REQIF_LOG_FORMAT"`
	CacheDB   string        `name:"cache-db" help:"SQLite database persisting object data URIs" type:"path" env:"REQIF_CACHE_DB"`
	Timeout   time.Duration `name:"timeout" help:"Abort loading after this long (0 disables)" default:"0s"`
}

// Commands defines the command-line interface for reqif.
type Commands struct {
	Globals

	Info      InfoCmd      `cmd:"" help:"Print header fields and content counts"`
	Roundtrip RoundtripCmd `cmd:"" help:"Read a document and write it back"`
	Text      TextCmd      `cmd:"" help:"Print the text of every XHTML value"`
	Objects   ObjectsCmd   `cmd:"" help:"List objects embedded in XHTML values"`
	Version   VersionCmd   `cmd:"" help:"Print version information"`
}

// CLI holds the parsed command line.
var CLI Commands

// logger builds the command logger on stderr.
func (g *Globals) logger() (*slog.Logger, error) {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(g.LogFormat)
	if err != nil {
		return nil, err
	}
	return logging.New(level, format, stderr), nil
}

// withTimeout returns the command context honoring --timeout.
func (g *Globals) withTimeout() (context.Context, context.CancelFunc) {
	if g.Timeout > 0 {
		return context.WithTimeout(context.Background(), g.Timeout)
	}
	return context.WithCancel(context.Background())
}

// open loads path into a new loader. The returned cleanup closes the payload
// store when one was opened.
func (g *Globals) open(ctx context.Context, path string) (*loader.Loader, func(), error) {
	logger, err := g.logger()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	opts := loader.Options{Logger: logger}
	if g.CacheDB != "" {
		store, err := loader.OpenPayloadStore(g.CacheDB)
		if err != nil {
			return nil, nil, err
		}
		opts.Store = store
		cleanup = func() { store.Close() }
	}

	l := loader.New(opts)
	if err := l.LoadFile(ctx, path); err != nil {
		cleanup()
		return nil, nil, err
	}
	return l, cleanup, nil
}

// InfoCmd prints a summary of a document.
type InfoCmd struct {
	Path string `arg:"" help:"ReqIF file (.reqif, .reqifz, .reqif.xz, .reqif.gz)" type:"existingfile"`
}

func (c *InfoCmd) Run(g *Globals) error {
	if err := validation.ValidatePath(c.Path); err != nil {
		return fmt.Errorf("invalid input path: %w", err)
	}
	ctx, cancel := g.withTimeout()
	defer cancel()

	l, cleanup, err := g.open(ctx, c.Path)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Fprintf(stdout, "Source:    %s (%s)\n", l.Name(), l.Container())
	fmt.Fprintf(stdout, "BLAKE3:    %s\n", l.Digest())
	entries := l.Entries()
	for i, doc := range l.Documents() {
		fmt.Fprintln(stdout)
		if i < len(entries) {
			fmt.Fprintf(stdout, "Entry:     %s\n", entries[i])
		}
		printInfo(stdout, doc)
	}
	return nil
}

func printInfo(w io.Writer, doc *reqif.ReqIF) {
	if h := doc.TheHeader; h != nil {
		fmt.Fprintf(w, "Title:     %s\n", h.Title)
		fmt.Fprintf(w, "Header:    %s\n", h.Identifier)
		if h.ReqIFVersion != "" {
			fmt.Fprintf(w, "Version:   %s\n", h.ReqIFVersion)
		}
		if h.SourceToolID != "" {
			fmt.Fprintf(w, "Tool:      %s\n", h.SourceToolID)
		}
		if !h.CreationTime.IsZero() {
			fmt.Fprintf(w, "Created:   %s\n", h.CreationTime.Format(time.RFC3339))
		}
	}
	c := doc.CoreContent
	if c == nil {
		return
	}
	fmt.Fprintf(w, "Datatypes:        %d\n", len(c.DataTypes))
	fmt.Fprintf(w, "Spec types:       %d\n", len(c.SpecTypes))
	fmt.Fprintf(w, "Spec objects:     %d\n", len(c.SpecObjects))
	fmt.Fprintf(w, "Spec relations:   %d\n", len(c.SpecRelations))
	fmt.Fprintf(w, "Specifications:   %d\n", len(c.Specifications))
	fmt.Fprintf(w, "Relation groups:  %d\n", len(c.SpecRelationGroups))
	fmt.Fprintf(w, "Tool extensions:  %d\n", len(doc.ToolExtensions))
}

// RoundtripCmd reads a document and writes it again.
type RoundtripCmd struct {
	Path    string `arg:"" help:"ReqIF file" type:"existingfile"`
	Out     string `help:"Output path (default: stdout)" type:"path"`
	Compact bool   `help:"Write without indentation"`
}

func (c *RoundtripCmd) Run(g *Globals) error {
	ctx, cancel := g.withTimeout()
	defer cancel()

	l, cleanup, err := g.open(ctx, c.Path)
	if err != nil {
		return err
	}
	defer cleanup()

	logger, err := g.logger()
	if err != nil {
		return err
	}
	codec := reqif.NewCodec(reqif.Options{Logger: logger, Compact: c.Compact})

	if c.Out == "" {
		return codec.WriteContext(ctx, stdout, l.Document())
	}
	if err := validation.ValidatePath(c.Out); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	f, err := os.Create(c.Out)
	if err != nil {
		return errors.NewIO("create", c.Out, err)
	}
	if err := codec.WriteContext(ctx, f, l.Document()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.NewIO("close", c.Out, err)
	}
	fmt.Fprintf(stderr, "Wrote %s\n", c.Out)
	return nil
}

// TextCmd prints XHTML values.
type TextCmd struct {
	Path   string `arg:"" help:"ReqIF file" type:"existingfile"`
	Markup bool   `help:"Print indented markup instead of plain text"`
}

func (c *TextCmd) Run(g *Globals) error {
	ctx, cancel := g.withTimeout()
	defer cancel()

	l, cleanup, err := g.open(ctx, c.Path)
	if err != nil {
		return err
	}
	defer cleanup()

	for _, doc := range l.Documents() {
		for _, v := range doc.XHTMLValues() {
			owner := ""
			if d := v.Definition(); d != nil {
				owner = d.Identity().LongName
				if owner == "" {
					owner = d.Identity().Identifier
				}
			}
			if !c.Markup {
				fmt.Fprintf(stdout, "%s: %s\n", owner, v.PlainText())
				continue
			}
			out, err := xhtml.Format(v.TheValue, "  ")
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "%s:\n%s\n", owner, out)
		}
	}
	return nil
}

// ObjectsCmd lists embedded objects.
type ObjectsCmd struct {
	Path    string `arg:"" help:"ReqIF file" type:"existingfile"`
	DataURI bool   `name:"data-uri" help:"Resolve each object and print it as a data URI"`
}

func (c *ObjectsCmd) Run(g *Globals) error {
	ctx, cancel := g.withTimeout()
	defer cancel()

	l, cleanup, err := g.open(ctx, c.Path)
	if err != nil {
		return err
	}
	defer cleanup()

	for _, doc := range l.Documents() {
		for _, v := range doc.XHTMLValues() {
			objs, err := v.ExternalObjects()
			if err != nil {
				return err
			}
			for _, obj := range objs {
				if !c.DataURI {
					fmt.Fprintln(stdout, obj)
					continue
				}
				uri, err := l.DataURI(ctx, obj)
				if err != nil {
					return err
				}
				fmt.Fprintf(stdout, "%s\t%s\n", obj.URI(), uri)
			}
		}
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	info := sqlite.GetInfo()
	fmt.Fprintf(stdout, "reqif version %s\n", version)
	fmt.Fprintf(stdout, "sqlite driver: %s (%s)\n", info.DriverName, info.Package)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("reqif"),
		kong.Description("ReqIF requirements interchange toolkit"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&CLI.Globals)
	ctx.FatalIfErrorf(err)
}
