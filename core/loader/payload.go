package loader

import (
	"archive/zip"
	"context"
	"mime"
	"os"
	"path"
	"strings"

	"github.com/FocuswithJustin/ReqIF/core/encoding"
	"github.com/FocuswithJustin/ReqIF/core/errors"
	"github.com/FocuswithJustin/ReqIF/core/xhtml"
	"github.com/FocuswithJustin/ReqIF/internal/validation"
)

// Injectable for tests.
var osOpen = os.Open

// DataURI returns the referenced payload of obj as a base64 data URI. Results
// are cached per loaded source and, when a store is configured, persisted
// under the source digest.
func (l *Loader) DataURI(ctx context.Context, obj xhtml.ExternalObject) (string, error) {
	st := l.snapshot()
	if st.digest == "" {
		return "", errors.NewNotFound("loaded document", "")
	}
	if strings.HasPrefix(obj.URI(), "data:") {
		return obj.URI(), nil
	}

	return st.payloads.GetOrCompute(ctx, obj, func(ctx context.Context) (string, error) {
		key := StoreKey{Digest: st.digest, URI: obj.URI(), MimeType: obj.MimeType()}
		if l.store != nil {
			v, ok, err := l.store.Get(ctx, key)
			if err != nil {
				l.logger.Warn("payload store read failed", "uri", obj.URI(), "error", err)
			} else if ok {
				return v, nil
			}
		}

		data, err := l.payload(st, obj.URI())
		if err != nil {
			return "", err
		}
		uri := encoding.DataURI(mimeType(obj), data)

		if l.store != nil {
			if err := l.store.Put(ctx, key, uri); err != nil {
				l.logger.Warn("payload store write failed", "uri", obj.URI(), "error", err)
			}
		}
		return uri, nil
	})
}

// payload reads the bytes an object reference points at, from the archive
// for .reqifz sources and from the base directory otherwise.
func (l *Loader) payload(st state, ref string) ([]byte, error) {
	rel := ref
	if scheme, rest, ok := splitScheme(ref); ok {
		if scheme != "file" {
			return nil, errors.NewUnsupported("object reference scheme", scheme)
		}
		rel = strings.TrimPrefix(rest, "//")
	}
	if rel == "" {
		return nil, errors.NewNotFound("object payload", ref)
	}

	if st.archive != nil {
		return readEntry(st.archive, rel)
	}

	base := st.baseDir
	if base == "" {
		base = "."
	}
	full, err := validation.SanitizePath(base, rel)
	if err != nil {
		return nil, &errors.UnsupportedError{Feature: "object reference", Reason: ref, Err: err}
	}
	f, err := osOpen(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("object payload", ref)
		}
		return nil, errors.NewIO("open", full, err)
	}
	defer f.Close()
	data, err := validation.ReadAllLimited(f, validation.MaxPayloadSize)
	if err != nil {
		return nil, errors.NewIO("read", full, err)
	}
	return data, nil
}

func readEntry(zr *zip.Reader, rel string) ([]byte, error) {
	name, err := validation.SanitizeEntryName(rel)
	if err != nil {
		return nil, &errors.UnsupportedError{Feature: "object reference", Reason: rel, Err: err}
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errors.NewIO("open", f.Name, err)
		}
		defer rc.Close()
		data, err := validation.ReadAllLimited(rc, validation.MaxPayloadSize)
		if err != nil {
			return nil, errors.NewIO("read", f.Name, err)
		}
		return data, nil
	}
	return nil, errors.NewNotFound("archive entry", name)
}

// splitScheme splits a URI scheme off ref. Single letters are drive names.
func splitScheme(ref string) (scheme, rest string, ok bool) {
	i := strings.IndexByte(ref, ':')
	if i < 2 {
		return "", ref, false
	}
	for j, c := range ref[:i] {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case j > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return "", ref, false
		}
	}
	return strings.ToLower(ref[:i]), ref[i+1:], true
}

// mimeType prefers the declared type and falls back to the file extension.
func mimeType(obj xhtml.ExternalObject) string {
	if obj.MimeType() != "" {
		return obj.MimeType()
	}
	if t := mime.TypeByExtension(path.Ext(obj.URI())); t != "" {
		return t
	}
	return "application/octet-stream"
}
