package loader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/ReqIF/core/errors"
	"github.com/FocuswithJustin/ReqIF/core/reqif"
)

// Container identifies how a ReqIF source is packaged.
type Container string

const (
	// ContainerPlain is a bare .reqif document.
	ContainerPlain Container = "reqif"
	// ContainerZip is a .reqifz archive holding one or more .reqif entries
	// plus the files they reference.
	ContainerZip Container = "reqifz"
	// ContainerXZ is an xz-compressed document.
	ContainerXZ Container = "xz"
	// ContainerGzip is a gzip-compressed document.
	ContainerGzip Container = "gzip"
)

// Injectable for tests.
var (
	xzNewReader   = xz.NewReader
	gzipNewReader = gzip.NewReader
)

// DetectContainer inspects the leading magic bytes of data.
func DetectContainer(data []byte) Container {
	switch {
	case len(data) >= 4 && data[0] == 'P' && data[1] == 'K' && data[2] == 0x03 && data[3] == 0x04:
		return ContainerZip
	case len(data) >= 6 && data[0] == 0xfd && data[1] == 0x37 && data[2] == 0x7a &&
		data[3] == 0x58 && data[4] == 0x5a && data[5] == 0x00:
		return ContainerXZ
	case len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b:
		return ContainerGzip
	default:
		return ContainerPlain
	}
}

// decoded is the result of unpacking and decoding one source.
type decoded struct {
	container Container
	documents []*reqif.ReqIF
	entries   []string
	archive   *zip.Reader
}

func decode(ctx context.Context, codec *reqif.Codec, data []byte) (*decoded, error) {
	out := &decoded{container: DetectContainer(data)}

	switch out.container {
	case ContainerZip:
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, errors.NewIO("open archive", "", err)
		}
		out.archive = zr
		for _, f := range zr.File {
			if f.FileInfo().IsDir() || !strings.EqualFold(pathExt(f.Name), ".reqif") {
				continue
			}
			doc, err := decodeEntry(ctx, codec, f)
			if err != nil {
				return nil, errors.Wrapf(err, "archive entry %s", f.Name)
			}
			out.documents = append(out.documents, doc)
			out.entries = append(out.entries, f.Name)
		}
		if len(out.documents) == 0 {
			return nil, errors.NewNotFound("reqif archive entry", "*.reqif")
		}
		return out, nil

	case ContainerXZ:
		r, err := xzNewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.NewIO("open xz stream", "", err)
		}
		return out.single(ctx, codec, r)

	case ContainerGzip:
		r, err := gzipNewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.NewIO("open gzip stream", "", err)
		}
		defer r.Close()
		return out.single(ctx, codec, r)

	default:
		return out.single(ctx, codec, bytes.NewReader(data))
	}
}

func (d *decoded) single(ctx context.Context, codec *reqif.Codec, r io.Reader) (*decoded, error) {
	doc, err := codec.ReadContext(ctx, r)
	if err != nil {
		return nil, err
	}
	d.documents = []*reqif.ReqIF{doc}
	return d, nil
}

func decodeEntry(ctx context.Context, codec *reqif.Codec, f *zip.File) (*reqif.ReqIF, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, errors.NewIO("open", f.Name, err)
	}
	defer rc.Close()
	return codec.ReadContext(ctx, rc)
}

func pathExt(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 && !strings.ContainsRune(name[i:], '/') {
		return name[i:]
	}
	return ""
}
