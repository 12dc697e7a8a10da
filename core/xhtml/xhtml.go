// Package xhtml extracts plain text and embedded-object references from the
// XHTML fragments carried by ReqIF rich-text attribute values.
//
// Security Notes:
//   - Fragments are parsed with xmlquery, which uses Go's encoding/xml and does
//     not fetch external entities.
//   - Referenced object payloads are never opened here; resolving them is the
//     loader's job.
package xhtml

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
)

// Namespace is the XHTML namespace URI declared on ReqIF documents that carry
// rich text.
const Namespace = "http://www.w3.org/1999/xhtml"

// fragmentRoot wraps a fragment so it parses as a document even when it has
// several top-level nodes or uses the conventional prefix without declaring it.
const fragmentRoot = "reqif-xhtml-fragment"

// objectExpr matches embedded objects regardless of the prefix in use.
var objectExpr = xpath.MustCompile(`//*[local-name()='object']`)

// ExternalObject describes a binary payload referenced from rich text.
// It is comparable and safe to use as a map key.
type ExternalObject struct {
	uri      string
	mimeType string
}

// NewExternalObject builds a descriptor.
func NewExternalObject(uri, mimeType string) ExternalObject {
	return ExternalObject{uri: uri, mimeType: mimeType}
}

// URI returns the percent-decoded data reference.
func (o ExternalObject) URI() string { return o.uri }

// MimeType returns the declared MIME type, possibly empty.
func (o ExternalObject) MimeType() string { return o.mimeType }

func (o ExternalObject) String() string {
	return fmt.Sprintf("%s (%s)", o.uri, o.mimeType)
}

// Parse parses an XHTML fragment and returns the wrapper element whose
// children are the fragment's top-level nodes.
func Parse(markup string) (*xmlquery.Node, error) {
	var b strings.Builder
	b.WriteString("<" + fragmentRoot + ` xmlns:xhtml="` + Namespace + `">`)
	b.WriteString(markup)
	b.WriteString("</" + fragmentRoot + ">")

	doc, err := xmlquery.Parse(strings.NewReader(b.String()))
	if err != nil {
		return nil, fmt.Errorf("parsing XHTML fragment: %w", err)
	}
	for child := doc.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child, nil
		}
	}
	return nil, fmt.Errorf("parsing XHTML fragment: no root element")
}

// ExternalObjects returns every embedded object in document order. The data
// attribute is percent-decoded; values that fail to decode are kept verbatim.
func ExternalObjects(markup string) ([]ExternalObject, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, nil
	}
	root, err := Parse(markup)
	if err != nil {
		return nil, err
	}

	var objects []ExternalObject
	for _, n := range xmlquery.QuerySelectorAll(root, objectExpr) {
		data := n.SelectAttr("data")
		if decoded, err := url.PathUnescape(data); err == nil {
			data = decoded
		}
		objects = append(objects, NewExternalObject(data, n.SelectAttr("type")))
	}
	return objects, nil
}

// PlainText strips markup and returns the text content in document order.
// Text from adjacent nodes is joined with single spaces and every whitespace
// run collapses to one space. Malformed markup is tolerated.
func PlainText(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var words []string
	skipDepth := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF, or a read error a strings.Reader never produces
			return strings.Join(words, " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if isRawText(localName(string(name))) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if isRawText(localName(string(name))) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			words = append(words, strings.Fields(string(z.Text()))...)
		}
	}
}

// Format renders a fragment with one element per line, indented by indent.
func Format(markup, indent string) (string, error) {
	if indent == "" {
		indent = "  "
	}
	root, err := Parse(markup)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(root.OutputXMLWithOptions(xmlquery.WithIndentation(indent))), nil
}

func localName(name string) string {
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func isRawText(name string) bool {
	return name == "script" || name == "style"
}
