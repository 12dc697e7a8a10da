package reqif

import (
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/FocuswithJustin/ReqIF/core/encoding"
	"github.com/FocuswithJustin/ReqIF/core/errors"
)

// xmlReader is a raw token stream with its own nesting check. Raw tokens keep
// namespace prefixes as written, which lets rich text and tool extensions be
// reproduced verbatim.
type xmlReader struct {
	dec   *xml.Decoder
	cp    checkpoint
	stack []xml.Name
}

func newXMLReader(r io.Reader, cp checkpoint) *xmlReader {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	dec.Entity = xml.HTMLEntity
	return &xmlReader{dec: dec, cp: cp}
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// next returns the next token. Start and end elements are checked for proper
// nesting; the end of input inside an element is an error.
func (x *xmlReader) next() (xml.Token, error) {
	if err := x.cp.check(); err != nil {
		return nil, err
	}
	tok, err := x.dec.RawToken()
	if err == io.EOF {
		if len(x.stack) > 0 {
			return nil, x.malformed("", "unexpected end of input inside "+qualified(x.stack[len(x.stack)-1]), nil)
		}
		return nil, io.EOF
	}
	if err != nil {
		var syntax *xml.SyntaxError
		if errors.As(err, &syntax) {
			pe := errors.NewParse("ReqIF", "", syntax.Msg)
			pe.Line = syntax.Line
			pe.Err = err
			return nil, pe
		}
		return nil, x.malformed("", err.Error(), err)
	}
	tok = xml.CopyToken(tok)

	switch t := tok.(type) {
	case xml.StartElement:
		x.stack = append(x.stack, t.Name)
	case xml.EndElement:
		if len(x.stack) == 0 {
			return nil, x.malformed(t.Name.Local, "unexpected end element "+qualified(t.Name), nil)
		}
		open := x.stack[len(x.stack)-1]
		if open != t.Name {
			return nil, x.malformed(open.Local, "element "+qualified(open)+" closed by "+qualified(t.Name), nil)
		}
		x.stack = x.stack[:len(x.stack)-1]
	}
	return tok, nil
}

// malformed builds a ParseError positioned at the current input offset.
func (x *xmlReader) malformed(element, message string, err error) *errors.ParseError {
	pe := errors.NewParse("ReqIF", element, message)
	pe.Line, _ = x.dec.InputPos()
	pe.Err = err
	return pe
}

// locate fills in the element and position of a value parse error.
func (x *xmlReader) locate(err error, element string) error {
	var pe *errors.ParseError
	if errors.As(err, &pe) && pe.Line == 0 {
		pe.Element = element
		pe.Line, _ = x.dec.InputPos()
	}
	return err
}

// attrs returns the attributes of start keyed by qualified name.
func (x *xmlReader) attrs(start xml.StartElement) (map[string]string, error) {
	m := make(map[string]string, len(start.Attr))
	for _, a := range start.Attr {
		if err := x.cp.check(); err != nil {
			return nil, err
		}
		m[qualified(a.Name)] = a.Value
	}
	return m, nil
}

// children calls fn for every child element of the element just opened, and
// consumes the element's end tag. fn must consume the child it is given.
func (x *xmlReader) children(fn func(xml.StartElement) error) error {
	for {
		tok, err := x.next()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// skip consumes the rest of the element just opened.
func (x *xmlReader) skip() error {
	depth := 1
	for depth > 0 {
		tok, err := x.next()
		if err != nil {
			return err
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

// text returns the character data of the element just opened. Nested
// elements are skipped.
func (x *xmlReader) text() (string, error) {
	var b strings.Builder
	for {
		tok, err := x.next()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			if err := x.skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return b.String(), nil
		}
	}
}

// raw reconstructs the inner markup of the element just opened. Prefixes are
// kept as written; elements with no content are written self-closed.
func (x *xmlReader) raw() (string, error) {
	var b strings.Builder
	pending := false
	closePending := func() {
		if pending {
			b.WriteByte('>')
			pending = false
		}
	}
	depth := 0
	for {
		tok, err := x.next()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			closePending()
			b.WriteString("<" + qualified(t.Name))
			for _, a := range t.Attr {
				b.WriteString(" " + qualified(a.Name) + `="` + encoding.EscapeXMLAttr(a.Value) + `"`)
			}
			pending = true
			depth++
		case xml.EndElement:
			if depth == 0 {
				closePending()
				return b.String(), nil
			}
			depth--
			if pending {
				b.WriteString("/>")
				pending = false
			} else {
				b.WriteString("</" + qualified(t.Name) + ">")
			}
		case xml.CharData:
			closePending()
			b.WriteString(encoding.EscapeXMLText(string(t)))
		case xml.Comment:
			closePending()
			b.WriteString("<!--" + string(t) + "-->")
		case xml.ProcInst:
			closePending()
			b.WriteString("<?" + t.Target)
			if len(t.Inst) > 0 {
				b.WriteString(" " + string(t.Inst))
			}
			b.WriteString("?>")
		case xml.Directive:
			closePending()
			b.WriteString("<!" + string(t) + ">")
		}
	}
}
