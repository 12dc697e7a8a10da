package reqif

import (
	"bufio"
	"strings"

	"github.com/FocuswithJustin/ReqIF/core/encoding"
)

// attr is one attribute of an element being written.
type attr struct {
	name, value string
}

// xmlWriter emits indented markup. A start tag stays open until content
// follows so elements without content are written self-closed. Every
// primitive consults the checkpoint first.
type xmlWriter struct {
	w      *bufio.Writer
	cp     checkpoint
	indent string

	depth    int
	open     bool
	hasChild []bool
}

func newXMLWriter(w *bufio.Writer, cp checkpoint, indent string) *xmlWriter {
	return &xmlWriter{w: w, cp: cp, indent: indent}
}

func (x *xmlWriter) declaration() error {
	if err := x.cp.check(); err != nil {
		return err
	}
	_, err := x.w.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	return err
}

func (x *xmlWriter) closeStart() {
	if x.open {
		x.w.WriteByte('>')
		x.open = false
	}
}

func (x *xmlWriter) newline() {
	if x.indent != "" {
		x.w.WriteByte('\n')
		x.w.WriteString(strings.Repeat(x.indent, x.depth))
	}
}

func (x *xmlWriter) start(name string, attrs ...attr) error {
	if err := x.cp.check(); err != nil {
		return err
	}
	x.closeStart()
	if n := len(x.hasChild); n > 0 {
		x.hasChild[n-1] = true
	}
	x.newline()

	x.w.WriteString("<" + name)
	for _, a := range attrs {
		x.w.WriteString(" " + a.name + `="` + encoding.EscapeXMLAttr(a.value) + `"`)
	}
	x.open = true
	x.hasChild = append(x.hasChild, false)
	x.depth++
	return nil
}

func (x *xmlWriter) end(name string) error {
	if err := x.cp.check(); err != nil {
		return err
	}
	x.depth--
	n := len(x.hasChild) - 1
	hadChild := x.hasChild[n]
	x.hasChild = x.hasChild[:n]

	if x.open {
		x.open = false
		_, err := x.w.WriteString("/>")
		return err
	}
	if hadChild {
		x.newline()
	}
	_, err := x.w.WriteString("</" + name + ">")
	return err
}

// text writes escaped character data.
func (x *xmlWriter) text(s string) error {
	return x.raw(encoding.EscapeXMLText(s))
}

// raw writes markup verbatim.
func (x *xmlWriter) raw(s string) error {
	if err := x.cp.check(); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	x.closeStart()
	_, err := x.w.WriteString(s)
	return err
}

// element writes a start tag, escaped text and the end tag.
func (x *xmlWriter) element(name, text string, attrs ...attr) error {
	if err := x.start(name, attrs...); err != nil {
		return err
	}
	if err := x.text(text); err != nil {
		return err
	}
	return x.end(name)
}

// wrapped writes <outer><inner>text</inner></outer>, the shape of every
// single reference.
func (x *xmlWriter) wrapped(outer, inner, text string) error {
	if err := x.start(outer); err != nil {
		return err
	}
	if err := x.element(inner, text); err != nil {
		return err
	}
	return x.end(outer)
}

func (x *xmlWriter) flush() error {
	if x.indent != "" {
		x.w.WriteByte('\n')
	}
	return x.w.Flush()
}
