package reqif

import "time"

// Namespace is the ReqIF XML namespace.
const Namespace = "http://www.omg.org/spec/ReqIF/20110401/reqif.xsd"

// ReqIF is a complete document.
type ReqIF struct {
	// Lang is the xml:lang of the root element.
	Lang string
	// Namespaces are the namespace declarations of the root element in
	// source order. They are written back as read.
	Namespaces     []NamespaceDecl
	TheHeader      *Header
	CoreContent    *Content
	ToolExtensions []*ToolExtension
}

// NewReqIF returns a document with an empty header and registry.
func NewReqIF() *ReqIF {
	return &ReqIF{
		TheHeader:   &Header{},
		CoreContent: NewContent(),
	}
}

// NamespaceDecl is one xmlns declaration. Prefix is empty for the default
// namespace.
type NamespaceDecl struct {
	Prefix string
	URI    string
}

// Header is the REQ-IF-HEADER block.
type Header struct {
	Identifier   string
	Comment      string
	CreationTime time.Time
	RepositoryID string
	ReqIFToolID  string
	ReqIFVersion string
	SourceToolID string
	Title        string
}

// ToolExtension is an opaque REQ-IF-TOOL-EXTENSION. Content is its inner
// markup, kept verbatim.
type ToolExtension struct {
	Content string
}

// XHTMLValues returns every rich text value in the document: spec element
// values first, then attribute definition defaults.
func (r *ReqIF) XHTMLValues() []*AttributeValueXHTML {
	if r == nil || r.CoreContent == nil {
		return nil
	}
	var out []*AttributeValueXHTML
	collect := func(values []AttributeValue) {
		for _, v := range values {
			if x, ok := v.(*AttributeValueXHTML); ok {
				out = append(out, x)
			}
		}
	}
	c := r.CoreContent
	for _, o := range c.SpecObjects {
		collect(o.Values())
	}
	for _, s := range c.Specifications {
		collect(s.Values())
	}
	for _, rel := range c.SpecRelations {
		collect(rel.Values())
	}
	for _, g := range c.SpecRelationGroups {
		collect(g.Values())
	}
	for _, t := range c.SpecTypes {
		for _, d := range t.SpecAttributes() {
			if x, ok := d.DefaultValue().(*AttributeValueXHTML); ok {
				out = append(out, x)
			}
		}
	}
	return out
}
