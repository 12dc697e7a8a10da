package reqif

import (
	"encoding/xml"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/ReqIF/core/errors"
	"github.com/FocuswithJustin/ReqIF/internal/logging"
)

// reader walks one document. It is used for a single read.
type reader struct {
	x      *xmlReader
	logger *slog.Logger
	doc    *ReqIF
	*resolver
}

func newReader(r io.Reader, cp checkpoint, logger *slog.Logger) *reader {
	doc := NewReqIF()
	doc.TheHeader = nil
	return &reader{
		x:        newXMLReader(r, cp),
		logger:   logger,
		doc:      doc,
		resolver: newResolver(doc.CoreContent, logger),
	}
}

func (r *reader) unknown(parent string, start xml.StartElement) error {
	logging.UnknownElement(r.logger, parent, start.Name.Local)
	return r.x.skip()
}

func (r *reader) document() (*ReqIF, error) {
	for {
		tok, err := r.x.next()
		if err == io.EOF {
			return nil, r.x.malformed("", "no REQ-IF root element", nil)
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "REQ-IF" {
			return nil, r.x.malformed(start.Name.Local, "root element is "+qualified(start.Name)+", not REQ-IF", nil)
		}
		if err := r.root(start); err != nil {
			return nil, err
		}
		break
	}
	// Only whitespace, comments and processing instructions may follow.
	for {
		tok, err := r.x.next()
		if err == io.EOF {
			return r.doc, nil
		}
		if err != nil {
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return nil, r.x.malformed(start.Name.Local, "content after the root element", nil)
		}
	}
}

func (r *reader) root(start xml.StartElement) error {
	for _, a := range start.Attr {
		if err := r.x.cp.check(); err != nil {
			return err
		}
		switch {
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			r.doc.Namespaces = append(r.doc.Namespaces, NamespaceDecl{URI: a.Value})
		case a.Name.Space == "xmlns":
			r.doc.Namespaces = append(r.doc.Namespaces, NamespaceDecl{Prefix: a.Name.Local, URI: a.Value})
		case a.Name.Space == "xml" && a.Name.Local == "lang":
			r.doc.Lang = a.Value
		}
	}

	return r.x.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "THE-HEADER":
			return r.x.children(func(h xml.StartElement) error {
				if h.Name.Local != "REQ-IF-HEADER" {
					return r.unknown("THE-HEADER", h)
				}
				return r.header(h)
			})
		case "CORE-CONTENT":
			return r.x.children(func(c xml.StartElement) error {
				if c.Name.Local != "REQ-IF-CONTENT" {
					return r.unknown("CORE-CONTENT", c)
				}
				return r.coreContent(c)
			})
		case "TOOL-EXTENSIONS":
			return r.x.children(func(e xml.StartElement) error {
				if e.Name.Local != "REQ-IF-TOOL-EXTENSION" {
					return r.unknown("TOOL-EXTENSIONS", e)
				}
				raw, err := r.x.raw()
				if err != nil {
					return err
				}
				r.doc.ToolExtensions = append(r.doc.ToolExtensions, &ToolExtension{Content: raw})
				return nil
			})
		default:
			return r.unknown("REQ-IF", child)
		}
	})
}

func (r *reader) header(start xml.StartElement) error {
	attrs, err := r.x.attrs(start)
	if err != nil {
		return err
	}
	h := &Header{Identifier: attrs["IDENTIFIER"]}
	r.doc.TheHeader = h

	return r.x.children(func(child xml.StartElement) error {
		var field *string
		switch child.Name.Local {
		case "COMMENT":
			field = &h.Comment
		case "REPOSITORY-ID":
			field = &h.RepositoryID
		case "REQ-IF-TOOL-ID":
			field = &h.ReqIFToolID
		case "REQ-IF-VERSION":
			field = &h.ReqIFVersion
		case "SOURCE-TOOL-ID":
			field = &h.SourceToolID
		case "TITLE":
			field = &h.Title
		case "CREATION-TIME":
			text, err := r.x.text()
			if err != nil {
				return err
			}
			t, err := parseDate(text)
			if err != nil {
				return r.x.locate(err, "CREATION-TIME")
			}
			h.CreationTime = t
			return nil
		default:
			return r.unknown("REQ-IF-HEADER", child)
		}
		text, err := r.x.text()
		if err != nil {
			return err
		}
		*field = text
		return nil
	})
}

func (r *reader) coreContent(start xml.StartElement) error {
	return r.x.children(func(section xml.StartElement) error {
		switch section.Name.Local {
		case "DATATYPES":
			return r.x.children(r.datatypeDefinition)
		case "SPEC-TYPES":
			return r.x.children(r.specTypeDefinition)
		case "SPEC-OBJECTS":
			return r.x.children(func(e xml.StartElement) error {
				if e.Name.Local != "SPEC-OBJECT" {
					return r.unknown("SPEC-OBJECTS", e)
				}
				return r.specObjectElement(e)
			})
		case "SPEC-RELATIONS":
			return r.x.children(func(e xml.StartElement) error {
				if e.Name.Local != "SPEC-RELATION" {
					return r.unknown("SPEC-RELATIONS", e)
				}
				return r.specRelationElement(e)
			})
		case "SPECIFICATIONS":
			return r.x.children(func(e xml.StartElement) error {
				if e.Name.Local != "SPECIFICATION" {
					return r.unknown("SPECIFICATIONS", e)
				}
				return r.specificationElement(e)
			})
		case "SPEC-RELATION-GROUPS":
			return r.x.children(func(e xml.StartElement) error {
				if e.Name.Local != "RELATION-GROUP" {
					return r.unknown("SPEC-RELATION-GROUPS", e)
				}
				return r.relationGroupElement(e)
			})
		default:
			return r.unknown("REQ-IF-CONTENT", section)
		}
	})
}

// identity reads the attributes shared by every identifiable element and
// returns the full attribute map for element-specific attributes.
func (r *reader) identity(start xml.StartElement, id *Identifiable) (map[string]string, error) {
	attrs, err := r.x.attrs(start)
	if err != nil {
		return nil, err
	}
	id.Identifier = attrs["IDENTIFIER"]
	id.LongName = attrs["LONG-NAME"]
	id.Description = attrs["DESC"]
	if lc, ok := attrs["LAST-CHANGE"]; ok && lc != "" {
		t, err := parseDate(lc)
		if err != nil {
			return nil, r.x.locate(err, start.Name.Local)
		}
		id.LastChange = t
	}
	return attrs, nil
}

func (r *reader) alternativeID(id *Identifiable) error {
	return r.x.children(func(child xml.StartElement) error {
		if child.Name.Local != "ALTERNATIVE-ID" {
			return r.unknown("ALTERNATIVE-ID", child)
		}
		attrs, err := r.x.attrs(child)
		if err != nil {
			return err
		}
		id.AlternativeID = &AlternativeID{Identifier: attrs["IDENTIFIER"]}
		return r.x.skip()
	})
}

// refs reads the identifiers of the reference elements named name inside the
// element just opened.
func (r *reader) refs(parent, name string) ([]string, error) {
	var ids []string
	err := r.x.children(func(child xml.StartElement) error {
		if child.Name.Local != name {
			return r.unknown(parent, child)
		}
		text, err := r.x.text()
		if err != nil {
			return err
		}
		ids = append(ids, trimRef(text))
		return nil
	})
	return ids, err
}

func trimRef(s string) string { return strings.TrimSpace(s) }

func quote(s string) string { return strconv.Quote(s) }

// ref reads a single-reference wrapper such as TYPE or SOURCE.
func (r *reader) ref(parent, name string) (string, error) {
	ids, err := r.refs(parent, name)
	if err != nil || len(ids) == 0 {
		return "", err
	}
	return ids[0], nil
}

func (r *reader) datatypeDefinition(start xml.StartElement) error {
	factory, ok := datatypeFactories[start.Name.Local]
	if !ok {
		return r.unknown("DATATYPES", start)
	}
	d := factory(r.content)
	attrs, err := r.identity(start, d.Identity())
	if err != nil {
		return err
	}
	r.datatypes.add(d)

	if err := r.facets(d, attrs, start.Name.Local); err != nil {
		return err
	}

	return r.x.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "ALTERNATIVE-ID":
			return r.alternativeID(d.Identity())
		case "SPECIFIED-VALUES":
			enum, ok := d.(*DatatypeDefinitionEnumeration)
			if !ok {
				return r.unknown(start.Name.Local, child)
			}
			return r.x.children(func(ev xml.StartElement) error {
				if ev.Name.Local != "ENUM-VALUE" {
					return r.unknown("SPECIFIED-VALUES", ev)
				}
				return r.enumValueElement(enum, ev)
			})
		default:
			return r.unknown(start.Name.Local, child)
		}
	})
}

func (r *reader) facets(d DatatypeDefinition, attrs map[string]string, element string) error {
	optInt := func(name string) (*int64, error) {
		s, ok := attrs[name]
		if !ok {
			return nil, nil
		}
		n, err := parseInt(s)
		if err != nil {
			return nil, r.x.locate(err, element)
		}
		return &n, nil
	}
	optReal := func(name string) (*float64, error) {
		s, ok := attrs[name]
		if !ok {
			return nil, nil
		}
		f, err := parseReal(s)
		if err != nil {
			return nil, r.x.locate(err, element)
		}
		return &f, nil
	}

	var err error
	switch dt := d.(type) {
	case *DatatypeDefinitionInteger:
		if dt.Min, err = optInt("MIN"); err != nil {
			return err
		}
		dt.Max, err = optInt("MAX")
	case *DatatypeDefinitionReal:
		if dt.Accuracy, err = optInt("ACCURACY"); err != nil {
			return err
		}
		if dt.Min, err = optReal("MIN"); err != nil {
			return err
		}
		dt.Max, err = optReal("MAX")
	case *DatatypeDefinitionString:
		dt.MaxLength, err = optInt("MAX-LENGTH")
	}
	return err
}

func (r *reader) enumValueElement(enum *DatatypeDefinitionEnumeration, start xml.StartElement) error {
	v := NewEnumValue(enum)
	if _, err := r.identity(start, &v.Identifiable); err != nil {
		return err
	}
	r.enumValues.add(v)

	return r.x.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "ALTERNATIVE-ID":
			return r.alternativeID(&v.Identifiable)
		case "PROPERTIES":
			return r.x.children(func(p xml.StartElement) error {
				if p.Name.Local != "EMBEDDED-VALUE" {
					return r.unknown("PROPERTIES", p)
				}
				attrs, err := r.x.attrs(p)
				if err != nil {
					return err
				}
				ev := &EmbeddedValue{OtherContent: attrs["OTHER-CONTENT"]}
				if key, ok := attrs["KEY"]; ok {
					if ev.Key, err = parseInt(key); err != nil {
						return r.x.locate(err, "EMBEDDED-VALUE")
					}
				}
				v.Properties = ev
				return r.x.skip()
			})
		default:
			return r.unknown("ENUM-VALUE", child)
		}
	})
}

func (r *reader) specTypeDefinition(start xml.StartElement) error {
	factory, ok := specTypeFactories[start.Name.Local]
	if !ok {
		return r.unknown("SPEC-TYPES", start)
	}
	t := factory(r.content)
	if _, err := r.identity(start, t.Identity()); err != nil {
		return err
	}
	r.specTypes.add(t)

	return r.x.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "ALTERNATIVE-ID":
			return r.alternativeID(t.Identity())
		case "SPEC-ATTRIBUTES":
			return r.x.children(func(ad xml.StartElement) error {
				return r.attributeDefinitionElement(t, ad)
			})
		default:
			return r.unknown(start.Name.Local, child)
		}
	})
}

func (r *reader) attributeDefinitionElement(owner SpecType, start xml.StartElement) error {
	factory, ok := attributeDefinitionFactories[start.Name.Local]
	if !ok {
		return r.unknown("SPEC-ATTRIBUTES", start)
	}
	d := factory(owner)
	base := d.definition()
	attrs, err := r.identity(start, &base.Identifiable)
	if err != nil {
		return err
	}
	r.definitions.add(d)

	if s, ok := attrs["IS-EDITABLE"]; ok {
		if base.IsEditable, err = parseBool(s); err != nil {
			return r.x.locate(err, start.Name.Local)
		}
	}
	if enum, ok := d.(*AttributeDefinitionEnumeration); ok {
		if s, ok := attrs["MULTI-VALUED"]; ok {
			if enum.MultiValued, err = parseBool(s); err != nil {
				return r.x.locate(err, start.Name.Local)
			}
		}
	}

	return r.x.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "ALTERNATIVE-ID":
			return r.alternativeID(&base.Identifiable)
		case "TYPE":
			id, err := r.ref("TYPE", d.Kind().DatatypeRefElement())
			if err != nil {
				return err
			}
			if id == "" {
				return nil
			}
			dt := r.datatype(start.Name.Local+".TYPE", d.Kind(), id)
			return d.SetType(dt)
		case "DEFAULT-VALUE":
			return r.x.children(func(v xml.StartElement) error {
				value, err := r.attributeValueElement(nil, v, "DEFAULT-VALUE")
				if err != nil || value == nil {
					return err
				}
				return d.SetDefaultValue(value)
			})
		default:
			return r.unknown(start.Name.Local, child)
		}
	})
}

// attributeValueElement reads one ATTRIBUTE-VALUE-* element into owner. A nil
// value with a nil error means the element was unknown and skipped.
func (r *reader) attributeValueElement(owner SpecElement, start xml.StartElement, parent string) (AttributeValue, error) {
	factory, ok := attributeValueFactories[start.Name.Local]
	if !ok {
		return nil, r.unknown(parent, start)
	}
	v := factory(owner)
	element := start.Name.Local

	attrs, err := r.x.attrs(start)
	if err != nil {
		return nil, err
	}
	if err := r.scalar(v, attrs); err != nil {
		return nil, r.x.locate(err, element)
	}

	sawDefinition := false
	err = r.x.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "DEFINITION":
			sawDefinition = true
			id, err := r.ref("DEFINITION", v.Kind().AttributeDefinitionRefElement())
			if err != nil {
				return err
			}
			def := r.definition(id)
			if def == nil {
				return r.x.malformed(element, "attribute definition "+quote(id)+" is not defined", errors.NewNotFound("attribute definition", id))
			}
			return v.SetDefinition(def)
		case "VALUES":
			enum, ok := v.(*AttributeValueEnumeration)
			if !ok {
				return r.unknown(element, child)
			}
			ids, err := r.refs("VALUES", "ENUM-VALUE-REF")
			if err != nil {
				return err
			}
			for _, id := range ids {
				ev := r.enumValue(id)
				if ev == nil {
					return r.x.malformed(element, "enum value "+quote(id)+" is not defined", errors.NewNotFound("enum value", id))
				}
				enum.Values = append(enum.Values, ev)
			}
			return nil
		case "THE-VALUE", "THE-ORIGINAL-VALUE":
			x, ok := v.(*AttributeValueXHTML)
			if !ok {
				return r.unknown(element, child)
			}
			raw, err := r.x.raw()
			if err != nil {
				return err
			}
			if child.Name.Local == "THE-VALUE" {
				x.TheValue = raw
			} else {
				x.TheOriginalValue = raw
			}
			return nil
		default:
			return r.unknown(element, child)
		}
	})
	if err != nil {
		return nil, err
	}
	if !sawDefinition {
		return nil, r.x.malformed(element, "missing DEFINITION", nil)
	}
	return v, nil
}

// scalar parses the THE-VALUE attribute of the single-valued kinds and the
// IS-SIMPLIFIED flag of rich text.
func (r *reader) scalar(v AttributeValue, attrs map[string]string) error {
	s, ok := attrs["THE-VALUE"]
	var err error
	switch value := v.(type) {
	case *AttributeValueBoolean:
		if ok {
			value.TheValue, err = parseBool(s)
		}
	case *AttributeValueDate:
		if ok {
			value.TheValue, err = parseDate(s)
		}
	case *AttributeValueInteger:
		if ok {
			value.TheValue, err = parseInt(s)
		}
	case *AttributeValueReal:
		if ok {
			value.TheValue, err = parseReal(s)
		}
	case *AttributeValueString:
		value.TheValue = s
	case *AttributeValueXHTML:
		if simplified, ok := attrs["IS-SIMPLIFIED"]; ok {
			value.IsSimplified, err = parseBool(simplified)
		}
	}
	return err
}

// values reads a VALUES block into owner.
func (r *reader) values(owner SpecElement) error {
	return r.x.children(func(child xml.StartElement) error {
		_, err := r.attributeValueElement(owner, child, "VALUES")
		return err
	})
}

// elementType reads a TYPE block and assigns the referenced spec type.
func (r *reader) elementType(owner SpecElement, kind SpecTypeKind) error {
	id, err := r.ref("TYPE", kind.RefElement())
	if err != nil || id == "" {
		return err
	}
	return owner.SetType(r.specType(elementName(kind)+".Type", kind, id))
}

func (r *reader) specObjectElement(start xml.StartElement) error {
	o := NewSpecObject(r.content)
	if _, err := r.identity(start, &o.Identifiable); err != nil {
		return err
	}
	r.specObjects.add(o)

	return r.x.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "ALTERNATIVE-ID":
			return r.alternativeID(&o.Identifiable)
		case "VALUES":
			return r.values(o)
		case "TYPE":
			return r.elementType(o, SpecObjectTypeKind)
		default:
			return r.unknown("SPEC-OBJECT", child)
		}
	})
}

func (r *reader) specRelationElement(start xml.StartElement) error {
	rel := NewSpecRelation(r.content)
	if _, err := r.identity(start, &rel.Identifiable); err != nil {
		return err
	}
	r.specRelations.add(rel)

	return r.x.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "ALTERNATIVE-ID":
			return r.alternativeID(&rel.Identifiable)
		case "VALUES":
			return r.values(rel)
		case "TYPE":
			return r.elementType(rel, SpecRelationTypeKind)
		case "SOURCE":
			id, err := r.ref("SOURCE", "SPEC-OBJECT-REF")
			if err != nil {
				return err
			}
			rel.Source = r.specObject("SpecRelation.Source", id)
			return nil
		case "TARGET":
			id, err := r.ref("TARGET", "SPEC-OBJECT-REF")
			if err != nil {
				return err
			}
			rel.Target = r.specObject("SpecRelation.Target", id)
			return nil
		default:
			return r.unknown("SPEC-RELATION", child)
		}
	})
}

func (r *reader) specificationElement(start xml.StartElement) error {
	s := NewSpecification(r.content)
	if _, err := r.identity(start, &s.Identifiable); err != nil {
		return err
	}
	r.specifications.add(s)

	return r.x.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "ALTERNATIVE-ID":
			return r.alternativeID(&s.Identifiable)
		case "VALUES":
			return r.values(s)
		case "TYPE":
			return r.elementType(s, SpecificationTypeKind)
		case "CHILDREN":
			return r.hierarchyChildren(s, nil)
		default:
			return r.unknown("SPECIFICATION", child)
		}
	})
}

// hierarchyChildren reads a CHILDREN block. Each node is created knowing its
// parent, read recursively, then attached in document order.
func (r *reader) hierarchyChildren(spec *Specification, parent *SpecHierarchy) error {
	return r.x.children(func(child xml.StartElement) error {
		if child.Name.Local != "SPEC-HIERARCHY" {
			return r.unknown("CHILDREN", child)
		}
		h := NewSpecHierarchy(spec, parent)
		if err := r.hierarchy(h, child); err != nil {
			return err
		}
		if parent == nil {
			spec.AddChild(h)
		} else {
			parent.AddChild(h)
		}
		return nil
	})
}

func (r *reader) hierarchy(h *SpecHierarchy, start xml.StartElement) error {
	attrs, err := r.identity(start, &h.Identifiable)
	if err != nil {
		return err
	}
	if s, ok := attrs["IS-TABLE-INTERNAL"]; ok {
		if h.IsTableInternal, err = parseBool(s); err != nil {
			return r.x.locate(err, "SPEC-HIERARCHY")
		}
	}
	if s, ok := attrs["IS-EDITABLE"]; ok {
		if h.IsEditable, err = parseBool(s); err != nil {
			return r.x.locate(err, "SPEC-HIERARCHY")
		}
	}

	return r.x.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "ALTERNATIVE-ID":
			return r.alternativeID(&h.Identifiable)
		case "OBJECT":
			id, err := r.ref("OBJECT", "SPEC-OBJECT-REF")
			if err != nil {
				return err
			}
			h.Object = r.hierarchyObject(id)
			return nil
		case "CHILDREN":
			return r.hierarchyChildren(h.specification, h)
		case "EDITABLE-ATTS":
			return r.x.children(func(ref xml.StartElement) error {
				text, err := r.x.text()
				if err != nil {
					return err
				}
				if def := r.editableAttribute(trimRef(text)); def != nil {
					h.EditableAttributes = append(h.EditableAttributes, def)
				}
				return nil
			})
		default:
			return r.unknown("SPEC-HIERARCHY", child)
		}
	})
}

func (r *reader) relationGroupElement(start xml.StartElement) error {
	g := NewRelationGroup(r.content)
	if _, err := r.identity(start, &g.Identifiable); err != nil {
		return err
	}
	r.relationGroups.add(g)

	return r.x.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "ALTERNATIVE-ID":
			return r.alternativeID(&g.Identifiable)
		case "VALUES":
			return r.values(g)
		case "TYPE":
			return r.elementType(g, RelationGroupTypeKind)
		case "SOURCE-SPECIFICATION":
			id, err := r.ref("SOURCE-SPECIFICATION", "SPECIFICATION-REF")
			if err != nil {
				return err
			}
			g.SourceSpecification = r.specification("RelationGroup.SourceSpecification", id)
			return nil
		case "TARGET-SPECIFICATION":
			id, err := r.ref("TARGET-SPECIFICATION", "SPECIFICATION-REF")
			if err != nil {
				return err
			}
			g.TargetSpecification = r.specification("RelationGroup.TargetSpecification", id)
			return nil
		case "SPEC-RELATIONS":
			ids, err := r.refs("SPEC-RELATIONS", "SPEC-RELATION-REF")
			if err != nil {
				return err
			}
			for _, id := range ids {
				g.SpecRelations = append(g.SpecRelations, r.specRelation("RelationGroup.SpecRelations", id))
			}
			return nil
		default:
			return r.unknown("RELATION-GROUP", child)
		}
	})
}
