package reqif

import (
	"github.com/FocuswithJustin/ReqIF/core/xhtml"
)

// writer emits one document. Each entity is validated before its start tag
// is written.
type writer struct {
	x *xmlWriter
}

func identityAttrs(id *Identifiable, extra ...attr) []attr {
	attrs := []attr{{"IDENTIFIER", id.Identifier}}
	if id.Description != "" {
		attrs = append(attrs, attr{"DESC", id.Description})
	}
	if !id.LastChange.IsZero() {
		attrs = append(attrs, attr{"LAST-CHANGE", formatDate(id.LastChange)})
	}
	if id.LongName != "" {
		attrs = append(attrs, attr{"LONG-NAME", id.LongName})
	}
	return append(attrs, extra...)
}

// flag appends a boolean attribute when it is set.
func flag(attrs []attr, name string, set bool) []attr {
	if set {
		return append(attrs, attr{name, "true"})
	}
	return attrs
}

func rootAttrs(doc *ReqIF) []attr {
	hasDefault, hasXHTML := false, false
	for _, ns := range doc.Namespaces {
		switch {
		case ns.Prefix == "":
			hasDefault = true
		case ns.URI == xhtml.Namespace:
			hasXHTML = true
		}
	}

	var attrs []attr
	if !hasDefault {
		attrs = append(attrs, attr{"xmlns", Namespace})
	}
	for _, ns := range doc.Namespaces {
		name := "xmlns"
		if ns.Prefix != "" {
			name += ":" + ns.Prefix
		}
		attrs = append(attrs, attr{name, ns.URI})
	}
	if !hasXHTML && len(doc.XHTMLValues()) > 0 {
		attrs = append(attrs, attr{"xmlns:xhtml", xhtml.Namespace})
	}
	if doc.Lang != "" {
		attrs = append(attrs, attr{"xml:lang", doc.Lang})
	}
	return attrs
}

func (w *writer) document(doc *ReqIF) error {
	if err := w.x.declaration(); err != nil {
		return err
	}
	if err := w.x.start("REQ-IF", rootAttrs(doc)...); err != nil {
		return err
	}
	if doc.TheHeader != nil {
		if err := w.header(doc.TheHeader); err != nil {
			return err
		}
	}
	if doc.CoreContent != nil {
		if err := w.x.start("CORE-CONTENT"); err != nil {
			return err
		}
		if err := w.content(doc.CoreContent); err != nil {
			return err
		}
		if err := w.x.end("CORE-CONTENT"); err != nil {
			return err
		}
	}
	if len(doc.ToolExtensions) > 0 {
		if err := w.x.start("TOOL-EXTENSIONS"); err != nil {
			return err
		}
		for _, ext := range doc.ToolExtensions {
			if err := w.x.start("REQ-IF-TOOL-EXTENSION"); err != nil {
				return err
			}
			if err := w.x.raw(ext.Content); err != nil {
				return err
			}
			if err := w.x.end("REQ-IF-TOOL-EXTENSION"); err != nil {
				return err
			}
		}
		if err := w.x.end("TOOL-EXTENSIONS"); err != nil {
			return err
		}
	}
	return w.x.end("REQ-IF")
}

func (w *writer) header(h *Header) error {
	if err := w.x.start("THE-HEADER"); err != nil {
		return err
	}
	if err := w.x.start("REQ-IF-HEADER", attr{"IDENTIFIER", h.Identifier}); err != nil {
		return err
	}
	creation := ""
	if !h.CreationTime.IsZero() {
		creation = formatDate(h.CreationTime)
	}
	fields := []struct{ name, value string }{
		{"COMMENT", h.Comment},
		{"CREATION-TIME", creation},
		{"REPOSITORY-ID", h.RepositoryID},
		{"REQ-IF-TOOL-ID", h.ReqIFToolID},
		{"REQ-IF-VERSION", h.ReqIFVersion},
		{"SOURCE-TOOL-ID", h.SourceToolID},
		{"TITLE", h.Title},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := w.x.element(f.name, f.value); err != nil {
			return err
		}
	}
	if err := w.x.end("REQ-IF-HEADER"); err != nil {
		return err
	}
	return w.x.end("THE-HEADER")
}

// section writes name around n items when n > 0.
func (w *writer) section(name string, n int, item func(i int) error) error {
	if n == 0 {
		return nil
	}
	if err := w.x.start(name); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := item(i); err != nil {
			return err
		}
	}
	return w.x.end(name)
}

func (w *writer) content(c *Content) error {
	if err := w.x.start("REQ-IF-CONTENT"); err != nil {
		return err
	}
	if err := w.section("DATATYPES", len(c.DataTypes), func(i int) error {
		return w.datatype(c.DataTypes[i])
	}); err != nil {
		return err
	}
	if err := w.section("SPEC-TYPES", len(c.SpecTypes), func(i int) error {
		return w.specType(c.SpecTypes[i])
	}); err != nil {
		return err
	}
	if err := w.section("SPEC-OBJECTS", len(c.SpecObjects), func(i int) error {
		return w.specObject(c.SpecObjects[i])
	}); err != nil {
		return err
	}
	if err := w.section("SPEC-RELATIONS", len(c.SpecRelations), func(i int) error {
		return w.specRelation(c.SpecRelations[i])
	}); err != nil {
		return err
	}
	if err := w.section("SPECIFICATIONS", len(c.Specifications), func(i int) error {
		return w.specification(c.Specifications[i])
	}); err != nil {
		return err
	}
	if err := w.section("SPEC-RELATION-GROUPS", len(c.SpecRelationGroups), func(i int) error {
		return w.relationGroup(c.SpecRelationGroups[i])
	}); err != nil {
		return err
	}
	return w.x.end("REQ-IF-CONTENT")
}

func (w *writer) alternativeID(id *Identifiable) error {
	if id.AlternativeID == nil {
		return nil
	}
	if err := w.x.start("ALTERNATIVE-ID"); err != nil {
		return err
	}
	if err := w.x.start("ALTERNATIVE-ID", attr{"IDENTIFIER", id.AlternativeID.Identifier}); err != nil {
		return err
	}
	if err := w.x.end("ALTERNATIVE-ID"); err != nil {
		return err
	}
	return w.x.end("ALTERNATIVE-ID")
}

func (w *writer) datatype(d DatatypeDefinition) error {
	id := d.Identity()
	name := d.Kind().DatatypeElement()
	if err := validateIdentifier("DatatypeDefinition"+d.Kind().title(), id); err != nil {
		return err
	}

	var facets []attr
	switch dt := d.(type) {
	case *DatatypeDefinitionInteger:
		if dt.Max != nil {
			facets = append(facets, attr{"MAX", formatInt(*dt.Max)})
		}
		if dt.Min != nil {
			facets = append(facets, attr{"MIN", formatInt(*dt.Min)})
		}
	case *DatatypeDefinitionReal:
		if dt.Accuracy != nil {
			facets = append(facets, attr{"ACCURACY", formatInt(*dt.Accuracy)})
		}
		if dt.Max != nil {
			facets = append(facets, attr{"MAX", formatReal(*dt.Max)})
		}
		if dt.Min != nil {
			facets = append(facets, attr{"MIN", formatReal(*dt.Min)})
		}
	case *DatatypeDefinitionString:
		if dt.MaxLength != nil {
			facets = append(facets, attr{"MAX-LENGTH", formatInt(*dt.MaxLength)})
		}
	}

	if err := w.x.start(name, identityAttrs(id, facets...)...); err != nil {
		return err
	}
	if err := w.alternativeID(id); err != nil {
		return err
	}
	if enum, ok := d.(*DatatypeDefinitionEnumeration); ok {
		if err := w.section("SPECIFIED-VALUES", len(enum.SpecifiedValues), func(i int) error {
			return w.enumValue(enum.SpecifiedValues[i])
		}); err != nil {
			return err
		}
	}
	return w.x.end(name)
}

func (w *writer) enumValue(v *EnumValue) error {
	if err := validateIdentifier("EnumValue", &v.Identifiable); err != nil {
		return err
	}
	if err := w.x.start("ENUM-VALUE", identityAttrs(&v.Identifiable)...); err != nil {
		return err
	}
	if err := w.alternativeID(&v.Identifiable); err != nil {
		return err
	}
	if p := v.Properties; p != nil {
		if err := w.x.start("PROPERTIES"); err != nil {
			return err
		}
		if err := w.x.start("EMBEDDED-VALUE", attr{"KEY", formatInt(p.Key)}, attr{"OTHER-CONTENT", p.OtherContent}); err != nil {
			return err
		}
		if err := w.x.end("EMBEDDED-VALUE"); err != nil {
			return err
		}
		if err := w.x.end("PROPERTIES"); err != nil {
			return err
		}
	}
	return w.x.end("ENUM-VALUE")
}

func (w *writer) specType(t SpecType) error {
	id := t.Identity()
	name := t.Kind().String()
	if err := validateIdentifier(elementName(t.Kind())+"Type", id); err != nil {
		return err
	}
	if err := w.x.start(name, identityAttrs(id)...); err != nil {
		return err
	}
	if err := w.alternativeID(id); err != nil {
		return err
	}
	defs := t.SpecAttributes()
	if err := w.section("SPEC-ATTRIBUTES", len(defs), func(i int) error {
		return w.attributeDefinition(defs[i])
	}); err != nil {
		return err
	}
	return w.x.end(name)
}

func (w *writer) attributeDefinition(d AttributeDefinition) error {
	if err := ValidateAttributeDefinition(d); err != nil {
		return err
	}
	base := d.definition()
	name := d.Kind().AttributeDefinitionElement()

	extra := flag(nil, "IS-EDITABLE", base.IsEditable)
	if enum, ok := d.(*AttributeDefinitionEnumeration); ok {
		extra = append(extra, attr{"MULTI-VALUED", formatBool(enum.MultiValued)})
	}
	if err := w.x.start(name, identityAttrs(&base.Identifiable, extra...)...); err != nil {
		return err
	}
	if err := w.alternativeID(&base.Identifiable); err != nil {
		return err
	}
	if v := base.defaultValue; v != nil {
		if err := w.x.start("DEFAULT-VALUE"); err != nil {
			return err
		}
		if err := w.attributeValue(v, d); err != nil {
			return err
		}
		if err := w.x.end("DEFAULT-VALUE"); err != nil {
			return err
		}
	}
	if err := w.x.wrapped("TYPE", d.Kind().DatatypeRefElement(), base.datatype.Identity().Identifier); err != nil {
		return err
	}
	return w.x.end(name)
}

func (w *writer) attributeValue(v AttributeValue, owner Entity) error {
	if err := ValidateAttributeValue(v, owner); err != nil {
		return err
	}
	name := v.Kind().AttributeValueElement()

	var attrs []attr
	switch value := v.(type) {
	case *AttributeValueBoolean:
		attrs = append(attrs, attr{"THE-VALUE", formatBool(value.TheValue)})
	case *AttributeValueDate:
		attrs = append(attrs, attr{"THE-VALUE", formatDate(value.TheValue)})
	case *AttributeValueInteger:
		attrs = append(attrs, attr{"THE-VALUE", formatInt(value.TheValue)})
	case *AttributeValueReal:
		attrs = append(attrs, attr{"THE-VALUE", formatReal(value.TheValue)})
	case *AttributeValueString:
		attrs = append(attrs, attr{"THE-VALUE", value.TheValue})
	case *AttributeValueXHTML:
		attrs = flag(attrs, "IS-SIMPLIFIED", value.IsSimplified)
	}

	if err := w.x.start(name, attrs...); err != nil {
		return err
	}
	def := v.Definition()
	if err := w.x.wrapped("DEFINITION", def.Kind().AttributeDefinitionRefElement(), def.Identity().Identifier); err != nil {
		return err
	}

	switch value := v.(type) {
	case *AttributeValueEnumeration:
		if err := w.x.start("VALUES"); err != nil {
			return err
		}
		for _, ev := range value.Values {
			if ev == nil {
				continue
			}
			if err := w.x.element("ENUM-VALUE-REF", ev.Identifier); err != nil {
				return err
			}
		}
		if err := w.x.end("VALUES"); err != nil {
			return err
		}
	case *AttributeValueXHTML:
		if value.TheOriginalValue != "" {
			if err := w.rawElement("THE-ORIGINAL-VALUE", value.TheOriginalValue); err != nil {
				return err
			}
		}
		if err := w.rawElement("THE-VALUE", value.TheValue); err != nil {
			return err
		}
	}
	return w.x.end(name)
}

func (w *writer) rawElement(name, markup string) error {
	if err := w.x.start(name); err != nil {
		return err
	}
	if err := w.x.raw(markup); err != nil {
		return err
	}
	return w.x.end(name)
}

func (w *writer) values(e SpecElement) error {
	values := e.Values()
	return w.section("VALUES", len(values), func(i int) error {
		return w.attributeValue(values[i], e)
	})
}

func (w *writer) elementType(e SpecElement) error {
	t := e.Type()
	return w.x.wrapped("TYPE", t.Kind().RefElement(), t.Identity().Identifier)
}

func (w *writer) specObject(o *SpecObject) error {
	if err := ValidateSpecElement(o); err != nil {
		return err
	}
	if err := w.x.start("SPEC-OBJECT", identityAttrs(&o.Identifiable)...); err != nil {
		return err
	}
	if err := w.alternativeID(&o.Identifiable); err != nil {
		return err
	}
	if err := w.values(o); err != nil {
		return err
	}
	if err := w.elementType(o); err != nil {
		return err
	}
	return w.x.end("SPEC-OBJECT")
}

func (w *writer) specRelation(r *SpecRelation) error {
	if err := ValidateSpecElement(r); err != nil {
		return err
	}
	if err := w.x.start("SPEC-RELATION", identityAttrs(&r.Identifiable)...); err != nil {
		return err
	}
	if err := w.alternativeID(&r.Identifiable); err != nil {
		return err
	}
	if err := w.values(r); err != nil {
		return err
	}
	if err := w.x.wrapped("SOURCE", "SPEC-OBJECT-REF", r.Source.Identifier); err != nil {
		return err
	}
	if err := w.x.wrapped("TARGET", "SPEC-OBJECT-REF", r.Target.Identifier); err != nil {
		return err
	}
	if err := w.elementType(r); err != nil {
		return err
	}
	return w.x.end("SPEC-RELATION")
}

func (w *writer) specification(s *Specification) error {
	if err := ValidateSpecElement(s); err != nil {
		return err
	}
	if err := w.x.start("SPECIFICATION", identityAttrs(&s.Identifiable)...); err != nil {
		return err
	}
	if err := w.alternativeID(&s.Identifiable); err != nil {
		return err
	}
	if err := w.values(s); err != nil {
		return err
	}
	if err := w.hierarchyChildren(s.Children); err != nil {
		return err
	}
	if err := w.elementType(s); err != nil {
		return err
	}
	return w.x.end("SPECIFICATION")
}

func (w *writer) hierarchyChildren(children []*SpecHierarchy) error {
	return w.section("CHILDREN", len(children), func(i int) error {
		return w.hierarchy(children[i])
	})
}

func (w *writer) hierarchy(h *SpecHierarchy) error {
	if err := validateIdentifier("SpecHierarchy", &h.Identifiable); err != nil {
		return err
	}
	extra := flag(nil, "IS-EDITABLE", h.IsEditable)
	extra = flag(extra, "IS-TABLE-INTERNAL", h.IsTableInternal)
	if err := w.x.start("SPEC-HIERARCHY", identityAttrs(&h.Identifiable, extra...)...); err != nil {
		return err
	}
	if err := w.alternativeID(&h.Identifiable); err != nil {
		return err
	}
	if err := w.hierarchyChildren(h.Children); err != nil {
		return err
	}
	if err := w.section("EDITABLE-ATTS", len(h.EditableAttributes), func(i int) error {
		def := h.EditableAttributes[i]
		return w.x.element(def.Kind().AttributeDefinitionRefElement(), def.Identity().Identifier)
	}); err != nil {
		return err
	}
	if h.Object != nil {
		if err := w.x.wrapped("OBJECT", "SPEC-OBJECT-REF", h.Object.Identifier); err != nil {
			return err
		}
	}
	return w.x.end("SPEC-HIERARCHY")
}

func (w *writer) relationGroup(g *RelationGroup) error {
	if err := ValidateSpecElement(g); err != nil {
		return err
	}
	if err := w.x.start("RELATION-GROUP", identityAttrs(&g.Identifiable)...); err != nil {
		return err
	}
	if err := w.alternativeID(&g.Identifiable); err != nil {
		return err
	}
	if err := w.values(g); err != nil {
		return err
	}
	if err := w.x.wrapped("SOURCE-SPECIFICATION", "SPECIFICATION-REF", g.SourceSpecification.Identifier); err != nil {
		return err
	}
	if err := w.x.start("SPEC-RELATIONS"); err != nil {
		return err
	}
	for _, rel := range g.SpecRelations {
		if rel == nil {
			continue
		}
		if err := w.x.element("SPEC-RELATION-REF", rel.Identifier); err != nil {
			return err
		}
	}
	if err := w.x.end("SPEC-RELATIONS"); err != nil {
		return err
	}
	if err := w.x.wrapped("TARGET-SPECIFICATION", "SPECIFICATION-REF", g.TargetSpecification.Identifier); err != nil {
		return err
	}
	if err := w.elementType(g); err != nil {
		return err
	}
	return w.x.end("RELATION-GROUP")
}
