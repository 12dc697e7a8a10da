package reqif

import (
	"fmt"
	"log/slog"
)

// Reference slots follow one of three fixed policies when the identifier is
// not found:
//
//	fallback  a stand-in carrying the identifier is synthesized and registered
//	nullable  the slot is left nil
//	required  the read fails with a ParseError
//
// SpecRelation.Source/Target, RelationGroup.Source/TargetSpecification,
// RelationGroup.SpecRelations members, every element's Type and every
// attribute definition's Type use fallback. SpecHierarchy.Object and
// SpecHierarchy.EditableAttributes members are nullable. Attribute value
// definitions and enumeration value references are required.

// index is a first-wins identifier index over one registry collection. The
// reader keeps one per collection so resolution does not scan.
type index[E Entity] map[string]E

func (ix index[E]) add(e E) {
	id := e.Identity().Identifier
	if id == "" {
		return
	}
	if _, ok := ix[id]; !ok {
		ix[id] = e
	}
}

// resolve implements the fallback and nullable policies. An empty id yields
// the zero value. With a nil fallback the slot is nullable.
func resolve[E Entity](ix index[E], id string, fallback func(id string) E) E {
	var zero E
	if id == "" {
		return zero
	}
	if e, ok := ix[id]; ok {
		return e
	}
	if fallback == nil {
		return zero
	}
	e := fallback(id)
	ix.add(e)
	return e
}

// unresolved marks a synthesized stand-in.
func unresolved(i *Identifiable, entity, id string) {
	i.Identifier = id
	i.Description = fmt.Sprintf("This %s could not be resolved at load time", entity)
}

// resolver synthesizes stand-ins into the registry being read.
type resolver struct {
	content *Content
	logger  *slog.Logger

	datatypes      index[DatatypeDefinition]
	specTypes      index[SpecType]
	specObjects    index[*SpecObject]
	specRelations  index[*SpecRelation]
	specifications index[*Specification]
	relationGroups index[*RelationGroup]
	definitions    index[AttributeDefinition]
	enumValues     index[*EnumValue]
}

func newResolver(c *Content, logger *slog.Logger) *resolver {
	return &resolver{
		content:        c,
		logger:         logger,
		datatypes:      index[DatatypeDefinition]{},
		specTypes:      index[SpecType]{},
		specObjects:    index[*SpecObject]{},
		specRelations:  index[*SpecRelation]{},
		specifications: index[*Specification]{},
		relationGroups: index[*RelationGroup]{},
		definitions:    index[AttributeDefinition]{},
		enumValues:     index[*EnumValue]{},
	}
}

func (r *resolver) standIn(slot, id string) {
	r.logger.Debug("unresolved_reference", "slot", slot, "identifier", id)
}

func (r *resolver) specObject(slot, id string) *SpecObject {
	return resolve(r.specObjects, id, func(id string) *SpecObject {
		r.standIn(slot, id)
		o := NewSpecObject(r.content)
		unresolved(&o.Identifiable, "SpecObject", id)
		return o
	})
}

// hierarchyObject is the nullable variant used by SpecHierarchy.Object.
func (r *resolver) hierarchyObject(id string) *SpecObject {
	return resolve(r.specObjects, id, nil)
}

func (r *resolver) specification(slot, id string) *Specification {
	return resolve(r.specifications, id, func(id string) *Specification {
		r.standIn(slot, id)
		s := NewSpecification(r.content)
		unresolved(&s.Identifiable, "Specification", id)
		return s
	})
}

func (r *resolver) specRelation(slot, id string) *SpecRelation {
	return resolve(r.specRelations, id, func(id string) *SpecRelation {
		r.standIn(slot, id)
		rel := NewSpecRelation(r.content)
		unresolved(&rel.Identifiable, "SpecRelation", id)
		return rel
	})
}

func (r *resolver) specType(slot string, kind SpecTypeKind, id string) SpecType {
	return resolve(r.specTypes, id, func(id string) SpecType {
		r.standIn(slot, id)
		t := NewSpecType(r.content, kind)
		unresolved(t.Identity(), kind.String(), id)
		return t
	})
}

func (r *resolver) datatype(slot string, kind Kind, id string) DatatypeDefinition {
	return resolve(r.datatypes, id, func(id string) DatatypeDefinition {
		r.standIn(slot, id)
		d := NewDatatypeDefinition(r.content, kind)
		unresolved(d.Identity(), kind.DatatypeElement(), id)
		return d
	})
}

// definition is the required lookup used by attribute values; nil means the
// read must fail.
func (r *resolver) definition(id string) AttributeDefinition {
	return resolve(r.definitions, id, nil)
}

// editableAttribute is the nullable lookup used by SpecHierarchy.EditableAttributes.
func (r *resolver) editableAttribute(id string) AttributeDefinition {
	return resolve(r.definitions, id, nil)
}

func (r *resolver) enumValue(id string) *EnumValue {
	return resolve(r.enumValues, id, nil)
}
