package reqif

import (
	"github.com/FocuswithJustin/ReqIF/core/errors"
)

// SpecElement is implemented by the four entities that carry attribute
// values: SpecObject, SpecRelation, RelationGroup and Specification.
type SpecElement interface {
	Entity
	// Type returns the governing spec type, nil when unset.
	Type() SpecType
	// SetType assigns the governing spec type. A type of the wrong family is
	// rejected with a TypeMismatchError and the slot keeps its value.
	SetType(SpecType) error
	// Values returns the attribute values in document order.
	Values() []AttributeValue
	// ValueFor returns the first value governed by def, or nil.
	ValueFor(def AttributeDefinition) AttributeValue
	element() *specElement
}

type specElement struct {
	Identifiable
	expects  SpecTypeKind
	specType SpecType
	values   []AttributeValue
}

func (e *specElement) Type() SpecType           { return e.specType }
func (e *specElement) Values() []AttributeValue { return e.values }
func (e *specElement) element() *specElement    { return e }

func (e *specElement) SetType(t SpecType) error {
	if t != nil && t.Kind() != e.expects {
		return errors.NewTypeMismatch(elementName(e.expects)+".Type", e.expects.String(), t.Kind().String())
	}
	e.specType = t
	return nil
}

func (e *specElement) ValueFor(def AttributeDefinition) AttributeValue {
	for _, v := range e.values {
		if v.Definition() == def {
			return v
		}
	}
	return nil
}

// elementName is the entity name used in diagnostics for elements governed
// by a spec type of kind k.
func elementName(k SpecTypeKind) string {
	switch k {
	case SpecObjectTypeKind:
		return "SpecObject"
	case SpecRelationTypeKind:
		return "SpecRelation"
	case RelationGroupTypeKind:
		return "RelationGroup"
	case SpecificationTypeKind:
		return "Specification"
	}
	return "SpecElement"
}

// SpecObject is a requirement.
type SpecObject struct{ specElement }

// SpecRelation links two SpecObjects.
type SpecRelation struct {
	specElement
	Source *SpecObject
	Target *SpecObject
}

// RelationGroup groups relations between two specifications.
type RelationGroup struct {
	specElement
	SourceSpecification *Specification
	TargetSpecification *Specification
	SpecRelations       []*SpecRelation
}

// Specification is the root of a SpecHierarchy tree.
type Specification struct {
	specElement
	Children []*SpecHierarchy
}

// AddChild attaches h as a top-level node of the specification.
func (s *Specification) AddChild(h *SpecHierarchy) {
	h.container = nil
	h.specification = s
	s.Children = append(s.Children, h)
}

// Walk visits every hierarchy node depth first in document order and stops
// at the first error fn returns.
func (s *Specification) Walk(fn func(h *SpecHierarchy, depth int) error) error {
	for _, h := range s.Children {
		if err := h.walk(fn, 0); err != nil {
			return err
		}
	}
	return nil
}

// SpecHierarchy is a node of a specification's table of contents.
type SpecHierarchy struct {
	Identifiable
	IsTableInternal bool
	IsEditable      bool
	// Object is the referenced SpecObject. A reference that cannot be
	// resolved on read leaves it nil.
	Object             *SpecObject
	Children           []*SpecHierarchy
	EditableAttributes []AttributeDefinition

	container     *SpecHierarchy
	specification *Specification
}

// NewSpecHierarchy creates a node belonging to spec whose parent is container
// (nil for a top-level node). The node is not attached; call AddChild on the
// parent.
func NewSpecHierarchy(spec *Specification, container *SpecHierarchy) *SpecHierarchy {
	return &SpecHierarchy{specification: spec, container: container}
}

// Container returns the parent node, nil at the top level.
func (h *SpecHierarchy) Container() *SpecHierarchy { return h.container }

// Specification returns the specification the node belongs to.
func (h *SpecHierarchy) Specification() *Specification { return h.specification }

// AddChild attaches child under h.
func (h *SpecHierarchy) AddChild(child *SpecHierarchy) {
	child.container = h
	child.specification = h.specification
	h.Children = append(h.Children, child)
}

func (h *SpecHierarchy) walk(fn func(*SpecHierarchy, int) error, depth int) error {
	if err := fn(h, depth); err != nil {
		return err
	}
	for _, c := range h.Children {
		if err := c.walk(fn, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// NewSpecObject creates a spec object registered in c.
func NewSpecObject(c *Content) *SpecObject {
	o := &SpecObject{specElement{expects: SpecObjectTypeKind}}
	c.addSpecObject(o)
	return o
}

// NewSpecRelation creates a relation registered in c.
func NewSpecRelation(c *Content) *SpecRelation {
	r := &SpecRelation{specElement: specElement{expects: SpecRelationTypeKind}}
	c.addSpecRelation(r)
	return r
}

// NewRelationGroup creates a relation group registered in c.
func NewRelationGroup(c *Content) *RelationGroup {
	g := &RelationGroup{specElement: specElement{expects: RelationGroupTypeKind}}
	c.addRelationGroup(g)
	return g
}

// NewSpecification creates a specification registered in c.
func NewSpecification(c *Content) *Specification {
	s := &Specification{specElement: specElement{expects: SpecificationTypeKind}}
	c.addSpecification(s)
	return s
}
