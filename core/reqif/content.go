package reqif

// Content is the document registry: it owns every entity of one document.
// Constructors register new entities here exactly once; entities are never
// removed individually. Lookups return the first registered entity with a
// given identifier.
//
// Content is not safe for concurrent mutation.
type Content struct {
	DataTypes          []DatatypeDefinition
	SpecTypes          []SpecType
	SpecObjects        []*SpecObject
	SpecRelations      []*SpecRelation
	Specifications     []*Specification
	SpecRelationGroups []*RelationGroup
}

// NewContent returns an empty registry.
func NewContent() *Content {
	return &Content{}
}

// Reset clears every collection. References previously handed out must not
// be used afterwards.
func (c *Content) Reset() {
	c.DataTypes = nil
	c.SpecTypes = nil
	c.SpecObjects = nil
	c.SpecRelations = nil
	c.Specifications = nil
	c.SpecRelationGroups = nil
}

// Len returns the total number of registered entities.
func (c *Content) Len() int {
	return len(c.DataTypes) + len(c.SpecTypes) + len(c.SpecObjects) +
		len(c.SpecRelations) + len(c.Specifications) + len(c.SpecRelationGroups)
}

func (c *Content) addDatatype(d DatatypeDefinition) {
	if c != nil {
		c.DataTypes = append(c.DataTypes, d)
	}
}

func (c *Content) addSpecType(t SpecType) {
	if c != nil {
		c.SpecTypes = append(c.SpecTypes, t)
	}
}

func (c *Content) addSpecObject(o *SpecObject) {
	if c != nil {
		c.SpecObjects = append(c.SpecObjects, o)
	}
}

func (c *Content) addSpecRelation(r *SpecRelation) {
	if c != nil {
		c.SpecRelations = append(c.SpecRelations, r)
	}
}

func (c *Content) addSpecification(s *Specification) {
	if c != nil {
		c.Specifications = append(c.Specifications, s)
	}
}

func (c *Content) addRelationGroup(g *RelationGroup) {
	if c != nil {
		c.SpecRelationGroups = append(c.SpecRelationGroups, g)
	}
}

// LookupDatatype returns the datatype with identifier id, or nil.
func (c *Content) LookupDatatype(id string) DatatypeDefinition {
	return lookup(c.DataTypes, id)
}

// LookupSpecType returns the spec type with identifier id, or nil.
func (c *Content) LookupSpecType(id string) SpecType {
	return lookup(c.SpecTypes, id)
}

// LookupSpecObject returns the spec object with identifier id, or nil.
func (c *Content) LookupSpecObject(id string) *SpecObject {
	return lookup(c.SpecObjects, id)
}

// LookupSpecRelation returns the relation with identifier id, or nil.
func (c *Content) LookupSpecRelation(id string) *SpecRelation {
	return lookup(c.SpecRelations, id)
}

// LookupSpecification returns the specification with identifier id, or nil.
func (c *Content) LookupSpecification(id string) *Specification {
	return lookup(c.Specifications, id)
}

// LookupRelationGroup returns the relation group with identifier id, or nil.
func (c *Content) LookupRelationGroup(id string) *RelationGroup {
	return lookup(c.SpecRelationGroups, id)
}

// LookupAttributeDefinition searches the definitions of every spec type.
func (c *Content) LookupAttributeDefinition(id string) AttributeDefinition {
	if id == "" {
		return nil
	}
	for _, t := range c.SpecTypes {
		if d := t.LookupAttribute(id); d != nil {
			return d
		}
	}
	return nil
}

// LookupEnumValue searches the specified values of every enumeration datatype.
func (c *Content) LookupEnumValue(id string) *EnumValue {
	if id == "" {
		return nil
	}
	for _, dt := range c.DataTypes {
		enum, ok := dt.(*DatatypeDefinitionEnumeration)
		if !ok {
			continue
		}
		if v := lookup(enum.SpecifiedValues, id); v != nil {
			return v
		}
	}
	return nil
}

func lookup[E Entity](items []E, id string) E {
	var zero E
	if id == "" {
		return zero
	}
	for _, item := range items {
		if item.Identity().Identifier == id {
			return item
		}
	}
	return zero
}
