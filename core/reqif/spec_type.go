package reqif

// SpecType is a named bag of attribute definitions shared by every spec
// element that references it. Only the four types in this package implement it.
type SpecType interface {
	Entity
	Kind() SpecTypeKind
	// SpecAttributes returns the owned definitions in document order.
	SpecAttributes() []AttributeDefinition
	// LookupAttribute returns the owned definition with identifier id, or nil.
	LookupAttribute(id string) AttributeDefinition
	specTypeBase() *specType
}

type specType struct {
	Identifiable
	kind       SpecTypeKind
	attributes []AttributeDefinition
}

func (t *specType) Kind() SpecTypeKind                    { return t.kind }
func (t *specType) SpecAttributes() []AttributeDefinition { return t.attributes }
func (t *specType) specTypeBase() *specType               { return t }

func (t *specType) LookupAttribute(id string) AttributeDefinition {
	for _, d := range t.attributes {
		if d.Identity().Identifier == id {
			return d
		}
	}
	return nil
}

// SpecObjectType governs SpecObjects.
type SpecObjectType struct{ specType }

// SpecRelationType governs SpecRelations.
type SpecRelationType struct{ specType }

// RelationGroupType governs RelationGroups.
type RelationGroupType struct{ specType }

// SpecificationType governs Specifications.
type SpecificationType struct{ specType }

// NewSpecObjectType creates a type registered in c.
func NewSpecObjectType(c *Content) *SpecObjectType {
	t := &SpecObjectType{specType{kind: SpecObjectTypeKind}}
	c.addSpecType(t)
	return t
}

// NewSpecRelationType creates a type registered in c.
func NewSpecRelationType(c *Content) *SpecRelationType {
	t := &SpecRelationType{specType{kind: SpecRelationTypeKind}}
	c.addSpecType(t)
	return t
}

// NewRelationGroupType creates a type registered in c.
func NewRelationGroupType(c *Content) *RelationGroupType {
	t := &RelationGroupType{specType{kind: RelationGroupTypeKind}}
	c.addSpecType(t)
	return t
}

// NewSpecificationType creates a type registered in c.
func NewSpecificationType(c *Content) *SpecificationType {
	t := &SpecificationType{specType{kind: SpecificationTypeKind}}
	c.addSpecType(t)
	return t
}
