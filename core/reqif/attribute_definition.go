package reqif

// AttributeDefinition declares one typed attribute of a SpecType. There is one
// concrete variant per Kind; only types in this package implement it.
type AttributeDefinition interface {
	Entity
	Kind() Kind
	// Type returns the referenced datatype, nil when unset.
	Type() DatatypeDefinition
	// SetType assigns the datatype. A datatype of a different kind is
	// rejected with a TypeMismatchError and the slot keeps its value.
	SetType(DatatypeDefinition) error
	DefaultValue() AttributeValue
	SetDefaultValue(AttributeValue) error
	// SpecType returns the type that owns the definition.
	SpecType() SpecType
	definition() *attributeDefinition
}

type attributeDefinition struct {
	Identifiable
	IsEditable bool

	kind         Kind
	specType     SpecType
	datatype     DatatypeDefinition
	defaultValue AttributeValue
}

func (d *attributeDefinition) Kind() Kind                       { return d.kind }
func (d *attributeDefinition) Type() DatatypeDefinition         { return d.datatype }
func (d *attributeDefinition) DefaultValue() AttributeValue     { return d.defaultValue }
func (d *attributeDefinition) SpecType() SpecType               { return d.specType }
func (d *attributeDefinition) definition() *attributeDefinition { return d }

func (d *attributeDefinition) SetType(dt DatatypeDefinition) error {
	if err := checkDatatype(d.slot("Type"), d.kind, dt); err != nil {
		return err
	}
	d.datatype = dt
	return nil
}

func (d *attributeDefinition) SetDefaultValue(v AttributeValue) error {
	if err := checkValue(d.slot("DefaultValue"), d.kind, v); err != nil {
		return err
	}
	d.defaultValue = v
	return nil
}

func (d *attributeDefinition) slot(name string) string {
	return "AttributeDefinition" + d.kind.title() + "." + name
}

// AttributeDefinitionBoolean declares a boolean attribute.
type AttributeDefinitionBoolean struct{ attributeDefinition }

// AttributeDefinitionDate declares a date attribute.
type AttributeDefinitionDate struct{ attributeDefinition }

// AttributeDefinitionEnumeration declares an enumeration attribute.
type AttributeDefinitionEnumeration struct {
	attributeDefinition
	// MultiValued permits more than one EnumValue per attribute value.
	MultiValued bool
}

// AttributeDefinitionInteger declares an integer attribute.
type AttributeDefinitionInteger struct{ attributeDefinition }

// AttributeDefinitionReal declares a real attribute.
type AttributeDefinitionReal struct{ attributeDefinition }

// AttributeDefinitionString declares a string attribute.
type AttributeDefinitionString struct{ attributeDefinition }

// AttributeDefinitionXHTML declares a rich text attribute.
type AttributeDefinitionXHTML struct{ attributeDefinition }

func newAttributeDefinition(kind Kind, owner SpecType) attributeDefinition {
	return attributeDefinition{kind: kind, specType: owner}
}

// NewAttributeDefinitionBoolean creates a boolean definition appended to owner.
func NewAttributeDefinitionBoolean(owner SpecType) *AttributeDefinitionBoolean {
	d := &AttributeDefinitionBoolean{newAttributeDefinition(KindBoolean, owner)}
	attach(owner, d)
	return d
}

// NewAttributeDefinitionDate creates a date definition appended to owner.
func NewAttributeDefinitionDate(owner SpecType) *AttributeDefinitionDate {
	d := &AttributeDefinitionDate{newAttributeDefinition(KindDate, owner)}
	attach(owner, d)
	return d
}

// NewAttributeDefinitionEnumeration creates an enumeration definition appended to owner.
func NewAttributeDefinitionEnumeration(owner SpecType) *AttributeDefinitionEnumeration {
	d := &AttributeDefinitionEnumeration{attributeDefinition: newAttributeDefinition(KindEnumeration, owner)}
	attach(owner, d)
	return d
}

// NewAttributeDefinitionInteger creates an integer definition appended to owner.
func NewAttributeDefinitionInteger(owner SpecType) *AttributeDefinitionInteger {
	d := &AttributeDefinitionInteger{newAttributeDefinition(KindInteger, owner)}
	attach(owner, d)
	return d
}

// NewAttributeDefinitionReal creates a real definition appended to owner.
func NewAttributeDefinitionReal(owner SpecType) *AttributeDefinitionReal {
	d := &AttributeDefinitionReal{newAttributeDefinition(KindReal, owner)}
	attach(owner, d)
	return d
}

// NewAttributeDefinitionString creates a string definition appended to owner.
func NewAttributeDefinitionString(owner SpecType) *AttributeDefinitionString {
	d := &AttributeDefinitionString{newAttributeDefinition(KindString, owner)}
	attach(owner, d)
	return d
}

// NewAttributeDefinitionXHTML creates a rich text definition appended to owner.
func NewAttributeDefinitionXHTML(owner SpecType) *AttributeDefinitionXHTML {
	d := &AttributeDefinitionXHTML{newAttributeDefinition(KindXHTML, owner)}
	attach(owner, d)
	return d
}

func attach(owner SpecType, d AttributeDefinition) {
	if owner != nil {
		t := owner.specTypeBase()
		t.attributes = append(t.attributes, d)
	}
}
