package reqif

import (
	"github.com/FocuswithJustin/ReqIF/core/errors"
)

// DatatypeDefinition is one of the seven datatype definition variants. The
// set is closed: only types in this package implement it.
type DatatypeDefinition interface {
	Entity
	Kind() Kind
	datatype() *datatypeDefinition
}

type datatypeDefinition struct {
	Identifiable
	kind Kind
}

// Kind reports which of the seven variants this definition is.
func (d *datatypeDefinition) Kind() Kind { return d.kind }

func (d *datatypeDefinition) datatype() *datatypeDefinition { return d }

// DatatypeDefinitionBoolean defines xsd:boolean values.
type DatatypeDefinitionBoolean struct{ datatypeDefinition }

// DatatypeDefinitionDate defines xsd:dateTime values.
type DatatypeDefinitionDate struct{ datatypeDefinition }

// DatatypeDefinitionEnumeration owns the values an enumeration attribute may take.
type DatatypeDefinitionEnumeration struct {
	datatypeDefinition
	SpecifiedValues []*EnumValue
}

// DatatypeDefinitionInteger defines integer values with optional bounds.
type DatatypeDefinitionInteger struct {
	datatypeDefinition
	Min *int64
	Max *int64
}

// DatatypeDefinitionReal defines floating point values.
type DatatypeDefinitionReal struct {
	datatypeDefinition
	Accuracy *int64
	Min      *float64
	Max      *float64
}

// DatatypeDefinitionString defines string values.
type DatatypeDefinitionString struct {
	datatypeDefinition
	MaxLength *int64
}

// DatatypeDefinitionXHTML defines rich text values.
type DatatypeDefinitionXHTML struct{ datatypeDefinition }

// EnumValue is one permitted value of an enumeration datatype. It is owned by
// its datatype and not registered in Content on its own.
type EnumValue struct {
	Identifiable
	Properties *EmbeddedValue
	datatype   *DatatypeDefinitionEnumeration
}

// Datatype returns the enumeration that owns v.
func (v *EnumValue) Datatype() *DatatypeDefinitionEnumeration { return v.datatype }

// EmbeddedValue is the ordinal/content pair of an EnumValue.
type EmbeddedValue struct {
	Key          int64
	OtherContent string
}

// NewDatatypeDefinitionBoolean creates a boolean datatype registered in c.
func NewDatatypeDefinitionBoolean(c *Content) *DatatypeDefinitionBoolean {
	d := &DatatypeDefinitionBoolean{datatypeDefinition{kind: KindBoolean}}
	c.addDatatype(d)
	return d
}

// NewDatatypeDefinitionDate creates a date datatype registered in c.
func NewDatatypeDefinitionDate(c *Content) *DatatypeDefinitionDate {
	d := &DatatypeDefinitionDate{datatypeDefinition{kind: KindDate}}
	c.addDatatype(d)
	return d
}

// NewDatatypeDefinitionEnumeration creates an enumeration datatype registered in c.
func NewDatatypeDefinitionEnumeration(c *Content) *DatatypeDefinitionEnumeration {
	d := &DatatypeDefinitionEnumeration{datatypeDefinition: datatypeDefinition{kind: KindEnumeration}}
	c.addDatatype(d)
	return d
}

// NewDatatypeDefinitionInteger creates an integer datatype registered in c.
func NewDatatypeDefinitionInteger(c *Content) *DatatypeDefinitionInteger {
	d := &DatatypeDefinitionInteger{datatypeDefinition: datatypeDefinition{kind: KindInteger}}
	c.addDatatype(d)
	return d
}

// NewDatatypeDefinitionReal creates a real datatype registered in c.
func NewDatatypeDefinitionReal(c *Content) *DatatypeDefinitionReal {
	d := &DatatypeDefinitionReal{datatypeDefinition: datatypeDefinition{kind: KindReal}}
	c.addDatatype(d)
	return d
}

// NewDatatypeDefinitionString creates a string datatype registered in c.
func NewDatatypeDefinitionString(c *Content) *DatatypeDefinitionString {
	d := &DatatypeDefinitionString{datatypeDefinition: datatypeDefinition{kind: KindString}}
	c.addDatatype(d)
	return d
}

// NewDatatypeDefinitionXHTML creates an XHTML datatype registered in c.
func NewDatatypeDefinitionXHTML(c *Content) *DatatypeDefinitionXHTML {
	d := &DatatypeDefinitionXHTML{datatypeDefinition{kind: KindXHTML}}
	c.addDatatype(d)
	return d
}

// NewEnumValue creates a value owned by (and appended to) d.
func NewEnumValue(d *DatatypeDefinitionEnumeration) *EnumValue {
	v := &EnumValue{datatype: d}
	if d != nil {
		d.SpecifiedValues = append(d.SpecifiedValues, v)
	}
	return v
}

// checkDatatype rejects a datatype whose kind differs from want.
func checkDatatype(slot string, want Kind, dt DatatypeDefinition) error {
	if dt == nil || dt.Kind() == want {
		return nil
	}
	return errors.NewTypeMismatch(slot, want.DatatypeElement(), dt.Kind().DatatypeElement())
}
