package reqif

import (
	"time"

	"github.com/FocuswithJustin/ReqIF/core/errors"
	"github.com/FocuswithJustin/ReqIF/core/xhtml"
)

// AttributeValue holds the value of one attribute of a spec element. There is
// one concrete variant per Kind; only types in this package implement it.
type AttributeValue interface {
	Kind() Kind
	// Definition returns the governing attribute definition, nil when unset.
	Definition() AttributeDefinition
	// SetDefinition assigns the governing definition. A definition of a
	// different kind is rejected with a TypeMismatchError.
	SetDefinition(AttributeDefinition) error
	value() *attributeValue
}

type attributeValue struct {
	kind       Kind
	definition AttributeDefinition
}

func (v *attributeValue) Kind() Kind                      { return v.kind }
func (v *attributeValue) Definition() AttributeDefinition { return v.definition }
func (v *attributeValue) value() *attributeValue          { return v }

func (v *attributeValue) SetDefinition(d AttributeDefinition) error {
	if d != nil && d.Kind() != v.kind {
		return errors.NewTypeMismatch("AttributeValue"+v.kind.title()+".Definition",
			v.kind.AttributeDefinitionElement(), d.Kind().AttributeDefinitionElement())
	}
	v.definition = d
	return nil
}

// AttributeValueBoolean holds a boolean.
type AttributeValueBoolean struct {
	attributeValue
	TheValue bool
}

// AttributeValueDate holds a timestamp.
type AttributeValueDate struct {
	attributeValue
	TheValue time.Time
}

// AttributeValueEnumeration holds the selected enumeration values.
type AttributeValueEnumeration struct {
	attributeValue
	Values []*EnumValue
}

// AttributeValueInteger holds an integer.
type AttributeValueInteger struct {
	attributeValue
	TheValue int64
}

// AttributeValueReal holds a floating point number.
type AttributeValueReal struct {
	attributeValue
	TheValue float64
}

// AttributeValueString holds plain text.
type AttributeValueString struct {
	attributeValue
	TheValue string
}

// AttributeValueXHTML holds rich text markup. TheValue and TheOriginalValue
// are the raw inner markup of THE-VALUE and THE-ORIGINAL-VALUE.
type AttributeValueXHTML struct {
	attributeValue
	TheValue         string
	TheOriginalValue string
	IsSimplified     bool
}

// PlainText returns TheValue with markup stripped.
func (v *AttributeValueXHTML) PlainText() string {
	return xhtml.PlainText(v.TheValue)
}

// ExternalObjects returns the embedded objects referenced by TheValue.
func (v *AttributeValueXHTML) ExternalObjects() ([]xhtml.ExternalObject, error) {
	return xhtml.ExternalObjects(v.TheValue)
}

// NewAttributeValueBoolean creates a value appended to owner when owner is
// non-nil. The same holds for the other NewAttributeValue constructors.
func NewAttributeValueBoolean(owner SpecElement) *AttributeValueBoolean {
	v := &AttributeValueBoolean{attributeValue: attributeValue{kind: KindBoolean}}
	addValue(owner, v)
	return v
}

// NewAttributeValueDate creates a date value.
func NewAttributeValueDate(owner SpecElement) *AttributeValueDate {
	v := &AttributeValueDate{attributeValue: attributeValue{kind: KindDate}}
	addValue(owner, v)
	return v
}

// NewAttributeValueEnumeration creates an enumeration value.
func NewAttributeValueEnumeration(owner SpecElement) *AttributeValueEnumeration {
	v := &AttributeValueEnumeration{attributeValue: attributeValue{kind: KindEnumeration}}
	addValue(owner, v)
	return v
}

// NewAttributeValueInteger creates an integer value.
func NewAttributeValueInteger(owner SpecElement) *AttributeValueInteger {
	v := &AttributeValueInteger{attributeValue: attributeValue{kind: KindInteger}}
	addValue(owner, v)
	return v
}

// NewAttributeValueReal creates a real value.
func NewAttributeValueReal(owner SpecElement) *AttributeValueReal {
	v := &AttributeValueReal{attributeValue: attributeValue{kind: KindReal}}
	addValue(owner, v)
	return v
}

// NewAttributeValueString creates a string value.
func NewAttributeValueString(owner SpecElement) *AttributeValueString {
	v := &AttributeValueString{attributeValue: attributeValue{kind: KindString}}
	addValue(owner, v)
	return v
}

// NewAttributeValueXHTML creates a rich text value.
func NewAttributeValueXHTML(owner SpecElement) *AttributeValueXHTML {
	v := &AttributeValueXHTML{attributeValue: attributeValue{kind: KindXHTML}}
	addValue(owner, v)
	return v
}

func addValue(owner SpecElement, v AttributeValue) {
	if owner != nil {
		e := owner.element()
		e.values = append(e.values, v)
	}
}

func checkValue(slot string, want Kind, v AttributeValue) error {
	if v == nil || v.Kind() == want {
		return nil
	}
	return errors.NewTypeMismatch(slot, want.AttributeValueElement(), v.Kind().AttributeValueElement())
}
