package reqif

// Kind identifies one of the seven closed datatype kinds shared by datatype
// definitions, attribute definitions and attribute values.
type Kind int

const (
	KindBoolean Kind = iota
	KindDate
	KindEnumeration
	KindInteger
	KindReal
	KindString
	KindXHTML
)

// Kinds lists every kind in wire-format order.
var Kinds = []Kind{KindBoolean, KindDate, KindEnumeration, KindInteger, KindReal, KindString, KindXHTML}

var kindNames = [...]string{
	KindBoolean:     "BOOLEAN",
	KindDate:        "DATE",
	KindEnumeration: "ENUMERATION",
	KindInteger:     "INTEGER",
	KindReal:        "REAL",
	KindString:      "STRING",
	KindXHTML:       "XHTML",
}

// String returns the wire-format suffix, e.g. "ENUMERATION".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "UNKNOWN"
	}
	return kindNames[k]
}

var kindTitles = [...]string{
	KindBoolean:     "Boolean",
	KindDate:        "Date",
	KindEnumeration: "Enumeration",
	KindInteger:     "Integer",
	KindReal:        "Real",
	KindString:      "String",
	KindXHTML:       "XHTML",
}

// title is the Go type suffix of the kind, e.g. "Enumeration".
func (k Kind) title() string {
	if k < 0 || int(k) >= len(kindTitles) {
		return "Unknown"
	}
	return kindTitles[k]
}

// DatatypeElement is the element name of a datatype definition of this kind.
func (k Kind) DatatypeElement() string { return "DATATYPE-DEFINITION-" + k.String() }

// DatatypeRefElement is the element name of a reference to such a definition.
func (k Kind) DatatypeRefElement() string { return k.DatatypeElement() + "-REF" }

// AttributeDefinitionElement is the element name of an attribute definition of this kind.
func (k Kind) AttributeDefinitionElement() string { return "ATTRIBUTE-DEFINITION-" + k.String() }

// AttributeDefinitionRefElement is the element name of a reference to such a definition.
func (k Kind) AttributeDefinitionRefElement() string { return k.AttributeDefinitionElement() + "-REF" }

// AttributeValueElement is the element name of an attribute value of this kind.
func (k Kind) AttributeValueElement() string { return "ATTRIBUTE-VALUE-" + k.String() }

// SpecTypeKind identifies the four spec type families.
type SpecTypeKind int

const (
	SpecObjectTypeKind SpecTypeKind = iota
	SpecRelationTypeKind
	RelationGroupTypeKind
	SpecificationTypeKind
)

var specTypeElements = [...]string{
	SpecObjectTypeKind:    "SPEC-OBJECT-TYPE",
	SpecRelationTypeKind:  "SPEC-RELATION-TYPE",
	RelationGroupTypeKind: "RELATION-GROUP-TYPE",
	SpecificationTypeKind: "SPECIFICATION-TYPE",
}

// String returns the wire-format element name, e.g. "SPEC-OBJECT-TYPE".
func (k SpecTypeKind) String() string {
	if k < 0 || int(k) >= len(specTypeElements) {
		return "UNKNOWN"
	}
	return specTypeElements[k]
}

// RefElement is the element name used to reference a spec type of this kind.
func (k SpecTypeKind) RefElement() string { return k.String() + "-REF" }
