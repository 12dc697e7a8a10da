package reqif

// Factory tables map wire element names to constructors. Names missing from
// a table are unknown: the reader logs them and skips the subtree.

var datatypeFactories = map[string]func(*Content) DatatypeDefinition{
	KindBoolean.DatatypeElement():     func(c *Content) DatatypeDefinition { return NewDatatypeDefinitionBoolean(c) },
	KindDate.DatatypeElement():        func(c *Content) DatatypeDefinition { return NewDatatypeDefinitionDate(c) },
	KindEnumeration.DatatypeElement(): func(c *Content) DatatypeDefinition { return NewDatatypeDefinitionEnumeration(c) },
	KindInteger.DatatypeElement():     func(c *Content) DatatypeDefinition { return NewDatatypeDefinitionInteger(c) },
	KindReal.DatatypeElement():        func(c *Content) DatatypeDefinition { return NewDatatypeDefinitionReal(c) },
	KindString.DatatypeElement():      func(c *Content) DatatypeDefinition { return NewDatatypeDefinitionString(c) },
	KindXHTML.DatatypeElement():       func(c *Content) DatatypeDefinition { return NewDatatypeDefinitionXHTML(c) },
}

var attributeDefinitionFactories = map[string]func(SpecType) AttributeDefinition{
	KindBoolean.AttributeDefinitionElement():     func(t SpecType) AttributeDefinition { return NewAttributeDefinitionBoolean(t) },
	KindDate.AttributeDefinitionElement():        func(t SpecType) AttributeDefinition { return NewAttributeDefinitionDate(t) },
	KindEnumeration.AttributeDefinitionElement(): func(t SpecType) AttributeDefinition { return NewAttributeDefinitionEnumeration(t) },
	KindInteger.AttributeDefinitionElement():     func(t SpecType) AttributeDefinition { return NewAttributeDefinitionInteger(t) },
	KindReal.AttributeDefinitionElement():        func(t SpecType) AttributeDefinition { return NewAttributeDefinitionReal(t) },
	KindString.AttributeDefinitionElement():      func(t SpecType) AttributeDefinition { return NewAttributeDefinitionString(t) },
	KindXHTML.AttributeDefinitionElement():       func(t SpecType) AttributeDefinition { return NewAttributeDefinitionXHTML(t) },
}

var attributeValueFactories = map[string]func(SpecElement) AttributeValue{
	KindBoolean.AttributeValueElement():     func(e SpecElement) AttributeValue { return NewAttributeValueBoolean(e) },
	KindDate.AttributeValueElement():        func(e SpecElement) AttributeValue { return NewAttributeValueDate(e) },
	KindEnumeration.AttributeValueElement(): func(e SpecElement) AttributeValue { return NewAttributeValueEnumeration(e) },
	KindInteger.AttributeValueElement():     func(e SpecElement) AttributeValue { return NewAttributeValueInteger(e) },
	KindReal.AttributeValueElement():        func(e SpecElement) AttributeValue { return NewAttributeValueReal(e) },
	KindString.AttributeValueElement():      func(e SpecElement) AttributeValue { return NewAttributeValueString(e) },
	KindXHTML.AttributeValueElement():       func(e SpecElement) AttributeValue { return NewAttributeValueXHTML(e) },
}

var specTypeFactories = map[string]func(*Content) SpecType{
	SpecObjectTypeKind.String():    func(c *Content) SpecType { return NewSpecObjectType(c) },
	SpecRelationTypeKind.String():  func(c *Content) SpecType { return NewSpecRelationType(c) },
	RelationGroupTypeKind.String(): func(c *Content) SpecType { return NewRelationGroupType(c) },
	SpecificationTypeKind.String(): func(c *Content) SpecType { return NewSpecificationType(c) },
}

// NewDatatypeDefinition creates the datatype variant of kind k in c.
func NewDatatypeDefinition(c *Content, k Kind) DatatypeDefinition {
	return datatypeFactories[k.DatatypeElement()](c)
}

// NewAttributeDefinition creates the definition variant of kind k in owner.
func NewAttributeDefinition(owner SpecType, k Kind) AttributeDefinition {
	return attributeDefinitionFactories[k.AttributeDefinitionElement()](owner)
}

// NewAttributeValue creates the value variant of kind k in owner.
func NewAttributeValue(owner SpecElement, k Kind) AttributeValue {
	return attributeValueFactories[k.AttributeValueElement()](owner)
}

// NewSpecType creates the spec type of kind k in c.
func NewSpecType(c *Content, k SpecTypeKind) SpecType {
	return specTypeFactories[k.String()](c)
}
