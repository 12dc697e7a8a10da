package reqif

import (
	"github.com/FocuswithJustin/ReqIF/core/errors"
)

// Required references are checked before anything is written for an entity,
// in a fixed order: Type, Source, Target, SourceSpecification,
// TargetSpecification, Identifier. The first missing one is reported.

func missing(entity string, id *Identifiable, slot string) error {
	return errors.NewSerialization(entity, id.Identifier, id.LongName, slot)
}

func validateIdentifier(entity string, id *Identifiable) error {
	if id.Identifier == "" {
		return missing(entity, id, "Identifier")
	}
	return nil
}

// ValidateSpecElement reports the first missing prerequisite of e.
func ValidateSpecElement(e SpecElement) error {
	base := e.element()
	entity := elementName(base.expects)
	if base.specType == nil {
		return missing(entity, &base.Identifiable, "Type")
	}
	switch el := e.(type) {
	case *SpecRelation:
		if el.Source == nil {
			return missing(entity, &base.Identifiable, "Source")
		}
		if el.Target == nil {
			return missing(entity, &base.Identifiable, "Target")
		}
	case *RelationGroup:
		if el.SourceSpecification == nil {
			return missing(entity, &base.Identifiable, "SourceSpecification")
		}
		if el.TargetSpecification == nil {
			return missing(entity, &base.Identifiable, "TargetSpecification")
		}
	}
	return validateIdentifier(entity, &base.Identifiable)
}

// ValidateAttributeDefinition reports a missing Type, then a missing Identifier.
func ValidateAttributeDefinition(d AttributeDefinition) error {
	base := d.definition()
	entity := "AttributeDefinition" + base.kind.title()
	if base.datatype == nil {
		return missing(entity, &base.Identifiable, "Type")
	}
	return validateIdentifier(entity, &base.Identifiable)
}

// ValidateAttributeValue reports a missing Definition. owner identifies the
// element carrying the value; it may be nil for default values.
func ValidateAttributeValue(v AttributeValue, owner Entity) error {
	if v.Definition() != nil {
		return nil
	}
	id := &Identifiable{}
	if owner != nil {
		id = owner.Identity()
	}
	return missing("AttributeValue"+v.Kind().title(), id, "Definition")
}
