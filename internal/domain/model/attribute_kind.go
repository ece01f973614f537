package model

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	domainErrors "github.com/slobodan-ilic/ggrc-core/internal/domain/errors"
)

// Attribute type names stored in CustomAttributeDefinition.AttributeType.
const (
	AttributeTypeText     = "Text"
	AttributeTypeRichText = "Rich Text"
	AttributeTypeDropdown = "Dropdown"
	AttributeTypeCheckbox = "Checkbox"
	AttributeTypeDate     = "Date"

	// ReferencePrefix marks attribute types whose value points at another
	// object, e.g. "Map:Person".
	ReferencePrefix = "Map:"
)

// AttributeKind is the closed set of attribute type behaviours. Each kind
// validates (and may normalize) a value against its definition.
type AttributeKind interface {
	Name() string
	Validate(v *CustomAttributeValue, def *CustomAttributeDefinition) error
}

// ParseAttributeKind maps a definition's attribute type to its kind. Unknown
// types and references to unregistered types get PlainKind.
func ParseAttributeKind(attributeType string) AttributeKind {
	switch {
	case attributeType == AttributeTypeDropdown:
		return DropdownKind{}
	case strings.HasPrefix(attributeType, ReferencePrefix):
		target := strings.TrimPrefix(attributeType, ReferencePrefix)
		if _, err := ResolveReferenceKind(target); err == nil {
			return ReferenceKind{Target: target}
		}
	}
	return PlainKind{TypeName: attributeType}
}

// PlainKind stores the literal value without further checks. Text, Rich
// Text, Date and Checkbox attributes are plain.
type PlainKind struct {
	TypeName string
}

func (k PlainKind) Name() string { return k.TypeName }

func (PlainKind) Validate(*CustomAttributeValue, *CustomAttributeDefinition) error { return nil }

// DropdownKind accepts an empty value or one of the definition's options.
type DropdownKind struct{}

func (DropdownKind) Name() string { return AttributeTypeDropdown }

func (DropdownKind) Validate(v *CustomAttributeValue, def *CustomAttributeDefinition) error {
	options := def.Options()
	if v.AttributeValue != "" && !slices.Contains(options, v.AttributeValue) {
		return &domainErrors.InvalidOptionError{Value: v.AttributeValue, Options: options}
	}
	return nil
}

// ReferenceKind points at an object of type Target. The value may be given
// in the combined "Type:id" form, which is split into AttributeValue and
// AttributeObjectID. The id is not checked against the database here.
type ReferenceKind struct {
	Target string
}

func (k ReferenceKind) Name() string { return ReferencePrefix + k.Target }

func (k ReferenceKind) Validate(v *CustomAttributeValue, _ *CustomAttributeDefinition) error {
	if !strings.Contains(v.AttributeValue, ":") {
		return nil
	}

	parts := strings.Split(v.AttributeValue, ":")
	if len(parts) != 2 {
		return fmt.Errorf("%w: %q", domainErrors.ErrInvalidReference, v.AttributeValue)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", domainErrors.ErrInvalidReference, v.AttributeValue, err)
	}

	v.AttributeValue = parts[0]
	v.AttributeObjectID = &id
	return nil
}
