package model

import (
	"fmt"
	"time"

	domainErrors "github.com/slobodan-ilic/ggrc-core/internal/domain/errors"
)

// CustomAttributeValue stores the value of one custom attribute definition on
// one attributable object.
//
// The host is a polymorphic reference (AttributableType, AttributableID)
// without a foreign key. For "Map:" attributes AttributeValue holds the
// referenced type name and AttributeObjectID the referenced row, e.g.
// "Person" and a person id.
type CustomAttributeValue struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomAttributeID int64     `gorm:"not null;uniqueIndex:uq_custom_attribute_values_attributable_definition,priority:2" json:"custom_attribute_id"`
	AttributableID    int64     `gorm:"uniqueIndex:uq_custom_attribute_values_attributable_definition,priority:1;index:idx_custom_attribute_values_attributable,priority:2" json:"attributable_id"`
	AttributableType  string    `gorm:"size:250;index:idx_custom_attribute_values_attributable,priority:1" json:"attributable_type"`
	AttributeValue    string    `gorm:"type:text" json:"attribute_value"`
	AttributeObjectID *int64    `json:"attribute_object_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Relations
	CustomAttribute *CustomAttributeDefinition `gorm:"foreignKey:CustomAttributeID;constraint:OnDelete:CASCADE" json:"-"`

	attributable    Object
	attributeObject Object
}

// TableName specifies the table name for GORM
func (CustomAttributeValue) TableName() string {
	return "custom_attribute_values"
}

// NewCustomAttributeValue builds a value for host and validates it against
// def. It never returns an unvalidated value.
func NewCustomAttributeValue(def *CustomAttributeDefinition, host Object, value string, ref Object) (*CustomAttributeValue, error) {
	v := &CustomAttributeValue{AttributeValue: value}
	if def != nil {
		v.CustomAttributeID = def.ID
		v.CustomAttribute = def
	}
	v.SetAttributable(host)
	v.SetAttributeObject(ref)

	if err := v.ValidateWith(def); err != nil {
		return nil, err
	}
	return v, nil
}

// Attributable returns the host object if it was set or resolved.
func (v *CustomAttributeValue) Attributable() Object {
	return v.attributable
}

// SetAttributable attaches the value to obj. A nil obj clears the host
// reference.
func (v *CustomAttributeValue) SetAttributable(obj Object) {
	v.attributable = obj
	if obj == nil {
		v.AttributableID = 0
		v.AttributableType = ""
		return
	}
	v.AttributableID = obj.GetID()
	v.AttributableType = obj.ObjectType()
}

// AttributeObject returns the referenced object if it was set or resolved.
func (v *CustomAttributeValue) AttributeObject() Object {
	return v.attributeObject
}

// SetAttributeObject points the value at obj. Setting nil is a no-op: a
// reference, once set, can only be replaced.
func (v *CustomAttributeValue) SetAttributeObject(obj Object) {
	if obj == nil {
		return
	}
	id := obj.GetID()
	v.AttributeObjectID = &id
	v.attributeObject = obj
}

// AttributeObjectType returns the referenced type name for "Map:"
// definitions and "" otherwise.
func (v *CustomAttributeValue) AttributeObjectType(def *CustomAttributeDefinition) string {
	if def == nil || !def.IsReference() {
		return ""
	}
	if v.attributeObject != nil {
		return v.attributeObject.ObjectType()
	}
	if v.AttributeObjectID != nil {
		return v.AttributeValue
	}
	return ""
}

// ValidateWith checks the value against its definition:
// the host type must be registered, def must exist and target the host's
// type, and the attribute kind's own rules must pass. Reference values may be
// normalized in place.
func (v *CustomAttributeValue) ValidateWith(def *CustomAttributeDefinition) error {
	kind, err := ResolveAttributableKind(v.AttributableType)
	if err != nil {
		return err
	}
	if def == nil {
		return domainErrors.ErrDefinitionNotFound
	}
	if v.CustomAttributeID != 0 && def.ID != v.CustomAttributeID {
		return fmt.Errorf("%w: value uses %d, got %d", domainErrors.ErrDefinitionNotFound, v.CustomAttributeID, def.ID)
	}
	if def.DefinitionType != kind.Singular() {
		return fmt.Errorf("%w: definition %d is for %q, object is %q",
			domainErrors.ErrDefinitionTypeMismatch, def.ID, def.DefinitionType, kind.Singular())
	}
	return def.Kind().Validate(v, def)
}

// CloneFor copies the definition, type, value and reference onto target.
// AttributableType is kept from the source value.
func (v *CustomAttributeValue) CloneFor(target Object) *CustomAttributeValue {
	clone := &CustomAttributeValue{
		CustomAttributeID: v.CustomAttributeID,
		AttributableID:    target.GetID(),
		AttributableType:  v.AttributableType,
		AttributeValue:    v.AttributeValue,
		attributable:      target,
		attributeObject:   v.attributeObject,
	}
	if v.AttributeObjectID != nil {
		id := *v.AttributeObjectID
		clone.AttributeObjectID = &id
	}
	return clone
}
