package model

import (
	"strings"
	"time"
)

// CustomAttributeDefinition describes an attribute that can be set on every
// object of DefinitionType.
type CustomAttributeDefinition struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title              string    `gorm:"size:250;not null" json:"title"`
	HelpText           string    `gorm:"size:250" json:"helptext"`
	DefinitionType     string    `gorm:"size:250;not null;index" json:"definition_type"`
	AttributeType      string    `gorm:"size:250;not null" json:"attribute_type"`
	MultiChoiceOptions string    `gorm:"type:text" json:"multi_choice_options"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (CustomAttributeDefinition) TableName() string {
	return "custom_attribute_definitions"
}

// Kind returns the attribute kind for AttributeType.
func (d *CustomAttributeDefinition) Kind() AttributeKind {
	return ParseAttributeKind(d.AttributeType)
}

// IsReference reports whether AttributeType starts with "Map:".
func (d *CustomAttributeDefinition) IsReference() bool {
	return strings.HasPrefix(d.AttributeType, ReferencePrefix)
}

// ReferenceType is the type name after "Map:", or "" for other attributes.
func (d *CustomAttributeDefinition) ReferenceType() string {
	if !d.IsReference() {
		return ""
	}
	return strings.TrimPrefix(d.AttributeType, ReferencePrefix)
}

// Options splits MultiChoiceOptions on commas. Options are not trimmed.
func (d *CustomAttributeDefinition) Options() []string {
	return strings.Split(d.MultiChoiceOptions, ",")
}
