package dto

import (
	"time"

	"github.com/slobodan-ilic/ggrc-core/internal/domain/model"
)

// ObjectStub identifies an object without embedding it
type ObjectStub struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Type string `json:"type" validate:"required"`
}

// CustomAttributeValueDTO is the published form of a custom attribute value.
// AttributeObject is a stub or null, never the raw object id.
type CustomAttributeValueDTO struct {
	ID                int64       `json:"id"`
	CustomAttributeID int64       `json:"custom_attribute_id"`
	AttributableID    int64       `json:"attributable_id"`
	AttributableType  string      `json:"attributable_type"`
	AttributeValue    string      `json:"attribute_value"`
	AttributeObject   *ObjectStub `json:"attribute_object"`
}

// NewCustomAttributeValueDTO converts a stored value to its published form
func NewCustomAttributeValueDTO(v *model.CustomAttributeValue) CustomAttributeValueDTO {
	out := CustomAttributeValueDTO{
		ID:                v.ID,
		CustomAttributeID: v.CustomAttributeID,
		AttributableID:    v.AttributableID,
		AttributableType:  v.AttributableType,
		AttributeValue:    v.AttributeValue,
	}

	if v.AttributeObjectID != nil {
		typeName := v.AttributeObjectType(v.CustomAttribute)
		if typeName == "" {
			typeName = v.AttributeValue
		}
		out.AttributeObject = &ObjectStub{ID: *v.AttributeObjectID, Type: typeName}
	}

	return out
}

// CustomAttributeValueList is the response for an object's values
type CustomAttributeValueList struct {
	ObjectType string                    `json:"object_type"`
	ObjectID   int64                     `json:"object_id"`
	Values     []CustomAttributeValueDTO `json:"values"`
}

// SetValueRequest is the body of a value update
type SetValueRequest struct {
	AttributeValue  string      `json:"attribute_value" validate:"max=65535"`
	AttributeObject *ObjectStub `json:"attribute_object"`
}

// CloneValuesRequest names the object receiving the copies
type CloneValuesRequest struct {
	TargetID int64 `json:"target_id" validate:"required,gt=0"`
}

// SearchRequest is bound from the search query string
type SearchRequest struct {
	ObjectType        string `param:"type"`
	CustomAttributeID int64  `query:"custom_attribute_id" validate:"required,gt=0"`
	Op                string `query:"op" validate:"omitempty,oneof=eq contains in"`
	Q                 string `query:"q"`
}

// CreateDefinitionRequest is the body of a definition create
type CreateDefinitionRequest struct {
	Title              string `json:"title" validate:"required,max=250"`
	HelpText           string `json:"helptext" validate:"max=250"`
	DefinitionType     string `json:"definition_type" validate:"required,max=250"`
	AttributeType      string `json:"attribute_type" validate:"required,max=250"`
	MultiChoiceOptions string `json:"multi_choice_options"`
}

// SetValueInput carries one value write into the service
type SetValueInput struct {
	ObjectType   string
	ObjectID     int64
	DefinitionID int64
	Value        string
	Reference    *ObjectStub
}

// Search operators
const (
	SearchOpEqual    = "eq"
	SearchOpContains = "contains"
	SearchOpIn       = "in"
)

// SearchInput carries a custom attribute search into the service
type SearchInput struct {
	ObjectType   string
	DefinitionID int64
	Op           string
	Query        string
}

// SearchResult lists the ids of matching objects
type SearchResult struct {
	ObjectType string  `json:"object_type"`
	IDs        []int64 `json:"ids"`
}

// Value event actions
const (
	ValueActionSet     = "set"
	ValueActionCleared = "cleared"
	ValueActionCloned  = "cloned"
)

// ValueEvent is published whenever a value changes
type ValueEvent struct {
	EventID    string                  `json:"event_id"`
	Action     string                  `json:"action"`
	OccurredAt time.Time               `json:"occurred_at"`
	Value      CustomAttributeValueDTO `json:"value"`
}
