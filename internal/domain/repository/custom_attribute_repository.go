package repository

import (
	"context"

	"github.com/slobodan-ilic/ggrc-core/internal/domain/model"
	"gorm.io/gorm/clause"
)

// Predicate builds a condition over a single string column.
type Predicate func(column clause.Column) clause.Expression

// CustomFilter turns a predicate into an EXISTS condition over a host table.
type CustomFilter func(Predicate) clause.Expression

// CustomAttributeValueRepository defines persistence for custom attribute values
type CustomAttributeValueRepository interface {
	Create(ctx context.Context, value *model.CustomAttributeValue) error
	Save(ctx context.Context, value *model.CustomAttributeValue) error
	GetByID(ctx context.Context, id int64) (*model.CustomAttributeValue, error)

	// GetByObjectAndDefinition returns nil, nil when the object has no value for the definition
	GetByObjectAndDefinition(ctx context.Context, objectType string, objectID, definitionID int64) (*model.CustomAttributeValue, error)
	ListForObject(ctx context.Context, objectType string, objectID int64) ([]*model.CustomAttributeValue, error)
	Delete(ctx context.Context, value *model.CustomAttributeValue) error

	// ResolveAttributable loads the host object through the object registry
	ResolveAttributable(ctx context.Context, value *model.CustomAttributeValue) (model.Object, error)

	// ResolveAttributeObject loads the referenced object; nil for non-reference definitions
	ResolveAttributeObject(ctx context.Context, value *model.CustomAttributeValue, def *model.CustomAttributeDefinition) (model.Object, error)

	// Clone persists a copy of value attached to target
	Clone(ctx context.Context, value *model.CustomAttributeValue, target model.Object) (*model.CustomAttributeValue, error)

	// CloneAll copies every value of source onto target in one transaction.
	// Nothing is stored when any copy fails.
	CloneAll(ctx context.Context, source, target model.Object) ([]*model.CustomAttributeValue, error)

	// FilterByCustom builds an EXISTS filter over objects of objectType whose value for definitionID satisfies a predicate
	FilterByCustom(ctx context.Context, objectType string, definitionID int64) (CustomFilter, error)

	// SearchObjectIDs returns ids of objectType rows matching filter(predicate), ordered by id
	SearchObjectIDs(ctx context.Context, objectType string, filter CustomFilter, predicate Predicate) ([]int64, error)
}

// CustomAttributeDefinitionRepository defines persistence for custom attribute definitions
type CustomAttributeDefinitionRepository interface {
	Create(ctx context.Context, def *model.CustomAttributeDefinition) error

	// GetByID returns nil, nil when the definition does not exist
	GetByID(ctx context.Context, id int64) (*model.CustomAttributeDefinition, error)
	ListForDefinitionType(ctx context.Context, definitionType string) ([]*model.CustomAttributeDefinition, error)

	// Delete removes the definition; its values are removed by the foreign key cascade
	Delete(ctx context.Context, id int64) error
}

// ObjectRepository loads and stores registered objects by type name
type ObjectRepository interface {
	Create(ctx context.Context, obj model.Object) error

	// Load returns nil, nil when no row exists
	Load(ctx context.Context, typeName string, id int64) (model.Object, error)

	// Delete removes the object together with its custom attribute values
	Delete(ctx context.Context, obj model.Object) error
}
