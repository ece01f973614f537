package repository

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/slobodan-ilic/ggrc-core/internal/domain/errors"
	"github.com/slobodan-ilic/ggrc-core/internal/domain/model"
	domainRepo "github.com/slobodan-ilic/ggrc-core/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// customAttributeValueRepository implements the CustomAttributeValueRepository interface
type customAttributeValueRepository struct {
	db      *gorm.DB
	objects domainRepo.ObjectRepository
	logger  *zap.Logger
}

// NewCustomAttributeValueRepository creates a new custom attribute value repository instance
func NewCustomAttributeValueRepository(db *gorm.DB, objects domainRepo.ObjectRepository, logger *zap.Logger) domainRepo.CustomAttributeValueRepository {
	return &customAttributeValueRepository{
		db:      db,
		objects: objects,
		logger:  logger,
	}
}

// Create inserts a new value. A second value for the same object and
// definition fails with ErrDuplicateValue.
func (r *customAttributeValueRepository) Create(ctx context.Context, value *model.CustomAttributeValue) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(value).Error
	if err != nil {
		return r.writeError("create", value, err)
	}
	return nil
}

// Save updates an existing value or inserts it when it has no id yet
func (r *customAttributeValueRepository) Save(ctx context.Context, value *model.CustomAttributeValue) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(value).Error
	if err != nil {
		return r.writeError("save", value, err)
	}
	return nil
}

func (r *customAttributeValueRepository) writeError(op string, value *model.CustomAttributeValue, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		r.logger.Warn("Duplicate custom attribute value",
			zap.String("attributable_type", value.AttributableType),
			zap.Int64("attributable_id", value.AttributableID),
			zap.Int64("custom_attribute_id", value.CustomAttributeID))
		return fmt.Errorf("%w: %s %d, definition %d: %w", domainErrors.ErrDuplicateValue,
			value.AttributableType, value.AttributableID, value.CustomAttributeID, err)
	}

	r.logger.Error("Failed to write custom attribute value",
		zap.String("op", op),
		zap.String("attributable_type", value.AttributableType),
		zap.Int64("attributable_id", value.AttributableID),
		zap.Int64("custom_attribute_id", value.CustomAttributeID),
		zap.Error(err))
	return fmt.Errorf("failed to %s custom attribute value: %w", op, err)
}

// GetByID retrieves a value with its definition preloaded
func (r *customAttributeValueRepository) GetByID(ctx context.Context, id int64) (*model.CustomAttributeValue, error) {
	var value model.CustomAttributeValue

	err := r.db.WithContext(ctx).
		Preload("CustomAttribute").
		Where("id = ?", id).
		First(&value).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", domainErrors.ErrValueNotFound, id)
		}
		r.logger.Error("Failed to get custom attribute value",
			zap.Int64("value_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get custom attribute value: %w", err)
	}

	return &value, nil
}

// GetByObjectAndDefinition retrieves the value of one definition on one object
func (r *customAttributeValueRepository) GetByObjectAndDefinition(ctx context.Context, objectType string, objectID, definitionID int64) (*model.CustomAttributeValue, error) {
	var value model.CustomAttributeValue

	err := r.db.WithContext(ctx).
		Preload("CustomAttribute").
		Where("attributable_type = ? AND attributable_id = ? AND custom_attribute_id = ?", objectType, objectID, definitionID).
		First(&value).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get custom attribute value",
			zap.String("attributable_type", objectType),
			zap.Int64("attributable_id", objectID),
			zap.Int64("custom_attribute_id", definitionID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get custom attribute value: %w", err)
	}

	return &value, nil
}

// ListForObject lists all values attached to one object, ordered by id
func (r *customAttributeValueRepository) ListForObject(ctx context.Context, objectType string, objectID int64) ([]*model.CustomAttributeValue, error) {
	var values []*model.CustomAttributeValue

	err := r.db.WithContext(ctx).
		Preload("CustomAttribute").
		Where("attributable_type = ? AND attributable_id = ?", objectType, objectID).
		Order("id ASC").
		Find(&values).Error

	if err != nil {
		r.logger.Error("Failed to list custom attribute values",
			zap.String("attributable_type", objectType),
			zap.Int64("attributable_id", objectID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list custom attribute values: %w", err)
	}

	return values, nil
}

// Delete removes a single value
func (r *customAttributeValueRepository) Delete(ctx context.Context, value *model.CustomAttributeValue) error {
	result := r.db.WithContext(ctx).Delete(&model.CustomAttributeValue{}, value.ID)
	if result.Error != nil {
		r.logger.Error("Failed to delete custom attribute value",
			zap.Int64("value_id", value.ID),
			zap.Error(result.Error))
		return fmt.Errorf("failed to delete custom attribute value: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", domainErrors.ErrValueNotFound, value.ID)
	}
	return nil
}

// ResolveAttributable loads the host named by attributable_type and attributable_id
func (r *customAttributeValueRepository) ResolveAttributable(ctx context.Context, value *model.CustomAttributeValue) (model.Object, error) {
	if _, err := model.ResolveAttributableKind(value.AttributableType); err != nil {
		return nil, err
	}

	obj, err := r.objects.Load(ctx, value.AttributableType, value.AttributableID)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: %s %d", domainErrors.ErrObjectNotFound, value.AttributableType, value.AttributableID)
	}

	value.SetAttributable(obj)
	return obj, nil
}

// ResolveAttributeObject loads the object a "Map:" value points at. The type
// is taken from attribute_value. Non-reference definitions and values without
// an object id resolve to nil.
func (r *customAttributeValueRepository) ResolveAttributeObject(ctx context.Context, value *model.CustomAttributeValue, def *model.CustomAttributeDefinition) (model.Object, error) {
	if def == nil || !def.IsReference() {
		return nil, nil
	}
	if _, err := model.ResolveReferenceKind(value.AttributeValue); err != nil {
		return nil, err
	}
	if value.AttributeObjectID == nil {
		return nil, nil
	}

	obj, err := r.objects.Load(ctx, value.AttributeValue, *value.AttributeObjectID)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: %s %d", domainErrors.ErrObjectNotFound, value.AttributeValue, *value.AttributeObjectID)
	}

	value.SetAttributeObject(obj)
	return obj, nil
}

// Clone persists a copy of value attached to target
func (r *customAttributeValueRepository) Clone(ctx context.Context, value *model.CustomAttributeValue, target model.Object) (*model.CustomAttributeValue, error) {
	clone := value.CloneFor(target)
	if err := r.Create(ctx, clone); err != nil {
		return nil, err
	}

	r.logger.Debug("Custom attribute value cloned",
		zap.Int64("source_id", value.ID),
		zap.Int64("clone_id", clone.ID),
		zap.Int64("target_id", target.GetID()))
	return clone, nil
}

// CloneAll copies the values of source onto target inside one transaction,
// so a duplicate on any definition leaves target unchanged
func (r *customAttributeValueRepository) CloneAll(ctx context.Context, source, target model.Object) ([]*model.CustomAttributeValue, error) {
	var clones []*model.CustomAttributeValue

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var values []*model.CustomAttributeValue
		err := tx.
			Preload("CustomAttribute").
			Where("attributable_type = ? AND attributable_id = ?", source.ObjectType(), source.GetID()).
			Order("id ASC").
			Find(&values).Error
		if err != nil {
			return fmt.Errorf("failed to list custom attribute values: %w", err)
		}

		clones = make([]*model.CustomAttributeValue, 0, len(values))
		for _, v := range values {
			clone := v.CloneFor(target)
			if err := tx.Omit(clause.Associations).Create(clone).Error; err != nil {
				return r.writeError("clone", clone, err)
			}
			clone.CustomAttribute = v.CustomAttribute
			clones = append(clones, clone)
		}
		return nil
	})
	if err != nil {
		r.logger.Warn("Custom attribute values not cloned",
			zap.String("object_type", source.ObjectType()),
			zap.Int64("source_id", source.GetID()),
			zap.Int64("target_id", target.GetID()),
			zap.Error(err))
		return nil, err
	}

	return clones, nil
}
