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
)

// objectRepository loads and stores registered object types
type objectRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewObjectRepository creates a new object repository instance
func NewObjectRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ObjectRepository {
	return &objectRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new object of any registered type
func (r *objectRepository) Create(ctx context.Context, obj model.Object) error {
	if _, ok := model.LookupKind(obj.ObjectType()); !ok {
		return &domainErrors.UnknownObjectTypeError{TypeName: obj.ObjectType()}
	}

	if err := r.db.WithContext(ctx).Create(obj).Error; err != nil {
		r.logger.Error("Failed to create object",
			zap.String("object_type", obj.ObjectType()),
			zap.Error(err))
		return fmt.Errorf("failed to create %s: %w", obj.ObjectType(), err)
	}
	return nil
}

// Load fetches the object of typeName with the given id.
// Returns nil, nil when the row does not exist.
func (r *objectRepository) Load(ctx context.Context, typeName string, id int64) (model.Object, error) {
	kind, ok := model.LookupKind(typeName)
	if !ok {
		return nil, &domainErrors.UnknownObjectTypeError{TypeName: typeName}
	}

	obj := kind.New()
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(obj).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to load object",
			zap.String("object_type", typeName),
			zap.Int64("object_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to load %s %d: %w", typeName, id, err)
	}
	return obj, nil
}

// Delete removes obj and every custom attribute value attached to it
func (r *objectRepository) Delete(ctx context.Context, obj model.Object) error {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("attributable_type = ? AND attributable_id = ?", obj.ObjectType(), obj.GetID()).
			Delete(&model.CustomAttributeValue{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected

		return tx.Delete(obj).Error
	})
	if err != nil {
		r.logger.Error("Failed to delete object",
			zap.String("object_type", obj.ObjectType()),
			zap.Int64("object_id", obj.GetID()),
			zap.Error(err))
		return fmt.Errorf("failed to delete %s %d: %w", obj.ObjectType(), obj.GetID(), err)
	}

	r.logger.Info("Object deleted",
		zap.String("object_type", obj.ObjectType()),
		zap.Int64("object_id", obj.GetID()),
		zap.Int64("values_removed", removed))
	return nil
}
