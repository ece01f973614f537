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

// customAttributeDefinitionRepository implements the CustomAttributeDefinitionRepository interface
type customAttributeDefinitionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCustomAttributeDefinitionRepository creates a new definition repository instance
func NewCustomAttributeDefinitionRepository(db *gorm.DB, logger *zap.Logger) domainRepo.CustomAttributeDefinitionRepository {
	return &customAttributeDefinitionRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new definition
func (r *customAttributeDefinitionRepository) Create(ctx context.Context, def *model.CustomAttributeDefinition) error {
	if err := r.db.WithContext(ctx).Create(def).Error; err != nil {
		r.logger.Error("Failed to create custom attribute definition",
			zap.String("title", def.Title),
			zap.String("definition_type", def.DefinitionType),
			zap.Error(err))
		return fmt.Errorf("failed to create custom attribute definition: %w", err)
	}
	return nil
}

// GetByID retrieves a definition by id
func (r *customAttributeDefinitionRepository) GetByID(ctx context.Context, id int64) (*model.CustomAttributeDefinition, error) {
	var def model.CustomAttributeDefinition

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&def).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get custom attribute definition",
			zap.Int64("definition_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get custom attribute definition: %w", err)
	}

	return &def, nil
}

// ListForDefinitionType lists definitions attached to a singular type name such as "program"
func (r *customAttributeDefinitionRepository) ListForDefinitionType(ctx context.Context, definitionType string) ([]*model.CustomAttributeDefinition, error) {
	var defs []*model.CustomAttributeDefinition

	err := r.db.WithContext(ctx).
		Where("definition_type = ?", definitionType).
		Order("id ASC").
		Find(&defs).Error

	if err != nil {
		r.logger.Error("Failed to list custom attribute definitions",
			zap.String("definition_type", definitionType),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list custom attribute definitions: %w", err)
	}

	return defs, nil
}

// Delete removes a definition. Values are removed by ON DELETE CASCADE.
func (r *customAttributeDefinitionRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.CustomAttributeDefinition{}, id)
	if result.Error != nil {
		r.logger.Error("Failed to delete custom attribute definition",
			zap.Int64("definition_id", id),
			zap.Error(result.Error))
		return fmt.Errorf("failed to delete custom attribute definition: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", domainErrors.ErrDefinitionNotFound, id)
	}
	return nil
}
