package database

import (
	"github.com/slobodan-ilic/ggrc-core/internal/domain/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate creates the tables for every registered object type, the
// definitions and the values. Schema changes beyond that are managed
// outside the service.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running GORM auto-migrations...")

	models := make([]interface{}, 0, len(model.Kinds())+2)
	for _, k := range model.Kinds() {
		models = append(models, k.New())
	}
	models = append(models, &model.CustomAttributeDefinition{}, &model.CustomAttributeValue{})

	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	logger.Info("GORM auto-migrations completed successfully", zap.Int("tables", len(models)))
	return nil
}
