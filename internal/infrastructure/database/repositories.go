package database

import (
	"github.com/slobodan-ilic/ggrc-core/internal/adapter/repository"
	domainRepo "github.com/slobodan-ilic/ggrc-core/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Values      domainRepo.CustomAttributeValueRepository
	Definitions domainRepo.CustomAttributeDefinitionRepository
	Objects     domainRepo.ObjectRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	objects := repository.NewObjectRepository(db, logger)
	return &Repositories{
		Values:      repository.NewCustomAttributeValueRepository(db, objects, logger),
		Definitions: repository.NewCustomAttributeDefinitionRepository(db, logger),
		Objects:     objects,
	}
}
