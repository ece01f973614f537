package repository

import (
	"context"
	"strconv"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/slobodan-ilic/ggrc-core/internal/domain/model"
	domainRepo "github.com/slobodan-ilic/ggrc-core/internal/domain/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// repos bundles the repositories under test over one database
type repos struct {
	db          *gorm.DB
	values      domainRepo.CustomAttributeValueRepository
	definitions domainRepo.CustomAttributeDefinitionRepository
	objects     domainRepo.ObjectRepository
}

// setupSQLiteDB creates an in-memory SQLite database with foreign keys enabled
func setupSQLiteDB(t *testing.T) *repos {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// every connection would get its own in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.Program{},
		&model.Control{},
		&model.Assessment{},
		&model.Policy{},
		&model.Person{},
		&model.CustomAttributeDefinition{},
		&model.CustomAttributeValue{},
	))

	logger := zap.NewNop()
	objects := NewObjectRepository(db, logger)
	return &repos{
		db:          db,
		values:      NewCustomAttributeValueRepository(db, objects, logger),
		definitions: NewCustomAttributeDefinitionRepository(db, logger),
		objects:     objects,
	}
}

// setupMockDB creates a postgres-dialect gorm DB backed by sqlmock
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	})

	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func createDefinition(t *testing.T, r *repos, title, definitionType, attributeType, options string) *model.CustomAttributeDefinition {
	t.Helper()
	def := &model.CustomAttributeDefinition{
		Title:              title,
		DefinitionType:     definitionType,
		AttributeType:      attributeType,
		MultiChoiceOptions: options,
	}
	require.NoError(t, r.definitions.Create(context.Background(), def))
	return def
}

func createObject(t *testing.T, r *repos, obj model.Object) {
	t.Helper()
	require.NoError(t, r.objects.Create(context.Background(), obj))
}

func createValue(t *testing.T, r *repos, def *model.CustomAttributeDefinition, host model.Object, value string, ref model.Object) *model.CustomAttributeValue {
	t.Helper()
	v, err := model.NewCustomAttributeValue(def, host, value, ref)
	require.NoError(t, err)
	require.NoError(t, r.values.Create(context.Background(), v))
	return v
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
