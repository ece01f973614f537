package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/slobodan-ilic/ggrc-core/internal/domain/model"
	"github.com/slobodan-ilic/ggrc-core/internal/domain/repository"
)

// MockCustomAttributeValueRepository is a mock implementation of CustomAttributeValueRepository
type MockCustomAttributeValueRepository struct {
	mock.Mock
}

func (m *MockCustomAttributeValueRepository) Create(ctx context.Context, value *model.CustomAttributeValue) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}

func (m *MockCustomAttributeValueRepository) Save(ctx context.Context, value *model.CustomAttributeValue) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}

func (m *MockCustomAttributeValueRepository) GetByID(ctx context.Context, id int64) (*model.CustomAttributeValue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomAttributeValue), args.Error(1)
}

func (m *MockCustomAttributeValueRepository) GetByObjectAndDefinition(ctx context.Context, objectType string, objectID, definitionID int64) (*model.CustomAttributeValue, error) {
	args := m.Called(ctx, objectType, objectID, definitionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomAttributeValue), args.Error(1)
}

func (m *MockCustomAttributeValueRepository) ListForObject(ctx context.Context, objectType string, objectID int64) ([]*model.CustomAttributeValue, error) {
	args := m.Called(ctx, objectType, objectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CustomAttributeValue), args.Error(1)
}

func (m *MockCustomAttributeValueRepository) Delete(ctx context.Context, value *model.CustomAttributeValue) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}

func (m *MockCustomAttributeValueRepository) ResolveAttributable(ctx context.Context, value *model.CustomAttributeValue) (model.Object, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Object), args.Error(1)
}

func (m *MockCustomAttributeValueRepository) ResolveAttributeObject(ctx context.Context, value *model.CustomAttributeValue, def *model.CustomAttributeDefinition) (model.Object, error) {
	args := m.Called(ctx, value, def)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Object), args.Error(1)
}

func (m *MockCustomAttributeValueRepository) Clone(ctx context.Context, value *model.CustomAttributeValue, target model.Object) (*model.CustomAttributeValue, error) {
	args := m.Called(ctx, value, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomAttributeValue), args.Error(1)
}

func (m *MockCustomAttributeValueRepository) CloneAll(ctx context.Context, source, target model.Object) ([]*model.CustomAttributeValue, error) {
	args := m.Called(ctx, source, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CustomAttributeValue), args.Error(1)
}

func (m *MockCustomAttributeValueRepository) FilterByCustom(ctx context.Context, objectType string, definitionID int64) (repository.CustomFilter, error) {
	args := m.Called(ctx, objectType, definitionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.CustomFilter), args.Error(1)
}

func (m *MockCustomAttributeValueRepository) SearchObjectIDs(ctx context.Context, objectType string, filter repository.CustomFilter, predicate repository.Predicate) ([]int64, error) {
	args := m.Called(ctx, objectType, filter, predicate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockCustomAttributeDefinitionRepository is a mock implementation of CustomAttributeDefinitionRepository
type MockCustomAttributeDefinitionRepository struct {
	mock.Mock
}

func (m *MockCustomAttributeDefinitionRepository) Create(ctx context.Context, def *model.CustomAttributeDefinition) error {
	args := m.Called(ctx, def)
	return args.Error(0)
}

func (m *MockCustomAttributeDefinitionRepository) GetByID(ctx context.Context, id int64) (*model.CustomAttributeDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomAttributeDefinition), args.Error(1)
}

func (m *MockCustomAttributeDefinitionRepository) ListForDefinitionType(ctx context.Context, definitionType string) ([]*model.CustomAttributeDefinition, error) {
	args := m.Called(ctx, definitionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CustomAttributeDefinition), args.Error(1)
}

func (m *MockCustomAttributeDefinitionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockObjectRepository is a mock implementation of ObjectRepository
type MockObjectRepository struct {
	mock.Mock
}

func (m *MockObjectRepository) Create(ctx context.Context, obj model.Object) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

func (m *MockObjectRepository) Load(ctx context.Context, typeName string, id int64) (model.Object, error) {
	args := m.Called(ctx, typeName, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Object), args.Error(1)
}

func (m *MockObjectRepository) Delete(ctx context.Context, obj model.Object) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

// MockPublisher is a mock implementation of messaging.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, channel string, message interface{}) error {
	args := m.Called(ctx, channel, message)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockMetrics is a mock implementation of MetricsRecorder
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) ValueWritten(objectType, action string) {
	m.Called(objectType, action)
}

func (m *MockMetrics) ValidationFailed(reason string) {
	m.Called(reason)
}

func (m *MockMetrics) SearchExecuted(objectType, op string, matches int) {
	m.Called(objectType, op, matches)
}
