package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/slobodan-ilic/ggrc-core/internal/domain/dto"
	domainErrors "github.com/slobodan-ilic/ggrc-core/internal/domain/errors"
	"github.com/slobodan-ilic/ggrc-core/internal/domain/model"
)

// MockCustomAttributeUsecase is a mock implementation of CustomAttributeUsecase
type MockCustomAttributeUsecase struct {
	mock.Mock
}

func (m *MockCustomAttributeUsecase) SetValue(ctx context.Context, in dto.SetValueInput) (*dto.CustomAttributeValueDTO, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CustomAttributeValueDTO), args.Error(1)
}

func (m *MockCustomAttributeUsecase) ListValues(ctx context.Context, objectType string, objectID int64) (*dto.CustomAttributeValueList, error) {
	args := m.Called(ctx, objectType, objectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CustomAttributeValueList), args.Error(1)
}

func (m *MockCustomAttributeUsecase) ClearValue(ctx context.Context, objectType string, objectID, definitionID int64) error {
	args := m.Called(ctx, objectType, objectID, definitionID)
	return args.Error(0)
}

func (m *MockCustomAttributeUsecase) CloneValues(ctx context.Context, objectType string, sourceID, targetID int64) ([]dto.CustomAttributeValueDTO, error) {
	args := m.Called(ctx, objectType, sourceID, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CustomAttributeValueDTO), args.Error(1)
}

func (m *MockCustomAttributeUsecase) Search(ctx context.Context, in dto.SearchInput) (*dto.SearchResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SearchResult), args.Error(1)
}

func (m *MockCustomAttributeUsecase) CreateDefinition(ctx context.Context, req dto.CreateDefinitionRequest) (*model.CustomAttributeDefinition, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomAttributeDefinition), args.Error(1)
}

func (m *MockCustomAttributeUsecase) DeleteDefinition(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupEcho(uc *MockCustomAttributeUsecase) *echo.Echo {
	logger := zap.NewNop()
	e := echo.New()
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(logger)
	NewCustomAttributeHandler(uc, logger).Register(e.Group("/api/v1"))
	return e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCustomAttributeHandler_ListValues(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := new(MockCustomAttributeUsecase)
		e := setupEcho(uc)

		list := &dto.CustomAttributeValueList{
			ObjectType: model.TypeProgram,
			ObjectID:   7,
			Values: []dto.CustomAttributeValueDTO{
				{ID: 1, CustomAttributeID: 2, AttributableID: 7, AttributableType: model.TypeProgram, AttributeValue: "Person", AttributeObject: &dto.ObjectStub{ID: 42, Type: model.TypePerson}},
			},
		}
		uc.On("ListValues", mock.Anything, model.TypeProgram, int64(7)).Return(list, nil)

		rec := doRequest(e, http.MethodGet, "/api/v1/objects/Program/7/custom_attribute_values", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var got dto.CustomAttributeValueList
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, *list, got)
		uc.AssertExpectations(t)
	})

	t.Run("invalid object id", func(t *testing.T) {
		uc := new(MockCustomAttributeUsecase)
		e := setupEcho(uc)

		rec := doRequest(e, http.MethodGet, "/api/v1/objects/Program/abc/custom_attribute_values", "")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "INVALID_ARGUMENT", decodeError(t, rec)["code"])
		uc.AssertNotCalled(t, "ListValues", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown object type", func(t *testing.T) {
		uc := new(MockCustomAttributeUsecase)
		e := setupEcho(uc)

		uc.On("ListValues", mock.Anything, "Widget", int64(1)).
			Return(nil, &domainErrors.UnknownObjectTypeError{TypeName: "Widget"})

		rec := doRequest(e, http.MethodGet, "/api/v1/objects/Widget/1/custom_attribute_values", "")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decodeError(t, rec)["error"], `"Widget"`)
	})
}

func TestCustomAttributeHandler_SetValue(t *testing.T) {
	t.Run("reference by stub", func(t *testing.T) {
		uc := new(MockCustomAttributeUsecase)
		e := setupEcho(uc)

		out := &dto.CustomAttributeValueDTO{ID: 5, CustomAttributeID: 2, AttributableID: 7, AttributableType: model.TypeProgram, AttributeValue: "Person", AttributeObject: &dto.ObjectStub{ID: 42, Type: model.TypePerson}}
		uc.On("SetValue", mock.Anything, mock.MatchedBy(func(in dto.SetValueInput) bool {
			return in.ObjectType == model.TypeProgram &&
				in.ObjectID == 7 &&
				in.DefinitionID == 2 &&
				in.Reference != nil && in.Reference.ID == 42 && in.Reference.Type == model.TypePerson
		})).Return(out, nil)

		rec := doRequest(e, http.MethodPut, "/api/v1/objects/Program/7/custom_attribute_values/2",
			`{"attribute_value":"Person","attribute_object":{"id":42,"type":"Person"}}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var got dto.CustomAttributeValueDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, *out, got)
		uc.AssertExpectations(t)
	})

	t.Run("plain value", func(t *testing.T) {
		uc := new(MockCustomAttributeUsecase)
		e := setupEcho(uc)

		uc.On("SetValue", mock.Anything, dto.SetValueInput{
			ObjectType:   model.TypeControl,
			ObjectID:     3,
			DefinitionID: 1,
			Value:        "yes",
		}).Return(&dto.CustomAttributeValueDTO{ID: 9, AttributableType: model.TypeControl, AttributableID: 3, CustomAttributeID: 1, AttributeValue: "yes"}, nil)

		rec := doRequest(e, http.MethodPut, "/api/v1/objects/Control/3/custom_attribute_values/1", `{"attribute_value":"yes"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, decodeError(t, rec)["attribute_object"])
		uc.AssertExpectations(t)
	})

	t.Run("invalid reference stub", func(t *testing.T) {
		uc := new(MockCustomAttributeUsecase)
		e := setupEcho(uc)

		rec := doRequest(e, http.MethodPut, "/api/v1/objects/Program/7/custom_attribute_values/2",
			`{"attribute_object":{"id":0,"type":"Person"}}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		uc.AssertNotCalled(t, "SetValue", mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		uc := new(MockCustomAttributeUsecase)
		e := setupEcho(uc)

		rec := doRequest(e, http.MethodPut, "/api/v1/objects/Program/7/custom_attribute_values/2", `{"attribute_value":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		uc.AssertNotCalled(t, "SetValue", mock.Anything, mock.Anything)
	})

	errorCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"missing definition", domainErrors.ErrDefinitionNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"missing object", fmt.Errorf("%w: Program 7", domainErrors.ErrObjectNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"definition for another type", domainErrors.ErrDefinitionTypeMismatch, http.StatusUnprocessableEntity, "INVALID_ARGUMENT"},
		{"invalid option", &domainErrors.InvalidOptionError{Value: "maybe", Options: []string{"yes", "no"}}, http.StatusUnprocessableEntity, "INVALID_ARGUMENT"},
		{"invalid reference", domainErrors.ErrInvalidReference, http.StatusUnprocessableEntity, "INVALID_ARGUMENT"},
		{"duplicate", domainErrors.ErrDuplicateValue, http.StatusConflict, "CONFLICT"},
		{"storage failure", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockCustomAttributeUsecase)
			e := setupEcho(uc)

			uc.On("SetValue", mock.Anything, mock.AnythingOfType("dto.SetValueInput")).Return(nil, tt.err)

			rec := doRequest(e, http.MethodPut, "/api/v1/objects/Program/7/custom_attribute_values/2", `{"attribute_value":"maybe"}`)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec)["code"])
		})
	}
}

func TestCustomAttributeHandler_ClearValue(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := new(MockCustomAttributeUsecase)
		e := setupEcho(uc)

		uc.On("ClearValue", mock.Anything, model.TypePolicy, int64(4), int64(2)).Return(nil)

		rec := doRequest(e, http.MethodDelete, "/api/v1/objects/Policy/4/custom_attribute_values/2", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		uc.AssertExpectations(t)
	})

	t.Run("no value", func(t *testing.T) {
		uc := new(MockCustomAttributeUsecase)
		e := setupEcho(uc)

		uc.On("ClearValue", mock.Anything, model.TypePolicy, int64(4), int64(2)).Return(domainErrors.ErrValueNotFound)

		rec := doRequest(e, http.MethodDelete, "/api/v1/objects/Policy/4/custom_attribute_values/2", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCustomAttributeHandler_CloneValues(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := new(MockCustomAttributeUsecase)
		e := setupEcho(uc)

		clones := []dto.CustomAttributeValueDTO{
			{ID: 11, CustomAttributeID: 1, AttributableID: 8, AttributableType: model.TypeProgram, AttributeValue: "x"},
		}
		uc.On("CloneValues", mock.Anything, model.TypeProgram, int64(7), int64(8)).Return(clones, nil)

		rec := doRequest(e, http.MethodPost, "/api/v1/objects/Program/7/custom_attribute_values/clone", `{"target_id":8}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		var got dto.CustomAttributeValueList
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int64(8), got.ObjectID)
		assert.Equal(t, clones, got.Values)
	})

	t.Run("missing target", func(t *testing.T) {
		uc := new(MockCustomAttributeUsecase)
		e := setupEcho(uc)

		rec := doRequest(e, http.MethodPost, "/api/v1/objects/Program/7/custom_attribute_values/clone", `{}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		uc.AssertNotCalled(t, "CloneValues", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCustomAttributeHandler_Search(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := new(MockCustomAttributeUsecase)
		e := setupEcho(uc)

		uc.On("Search", mock.Anything, dto.SearchInput{
			ObjectType:   model.TypeProgram,
			DefinitionID: 2,
			Op:           "contains",
			Query:        "ann",
		}).Return(&dto.SearchResult{ObjectType: model.TypeProgram, IDs: []int64{1, 3}}, nil)

		rec := doRequest(e, http.MethodGet, "/api/v1/objects/Program/search?custom_attribute_id=2&op=contains&q=ann", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var got dto.SearchResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, []int64{1, 3}, got.IDs)
		uc.AssertExpectations(t)
	})

	t.Run("unsupported operator", func(t *testing.T) {
		uc := new(MockCustomAttributeUsecase)
		e := setupEcho(uc)

		rec := doRequest(e, http.MethodGet, "/api/v1/objects/Program/search?custom_attribute_id=2&op=regex&q=a", "")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		uc.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("missing definition id", func(t *testing.T) {
		uc := new(MockCustomAttributeUsecase)
		e := setupEcho(uc)

		rec := doRequest(e, http.MethodGet, "/api/v1/objects/Program/search?q=a", "")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestCustomAttributeHandler_Definitions(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		uc := new(MockCustomAttributeUsecase)
		e := setupEcho(uc)

		req := dto.CreateDefinitionRequest{Title: "Owner", DefinitionType: "program", AttributeType: "Map:Person"}
		uc.On("CreateDefinition", mock.Anything, req).
			Return(&model.CustomAttributeDefinition{ID: 3, Title: "Owner", DefinitionType: "program", AttributeType: "Map:Person"}, nil)

		rec := doRequest(e, http.MethodPost, "/api/v1/custom_attribute_definitions",
			`{"title":"Owner","definition_type":"program","attribute_type":"Map:Person"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		uc.AssertExpectations(t)
	})

	t.Run("create without title", func(t *testing.T) {
		uc := new(MockCustomAttributeUsecase)
		e := setupEcho(uc)

		rec := doRequest(e, http.MethodPost, "/api/v1/custom_attribute_definitions",
			`{"definition_type":"program","attribute_type":"Text"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		uc.AssertNotCalled(t, "CreateDefinition", mock.Anything, mock.Anything)
	})

	t.Run("delete", func(t *testing.T) {
		uc := new(MockCustomAttributeUsecase)
		e := setupEcho(uc)

		uc.On("DeleteDefinition", mock.Anything, int64(3)).Return(nil)

		rec := doRequest(e, http.MethodDelete, "/api/v1/custom_attribute_definitions/3", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("delete missing", func(t *testing.T) {
		uc := new(MockCustomAttributeUsecase)
		e := setupEcho(uc)

		uc.On("DeleteDefinition", mock.Anything, int64(3)).Return(fmt.Errorf("%w: id 3", domainErrors.ErrDefinitionNotFound))

		rec := doRequest(e, http.MethodDelete, "/api/v1/custom_attribute_definitions/3", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestNewErrorHandler_UnknownRoute(t *testing.T) {
	e := setupEcho(new(MockCustomAttributeUsecase))

	rec := doRequest(e, http.MethodGet, "/api/v1/nothing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	_, hasCode := decodeError(t, rec)["code"]
	assert.False(t, hasCode)
}
