package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/slobodan-ilic/ggrc-core/internal/domain/dto"
	domainErrors "github.com/slobodan-ilic/ggrc-core/internal/domain/errors"
	"github.com/slobodan-ilic/ggrc-core/internal/domain/model"
	pkgerrors "github.com/slobodan-ilic/ggrc-core/pkg/errors"
)

// CustomAttributeUsecase is the part of the value service the handler calls
type CustomAttributeUsecase interface {
	SetValue(ctx context.Context, in dto.SetValueInput) (*dto.CustomAttributeValueDTO, error)
	ListValues(ctx context.Context, objectType string, objectID int64) (*dto.CustomAttributeValueList, error)
	ClearValue(ctx context.Context, objectType string, objectID, definitionID int64) error
	CloneValues(ctx context.Context, objectType string, sourceID, targetID int64) ([]dto.CustomAttributeValueDTO, error)
	Search(ctx context.Context, in dto.SearchInput) (*dto.SearchResult, error)
	CreateDefinition(ctx context.Context, req dto.CreateDefinitionRequest) (*model.CustomAttributeDefinition, error)
	DeleteDefinition(ctx context.Context, id int64) error
}

type CustomAttributeHandler struct {
	usecase CustomAttributeUsecase
	logger  *zap.Logger
}

func NewCustomAttributeHandler(usecase CustomAttributeUsecase, logger *zap.Logger) *CustomAttributeHandler {
	return &CustomAttributeHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// Register mounts the custom attribute routes on the given group
func (h *CustomAttributeHandler) Register(g *echo.Group) {
	objects := g.Group("/objects/:type")
	objects.GET("/search", h.Search)
	objects.GET("/:id/custom_attribute_values", h.ListValues)
	objects.PUT("/:id/custom_attribute_values/:definition_id", h.SetValue)
	objects.DELETE("/:id/custom_attribute_values/:definition_id", h.ClearValue)
	objects.POST("/:id/custom_attribute_values/clone", h.CloneValues)

	g.POST("/custom_attribute_definitions", h.CreateDefinition)
	g.DELETE("/custom_attribute_definitions/:id", h.DeleteDefinition)
}

func (h *CustomAttributeHandler) ListValues(c echo.Context) error {
	objectID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	list, err := h.usecase.ListValues(c.Request().Context(), c.Param("type"), objectID)
	if err != nil {
		return toAppError(err, "Failed to list custom attribute values")
	}

	return c.JSON(http.StatusOK, list)
}

func (h *CustomAttributeHandler) SetValue(c echo.Context) error {
	objectID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	definitionID, err := idParam(c, "definition_id")
	if err != nil {
		return err
	}

	var req dto.SetValueRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	value, err := h.usecase.SetValue(c.Request().Context(), dto.SetValueInput{
		ObjectType:   c.Param("type"),
		ObjectID:     objectID,
		DefinitionID: definitionID,
		Value:        req.AttributeValue,
		Reference:    req.AttributeObject,
	})
	if err != nil {
		return toAppError(err, "Failed to set custom attribute value")
	}

	h.logger.Debug("Custom attribute value set via API",
		zap.String("object_type", value.AttributableType),
		zap.Int64("object_id", value.AttributableID),
		zap.Int64("definition_id", value.CustomAttributeID))

	return c.JSON(http.StatusOK, value)
}

func (h *CustomAttributeHandler) ClearValue(c echo.Context) error {
	objectID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	definitionID, err := idParam(c, "definition_id")
	if err != nil {
		return err
	}

	if err := h.usecase.ClearValue(c.Request().Context(), c.Param("type"), objectID, definitionID); err != nil {
		return toAppError(err, "Failed to clear custom attribute value")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CustomAttributeHandler) CloneValues(c echo.Context) error {
	sourceID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.CloneValuesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	clones, err := h.usecase.CloneValues(c.Request().Context(), c.Param("type"), sourceID, req.TargetID)
	if err != nil {
		return toAppError(err, "Failed to clone custom attribute values")
	}

	return c.JSON(http.StatusCreated, dto.CustomAttributeValueList{
		ObjectType: c.Param("type"),
		ObjectID:   req.TargetID,
		Values:     clones,
	})
}

func (h *CustomAttributeHandler) Search(c echo.Context) error {
	var req dto.SearchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.usecase.Search(c.Request().Context(), dto.SearchInput{
		ObjectType:   req.ObjectType,
		DefinitionID: req.CustomAttributeID,
		Op:           req.Op,
		Query:        req.Q,
	})
	if err != nil {
		return toAppError(err, "Failed to search custom attribute values")
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CustomAttributeHandler) CreateDefinition(c echo.Context) error {
	var req dto.CreateDefinitionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	def, err := h.usecase.CreateDefinition(c.Request().Context(), req)
	if err != nil {
		return toAppError(err, "Failed to create custom attribute definition")
	}

	return c.JSON(http.StatusCreated, def)
}

func (h *CustomAttributeHandler) DeleteDefinition(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.usecase.DeleteDefinition(c.Request().Context(), id); err != nil {
		return toAppError(err, "Failed to delete custom attribute definition")
	}

	return c.NoContent(http.StatusNoContent)
}

func idParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.NewAppError(pkgerrors.ErrInvalidArgument, "invalid "+name, err)
	}
	return id, nil
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return pkgerrors.NewAppError(pkgerrors.ErrInvalidArgument, "invalid request body", err)
	}
	if err := c.Validate(req); err != nil {
		return pkgerrors.NewAppError(pkgerrors.ErrInvalidArgument, "invalid request", err)
	}
	return nil
}

// toAppError attaches an error code to domain errors
func toAppError(err error, message string) error {
	switch {
	case errors.Is(err, domainErrors.ErrDefinitionNotFound),
		errors.Is(err, domainErrors.ErrValueNotFound),
		errors.Is(err, domainErrors.ErrObjectNotFound):
		return pkgerrors.NewAppError(pkgerrors.ErrNotFound, message, err)
	case errors.Is(err, domainErrors.ErrDuplicateValue):
		return pkgerrors.NewAppError(pkgerrors.ErrConflict, message, err)
	case errors.Is(err, domainErrors.ErrDefinitionTypeMismatch),
		errors.Is(err, domainErrors.ErrInvalidDropdownOption),
		errors.Is(err, domainErrors.ErrInvalidReference),
		errors.Is(err, domainErrors.ErrUnknownObjectType),
		errors.Is(err, domainErrors.ErrInvalidSearchOperator):
		return pkgerrors.NewAppError(pkgerrors.ErrInvalidArgument, message, err)
	}
	return pkgerrors.Wrap(err, message)
}
