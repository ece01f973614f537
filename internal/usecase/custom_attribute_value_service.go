package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/slobodan-ilic/ggrc-core/internal/domain/dto"
	domainErrors "github.com/slobodan-ilic/ggrc-core/internal/domain/errors"
	"github.com/slobodan-ilic/ggrc-core/internal/domain/model"
	"github.com/slobodan-ilic/ggrc-core/internal/domain/repository"
	"github.com/slobodan-ilic/ggrc-core/pkg/messaging"
)

// MetricsRecorder receives service level counters
type MetricsRecorder interface {
	ValueWritten(objectType, action string)
	ValidationFailed(reason string)
	SearchExecuted(objectType, op string, matches int)
}

// CustomAttributeValueService handles custom attribute value business logic
type CustomAttributeValueService struct {
	valueRepo      repository.CustomAttributeValueRepository
	definitionRepo repository.CustomAttributeDefinitionRepository
	objectRepo     repository.ObjectRepository
	publisher      messaging.Publisher
	channel        string
	metrics        MetricsRecorder
	logger         *zap.Logger
}

// NewCustomAttributeValueService creates a new custom attribute value service
func NewCustomAttributeValueService(
	valueRepo repository.CustomAttributeValueRepository,
	definitionRepo repository.CustomAttributeDefinitionRepository,
	objectRepo repository.ObjectRepository,
	publisher messaging.Publisher,
	channel string,
	metrics MetricsRecorder,
	logger *zap.Logger,
) *CustomAttributeValueService {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	return &CustomAttributeValueService{
		valueRepo:      valueRepo,
		definitionRepo: definitionRepo,
		objectRepo:     objectRepo,
		publisher:      publisher,
		channel:        channel,
		metrics:        metrics,
		logger:         logger,
	}
}

// SetValue creates or updates the value of one definition on one object.
// New values go through the validating factory; existing values are
// mutated and validated again before saving.
func (s *CustomAttributeValueService) SetValue(ctx context.Context, in dto.SetValueInput) (*dto.CustomAttributeValueDTO, error) {
	def, err := s.definitionRepo.GetByID(ctx, in.DefinitionID)
	if err != nil {
		return nil, err
	}
	if def == nil {
		s.recordValidationFailure(domainErrors.ErrDefinitionNotFound)
		return nil, fmt.Errorf("%w: id %d", domainErrors.ErrDefinitionNotFound, in.DefinitionID)
	}

	host, err := s.loadHost(ctx, in.ObjectType, in.ObjectID)
	if err != nil {
		s.recordValidationFailure(err)
		return nil, err
	}

	value := in.Value
	var ref model.Object
	if in.Reference != nil {
		if in.Reference.Type != def.ReferenceType() {
			err = fmt.Errorf("%w: definition %d does not accept %q objects", domainErrors.ErrInvalidReference, def.ID, in.Reference.Type)
			s.recordValidationFailure(err)
			return nil, err
		}
		ref, err = s.loadReference(ctx, in.Reference)
		if err != nil {
			s.recordValidationFailure(err)
			return nil, err
		}
		if value == "" {
			value = ref.ObjectType()
		}
	}

	existing, err := s.valueRepo.GetByObjectAndDefinition(ctx, host.ObjectType(), host.GetID(), def.ID)
	if err != nil {
		return nil, err
	}

	var v *model.CustomAttributeValue
	if existing == nil {
		v, err = model.NewCustomAttributeValue(def, host, value, ref)
		if err != nil {
			s.recordValidationFailure(err)
			return nil, err
		}
	} else {
		v = existing
		v.AttributeValue = value
		v.CustomAttribute = def
		v.SetAttributable(host)
		v.SetAttributeObject(ref)
		if !def.IsReference() {
			v.AttributeObjectID = nil
		}
		if err := v.ValidateWith(def); err != nil {
			s.recordValidationFailure(err)
			return nil, err
		}
	}

	if err := checkReference(def, v, ref); err != nil {
		s.recordValidationFailure(err)
		return nil, err
	}

	// the "Type:id" shorthand is not checked by validation
	if ref == nil && v.AttributeObjectID != nil {
		if _, err := s.valueRepo.ResolveAttributeObject(ctx, v, def); err != nil {
			s.recordValidationFailure(err)
			return nil, err
		}
	}

	if existing == nil {
		err = s.valueRepo.Create(ctx, v)
	} else {
		err = s.valueRepo.Save(ctx, v)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Custom attribute value set",
		zap.String("attributable_type", v.AttributableType),
		zap.Int64("attributable_id", v.AttributableID),
		zap.Int64("custom_attribute_id", v.CustomAttributeID),
		zap.Bool("created", existing == nil))

	out := dto.NewCustomAttributeValueDTO(v)
	s.afterWrite(ctx, dto.ValueActionSet, out)
	return &out, nil
}

// Validate checks a value against its stored definition and host.
func (s *CustomAttributeValueService) Validate(ctx context.Context, v *model.CustomAttributeValue) error {
	def, err := s.definitionRepo.GetByID(ctx, v.CustomAttributeID)
	if err != nil {
		return err
	}

	if err := v.ValidateWith(def); err != nil {
		s.recordValidationFailure(err)
		return err
	}

	if _, err := s.valueRepo.ResolveAttributable(ctx, v); err != nil {
		s.recordValidationFailure(err)
		return err
	}
	return nil
}

// ListValues returns the published form of every value on one object
func (s *CustomAttributeValueService) ListValues(ctx context.Context, objectType string, objectID int64) (*dto.CustomAttributeValueList, error) {
	if _, err := model.ResolveAttributableKind(objectType); err != nil {
		return nil, err
	}

	values, err := s.valueRepo.ListForObject(ctx, objectType, objectID)
	if err != nil {
		return nil, err
	}

	out := &dto.CustomAttributeValueList{
		ObjectType: objectType,
		ObjectID:   objectID,
		Values:     make([]dto.CustomAttributeValueDTO, len(values)),
	}
	for i, v := range values {
		out.Values[i] = dto.NewCustomAttributeValueDTO(v)
	}
	return out, nil
}

// ClearValue removes the value of one definition from one object
func (s *CustomAttributeValueService) ClearValue(ctx context.Context, objectType string, objectID, definitionID int64) error {
	if _, err := model.ResolveAttributableKind(objectType); err != nil {
		return err
	}

	v, err := s.valueRepo.GetByObjectAndDefinition(ctx, objectType, objectID, definitionID)
	if err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("%w: %s %d, definition %d", domainErrors.ErrValueNotFound, objectType, objectID, definitionID)
	}

	if err := s.valueRepo.Delete(ctx, v); err != nil {
		return err
	}

	s.afterWrite(ctx, dto.ValueActionCleared, dto.NewCustomAttributeValueDTO(v))
	return nil
}

// CloneValues copies every value of the source object onto the target
// object of the same type. The copy is all or nothing; events are published
// once it is stored.
func (s *CustomAttributeValueService) CloneValues(ctx context.Context, objectType string, sourceID, targetID int64) ([]dto.CustomAttributeValueDTO, error) {
	source, err := s.loadHost(ctx, objectType, sourceID)
	if err != nil {
		return nil, err
	}
	target, err := s.loadHost(ctx, objectType, targetID)
	if err != nil {
		return nil, err
	}

	stored, err := s.valueRepo.CloneAll(ctx, source, target)
	if err != nil {
		return nil, err
	}

	clones := make([]dto.CustomAttributeValueDTO, len(stored))
	for i, clone := range stored {
		clones[i] = dto.NewCustomAttributeValueDTO(clone)
	}
	for _, out := range clones {
		s.afterWrite(ctx, dto.ValueActionCloned, out)
	}

	s.logger.Info("Custom attribute values cloned",
		zap.String("object_type", objectType),
		zap.Int64("source_id", sourceID),
		zap.Int64("target_id", targetID),
		zap.Int("count", len(clones)))
	return clones, nil
}

// RemoveObject deletes an object and all of its values
func (s *CustomAttributeValueService) RemoveObject(ctx context.Context, objectType string, objectID int64) error {
	obj, err := s.loadHost(ctx, objectType, objectID)
	if err != nil {
		return err
	}
	return s.objectRepo.Delete(ctx, obj)
}

// Search returns the ids of objects whose value for a definition matches
// the query. Reference definitions match the referenced object's email,
// title or slug.
func (s *CustomAttributeValueService) Search(ctx context.Context, in dto.SearchInput) (*dto.SearchResult, error) {
	op := in.Op
	if op == "" {
		op = dto.SearchOpEqual
	}

	var predicate repository.Predicate
	switch op {
	case dto.SearchOpEqual:
		predicate = repository.Equal(in.Query)
	case dto.SearchOpContains:
		predicate = repository.Contains(in.Query)
	case dto.SearchOpIn:
		predicate = repository.In(splitList(in.Query)...)
	default:
		return nil, fmt.Errorf("%w: %q", domainErrors.ErrInvalidSearchOperator, in.Op)
	}

	filter, err := s.valueRepo.FilterByCustom(ctx, in.ObjectType, in.DefinitionID)
	if err != nil {
		return nil, err
	}

	ids, err := s.valueRepo.SearchObjectIDs(ctx, in.ObjectType, filter, predicate)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}

	if s.metrics != nil {
		s.metrics.SearchExecuted(in.ObjectType, op, len(ids))
	}
	return &dto.SearchResult{ObjectType: in.ObjectType, IDs: ids}, nil
}

// CreateDefinition stores a new definition after checking that its types
// are registered
func (s *CustomAttributeValueService) CreateDefinition(ctx context.Context, req dto.CreateDefinitionRequest) (*model.CustomAttributeDefinition, error) {
	if !isAttributableSingular(req.DefinitionType) {
		return nil, &domainErrors.UnknownObjectTypeError{TypeName: req.DefinitionType}
	}

	def := &model.CustomAttributeDefinition{
		Title:              req.Title,
		HelpText:           req.HelpText,
		DefinitionType:     req.DefinitionType,
		AttributeType:      req.AttributeType,
		MultiChoiceOptions: req.MultiChoiceOptions,
	}
	if def.IsReference() {
		if _, err := model.ResolveReferenceKind(def.ReferenceType()); err != nil {
			return nil, err
		}
	}
	if def.AttributeType == model.AttributeTypeDropdown && strings.TrimSpace(def.MultiChoiceOptions) == "" {
		return nil, fmt.Errorf("%w: dropdown %q has no options", domainErrors.ErrInvalidDropdownOption, def.Title)
	}

	if err := s.definitionRepo.Create(ctx, def); err != nil {
		return nil, err
	}

	s.logger.Info("Custom attribute definition created",
		zap.Int64("definition_id", def.ID),
		zap.String("definition_type", def.DefinitionType),
		zap.String("attribute_type", def.AttributeType))
	return def, nil
}

// DeleteDefinition removes a definition together with its values
func (s *CustomAttributeValueService) DeleteDefinition(ctx context.Context, id int64) error {
	if err := s.definitionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Custom attribute definition deleted", zap.Int64("definition_id", id))
	return nil
}

func (s *CustomAttributeValueService) loadHost(ctx context.Context, objectType string, objectID int64) (model.Object, error) {
	if _, err := model.ResolveAttributableKind(objectType); err != nil {
		return nil, err
	}

	obj, err := s.objectRepo.Load(ctx, objectType, objectID)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: %s %d", domainErrors.ErrObjectNotFound, objectType, objectID)
	}
	return obj, nil
}

func (s *CustomAttributeValueService) loadReference(ctx context.Context, stub *dto.ObjectStub) (model.Object, error) {
	if _, err := model.ResolveReferenceKind(stub.Type); err != nil {
		return nil, err
	}

	obj, err := s.objectRepo.Load(ctx, stub.Type, stub.ID)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: %s %d", domainErrors.ErrObjectNotFound, stub.Type, stub.ID)
	}
	return obj, nil
}

// afterWrite publishes the change event and counts the write. Publish
// failures are logged, the write itself already succeeded.
func (s *CustomAttributeValueService) afterWrite(ctx context.Context, action string, value dto.CustomAttributeValueDTO) {
	if s.metrics != nil {
		s.metrics.ValueWritten(value.AttributableType, action)
	}

	event := dto.ValueEvent{
		EventID:    uuid.NewString(),
		Action:     action,
		OccurredAt: time.Now().UTC(),
		Value:      value,
	}
	if err := s.publisher.Publish(ctx, s.channel, event); err != nil {
		s.logger.Warn("Failed to publish custom attribute value event",
			zap.String("event_id", event.EventID),
			zap.String("action", action),
			zap.Error(err))
	}
}

func (s *CustomAttributeValueService) recordValidationFailure(err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.ValidationFailed(validationReason(err))
}

func validationReason(err error) string {
	switch {
	case errors.Is(err, domainErrors.ErrDefinitionNotFound):
		return "definition_not_found"
	case errors.Is(err, domainErrors.ErrDefinitionTypeMismatch):
		return "definition_type_mismatch"
	case errors.Is(err, domainErrors.ErrInvalidDropdownOption):
		return "invalid_option"
	case errors.Is(err, domainErrors.ErrInvalidReference):
		return "invalid_reference"
	case errors.Is(err, domainErrors.ErrUnknownObjectType):
		return "unknown_object_type"
	case errors.Is(err, domainErrors.ErrObjectNotFound):
		return "object_not_found"
	default:
		return "other"
	}
}

// checkReference rejects reference values whose stored type and id disagree
// with the definition or with the object given in the request
func checkReference(def *model.CustomAttributeDefinition, v *model.CustomAttributeValue, ref model.Object) error {
	if !def.IsReference() || v.AttributeObjectID == nil {
		return nil
	}
	if v.AttributeValue == "" {
		return fmt.Errorf("%w: definition %d: an empty value can not clear a reference, delete the value instead",
			domainErrors.ErrInvalidReference, def.ID)
	}
	if v.AttributeValue != def.ReferenceType() {
		return fmt.Errorf("%w: definition %d does not accept %q objects",
			domainErrors.ErrInvalidReference, def.ID, v.AttributeValue)
	}
	if ref != nil && *v.AttributeObjectID != ref.GetID() {
		return fmt.Errorf("%w: value points at %s %d but attribute_object is %s %d",
			domainErrors.ErrInvalidReference, v.AttributeValue, *v.AttributeObjectID, ref.ObjectType(), ref.GetID())
	}
	return nil
}

func isAttributableSingular(definitionType string) bool {
	for _, k := range model.Kinds() {
		if k.IsAttributable() && k.Singular() == definitionType {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
