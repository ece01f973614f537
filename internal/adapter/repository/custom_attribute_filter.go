package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/slobodan-ilic/ggrc-core/internal/domain/model"
	domainRepo "github.com/slobodan-ilic/ggrc-core/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// referenceSearchColumns are matched on the referenced object when filtering
// by a "Map:" attribute. Columns the referenced table lacks are skipped.
var referenceSearchColumns = []string{"email", "title", "slug"}

// FilterByCustom builds a filter that matches objectType rows having a value
// for definitionID that satisfies the predicate. For "Map:" definitions the
// predicate is applied to the referenced object's email, title and slug
// instead of the stored value. Missing definitions fall back to matching
// attribute_value.
func (r *customAttributeValueRepository) FilterByCustom(ctx context.Context, objectType string, definitionID int64) (domainRepo.CustomFilter, error) {
	host, err := model.ResolveAttributableKind(objectType)
	if err != nil {
		return nil, err
	}
	hostSchema, err := r.parseSchema(host.New())
	if err != nil {
		return nil, err
	}

	valuesTable := model.CustomAttributeValue{}.TableName()
	hostID := clause.Column{Table: hostSchema.Table, Name: hostSchema.PrioritizedPrimaryField.DBName}

	values := func() *gorm.DB {
		return r.subquery(ctx, &model.CustomAttributeValue{}).
			Where(clause.Eq{Column: clause.Column{Table: valuesTable, Name: "custom_attribute_id"}, Value: definitionID}).
			Where(clause.Eq{Column: clause.Column{Table: valuesTable, Name: "attributable_type"}, Value: host.Name()}).
			Where(clause.Eq{Column: clause.Column{Table: valuesTable, Name: "attributable_id"}, Value: hostID})
	}

	plain := func(predicate domainRepo.Predicate) clause.Expression {
		return exists(values().Where(predicate(clause.Column{Table: valuesTable, Name: "attribute_value"})))
	}

	def, err := r.findDefinition(ctx, definitionID)
	if err != nil {
		return nil, err
	}
	if def == nil || !def.IsReference() {
		return plain, nil
	}

	target, err := model.ResolveReferenceKind(def.ReferenceType())
	if err != nil {
		r.logger.Debug("Reference type not registered, filtering on stored value",
			zap.Int64("custom_attribute_id", definitionID),
			zap.String("attribute_type", def.AttributeType))
		return plain, nil
	}
	targetSchema, err := r.parseSchema(target.New())
	if err != nil {
		return nil, err
	}

	var columns []clause.Column
	for _, name := range referenceSearchColumns {
		if field := targetSchema.LookUpField(name); field != nil && field.DBName != "" {
			columns = append(columns, clause.Column{Table: targetSchema.Table, Name: field.DBName})
		}
	}
	if len(columns) == 0 {
		return plain, nil
	}
	targetID := clause.Column{Table: targetSchema.Table, Name: targetSchema.PrioritizedPrimaryField.DBName}

	return func(predicate domainRepo.Predicate) clause.Expression {
		conds := make([]clause.Expression, len(columns))
		for i, column := range columns {
			conds[i] = predicate(column)
		}
		var match clause.Expression = clause.Or(conds...)
		if len(conds) == 1 {
			match = conds[0]
		}

		referenced := r.subquery(ctx, target.New()).
			Where(clause.Eq{Column: targetID, Value: clause.Column{Table: valuesTable, Name: "attribute_object_id"}}).
			Where(match)
		return exists(values().Where(exists(referenced)))
	}, nil
}

// SearchObjectIDs returns the ids of objectType rows matching
// filter(predicate), ordered by id.
func (r *customAttributeValueRepository) SearchObjectIDs(ctx context.Context, objectType string, filter domainRepo.CustomFilter, predicate domainRepo.Predicate) ([]int64, error) {
	host, err := model.ResolveAttributableKind(objectType)
	if err != nil {
		return nil, err
	}
	hostSchema, err := r.parseSchema(host.New())
	if err != nil {
		return nil, err
	}
	idName := hostSchema.PrioritizedPrimaryField.DBName

	var ids []int64
	err = r.db.WithContext(ctx).
		Model(host.New()).
		Where(filter(predicate)).
		Order(clause.OrderByColumn{Column: clause.Column{Table: hostSchema.Table, Name: idName}}).
		Pluck(idName, &ids).Error
	if err != nil {
		r.logger.Error("Failed to search objects by custom attribute",
			zap.String("object_type", objectType),
			zap.Error(err))
		return nil, fmt.Errorf("failed to search %s by custom attribute: %w", objectType, err)
	}

	return ids, nil
}

func (r *customAttributeValueRepository) findDefinition(ctx context.Context, id int64) (*model.CustomAttributeDefinition, error) {
	var def model.CustomAttributeDefinition
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&def).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get custom attribute definition: %w", err)
	}
	return &def, nil
}

// subquery starts a fresh "SELECT 1 FROM <model>" statement to embed in EXISTS
func (r *customAttributeValueRepository) subquery(ctx context.Context, dest interface{}) *gorm.DB {
	return r.db.Session(&gorm.Session{NewDB: true, Context: ctx}).
		Model(dest).
		Select("1")
}

func (r *customAttributeValueRepository) parseSchema(dest interface{}) (*schema.Schema, error) {
	stmt := &gorm.Statement{DB: r.db}
	if err := stmt.Parse(dest); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return stmt.Schema, nil
}

func exists(query *gorm.DB) clause.Expression {
	return clause.Expr{SQL: "EXISTS (?)", Vars: []interface{}{query}}
}
