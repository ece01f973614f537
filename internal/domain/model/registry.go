package model

import (
	"sort"

	domainErrors "github.com/slobodan-ilic/ggrc-core/internal/domain/errors"
	"gorm.io/gorm/schema"
)

// Object is a mapped record that can carry custom attribute values or be
// referenced by one.
type Object interface {
	GetID() int64
	ObjectType() string
}

// objectPtr constrains registrations to pointer types implementing Object, so
// a model that cannot act as an Object fails to compile instead of failing at
// lookup time.
type objectPtr[T any] interface {
	*T
	Object
}

// ObjectKind describes one registered object type.
type ObjectKind struct {
	name         string
	singular     string
	attributable bool
	reference    bool
	newFn        func() Object
}

// Name is the type name stored in attributable_type / attribute_value.
func (k ObjectKind) Name() string { return k.name }

// Singular is the snake_case singular table name matched against
// CustomAttributeDefinition.DefinitionType.
func (k ObjectKind) Singular() string { return k.singular }

// IsAttributable reports whether values may be attached to this type.
func (k ObjectKind) IsAttributable() bool { return k.attributable }

// IsReference reports whether "Map:<Name>" attributes may point at this type.
func (k ObjectKind) IsReference() bool { return k.reference }

// New returns a zero instance, suitable as a gorm destination.
func (k ObjectKind) New() Object { return k.newFn() }

var singularNamer = schema.NamingStrategy{SingularTable: true}

func kindOf[T any, PT objectPtr[T]](attributable, reference bool) ObjectKind {
	name := PT(new(T)).ObjectType()
	return ObjectKind{
		name:         name,
		singular:     singularNamer.TableName(name),
		attributable: attributable,
		reference:    reference,
		newFn:        func() Object { return PT(new(T)) },
	}
}

func indexKinds(kinds ...ObjectKind) map[string]ObjectKind {
	index := make(map[string]ObjectKind, len(kinds))
	for _, k := range kinds {
		index[k.name] = k
	}
	return index
}

var objectKinds = indexKinds(
	kindOf[Program](true, false),
	kindOf[Control](true, false),
	kindOf[Assessment](true, false),
	kindOf[Policy](true, false),
	kindOf[Person](false, true),
)

// LookupKind returns the registered kind for a type name.
func LookupKind(name string) (ObjectKind, bool) {
	k, ok := objectKinds[name]
	return k, ok
}

// ResolveAttributableKind returns the kind for a host type name, failing for
// names that are not registered as attributable.
func ResolveAttributableKind(name string) (ObjectKind, error) {
	k, ok := objectKinds[name]
	if !ok || !k.attributable {
		return ObjectKind{}, &domainErrors.UnknownObjectTypeError{TypeName: name}
	}
	return k, nil
}

// ResolveReferenceKind returns the kind for a "Map:" target type name.
func ResolveReferenceKind(name string) (ObjectKind, error) {
	k, ok := objectKinds[name]
	if !ok || !k.reference {
		return ObjectKind{}, &domainErrors.UnknownObjectTypeError{TypeName: name}
	}
	return k, nil
}

// Kinds returns every registered kind ordered by name.
func Kinds() []ObjectKind {
	kinds := make([]ObjectKind, 0, len(objectKinds))
	for _, k := range objectKinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].name < kinds[j].name })
	return kinds
}
