package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDefinitionNotFound indicates that no custom attribute definition matches the value
	ErrDefinitionNotFound = errors.New("custom attribute definition not found: can not validate custom attribute value")

	// ErrDefinitionTypeMismatch indicates that the definition belongs to another object type
	ErrDefinitionTypeMismatch = errors.New("invalid custom attribute definition used")

	// ErrInvalidDropdownOption indicates a dropdown value outside of the definition's options
	ErrInvalidDropdownOption = errors.New("invalid custom attribute dropdown option")

	// ErrInvalidReference indicates a malformed "Type:id" reference value
	ErrInvalidReference = errors.New("invalid custom attribute object reference")

	// ErrUnknownObjectType indicates an object type with no registered accessor
	ErrUnknownObjectType = errors.New("unknown object type")

	// ErrDuplicateValue indicates a second value for the same object and definition
	ErrDuplicateValue = errors.New("custom attribute value already exists for object")

	// ErrValueNotFound indicates that the custom attribute value does not exist
	ErrValueNotFound = errors.New("custom attribute value not found")

	// ErrInvalidSearchOperator indicates a search operator other than eq, contains or in
	ErrInvalidSearchOperator = errors.New("invalid custom attribute search operator")

	// ErrObjectNotFound indicates that the attributable or referenced object does not exist
	ErrObjectNotFound = errors.New("object not found")
)

// InvalidOptionError is returned when a dropdown value is not one of the allowed options
type InvalidOptionError struct {
	Value   string
	Options []string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("%s: %q not in [%s]", ErrInvalidDropdownOption.Error(), e.Value, strings.Join(e.Options, ","))
}

func (e *InvalidOptionError) Unwrap() error {
	return ErrInvalidDropdownOption
}

// UnknownObjectTypeError names the object type that could not be resolved
type UnknownObjectTypeError struct {
	TypeName string
}

func (e *UnknownObjectTypeError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownObjectType.Error(), e.TypeName)
}

func (e *UnknownObjectTypeError) Unwrap() error {
	return ErrUnknownObjectType
}
