package normalization

import "fmt"

// EnumNormalizer is a Normalizer that names its enum in error messages.
type EnumNormalizer[T comparable] struct {
	*Normalizer[T]
	enumName string
}

// NewEnumNormalizer creates an enum normalizer with descriptive error messages.
func NewEnumNormalizer[T comparable](enumName string, values map[string]T, defaultValue T) *EnumNormalizer[T] {
	return &EnumNormalizer[T]{
		Normalizer: NewNormalizer(values, defaultValue),
		enumName:   enumName,
	}
}

// NormalizeWithValidation converts raw to an enum value. Empty input yields
// the default value without error.
func (e *EnumNormalizer[T]) NormalizeWithValidation(raw string) (T, error) {
	if clean(raw) == "" {
		return e.defaultValue, nil
	}
	v, err := e.NormalizeWithError(raw)
	if err != nil {
		return v, fmt.Errorf("invalid %s: %w", e.enumName, err)
	}
	return v, nil
}
