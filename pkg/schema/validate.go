/*
Package schema provides lightweight type validation for node configs.

A Schema maps field names to expected types. The kind registry attaches one
schema per kind; the result is advisory (surfaced as config warnings) and
never gates a mutation.
*/
package schema

// Schema is a map of field names to their expected types.
// Example: {"cron": String(), "retries": Int(), "labels": Slice(String())}
type Schema map[string]Type

// Validate checks if data conforms to the schema. Fields present in the
// schema are required; extra keys in data are ignored (configs are open
// maps). Returns an AggregateError listing every failure, or nil.
func Validate(s Schema, data map[string]any) error {
	if len(s) == 0 {
		return nil
	}

	var errs []error
	for fieldName, fieldType := range s {
		value, exists := data[fieldName]
		if !exists {
			errs = append(errs, &ValidationError{Key: fieldName, Reason: "required"})
			continue
		}
		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: fieldName, Reason: err.Error(), Value: value})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
