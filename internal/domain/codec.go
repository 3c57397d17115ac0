package domain

import (
	"strings"

	"life-planner/internal/errors"
)

type field struct {
	name    string
	present bool
}

// requireFields rejects a decoded record that lacks any of the named keys.
func requireFields(entity string, fields ...field) error {
	var missing []string
	for _, f := range fields {
		if !f.present {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return errors.NewMalformedDataError(entity, "missing field "+strings.Join(missing, ", "), nil)
	}
	return nil
}

func malformed(entity string, cause error) error {
	return errors.NewMalformedDataError(entity, "invalid JSON", cause)
}

func errDraft(entity, name, missing string) error {
	return errors.NewValidationError(entity+" "+name+" has no "+missing, nil).
		WithEntity(entity)
}
