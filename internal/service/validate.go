package service

import (
	"strings"

	"github.com/Skotchmaster/portfolio/internal/apperr"
)

type field struct {
	name  string
	value string
}

// requireFields fails with a validation error naming every blank field.
func requireFields(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return apperr.Validation("missing required fields: " + strings.Join(missing, ", "))
}
