package resource

import (
	"fmt"

	"git.home.luguber.info/inful/doccatalog/internal/content"
	"git.home.luguber.info/inful/doccatalog/internal/foundation/errors"
)

// InvalidReferenceSyntaxError reports a reference that cannot be parsed.
type InvalidReferenceSyntaxError struct {
	Spec string
	// Expected is set when the caller permits a single family.
	Expected content.Family
}

func (e *InvalidReferenceSyntaxError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("invalid %s reference syntax: %q", e.Expected, e.Spec)
	}
	return fmt.Sprintf("invalid reference syntax: %q", e.Spec)
}

func (e *InvalidReferenceSyntaxError) Category() errors.ErrorCategory {
	return errors.CategoryReference
}
