package metadata

import "fmt"

// DriftError signals that a query references a vertex label or property
// that is not part of the compiled schema metadata.
type DriftError struct {
	Label    string
	Property string
}

func (e *DriftError) Error() string {
	if e.Property == "" {
		return fmt.Sprintf("schema drift: vertex label %q is not in the compiled metadata", e.Label)
	}
	return fmt.Sprintf("schema drift: property %q is not declared on vertex label %q", e.Property, e.Label)
}
