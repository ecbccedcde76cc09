// Package confirm models the explicit approval token that gates every
// operation mutating target database state. The calling context decides how
// the token is obtained (flag, prompt, API field); the executing component
// only checks that the expected token was supplied and no-ops otherwise.
package confirm

import "strings"

// Tokens expected by the individual mutating pipeline steps.
const (
	TokenDrop    = "drop"
	TokenApply   = "yes"
	TokenMigrate = "migrate"
)

// Confirmation carries the caller-supplied approval token.
type Confirmation struct {
	token string
}

// None is the absent confirmation; it grants nothing.
var None = Confirmation{}

// WithToken wraps a caller-supplied token into a Confirmation.
func WithToken(token string) Confirmation {
	return Confirmation{token: strings.ToLower(strings.TrimSpace(token))}
}

// Grants reports whether the confirmation matches the token a mutating
// operation requires.
func (c Confirmation) Grants(required string) bool {
	return c.token != "" && c.token == required
}
