// internal/app/system/status/status.go
package status

import "errors"

// Record status values shared by catalog collections.
const (
	Active   = "active"
	Disabled = "disabled"
)

// ErrInvalid is returned by stores given a status outside the known values.
var ErrInvalid = errors.New("invalid status")

// Valid reports whether s is a known status.
func Valid(s string) bool {
	return s == Active || s == Disabled
}
