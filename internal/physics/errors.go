package physics

import "errors"

// Configuration errors. They are returned at construction time so NaN/Inf never reach
// the integrator; wrap with fmt.Errorf and test with errors.Is.
var (
	ErrInvalidMass     = errors.New("invalid mass")
	ErrInvalidShape    = errors.New("invalid shape")
	ErrInvalidPosition = errors.New("invalid position")
	ErrInvalidStep     = errors.New("invalid time step")
	ErrInvalidGravity  = errors.New("invalid gravity")
	ErrNilBody         = errors.New("nil body")
	ErrDuplicateBody   = errors.New("body already in world")
)
