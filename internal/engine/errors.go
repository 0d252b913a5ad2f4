package engine

import "errors"

var (
	ErrTokenNotFound   = errors.New("workspace token not found")
	ErrSameToken       = errors.New("a token cannot be mixed with itself")
	ErrTerminalInput   = errors.New("final elements cannot be mixed")
	ErrUnknownElement  = errors.New("element has not been discovered")
	ErrInputCount      = errors.New("a mix needs 2 or 3 elements")
	ErrModifierInput   = errors.New("use the energized flag instead of Energy as an ingredient")
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrNoUsableOutcome = errors.New("oracle returned no usable outcome")
)
