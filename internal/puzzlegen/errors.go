package puzzlegen

import (
	"errors"
	"fmt"
)

// Class is the category of a generation failure.
type Class int

const (
	ClassGeneric Class = iota
	ClassQuota
	ClassAuth
	ClassMalformed
	ClassNoItems
)

func (c Class) String() string {
	switch c {
	case ClassQuota:
		return "quota"
	case ClassAuth:
		return "auth"
	case ClassMalformed:
		return "malformed"
	case ClassNoItems:
		return "no-items"
	default:
		return "generic"
	}
}

// User-facing messages.
const (
	MsgQuota   = "Rate limit reached. Please wait a minute and try again."
	MsgAuth    = "Invalid API key. Please check your API key."
	MsgGeneric = "Failed to generate questions. Please try again."
)

// Error is a classified generation failure carrying a message fit for
// display.
type Error struct {
	Class   Class
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generate puzzles (%s): %v", e.Class, e.Err)
	}
	return fmt.Sprintf("generate puzzles (%s)", e.Class)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(class Class, err error) *Error {
	msg := MsgGeneric
	switch class {
	case ClassQuota:
		msg = MsgQuota
	case ClassAuth:
		msg = MsgAuth
	}
	return &Error{Class: class, Message: msg, Err: err}
}

// UserMessage returns the display message for err. Unclassified errors get
// the generic message.
func UserMessage(err error) string {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Message
	}
	return MsgGeneric
}
