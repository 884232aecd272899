package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidIdentifier = errors.New("invalid channel identifier")
	ErrChannelNotFound   = errors.New("channel not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// ChannelError is returned by the channel services. Kind is one of
// ErrInvalidIdentifier, ErrChannelNotFound or ErrStoreUnavailable.
type ChannelError struct {
	Op        string
	ChannelID string
	Kind      error
	Err       error
}

// NewChannelError builds a ChannelError of the given kind.
func NewChannelError(op, channelID string, kind, cause error) *ChannelError {
	return &ChannelError{Op: op, ChannelID: channelID, Kind: kind, Err: cause}
}

func (e *ChannelError) Error() string {
	if e.Err == nil || e.Err == e.Kind {
		return fmt.Sprintf("%s %q: %v", e.Op, e.ChannelID, e.Kind)
	}
	return fmt.Sprintf("%s %q: %v: %v", e.Op, e.ChannelID, e.Kind, e.Err)
}

// Is reports whether target is the error's kind.
func (e *ChannelError) Is(target error) bool {
	return target == e.Kind
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}
