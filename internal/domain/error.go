package domain

import "errors"

var (
	// ErrIllegalCommand indicates that the command is not offered in the current run state.
	ErrIllegalCommand = errors.New("command not allowed in current state")

	// ErrUnknownCommand indicates that the command name could not be parsed.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUnknownMode indicates that the mode name could not be parsed.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrUnknownLanguage indicates that the language code is not supported.
	ErrUnknownLanguage = errors.New("language must be vi or en")

	// ErrUnknownField indicates that the picker field name could not be parsed.
	ErrUnknownField = errors.New("field must be hours, minutes or seconds")

	// ErrPickerLocked indicates that the timer is active and the picker is inert.
	ErrPickerLocked = errors.New("duration picker is locked while the timer is active")

	// ErrInvalidTickInterval indicates that the tick cadence is out of range.
	ErrInvalidTickInterval = errors.New("tick interval must be between 100ms and 10s")
)
