package errors

import (
	"errors"
)

// As finds the outermost *Error in err's chain
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is reports whether target is anywhere in err's chain. Use it for sentinel
// errors from drivers, e.g. goredis.Nil or gocsv.ErrEmptyCSVFile.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

func find(err error) (*Error, bool) {
	var e *Error
	if err == nil || !errors.As(err, &e) {
		return nil, false
	}
	return e, true
}

// GetCode returns the code carried by err. A nil error is CodeOK and an
// error from outside this package is CodeInternal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	if e, ok := find(err); ok {
		return e.Code
	}
	return CodeInternal
}

// GetMeta returns the metadata of err, such as the creature name and
// suggestions attached to a missing creature
func GetMeta(err error) map[string]interface{} {
	if e, ok := find(err); ok {
		return e.Meta
	}
	return nil
}

// GetMessage returns the message shown to the player, without wrap context
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsNotFound reports an unknown creature or a missing data file
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument reports bad input from flags, config or roster files
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsAlreadyExists reports a duplicate creature name
func IsAlreadyExists(err error) bool {
	return GetCode(err) == CodeAlreadyExists
}

// IsFailedPrecondition reports a request the current roster or history
// cannot satisfy
func IsFailedPrecondition(err error) bool {
	return GetCode(err) == CodeFailedPrecondition
}

// IsUnavailable reports a history store that could not be reached
func IsUnavailable(err error) bool {
	return GetCode(err) == CodeUnavailable
}

// IsDataLoss reports a stored file or record that could not be parsed
func IsDataLoss(err error) bool {
	return GetCode(err) == CodeDataLoss
}
