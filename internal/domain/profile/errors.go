package profile

import "errors"

var (
	ErrBadRequest           = errors.New("bad request")
	ErrNotFound             = errors.New("not found")
	ErrTooManyUpdates       = errors.New("too many updates")
	ErrCannotDeactivateSelf = errors.New("cannot deactivate yourself")
)

func IsErrBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

func IsErrNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsErrTooManyUpdates(err error) bool {
	return errors.Is(err, ErrTooManyUpdates)
}
