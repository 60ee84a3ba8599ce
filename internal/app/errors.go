package app

import (
	"errors"
	"fmt"

	"github.com/janeyeyey/mcal/internal/contract"
)

const (
	exitGeneric          = 1
	exitUsage            = 2
	exitReadOnly         = 3
	exitNotFound         = 4
	exitStoreUnavailable = 6
)

func exitFor(code contract.ErrorCode) int {
	switch code {
	case contract.ErrInvalidUsage, contract.ErrValidation:
		return exitUsage
	case contract.ErrReadOnly:
		return exitReadOnly
	case contract.ErrNotFound:
		return exitNotFound
	case contract.ErrStoreUnavailable:
		return exitStoreUnavailable
	default:
		return exitGeneric
	}
}

type AppError struct {
	Code    int
	Err     error
	Printed bool
}

func (e AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}
	return AppError{Code: code, Err: err}
}

func WrapPrinted(code int, err error) error {
	if err == nil {
		return nil
	}
	return AppError{Code: code, Err: err, Printed: true}
}

func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e AppError
	if errors.As(err, &e) {
		return e.Code
	}
	return 1
}
