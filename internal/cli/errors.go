package cli

import (
	"errors"
	"fmt"

	"github.com/agisilaos/macsearch/internal/provider"
	"github.com/agisilaos/macsearch/internal/storesearch"
)

const (
	ExitSuccess         = 0
	ExitGenericFailure  = 1
	ExitInvalidUsage    = 2
	ExitProviderFailure = 4
	ExitNoMatches       = 5
)

type ExitError struct {
	Code  int
	Err   error
	Hints []string
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e ExitError) Unwrap() error {
	return e.Err
}

func newExitError(code int, format string, args ...any) error {
	return ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

func newUsageError(command string, format string, args ...any) error {
	return ExitError{
		Code:  ExitInvalidUsage,
		Err:   fmt.Errorf(format, args...),
		Hints: []string{"macsearch help " + command},
	}
}

func wrapExitError(code int, err error) error {
	if err == nil {
		return nil
	}
	var ex ExitError
	if errors.As(err, &ex) {
		return err
	}
	return ExitError{Code: code, Err: err}
}

func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ex ExitError
	if errors.As(err, &ex) {
		if ex.Code <= 0 {
			return ExitGenericFailure
		}
		return ex.Code
	}
	return ExitGenericFailure
}

// ErrorHints returns follow-up commands worth suggesting for err.
func ErrorHints(err error) []string {
	var ex ExitError
	if errors.As(err, &ex) {
		return ex.Hints
	}
	return nil
}

func wrapProviderError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, storesearch.ErrAbandoned):
		return ExitError{
			Code:  ExitProviderFailure,
			Err:   err,
			Hints: []string{"retry with a larger --timeout or raise wait_timeout_seconds"},
		}
	case errors.Is(err, provider.ErrInvalidQuery):
		return wrapExitError(ExitInvalidUsage, err)
	case errors.Is(err, provider.ErrRateLimited):
		return ExitError{
			Code:  ExitProviderFailure,
			Err:   err,
			Hints: []string{"wait a minute before querying the catalog again"},
		}
	default:
		return wrapExitError(ExitProviderFailure, err)
	}
}
