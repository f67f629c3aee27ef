/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package core

import (
	"fmt"

	"github.com/go-errors/errors"
)

// wrappedError pairs a sentinel error (err) with the underlying cause.
type wrappedError struct {
	err   error
	cause error
}

func (w wrappedError) Error() string {
	// Sprintf guards against nil err or cause
	return fmt.Sprintf("%s: %s", w.err, w.cause)
}

func (w wrappedError) Is(other error) bool {
	return errors.Is(w.err, other)
}

func (w wrappedError) Unwrap() error {
	return w.cause
}

// WrapError returns an error that wraps a cause. In contrary to fmt.Errorf, errors.Is can be used on both the outer error and cause.
func WrapError(err error, cause error) error {
	return wrappedError{
		err:   err,
		cause: cause,
	}
}

// Stack returns the stack trace of the given error when it was created by go-errors, or the error message otherwise.
// It is used when logging unexpected (500) errors.
func Stack(err error) string {
	var stackErr *errors.Error
	if errors.As(err, &stackErr) {
		return string(stackErr.Stack())
	}
	return err.Error()
}
