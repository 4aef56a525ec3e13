// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package attempt

import (
	"errors"
	"fmt"
)

var (
	// ErrAttempt matches every *AttemptError.
	ErrAttempt = errors.New("attempt failed")
	// ErrWordlist is returned when the wordlist cannot be opened or read.
	ErrWordlist = errors.New("wordlist unavailable")
)

// AttemptError is a failure to prepare or run one candidate.
type AttemptError struct {
	Op  string
	Err error
}

func (e *AttemptError) Error() string {
	return fmt.Sprintf("attempt: %s: %v", e.Op, e.Err)
}

func (e *AttemptError) Unwrap() error {
	return e.Err
}

func (e *AttemptError) Is(target error) bool {
	return target == ErrAttempt
}
