package main

// userError reports a problem the user can fix before running again: a bad
// project name, an unreadable config or a missing terminal. main prints the
// message and the hint instead of a wrapped error chain.
type userError struct {
	msg  string
	hint string
	err  error
}

// withHint wraps err as a userError carrying hint.
func withHint(err error, hint string) *userError {
	return &userError{msg: err.Error(), hint: hint, err: err}
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Hint() string  { return e.hint }
func (e *userError) Unwrap() error { return e.err }
