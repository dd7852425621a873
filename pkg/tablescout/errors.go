package tablescout

import "errors"

// ErrTableNotFound indicates the header text matched no cell on any
// sheet. This is a normal lookup outcome, not a failure; callers
// branch on it with errors.Is.
var ErrTableNotFound = errors.New("table not found")
