package util

import "errors"

// ErrCmdAbort stops a command the user declined to continue. HandleCmdErr exits
// with status 1 without printing it.
var ErrCmdAbort = errors.New("aborted by user")
