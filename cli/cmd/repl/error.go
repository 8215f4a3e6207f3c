package repl

import "errors"

// ErrBadCommand is returned for unrecognized control commands.
var ErrBadCommand = errors.New("unrecognized command (try :help)")
