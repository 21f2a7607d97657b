package report

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether an error is a broken/closed pipe, so that
// downstream consumers like `head` closing early are not treated as failures.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
