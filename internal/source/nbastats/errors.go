package nbastats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
)

// TransientError is a failure that a later run can expect to succeed:
// timeouts, rate limiting, upstream 5xx, dropped connections and truncated bodies.
type TransientError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransientError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: transient status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: transient: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient reports whether err, or anything it wraps, is a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// StatusError is a non-2xx response that retrying will not fix.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.StatusCode)
}

func transientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// classify wraps network-level failures as transient. Context cancellation
// is returned untouched so callers can tell an interrupt from a timeout.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout(),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.EPIPE),
		errors.Is(err, net.ErrClosed),
		errors.Is(err, io.ErrUnexpectedEOF):
		return &TransientError{Op: op, Err: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &TransientError{Op: op, Err: err}
	}
	return err
}
