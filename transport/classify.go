package transport

import (
	"context"
	stderrors "errors"
	"net"
	"syscall"

	"github.com/kbukum/wirekit/errors"
)

// Classify maps an error returned by a network client onto a
// TransportFailure. A TransportFailure already in the chain is returned as
// is, so failures produced by an injected round tripper survive the
// wrapping done by net/http.
func Classify(err error) *errors.TransportFailure {
	if err == nil {
		return nil
	}

	var tf *errors.TransportFailure
	if stderrors.As(err, &tf) {
		return tf
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTransportFailure(errors.KindTimedOut, err)
	}

	var dnsErr *net.DNSError
	if stderrors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return errors.NewTransportFailure(errors.KindTimedOut, err)
		}
		return errors.NewTransportFailure(errors.KindHostUnreachable, err)
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return errors.NewTransportFailure(errors.KindTimedOut, err)
	}

	switch {
	case stderrors.Is(err, syscall.EHOSTUNREACH):
		return errors.NewTransportFailure(errors.KindHostUnreachable, err)
	case stderrors.Is(err, syscall.ECONNREFUSED),
		stderrors.Is(err, syscall.ENETUNREACH),
		stderrors.Is(err, syscall.ECONNRESET):
		return errors.NewTransportFailure(errors.KindNotConnected, err)
	}

	var opErr *net.OpError
	if stderrors.As(err, &opErr) && opErr.Op == "dial" {
		return errors.NewTransportFailure(errors.KindNotConnected, err)
	}

	return errors.NewTransportFailure(errors.KindOther, err)
}
