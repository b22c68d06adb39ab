package errors

import (
	stderrors "errors"
	"fmt"
)

// TransportKind is the closed set of low-level failures a transport reports.
type TransportKind int

const (
	// KindOther is an opaque failure without further detail.
	KindOther TransportKind = iota
	// KindNotConnected means there is no network connectivity.
	KindNotConnected
	// KindTimedOut means the request timed out.
	KindTimedOut
	// KindRouteUnavailable means the resource is unavailable; the mock
	// transport also reports it when no declared exchange matches.
	KindRouteUnavailable
	// KindHostUnreachable means the host could not be found.
	KindHostUnreachable
)

// Sentinel errors for each transport kind, usable with errors.Is.
var (
	ErrOther            = stderrors.New("transport failure")
	ErrNotConnected     = stderrors.New("not connected")
	ErrTimedOut         = stderrors.New("request timed out")
	ErrRouteUnavailable = stderrors.New("route unavailable")
	ErrHostUnreachable  = stderrors.New("host unreachable")
)

var kindNames = map[TransportKind]string{
	KindOther:            "other",
	KindNotConnected:     "not_connected",
	KindTimedOut:         "timed_out",
	KindRouteUnavailable: "route_unavailable",
	KindHostUnreachable:  "host_unreachable",
}

var kindSentinels = map[TransportKind]error{
	KindOther:            ErrOther,
	KindNotConnected:     ErrNotConnected,
	KindTimedOut:         ErrTimedOut,
	KindRouteUnavailable: ErrRouteUnavailable,
	KindHostUnreachable:  ErrHostUnreachable,
}

// String returns the kind name.
func (k TransportKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseTransportKind parses a kind name as produced by String.
func ParseTransportKind(s string) (TransportKind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindOther, fmt.Errorf("unknown transport failure %q", s)
}

// TransportFailure is a low-level failure reported by a transport.
type TransportFailure struct {
	// Kind classifies the failure.
	Kind TransportKind
	// Err is the underlying error (may be nil).
	Err error
}

// NewTransportFailure creates a failure of the given kind.
func NewTransportFailure(kind TransportKind, err error) *TransportFailure {
	return &TransportFailure{Kind: kind, Err: err}
}

// Error implements the error interface.
func (f *TransportFailure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("transport: %s: %v", f.Kind, f.Err)
	}
	return fmt.Sprintf("transport: %s", f.Kind)
}

// Unwrap returns the underlying error.
func (f *TransportFailure) Unwrap() error {
	return f.Err
}

// Is matches the sentinel error for the failure's kind.
func (f *TransportFailure) Is(target error) bool {
	return kindSentinels[f.Kind] == target
}
