// Package errors defines the closed set of failure outcomes surfaced by
// wirekit.
//
// NetworkError is the only error type callers of network.Execute receive.
// TransportFailure is the narrower vocabulary transports use to report
// low-level failures; the request manager translates it into a NetworkError.
package errors
