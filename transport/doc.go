// Package transport defines the capability that sends a wire request and
// returns the raw response or a low-level failure.
//
// Two network-backed implementations are provided: HTTP, on net/http, and
// Resty, on go-resty. Both accept an injected http.RoundTripper so the mock
// registry can stand in for the network. Cross-cutting behavior is added
// with Middleware:
//
//	t := transport.Chain(
//		transport.WithLogging(log),
//		transport.WithTracing("billing"),
//	)(transport.NewHTTP())
//
// Transports never interpret HTTP status codes; that is left to the caller.
package transport
