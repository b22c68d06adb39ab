// Package mock provides a deterministic stand-in for the network.
//
// A Registry holds declared exchanges: a reference request paired with
// either a canned server response or a transport failure. Requests are
// matched on (path, method) only. The first declared exchange wins, and
// exchanges are never consumed, so repeated calls see the same outcome.
//
//	reg := mock.NewRegistry()
//	reg.MustRegister(mock.ExchangeFor(getUser{}, mock.WithResponse(mock.Respond(200, body))))
//	m := network.New(mock.NewTransport(reg))
//
// The registry also plugs in under a real client through RoundTripper, and
// can be populated from YAML fixtures.
package mock
