// Package network executes typed requests.
//
// A Manager turns a request.Descriptor into a wire request, sends it
// through a transport.Transport and classifies the outcome. Every failure
// is a *errors.NetworkError:
//
//	type getUser struct{ request.Base; id string }
//
//	func (g getUser) Path() []string { return []string{"users", g.id} }
//
//	user, err := network.Execute[User](ctx, m, getUser{id: "42"})
//	if errors.IsNotFound(err) {
//		// ...
//	}
//
// The same code runs against the network (transport.HTTP, transport.Resty)
// or a mock.Registry (mock.NewTransport). Nothing is retried.
package network
