// Package request describes typed HTTP calls and turns them into concrete
// wire requests.
//
// A call site implements Descriptor, usually by embedding Base and
// overriding the fields that differ from the defaults:
//
//	type getUser struct {
//	    request.Base
//	    id string
//	}
//
//	func (r getUser) Host() string   { return "api.example.com" }
//	func (r getUser) Path() []string { return []string{"users", r.id} }
//
// Build resolves a Descriptor into a Wire request without performing I/O.
package request
