package request

import "net/http"

// Method is an HTTP method.
type Method string

// Supported HTTP methods.
const (
	GET     Method = http.MethodGet
	POST    Method = http.MethodPost
	PUT     Method = http.MethodPut
	PATCH   Method = http.MethodPatch
	DELETE  Method = http.MethodDelete
	HEAD    Method = http.MethodHead
	OPTIONS Method = http.MethodOptions
)

// String returns the method name.
func (m Method) String() string { return string(m) }

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	switch m {
	case GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS:
		return true
	}
	return false
}

// Scheme is a URI scheme.
type Scheme string

// Supported URI schemes.
const (
	HTTP  Scheme = "http"
	HTTPS Scheme = "https"
)

// String returns the scheme name.
func (s Scheme) String() string { return string(s) }
