package request

import "time"

// Default descriptor values.
const (
	DefaultHost    = "api.example.com"
	DefaultTimeout = 10 * time.Second
)

// Descriptor describes one HTTP call. The expected response type is chosen
// at the call site (network.Execute[T]).
type Descriptor interface {
	// Method is the HTTP method.
	Method() Method
	// Scheme is the URI scheme.
	Scheme() Scheme
	// Host is the host name, without port or path.
	Host() string
	// Port returns the explicit port, if any.
	Port() (int, bool)
	// Path returns the path segments, joined with "/".
	Path() []string
	// Query returns the query parameters.
	Query() map[string]string
	// Headers returns the request headers.
	Headers() map[string]string
	// Authorization decides whether an Authorization header is added.
	Authorization() Authorization
	// Body returns the request body. Empty (or nil) sends no body.
	Body() any
	// Encoder encodes Body.
	Encoder() Encoder
	// Decoder decodes the response body.
	Decoder() Decoder
	// Timeout is the time allowed for the call.
	Timeout() time.Duration
}

// Base implements Descriptor with the defaults: GET https://api.example.com,
// no port, path, query, headers or authorization, an empty body, the default
// JSON codec and a 10s timeout. Embed it and override what differs.
type Base struct{}

var _ Descriptor = Base{}

func (Base) Method() Method               { return GET }
func (Base) Scheme() Scheme               { return HTTPS }
func (Base) Host() string                 { return DefaultHost }
func (Base) Port() (int, bool)            { return 0, false }
func (Base) Path() []string               { return nil }
func (Base) Query() map[string]string     { return nil }
func (Base) Headers() map[string]string   { return nil }
func (Base) Authorization() Authorization { return NoAuthorization() }
func (Base) Body() any                    { return EmptyBody }
func (Base) Encoder() Encoder             { return JSON() }
func (Base) Decoder() Decoder             { return JSON() }
func (Base) Timeout() time.Duration       { return DefaultTimeout }

// Call is a Descriptor assembled from plain fields, for call sites that do
// not need a dedicated type. Zero fields take the Base defaults.
type Call struct {
	Verb       Method
	URIScheme  Scheme
	HostName   string
	PortNumber int
	Segments   []string
	Params     map[string]string
	Header     map[string]string
	Auth       Authorization
	Payload    any
	Enc        Encoder
	Dec        Decoder
	Deadline   time.Duration
}

var _ Descriptor = Call{}

// Method implements Descriptor.
func (c Call) Method() Method {
	if c.Verb == "" {
		return GET
	}
	return c.Verb
}

// Scheme implements Descriptor.
func (c Call) Scheme() Scheme {
	if c.URIScheme == "" {
		return HTTPS
	}
	return c.URIScheme
}

// Host implements Descriptor.
func (c Call) Host() string {
	if c.HostName == "" {
		return DefaultHost
	}
	return c.HostName
}

// Port implements Descriptor.
func (c Call) Port() (int, bool) { return c.PortNumber, c.PortNumber > 0 }

// Path implements Descriptor.
func (c Call) Path() []string { return c.Segments }

// Query implements Descriptor.
func (c Call) Query() map[string]string { return c.Params }

// Headers implements Descriptor.
func (c Call) Headers() map[string]string { return c.Header }

// Authorization implements Descriptor.
func (c Call) Authorization() Authorization { return c.Auth }

// Body implements Descriptor.
func (c Call) Body() any {
	if c.Payload == nil {
		return EmptyBody
	}
	return c.Payload
}

// Encoder implements Descriptor.
func (c Call) Encoder() Encoder {
	if c.Enc == nil {
		return JSON()
	}
	return c.Enc
}

// Decoder implements Descriptor.
func (c Call) Decoder() Decoder {
	if c.Dec == nil {
		return JSON()
	}
	return c.Dec
}

// Timeout implements Descriptor.
func (c Call) Timeout() time.Duration {
	if c.Deadline <= 0 {
		return DefaultTimeout
	}
	return c.Deadline
}
