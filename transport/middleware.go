package transport

// Middleware wraps a Transport with cross-cutting behavior.
type Middleware func(Transport) Transport

// Chain composes middlewares. The first middleware is outermost.
//
// Chain(a, b, c)(t) is equivalent to a(b(c(t))).
func Chain(middlewares ...Middleware) Middleware {
	return func(inner Transport) Transport {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}
