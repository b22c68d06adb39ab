package request

// Empty is the empty-body sentinel. A descriptor whose Body is Empty (or
// nil) sends no body. Used as a response type it accepts any payload.
type Empty struct{}

// EmptyBody is the shared Empty value.
var EmptyBody = Empty{}

// IsEmpty reports whether body is the empty-body sentinel.
func IsEmpty(body any) bool {
	switch body.(type) {
	case nil, Empty, *Empty:
		return true
	}
	return false
}
