package errors

// Code classifies a NetworkError.
type Code int

const (
	// CodeGeneric is a transport failure not otherwise classified.
	CodeGeneric Code = iota
	// CodeNoConnectivity indicates the host could not be reached at all.
	CodeNoConnectivity
	// CodeTimedOut indicates the request timed out.
	CodeTimedOut
	// CodeEncodingFailed indicates the request could not be built or its body encoded.
	CodeEncodingFailed
	// CodeInvalidResponse indicates the transport produced a non-HTTP response.
	CodeInvalidResponse
	// CodeForbidden is HTTP 403.
	CodeForbidden
	// CodeNotFound is HTTP 404.
	CodeNotFound
	// CodeClientError is any other 4xx status.
	CodeClientError
	// CodeServerError is any 5xx status.
	CodeServerError
	// CodeDecodingFailed indicates the response body could not be decoded.
	CodeDecodingFailed
)

var codeNames = map[Code]string{
	CodeGeneric:         "generic",
	CodeNoConnectivity:  "no_connectivity",
	CodeTimedOut:        "timed_out",
	CodeEncodingFailed:  "encoding_failed",
	CodeInvalidResponse: "invalid_response",
	CodeForbidden:       "forbidden",
	CodeNotFound:        "not_found",
	CodeClientError:     "client_error",
	CodeServerError:     "server_error",
	CodeDecodingFailed:  "decoding_failed",
}

// String returns the code name.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}

// IsConnectivity reports whether the code belongs to the connectivity class:
// failures where no HTTP response was obtained.
func (c Code) IsConnectivity() bool {
	return c == CodeGeneric || c == CodeNoConnectivity || c == CodeTimedOut
}
