package mock

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/request"
)

type roundTripper struct {
	reg *Registry
}

// RoundTripper returns an http.RoundTripper answering from reg, so real
// clients can run against declared exchanges. Failures are returned as
// *errors.TransportFailure.
func RoundTripper(reg *Registry) http.RoundTripper {
	return &roundTripper{reg: reg}
}

func (rt *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	w, err := wireFromHTTP(req)
	if err != nil {
		return nil, errors.NewTransportFailure(errors.KindOther, err)
	}

	outcome := rt.reg.Intercept(req.Context(), w)
	if outcome.Failure != nil {
		return nil, outcome.Failure
	}

	resp := outcome.Response
	major, minor, ok := http.ParseHTTPVersion(resp.Proto)
	if !ok {
		major, minor = 1, 1
	}
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		StatusCode:    resp.StatusCode,
		Proto:         resp.Proto,
		ProtoMajor:    major,
		ProtoMinor:    minor,
		Header:        resp.Header,
		Body:          io.NopCloser(bytes.NewReader(resp.Body)),
		ContentLength: int64(len(resp.Body)),
		Request:       req,
	}, nil
}

// wireFromHTTP converts req and consumes its body.
func wireFromHTTP(req *http.Request) (*request.Wire, error) {
	w := &request.Wire{
		Method: request.Method(req.Method),
		URL:    req.URL,
		Header: req.Header.Clone(),
	}
	if req.Body != nil {
		defer func() { _ = req.Body.Close() }()
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
		if len(body) > 0 {
			w.Body = body
		}
	}
	return w, nil
}
