package request

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kbukum/wirekit/errors"
)

// ErrMissingHost is wrapped by the encoding error returned when a
// descriptor has no host.
var ErrMissingHost = stderrors.New("request: host is required")

// Wire is a fully resolved, wire-ready request.
type Wire struct {
	// Method is the HTTP method.
	Method Method
	// URL is the absolute request URL.
	URL *url.URL
	// Header holds the request headers.
	Header http.Header
	// Body is the encoded request body (nil when absent).
	Body []byte
	// Timeout is the time allowed for the call (0 means none).
	Timeout time.Duration
}

// Path returns the decoded URL path; empty when the descriptor had no
// path segments.
func (w *Wire) Path() string {
	if w.URL == nil {
		return ""
	}
	return w.URL.Path
}

// Clone returns a deep copy of the request.
func (w *Wire) Clone() *Wire {
	if w == nil {
		return nil
	}
	c := *w
	if w.URL != nil {
		u := *w.URL
		c.URL = &u
	}
	c.Header = w.Header.Clone()
	if w.Body != nil {
		c.Body = append([]byte(nil), w.Body...)
	}
	return &c
}

// HTTPRequest converts the request into an *http.Request bound to ctx.
func (w *Wire) HTTPRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if w.Body != nil {
		body = bytes.NewReader(w.Body)
	}
	req, err := http.NewRequestWithContext(ctx, w.Method.String(), w.URL.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header = w.Header.Clone()
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	return req, nil
}

// Build resolves a descriptor into a Wire request. It performs no I/O.
// Every failure is an encoding error.
func Build(d Descriptor) (*Wire, error) {
	raw, err := buildURL(d)
	if err != nil {
		return nil, errors.EncodingFailed(err)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.EncodingFailed(fmt.Errorf("request: parse url: %w", err))
	}

	w := &Wire{
		Method:  d.Method(),
		URL:     u,
		Header:  make(http.Header),
		Timeout: d.Timeout(),
	}

	// Keys differing only in case share a canonical key; Add keeps every
	// value, in key order.
	headers := d.Headers()
	for _, k := range sortedKeys(headers) {
		w.Header.Add(k, headers[k])
	}

	// Authorization goes after user headers so it wins on conflict.
	if value, ok := d.Authorization().Header(); ok {
		w.Header.Set("Authorization", value)
	}

	body := d.Body()
	if IsEmpty(body) {
		return w, nil
	}
	enc := d.Encoder()
	if enc == nil {
		enc = JSON()
	}
	data, err := enc.Encode(body)
	if err != nil {
		return nil, errors.EncodingFailed(fmt.Errorf("request: encode body: %w", err))
	}
	w.Body = data
	if IsJSON(enc) {
		w.Header.Set("Content-Type", "application/json")
	}
	return w, nil
}

// buildURL composes scheme://host[:port][/seg1/seg2...][?k=v&...].
func buildURL(d Descriptor) (string, error) {
	host := d.Host()
	if host == "" {
		return "", ErrMissingHost
	}
	scheme := d.Scheme()
	if scheme == "" {
		scheme = HTTPS
	}

	var b strings.Builder
	b.WriteString(scheme.String())
	b.WriteString("://")
	b.WriteString(host)
	if port, ok := d.Port(); ok {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(port))
	}
	for _, seg := range d.Path() {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(seg))
	}
	if q := d.Query(); len(q) > 0 {
		b.WriteByte('?')
		b.WriteString(encodeQuery(q))
	}
	return b.String(), nil
}

// encodeQuery percent-encodes params in key order.
func encodeQuery(params map[string]string) string {
	keys := sortedKeys(params)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(params[k]))
	}
	return strings.Join(parts, "&")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
