package request

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/wirekit/errors"
)

type demoGet struct {
	Base
}

func (demoGet) Host() string   { return "example.com" }
func (demoGet) Path() []string { return []string{"path", "to", "resource"} }

type demoPost struct {
	Base
	payload any
	enc     Encoder
	auth    Authorization
	headers map[string]string
}

func (d demoPost) Method() Method               { return POST }
func (d demoPost) Host() string                 { return "example.com" }
func (d demoPost) Path() []string               { return []string{"items"} }
func (d demoPost) Body() any                    { return d.payload }
func (d demoPost) Authorization() Authorization { return d.auth }
func (d demoPost) Headers() map[string]string   { return d.headers }
func (d demoPost) Encoder() Encoder {
	if d.enc == nil {
		return JSON()
	}
	return d.enc
}

type failingEncoder struct{}

func (failingEncoder) Encode(any) ([]byte, error) { return nil, fmt.Errorf("cannot encode") }

type rawEncoder struct{}

func (rawEncoder) Encode(v any) ([]byte, error) { return []byte(fmt.Sprint(v)), nil }

func TestBuild_Defaults(t *testing.T) {
	w, err := Build(Base{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := w.URL.String(); got != "https://api.example.com" {
		t.Errorf("expected https://api.example.com, got %s", got)
	}
	if w.Method != GET {
		t.Errorf("expected GET, got %s", w.Method)
	}
	if w.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", w.Timeout)
	}
	if w.Body != nil {
		t.Errorf("expected no body, got %q", w.Body)
	}
	if len(w.Header) != 0 {
		t.Errorf("expected no headers, got %v", w.Header)
	}
}

func TestBuild_EmptyPathHasNoLeadingSlash(t *testing.T) {
	for _, host := range []string{"example.com", "localhost"} {
		w, err := Build(Call{HostName: host, Params: map[string]string{"a": "b"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w.Path() != "" {
			t.Errorf("expected empty path, got %q", w.Path())
		}
		if strings.Contains(w.URL.String(), host+"/") {
			t.Errorf("unexpected slash after host in %s", w.URL)
		}
	}
}

func TestBuild_PathAndPort(t *testing.T) {
	w, err := Build(Call{
		URIScheme:  HTTP,
		HostName:   "localhost",
		PortNumber: 8080,
		Segments:   []string{"users", "john doe", "posts"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := w.URL.String(), "http://localhost:8080/users/john%20doe/posts"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if got := w.Path(); got != "/users/john doe/posts" {
		t.Errorf("unexpected decoded path %q", got)
	}
}

func TestBuild_QueryEncodedOnce(t *testing.T) {
	params := map[string]string{
		"q":     "a b&c",
		"page":  "2",
		"émoji": "✓",
	}
	w, err := Build(Call{HostName: "example.com", Segments: []string{"search"}, Params: params})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw := w.URL.RawQuery
	for k, v := range params {
		pair := url.QueryEscape(k) + "=" + url.QueryEscape(v)
		if n := strings.Count(raw, pair); n != 1 {
			t.Errorf("expected %q exactly once in %q, found %d", pair, raw, n)
		}
	}
	parsed := w.URL.Query()
	for k, v := range params {
		if got := parsed.Get(k); got != v {
			t.Errorf("query %s: expected %q, got %q", k, v, got)
		}
	}
}

func TestBuild_QueryStable(t *testing.T) {
	c := Call{Params: map[string]string{"b": "2", "a": "1", "c": "3"}}
	first, err := Build(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, _ := Build(c)
		if again.URL.String() != first.URL.String() {
			t.Fatalf("unstable url: %s vs %s", again.URL, first.URL)
		}
	}
}

func TestBuild_Authorization(t *testing.T) {
	w, err := Build(demoPost{auth: Token("secret")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := w.Header.Get("Authorization"); got != "Bearer secret" {
		t.Errorf("expected Bearer secret, got %q", got)
	}

	w, err = Build(demoPost{auth: NoAuthorization()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := w.Header["Authorization"]; ok {
		t.Error("expected no Authorization header")
	}
}

func TestBuild_AuthorizationOverridesUserHeader(t *testing.T) {
	w, err := Build(demoPost{
		auth:    Token("from-auth"),
		headers: map[string]string{"Authorization": "Basic abc", "X-Trace": "1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := w.Header.Get("Authorization"); got != "Bearer from-auth" {
		t.Errorf("expected token to override, got %q", got)
	}
	if got := w.Header.Get("X-Trace"); got != "1" {
		t.Errorf("expected user header to be kept, got %q", got)
	}

	w, _ = Build(demoPost{headers: map[string]string{"Authorization": "Basic abc"}})
	if got := w.Header.Get("Authorization"); got != "Basic abc" {
		t.Errorf("expected user header without token, got %q", got)
	}
}

func TestBuild_HeadersDifferingInCase(t *testing.T) {
	headers := map[string]string{"x-tag": "lower", "X-Tag": "upper", "X-Other": "1"}
	for i := 0; i < 20; i++ {
		w, err := Build(demoPost{headers: headers})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := w.Header.Values("X-Tag")
		if len(got) != 2 || got[0] != "upper" || got[1] != "lower" {
			t.Fatalf("expected [upper lower], got %v", got)
		}
		if w.Header.Get("X-Other") != "1" {
			t.Fatalf("expected X-Other, got %v", w.Header)
		}
	}
}

func TestBuild_JSONBody(t *testing.T) {
	type item struct {
		DisplayName string
		Count       int `json:"n"`
	}
	w, err := Build(demoPost{payload: item{DisplayName: "x", Count: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := w.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("expected application/json, got %q", got)
	}
	if got, want := string(w.Body), `{"display_name":"x","n":2}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestBuild_EmptyBodySentinel(t *testing.T) {
	for _, body := range []any{nil, EmptyBody, &Empty{}} {
		w, err := Build(demoPost{payload: body})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w.Body != nil {
			t.Errorf("expected no body for %T", body)
		}
		if w.Header.Get("Content-Type") != "" {
			t.Errorf("expected no content type for %T", body)
		}
	}
}

func TestBuild_NonJSONEncoderHasNoContentType(t *testing.T) {
	w, err := Build(demoPost{payload: "hello", enc: rawEncoder{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(w.Body) != "hello" {
		t.Errorf("expected raw body, got %q", w.Body)
	}
	if w.Header.Get("Content-Type") != "" {
		t.Errorf("expected no content type, got %q", w.Header.Get("Content-Type"))
	}
}

func TestBuild_EncoderFailure(t *testing.T) {
	_, err := Build(demoPost{payload: "x", enc: failingEncoder{}})
	if !errors.IsEncodingFailed(err) {
		t.Fatalf("expected encoding failure, got %v", err)
	}
}

type noHost struct{ Base }

func (noHost) Host() string { return "" }

func TestBuild_MissingHost(t *testing.T) {
	_, err := Build(noHost{})
	if !errors.IsEncodingFailed(err) {
		t.Fatalf("expected encoding failure, got %v", err)
	}
	if !stderrors.Is(err, ErrMissingHost) {
		t.Errorf("expected ErrMissingHost in chain, got %v", err)
	}
}

func TestWire_HTTPRequest(t *testing.T) {
	w, err := Build(demoPost{payload: map[string]string{"a": "b"}, auth: Token("t")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req, err := w.HTTPRequest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Method != "POST" {
		t.Errorf("expected POST, got %s", req.Method)
	}
	if req.URL.String() != "https://example.com/items" {
		t.Errorf("unexpected url %s", req.URL)
	}
	body, _ := io.ReadAll(req.Body)
	if string(body) != `{"a":"b"}` {
		t.Errorf("unexpected body %s", body)
	}
	if req.Header.Get("Authorization") != "Bearer t" {
		t.Errorf("expected auth header on http request")
	}
}

func TestWire_Clone(t *testing.T) {
	w, _ := Build(demoGet{})
	w.Header.Set("X-A", "1")
	c := w.Clone()
	c.Header.Set("X-A", "2")
	c.URL.Path = "/other"
	if w.Header.Get("X-A") != "1" {
		t.Error("clone shares headers")
	}
	if w.Path() != "/path/to/resource" {
		t.Error("clone shares url")
	}
}
