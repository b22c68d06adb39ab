package transport

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"syscall"
	"testing"
	"time"

	"github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/request"
)

func newWire(t *testing.T, method request.Method, raw string) *request.Wire {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return &request.Wire{Method: method, URL: u, Header: make(http.Header), Timeout: time.Second}
}

func TestHTTP_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/things/1" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer abc" {
			t.Errorf("unexpected authorization %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Echo", string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"text":"ok"}`))
	}))
	defer server.Close()

	w := newWire(t, request.POST, server.URL+"/things/1")
	w.Header.Set("Authorization", "Bearer abc")
	w.Body = []byte("payload")

	resp, err := NewHTTP().Send(context.Background(), w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
	if resp.Proto != "HTTP/1.1" {
		t.Errorf("expected HTTP/1.1, got %q", resp.Proto)
	}
	if string(resp.Body) != `{"text":"ok"}` {
		t.Errorf("unexpected body %q", resp.Body)
	}
	if resp.Header.Get("X-Echo") != "payload" {
		t.Errorf("expected echoed body, got %q", resp.Header.Get("X-Echo"))
	}
}

func TestHTTP_SendDoesNotClassifyStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	resp, err := NewHTTP().Send(context.Background(), newWire(t, request.GET, server.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", resp.StatusCode)
	}
	if resp.Body != nil {
		t.Errorf("expected nil body, got %q", resp.Body)
	}
}

func TestHTTP_Timeout(t *testing.T) {
	done := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(done)

	w := newWire(t, request.GET, server.URL)
	w.Timeout = 20 * time.Millisecond

	_, err := NewHTTP().Send(context.Background(), w)
	if !stderrors.Is(err, errors.ErrTimedOut) {
		t.Fatalf("expected timed out failure, got %v", err)
	}
}

func TestHTTP_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	_, err := NewHTTP().Send(context.Background(), newWire(t, request.GET, addr))
	if !stderrors.Is(err, errors.ErrNotConnected) {
		t.Fatalf("expected not connected failure, got %v", err)
	}
}

func TestHTTP_WithRoundTripperKeepsFailure(t *testing.T) {
	rt := roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.NewTransportFailure(errors.KindRouteUnavailable, nil)
	})

	tr := NewHTTP(WithRoundTripper(rt), WithName("stub"))
	if tr.Name() != "stub" {
		t.Errorf("expected stub, got %q", tr.Name())
	}
	_, err := tr.Send(context.Background(), newWire(t, request.GET, "https://api.example.com/a"))
	var tf *errors.TransportFailure
	if !stderrors.As(err, &tf) {
		t.Fatalf("expected transport failure, got %T", err)
	}
	if tf.Kind != errors.KindRouteUnavailable {
		t.Errorf("expected route_unavailable, got %s", tf.Kind)
	}
}

func TestResty_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if got := r.URL.Query().Get("q"); got != "a b" {
			t.Errorf("unexpected query %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write(body)
	}))
	defer server.Close()

	w := newWire(t, request.PUT, server.URL+"/x?q=a+b")
	w.Header.Set("Content-Type", "application/json")
	w.Body = []byte(`{"id":1}`)

	tr := NewResty()
	if tr.Name() != "resty" {
		t.Errorf("expected resty, got %q", tr.Name())
	}
	resp, err := tr.Send(context.Background(), w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	if string(resp.Body) != `{"id":1}` {
		t.Errorf("unexpected body %q", resp.Body)
	}
	if resp.Proto != "HTTP/1.1" {
		t.Errorf("expected HTTP/1.1, got %q", resp.Proto)
	}
}

func TestResty_WithRoundTripperKeepsFailure(t *testing.T) {
	rt := roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.NewTransportFailure(errors.KindNotConnected, nil)
	})

	_, err := NewResty(WithRestyRoundTripper(rt)).Send(context.Background(), newWire(t, request.GET, "https://api.example.com/a"))
	if !stderrors.Is(err, errors.ErrNotConnected) {
		t.Fatalf("expected not connected failure, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.TransportKind
	}{
		{"deadline", context.DeadlineExceeded, errors.KindTimedOut},
		{"wrapped deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), errors.KindTimedOut},
		{"dns", &net.DNSError{Err: "no such host", Name: "nope.invalid", IsNotFound: true}, errors.KindHostUnreachable},
		{"dns timeout", &net.DNSError{Err: "timeout", IsTimeout: true}, errors.KindTimedOut},
		{"refused", &net.OpError{Op: "read", Err: syscall.ECONNREFUSED}, errors.KindNotConnected},
		{"net unreachable", syscall.ENETUNREACH, errors.KindNotConnected},
		{"host unreachable", syscall.EHOSTUNREACH, errors.KindHostUnreachable},
		{"dial", &net.OpError{Op: "dial", Err: stderrors.New("boom")}, errors.KindNotConnected},
		{"existing", fmt.Errorf("wrap: %w", errors.NewTransportFailure(errors.KindRouteUnavailable, nil)), errors.KindRouteUnavailable},
		{"other", stderrors.New("boom"), errors.KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got.Kind != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.Kind)
			}
		})
	}
	if Classify(nil) != nil {
		t.Error("expected nil for nil error")
	}
}

func TestFunc(t *testing.T) {
	f := Func(func(ctx context.Context, w *request.Wire) (*Response, error) {
		return &Response{StatusCode: 204}, nil
	})
	if f.Name() != "func" {
		t.Errorf("expected func, got %q", f.Name())
	}
	resp, err := f.Send(context.Background(), newWire(t, request.GET, "https://api.example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsHTTP() {
		t.Error("expected HTTP response")
	}
	if (&Response{}).IsHTTP() {
		t.Error("expected zero status to be non-HTTP")
	}
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
