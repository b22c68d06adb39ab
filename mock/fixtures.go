package mock

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/request"
)

// fixtureFile is the YAML layout read by LoadFixtures:
//
//	delay: 50ms
//	exchanges:
//	  - method: GET
//	    path: /users/1
//	    status: 200
//	    json: {name: ada}
//	  - method: GET
//	    path: /offline
//	    failure: not_connected
type fixtureFile struct {
	Delay     string            `yaml:"delay"`
	Exchanges []fixtureExchange `yaml:"exchanges"`
}

type fixtureExchange struct {
	Method  string            `yaml:"method"`
	Path    string            `yaml:"path"`
	Status  int               `yaml:"status"`
	Proto   string            `yaml:"proto"`
	Headers map[string]string `yaml:"headers"`
	Body    *string           `yaml:"body"`
	JSON    interface{}       `yaml:"json"`
	Failure string            `yaml:"failure"`
}

// LoadFixtureFile reads YAML fixtures from path into the registry.
func (r *Registry) LoadFixtureFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("mock: open fixtures: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := r.LoadFixtures(f); err != nil {
		return fmt.Errorf("mock: %s: %w", path, err)
	}
	return nil
}

// LoadFixtures reads YAML fixtures and appends their exchanges. The delay
// is replaced only when the document sets one. Nothing is registered if
// any exchange is invalid.
func (r *Registry) LoadFixtures(src io.Reader) error {
	var doc fixtureFile
	if err := yaml.NewDecoder(src).Decode(&doc); err != nil && err != io.EOF {
		return fmt.Errorf("parsing fixtures: %w", err)
	}

	var delay time.Duration
	if doc.Delay != "" {
		d, err := time.ParseDuration(doc.Delay)
		if err != nil {
			return fmt.Errorf("parsing delay: %w", err)
		}
		delay = d
	}

	exchanges := make([]Exchange, 0, len(doc.Exchanges))
	for i, fx := range doc.Exchanges {
		e, err := fx.exchange()
		if err != nil {
			return fmt.Errorf("exchange %d: %w", i, err)
		}
		if err := e.Validate(); err != nil {
			return fmt.Errorf("exchange %d: %w", i, err)
		}
		exchanges = append(exchanges, e)
	}

	for _, e := range exchanges {
		if err := r.Register(e); err != nil {
			return err
		}
	}
	if doc.Delay != "" {
		r.SetDelay(delay)
	}
	return nil
}

func (fx fixtureExchange) exchange() (Exchange, error) {
	method := request.Method(strings.ToUpper(fx.Method))
	if fx.Method == "" {
		method = request.GET
	}
	if !method.Valid() {
		return Exchange{}, fmt.Errorf("unsupported method %q", fx.Method)
	}

	var opts []ExchangeOption
	if fx.Failure != "" {
		kind, err := errors.ParseTransportKind(fx.Failure)
		if err != nil {
			return Exchange{}, err
		}
		opts = append(opts, WithFailure(kind))
	}

	if fx.Status != 0 || fx.Body != nil || fx.JSON != nil || fx.Failure == "" {
		resp := &ServerResponse{
			StatusCode: fx.Status,
			Proto:      fx.Proto,
			Header:     fx.Headers,
		}
		switch {
		case fx.JSON != nil:
			body, err := JSONBody(fx.JSON)
			if err != nil {
				return Exchange{}, fmt.Errorf("encoding json body: %w", err)
			}
			resp.Body = body
			if resp.Header == nil {
				resp.Header = map[string]string{}
			}
			if _, ok := resp.Header["Content-Type"]; !ok {
				resp.Header["Content-Type"] = "application/json"
			}
		case fx.Body != nil:
			resp.Body = []byte(*fx.Body)
		}
		opts = append(opts, WithResponse(resp))
	}

	return On(method, fx.Path, opts...), nil
}
