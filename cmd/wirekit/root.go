package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/kbukum/wirekit/component"
	"github.com/kbukum/wirekit/config"
	"github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/logger"
	"github.com/kbukum/wirekit/mock"
	"github.com/kbukum/wirekit/network"
	"github.com/kbukum/wirekit/request"
	"github.com/kbukum/wirekit/version"
)

type callOptions struct {
	configName string
	configFile string
	fixtures   string
	scheme     string
	host       string
	port       int
	query      map[string]string
	headers    map[string]string
	token      string
	data       string
	timeout    time.Duration
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "wirekit",
		Short:         "Send typed HTTP requests through a wirekit Request Manager",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCallCmd(out))
	return root
}

func newCallCmd(out io.Writer) *cobra.Command {
	var o callOptions
	cmd := &cobra.Command{
		Use:   "call METHOD [SEGMENT...]",
		Short: "Execute one request and print the response",
		Example: `  wirekit call GET users 42 --host api.example.com
  wirekit call POST messages --data '{"text":"hi"}' --token secret
  wirekit call GET a --fixtures exchanges.yml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, out, o, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.configName, "config", "wirekit", "Configuration name (<name>.yml, .env.<name>)")
	f.StringVar(&o.configFile, "config-file", "", "Configuration file, overrides --config lookup")
	f.StringVar(&o.fixtures, "fixtures", "", "YAML exchanges; answers requests from them instead of the network")
	f.StringVar(&o.scheme, "scheme", string(request.HTTPS), "URL scheme: http or https")
	f.StringVar(&o.host, "host", request.DefaultHost, "Host name")
	f.IntVar(&o.port, "port", 0, "Port, omitted when 0")
	f.StringToStringVarP(&o.query, "query", "q", nil, "Query parameters key=value")
	f.StringToStringVarP(&o.headers, "header", "H", nil, "Headers key=value")
	f.StringVar(&o.token, "token", "", "Bearer token")
	f.StringVarP(&o.data, "data", "d", "", "JSON request body")
	f.DurationVar(&o.timeout, "timeout", request.DefaultTimeout, "Request timeout")
	return cmd
}

func runCall(cmd *cobra.Command, out io.Writer, o callOptions, args []string) error {
	ctx := cmd.Context()

	call, err := o.descriptor(args)
	if err != nil {
		return err
	}

	var loadOpts []config.Option
	if o.configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(o.configFile))
	}
	cfg, err := network.LoadConfig(o.configName, loadOpts...)
	if err != nil {
		return err
	}

	log := logger.New(&cfg.Logging, cfg.Name).WithComponent("wirekit")
	components := component.NewRegistry(log)

	reg := mock.NewRegistry(mock.WithLogger(log))
	if o.fixtures != "" {
		if err := reg.LoadFixtureFile(o.fixtures); err != nil {
			return err
		}
		cfg.Transport = network.TransportMock
		if err := components.Register(mock.NewComponent("fixtures", reg)); err != nil {
			return err
		}
	}
	nc := network.NewComponent(cfg, reg)
	if err := components.Register(nc); err != nil {
		return err
	}

	if err := components.StartAll(ctx); err != nil {
		_ = components.StopAll(ctx)
		return err
	}
	defer func() { _ = components.StopAll(ctx) }()

	resp, err := network.ExecuteRaw(ctx, nc.Manager(), call)
	if err != nil {
		if nerr, ok := errors.As(err); ok && len(nerr.Body) > 0 {
			fmt.Fprintf(out, "%s\n", nerr.Body)
		}
		return err
	}
	fmt.Fprintf(out, "%s %d\n", resp.Proto, resp.StatusCode)
	if len(resp.Body) > 0 {
		fmt.Fprintf(out, "%s\n", resp.Body)
	}
	return nil
}

// descriptor turns the command line into a request.Call.
func (o callOptions) descriptor(args []string) (request.Call, error) {
	method := request.Method(strings.ToUpper(args[0]))
	if !method.Valid() {
		return request.Call{}, fmt.Errorf("unsupported method %q", args[0])
	}
	scheme := request.Scheme(strings.ToLower(o.scheme))
	if scheme != request.HTTP && scheme != request.HTTPS {
		return request.Call{}, fmt.Errorf("unsupported scheme %q", o.scheme)
	}

	call := request.Call{
		Verb:       method,
		URIScheme:  scheme,
		HostName:   o.host,
		PortNumber: o.port,
		Segments:   args[1:],
		Params:     o.query,
		Header:     o.headers,
		Auth:       request.NoAuthorization(),
		Deadline:   o.timeout,
	}
	if o.token != "" {
		call.Auth = request.Token(o.token)
	}
	if o.data != "" {
		if !jsoniter.Valid([]byte(o.data)) {
			return request.Call{}, fmt.Errorf("--data is not valid JSON")
		}
		call.Payload = jsoniter.RawMessage(o.data)
	}
	return call, nil
}
