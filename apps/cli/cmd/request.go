package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/wave/packages/core/builder"
	"github.com/abdul-hamid-achik/wave/packages/core/collection"
	"github.com/abdul-hamid-achik/wave/packages/core/config"
	"github.com/abdul-hamid-achik/wave/packages/core/env"
	"github.com/abdul-hamid-achik/wave/packages/core/params"
	"github.com/abdul-hamid-achik/wave/packages/http"
	"github.com/abdul-hamid-achik/wave/packages/log"
	"github.com/abdul-hamid-achik/wave/packages/output"
	"github.com/spf13/cobra"
)

// requestOptions is one invocation: either method+url or collection+request,
// plus the raw tokens.
type requestOptions struct {
	method     string
	url        string
	collection string
	request    string
	tokens     []string
	form       bool
	verbose    bool
	dryRun     bool
}

// invocation holds everything a request needs from outside the core packages.
type invocation struct {
	cfg       *config.Config
	lookup    env.LookupFunc
	transport http.Transport
	logger    log.Logger
	stdout    io.Writer
}

func newMethodCommands() []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(http.SupportedMethods))
	for _, method := range http.SupportedMethods {
		method := method // per-iteration copy for the RunE closure (go < 1.22 loop semantics)
		c := &cobra.Command{
			Use:   strings.ToLower(method) + " <url> [tokens...]",
			Short: "Send a " + method + " request",
			Long: fmt.Sprintf(`Send a %s request.

Tokens with ':' before any '=' are headers; tokens with '=' before any ':'
are body fields. Values may use ${env:NAME} placeholders.

Examples:
  wave %s https://api.example.com/users Accept:application/json
  wave %s https://api.example.com/users name=alice --form`,
				method, strings.ToLower(method), strings.ToLower(method)),
			Args: usageArgs(cobra.MinimumNArgs(1)),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runFromCommand(cmd, requestOptions{
					method: method,
					url:    args[0],
					tokens: args[1:],
				})
			},
		}
		addRequestFlags(c)
		cmds = append(cmds, c)
	}
	return cmds
}

var collectionCmd = &cobra.Command{
	Use:     "collection <collection> <request> [tokens...]",
	Aliases: []string{"c"},
	Short:   "Run a request from a collection",
	Long: `Run a named request from a YAML collection in the collection directory.

Tokens override the request's headers and body fields.

Examples:
  wave collection users get-user-info
  wave c users create-user name=bob`,
	Args: usageArgs(cobra.MinimumNArgs(2)),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFromCommand(cmd, requestOptions{
			collection: args[0],
			request:    args[1],
			tokens:     args[2:],
		})
	},
}

func init() {
	addRequestFlags(collectionCmd)
}

func runFromCommand(cmd *cobra.Command, opts requestOptions) error {
	opts.form = formFlag
	opts.verbose = verboseFlag
	opts.dryRun = dryRunFlag

	inv, err := newInvocation(cmd)
	if err != nil {
		return err
	}
	opts.verbose = opts.verbose || inv.cfg.GetVerbose()

	// Set up signal handling for graceful shutdown
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	return runRequest(ctx, inv, opts)
}

// newInvocation loads configuration and overlays the global flags that were set
// on the command line.
func newInvocation(cmd *cobra.Command) (*invocation, error) {
	logger := log.New(cmd.ErrOrStderr(), debugFlag)

	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, err
	}

	overrides, err := flagOverrides(cmd)
	if err != nil {
		return nil, err
	}
	cfg = cfg.Merge(overrides)
	logger.Debug("config loaded",
		log.String("path", cfg.Path),
		log.String("dir", cfg.Dir),
		log.Duration("timeout", cfg.Timeout),
	)

	lookup := env.SystemSnapshot()
	if cfg.EnvFile != "" {
		lookup, err = env.WithDotEnv(lookup, cfg.EnvFile)
		if err != nil {
			return nil, &config.LoadError{Path: cfg.EnvFile, Err: err}
		}
		logger.Debug("env file loaded", log.String("path", cfg.EnvFile))
	}

	return &invocation{
		cfg:       cfg,
		lookup:    lookup,
		transport: newTransport(cfg),
		logger:    logger,
		stdout:    cmd.OutOrStdout(),
	}, nil
}

func flagOverrides(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	overrides := &config.Config{
		Dir:     dirFlag,
		Proxy:   proxyFlag,
		EnvFile: envFileFlag,
	}
	if timeoutFlag != "" {
		d, err := time.ParseDuration(timeoutFlag)
		if err != nil || d <= 0 {
			return nil, &usageError{err: fmt.Errorf("invalid --timeout %q: use a duration such as 30s or 1m", timeoutFlag)}
		}
		overrides.Timeout = d
	}
	if flags.Changed("insecure") {
		overrides.ValidateSSL = config.BoolPtr(!insecureFlag)
	}
	if noColorFlag {
		overrides.NoColor = config.BoolPtr(true)
	}
	return overrides, nil
}

// newTransport builds the transport for an invocation.
var newTransport = func(cfg *config.Config) http.Transport {
	return newClient(cfg)
}

func newClient(cfg *config.Config) *http.Client {
	return http.NewClient(
		http.WithTimeout(cfg.Timeout),
		http.WithFollowRedirects(cfg.GetFollowRedirects()),
		http.WithMaxRedirects(cfg.MaxRedirects),
		http.WithValidateSSL(cfg.GetValidateSSL()),
		http.WithProxy(cfg.Proxy),
		http.WithDefaultHeaders(cfg.Headers),
	)
}

// runRequest classifies the tokens, builds the request and either prints it
// (dry run) or sends it and prints the response.
func runRequest(ctx context.Context, inv *invocation, opts requestOptions) error {
	p, err := params.Classify(opts.tokens)
	if err != nil {
		return err
	}

	var (
		tmpl *collection.RequestTemplate
		vars map[string]string
	)
	if opts.collection != "" {
		coll, err := collection.NewLoader(inv.cfg.Dir).Load(opts.collection)
		if err != nil {
			return err
		}
		inv.logger.Debug("collection loaded",
			log.String("path", coll.Path),
			log.Int("requests", len(coll.Requests)),
		)
		tmpl, err = coll.Request(opts.request)
		if err != nil {
			return err
		}
		vars = coll.Variables
	}

	req, err := builder.New(env.NewResolver(vars, inv.lookup)).Build(tmpl, builder.Input{
		Method:  opts.method,
		URL:     opts.url,
		Headers: p.Headers,
		Fields:  p.Fields,
		Form:    opts.form,
	})
	if err != nil {
		return err
	}
	inv.logger.Debug("request built",
		log.String("method", req.Method()),
		log.String("url", req.URL()),
		log.Int("headers", len(req.Headers())),
		log.Int("body_bytes", len(req.Body())),
	)

	formatter := output.NewConsoleFormatter(
		output.WithWriter(inv.stdout),
		output.WithVerbose(opts.verbose),
		output.WithNoColor(inv.cfg.GetNoColor()),
	)

	if opts.dryRun {
		formatter.FormatRequest(req)
		return nil
	}

	resp, err := inv.transport.Do(ctx, req.HTTPRequest())
	if err != nil {
		inv.logger.Error("request failed", log.Err(err))
		return err
	}
	inv.logger.Debug("response received",
		log.Int("status", resp.StatusCode),
		log.Duration("duration", resp.Duration),
	)

	formatter.FormatResponse(resp)
	return nil
}
