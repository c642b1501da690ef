package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/loopwork-ai/hello-mcp/internal"
	"github.com/loopwork-ai/hello-mcp/internal/config"
	"github.com/loopwork-ai/hello-mcp/mcp"
	"github.com/loopwork-ai/hello-mcp/toolbox"
)

var rootCmd = &cobra.Command{
	Use:   "hello-mcp [config-path-or-url]",
	Short: "A hello-world MCP server",
	Long: `hello-mcp is an MCP stdio server that exposes a single "say_hello" tool.
It processes JSON-RPC requests from stdin and returns JSON-RPC responses to stdout.

The optional config-path-or-url argument can be:
- A local file path (JSON or YAML)
- An HTTP(S) URL
- "-" to read from stdin`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		g, ctx := errgroup.WithContext(ctx)

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		if !verbose {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}

		g.Go(func() error {
			retryClient := retryablehttp.NewClient()
			retryClient.RetryMax = retries
			retryClient.RetryWaitMin = 1 * time.Second
			retryClient.RetryWaitMax = 30 * time.Second
			retryClient.HTTPClient.Timeout = timeout
			retryClient.Logger = logger
			client := retryClient.StandardClient()

			if auth != "" {
				resolved, wasRef, err := internal.ResolveSecretReference(ctx, auth)
				if err != nil {
					return fmt.Errorf("error resolving auth value: %w", err)
				}
				if wasRef {
					logger.Info("resolved auth secret reference")
				}

				client.Transport = &internal.HeaderTransport{
					Base:    client.Transport,
					Headers: http.Header{"Authorization": []string{resolved}},
				}
			}

			var source string
			if len(args) > 0 {
				source = args[0]
			}

			var rpcInput io.Reader = os.Stdin
			if source == "-" {
				// When reading config from stdin, RPC input has to come from
				// /dev/tty because stdin is the config pipe
				tty, err := os.Open("/dev/tty")
				if err != nil {
					return fmt.Errorf("error opening /dev/tty: %w", err)
				}
				defer tty.Close()
				rpcInput = tty
			}

			cfg, err := loadConfig(ctx, client, source, os.Stdin, logger)
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}

			serverVersion := cfg.Server.Version
			if serverVersion == "" {
				serverVersion = version
			}

			server, err := mcp.NewServer(
				mcp.WithToolProvider(toolbox.Default()),
				mcp.WithServerInfo(cfg.Server.Name, serverVersion),
				mcp.WithInstructions(cfg.Server.Instructions),
				mcp.WithDisabledTools(cfg.DisabledTools),
				mcp.WithLogger(logger),
			)
			if err != nil {
				return fmt.Errorf("error creating server: %w", err)
			}

			transport := mcp.NewStdioTransport(rpcInput, os.Stdout, os.Stderr)
			return transport.Run(ctx, server)
		})

		return g.Wait()
	},
}

// loadConfig reads the server configuration from a file path, an HTTP(S) URL,
// "-" (stdin), or returns the defaults when source is empty.
func loadConfig(ctx context.Context, client *http.Client, source string, stdin io.Reader, logger *slog.Logger) (*config.Config, error) {
	switch {
	case source == "":
		return config.DefaultConfig(), nil

	case source == "-":
		logger.Info("reading config from stdin")
		return config.Load(stdin, config.FormatJSON)

	case isURL(source):
		logger.Info("reading config from URL", "url", source)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("error creating request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("error downloading config: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d downloading config from %s", resp.StatusCode, source)
		}

		u, _ := url.Parse(source)
		return config.Load(resp.Body, config.FormatForPath(u.Path))

	default:
		logger.Info("reading config from file", "file", source)
		return config.LoadFile(source)
	}
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

var (
	auth    string
	verbose bool
	retries int
	timeout time.Duration

	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	rootCmd.Flags().StringVar(&auth, "auth", "", "Authorization header value for config downloads (plain, 'env:NAME', or 'op://vault/item/field')")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging to stderr")
	rootCmd.Flags().IntVar(&retries, "retries", 3, "Maximum number of retries for config downloads")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "HTTP request timeout")

	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built at: %s)", version, commit, date)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
