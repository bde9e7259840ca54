package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
	"trackshift/internal/auth"
	"trackshift/internal/shared"
	"trackshift/internal/spotify"
	"trackshift/internal/tasks"
	"trackshift/internal/tokens"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	store      *tokens.Store
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	input      io.Reader
	engine     *tasks.Engine
	limiter    *rate.Limiter
	apiBase    string
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Store      *tokens.Store
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
	APIBase    string
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.Config != nil && opts.Config.Settings.Writes.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.Config.Settings.Writes.RatePerSecond), 1)
	}

	return &Runner{
		config:     opts.Config,
		store:      opts.Store,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      opts.Input,
		engine:     tasks.NewEngine(opts.Logger),
		limiter:    limiter,
		apiBase:    opts.APIBase,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, accountsCommand, transferCommand, historyCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// flow builds the OAuth flow for one account, wired to the shared token store.
func (r *Runner) flow(account shared.AccountConfig) *auth.Flow {
	timeout := time.Duration(r.config.Settings.OAuth.TimeoutSeconds) * time.Second
	return auth.NewFlow(account, r.store, auth.FlowOpts{
		Logger:  r.logger,
		Timeout: timeout,
		Notify: func(format string, args ...any) {
			r.writePlain(format, args...)
		},
	})
}

// client exchanges the account's refresh token for an access token and
// returns an API client bound to it.
func (r *Runner) client(ctx context.Context, account shared.AccountConfig) (*spotify.Client, error) {
	token, err := r.flow(account).AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	return spotify.NewClient(token, spotify.ClientOpts{
		BaseURL:    r.apiBase,
		HTTPClient: r.httpClient,
		Limiter:    r.limiter,
	}), nil
}

// account resolves "1" or "2" to the matching account configuration.
func (r *Runner) account(key string) (shared.AccountConfig, error) {
	switch key {
	case "1", "account1":
		return r.config.Account1, nil
	case "2", "account2":
		return r.config.Account2, nil
	default:
		return shared.AccountConfig{}, fmt.Errorf("%w: unknown account %q (must be 1 or 2)", shared.ErrInvalidArgument, key)
	}
}

// waitForEnter blocks until the user presses Enter.
func (r *Runner) waitForEnter(prompt string) {
	r.writePlain("%s", prompt)
	reader := bufio.NewReader(r.input)
	_, _ = reader.ReadString('\n')
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
