// package auth drives the OAuth authorization code flow for one account:
// refresh-first re-entry, loopback redirect capture, code exchange, and
// refresh token persistence.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"trackshift/internal/server"
	"trackshift/internal/shared"
	"trackshift/internal/spotify"
	"trackshift/internal/tokens"
)

// DefaultTimeout bounds the wait for the browser redirect.
const DefaultTimeout = 300 * time.Second

// Flow authorizes one account and keeps its refresh token in the store.
type Flow struct {
	account     shared.AccountConfig
	store       *tokens.Store
	config      *oauth2.Config
	logger      *log.Logger
	timeout     time.Duration
	openBrowser func(string) error
	notify      func(format string, args ...any)
}

// FlowOpts contains optional Flow overrides.
type FlowOpts struct {
	// OAuthConfig overrides the derived oauth2 config (tests point its
	// endpoint at a fake token server).
	OAuthConfig *oauth2.Config
	Logger      *log.Logger
	Timeout     time.Duration
	// OpenBrowser overrides the system browser launcher.
	OpenBrowser func(string) error
	// Notify receives user-facing status lines (URL fallback, wait notice).
	Notify func(format string, args ...any)
}

// NewFlow creates a Flow for the given account backed by the token store.
func NewFlow(account shared.AccountConfig, store *tokens.Store, opts FlowOpts) *Flow {
	if opts.OAuthConfig == nil {
		opts.OAuthConfig = spotify.OAuthConfig(account)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}
	if opts.Notify == nil {
		opts.Notify = func(string, ...any) {}
	}

	return &Flow{
		account:     account,
		store:       store,
		config:      opts.OAuthConfig,
		logger:      shared.WithLogger(opts.Logger, "account", account.Name),
		timeout:     opts.Timeout,
		openBrowser: opts.OpenBrowser,
		notify:      opts.Notify,
	}
}

// Authorize ensures a valid refresh token exists for the account.
//
// With a stored refresh token it attempts one refresh and, on success,
// treats the account as already authorized with no further network activity
// and no browser interaction. On refresh failure the stale entry is deleted
// and the full interactive flow runs, replacing the stored token.
func (f *Flow) Authorize(ctx context.Context) (string, error) {
	if stored, ok := f.store.Get(f.account.Key); ok {
		if _, err := spotify.Refresh(ctx, f.config, stored); err == nil {
			f.logger.Info("already authorized")
			return stored, nil
		}

		f.logger.Warn("stored refresh token rejected, re-authorizing")
		if err := f.store.Delete(f.account.Key); err != nil {
			return "", err
		}
	}

	token, err := f.interactive(ctx)
	if err != nil {
		return "", err
	}

	if token.RefreshToken == "" {
		return "", fmt.Errorf("%w: token response carried no refresh token", shared.ErrAuthFailed)
	}

	if err := f.store.Set(f.account.Key, token.RefreshToken); err != nil {
		return "", err
	}

	return token.RefreshToken, nil
}

// AccessToken exchanges the stored refresh token for an ephemeral access
// token. Access tokens are never persisted.
func (f *Flow) AccessToken(ctx context.Context) (string, error) {
	stored, ok := f.store.Get(f.account.Key)
	if !ok {
		return "", fmt.Errorf("%w for %s", shared.ErrNoRefreshToken, f.account.Name)
	}

	token, err := spotify.Refresh(ctx, f.config, stored)
	if err != nil {
		return "", err
	}

	return token.AccessToken, nil
}

// interactive runs the browser flow: loopback listener, consent screen,
// redirect capture, code exchange.
func (f *Flow) interactive(ctx context.Context) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, err
	}

	redirect, err := url.Parse(f.account.RedirectURI)
	if err != nil {
		return nil, fmt.Errorf("%w: bad redirect URI %q: %v", shared.ErrInvalidConfig, f.account.RedirectURI, err)
	}

	handler := server.NewCallbackHandler(f.account.RedirectURI, state)
	router := server.NewBasicRouter()
	router.Use(server.Logging(f.logger))
	router.Handler(handler)

	httpServer := &http.Server{
		Addr:    redirect.Host,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		f.logger.Info("starting redirect listener", "addr", redirect.Host)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	// Give the listener a beat to bind before pointing the browser at it.
	time.Sleep(100 * time.Millisecond)

	authURL := spotify.AuthCodeURL(f.config, state)
	if err := f.openBrowser(authURL); err != nil {
		f.logger.Warn("failed to open browser automatically", "error", err)
		f.notify("Could not open browser. Please open this URL manually:\n%s\n", authURL)
	}

	f.notify("Waiting for authorization of %s (timeout: %s)...\n", f.account.Name, f.timeout)

	deadline := time.NewTimer(f.timeout)
	defer deadline.Stop()

	var result server.CallbackResult

	select {
	case result = <-handler.Result():
	case err := <-serverErrors:
		return nil, fmt.Errorf("redirect listener failed: %w", err)
	case <-deadline.C:
		f.shutdown(httpServer)
		return nil, fmt.Errorf("%w: no authorization redirect within %s", shared.ErrTimeout, f.timeout)
	case <-ctx.Done():
		f.shutdown(httpServer)
		return nil, ctx.Err()
	}

	f.shutdown(httpServer)

	return spotify.Exchange(ctx, f.config, result.Code)
}

func (f *Flow) shutdown(httpServer *http.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		f.logger.Warn("error shutting down redirect listener", "error", err)
	}
}
