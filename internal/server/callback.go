package server

import (
	"fmt"
	"html"
	"net/http"
	"net/url"
	"sync"
)

// CallbackResult carries the authorization code captured from the redirect.
type CallbackResult struct {
	Code string
}

// CallbackHandler captures the OAuth redirect on the loopback listener.
// Implements the [Handler] interface for registration with a [Router].
//
// Only a redirect carrying a code parameter completes the flow: the code is
// sent through a one-shot result channel and the channel is closed. A
// redirect carrying an error parameter answers 400 but deliberately does NOT
// signal the channel, so the controller keeps waiting until its deadline.
// Whether that asymmetry is intentional upstream is unresolved; it is kept
// as observed behavior.
type CallbackHandler struct {
	state      string
	route      string
	resultChan chan CallbackResult
	once       sync.Once
}

// NewCallbackHandler creates a handler for the given redirect URI and state
// token. The state token should be cryptographically random.
func NewCallbackHandler(redirectURI, state string) *CallbackHandler {
	route := "/callback"
	if u, err := url.Parse(redirectURI); err == nil && u.Path != "" {
		route = u.Path
	}

	return &CallbackHandler{
		state:      state,
		route:      route,
		resultChan: make(chan CallbackResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{h.route}
}

// ServeHTTP handles the redirect request.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if code := query.Get("code"); code != "" {
		if h.state != "" && query.Get("state") != h.state {
			writePage(w, http.StatusBadRequest, invalidPage)
			return
		}

		h.send(CallbackResult{Code: code})
		writePage(w, http.StatusOK, successPage)
		return
	}

	if errParam := query.Get("error"); errParam != "" {
		writePage(w, http.StatusBadRequest, fmt.Sprintf(errorPage, html.EscapeString(errParam)))
		return
	}

	writePage(w, http.StatusBadRequest, invalidPage)
}

// send delivers the result exactly once and closes the channel.
func (h *CallbackHandler) send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the channel that receives the captured code.
//
// The channel receives at most one result and is then closed.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.resultChan
}

func writePage(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

const successPage = `<!DOCTYPE html>
<html>
<head>
    <title>Authorization Successful</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>✓ Authorization Successful</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`

const errorPage = `<!DOCTYPE html>
<html>
<head>
    <title>Authorization Error</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #e22134; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>✗ Authorization Failed</h1>
        <p>Error: %s</p>
        <p>Please close this window and try again.</p>
    </div>
</body>
</html>
`

const invalidPage = `<!DOCTYPE html>
<html>
<head>
    <title>Invalid Request</title>
</head>
<body>
    <h1>Invalid Request</h1>
    <p>No authorization code found.</p>
</body>
</html>
`
