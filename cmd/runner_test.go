package main

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"golang.org/x/time/rate"
	"trackshift/internal/shared"
	tu "trackshift/internal/testing"
)

func testConfig() *shared.Config {
	return &shared.Config{
		Account1: shared.AccountConfig{Key: "account1", Name: "Account 1", ClientID: "id1", ClientSecret: "s1", RedirectURI: shared.DefaultRedirectURI, Scope: shared.DefaultScope},
		Account2: shared.AccountConfig{Key: "account2", Name: "Account 2", ClientID: "id2", ClientSecret: "s2", RedirectURI: shared.DefaultRedirectURI, Scope: shared.DefaultScope},
		Settings: shared.DefaultSettings(),
	}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := testConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.engine == nil {
				t.Error("expected engine to be created")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})

		t.Run("throttle from settings", func(t *testing.T) {
			config := testConfig()
			config.Settings.Writes.RatePerSecond = 4.0

			runner := NewRunner(RunnerOpts{Config: config})
			if runner.limiter.Limit() != 4.0 {
				t.Errorf("expected 4.0 writes per second, got %v", runner.limiter.Limit())
			}
		})

		t.Run("no config disables throttle", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.limiter.Limit() != rate.Inf {
				t.Errorf("expected unlimited writes, got %v", runner.limiter.Limit())
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("compact", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]int{"n": 1}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "{\"n\":1}\n" {
				t.Errorf("unexpected output: %q", output.String())
			}
		})

		t.Run("pretty", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]int{"n": 1}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "\n  ") {
				t.Errorf("expected indentation, got %q", output.String())
			}
		})

		t.Run("write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writeJSON(map[string]int{"n": 1}, false); err == nil {
				t.Error("expected write error")
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		runner.writePlain("count: %d\n", 3)
		if output.String() != "count: 3\n" {
			t.Errorf("unexpected output: %q", output.String())
		}

		output.Reset()
		runner.writePlainln("done")
		if output.String() != "\ndone\n" {
			t.Errorf("unexpected output: %q", output.String())
		}
	})

	t.Run("account resolution", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Config: testConfig()})

		account, err := runner.account("1")
		if err != nil || account.Key != "account1" {
			t.Errorf("expected account1, got %+v (%v)", account, err)
		}

		account, err = runner.account("account2")
		if err != nil || account.Key != "account2" {
			t.Errorf("expected account2, got %+v (%v)", account, err)
		}

		if _, err := runner.account("3"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected invalid argument error, got %v", err)
		}
	})

	t.Run("waitForEnter", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Input: strings.NewReader("\n")})

		runner.waitForEnter("Press Enter...")
		if output.String() != "Press Enter..." {
			t.Errorf("expected prompt written, got %q", output.String())
		}
	})
}

func TestTransferFlagValidation(t *testing.T) {
	runner := NewRunner(RunnerOpts{Config: testConfig(), Output: &bytes.Buffer{}})

	t.Run("direction passthrough", func(t *testing.T) {
		for _, d := range []string{"1to2", "2to1", "both"} {
			got, err := runner.resolveDirection(d)
			if err != nil || got != d {
				t.Errorf("expected %q accepted, got %q (%v)", d, got, err)
			}
		}
	})

	t.Run("invalid direction", func(t *testing.T) {
		if _, err := runner.resolveDirection("sideways"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected invalid argument error, got %v", err)
		}
	})

	t.Run("content passthrough", func(t *testing.T) {
		for _, c := range []string{contentLiked, contentPlaylists, contentAll} {
			got, err := runner.resolveContent(c)
			if err != nil || got != c {
				t.Errorf("expected %q accepted, got %q (%v)", c, got, err)
			}
		}
	})

	t.Run("invalid content", func(t *testing.T) {
		if _, err := runner.resolveContent("albums"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected invalid argument error, got %v", err)
		}
	})
}
