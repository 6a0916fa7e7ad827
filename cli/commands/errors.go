package commands

import (
	"encoding/json"
	"fmt"

	"github.com/ajitkumar0/Imagegenenerator-sub002/core"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitAPI        = 2
	ExitNetwork    = 3
	ExitAuth       = 4
)

// handleAPIError renders a classified failure and wraps it with the
// matching exit code.
func (a *App) handleAPIError(err error) error {
	info := core.InfoFromError(err)

	if a.jsonOutput {
		a.outputErrorJSON(info)
	} else {
		fmt.Fprintf(a.stderr, "Error: %s\n", info.Message)
		switch info.Recovery {
		case core.RecoveryLogin:
			fmt.Fprintln(a.stderr, "Run 'imagegen login' to sign in.")
		case core.RecoveryUpgrade:
			fmt.Fprintln(a.stderr, "Run 'imagegen subscription tiers' to see available plans.")
		default:
			if info.Retryable {
				fmt.Fprintln(a.stderr, "This failure is transient; try again shortly.")
			}
		}
	}

	return exitWithCode(exitCodeForKind(info.Kind), err)
}

func exitCodeForKind(kind core.ErrorKind) int {
	switch kind {
	case core.KindAuthentication, core.KindAuthorization:
		return ExitAuth
	case core.KindNetworkError, core.KindTimeout:
		return ExitNetwork
	case core.KindValidation, core.KindNotFound:
		return ExitValidation
	default:
		return ExitAPI
	}
}

func (a *App) outputJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *App) outputErrorJSON(info core.ErrorInfo) {
	output := map[string]any{
		"error": map[string]any{
			"kind":        string(info.Kind),
			"severity":    string(info.Severity),
			"title":       info.Title,
			"message":     info.Message,
			"retryable":   info.Retryable,
			"dismissible": info.Dismissible,
			"recovery":    string(info.Recovery),
		},
	}

	enc := json.NewEncoder(a.stderr)
	enc.SetIndent("", "  ")
	enc.Encode(output)
}

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}
