package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (a *App) newLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Store API credentials",
		Long: `Store the access and refresh tokens issued by the identity provider.

Tokens are prompted without echo and persisted encrypted under your
home directory.`,
		RunE: a.runLogin,
	}
}

func (a *App) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear stored credentials",
		RunE:  a.runLogout,
	}
}

func (a *App) newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated account",
		RunE:  a.runWhoami,
	}
}

func (a *App) runLogin(cmd *cobra.Command, args []string) error {
	accessToken, err := a.promptSecret("Access token: ")
	if err != nil {
		return exitWithCode(ExitValidation, fmt.Errorf("failed to read token: %w", err))
	}
	if accessToken == "" {
		return exitWithCode(ExitValidation, fmt.Errorf("access token cannot be empty"))
	}

	refreshToken, err := a.promptSecret("Refresh token (optional): ")
	if err != nil {
		return exitWithCode(ExitValidation, fmt.Errorf("failed to read token: %w", err))
	}

	c, err := a.apiClient()
	if err != nil {
		return err
	}

	if err := c.Login(accessToken, refreshToken); err != nil {
		return exitWithCode(ExitValidation, fmt.Errorf("failed to store credentials: %w", err))
	}

	fmt.Fprintln(a.stdout, "Credentials stored.")
	return nil
}

func (a *App) runLogout(cmd *cobra.Command, args []string) error {
	c, err := a.apiClient()
	if err != nil {
		return err
	}

	if err := c.Logout(); err != nil {
		return exitWithCode(ExitValidation, fmt.Errorf("failed to clear credentials: %w", err))
	}

	fmt.Fprintln(a.stdout, "Logged out.")
	return nil
}

func (a *App) runWhoami(cmd *cobra.Command, args []string) error {
	c, err := a.apiClient()
	if err != nil {
		return err
	}

	user, err := c.Me(cmd.Context())
	if err != nil {
		return a.handleAPIError(err)
	}

	if a.jsonOutput {
		return a.outputJSON(user)
	}

	fmt.Fprintf(a.stdout, "%s", user.Email)
	if user.Name != "" {
		fmt.Fprintf(a.stdout, " (%s)", user.Name)
	}
	fmt.Fprintln(a.stdout)
	if user.Tier != "" {
		fmt.Fprintf(a.stdout, "  tier: %s\n", user.Tier)
	}
	return nil
}

// promptSecret reads a line without echo when attached to a terminal,
// falling back to plain reads for piped input.
func (a *App) promptSecret(label string) (string, error) {
	fmt.Fprint(a.stdout, label)

	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		fmt.Fprintln(a.stdout) // Newline after hidden input
		return string(secret), nil
	}

	// Fallback for non-terminal (e.g., piped input). A single buffered
	// reader is kept so consecutive prompts do not drop buffered lines.
	if a.stdinReader == nil {
		a.stdinReader = bufio.NewReader(a.stdin)
	}
	line, err := a.stdinReader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
