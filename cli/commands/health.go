package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API availability",
		RunE:  a.runHealth,
	}
}

func (a *App) runHealth(cmd *cobra.Command, args []string) error {
	c, err := a.apiClient()
	if err != nil {
		return err
	}

	status, err := c.Health(cmd.Context())
	if err != nil {
		return a.handleAPIError(err)
	}

	if a.jsonOutput {
		return a.outputJSON(status)
	}

	fmt.Fprintf(a.stdout, "API is %s", status.Status)
	if status.Version != "" {
		fmt.Fprintf(a.stdout, " (version %s)", status.Version)
	}
	fmt.Fprintln(a.stdout)
	return nil
}
