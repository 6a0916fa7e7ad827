package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajitkumar0/Imagegenenerator-sub002/client"
)

func (a *App) newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <generation-id>",
		Short: "Show one generation",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runStatus,
	}
}

func (a *App) newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List generation history",
		RunE:  a.runList,
	}

	cmd.Flags().IntVar(&a.listLimit, "limit", 20, "Maximum results per page")
	cmd.Flags().IntVar(&a.listOffset, "offset", 0, "Results to skip")
	cmd.Flags().StringVar(&a.listStatus, "status", "", "Filter by status (queued, running, completed, failed, cancelled)")
	return cmd
}

func (a *App) newCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <generation-id>",
		Short: "Cancel an in-flight generation",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runCancel,
	}
}

func (a *App) newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <generation-id>",
		Short: "Delete a generation and its images",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runDelete,
	}
}

func (a *App) newDownloadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <generation-id>...",
		Short: "Download generations as a zip archive",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runDownload,
	}

	cmd.Flags().StringVar(&a.downloadOut, "out", "generations.zip", "Output archive path")
	return cmd
}

func (a *App) runStatus(cmd *cobra.Command, args []string) error {
	c, err := a.apiClient()
	if err != nil {
		return err
	}

	g, err := c.Generation(cmd.Context(), args[0])
	if err != nil {
		return a.handleAPIError(err)
	}

	if a.jsonOutput {
		return a.outputJSON(g)
	}
	a.printGeneration(g)
	return nil
}

func (a *App) runList(cmd *cobra.Command, args []string) error {
	c, err := a.apiClient()
	if err != nil {
		return err
	}

	list, err := c.Generations(cmd.Context(), client.ListGenerationsOptions{
		Limit:  a.listLimit,
		Offset: a.listOffset,
		Status: client.GenerationStatus(a.listStatus),
	})
	if err != nil {
		return a.handleAPIError(err)
	}

	if a.jsonOutput {
		return a.outputJSON(list)
	}

	if len(list.Generations) == 0 {
		fmt.Fprintln(a.stdout, "No generations found.")
		return nil
	}

	for _, g := range list.Generations {
		fmt.Fprintf(a.stdout, "%s  %-10s  %s\n", g.ID, g.Status, g.Prompt)
	}
	fmt.Fprintf(a.stdout, "Showing %d of %d\n", len(list.Generations), list.Total)
	return nil
}

func (a *App) runCancel(cmd *cobra.Command, args []string) error {
	c, err := a.apiClient()
	if err != nil {
		return err
	}

	if err := c.CancelGeneration(cmd.Context(), args[0]); err != nil {
		return a.handleAPIError(err)
	}

	fmt.Fprintf(a.stdout, "Generation %s cancelled.\n", args[0])
	return nil
}

func (a *App) runDelete(cmd *cobra.Command, args []string) error {
	c, err := a.apiClient()
	if err != nil {
		return err
	}

	if err := c.DeleteGeneration(cmd.Context(), args[0]); err != nil {
		return a.handleAPIError(err)
	}

	fmt.Fprintf(a.stdout, "Generation %s deleted.\n", args[0])
	return nil
}

func (a *App) runDownload(cmd *cobra.Command, args []string) error {
	c, err := a.apiClient()
	if err != nil {
		return err
	}

	archive, err := c.DownloadZip(cmd.Context(), args)
	if err != nil {
		return a.handleAPIError(err)
	}

	if err := os.WriteFile(a.downloadOut, archive, 0644); err != nil {
		return exitWithCode(ExitValidation, fmt.Errorf("failed to write archive: %w", err))
	}

	fmt.Fprintf(a.stdout, "Wrote %d bytes to %s\n", len(archive), a.downloadOut)
	return nil
}
