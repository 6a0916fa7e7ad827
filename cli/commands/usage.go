package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newUsageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show credit usage",
		Long: `Show credit usage for the current billing period.

Examples:
  imagegen usage
  imagegen usage --history 30
  imagegen usage --models
  imagegen usage --export > usage.csv`,
		RunE: a.runUsage,
	}

	cmd.Flags().IntVar(&a.usageHistoryDays, "history", 0, "Show a daily usage series for the given number of days")
	cmd.Flags().BoolVar(&a.usageModels, "models", false, "Break usage down by model")
	cmd.Flags().BoolVar(&a.usageExport, "export", false, "Export usage as CSV to stdout")
	return cmd
}

func (a *App) runUsage(cmd *cobra.Command, args []string) error {
	c, err := a.apiClient()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	switch {
	case a.usageExport:
		csv, err := c.ExportUsage(ctx)
		if err != nil {
			return a.handleAPIError(err)
		}
		_, err = a.stdout.Write(csv)
		return err

	case a.usageHistoryDays > 0:
		history, err := c.UsageHistory(ctx, a.usageHistoryDays)
		if err != nil {
			return a.handleAPIError(err)
		}
		if a.jsonOutput {
			return a.outputJSON(history)
		}
		for _, entry := range history.Entries {
			fmt.Fprintf(a.stdout, "%s  %4d credits  %4d generations\n", entry.Date, entry.CreditsUsed, entry.Generations)
		}
		return nil

	case a.usageModels:
		byModel, err := c.UsageByModel(ctx)
		if err != nil {
			return a.handleAPIError(err)
		}
		if a.jsonOutput {
			return a.outputJSON(byModel)
		}
		for _, m := range byModel.Models {
			fmt.Fprintf(a.stdout, "%-20s  %4d generations  %4d credits\n", m.Model, m.Generations, m.CreditsUsed)
		}
		return nil

	default:
		stats, err := c.Usage(ctx)
		if err != nil {
			return a.handleAPIError(err)
		}
		if a.jsonOutput {
			return a.outputJSON(stats)
		}
		fmt.Fprintf(a.stdout, "Tier: %s\n", stats.Tier)
		if stats.IsUnlimited {
			fmt.Fprintf(a.stdout, "Used: %d credits (unlimited plan)\n", stats.CreditsUsed)
		} else {
			fmt.Fprintf(a.stdout, "Used: %d of %d credits (%.1f%%)\n",
				stats.CreditsUsed, stats.CreditsPerMonth, stats.UsagePercentage)
			fmt.Fprintf(a.stdout, "Remaining: %d\n", stats.CreditsRemaining)
		}
		if stats.PeriodEnd != "" {
			fmt.Fprintf(a.stdout, "Period ends: %s\n", stats.PeriodEnd)
		}
		return nil
	}
}
