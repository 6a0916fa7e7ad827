package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newSubscriptionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscription",
		Short: "Manage your subscription",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the current subscription",
		RunE:  a.runSubscriptionShow,
	}

	cancel := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the subscription",
		RunE:  a.runSubscriptionCancel,
	}
	cancel.Flags().BoolVar(&a.subAtPeriodEnd, "at-period-end", true, "Keep access until the current period ends")

	reactivate := &cobra.Command{
		Use:   "reactivate",
		Short: "Reactivate a cancelled subscription",
		RunE:  a.runSubscriptionReactivate,
	}

	tiers := &cobra.Command{
		Use:   "tiers",
		Short: "List available subscription tiers",
		RunE:  a.runSubscriptionTiers,
	}

	cmd.AddCommand(show, cancel, reactivate, tiers)
	return cmd
}

func (a *App) runSubscriptionShow(cmd *cobra.Command, args []string) error {
	c, err := a.apiClient()
	if err != nil {
		return err
	}

	sub, err := c.Subscription(cmd.Context())
	if err != nil {
		return a.handleAPIError(err)
	}

	if a.jsonOutput {
		return a.outputJSON(sub)
	}

	fmt.Fprintf(a.stdout, "Tier:    %s (%s)\n", sub.Tier, sub.Status)
	if sub.IsUnlimited {
		fmt.Fprintln(a.stdout, "Credits: unlimited")
	} else {
		fmt.Fprintf(a.stdout, "Credits: %d of %d remaining\n", sub.CreditsRemaining, sub.CreditsPerMonth)
	}
	if sub.CurrentPeriodEnd != "" {
		fmt.Fprintf(a.stdout, "Renews:  %s\n", sub.CurrentPeriodEnd)
	}
	if sub.CancelAtPeriodEnd {
		fmt.Fprintln(a.stdout, "Cancels at period end.")
	}
	return nil
}

func (a *App) runSubscriptionCancel(cmd *cobra.Command, args []string) error {
	c, err := a.apiClient()
	if err != nil {
		return err
	}

	if err := c.CancelSubscription(cmd.Context(), a.subAtPeriodEnd); err != nil {
		return a.handleAPIError(err)
	}

	if a.subAtPeriodEnd {
		fmt.Fprintln(a.stdout, "Subscription will cancel at the end of the current period.")
	} else {
		fmt.Fprintln(a.stdout, "Subscription cancelled.")
	}
	return nil
}

func (a *App) runSubscriptionReactivate(cmd *cobra.Command, args []string) error {
	c, err := a.apiClient()
	if err != nil {
		return err
	}

	if err := c.ReactivateSubscription(cmd.Context()); err != nil {
		return a.handleAPIError(err)
	}

	fmt.Fprintln(a.stdout, "Subscription reactivated.")
	return nil
}

func (a *App) runSubscriptionTiers(cmd *cobra.Command, args []string) error {
	c, err := a.apiClient()
	if err != nil {
		return err
	}

	tiers, err := c.SubscriptionTiers(cmd.Context())
	if err != nil {
		return a.handleAPIError(err)
	}

	if a.jsonOutput {
		return a.outputJSON(tiers)
	}

	for _, tier := range tiers {
		fmt.Fprintf(a.stdout, "%s  $%.2f/mo  %d credits\n", tier.Name, tier.PriceMonthly, tier.CreditsPerMonth)
		for _, feature := range tier.Features {
			fmt.Fprintf(a.stdout, "  - %s\n", feature)
		}
	}
	return nil
}
