package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dna-planner/internal/analysis"
	"github.com/KirkDiggler/dna-planner/internal/orchestrators/planner"
)

var tagsAll bool

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List owned creatures whose DNA is no longer needed",
	Long: `List creatures off the wishlist whose whole lineage already has enough DNA.
Their DNA can be spent freely. Use --all to show deficient creatures too.`,
	Args: cobra.NoArgs,
	RunE: runTags,
}

var limitingCmd = &cobra.Command{
	Use:   "limiting",
	Short: "Show the root holding back each wishlist creature",
	Args:  cobra.NoArgs,
	RunE:  runLimiting,
}

var sharedCmd = &cobra.Command{
	Use:   "shared",
	Short: "Show roots that several wishlist creatures compete for",
	Args:  cobra.NoArgs,
	RunE:  runShared,
}

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Print the roster in the order to update it from the game",
	Args:  cobra.NoArgs,
	RunE:  runOrder,
}

func init() {
	tagsCmd.Flags().BoolVar(&tagsAll, "all", false, "Include deficient creatures")
}

func runTags(cmd *cobra.Command, _ []string) error {
	out, err := service.Analyze(cmd.Context(), &planner.AnalyzeInput{})
	if err != nil {
		return err
	}

	names := make([]string, 0, len(out.Tags))
	for name, tag := range out.Tags {
		if tagsAll || tag == analysis.TagSatisfied {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	w := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintf(w, "%s: %s\n", name, out.Tags[name])
	}
	return nil
}

func runLimiting(cmd *cobra.Command, _ []string) error {
	out, err := service.Analyze(cmd.Context(), &planner.AnalyzeInput{})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, tier := range out.Limiting {
		fmt.Fprintln(w, tier.Rarity)
		for _, f := range tier.Factors {
			rarity := "?"
			if root, err := out.Roster.Get(f.Root); err == nil {
				rarity = root.Rarity.Letter()
			}
			fmt.Fprintf(w, "  %s: %s, %d, %s\n", f.Name, f.Root, f.Amount, rarity)
		}
	}
	return nil
}

func runShared(cmd *cobra.Command, _ []string) error {
	out, err := service.Analyze(cmd.Context(), &planner.AnalyzeInput{})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, shared := range out.Shared {
		fmt.Fprintf(w, "%s (%d needed): %s\n",
			shared.Root, out.Result.Total.Get(shared.Root), strings.Join(shared.Wanted, ", "))
	}
	return nil
}

func runOrder(cmd *cobra.Command, _ []string) error {
	out, err := service.UpdateOrder(cmd.Context(), &planner.UpdateOrderInput{})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, name := range out.Order {
		c, err := out.Roster.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %d %d %s\n", c.Name, c.Level, c.Amount, c.Rarity.Letter())
	}
	return nil
}
