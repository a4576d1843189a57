package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dna-planner/internal/orchestrators/planner"
)

var (
	needsWishlist []string
	needsByEntry  bool
)

var needsCmd = &cobra.Command{
	Use:   "needs",
	Short: "Show root DNA still needed, grouped by rarity",
	Long: `Show how much DNA each root creature still needs so that every wishlist
creature can be unlocked. Roots are grouped by rarity, smallest amount first.`,
	Args: cobra.NoArgs,
	RunE: runNeeds,
}

func init() {
	needsCmd.Flags().StringSliceVar(&needsWishlist, "wish", nil, "Use these creatures instead of the stored wishlist")
	needsCmd.Flags().BoolVar(&needsByEntry, "by-entry", false, "Also show what each wishlist creature adds")
}

func runNeeds(cmd *cobra.Command, _ []string) error {
	out, err := service.Analyze(cmd.Context(), &planner.AnalyzeInput{Wishlist: needsWishlist})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(out.Deficits) == 0 {
		fmt.Fprintln(w, "Nothing left to collect.")
	}
	for _, tier := range out.Deficits {
		fmt.Fprintln(w, tier.Rarity)
		for _, d := range tier.Deficits {
			fmt.Fprintf(w, "  %s: %d\n", d.Name, d.Amount)
		}
	}
	fmt.Fprintf(w, "Total: %d\n", out.Result.Total.Total())

	if !needsByEntry {
		return nil
	}
	fmt.Fprintln(w, "\nBy wishlist entry")
	for _, name := range out.Result.Wishlist {
		req := out.Result.ByEntry[name]
		if len(req) == 0 {
			fmt.Fprintf(w, "  %s: covered\n", name)
			continue
		}
		fmt.Fprintf(w, "  %s:", name)
		for _, root := range req.Names() {
			fmt.Fprintf(w, " %s %d", root, req[root])
		}
		fmt.Fprintln(w)
	}
	return nil
}
