package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
	"github.com/KirkDiggler/dna-planner/internal/orchestrators/planner"
)

var (
	showRoots  bool
	showRarity string
	copyTarget string
)

var newHistoryStore = openHistory

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Record and inspect outstanding DNA over time",
}

var historyRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Save today's outstanding root DNA",
	Args:  cobra.NoArgs,
	RunE:  runHistoryRecord,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [NAME]",
	Short: "Show recorded DNA with a trend projection",
	Long: `Show the recorded outstanding DNA of one creature, of the root ancestors of a
creature (--roots), or of every root of a rarity (--rarity).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryShow,
}

var historyCopyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy recorded history into another, empty store",
	Long: `Copy every recorded snapshot from the configured history store into the
store named by --to. Archived amounts are left behind.`,
	Args: cobra.NoArgs,
	RunE: runHistoryCopy,
}

func init() {
	historyShowCmd.Flags().BoolVar(&showRoots, "roots", false, "Show the root ancestors of NAME")
	historyShowCmd.Flags().StringVar(&showRarity, "rarity", "", "Show every root of this rarity letter")

	historyCopyCmd.Flags().StringVar(&copyTarget, "to", "", "Target store (file, sqlite or redis)")
	_ = historyCopyCmd.MarkFlagRequired("to")

	historyCmd.AddCommand(historyRecordCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyCopyCmd)
}

func runHistoryRecord(cmd *cobra.Command, _ []string) error {
	out, err := service.RecordHistory(cmd.Context(), &planner.RecordHistoryInput{})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d of %d roots for %s.\n",
		out.Recorded, len(out.Snapshot.Amounts), out.Snapshot.TakenAt.Format("01/02/2006"))
	return nil
}

func runHistoryCopy(cmd *cobra.Command, _ []string) error {
	if copyTarget == settings.History.Store {
		return errors.InvalidArgumentf("history is already stored in %s", copyTarget)
	}

	target, closeTarget, err := newHistoryStore(settings, copyTarget)
	if err != nil {
		return err
	}
	defer closeTarget()

	out, err := service.CopyHistory(cmd.Context(), &planner.CopyHistoryInput{Target: target})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Copied %d snapshots (%d amounts) to %s.\n", out.Snapshots, out.Amounts, copyTarget)
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	input := &planner.HistoryInput{Roots: showRoots}
	if len(args) == 1 {
		input.Name = args[0]
	}
	if showRarity != "" {
		rarity, err := entities.ParseRarity(strings.ToUpper(showRarity))
		if err != nil {
			return err
		}
		input.Rarity = &rarity
	}
	if input.Roots && input.Name == "" {
		return errors.InvalidArgument("--roots needs a creature name")
	}

	out, err := service.History(cmd.Context(), input)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(out.Names) == 0 {
		fmt.Fprintln(w, "No history recorded.")
		return nil
	}
	for _, name := range out.Names {
		fmt.Fprintln(w, describeTrend(name, out))
		for _, p := range out.Series[name] {
			fmt.Fprintf(w, "  %s: %d\n", p.At.Format("01/02/2006"), p.Amount)
		}
	}
	return nil
}

func describeTrend(name string, out *planner.HistoryOutput) string {
	trend, ok := out.Trends[name]
	switch {
	case !ok:
		return name
	case trend.Done():
		return fmt.Sprintf("%s (done)", name)
	case trend.Shrinking():
		return fmt.Sprintf("%s (%.1f/day, about %.0f days to go)", name, trend.PerDay, trend.DaysToZero)
	default:
		return fmt.Sprintf("%s (%+.1f/day, not shrinking)", name, trend.PerDay)
	}
}
