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
	updateLevel  int
	updateAmount int

	wishRarity  string
	wishLevel   int
	wishAmount  int
	wishParents []string
)

var unlockCmd = &cobra.Command{
	Use:   "unlock NAME",
	Short: "Mark a wishlist creature as unlocked",
	Long: `Remove a creature from the wishlist. It leaves the roster, with its history
archived, once nothing else on the roster is fused from it. Its parents are
then released the same way.`,
	Args: cobra.ExactArgs(1),
	RunE: runUnlock,
}

var updateCmd = &cobra.Command{
	Use:   "update NAME",
	Short: "Record a creature's level or DNA from the game",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

var wishCmd = &cobra.Command{
	Use:   "wish NAME",
	Short: "Add a creature to the wishlist",
	Long: `Add a creature to the wishlist, adding it to the roster first when it is new.
A hybrid's parents must already be on the roster.`,
	Example: `  dna-planner wish Erlidom --rarity E --parents Dracoceratops,Coelo`,
	Args:    cobra.ExactArgs(1),
	RunE:    runWish,
}

func init() {
	updateCmd.Flags().IntVar(&updateLevel, "level", 0, "Current level")
	updateCmd.Flags().IntVar(&updateAmount, "amount", 0, "Current DNA")

	wishCmd.Flags().StringVar(&wishRarity, "rarity", "C", "Rarity letter for a new creature: C, R, E, L, U or A")
	wishCmd.Flags().IntVar(&wishLevel, "level", 0, "Level of a new creature (defaults to its locked level)")
	wishCmd.Flags().IntVar(&wishAmount, "amount", 0, "DNA already owned of a new creature")
	wishCmd.Flags().StringSliceVar(&wishParents, "parents", nil, "The two parents of a hybrid, comma separated")
}

func runUnlock(cmd *cobra.Command, args []string) error {
	out, err := service.Unlock(cmd.Context(), &planner.UnlockInput{Name: args[0]})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s unlocked.\n", args[0])
	if len(out.Removed) > 0 {
		fmt.Fprintf(w, "Removed from roster: %s\n", strings.Join(out.Removed, ", "))
		fmt.Fprintf(w, "History entries archived: %d\n", out.Archived)
	}
	fmt.Fprintf(w, "Still wanted: %d\n", len(out.Wishlist))
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	input := &planner.UpdateCreatureInput{Name: args[0]}
	if cmd.Flags().Changed("level") {
		input.Level = &updateLevel
	}
	if cmd.Flags().Changed("amount") {
		input.Amount = &updateAmount
	}

	out, err := service.UpdateCreature(cmd.Context(), input)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: level %d, %d DNA\n", out.Creature.Name, out.Creature.Level, out.Creature.Amount)
	return nil
}

func runWish(cmd *cobra.Command, args []string) error {
	rarity, err := entities.ParseRarity(strings.ToUpper(wishRarity))
	if err != nil {
		return err
	}

	input := &planner.WishInput{
		Name:   args[0],
		Rarity: rarity,
		Level:  wishLevel,
		Amount: wishAmount,
	}
	if len(wishParents) > 0 {
		if len(wishParents) != 2 {
			return errors.InvalidArgumentf("--parents needs exactly two names, got %d", len(wishParents))
		}
		input.Parents = &entities.Parents{First: wishParents[0], Second: wishParents[1]}
	}

	out, err := service.Wish(cmd.Context(), input)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if out.Added {
		fmt.Fprintf(w, "Added %s (%s) to the roster.\n", out.Creature.Name, out.Creature.Rarity)
	}
	fmt.Fprintf(w, "%s is on the wishlist (%d wanted).\n", out.Creature.Name, len(out.Wishlist))
	return nil
}
