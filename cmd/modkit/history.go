package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"text/tabwriter"

	"github.com/DonovanMods/modkit/internal/domain"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded install plans",
	Long: `List install plans recorded by 'modkit plan', newest first.
Use --game to only show plans for one game.

Examples:
  modkit history
  modkit history -g palworld
  modkit history show 12`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the instructions of a recorded plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyWhoCmd = &cobra.Command{
	Use:   "who <destination>",
	Short: "List recorded plans that install a destination file",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryWho,
}

func init() {
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyWhoCmd)

	rootCmd.AddCommand(historyCmd)
}

func parsePlanID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid plan id %q", arg)
	}
	return id, nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	database, err := openDB(a)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	plans, err := database.ListPlans(gameID)
	if err != nil {
		return fmt.Errorf("listing plans: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if plans == nil {
			plans = []domain.Plan{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(plans); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}

	if len(plans) == 0 {
		fmt.Fprintln(out, "No recorded plans.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGAME\tMOD\tARCHIVE\tCREATED")
	fmt.Fprintln(w, "--\t----\t---\t-------\t-------")
	for _, p := range plans {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			p.ID,
			p.GameID,
			truncate(p.ModName, 30),
			truncate(p.Archive, 40),
			p.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	w.Flush()
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := parsePlanID(args[0])
	if err != nil {
		return err
	}
	a, err := loadApp()
	if err != nil {
		return err
	}
	database, err := openDB(a)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	plan, err := database.GetPlan(id)
	if err != nil {
		return fmt.Errorf("plan %d: %w", id, err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(planJSON{
			GameID:       plan.GameID,
			ModName:      plan.ModName,
			Archive:      plan.Archive,
			PlanID:       plan.ID,
			Instructions: plan.Instructions,
		}); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}

	fmt.Fprintf(out, "Plan %d: %s (%s)\n", plan.ID, plan.ModName, plan.GameID)
	fmt.Fprintf(out, "Archive: %s\n\n", plan.Archive)
	printInstructions(out, plan.Instructions)
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	id, err := parsePlanID(args[0])
	if err != nil {
		return err
	}
	a, err := loadApp()
	if err != nil {
		return err
	}
	database, err := openDB(a)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	if err := database.DeletePlan(id); err != nil {
		return fmt.Errorf("plan %d: %w", id, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan %d\n", id)
	return nil
}

func runHistoryWho(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	def, err := a.requireGame()
	if err != nil {
		return err
	}
	database, err := openDB(a)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	ids, err := database.PlansInstalling(def.ID, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(ids) == 0 {
		fmt.Fprintf(out, "No recorded plan installs %s\n", args[0])
		return nil
	}
	for _, id := range ids {
		fmt.Fprintln(out, id)
	}
	return nil
}

// sortedKeys returns the keys of m in lexical order
func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
