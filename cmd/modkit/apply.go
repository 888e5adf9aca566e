package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/DonovanMods/modkit/internal/archive"
	"github.com/DonovanMods/modkit/internal/linker"

	"github.com/spf13/cobra"
)

var (
	applyFrom   string
	applyTo     string
	applyMethod string
	applyUndo   bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <plan-id>",
	Short: "Stage the files of a recorded plan in a directory",
	Long: `Carry out the copy instructions of a recorded plan.

Sources are read from --from, an extracted copy of the archive. Without it the
plan's archive is read directly, extracting it to a temporary directory first. Files are placed under --to using
--method. Attribute instructions are printed, not written.

Examples:
  modkit apply 3 --from ./extracted --to ./staging
  modkit apply 3 --to ./staging --method symlink
  modkit apply 3 --to ./staging --undo`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVar(&applyFrom, "from", "", "extracted mod directory (default: the plan's archive)")
	applyCmd.Flags().StringVar(&applyTo, "to", "", "staging directory (required)")
	applyCmd.Flags().StringVar(&applyMethod, "method", "copy", "how to place files: copy, symlink, or hardlink")
	applyCmd.Flags().BoolVar(&applyUndo, "undo", false, "remove previously staged files instead")

	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	id, err := parsePlanID(args[0])
	if err != nil {
		return err
	}
	if applyTo == "" {
		return fmt.Errorf("--to is required")
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

	l := linker.New(linker.ParseMethod(applyMethod))
	out := cmd.OutOrStdout()

	if applyUndo {
		if err := linker.Unstage(l, applyTo, plan.Instructions); err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d file(s) of plan %d from %s\n", plan.CopyCount(), plan.ID, applyTo)
		return nil
	}

	from := applyFrom
	if from == "" {
		info, err := os.Stat(plan.Archive)
		if err != nil {
			return fmt.Errorf("plan %d: archive %s: %w (pass --from)", plan.ID, plan.Archive, err)
		}
		from = plan.Archive
		if !info.IsDir() {
			if l.Method() == linker.MethodSymlink {
				return fmt.Errorf("plan %d was made from an archive; symlinks need an extracted copy (pass --from)", plan.ID)
			}
			tmp, err := os.MkdirTemp("", "modkit-apply-*")
			if err != nil {
				return fmt.Errorf("creating extraction dir: %w", err)
			}
			defer func() { _ = os.RemoveAll(tmp) }()

			a.logger.Debug("extracting archive", "archive", plan.Archive, "dir", tmp)
			if err := archive.NewLister().Extract(cmd.Context(), plan.Archive, tmp); err != nil {
				return fmt.Errorf("extracting %s: %w", plan.Archive, err)
			}
			from = tmp
		}
	}

	a.logger.Debug("staging plan", "plan", plan.ID, "from", from, "to", applyTo, "method", l.Method())
	result, err := linker.Stage(cmd.Context(), l, from, applyTo, plan.Instructions)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			PlanID     int64          `json:"planId"`
			Method     string         `json:"method"`
			Files      []string       `json:"files"`
			Attributes map[string]any `json:"attributes"`
		}{plan.ID, l.Method().String(), result.Files, result.Attributes}); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}

	fmt.Fprintf(out, "Staged %d file(s) of plan %d in %s (%s)\n", len(result.Files), plan.ID, applyTo, l.Method())
	for _, k := range sortedKeys(result.Attributes) {
		fmt.Fprintf(out, "  %s = %v\n", k, result.Attributes[k])
	}
	return nil
}
