package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/DonovanMods/modkit/internal/domain"
	"github.com/DonovanMods/modkit/internal/install"
	"github.com/DonovanMods/modkit/internal/storage/db"

	"github.com/spf13/cobra"
)

var (
	planDest     string
	planRecord   bool
	planYes      bool
	planForce    bool
	planContent  bool
	planFallback bool
)

var planCmd = &cobra.Command{
	Use:   "plan <archive>",
	Short: "Work out which files of a mod archive to install",
	Long: `Resolve the install instructions for a mod archive or extracted mod directory.

The game's installer finds the mod folders in the archive. When there is more
than one you are asked which to install; --yes accepts every prompt.

Examples:
  modkit plan CoolMod.zip --game palworld
  modkit plan CoolMod.7z -g palworld --yes --json
  modkit plan ./extracted -g palworld --content --fallback`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planDest, "dest", "", "staging folder name (default: archive name)")
	planCmd.Flags().BoolVar(&planRecord, "record", false, "record the plan in history even when history is disabled")
	planCmd.Flags().BoolVarP(&planYes, "yes", "y", false, "accept every prompt without asking")
	planCmd.Flags().BoolVar(&planForce, "force", false, "plan even when the installer does not support the archive")
	planCmd.Flags().BoolVar(&planContent, "content", false, "use the single-root content installer")
	planCmd.Flags().BoolVar(&planFallback, "fallback", false, "with --content, copy every file when no mod file is found")

	rootCmd.AddCommand(planCmd)
}

// planJSON is the --json output of plan
type planJSON struct {
	GameID       string               `json:"gameId"`
	ModName      string               `json:"modName"`
	Archive      string               `json:"archive"`
	PlanID       int64                `json:"planId,omitempty"`
	Instructions []domain.Instruction `json:"instructions"`
}

func runPlan(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	def, err := a.requireGame()
	if err != nil {
		return err
	}
	game := def.Game()
	ctx := cmd.Context()

	archivePath := args[0]
	files, err := listArchive(ctx, a, archivePath)
	if err != nil {
		return err
	}

	dest := planDest
	if dest == "" {
		dest = archiveStem(archivePath) + ".installing"
	}
	modName := install.ModName(dest)

	progress := func(percent float64) {
		a.logger.Debug("install progress", "percent", percent)
	}

	var result *domain.InstallResult
	if planContent {
		ci := install.NewContentInstaller(game.ID, planFallback, a.logger).WithModFileExt(game.ModFileExt)
		if res := ci.TestSupported(files, game.ID); !res.Supported && !planForce {
			return fmt.Errorf("%s does not look like a %s mod (use --force to plan anyway)", archivePath, game.DisplayName())
		}
		result, err = ci.Install(ctx, files, dest, game.ID, progress)
	} else {
		host := newHost(a, game.ID, planYes, cmd.ErrOrStderr())
		installer := def.Builder(a.logger).
			WithStrictRequiredFiles(a.cfg.StrictRequiredFiles).
			Build().
			Configure(host)

		supported, serr := installer.TestSupported(ctx, files, game.ID)
		if serr != nil {
			return fmt.Errorf("checking support: %w", serr)
		}
		if !supported.Supported && !planForce {
			return fmt.Errorf("%s is not supported by the %s installer (use --force to plan anyway)", archivePath, game.DisplayName())
		}
		result, err = installer.AdvancedInstall(ctx, files, dest, game.ID, progress)
	}
	if err != nil {
		return err
	}

	plan := &domain.Plan{
		GameID:       game.ID,
		ModName:      modName,
		Archive:      archivePath,
		Instructions: result.Instructions,
	}
	if planRecord || a.cfg.History {
		if err := recordPlan(a, plan); err != nil {
			return err
		}
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

	fmt.Fprintf(out, "Plan for %s (%s)\n\n", modName, game.DisplayName())
	printInstructions(out, plan.Instructions)
	fmt.Fprintf(out, "\n%d file(s), %d attribute(s)\n", plan.CopyCount(), plan.AttributeCount())
	if plan.ID != 0 {
		fmt.Fprintf(out, "Recorded as plan %d\n", plan.ID)
	}
	return nil
}

// recordPlan stores plan in the history database
func recordPlan(a *app, plan *domain.Plan) error {
	database, err := openDB(a)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	if err := database.SavePlan(plan); err != nil {
		return fmt.Errorf("recording plan: %w", err)
	}
	return nil
}

// openDB opens the history database in the data directory
func openDB(a *app) (*db.DB, error) {
	if err := os.MkdirAll(a.dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	database, err := db.New(filepath.Join(a.dataDir, "modkit.db"))
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	return database, nil
}

// printInstructions writes instructions as a table
func printInstructions(out io.Writer, instructions []domain.Instruction) {
	if len(instructions) == 0 {
		fmt.Fprintln(out, "Nothing to install.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tSOURCE\tDESTINATION")
	fmt.Fprintln(w, "----\t------\t-----------")
	for _, inst := range instructions {
		if inst.IsCopy() {
			fmt.Fprintf(w, "copy\t%s\t%s\n", truncate(inst.Source, 60), inst.Destination)
		} else {
			fmt.Fprintf(w, "attribute\t%s\t%v\n", inst.Key, inst.Value)
		}
	}
	w.Flush()
}

// archiveStem returns the archive base name without its archive extension
func archiveStem(path string) string {
	base := filepath.Base(filepath.Clean(path))
	lower := strings.ToLower(base)
	for _, ext := range []string{".tar.gz", ".tar.zst", ".tgz", ".tzst", ".zip", ".7z", ".rar", ".tar"} {
		if strings.HasSuffix(lower, ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return base
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
