package main

import (
	"encoding/json"
	"fmt"

	"github.com/DonovanMods/modkit/internal/domain"

	"github.com/spf13/cobra"
)

var (
	rootsAll    bool
	rootsStrict bool
)

var rootsCmd = &cobra.Command{
	Use:   "roots <archive>",
	Short: "Find the mod root of an archive using the game's root rules",
	Long: `Apply the game's root rules from installers.yaml to a mod archive.

Rules are tried in order and the first match wins. --all prints every match of
every rule instead.

Examples:
  modkit roots CoolMod.zip --game palworld
  modkit roots CoolMod.zip -g palworld --all`,
	Args: cobra.ExactArgs(1),
	RunE: runRoots,
}

func init() {
	rootsCmd.Flags().BoolVar(&rootsAll, "all", false, "print every match of every rule")
	rootsCmd.Flags().BoolVar(&rootsStrict, "strict", false, "try every rule regardless of the archive's file count")

	rootCmd.AddCommand(rootsCmd)
}

func runRoots(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	def, err := a.requireGame()
	if err != nil {
		return err
	}
	if len(def.Roots) == 0 {
		return fmt.Errorf("no root rules configured for %s", def.ID)
	}

	files, err := listArchive(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}

	finder := def.RootFinder()
	if rootsStrict {
		finder.Strict()
	}

	var roots []string
	if rootsAll {
		roots = finder.GetRoots(files)
	} else if root, ok := finder.GetRoot(files); ok {
		roots = []string{root}
	}
	if roots == nil {
		roots = []string{}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			Roots []string `json:"roots"`
		}{roots}); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}

	if len(roots) == 0 {
		return fmt.Errorf("%s: %w", args[0], domain.ErrNoReliableRoot)
	}
	for _, r := range roots {
		fmt.Fprintln(out, r)
	}
	return nil
}
