package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var supportedCmd = &cobra.Command{
	Use:   "supported <archive>",
	Short: "Check whether a game's installer handles an archive",
	Long: `Run the game's support checks against a mod archive.

Examples:
  modkit supported CoolMod.zip --game palworld
  modkit supported CoolMod.zip -g palworld --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSupported,
}

func init() {
	rootCmd.AddCommand(supportedCmd)
}

func runSupported(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	def, err := a.requireGame()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	files, err := listArchive(ctx, a, args[0])
	if err != nil {
		return err
	}

	installer := def.Builder(a.logger).
		WithStrictRequiredFiles(a.cfg.StrictRequiredFiles).
		Build().
		Configure(newHost(a, def.ID, true, cmd.ErrOrStderr()))

	result, err := installer.TestSupported(ctx, files, def.ID)
	if err != nil {
		return fmt.Errorf("checking support: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}

	game := def.Game()
	if result.Supported {
		fmt.Fprintf(out, "%s: supported by the %s installer\n", args[0], game.DisplayName())
	} else {
		fmt.Fprintf(out, "%s: not supported by the %s installer\n", args[0], game.DisplayName())
	}
	for _, f := range result.RequiredFiles {
		fmt.Fprintf(out, "  requires %s\n", f)
	}
	return nil
}
