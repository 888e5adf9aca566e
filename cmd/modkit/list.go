package main

import (
	"encoding/json"
	"fmt"

	"github.com/DonovanMods/modkit/internal/install"

	"github.com/spf13/cobra"
)

var listModsOnly bool

var listCmd = &cobra.Command{
	Use:   "list <archive>",
	Short: "List the files in a mod archive",
	Long: `List the entries of a mod archive or directory as the installers see them.
Directories end with a path separator.

Supported formats: zip, 7z, rar (needs the 7z command), tar, tar.gz, tar.zst.

Examples:
  modkit list CoolMod.zip
  modkit list CoolMod.zip --mods -g palworld`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listModsOnly, "mods", false, "only list the game's mod files (needs --game)")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	files, err := listArchive(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}

	if listModsOnly {
		def, err := a.requireGame()
		if err != nil {
			return err
		}
		ext := def.Game().ModFileExt
		mods := []string{}
		for _, f := range files {
			if !install.IsDirEntry(f) && install.HasExt(f, ext) {
				mods = append(mods, f)
			}
		}
		files = mods
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			Files []string `json:"files"`
		}{files}); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}

	if len(files) == 0 {
		fmt.Fprintln(out, "No files.")
		return nil
	}
	for _, f := range files {
		fmt.Fprintln(out, f)
	}
	if verbose {
		fmt.Fprintf(out, "\nTotal: %d entr(ies)\n", len(files))
	}
	return nil
}
