package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/DonovanMods/modkit/internal/storage/config"

	"github.com/spf13/cobra"
)

var installersCmd = &cobra.Command{
	Use:   "installers",
	Short: "List configured game installers",
	Long: `List the installers defined in installers.yaml.

Examples:
  modkit installers
  modkit installers --installers /path/to/installers.yaml --json`,
	Args: cobra.NoArgs,
	RunE: runInstallers,
}

func init() {
	rootCmd.AddCommand(installersCmd)
}

// installerJSON is the --json output of installers
type installerJSON struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ModFileExt    string   `json:"modFileExt"`
	RootWarnLimit int      `json:"rootWarnLimit"`
	RootRules     int      `json:"rootRules"`
	Extenders     []string `json:"extenders"`
	Compatibility bool     `json:"compatibility"`
}

func runInstallers(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	rows := make([]installerJSON, 0, len(a.installers))
	for _, id := range config.SortedIDs(a.installers) {
		def := a.installers[id]
		game := def.Game()
		cfg := def.Builder(nil).Build().Config()

		extenders := make([]string, 0, len(cfg.Extenders))
		for _, e := range cfg.Extenders {
			extenders = append(extenders, e.Name)
		}

		rows = append(rows, installerJSON{
			ID:            id,
			Name:          game.DisplayName(),
			ModFileExt:    cfg.ModFileExt,
			RootWarnLimit: cfg.RootWarnLimit,
			RootRules:     def.RootFinder().Len(),
			Extenders:     extenders,
			Compatibility: cfg.Compatibility != nil,
		})
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}

	if len(rows) == 0 {
		fmt.Fprintf(out, "No installers configured. Add them to %s.\n", config.InstallersFileName)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEXT\tROOT LIMIT\tROOT RULES\tEXTENDERS")
	fmt.Fprintln(w, "--\t----\t---\t----------\t----------\t---------")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n", r.ID, r.Name, r.ModFileExt, r.RootWarnLimit, r.RootRules, len(r.Extenders))
	}
	w.Flush()
	return nil
}
