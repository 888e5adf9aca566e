package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DonovanMods/modkit/internal/archive"
	"github.com/DonovanMods/modkit/internal/storage/cache"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached archive listings",
	Long: `Archive listings are cached in the data directory so large archives are only
read once. A listing is reused until the archive's size or modification time changes.`,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached archive listing",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

var cacheSizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Show the disk space used by cached listings",
	Args:  cobra.NoArgs,
	RunE:  runCacheSize,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheSizeCmd)

	rootCmd.AddCommand(cacheCmd)
}

func (a *app) listingCache() *cache.Cache {
	return cache.New(filepath.Join(a.dataDir, "cache", "listings"))
}

// listArchive lists the archive or directory at path, reusing a cached listing when the archive is unchanged
func listArchive(ctx context.Context, a *app, path string) ([]string, error) {
	lister := archive.NewLister()

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		files, err := lister.List(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", path, err)
		}
		return files, nil
	}

	c := a.listingCache()
	if files, ok := c.Get(path); ok {
		a.logger.Debug("using cached listing", "archive", path, "entries", len(files))
		return files, nil
	}

	files, err := lister.List(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}
	if err := c.Store(path, files); err != nil {
		a.logger.Warn("could not cache listing", "archive", path, "error", err)
	}
	return files, nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	if err := a.listingCache().Clear(); err != nil {
		return err
	}

	if jsonOutput {
		fmt.Fprintln(cmd.OutOrStdout(), `{"cleared":true}`)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Cleared cached archive listings")
	return nil
}

func runCacheSize(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	size, err := a.listingCache().Size()
	if err != nil {
		return err
	}

	if jsonOutput {
		fmt.Fprintf(cmd.OutOrStdout(), `{"bytes":%d}`+"\n", size)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cached listings: %d bytes\n", size)
	return nil
}
