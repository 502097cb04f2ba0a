// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GodHu777777/paper-reference-agent/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the resolution cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry count and total size",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		store, err := cache.Open(cfg.Cache.Dir, cfg.Cache.ExpiryDays)
		if err != nil {
			return err
		}
		stats, err := store.Stats()
		if err != nil {
			return err
		}
		fmt.Printf("Cache directory: %s\n", stats.Dir)
		fmt.Printf("Entries:         %d\n", stats.Entries)
		fmt.Printf("Total size:      %d bytes\n", stats.TotalSize)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all cached resolutions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		store, err := cache.Open(cfg.Cache.Dir, cfg.Cache.ExpiryDays)
		if err != nil {
			return err
		}
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Cache cleared.")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
