package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jengzang/route-simplex/internal/config"
)

var (
	configPath string

	brand  = color.New(color.FgHiGreen, color.Bold)
	subtle = color.New(color.FgHiBlack)
	bad    = color.New(color.FgRed)
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "explorer",
		Short:         "Weight-simplex route explorer",
		Long:          brand.Sprint("explorer") + ": explore multi-criteria routes by weighting length, height and unsuitability",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("EXPLORER_CONFIG"), "TOML config file")
	root.AddCommand(serveCmd(), renderCmd())
	return root
}

// loadConfig fails on a broken file only when --config was given
// explicitly; a bad EXPLORER_CONFIG falls back to defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if !cmd.Flags().Changed("config") {
		return config.Load(), nil
	}
	return config.LoadFile(configPath)
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, bad.Sprint("error: ")+err.Error())
		os.Exit(1)
	}
}
