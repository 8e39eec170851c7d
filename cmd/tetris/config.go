package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

var flagShowDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Loads the configuration the same way "play" does and prints it.

Search order:
  --config <path>
  ~/.tetris/configs/tetris.yaml
  ./configs/tetris.yaml
  built-in defaults

Use --defaults to print the built-in file, a good starting point for
your own config.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagShowDefaults, "defaults", false, "Print the built-in default config")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if flagShowDefaults {
		_, err := os.Stdout.Write(config.DefaultTetrisYAML())
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
