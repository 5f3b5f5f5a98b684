package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/f3rmion/pokedex/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default pokedex configuration",
	Long: `Write the built-in configuration to your config file so it can be edited.

The file has three sections:
  - api      (base_url, timeout, max_random_id)
  - ui       (sprites, sprite_width, banner_font)
  - logging  (level, format, file)

Every key can also be set with a POKEDEX_ environment variable, for
example POKEDEX_API_BASE_URL or POKEDEX_LOGGING_LEVEL.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path := cfgFile
	if path == "" {
		path = config.DefaultConfigFile()
	}
	if path == "" {
		return errors.New("cannot determine config location; pass --config")
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.Save(path, config.Default()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote default configuration to %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit the file to point at another API mirror or resize sprites")
	fmt.Fprintln(out, "  2. Run 'pokedex lookup pikachu' to check the connection")
	fmt.Fprintln(out, "  3. Run 'pokedex' to start browsing")

	return nil
}
