package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/f3rmion/pokedex/internal/dex"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <name|id>",
	Short: "Print one pokemon and exit",
	Long: `Look up a pokemon by name or national dex number and print its:
  - Location area of its first encounter
  - Types and abilities
  - First five moves
  - Evolution path

Example:
  pokedex lookup pikachu
  pokedex lookup 25 --json
  pokedex lookup --random`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().Bool("random", false, "look up a random pokemon")
	lookupCmd.Flags().Bool("json", false, "print JSON instead of text")
}

func runLookup(cmd *cobra.Command, args []string) error {
	random, _ := cmd.Flags().GetBool("random")
	asJSON, _ := cmd.Flags().GetBool("json")

	if random == (len(args) == 1) {
		return errors.New("pass exactly one of <name|id> or --random")
	}

	svc, err := newServices()
	if err != nil {
		return err
	}
	defer svc.close()

	var loc dex.Locator
	if random {
		loc = svc.pipeline.RandomLocator()
	} else {
		loc, err = dex.Resolve(args[0])
		if err != nil {
			return fmt.Errorf("invalid search %q: %w", args[0], err)
		}
	}

	c, err := svc.pipeline.Lookup(cmd.Context(), loc)
	if err != nil {
		svc.logger.Warn("lookup failed", zap.String("locator", loc.String()), zap.Error(err))
		return fmt.Errorf("looking up %s: %w", loc, err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}

	_, err = fmt.Fprint(out, c.Summary())
	return err
}
