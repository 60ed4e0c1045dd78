package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"codex/internal/diag"
	"codex/internal/rules"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the active keyword tables as TOML",
	Long: `Print the keyword tables the checkers use, after applying [tables].path or
--tables. The output is a valid override file. With --codes, list the
diagnostic codes instead.`,
	Args: cobra.NoArgs,
	RunE: runTables,
}

func init() {
	tablesCmd.Flags().String("tables", "", "TOML file overriding the keyword tables")
	tablesCmd.Flags().Bool("codes", false, "list diagnostic codes instead")
}

func runTables(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	codes, err := cmd.Flags().GetBool("codes")
	if err != nil {
		return fmt.Errorf("failed to get codes flag: %w", err)
	}
	if codes {
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, c := range diag.Codes() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID(), c.Category(), c.Title())
		}
		return tw.Flush()
	}

	cfg, err := loadConfigFile(cmd)
	if err != nil {
		return err
	}
	path := cfg.Tables.Path
	if cmd.Flags().Changed("tables") {
		if path, err = cmd.Flags().GetString("tables"); err != nil {
			return fmt.Errorf("failed to get tables flag: %w", err)
		}
	}
	tables := rules.Default()
	if path != "" {
		if tables, err = rules.LoadFile(path); err != nil {
			return err
		}
	}
	return tables.Encode(toml.NewEncoder(out))
}
