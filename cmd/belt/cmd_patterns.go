package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"utilitybelt/internal/logging"
)

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match [pattern] [value...]",
		Short: "Test values against a named pattern",
		Example: `  belt match email a@b.com not-an-email
  belt -c belt.yaml match zip 12345`,
		Args: cobra.MinimumNArgs(2),
		RunE: runMatch,
	}
}

func runMatch(cmd *cobra.Command, args []string) error {
	name := args[0]
	re, err := registry.Lookup(name)
	if err != nil {
		logging.Get(logging.CategoryCLI).
			WithContext(map[string]interface{}{"pattern": name}).
			Warn("Unknown pattern: %v", err)
		return err
	}
	for _, v := range args[1:] {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%v\n", v, re.MatchString(v))
	}
	return nil
}

func newPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the registered named patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range registry.Names() {
				re, err := registry.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, re.String())
			}
			return nil
		},
	}
}
