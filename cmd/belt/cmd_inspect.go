package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"utilitybelt/internal/logging"
	"utilitybelt/pkg/belt"
)

func newKindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kind [file|-]",
		Short: "Print the kind of every value in a YAML/JSON document",
		Args:  cobra.ExactArgs(1),
		RunE:  runKind,
	}
}

func runKind(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	logging.Get(logging.CategoryCLI).
		WithContext(map[string]interface{}{"file": args[0]}).
		Debug("Document root is %s", belt.Classify(doc))
	return writeYAML(cmd.OutOrStdout(), describe(doc))
}

// describe mirrors v's shape with kind names at the leaves. Records and
// arrays keep their structure so nested kinds stay readable.
func describe(v any) any {
	switch belt.Classify(v) {
	case belt.KindArray:
		items, ok := v.([]any)
		if !ok {
			return belt.KindArray.String()
		}
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = describe(item)
		}
		return map[string]any{belt.KindArray.String(): out}
	case belt.KindPlainRecord:
		rec, ok := v.(map[string]any)
		if !ok {
			return belt.KindPlainRecord.String()
		}
		out := make(map[string]any, len(rec))
		for k, item := range rec {
			out[k] = describe(item)
		}
		return map[string]any{belt.KindPlainRecord.String(): out}
	default:
		return belt.Classify(v).String()
	}
}

func newCloneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clone [file|-]",
		Short: "Structurally clone a YAML/JSON document and print the copy",
		Long: `Loads the document, clones it with the configured by-reference keys
(clone.by_reference_keys in the config) and writes the clone as YAML.`,
		Args: cobra.ExactArgs(1),
		RunE: runClone,
	}
}

func runClone(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	clone := belt.Clone(doc)
	logging.CLIDebug("Cloned %s with by-reference keys %v", args[0], belt.ByReferenceKeys())
	return writeYAML(cmd.OutOrStdout(), clone)
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [value...]",
		Short: "Run the string predicates against each argument",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	report := make([]map[string]any, 0, len(args))
	for _, arg := range args {
		report = append(report, map[string]any{
			"value":   arg,
			"empty":   belt.IsEmpty(arg, false),
			"numeric": belt.IsNumeric(arg),
			"email":   registry.IsEmail(arg),
			"msdate":  belt.IsMSDate(arg),
		})
	}
	return writeYAML(cmd.OutOrStdout(), report)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return enc.Close()
}

// sortedKeys returns m's keys in order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
