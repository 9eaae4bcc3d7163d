package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"utilitybelt/pkg/belt"
)

var skipWhitespace bool

func newHTMLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "html [file|-]",
		Short: "Print the node tree of an HTML document with node kinds",
		Args:  cobra.ExactArgs(1),
		RunE:  runHTML,
	}
	cmd.Flags().BoolVar(&skipWhitespace, "skip-whitespace", false, "Omit whitespace-only text nodes")
	return cmd
}

func runHTML(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}

	doc, err := html.Parse(r)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	counts := make(map[string]int)
	walkHTML(cmd.OutOrStdout(), doc, 0, counts)
	for _, k := range sortedKeys(counts) {
		fmt.Fprintf(cmd.OutOrStdout(), "# %s: %d\n", k, counts[k])
	}
	return nil
}

func walkHTML(w io.Writer, n *html.Node, depth int, counts map[string]int) {
	kind := belt.Classify(n)
	if !(skipWhitespace && kind == belt.KindWhitespaceTextNode) {
		counts[kind.String()]++
		label := n.Data
		if belt.IsTextNode(n) {
			label = fmt.Sprintf("%q", n.Data)
		}
		fmt.Fprintf(w, "%s%s %s\n", strings.Repeat("  ", depth), kind, label)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkHTML(w, c, depth+1, counts)
	}
}
