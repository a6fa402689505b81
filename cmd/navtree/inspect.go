package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mchmarny/navtree/pkg/config"
	"github.com/mchmarny/navtree/pkg/nav"
)

// treeFromFlags loads the tree named by args, --tree, or NAVTREE_TREE_FILE.
// Server settings are not read: these commands work offline.
func treeFromFlags(cmd *cobra.Command, args []string) (*nav.Tree, error) {
	if len(args) > 0 {
		return nav.LoadFile(args[0])
	}

	if tree, _ := cmd.Flags().GetString("tree"); tree != "" {
		return nav.LoadFile(tree)
	}

	envFile, _ := cmd.Flags().GetString("env-file")
	path, err := config.LoadTreeFile(envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return loadTree(path)
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a navigation declaration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := treeFromFlags(cmd, args)
			if err != nil {
				return err
			}

			groups := 0
			_ = tree.Walk(func(_ []string, n nav.Node) error {
				if !n.Leaf {
					groups++
				}
				return nil
			})

			fmt.Fprintf(cmd.OutOrStdout(), "navigation tree OK: %d groups, %d leaves\n", groups, tree.Len())
			return nil
		},
	}
}

func printCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the navigation tree",
		Example: `  # Outline
  navtree print

  # As served to the front end
  navtree print --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := treeFromFlags(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(output) {
			case "text":
				return printOutline(out, tree)
			case "json":
				data, err := json.MarshalIndent(tree, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(tree); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unsupported output %q (want text, json or yaml)", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")

	return cmd
}

func printOutline(w io.Writer, tree *nav.Tree) error {
	l := list.NewWriter()
	l.SetStyle(list.StyleConnectedLight)
	appendNodes(l, tree.Root().Children)

	_, err := fmt.Fprintln(w, l.Render())
	return err
}

func appendNodes(l list.Writer, nodes []nav.Node) {
	for _, n := range nodes {
		l.AppendItem(outlineLabel(n))
		if len(n.Children) > 0 {
			l.Indent()
			appendNodes(l, n.Children)
			l.UnIndent()
		}
	}
}

func outlineLabel(n nav.Node) string {
	if n.Leaf {
		return fmt.Sprintf("%s -> %s", n.Text, n.ViewType)
	}
	if n.Expanded {
		return n.Text + " (expanded)"
	}
	return n.Text
}

func findCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <viewType>",
		Short: "Show the menu entry bound to a view type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := treeFromFlags(cmd, nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			trail, ok := tree.Trail(args[0])
			if !ok {
				fmt.Fprintf(out, "no navigation entry for view type %q\n", args[0])
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Level", "Text", "Icon", "View Type", "Route", "Selectable"})
			for i, n := range trail {
				t.AppendRow(table.Row{i + 1, n.Text, n.IconCls, n.ViewType, n.Route(), n.IsSelectable()})
			}
			t.Render()

			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s version %s\n", appName, version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}
