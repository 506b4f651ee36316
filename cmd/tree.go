package main

import (
	"encoding/json"
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"wikiparse/internal/logging"
	"wikiparse/internal/parser"
	"wikiparse/internal/processor"
	"wikiparse/internal/types"
)

type treeOptions struct {
	asJSON bool
	tokens bool
}

func newTreeCmd(root *rootOptions) *cobra.Command {
	opts := &treeOptions{}

	cmd := &cobra.Command{
		Use:   "tree FILE",
		Short: "Resolve includes in one page and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the tree as JSON")
	cmd.Flags().BoolVar(&opts.tokens, "tokens", false, "print the token stream instead of the tree")
	return cmd
}

func runTree(cmd *cobra.Command, root *rootOptions, opts *treeOptions, path string) error {
	cfg, err := loadProjectConfig(cmd.Flags(), root)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logging.Setup(cmd.ErrOrStderr(), logging.Level(cfg.Verbose))

	includer := includerFor(cfg, root)
	page := types.NewPageFile(path, path, "")
	result, err := processor.New(cfg.Settings, includer).ProcessPage(cmd.Context(), page)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case opts.tokens:
		pp.ColoringEnabled = false
		_, err = pp.Fprintln(out, parser.Tokenize(result.Wikitext))
	case opts.asJSON:
		var data []byte
		data, err = json.MarshalIndent(result.Tree, "", "  ")
		if err == nil {
			_, err = fmt.Fprintln(out, string(data))
		}
	default:
		pp.ColoringEnabled = false
		_, err = pp.Fprintln(out, result.Tree.Elements)
	}
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	return nil
}
