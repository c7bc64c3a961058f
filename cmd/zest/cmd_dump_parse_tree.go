package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/zest/diagnostics"
	"github.com/dhamidi/zest/lex"
	"github.com/dhamidi/zest/parse"
	"github.com/dhamidi/zest/source"
	"github.com/spf13/cobra"
)

func newDumpParseTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump-parse-tree <file>",
		Short: "Parse a source file and dump its parse tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			consumer := diagnostics.NewSortingConsumer(
				diagnostics.NewConsoleConsumer(os.Stderr))

			src := source.NewFromFile(args[0], consumer)
			if src == nil {
				consumer.Flush()
				return fmt.Errorf("unable to open input source file %s", args[0])
			}
			defer src.Close()

			tokens := lex.Lex(src, consumer)
			tree := parse.Parse(tokens, consumer)
			consumer.Flush()
			tree.Print(os.Stdout)

			if tokens.HasErrors() || tree.HasErrors() {
				return fmt.Errorf("parsing %s reported errors", args[0])
			}
			return nil
		},
	}
}
