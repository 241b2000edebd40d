package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ironleaf-games/kvtext/pkg/kv3"
)

func newKV3Command() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "kv3",
		Short: "Decode or encode the KV3 dialect (typed, quoted-only text)",
	}
	cmd.PersistentFlags().StringVarP(&input, "input", "i", "-", "input file, or '-' for stdin")

	cmd.AddCommand(&cobra.Command{
		Use:   "decode",
		Short: "bytes -> tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(input)
			if err != nil {
				return err
			}
			tree, err := kv3.Decode(data, nil)
			if err != nil {
				return err
			}
			out, err := renderYAML(tree)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}, &cobra.Command{
		Use:   "encode",
		Short: "tree -> bytes",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(input)
			if err != nil {
				return err
			}
			tree, err := parseYAMLTree(data)
			if err != nil {
				return err
			}
			out, err := kv3.Encode(tree, nil)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	})
	return cmd
}
