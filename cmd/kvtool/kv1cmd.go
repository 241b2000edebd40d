package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ironleaf-games/kvtext/pkg/kv1"
)

func newKV1Command() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "kv1",
		Short: "Decode or encode the KV1 dialect (bare-identifier, optional-colon text)",
	}
	cmd.PersistentFlags().StringVarP(&input, "input", "i", "-", "input file, or '-' for stdin")

	cmd.AddCommand(
		newKV1DecodeCmd(&input, false),
		newKV1DecodeCmd(&input, true),
		newKV1EncodeCmd(&input, false),
		newKV1EncodeCmd(&input, true),
	)
	return cmd
}

func newKV1DecodeCmd(input *string, array bool) *cobra.Command {
	name := "decode"
	if array {
		name = "decode-array"
	}
	return &cobra.Command{
		Use:   name,
		Short: "bytes -> tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(*input)
			if err != nil {
				return err
			}
			var tree, decodeErr = kv1.Decode(data, nil)
			if array {
				tree, decodeErr = kv1.DecodeArray(data, nil)
			}
			if decodeErr != nil {
				return decodeErr
			}
			out, err := renderYAML(tree)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
}

func newKV1EncodeCmd(input *string, array bool) *cobra.Command {
	name := "encode"
	if array {
		name = "encode-array"
	}
	return &cobra.Command{
		Use:   name,
		Short: "tree -> bytes",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(*input)
			if err != nil {
				return err
			}
			tree, err := parseYAMLTree(data)
			if err != nil {
				return err
			}
			var out []byte
			var encErr error
			if array {
				out, encErr = kv1.EncodeArray(tree, nil)
			} else {
				out, encErr = kv1.Encode(tree, nil)
			}
			if encErr != nil {
				return encErr
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
}
