package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ironleaf-games/kvtext/pkg/kv0"
)

func newKV0Command() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "kv0",
		Short: "Decode or encode the KV0 dialect (Valve-style \"key\" \"value\" text)",
	}
	cmd.PersistentFlags().StringVarP(&input, "input", "i", "-", "input file, or '-' for stdin")

	cmd.AddCommand(
		newKV0DecodeCmd(&input, false),
		newKV0DecodeCmd(&input, true),
		newKV0EncodeCmd(&input, false),
		newKV0EncodeCmd(&input, true),
		newKV0DecodeFileArrayCmd(),
	)
	return cmd
}

func newKV0DecodeCmd(input *string, array bool) *cobra.Command {
	name := "decode"
	if array {
		name = "decode2"
	}
	return &cobra.Command{
		Use:   name,
		Short: "bytes -> tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(*input)
			if err != nil {
				return err
			}
			var tree, decodeErr = kv0.Decode(data, nil)
			if array {
				tree, decodeErr = kv0.DecodeArray(data, nil)
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

func newKV0EncodeCmd(input *string, array bool) *cobra.Command {
	name := "encode"
	if array {
		name = "encode2"
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
				out, encErr = kv0.EncodeArray(tree, nil)
			} else {
				out, encErr = kv0.Encode(tree, nil)
			}
			if encErr != nil {
				return encErr
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
}

func newKV0DecodeFileArrayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode-file-array <path>",
		Short: "path -> tree (with #include resolution)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := kv0.DecodeFileArray(nil, args[0], nil)
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
	}
}
