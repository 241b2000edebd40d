package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "kvtool",
		Short:         "Decode and encode the KV0/KV1/KV3 text-format family",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(newKV0Command(), newKV1Command(), newKV3Command())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "kvtool: %v\n", err)
		os.Exit(1)
	}
}
