package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(0)
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "xsdmodel",
		Short:        "Declare Go types for XML Schema classes",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		newResolveCmd(),
		newCodecCmd(),
	)
	return rootCmd
}
