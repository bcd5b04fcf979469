package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag   string
	childFlag string
	rootCmd   = &cobra.Command{
		Use:   "plannerctl",
		Short: "CLI client for the planner REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Planner service base URL")
	rootCmd.PersistentFlags().StringVarP(&childFlag, "child", "c", "", "Child ID (required for most operations)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func requireChild() error {
	if childFlag == "" {
		return fmt.Errorf("--child required")
	}
	return nil
}
