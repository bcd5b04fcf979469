package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	childrenCmd := &cobra.Command{Use: "children", Short: "Child operations"}

	// create
	var name, tz string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a child",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name required")
			}
			payload := map[string]interface{}{"name": name}
			if tz != "" {
				payload["timeZone"] = tz
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/children", apiFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Child name (required)")
	createCmd.Flags().StringVarP(&tz, "tz", "t", "", "Time zone (defaults UTC)")
	_ = createCmd.MarkFlagRequired("name")
	childrenCmd.AddCommand(createCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get CHILD_ID",
		Short: "Get child by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/children/%s", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	childrenCmd.AddCommand(getCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:   "delete CHILD_ID",
		Short: "Delete child and all their data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doDelete(fmt.Sprintf("%s/api/children/%s", apiFlag, args[0]))
		},
	}
	childrenCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(childrenCmd)
}
