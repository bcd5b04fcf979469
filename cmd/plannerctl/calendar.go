package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	calendarCmd := &cobra.Command{Use: "calendar", Short: "External calendar operations"}

	var file, url string
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import a calendar as fixed time blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireChild(); err != nil {
				return err
			}
			if (file == "") == (url == "") {
				return fmt.Errorf("exactly one of --file or --url required")
			}
			payload := map[string]interface{}{}
			if file != "" {
				content, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				payload["content"] = string(content)
			} else {
				payload["url"] = url
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/children/%s/calendar/import", apiFlag, childFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	importCmd.Flags().StringVarP(&file, "file", "f", "", "Calendar file to upload")
	importCmd.Flags().StringVarP(&url, "url", "u", "", "Calendar subscription URL the server fetches")
	calendarCmd.AddCommand(importCmd)

	rootCmd.AddCommand(calendarCmd)
}
