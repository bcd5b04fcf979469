package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	sessionsCmd := &cobra.Command{Use: "sessions", Short: "Study session operations"}

	// create
	var (
		title, topic, commitment, status, start, end string
		minutes, weekday                             int
	)
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a study session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireChild(); err != nil {
				return err
			}
			if title == "" || minutes <= 0 {
				return fmt.Errorf("--title and a positive --minutes required")
			}
			payload := map[string]interface{}{
				"title":            title,
				"estimatedMinutes": minutes,
			}
			if topic != "" {
				payload["topicId"] = topic
			}
			if commitment != "" {
				payload["commitment"] = commitment
			}
			if status != "" {
				payload["status"] = status
			}
			if weekday != 0 {
				payload["scheduledDay"] = weekday
				payload["startTime"] = start
				payload["endTime"] = end
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/children/%s/sessions", apiFlag, childFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&title, "title", "T", "", "Session title (required)")
	createCmd.Flags().StringVar(&topic, "topic", "", "Topic ID")
	createCmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Estimated minutes (required)")
	createCmd.Flags().StringVar(&commitment, "commitment", "", "Commitment kind: fixed, preferred, flexible")
	createCmd.Flags().StringVar(&status, "status", "", "Status: backlog, planned, scheduled, done")
	createCmd.Flags().IntVarP(&weekday, "weekday", "w", 0, "ISO weekday 1-7 for an initial placement")
	createCmd.Flags().StringVar(&start, "start", "", "Start time HH:MM")
	createCmd.Flags().StringVar(&end, "end", "", "End time HH:MM")
	_ = createCmd.MarkFlagRequired("title")
	_ = createCmd.MarkFlagRequired("minutes")
	sessionsCmd.AddCommand(createCmd)

	// list
	var listWeekday int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions for a child",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireChild(); err != nil {
				return err
			}
			url := fmt.Sprintf("%s/api/children/%s/sessions", apiFlag, childFlag)
			if listWeekday != 0 {
				url = fmt.Sprintf("%s?weekday=%d", url, listWeekday)
			}
			data, err := doGet(url)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	listCmd.Flags().IntVarP(&listWeekday, "weekday", "w", 0, "Filter by ISO weekday 1-7")
	sessionsCmd.AddCommand(listCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get SESSION_ID",
		Short: "Get session by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireChild(); err != nil {
				return err
			}
			data, err := doGet(fmt.Sprintf("%s/api/children/%s/sessions/%s", apiFlag, childFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	sessionsCmd.AddCommand(getCmd)

	rootCmd.AddCommand(sessionsCmd)
}
