package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	scheduleCmd := &cobra.Command{Use: "schedule", Short: "Capacity and rescheduling workflows"}

	// capacity
	var weekday int
	capacityCmd := &cobra.Command{
		Use:   "capacity",
		Short: "Show day or week capacity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireChild(); err != nil {
				return err
			}
			url := fmt.Sprintf("%s/api/children/%s/capacity", apiFlag, childFlag)
			if weekday != 0 {
				url = fmt.Sprintf("%s/%d", url, weekday)
			}
			data, err := doGet(url)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	capacityCmd.Flags().IntVarP(&weekday, "weekday", "w", 0, "ISO weekday 1-7; omit for the whole week")
	scheduleCmd.AddCommand(capacityCmd)

	// suggest
	var from string
	suggestCmd := &cobra.Command{
		Use:   "suggest SESSION_ID",
		Short: "List candidate slots for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireChild(); err != nil {
				return err
			}
			url := fmt.Sprintf("%s/api/children/%s/sessions/%s/suggestions", apiFlag, childFlag, args[0])
			if from != "" {
				url = fmt.Sprintf("%s?from=%s", url, from)
			}
			data, err := doGet(url)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	suggestCmd.Flags().StringVar(&from, "from", "", "Reference date YYYY-MM-DD; defaults to today")
	scheduleCmd.AddCommand(suggestCmd)

	// skip
	var missedDate string
	skipCmd := &cobra.Command{
		Use:   "skip SESSION_ID",
		Short: "Record a missed session and get reschedule suggestions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireChild(); err != nil {
				return err
			}
			payload := map[string]interface{}{}
			if missedDate != "" {
				payload["missedDate"] = missedDate
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/children/%s/sessions/%s/skip", apiFlag, childFlag, args[0]), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	skipCmd.Flags().StringVar(&missedDate, "date", "", "The missed date YYYY-MM-DD; defaults to today")
	scheduleCmd.AddCommand(skipCmd)

	// auto-reschedule
	var sessionIDs []string
	autoCmd := &cobra.Command{
		Use:   "auto-reschedule",
		Short: "Move flexible sessions to their best slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireChild(); err != nil {
				return err
			}
			payload := map[string]interface{}{}
			if len(sessionIDs) > 0 {
				payload["sessionIds"] = sessionIDs
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/children/%s/schedule/auto-reschedule", apiFlag, childFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	autoCmd.Flags().StringSliceVarP(&sessionIDs, "session", "s", nil, "Restrict to these session IDs (repeatable)")
	scheduleCmd.AddCommand(autoCmd)

	// redistribute
	var maxBatch int
	redistributeCmd := &cobra.Command{
		Use:   "redistribute",
		Short: "Place pending catch-up work into open slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireChild(); err != nil {
				return err
			}
			payload := map[string]interface{}{"maxBatch": maxBatch}
			data, err := doPostJSON(fmt.Sprintf("%s/api/children/%s/schedule/redistribute", apiFlag, childFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	redistributeCmd.Flags().IntVarP(&maxBatch, "max", "m", 0, "Cap the number of records placed; 0 means all")
	scheduleCmd.AddCommand(redistributeCmd)

	rootCmd.AddCommand(scheduleCmd)
}
