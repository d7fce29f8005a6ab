package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/vizterm/internal/filter"
	"github.com/matheuskafuri/vizterm/internal/models"
)

var (
	flagStart   string
	flagEnd     string
	flagKeyword string
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Query the records endpoint",
	Long: `Send one filtered query to the records endpoint and print "description - date"
rows in the order the server returned them. Empty flags are still sent as empty
parameters.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps()
		if err != nil {
			return err
		}
		defer d.Close()

		panel := d.recordsPanel()
		for f, v := range map[filter.Field]string{
			filter.Start:   flagStart,
			filter.End:     flagEnd,
			filter.Keyword: flagKeyword,
		} {
			if _, err := panel.SetField(f, v); err != nil {
				return err
			}
		}

		state := panel.Submit(cmd.Context())
		if state.Err != nil {
			return fmt.Errorf("querying records: %w", state.Err)
		}
		printRecords(cmd.OutOrStdout(), state.Records)
		return nil
	},
}

func init() {
	recordsCmd.Flags().StringVar(&flagStart, "start", "", "start date (sent as-is, e.g. 2024-01-01)")
	recordsCmd.Flags().StringVar(&flagEnd, "end", "", "end date (sent as-is)")
	recordsCmd.Flags().StringVar(&flagKeyword, "keyword", "", "keyword to match")
}

func printRecords(w io.Writer, records []models.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}
	for _, r := range records {
		fmt.Fprintln(w, r.String())
	}
}
