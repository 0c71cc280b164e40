package main

import (
	"github.com/spf13/cobra"

	"github.com/nodari-ai/sales-engine/internal/model"
	"github.com/nodari-ai/sales-engine/internal/store"
)

var (
	statusFilter   string
	statusCategory string
	statusLimit    int
)

var statusCmd = &cobra.Command{
	Use:   "status [inquiry-id]",
	Short: "Show one inquiry, or list recent inquiries",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if len(args) == 1 {
			rec, err := st.GetInquiry(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printJSON(rec)
			return nil
		}

		records, err := st.ListInquiries(cmd.Context(), store.InquiryFilter{
			Status:   model.LeadStatus(statusFilter),
			Category: model.LeadCategory(statusCategory),
			Limit:    statusLimit,
		})
		if err != nil {
			return err
		}
		printJSON(records)
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusFilter, "status", "", "filter by status")
	statusCmd.Flags().StringVar(&statusCategory, "category", "", "filter by lead category")
	statusCmd.Flags().IntVar(&statusLimit, "limit", 20, "max rows")
	rootCmd.AddCommand(statusCmd)
}
