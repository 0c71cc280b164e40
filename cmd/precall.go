package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/nodari-ai/sales-engine/internal/model"
	"github.com/nodari-ai/sales-engine/internal/pipeline"
)

var (
	precallFile    string
	precallCompany string
	precallEmail   string
	precallWebsite string
	precallGoal    string
)

// precallCmd runs the research/scoring/personalization sequence against one
// lead without touching the database or placing a call.
var precallCmd = &cobra.Command{
	Use:   "precall",
	Short: "Run the pre-call pipeline for a single lead and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		var lead model.Lead
		if precallFile != "" {
			data, err := os.ReadFile(precallFile)
			if err != nil {
				return eris.Wrap(err, "read lead file")
			}
			if err := json.Unmarshal(data, &lead); err != nil {
				return eris.Wrap(err, "parse lead file")
			}
		} else {
			lead = model.Lead{
				CompanyName: precallCompany,
				Email:       precallEmail,
				Website:     precallWebsite,
				PrimaryGoal: precallGoal,
			}
		}
		if lead.Email == "" {
			return eris.New("lead email is required (--email or --file)")
		}

		pipe, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}

		result := pipe.RunPreCall(cmd.Context(), lead)
		printJSON(result)

		vars := pipeline.BuildCallVariables(lead, result.Research, result.Personalization)
		fmt.Println("--- call variables ---")
		printJSON(vars)
		return nil
	},
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal output: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func init() {
	precallCmd.Flags().StringVar(&precallFile, "file", "", "JSON file with the lead")
	precallCmd.Flags().StringVar(&precallCompany, "company", "", "company name")
	precallCmd.Flags().StringVar(&precallEmail, "email", "", "lead email")
	precallCmd.Flags().StringVar(&precallWebsite, "website", "", "company website")
	precallCmd.Flags().StringVar(&precallGoal, "goal", "", "primary goal")
	rootCmd.AddCommand(precallCmd)
}
