package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	postcallID         string
	postcallTranscript string
)

// postcallCmd replays the analysis/follow-up sequence for a stored inquiry
// using a transcript from a file. Follow-up actions (email, meeting) do fire
// when the corresponding credentials are configured.
var postcallCmd = &cobra.Command{
	Use:   "postcall",
	Short: "Run the post-call pipeline for a stored inquiry and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		if postcallID == "" {
			return eris.New("--id is required")
		}

		transcript := ""
		if postcallTranscript != "" {
			data, err := os.ReadFile(postcallTranscript)
			if err != nil {
				return eris.Wrap(err, "read transcript file")
			}
			transcript = string(data)
		}

		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		rec, err := st.GetInquiry(cmd.Context(), postcallID)
		if err != nil {
			return err
		}
		if transcript == "" {
			transcript = rec.Transcript
		}
		if transcript == "" {
			return eris.New("no transcript on record; provide --transcript")
		}

		pipe, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}

		result := pipe.RunPostCall(cmd.Context(), rec, transcript, "")
		printJSON(result)
		return nil
	},
}

func init() {
	postcallCmd.Flags().StringVar(&postcallID, "id", "", "inquiry ID")
	postcallCmd.Flags().StringVar(&postcallTranscript, "transcript", "", "transcript file (defaults to the stored transcript)")
	rootCmd.AddCommand(postcallCmd)
}
