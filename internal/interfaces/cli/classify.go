package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/turtacn/CineMood/internal/domain/emotion"
	"github.com/turtacn/CineMood/pkg/errors"
)

// ClassifyOutput is the result of the classify command.
type ClassifyOutput struct {
	Input     string `json:"input"`
	Emotion   string `json:"emotion"`
	Canonical bool   `json:"canonical"`
}

func (o ClassifyOutput) renderText(w io.Writer) {
	fmt.Fprintln(w, o.Emotion)
}

// NewClassifyCmd creates the classify command. It runs entirely offline.
func NewClassifyCmd() *cobra.Command {
	var genres, label string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Derive the emotion for a genre string or normalize an expression label",
		Example: `  cinemood classify --genres "Horror, Mystery"
  cinemood classify --label Fearful`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out ClassifyOutput
			switch {
			case cmd.Flags().Changed("genres"):
				e := emotion.DeriveEmotion(genres)
				out = ClassifyOutput{Input: genres, Emotion: e.String(), Canonical: e.IsCanonical()}
			case cmd.Flags().Changed("label"):
				e := emotion.Normalize(label)
				out = ClassifyOutput{Input: label, Emotion: e.String(), Canonical: e.IsCanonical()}
			default:
				return errors.InvalidParam("one of --genres or --label is required")
			}
			return PrintResult(cmd, out)
		},
	}

	cmd.Flags().StringVar(&genres, "genres", "", "genre text to classify")
	cmd.Flags().StringVar(&label, "label", "", "expression label to normalize")
	cmd.MarkFlagsMutuallyExclusive("genres", "label")
	return cmd
}

//Personal.AI order the ending
