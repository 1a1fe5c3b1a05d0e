package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/turtacn/CineMood/internal/application/recommendation"
	"github.com/turtacn/CineMood/internal/infrastructure/dataset"
	"github.com/turtacn/CineMood/internal/infrastructure/monitoring/logging"
)

// RecommendOutput is the rendered result of recommend and detect.
type RecommendOutput struct {
	DetectedEmotion string   `json:"detected_emotion"`
	Recommendations []string `json:"recommendations"`
}

func (o RecommendOutput) renderText(w io.Writer) {
	fmt.Fprintf(w, "Detected emotion: %s\n", o.DetectedEmotion)
	for _, title := range o.Recommendations {
		fmt.Fprintf(w, "  - %s\n", title)
	}
}

// NewRecommendCmd creates the offline recommend command, which loads a CSV
// dataset in-process and runs detection and lookup against it.
func NewRecommendCmd() *cobra.Command {
	var (
		datasetPath string
		limit       int
	)

	cmd := &cobra.Command{
		Use:     "recommend name=score [name=score...]",
		Short:   "Recommend movies for expression scores using a local dataset",
		Example: `  cinemood recommend --dataset movies.csv happy=0.82 neutral=0.1`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			scores, err := ParseScores(args)
			if err != nil {
				return err
			}

			path := datasetPath
			if path == "" {
				path = cliCtx.Config.Dataset.Path
			}
			if !cmd.Flags().Changed("limit") {
				limit = cliCtx.Config.Recommendation.Limit
			}

			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()

			holder := dataset.NewHolder(dataset.NewFileSource(path), cliCtx.Logger)
			if err := holder.Reload(ctx); err != nil {
				return err
			}

			svc := recommendation.NewService(holder, recommendation.Config{
				Limit:         limit,
				MinConfidence: cliCtx.Config.Recommendation.MinConfidence,
			}, cliCtx.Logger)

			res, err := svc.Detect(ctx, scores)
			if err != nil {
				return err
			}
			if cliCtx.Verbose {
				cliCtx.Logger.Info("Recommendation computed",
					logging.String("condition", string(res.Condition)),
					logging.Int("titles", len(res.Titles)),
				)
			}
			resp := res.Response()
			return PrintResult(cmd, RecommendOutput{
				DetectedEmotion: resp.DetectedEmotion,
				Recommendations: resp.Recommendations,
			})
		},
	}

	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "", "CSV dataset path (default: dataset.path from config)")
	cmd.Flags().IntVarP(&limit, "limit", "n", recommendation.DefaultLimit, "maximum number of titles")
	return cmd
}

//Personal.AI order the ending
