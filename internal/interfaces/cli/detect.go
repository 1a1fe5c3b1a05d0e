package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/CineMood/pkg/client"
)

// NewDetectCmd creates the detect command, which submits scores to a running
// CineMood server.
func NewDetectCmd() *cobra.Command {
	var (
		server   string
		retryMax int
	)

	cmd := &cobra.Command{
		Use:     "detect name=score [name=score...]",
		Short:   "Submit expression scores to a CineMood server",
		Example: `  cinemood detect --server http://localhost:8000 happy=0.82 neutral=0.1`,
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

			addr := server
			if addr == "" {
				addr = fmt.Sprintf("http://localhost:%d", cliCtx.Config.Server.Port)
			}
			c, err := client.NewClient(addr,
				client.WithTimeout(cliCtx.Timeout),
				client.WithRetryMax(retryMax),
				client.WithLogger(sdkLogger{cliCtx.Logger}),
			)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()

			res, err := c.DetectEmotion(ctx, scores)
			if err != nil {
				return err
			}
			return PrintResult(cmd, RecommendOutput{
				DetectedEmotion: res.DetectedEmotion,
				Recommendations: res.Recommendations,
			})
		},
	}

	cmd.Flags().StringVarP(&server, "server", "s", "", "server base URL (default: http://localhost:<server.port>)")
	cmd.Flags().IntVar(&retryMax, "retries", 3, "maximum retries for transient failures")
	return cmd
}

//Personal.AI order the ending
