package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// cliUserID owns assessments stored by the assess command
const cliUserID = "cli"

func cmdAssess() *cli.Command {
	var app appConfig
	var asJSON bool
	var save bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the assessment as JSON",
			Destination: &asJSON,
		},
		&cli.BoolFlag{
			Name:        "save",
			Usage:       "Store the assessment in the repository",
			Destination: &save,
		},
	}
	flags = append(flags, app.Flags()...)

	return &cli.Command{
		Name:      "assess",
		Aliases:   []string{"a"},
		Usage:     "Run a one-shot risk assessment of a region",
		ArgsUsage: "<region code>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			region := c.Args().First()
			if region == "" {
				return goerr.New("region code is required, e.g. `gtpro assess RUS`")
			}

			uc, cleanup, err := app.build(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var result model.Result[*model.RiskAssessment]
			if save {
				result = uc.Risk.AssessRequest(ctx, cliUserID, model.RiskAssessmentRequest{Region: region})
			} else {
				result = uc.Risk.Assess(ctx, region)
			}
			if !result.Success {
				return goerr.New(result.Error, goerr.V("region", region))
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return goerr.Wrap(err, "failed to encode assessment")
				}
				return nil
			}

			printAssessment(os.Stdout, result)
			return nil
		},
	}
}

var levelColors = map[types.RiskLevel]*color.Color{
	types.RiskLevelCritical: color.New(color.FgRed, color.Bold),
	types.RiskLevelHigh:     color.New(color.FgHiRed),
	types.RiskLevelModerate: color.New(color.FgYellow),
	types.RiskLevelLow:      color.New(color.FgGreen),
}

func printAssessment(w io.Writer, result model.Result[*model.RiskAssessment]) {
	a := result.Data
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	levelColor, ok := levelColors[a.RiskLevel]
	if !ok {
		levelColor = color.New(color.Reset)
	}

	_, _ = bold.Fprintf(w, "%s", a.Region)
	_, _ = fmt.Fprintf(w, "  score %.0f  ", a.OverallRiskScore)
	_, _ = levelColor.Fprintf(w, "%s", a.RiskLevel)
	_, _ = fmt.Fprintf(w, "  confidence %.0f%%\n", a.Confidence)
	if result.Degraded {
		_, _ = color.New(color.FgYellow).Fprintf(w, "degraded: %s\n", result.Error)
	}

	if len(a.Factors) > 0 {
		_, _ = bold.Fprintln(w, "\nFactors")
		for _, f := range a.Factors {
			_, _ = fmt.Fprintf(w, "  - %s [%s, %s] likelihood %.0f impact %.0f\n",
				f.Name, f.Category, f.Severity, f.Likelihood, f.Impact)
			if f.Description != "" {
				_, _ = faint.Fprintf(w, "    %s\n", f.Description)
			}
		}
	}

	if len(a.Trends) > 0 {
		_, _ = bold.Fprintln(w, "\nTrends")
		for _, t := range a.Trends {
			_, _ = fmt.Fprintf(w, "  - %s: %s (%+.2f)\n", t.Factor, t.Direction, t.Rate)
		}
	}

	if len(a.Recommendations) > 0 {
		_, _ = bold.Fprintln(w, "\nRecommendations")
		for _, r := range a.Recommendations {
			_, _ = fmt.Fprintf(w, "  - %s\n", r)
		}
	}
}
