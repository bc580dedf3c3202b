package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"diabetescheck/ml"
	"diabetescheck/predict"
)

const (
	exitFailure = 1
	exitWarning = 2
)

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

func newPredictCmd(opts *options) *cobra.Command {
	var name string
	values := make(map[string]*float64, ml.FeatureCount)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run a single prediction and print the outcome",
		Long: `Predict runs the measurements given as flags through the classifier once.
Measurements left out take their minimum (0, or 21 for age).

Example:
  diabetescheck predict --name Alice --glucose 148 --bmi 33.6 --age 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			model, err := loadClassifier(cfg, log)
			if err != nil {
				return &ExitError{Code: exitFailure, Err: err}
			}
			pipeline, err := predict.NewPipeline(model, predict.WithLogger(log), predict.WithCacheSize(0))
			if err != nil {
				return err
			}

			req := predict.Request{Name: name}
			for _, field := range ml.FeatureFields {
				if cmd.Flags().Changed(flagName(field.Key)) {
					if err := req.Set(field.Key, *values[field.Key]); err != nil {
						return err
					}
				}
			}

			res := pipeline.Submit(background(cmd), req)
			out := cmd.OutOrStdout()
			switch res.Kind {
			case predict.KindOutcome:
				printf(out, "%s\n", res.Message)
				if md := res.AdviceMarkdown(); md != "" {
					printf(out, "\n%s", md)
				}
				return nil
			case predict.KindWarning:
				printf(cmd.ErrOrStderr(), "%s\n", res.Message)
				return &ExitError{Code: exitWarning, Err: errors.New(res.Message), Reported: true}
			default:
				printf(cmd.ErrOrStderr(), "%s\n", res.Message)
				return &ExitError{Code: exitFailure, Err: res.Err, Reported: true}
			}
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "your name (required)")
	for _, field := range ml.FeatureFields {
		v := new(float64)
		values[field.Key] = v
		cmd.Flags().Float64Var(v, flagName(field.Key), field.Min, strings.TrimSuffix(field.Label, ":"))
	}
	return cmd
}
