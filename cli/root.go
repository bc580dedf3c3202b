package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"diabetescheck/config"
	"diabetescheck/logger"
	"diabetescheck/ml"
)

const version = "0.3.0"

// ExitError carries a process exit code out of a command. Reported means the
// command already told the user what went wrong.
type ExitError struct {
	Code     int
	Err      error
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

type options struct {
	configPath string
	modelPath  string
}

// NewRootCmd builds the diabetescheck command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "diabetescheck",
		Short: "Diabetes prediction form backed by a pre-trained classifier",
		Long: `diabetescheck serves a small form that collects eight diagnostic
measurements, runs them through a pre-trained classifier and shows whether
the measurements indicate diabetes.

The predictions are not medical advice.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: $"+config.EnvConfigPath+" or ./config.yaml)")
	root.PersistentFlags().StringVar(&opts.modelPath, "model", "", "classifier artifact, overrides model.path")

	root.AddCommand(
		newServeCmd(opts),
		newPredictCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "diabetescheck v%s\n", version)
		},
	}
}

func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.Resolve(o.configPath))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.modelPath != "" {
		cfg.Model.Path = o.modelPath
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
}

// loadClassifier is the one-shot startup load; failures stop the command.
func loadClassifier(cfg *config.Config, log *zap.Logger) (ml.Classifier, error) {
	model, err := ml.LoadModel(cfg.Model.Path)
	if err != nil {
		log.Error("failed to load model", zap.String("path", cfg.Model.Path), zap.Error(err))
		return nil, err
	}
	log.Info("model loaded", zap.String("path", cfg.Model.Path), zap.String("type", fmt.Sprintf("%T", model)))
	return model, nil
}

func printf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}
