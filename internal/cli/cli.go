package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/taskgrid/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the CLI.
const EnvPrefix = "TASKGRID"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) *ExitError {
	return &ExitError{Code: 2, Message: err.Error()}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly (help was
// requested), or an ExitError with code 2 for usage problems.
//
// Settings are resolved by precedence: flags, then TASKGRID_* environment
// variables, then the config file given by --config, then defaults.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	v := viper.New()
	var cfg *app.Config

	cmd := &cobra.Command{
		Use:   "taskgrid [flags] [TASK...]",
		Short: "Run a graph of dependent tasks",
		Long: `taskgrid runs the tasks declared in .hcl, .yaml and .yml task files.

Every named TASK runs after the tasks it depends on; with no TASK arguments
every declared task runs. Each task runs at most once, and a task whose
dependency failed is skipped.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, targets []string) error {
			c, err := resolve(v, targets)
			if err != nil {
				return err
			}
			cfg = c
			return nil
		},
	}
	// cobra falls back to os.Args when given nil.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := cmd.Flags()
	flags.StringP("file", "f", ".", "Task file or directory containing .hcl/.yaml/.yml files.")
	flags.IntP("workers", "w", 1, "Number of tasks that may run at the same time.")
	flags.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.BoolP("dry-run", "m", false, "Print the tasks that would run, in order, without running them.")
	flags.String("out-json", "", "Write the execution report as JSON to this path.")
	flags.StringP("config", "c", "", "Config file with defaults for the flags above.")
	if err := bind(v, flags); err != nil {
		return nil, false, err
	}

	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, usageError(err)
	}
	if cfg == nil {
		// Help was printed.
		return nil, true, nil
	}
	return cfg, false, nil
}

func bind(v *viper.Viper, flags *pflag.FlagSet) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v.BindPFlags(flags)
}

// resolve reads the optional config file and builds the validated config.
func resolve(v *viper.Viper, targets []string) (*app.Config, error) {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, usageError(fmt.Errorf("failed to read config file: %w", err))
		}
	}

	cfg, err := app.NewConfig(app.Config{
		TasksPath: v.GetString("file"),
		Targets:   targets,
		LogFormat: strings.ToLower(v.GetString("log-format")),
		LogLevel:  strings.ToLower(v.GetString("log-level")),
		Workers:   v.GetInt("workers"),
		DryRun:    v.GetBool("dry-run"),
		OutJSON:   v.GetString("out-json"),
	})
	if err != nil {
		return nil, usageError(err)
	}
	return cfg, nil
}
