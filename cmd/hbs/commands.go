package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/aescanero/dago-node-render/internal/datefmt"
	"github.com/aescanero/dago-node-render/internal/eval/cel"
	"github.com/aescanero/dago-node-render/internal/eval/template"
	"github.com/aescanero/dago-node-render/internal/helpers"
)

// renderOptions configures the helper catalog of a CLI run
type renderOptions struct {
	logLevel string
	locale   string
	timezone string
	now      string
	cel      bool
}

func newRootCmd() *cobra.Command {
	opts := &renderOptions{}

	rootCmd := &cobra.Command{
		Use:           "hbs",
		Short:         "Render Handlebars notification templates",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level for helper diagnostics (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.locale, "locale", datefmt.DefaultLocale, "Default locale for date and number helpers")
	rootCmd.PersistentFlags().StringVar(&opts.timezone, "timezone", "", "Default UTC offset for date helpers, e.g. +05:30")
	rootCmd.PersistentFlags().StringVar(&opts.now, "now", "", "Fix the current time (RFC 3339) for relative date helpers")
	rootCmd.PersistentFlags().BoolVar(&opts.cel, "cel", true, "Enable the ifExpr helper")

	rootCmd.AddCommand(
		newRenderCmd(opts),
		newValidateCmd(),
		newHelpersCmd(opts),
	)

	return rootCmd
}

func newRenderCmd(opts *renderOptions) *cobra.Command {
	var templatePath, dataPath string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a template against a JSON or YAML context",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd.InOrStdin(), templatePath)
			if err != nil {
				return err
			}

			data := make(map[string]interface{})
			if dataPath != "" {
				if data, err = loadData(dataPath); err != nil {
					return err
				}
			}

			engine, err := opts.engine(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out, err := engine.Render(source, data)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&templatePath, "template", "t", "-", "Template file, - for stdin")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "Context file (.json, .yaml or .yml)")

	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <template-file>",
		Short: "Check that a template parses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			engine := template.NewEngine(nil, 0, zap.NewNop())
			if err := engine.ValidateTemplate(source); err != nil {
				return fmt.Errorf("invalid template %s: %w", args[0], err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return err
		},
	}
}

func newHelpersCmd(opts *renderOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "helpers",
		Short: "List the registered helpers",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.engine(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(engine.Helpers(), "\n"))
			return err
		},
	}
}

// engine builds a template engine logging helper diagnostics to w
func (o *renderOptions) engine(w io.Writer) (*template.Engine, error) {
	level, err := zapcore.ParseLevel(o.logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	encoder := zap.NewDevelopmentEncoderConfig()
	logger := zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoder),
		zapcore.AddSync(w),
		level,
	))

	helperOpts := helpers.Options{
		Logger:          logger,
		DefaultLocale:   o.locale,
		DefaultTimezone: o.timezone,
	}
	if o.now != "" {
		fixed, err := time.Parse(time.RFC3339, o.now)
		if err != nil {
			return nil, fmt.Errorf("invalid --now: %w", err)
		}
		helperOpts.Clock = func() time.Time { return fixed }
	}
	if o.cel {
		helperOpts.Conditions = cel.NewEvaluator()
	}

	return template.NewEngine(helpers.Default(helperOpts), 0, logger), nil
}

// readSource reads a file, or r when path is "-"
func readSource(r io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(r)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return string(data), nil
}

// loadData decodes a context file by extension; anything that is not
// .json is read as YAML
func loadData(path string) (map[string]interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}

	data := make(map[string]interface{})
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(raw, &data)
	} else {
		err = yaml.Unmarshal(raw, &data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if data == nil {
		data = make(map[string]interface{})
	}

	return data, nil
}
