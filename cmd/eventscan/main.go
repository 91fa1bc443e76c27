package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/sirkon/eventid/internal/config"
	"github.com/sirkon/eventid/internal/logger"
	"github.com/sirkon/eventid/internal/scan"
)

var errFindings = errors.New("problems found")

var rootCmd = &cobra.Command{
	Use:   "eventscan [packages]",
	Short: "Summarize event id problems of a source tree",
	Long: `eventscan checks every package matching the patterns (./... by default)
for logging calls without an event id and for event codes reused within a
package, then prints a summary.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScan,
}

func init() {
	flags := rootCmd.Flags()
	flags.String("dir", ".", "root directory of the tree")
	flags.Bool("tests", false, "include test packages")
	flags.Int("jobs", 4, "packages checked at once")
	flags.String("config", "", "path or URL of the YAML settings file")
	flags.String("format", string(scan.FormatText), "output format (text|yaml)")
	flags.String("output", "", "write the summary to a path or URL instead of stdout")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("fail", false, "exit with status 1 when problems are found")
	flags.String("log-level", "warn", "log level (debug|info|warn|error)")
	flags.String("log-format", "console", "log format (console|json)")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err := rootCmd.ExecuteContext(ctx)
	_ = logger.Sync()
	if err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintln(os.Stderr, "eventscan:", err)
		}
		os.Exit(1)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	dir, _ := flags.GetString("dir")
	tests, _ := flags.GetBool("tests")
	jobs, _ := flags.GetInt("jobs")
	configPath, _ := flags.GetString("config")
	formatName, _ := flags.GetString("format")
	output, _ := flags.GetString("output")
	colorMode, _ := flags.GetString("color")
	fail, _ := flags.GetBool("fail")
	logLevel, _ := flags.GetString("log-level")
	logFormat, _ := flags.GetString("log-format")

	if err := logger.Init(logLevel, logFormat); err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	log := logger.L()

	format, err := scan.ParseFormat(formatName)
	if err != nil {
		return err
	}
	colored, err := useColor(colorMode, output)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return err
	}

	summary, err := scan.Run(ctx, scan.Options{
		Dir:      dir,
		Patterns: args,
		Tests:    tests,
		Jobs:     jobs,
		Config:   cfg,
		Logger:   log,
	})
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	log.Info(
		"scan finished",
		zap.Int("packages", summary.Packages),
		zap.Int("findings", summary.Findings()),
		zap.String("fingerprint", summary.Fingerprint),
	)

	if output != "" {
		if err := scan.Save(ctx, output, summary, format); err != nil {
			return err
		}
	} else if err := scan.Render(cmd.OutOrStdout(), summary, format, colored); err != nil {
		return err
	}

	if fail && summary.Findings() > 0 {
		return errFindings
	}

	return nil
}

func useColor(mode, output string) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return output == "" && term.IsTerminal(int(os.Stdout.Fd())), nil
	default:
		return false, fmt.Errorf("unknown color mode %q", mode)
	}
}
