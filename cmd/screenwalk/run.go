package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/screenwalk/internal/presentation/tui"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/observability"
	"github.com/aretw0/screenwalk/pkg/runner"
	"github.com/aretw0/screenwalk/pkg/uitest"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	_ "github.com/aretw0/screenwalk/pkg/suites/homepage"
)

var runCmd = &cobra.Command{
	Use:   "run [test...]",
	Short: "Run the acceptance suite",
	Long: `Runs the registered tests (all of them, or the ones named) against the configured
driver and prints a report. The exit status is non-zero if any test failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if list, _ := cmd.Flags().GetBool("list"); list {
			for _, name := range uitest.Default.Names() {
				fmt.Println(name)
			}
			return nil
		}

		extra := map[string]any{}
		if len(args) > 0 {
			extra["tests"] = args
		}
		cfg, logger, err := loadConfig(cmd, extra)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		e, err := newEnv(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer e.Close()

		metrics := observability.NewMetrics()
		r := runner.New(e.driver,
			runner.WithFilter(cfg.Tests...),
			runner.WithSessions(e.sessions),
			runner.WithStore(e.store),
			runner.WithMetrics(metrics),
			runner.WithLogger(logger),
			runner.WithLifecycleHooks(observability.LoggingHooks(logger)),
			runner.WithWaitOptions(cfg.WaitOptions()),
			runner.WithCaseTimeout(cfg.CaseTimeout),
			runner.WithTestPageBase(cfg.TestPageBase),
		)

		report, err := r.Run(ctx)
		if err != nil {
			return err
		}

		if term.IsTerminal(int(os.Stdout.Fd())) {
			tui.PrintBanner(os.Stdout, termenv.ColorProfile())
			render, err := tui.NewRenderer()
			if err != nil {
				return err
			}
			out, err := render(tui.ReportMarkdown(report))
			if err != nil {
				return err
			}
			fmt.Print(out)
		} else {
			tui.PrintSummary(os.Stdout, termenv.Ascii, report)
		}

		if !report.Passed() {
			return fmt.Errorf("%d of %d tests failed (report %s)",
				report.Count(domain.CaseFailed), len(report.Results), report.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("list", false, "List the registered tests and exit")
}
