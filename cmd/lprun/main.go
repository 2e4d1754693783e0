package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"lprun/internal/app"
	"lprun/internal/config"
	"lprun/internal/domain"
	appErrors "lprun/internal/errors"
	"lprun/internal/history"
	"lprun/internal/infra/avahi"
	"lprun/internal/infra/cups"
	"lprun/internal/infra/exif"
	"lprun/internal/infra/fs"
	"lprun/internal/infra/netif"
	"lprun/internal/infra/nmap"
	"lprun/internal/infra/shell"
	"lprun/internal/logging"
	"lprun/internal/prepare"
	"lprun/internal/presentation"
	"lprun/internal/rawprint"
	"lprun/internal/tui"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		exitWithError(err)
	}
}

func newRootCommand() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:   "lprun",
		Short: "Print text, images and documents through CUPS or straight to a network printer",
		Example: `  lprun --text "Hello"
  lprun --printer Office --file report.pdf --copies 2
  lprun --ip 192.168.1.40 --image photo.jpg --grayscale
  lprun list
  lprun history`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return finalize(cmd, &cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.List {
				return listPrinters(cmd.Context(), cfg, cmd.OutOrStdout())
			}
			return printDocument(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
	config.Bind(root.Flags(), &cfg)
	root.PersistentFlags().StringVar(&cfg.History, "history-file", "", "History log path (default $HOME/.programs/bin/lprun/history.log)")

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List printers configured in CUPS",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return finalize(cmd, &cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return listPrinters(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "Show print history",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return finalize(cmd, &cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistory(cfg, cmd.OutOrStdout())
		},
	})
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return appErrors.Wrap(appErrors.InvalidConfig, "flags", "", err)
	})
	return root
}

func finalize(cmd *cobra.Command, cfg *config.Config) error {
	changed := func(name string) bool {
		flag := cmd.Flags().Lookup(name)
		return flag != nil && flag.Changed
	}
	if err := config.Finalize(cfg, changed); err != nil {
		if appErrors.KindOf(err) != appErrors.Internal {
			return err
		}
		return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
	}
	return nil
}

// deps wires the infrastructure shared by every command.
type deps struct {
	logger  logging.Logger
	shell   shell.Exec
	cups    cups.Client
	history history.Store
}

func newDeps(cfg config.Config, out io.Writer) (deps, error) {
	logger := logging.New(out, cfg.Verbose)
	runner := shell.Exec{Logger: logger.With("exec")}

	historyPath := cfg.History
	if historyPath == "" {
		var err error
		historyPath, err = history.DefaultPath()
		if err != nil {
			return deps{}, appErrors.Wrap(appErrors.Internal, "history path", "", err)
		}
	}

	return deps{
		logger: logger,
		shell:  runner,
		cups:   cups.Client{Shell: runner},
		history: history.Store{
			Path: filepath.Clean(historyPath),
			FS:   fs.OSFS{},
		},
	}, nil
}

func listPrinters(ctx context.Context, cfg config.Config, out io.Writer) error {
	d, err := newDeps(cfg, out)
	if err != nil {
		return err
	}
	devices, err := d.cups.Devices(ctx)
	if err != nil {
		return appErrors.Wrap(appErrors.Internal, "lpstat", "", errors.New(shell.Reason(err)))
	}
	presentation.Printer{Writer: out, Verbose: cfg.Verbose}.PrintDevices(devices)
	return nil
}

func showHistory(cfg config.Config, out io.Writer) error {
	d, err := newDeps(cfg, out)
	if err != nil {
		return err
	}
	entries, err := d.history.Entries()
	if err != nil {
		return appErrors.Wrap(appErrors.IOFailure, "read history", d.history.Path, err)
	}
	presentation.Printer{Writer: out, Verbose: cfg.Verbose}.PrintHistory(entries)
	return nil
}

func printDocument(ctx context.Context, cfg config.Config, out io.Writer) error {
	doc := cfg.Document()
	if doc.IsEmpty() {
		return appErrors.Wrap(appErrors.MissingDocument, "document", "", errors.New("no document given"))
	}
	// Log lines and the spinner share one terminal line discipline.
	console := presentation.NewConsole(out)
	d, err := newDeps(cfg, console)
	if err != nil {
		return err
	}

	if cfg.TUI {
		return runTUI(ctx, cfg, d, doc)
	}

	printer := presentation.Printer{Writer: console, Verbose: cfg.Verbose}
	result, err := run(ctx, cfg, d, doc, printer)
	if err != nil {
		return err
	}
	printer.PrintResult(result)
	return nil
}

// runTUI drives the bubbletea program while the job runs on a worker
// goroutine. The job is never interrupted; quitting the view early only
// hides it.
func runTUI(ctx context.Context, cfg config.Config, d deps, doc domain.Document) error {
	// The logger would tear through the alternate screen.
	d.logger.Writer = io.Discard
	d.shell.Logger.Writer = io.Discard
	d.cups.Shell = d.shell

	program := tea.NewProgram(tui.NewModel(tui.Config{
		Document: doc.Label(),
		Copies:   cfg.Copies,
		Verbose:  cfg.Verbose,
	}))

	done := make(chan error, 1)
	go func() {
		result, err := run(ctx, cfg, d, doc, tui.Feedback{Send: program.Send})
		if err != nil {
			program.Send(tui.ErrorMsg{Err: err})
		} else {
			program.Send(tui.DoneMsg{Result: result})
		}
		done <- err
	}()

	if _, err := program.Run(); err != nil {
		return appErrors.Wrap(appErrors.Internal, "tui", "", err)
	}
	return <-done
}

// run is the print pipeline: discover when no printer was given, prepare
// the document, deliver it and record the job.
func run(ctx context.Context, cfg config.Config, d deps, doc domain.Document, feedback app.Feedback) (app.Result, error) {
	target := cfg.Target()
	if target.IsZero() {
		chain := app.Chain{
			Strategies: []app.Strategy{
				cups.DeviceStage{Client: d.cups},
				avahi.Stage{Shell: d.shell, RawPort: cfg.Port},
				nmap.Stage{Shell: d.shell, Subnet: netif.LocalSubnet, RawPort: cfg.Port},
			},
			Feedback: feedback,
			Logger:   d.logger.With("discovery"),
		}
		var err error
		if target, err = chain.Discover(ctx); err != nil {
			return app.Result{}, err
		}
	}

	preparer := prepare.Preparer{
		Shell:  d.shell,
		FS:     fs.OSFS{},
		Exif:   exif.Reader{},
		Logger: d.logger.With("prepare"),
	}
	activity := feedback.Begin("Preparing " + doc.Label())
	prepared, err := preparer.Prepare(ctx, doc)
	activity.End()
	if err != nil {
		return app.Result{}, err
	}
	defer func() {
		if err := prepared.Cleanup(); err != nil {
			d.logger.Verbosef("remove %s: %v", prepared.Path, err)
		}
	}()

	executor := app.Executor{
		Spooler: d.cups,
		Raw: &rawprint.Sender{
			Reporter: feedback,
			Logger:   d.logger.With("raw"),
		},
		History:  d.history,
		Feedback: feedback,
		Logger:   d.logger,
	}
	return executor.Execute(ctx, target, prepared.Path, app.Options{
		Copies:  cfg.Copies,
		Title:   filepath.Base(doc.Label()),
		Label:   doc.Label(),
		Options: cups.ColorOptions(doc.Color),
	})
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
	os.Exit(appErrors.ExitCode(err))
}
