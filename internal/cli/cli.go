package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/jobcal/internal/calendar"
	"github.com/pfrederiksen/jobcal/internal/config"
	"github.com/pfrederiksen/jobcal/internal/event"
	"github.com/pfrederiksen/jobcal/internal/locator"
	"github.com/pfrederiksen/jobcal/internal/logger"
	"github.com/pfrederiksen/jobcal/internal/presenter"
	"github.com/pfrederiksen/jobcal/internal/scraper"
	"github.com/pfrederiksen/jobcal/internal/telegram"
)

const (
	ExitSuccess    = 0
	ExitError      = 1
	ExitIncomplete = 2
)

type options struct {
	file       string
	pageURL    string
	render     bool
	install    bool
	delay      time.Duration
	configPath string
	format     string
	inject     string
	ics        string
	telegram   bool
	logLevel   string
	verbose    bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "jobcal [URL|FILE]",
		Short: "Turn a job detail page into a Google Calendar link",
		Long: `A CLI tool that reads a Fullcast job detail page, extracts the shift date,
working hours, title, map link and notes, and builds a Google Calendar
"add event" link for it.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "Read the page from a saved HTML file")
	cmd.Flags().StringVar(&opts.pageURL, "page-url", "", "Page address used to resolve relative links in --file")
	cmd.Flags().BoolVar(&opts.render, "render", false, "Load the page in a headless browser")
	cmd.Flags().BoolVar(&opts.install, "install-browser", false, "Download the headless browser before rendering")
	cmd.Flags().DurationVar(&opts.delay, "delay", scraper.DefaultRenderDelay, "Wait after page load when rendering")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML file overriding selectors, labels and button style")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&opts.inject, "inject", "", "Write the page with a calendar button to FILE")
	cmd.Flags().StringVar(&opts.ics, "ics", "", "Write the event as an iCalendar file to FILE")
	cmd.Flags().BoolVar(&opts.telegram, "telegram", false, "Send the link to Telegram (TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging (same as --log-level debug)")

	return cmd
}

func run(ctx context.Context, out io.Writer, opts *options, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}

	level, err := logger.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	if opts.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	page, err := acquire(ctx, opts, args)
	if err != nil {
		return err
	}

	var statuses []locator.Status
	if opts.verbose {
		statuses = locator.New(cfg, page.URL).Check(page.Document)
		for _, s := range statuses {
			logger.Debug("field status", logger.Fields{
				"field":    s.Field.String(),
				"found":    s.Found,
				"strategy": s.Strategy,
			})
		}
	}

	rec := scraper.NewAssembler(cfg).Assemble(page)
	link := calendar.GenerateURL(rec)

	result := &OutputResult{
		GeneratedAt: time.Now().UTC(),
		ID:          rec.ID(),
		Event:       rec,
		Link:        link,
		Complete:    link != "",
		Missing:     rec.Missing(),
		Fields:      statuses,
	}

	if format == FormatText && link != "" {
		if err := presenter.NewTextPresenter(out, cfg.Button).Present(ctx, link, rec); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	} else if err := WriteOutput(out, result, format, opts.verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if opts.verbose {
		logger.Debug("run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
	}

	if link == "" {
		logger.Warn("no calendar link produced", logger.Fields{"missing": strings.Join(rec.Missing(), ",")})
		return calendar.ErrIncompleteEvent
	}

	if opts.ics != "" {
		if err := writeICS(opts.ics, rec); err != nil {
			return err
		}
	}
	if opts.inject != "" {
		if err := writeInjected(ctx, opts.inject, page, cfg, link, rec); err != nil {
			return err
		}
	}
	if opts.telegram {
		if err := sendTelegram(ctx, cfg, link, rec); err != nil {
			return err
		}
	}

	return nil
}

// acquire loads the page named by --file or the positional argument.
func acquire(ctx context.Context, opts *options, args []string) (*scraper.Page, error) {
	source := opts.file
	if source == "" && len(args) > 0 {
		source = args[0]
	}
	if source == "" {
		return nil, errors.New("a page URL or --file is required")
	}

	if opts.file == "" && isURL(source) {
		var fetcher scraper.Fetcher = scraper.New()
		if opts.render {
			r := scraper.NewRenderer()
			r.Delay = opts.delay
			r.Install = opts.install
			fetcher = r
		}
		logger.Info("fetching page", logger.Fields{"url": source, "render": opts.render})
		return fetcher.Fetch(ctx, source)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("opening page file: %w", err)
	}
	defer f.Close()

	return scraper.ParsePage(f, opts.pageURL)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func writeICS(path string, rec *event.Record) error {
	ics, err := calendar.GenerateICS(rec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(ics), 0o644); err != nil {
		return fmt.Errorf("writing ics file: %w", err)
	}
	logger.Info("ics file written", logger.Fields{"path": path})
	return nil
}

func writeInjected(ctx context.Context, path string, page *scraper.Page, cfg *config.Config, link string, rec *event.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating inject file: %w", err)
	}
	defer f.Close()

	if err := presenter.NewDOMPresenter(page.Document, cfg, f).Present(ctx, link, rec); err != nil {
		return err
	}
	return f.Close()
}

func sendTelegram(ctx context.Context, cfg *config.Config, link string, rec *event.Record) error {
	creds, err := config.LoadEnv()
	if err != nil {
		return err
	}
	if !creds.Configured() {
		return errors.New("telegram requires TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID")
	}

	client, err := telegram.NewClient(creds.BotToken, creds.ChatID)
	if err != nil {
		return fmt.Errorf("creating telegram client: %w", err)
	}
	if err := presenter.NewTelegramPresenter(client, cfg.Button.Text).Present(ctx, link, rec); err != nil {
		return err
	}
	logger.Info("calendar link sent to telegram", nil)
	return nil
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, calendar.ErrIncompleteEvent):
		return ExitIncomplete
	default:
		return ExitError
	}
}

// Execute runs the CLI
func Execute() {
	err := NewRootCmd().Execute()
	code := ExitCode(err)
	if code == ExitError {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(code)
}
