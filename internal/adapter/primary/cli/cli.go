package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/longhd1308/ClockApp/internal/adapter/primary/web"
	"github.com/longhd1308/ClockApp/internal/adapter/secondary/alert"
	"github.com/longhd1308/ClockApp/internal/adapter/secondary/repository"
	"github.com/longhd1308/ClockApp/internal/domain"
	"github.com/longhd1308/ClockApp/internal/i18n"
	"github.com/longhd1308/ClockApp/internal/logging"
	"github.com/longhd1308/ClockApp/internal/metrics"
	"github.com/longhd1308/ClockApp/internal/usecase"
)

var (
	// Set via ldflags at build time
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var (
	cfgPath      string
	verbosity    int
	tickOverride time.Duration
	alertCmd     string
	quiet        bool
)

// NewRootCmd creates the root CLI command.
// This is the primary adapter that translates CLI inputs to use case calls.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "clockapp",
		Short:         "Stopwatch and countdown timer (Bấm Giờ / Hẹn Giờ)",
		Long:          "Stopwatch, countdown timer with an hours/minutes/seconds picker, and Vietnamese/English labels",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", repository.DefaultPath(), "settings file path (empty keeps settings in memory for this run)")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase logging (-v, -vv, ... up to 4)")
	cmd.PersistentFlags().DurationVar(&tickOverride, "tick", 0, "tick interval for this run, e.g. 500ms (0 uses the saved setting)")
	cmd.PersistentFlags().StringVar(&alertCmd, "alert-cmd", "", "command run when a countdown finishes; {message} is replaced by the alert text")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "do not ring the terminal bell when a countdown finishes")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logging.SetVerbosity(verbosity)
	}

	cmd.AddCommand(
		newStopwatchCmd(),
		newTimerCmd(),
		newServeCmd(),
		newConfigCmd(),
		newShellCmd(),
		newVersionCmd(),
	)

	return cmd
}

// openSettings returns the settings file repository, or an in-memory one when
// --config is empty.
func openSettings() (domain.SettingsRepository, error) {
	if cfgPath == "" {
		return repository.NewMemoryRepository(domain.DefaultSettings()), nil
	}
	return repository.NewFileRepository(cfgPath)
}

// openUseCase builds the clock use case over the settings repository. wrap, if
// not nil, decorates the completion alerter.
func openUseCase(out io.Writer, wrap func(domain.Alerter) domain.Alerter, extra ...usecase.Option) (usecase.ClockUseCase, error) {
	repo, err := openSettings()
	if err != nil {
		return nil, err
	}

	alerter := alert.NewNoopAlerter()
	if !quiet {
		alerter = alert.NewBellAlerter(out)
	}
	if alertCmd != "" {
		ca, err := alert.NewCommandAlerter(alertCmd)
		if err != nil {
			return nil, err
		}
		alerter = alert.Multi{alerter, ca}
	}
	if wrap != nil {
		alerter = wrap(alerter)
	}

	opts := []usecase.Option{usecase.WithAlerter(alerter)}
	if tickOverride != 0 {
		opts = append(opts, usecase.WithTickInterval(tickOverride))
	}
	return usecase.NewClockUseCase(repo, append(opts, extra...)...)
}

func newStopwatchCmd() *cobra.Command {
	var forDuration time.Duration
	cmd := &cobra.Command{
		Use:     "stopwatch",
		Aliases: []string{"sw"},
		Short:   "Run the stopwatch in the foreground until Ctrl-C",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			uc, err := openUseCase(out, nil)
			if err != nil {
				return err
			}
			defer uc.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if forDuration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, forDuration)
				defer cancel()
			}

			lang := uc.Snapshot().Settings.Language
			fmt.Fprintln(out, i18n.Text(lang, i18n.KeyStopwatchTitle))

			var mu sync.Mutex
			unsubscribe := uc.Subscribe(func(snap domain.Snapshot) {
				mu.Lock()
				defer mu.Unlock()
				fmt.Fprintf(out, "\r%s  %-12s", snap.Stopwatch.Display, i18n.StateLabel(lang, snap.Stopwatch.State))
			})
			defer unsubscribe()

			if err := uc.Dispatch(domain.ModeStopwatch, domain.CommandStart); err != nil {
				return err
			}
			<-ctx.Done()

			if err := uc.Dispatch(domain.ModeStopwatch, domain.CommandPause); err != nil {
				return err
			}
			mu.Lock()
			fmt.Fprintln(out)
			mu.Unlock()
			logging.Infof("stopwatch stopped at %s", uc.Snapshot().Stopwatch.Display)
			return nil
		},
	}
	cmd.Flags().DurationVar(&forDuration, "for", 0, "stop automatically after this long, e.g. 90s")
	return cmd
}

// finishAlerter closes done after the wrapped alert has been delivered.
type finishAlerter struct {
	next domain.Alerter
	once sync.Once
	done chan struct{}
}

func (f *finishAlerter) Alert(lang domain.Language) error {
	err := f.next.Alert(lang)
	f.once.Do(func() { close(f.done) })
	return err
}

func newTimerCmd() *cobra.Command {
	var hours, minutes, seconds int
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Count down in the foreground and ring when it reaches zero",
		Long:  "Count down from --hours/--minutes/--seconds. Without flags the saved default duration is used.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			finish := &finishAlerter{done: make(chan struct{})}
			uc, err := openUseCase(out, func(next domain.Alerter) domain.Alerter {
				finish.next = next
				return finish
			})
			if err != nil {
				return err
			}
			defer uc.Close()

			sel := uc.Snapshot().Selection
			if cmd.Flags().Changed("hours") {
				sel.Hours = hours
			}
			if cmd.Flags().Changed("minutes") {
				sel.Minutes = minutes
			}
			if cmd.Flags().Changed("seconds") {
				sel.Seconds = seconds
			}
			if err := uc.SetSelection(sel); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			lang := uc.Snapshot().Settings.Language
			fmt.Fprintln(out, i18n.Text(lang, i18n.KeyTimerTitle))

			var mu sync.Mutex
			unsubscribe := uc.Subscribe(func(snap domain.Snapshot) {
				mu.Lock()
				defer mu.Unlock()
				fmt.Fprintf(out, "\r%s", snap.Timer.Display)
			})
			defer unsubscribe()

			if err := uc.Dispatch(domain.ModeTimer, domain.CommandStart); err != nil {
				return err
			}
			if uc.Snapshot().Timer.State == domain.StateIdle.String() {
				fmt.Fprintln(out)
				logging.Warnf("timer duration is zero; nothing to count down")
				return nil
			}

			select {
			case <-finish.done:
				return nil
			case <-ctx.Done():
				if err := uc.Dispatch(domain.ModeTimer, domain.CommandPause); err != nil {
					logging.Warnf("pause interrupted timer: %v", err)
				}
				mu.Lock()
				fmt.Fprintln(out)
				mu.Unlock()
				return errors.New("timer interrupted at " + uc.Snapshot().Timer.Display)
			}
		},
	}
	cmd.Flags().IntVar(&hours, "hours", 0, "hours (0-23)")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "minutes (0-59)")
	cmd.Flags().IntVar(&seconds, "seconds", 0, "seconds (0-59)")
	return cmd
}

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Web UI, REST API and /metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			var uc usecase.ClockUseCase
			pm := metrics.NewPrometheusMetrics(func() domain.Snapshot { return uc.Snapshot() })

			uc, err := openUseCase(cmd.OutOrStdout(), pm.Alerter, usecase.WithCommandObserver(pm.ObserveCommand))
			if err != nil {
				return err
			}
			defer uc.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			srv := web.NewServer(uc, addr, pm)
			fmt.Fprintf(cmd.OutOrStdout(), "ClockApp UI running at http://%s\n", addr)
			logging.Infof("ClockApp UI: http://%s", addr)

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:7070", "HTTP listen address:port")
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the saved settings",
	}
	cmd.AddCommand(newConfigGetCmd(), newConfigSetCmd())
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the saved settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openSettings()
			if err != nil {
				return err
			}
			settings, err := repo.Load()
			if err != nil {
				return err
			}
			return writeSettings(cmd.OutOrStdout(), output, settings)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json, yaml or table")
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	var (
		langFlag                string
		hours, minutes, seconds int
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the saved settings (language, --tick, default timer duration)",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repository.NewFileRepository(cfgPath)
			if err != nil {
				return err
			}
			settings, err := repo.Load()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("lang") {
				lang, err := domain.ParseLanguage(langFlag)
				if err != nil {
					return err
				}
				settings.Language = lang
			}
			if cmd.Flags().Changed("tick") {
				settings.TickInterval = tickOverride
			}
			if cmd.Flags().Changed("hours") {
				settings.DefaultSelection.Hours = hours
			}
			if cmd.Flags().Changed("minutes") {
				settings.DefaultSelection.Minutes = minutes
			}
			if cmd.Flags().Changed("seconds") {
				settings.DefaultSelection.Seconds = seconds
			}

			if err := settings.Validate(); err != nil {
				return err
			}
			settings.DefaultSelection = settings.DefaultSelection.Clamp()
			if err := repo.Save(settings); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "saved: lang=%s tick=%s default=%s\n",
				settings.Language, settings.TickInterval, domain.FormatTimer(settings.DefaultSelection.TotalSeconds()))
			return nil
		},
	}
	cmd.Flags().StringVar(&langFlag, "lang", "", "label language: vi or en")
	cmd.Flags().IntVar(&hours, "hours", 0, "default timer hours (0-23)")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "default timer minutes (0-59)")
	cmd.Flags().IntVar(&seconds, "seconds", 0, "default timer seconds (0-59)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "clockapp version %s\n", version)
			fmt.Fprintf(out, "  commit:     %s\n", commit)
			fmt.Fprintf(out, "  built:      %s\n", buildDate)
			fmt.Fprintf(out, "  go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
