package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/longhd1308/ClockApp/internal/domain"
	"github.com/longhd1308/ClockApp/internal/i18n"
	"github.com/longhd1308/ClockApp/internal/logging"
	"github.com/longhd1308/ClockApp/internal/picker"
	"github.com/longhd1308/ClockApp/internal/usecase"
)

func newShellCmd() *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive shell driving one stopwatch and one timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveShell(prompt)
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "clockapp> ", "shell prompt")
	return cmd
}

func shellCompleter() *readline.PrefixCompleter {
	commands := func() []readline.PrefixCompleterInterface {
		return []readline.PrefixCompleterInterface{
			readline.PcItem("start"),
			readline.PcItem("pause"),
			readline.PcItem("resume"),
			readline.PcItem("reset"),
			readline.PcItem("show"),
		}
	}
	fields := func() []readline.PrefixCompleterInterface {
		return []readline.PrefixCompleterInterface{
			readline.PcItem("hours"),
			readline.PcItem("minutes"),
			readline.PcItem("seconds"),
		}
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("sw", commands()...),
		readline.PcItem("timer", commands()...),
		readline.PcItem("pick", fields()...),
		readline.PcItem("scroll", fields()...),
		readline.PcItem("duration"),
		readline.PcItem("lang", readline.PcItem("vi"), readline.PcItem("en")),
		readline.PcItem("tick"),
		readline.PcItem("settings", readline.PcItem("json"), readline.PcItem("yaml"), readline.PcItem("table")),
		readline.PcItem("status"),
		readline.PcItem("log", readline.PcItem("--show"), readline.PcItem("--level")),
		readline.PcItem("version"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}

func runInteractiveShell(prompt string) error {
	historyFile := filepath.Join(os.TempDir(), "clockapp-shell.history")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		AutoComplete:    shellCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	uc, err := openUseCase(rl.Stdout(), nil)
	if err != nil {
		return err
	}
	defer uc.Close()

	session := newShellSession(uc, rl.Stdout())
	lang := uc.Snapshot().Settings.Language
	fmt.Fprintf(rl.Stdout(), "%s / %s. Type 'help' for commands, 'exit' to quit.\n",
		i18n.Text(lang, i18n.KeyStopwatchTitle), i18n.Text(lang, i18n.KeyTimerTitle))

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			fmt.Fprintln(rl.Stdout())
			continue
		}
		if err == io.EOF {
			fmt.Fprintln(rl.Stdout())
			return nil
		}
		quit, err := session.exec(line)
		if err != nil {
			fmt.Fprintf(rl.Stdout(), "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// shellSession keeps one use case alive across shell lines.
type shellSession struct {
	uc        usecase.ClockUseCase
	out       io.Writer
	verbosity int
}

func newShellSession(uc usecase.ClockUseCase, out io.Writer) *shellSession {
	return &shellSession{uc: uc, out: out, verbosity: verbosity}
}

// exec runs one input line and reports whether the shell should exit.
func (s *shellSession) exec(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	tokens, err := shlex.Split(line)
	if err != nil {
		return false, fmt.Errorf("parse error: %w", err)
	}
	if len(tokens) == 0 {
		return false, nil
	}

	args := tokens[1:]
	switch tokens[0] {
	case "exit", "quit":
		fmt.Fprintln(s.out, "Bye!")
		return true, nil
	case "help":
		printShellHelp(s.out)
	case "sw", "stopwatch":
		return false, s.clockCommand(domain.ModeStopwatch, args)
	case "timer":
		return false, s.clockCommand(domain.ModeTimer, args)
	case "pick":
		return false, s.pick(args)
	case "scroll":
		return false, s.scroll(args)
	case "duration":
		return false, s.duration(args)
	case "lang":
		return false, s.lang(args)
	case "tick":
		return false, s.tick(args)
	case "settings":
		format := "json"
		if len(args) > 0 {
			format = args[0]
		}
		return false, writeSettings(s.out, format, s.uc.Snapshot().Settings)
	case "status":
		writeStatus(s.out, s.uc.Snapshot())
	case "log":
		return false, handleShellLog(s.out, args, &s.verbosity)
	case "shell":
		fmt.Fprintln(s.out, "Already in the shell. Enter a command or 'exit' to quit.")
	case "version":
		return false, s.executeArgs(tokens)
	default:
		return false, fmt.Errorf("unknown command %q (try 'help')", tokens[0])
	}
	return false, nil
}

func (s *shellSession) clockCommand(mode domain.Mode, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s start|pause|resume|reset|show", mode)
	}
	if args[0] != "show" {
		cmd, err := domain.ParseCommand(args[0])
		if err != nil {
			return err
		}
		if err := s.uc.Dispatch(mode, cmd); err != nil {
			return err
		}
	}
	s.printMode(mode)
	return nil
}

func (s *shellSession) printMode(mode domain.Mode) {
	snap := s.uc.Snapshot()
	lang := snap.Settings.Language
	switch mode {
	case domain.ModeStopwatch:
		fmt.Fprintf(s.out, "%s  %s  [%s]\n", i18n.Text(lang, i18n.KeyStopwatchTitle),
			snap.Stopwatch.Display, i18n.StateLabel(lang, snap.Stopwatch.State))
	case domain.ModeTimer:
		fmt.Fprintf(s.out, "%s  %s  [%s]\n", i18n.Text(lang, i18n.KeyTimerTitle),
			snap.Timer.Display, i18n.StateLabel(lang, snap.Timer.State))
	}
}

func (s *shellSession) printSelection(sel domain.DurationSelection) {
	fmt.Fprintf(s.out, "picker %02d:%02d:%02d (%ds)\n", sel.Hours, sel.Minutes, sel.Seconds, sel.TotalSeconds())
}

func (s *shellSession) pick(args []string) error {
	if len(args) == 0 {
		s.printSelection(s.uc.Snapshot().Selection)
		return nil
	}
	if len(args) != 2 {
		return errors.New("usage: pick [hours|minutes|seconds <index>]")
	}
	field, err := picker.ParseField(args[0])
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	sel, err := s.uc.SetPickerIndex(field, index)
	if err != nil {
		return err
	}
	s.printSelection(sel)
	return nil
}

func (s *shellSession) scroll(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: scroll hours|minutes|seconds <offset>")
	}
	field, err := picker.ParseField(args[0])
	if err != nil {
		return err
	}
	offset, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("offset: %w", err)
	}
	sel, err := s.uc.ScrollPicker(field, offset)
	if err != nil {
		return err
	}
	s.printSelection(sel)
	return nil
}

func (s *shellSession) duration(args []string) error {
	if len(args) != 3 {
		return errors.New("usage: duration <hours> <minutes> <seconds>")
	}
	var vals [3]int
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("duration: %w", err)
		}
		vals[i] = v
	}
	sel := domain.DurationSelection{Hours: vals[0], Minutes: vals[1], Seconds: vals[2]}
	if err := s.uc.SetSelection(sel); err != nil {
		return err
	}
	s.printSelection(s.uc.Snapshot().Selection)
	return nil
}

func (s *shellSession) lang(args []string) error {
	var lang domain.Language
	switch len(args) {
	case 0:
		l, err := s.uc.ToggleLanguage()
		if err != nil {
			return err
		}
		lang = l
	case 1:
		l, err := domain.ParseLanguage(args[0])
		if err != nil {
			return err
		}
		settings := s.uc.Snapshot().Settings
		settings.Language = l
		if err := s.uc.UpdateSettings(settings); err != nil {
			return err
		}
		lang = l
	default:
		return errors.New("usage: lang [vi|en]")
	}
	fmt.Fprintf(s.out, "%s: %s\n", i18n.Text(lang, i18n.KeyChangeLanguage), lang)
	return nil
}

func (s *shellSession) tick(args []string) error {
	settings := s.uc.Snapshot().Settings
	if len(args) == 0 {
		fmt.Fprintf(s.out, "tick interval: %s\n", settings.TickInterval)
		return nil
	}
	d, err := time.ParseDuration(args[0])
	if err != nil {
		return fmt.Errorf("tick: %w", err)
	}
	settings.TickInterval = d
	if err := s.uc.UpdateSettings(settings); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "tick interval set to %s (applies from the next start or resume)\n", d)
	return nil
}

// executeArgs runs a one-shot cobra command. Building a fresh root resets the
// package flags, so they are restored afterwards.
func (s *shellSession) executeArgs(args []string) error {
	if len(args) == 0 {
		return nil
	}
	savedCfg, savedTick, savedAlert, savedQuiet := cfgPath, tickOverride, alertCmd, quiet
	defer func() {
		cfgPath, tickOverride, alertCmd, quiet = savedCfg, savedTick, savedAlert, savedQuiet
		verbosity = s.verbosity
		logging.SetVerbosity(s.verbosity)
	}()

	root := NewRootCmd()
	root.SetOut(s.out)
	root.SetArgs(append(args, fmt.Sprintf("--verbose=%d", s.verbosity)))
	return root.Execute()
}

func handleShellLog(out io.Writer, args []string, sessionVerbosity *int) error {
	fs := pflag.NewFlagSet("log", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var vcount int
	var level string
	var show bool
	fs.CountVarP(&vcount, "verbose", "v", "Increase verbosity (-v... up to 4)")
	fs.StringVar(&level, "level", "", "set level (error|warn|info|debug|trace)")
	fs.BoolVarP(&show, "show", "s", false, "show the current level")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	switch {
	case show && vcount == 0 && level == "":
		fmt.Fprintf(out, "log level: %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
		return nil
	case level != "":
		_, count, err := logging.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("log: %w", err)
		}
		*sessionVerbosity = count
	case vcount > 0:
		*sessionVerbosity = vcount
	default:
		fmt.Fprintf(out, "log level: %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
		return nil
	}

	verbosity = *sessionVerbosity
	logging.SetVerbosity(*sessionVerbosity)
	fmt.Fprintf(out, "log level set to %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
	return nil
}

func printShellHelp(out io.Writer) {
	fmt.Fprintln(out, `Commands:
  sw start|pause|resume|reset|show     # drive the stopwatch (Bấm Giờ)
  timer start|pause|resume|reset|show  # drive the countdown (Hẹn Giờ)
  pick [hours|minutes|seconds <i>]     # show or jump a picker wheel
  scroll hours|minutes|seconds <px>    # scroll a wheel; snaps to round(px/40)
  duration <h> <m> <s>                 # set all three wheels
  lang [vi|en]                         # toggle or set the label language
  tick [500ms]                         # show or change the tick interval
  settings [json|yaml|table]           # print the saved settings
  status                               # both clocks and the picker
  log -vv | log --level debug          # change log verbosity
  log --show                           # show the current log level
  version                              # build information
  exit / quit                          # leave the shell`)
}
