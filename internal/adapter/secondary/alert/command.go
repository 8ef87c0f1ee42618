package alert

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/longhd1308/ClockApp/internal/domain"
	"github.com/longhd1308/ClockApp/internal/i18n"
)

// MessagePlaceholder in a command line is replaced by the localized alert text.
const MessagePlaceholder = "{message}"

// CommandAlerter implements domain.Alerter by running an external program,
// e.g. `notify-send ClockApp {message}` or `osascript -e 'display notification "{message}"'`.
// This is a secondary adapter.
type CommandAlerter struct {
	argv    []string
	timeout time.Duration
}

// NewCommandAlerter parses line with shell quoting rules.
func NewCommandAlerter(line string) (*CommandAlerter, error) {
	argv, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("parse alert command: %w", err)
	}
	if len(argv) == 0 {
		return nil, errors.New("alert command is empty")
	}
	return &CommandAlerter{argv: argv, timeout: 10 * time.Second}, nil
}

// Args returns the argument vector for lang with the message substituted.
func (c *CommandAlerter) Args(lang domain.Language) []string {
	msg := i18n.Text(lang, i18n.KeyTimesUp)
	out := make([]string, len(c.argv))
	for i, a := range c.argv {
		out[i] = strings.ReplaceAll(a, MessagePlaceholder, msg)
	}
	return out
}

// Alert runs the command and waits for it to exit.
func (c *CommandAlerter) Alert(lang domain.Language) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	args := c.Args(lang)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w, output: %s", args[0], err, string(output))
	}
	return nil
}

// Multi fans an alert out to several alerters and joins their errors.
type Multi []domain.Alerter

// Alert calls every alerter even if an earlier one fails.
func (m Multi) Alert(lang domain.Language) error {
	var errs []error
	for _, a := range m {
		if err := a.Alert(lang); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
