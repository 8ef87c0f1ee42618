package alert

import (
	"fmt"
	"io"
	"sync"

	"github.com/longhd1308/ClockApp/internal/domain"
	"github.com/longhd1308/ClockApp/internal/i18n"
)

// BellAlerter implements domain.Alerter by ringing the terminal bell and
// printing the localized "time's up" line.
// This is a secondary adapter.
type BellAlerter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBellAlerter creates a bell alerter writing to w.
func NewBellAlerter(w io.Writer) *BellAlerter {
	return &BellAlerter{w: w}
}

// Alert writes the bell and the message in lang.
func (b *BellAlerter) Alert(lang domain.Language) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := fmt.Fprintf(b.w, "\a\n%s\n", i18n.Text(lang, i18n.KeyTimesUp)); err != nil {
		return fmt.Errorf("write alert: %w", err)
	}
	return nil
}

// NoopAlerter implements domain.Alerter with no-op behavior.
// Useful for testing or headless servers.
type NoopAlerter struct{}

// NewNoopAlerter creates a new no-op alerter.
func NewNoopAlerter() domain.Alerter {
	return &NoopAlerter{}
}

// Alert does nothing and always succeeds.
func (n *NoopAlerter) Alert(domain.Language) error {
	return nil
}
