// Package teatest drives a bubbletea model without a tea.Program. Each message
// goes straight to Update and every Cmd it returns is run to completion
// before the call returns, so a test sees the model after all follow-up
// messages have landed.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// maxDepth bounds Cmd chains that keep producing new Cmds.
	maxDepth = 100

	// defaultCmdTimeout drops Cmds that wait on a timer, such as the text
	// input cursor blink.
	defaultCmdTimeout = 10 * time.Millisecond
)

type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting records a tea.Quit. Models rarely handle tea.QuitMsg
	// themselves, so the driver watches for it and stops sending.
	Quitting bool

	cmdTimeout time.Duration
}

type Option func(*Driver)

// New wraps model. Init is not run until DrainInit.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, cmdTimeout: defaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize delivers a WindowSizeMsg first.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithCmdTimeout gives Cmds that query SQLite longer to answer. It must stay
// under the blink interval or blink Cmds will be run.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.cmdTimeout = timeout
	}
}

func (d *Driver) DrainInit() {
	d.T.Helper()
	d.run(d.Model.Init(), 0)
}

// Send is a no-op once the model has quit.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.run(cmd, 0)
}

func (d *Driver) press(key tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: key})
}

func (d *Driver) PressEnter()    { d.T.Helper(); d.press(tea.KeyEnter) }
func (d *Driver) PressEsc()      { d.T.Helper(); d.press(tea.KeyEsc) }
func (d *Driver) PressCtrlC()    { d.T.Helper(); d.press(tea.KeyCtrlC) }
func (d *Driver) PressCtrlR()    { d.T.Helper(); d.press(tea.KeyCtrlR) }
func (d *Driver) PressTab()      { d.T.Helper(); d.press(tea.KeyTab) }
func (d *Driver) PressShiftTab() { d.T.Helper(); d.press(tea.KeyShiftTab) }
func (d *Driver) PressDown()     { d.T.Helper(); d.press(tea.KeyDown) }

func (d *Driver) PressBackspace(n int) {
	d.T.Helper()
	for range n {
		d.press(tea.KeyBackspace)
	}
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.T.Logf("teatest: Cmd chain deeper than %d, stopping", maxDepth)
		return
	}

	msg := runWithTimeout(cmd, d.cmdTimeout)
	switch msg := msg.(type) {
	case nil:
	case tea.BatchMsg:
		for _, sub := range msg {
			d.run(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(msg)
	default:
		if isBlink(msg) {
			return
		}
		var next tea.Cmd
		d.Model, next = d.Model.Update(msg)
		d.run(next, depth+1)
	}
}

// runWithTimeout returns nil when cmd has not finished within timeout. The
// goroutine is left to finish on its own.
func runWithTimeout(cmd tea.Cmd, timeout time.Duration) tea.Msg {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(timeout):
		return nil
	}
}

// isBlink matches the cursor package's unexported blink messages by type name.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
