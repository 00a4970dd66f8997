// Package events carries build progress from the build steps to whoever is
// watching: a terminal, a metrics file, or nothing at all.
package events

import (
	"fmt"
	"io"
)

type Observer interface {
	StepStarted(step string)
	// Command reports a finished tool invocation by its command line.
	Command(step, cmdline string)
	Note(step, msg string)
	// StepFinished is called once per StepStarted; err is nil on success.
	StepFinished(step string, err error)
}

type nop struct{}

func (nop) StepStarted(string) {}
func (nop) Command(string, string) {}
func (nop) Note(string, string) {}
func (nop) StepFinished(string, error) {}

// Nop discards every event.
var Nop Observer = nop{}

// Console writes one line per event.
type Console struct {
	w       io.Writer
	Verbose bool
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) StepStarted(step string) {
	if c.Verbose {
		fmt.Fprintf(c.w, "[%s] started\n", step)
	}
}

func (c *Console) Command(step, cmdline string) {
	fmt.Fprintln(c.w, cmdline)
}

func (c *Console) Note(step, msg string) {
	fmt.Fprintln(c.w, msg)
}

func (c *Console) StepFinished(step string, err error) {
	if err != nil {
		fmt.Fprintf(c.w, "[%s] failed: %v\n", step, err)
		return
	}
	if c.Verbose {
		fmt.Fprintf(c.w, "[%s] done\n", step)
	}
}

type multi []Observer

// Multi fans every event out to all observers in order.
func Multi(obs ...Observer) Observer {
	return multi(obs)
}

func (m multi) StepStarted(step string) {
	for _, o := range m {
		o.StepStarted(step)
	}
}

func (m multi) Command(step, cmdline string) {
	for _, o := range m {
		o.Command(step, cmdline)
	}
}

func (m multi) Note(step, msg string) {
	for _, o := range m {
		o.Note(step, msg)
	}
}

func (m multi) StepFinished(step string, err error) {
	for _, o := range m {
		o.StepFinished(step, err)
	}
}
