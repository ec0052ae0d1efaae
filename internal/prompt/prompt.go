// Package prompt provides the interactive prompt primitives and the
// generic retry/validation engine built on top of them.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/starford/ansuz/internal/apperr"
)

// Prompter is the interactive collaborator: a single-line text prompt, a
// single-choice menu, and a channel for user-visible notices. Cancellation
// is reported as apperr.ErrCancelled; call sites decide whether that means
// fallback, default, or abort.
type Prompter interface {
	Text(message string) (string, error)
	Choice(message string, options, values []string) (string, error)
	Notice(message string)
}

// Terminal implements Prompter over line-oriented stdin/stdout.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal returns a Prompter bound to the process stdin/stdout.
func NewTerminal() *Terminal {
	return &Terminal{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

var _ Prompter = (*Terminal)(nil)

// Text prompts for one line of input. An empty line is a legitimate empty
// value; only EOF counts as cancellation.
func (t *Terminal) Text(message string) (string, error) {
	fmt.Fprintf(t.out, "%s\n> ", message)
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line == "" {
			return "", apperr.ErrCancelled
		}
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("prompt: read: %w", err)
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Choice presents a numbered menu and returns the value matching the
// selected option. A blank line or EOF cancels. Options and values must be
// the same length.
func (t *Terminal) Choice(message string, options, values []string) (string, error) {
	if len(options) != len(values) {
		return "", fmt.Errorf("prompt: %d options for %d values: %w",
			len(options), len(values), apperr.ErrConfiguration)
	}
	fmt.Fprintf(t.out, "%s\n", message)
	for i, opt := range options {
		fmt.Fprintf(t.out, "  [%d] %s\n", i+1, opt)
	}
	for {
		fmt.Fprint(t.out, "> ")
		line, err := t.in.ReadString('\n')
		if err != nil && line == "" {
			return "", apperr.ErrCancelled
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return "", apperr.ErrCancelled
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > len(options) {
			fmt.Fprintf(t.out, "enter a number between 1 and %d\n", len(options))
			if err != nil {
				return "", apperr.ErrCancelled
			}
			continue
		}
		return values[n-1], nil
	}
}

// Notice prints a user-visible warning or hint.
func (t *Terminal) Notice(message string) {
	fmt.Fprintf(t.out, "! %s\n", message)
}
