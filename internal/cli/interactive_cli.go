// Package cli implements the interactive question sessions and their
// terminal rendering.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
)

// InteractiveCLI contains shared logic for interactive sessions.
type InteractiveCLI struct {
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
}

// NewInteractiveCLI creates the base CLI attached to the process terminal.
func NewInteractiveCLI() *InteractiveCLI {
	return &InteractiveCLI{
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}
}

var errEnd = errors.New("end")

//go:generate mockgen -source=interactive_cli.go -destination=../mocks/cli/mock_session.go -package=mock_cli Session

type Session interface {
	Session(context context.Context) error
}

// Run executes the session in a loop until it ends or an interrupt signal
// arrives.
func (cli *InteractiveCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// readAnswer prints the prompt and reads one trimmed, lowercased input line.
// An end of input is reported as errEnd.
func (cli *InteractiveCLI) readAnswer(prompt string) (string, error) {
	fmt.Fprint(cli.stdoutWriter, prompt)
	input, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(cli.stdoutWriter)
			return "", errEnd
		}
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(input)), nil
}
