package controller

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	m "tagrade.dev/pkg/tagrade/internal/model"
)

// SimpleUI implements UI with line-oriented prompts on the cobra command's
// input and output streams.
type SimpleUI struct {
	cmd    *cobra.Command
	reader *bufio.Reader
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Menu prints the numbered options and reads a choice. End of input selects
// ExitOption.
func (s *SimpleUI) Menu(ctx context.Context, title string, options []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.printf("\n%s\n%s\n", title, strings.Repeat("-", len(title)))

	for i, option := range options {
		s.printf("  %d) %s\n", i+1, option)
	}

	s.printf("  %s) Exit\n", ExitOption)
	s.printf("Select an option: ")

	line, err := s.readLine(ctx)
	if errors.Is(err, io.EOF) {
		return ExitOption, nil
	}

	if err != nil {
		return "", err
	}

	return strings.ToLower(strings.TrimSpace(line)), nil
}

// Ask prints question and returns the trimmed answer.
func (s *SimpleUI) Ask(ctx context.Context, question string) (string, error) {
	s.printf("%s", question)

	line, err := s.readLine(ctx)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// Confirm repeats question until the answer is yes or no.
func (s *SimpleUI) Confirm(ctx context.Context, question string) (bool, error) {
	for {
		s.printf("%s (Yes/No): ", question)

		line, err := s.readLine(ctx)
		if err != nil {
			return false, err
		}

		if answer, ok := parseYesNo(line); ok {
			return answer, nil
		}
	}
}

// WaitForEnter prints message and consumes one line.
func (s *SimpleUI) WaitForEnter(ctx context.Context, message string) error {
	s.printf("%s", message)

	_, err := s.readLine(ctx)

	return err
}

// Printf writes formatted text to the command output.
func (s *SimpleUI) Printf(format string, args ...interface{}) {
	s.printf(format, args...)
}

// DisplayDiscrepancy reports a stated total that disagrees with the rubric sum.
func (s *SimpleUI) DisplayDiscrepancy(ctx context.Context, stated, computed int) {
	if ctx.Err() != nil {
		return
	}

	s.printf("\nThe score and sum do not match.\nGiven Score: %d\nComputed Score: %d\n", stated, computed)
}

// DisplayDiff prints a scoresheet diff.
func (s *SimpleUI) DisplayDiff(ctx context.Context, diff string) {
	if ctx.Err() != nil || diff == "" {
		return
	}

	s.printf("%s", diff)

	if !strings.HasSuffix(diff, "\n") {
		s.printf("\n")
	}
}

// DisplayError prints err without a stack trace.
func (s *SimpleUI) DisplayError(ctx context.Context, err error) {
	if ctx.Err() != nil || err == nil {
		return
	}

	s.printf("%v\n", err)
}

// DisplayStatus renders the status rows.
func (s *SimpleUI) DisplayStatus(ctx context.Context, rows []m.StatusRow, format StatusFormat) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return renderStatus(s.cmd.OutOrStdout(), rows, format)
}

func (s *SimpleUI) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if s.reader == nil {
		s.reader = bufio.NewReader(s.cmd.InOrStdin())
	}

	line, err := s.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}

		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

// parseYesNo accepts yes/no and their first letters, case-insensitively.
func parseYesNo(answer string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y":
		return true, true
	case "no", "n":
		return false, true
	}

	return false, false
}
