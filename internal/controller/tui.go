package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	m "tagrade.dev/pkg/tagrade/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea programs for each prompt.
type TUI struct {
	cmd *cobra.Command
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{cmd: cmd}
}

// Menu runs an arrow-key menu. Esc, Ctrl+C, q and x select ExitOption.
func (t *TUI) Menu(ctx context.Context, title string, options []string) (string, error) {
	final, err := t.run(ctx, newMenuModel(title, options))
	if err != nil {
		return "", err
	}

	model, ok := final.(menuModel)
	if !ok || model.choice == "" {
		return ExitOption, nil
	}

	return model.choice, nil
}

// Ask reads free text through a text input.
func (t *TUI) Ask(ctx context.Context, question string) (string, error) {
	final, err := t.run(ctx, newInputModel(question))
	if err != nil {
		return "", err
	}

	model, ok := final.(inputModel)
	if !ok || model.aborted {
		return "", ErrPromptAborted
	}

	return strings.TrimSpace(model.input.Value()), nil
}

// Confirm waits for y or n.
func (t *TUI) Confirm(ctx context.Context, question string) (bool, error) {
	final, err := t.run(ctx, confirmModel{question: question})
	if err != nil {
		return false, err
	}

	model, ok := final.(confirmModel)
	if !ok || model.aborted {
		return false, ErrPromptAborted
	}

	return model.value, nil
}

// WaitForEnter blocks until enter is pressed.
func (t *TUI) WaitForEnter(ctx context.Context, message string) error {
	final, err := t.run(ctx, enterModel{message: message})
	if err != nil {
		return err
	}

	if model, ok := final.(enterModel); !ok || model.aborted {
		return ErrPromptAborted
	}

	return nil
}

// Printf writes formatted text to the command output.
func (t *TUI) Printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(t.cmd.OutOrStdout(), format, args...)
}

// DisplayDiscrepancy highlights a stated total that disagrees with the rubric sum.
func (t *TUI) DisplayDiscrepancy(ctx context.Context, stated, computed int) {
	if ctx.Err() != nil {
		return
	}

	t.Printf("\n%s\n  Given Score:    %d\n  Computed Score: %d\n",
		warnStyle.Render("The score and sum do not match."), stated, computed)
}

// DisplayDiff prints a scoresheet diff with added and removed lines colored.
func (t *TUI) DisplayDiff(ctx context.Context, diff string) {
	if ctx.Err() != nil || diff == "" {
		return
	}

	t.Printf("%s\n", colorizeDiff(diff))
}

// DisplayError prints err in red.
func (t *TUI) DisplayError(ctx context.Context, err error) {
	if ctx.Err() != nil || err == nil {
		return
	}

	t.Printf("%s\n", errorStyle.Render(err.Error()))
}

// DisplayStatus renders the status rows.
func (t *TUI) DisplayStatus(ctx context.Context, rows []m.StatusRow, format StatusFormat) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return renderStatus(t.cmd.OutOrStdout(), rows, format)
}

func (t *TUI) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.cmd.InOrStdin()),
		tea.WithOutput(t.cmd.OutOrStdout()),
	)

	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		return nil, fmt.Errorf("run prompt: %w", err)
	}

	return final, nil
}

func colorizeDiff(diff string) string {
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			lines[i] = faintStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addedStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removedStyle.Render(line)
		}
	}

	return strings.Join(lines, "\n")
}

// menuModel is a vertical option list with a trailing exit entry.
type menuModel struct {
	title   string
	options []string
	cursor  int
	choice  string
}

func newMenuModel(title string, options []string) menuModel {
	return menuModel{title: title, options: options}
}

func (mm menuModel) Init() tea.Cmd {
	return nil
}

func (mm menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return mm, nil
	}

	//nolint:exhaustive // Only navigation keys are relevant here.
	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		mm.choice = ExitOption
		return mm, tea.Quit
	case tea.KeyEnter:
		mm.choice = mm.keyAt(mm.cursor)
		return mm, tea.Quit
	}

	switch key := keyMsg.String(); key {
	case "q", ExitOption:
		mm.choice = ExitOption
		return mm, tea.Quit
	case "up", "k":
		if mm.cursor > 0 {
			mm.cursor--
		}
	case "down", "j":
		if mm.cursor < len(mm.options) {
			mm.cursor++
		}
	default:
		for i := range mm.options {
			if key == mm.keyAt(i) {
				mm.choice = key
				return mm, tea.Quit
			}
		}
	}

	return mm, nil
}

// keyAt maps a row index to its menu key; the row after the options is exit.
func (mm menuModel) keyAt(index int) string {
	if index >= len(mm.options) {
		return ExitOption
	}

	return fmt.Sprintf("%d", index+1)
}

func (mm menuModel) View() string {
	if mm.choice != "" {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(mm.title))
	b.WriteString("\n\n")

	rows := append(append([]string{}, mm.options...), "Exit")
	for i, row := range rows {
		line := fmt.Sprintf("%s) %s", mm.keyAt(i), row)
		if i == mm.cursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}

		b.WriteString("\n")
	}

	b.WriteString(faintStyle.Render("\n↑/↓ to move, enter to select, x to exit"))
	b.WriteString("\n")

	return b.String()
}

// confirmModel waits for a y/n keypress.
type confirmModel struct {
	question string
	answered bool
	value    bool
	aborted  bool
}

func (cm confirmModel) Init() tea.Cmd {
	return nil
}

func (cm confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return cm, nil
	}

	if keyMsg.Type == tea.KeyCtrlC || keyMsg.Type == tea.KeyEsc {
		cm.aborted = true
		return cm, tea.Quit
	}

	if answer, ok := parseYesNo(keyMsg.String()); ok {
		cm.answered = true
		cm.value = answer

		return cm, tea.Quit
	}

	return cm, nil
}

func (cm confirmModel) View() string {
	if cm.answered {
		return fmt.Sprintf("%s %s\n", cm.question, yesNo(cm.value))
	}

	if cm.aborted {
		return ""
	}

	return fmt.Sprintf("%s %s", cm.question, faintStyle.Render("[y/n]"))
}

// enterModel waits for the enter key.
type enterModel struct {
	message string
	done    bool
	aborted bool
}

func (em enterModel) Init() tea.Cmd {
	return nil
}

func (em enterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return em, nil
	}

	//nolint:exhaustive // Any other key is ignored.
	switch keyMsg.Type {
	case tea.KeyEnter:
		em.done = true
		return em, tea.Quit
	case tea.KeyCtrlC, tea.KeyEsc:
		em.aborted = true
		return em, tea.Quit
	}

	return em, nil
}

func (em enterModel) View() string {
	if em.done || em.aborted {
		return em.message + "\n"
	}

	return em.message
}

// inputModel wraps a text input for a single answer.
type inputModel struct {
	input   textinput.Model
	done    bool
	aborted bool
}

func newInputModel(question string) inputModel {
	input := textinput.New()
	input.Prompt = question
	input.Focus()

	return inputModel{input: input}
}

func (im inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (im inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // Remaining keys are handled by the text input.
		switch keyMsg.Type {
		case tea.KeyEnter:
			im.done = true
			return im, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			im.aborted = true
			return im, tea.Quit
		}
	}

	var cmd tea.Cmd
	im.input, cmd = im.input.Update(msg)

	return im, cmd
}

func (im inputModel) View() string {
	if im.done {
		return im.input.Prompt + im.input.Value() + "\n"
	}

	if im.aborted {
		return ""
	}

	return im.input.View()
}
