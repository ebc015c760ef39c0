package components

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// Editor wraps bubbles/textarea for composing replies.
type Editor struct {
	Model textarea.Model
}

// NewEditor creates a focused multi-line editor.
func NewEditor(placeholder string, width, height int) Editor {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.Prompt = "│ "
	ta.CharLimit = 4000
	ta.SetWidth(width)
	ta.SetHeight(height)
	ta.Focus()
	return Editor{Model: ta}
}

// Init returns the initial command.
func (e Editor) Init() tea.Cmd {
	return e.Model.Focus()
}

// Update handles messages.
func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
	var cmd tea.Cmd
	e.Model, cmd = e.Model.Update(msg)
	return e, cmd
}

// View renders the editor.
func (e Editor) View() string {
	return e.Model.View()
}

// Value returns the current text.
func (e Editor) Value() string {
	return e.Model.Value()
}

// SetValue replaces the text.
func (e *Editor) SetValue(s string) {
	e.Model.SetValue(s)
}

// Blank reports whether the editor holds only whitespace.
func (e Editor) Blank() bool {
	return strings.TrimSpace(e.Model.Value()) == ""
}

// Resize adapts the editor to the available space.
func (e *Editor) Resize(width, height int) {
	e.Model.SetWidth(max(10, width))
	e.Model.SetHeight(max(2, height))
}

// Focused reports whether the editor takes key input.
func (e Editor) Focused() bool {
	return e.Model.Focused()
}

// Focus gives the editor key input.
func (e *Editor) Focus() tea.Cmd {
	return e.Model.Focus()
}

// Blur releases key input.
func (e *Editor) Blur() {
	e.Model.Blur()
}
