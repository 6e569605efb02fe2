package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/doniai/doniai-cli/internal/validate"
)

// formField is one labelled text input in a form.
type formField struct {
	key   string
	label string
	input textinput.Model
}

func newFormField(key, label, placeholder string, secret bool) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.CharLimit = 200
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return formField{key: key, label: label, input: in}
}

// form is an ordered set of fields with one focused.
type form struct {
	fields []formField
	focus  int
}

func (f *form) value(key string) string {
	for _, fl := range f.fields {
		if fl.key == key {
			return fl.input.Value()
		}
	}
	return ""
}

func (f *form) setValue(key, v string) {
	for i := range f.fields {
		if f.fields[i].key == key {
			f.fields[i].input.SetValue(v)
		}
	}
}

func (f *form) reset() {
	for i := range f.fields {
		f.fields[i].input.Reset()
	}
}

// setFocus focuses field i. Indexes past the fields leave every input
// blurred so the caller can place focus on its own controls.
func (f *form) setFocus(i int) tea.Cmd {
	f.focus = i
	var cmd tea.Cmd
	for j := range f.fields {
		if j == i {
			cmd = f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
	return cmd
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if f.focus < 0 || f.focus >= len(f.fields) {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) view(errs validate.Errors) string {
	labelWidth := 0
	for _, fl := range f.fields {
		if w := len([]rune(fl.label)); w > labelWidth {
			labelWidth = w
		}
	}
	labelWidth += 2

	rows := make([]string, 0, len(f.fields))
	for i, fl := range f.fields {
		style := MetaKeyStyle
		marker := "  "
		if i == f.focus {
			style = SelectedStyle
			marker = "> "
		}
		row := SelectedStyle.Render(marker) + style.Render(padRightText(fl.label, labelWidth)) + fl.input.View()
		if msg := errs.Get(fl.key); msg != "" {
			row += "\n" + strings.Repeat(" ", labelWidth+2) + ErrorStyle.Render(msg)
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

func renderCheckbox(label string, checked, focused bool) string {
	box := "[ ]"
	if checked {
		box = "[x]"
	}
	if focused {
		return SelectedStyle.Render("> " + box + " " + label)
	}
	return NormalStyle.Render("  " + box + " " + label)
}

// strengthMeter draws the 0..5 password strength as a bar.
func strengthMeter(password string) string {
	if password == "" {
		return ""
	}
	score := validate.PasswordStrength(password)
	bar := strings.Repeat("■", score) + strings.Repeat("□", 5-score)
	label := validate.StrengthLabel(score)
	style := ErrorStyle
	switch label {
	case "medium":
		style = WarningStyle
	case "strong":
		style = SuccessStyle
	}
	return style.Render(bar + " " + label)
}

func noticeLine(text string, isErr bool) string {
	if text == "" {
		return ""
	}
	if isErr {
		return ErrorStyle.Render(text)
	}
	return SuccessStyle.Render(text)
}
