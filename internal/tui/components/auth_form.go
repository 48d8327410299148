package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/tui/styles"
)

// AuthMode selects between signing in and registering
type AuthMode int

const (
	ModeSignIn AuthMode = iota
	ModeRegister
)

// AuthSubmission is the filled-in form
type AuthSubmission struct {
	Mode     AuthMode
	Email    string
	Username string // register only
	Password string
}

const (
	fieldEmail = iota
	fieldUsername
	fieldPassword
	fieldCount
)

// AuthForm is the sign-in / register modal
type AuthForm struct {
	visible bool
	mode    AuthMode
	focus   int
	inputs  [fieldCount]textinput.Model
	err     string
	keys    FormKeyMap
}

// NewAuthForm creates a new sign-in form
func NewAuthForm() AuthForm {
	placeholders := [fieldCount]string{"email@example.com", "username", "password"}

	var inputs [fieldCount]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 128
		ti.Width = 32
		ti.Prompt = ""
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		inputs[i] = ti
	}
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'

	return AuthForm{inputs: inputs, keys: DefaultFormKeyMap()}
}

// Show opens the form in mode with empty fields
func (f *AuthForm) Show(mode AuthMode) {
	f.visible = true
	f.mode = mode
	f.err = ""
	f.Reset()
}

// Hide dismisses the form
func (f *AuthForm) Hide() {
	f.visible = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// Reset clears every field and focuses the first one
func (f *AuthForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.setFocus(fieldEmail)
}

// SetError shows a validation message under the fields
func (f *AuthForm) SetError(msg string) {
	f.err = msg
}

// IsVisible returns whether the form is shown
func (f AuthForm) IsVisible() bool {
	return f.visible
}

// Mode returns the current form mode
func (f AuthForm) Mode() AuthMode {
	return f.mode
}

// Update handles input events. Returns the submission when the user confirms.
func (f AuthForm) Update(msg tea.Msg) (AuthForm, tea.Cmd, *AuthSubmission) {
	if !f.visible {
		return f, nil, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, f.keys.Cancel):
			f.Hide()
			return f, nil, nil
		case key.Matches(keyMsg, f.keys.ToggleMode):
			if f.mode == ModeSignIn {
				f.mode = ModeRegister
			} else {
				f.mode = ModeSignIn
			}
			f.err = ""
			f.setFocus(fieldEmail)
			return f, nil, nil
		case key.Matches(keyMsg, f.keys.Next):
			f.setFocus(f.step(1))
			return f, nil, nil
		case key.Matches(keyMsg, f.keys.Prev):
			f.setFocus(f.step(-1))
			return f, nil, nil
		case key.Matches(keyMsg, f.keys.Submit):
			sub := &AuthSubmission{
				Mode:     f.mode,
				Email:    f.inputs[fieldEmail].Value(),
				Password: f.inputs[fieldPassword].Value(),
			}
			if f.mode == ModeRegister {
				sub.Username = f.inputs[fieldUsername].Value()
			}
			return f, nil, sub
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, nil
}

// step returns the next visible field index in direction dir
func (f AuthForm) step(dir int) int {
	next := f.focus
	for {
		next = (next + dir + fieldCount) % fieldCount
		if next != fieldUsername || f.mode == ModeRegister {
			return next
		}
	}
}

func (f *AuthForm) setFocus(field int) {
	f.focus = field
	for i := range f.inputs {
		if i == field {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// View renders the form
func (f AuthForm) View() string {
	if !f.visible {
		return ""
	}

	const width = 36

	title := "Sign in"
	toggle := "No account? ctrl+t to register"
	if f.mode == ModeRegister {
		title = "Create account"
		toggle = "Have an account? ctrl+t to sign in"
	}

	labels := [fieldCount]string{"Email", "Username", "Password"}
	rows := []string{styles.ModalTitleStyle.Render(title)}
	for i := range f.inputs {
		if i == fieldUsername && f.mode != ModeRegister {
			continue
		}
		box := styles.InputBlurredStyle
		if i == f.focus {
			box = styles.InputFocusedStyle
		}
		rows = append(rows,
			styles.SubtitleStyle.Render(labels[i]),
			box.Width(width).Render(f.inputs[i].View()),
		)
	}
	if f.err != "" {
		rows = append(rows, styles.ErrorStyle.Render(f.err))
	}
	rows = append(rows, "", styles.DimStyle.Render(toggle))

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
