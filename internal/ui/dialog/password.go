package dialog

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Credentials is the value of an accepted PasswordDialog.
type Credentials struct {
	Username    string
	Password    string
	HasUsername bool
}

// PasswordDialog asks for a password and optionally a username.
type PasswordDialog struct {
	BaseFocusableDialog
	inputs      []textinput.Model
	hasUsername bool
}

// NewPasswordDialog creates a password dialog.
func NewPasswordDialog(title string, width, height int, withUsername bool) *PasswordDialog {
	var inputs []textinput.Model
	if withUsername {
		user := textinput.New()
		user.Prompt = "Username: "
		inputs = append(inputs, user)
	}
	pass := textinput.New()
	pass.Prompt = "Password: "
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	inputs = append(inputs, pass)

	d := &PasswordDialog{
		BaseFocusableDialog: NewBaseFocusableDialog(title, width, height, DialogKindPassword, len(inputs)+2),
		inputs:              inputs,
		hasUsername:         withUsername,
	}
	d.OnFocusChange(d.focusInput)
	d.SetFooterHints(HintsFromBindings(Keys.Next, Keys.Accept, Keys.Cancel)...)
	return d
}

func (d *PasswordDialog) focusInput(index int) tea.Cmd {
	var cmd tea.Cmd
	for i := range d.inputs {
		if i == index {
			cmd = d.inputs[i].Focus()
		} else {
			d.inputs[i].Blur()
		}
	}
	return cmd
}

// Init implements Dialog.
func (d *PasswordDialog) Init() tea.Cmd {
	return tea.Batch(d.focusInput(0), textinput.Blink)
}

// Update implements Dialog.
func (d *PasswordDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if i := d.FocusedIndex(); i < len(d.inputs) {
		var cmd tea.Cmd
		d.inputs[i], cmd = d.inputs[i].Update(msg)
		return d, cmd
	}
	return d, nil
}

// View implements Dialog.
func (d *PasswordDialog) View() string {
	width := d.ContentWidth()
	rows := make([]string, 0, len(d.inputs)+1)
	for i := range d.inputs {
		d.inputs[i].Width = width - lipgloss.Width(d.inputs[i].Prompt) - 1
		d.inputs[i].PromptStyle = lipgloss.NewStyle().Foreground(d.Style.ButtonColor)
		d.inputs[i].TextStyle = lipgloss.NewStyle().Foreground(d.Style.TextColor)
		rows = append(rows, d.inputs[i].View())
	}
	rows = append(rows, renderButtons(d.Style, width, d.okCancel(true), buttonFocus(d.FocusedIndex(), len(d.inputs))))
	return d.RenderBorder(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// HandleKey implements Dialog.
func (d *PasswordDialog) HandleKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	if result, cmd := d.HandleBaseFocusableKey(msg); result != DialogResultNone || key.Matches(msg, Keys.Next, Keys.Prev) {
		return result, cmd
	}

	i := d.FocusedIndex()
	if key.Matches(msg, Keys.Accept) {
		switch {
		case i == len(d.inputs)+1:
			return DialogResultCancel, nil
		case i < len(d.inputs)-1:
			// enter in the username field moves on to the password
			return DialogResultNone, d.FocusNext()
		}
		return DialogResultConfirm, nil
	}

	if i < len(d.inputs) {
		var cmd tea.Cmd
		d.inputs[i], cmd = d.inputs[i].Update(msg)
		return DialogResultNone, cmd
	}

	switch {
	case key.Matches(msg, Keys.Left):
		return DialogResultNone, d.SetFocusedIndex(len(d.inputs))
	case key.Matches(msg, Keys.Right):
		return DialogResultNone, d.SetFocusedIndex(len(d.inputs) + 1)
	}
	return DialogResultNone, nil
}

// DialogResultValue implements DialogResultProvider.
func (d *PasswordDialog) DialogResultValue() (interface{}, error) {
	creds := Credentials{
		Password:    d.inputs[len(d.inputs)-1].Value(),
		HasUsername: d.hasUsername,
	}
	if d.hasUsername {
		creds.Username = d.inputs[0].Value()
	}
	return creds, nil
}
