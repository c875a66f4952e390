package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"finnadmin/internal/types"
	"finnadmin/internal/validation"
)

// roleChoice is one toggleable role in the dialog.
type roleChoice struct {
	role    string
	checked bool
}

// userDialog is the add/edit form for one related user. Focus cycles
// through the text inputs first, then the role checkboxes.
type userDialog struct {
	kind    types.EntityKind
	editing *types.RelatedUser // nil when adding

	rules   []validation.Rule
	inputs  []textinput.Model
	roles   []roleChoice
	focused int
	errs    validation.Result
}

func newUserDialog(kind types.EntityKind, editing *types.RelatedUser, styles Styles) *userDialog {
	schema := validation.ForUser(kind)

	// Status is derived, not typed in.
	rules := make([]validation.Rule, 0, len(schema.Rules))
	for _, r := range schema.Rules {
		if r.Field != validation.UserFieldStatus {
			rules = append(rules, r)
		}
	}

	d := &userDialog{kind: kind, editing: editing, rules: rules}
	d.inputs = make([]textinput.Model, len(rules))
	for i, rule := range rules {
		ti := textinput.New()
		ti.CharLimit = 128
		ti.Width = 36
		ti.Prompt = "> "
		ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.Theme.Accent)
		ti.Placeholder = rule.Label
		if rule.Required {
			ti.Placeholder = rule.Label + " (required)"
		}
		if rule.Field == validation.UserFieldPassword {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '*'
		}
		if editing != nil {
			ti.SetValue(dialogValue(*editing, rule.Field))
		}
		d.inputs[i] = ti
	}
	d.inputs[0].Focus()

	for _, role := range types.RolesFor(kind) {
		checked := editing != nil && hasRole(editing.Roles, role)
		d.roles = append(d.roles, roleChoice{role: role, checked: checked})
	}
	return d
}

func dialogValue(u types.RelatedUser, field string) string {
	switch field {
	case validation.UserFieldFullName:
		return u.FullName
	case validation.UserFieldEmail:
		return u.Email
	case validation.UserFieldPhone:
		return u.Phone
	case validation.UserFieldPosition:
		return u.Position
	case validation.UserFieldOrganization:
		return u.Organization
	}
	// Password is write-only and never pre-filled.
	return ""
}

func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// user assembles the dialog state into a domain user.
func (d *userDialog) user() types.RelatedUser {
	u := types.RelatedUser{}
	if d.editing != nil {
		u = *d.editing
	}
	for i, rule := range d.rules {
		v := strings.TrimSpace(d.inputs[i].Value())
		switch rule.Field {
		case validation.UserFieldFullName:
			u.FullName = v
		case validation.UserFieldEmail:
			u.Email = v
		case validation.UserFieldPassword:
			u.Password = v
		case validation.UserFieldPhone:
			u.Phone = v
		case validation.UserFieldPosition:
			u.Position = v
		case validation.UserFieldOrganization:
			u.Organization = v
		}
	}
	u.Roles = nil
	for _, rc := range d.roles {
		if rc.checked {
			u.Roles = append(u.Roles, rc.role)
		}
	}
	return u
}

// slots is the focus cycle length: inputs plus role checkboxes.
func (d *userDialog) slots() int { return len(d.inputs) + len(d.roles) }

func (d *userDialog) focus(idx int) {
	if d.focused < len(d.inputs) {
		d.inputs[d.focused].Blur()
	}
	if idx < 0 {
		idx = d.slots() - 1
	}
	d.focused = idx % d.slots()
	if d.focused < len(d.inputs) {
		d.inputs[d.focused].Focus()
	}
}

func (m WizardModel) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.dialog
	switch msg.String() {
	case "esc":
		m.dialog = nil
		return m, nil
	case "tab", "down":
		d.focus(d.focused + 1)
		return m, textinput.Blink
	case "shift+tab", "up":
		d.focus(d.focused - 1)
		return m, textinput.Blink
	case " ":
		if d.focused >= len(d.inputs) {
			rc := &d.roles[d.focused-len(d.inputs)]
			rc.checked = !rc.checked
			return m, nil
		}
	case "enter":
		user := d.user()
		d.errs = validation.ForUser(m.kind).Validate(map[string]string{
			validation.UserFieldFullName: user.FullName,
			validation.UserFieldEmail:    user.Email,
			validation.UserFieldPassword: user.Password,
			validation.UserFieldPhone:    user.Phone,
		})
		if !d.errs.Valid() {
			return m, nil
		}
		m.busy = true
		orch := m.orch
		if d.editing != nil {
			localID := d.editing.LocalID
			return m, tea.Batch(m.spin.Tick, func() tea.Msg {
				return userDoneMsg{err: orch.UpdateUser(context.Background(), localID, user)}
			})
		}
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			return userDoneMsg{err: orch.AddUser(context.Background(), user)}
		})
	}
	return m.updateDialogInputs(msg)
}

func (m WizardModel) updateDialogInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.dialog.inputs))
	for i := range m.dialog.inputs {
		m.dialog.inputs[i], cmds[i] = m.dialog.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (d *userDialog) view(s Styles) string {
	var sb strings.Builder

	title := "Add User"
	if d.editing != nil {
		title = "Edit User"
	}
	sb.WriteString("  " + s.Title.Render(title) + "\n")

	for i, rule := range d.rules {
		label := rule.Label
		if rule.Required {
			label += " *"
		}
		styledLabel := s.FieldLabel.Render(label)
		if i == d.focused {
			styledLabel = s.FocusedField.Width(24).Render(label)
		}
		sb.WriteString("  " + styledLabel + d.inputs[i].View() + "\n")
		if msg, bad := d.errs[rule.Field]; bad {
			sb.WriteString("  " + s.FieldLabel.Render("") + s.FieldError.Render(msg) + "\n")
		}
	}

	sb.WriteString("\n  " + s.Subtitle.Render("Roles") + "\n")
	for i, rc := range d.roles {
		box := "[ ]"
		if rc.checked {
			box = s.StepDone.Render("[x]")
		}
		line := box + " " + rc.role
		if d.focused == len(d.inputs)+i {
			line = s.FocusedField.Render(line)
		}
		sb.WriteString("    " + line + "\n")
	}
	return sb.String()
}
