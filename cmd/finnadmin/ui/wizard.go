package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"finnadmin/internal/types"
	"finnadmin/internal/validation"
	"finnadmin/internal/wizard"
)

// Tea messages for the async orchestrator calls.
type rehydratedMsg struct {
	values types.CombinedFormValues
	err    error
}

type stepDoneMsg struct{ err error }

type userDoneMsg struct{ err error }

type submitDoneMsg struct{ err error }

// statusNotifier collects orchestrator notifications so the model can
// show the latest one on its status line. Orchestrator calls run inside
// tea commands, hence the lock.
type statusNotifier struct {
	mu   sync.Mutex
	msg  string
	fail bool
}

func (n *statusNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msg, n.fail = msg, false
}

func (n *statusNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msg, n.fail = msg, true
}

func (n *statusNotifier) last() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.msg, n.fail
}

// WizardModel walks the user through the multi-step provisioning flow
// for one entity: primary details, related users, review and submit.
// All domain decisions live in the orchestrator; the model only renders
// state and forwards intents.
type WizardModel struct {
	orch   *wizard.Orchestrator
	rehyd  *wizard.Rehydrator
	notify *statusNotifier
	styles Styles

	kind   types.EntityKind
	editID string

	// Step 0: primary form
	rules     []validation.Rule
	inputs    []textinput.Model
	focused   int
	fieldErrs validation.Result

	// Step 1: users
	userCursor int
	dialog     *userDialog

	// Step 2: review
	review string

	spin      spinner.Model
	loading   bool // edit-mode rehydration in flight
	busy      bool // orchestrator call in flight
	status    string
	statusErr bool
	done      bool

	width  int
	height int
}

// NewWizard creates the wizard model. A non-empty editID opens the flow
// in edit mode and rehydrates the persisted entity first.
func NewWizard(kind types.EntityKind, gw wizard.Gateway, editID string, styles Styles) WizardModel {
	notify := &statusNotifier{}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Theme.Accent)

	m := WizardModel{
		orch:    wizard.New(kind, gw, notify),
		rehyd:   wizard.NewRehydrator(gw),
		notify:  notify,
		styles:  styles,
		kind:    kind,
		editID:  "",
		spin:    sp,
		loading: wizard.IsEditMode(editID),
		width:   80,
		height:  40,
	}
	if wizard.IsEditMode(editID) {
		m.editID = editID
	}
	m.buildPrimaryInputs()
	return m
}

// buildPrimaryInputs derives one text input per schema rule. The status
// field cycles its choices instead of accepting free text.
func (m *WizardModel) buildPrimaryInputs() {
	schema := m.orch.Schema()
	m.rules = schema.Rules
	m.inputs = make([]textinput.Model, len(schema.Rules))
	for i, rule := range schema.Rules {
		ti := textinput.New()
		ti.CharLimit = 128
		ti.Width = 40
		ti.PromptStyle = lipgloss.NewStyle().Foreground(m.styles.Theme.Accent)
		ti.Prompt = "> "
		switch {
		case rule.Kind == validation.OneOf:
			ti.Placeholder = strings.Join(rule.Choices, " | ")
		case rule.Required:
			ti.Placeholder = rule.Label + " (required)"
		default:
			ti.Placeholder = rule.Label
		}
		m.inputs[i] = ti
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	m.focused = 0
}

// formValues collects the current input values into the form shape.
func (m WizardModel) formValues() types.FormValues {
	values := types.FormValues{}
	for i, rule := range m.rules {
		values[rule.Field] = strings.TrimSpace(m.inputs[i].Value())
	}
	return values
}

// setFormValues pushes rehydrated defaults into the inputs.
func (m *WizardModel) setFormValues(values types.FormValues) {
	for i, rule := range m.rules {
		m.inputs[i].SetValue(values.Get(rule.Field))
	}
}

func (m WizardModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.loading {
		cmds = append(cmds, m.spin.Tick, m.rehydrate())
	}
	return tea.Batch(cmds...)
}

func (m WizardModel) rehydrate() tea.Cmd {
	rehyd, id := m.rehyd, m.editID
	return func() tea.Msg {
		values, err := rehyd.Load(context.Background(), id)
		return rehydratedMsg{values: values, err: err}
	}
}

func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width < 60 {
			m.width = 60
		}
		m.height = msg.Height
		return m, nil

	case rehydratedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = "Could not load the entity. It may have been removed."
			m.statusErr = true
			m.done = true
			return m, tea.Quit
		}
		m.orch.Session().Apply(wizard.AggregateReset{Values: msg.values})
		m.setFormValues(msg.values.Primary)
		return m, nil

	case stepDoneMsg:
		m.busy = false
		m.refreshStatus()
		if msg.err == nil && m.orch.Session().StepIndex() == wizard.StepReview {
			m.review = m.renderReview()
		}
		return m, nil

	case userDoneMsg:
		m.busy = false
		m.refreshStatus()
		if msg.err == nil {
			m.dialog = nil
		}
		return m, nil

	case submitDoneMsg:
		m.busy = false
		m.refreshStatus()
		if msg.err == nil {
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading || m.busy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.onPrimaryStep() && m.dialog == nil {
		return m.updateInputs(msg)
	}
	if m.dialog != nil {
		return m.updateDialogInputs(msg)
	}
	return m, nil
}

func (m *WizardModel) refreshStatus() {
	if msg, fail := m.notify.last(); msg != "" {
		m.status, m.statusErr = msg, fail
	}
}

func (m WizardModel) onPrimaryStep() bool {
	return m.orch.Session().StepIndex() == wizard.StepPrimary
}

func (m WizardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.loading || m.busy {
		return m, nil
	}
	if m.dialog != nil {
		return m.handleDialogKey(msg)
	}

	switch m.orch.Session().StepIndex() {
	case wizard.StepPrimary:
		return m.handlePrimaryKey(msg)
	case wizard.StepUsers:
		return m.handleUsersKey(key)
	default:
		return m.handleReviewKey(key)
	}
}

func (m WizardModel) handlePrimaryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "tab", "down":
		return m.focusInput(m.focused + 1), nil
	case "shift+tab", "up":
		return m.focusInput(m.focused - 1), nil
	case "enter":
		m.orch.UpdatePrimary(m.formValues())
		m.fieldErrs = m.orch.ValidatePrimary()
		if !m.fieldErrs.Valid() {
			m.status = "Please fix the highlighted fields."
			m.statusErr = true
			return m, nil
		}
		m.busy = true
		m.status = ""
		orch := m.orch
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			return stepDoneMsg{err: orch.NextStep(context.Background())}
		})
	}
	return m.updateInputs(msg)
}

func (m WizardModel) handleUsersKey(key string) (tea.Model, tea.Cmd) {
	users := m.orch.Session().Values().Users
	switch key {
	case "esc", "backspace":
		m.orch.PrevStep()
		return m, nil
	case "up", "k":
		if m.userCursor > 0 {
			m.userCursor--
		}
	case "down", "j":
		if m.userCursor < len(users)-1 {
			m.userCursor++
		}
	case "a":
		m.dialog = newUserDialog(m.kind, nil, m.styles)
		return m, textinput.Blink
	case "e":
		if m.userCursor < len(users) {
			u := users[m.userCursor]
			m.dialog = newUserDialog(m.kind, &u, m.styles)
			return m, textinput.Blink
		}
	case "enter":
		m.busy = true
		orch := m.orch
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			return stepDoneMsg{err: orch.NextStep(context.Background())}
		})
	}
	return m, nil
}

func (m WizardModel) handleReviewKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "backspace":
		m.orch.PrevStep()
		return m, nil
	case "enter":
		m.busy = true
		orch := m.orch
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			return submitDoneMsg{err: orch.Submit(context.Background())}
		})
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m WizardModel) focusInput(idx int) WizardModel {
	if len(m.inputs) == 0 {
		return m
	}
	m.inputs[m.focused].Blur()
	if idx < 0 {
		idx = len(m.inputs) - 1
	}
	m.focused = idx % len(m.inputs)
	m.inputs[m.focused].Focus()
	return m
}

func (m WizardModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

// Done reports whether the flow finished with a successful submission.
func (m WizardModel) Done() bool { return m.done }

// View renders the current step.
func (m WizardModel) View() string {
	s := m.styles
	var sections []string

	title := s.Title.Render(m.kind.Title())
	if m.editID != "" {
		title += " " + s.Badge.Render("EDIT")
	}
	sections = append(sections, "", "  "+title)

	progress := ProgressSteps{
		Labels:  wizard.StepLabels(m.kind),
		Current: m.orch.Session().StepIndex(),
	}
	sections = append(sections,
		"  "+progress.Render(s),
		"  "+s.RenderDivider(min(m.width-4, 76)),
		"")

	switch {
	case m.loading:
		sections = append(sections, "  "+m.spin.View()+s.Muted.Render(" Loading entity…"))
	case m.dialog != nil:
		sections = append(sections, m.dialog.view(s))
	case m.onPrimaryStep():
		sections = append(sections, m.viewPrimary())
	case m.orch.Session().StepIndex() == wizard.StepUsers:
		sections = append(sections, m.viewUsers())
	default:
		sections = append(sections, m.review)
	}

	if m.busy {
		sections = append(sections, "", "  "+m.spin.View()+s.Muted.Render(" Working…"))
	}
	if m.status != "" {
		line := s.Success.Render(m.status)
		if m.statusErr {
			line = s.Error.Render(m.status)
		}
		sections = append(sections, "", "  "+line)
	}

	sections = append(sections, "", "  "+s.RenderDivider(min(m.width-4, 76)), m.footer())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m WizardModel) viewPrimary() string {
	s := m.styles
	var sb strings.Builder
	for i, rule := range m.rules {
		label := rule.Label
		if rule.Required {
			label += " *"
		}
		styledLabel := s.FieldLabel.Render(label)
		if i == m.focused {
			styledLabel = s.FocusedField.Width(24).Render(label)
		}
		sb.WriteString("  " + styledLabel + m.inputs[i].View() + "\n")
		if msg, bad := m.fieldErrs[rule.Field]; bad {
			sb.WriteString("  " + s.FieldLabel.Render("") + s.FieldError.Render(msg) + "\n")
		}
	}
	return sb.String()
}

func (m WizardModel) viewUsers() string {
	s := m.styles
	users := m.orch.Session().Values().Users
	var sb strings.Builder

	if m.orch.Session().PrimaryID() == "" {
		sb.WriteString("  " + s.Warning.Render("Users will be kept locally until the entity is created.") + "\n\n")
	}
	if len(users) == 0 {
		sb.WriteString("  " + s.Muted.Render("No users yet. Press a to add one.") + "\n")
		return sb.String()
	}

	for i, u := range users {
		cursor := "  "
		if i == m.userCursor {
			cursor = s.FocusedField.Render("> ")
		}
		state := s.Muted.Render("local")
		if u.Persisted() {
			state = s.StepDone.Render("saved")
		}
		sb.WriteString(fmt.Sprintf("  %s%s  %s  %s  [%s]\n",
			cursor,
			s.Bold.Render(u.FullName),
			s.Body.Render(u.Email),
			s.Muted.Render(strings.Join(u.Roles, ", ")),
			state))
	}
	return sb.String()
}

// renderReview builds the final markdown summary and renders it with
// glamour in the theme's style.
func (m WizardModel) renderReview() string {
	values := m.orch.Session().Values()
	var md strings.Builder

	fmt.Fprintf(&md, "## %s\n\n", m.kind.Title())
	if values.PrimaryID != "" {
		fmt.Fprintf(&md, "**ID:** `%s`\n\n", values.PrimaryID)
	}
	for _, rule := range m.rules {
		if v := values.Primary.Get(rule.Field); v != "" {
			fmt.Fprintf(&md, "- **%s:** %s\n", rule.Label, v)
		}
	}
	if len(values.Users) > 0 {
		md.WriteString("\n### Users\n\n")
		for _, u := range values.Users {
			fmt.Fprintf(&md, "- %s <%s> (%s)\n", u.FullName, u.Email, strings.Join(u.Roles, ", "))
		}
	}
	md.WriteString("\nPress enter to submit.\n")

	style := "dark"
	if !m.styles.Theme.IsDark {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(min(m.width-4, 76)),
	)
	if err != nil {
		return md.String()
	}
	out, err := r.Render(md.String())
	if err != nil {
		return md.String()
	}
	return out
}

func (m WizardModel) footer() string {
	s := m.styles
	var hints []KeyHint
	switch {
	case m.dialog != nil:
		hints = []KeyHint{
			{"tab", "next field"}, {"space", "toggle role"},
			{"enter", "save"}, {"esc", "cancel"},
		}
	case m.onPrimaryStep():
		hints = []KeyHint{
			{"tab", "next field"}, {"enter", "continue"}, {"esc", "quit"},
		}
	case m.orch.Session().StepIndex() == wizard.StepUsers:
		hints = []KeyHint{
			{"a", "add user"}, {"e", "edit"}, {"enter", "continue"}, {"esc", "back"},
		}
	default:
		hints = []KeyHint{
			{"enter", "submit"}, {"esc", "back"}, {"q", "quit"},
		}
	}
	return "  " + RenderHints(s, hints)
}
