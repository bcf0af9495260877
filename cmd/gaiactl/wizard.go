package main

import (
	"context"
	"fmt"
	"strings"

	"gaia/internal/domain/generation"
	"gaia/internal/registration"
	"gaia/internal/domain/validation"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type fieldSpec struct {
	label       string
	placeholder string
	secret      bool
	charLimit   int
}

var fieldSpecs = map[string]fieldSpec{
	registration.FieldFirstName:                   {label: "First name"},
	registration.FieldMiddleInitial:               {label: "Middle initial", placeholder: "optional", charLimit: 1},
	registration.FieldLastName:                    {label: "Last name"},
	registration.FieldGender:                      {label: "Gender", placeholder: "Male or Female"},
	registration.FieldBirthYear:                   {label: "Birth year", placeholder: "1990", charLimit: 4},
	registration.FieldBirthMonth:                  {label: "Birth month", placeholder: "optional, 1-12", charLimit: 2},
	registration.FieldBirthDay:                    {label: "Birth day", placeholder: "optional, 1-31", charLimit: 2},
	registration.FieldCitizenshipByBirth:          {label: "Citizenship by birth", placeholder: "optional"},
	registration.FieldBirthplaceProvinceState:     {label: "Birthplace province or state", placeholder: "optional"},
	registration.FieldBirthplaceCity:              {label: "Birthplace city", placeholder: "optional"},
	registration.FieldCitizenshipByNaturalization: {label: "Citizenship by naturalization", placeholder: "optional"},
	registration.FieldEducationLevel:              {label: "Education level", placeholder: "optional"},
	registration.FieldEmail:                       {label: "Email", placeholder: "you@example.com"},
	registration.FieldPassword:                    {label: "Password", secret: true},
	registration.FieldConfirmPassword:             {label: "Confirm password", secret: true},
}

// submittedMsg reports the end of a registration attempt.
type submittedMsg struct {
	err error
}

// wizardModel renders a registration.Workflow. The workflow owns all state except input focus.
type wizardModel struct {
	ctx context.Context
	wf  *registration.Workflow

	step   registration.Step
	fields []string
	inputs []textinput.Model
	focus  int

	busy     bool
	quitting bool
}

func newWizard(ctx context.Context, wf *registration.Workflow) wizardModel {
	m := wizardModel{ctx: ctx, wf: wf}
	m.sync()

	return m
}

func (m wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// sync rebuilds the inputs when the workflow has moved to another step.
func (m *wizardModel) sync() tea.Cmd {
	step := m.wf.State()
	if step == m.step {
		return nil
	}
	m.step = step
	m.fields = registration.StepFields[step]
	m.inputs = make([]textinput.Model, len(m.fields))

	form := m.wf.Form()
	for i, name := range m.fields {
		spec := fieldSpecs[name]
		in := textinput.New()
		in.Prompt = "> "
		in.Placeholder = spec.placeholder
		if spec.charLimit > 0 {
			in.CharLimit = spec.charLimit
		}
		if spec.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		in.SetValue(form.Value(name))
		m.inputs[i] = in
	}

	return m.setFocus(0)
}

func (m *wizardModel) setFocus(i int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	i = (i + len(m.inputs)) % len(m.inputs)
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.focus = i

	return m.inputs[i].Focus()
}

// focusFirstError moves the cursor to the first field on this step that failed validation.
func (m *wizardModel) focusFirstError() tea.Cmd {
	errs := m.wf.Errors()
	for i, name := range m.fields {
		if _, ok := errs[name]; ok {
			return m.setFocus(i)
		}
	}

	return nil
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		m.busy = false
		cmd := m.sync()

		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true

			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}

		switch step := m.wf.State(); {
		case step.IsFormStep():
			return m.updateForm(msg)
		case step == registration.StepLocationPrompt:
			return m.updatePrompt(msg)
		case step == registration.StepSuccess:
			if s := msg.String(); s == "enter" || s == "q" || s == "esc" {
				return m, tea.Quit
			}

			return m, nil
		}
	}

	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	return m, cmd
}

func (m wizardModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "tab", "down":
		cmd = m.setFocus(m.focus + 1)
	case "shift+tab", "up":
		cmd = m.setFocus(m.focus - 1)
	case "esc":
		m.wf.Back()
		cmd = m.sync()
	case "enter":
		if m.focus < len(m.inputs)-1 {
			cmd = m.setFocus(m.focus + 1)

			break
		}
		if m.wf.Next() {
			cmd = m.sync()
		} else {
			cmd = m.focusFirstError()
		}
	default:
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		_ = m.wf.Update(m.fields[m.focus], m.inputs[m.focus].Value())
	}

	return m, cmd
}

func (m wizardModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a", "enter":
		m.busy = true

		return m, m.submit(m.wf.Allow)
	case "s":
		m.busy = true

		return m, m.submit(m.wf.Skip)
	case "esc", "b":
		m.wf.Back()
		cmd := m.sync()

		return m, cmd
	}

	return m, nil
}

func (m wizardModel) submit(fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx

	return func() tea.Msg {
		return submittedMsg{err: fn(ctx)}
	}
}

func (m wizardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	step := m.wf.State()

	switch {
	case step.IsFormStep():
		m.viewForm(&b, step)
	case step == registration.StepLocationPrompt:
		b.WriteString(titleStyle.Render(step.Title()) + "\n\n")
		b.WriteString("Share your location to find Gaia members near you. You can skip this and add it later.\n\n")
		b.WriteString(helpStyle.Render("a allow · s skip · esc back · ctrl+c quit") + "\n")
	case step == registration.StepSubmitting:
		b.WriteString("Creating your account...\n")
	case step == registration.StepSuccess:
		name := ""
		if u := m.wf.User(); u != nil {
			name = ", " + u.FirstName
		}
		b.WriteString(okStyle.Render("Welcome to Gaia"+name+"!") + "\n\n")
		b.WriteString("Sign the Earth Charter with \"gaiactl charter sign\" to become a Planetarian.\n")
		b.WriteString(helpStyle.Render("enter to exit") + "\n")
	}

	return b.String()
}

func (m wizardModel) viewForm(b *strings.Builder, step registration.Step) {
	fmt.Fprintf(b, "%s  %s\n\n", titleStyle.Render(step.Title()),
		labelStyle.Render(fmt.Sprintf("step %d of 4 · %d%%", int(step), m.wf.Progress())))

	errs := m.wf.Errors()
	if msg := errs[registration.FieldMessage]; msg != "" {
		b.WriteString(errorStyle.Render(msg) + "\n\n")
	}

	for i, name := range m.fields {
		label := labelStyle.Render(fieldSpecs[name].label)
		if i == m.focus {
			label = focusedStyle.Render(fieldSpecs[name].label)
		}
		fmt.Fprintf(b, "%s\n%s\n", label, m.inputs[i].View())
		if e := errs[name]; e != "" {
			b.WriteString(errorStyle.Render(e) + "\n")
		}
	}

	switch step {
	case registration.StepBirthDate:
		if g := m.wf.Form().GenerationalIdentity; g != "" {
			fmt.Fprintf(b, "\n%s %s\n%s\n", labelStyle.Render("Generation:"), generation.DisplayName(g),
				helpStyle.Render(generation.Describe(g)))
		}
	case registration.StepAccountSetup:
		req := m.wf.PasswordRequirements()
		fmt.Fprintf(b, "\n%s %s\n", labelStyle.Render("Password strength:"), m.wf.PasswordStrength())
		fmt.Fprintf(b, "%s at least %d characters\n", check(req.Length), validation.MinPasswordLength)
		fmt.Fprintf(b, "%s an uppercase letter\n", check(req.Uppercase))
		fmt.Fprintf(b, "%s a lowercase letter\n", check(req.Lowercase))
		fmt.Fprintf(b, "%s a number\n", check(req.Number))
		fmt.Fprintf(b, "%s a special character\n", check(req.Special))
	}

	b.WriteString("\n" + helpStyle.Render("tab next field · enter continue · esc back · ctrl+c quit") + "\n")
}
