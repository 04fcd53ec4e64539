// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/erp-accounts/models"
)

const (
	createFieldName = iota
	createFieldEmail
	createFieldRole
	createFieldCount
)

// createUserForm collects a new user's name, email and role. The role is
// picked with ←/→ from models.Roles.
type createUserForm struct {
	inputs  []textinput.Model
	roleIdx int
	focus   int
	saving  bool
	errMsg  string
}

func newCreateUserForm() *createUserForm {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 120
	name.Width = 40
	name.Focus()

	email := textinput.New()
	email.Placeholder = "user@example.com"
	email.CharLimit = 254
	email.Width = 40

	roleIdx := 0
	for i, r := range models.Roles {
		if r == models.RoleStaff {
			roleIdx = i
		}
	}

	return &createUserForm{inputs: []textinput.Model{name, email}, roleIdx: roleIdx}
}

func (f *createUserForm) form() models.CreateUserForm {
	return models.CreateUserForm{
		Name:  strings.TrimSpace(f.inputs[createFieldName].Value()),
		Email: strings.TrimSpace(f.inputs[createFieldEmail].Value()),
		Role:  string(models.Roles[f.roleIdx]),
	}
}

// update handles a key inside the form. submit is true when enter was
// pressed and the form should be sent.
func (f *createUserForm) update(msg tea.KeyMsg) (submit bool, cmd tea.Cmd) {
	switch {
	case key.Matches(msg, keys.tab):
		f.setFocus((f.focus + 1) % createFieldCount)
		return false, nil
	case key.Matches(msg, keys.backtab):
		f.setFocus((f.focus - 1 + createFieldCount) % createFieldCount)
		return false, nil
	case key.Matches(msg, keys.enter):
		return !f.saving, nil
	}

	if f.focus == createFieldRole {
		switch {
		case key.Matches(msg, keys.left):
			f.roleIdx = (f.roleIdx - 1 + len(models.Roles)) % len(models.Roles)
		case key.Matches(msg, keys.right):
			f.roleIdx = (f.roleIdx + 1) % len(models.Roles)
		}
		return false, nil
	}

	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return false, cmd
}

func (f *createUserForm) setFocus(i int) {
	if f.focus < len(f.inputs) {
		f.inputs[f.focus].Blur()
	}
	f.focus = i
	if f.focus < len(f.inputs) {
		f.inputs[f.focus].Focus()
	}
}

func (f *createUserForm) View() string {
	var b strings.Builder
	b.WriteString("Field  │ Value\n")
	b.WriteString("───────┼────────────────────────────────────────────\n")
	b.WriteString("Name   │ [")
	b.WriteString(f.inputs[createFieldName].View())
	b.WriteString("]\n")
	b.WriteString("Email  │ [")
	b.WriteString(f.inputs[createFieldEmail].View())
	b.WriteString("]\n")
	b.WriteString("Role   │ ")

	role := "◀ " + string(models.Roles[f.roleIdx]) + " ▶"
	if f.focus == createFieldRole {
		role = titleStyle.Render(role)
	}
	b.WriteString(role)
	b.WriteString("\n")

	if f.saving {
		b.WriteString("\n[Creating...]\n")
	} else {
		b.WriteString("\n[Create]\n")
	}
	b.WriteString(helpStyle.Render("A temporary password is emailed to the new user."))
	b.WriteString("\n")

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + f.errMsg))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
