// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/erp-accounts/internal/app"
	"github.com/MKhiriev/erp-accounts/internal/service"
	"github.com/MKhiriev/erp-accounts/models"
)

const statusTTL = 3 * time.Second

type usersMode int

const (
	modeTable usersMode = iota
	modeConfirmDelete
	modeCreate
	modeError
)

// UsersModel is the users data table: one server page at a time, ←/→ to
// page, s to cycle the sort column, o to flip the order.
type UsersModel struct {
	ctx   context.Context
	users service.ClientUsersService
	auth  service.ClientAuthService

	table   table.Model
	spinner spinner.Model
	req     models.PageRequest
	page    models.UserPage
	loading bool

	mode    usersMode
	create  *createUserForm
	pending models.User
	status  string
	errMsg  string

	// copyToClipboard is clipboard.WriteAll outside tests.
	copyToClipboard func(string) error
}

func NewUsersModel(ctx context.Context, users service.ClientUsersService, auth service.ClientAuthService) *UsersModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	req := models.PageRequest{}.Normalize()
	t := table.New(
		table.WithColumns(usersColumns(req)),
		table.WithFocused(true),
		table.WithHeight(req.PageSize+1),
	)

	return &UsersModel{
		ctx:             ctx,
		users:           users,
		auth:            auth,
		table:           t,
		spinner:         s,
		req:             req,
		copyToClipboard: clipboard.WriteAll,
	}
}

func (m *UsersModel) Init() tea.Cmd {
	m.mode = modeTable
	m.status = ""
	m.errMsg = ""
	return m.reload()
}

func (m *UsersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, service.ErrUnauthenticated) {
				return m, func() tea.Msg { return LogoutResult{Err: msg.err} }
			}
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.page = msg.page
		if msg.page.Page > 0 {
			m.req.Page = msg.page.Page
		}
		m.table.SetRows(usersRows(msg.page.Users))
		if m.table.Cursor() >= len(msg.page.Users) {
			m.table.SetCursor(max(len(msg.page.Users)-1, 0))
		}
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.mode = modeError
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		return m, tea.Batch(m.setStatus(msg.message), m.reload())

	case createDoneMsg:
		if msg.err != nil {
			if m.create != nil {
				m.create.saving = false
				m.create.errMsg = humanizeError(msg.err)
			}
			return m, nil
		}
		m.mode = modeTable
		m.create = nil
		return m, tea.Batch(m.setStatus("User created. A temporary password was emailed to "+msg.email+"."), m.reload())

	case copiedMsg:
		if msg.err != nil {
			m.mode = modeError
			m.errMsg = "Copy failed: " + msg.err.Error()
			return m, nil
		}
		return m, m.setStatus("Copied " + msg.email)

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.mode {
		case modeCreate:
			return m.updateCreate(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		case modeError:
			if key.Matches(msg, keys.enter, keys.esc) {
				m.mode = modeTable
				m.errMsg = ""
			}
			return m, nil
		}
		return m.updateTable(msg)
	}

	return m, nil
}

func (m *UsersModel) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit

	case key.Matches(msg, keys.logout):
		return m, m.cmdLogout()

	case key.Matches(msg, keys.prevPage):
		if m.loading || m.req.Page <= 1 {
			return m, nil
		}
		m.req.Page--
		return m, m.reload()

	case key.Matches(msg, keys.nextPage):
		if m.loading || m.req.Page >= m.page.TotalPages {
			return m, nil
		}
		m.req.Page++
		return m, m.reload()

	case key.Matches(msg, keys.sort):
		m.req.Sort = nextSortField(m.req.Sort)
		m.req.Page = 1
		return m, m.reload()

	case key.Matches(msg, keys.order):
		if m.req.Order == models.OrderAsc {
			m.req.Order = models.OrderDesc
		} else {
			m.req.Order = models.OrderAsc
		}
		m.req.Page = 1
		return m, m.reload()

	case key.Matches(msg, keys.refresh):
		return m, m.reload()

	case key.Matches(msg, keys.newUser):
		m.mode = modeCreate
		m.create = newCreateUserForm()
		return m, nil

	case key.Matches(msg, keys.disable):
		if u, ok := m.selected(); ok {
			return m, m.cmdAction(app.MsgUserAccessRestrict, func(ctx context.Context) error { return m.users.Disable(ctx, u.UserID) })
		}
		return m, nil

	case key.Matches(msg, keys.enable):
		if u, ok := m.selected(); ok {
			return m, m.cmdAction(app.MsgUserAccessEnabled, func(ctx context.Context) error { return m.users.Enable(ctx, u.UserID) })
		}
		return m, nil

	case key.Matches(msg, keys.delete):
		if u, ok := m.selected(); ok {
			m.pending = u
			m.mode = modeConfirmDelete
		}
		return m, nil

	case key.Matches(msg, keys.copy):
		if u, ok := m.selected(); ok {
			return m, m.cmdCopy(u.Email)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *UsersModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.mode = modeTable
		u := m.pending
		m.pending = models.User{}
		return m, m.cmdAction(app.MsgUserDeleted, func(ctx context.Context) error { return m.users.Delete(ctx, u.UserID) })
	case key.Matches(msg, keys.no):
		m.mode = modeTable
		m.pending = models.User{}
	}
	return m, nil
}

func (m *UsersModel) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.esc) {
		m.mode = modeTable
		m.create = nil
		return m, nil
	}

	submit, cmd := m.create.update(msg)
	if !submit {
		return m, cmd
	}

	form := m.create.form()
	m.create.saving = true
	m.create.errMsg = ""

	ctx, users := m.ctx, m.users
	return m, func() tea.Msg {
		return createDoneMsg{email: form.Email, err: users.Create(ctx, form)}
	}
}

func (m *UsersModel) selected() (models.User, bool) {
	i := m.table.Cursor()
	if m.loading || i < 0 || i >= len(m.page.Users) {
		return models.User{}, false
	}
	return m.page.Users[i], true
}

func (m *UsersModel) reload() tea.Cmd {
	m.loading = true
	m.table.SetColumns(usersColumns(m.req))

	ctx, users, req := m.ctx, m.users, m.req
	load := func() tea.Msg {
		page, err := users.List(ctx, req)
		return usersLoadedMsg{page: page, err: err}
	}
	return tea.Batch(load, m.spinner.Tick)
}

func (m *UsersModel) cmdAction(success string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		if err := fn(ctx); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{message: success}
	}
}

func (m *UsersModel) cmdCopy(email string) tea.Cmd {
	write := m.copyToClipboard
	return func() tea.Msg {
		return copiedMsg{email: email, err: write(email)}
	}
}

func (m *UsersModel) cmdLogout() tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		if err := auth.Logout(ctx); err != nil && !errors.Is(err, service.ErrUnauthenticated) {
			return LogoutResult{Err: err}
		}
		return LogoutResult{}
	}
}

func (m *UsersModel) setStatus(s string) tea.Cmd {
	m.status = s
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *UsersModel) View() string {
	if m.mode == modeCreate && m.create != nil {
		return renderPage("NEW USER", m.create.View(), "tab: next field │ ←/→: role │ enter: create │ esc: cancel")
	}

	var b strings.Builder

	admin := "-"
	if me, ok := getSessionAdmin(); ok {
		admin = me.User.Email
	}
	fmt.Fprintf(&b, "Signed in as %s │ %d users │ page %d/%d │ sort %s %s",
		admin, m.page.Total, m.req.Page, max(m.page.TotalPages, 1), m.req.Sort, orderArrow(m.req.Order))
	if m.loading {
		b.WriteString("  ")
		b.WriteString(m.spinner.View())
	}
	b.WriteString("\n\n")

	if !m.loading && len(m.page.Users) == 0 {
		b.WriteString("No users\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	switch m.mode {
	case modeConfirmDelete:
		b.WriteString("\n")
		b.WriteString(confirmModel{message: m.pending.Email}.View())
		b.WriteString("\n")
	case modeError:
		b.WriteString("\n")
		b.WriteString(errorOverlayModel{message: m.errMsg}.View())
		b.WriteString("\n")
	default:
		if m.status != "" {
			b.WriteString("\n")
			b.WriteString(statusStyle.Render(m.status))
			b.WriteString("\n")
		}
		if m.errMsg != "" {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render("Error: " + m.errMsg))
			b.WriteString("\n")
		}
	}

	return renderPage("USERS", strings.TrimRight(b.String(), "\n"),
		"←/→ page │ s sort │ o order │ r refresh │ n new │ d disable │ e enable │ x delete │ c copy email │ L logout │ q quit")
}

func nextSortField(current models.SortField) models.SortField {
	for i, f := range models.SortFields {
		if f == current {
			return models.SortFields[(i+1)%len(models.SortFields)]
		}
	}
	return models.SortFields[0]
}

func orderArrow(order string) string {
	if order == models.OrderAsc {
		return "▲"
	}
	return "▼"
}

var columnTitles = map[models.SortField]string{
	models.SortByName:      "Name",
	models.SortByEmail:     "Email",
	models.SortByRole:      "Role",
	models.SortByCreatedAt: "Created",
	models.SortByLastLogin: "Last login",
}

// usersColumns marks the sorted column with the order arrow.
func usersColumns(req models.PageRequest) []table.Column {
	title := func(f models.SortField) string {
		if req.Sort == f {
			return columnTitles[f] + " " + orderArrow(req.Order)
		}
		return columnTitles[f]
	}

	return []table.Column{
		{Title: title(models.SortByName), Width: 22},
		{Title: title(models.SortByEmail), Width: 30},
		{Title: title(models.SortByRole), Width: 10},
		{Title: "Status", Width: 9},
		{Title: title(models.SortByCreatedAt), Width: 17},
		{Title: title(models.SortByLastLogin), Width: 17},
	}
}

func usersRows(users []models.User) []table.Row {
	rows := make([]table.Row, 0, len(users))
	for _, u := range users {
		status := "active"
		if u.IsDisabled {
			status = "disabled"
		}
		created := u.CreatedAt
		rows = append(rows, table.Row{
			fitText(u.Name, 22),
			fitText(u.Email, 30),
			string(u.Role),
			status,
			formatTime(&created),
			formatTime(u.LastLogin),
		})
	}
	return rows
}
