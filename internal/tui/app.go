// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/erp-accounts/models"
)

// RootModel is the TUI router:
// 1) keeps the active page
// 2) handles the global quit and build info hotkeys
// 3) switches pages on NavigateTo, LoginResult and LogoutResult
// 4) delegates every other message to the active page
type RootModel struct {
	pages       map[string]tea.Model
	current     tea.Model
	currentName string

	buildInfo     models.BuildInfo
	serverVersion string
	showBuildInfo bool
}

// NewRootModel registers all pages and opens startPage.
func NewRootModel(pages map[string]tea.Model, startPage string, buildInfo models.BuildInfo, serverVersion string) RootModel {
	return RootModel{
		pages:         pages,
		current:       pages[startPage],
		currentName:   startPage,
		buildInfo:     buildInfo,
		serverVersion: serverVersion,
	}
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case k.String() == "ctrl+c":
			return r, tea.Quit
		case k.String() == "f1":
			r.showBuildInfo = !r.showBuildInfo
			return r, nil
		case r.showBuildInfo && k.String() == "esc":
			r.showBuildInfo = false
			return r, nil
		}

		if r.showBuildInfo {
			return r, nil
		}
	}

	switch m := msg.(type) {
	case NavigateTo:
		return r.navigate(m.Page, m.Payload)

	case LoginResult:
		if m.Err == nil {
			setSessionAdmin(m.Admin)
			return r.navigate(pageUsers, nil)
		}

	case LogoutResult:
		clearSessionAdmin()
		return r.navigate(pageLogin, resetLoginMsg{err: m.Err})
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	r.pages[r.currentName] = updated
	return r, cmd
}

func (r RootModel) navigate(page string, payload tea.Msg) (tea.Model, tea.Cmd) {
	next, exists := r.pages[page]
	if !exists {
		return r, nil
	}

	r.showBuildInfo = false
	r.current = next
	r.currentName = page

	if payload != nil {
		return r, func() tea.Msg { return payload }
	}
	return r, r.current.Init()
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo, r.serverVersion)
	}
	if r.current == nil {
		return renderPage("ERP ACCOUNTS", "", "")
	}
	return r.current.View()
}

// signedIn reports whether the program ended on an authenticated page.
func (r RootModel) signedIn() bool {
	return r.currentName == pageUsers
}
