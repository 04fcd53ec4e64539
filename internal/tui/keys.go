// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	prevPage key.Binding
	nextPage key.Binding
	sort     key.Binding
	order    key.Binding
	refresh  key.Binding
	enter    key.Binding
	esc      key.Binding
	tab      key.Binding
	backtab  key.Binding
	left     key.Binding
	right    key.Binding
	quit     key.Binding
	logout   key.Binding
	newUser  key.Binding
	disable  key.Binding
	enable   key.Binding
	delete   key.Binding
	copy     key.Binding
	yes      key.Binding
	no       key.Binding
}

var keys = keyMap{
	prevPage: key.NewBinding(key.WithKeys("left", "h")),
	nextPage: key.NewBinding(key.WithKeys("right", "l")),
	sort:     key.NewBinding(key.WithKeys("s")),
	order:    key.NewBinding(key.WithKeys("o")),
	refresh:  key.NewBinding(key.WithKeys("r")),
	enter:    key.NewBinding(key.WithKeys("enter")),
	esc:      key.NewBinding(key.WithKeys("esc")),
	tab:      key.NewBinding(key.WithKeys("tab", "down")),
	backtab:  key.NewBinding(key.WithKeys("shift+tab", "up")),
	left:     key.NewBinding(key.WithKeys("left")),
	right:    key.NewBinding(key.WithKeys("right")),
	quit:     key.NewBinding(key.WithKeys("q")),
	logout:   key.NewBinding(key.WithKeys("L")),
	newUser:  key.NewBinding(key.WithKeys("n")),
	disable:  key.NewBinding(key.WithKeys("d")),
	enable:   key.NewBinding(key.WithKeys("e")),
	delete:   key.NewBinding(key.WithKeys("x", "delete")),
	copy:     key.NewBinding(key.WithKeys("c")),
	yes:      key.NewBinding(key.WithKeys("y")),
	no:       key.NewBinding(key.WithKeys("n", "esc")),
}
