package main

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.lst.SetSize(msg.Width-4, msg.Height-6)
		m.tbl.SetWidth(msg.Width - 4)
		m.tbl.SetHeight(msg.Height - 8)
		return m, nil

	case dataMsg:
		m.loading = false
		m.err = nil
		m.events = msg.events
		m.businesses = msg.businesses
		m.refreshList()
		m.refreshTable()
		return m, nil

	case errMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// While the list filter prompt is open it owns the keyboard.
		if m.view == viewEvents && m.lst.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.lst, cmd = m.lst.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.view = viewDashboard
			return m, nil
		case "2":
			m.view = viewEvents
			return m, nil
		case "3":
			m.view = viewBusinesses
			return m, nil
		case "tab":
			m.view = (m.view + 1) % 3
			return m, nil
		case "r":
			m.loading = true
			m.err = nil
			return m, tea.Batch(m.spin.Tick, fetchData(m.client))
		case "s":
			if m.view == viewEvents {
				m.filterIdx = (m.filterIdx + 1) % len(statusFilters)
				m.refreshList()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.view {
	case viewEvents:
		m.lst, cmd = m.lst.Update(msg)
	case viewBusinesses:
		m.tbl, cmd = m.tbl.Update(msg)
	}
	return m, cmd
}
