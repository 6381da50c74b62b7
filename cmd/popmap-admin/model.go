package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/phanxgames/meridian/feed"
)

const fetchTimeout = 10 * time.Second

type view uint8

const (
	viewDashboard view = iota
	viewEvents
	viewBusinesses
)

// statusFilters is the cycle the "s" key walks through on the events view.
// The empty string means no filter.
var statusFilters = []string{"", feed.StatusApproved, feed.StatusPending, feed.StatusRejected}

type model struct {
	client *feed.Client

	view    view
	width   int
	height  int
	loading bool
	err     error

	events     []feed.Event
	businesses []feed.Business
	filterIdx  int

	spin spinner.Model
	lst  list.Model
	tbl  table.Model
}

// dataMsg carries one complete refresh.
type dataMsg struct {
	events     []feed.Event
	businesses []feed.Business
}

type errMsg struct{ err error }

func newModel(client *feed.Client) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	d := list.NewDefaultDelegate()
	l := list.New(nil, d, 0, 0)
	l.Title = "Events"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)

	t := table.New(
		table.WithFocused(true),
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 5},
			{Title: "Name", Width: 28},
			{Title: "Email", Width: 26},
			{Title: "Verified", Width: 8},
			{Title: "Created", Width: 12},
		}),
	)

	return model{
		client:  client,
		loading: true,
		spin:    sp,
		lst:     l,
		tbl:     t,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, fetchData(m.client))
}

// fetchData pulls the full event and business lists in one command.
func fetchData(client *feed.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		events, err := client.Events(ctx)
		if err != nil {
			return errMsg{err}
		}
		businesses, err := client.Businesses(ctx)
		if err != nil {
			return errMsg{err}
		}
		return dataMsg{events: events, businesses: businesses}
	}
}

// eventItem adapts a feed record to the bubbles list delegate.
type eventItem struct{ feed.Event }

func (i eventItem) Title() string { return i.Event.Title }

func (i eventItem) Description() string {
	return fmt.Sprintf("%s · %s · %s",
		i.BusinessName, i.Status, i.StartDatetime.Format("Jan 2 15:04"))
}

func (i eventItem) FilterValue() string { return i.Event.Title + " " + i.BusinessName }

// statusFilter returns the active status filter, empty for all.
func (m model) statusFilter() string { return statusFilters[m.filterIdx] }

// refreshList rebuilds the visible event items for the active status filter.
func (m *model) refreshList() {
	status := m.statusFilter()
	items := make([]list.Item, 0, len(m.events))
	for _, e := range m.events {
		if status != "" && e.Status != status {
			continue
		}
		items = append(items, eventItem{e})
	}
	m.lst.SetItems(items)
	if status == "" {
		m.lst.Title = "Events"
	} else {
		m.lst.Title = "Events · " + status
	}
}

// refreshTable rebuilds the business rows.
func (m *model) refreshTable() {
	rows := make([]table.Row, 0, len(m.businesses))
	for _, b := range m.businesses {
		verified := "no"
		if b.IsVerified {
			verified = "yes"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", b.ID),
			b.Name,
			b.ContactEmail,
			verified,
			b.CreatedAt.Format("2006-01-02"),
		})
	}
	m.tbl.SetRows(rows)
}

// counts summarizes the dashboard numbers.
type counts struct {
	total    int
	approved int
	pending  int
	rejected int
	active   int

	businesses int
	verified   int
}

func (m model) counts() counts {
	var c counts
	now := time.Now()
	c.total = len(m.events)
	for _, e := range m.events {
		switch e.Status {
		case feed.StatusApproved:
			c.approved++
		case feed.StatusPending:
			c.pending++
		case feed.StatusRejected:
			c.rejected++
		}
		if e.Active(now) {
			c.active++
		}
	}
	c.businesses = len(m.businesses)
	for _, b := range m.businesses {
		if b.IsVerified {
			c.verified++
		}
	}
	return c
}
