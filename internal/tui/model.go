// Package tui is the terminal front-end of the console: the same listing
// view-model as the web pages, driven by keys instead of links.
package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/maxviazov/installment-console/internal/dashboard"
	"github.com/maxviazov/installment-console/internal/listing"
	"github.com/maxviazov/installment-console/internal/repository"
	"github.com/maxviazov/installment-console/internal/service"
	"github.com/rs/zerolog"
)

const (
	msgLoadFailed    = "حدث خطأ أثناء تحميل قائمة العملاء"
	msgSummaryFailed = "حدث خطأ أثناء تحميل الملخص"
	msgBadPage       = "رقم صفحة غير صالح"
	msgNoSelection   = "لا يوجد عميل محدد"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeJump
	modeAmount
	modeConfirm
)

type entryKind int

const (
	entryDebt entryKind = iota
	entryPayment
)

// listingMsg is the answer to one listing fetch, tagged with its ticket.
type listingMsg struct {
	ticket listing.Ticket
	view   listing.View
	err    error
}

type summaryMsg struct {
	cards dashboard.Cards
	err   error
}

type noticeMsg struct {
	notice service.Notice
	err    error
}

// Options configures a Model.
type Options struct {
	PerPage int
	Timeout time.Duration
	Log     zerolog.Logger
}

// Model is the bubbletea model. It is copied on every Update; the tracker is
// shared so tickets stay monotonic across copies.
type Model struct {
	ctx     context.Context
	views   service.ViewService
	actions service.ActionService
	format  *dashboard.Formatter
	timeout time.Duration
	log     zerolog.Logger

	tracker *listing.Tracker
	state   listing.State
	view    listing.View
	loaded  bool
	cards   dashboard.Cards
	summary bool

	cursor  int
	mode    mode
	entry   entryKind
	input   textinput.Model
	status  *service.Notice
	loading bool
	width   int
}

// New builds the model; ctx bounds every backend call it makes.
func New(ctx context.Context, views service.ViewService, actions service.ActionService, f *dashboard.Formatter, opts Options) Model {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	ti := textinput.New()
	ti.CharLimit = 64
	return Model{
		ctx:     ctx,
		views:   views,
		actions: actions,
		format:  f,
		timeout: opts.Timeout,
		log:     opts.Log.With().Str("module", "tui").Logger(),
		tracker: &listing.Tracker{},
		state:   listing.NewState(opts.PerPage),
		input:   ti,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(m.state.Refresh()), m.fetchSummary())
}

// fetch issues a ticket now and runs the request in a command.
func (m *Model) fetch(p repository.Page) tea.Cmd {
	ticket := m.tracker.Begin()
	m.loading = true
	views, ctx, timeout := m.views, m.ctx, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		v, err := views.Listing(ctx, p)
		return listingMsg{ticket: ticket, view: v, err: err}
	}
}

func (m *Model) fetchSummary() tea.Cmd {
	views, ctx, timeout := m.views, m.ctx, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		cards, err := views.Dashboard(ctx)
		return summaryMsg{cards: cards, err: err}
	}
}

func (m *Model) run(action func(context.Context) (service.Notice, error)) tea.Cmd {
	ctx, timeout := m.ctx, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		n, err := action(ctx)
		return noticeMsg{notice: n, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case listingMsg:
		if !m.tracker.Latest(msg.ticket) {
			m.log.Debug().Uint64("ticket", uint64(msg.ticket)).Msg("stale listing dropped")
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			// keep showing what we had
			m.setStatus(service.Notice{Severity: service.SeverityError, Message: msgLoadFailed})
			m.log.Warn().Err(msg.err).Msg("listing failed")
			return m, nil
		}
		if m.tracker.Complete(msg.ticket, msg.view) {
			m.view, m.loaded = msg.view, true
			m.state = msg.view.State
			m.clampCursor()
		}

	case summaryMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("summary failed")
			if !m.summary {
				m.setStatus(service.Notice{Severity: service.SeverityError, Message: msgSummaryFailed})
			}
			return m, nil
		}
		m.cards, m.summary = msg.cards, true

	case noticeMsg:
		m.setStatus(msg.notice)
		if msg.notice.OK() {
			return m, tea.Batch(m.fetch(m.state.Refresh()), m.fetchSummary())
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) setStatus(n service.Notice) { m.status = &n }

func (m *Model) clampCursor() {
	if m.cursor >= len(m.view.Rows) {
		m.cursor = len(m.view.Rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (listing.CustomerRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Rows) {
		return listing.CustomerRow{}, false
	}
	return m.view.Rows[m.cursor], true
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch m.mode {
	case modeSearch, modeJump, modeAmount:
		return m.handleInputKey(msg)
	case modeConfirm:
		return m.handleConfirmKey(msg)
	}

	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.view.Rows)-1 {
			m.cursor++
		}
	case "left", "h":
		return m.goTo(m.state.Page - 1)
	case "right", "l":
		if m.loaded && m.state.Page >= m.view.Pages {
			return m, nil
		}
		return m.goTo(m.state.Page + 1)
	case "r":
		return m, tea.Batch(m.fetch(m.state.Refresh()), m.fetchSummary())
	case "/":
		m.openInput(modeSearch, "بحث: ", m.state.Search)
		return m, textinput.Blink
	case "d", "p":
		if _, ok := m.selected(); !ok {
			m.setStatus(service.Notice{Severity: service.SeverityError, Message: msgNoSelection})
			return m, nil
		}
		m.entry = entryDebt
		prompt := "مبلغ المديونية: "
		if key == "p" {
			m.entry = entryPayment
			prompt = "مبلغ الدفعة: "
		}
		m.openInput(modeAmount, prompt, "")
		return m, textinput.Blink
	case "x":
		if _, ok := m.selected(); ok {
			m.mode = modeConfirm
		}
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			m.openInput(modeJump, "صفحة: ", key)
			return m, textinput.Blink
		}
	}
	return m, nil
}

// goTo fetches page n; pages below 1 are ignored.
func (m Model) goTo(n int) (tea.Model, tea.Cmd) {
	p, ok := m.state.RequestPage(n)
	if !ok {
		return m, nil
	}
	return m, m.fetch(p)
}

func (m *Model) openInput(md mode, prompt, value string) {
	m.mode = md
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput()
		return m, nil
	case tea.KeyEnter:
		value := m.input.Value()
		md := m.mode
		m.closeInput()
		return m.submit(md, value)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit(md mode, value string) (tea.Model, tea.Cmd) {
	switch md {
	case modeSearch:
		m.cursor = 0
		return m, m.fetch(m.state.SearchFor(value))
	case modeJump:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 1 || (m.loaded && m.view.Pages > 0 && n > m.view.Pages) {
			m.setStatus(service.Notice{Severity: service.SeverityError, Message: msgBadPage})
			return m, nil
		}
		return m.goTo(n)
	case modeAmount:
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		form := service.EntryForm{Amount: value}
		actions := m.actions
		if m.entry == entryPayment {
			return m, m.run(func(ctx context.Context) (service.Notice, error) {
				return actions.PayInstallment(ctx, row.ID, form)
			})
		}
		return m, m.run(func(ctx context.Context) (service.Notice, error) {
			return actions.AddDebt(ctx, row.ID, form)
		})
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.mode = modeBrowse
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		actions := m.actions
		return m, m.run(func(ctx context.Context) (service.Notice, error) {
			return actions.DeleteCustomer(ctx, row.ID)
		})
	case "n", "esc":
		m.mode = modeBrowse
	}
	return m, nil
}
