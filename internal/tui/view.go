package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/maxviazov/installment-console/internal/dashboard"
	"github.com/maxviazov/installment-console/internal/listing"
	"github.com/maxviazov/installment-console/internal/service"
)

var (
	colorAccent = lipgloss.Color("#7D56F4")
	colorMuted  = lipgloss.Color("#6C7086")
	colorRed    = lipgloss.Color("#E06C75")
	colorGreen  = lipgloss.Color("#98C379")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	owedStyle     = lipgloss.NewStyle().Foreground(colorRed)
	settledStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	currentStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
)

// Strip renders the pagination descriptors as one line, e.g. "‹ 1 … 3 [4] 5 … 10 ›".
// Disabled arrows are dimmed rather than dropped so the strip does not jump.
func Strip(links []listing.Link, f *dashboard.Formatter) string {
	parts := make([]string, 0, len(links))
	for _, l := range links {
		var s string
		switch l.Kind {
		case listing.LinkPrev:
			s = "‹"
		case listing.LinkNext:
			s = "›"
		case listing.LinkEllipsis:
			s = "…"
		default:
			s = f.Int(l.Page)
			if l.Current {
				s = currentStyle.Render("[" + s + "]")
			}
		}
		if l.Disabled && l.Kind != listing.LinkEllipsis {
			s = mutedStyle.Render(s)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("نظام إدارة الأقساط"))
	if m.loading {
		b.WriteString(mutedStyle.Render("  …"))
	}
	b.WriteString("\n")
	if m.summary {
		b.WriteString(m.renderCards())
		b.WriteString("\n")
	}
	if m.state.Search != "" {
		b.WriteString(mutedStyle.Render("بحث: " + m.state.Search))
		b.WriteString("\n")
	}

	b.WriteString(m.renderTable())

	if m.loaded && !m.view.Empty {
		b.WriteString(fmt.Sprintf("عرض %s - %s من %s\n", m.format.Int(m.view.Start), m.format.Int(m.view.End), m.format.Int(m.view.Total)))
	}
	// an empty page (past the end) has no current link to show
	if m.loaded && !m.view.Empty {
		if strip := Strip(m.view.Window, m.format); strip != "" {
			b.WriteString(strip)
			b.WriteString("\n")
		}
	}

	switch m.mode {
	case modeSearch, modeJump, modeAmount:
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeConfirm:
		if row, ok := m.selected(); ok {
			b.WriteString(owedStyle.Render("حذف " + row.Name + "؟ (y/n)"))
			b.WriteString("\n")
		}
	}

	if m.status != nil {
		b.WriteString(renderNotice(*m.status))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("←/→ صفحات · أرقام+enter انتقال · / بحث · r تحديث · d مديونية · p دفعة · x حذف · q خروج"))
	return b.String()
}

func (m Model) renderCards() string {
	c := m.cards
	cur := m.format.Currency()
	cards := []string{
		cardStyle.Render("العملاء\n" + c.TotalCustomers),
		cardStyle.Render("المديونية\n" + c.TotalDebt + " " + cur),
		cardStyle.Render("المدفوع\n" + c.TotalPaid + " " + cur),
		cardStyle.Render("المتبقي\n" + c.TotalRemaining + " " + cur),
		cardStyle.Render("التحصيل\n" + c.CollectionRate),
		cardStyle.Render("المسددون\n" + c.PaidOff),
		cardStyle.Render("النشطون\n" + c.Active),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) renderTable() string {
	if !m.loaded {
		return mutedStyle.Render("جاري التحميل") + "\n"
	}
	if m.view.Empty {
		return mutedStyle.Render("لا يوجد عملاء") + "\n"
	}
	var b strings.Builder
	for i, r := range m.view.Rows {
		remaining := settledStyle.Render(m.format.Number(r.Remaining))
		if r.Outstanding {
			remaining = owedStyle.Render(m.format.Number(r.Remaining))
		}
		status := owedStyle.Render(r.StatusLabel)
		if r.PaidOff {
			status = settledStyle.Render(r.StatusLabel)
		}
		line := fmt.Sprintf("%4s  %-24s %-14s %12s %12s %s  %s",
			m.format.Int(r.Rank), r.Name, r.Phone,
			m.format.Number(r.TotalDebt), m.format.Number(r.TotalPaid), remaining, status)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func renderNotice(n service.Notice) string {
	if n.OK() {
		return settledStyle.Render("✓ " + n.Message)
	}
	return owedStyle.Render("✗ " + n.Message)
}
