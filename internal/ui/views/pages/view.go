package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	pagesdto "weft/internal/modules/pages/dto"
	"weft/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type PagesPort interface {
	List(ctx context.Context) ([]pagesdto.PageOutput, error)
	Get(ctx context.Context, slug string) (pagesdto.PageDetailOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type PagesLoadedMsg struct {
	Pages []pagesdto.PageOutput
	Err   error
}

type DetailLoadedMsg struct {
	Detail pagesdto.PageDetailOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type pageItem struct {
	page pagesdto.PageOutput
}

func (i pageItem) Title() string       { return i.page.Title }
func (i pageItem) Description() string { return i.page.Path }
func (i pageItem) FilterValue() string { return i.page.Title + " " + i.page.Slug }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    PagesPort
	list    list.Model
	detail  pagesdto.PageDetailOutput
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port PagesPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Pages"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadPagesCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case PagesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Pages — " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Pages))
		for i, p := range msg.Pages {
			items[i] = pageItem{page: p}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Pages) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Pages[0].Slug))
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Detail
			m.preview.SetContent(m.renderDetail())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(pageItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.page.Slug))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading pages…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedSlug returns the current selection's slug, if any.
func (m Model) SelectedSlug() (string, bool) {
	if item, ok := m.list.SelectedItem().(pageItem); ok {
		return item.page.Slug, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Reload refreshes the page list, e.g. after a reindex.
func (m Model) Reload() tea.Cmd {
	return m.loadPagesCmd()
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.Slug == "" {
		return theme.Muted.Render("Select a page to see details")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(d.Title) + "\n\n")
	sb.WriteString(theme.Muted.Render("slug:  ") + d.Slug + "\n")
	sb.WriteString(theme.Muted.Render("path:  ") + d.Path + "\n")
	if d.Description != "" {
		sb.WriteString(theme.Muted.Render("desc:  ") + d.Description + "\n")
	}
	relations := []struct {
		label   string
		targets []string
	}{
		{"ntpp", d.NTPP},
		{"tpp", d.TPP},
		{"po", d.PO},
		{"ec", d.EC},
		{"eq", d.EQ},
		{"dc", d.DC},
	}
	for _, rel := range relations {
		if len(rel.targets) > 0 {
			sb.WriteString(fmt.Sprintf("%s%s\n",
				theme.Muted.Render(fmt.Sprintf("%-7s", rel.label+":")),
				strings.Join(rel.targets, ", ")))
		}
	}
	if d.Next != "" {
		sb.WriteString(theme.Muted.Render("next:  ") + d.Next + "\n")
	}
	if d.Prev != "" {
		sb.WriteString(theme.Muted.Render("prev:  ") + d.Prev + "\n")
	}
	if body := strings.TrimSpace(d.Body); body != "" {
		sb.WriteString("\n" + body + "\n")
	}
	return sb.String()
}

func (m Model) loadPagesCmd() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return PagesLoadedMsg{}
		}
		pages, err := m.port.List(context.Background())
		return PagesLoadedMsg{Pages: pages, Err: err}
	}
}

func (m Model) loadDetailCmd(slug string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.Get(context.Background(), slug)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}
