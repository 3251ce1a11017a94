package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	graphdto "weft/internal/modules/graph/dto"
	"weft/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type GraphPort interface {
	Hubs(ctx context.Context, limit int) ([]graphdto.HubOutput, error)
	Relations(ctx context.Context, slug string) (graphdto.RelationsOutput, error)
	Breadcrumbs(ctx context.Context, slug string) ([]graphdto.CrumbOutput, error)
	Subgraph(ctx context.Context, root string, kinds []string, depth int) (graphdto.GraphOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type HubsLoadedMsg struct {
	Hubs []graphdto.HubOutput
	Err  error
}

type RelationsLoadedMsg struct {
	Relations graphdto.RelationsOutput
	Crumbs    []graphdto.CrumbOutput
	Err       error
}

type SubgraphLoadedMsg struct {
	Root  string
	Graph graphdto.GraphOutput
	Err   error
}

// ─── list item ───────────────────────────────────────────────────────────────

type hubItem struct {
	hub graphdto.HubOutput
}

func (i hubItem) Title() string       { return i.hub.Slug }
func (i hubItem) Description() string { return fmt.Sprintf("%d connections", i.hub.Connections) }
func (i hubItem) FilterValue() string { return i.hub.Slug + " " + i.hub.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    GraphPort
	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port GraphPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Green).BorderForeground(theme.Green)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Green)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Graph"
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
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)

	return Model{
		port:    port,
		list:    l,
		detail:  vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadHubsCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case HubsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Graph — " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Hubs))
		for i, h := range msg.Hubs {
			items[i] = hubItem{hub: h}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case RelationsLoadedMsg:
		if msg.Err != nil {
			m.detail.SetContent(theme.Muted.Render("relations: " + msg.Err.Error()))
		} else {
			m.detail.SetContent(m.renderRelations(msg.Relations, msg.Crumbs))
		}

	case SubgraphLoadedMsg:
		if msg.Err != nil {
			m.detail.SetContent(theme.Muted.Render("subgraph: " + msg.Err.Error()))
		} else {
			m.detail.SetContent(m.renderSubgraph(msg.Root, msg.Graph))
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if msg.String() == "enter" {
			if item, ok := m.list.SelectedItem().(hubItem); ok {
				cmds = append(cmds, m.loadRelationsCmd(item.hub.Slug))
			}
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading graph…")
	}

	listW := m.width * 35 / 100
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
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys (e.g. "q") during
// a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Reload refreshes the hub list, e.g. after a rebuild.
func (m Model) Reload() tea.Cmd {
	return m.loadHubsCmd()
}

// LoadSubgraph asynchronously loads a bounded subgraph into the detail pane.
func (m Model) LoadSubgraph(root string, kinds []string, depth int) tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return SubgraphLoadedMsg{Root: root}
		}
		out, err := m.port.Subgraph(context.Background(), root, kinds, depth)
		return SubgraphLoadedMsg{Root: root, Graph: out, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 35 / 100
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderRelations(rel graphdto.RelationsOutput, crumbs []graphdto.CrumbOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Relations of: "+rel.Slug) + "\n")

	if len(crumbs) > 0 {
		parts := make([]string, len(crumbs))
		for i, c := range crumbs {
			parts[i] = c.Title
		}
		sb.WriteString(theme.Muted.Render(strings.Join(parts, " › ")) + "\n")
	}
	sb.WriteString("\n")

	groups := []struct {
		label   string
		targets []string
	}{
		{"ntpp", rel.NTPP},
		{"nttpi", rel.NTTPI},
		{"tpp", rel.TPP},
		{"tppi", rel.TPPI},
		{"po", rel.PO},
		{"ec", rel.EC},
		{"eq", rel.EQ},
		{"dc", rel.DC},
		{"r", rel.Refs},
		{"ri", rel.RefdBy},
	}
	empty := true
	for _, g := range groups {
		if len(g.targets) == 0 {
			continue
		}
		empty = false
		sb.WriteString(fmt.Sprintf(" %s  %s\n",
			theme.Hot.Render(fmt.Sprintf("%-6s", g.label)),
			strings.Join(g.targets, ", ")))
	}
	if rel.Next != "" {
		empty = false
		sb.WriteString(fmt.Sprintf(" %s  %s\n", theme.Hot.Render("next  "), rel.Next))
	}
	if rel.Prev != "" {
		empty = false
		sb.WriteString(fmt.Sprintf(" %s  %s\n", theme.Hot.Render("prev  "), rel.Prev))
	}
	if empty {
		sb.WriteString(theme.Muted.Render(" no relations\n"))
	}
	return sb.String()
}

func (m Model) renderSubgraph(root string, g graphdto.GraphOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Subgraph of: "+root) + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d nodes  %d edges\n\n", len(g.Nodes), len(g.Edges))))
	for _, n := range g.Nodes {
		sb.WriteString(fmt.Sprintf(" ◇ %s  %s\n",
			theme.Title.Render(n.Title),
			theme.Muted.Render(fmt.Sprintf("(%s, %d)", n.ID, n.Connections))))
	}
	if len(g.Edges) > 0 {
		sb.WriteString("\n")
	}
	for _, e := range g.Edges {
		sb.WriteString(fmt.Sprintf(" %s %s %s\n",
			e.Source,
			theme.Hot.Render("-["+e.Kind+"]-"),
			e.Target))
	}
	return sb.String()
}

func (m Model) loadHubsCmd() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return HubsLoadedMsg{}
		}
		hubs, err := m.port.Hubs(context.Background(), 200)
		return HubsLoadedMsg{Hubs: hubs, Err: err}
	}
}

func (m Model) loadRelationsCmd(slug string) tea.Cmd {
	return func() tea.Msg {
		rel, err := m.port.Relations(context.Background(), slug)
		if err != nil {
			return RelationsLoadedMsg{Err: err}
		}
		crumbs, err := m.port.Breadcrumbs(context.Background(), slug)
		if err != nil {
			return RelationsLoadedMsg{Relations: rel, Err: err}
		}
		return RelationsLoadedMsg{Relations: rel, Crumbs: crumbs}
	}
}
