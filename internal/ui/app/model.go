package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	graphdto "weft/internal/modules/graph/dto"
	pagesdto "weft/internal/modules/pages/dto"
	sitedto "weft/internal/modules/site/dto"
	"weft/internal/ui/components"
	"weft/internal/ui/theme"
	graphview "weft/internal/ui/views/graph"
	pagesview "weft/internal/ui/views/pages"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type pagesPort interface {
	List(ctx context.Context) ([]pagesdto.PageOutput, error)
	Get(ctx context.Context, slug string) (pagesdto.PageDetailOutput, error)
	Reindex(ctx context.Context) error
}

type graphPort interface {
	Build(ctx context.Context) (graphdto.BuildOutput, error)
	Hubs(ctx context.Context, limit int) ([]graphdto.HubOutput, error)
	Relations(ctx context.Context, slug string) (graphdto.RelationsOutput, error)
	Breadcrumbs(ctx context.Context, slug string) ([]graphdto.CrumbOutput, error)
	Subgraph(ctx context.Context, root string, kinds []string, depth int) (graphdto.GraphOutput, error)
	Search(ctx context.Context, query string) ([]graphdto.NodeOutput, error)
}

type sitePort interface {
	Export(ctx context.Context) (sitedto.ExportOutput, error)
	Backlinks(ctx context.Context, slug string) ([]sitedto.BacklinkOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabPages tabID = iota
	tabGraph
	tabCount
)

var tabLabels = [tabCount]string{"Pages", "Graph"}

// ─── async messages ───────────────────────────────────────────────────────────

type reindexDoneMsg struct{ err error }

type rebuildDoneMsg struct {
	out graphdto.BuildOutput
	err error
}

type exportDoneMsg struct {
	out sitedto.ExportOutput
	err error
}

type backlinksMsg struct {
	slug  string
	links []sitedto.BacklinkOutput
	err   error
}

type searchDoneMsg struct {
	query string
	nodes []graphdto.NodeOutput
	err   error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Enter   key.Binding
	Rebuild key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "inspect")),
		Rebuild: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rebuild graph")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Rebuild},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global help
// overlay, and the command palette. All business logic is delegated to port
// interfaces; all rendering is delegated to sub-views.
type Model struct {
	vaultPath string

	// ports used at this orchestration level only
	pages pagesPort
	graph graphPort
	site  sitePort

	// sub-views (one per tab)
	pagesView pagesview.Model
	graphView graphview.Model

	// global UI state
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(vaultPath string, pages pagesPort, graph graphPort, site sitePort) Model {
	var pagesV pagesview.Model
	if pages != nil {
		pagesV = pagesview.New(pagesPortBridge{p: pages})
	} else {
		pagesV = pagesview.New(nil)
	}

	var graphV graphview.Model
	if graph != nil {
		graphV = graphview.New(graphPortBridge{p: graph})
	} else {
		graphV = graphview.New(nil)
	}

	return Model{
		vaultPath: vaultPath,
		pages:     pages,
		graph:     graph,
		site:      site,
		pagesView: pagesV,
		graphView: graphV,
		activeTab: tabPages,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.pagesView.Init(),
		m.graphView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case reindexDoneMsg:
		if msg.err != nil {
			m.status = "reindex failed: " + msg.err.Error()
		} else {
			m.status = "reindex complete"
			cmds = append(cmds, m.pagesView.Reload())
		}

	case rebuildDoneMsg:
		if msg.err != nil {
			m.status = "rebuild failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("graph rebuilt: %d pages, %d nodes, %d edges",
				msg.out.PageCount, msg.out.NodeCount, msg.out.EdgeCount)
			cmds = append(cmds, m.graphView.Reload())
		}

	case exportDoneMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("exported %d artifacts (build %s)",
				len(msg.out.Artifacts), msg.out.BuildID)
		}

	case backlinksMsg:
		if msg.err != nil {
			m.status = "backlinks: " + msg.err.Error()
		} else if len(msg.links) == 0 {
			m.status = "no backlinks to " + msg.slug
		} else {
			paths := make([]string, len(msg.links))
			for i, l := range msg.links {
				paths[i] = l.Path
			}
			m.status = fmt.Sprintf("%d backlinks to %s: %s",
				len(msg.links), msg.slug, strings.Join(paths, " "))
		}

	case searchDoneMsg:
		if msg.err != nil {
			m.status = "search: " + msg.err.Error()
		} else if len(msg.nodes) == 0 {
			m.status = "no matches for " + msg.query
		} else {
			slugs := make([]string, 0, len(msg.nodes))
			for _, n := range msg.nodes {
				slugs = append(slugs, n.ID)
				if len(slugs) == 5 {
					break
				}
			}
			m.status = fmt.Sprintf("%d matches: %s", len(msg.nodes), strings.Join(slugs, " "))
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "R":
			m.status = "rebuilding graph…"
			cmds = append(cmds, m.rebuildCmd())
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabPages:
		m.pagesView, tabCmd = m.pagesView.Update(msg)
	case tabGraph:
		m.graphView, tabCmd = m.graphView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabPages:
		return m.pagesView.View()
	case tabGraph:
		return m.graphView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "weft  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "pages:reindex":
		m.status = "reindexing…"
		return m, m.reindexCmd()

	case "graph:rebuild":
		m.status = "rebuilding graph…"
		return m, m.rebuildCmd()

	case "graph:subgraph":
		if len(parts) < 2 {
			m.status = "usage: graph:subgraph <root> [depth]"
			return m, nil
		}
		depth := 1
		if len(parts) >= 3 {
			if d, err := strconv.Atoi(parts[2]); err == nil {
				depth = d
			}
		}
		m.activeTab = tabGraph
		return m, m.graphView.LoadSubgraph(parts[1], nil, depth)

	case "graph:search":
		if len(parts) < 2 {
			m.status = "usage: graph:search <query>"
			return m, nil
		}
		query := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		return m, m.searchCmd(query)

	case "site:export":
		m.status = "exporting…"
		return m, m.exportCmd()

	case "site:backlinks":
		slug := ""
		if len(parts) >= 2 {
			slug = parts[1]
		} else if selected, ok := m.pagesView.SelectedSlug(); ok {
			slug = selected
		}
		if slug == "" {
			m.status = "usage: site:backlinks <slug>"
			return m, nil
		}
		return m, m.backlinksCmd(slug)

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabPages:
		return m.pagesView.Filtering()
	case tabGraph:
		return m.graphView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.pagesView, _ = m.pagesView.Update(sz)
	m.graphView, _ = m.graphView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) reindexCmd() tea.Cmd {
	return func() tea.Msg {
		if m.pages == nil {
			return reindexDoneMsg{err: fmt.Errorf("pages adapter not configured")}
		}
		return reindexDoneMsg{err: m.pages.Reindex(context.Background())}
	}
}

func (m Model) rebuildCmd() tea.Cmd {
	return func() tea.Msg {
		if m.graph == nil {
			return rebuildDoneMsg{err: fmt.Errorf("graph adapter not configured")}
		}
		out, err := m.graph.Build(context.Background())
		return rebuildDoneMsg{out: out, err: err}
	}
}

func (m Model) exportCmd() tea.Cmd {
	return func() tea.Msg {
		if m.site == nil {
			return exportDoneMsg{err: fmt.Errorf("site adapter not configured")}
		}
		out, err := m.site.Export(context.Background())
		return exportDoneMsg{out: out, err: err}
	}
}

func (m Model) backlinksCmd(slug string) tea.Cmd {
	return func() tea.Msg {
		if m.site == nil {
			return backlinksMsg{slug: slug, err: fmt.Errorf("site adapter not configured")}
		}
		links, err := m.site.Backlinks(context.Background(), slug)
		return backlinksMsg{slug: slug, links: links, err: err}
	}
}

func (m Model) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		nodes, err := m.graph.Search(context.Background(), query)
		return searchDoneMsg{query: query, nodes: nodes, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed by
// a specific sub-view, keeping view packages free of knowledge about the wider
// port surface.

type pagesPortBridge struct{ p pagesPort }

func (b pagesPortBridge) List(ctx context.Context) ([]pagesdto.PageOutput, error) {
	return b.p.List(ctx)
}
func (b pagesPortBridge) Get(ctx context.Context, slug string) (pagesdto.PageDetailOutput, error) {
	return b.p.Get(ctx, slug)
}

type graphPortBridge struct{ p graphPort }

func (b graphPortBridge) Hubs(ctx context.Context, limit int) ([]graphdto.HubOutput, error) {
	return b.p.Hubs(ctx, limit)
}
func (b graphPortBridge) Relations(ctx context.Context, slug string) (graphdto.RelationsOutput, error) {
	return b.p.Relations(ctx, slug)
}
func (b graphPortBridge) Breadcrumbs(ctx context.Context, slug string) ([]graphdto.CrumbOutput, error) {
	return b.p.Breadcrumbs(ctx, slug)
}
func (b graphPortBridge) Subgraph(ctx context.Context, root string, kinds []string, depth int) (graphdto.GraphOutput, error) {
	return b.p.Subgraph(ctx, root, kinds, depth)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
