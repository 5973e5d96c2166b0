package browsecmder

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/papercomputeco/trellis/pkg/rdf"
	"github.com/papercomputeco/trellis/pkg/store"
)

func init() {
	// Force TrueColor profile to fix lipgloss color detection issue
	// See: https://github.com/charmbracelet/lipgloss/issues/439
	renderer := lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.TrueColor))
	renderer.SetColorProfile(termenv.TrueColor)
	lipgloss.SetDefaultRenderer(renderer)
}

type browseView int

const (
	viewGraphs browseView = iota
	viewQuads
)

type browseModel struct {
	manager    *store.Manager
	graphs     []graphRow
	quads      []store.Quad
	current    graphRow
	view       browseView
	cursor     int
	quadCursor int
	width      int
	height     int
	loadErr    error
	keys       browseKeyMap
	help       help.Model
}

// graphRow is one entry in the graph list. A zero graph term is the
// default graph.
type graphRow struct {
	display string
	graph   rdf.Term
	count   int
}

var (
	browseTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114"))
	browseMutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	browseSectionStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	browseDividerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
	browseHighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("114")).Bold(true)
	browseErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	browseIRIStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	browseLiteralStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	browseBlankStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
)

type browseKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Back    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Enter, k.Back, k.Refresh, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Down, k.Up, k.Enter, k.Back}, {k.Refresh, k.Quit}}
}

func defaultKeyMap() browseKeyMap {
	return browseKeyMap{
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Enter:   key.NewBinding(key.WithKeys("enter", "l"), key.WithHelp("enter", "drill")),
		Back:    key.NewBinding(key.WithKeys("h", "esc"), key.WithHelp("h", "back")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type graphsLoadedMsg struct {
	rows []graphRow
	err  error
}

type quadsLoadedMsg struct {
	row   graphRow
	quads []store.Quad
	err   error
}

func runBrowseTUI(ctx context.Context, manager *store.Manager, rows []graphRow) error {
	model := newBrowseModel(manager, rows)

	program := bubbletea.NewProgram(model,
		bubbletea.WithContext(ctx),
		bubbletea.WithAltScreen(),
	)
	_, err := program.Run()
	return err
}

func newBrowseModel(manager *store.Manager, rows []graphRow) browseModel {
	return browseModel{
		manager: manager,
		graphs:  rows,
		view:    viewGraphs,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

func (m browseModel) Init() bubbletea.Cmd {
	return nil
}

func (m browseModel) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case graphsLoadedMsg:
		m.loadErr = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.graphs = msg.rows
		if m.cursor >= len(m.graphs) {
			m.cursor = clamp(m.cursor, len(m.graphs)-1)
		}
		return m, nil
	case quadsLoadedMsg:
		m.loadErr = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.current = msg.row
		m.quads = msg.quads
		m.quadCursor = 0
		m.view = viewQuads
		return m, nil
	case bubbletea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m browseModel) View() string {
	switch m.view {
	case viewGraphs:
		return m.viewGraphList()
	case viewQuads:
		return m.viewQuadList()
	}
	return m.viewGraphList()
}

func (m browseModel) handleKey(msg bubbletea.KeyMsg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, bubbletea.Quit
	case "j", "down":
		return m.moveCursor(1)
	case "k", "up":
		return m.moveCursor(-1)
	case "l", "enter":
		if m.view == viewGraphs {
			return m.enterGraph()
		}
	case "h", "esc":
		if m.view == viewQuads {
			m.view = viewGraphs
			m.loadErr = nil
		}
	case "r":
		if m.view == viewGraphs {
			return m, loadGraphsCmd(m.manager)
		}
		return m, loadQuadsCmd(m.manager, m.current)
	}

	return m, nil
}

func (m browseModel) moveCursor(delta int) (bubbletea.Model, bubbletea.Cmd) {
	if m.view == viewGraphs {
		if len(m.graphs) == 0 {
			return m, nil
		}
		m.cursor = clamp(m.cursor+delta, len(m.graphs)-1)
		return m, nil
	}

	if len(m.quads) == 0 {
		return m, nil
	}
	m.quadCursor = clamp(m.quadCursor+delta, len(m.quads)-1)
	return m, nil
}

func (m browseModel) enterGraph() (bubbletea.Model, bubbletea.Cmd) {
	if len(m.graphs) == 0 {
		return m, nil
	}
	return m, loadQuadsCmd(m.manager, m.graphs[m.cursor])
}

func (m browseModel) viewGraphList() string {
	total := 0
	for _, row := range m.graphs {
		total += row.count
	}

	headerLeft := browseTitleStyle.Render("trellis browse")
	headerRight := browseMutedStyle.Render(fmt.Sprintf("%d graphs · %d quads", len(m.graphs), total))
	header := renderHeaderLine(m.width, headerLeft, headerRight)

	lines := make([]string, 0, len(m.graphs)+6)
	lines = append(lines, header, renderRule(m.width), "")

	if len(m.graphs) == 0 {
		lines = append(lines, browseMutedStyle.Render("store is empty"))
		lines = append(lines, "", m.viewFooter())
		return strings.Join(lines, "\n")
	}

	lines = append(lines, browseSectionStyle.Render("graphs"), renderRule(m.width))
	lines = append(lines, browseMutedStyle.Render("  graph                                                        quads"))

	maxVisible := listHeight(m.height, len(lines))
	start, end := visibleRange(len(m.graphs), m.cursor, maxVisible)
	for i := start; i < end; i++ {
		row := m.graphs[i]
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		line := fmt.Sprintf("%s %-58s %7s",
			cursor,
			truncateText(row.display, 58),
			strconv.Itoa(row.count),
		)
		if i == m.cursor {
			line = browseHighlightStyle.Render(line)
		}
		lines = append(lines, line)
	}

	if m.loadErr != nil {
		lines = append(lines, "", browseErrorStyle.Render(m.loadErr.Error()))
	}

	lines = append(lines, "", m.viewFooter())
	return strings.Join(lines, "\n")
}

func (m browseModel) viewQuadList() string {
	headerLeft := browseTitleStyle.Render("trellis browse › " + m.current.display)
	headerRight := browseMutedStyle.Render(fmt.Sprintf("%d quads", len(m.quads)))
	header := renderHeaderLine(m.width, headerLeft, headerRight)

	lines := make([]string, 0, len(m.quads)+10)
	lines = append(lines, header, renderRule(m.width), "")

	if len(m.quads) == 0 {
		lines = append(lines, browseMutedStyle.Render("graph is empty"))
		lines = append(lines, "", m.viewFooter())
		return strings.Join(lines, "\n")
	}

	detailLines := m.renderQuadDetail()
	listBudget := listHeight(m.height, len(lines)+len(detailLines)+2)

	start, end := visibleRange(len(m.quads), m.quadCursor, listBudget)
	for i := start; i < end; i++ {
		line := m.renderQuadLine(i)
		if i == m.quadCursor {
			line = browseHighlightStyle.Render(line)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "")
	lines = append(lines, detailLines...)

	if m.loadErr != nil {
		lines = append(lines, "", browseErrorStyle.Render(m.loadErr.Error()))
	}

	lines = append(lines, "", m.viewFooter())
	return strings.Join(lines, "\n")
}

func (m browseModel) renderQuadLine(i int) string {
	q := m.quads[i]
	cursor := " "
	if i == m.quadCursor {
		cursor = ">"
	}

	lineWidth := m.width
	if lineWidth <= 0 {
		lineWidth = 100
	}
	gap := 2
	colWidth := max((lineWidth-2-gap*2)/3, 18)

	return fmt.Sprintf("%s %s  %s  %s",
		cursor,
		fitCell(shortTerm(q.Subject), colWidth),
		fitCell(shortTerm(q.Predicate), colWidth),
		fitCell(shortTerm(q.Object), colWidth),
	)
}

func (m browseModel) renderQuadDetail() []string {
	q := m.quads[m.quadCursor]
	width := m.width
	if width <= 0 {
		width = 100
	}

	lines := []string{browseSectionStyle.Render("quad"), renderRule(m.width)}
	lines = append(lines, wrapText("subject:   "+styledTerm(q.Subject), max(20, width-2))...)
	lines = append(lines, wrapText("predicate: "+styledTerm(q.Predicate), max(20, width-2))...)
	lines = append(lines, wrapText("object:    "+styledTerm(q.Object), max(20, width-2))...)
	lines = append(lines, "graph:     "+rdf.GraphDisplay(q.Graph))
	return lines
}

func (m browseModel) viewFooter() string {
	return browseMutedStyle.Render(m.help.View(m.keys))
}

func loadGraphsCmd(manager *store.Manager) bubbletea.Cmd {
	return func() bubbletea.Msg {
		rows, err := loadGraphRows(context.Background(), manager)
		return graphsLoadedMsg{rows: rows, err: err}
	}
}

func loadQuadsCmd(manager *store.Manager, row graphRow) bubbletea.Cmd {
	return func() bubbletea.Msg {
		quads, err := loadQuads(context.Background(), manager, row)
		return quadsLoadedMsg{row: row, quads: quads, err: err}
	}
}

// loadGraphRows groups the store's quads by graph. The default graph sorts
// first when present; named graphs follow alphabetically.
func loadGraphRows(ctx context.Context, manager *store.Manager) ([]graphRow, error) {
	var quads []store.Quad
	err := manager.View(ctx, func(engine store.Engine) error {
		var findErr error
		quads, findErr = engine.QuadsForPattern(ctx, store.Pattern{})
		return findErr
	})
	if err != nil {
		return nil, err
	}

	return summarizeGraphs(quads), nil
}

func loadQuads(ctx context.Context, manager *store.Manager, row graphRow) ([]store.Quad, error) {
	graph := row.graph
	var quads []store.Quad
	err := manager.View(ctx, func(engine store.Engine) error {
		var findErr error
		quads, findErr = engine.QuadsForPattern(ctx, store.Pattern{Graph: &graph})
		return findErr
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(quads, func(i, j int) bool {
		a, b := quads[i], quads[j]
		return rdf.FormatNQuad(a.Subject, a.Predicate, a.Object, a.Graph) <
			rdf.FormatNQuad(b.Subject, b.Predicate, b.Object, b.Graph)
	})

	return quads, nil
}

func summarizeGraphs(quads []store.Quad) []graphRow {
	counts := make(map[string]*graphRow)
	for _, q := range quads {
		display := rdf.GraphDisplay(q.Graph)
		row, ok := counts[display]
		if !ok {
			row = &graphRow{display: display, graph: q.Graph}
			counts[display] = row
		}
		row.count++
	}

	rows := make([]graphRow, 0, len(counts))
	for _, row := range counts {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		// Zero graph term is the default graph; keep it on top.
		if rows[i].graph.IsZero() != rows[j].graph.IsZero() {
			return rows[i].graph.IsZero()
		}
		return rows[i].display < rows[j].display
	})

	return rows
}

// shortTerm renders a term for the quad list, without styling so column
// widths stay honest.
func shortTerm(t rdf.Term) string {
	return t.String()
}

func styledTerm(t rdf.Term) string {
	switch t.Kind {
	case rdf.KindLiteral:
		return browseLiteralStyle.Render(t.String())
	case rdf.KindBlank:
		return browseBlankStyle.Render(t.String())
	default:
		return browseIRIStyle.Render(t.String())
	}
}

func listHeight(screenHeight, used int) int {
	if screenHeight <= 0 {
		screenHeight = 40
	}
	footerHeight := 3
	return max(screenHeight-used-footerHeight, 5)
}

func clamp(value, upper int) int {
	if value < 0 {
		return 0
	}
	if value > upper {
		return upper
	}
	return value
}

func truncateText(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	if limit <= 3 {
		return value[:limit]
	}
	return value[:limit-3] + "..."
}

func renderHeaderLine(width int, left, right string) string {
	lineWidth := width
	if lineWidth <= 0 {
		lineWidth = 80
	}
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	if leftWidth+rightWidth+1 >= lineWidth {
		return strings.TrimSpace(left + " " + right)
	}
	spacing := lineWidth - leftWidth - rightWidth
	return left + strings.Repeat(" ", spacing) + right
}

func renderRule(width int) string {
	lineWidth := width
	if lineWidth <= 0 {
		lineWidth = 80
	}
	return browseDividerStyle.Render(strings.Repeat("─", lineWidth))
}

func fitCell(value string, width int) string {
	if width <= 0 {
		return value
	}
	if lipgloss.Width(value) > width {
		return truncateText(value, width)
	}
	return value + strings.Repeat(" ", width-lipgloss.Width(value))
}

func visibleRange(total, cursor, size int) (int, int) {
	if total <= 0 || size <= 0 {
		return 0, 0
	}
	if total <= size {
		return 0, total
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= total {
		cursor = total - 1
	}
	start := max(cursor-(size/2), 0)
	end := start + size
	if end > total {
		end = total
		start = max(end-size, 0)
	}
	return start, end
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	lines := []string{}
	current := ""
	for _, word := range words {
		if current == "" {
			current = word
			continue
		}
		if lipgloss.Width(current)+1+lipgloss.Width(word) <= width {
			current = current + " " + word
			continue
		}
		lines = append(lines, current)
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
