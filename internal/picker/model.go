package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/textobjects/internal/keys"
	"github.com/zjrosen/textobjects/internal/log"
)

// DefaultPlaceholder is shown in the empty filter input.
const DefaultPlaceholder = "Select a text object (type to filter, case-sensitive for uppercase)"

var (
	borderColor = lipgloss.AdaptiveColor{Light: "#8E8E8E", Dark: "#5C5C5C"}
	titleColor  = lipgloss.AdaptiveColor{Light: "#5A3FC0", Dark: "#B4A0FF"}
	mutedColor  = lipgloss.AdaptiveColor{Light: "#7A7A7A", Dark: "#8A8A8A"}
	accentColor = lipgloss.AdaptiveColor{Light: "#1B7F5C", Dark: "#54D3A2"}
)

// Config defines picker configuration.
type Config struct {
	Title           string // Title bar text (empty = no title bar)
	Placeholder     string // Filter input placeholder
	Items           []Item // Available items
	MinWidth        int    // Minimum width (default 45)
	MaxWidth        int    // Maximum width (default 72)
	MaxVisibleItems int    // Items visible before scrolling (default 8)
}

// SelectMsg is sent when an item is selected.
type SelectMsg struct {
	Item Item
}

// CancelMsg is sent when the picker is dismissed.
type CancelMsg struct{}

// Model holds the picker state.
type Model struct {
	config         Config
	textInput      textinput.Model
	filtered       []Item // Items matching the filter
	cursor         int    // Selected index in filtered
	scrollOffset   int    // First visible index in filtered
	viewportWidth  int
	viewportHeight int
}

// New creates a picker with the given configuration.
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = cfg.Placeholder
	if ti.Placeholder == "" {
		ti.Placeholder = DefaultPlaceholder
	}
	ti.Prompt = ""
	ti.Focus()

	return Model{
		config:    cfg,
		textInput: ti,
		filtered:  cfg.Items,
	}
}

// Init returns the initial command (starts cursor blink).
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the picker.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Picker.Next):
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				m = m.ensureCursorVisible()
			}
			return m, nil

		case key.Matches(msg, keys.Picker.Prev):
			if m.cursor > 0 {
				m.cursor--
				m = m.ensureCursorVisible()
			}
			return m, nil

		case key.Matches(msg, keys.Picker.Select):
			return m, m.selectCmd()

		case key.Matches(msg, keys.Picker.Cancel):
			return m, cancelCmd

		case key.Matches(msg, keys.Picker.Clear):
			m.textInput.SetValue("")
			m = m.updateFilter()
			return m, nil

		default:
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(msg)
			m = m.updateFilter()
			return m, cmd
		}

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height
		m = m.ensureCursorVisible()
	}

	return m, nil
}

// handleMouse selects a clicked row and scrolls with the wheel. Rows are
// located through bubblezone marks, so the caller's View must be wrapped in
// zone.Scan.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			m = m.ensureCursorVisible()
		}
		return m, nil
	case tea.MouseButtonWheelUp:
		if m.cursor > 0 {
			m.cursor--
			m = m.ensureCursorVisible()
		}
		return m, nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		end := min(m.scrollOffset+m.maxVisibleItems(), len(m.filtered))
		for i := m.scrollOffset; i < end; i++ {
			if z := zone.Get(itemZoneID(i)); z != nil && z.InBounds(msg) {
				m.cursor = i
				return m, m.selectCmd()
			}
		}
	}
	return m, nil
}

func itemZoneID(i int) string {
	return fmt.Sprintf("picker-item-%d", i)
}

// updateFilter re-filters items from the current input.
func (m Model) updateFilter() Model {
	m.filtered = Filter(m.config.Items, m.textInput.Value())
	m.cursor = 0
	m.scrollOffset = 0
	log.Debug(log.CatPicker, "filter", "query", m.textInput.Value(), "matches", len(m.filtered))
	return m
}

// maxVisibleItems returns the configured visible rows, shrunk only when the
// viewport is too small to hold them.
func (m Model) maxVisibleItems() int {
	target := m.config.MaxVisibleItems
	if target <= 0 {
		target = 8
	}

	if m.viewportHeight > 0 {
		// border (2) + title+divider (2) + search+divider (2) + hint (1)
		overhead := 7
		maxFromViewport := max(m.viewportHeight-overhead, 2)
		if maxFromViewport < target {
			return maxFromViewport
		}
	}

	return target
}

// ensureCursorVisible adjusts scroll offset to keep the cursor in view.
func (m Model) ensureCursorVisible() Model {
	maxVisible := m.maxVisibleItems()

	if m.cursor >= m.scrollOffset+maxVisible {
		m.scrollOffset = m.cursor - maxVisible + 1
	}
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}

	return m
}

func (m Model) selectCmd() tea.Cmd {
	if len(m.filtered) == 0 {
		return nil
	}
	selected := m.filtered[m.cursor]
	return func() tea.Msg { return SelectMsg{Item: selected} }
}

func cancelCmd() tea.Msg { return CancelMsg{} }

// SetSize sets the viewport dimensions.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m
}

// Selected returns the highlighted item.
func (m Model) Selected() (Item, bool) {
	if m.cursor >= 0 && m.cursor < len(m.filtered) {
		return m.filtered[m.cursor], true
	}
	return Item{}, false
}

// Cursor returns the highlighted index.
func (m Model) Cursor() int {
	return m.cursor
}

// FilteredItems returns the items matching the current filter.
func (m Model) FilteredItems() []Item {
	return m.filtered
}

// SearchText returns the current filter text.
func (m Model) SearchText() string {
	return m.textInput.Value()
}

// width returns the content width clamped to the configured bounds and the
// viewport.
func (m Model) width() int {
	minWidth, maxWidth := m.config.MinWidth, m.config.MaxWidth
	if minWidth <= 0 {
		minWidth = 45
	}
	if maxWidth <= 0 {
		maxWidth = 72
	}
	w := maxWidth
	if m.viewportWidth > 0 {
		// border takes two columns
		w = min(w, m.viewportWidth-2)
	}
	return max(w, minWidth)
}

// View renders the picker box.
func (m Model) View() string {
	contentWidth := m.width()

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(titleColor).PaddingLeft(1)
	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor)
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(strings.Repeat("─", contentWidth))

	m.textInput.Width = contentWidth - 4
	searchLine := mutedStyle.Render(" > ") + m.textInput.View()

	var content strings.Builder

	if m.config.Title != "" {
		title := titleStyle.Render(m.config.Title)
		hints := mutedStyle.Render("↑/↓ • Enter • Esc")
		padding := max(contentWidth-lipgloss.Width(title)-lipgloss.Width(hints)-1, 1)
		content.WriteString(title + strings.Repeat(" ", padding) + hints)
		content.WriteString("\n")
		content.WriteString(divider)
		content.WriteString("\n")
	}

	content.WriteString(searchLine)
	content.WriteString("\n")
	content.WriteString(divider)

	// Fixed height so the box does not jump while filtering.
	maxVisible := m.maxVisibleItems()
	emptyLine := strings.Repeat(" ", contentWidth)

	rendered := 0
	if len(m.filtered) == 0 {
		content.WriteString("\n")
		content.WriteString(mutedStyle.Italic(true).PaddingLeft(1).Render("No matching text objects"))
		rendered = 1
	} else {
		endIdx := min(m.scrollOffset+maxVisible, len(m.filtered))
		for i := m.scrollOffset; i < endIdx; i++ {
			content.WriteString("\n")
			content.WriteString(zone.Mark(itemZoneID(i), m.renderItem(m.filtered[i], i == m.cursor, contentWidth)))
			rendered++
		}
	}
	for i := rendered; i < maxVisible; i++ {
		content.WriteString("\n")
		content.WriteString(emptyLine)
	}

	content.WriteString("\n")
	if below := len(m.filtered) - (m.scrollOffset + maxVisible); below > 0 {
		content.WriteString(mutedStyle.Render(" ↓ more"))
	} else {
		content.WriteString(emptyLine)
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(contentWidth)

	return boxStyle.Render(content.String())
}

// renderItem renders one row: indicator, label and right aligned shortcut.
func (m Model) renderItem(item Item, selected bool, width int) string {
	labelStyle := lipgloss.NewStyle()
	indicator := " "
	if selected {
		labelStyle = labelStyle.Bold(true).Foreground(accentColor)
		indicator = lipgloss.NewStyle().Foreground(accentColor).Render(">")
	}

	shortcut := lipgloss.NewStyle().Foreground(mutedColor).Render(item.Shortcut)
	labelWidth := max(width-lipgloss.Width(shortcut)-4, 1)
	label := ansi.Truncate(item.Label, labelWidth, "…")

	padding := max(width-2-lipgloss.Width(label)-lipgloss.Width(shortcut)-1, 1)
	return indicator + " " + labelStyle.Render(label) + strings.Repeat(" ", padding) + shortcut
}
