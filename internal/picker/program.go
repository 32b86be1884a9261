package picker

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/textobjects/internal/log"
)

// programModel runs the picker as a standalone program that exits on the
// first select or cancel.
type programModel struct {
	picker    Model
	chosen    Item
	done      bool
	cancelled bool
}

func newProgramModel(cfg Config) programModel {
	return programModel{picker: New(cfg)}
}

func (p programModel) Init() tea.Cmd {
	return p.picker.Init()
}

func (p programModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SelectMsg:
		p.chosen = msg.Item
		p.done = true
		log.Debug(log.CatPicker, "selected", "id", string(msg.Item.ID))
		return p, tea.Quit
	case CancelMsg:
		p.cancelled = true
		p.done = true
		log.Debug(log.CatPicker, "cancelled")
		return p, tea.Quit
	}

	var cmd tea.Cmd
	p.picker, cmd = p.picker.Update(msg)
	return p, cmd
}

func (p programModel) View() string {
	if p.done {
		return ""
	}
	return zone.Scan(p.picker.View())
}

// Result reports the outcome of a finished picker program.
func (p programModel) Result() (Item, bool) {
	if p.cancelled || !p.done {
		return Item{}, false
	}
	return p.chosen, true
}

// Run shows the picker and blocks until the user selects an item or cancels.
// The boolean is false when the picker was dismissed.
func Run(ctx context.Context, cfg Config, opts ...tea.ProgramOption) (Item, bool, error) {
	if zone.DefaultManager == nil {
		zone.NewGlobal()
	}
	opts = append(opts, tea.WithContext(ctx), tea.WithMouseCellMotion())
	final, err := tea.NewProgram(newProgramModel(cfg), opts...).Run()
	if err != nil {
		return Item{}, false, fmt.Errorf("running picker: %w", err)
	}
	pm, ok := final.(programModel)
	if !ok {
		return Item{}, false, fmt.Errorf("running picker: unexpected model %T", final)
	}
	item, chosen := pm.Result()
	return item, chosen, nil
}
