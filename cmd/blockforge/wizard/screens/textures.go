package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/blockforge/cmd/blockforge/wizard/components"
	"github.com/mrsinham/blockforge/internal/texture"
)

// TexturesScreen selects which catalog textures go into the pack
type TexturesScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	selected  *[]string
	addCustom bool
	done      bool
	cancelled bool
}

// NewTexturesScreen lists every recipe of catalog. selected is updated in
// place when the form completes.
func NewTexturesScreen(catalog *texture.Catalog, selected *[]string) *TexturesScreen {
	s := &TexturesScreen{
		helpPanel: components.NewHelpPanel(),
		selected:  selected,
	}

	isSelected := make(map[string]bool, len(*selected))
	for _, name := range *selected {
		isSelected[name] = true
	}
	options := make([]huh.Option[string], 0, catalog.Len())
	for _, r := range catalog.Recipes() {
		label := fmt.Sprintf("%-14s %-7s %s", r.Name, r.Family, r.Describe())
		options = append(options, huh.NewOption(label, r.Name).Selected(isSelected[r.Name]))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Key("textures").
				Title("Textures").
				Description("Select none to generate the whole catalog").
				Options(options...).
				Height(14).
				Filterable(true).
				Value(selected),

			huh.NewConfirm().
				Key("add_custom").
				Title("Add a custom recipe?").
				Value(&s.addCustom),
		),
	).WithShowHelp(false)

	return s
}

// Init implements tea.Model
func (s *TexturesScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *TexturesScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.helpPanel.SetSize(msg.Width/3, msg.Height/2)
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}
	if focused := s.form.GetFocusedField(); focused != nil {
		s.helpPanel.SetField(focused.GetKey())
	}
	if s.form.State == huh.StateCompleted {
		s.done = true
	}
	return s, cmd
}

// View implements tea.Model
func (s *TexturesScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		components.TitleStyle.Render("BLOCKFORGE WIZARD - Textures"),
		"",
		s.form.View(),
		"",
		s.helpPanel.View(),
		"",
		components.KeyHintStyle.Render("Space: Toggle | /: Filter | Enter: Submit | Esc: Cancel"),
	)
}

// Done returns true if the form was completed
func (s *TexturesScreen) Done() bool {
	return s.done
}

// Cancelled returns true if the user cancelled
func (s *TexturesScreen) Cancelled() bool {
	return s.cancelled
}

// AddCustom reports whether the user asked for a custom recipe
func (s *TexturesScreen) AddCustom() bool {
	return s.addCustom
}
