package screens

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/blockforge/cmd/blockforge/wizard/components"
	"github.com/mrsinham/blockforge/cmd/blockforge/wizard/types"
	"github.com/mrsinham/blockforge/internal/export"
)

// GlobalScreen is the first wizard screen for pack-wide settings
type GlobalScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	config    *types.GlobalConfig
	width     int
	height    int
	done      bool
	cancelled bool

	// String versions for form binding (huh binds to strings)
	seedStr         string
	previewScaleStr string
}

// NewGlobalScreen creates a new global configuration screen
func NewGlobalScreen(config *types.GlobalConfig) *GlobalScreen {
	if config.OutputDir == "" {
		config.OutputDir = "textures"
	}
	if len(config.Formats) == 0 {
		config.Formats = []string{string(export.FormatPNG)}
	}

	s := &GlobalScreen{
		helpPanel:       components.NewHelpPanel(),
		config:          config,
		seedStr:         strconv.FormatInt(config.Seed, 10),
		previewScaleStr: strconv.Itoa(config.PreviewScale),
	}

	formatOptions := make([]huh.Option[string], 0, len(export.AllFormats()))
	for _, f := range export.AllFormats() {
		formatOptions = append(formatOptions, huh.NewOption(string(f), string(f)))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Pack Name").
				Value(&config.Name),

			huh.NewInput().
				Key("output").
				Title("Output Directory").
				Value(&config.OutputDir).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("output directory is required")
					}
					return nil
				}),

			huh.NewInput().
				Key("seed").
				Title("Pack Seed").
				Placeholder("0 keeps recipe seeds").
				Value(&s.seedStr).
				Validate(validateSeed),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Key("formats").
				Title("Output Formats").
				Options(formatOptions...).
				Value(&config.Formats).
				Validate(func(v []string) error {
					if len(v) == 0 {
						return fmt.Errorf("select at least one format")
					}
					return nil
				}),

			huh.NewInput().
				Key("preview_scale").
				Title("Preview Scale").
				Value(&s.previewScaleStr).
				Validate(validateNonNegativeInt),

			huh.NewConfirm().
				Key("contact_sheet").
				Title("Write a contact sheet?").
				Value(&config.ContactSheet),

			huh.NewConfirm().
				Key("atlas").
				Title("Build a texture atlas?").
				Value(&config.Atlas),
		),
	).WithShowHelp(false).WithShowErrors(true)

	return s
}

func validateNonNegativeInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n < 0 {
		return fmt.Errorf("must be 0 or more")
	}
	return nil
}

func validateSeed(s string) error {
	if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
		return fmt.Errorf("must be a whole number")
	}
	return nil
}

// Init implements tea.Model
func (s *GlobalScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *GlobalScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
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
		s.syncConfigFromForm()
	}

	return s, cmd
}

// syncConfigFromForm parses form values back to config
func (s *GlobalScreen) syncConfigFromForm() {
	if n, err := strconv.ParseInt(strings.TrimSpace(s.seedStr), 10, 64); err == nil {
		s.config.Seed = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s.previewScaleStr)); err == nil {
		s.config.PreviewScale = n
	}
	s.config.OutputDir = strings.TrimSpace(s.config.OutputDir)
}

// View implements tea.Model
func (s *GlobalScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("BLOCKFORGE WIZARD - Pack Settings")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		s.form.View(),
		"",
		s.helpPanel.View(),
		"",
		components.KeyHintStyle.Render("Tab: Next field | Space: Toggle | Enter: Submit | Esc: Cancel"),
	)
}

// Done returns true if the form was completed
func (s *GlobalScreen) Done() bool {
	return s.done
}

// Cancelled returns true if the user cancelled
func (s *GlobalScreen) Cancelled() bool {
	return s.cancelled
}
