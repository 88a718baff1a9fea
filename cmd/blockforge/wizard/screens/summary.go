package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/blockforge/cmd/blockforge/wizard/components"
	"github.com/mrsinham/blockforge/cmd/blockforge/wizard/types"
	"github.com/mrsinham/blockforge/internal/texture"
)

// SummaryAction represents the action selected on the summary screen
type SummaryAction int

const (
	// SummaryActionBack returns to the first screen
	SummaryActionBack SummaryAction = iota
	// SummaryActionGenerate starts texture generation
	SummaryActionGenerate
	// SummaryActionSaveConfig saves the pack file
	SummaryActionSaveConfig
	// SummaryActionAddRecipe opens the custom recipe form
	SummaryActionAddRecipe
	// SummaryActionCancel exits the wizard
	SummaryActionCancel
)

const (
	actionBack       = "back"
	actionGenerate   = "generate"
	actionSaveConfig = "save_config"
	actionAddRecipe  = "add_recipe"
	actionCancel     = "cancel"

	maxListedTextures = 12
)

var (
	summaryPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("64")).
				Padding(1, 2)

	summaryTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("64")).
				Bold(true).
				MarginBottom(1)

	summaryLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))

	summaryValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Bold(true)

	summaryErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))

	treeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	cliCommandStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
)

// SummaryScreen displays the pack before generation
type SummaryScreen struct {
	form      *huh.Form
	state     *types.WizardState
	recipes   []texture.Recipe
	err       error
	notice    string
	action    string
	done      bool
	cancelled bool
}

// NewSummaryScreen creates a new summary screen. recipes is the resolved
// selection; err, when set, explains why the state cannot be generated and
// hides the generate action.
func NewSummaryScreen(state *types.WizardState, recipes []texture.Recipe, err error, notice string) *SummaryScreen {
	s := &SummaryScreen{
		state:   state,
		recipes: recipes,
		err:     err,
		notice:  notice,
		action:  actionGenerate,
	}

	var options []huh.Option[string]
	if err == nil {
		options = append(options,
			huh.NewOption("Generate textures", actionGenerate),
			huh.NewOption("Save pack file", actionSaveConfig),
		)
	} else {
		s.action = actionBack
	}
	options = append(options,
		huh.NewOption("Add a custom recipe", actionAddRecipe),
		huh.NewOption("Back to edit", actionBack),
		huh.NewOption("Cancel and exit", actionCancel),
	)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("action").
				Title("Select an action").
				Options(options...).
				Value(&s.action),
		),
	).WithShowHelp(false)

	return s
}

// Init implements tea.Model
func (s *SummaryScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *SummaryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		case "esc":
			// Esc goes back instead of cancelling
			s.action = actionBack
			s.done = true
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}
	if s.form.State == huh.StateCompleted {
		s.done = true
	}
	return s, cmd
}

// View implements tea.Model
func (s *SummaryScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("SUMMARY - Review Pack")

	panelWidth := 45
	left := summaryPanelStyle.Width(panelWidth).Render(s.buildParameterSummary())
	right := summaryPanelStyle.Width(panelWidth).Render(s.buildTextureList())
	panels := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	parts := []string{title, ""}
	if s.notice != "" {
		parts = append(parts, summaryLabelStyle.Render(s.notice), "")
	}
	parts = append(parts, panels, "")
	if s.err != nil {
		parts = append(parts, summaryErrorStyle.Render("Cannot generate: "+s.err.Error()), "")
	} else {
		parts = append(parts, s.buildCLICommand(), "")
	}
	parts = append(parts, s.form.View(), "", components.KeyHintStyle.Render("Enter: Select action | Esc: Back"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *SummaryScreen) buildParameterSummary() string {
	var sb strings.Builder
	sb.WriteString(summaryTitleStyle.Render("Pack Settings"))
	sb.WriteString("\n\n")

	g := s.state.Global
	seed := "recipe seeds"
	if g.Seed != 0 {
		seed = fmt.Sprintf("%d", g.Seed)
	}
	preview := "off"
	if g.PreviewScale > 1 {
		preview = fmt.Sprintf("%dx", g.PreviewScale)
	}
	params := []struct {
		label string
		value string
	}{
		{"Name", g.Name},
		{"Output Directory", g.OutputDir},
		{"Seed", seed},
		{"Formats", strings.Join(g.Formats, ", ")},
		{"Preview", preview},
		{"Contact Sheet", yesNo(g.ContactSheet)},
		{"Atlas", yesNo(g.Atlas)},
		{"Custom Recipes", fmt.Sprintf("%d", len(s.state.Custom))},
	}
	for _, p := range params {
		sb.WriteString(summaryLabelStyle.Render(p.label + ": "))
		sb.WriteString(summaryValueStyle.Render(p.value))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (s *SummaryScreen) buildTextureList() string {
	var sb strings.Builder
	sb.WriteString(summaryTitleStyle.Render(fmt.Sprintf("Textures (%d)", len(s.recipes))))
	sb.WriteString("\n\n")

	for i, r := range s.recipes {
		if i == maxListedTextures {
			sb.WriteString(treeStyle.Render(fmt.Sprintf("... and %d more", len(s.recipes)-maxListedTextures)))
			sb.WriteString("\n")
			break
		}
		prefix := "├──"
		if i == len(s.recipes)-1 {
			prefix = "└──"
		}
		sb.WriteString(treeStyle.Render(prefix + " "))
		sb.WriteString(summaryValueStyle.Render(r.Name))
		sb.WriteString(treeStyle.Render(fmt.Sprintf(" (%s)", r.Family)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (s *SummaryScreen) buildCLICommand() string {
	var sb strings.Builder
	sb.WriteString(summaryTitleStyle.Render("Equivalent CLI Command"))
	sb.WriteString("\n\n")
	sb.WriteString(cliCommandStyle.Render(CLICommand(s.state)))
	return sb.String()
}

// CLICommand returns the generate invocation matching state. Custom
// recipes need a pack file, so they are mentioned with --pack.
func CLICommand(state *types.WizardState) string {
	parts := []string{"blockforge generate"}
	g := state.Global
	if len(state.Custom) > 0 {
		parts = append(parts, "--pack <saved pack file>")
	}
	if g.OutputDir != "" && g.OutputDir != "textures" {
		parts = append(parts, "--output "+g.OutputDir)
	}
	if g.Seed != 0 {
		parts = append(parts, fmt.Sprintf("--seed %d", g.Seed))
	}
	if len(g.Formats) > 0 && !(len(g.Formats) == 1 && g.Formats[0] == "png") {
		parts = append(parts, "--format "+strings.Join(g.Formats, ","))
	}
	if g.PreviewScale > 1 {
		parts = append(parts, fmt.Sprintf("--preview-scale %d", g.PreviewScale))
	}
	if g.ContactSheet {
		parts = append(parts, "--contact-sheet")
	}
	if g.Atlas {
		parts = append(parts, "--atlas")
	}
	if len(state.Custom) == 0 {
		parts = append(parts, state.Textures...)
	}
	return strings.Join(parts, " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Done returns true if the form was completed
func (s *SummaryScreen) Done() bool {
	return s.done
}

// Cancelled returns true if the user cancelled
func (s *SummaryScreen) Cancelled() bool {
	return s.cancelled
}

// Action returns the selected action
func (s *SummaryScreen) Action() SummaryAction {
	switch s.action {
	case actionBack:
		return SummaryActionBack
	case actionGenerate:
		return SummaryActionGenerate
	case actionSaveConfig:
		return SummaryActionSaveConfig
	case actionAddRecipe:
		return SummaryActionAddRecipe
	case actionCancel:
		return SummaryActionCancel
	default:
		return SummaryActionGenerate
	}
}
