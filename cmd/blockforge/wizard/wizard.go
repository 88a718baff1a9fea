package wizard

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/mrsinham/blockforge/cmd/blockforge/wizard/components"
	"github.com/mrsinham/blockforge/cmd/blockforge/wizard/screens"
	"github.com/mrsinham/blockforge/internal/atlas"
	"github.com/mrsinham/blockforge/internal/pack"
	"github.com/mrsinham/blockforge/internal/texture"
)

// Phase represents the current phase/screen of the wizard.
type Phase int

const (
	PhaseGlobal Phase = iota
	PhaseTextures
	PhaseRecipe
	PhaseSummary
	PhaseSaveConfig
	PhaseProgress
	PhaseComplete
	PhaseError
)

// Wizard is the main orchestrator for the wizard interface.
type Wizard struct {
	state *WizardState
	phase Phase

	globalScreen     *screens.GlobalScreen
	texturesScreen   *screens.TexturesScreen
	recipeScreen     *screens.RecipeScreen
	summaryScreen    *screens.SummaryScreen
	progressScreen   *screens.ProgressScreen
	completionScreen *screens.CompletionScreen
	errorScreen      *screens.ErrorScreen

	// Save config form
	saveConfigForm *huh.Form
	configPath     string

	// Recipe being edited
	draft RecipeConfig

	ctx    context.Context
	logger zerolog.Logger
	// send delivers progress messages from the generation goroutine.
	send func(tea.Msg)

	width  int
	height int

	cancelled bool
	finished  bool
	err       error
}

// NewWizard creates a new wizard with default or loaded state.
func NewWizard(state *WizardState) *Wizard {
	if state == nil {
		state = DefaultState("")
	}
	w := &Wizard{
		state:  state,
		phase:  PhaseGlobal,
		ctx:    context.Background(),
		logger: zerolog.Nop(),
	}
	w.globalScreen = screens.NewGlobalScreen(&w.state.Global)
	return w
}

// Init implements tea.Model.
func (w *Wizard) Init() tea.Cmd {
	return w.globalScreen.Init()
}

// Update implements tea.Model.
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = wsm.Width
		w.height = wsm.Height
	}

	switch w.phase {
	case PhaseGlobal:
		return w.updateGlobal(msg)
	case PhaseTextures:
		return w.updateTextures(msg)
	case PhaseRecipe:
		return w.updateRecipe(msg)
	case PhaseSummary:
		return w.updateSummary(msg)
	case PhaseSaveConfig:
		return w.updateSaveConfig(msg)
	case PhaseProgress:
		return w.updateProgress(msg)
	case PhaseComplete:
		return w.updateComplete(msg)
	case PhaseError:
		return w.updateError(msg)
	}
	return w, nil
}

// View implements tea.Model.
func (w *Wizard) View() string {
	switch w.phase {
	case PhaseGlobal:
		return w.globalScreen.View()
	case PhaseTextures:
		return w.texturesScreen.View()
	case PhaseRecipe:
		return w.recipeScreen.View()
	case PhaseSummary:
		return w.summaryScreen.View()
	case PhaseSaveConfig:
		return w.viewSaveConfig()
	case PhaseProgress:
		return w.progressScreen.View()
	case PhaseComplete:
		return w.completionScreen.View()
	case PhaseError:
		return w.errorScreen.View()
	}
	return ""
}

// catalog returns the built-in catalog with the custom recipes merged in.
// Invalid custom recipes are left out here and reported on the summary.
func (w *Wizard) catalog() *texture.Catalog {
	c, err := ToPackFile(w.state).Catalog()
	if err != nil {
		return texture.DefaultCatalog()
	}
	return c
}

func (w *Wizard) transitionToGlobal() (tea.Model, tea.Cmd) {
	w.phase = PhaseGlobal
	w.globalScreen = screens.NewGlobalScreen(&w.state.Global)
	return w, w.globalScreen.Init()
}

func (w *Wizard) updateGlobal(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.globalScreen.Update(msg)
	if gs, ok := model.(*screens.GlobalScreen); ok {
		w.globalScreen = gs
	}
	if w.globalScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}
	if w.globalScreen.Done() {
		return w.transitionToTextures()
	}
	return w, cmd
}

func (w *Wizard) transitionToTextures() (tea.Model, tea.Cmd) {
	w.phase = PhaseTextures
	w.texturesScreen = screens.NewTexturesScreen(w.catalog(), &w.state.Textures)
	return w, w.texturesScreen.Init()
}

func (w *Wizard) updateTextures(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.texturesScreen.Update(msg)
	if ts, ok := model.(*screens.TexturesScreen); ok {
		w.texturesScreen = ts
	}
	if w.texturesScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}
	if w.texturesScreen.Done() {
		if w.texturesScreen.AddCustom() {
			return w.transitionToRecipe()
		}
		return w.transitionToSummary("")
	}
	return w, cmd
}

func (w *Wizard) transitionToRecipe() (tea.Model, tea.Cmd) {
	w.phase = PhaseRecipe
	w.draft = NewRecipeConfig("")
	taken := make([]string, 0, len(w.state.Custom))
	for _, rc := range w.state.Custom {
		taken = append(taken, rc.Name)
	}
	w.recipeScreen = screens.NewRecipeScreen(&w.draft, taken)
	return w, w.recipeScreen.Init()
}

func (w *Wizard) updateRecipe(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.recipeScreen.Update(msg)
	if rs, ok := model.(*screens.RecipeScreen); ok {
		w.recipeScreen = rs
	}
	if w.recipeScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}
	if w.recipeScreen.Done() {
		if w.recipeScreen.Discarded() {
			return w.transitionToSummary("Custom recipe discarded")
		}
		w.addRecipe(w.draft)
		return w.transitionToSummary(fmt.Sprintf("Added custom recipe %s", w.draft.Name))
	}
	return w, cmd
}

// addRecipe appends rc and, when the selection is explicit, selects it.
func (w *Wizard) addRecipe(rc RecipeConfig) {
	w.state.Custom = append(w.state.Custom, rc)
	if len(w.state.Textures) == 0 {
		return
	}
	for _, name := range w.state.Textures {
		if name == rc.Name {
			return
		}
	}
	w.state.Textures = append(w.state.Textures, rc.Name)
}

func (w *Wizard) transitionToSummary(notice string) (tea.Model, tea.Cmd) {
	w.phase = PhaseSummary
	pf := ToPackFile(w.state)
	recipes, err := pf.Selected()
	if err == nil {
		err = pf.Validate()
	}
	w.summaryScreen = screens.NewSummaryScreen(w.state, recipes, err, notice)
	return w, w.summaryScreen.Init()
}

func (w *Wizard) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.summaryScreen.Update(msg)
	if ss, ok := model.(*screens.SummaryScreen); ok {
		w.summaryScreen = ss
	}
	if w.summaryScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}
	if w.summaryScreen.Done() {
		switch w.summaryScreen.Action() {
		case screens.SummaryActionBack:
			return w.transitionToGlobal()
		case screens.SummaryActionGenerate:
			return w.startGeneration()
		case screens.SummaryActionSaveConfig:
			return w.transitionToSaveConfig()
		case screens.SummaryActionAddRecipe:
			return w.transitionToRecipe()
		case screens.SummaryActionCancel:
			w.cancelled = true
			return w, tea.Quit
		}
	}
	return w, cmd
}

// transitionToSaveConfig shows the save pack dialog.
func (w *Wizard) transitionToSaveConfig() (tea.Model, tea.Cmd) {
	w.phase = PhaseSaveConfig
	if w.configPath == "" {
		w.configPath = "blockforge-pack.yaml"
	}

	w.saveConfigForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("config_path").
				Title("Save pack file to").
				Description("Replay it with: blockforge generate --pack FILE").
				Value(&w.configPath).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("path is required")
					}
					return nil
				}),
		),
	).WithShowHelp(false)

	return w, w.saveConfigForm.Init()
}

func (w *Wizard) updateSaveConfig(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return w.transitionToSummary("")
		case "ctrl+c":
			w.cancelled = true
			return w, tea.Quit
		}
	}

	form, cmd := w.saveConfigForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.saveConfigForm = f
	}

	if w.saveConfigForm.State == huh.StateCompleted {
		if err := SaveState(w.state, w.configPath); err != nil {
			w.err = err
			w.phase = PhaseError
			w.errorScreen = screens.NewErrorScreen(err)
			return w, nil
		}
		return w.transitionToSummary(fmt.Sprintf("Pack saved to %s", w.configPath))
	}
	return w, cmd
}

func (w *Wizard) viewSaveConfig() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		components.TitleStyle.Render("Save Pack File"),
		"",
		w.saveConfigForm.View(),
		"",
		components.KeyHintStyle.Render("Enter: Save | Esc: Back"),
	)
}

// startGeneration runs pack generation in a command and reports progress
// through the program.
func (w *Wizard) startGeneration() (tea.Model, tea.Cmd) {
	opts, err := ToOptions(w.state)
	if err != nil {
		w.phase = PhaseError
		w.err = err
		w.errorScreen = screens.NewErrorScreen(err)
		return w, nil
	}

	w.phase = PhaseProgress
	w.progressScreen = screens.NewProgressScreen(len(opts.Recipes))

	opts.Logger = w.logger
	send := w.send
	opts.ProgressCallback = func(current, total int) {
		if send != nil {
			send(screens.ProgressMsg{Current: current, Total: total})
		}
	}
	ctx := w.ctx

	return w, func() tea.Msg {
		start := time.Now()
		files, err := pack.Generate(ctx, opts)
		if err != nil {
			return screens.ErrorMsg{Error: err}
		}
		return completionMsg(opts, files, time.Since(start))
	}
}

func completionMsg(opts pack.Options, files []pack.GeneratedFile, d time.Duration) screens.CompletionMsg {
	msg := screens.CompletionMsg{
		Textures:  len(files),
		Duration:  d,
		OutputDir: opts.OutputDir,
	}
	for _, f := range files {
		msg.Files += len(f.Files)
	}
	if opts.ContactSheet {
		msg.Extras = append(msg.Extras, filepath.Join(opts.OutputDir, pack.ContactSheetFile))
	}
	if opts.Atlas {
		msg.Extras = append(msg.Extras, filepath.Join(opts.OutputDir, atlas.ImageFile))
	}
	msg.Extras = append(msg.Extras, filepath.Join(opts.OutputDir, pack.ManifestFile))
	return msg
}

func (w *Wizard) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case screens.ProgressMsg:
		w.progressScreen.SetProgress(msg.Current, msg.Total)
		return w, nil

	case screens.CompletionMsg:
		w.phase = PhaseComplete
		w.completionScreen = screens.NewCompletionScreen(msg)
		return w, nil

	case screens.ErrorMsg:
		w.phase = PhaseError
		w.err = msg.Error
		w.errorScreen = screens.NewErrorScreen(msg.Error)
		return w, nil
	}

	model, cmd := w.progressScreen.Update(msg)
	if ps, ok := model.(*screens.ProgressScreen); ok {
		w.progressScreen = ps
	}
	if w.progressScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}
	return w, cmd
}

func (w *Wizard) updateComplete(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.completionScreen.Update(msg)
	if cs, ok := model.(*screens.CompletionScreen); ok {
		w.completionScreen = cs
	}
	if w.completionScreen.Done() {
		w.finished = true
		return w, tea.Quit
	}
	return w, cmd
}

func (w *Wizard) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.errorScreen.Update(msg)
	if es, ok := model.(*screens.ErrorScreen); ok {
		w.errorScreen = es
	}
	if w.errorScreen.Done() {
		w.finished = true
		return w, tea.Quit
	}
	return w, cmd
}

// Options configures Run.
type Options struct {
	// FromPack preloads a saved pack file.
	FromPack string
	// OutputDir is the default output directory of a new pack.
	OutputDir string
	Logger    zerolog.Logger
}

// Run starts the interactive wizard. Cancelling is not an error.
func Run(ctx context.Context, opts Options) error {
	state := DefaultState(opts.OutputDir)
	if opts.FromPack != "" {
		loaded, err := LoadState(opts.FromPack)
		if err != nil {
			return fmt.Errorf("loading pack file: %w", err)
		}
		state = loaded
	}

	wizard := NewWizard(state)
	wizard.ctx = ctx
	wizard.logger = opts.Logger
	p := tea.NewProgram(wizard, tea.WithAltScreen(), tea.WithContext(ctx))
	wizard.send = p.Send

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}

	if w, ok := finalModel.(*Wizard); ok {
		if w.cancelled {
			return nil
		}
		if w.err != nil {
			return w.err
		}
	}
	return nil
}
