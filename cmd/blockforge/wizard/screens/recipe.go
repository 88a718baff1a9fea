package screens

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/blockforge/cmd/blockforge/wizard/components"
	"github.com/mrsinham/blockforge/cmd/blockforge/wizard/types"
	"github.com/mrsinham/blockforge/internal/texture"
)

var textureNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// RecipeScreen edits one custom recipe. Only the group of the selected
// family is shown after the first group.
type RecipeScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	recipe    *types.RecipeConfig
	done      bool
	cancelled bool

	seedStr     string
	cracksStr   string
	clustersStr string
	seamsStr    string
	mossStr     string
}

// NewRecipeScreen creates a recipe form bound to recipe. taken lists names
// already used by other custom recipes.
func NewRecipeScreen(recipe *types.RecipeConfig, taken []string) *RecipeScreen {
	s := &RecipeScreen{
		helpPanel:   components.NewHelpPanel(),
		recipe:      recipe,
		seedStr:     strconv.FormatInt(recipe.Seed, 10),
		cracksStr:   strconv.Itoa(recipe.Cracks),
		clustersStr: strconv.Itoa(recipe.Clusters),
		seamsStr:    strconv.Itoa(recipe.Seams),
		mossStr:     strconv.Itoa(recipe.Moss),
	}

	familyOptions := make([]huh.Option[string], 0, len(texture.AllFamilies()))
	for _, f := range texture.AllFamilies() {
		familyOptions = append(familyOptions, huh.NewOption(string(f), string(f)))
	}
	kindOptions := make([]huh.Option[string], 0, len(texture.AllSpriteKinds()))
	for _, k := range texture.AllSpriteKinds() {
		kindOptions = append(kindOptions, huh.NewOption(string(k), string(k)))
	}
	isTaken := make(map[string]bool, len(taken))
	for _, name := range taken {
		isTaken[name] = true
	}
	familyIs := func(f texture.Family) func() bool {
		return func() bool { return recipe.Family != string(f) }
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("recipe_name").
				Title("Texture Name").
				Value(&recipe.Name).
				Validate(func(v string) error {
					v = strings.TrimSpace(v)
					if !textureNamePattern.MatchString(v) {
						return fmt.Errorf("use letters, digits, '_' or '-'")
					}
					if isTaken[v] {
						return fmt.Errorf("%s is already defined", v)
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("recipe_family").
				Title("Family").
				Options(familyOptions...).
				Value(&recipe.Family),

			huh.NewInput().
				Key("recipe_seed").
				Title("Seed").
				Value(&s.seedStr).
				Validate(validateSeed),
		),
		huh.NewGroup(
			colorInput("recipe_base", "Base Color", &recipe.Base),
			colorInput("recipe_dark", "Dark Mineral", &recipe.Dark),
			colorInput("recipe_mid", "Mid Mineral", &recipe.Mid),
			colorInput("recipe_light", "Light Mineral", &recipe.Light),
			countInput("recipe_cracks", "Cracks", &s.cracksStr),
			countInput("recipe_clusters", "Clusters", &s.clustersStr),
		).WithHideFunc(familyIs(texture.FamilyOre)),
		huh.NewGroup(
			colorInput("recipe_top", "Top Color", &recipe.Top),
			colorInput("recipe_bottom", "Bottom Color", &recipe.Bottom),
		).WithHideFunc(familyIs(texture.FamilyBanded)),
		huh.NewGroup(
			colorInput("recipe_base", "Stone Color", &recipe.Base),
			countInput("recipe_seams", "Seams", &s.seamsStr),
			countInput("recipe_moss", "Moss Patches", &s.mossStr),
		).WithHideFunc(familyIs(texture.FamilyRubble)),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("recipe_kind").
				Title("Sprite Kind").
				Options(kindOptions...).
				Value(&recipe.Kind),
		).WithHideFunc(familyIs(texture.FamilySprite)),
	).WithShowHelp(false).WithShowErrors(true)

	return s
}

func colorInput(key, title string, value *string) *huh.Input {
	return huh.NewInput().
		Key(key).
		Title(title).
		Placeholder("#rrggbb").
		Value(value).
		Validate(func(v string) error {
			_, err := texture.ParseHex(v)
			return err
		})
}

func countInput(key, title string, value *string) *huh.Input {
	return huh.NewInput().
		Key(key).
		Title(title).
		Value(value).
		Validate(validateNonNegativeInt)
}

// Init implements tea.Model
func (s *RecipeScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *RecipeScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		case "esc":
			// Esc discards the recipe instead of quitting
			s.done = true
			s.recipe.Name = ""
			return s, nil
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
		s.syncRecipeFromForm()
	}
	return s, cmd
}

func (s *RecipeScreen) syncRecipeFromForm() {
	s.recipe.Name = strings.TrimSpace(s.recipe.Name)
	if n, err := strconv.ParseInt(strings.TrimSpace(s.seedStr), 10, 64); err == nil {
		s.recipe.Seed = n
	}
	for _, f := range []struct {
		src string
		dst *int
	}{
		{s.cracksStr, &s.recipe.Cracks},
		{s.clustersStr, &s.recipe.Clusters},
		{s.seamsStr, &s.recipe.Seams},
		{s.mossStr, &s.recipe.Moss},
	} {
		if n, err := strconv.Atoi(strings.TrimSpace(f.src)); err == nil {
			*f.dst = n
		}
	}
}

// View implements tea.Model
func (s *RecipeScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		components.TitleStyle.Render("BLOCKFORGE WIZARD - Custom Recipe"),
		"",
		s.form.View(),
		"",
		s.helpPanel.View(),
		"",
		components.KeyHintStyle.Render("Tab: Next field | Enter: Submit | Esc: Discard"),
	)
}

// Done returns true if the form was completed or discarded
func (s *RecipeScreen) Done() bool {
	return s.done
}

// Discarded returns true if the user left without saving the recipe
func (s *RecipeScreen) Discarded() bool {
	return s.done && s.recipe.Name == ""
}

// Cancelled returns true if the user cancelled
func (s *RecipeScreen) Cancelled() bool {
	return s.cancelled
}
