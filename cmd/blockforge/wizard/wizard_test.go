package wizard

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrsinham/blockforge/cmd/blockforge/wizard/screens"
	"github.com/mrsinham/blockforge/cmd/blockforge/wizard/types"
	"github.com/mrsinham/blockforge/internal/export"
	"github.com/mrsinham/blockforge/internal/pack"
)

func testState(dir string) *WizardState {
	return &WizardState{
		Global: types.GlobalConfig{
			Name:         "test-pack",
			OutputDir:    dir,
			Seed:         42,
			Formats:      []string{"png", "dicom"},
			PreviewScale: 4,
			ContactSheet: true,
		},
		Textures: []string{"coal_vein", "ruby_vein"},
		Custom: []types.RecipeConfig{
			{
				Name:     "ruby_vein",
				Family:   "ore",
				Seed:     5001,
				Base:     "#65676a",
				Dark:     "#5a0a14",
				Mid:      "#a01428",
				Light:    "#e65064",
				Cracks:   2,
				Clusters: 5,
			},
		},
	}
}

func TestNewWizard_DefaultState(t *testing.T) {
	w := NewWizard(nil)

	if w.phase != PhaseGlobal {
		t.Errorf("Expected PhaseGlobal, got %d", w.phase)
	}
	if w.state.Global.OutputDir != "textures" {
		t.Errorf("Expected default output dir 'textures', got %s", w.state.Global.OutputDir)
	}
	if len(w.state.Global.Formats) != 1 || w.state.Global.Formats[0] != "png" {
		t.Errorf("Expected default formats [png], got %v", w.state.Global.Formats)
	}
	if w.globalScreen == nil {
		t.Error("Expected global screen to be created")
	}
}

func TestNewWizard_WithExistingState(t *testing.T) {
	state := testState("/out")
	w := NewWizard(state)

	if w.state != state {
		t.Error("Expected wizard to keep the given state")
	}
	if w.state.Global.Name != "test-pack" {
		t.Errorf("Expected name test-pack, got %s", w.state.Global.Name)
	}
}

func TestToOptions_BasicConversion(t *testing.T) {
	opts, err := ToOptions(testState("/out"))
	if err != nil {
		t.Fatalf("ToOptions failed: %v", err)
	}

	if opts.OutputDir != "/out" {
		t.Errorf("Expected OutputDir /out, got %s", opts.OutputDir)
	}
	if opts.Seed != 42 {
		t.Errorf("Expected Seed 42, got %d", opts.Seed)
	}
	if opts.Name != "test-pack" {
		t.Errorf("Expected Name test-pack, got %s", opts.Name)
	}
	if len(opts.Formats) != 2 || opts.Formats[0] != export.FormatPNG || opts.Formats[1] != export.FormatDICOM {
		t.Errorf("Expected formats [png dicom], got %v", opts.Formats)
	}
	if opts.PreviewScale != 4 || !opts.ContactSheet || opts.Atlas {
		t.Errorf("Unexpected outputs: preview=%d sheet=%v atlas=%v", opts.PreviewScale, opts.ContactSheet, opts.Atlas)
	}

	if len(opts.Recipes) != 2 {
		t.Fatalf("Expected 2 recipes, got %d", len(opts.Recipes))
	}
	if opts.Recipes[0].Name != "coal_vein" || opts.Recipes[1].Name != "ruby_vein" {
		t.Errorf("Expected [coal_vein ruby_vein], got [%s %s]", opts.Recipes[0].Name, opts.Recipes[1].Name)
	}
	ruby := opts.Recipes[1]
	if ruby.Ore.Cracks != 2 || ruby.Ore.Clusters != 5 {
		t.Errorf("Expected cracks 2 clusters 5, got %d %d", ruby.Ore.Cracks, ruby.Ore.Clusters)
	}
}

func TestToOptions_EmptySelectionUsesCatalog(t *testing.T) {
	state := DefaultState(t.TempDir())
	opts, err := ToOptions(state)
	if err != nil {
		t.Fatalf("ToOptions failed: %v", err)
	}
	if len(opts.Recipes) != 8 {
		t.Errorf("Expected the 8 built-in textures, got %d", len(opts.Recipes))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *WizardState)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(s *WizardState) {},
		},
		{
			name:    "unknown texture",
			mutate:  func(s *WizardState) { s.Textures = []string{"lava"} },
			wantErr: "lava",
		},
		{
			name:    "bad format",
			mutate:  func(s *WizardState) { s.Global.Formats = []string{"jpeg"} },
			wantErr: "jpeg",
		},
		{
			name:    "bad color",
			mutate:  func(s *WizardState) { s.Custom[0].Dark = "#zzz" },
			wantErr: "ruby_vein",
		},
		{
			name:    "negative preview scale",
			mutate:  func(s *WizardState) { s.Global.PreviewScale = -1 },
			wantErr: "preview_scale",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := testState("/out")
			tt.mutate(state)
			err := Validate(state)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSaveState_AndLoadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pack.yaml")
	original := testState("/out")
	original.Custom = append(original.Custom,
		types.RecipeConfig{Name: "sand_layers", Family: "banded", Seed: 7, Top: "#d8c99b", Bottom: "#c2b280"},
		types.RecipeConfig{Name: "old_wall", Family: "rubble", Seed: 8, Base: "#6a6e6b", Seams: 4, Moss: 2},
		types.RecipeConfig{Name: "fern", Family: "sprite", Seed: 9, Kind: "grass"},
	)

	if err := SaveState(original, path); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	loaded, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}

	if loaded.Global.Name != original.Global.Name || loaded.Global.Seed != original.Global.Seed {
		t.Errorf("Global mismatch: got %+v", loaded.Global)
	}
	if strings.Join(loaded.Global.Formats, ",") != "png,dicom" {
		t.Errorf("Expected formats png,dicom, got %v", loaded.Global.Formats)
	}
	if strings.Join(loaded.Textures, ",") != "coal_vein,ruby_vein" {
		t.Errorf("Expected textures coal_vein,ruby_vein, got %v", loaded.Textures)
	}
	if len(loaded.Custom) != 4 {
		t.Fatalf("Expected 4 custom recipes, got %d", len(loaded.Custom))
	}

	ruby := loaded.Custom[0]
	if ruby.Dark != "#5a0a14" || ruby.Cracks != 2 || ruby.Clusters != 5 {
		t.Errorf("Ore recipe mismatch: %+v", ruby)
	}
	sand := loaded.Custom[1]
	if sand.Top != "#d8c99b" || sand.Bottom != "#c2b280" {
		t.Errorf("Banded recipe mismatch: %+v", sand)
	}
	wall := loaded.Custom[2]
	if wall.Base != "#6a6e6b" || wall.Seams != 4 || wall.Moss != 2 {
		t.Errorf("Rubble recipe mismatch: %+v", wall)
	}
	if loaded.Custom[3].Kind != "grass" {
		t.Errorf("Expected sprite kind grass, got %s", loaded.Custom[3].Kind)
	}
}

func TestLoadState_NonExistentFile(t *testing.T) {
	if _, err := LoadState(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing pack file")
	}
}

func TestFromPackFile_FillsDefaults(t *testing.T) {
	state := FromPackFile(&pack.PackFile{Name: "bare"})
	if state.Global.OutputDir != "textures" {
		t.Errorf("Expected output dir textures, got %s", state.Global.OutputDir)
	}
	if len(state.Global.Formats) != 1 || state.Global.Formats[0] != "png" {
		t.Errorf("Expected formats [png], got %v", state.Global.Formats)
	}
}

func TestNewRecipeConfig_DefaultsToOre(t *testing.T) {
	rc := NewRecipeConfig("")
	if rc.Family != "ore" {
		t.Errorf("Expected family ore, got %s", rc.Family)
	}
	if rc.Name != "" {
		t.Errorf("Expected empty name, got %s", rc.Name)
	}
	// A prefilled recipe only needs a name to be valid
	rc.Name = "fresh"
	if _, err := toRecipeSpec(rc).Recipe(); err != nil {
		t.Errorf("Prefilled recipe is invalid: %v", err)
	}
}

func TestCLICommand(t *testing.T) {
	tests := []struct {
		name  string
		state *WizardState
		want  string
	}{
		{
			name:  "defaults",
			state: DefaultState(""),
			want:  "blockforge generate",
		},
		{
			name: "built-in selection",
			state: &WizardState{
				Global: types.GlobalConfig{
					OutputDir:    "out",
					Seed:         7,
					Formats:      []string{"png", "dicom"},
					PreviewScale: 8,
					Atlas:        true,
				},
				Textures: []string{"coal_vein", "wildflower"},
			},
			want: "blockforge generate --output out --seed 7 --format png,dicom --preview-scale 8 --atlas coal_vein wildflower",
		},
		{
			name:  "custom recipes need a pack file",
			state: testState("textures"),
			want:  "blockforge generate --pack <saved pack file> --seed 42 --format png,dicom --preview-scale 4 --contact-sheet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := screens.CLICommand(tt.state); got != tt.want {
				t.Errorf("CLICommand() =\n  %s\nwant\n  %s", got, tt.want)
			}
		})
	}
}

func TestAddRecipe_SelectsWhenSelectionIsExplicit(t *testing.T) {
	w := NewWizard(testState("/out"))
	w.addRecipe(types.RecipeConfig{Name: "fern", Family: "sprite", Kind: "grass"})

	if len(w.state.Custom) != 2 {
		t.Errorf("Expected 2 custom recipes, got %d", len(w.state.Custom))
	}
	if got := strings.Join(w.state.Textures, ","); got != "coal_vein,ruby_vein,fern" {
		t.Errorf("Expected fern to be selected, got %s", got)
	}
}

func TestAddRecipe_KeepsEmptySelection(t *testing.T) {
	w := NewWizard(DefaultState(""))
	w.addRecipe(types.RecipeConfig{Name: "fern", Family: "sprite", Kind: "grass"})

	if len(w.state.Textures) != 0 {
		t.Errorf("Expected empty selection to stay empty, got %v", w.state.Textures)
	}
}

func TestTransitionToSummary(t *testing.T) {
	w := NewWizard(testState("/out"))
	w.transitionToSummary("hello")

	if w.phase != PhaseSummary {
		t.Errorf("Expected PhaseSummary, got %d", w.phase)
	}
	if w.summaryScreen == nil {
		t.Fatal("Expected summary screen to be created")
	}
	if !strings.Contains(w.summaryScreen.View(), "hello") {
		t.Error("Expected summary to show the notice")
	}
}

func TestStartGeneration_WritesPack(t *testing.T) {
	dir := t.TempDir()
	state := testState(dir)
	state.Global.Formats = []string{"png"}

	w := NewWizard(state)
	var progress []screens.ProgressMsg
	w.send = func(msg tea.Msg) {
		if pm, ok := msg.(screens.ProgressMsg); ok {
			progress = append(progress, pm)
		}
	}
	_, cmd := w.startGeneration()
	if w.phase != PhaseProgress {
		t.Fatalf("Expected PhaseProgress, got %d", w.phase)
	}
	if cmd == nil {
		t.Fatal("Expected a generation command")
	}

	msg := cmd()
	done, ok := msg.(screens.CompletionMsg)
	if !ok {
		t.Fatalf("Expected CompletionMsg, got %T", msg)
	}
	if done.Textures != 2 {
		t.Errorf("Expected 2 textures, got %d", done.Textures)
	}
	// One PNG and one preview per texture
	if done.Files != 4 {
		t.Errorf("Expected 4 files, got %d", done.Files)
	}
	if len(done.Extras) != 2 {
		t.Errorf("Expected contact sheet and manifest extras, got %v", done.Extras)
	}
	for _, extra := range done.Extras {
		if _, err := os.Stat(extra); err != nil {
			t.Errorf("Expected %s to exist: %v", extra, err)
		}
	}
	if len(progress) != 2 || progress[1].Current != 2 || progress[1].Total != 2 {
		t.Errorf("Expected progress 1/2 then 2/2, got %v", progress)
	}
}

func TestStartGeneration_InvalidState(t *testing.T) {
	state := testState(t.TempDir())
	state.Textures = []string{"lava"}

	w := NewWizard(state)
	_, cmd := w.startGeneration()
	if cmd != nil {
		t.Error("Expected no command for an invalid state")
	}
	if w.phase != PhaseError {
		t.Errorf("Expected PhaseError, got %d", w.phase)
	}
	if w.err == nil {
		t.Error("Expected wizard error to be set")
	}
}

func TestUpdateProgress_Messages(t *testing.T) {
	w := NewWizard(nil)
	w.phase = PhaseProgress
	w.progressScreen = screens.NewProgressScreen(3)

	w.Update(screens.ProgressMsg{Current: 2, Total: 3})
	if !strings.Contains(w.View(), "Texture 2/3") {
		t.Errorf("Expected progress view to show 2/3, got:\n%s", w.View())
	}

	w.Update(screens.CompletionMsg{Textures: 3, Files: 3, Duration: time.Second, OutputDir: "out"})
	if w.phase != PhaseComplete {
		t.Errorf("Expected PhaseComplete, got %d", w.phase)
	}

	w.phase = PhaseProgress
	boom := errors.New("boom")
	w.Update(screens.ErrorMsg{Error: boom})
	if w.phase != PhaseError {
		t.Errorf("Expected PhaseError, got %d", w.phase)
	}
	if !errors.Is(w.err, boom) {
		t.Errorf("Expected wizard error boom, got %v", w.err)
	}
}
