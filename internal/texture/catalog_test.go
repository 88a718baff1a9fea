package texture

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultCatalog_Names(t *testing.T) {
	want := []string{
		"clay_deposit", "coal_vein", "copper_vein", "diamond_vein",
		"gold_vein", "mossy_rubble", "tall_grass", "wildflower",
	}
	got := DefaultCatalog().Names()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestDefaultCatalog_Seeds(t *testing.T) {
	want := map[string]int64{
		"coal_vein": 1001, "copper_vein": 1002, "gold_vein": 1003, "diamond_vein": 1004,
		"tall_grass": 2001, "wildflower": 2002, "clay_deposit": 3001, "mossy_rubble": 4001,
	}
	for _, r := range DefaultCatalog().Recipes() {
		if r.Seed != want[r.Name] {
			t.Errorf("%s seed = %d, want %d", r.Name, r.Seed, want[r.Name])
		}
		if err := r.Validate(); err != nil {
			t.Errorf("%s invalid: %v", r.Name, err)
		}
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c := DefaultCatalog()

	r, err := c.Lookup("GOLD_VEIN")
	if err != nil {
		t.Fatalf("Lookup(GOLD_VEIN) error: %v", err)
	}
	if r.Name != "gold_vein" {
		t.Errorf("Lookup returned %q", r.Name)
	}

	_, err = c.Lookup("coal_vien")
	if err == nil || !strings.Contains(err.Error(), `did you mean "coal_vein"`) {
		t.Errorf("Lookup(coal_vien) error = %v, want suggestion", err)
	}

	_, err = c.Lookup("zzzzzzzzzzzzzzzz")
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("Lookup(zzz...) error = %v, want plain unknown texture", err)
	}
}

func TestCatalog_LookupCaseCollision(t *testing.T) {
	c, err := NewCatalog(
		Recipe{Name: "moss", Seed: 1, Family: FamilySprite, Sprite: SpriteParams{Kind: SpriteGrass}},
		Recipe{Name: "Moss", Seed: 2, Family: FamilySprite, Sprite: SpriteParams{Kind: SpriteFlower}},
	)
	if err != nil {
		t.Fatalf("NewCatalog() error: %v", err)
	}
	for i := 0; i < 50; i++ {
		r, err := c.Lookup("MOSS")
		if err != nil {
			t.Fatalf("Lookup(MOSS) error: %v", err)
		}
		if r.Name != "Moss" {
			t.Fatalf("Lookup(MOSS) returned %q on attempt %d, want Moss", r.Name, i)
		}
	}
}

func TestCatalog_Select(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		name     string
		patterns []string
		want     []string
		wantErr  bool
	}{
		{"all", nil, c.Names(), false},
		{"veins", []string{"*_vein"}, []string{"coal_vein", "copper_vein", "diamond_vein", "gold_vein"}, false},
		{"mixed and deduplicated", []string{"wildflower", "w*", "c*_vein"}, []string{"coal_vein", "copper_vein", "wildflower"}, false},
		{"no match", []string{"lava_*"}, nil, true},
		{"unknown name", []string{"lava"}, nil, true},
		{"bad pattern", []string{"[a-"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes, err := c.Select(tt.patterns...)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Select() error: %v", err)
			}
			var got []string
			for _, r := range recipes {
				got = append(got, r.Name)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Select() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewCatalog_RejectsDuplicatesAndInvalid(t *testing.T) {
	r := Recipe{Name: "grass", Seed: 1, Family: FamilySprite, Sprite: SpriteParams{Kind: SpriteGrass}}
	if _, err := NewCatalog(r, r); !errors.Is(err, ErrInvalidRecipe) {
		t.Errorf("duplicate names: error = %v", err)
	}

	bad := r
	bad.Sprite.Kind = "tree"
	if _, err := NewCatalog(bad); !errors.Is(err, ErrInvalidRecipe) {
		t.Errorf("invalid recipe: error = %v", err)
	}
}

func TestCatalog_Merge(t *testing.T) {
	base := DefaultCatalog()
	custom, err := NewCatalog(
		Recipe{Name: "coal_vein", Seed: 7, Family: FamilySprite, Sprite: SpriteParams{Kind: SpriteGrass}},
		Recipe{Name: "fern", Seed: 8, Family: FamilySprite, Sprite: SpriteParams{Kind: SpriteGrass}},
	)
	if err != nil {
		t.Fatal(err)
	}
	base.Merge(custom)
	if base.Len() != 9 {
		t.Errorf("Len() = %d, want 9", base.Len())
	}
	coal, _ := base.Lookup("coal_vein")
	if coal.Seed != 7 {
		t.Errorf("merged coal_vein seed = %d, want 7", coal.Seed)
	}
}
