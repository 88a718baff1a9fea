package forge

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/valyala/fasttemplate"
)

// PromptsFile is the TOML batch description:
//
//	style = "16x16 pixel art"
//
//	[[textures]]
//	name = "coal_vein"
//	prompt = "{{style}} stone block with coal, named {{name}}"
type PromptsFile struct {
	Style    string        `toml:"style,omitempty"`
	Textures []PromptEntry `toml:"textures"`
}

// PromptEntry is one texture to request.
type PromptEntry struct {
	Name   string `toml:"name"`
	Prompt string `toml:"prompt"`
}

// Item is a rendered, ready to send batch entry.
type Item struct {
	Name   string
	Prompt string
}

// LoadPrompts reads and validates a prompts file.
func LoadPrompts(path string) (*PromptsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}
	return ParsePrompts(data)
}

// ParsePrompts decodes and validates prompts file content.
func ParsePrompts(data []byte) (*PromptsFile, error) {
	var pf PromptsFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse prompts file: %w", err)
	}

	seen := make(map[string]bool, len(pf.Textures))
	for i, t := range pf.Textures {
		name := strings.TrimSpace(t.Name)
		switch {
		case name == "":
			return nil, fmt.Errorf("textures[%d]: name is required", i)
		case strings.ContainsAny(name, `/\`) || name == "." || name == "..":
			return nil, fmt.Errorf("textures[%d]: name %q must be a plain file name", i, name)
		case strings.TrimSpace(t.Prompt) == "":
			return nil, fmt.Errorf("textures[%d] %s: prompt is required", i, name)
		case seen[name]:
			return nil, fmt.Errorf("textures[%d]: duplicate name %q", i, name)
		}
		seen[name] = true
		pf.Textures[i].Name = name
	}
	return &pf, nil
}

// Items renders every prompt template. Supported placeholders are {{name}}
// and {{style}}; any other placeholder is an error.
func (pf *PromptsFile) Items() ([]Item, error) {
	items := make([]Item, 0, len(pf.Textures))
	for _, t := range pf.Textures {
		prompt, err := renderPrompt(t.Prompt, map[string]string{"name": t.Name, "style": pf.Style})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name, err)
		}
		items = append(items, Item{Name: t.Name, Prompt: prompt})
	}
	return items, nil
}

func renderPrompt(prompt string, vars map[string]string) (string, error) {
	tpl, err := fasttemplate.NewTemplate(prompt, "{{", "}}")
	if err != nil {
		return "", fmt.Errorf("invalid prompt template: %w", err)
	}
	return tpl.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		v, ok := vars[strings.TrimSpace(tag)]
		if !ok {
			return 0, fmt.Errorf("unknown placeholder {{%s}}", tag)
		}
		return w.Write([]byte(v))
	})
}
