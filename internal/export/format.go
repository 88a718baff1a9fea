// Package export writes generated canvases to disk: PNG files, upscaled
// previews, labelled contact sheets and DICOM secondary captures.
package export

import (
	"fmt"
	"strings"
)

// Format is an output file format for generated textures
type Format string

const (
	FormatPNG   Format = "png"
	FormatDICOM Format = "dicom"
)

// AllFormats returns all valid output formats
func AllFormats() []Format {
	return []Format{FormatPNG, FormatDICOM}
}

// Extension returns the file extension, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatDICOM:
		return ".dcm"
	default:
		return ".png"
	}
}

// ParseFormats parses comma-separated formats.
// The special value "all" enables every format. Empty input means PNG only.
func ParseFormats(input string) ([]Format, error) {
	if strings.TrimSpace(input) == "" {
		return []Format{FormatPNG}, nil
	}

	valid := make(map[Format]bool)
	for _, f := range AllFormats() {
		valid[f] = true
	}

	parts := strings.Split(input, ",")
	result := make([]Format, 0, len(parts))
	seen := make(map[Format]bool)
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if p == "all" {
			return AllFormats(), nil
		}
		f := Format(p)
		if !valid[f] {
			return nil, fmt.Errorf("unknown format %q, valid formats: %v (or 'all')", p, AllFormats())
		}
		if !seen[f] {
			result = append(result, f)
			seen[f] = true
		}
	}
	return result, nil
}

// FormatStrings converts formats back to their string form.
func FormatStrings(formats []Format) []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out
}
