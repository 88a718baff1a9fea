package util

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// ClosestName finds the closest candidate to input using Levenshtein
// distance. Returns empty string if no candidate is close enough; the allowed
// distance grows with the candidate length. Ties go to the candidate listed
// first.
func ClosestName(input string, candidates []string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return ""
	}

	bestDistance := -1
	var bestMatch string
	for _, c := range candidates {
		distance := levenshtein.ComputeDistance(normalized, strings.ToLower(c))
		if distance > distanceLimit(len(c)) {
			continue
		}
		if bestDistance < 0 || distance < bestDistance {
			bestDistance = distance
			bestMatch = c
		}
	}
	return bestMatch
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
