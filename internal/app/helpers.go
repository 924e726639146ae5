package app

import (
	"strings"
)

// ParseWasteTypes splits a comma separated waste type list, dropping blanks
func ParseWasteTypes(s string) []string {
	var types []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}
