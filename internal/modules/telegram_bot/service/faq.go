package service

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// FAQ answers common questions instantly, without an AI round trip.
// Entries live in a yaml file so copy edits don't need a rebuild.
type FAQ struct {
	entries map[string]string
}

// fuzzyGroups routes loose phrasing onto a canonical entry key.
var fuzzyGroups = []struct {
	words []string
	key   string
}{
	{[]string{"lot", "size", "calculate", "position"}, "how to calculate lot size"},
	{[]string{"stop", "loss", "sl"}, "what is stop loss"},
	{[]string{"take", "profit", "tp", "target"}, "what is take profit"},
	{[]string{"start", "begin", "beginner", "new"}, "how do i start trading"},
	{[]string{"what is forex", "forex trading", "currency"}, "what is forex"},
}

func LoadFAQ(path string) (*FAQ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read faq file: %w", err)
	}

	entries := make(map[string]string)
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode faq file: %w", err)
	}

	return &FAQ{entries: entries}, nil
}

// Search tries a direct key match first, then keyword fuzzing.
func (f *FAQ) Search(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}

	for key, response := range f.entries {
		if strings.Contains(q, key) || strings.Contains(key, q) {
			return response, true
		}
	}

	for _, group := range fuzzyGroups {
		for _, w := range group.words {
			if strings.Contains(q, w) {
				if response, ok := f.entries[group.key]; ok {
					return response, true
				}
			}
		}
	}

	return "", false
}
