package study

import (
	"fmt"
	"strings"

	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
)

// TopicAll is the topic selector value that matches every entry.
const TopicAll = "all"

// Filter returns the subsequence of entries matching both criteria, in the
// original relative order. The query matches case-insensitively as a
// substring of topic, description, or any keyword. The topic selector is
// either TopicAll or an exact topic string. Filtering is idempotent and an
// empty query with TopicAll returns the input unchanged.
func Filter(entries []entities.TimestampEntry, query, topic string) []entities.TimestampEntry {
	q := strings.ToLower(strings.TrimSpace(query))

	filtered := make([]entities.TimestampEntry, 0, len(entries))
	for _, entry := range entries {
		if !matchesTopic(entry, topic) {
			continue
		}
		if q != "" && !matchesQuery(entry, q) {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered
}

func matchesTopic(entry entities.TimestampEntry, topic string) bool {
	return topic == "" || topic == TopicAll || entry.Topic == topic
}

func matchesQuery(entry entities.TimestampEntry, q string) bool {
	if strings.Contains(strings.ToLower(entry.Topic), q) {
		return true
	}
	if strings.Contains(strings.ToLower(entry.Description), q) {
		return true
	}
	for _, kw := range entry.Keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
	}
	return false
}

// TopicOptions returns the selector values offered to the user: TopicAll
// followed by the de-duplicated topics in first-seen order.
func TopicOptions(entries []entities.TimestampEntry) []string {
	options := []string{TopicAll}
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if _, ok := seen[entry.Topic]; ok {
			continue
		}
		seen[entry.Topic] = struct{}{}
		options = append(options, entry.Topic)
	}
	return options
}

// Select resolves the watch URL for the entry at index and hands it to the
// caller-supplied open callback. Navigation stays a caller concern; the
// engine never touches a browser itself.
func Select(videoID string, entries []entities.TimestampEntry, index int, open func(url string) error) error {
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("timestamp index %d out of range (have %d entries)", index, len(entries))
	}
	return open(entities.WatchURLAt(videoID, entries[index].Seconds))
}
