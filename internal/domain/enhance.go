package domain

import (
	"fmt"
	"path"
	"strings"
)

var topicReplacer = strings.NewReplacer("_", " ", "-", " ")

// EnhanceChunk prefixes chunk text with contextual tags so stored passages
// and queries are embedded in a consistent semantic space. Empty tags are
// omitted; the Content line is always last.
func EnhanceChunk(text, subject, topic string, page int) string {
	parts := make([]string, 0, 4)
	if subject != "" {
		parts = append(parts, "Subject: "+subject)
	}
	if topic != "" {
		parts = append(parts, "Topic: "+topic)
	}
	if page > 0 {
		parts = append(parts, fmt.Sprintf("Page: %d", page))
	}
	parts = append(parts, "Content: "+text)
	return strings.Join(parts, "\n")
}

// EnhanceQuery mirrors EnhanceChunk for query text. Queries carry no page tag.
func EnhanceQuery(query, subject, topic string) string {
	parts := make([]string, 0, 3)
	if subject != "" {
		parts = append(parts, "Subject: "+subject)
	}
	if topic != "" {
		parts = append(parts, "Topic: "+topic)
	}
	parts = append(parts, "Content: "+query)
	return strings.Join(parts, "\n")
}

// TopicFromName derives a topic tag from a document file name: extension
// stripped, underscores and hyphens turned into spaces.
func TopicFromName(name string) string {
	topic := strings.TrimSuffix(name, path.Ext(name))
	return strings.TrimSpace(topicReplacer.Replace(topic))
}
