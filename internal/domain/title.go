package domain

import (
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// DefaultTitle is used when a resource has no title-typed property.
const DefaultTitle = "Untitled"

// conventionalTitleKeys are checked before scanning the whole property
// map. The order matters: a property under one of these names wins over
// any other title-typed property.
var conventionalTitleKeys = []string{"title", "Name", "Title"}

type titleProperty struct {
	Type  string     `mapstructure:"type"`
	Title []richText `mapstructure:"title"`
}

type richText struct {
	PlainText string `mapstructure:"plain_text"`
}

// ExtractTitle derives a display title from a resource's property map.
// Conventional property names are tried first; after that every property
// is scanned in sorted key order so the result is deterministic even when
// several title-typed properties exist.
func ExtractTitle(properties map[string]any) string {
	for _, key := range conventionalTitleKeys {
		if title, ok := titleFromProperty(properties[key]); ok {
			return orDefault(title)
		}
	}

	keys := make([]string, 0, len(properties))
	for key := range properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if title, ok := titleFromProperty(properties[key]); ok {
			return orDefault(title)
		}
	}

	return DefaultTitle
}

func orDefault(title string) string {
	if title == "" {
		return DefaultTitle
	}
	return title
}

func titleFromProperty(raw any) (string, bool) {
	if raw == nil {
		return "", false
	}

	var property titleProperty
	if err := mapstructure.Decode(raw, &property); err != nil {
		return "", false
	}

	// The type discriminator is optional: a property carrying a bare
	// title rich-text array still reads as title-typed.
	switch property.Type {
	case "title":
	case "":
		if property.Title == nil {
			return "", false
		}
	default:
		return "", false
	}

	return joinRichText(property.Title), true
}

// RichTextPlain joins the plain-text runs of a rich-text array. Items that
// do not decode are skipped.
func RichTextPlain(items []any) string {
	runs := make([]richText, 0, len(items))
	for _, item := range items {
		var run richText
		if err := mapstructure.Decode(item, &run); err != nil {
			continue
		}
		runs = append(runs, run)
	}

	return joinRichText(runs)
}

func joinRichText(runs []richText) string {
	parts := make([]string, 0, len(runs))
	for _, run := range runs {
		parts = append(parts, run.PlainText)
	}

	return strings.Join(parts, "")
}
