package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titleProp(text string) map[string]any {
	return map[string]any{
		"type":  "title",
		"title": []any{map[string]any{"plain_text": text}},
	}
}

func TestExtractTitleFromConventionalTitleKey(t *testing.T) {
	properties := map[string]any{"title": titleProp("Foo")}

	assert.Equal(t, "Foo", ExtractTitle(properties))
}

func TestExtractTitleFromNameKey(t *testing.T) {
	properties := map[string]any{"Name": titleProp("Bar")}

	assert.Equal(t, "Bar", ExtractTitle(properties))
}

func TestExtractTitleScansWhenNoConventionalKeyMatches(t *testing.T) {
	properties := map[string]any{
		"Status":  map[string]any{"type": "select"},
		"Heading": titleProp("Scanned"),
	}

	assert.Equal(t, "Scanned", ExtractTitle(properties))
}

func TestExtractTitleDefaultsToUntitled(t *testing.T) {
	assert.Equal(t, DefaultTitle, ExtractTitle(nil))
	assert.Equal(t, DefaultTitle, ExtractTitle(map[string]any{
		"Status": map[string]any{"type": "select"},
	}))
}

func TestExtractTitlePrefersConventionalOverOtherTitleProperties(t *testing.T) {
	properties := map[string]any{
		"Aaa":  titleProp("Wrong"),
		"Name": titleProp("Right"),
	}

	assert.Equal(t, "Right", ExtractTitle(properties))
}

func TestExtractTitleTieBreaksBySortedKeyOrder(t *testing.T) {
	// Two non-conventional title-typed properties: the first in sorted
	// key order wins, deterministically.
	properties := map[string]any{
		"Beta":  titleProp("Second"),
		"Alpha": titleProp("First"),
	}

	for range 10 {
		assert.Equal(t, "First", ExtractTitle(properties))
	}
}

func TestExtractTitleJoinsMultipleRuns(t *testing.T) {
	properties := map[string]any{
		"title": map[string]any{
			"type": "title",
			"title": []any{
				map[string]any{"plain_text": "Hello "},
				map[string]any{"plain_text": "World"},
			},
		},
	}

	assert.Equal(t, "Hello World", ExtractTitle(properties))
}

func TestExtractTitleAcceptsPropertyWithoutTypeDiscriminator(t *testing.T) {
	properties := map[string]any{
		"title": map[string]any{
			"title": []any{map[string]any{"plain_text": "Foo"}},
		},
	}

	assert.Equal(t, "Foo", ExtractTitle(properties))
}

func TestExtractTitleScanAcceptsPropertyWithoutTypeDiscriminator(t *testing.T) {
	properties := map[string]any{
		"Heading": map[string]any{
			"title": []any{map[string]any{"plain_text": "Scanned"}},
		},
		"Status": map[string]any{"select": map[string]any{"name": "Open"}},
	}

	assert.Equal(t, "Scanned", ExtractTitle(properties))
}

func TestExtractTitleRejectsTypedNonTitleWithTitleArray(t *testing.T) {
	properties := map[string]any{
		"Weird": map[string]any{
			"type":  "rich_text",
			"title": []any{map[string]any{"plain_text": "Nope"}},
		},
	}

	assert.Equal(t, DefaultTitle, ExtractTitle(properties))
}

func TestExtractTitleEmptyTitlePropertyReadsUntitled(t *testing.T) {
	properties := map[string]any{
		"title": map[string]any{"type": "title", "title": []any{}},
	}

	assert.Equal(t, DefaultTitle, ExtractTitle(properties))
}

func TestRichTextPlainSkipsUndecodableItems(t *testing.T) {
	text := RichTextPlain([]any{
		map[string]any{"plain_text": "a"},
		"not a map",
		map[string]any{"plain_text": "b"},
	})

	require.Equal(t, "ab", text)
}

func TestRecordWithoutTokenHasNoToken(t *testing.T) {
	assert.False(t, Record{}.HasToken())
	assert.False(t, Record{Token: "  "}.HasToken())
	assert.True(t, Record{Token: "tkn"}.HasToken())
}
