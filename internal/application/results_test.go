package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ntncli/ntn/internal/domain"
)

func TestPageSummaryFlattensParentReference(t *testing.T) {
	summary := pageSummaryFrom(domain.Object{
		"id":     "p1",
		"parent": map[string]any{"type": "page_id", "page_id": "parent-7"},
	})

	assert.Equal(t, "parent-7", summary.Parent)
}

func TestDatabaseSummaryWorkspaceParent(t *testing.T) {
	summary := databaseSummaryFrom(domain.Object{
		"id":     "db-1",
		"title":  []any{map[string]any{"plain_text": "Tasks"}},
		"parent": map[string]any{"type": "workspace", "workspace": true},
	})

	assert.Equal(t, "workspace", summary.Parent)
	assert.Equal(t, "Tasks", summary.Title)
}

func TestSummariesWithoutParentStayEmpty(t *testing.T) {
	summary := pageSummaryFrom(domain.Object{"id": "p1"})

	assert.Empty(t, summary.Parent)
}
