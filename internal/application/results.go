package application

import (
	"github.com/mitchellh/mapstructure"

	"github.com/ntncli/ntn/internal/domain"
)

// Result types carry only the fields the CLI presents; everything else in
// the service's native resource shape is dropped here.

type LoginResult struct {
	User      string `json:"user,omitempty"`
	Workspace string `json:"workspace,omitempty"`
}

type AuthStatus struct {
	Authenticated bool   `json:"authenticated"`
	Workspace     string `json:"workspace,omitempty"`
}

type PageSummary struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Parent         string `json:"parent,omitempty"`
	CreatedTime    string `json:"created_time,omitempty"`
	LastEditedTime string `json:"last_edited_time,omitempty"`
	Archived       bool   `json:"archived"`
	URL            string `json:"url,omitempty"`
}

type PageDetail struct {
	PageSummary
	Content []string `json:"content,omitempty"`
}

type PageList struct {
	Pages   []PageSummary `json:"pages"`
	HasMore bool          `json:"has_more"`
}

type DatabaseSummary struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Parent         string `json:"parent,omitempty"`
	CreatedTime    string `json:"created_time,omitempty"`
	LastEditedTime string `json:"last_edited_time,omitempty"`
	Archived       bool   `json:"archived"`
	URL            string `json:"url,omitempty"`
}

type DatabaseList struct {
	Databases []DatabaseSummary `json:"databases"`
	HasMore   bool              `json:"has_more"`
}

type QueryResult struct {
	Results    []PageSummary `json:"results"`
	HasMore    bool          `json:"has_more"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

type AppendResult struct {
	PageID         string `json:"page_id"`
	BlocksAppended int    `json:"blocks_appended"`
}

// resourcePayload is the subset of the native resource shape the mapping
// step reads. Pages carry their title inside the property map; databases
// carry a top-level rich-text title.
type resourcePayload struct {
	ID             string         `mapstructure:"id"`
	CreatedTime    string         `mapstructure:"created_time"`
	LastEditedTime string         `mapstructure:"last_edited_time"`
	Archived       bool           `mapstructure:"archived"`
	URL            string         `mapstructure:"url"`
	Parent         map[string]any `mapstructure:"parent"`
	Properties     map[string]any `mapstructure:"properties"`
	Title          []any          `mapstructure:"title"`
}

// parentRef flattens the service's parent object to the referenced id.
// Workspace parents flatten to the literal "workspace".
func parentRef(parent map[string]any) string {
	kind, ok := parent["type"].(string)
	if !ok {
		return ""
	}
	if kind == "workspace" {
		return kind
	}
	if id, ok := parent[kind].(string); ok {
		return id
	}
	return ""
}

func decodeResource(object domain.Object) resourcePayload {
	var payload resourcePayload
	_ = mapstructure.Decode(object, &payload)
	return payload
}

func pageSummaryFrom(object domain.Object) PageSummary {
	payload := decodeResource(object)

	return PageSummary{
		ID:             payload.ID,
		Title:          domain.ExtractTitle(payload.Properties),
		Parent:         parentRef(payload.Parent),
		CreatedTime:    payload.CreatedTime,
		LastEditedTime: payload.LastEditedTime,
		Archived:       payload.Archived,
		URL:            payload.URL,
	}
}

func databaseSummaryFrom(object domain.Object) DatabaseSummary {
	payload := decodeResource(object)

	title := domain.RichTextPlain(payload.Title)
	if title == "" {
		title = domain.DefaultTitle
	}

	return DatabaseSummary{
		ID:             payload.ID,
		Title:          title,
		Parent:         parentRef(payload.Parent),
		CreatedTime:    payload.CreatedTime,
		LastEditedTime: payload.LastEditedTime,
		Archived:       payload.Archived,
		URL:            payload.URL,
	}
}

// blockText flattens one block into its plain text. Blocks without a
// rich-text payload (dividers, unsupported kinds) flatten to "".
func blockText(object domain.Object) string {
	var payload struct {
		Type string `mapstructure:"type"`
	}
	if err := mapstructure.Decode(object, &payload); err != nil || payload.Type == "" {
		return ""
	}

	value, ok := object[payload.Type].(map[string]any)
	if !ok {
		return ""
	}
	runs, ok := value["rich_text"].([]any)
	if !ok {
		return ""
	}

	return domain.RichTextPlain(runs)
}

type userPayload struct {
	Name string `mapstructure:"name"`
	Bot  struct {
		WorkspaceName string `mapstructure:"workspace_name"`
	} `mapstructure:"bot"`
}

func decodeUser(object domain.Object) userPayload {
	var payload userPayload
	_ = mapstructure.Decode(object, &payload)
	return payload
}
