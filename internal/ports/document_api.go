package ports

import (
	"context"
	"encoding/json"

	"github.com/ntncli/ntn/internal/domain"
)

// ObjectList is one page of results from a list-shaped endpoint.
type ObjectList struct {
	Results    []domain.Object
	HasMore    bool
	NextCursor string
}

type CreatePageParams struct {
	ParentPageID string
	Title        string
	// Content lines become paragraph child blocks on the new page.
	Content []string
}

type UpdatePageParams struct {
	Title    string
	Archived *bool
}

type QueryDatabaseParams struct {
	Filter   json.RawMessage
	Sorts    json.RawMessage
	PageSize int
}

type CreateDatabaseParams struct {
	ParentPageID string
	Title        string
	// Schema is the raw property schema object; when nil the service
	// still requires one title property, which the client supplies.
	Schema json.RawMessage
}

type UpdateDatabaseParams struct {
	Title    string
	Schema   json.RawMessage
	Archived *bool
}

// DocumentAPI is an authenticated session against the remote document
// service. Operations map 1:1 onto remote endpoints and return resources
// in the service's native shape.
type DocumentAPI interface {
	WhoAmI(ctx context.Context) (domain.Object, error)
	Search(ctx context.Context, object string, pageSize int) (ObjectList, error)

	GetPage(ctx context.Context, id string) (domain.Object, error)
	CreatePage(ctx context.Context, params CreatePageParams) (domain.Object, error)
	UpdatePage(ctx context.Context, id string, params UpdatePageParams) (domain.Object, error)

	GetDatabase(ctx context.Context, id string) (domain.Object, error)
	QueryDatabase(ctx context.Context, id string, params QueryDatabaseParams) (ObjectList, error)
	CreateDatabase(ctx context.Context, params CreateDatabaseParams) (domain.Object, error)
	UpdateDatabase(ctx context.Context, id string, params UpdateDatabaseParams) (domain.Object, error)

	ListBlockChildren(ctx context.Context, id string) (ObjectList, error)
	AppendBlockChildren(ctx context.Context, id string, paragraphs []string) (ObjectList, error)
}
