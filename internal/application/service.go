package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/ntncli/ntn/internal/domain"
	"github.com/ntncli/ntn/internal/ports"
)

// Service implements the user-facing operations: validate the input, run
// the remote call inside the current session, and shape the response into
// the minimal result the CLI prints.
type Service struct {
	store  ports.CredentialStore
	newAPI func(token string) ports.DocumentAPI
	logger hclog.Logger
}

func NewService(store ports.CredentialStore, newAPI func(token string) ports.DocumentAPI, logger hclog.Logger) *Service {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Service{
		store:  store,
		newAPI: newAPI,
		logger: logger,
	}
}

func (s *Service) session(ctx context.Context) (ports.DocumentAPI, error) {
	token, err := s.store.RequireToken(ctx)
	if err != nil {
		return nil, err
	}

	return s.newAPI(token), nil
}

// whoAmI is the single token-validation call path: one lightweight
// authenticated request against the prospective token.
func (s *Service) whoAmI(ctx context.Context, token string) (domain.Object, error) {
	me, err := s.newAPI(token).WhoAmI(ctx)
	if err != nil {
		s.logger.Debug("token validation failed", "error", err)
		return nil, err
	}

	return me, nil
}

// ValidateToken reports whether the token passes the validation call.
// Every kind of failure reads as false; callers cannot tell a bad token
// from an unreachable service here.
func (s *Service) ValidateToken(ctx context.Context, token string) bool {
	_, err := s.whoAmI(ctx, token)
	return err == nil
}

// Login validates the token against the service and persists it. Nothing
// is written when validation fails.
func (s *Service) Login(ctx context.Context, token string) (LoginResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return LoginResult{}, domain.NewInvalidInput("missing token: pass it as an argument or set NOTION_TOKEN")
	}

	me, err := s.whoAmI(ctx, token)
	if err != nil {
		return LoginResult{}, domain.ErrInvalidToken
	}

	user := decodeUser(me)
	record := domain.Record{
		Token:            token,
		DefaultWorkspace: user.Bot.WorkspaceName,
	}
	if err := s.store.Save(ctx, record); err != nil {
		return LoginResult{}, fmt.Errorf("save credentials: %w", err)
	}

	return LoginResult{User: user.Name, Workspace: user.Bot.WorkspaceName}, nil
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx); err != nil {
		return fmt.Errorf("remove credentials: %w", err)
	}

	return nil
}

// Status reports the stored credential state without touching the
// network.
func (s *Service) Status(ctx context.Context) (AuthStatus, error) {
	record, ok := s.store.Load(ctx)
	if !ok || !record.HasToken() {
		return AuthStatus{Authenticated: false}, nil
	}

	return AuthStatus{Authenticated: true, Workspace: record.DefaultWorkspace}, nil
}

func (s *Service) ListPages(ctx context.Context, limit int) (PageList, error) {
	api, err := s.session(ctx)
	if err != nil {
		return PageList{}, err
	}

	list, err := api.Search(ctx, "page", limit)
	if err != nil {
		return PageList{}, err
	}

	pages := make([]PageSummary, 0, len(list.Results))
	for _, object := range list.Results {
		pages = append(pages, pageSummaryFrom(object))
	}

	return PageList{Pages: pages, HasMore: list.HasMore}, nil
}

func (s *Service) GetPage(ctx context.Context, id string, withContent bool) (PageDetail, error) {
	if strings.TrimSpace(id) == "" {
		return PageDetail{}, domain.NewInvalidInput("missing page id")
	}

	api, err := s.session(ctx)
	if err != nil {
		return PageDetail{}, err
	}

	object, err := api.GetPage(ctx, id)
	if err != nil {
		return PageDetail{}, err
	}

	detail := PageDetail{PageSummary: pageSummaryFrom(object)}
	if !withContent {
		return detail, nil
	}

	blocks, err := api.ListBlockChildren(ctx, id)
	if err != nil {
		return PageDetail{}, err
	}
	for _, block := range blocks.Results {
		if text := blockText(block); text != "" {
			detail.Content = append(detail.Content, text)
		}
	}

	return detail, nil
}

func (s *Service) CreatePage(ctx context.Context, in CreatePageInput) (PageSummary, error) {
	if err := in.Validate(); err != nil {
		return PageSummary{}, domain.NewInvalidInput("invalid page arguments: %v", err)
	}

	api, err := s.session(ctx)
	if err != nil {
		return PageSummary{}, err
	}

	object, err := api.CreatePage(ctx, ports.CreatePageParams{
		ParentPageID: in.ParentID,
		Title:        in.Title,
		Content:      contentLines(in.Content),
	})
	if err != nil {
		return PageSummary{}, err
	}

	return pageSummaryFrom(object), nil
}

func (s *Service) UpdatePage(ctx context.Context, id string, in UpdatePageInput) (PageSummary, error) {
	if strings.TrimSpace(id) == "" {
		return PageSummary{}, domain.NewInvalidInput("missing page id")
	}
	if err := in.Validate(); err != nil {
		return PageSummary{}, domain.NewInvalidInput("invalid page arguments: %v", err)
	}

	api, err := s.session(ctx)
	if err != nil {
		return PageSummary{}, err
	}

	object, err := api.UpdatePage(ctx, id, ports.UpdatePageParams{
		Title:    in.Title,
		Archived: archivedFlag(in.Archive, in.Unarchive),
	})
	if err != nil {
		return PageSummary{}, err
	}

	return pageSummaryFrom(object), nil
}

func (s *Service) AppendContent(ctx context.Context, id, content string) (AppendResult, error) {
	if strings.TrimSpace(id) == "" {
		return AppendResult{}, domain.NewInvalidInput("missing page id")
	}
	lines := contentLines(content)
	if len(lines) == 0 {
		return AppendResult{}, domain.NewInvalidInput("missing content: pass --content with at least one line")
	}

	api, err := s.session(ctx)
	if err != nil {
		return AppendResult{}, err
	}

	if _, err := api.AppendBlockChildren(ctx, id, lines); err != nil {
		return AppendResult{}, err
	}

	return AppendResult{PageID: id, BlocksAppended: len(lines)}, nil
}

func (s *Service) ListDatabases(ctx context.Context, limit int) (DatabaseList, error) {
	api, err := s.session(ctx)
	if err != nil {
		return DatabaseList{}, err
	}

	list, err := api.Search(ctx, "database", limit)
	if err != nil {
		return DatabaseList{}, err
	}

	databases := make([]DatabaseSummary, 0, len(list.Results))
	for _, object := range list.Results {
		databases = append(databases, databaseSummaryFrom(object))
	}

	return DatabaseList{Databases: databases, HasMore: list.HasMore}, nil
}

func (s *Service) GetDatabase(ctx context.Context, id string) (DatabaseSummary, error) {
	if strings.TrimSpace(id) == "" {
		return DatabaseSummary{}, domain.NewInvalidInput("missing database id")
	}

	api, err := s.session(ctx)
	if err != nil {
		return DatabaseSummary{}, err
	}

	object, err := api.GetDatabase(ctx, id)
	if err != nil {
		return DatabaseSummary{}, err
	}

	return databaseSummaryFrom(object), nil
}

func (s *Service) QueryDatabase(ctx context.Context, id string, in QueryDatabaseInput) (QueryResult, error) {
	if strings.TrimSpace(id) == "" {
		return QueryResult{}, domain.NewInvalidInput("missing database id")
	}
	if err := in.Validate(); err != nil {
		return QueryResult{}, domain.NewInvalidInput("invalid query arguments: %v", err)
	}

	api, err := s.session(ctx)
	if err != nil {
		return QueryResult{}, err
	}

	list, err := api.QueryDatabase(ctx, id, ports.QueryDatabaseParams{
		Filter:   rawOrNil(in.Filter),
		Sorts:    rawOrNil(in.Sorts),
		PageSize: in.Limit,
	})
	if err != nil {
		return QueryResult{}, err
	}

	results := make([]PageSummary, 0, len(list.Results))
	for _, object := range list.Results {
		results = append(results, pageSummaryFrom(object))
	}

	return QueryResult{Results: results, HasMore: list.HasMore, NextCursor: list.NextCursor}, nil
}

func (s *Service) CreateDatabase(ctx context.Context, in CreateDatabaseInput) (DatabaseSummary, error) {
	if err := in.Validate(); err != nil {
		return DatabaseSummary{}, domain.NewInvalidInput("invalid database arguments: %v", err)
	}

	api, err := s.session(ctx)
	if err != nil {
		return DatabaseSummary{}, err
	}

	object, err := api.CreateDatabase(ctx, ports.CreateDatabaseParams{
		ParentPageID: in.ParentID,
		Title:        in.Title,
		Schema:       rawOrNil(in.Schema),
	})
	if err != nil {
		return DatabaseSummary{}, err
	}

	return databaseSummaryFrom(object), nil
}

func (s *Service) UpdateDatabase(ctx context.Context, id string, in UpdateDatabaseInput) (DatabaseSummary, error) {
	if strings.TrimSpace(id) == "" {
		return DatabaseSummary{}, domain.NewInvalidInput("missing database id")
	}
	if err := in.Validate(); err != nil {
		return DatabaseSummary{}, domain.NewInvalidInput("invalid database arguments: %v", err)
	}

	api, err := s.session(ctx)
	if err != nil {
		return DatabaseSummary{}, err
	}

	object, err := api.UpdateDatabase(ctx, id, ports.UpdateDatabaseParams{
		Title:    in.Title,
		Schema:   rawOrNil(in.Schema),
		Archived: archivedFlag(in.Archive, in.Unarchive),
	})
	if err != nil {
		return DatabaseSummary{}, err
	}

	return databaseSummaryFrom(object), nil
}

func archivedFlag(archive, unarchive bool) *bool {
	switch {
	case archive:
		value := true
		return &value
	case unarchive:
		value := false
		return &value
	default:
		return nil
	}
}

func rawOrNil(value string) json.RawMessage {
	if value == "" {
		return nil
	}
	return json.RawMessage(value)
}

func contentLines(content string) []string {
	if content == "" {
		return nil
	}

	raw := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	return lines
}
