package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntncli/ntn/internal/diagnose"
)

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := NewRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func credentialsPath(home string) string {
	return filepath.Join(home, ".config", "ntn", "credentials.json")
}

func writeCredentialsFixture(t *testing.T, home, token string) {
	t.Helper()

	dir := filepath.Dir(credentialsPath(home))
	require.NoError(t, os.MkdirAll(dir, 0o700))
	record := fmt.Sprintf("{\"notionToken\": %q, \"defaultWorkspace\": \"Acme\"}\n", token)
	require.NoError(t, os.WriteFile(credentialsPath(home), []byte(record), 0o600))
}

func pageJSON(id, title string) string {
	return fmt.Sprintf(`{
		"object": "page",
		"id": %q,
		"created_time": "2026-01-02T03:04:05.000Z",
		"last_edited_time": "2026-01-03T03:04:05.000Z",
		"archived": false,
		"url": "https://notion.so/%s",
		"properties": {
			"title": {"type": "title", "title": [{"plain_text": %q}]}
		}
	}`, id, id, title)
}

func TestAuthLoginStoresValidatedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/users/me", r.URL.Path)
		assert.Equal(t, "Bearer tkn_123", r.Header.Get("Authorization"))
		_, _ = fmt.Fprint(w, `{"object":"user","name":"Bot","bot":{"workspace_name":"Acme"}}`)
	}))
	defer server.Close()
	t.Setenv("NTN_BASE_URL", server.URL)

	home := t.TempDir()
	stdout, _, err := executeCLI(t, home, "auth", "login", "tkn_123")
	require.NoError(t, err)
	assert.Contains(t, stdout, `Logged in to workspace "Acme"`)

	data, err := os.ReadFile(credentialsPath(home))
	require.NoError(t, err)
	assert.Contains(t, string(data), "tkn_123")
	assert.Contains(t, string(data), "Acme")
}

func TestAuthLoginInvalidTokenWritesNoCredentialFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = fmt.Fprint(w, `{"object":"error","status":401,"code":"unauthorized","message":"API token is invalid."}`)
	}))
	defer server.Close()
	t.Setenv("NTN_BASE_URL", server.URL)

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "auth", "login", "tkn_bad")
	require.Error(t, err)

	diagnostic := diagnose.Classify(err, nil)
	assert.NotZero(t, diagnostic.ExitCode)
	assert.Contains(t, diagnostic.Message, "invalid credentials")

	_, statErr := os.Stat(credentialsPath(home))
	assert.True(t, os.IsNotExist(statErr))
}

func TestAuthStatusReportsStoredState(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "auth", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "authenticated: false")

	writeCredentialsFixture(t, home, "tkn_123")

	stdout, _, err = executeCLI(t, home, "auth", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "authenticated: true")
	assert.Contains(t, stdout, "Acme")
}

func TestAuthLogoutRemovesCredentials(t *testing.T) {
	home := t.TempDir()
	writeCredentialsFixture(t, home, "tkn_123")

	stdout, _, err := executeCLI(t, home, "auth", "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged out")

	_, statErr := os.Stat(credentialsPath(home))
	assert.True(t, os.IsNotExist(statErr))
}

func TestPageListRendersCompactTabDelimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		_, _ = fmt.Fprintf(w, `{"results":[%s,%s],"has_more":false,"next_cursor":null}`,
			pageJSON("p1", "First"), pageJSON("p2", "Second"))
	}))
	defer server.Close()
	t.Setenv("NTN_BASE_URL", server.URL)

	home := t.TempDir()
	writeCredentialsFixture(t, home, "tkn_123")

	stdout, _, err := executeCLI(t, home, "page", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "title: First")
	assert.Contains(t, stdout, "title: Second")
	assert.Contains(t, stdout, "\t")
}

func TestPageListJSONFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, `{"results":[%s],"has_more":true,"next_cursor":"c"}`, pageJSON("p1", "First"))
	}))
	defer server.Close()
	t.Setenv("NTN_BASE_URL", server.URL)

	home := t.TempDir()
	writeCredentialsFixture(t, home, "tkn_123")

	stdout, _, err := executeCLI(t, home, "page", "list", "--format", "json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"title": "First"`)
	assert.Contains(t, stdout, `"has_more": true`)
}

func TestUnknownOutputFormatIsRejected(t *testing.T) {
	home := t.TempDir()
	writeCredentialsFixture(t, home, "tkn_123")

	_, _, err := executeCLI(t, home, "auth", "status", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestPageGetWithContentFetchesBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/pages/p1":
			_, _ = fmt.Fprint(w, pageJSON("p1", "Notes"))
		case "/v1/blocks/p1/children":
			_, _ = fmt.Fprint(w, `{"results":[
				{"type":"paragraph","paragraph":{"rich_text":[{"plain_text":"hello world"}]}}
			],"has_more":false,"next_cursor":null}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()
	t.Setenv("NTN_BASE_URL", server.URL)

	home := t.TempDir()
	writeCredentialsFixture(t, home, "tkn_123")

	stdout, _, err := executeCLI(t, home, "page", "get", "p1", "--content")
	require.NoError(t, err)
	assert.Contains(t, stdout, "title: Notes")
	assert.Contains(t, stdout, "hello world")
}

func TestDatabaseQueryMalformedFilterFailsBeforeNetwork(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()
	t.Setenv("NTN_BASE_URL", server.URL)

	home := t.TempDir()
	writeCredentialsFixture(t, home, "tkn_123")

	_, _, err := executeCLI(t, home, "database", "query", "db-1", "--filter", "not-json")
	require.Error(t, err)

	diagnostic := diagnose.Classify(err, nil)
	assert.Contains(t, diagnostic.Message, "invalid input")
	assert.Equal(t, 0, hits)
}

func TestCommandsWithoutLoginAreNotAuthenticated(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "page", "list")
	require.Error(t, err)

	diagnostic := diagnose.Classify(err, nil)
	assert.Contains(t, diagnostic.Message, "not authenticated")
	assert.Contains(t, diagnostic.Message, "ntn auth login")
}

func TestPageCreateRequiresTitleAndParent(t *testing.T) {
	home := t.TempDir()
	writeCredentialsFixture(t, home, "tkn_123")

	_, _, err := executeCLI(t, home, "page", "create", "--title", "Only Title")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"parent\" not set")
}

func TestPageUpdateArchiveFlagsConflict(t *testing.T) {
	home := t.TempDir()
	writeCredentialsFixture(t, home, "tkn_123")

	_, _, err := executeCLI(t, home, "page", "update", "p1", "--archive", "--unarchive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestDatabaseNotFoundDiagnosticsCarryRedactedContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprint(w, `{"object":"error","status":404,"code":"object_not_found","message":"Could not find database."}`)
	}))
	defer server.Close()
	t.Setenv("NTN_BASE_URL", server.URL)

	home := t.TempDir()
	writeCredentialsFixture(t, home, "tkn_123")

	_, _, err := executeCLI(t, home, "database", "get", "db-9")
	require.Error(t, err)

	diagnostic := diagnose.Classify(err, map[string]string{"notionToken": "tkn_123"})
	assert.Contains(t, diagnostic.Message, "databaseId: db-9")
	assert.Contains(t, diagnostic.Message, "not shared with the integration")
	assert.NotContains(t, diagnostic.Message, "tkn_123")
}

func TestDatabaseCreateSendsSchema(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/databases", r.URL.Path)
		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.JSONEq(t, `{"Done":{"checkbox":{}}}`, string(body["properties"]))
		_, _ = fmt.Fprint(w, `{"object":"database","id":"db-new","title":[{"plain_text":"Tasks"}],"archived":false}`)
	}))
	defer server.Close()
	t.Setenv("NTN_BASE_URL", server.URL)

	home := t.TempDir()
	writeCredentialsFixture(t, home, "tkn_123")

	stdout, _, err := executeCLI(t, home,
		"database", "create",
		"--title", "Tasks",
		"--parent", "parent-1",
		"--schema", `{"Done":{"checkbox":{}}}`,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "id: db-new")
	assert.Contains(t, stdout, "title: Tasks")
}

func TestConfigShowRendersSettings(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "config", "show", "--format", "plain")
	require.NoError(t, err)
	assert.Contains(t, stdout, "base_url: https://api.notion.com")
	assert.Contains(t, stdout, "format: compact")
}

func TestConfigInitWritesStarterFile(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "config", "init")
	require.NoError(t, err)

	path := strings.TrimSpace(strings.TrimPrefix(stdout, "Settings file at"))
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "base_url")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}
