package postman_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/hbjs97/pmctl/internal/postman"
	"github.com/hbjs97/pmctl/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validKey = "PMAK-0123456789abcdefghij"

func newClient(t *testing.T, handler http.Handler) *postman.Client {
	t.Helper()
	return postman.NewClient(testutil.MockAPIServer(t, handler), 5*time.Second)
}

func TestMe(t *testing.T) {
	fake := testutil.NewFakePostman(validKey)
	client := newClient(t, fake)

	user, err := client.Me(context.Background(), validKey)
	require.NoError(t, err)
	assert.Equal(t, "Test User", user.FullName)
	assert.Equal(t, "tester@example.com", user.Email)
}

func TestMe_Unauthorized(t *testing.T) {
	client := newClient(t, testutil.NewFakePostman(validKey))

	_, err := client.Me(context.Background(), "PMAK-wrong-key-000000000")
	assert.ErrorIs(t, err, postman.ErrUnauthorized)
}

func TestValidate(t *testing.T) {
	client := newClient(t, testutil.NewFakePostman(validKey))

	assert.True(t, client.Validate(context.Background(), validKey))
	assert.False(t, client.Validate(context.Background(), "PMAK-wrong-key-000000000"))
}

func TestValidate_NetworkFailureIsInvalid(t *testing.T) {
	client := postman.NewClient("http://127.0.0.1:1", time.Second)
	assert.False(t, client.Validate(context.Background(), validKey))
	assert.Nil(t, client.UserInfo(context.Background(), validKey))
}

func TestWorkspaces(t *testing.T) {
	fake := testutil.NewFakePostman(validKey)
	fake.Workspaces = []postman.Workspace{
		{ID: "1f0df51a-8658-4ee8-a2a1-d2567dfa09a9", Name: "Team", Type: "team"},
		{ID: "a6c8a6a2-5e4b-4c0f-9b1a-3c1c0f7b7d11", Name: "My Workspace", Type: "personal"},
	}
	client := newClient(t, fake)

	ws, err := client.Workspaces(context.Background(), validKey)
	require.NoError(t, err)
	assert.Equal(t, fake.Workspaces, ws)
}

func TestCollections_FilteredByWorkspace(t *testing.T) {
	fake := testutil.NewFakePostman(validKey)
	wsID := "1f0df51a-8658-4ee8-a2a1-d2567dfa09a9"
	fake.Collections[wsID] = []postman.Collection{{ID: "c1", UID: "42-c1", Name: "Orders API"}}
	fake.Collections[""] = []postman.Collection{{ID: "c1"}, {ID: "c2"}}
	client := newClient(t, fake)

	cols, err := client.Collections(context.Background(), validKey, wsID)
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, "Orders API", cols[0].Name)

	cols, err = client.Collections(context.Background(), validKey, "")
	require.NoError(t, err)
	assert.Len(t, cols, 2)
}

func TestAPIError(t *testing.T) {
	client := newClient(t, testutil.StatusResponse(http.StatusTooManyRequests,
		`{"error":{"name":"rateLimited","message":"Rate limit exceeded"}}`))

	_, err := client.Workspaces(context.Background(), validKey)
	var apiErr *postman.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "Rate limit exceeded", apiErr.Message)
}

func TestMalformedJSON(t *testing.T) {
	client := newClient(t, testutil.StatusResponse(http.StatusOK, `{not json`))

	_, err := client.Me(context.Background(), validKey)
	assert.Error(t, err)
}

func TestSendsAPIKeyHeader(t *testing.T) {
	var got string
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Api-Key")
		w.Write([]byte(`{"user":{"id":1}}`))
	}))

	_, err := client.Me(context.Background(), validKey)
	require.NoError(t, err)
	assert.Equal(t, validKey, got)
}
