package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type topicItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func listTopics(t *testing.T, app *fiber.App, token string) []topicItem {
	t.Helper()
	resp := doJSON(t, app, http.MethodGet, "/api/topics/", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Topics []topicItem `json:"topics"`
	}
	decodeBody(t, resp, &body)
	return body.Topics
}

func TestTopics(t *testing.T) {
	_, app := setupTestServer(t)
	aliceToken, _ := signupUser(t, app, "alice", "smith", "alice@example.com")
	bobToken, _ := signupUser(t, app, "bob", "jones", "bob@example.com")

	createArticle(t, app, aliceToken, "Tagged", "go", "databases")
	createArticle(t, app, bobToken, "Also tagged", "go")

	t.Run("listing is scoped to the caller", func(t *testing.T) {
		aliceTopics := listTopics(t, app, aliceToken)
		bobTopics := listTopics(t, app, bobToken)
		assert.Len(t, aliceTopics, 2)
		assert.Len(t, bobTopics, 1)
	})

	t.Run("rename requires ownership", func(t *testing.T) {
		topics := listTopics(t, app, aliceToken)
		require.NotEmpty(t, topics)
		path := fmt.Sprintf("/api/topics/%d", topics[0].ID)

		resp := doJSON(t, app, http.MethodPut, path, bobToken, map[string]string{"name": "stolen"})
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp = doJSON(t, app, http.MethodPut, path, aliceToken, map[string]string{"name": "renamed"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var renamed topicItem
		decodeBody(t, resp, &renamed)
		assert.Equal(t, "renamed", renamed.Name)
	})

	t.Run("delete requires ownership and detaches", func(t *testing.T) {
		topics := listTopics(t, app, bobToken)
		require.Len(t, topics, 1)
		path := fmt.Sprintf("/api/topics/%d", topics[0].ID)

		resp := doJSON(t, app, http.MethodDelete, path, aliceToken, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp = doJSON(t, app, http.MethodDelete, path, bobToken, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		assert.Empty(t, listTopics(t, app, bobToken))
	})
}
