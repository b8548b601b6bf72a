package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedPage struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Articles []struct {
		ID         uint   `json:"id"`
		Title      string `json:"title"`
		LikesCount int    `json:"likes_count"`
		User       struct {
			FirstName string `json:"first_name"`
		} `json:"user"`
		Topics []struct {
			Name string `json:"name"`
		} `json:"topics"`
	} `json:"articles"`
}

func createArticle(t *testing.T, app *fiber.App, token, title string, topics ...string) uint {
	t.Helper()

	payload := map[string]any{
		"title":   title,
		"content": "Body of " + title,
	}
	if len(topics) > 0 {
		topicObjs := make([]map[string]string, len(topics))
		for i, name := range topics {
			topicObjs[i] = map[string]string{"name": name}
		}
		payload["topics"] = topicObjs
	}

	resp := doJSON(t, app, http.MethodPost, "/api/articles/", token, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &body)
	return body.ID
}

func TestGetFeed(t *testing.T) {
	_, app := setupTestServer(t)

	aliceToken, _ := signupUser(t, app, "alice", "smith", "alice@example.com")
	bobToken, _ := signupUser(t, app, "bob", "jones", "bob@example.com")

	var ids []uint
	for i := 0; i < 10; i++ {
		token := aliceToken
		if i%2 == 1 {
			token = bobToken
		}
		ids = append(ids, createArticle(t, app, token, fmt.Sprintf("Article %d", i)))
	}
	createArticle(t, app, aliceToken, "Tagged piece", "golang")

	t.Run("anonymous read allowed with fixed page size", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/feed", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page feedPage
		decodeBody(t, resp, &page)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 7, page.PageSize)
		assert.Len(t, page.Articles, 7)
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/feed?page=2", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page feedPage
		decodeBody(t, resp, &page)
		assert.Len(t, page.Articles, 4)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/feed?page=9", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page feedPage
		decodeBody(t, resp, &page)
		assert.Empty(t, page.Articles)
	})

	t.Run("bad page parameter is a 400", func(t *testing.T) {
		for _, raw := range []string{"0", "-3", "abc"} {
			resp := doJSON(t, app, http.MethodGet, "/api/feed?page="+raw, "", nil)
			resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "page=%s", raw)
		}
	})

	t.Run("search by topic name", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/feed?search=golang", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page feedPage
		decodeBody(t, resp, &page)
		require.Len(t, page.Articles, 1)
		assert.Equal(t, "Tagged piece", page.Articles[0].Title)
	})

	t.Run("search by owner name", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/feed?search=jones", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page feedPage
		decodeBody(t, resp, &page)
		require.Len(t, page.Articles, 5)
		for _, a := range page.Articles {
			assert.Equal(t, "Bob", a.User.FirstName)
		}
	})

	t.Run("ordering by likes count", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/articles/%d/likes", ids[3]), bobToken, nil)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = doJSON(t, app, http.MethodGet, "/api/feed?ordering=-likes_count", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page feedPage
		decodeBody(t, resp, &page)
		require.NotEmpty(t, page.Articles)
		assert.Equal(t, ids[3], page.Articles[0].ID)
		assert.Equal(t, 1, page.Articles[0].LikesCount)
	})
}

func TestGetFeedArticle(t *testing.T) {
	_, app := setupTestServer(t)
	token, _ := signupUser(t, app, "alice", "smith", "alice@example.com")
	id := createArticle(t, app, token, "Detailed", "golang")

	t.Run("requires authentication", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/feed/%d", id), "", nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("any authenticated reader may view", func(t *testing.T) {
		readerToken, _ := signupUser(t, app, "bob", "jones", "bob@example.com")
		resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/feed/%d", id), readerToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Title   string `json:"title"`
			Content string `json:"content"`
			Topics  []struct {
				Name string `json:"name"`
			} `json:"topics"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "Detailed", body.Title)
		assert.NotEmpty(t, body.Content)
		require.Len(t, body.Topics, 1)
		assert.Equal(t, "golang", body.Topics[0].Name)
	})

	t.Run("missing article is 404", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/feed/99999", token, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
