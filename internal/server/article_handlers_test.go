package server

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type articleBody struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Opening string `json:"opening"`
	Content string `json:"content"`
	Topics  []struct {
		Name string `json:"name"`
	} `json:"topics"`
}

func topicNamesOf(a articleBody) []string {
	names := make([]string, len(a.Topics))
	for i, tp := range a.Topics {
		names[i] = tp.Name
	}
	return names
}

func TestCreateArticle(t *testing.T) {
	_, app := setupTestServer(t)
	token, _ := signupUser(t, app, "ada", "lovelace", "ada@example.com")

	t.Run("success with topics", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/articles/", token, map[string]any{
			"title":   "Engines",
			"opening": "On analytical engines",
			"content": "Full text",
			"topics":  []map[string]string{{"name": "math"}, {"name": "machines"}},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body articleBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "Engines", body.Title)
		assert.ElementsMatch(t, []string{"math", "machines"}, topicNamesOf(body))
	})

	t.Run("missing title rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/articles/", token, map[string]any{
			"content": "no title",
		})
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateArticle(t *testing.T) {
	_, app := setupTestServer(t)
	ownerToken, _ := signupUser(t, app, "ada", "lovelace", "ada@example.com")
	otherToken, _ := signupUser(t, app, "bob", "jones", "bob@example.com")
	id := createArticle(t, app, ownerToken, "Original", "go", "notes")
	path := fmt.Sprintf("/api/articles/%d", id)

	t.Run("owner updates fields", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, path, ownerToken, map[string]any{
			"title": "Revised",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body articleBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "Revised", body.Title)
		// Absent topics field leaves the attachments alone.
		assert.ElementsMatch(t, []string{"go", "notes"}, topicNamesOf(body))
	})

	t.Run("empty topics array clears attachments", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, path, ownerToken, map[string]any{
			"topics": []map[string]string{},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body articleBody
		decodeBody(t, resp, &body)
		assert.Empty(t, body.Topics)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, path, otherToken, map[string]any{
			"title": "Hijacked",
		})
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestDeleteArticle(t *testing.T) {
	_, app := setupTestServer(t)
	ownerToken, _ := signupUser(t, app, "ada", "lovelace", "ada@example.com")
	otherToken, _ := signupUser(t, app, "bob", "jones", "bob@example.com")
	id := createArticle(t, app, ownerToken, "Doomed")
	path := fmt.Sprintf("/api/articles/%d", id)

	t.Run("non-owner forbidden", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, path, otherToken, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("owner deletes", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, path, ownerToken, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		getResp := doJSON(t, app, http.MethodGet, path, ownerToken, nil)
		getResp.Body.Close()
		assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
	})
}

func TestGetMyArticles(t *testing.T) {
	_, app := setupTestServer(t)
	aliceToken, _ := signupUser(t, app, "alice", "smith", "alice@example.com")
	bobToken, _ := signupUser(t, app, "bob", "jones", "bob@example.com")

	createArticle(t, app, aliceToken, "Mine 1")
	createArticle(t, app, aliceToken, "Mine 2")
	createArticle(t, app, bobToken, "Theirs")

	resp := doJSON(t, app, http.MethodGet, "/api/articles/", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Articles []articleBody `json:"articles"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Articles, 2)
	// Newest first.
	assert.Equal(t, "Mine 2", body.Articles[0].Title)
	assert.Equal(t, "Mine 1", body.Articles[1].Title)
}

func TestInvalidArticleID(t *testing.T) {
	_, app := setupTestServer(t)
	token, _ := signupUser(t, app, "ada", "lovelace", "ada@example.com")

	resp := doJSON(t, app, http.MethodGet, "/api/articles/banana", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadArticleImage(t *testing.T) {
	srv, app := setupTestServer(t)
	ownerToken, _ := signupUser(t, app, "ada", "lovelace", "ada@example.com")
	otherToken, _ := signupUser(t, app, "bob", "jones", "bob@example.com")
	articleID := createArticle(t, app, ownerToken, "Illustrated")

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))

	upload := func(token string) *http.Response {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("image", "cover.png")
		require.NoError(t, err)
		_, err = part.Write(pngBuf.Bytes())
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/articles/%d/image", articleID), &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	t.Run("non-owner is rejected and stores nothing", func(t *testing.T) {
		resp := upload(otherToken)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Empty(t, storedImages(t, srv.imageService.UploadDir()))
	})

	t.Run("owner attaches the stored URL", func(t *testing.T) {
		resp := upload(ownerToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			ImageURL string `json:"image_url"`
		}
		decodeBody(t, resp, &body)
		assert.True(t, strings.HasPrefix(body.ImageURL, "/media/images/"), "image url %q", body.ImageURL)
	})
}

// storedImages lists every file under the image upload directory.
func storedImages(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}
