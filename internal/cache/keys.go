package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix    = "user:%d"
	articleKeyPrefix = "article:%d"
	feedPageKey      = "feed:page:1"
)

const (
	UserTTL    = 5 * time.Minute
	ArticleTTL = 10 * time.Minute
	FeedTTL    = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func ArticleKey(articleID uint) string {
	return fmt.Sprintf(articleKeyPrefix, articleID)
}

// FeedKey caches only the unfiltered first feed page; filtered or deep pages
// go straight to the store.
func FeedKey() string {
	return feedPageKey
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateArticle drops both the article detail entry and the first feed
// page, since the feed annotates like counts from the same rows.
func InvalidateArticle(ctx context.Context, articleID uint) {
	Invalidate(ctx, ArticleKey(articleID))
	Invalidate(ctx, feedPageKey)
}

func InvalidateFeed(ctx context.Context) {
	Invalidate(ctx, feedPageKey)
}
