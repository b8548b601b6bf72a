// Package seed populates the database with demo data for development.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// topicPool is the vocabulary seeded authors draw their topics from. Each
// author gets their own rows; names repeat across authors on purpose so the
// feed's topic search has overlapping matches to chew on.
var topicPool = []string{
	"go", "databases", "distributed systems", "testing", "observability",
	"kubernetes", "networking", "security", "performance", "api design",
	"frontend", "career", "open source", "homelab", "linux",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand

	// password hashing dominates seeding time, so the hash for the shared
	// demo password is computed once
	passwordHash string
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	return &Factory{
		db:           db,
		r:            rand.New(rand.NewSource(time.Now().UnixNano())),
		passwordHash: string(hash),
	}
}

// CreateUser persists a sample author. Override functions may adjust the
// generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Email:     fmt.Sprintf("%s-%d@example.com", strings.ToLower(gofakeit.Username()), gofakeit.Number(100, 999)),
		Password:  f.passwordHash,
		Bio:       gofakeit.Sentence(12),
		ContactMe: gofakeit.URL(),
		Avatar:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateArticle persists an article for the given author with a random
// subset of the author's topic vocabulary attached.
func (f *Factory) CreateArticle(user *models.User, overrides ...func(*models.Article)) (*models.Article, error) {
	title := strings.TrimSuffix(gofakeit.Sentence(f.r.Intn(5)+3), ".")
	article := &models.Article{
		Title:   title,
		Opening: gofakeit.Sentence(20),
		Content: gofakeit.Paragraph(2, 4, 8, "\n\n"),
		UserID:  user.ID,
	}

	if f.r.Float32() < 0.4 {
		article.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/1024/576", gofakeit.UUID())
	}

	// spread created_at over the last 90 days so feed ordering has texture
	daysBack := f.r.Intn(90)
	article.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(f.r.Intn(24))*time.Hour)

	for _, override := range overrides {
		override(article)
	}

	if err := f.db.Create(article).Error; err != nil {
		return nil, err
	}

	topics, err := f.attachTopics(user, article)
	if err != nil {
		return nil, err
	}
	article.Topics = topics
	return article, nil
}

// attachTopics picks up to three names from the pool and attaches per-author
// topic rows, creating vocabulary entries on first use.
func (f *Factory) attachTopics(user *models.User, article *models.Article) ([]models.Topic, error) {
	count := f.r.Intn(4)
	picked := make(map[string]struct{}, count)
	topics := make([]models.Topic, 0, count)

	for len(picked) < count {
		name := topicPool[f.r.Intn(len(topicPool))]
		if _, dup := picked[name]; dup {
			continue
		}
		picked[name] = struct{}{}

		var topic models.Topic
		err := f.db.Where(models.Topic{Name: name, UserID: user.ID}).
			FirstOrCreate(&topic).Error
		if err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}

	if len(topics) == 0 {
		return nil, nil
	}
	return topics, f.db.Model(article).Association("Topics").Replace(topics)
}

// CreateComment persists a comment by the given user on the given article.
func (f *Factory) CreateComment(user *models.User, article *models.Article) (*models.Comment, error) {
	comment := &models.Comment{
		Content:   gofakeit.Sentence(f.r.Intn(15) + 3),
		UserID:    user.ID,
		ArticleID: article.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike records a like, silently skipping duplicates the same way the
// API's conflict guard does.
func (f *Factory) CreateLike(user *models.User, article *models.Article) error {
	like := &models.Like{UserID: user.ID, ArticleID: article.ID}
	return f.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "article_id"}},
		DoNothing: true,
	}).Create(like).Error
}

func logProgress(kind string, n int) {
	if n > 0 && n%100 == 0 {
		log.Printf("Created %d %s...", n, kind)
	}
}
