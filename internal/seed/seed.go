package seed

import (
	"fmt"
	"log"

	"quill/internal/models"

	"gorm.io/gorm"
)

// Options controls how much data the seeder generates.
type Options struct {
	NumUsers    int
	NumArticles int
	ShouldClean bool
}

// Seed populates the database with demo authors, articles, topics, comments
// and likes. All generated users share the password "password123".
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Seeding %d users and %d articles...", opts.NumUsers, opts.NumArticles)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db)

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	articles, err := createArticles(f, users, opts.NumArticles)
	if err != nil {
		return fmt.Errorf("failed to create articles: %w", err)
	}
	log.Printf("✓ %d articles created", len(articles))

	comments, likes, err := createEngagement(f, users, articles)
	if err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Printf("✓ %d comments and %d likes created", comments, likes)

	log.Println("🎉 Seeding complete!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE likes, comments, article_topics, topics, articles, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// a well-known login for local poking around
	demo, err := f.CreateUser(func(u *models.User) {
		u.FirstName = "Demo"
		u.LastName = "Author"
		u.Email = "demo@example.com"
	})
	if err == nil {
		users = append(users, demo)
	}

	for i := len(users); i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)
		logProgress("users", i)
	}
	return users, nil
}

func createArticles(f *Factory, users []*models.User, count int) ([]*models.Article, error) {
	articles := make([]*models.Article, 0, count)
	for i := 0; i < count; i++ {
		author := users[f.r.Intn(len(users))]
		article, err := f.CreateArticle(author)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
		logProgress("articles", i)
	}
	return articles, nil
}

// createEngagement sprinkles comments and likes from random users over the
// generated articles. Roughly a third of articles get heavy engagement so
// likes_count ordering in the feed has a visible spread.
func createEngagement(f *Factory, users []*models.User, articles []*models.Article) (int, int, error) {
	comments, likes := 0, 0
	for _, article := range articles {
		engagement := f.r.Intn(3)
		if f.r.Float32() < 0.3 {
			engagement = f.r.Intn(len(users)/2 + 1)
		}

		for i := 0; i < engagement; i++ {
			reader := users[f.r.Intn(len(users))]

			if f.r.Float32() < 0.5 {
				if _, err := f.CreateComment(reader, article); err != nil {
					return comments, likes, err
				}
				comments++
			}
			if err := f.CreateLike(reader, article); err != nil {
				return comments, likes, err
			}
			likes++
		}
	}
	return comments, likes, nil
}
