// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/MayankPrasher/draftly-backend/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder builds demo users, posts and likes.
type Seeder struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seedable data. Like rows first so no foreign rows
// outlive their post.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Like{}, &models.SavedPost{}, &models.Post{}, &models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	log.Println("Database cleared")
	return nil
}

// Run seeds users, posts and a spread of likes according to opts.
func (s *Seeder) Run(opts Options) error {
	users, err := s.CreateUsers(opts.NumUsers)
	if err != nil {
		return err
	}
	posts, err := s.CreatePosts(users, opts.NumPosts)
	if err != nil {
		return err
	}
	if err := s.SpreadLikes(users, posts); err != nil {
		return err
	}
	log.Printf("Seeded %d users, %d posts", len(users), len(posts))
	return nil
}

// CreateUsers persists n demo users. Every account gets the same known
// password so demo logins are easy.
func (s *Seeder) CreateUsers(n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Username:       fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:          strings.ToLower(gofakeit.Email()),
			Password:       string(hashed),
			ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			Bio:            gofakeit.Sentence(8),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// CreatePosts persists n demo posts attributed to random users, with a
// realistic created_at spread across the last 90 days.
func (s *Seeder) CreatePosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to attribute posts to")
	}

	tagPool := []string{"go", "webdev", "tutorial", "opinion", "career", "tools", "general"}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rnd.Intn(len(users))]
		content := gofakeit.Paragraph(3, 4, 12, "\n\n")
		words := len(strings.Fields(content))

		post := &models.Post{
			Title:         gofakeit.Sentence(5),
			Content:       content,
			Expert:        gofakeit.Sentence(10),
			AuthorID:      author.ID,
			FeaturedImage: fmt.Sprintf("https://picsum.photos/seed/%s/1200/600", gofakeit.UUID()),
			Tags:          s.pickTags(tagPool),
			Category:      models.Categories[s.rnd.Intn(len(models.Categories))],
			IsPublished:   s.rnd.Intn(10) != 0, // roughly one draft in ten
			ReadTime:      (words + 199) / 200,
			CreatedAt: time.Now().Add(
				-time.Duration(s.rnd.Intn(90*24)) * time.Hour),
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, fmt.Errorf("creating post %d: %w", i, err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// SpreadLikes gives each post likes from a random subset of users, keeping
// likes_count equal to the number of like rows.
func (s *Seeder) SpreadLikes(users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		likers := s.rnd.Intn(len(users) + 1)
		perm := s.rnd.Perm(len(users))[:likers]

		count := 0
		for _, idx := range perm {
			like := &models.Like{UserID: users[idx].ID, PostID: post.ID}
			if err := s.db.Create(like).Error; err != nil {
				return fmt.Errorf("liking post %d: %w", post.ID, err)
			}
			count++
		}
		if count > 0 {
			if err := s.db.Model(post).UpdateColumn("likes_count", count).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) pickTags(pool []string) []string {
	n := 1 + s.rnd.Intn(3)
	perm := s.rnd.Perm(len(pool))[:n]
	tags := make([]string, 0, n)
	for _, idx := range perm {
		tags = append(tags, pool[idx])
	}
	return tags
}
