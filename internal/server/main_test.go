package server

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/MayankPrasher/draftly-backend/internal/config"
	"github.com/MayankPrasher/draftly-backend/internal/models"
	"github.com/MayankPrasher/draftly-backend/internal/repository"
	"github.com/MayankPrasher/draftly-backend/internal/service"
	"github.com/MayankPrasher/draftly-backend/internal/token"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "handler-test-secret-0123456789abcdef"

// newTestServer builds a Server over an in-memory sqlite database with no
// redis and no uploader. Tests register only the routes they exercise so the
// shared Prometheus registry is never touched twice.
func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Post{}, &models.Like{}, &models.SavedPost{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{
		Port:      "0",
		Env:       "test",
		JWTSecret: testJWTSecret,
	}

	postRepo := repository.NewPostRepository(db)
	s := &Server{
		config:      cfg,
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		postRepo:    postRepo,
		postService: service.NewPostService(postRepo),
		tokens:      token.NewIssuer(cfg.JWTSecret),
	}
	return s, db
}

// createTestUser persists a user with the given password already hashed.
func createTestUser(t *testing.T, db *gorm.DB, username, email, password string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Username:       username,
		Email:          email,
		Password:       string(hashed),
		ProfilePicture: models.DefaultProfilePicture,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode body %q: %v", raw, err)
	}
	return body
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
}
