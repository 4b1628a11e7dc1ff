// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"darkroom/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var filmStocks = []string{
	"Tri-X 400", "T-MAX 400", "HP5+ 400", "FOMAPAN 400", "RPX 400",
	"Portra 400", "Ektar 100", "Gold 200",
}

var photoTitles = []string{
	"Morning fog on the harbor",
	"Pushed two stops, worth it",
	"First roll through the new F3",
	"Grain for days",
	"Stand development experiment",
	"Street corner, f/8 and be there",
	"Half frame doubles",
	"Expired film, fresh light",
	"Home developed, first try",
	"Rodinal 1+100, one hour",
}

// Seeder populates the database with generated users, photos, likes and
// comments. Counters are reconciled at the end so the seeded data satisfies
// the same invariants as live traffic.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404: seeding only
	}
}

// ClearAll removes all seeded data. Order respects foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, table := range []string{"likes", "comments", "photos", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (s *Seeder) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	dob := gofakeit.DateRange(
		time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC),
	)
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	user := &models.User{
		Username:     fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:        gofakeit.Email(),
		FirstName:    gofakeit.FirstName(),
		LastName:     gofakeit.LastName(),
		DateOfBirth:  time.Date(dob.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC),
		Password:     string(hashedPassword),
		Bio:          fmt.Sprintf("Shooting %s since forever. %s", filmStocks[s.rand.Intn(len(filmStocks))], gofakeit.Sentence(6)),
		ProfileImage: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Role:         models.RoleUser,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePhoto constructs and persists a sample photo for the given user with
// a realistic created_at spread over the last 90 days.
func (s *Seeder) CreatePhoto(user *models.User, overrides ...func(*models.Photo)) (*models.Photo, error) {
	photo := &models.Photo{
		URL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		Title:  photoTitles[s.rand.Intn(len(photoTitles))],
		UserID: user.ID,
	}
	daysBack := s.rand.Intn(90)
	hoursBack := s.rand.Intn(24)
	photo.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(photo)
	}

	if err := s.db.Create(photo).Error; err != nil {
		return nil, err
	}
	return photo, nil
}

// SeedUsers creates n users.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	log.Printf("Creating %d users...", n)
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedPhotos creates n photos spread across the given users.
func (s *Seeder) SeedPhotos(users []*models.User, n int) ([]*models.Photo, error) {
	log.Printf("Creating %d photos...", n)
	photos := make([]*models.Photo, 0, n)
	for i := 0; i < n; i++ {
		owner := users[s.rand.Intn(len(users))]
		photo, err := s.CreatePhoto(owner)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, nil
}

// SeedEngagement sprinkles likes and comments over the photos, then
// reconciles the denormalized counters against the created rows.
func (s *Seeder) SeedEngagement(users []*models.User, photos []*models.Photo) error {
	log.Println("Creating likes and comments...")

	for _, photo := range photos {
		// Each photo gets likes from a random subset of users.
		for _, user := range users {
			if s.rand.Intn(100) < 30 {
				like := &models.Like{UserID: user.ID, PhotoID: photo.ID}
				if err := s.db.Create(like).Error; err != nil {
					return err
				}
			}
		}

		numComments := s.rand.Intn(5)
		for i := 0; i < numComments; i++ {
			author := users[s.rand.Intn(len(users))]
			comment := &models.Comment{
				Content: gofakeit.Sentence(8),
				UserID:  author.ID,
				PhotoID: photo.ID,
			}
			if err := s.db.Create(comment).Error; err != nil {
				return err
			}
		}
	}

	return s.ReconcileCounters()
}

// ReconcileCounters sets each photo's counters to the actual row counts.
func (s *Seeder) ReconcileCounters() error {
	if err := s.db.Exec(
		`UPDATE photos SET likes = (SELECT COUNT(*) FROM likes WHERE likes.photo_id = photos.id)`,
	).Error; err != nil {
		return fmt.Errorf("reconciling like counters: %w", err)
	}
	if err := s.db.Exec(
		`UPDATE photos SET comments_count = (SELECT COUNT(*) FROM comments WHERE comments.photo_id = photos.id)`,
	).Error; err != nil {
		return fmt.Errorf("reconciling comment counters: %w", err)
	}
	return nil
}
