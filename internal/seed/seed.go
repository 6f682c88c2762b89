// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"quill/internal/middleware"
	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Options tunes how much data the seeder writes and how it behaves.
type Options struct {
	// SkipBcrypt stores a plaintext marker password instead of hashing,
	// for fast local seeding where login is not exercised.
	SkipBcrypt bool
	// MaxDays spreads generated pub dates over this many days in the past.
	MaxDays int
	// DraftRatio is the fraction of posts left unpublished (0..1).
	DraftRatio float64
	// FutureRatio is the fraction of posts scheduled in the future (0..1).
	FutureRatio float64
}

// Preset is a declarative seeding plan loaded from a YAML file.
type Preset struct {
	Users           int `yaml:"users"`
	Posts           int `yaml:"posts"`
	CommentsPerPost int `yaml:"comments_per_post"`
	Categories      []struct {
		Title       string `yaml:"title"`
		Slug        string `yaml:"slug"`
		Description string `yaml:"description"`
	} `yaml:"categories"`
	Locations []string `yaml:"locations"`
}

// LoadPreset reads a seeding plan from a YAML file.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse preset: %w", err)
	}
	return &p, nil
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{db: db, opts: opts, rng: rand.New(rand.NewSource(seed))}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:  fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCategory persists a category, generating title and slug when not overridden.
func (f *Factory) CreateCategory(overrides ...func(*models.Category)) (*models.Category, error) {
	category := &models.Category{
		Title:       gofakeit.BookGenre(),
		Description: gofakeit.Sentence(12),
		Slug:        fmt.Sprintf("%s-%d", gofakeit.Word(), gofakeit.Number(10, 9999)),
		IsPublished: true,
	}
	for _, override := range overrides {
		override(category)
	}
	if err := f.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// CreateLocation persists a location.
func (f *Factory) CreateLocation(overrides ...func(*models.Location)) (*models.Location, error) {
	location := &models.Location{
		Name:        gofakeit.City(),
		IsPublished: true,
	}
	for _, override := range overrides {
		override(location)
	}
	if err := f.db.Create(location).Error; err != nil {
		return nil, err
	}
	return location, nil
}

// BuildPost constructs a post for the author with a realistic pub date
// spread: mostly past, some drafts and some scheduled in the future per
// the configured ratios. It does not persist the post.
func (f *Factory) BuildPost(author *models.User, category *models.Category, location *models.Location, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Title:       gofakeit.Sentence(5),
		Text:        gofakeit.Paragraph(2, 4, 8, "\n\n"),
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		IsPublished: true,
		AuthorID:    author.ID,
	}
	if category != nil {
		post.CategoryID = &category.ID
	}
	if location != nil {
		post.LocationID = &location.ID
	}

	daysBack := f.rng.Intn(f.opts.MaxDays)
	post.PubDate = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour).
		Add(-time.Duration(f.rng.Intn(24)) * time.Hour)

	roll := f.rng.Float64()
	switch {
	case roll < f.opts.DraftRatio:
		post.IsPublished = false
	case roll < f.opts.DraftRatio+f.opts.FutureRatio:
		post.PubDate = time.Now().Add(time.Duration(1+f.rng.Intn(14*24)) * time.Hour)
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment persists a comment from the author on the post.
func (f *Factory) CreateComment(post *models.Post, author *models.User, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Text:     gofakeit.Sentence(f.rng.Intn(20) + 3),
		PostID:   post.ID,
		AuthorID: author.ID,
	}
	for _, override := range overrides {
		override(comment)
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Seeder orchestrates whole-database population.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder with default options.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db: db,
		factory: NewFactory(db, Options{
			DraftRatio:  0.1,
			FutureRatio: 0.05,
		}),
	}
}

// ClearAll removes all seeded data. Delete order respects foreign keys.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Comment{},
		&models.Post{},
		&models.Category{},
		&models.Location{},
		&models.User{},
	} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// Run populates the database with the given number of users and posts,
// a small taxonomy, and a sprinkling of comments.
func (s *Seeder) Run(numUsers, numPosts int) error {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return fmt.Errorf("cannot seed posts without users")
	}

	categories := make([]*models.Category, 0, 5)
	for i := 0; i < 5; i++ {
		category, err := s.factory.CreateCategory()
		if err != nil {
			return fmt.Errorf("seed category: %w", err)
		}
		categories = append(categories, category)
	}

	locations := make([]*models.Location, 0, 5)
	for i := 0; i < 5; i++ {
		location, err := s.factory.CreateLocation()
		if err != nil {
			return fmt.Errorf("seed location: %w", err)
		}
		locations = append(locations, location)
	}

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		var category *models.Category
		if s.factory.rng.Float64() < 0.8 {
			category = categories[s.factory.rng.Intn(len(categories))]
		}
		var location *models.Location
		if s.factory.rng.Float64() < 0.5 {
			location = locations[s.factory.rng.Intn(len(locations))]
		}
		posts = append(posts, s.factory.BuildPost(author, category, location))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}

	for _, post := range posts {
		for i := 0; i < s.factory.rng.Intn(6); i++ {
			author := users[s.factory.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(post, author); err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
		}
	}

	middleware.Logger.Info("seeding complete",
		"users", len(users), "posts", len(posts),
		"categories", len(categories), "locations", len(locations))
	return nil
}

// ApplyPreset seeds the database from a declarative plan: named
// categories and locations, then users, posts and comments.
func (s *Seeder) ApplyPreset(p *Preset) error {
	categories := make([]*models.Category, 0, len(p.Categories))
	for _, pc := range p.Categories {
		pc := pc
		category, err := s.factory.CreateCategory(func(c *models.Category) {
			c.Title = pc.Title
			c.Slug = pc.Slug
			if pc.Description != "" {
				c.Description = pc.Description
			}
		})
		if err != nil {
			return fmt.Errorf("preset category %q: %w", pc.Slug, err)
		}
		categories = append(categories, category)
	}

	locations := make([]*models.Location, 0, len(p.Locations))
	for _, name := range p.Locations {
		name := name
		location, err := s.factory.CreateLocation(func(l *models.Location) {
			l.Name = name
		})
		if err != nil {
			return fmt.Errorf("preset location %q: %w", name, err)
		}
		locations = append(locations, location)
	}

	users := make([]*models.User, 0, p.Users)
	for i := 0; i < p.Users; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("preset user: %w", err)
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return fmt.Errorf("preset must declare at least one user")
	}

	posts := make([]*models.Post, 0, p.Posts)
	for i := 0; i < p.Posts; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		var category *models.Category
		if len(categories) > 0 {
			category = categories[s.factory.rng.Intn(len(categories))]
		}
		var location *models.Location
		if len(locations) > 0 && s.factory.rng.Float64() < 0.5 {
			location = locations[s.factory.rng.Intn(len(locations))]
		}
		posts = append(posts, s.factory.BuildPost(author, category, location))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return fmt.Errorf("preset posts: %w", err)
	}

	for _, post := range posts {
		for i := 0; i < p.CommentsPerPost; i++ {
			author := users[s.factory.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(post, author); err != nil {
				return fmt.Errorf("preset comment: %w", err)
			}
		}
	}

	middleware.Logger.Info("preset applied",
		"users", len(users), "posts", len(posts),
		"categories", len(categories), "locations", len(locations))
	return nil
}
