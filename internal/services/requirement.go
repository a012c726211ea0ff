package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/markjakearzadon/flatmate-gobackend/internal/db"
	"github.com/markjakearzadon/flatmate-gobackend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RequirementService struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewRequirementService(database *mongo.Database) *RequirementService {
	return &RequirementService{
		collection: database.Collection(db.RequirementsCollection),
		now:        time.Now,
	}
}

func (s *RequirementService) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: -1}},
		Options: options.Index().SetName("created_at_desc"),
	})
	if err != nil {
		return fmt.Errorf("create requirements created_at index: %w", err)
	}

	return nil
}

// CreatePost stores a requirement with the given image references and
// returns it as persisted.
func (s *RequirementService) CreatePost(ctx context.Context, form *models.RequirementForm, images []string) (*models.Requirement, error) {
	if len(images) > models.MaxRequirementImages {
		return nil, invalid(fmt.Sprintf("A post can have at most %d images.", models.MaxRequirementImages))
	}

	price, err := ParsePrice(form.Price)
	if err != nil {
		return nil, err
	}

	post := &models.Requirement{
		ID:         primitive.NewObjectID(),
		Images:     nonNil(images),
		Price:      price,
		Furnishing: form.Furnishing,
		State:      form.State,
		City:       form.City,
		Location:   form.Location,
		Prefs:      nonNil(form.Prefs),
		Gender:     form.Gender,
		Notes:      form.Notes,
		CreatedAt:  s.now().UTC(),
	}

	if _, err := s.collection.InsertOne(ctx, post); err != nil {
		return nil, fmt.Errorf("insert requirement: %w", err)
	}

	return post, nil
}

// ListPosts returns every requirement, newest first.
func (s *RequirementService) ListPosts(ctx context.Context) ([]models.Requirement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find requirements: %w", err)
	}
	defer cur.Close(ctx)

	posts := []models.Requirement{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode requirements: %w", err)
	}

	return posts, nil
}

// ParsePrice treats a blank price as zero. Callers that write uploads
// before CreatePost run it first so a bad price leaves nothing behind.
func ParsePrice(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, invalid("Price must be a number.")
	}

	return price, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
