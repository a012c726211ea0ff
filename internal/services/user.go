package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/markjakearzadon/flatmate-gobackend/internal/db"
	"github.com/markjakearzadon/flatmate-gobackend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	collection *mongo.Collection
	hashCost   int
	now        func() time.Time
}

func NewUserService(database *mongo.Database) *UserService {
	return &UserService{
		collection: database.Collection(db.UsersCollection),
		hashCost:   bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// EnsureIndexes creates the unique email index that backs the duplicate
// check in CreateUser.
func (s *UserService) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser validates a signup, stores the user with a hashed password and
// returns the new id.
func (s *UserService) CreateUser(ctx context.Context, signup *models.Signup) (string, error) {
	if signup.Password != signup.Confirm {
		return "", invalid("Passwords do not match.")
	}
	if !signup.TermsAccepted() {
		return "", invalid("You must accept the terms.")
	}

	email := normalizeEmail(signup.Email)
	if email == "" {
		return "", invalid("Email is required.")
	}

	_, err := s.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return "", ErrEmailTaken
	case !errors.Is(err, ErrUserNotFound):
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(signup.Password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           primitive.NewObjectID(),
		FullName:     strings.TrimSpace(signup.FullName),
		Email:        email,
		Phone:        strings.TrimSpace(signup.Phone),
		Age:          signup.Age,
		Gender:       signup.Gender,
		Occupation:   strings.TrimSpace(signup.Occupation),
		PasswordHash: string(hash),
		Terms:        true,
		CreatedAt:    s.now().UTC(),
	}

	result, err := s.collection.InsertOne(ctx, user)
	if err != nil {
		// a concurrent signup got past FindByEmail first
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("insert user: %w", err)
	}

	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return &user, nil
}

// VerifyCredentials returns the user when password matches the stored hash.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *UserService) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
