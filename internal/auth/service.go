package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/monet-draw/monet/internal/db"
	"github.com/monet-draw/monet/internal/typeid"
)

const bcryptCost = 12

// UserStore is the part of db.Queries the service needs.
type UserStore interface {
	CreateUser(ctx context.Context, arg db.CreateUserParams) (db.User, error)
	GetUserByEmail(ctx context.Context, email string) (db.User, error)
	GetUserByID(ctx context.Context, id string) (db.User, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
)

type Service struct {
	users     UserStore
	jwtSecret []byte
	tokenTTL  time.Duration
	cost      int
}

func NewService(users UserStore, jwtSecret string) *Service {
	return &Service{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  24 * time.Hour,
		cost:      bcryptCost,
	}
}

type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Register creates a user and signs them in. The email must already be
// normalized.
func (s *Service) Register(ctx context.Context, email, password, displayName string) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	dbUser, err := s.users.CreateUser(ctx, db.CreateUserParams{
		ID:          typeid.NewUserID(),
		Email:       email,
		Password:    string(hash),
		DisplayName: displayName,
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.signIn(dbUser)
}

// Login checks the password of the user registered with email. Unknown
// emails and wrong passwords both give ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	dbUser, err := s.find(ctx, s.users.GetUserByEmail, email, ErrInvalidCredentials)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(dbUser.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.signIn(dbUser)
}

func (s *Service) signIn(u db.User) (*AuthResult, error) {
	token, err := s.issueToken(u.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: toUser(u)}, nil
}

// find runs a user lookup, turning a missing row into notFound.
func (s *Service) find(ctx context.Context, get func(context.Context, string) (db.User, error), key string, notFound error) (db.User, error) {
	u, err := get(ctx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.User{}, notFound
		}
		return db.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	userID, err := token.Claims.GetSubject()
	if err != nil || userID == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return userID, nil
}

func (s *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	dbUser, err := s.find(ctx, s.users.GetUserByID, userID, ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	u := toUser(dbUser)
	return &u, nil
}

func toUser(u db.User) User {
	return User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	}
}

func (s *Service) issueToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
