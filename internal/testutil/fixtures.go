package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dom/product-catalog-api/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	name     string
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		name:     fmt.Sprintf("Test User %s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
	}
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		Name:         b.name,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// TokenPairResponse matches the API login response
type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndLogin creates the user through the registration endpoint and
// logs in, returning the user and the issued token pair.
func (b *UserBuilder) BuildAndLogin(t *testing.T, ts *TestServer) (*domain.User, *TokenPairResponse) {
	t.Helper()

	registerBody, _ := json.Marshal(map[string]string{
		"name":                 b.name,
		"email":                b.email,
		"password":             b.password,
		"passwordConfirmation": b.password,
	})

	resp, err := http.Post(ts.APIURL("/users"), "application/json", bytes.NewBuffer(registerBody))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected register status: %d", resp.StatusCode)
	}

	var user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}

	pair := b.Login(t, ts)

	userID, _ := uuid.Parse(user.ID)
	return &domain.User{
		ID:    userID,
		Email: user.Email,
		Name:  user.Name,
	}, pair
}

// Login authenticates through the sessions endpoint and returns the token pair.
func (b *UserBuilder) Login(t *testing.T, ts *TestServer) *TokenPairResponse {
	t.Helper()

	loginBody, _ := json.Marshal(map[string]string{
		"email":    b.email,
		"password": b.password,
	})

	resp, err := http.Post(ts.APIURL("/sessions"), "application/json", bytes.NewBuffer(loginBody))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status: %d", resp.StatusCode)
	}

	var pair TokenPairResponse
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	return &pair
}

// ProductBuilder creates test products
type ProductBuilder struct {
	owner       *domain.User
	title       string
	description string
	price       float64
	image       string
}

// NewProductBuilder creates a new ProductBuilder with default values
func NewProductBuilder() *ProductBuilder {
	suffix := uuid.New().String()[:8]
	return &ProductBuilder{
		title:       fmt.Sprintf("Test Product %s", suffix),
		description: "A sufficiently long product description used exclusively in tests.",
		price:       49.99,
		image:       "https://example.com/product.jpg",
	}
}

// WithOwner sets the owning user
func (b *ProductBuilder) WithOwner(user *domain.User) *ProductBuilder {
	b.owner = user
	return b
}

// WithTitle sets the title
func (b *ProductBuilder) WithTitle(title string) *ProductBuilder {
	b.title = title
	return b
}

// WithPrice sets the price
func (b *ProductBuilder) WithPrice(price float64) *ProductBuilder {
	b.price = price
	return b
}

// Build creates the product in the database
func (b *ProductBuilder) Build(t *testing.T, db *gorm.DB) *domain.Product {
	t.Helper()

	if b.owner == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.owner = user
	}

	product := &domain.Product{
		ID:          uuid.New(),
		ProductID:   fmt.Sprintf("product_%s", uuid.New().String()[:10]),
		UserID:      b.owner.ID,
		Title:       b.title,
		Description: b.description,
		Price:       b.price,
		Image:       b.image,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	return product
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// ProductPayload returns a valid product request body
func ProductPayload(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":       title,
		"description": "This canonical test description is comfortably longer than fifty characters.",
		"price":       129.99,
		"image":       "https://example.com/canonical.jpg",
	}
}
