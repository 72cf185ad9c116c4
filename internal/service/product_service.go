package service

import (
	"context"
	"errors"
	"time"

	"github.com/dom/product-catalog-api/internal/domain"
	"github.com/dom/product-catalog-api/internal/repository"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const productIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

type ProductService struct {
	productRepo repository.ProductRepository
	log         *zap.Logger
}

func NewProductService(productRepo repository.ProductRepository, log *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		log:         log,
	}
}

type ProductInput struct {
	Title       string
	Description string
	Price       float64
	Image       string
}

// newProductID generates the external product id. It is globally unique
// and immutable for the life of the record.
func newProductID() (string, error) {
	id, err := gonanoid.Generate(productIDAlphabet, 10)
	if err != nil {
		return "", err
	}
	return "product_" + id, nil
}

func (s *ProductService) Create(ctx context.Context, ownerID uuid.UUID, input ProductInput) (*domain.Product, error) {
	productID, err := newProductID()
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:          uuid.New(),
		ProductID:   productID,
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrTitleTaken
		}
		return nil, err
	}

	return product, nil
}

func (s *ProductService) Get(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.GetByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// Update applies title/description/price/image changes. Only the owner
// may update; the external product id never changes.
func (s *ProductService) Update(ctx context.Context, userID uuid.UUID, productID string, input ProductInput) (*domain.Product, error) {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.UserID != userID {
		return nil, domain.ErrForbidden
	}

	product.Title = input.Title
	product.Description = input.Description
	product.Price = input.Price
	product.Image = input.Image
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrTitleTaken
		}
		return nil, err
	}

	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, userID uuid.UUID, productID string) error {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return err
	}

	if product.UserID != userID {
		return domain.ErrForbidden
	}

	return s.productRepo.Delete(ctx, productID)
}
