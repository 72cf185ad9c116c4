package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dom/product-catalog-api/internal/api/middleware"
	"github.com/dom/product-catalog-api/internal/domain"
	"github.com/dom/product-catalog-api/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const minDescriptionLength = 50

type ProductHandler struct {
	productService *service.ProductService
	log            *zap.Logger
}

func NewProductHandler(productService *service.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{productService: productService, log: log}
}

type ProductRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Image       string   `json:"image"`
}

type ProductResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	User        string    `json:"user"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func productResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		ProductID:   p.ProductID,
		User:        p.UserID.String(),
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func validateProductRequest(req ProductRequest) fieldErrors {
	var errs fieldErrors
	if req.Title == "" {
		errs = errs.add("title", "Title is required")
	}
	if req.Description == "" {
		errs = errs.add("description", "Description is required")
	} else if len(req.Description) < minDescriptionLength {
		errs = errs.add("description", "Description should be at least 50 characters long")
	}
	if req.Price == nil {
		errs = errs.add("price", "Price is required")
	} else if *req.Price < 0 {
		errs = errs.add("price", "Price must be non-negative")
	}
	if req.Image == "" {
		errs = errs.add("image", "Image is required")
	}
	return errs
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if validateProductRequest(req).write(w) {
		return
	}

	product, err := h.productService.Create(r.Context(), claims.UserID, service.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Image:       req.Image,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTitleTaken) {
			http.Error(w, "Product title already taken", http.StatusConflict)
			return
		}
		h.log.Error("product creation failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(productResponse(product))
}

// Get is public: reading a product by its external id needs no
// authentication.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	product, err := h.productService.Get(r.Context(), productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		h.log.Error("product lookup failed", zap.Error(err), zap.String("productId", productID))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(productResponse(product))
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	productID := chi.URLParam(r, "productId")

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if validateProductRequest(req).write(w) {
		return
	}

	product, err := h.productService.Update(r.Context(), claims.UserID, productID, service.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Image:       req.Image,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, "Product not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		case errors.Is(err, domain.ErrTitleTaken):
			http.Error(w, "Product title already taken", http.StatusConflict)
		default:
			h.log.Error("product update failed", zap.Error(err), zap.String("productId", productID))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(productResponse(product))
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	productID := chi.URLParam(r, "productId")

	if err := h.productService.Delete(r.Context(), claims.UserID, productID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, "Product not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			h.log.Error("product deletion failed", zap.Error(err), zap.String("productId", productID))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
