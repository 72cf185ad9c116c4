package service

import (
	"github.com/dom/product-catalog-api/internal/config"
	"github.com/dom/product-catalog-api/internal/repository"
	"github.com/dom/product-catalog-api/internal/token"
	"go.uber.org/zap"
)

type Services struct {
	User    *UserService
	Auth    *AuthService
	Product *ProductService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, log *zap.Logger) *Services {
	issuer := token.NewIssuer(cfg.JWTSecret)
	userService := NewUserService(repos.User, cfg.BcryptCost, log)

	return &Services{
		User:    userService,
		Auth:    NewAuthService(userService, repos.Session, issuer, cfg, log),
		Product: NewProductService(repos.Product, log),
	}
}
