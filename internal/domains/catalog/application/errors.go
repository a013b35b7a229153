package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-shop-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/catalog/ports"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductForbidden = errors.New("catalog changes require an elevated role")
	ErrInvalidProduct   = errors.New("invalid product input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrProductNotFound, err)
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrNegativeStock):
		return fmt.Errorf("%w: %w", ErrInvalidProduct, err)
	}
	return err
}
