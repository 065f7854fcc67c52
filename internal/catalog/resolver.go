package catalog

import (
	"errors"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/repository"

	"gorm.io/gorm"
)

// Constituent is one stock-keeping unit behind a resolved reference.
// A single product resolves to itself with quantity 1; a combo resolves
// to its bundle contents.
type Constituent struct {
	ProductID uint
	Quantity  int
}

type ResolvedItem struct {
	Kind         models.RefKind
	ProductID    *uint
	ComboID      *uint
	Name         string
	Size         string
	UnitPrice    float64
	Constituents []Constituent
}

type Resolver interface {
	Resolve(ref models.ItemRef) (*ResolvedItem, error)
}

type resolver struct {
	productRepo repository.ProductRepository
}

func NewResolver(productRepo repository.ProductRepository) Resolver {
	return &resolver{productRepo: productRepo}
}

func (r *resolver) Resolve(ref models.ItemRef) (*ResolvedItem, error) {
	switch models.RefKind(ref.Kind) {
	case models.RefProduct, "":
		return r.resolveProduct(ref.ID)
	case models.RefCombo:
		return r.resolveCombo(ref.ID)
	default:
		return nil, apperrors.NewValidation("unknown item reference kind: %s", ref.Kind)
	}
}

func (r *resolver) resolveProduct(id uint) (*ResolvedItem, error) {
	product, err := r.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("product")
		}
		return nil, err
	}

	productID := product.ID
	return &ResolvedItem{
		Kind:      models.RefProduct,
		ProductID: &productID,
		Name:      product.Name,
		Size:      product.Size,
		UnitPrice: product.Price,
		Constituents: []Constituent{
			{ProductID: product.ID, Quantity: 1},
		},
	}, nil
}

func (r *resolver) resolveCombo(id uint) (*ResolvedItem, error) {
	combo, err := r.productRepo.GetComboByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("combo")
		}
		return nil, err
	}

	comboID := combo.ID
	resolved := &ResolvedItem{
		Kind:      models.RefCombo,
		ComboID:   &comboID,
		Name:      combo.Name,
		UnitPrice: combo.Price,
	}
	for _, item := range combo.Items {
		resolved.Constituents = append(resolved.Constituents, Constituent{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return resolved, nil
}
