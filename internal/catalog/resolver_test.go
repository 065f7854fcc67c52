package catalog

import (
	"errors"
	"testing"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupResolver(t *testing.T) (Resolver, *models.Product, *models.Combo) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Product{}, &models.Combo{}, &models.ComboItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	product := &models.Product{Name: "Iced Tea", Size: "regular", Price: 45, StockQuantity: 300, IsActive: true}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	combo := &models.Combo{
		Name:     "Tea Duo",
		Price:    80,
		IsActive: true,
		Items:    []models.ComboItem{{ProductID: product.ID, Quantity: 2}},
	}
	if err := db.Create(combo).Error; err != nil {
		t.Fatalf("failed to seed combo: %v", err)
	}

	return NewResolver(repository.NewProductRepository(db)), product, combo
}

func TestResolveProduct(t *testing.T) {
	resolver, product, _ := setupResolver(t)

	resolved, err := resolver.Resolve(models.ItemRef{Kind: string(models.RefProduct), ID: product.ID})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved.ProductID == nil || *resolved.ProductID != product.ID {
		t.Errorf("product id = %v, want %d", resolved.ProductID, product.ID)
	}
	if resolved.Name != "Iced Tea" || resolved.Size != "regular" || resolved.UnitPrice != 45 {
		t.Errorf("resolved = %s/%s/%v", resolved.Name, resolved.Size, resolved.UnitPrice)
	}
	if len(resolved.Constituents) != 1 || resolved.Constituents[0].Quantity != 1 {
		t.Errorf("constituents = %+v, want the product itself x1", resolved.Constituents)
	}
}

func TestResolveEmptyKindDefaultsToProduct(t *testing.T) {
	resolver, product, _ := setupResolver(t)

	resolved, err := resolver.Resolve(models.ItemRef{ID: product.ID})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved.Kind != models.RefProduct {
		t.Errorf("kind = %s, want product", resolved.Kind)
	}
}

func TestResolveCombo(t *testing.T) {
	resolver, product, combo := setupResolver(t)

	resolved, err := resolver.Resolve(models.ItemRef{Kind: string(models.RefCombo), ID: combo.ID})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved.ComboID == nil || *resolved.ComboID != combo.ID {
		t.Errorf("combo id = %v, want %d", resolved.ComboID, combo.ID)
	}
	if resolved.ProductID != nil {
		t.Errorf("combo resolution carries product id %d", *resolved.ProductID)
	}
	if resolved.UnitPrice != 80 {
		t.Errorf("unit price = %v, want the bundle price 80", resolved.UnitPrice)
	}
	if len(resolved.Constituents) != 1 ||
		resolved.Constituents[0].ProductID != product.ID ||
		resolved.Constituents[0].Quantity != 2 {
		t.Errorf("constituents = %+v, want product %d x2", resolved.Constituents, product.ID)
	}
}

func TestResolveErrors(t *testing.T) {
	resolver, _, _ := setupResolver(t)

	tests := []struct {
		name    string
		ref     models.ItemRef
		wantErr interface{}
	}{
		{name: "missing product", ref: models.ItemRef{Kind: string(models.RefProduct), ID: 999}, wantErr: &apperrors.NotFoundError{}},
		{name: "missing combo", ref: models.ItemRef{Kind: string(models.RefCombo), ID: 999}, wantErr: &apperrors.NotFoundError{}},
		{name: "unknown kind", ref: models.ItemRef{Kind: "voucher", ID: 1}, wantErr: &apperrors.ValidationError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve(tt.ref)
			if err == nil {
				t.Fatal("Resolve() succeeded, want error")
			}
			switch want := tt.wantErr.(type) {
			case *apperrors.NotFoundError:
				if !errors.As(err, &want) {
					t.Errorf("Resolve() error = %v, want NotFoundError", err)
				}
			case *apperrors.ValidationError:
				if !errors.As(err, &want) {
					t.Errorf("Resolve() error = %v, want ValidationError", err)
				}
			}
		})
	}
}
