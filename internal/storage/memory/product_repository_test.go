package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
	"github.com/vladislavdragonenkov/bookshop/internal/storage/memory"
)

func newProduct(id string, createdAt time.Time) domain.Product {
	return domain.Product{
		ID:         id,
		Title:      "Мастер и Маргарита",
		PriceMinor: 1999,
		Type:       domain.ProductTypeBook,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func TestProductRepository_CreateGet(t *testing.T) {
	repo := memory.NewProductRepository()
	product := newProduct("product-1", time.Now().UTC())

	if err := repo.Create(product); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := repo.Get(product.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Title != product.Title {
		t.Fatalf("expected title %s, got %s", product.Title, stored.Title)
	}
}

func TestProductRepository_CreateDuplicate(t *testing.T) {
	repo := memory.NewProductRepository()
	product := newProduct("product-1", time.Now().UTC())

	if err := repo.Create(product); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(product); !errors.Is(err, domain.ErrProductAlreadyExists) {
		t.Fatalf("expected ErrProductAlreadyExists, got %v", err)
	}
}

func TestProductRepository_ListOrderedByCreation(t *testing.T) {
	repo := memory.NewProductRepository()
	now := time.Now().UTC()

	// Вставляем в обратном порядке создания.
	if err := repo.Create(newProduct("product-2", now.Add(time.Minute))); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(newProduct("product-1", now)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	products, err := repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != "product-1" || products[1].ID != "product-2" {
		t.Fatalf("expected creation order, got %s, %s", products[0].ID, products[1].ID)
	}
}

func TestProductRepository_UpdateMissing(t *testing.T) {
	repo := memory.NewProductRepository()

	err := repo.Update(newProduct("absent", time.Now().UTC()))
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepository_DeleteIdempotent(t *testing.T) {
	repo := memory.NewProductRepository()
	product := newProduct("product-1", time.Now().UTC())

	if err := repo.Create(product); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	deleted, err := repo.Delete(product.ID)
	if err != nil || !deleted {
		t.Fatalf("expected first delete to report true, got %v %v", deleted, err)
	}

	deleted, err = repo.Delete(product.ID)
	if err != nil {
		t.Fatalf("repeat delete failed: %v", err)
	}
	if deleted {
		t.Fatal("repeat delete should report false")
	}
}

func TestProductRepository_Exists(t *testing.T) {
	repo := memory.NewProductRepository()

	ok, err := repo.Exists("absent")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if ok {
		t.Fatal("absent product should not exist")
	}

	if err := repo.Create(newProduct("product-1", time.Now().UTC())); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	ok, err = repo.Exists("product-1")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if !ok {
		t.Fatal("created product should exist")
	}
}
