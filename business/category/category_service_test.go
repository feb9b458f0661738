package category

import (
	"context"
	"fmt"
	"testing"

	"shopsight/domain"
)

type fakeCategoryRepo struct {
	categories []domain.Category
	nextID     uint64
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	f.nextID++
	category.CategoryID = f.nextID
	f.categories = append(f.categories, *category)
	return nil
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id uint64) (domain.Category, error) {
	for _, c := range f.categories {
		if c.CategoryID == id {
			return c, nil
		}
	}
	return domain.Category{}, fmt.Errorf("category not found")
}

func (f *fakeCategoryRepo) FindAll(ctx context.Context) ([]domain.Category, error) {
	return f.categories, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	for i := range f.categories {
		if f.categories[i].CategoryID == category.CategoryID {
			f.categories[i] = *category
			return nil
		}
	}
	return fmt.Errorf("category not found")
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id uint64) error {
	for i := range f.categories {
		if f.categories[i].CategoryID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("category not found")
}

func TestCreateCategory_RejectsDuplicateName(t *testing.T) {
	repo := &fakeCategoryRepo{}
	svc := NewCategoryService(repo)

	if _, err := svc.CreateCategory(context.Background(), &domain.Category{ProductCategory: "plants"}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	// exact and case-folded duplicates both split affinity scores
	if _, err := svc.CreateCategory(context.Background(), &domain.Category{ProductCategory: "plants"}); err == nil {
		t.Fatal("expected error for duplicate name")
	}
	if _, err := svc.CreateCategory(context.Background(), &domain.Category{ProductCategory: "Plants"}); err == nil {
		t.Fatal("expected error for case-folded duplicate name")
	}
	if len(repo.categories) != 1 {
		t.Fatalf("got %d categories, want 1", len(repo.categories))
	}
}

func TestCreateCategory_TrimsAndRejectsBlank(t *testing.T) {
	repo := &fakeCategoryRepo{}
	svc := NewCategoryService(repo)

	if _, err := svc.CreateCategory(context.Background(), &domain.Category{ProductCategory: "   "}); err == nil {
		t.Fatal("expected error for blank name")
	}

	created, err := svc.CreateCategory(context.Background(), &domain.Category{ProductCategory: "  tools  "})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if created.ProductCategory != "tools" {
		t.Fatalf("name = %q, want trimmed %q", created.ProductCategory, "tools")
	}
}

func TestUpdateCategory_AllowsKeepingOwnName(t *testing.T) {
	repo := &fakeCategoryRepo{}
	svc := NewCategoryService(repo)

	created, err := svc.CreateCategory(context.Background(), &domain.Category{ProductCategory: "plants"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	// updating a category to its current name is not a collision
	updated, err := svc.UpdateCategory(context.Background(), &domain.Category{
		CategoryID:      created.CategoryID,
		ProductCategory: "plants",
	})
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if updated.ProductCategory != "plants" {
		t.Fatalf("name = %q, want plants", updated.ProductCategory)
	}
}

func TestUpdateCategory_RejectsCollision(t *testing.T) {
	repo := &fakeCategoryRepo{}
	svc := NewCategoryService(repo)

	if _, err := svc.CreateCategory(context.Background(), &domain.Category{ProductCategory: "plants"}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	second, err := svc.CreateCategory(context.Background(), &domain.Category{ProductCategory: "tools"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	_, err = svc.UpdateCategory(context.Background(), &domain.Category{
		CategoryID:      second.CategoryID,
		ProductCategory: "plants",
	})
	if err == nil {
		t.Fatal("expected error renaming onto an existing category")
	}
}

func TestDeleteCategory_Missing(t *testing.T) {
	svc := NewCategoryService(&fakeCategoryRepo{})

	if err := svc.DeleteCategory(context.Background(), 99); err == nil {
		t.Fatal("expected error for missing category")
	}
}
