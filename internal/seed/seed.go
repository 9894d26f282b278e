package seed

import (
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/repositories"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/services"
)

type subcategoryData struct {
	Name string
	Slug string
}

type categoryData struct {
	Name          string
	Slug          string
	Color         string
	Subcategories []subcategoryData
}

// categories is the storefront's navigation tree. Slugs are stable; names
// and colors are presentation only.
var categories = []categoryData{
	{Name: "All", Slug: "all", Color: "#FFFFFF"},
	{
		Name: "Business & Money", Slug: "business-money", Color: "#FFB347",
		Subcategories: []subcategoryData{
			{Name: "Accounting", Slug: "accounting"},
			{Name: "Entrepreneurship", Slug: "entrepreneurship"},
			{Name: "Investing", Slug: "investing"},
			{Name: "Marketing & Sales", Slug: "marketing-sales"},
			{Name: "Personal Finance", Slug: "personal-finance"},
		},
	},
	{
		Name: "Software Development", Slug: "software-development", Color: "#7EC8E3",
		Subcategories: []subcategoryData{
			{Name: "Web Development", Slug: "web-development"},
			{Name: "Mobile Development", Slug: "mobile-development"},
			{Name: "Game Development", Slug: "game-development"},
			{Name: "Programming Languages", Slug: "programming-languages"},
			{Name: "DevOps", Slug: "devops"},
		},
	},
	{
		Name: "Writing & Publishing", Slug: "writing-publishing", Color: "#D8B5FF",
		Subcategories: []subcategoryData{
			{Name: "Fiction", Slug: "fiction"},
			{Name: "Non-Fiction", Slug: "non-fiction"},
			{Name: "Blogging", Slug: "blogging"},
			{Name: "Copywriting", Slug: "copywriting"},
		},
	},
	{
		Name: "Education", Slug: "education", Color: "#FFE066",
		Subcategories: []subcategoryData{
			{Name: "Online Courses", Slug: "online-courses"},
			{Name: "Tutoring", Slug: "tutoring"},
			{Name: "Test Preparation", Slug: "test-preparation"},
		},
	},
	{
		Name: "Self Improvement", Slug: "self-improvement", Color: "#96E6B3",
		Subcategories: []subcategoryData{
			{Name: "Productivity", Slug: "productivity"},
			{Name: "Personal Development", Slug: "personal-development"},
			{Name: "Mindfulness", Slug: "mindfulness"},
		},
	},
	{
		Name: "Fitness & Health", Slug: "fitness-health", Color: "#FF9AA2",
		Subcategories: []subcategoryData{
			{Name: "Workout Plans", Slug: "workout-plans"},
			{Name: "Nutrition", Slug: "nutrition"},
			{Name: "Yoga", Slug: "yoga"},
		},
	},
	{
		Name: "Design", Slug: "design", Color: "#B5B9FF",
		Subcategories: []subcategoryData{
			{Name: "UI/UX", Slug: "ui-ux"},
			{Name: "Graphics & Illustration", Slug: "graphics-illustration"},
			{Name: "Fonts", Slug: "fonts"},
			{Name: "Icons", Slug: "icons"},
		},
	},
	{
		Name: "Drawing & Painting", Slug: "drawing-painting", Color: "#FFCAB0",
		Subcategories: []subcategoryData{
			{Name: "Digital Art", Slug: "digital-art"},
			{Name: "Watercolor", Slug: "watercolor"},
			{Name: "Sketching", Slug: "sketching"},
		},
	},
	{
		Name: "Music", Slug: "music", Color: "#FFD700",
		Subcategories: []subcategoryData{
			{Name: "Sample Packs", Slug: "sample-packs"},
			{Name: "Sheet Music", Slug: "sheet-music"},
			{Name: "Music Production", Slug: "music-production"},
		},
	},
	{
		Name: "Photography", Slug: "photography", Color: "#83C5BE",
		Subcategories: []subcategoryData{
			{Name: "Presets", Slug: "presets"},
			{Name: "Stock Photos", Slug: "stock-photos"},
			{Name: "Photo Courses", Slug: "photo-courses"},
		},
	},
}

// Categories populates the category tree. It is idempotent: categories that
// already exist by slug are left alone, so it is safe to run on every boot.
func Categories(repo repositories.CategoryRepository) error {
	for _, cat := range categories {
		parent, err := repo.GetBySlug(cat.Slug)
		switch {
		case err == nil:
			// already seeded
		case errors.Is(err, apperr.ErrNotFound):
			parent = &models.Category{
				Name:  cat.Name,
				Slug:  cat.Slug,
				Color: cat.Color,
			}
			if err := repo.Create(parent); err != nil {
				return fmt.Errorf("seeding category %q: %w", cat.Slug, err)
			}
			log.Printf("Seeded category: %s", cat.Name)
		default:
			return fmt.Errorf("looking up category %q: %w", cat.Slug, err)
		}

		for _, sub := range cat.Subcategories {
			_, err := repo.GetBySlug(sub.Slug)
			if err == nil {
				continue
			}
			if !errors.Is(err, apperr.ErrNotFound) {
				return fmt.Errorf("looking up subcategory %q: %w", sub.Slug, err)
			}
			parentID := parent.ID
			child := &models.Category{
				Name:     sub.Name,
				Slug:     sub.Slug,
				ParentID: &parentID,
			}
			if err := repo.Create(child); err != nil {
				return fmt.Errorf("seeding subcategory %q: %w", sub.Slug, err)
			}
			log.Printf("Seeded subcategory: %s (parent %s)", sub.Name, cat.Name)
		}
	}
	return nil
}

// Demo populates a demo seller with a small storefront so a fresh install
// has something to browse. Idempotent: it keys off the demo tenant's slug
// and does nothing when the store already exists. Not meant for production.
func Demo(
	userRepo repositories.UserRepository,
	tenantRepo repositories.TenantRepository,
	tagRepo repositories.TagRepository,
	categoryRepo repositories.CategoryRepository,
	products *services.ProductService,
) error {
	const demoSlug = "demo-store"

	if _, err := tenantRepo.GetBySlug(demoSlug); err == nil {
		return nil
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("looking up demo tenant: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}
	owner := &models.User{
		Username: "demo-seller",
		Email:    "demo@example.com",
		Password: string(hash),
		Roles:    models.RoleUser,
	}
	if err := userRepo.Create(owner); err != nil {
		return fmt.Errorf("seeding demo user: %w", err)
	}

	tenant := &models.Tenant{Name: "Demo Store", Slug: demoSlug}
	if err := tenantRepo.Create(tenant); err != nil {
		return fmt.Errorf("seeding demo tenant: %w", err)
	}
	if err := userRepo.AttachTenant(owner.ID, tenant); err != nil {
		return fmt.Errorf("linking demo tenant: %w", err)
	}

	tags := make([]models.Tag, 0, 2)
	for _, name := range []string{"starter", "featured"} {
		tag, err := tagRepo.GetByName(name)
		if errors.Is(err, apperr.ErrNotFound) {
			tag = &models.Tag{Name: name}
			if err := tagRepo.Create(tag); err != nil {
				return fmt.Errorf("seeding tag %q: %w", name, err)
			}
		} else if err != nil {
			return fmt.Errorf("looking up tag %q: %w", name, err)
		}
		tags = append(tags, *tag)
	}

	var categoryID *string
	if design, err := categoryRepo.GetBySlug("design"); err == nil {
		categoryID = &design.ID
	}

	demoProducts := []models.Product{
		{
			Name:        "Starter Icon Pack",
			Description: "120 outline icons in SVG and PNG.",
			Price:       9.99,
			TenantID:    tenant.ID,
			CategoryID:  categoryID,
			Tags:        tags,
			Content:     "Download link: icons-v1.zip",
		},
		{
			Name:        "Wireframe Kit",
			Description: "Low-fidelity components for quick mockups.",
			Price:       24.00,
			TenantID:    tenant.ID,
			CategoryID:  categoryID,
			Tags:        tags[:1],
			Content:     "Download link: wireframes-v1.zip",
		},
		{
			Name:        "Brand Guidelines Template",
			Description: "A fill-in-the-blanks brand book.",
			Price:       15.00,
			TenantID:    tenant.ID,
			CategoryID:  categoryID,
			Content:     "Download link: brandbook-v1.zip",
		},
	}
	for i := range demoProducts {
		if err := products.CreateProduct(&demoProducts[i]); err != nil {
			return fmt.Errorf("seeding demo product %q: %w", demoProducts[i].Name, err)
		}
		log.Printf("Seeded demo product: %s", demoProducts[i].Name)
	}
	log.Printf("Seeded demo store %q", demoSlug)
	return nil
}
