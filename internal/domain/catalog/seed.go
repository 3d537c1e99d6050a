package catalog

import (
	"github.com/aaushop/storefront/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SeedProducts returns the built-in catalog used to seed an empty backend
// and as the offline fallback when the backend is unreachable.
func SeedProducts() []Product {
	return []Product{
		{
			ID:          "inf-1",
			Name:        "Infinix Note 40 Pro",
			Description: "Ultra-fast 70W All-Round FastCharge with 120Hz AMOLED Curved Display. High-performance gaming and photography monster.",
			Price:       decimal.NewFromInt(34500),
			Currency:    valueobject.ETB,
			Category:    CategoryElectronics,
			Image:       "https://images.unsplash.com/photo-1616348436168-de43ad0db179?q=80&w=800&auto=format&fit=crop",
			Rating:      4.9,
			Tags:        []string{"infinix", "smartphone", "fastcharge", "gaming"},
		},
		{
			ID:          "inf-2",
			Name:        "Infinix Zero 30 5G",
			Description: "Master the cinematic with 4K 60FPS video recording and 144Hz 3D Curved AMOLED Display.",
			Price:       decimal.NewFromInt(42000),
			Currency:    valueobject.ETB,
			Category:    CategoryElectronics,
			Image:       "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?q=80&w=800&auto=format&fit=crop",
			Rating:      4.8,
			Tags:        []string{"infinix", "flagship", "camera", "5G"},
		},
		{
			ID:          "inf-3",
			Name:        "Infinix Hot 40i",
			Description: "The ultimate entertainment device with a 90Hz Super Bright Display and 5000mAh long-lasting battery.",
			Price:       decimal.NewFromInt(18900),
			Currency:    valueobject.ETB,
			Category:    CategoryElectronics,
			Image:       "https://images.unsplash.com/photo-1598327105666-5b89351aff97?q=80&w=800&auto=format&fit=crop",
			Rating:      4.7,
			Tags:        []string{"infinix", "affordable", "battery", "tech"},
		},
		{
			ID:          "fashion-1",
			Name:        "Urban Techshell Jacket",
			Description: "Waterproof, breathable, and equipped with smart heating elements for extreme comfort.",
			Price:       decimal.NewFromFloat(185.00),
			Currency:    valueobject.USD,
			Category:    CategoryFashion,
			Image:       "https://images.unsplash.com/photo-1591047139829-d91aecb6caea?q=80&w=800&auto=format&fit=crop",
			Rating:      4.6,
			Tags:        []string{"apparel", "techwear", "outdoor"},
		},
		{
			ID:          "home-1",
			Name:        "Aura Floating Moon Lamp",
			Description: "Magnetic levitation technology with touch-controlled lunar phases and warm glow.",
			Price:       decimal.NewFromFloat(129.00),
			Currency:    valueobject.USD,
			Category:    CategoryHome,
			Image:       "https://images.unsplash.com/photo-1534073828943-f801091bb18c?q=80&w=800&auto=format&fit=crop",
			Rating:      4.9,
			Tags:        []string{"decor", "minimalist", "lighting"},
		},
		{
			ID:          "well-1",
			Name:        "ZenPulse Massage Gun",
			Description: "Professional grade percussive therapy with ultra-quiet brushless motor and 6 speed levels.",
			Price:       decimal.NewFromFloat(249.00),
			Currency:    valueobject.USD,
			Category:    CategoryWellness,
			Image:       "https://images.unsplash.com/photo-1544117518-2b462fca5172?q=80&w=800&auto=format&fit=crop",
			Rating:      4.8,
			Tags:        []string{"recovery", "fitness", "wellness"},
		},
		{
			ID:          "gadget-1",
			Name:        "Nova VR Pro Headset",
			Description: "Immersive 8K resolution with haptic feedback controllers and wireless streaming capabilities.",
			Price:       decimal.NewFromFloat(599.00),
			Currency:    valueobject.USD,
			Category:    CategoryGadgets,
			Image:       "https://images.unsplash.com/photo-1622979135225-d2ba269cf1ac?q=80&w=800&auto=format&fit=crop",
			Rating:      4.7,
			Tags:        []string{"metaverse", "gaming", "next-gen"},
		},
	}
}
