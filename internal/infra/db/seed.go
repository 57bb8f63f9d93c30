package db

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront/internal/domain/model"
)

// Seed populates reference data on a fresh database: categories, the launch
// catalog, themes, server config keys and the initial admin account. It is a
// no-op when categories already exist.
func Seed(gormDB *gorm.DB, adminPassword string) error {
	var count int64
	if err := gormDB.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return gormDB.Transaction(func(tx *gorm.DB) error {
		if err := seedCatalog(tx); err != nil {
			return err
		}
		if err := seedThemes(tx); err != nil {
			return err
		}
		if err := seedServerConfig(tx); err != nil {
			return err
		}
		return seedAdmin(tx, adminPassword)
	})
}

func seedCatalog(tx *gorm.DB) error {
	categories := []model.Category{
		{Name: "VIP Membership", Slug: "vip", Description: "Premium server access and privileges", Icon: "👑", SortOrder: 1, Active: true},
		{Name: "Survival Kits", Slug: "kits", Description: "Essential items and equipment packages", Icon: "📦", SortOrder: 2, Active: true},
		{Name: "Cosmetic Skins", Slug: "cosmetics", Description: "Character skins and visual customizations", Icon: "🎨", SortOrder: 3, Active: true},
		{Name: "Boosters", Slug: "boosters", Description: "Experience and resource multipliers", Icon: "⚡", SortOrder: 4, Active: true},
		{Name: "Bundles", Slug: "bundles", Description: "Value packages with multiple items", Icon: "🎁", SortOrder: 5, Active: true},
	}
	if err := tx.Create(&categories).Error; err != nil {
		return err
	}

	byCategory := map[string]int64{}
	for _, c := range categories {
		byCategory[c.Slug] = c.ID
	}

	price := func(v float64) *float64 { return &v }

	products := []model.Product{
		{
			Name:             "VIP Monthly Membership",
			Slug:             "vip-monthly",
			Description:      "Unlock premium features, exclusive kits, priority queue access, and special privileges on the server.",
			ShortDescription: "Premium server access with exclusive perks",
			Price:            9.99, CategoryID: byCategory["vip"],
			StockQuantity: 999, MaxQuantityPerOrder: 1,
			Popular: true, Featured: true, Badge: "Most Popular", Active: true,
			Features: []model.ProductFeature{
				{FeatureText: "Priority queue access", SortOrder: 1},
				{FeatureText: "Custom chat colors and tags", SortOrder: 2},
				{FeatureText: "1.5x gather rate bonus", SortOrder: 3},
			},
		},
		{
			Name:             "Starter Survival Kit",
			Slug:             "starter-kit",
			Description:      "Essential tools, weapons, and resources to give you a strong start on the server.",
			ShortDescription: "Essential items for new players",
			Price:            4.99, CategoryID: byCategory["kits"],
			StockQuantity: 999, MaxQuantityPerOrder: 3, Active: true,
			Features: []model.ProductFeature{
				{FeatureText: "Stone pickaxe and hatchet", SortOrder: 1},
				{FeatureText: "Bow with 30 arrows", SortOrder: 2},
				{FeatureText: "1000 wood and 500 stone", SortOrder: 3},
			},
		},
		{
			Name:             "Elite Raid Kit",
			Slug:             "raid-kit",
			Description:      "Advanced raiding equipment for experienced players. Use responsibly!",
			ShortDescription: "High-tier raiding equipment",
			Price:            24.99, OriginalPrice: price(29.99), DiscountPercentage: 17,
			CategoryID:    byCategory["kits"],
			StockQuantity: 250, MaxQuantityPerOrder: 2,
			LimitedEdition: true, Badge: "Limited Time", Active: true,
		},
		{
			Name:             "Legendary Bear Skin",
			Slug:             "skin-bear",
			Description:      "Exclusive animated bear skin with custom animations and particle effects.",
			ShortDescription: "Exclusive animated bear skin with effects",
			Price:            12.99, CategoryID: byCategory["cosmetics"],
			StockQuantity: 999, MaxQuantityPerOrder: 1,
			Popular: true, Badge: "Exclusive", Active: true,
		},
		{
			Name:             "2x XP Booster (24h)",
			Slug:             "xp-booster",
			Description:      "Double your experience gains for 24 hours.",
			ShortDescription: "Double XP gains for 24 hours",
			Price:            3.99, CategoryID: byCategory["boosters"],
			StockQuantity: 999, MaxQuantityPerOrder: 10, Active: true,
		},
		{
			Name:             "Mega Survivor Bundle",
			Slug:             "mega-bundle",
			Description:      "VIP membership, premium kits, exclusive skins, and boosters at an incredible value.",
			ShortDescription: "Ultimate survival package with everything included",
			Price:            49.99, OriginalPrice: price(75.96), DiscountPercentage: 34,
			CategoryID:    byCategory["bundles"],
			StockQuantity: 100, MaxQuantityPerOrder: 1,
			Popular: true, Featured: true, LimitedEdition: true, Badge: "Best Value", Active: true,
		},
	}

	return tx.Create(&products).Error
}

func seedThemes(tx *gorm.DB) error {
	themes := []model.Theme{
		{
			Name: "Rusty Orange", Slug: "rusty-orange",
			Description:  "Default warm rust palette",
			CSSVariables: `{"--color-primary":"#ce422b","--color-surface":"#1f1a17","--color-accent":"#e8a33d"}`,
			IsActive:     true,
		},
		{
			Name: "Midnight Raid", Slug: "midnight-raid",
			Description:  "Dark blue night-time palette",
			CSSVariables: `{"--color-primary":"#3a7bd5","--color-surface":"#0d1117","--color-accent":"#9be15d"}`,
			IsActive:     true,
		},
	}
	return tx.Create(&themes).Error
}

func seedServerConfig(tx *gorm.DB) error {
	configs := []model.ServerConfig{
		{Key: "server_ip", Value: "23.136.68.2", Description: "Rust game server IP address", ConfigType: model.ConfigTypeString},
		{Key: "server_port", Value: "28015", Description: "Rust game server port", ConfigType: model.ConfigTypeNumber},
		{Key: "query_port", Value: "28017", Description: "Steam query port for server status", ConfigType: model.ConfigTypeNumber},
		{Key: "rcon_port", Value: "28016", Description: "RCON port for server administration", ConfigType: model.ConfigTypeNumber},
		{Key: "rcon_password", Value: "", Description: "RCON password", ConfigType: model.ConfigTypePassword},
		{Key: "server_name", Value: "Rusty Butter Server", Description: "Display name of the server", ConfigType: model.ConfigTypeString},
		{Key: "wipe_schedule", Value: "Bi-Weekly (Thursdays 6PM EST)", Description: "Server wipe schedule", ConfigType: model.ConfigTypeString},
		{Key: "max_players", Value: "100", Description: "Maximum concurrent players", ConfigType: model.ConfigTypeNumber},
	}
	return tx.Create(&configs).Error
}

func seedAdmin(tx *gorm.DB, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := model.User{
		Username:     "admin",
		Email:        "admin@rustybutter.com",
		PasswordHash: string(hash),
		RustUsername: "RustyAdmin",
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return tx.Create(&admin).Error
}
