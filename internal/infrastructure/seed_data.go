package infrastructure

import (
	"github.com/shopspring/decimal"

	"github.com/Victor-armando18/promo-cart/internal/domain"
)

// Demo catalog SKUs.
const (
	SKUGoogleHome   = "120P90"
	SKUMacBookPro   = "43N23P"
	SKUAlexaSpeaker = "A304SD"
	SKURaspberryPi  = "234234"
)

// DefaultSeed is the demo catalog: a free Raspberry Pi with every MacBook Pro,
// three Google Homes for the price of two, and 10% off all Alexas from three up.
func DefaultSeed() *domain.Seed {
	return &domain.Seed{
		Items: []domain.CatalogItem{
			{SKU: SKUGoogleHome, Name: "Google Home", Price: decimal.RequireFromString("49.99"), StockQty: 10},
			{SKU: SKUMacBookPro, Name: "MacBook Pro", Price: decimal.RequireFromString("5399.99"), StockQty: 5},
			{SKU: SKUAlexaSpeaker, Name: "Alexa Speaker", Price: decimal.RequireFromString("109.50"), StockQty: 10},
			{SKU: SKURaspberryPi, Name: "Raspberry Pi B", Price: decimal.RequireFromString("30.00"), StockQty: 2},
		},
		Promotions: []domain.Promotion{
			{
				ID:              "macbook-free-pi",
				TriggerSKU:      SKUMacBookPro,
				RequiredQty:     1,
				TargetSKU:       SKURaspberryPi,
				DiscountPercent: decimal.NewFromInt(100),
				Mode:            domain.ModeQualifiedGroups,
			},
			{
				ID:              "google-home-3-for-2",
				TriggerSKU:      SKUGoogleHome,
				RequiredQty:     3,
				TargetSKU:       SKUGoogleHome,
				DiscountPercent: decimal.NewFromInt(100),
				Mode:            domain.ModeQualifiedGroups,
			},
			{
				ID:              "alexa-10-off",
				TriggerSKU:      SKUAlexaSpeaker,
				RequiredQty:     3,
				TargetSKU:       SKUAlexaSpeaker,
				DiscountPercent: decimal.NewFromInt(10),
				Mode:            domain.ModeAll,
			},
		},
	}
}
