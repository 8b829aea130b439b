package engine

import (
	"github.com/shopspring/decimal"

	"github.com/Victor-armando18/promo-cart/internal/domain"
)

// Application records one promotion applied during a checkout pass.
type Application struct {
	PromotionID string                 `json:"promotionId"`
	TriggerSKU  string                 `json:"triggerSku"`
	TargetSKU   string                 `json:"targetSku"`
	Mode        domain.ApplicationMode `json:"applicationMode"`
	Units       int                    `json:"units"`
	Amount      decimal.Decimal        `json:"amount"`
}

// Skip records a resolved promotion that did not produce a discount.
type Skip struct {
	PromotionID string `json:"promotionId"`
	TriggerSKU  string `json:"triggerSku"`
	Reason      string `json:"reason"`
	Err         error  `json:"-"`
}

// Skip reasons.
const (
	ReasonBelowThreshold  = "below required quantity"
	ReasonConditionFalse  = "condition not met"
	ReasonConditionFailed = "condition evaluation failed"
	ReasonTargetNotInCart = "target not in cart"
	ReasonInvalidConfig   = "invalid promotion config"
)

type Result struct {
	Applied []Application
	Skipped []Skip
}
