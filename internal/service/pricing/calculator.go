package pricing

import (
	"github.com/glowbook/booking-api/internal/model"
)

// Card payments carry a 2.5% processing surcharge. All amounts are integers
// in the currency's minor unit, so the surcharge is computed with integer
// arithmetic and rounded half up.
const (
	cardSurchargeNumerator   = 25
	cardSurchargeDenominator = 1000
)

// ComputeTotal returns the price for the selected service. Home service adds
// the surcharge only when the service is eligible for it.
func ComputeTotal(service *model.Service, isHomeService bool) int64 {
	total := service.BasePrice
	if isHomeService && service.HomeEligible {
		total += service.HomeSurcharge
	}
	return total
}

// ComputeFinalAmount applies the payment-method surcharge to the total.
// Only card adds one; every other method returns the total unchanged.
func ComputeFinalAmount(total int64, method model.PaymentMethod) int64 {
	if method != model.PaymentMethodCard {
		return total
	}
	surcharge := (total*cardSurchargeNumerator + cardSurchargeDenominator/2) / cardSurchargeDenominator
	return total + surcharge
}
