package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glowbook/booking-api/internal/model"
)

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name          string
		service       *model.Service
		isHomeService bool
		want          int64
	}{
		{
			name:    "salon visit uses base price",
			service: &model.Service{BasePrice: 5000, HomeEligible: true, HomeSurcharge: 1000},
			want:    5000,
		},
		{
			name:          "home service adds surcharge when eligible",
			service:       &model.Service{BasePrice: 5000, HomeEligible: true, HomeSurcharge: 1000},
			isHomeService: true,
			want:          6000,
		},
		{
			name:          "home service ignored when not eligible",
			service:       &model.Service{BasePrice: 5000, HomeEligible: false, HomeSurcharge: 1000},
			isHomeService: true,
			want:          5000,
		},
		{
			name:          "zero surcharge keeps base price",
			service:       &model.Service{BasePrice: 3000, HomeEligible: true, HomeSurcharge: 0},
			isHomeService: true,
			want:          3000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeTotal(tt.service, tt.isHomeService))
		})
	}
}

func TestComputeTotalMonotonicity(t *testing.T) {
	services := []*model.Service{
		{BasePrice: 0, HomeEligible: true, HomeSurcharge: 0},
		{BasePrice: 100, HomeEligible: true, HomeSurcharge: 50},
		{BasePrice: 9999, HomeEligible: false, HomeSurcharge: 500},
		{BasePrice: 5000, HomeEligible: true, HomeSurcharge: 1000},
	}

	for _, svc := range services {
		home := ComputeTotal(svc, true)
		salon := ComputeTotal(svc, false)
		assert.GreaterOrEqual(t, home, salon)
		if !svc.HomeEligible || svc.HomeSurcharge == 0 {
			assert.Equal(t, salon, home)
		} else {
			assert.Greater(t, home, salon)
		}
	}
}

func TestComputeFinalAmount(t *testing.T) {
	tests := []struct {
		name   string
		total  int64
		method model.PaymentMethod
		want   int64
	}{
		{"card adds 2.5 percent", 6000, model.PaymentMethodCard, 6150},
		{"card rounds half up", 100, model.PaymentMethodCard, 103},     // 2.5 -> 3
		{"card rounds half up on 60", 60, model.PaymentMethodCard, 62}, // 1.5 -> 2
		{"card rounds down below half", 40, model.PaymentMethodCard, 41},
		{"card on zero", 0, model.PaymentMethodCard, 0},
		{"cash unchanged", 6000, model.PaymentMethodCashOnService, 6000},
		{"jazzcash unchanged", 6000, model.PaymentMethodJazzCash, 6000},
		{"easypaisa unchanged", 6000, model.PaymentMethodEasypaisa, 6000},
		{"bank transfer unchanged", 6000, model.PaymentMethodBankTransfer, 6000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeFinalAmount(tt.total, tt.method))
		})
	}
}

func TestHomeServiceCardScenario(t *testing.T) {
	svc := &model.Service{
		BasePrice:     5000,
		HomeEligible:  true,
		HomeSurcharge: 1000,
		Duration:      60,
	}

	total := ComputeTotal(svc, true)
	assert.Equal(t, int64(6000), total)

	final := ComputeFinalAmount(total, model.PaymentMethodCard)
	assert.Equal(t, int64(6150), final)
}
