package bookingflow

import (
	"strings"

	"github.com/google/uuid"

	"github.com/glowbook/booking-api/internal/model"
	"github.com/glowbook/booking-api/pkg/errors"
)

// MethodSelection is the outcome of choosing a payment method on step 4.
// When RequiresDetails is true the flow must not complete until the matching
// detail form is submitted; cash_on_service is the only method that needs
// nothing further.
type MethodSelection struct {
	Method          model.PaymentMethod `json:"method"`
	FinalAmount     int64               `json:"final_amount"`
	RequiresDetails bool                `json:"requires_details"`
}

// MethodRequiresDetails reports whether the method needs a detail form.
func MethodRequiresDetails(method model.PaymentMethod) bool {
	return method != model.PaymentMethodCashOnService
}

// ValidatePaymentDetails checks that exactly the detail variant matching the
// method is present and filled in.
func ValidatePaymentDetails(method model.PaymentMethod, details *model.PaymentDetails) error {
	switch method {
	case model.PaymentMethodCashOnService:
		return nil
	case model.PaymentMethodJazzCash, model.PaymentMethodEasypaisa:
		if details == nil || details.Wallet == nil || strings.TrimSpace(details.Wallet.MobileNumber) == "" {
			return errors.Validation("payment_details.wallet.mobile_number", "mobile number is required for wallet payments")
		}
	case model.PaymentMethodBankTransfer:
		if details == nil || details.BankTransfer == nil || strings.TrimSpace(details.BankTransfer.Reference) == "" {
			return errors.Validation("payment_details.bank_transfer.reference", "transfer reference is required")
		}
	case model.PaymentMethodCard:
		if details == nil || details.Card == nil {
			return errors.Validation("payment_details.card", "card details are required")
		}
		card := details.Card
		if strings.TrimSpace(card.HolderName) == "" || strings.TrimSpace(card.Number) == "" {
			return errors.Validation("payment_details.card", "card holder and number are required")
		}
	default:
		return errors.Validation("payment_method", "unsupported payment method")
	}
	return nil
}

// buildPayment derives the payment row from the method's completion
// behavior. Wallet and card payments are simulated as immediately completed
// with a generated transaction id until the real gateway integration lands;
// bank transfers get a transaction id but stay pending until reconciled.
func buildPayment(method model.PaymentMethod, amount int64, now nowFunc) *model.Payment {
	payment := &model.Payment{
		Amount: amount,
		Method: method,
		Status: model.PaymentStatusPending,
	}

	switch method {
	case model.PaymentMethodCashOnService:
		// No transaction id; settled in person.
	case model.PaymentMethodJazzCash, model.PaymentMethodEasypaisa, model.PaymentMethodCard:
		txID := newTransactionID()
		paidAt := now()
		payment.TransactionID = &txID
		payment.PaidAt = &paidAt
		payment.Status = model.PaymentStatusCompleted
	case model.PaymentMethodBankTransfer:
		txID := newTransactionID()
		payment.TransactionID = &txID
	}

	return payment
}

func newTransactionID() string {
	return "TXN-" + strings.ToUpper(uuid.New().String()[:8])
}
