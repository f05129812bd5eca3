package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentMethodCashOnService PaymentMethod = "cash_on_service"
	PaymentMethodJazzCash      PaymentMethod = "jazzcash"
	PaymentMethodEasypaisa     PaymentMethod = "easypaisa"
	PaymentMethodBankTransfer  PaymentMethod = "bank_transfer"
	PaymentMethodCard          PaymentMethod = "card"
)

// PaymentMethods lists the supported methods in display order.
var PaymentMethods = []PaymentMethod{
	PaymentMethodCashOnService,
	PaymentMethodJazzCash,
	PaymentMethodEasypaisa,
	PaymentMethodBankTransfer,
	PaymentMethodCard,
}

func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// WalletDetails is required for jazzcash and easypaisa.
type WalletDetails struct {
	MobileNumber string `json:"mobile_number" binding:"required,max=20"`
}

// BankTransferDetails carries the customer-supplied transfer reference. The
// payment stays pending until manually reconciled.
type BankTransferDetails struct {
	Reference string `json:"reference" binding:"required,max=64"`
}

// CardDetails is the card form payload. Only the last four digits are ever
// persisted.
type CardDetails struct {
	HolderName string `json:"holder_name" binding:"required,max=120"`
	Number     string `json:"number" binding:"required,min=12,max=19"`
	ExpiryMM   int    `json:"expiry_mm" binding:"required,min=1,max=12"`
	ExpiryYY   int    `json:"expiry_yy" binding:"required"`
}

// PaymentDetails is a union keyed by the draft's payment method: exactly the
// variant matching the method must be set, all others nil. cash_on_service
// needs no variant at all.
type PaymentDetails struct {
	Wallet       *WalletDetails       `json:"wallet,omitempty"`
	BankTransfer *BankTransferDetails `json:"bank_transfer,omitempty"`
	Card         *CardDetails         `json:"card,omitempty"`
}

// Payment is the persisted payment row, created atomically with its booking.
type Payment struct {
	Base
	BookingID     uuid.UUID     `db:"booking_id" json:"booking_id"`
	Amount        int64         `db:"amount" json:"amount"`
	Method        PaymentMethod `db:"method" json:"method"`
	Status        PaymentStatus `db:"status" json:"status"`
	TransactionID *string       `db:"transaction_id" json:"transaction_id,omitempty"`
	PaidAt        *time.Time    `db:"paid_at" json:"paid_at,omitempty"`
}
