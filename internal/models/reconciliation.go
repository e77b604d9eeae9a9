package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reconciliation records a confirmed payment whose order could not be
// written. Records stay pending until an administrator settles them.
type Reconciliation struct {
	Reference   string          `json:"order_reference"`
	Username    string          `json:"username"`
	PaymentMode string          `json:"payment_mode"`
	Amount      decimal.Decimal `json:"amount"`
	Lines       []CartLine      `json:"items"`
	Cause       string          `json:"cause"`
	RecordedAt  time.Time       `json:"recorded_at"`
}
