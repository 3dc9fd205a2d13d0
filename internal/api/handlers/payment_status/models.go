package payment_status

// Actions accepted in the URL
const (
	ActionPaid      = "paid"
	ActionFailed    = "failed"
	ActionRefund    = "refund"
	ActionReconcile = "reconcile"
)

// MarkPaidRequest HTTP request model for /payment/paid
type MarkPaidRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Method string  `json:"method" validate:"required,max=64"` // "cash", "upi", "card"
}

// MarkFailedRequest HTTP request model for /payment/failed
type MarkFailedRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}
