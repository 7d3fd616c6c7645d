package model

// Delivery status values reported by the notification fan-out
const (
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusPartial   = "partial"
	DeliveryStatusFailed    = "failed"
	DeliveryStatusSkipped   = "skipped: mail transport not configured"
	DeliveryStatusEmpty     = "no recipients"
)

// DeliveryFailure records one recipient whose invitation could not be sent
type DeliveryFailure struct {
	Recipient string `json:"recipient"`
	Reason    string `json:"reason"`
}

// DeliveryReport summarizes the fan-out of meeting invitations. One
// recipient's failure never hides the others: failures are enumerated
// per recipient.
type DeliveryReport struct {
	Attempted int               `json:"attempted"`
	Succeeded int               `json:"succeeded"`
	Failures  []DeliveryFailure `json:"failures"`
	Status    string            `json:"status"`
}

// Resolve fills in the summary status from the counters. Failures must
// already be populated.
func (r *DeliveryReport) Resolve() {
	switch {
	case r.Attempted == 0:
		if r.Status == "" {
			r.Status = DeliveryStatusEmpty
		}
	case r.Succeeded == r.Attempted:
		r.Status = DeliveryStatusDelivered
	case r.Succeeded == 0:
		r.Status = DeliveryStatusFailed
	default:
		r.Status = DeliveryStatusPartial
	}
}
