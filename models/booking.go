package models

import "time"

// Booking statuses. Status only moves forward; completed, cancelled and
// no_show are terminal.
const (
	StatusPendingPayment = "pending_payment"
	StatusConfirmed      = "confirmed"
	StatusCheckedIn      = "checked_in"
	StatusCompleted      = "completed"
	StatusCancelled      = "cancelled"
	StatusNoShow         = "no_show"
)

// Payment methods and statuses.
const (
	PaymentCash   = "cash"
	PaymentOnline = "online"

	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// Who initiated a cancellation.
const (
	CancelledByCustomer = "customer"
	CancelledByBusiness = "business"
)

// ReasonRescheduled marks a cancellation that happened as part of a reschedule.
const ReasonRescheduled = "Rescheduled"

// Booking represents one appointment. EndTime is derived from the service
// duration at creation; the buffer affects slot spacing, never this interval.
type Booking struct {
	ID                 string     `bson:"id" json:"id"`
	BusinessID         string     `bson:"business_id" json:"business_id"`
	ServiceID          string     `bson:"service_id" json:"service_id"`
	CustomerID         string     `bson:"customer_id" json:"customer_id"`
	StartTime          time.Time  `bson:"start_time" json:"start_time"`
	EndTime            time.Time  `bson:"end_time" json:"end_time"`
	Status             string     `bson:"status" json:"status"`
	PaymentMethod      string     `bson:"payment_method" json:"payment_method"`
	PaymentStatus      string     `bson:"payment_status" json:"payment_status"`
	PaidAt             *time.Time `bson:"paid_at,omitempty" json:"paid_at,omitempty"`
	CheckedInAt        *time.Time `bson:"checked_in_at,omitempty" json:"checked_in_at,omitempty"`
	CancelledAt        *time.Time `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
	CancelledBy        string     `bson:"cancelled_by,omitempty" json:"cancelled_by,omitempty"`
	CancellationReason string     `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
	RescheduledFrom    string     `bson:"rescheduled_from,omitempty" json:"rescheduled_from,omitempty"`
	RescheduledTo      string     `bson:"rescheduled_to,omitempty" json:"rescheduled_to,omitempty"`
	CreatedAt          time.Time  `bson:"created_at" json:"created_at"`

	// PaymentClientSecret is handed to the client once at creation so it can
	// complete an online payment. Never persisted.
	PaymentClientSecret string `bson:"-" json:"payment_client_secret,omitempty"`
}

// Terminal reports whether the booking accepts no further transitions.
func (b *Booking) Terminal() bool {
	switch b.Status {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}
