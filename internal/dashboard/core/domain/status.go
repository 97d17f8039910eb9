package domain

// Trace statuses known to the dashboard. Anything else (error, cancel,
// new failure codes) is counted as an exception.
const (
	TraceSent      = "sent"
	TraceOpen      = "open"
	TraceReply     = "reply"
	TraceClick     = "click"
	TraceBounce    = "bounce"
	TraceDelivered = "delivered"
)

var (
	SentStatuses      = []string{TraceSent, TraceOpen, TraceReply, TraceClick, TraceBounce, TraceDelivered}
	DeliveredStatuses = []string{TraceSent, TraceOpen, TraceReply, TraceClick, TraceDelivered}
)

func IsSentStatus(status string) bool {
	return contains(SentStatuses, status)
}

func IsDeliveredStatus(status string) bool {
	return contains(DeliveredStatuses, status)
}

// StatusTally accumulates trace counts per delivery bucket.
type StatusTally struct {
	Sent      int64
	Delivered int64
	Bounced   int64
	Exception int64
}

func (t *StatusTally) Add(status string, n int64) {
	if !IsSentStatus(status) {
		t.Exception += n
		return
	}
	t.Sent += n
	if IsDeliveredStatus(status) {
		t.Delivered += n
	}
	if status == TraceBounce {
		t.Bounced += n
	}
}

func (t StatusTally) TotalAttempts() int64 {
	return t.Sent + t.Exception
}

// Sale order lifecycle and invoicing values.
const (
	OrderDraft     = "draft"
	OrderSent      = "sent"
	OrderConfirmed = "sale"
	OrderDone      = "done"

	InvoiceStatusInvoiced = "invoiced"
)

type OrderBucket int

const (
	OrderBucketNone OrderBucket = iota
	OrderBucketPotential
	OrderBucketRealized
)

// ClassifyOrder places an order in exactly one revenue bucket.
// Potential is pipeline revenue (quotations and confirmed orders not fully
// invoiced); realized is confirmed or done and fully invoiced.
func ClassifyOrder(state, invoiceStatus string) OrderBucket {
	switch state {
	case OrderDraft, OrderSent:
		return OrderBucketPotential
	case OrderConfirmed:
		if invoiceStatus == InvoiceStatusInvoiced {
			return OrderBucketRealized
		}
		return OrderBucketPotential
	case OrderDone:
		if invoiceStatus == InvoiceStatusInvoiced {
			return OrderBucketRealized
		}
	}
	return OrderBucketNone
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
