package domain_test

import (
	"testing"
	"time"

	"marketing-dashboard-service/internal/dashboard/core/domain"
)

func TestPercent(t *testing.T) {
	cases := []struct {
		part, whole int64
		want        float64
	}{
		{0, 0, 0},
		{5, 0, 0},
		{0, 10, 0},
		{9, 10, 90},
		{10, 10, 100},
		{30, 10, 100},
		{-1, 10, 0},
	}

	for _, c := range cases {
		if got := domain.Percent(c.part, c.whole); got != c.want {
			t.Fatalf("Percent(%d, %d) = %v, want %v", c.part, c.whole, got, c.want)
		}
	}
}

func TestRatio(t *testing.T) {
	if got := domain.Ratio(100, 0); got != 0 {
		t.Fatalf("expected 0 for zero denominator, got %v", got)
	}
	if got := domain.Ratio(100, 4); got != 25 {
		t.Fatalf("expected 25, got %v", got)
	}
}

func TestDeliveredIsSubsetOfSent(t *testing.T) {
	for _, s := range domain.DeliveredStatuses {
		if !domain.IsSentStatus(s) {
			t.Fatalf("delivered status %q is not a sent status", s)
		}
	}
	if domain.IsDeliveredStatus(domain.TraceBounce) {
		t.Fatalf("bounce must not count as delivered")
	}
}

func TestStatusTally(t *testing.T) {
	var tally domain.StatusTally
	tally.Add("sent", 4)
	tally.Add("bounce", 1)
	tally.Add("error", 2)
	tally.Add("", 1)

	if tally.Sent != 5 || tally.Delivered != 4 || tally.Bounced != 1 || tally.Exception != 3 {
		t.Fatalf("unexpected tally: %+v", tally)
	}
	if tally.TotalAttempts() != 8 {
		t.Fatalf("expected total attempts 8, got %d", tally.TotalAttempts())
	}
}

func TestRecordAccessors(t *testing.T) {
	ts := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	r := domain.Record{
		"i":     int(3),
		"b":     []byte("12"),
		"f":     []byte("1.5"),
		"flag":  true,
		"when":  ts,
		"empty": nil,
	}

	if r.Int64("i") != 3 || r.Int64("b") != 12 {
		t.Fatalf("int coercion failed: %d %d", r.Int64("i"), r.Int64("b"))
	}
	if r.Float64("f") != 1.5 {
		t.Fatalf("float coercion failed: %v", r.Float64("f"))
	}
	if !r.Bool("flag") {
		t.Fatalf("expected flag true")
	}
	if r.Has("empty") || r.Has("missing") {
		t.Fatalf("nil and missing fields must not be present")
	}
	if r.String("when") != "2024-02-03 04:05:06" {
		t.Fatalf("unexpected time string %q", r.String("when"))
	}
	if _, ok := r.Time("empty"); ok {
		t.Fatalf("nil time must not be set")
	}
}

func TestConversionEnabled(t *testing.T) {
	caps := domain.SchemaCapabilities{InvoicingFields: true, Orders: true, MailingSource: true}
	if !caps.ConversionEnabled() {
		t.Fatalf("expected conversion enabled")
	}
	caps.Orders = false
	if caps.ConversionEnabled() {
		t.Fatalf("expected conversion disabled without orders")
	}
}
