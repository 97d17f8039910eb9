package memory

import (
	"fmt"
	"os"
	"strings"
	"time"

	"marketing-dashboard-service/internal/dashboard/core/domain"
	"marketing-dashboard-service/internal/dashboard/core/ports"

	"gopkg.in/yaml.v3"
)

type fixtureFile struct {
	Capabilities struct {
		MailingCampaign  bool   `yaml:"mailing_campaign"`
		MailingSource    bool   `yaml:"mailing_source"`
		ABTesting        bool   `yaml:"ab_testing"`
		InvoicingFields  bool   `yaml:"invoicing_fields"`
		Orders           bool   `yaml:"orders"`
		Stages           bool   `yaml:"stages"`
		LinkTracking     bool   `yaml:"link_tracking"`
		TraceStatusField string `yaml:"trace_status_field"`
	} `yaml:"capabilities"`
	Tables map[string][]map[string]any `yaml:"tables"`
}

var knownEntities = map[ports.Entity]bool{
	ports.EntityCampaign:  true,
	ports.EntityStage:     true,
	ports.EntityMailing:   true,
	ports.EntityTrace:     true,
	ports.EntityContact:   true,
	ports.EntityOrder:     true,
	ports.EntityLink:      true,
	ports.EntityLinkClick: true,
}

// LoadFixture reads a YAML fixture file. Date and datetime columns given as
// strings are parsed into times.
func LoadFixture(path string) (Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(b)
}

func ParseFixture(b []byte) (Fixture, error) {
	var raw fixtureFile
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}

	c := raw.Capabilities
	f := Fixture{
		Capabilities: domain.SchemaCapabilities{
			MailingCampaign:  c.MailingCampaign,
			MailingSource:    c.MailingSource,
			ABTesting:        c.ABTesting,
			InvoicingFields:  c.InvoicingFields,
			Orders:           c.Orders,
			Stages:           c.Stages,
			LinkTracking:     c.LinkTracking,
			TraceStatusField: domain.StatusField(c.TraceStatusField),
		},
		Tables: make(map[ports.Entity][]domain.Record, len(raw.Tables)),
	}

	for name, rows := range raw.Tables {
		entity := ports.Entity(name)
		if !knownEntities[entity] {
			return Fixture{}, fmt.Errorf("parse fixture: unknown entity %q", name)
		}
		recs := make([]domain.Record, 0, len(rows))
		for _, row := range rows {
			rec := make(domain.Record, len(row))
			for k, v := range row {
				rec[k] = coerceTime(k, v)
			}
			recs = append(recs, rec)
		}
		f.Tables[entity] = recs
	}

	return f, nil
}

func coerceTime(field string, v any) any {
	s, ok := v.(string)
	if !ok || !(strings.HasSuffix(field, "_date") || strings.HasSuffix(field, "_datetime")) {
		return v
	}
	for _, layout := range []string{time.RFC3339, time.DateTime, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return v
}

// DemoFixture is a small, fully featured data set used when the service runs
// with the memory driver and no fixture file.
func DemoFixture(now time.Time) Fixture {
	day := 24 * time.Hour

	f := Fixture{
		Capabilities: domain.SchemaCapabilities{
			MailingCampaign:  true,
			MailingSource:    true,
			ABTesting:        true,
			InvoicingFields:  true,
			Orders:           true,
			Stages:           true,
			LinkTracking:     true,
			TraceStatusField: domain.StatusFieldTraceStatus,
		},
		Tables: map[ports.Entity][]domain.Record{
			ports.EntityStage: {
				{"id": int64(1), "name": "New", "sequence": int64(1)},
				{"id": int64(2), "name": "Design", "sequence": int64(2)},
				{"id": int64(3), "name": "Sent", "sequence": int64(3)},
			},
			ports.EntityCampaign: {
				{"id": int64(1), "name": "Spring Sale", "stage_id": int64(3)},
				{"id": int64(2), "name": "Newsletter", "stage_id": int64(2)},
			},
			ports.EntityMailing: {
				{
					"id": int64(10), "subject": "Spring Sale Kickoff", "state": "done",
					"sent_date": now.Add(-10 * day), "campaign_id": int64(1), "source_id": int64(100),
					"sent": int64(6), "ab_testing_enabled": true,
					"sale_invoiced_amount": 1200.0, "sale_quotation_count": int64(3),
				},
				{
					"id": int64(11), "subject": "Spring Sale Reminder", "state": "sending",
					"sent_date": now.Add(-2 * day), "campaign_id": int64(1), "source_id": int64(101),
					"sent": int64(2), "ab_testing_enabled": false,
					"sale_invoiced_amount": 300.0, "sale_quotation_count": int64(1),
				},
				{
					"id": int64(12), "subject": "Monthly Digest", "state": "draft",
					"campaign_id": int64(2), "sent": int64(0), "ab_testing_enabled": false,
					"sale_invoiced_amount": 0.0, "sale_quotation_count": int64(0),
				},
			},
			ports.EntityContact: {
				{"id": int64(1), "is_blacklisted": false, "create_date": now.Add(-90 * day)},
				{"id": int64(2), "is_blacklisted": false, "create_date": now.Add(-5 * day)},
				{"id": int64(3), "is_blacklisted": true, "create_date": now.Add(-40 * day)},
				{"id": int64(4), "is_blacklisted": false, "create_date": now.Add(-1 * day)},
			},
			ports.EntityOrder: {
				{"id": int64(1), "source_id": int64(100), "state": "sale", "invoice_status": "invoiced", "amount_total": 800.0},
				{"id": int64(2), "source_id": int64(100), "state": "draft", "invoice_status": "no", "amount_total": 150.0},
				{"id": int64(3), "source_id": int64(101), "state": "done", "invoice_status": "invoiced", "amount_total": 300.0},
				{"id": int64(4), "source_id": int64(101), "state": "cancel", "invoice_status": "no", "amount_total": 90.0},
			},
			ports.EntityLink: {
				{"id": int64(1), "title": "Shop", "label": "hero", "url": "https://example.com/shop", "short_url": "https://ex.co/r/a", "count": int64(40)},
				{"id": int64(2), "title": "", "label": "", "url": "https://example.com/blog", "short_url": "https://ex.co/r/b", "count": int64(7)},
			},
		},
	}

	var traces, clicks []domain.Record
	addTrace := func(mailing int64, status string, opened, clicked bool) {
		id := int64(len(traces) + 1)
		t := domain.Record{"id": id, "mass_mailing_id": mailing, "trace_status": status}
		if opened {
			t["open_datetime"] = now.Add(-day)
		}
		if clicked {
			t["links_click_datetime"] = now.Add(-day)
		}
		traces = append(traces, t)
	}
	for _, s := range []string{"sent", "open", "open", "click", "bounce", "error"} {
		addTrace(10, s, s == "open" || s == "click", s == "click")
	}
	addTrace(11, "delivered", false, false)
	addTrace(11, "reply", true, false)

	for i, link := range []int64{1, 1, 2} {
		clicks = append(clicks, domain.Record{"id": int64(i + 1), "link_id": link, "mass_mailing_id": int64(10)})
	}

	f.Tables[ports.EntityTrace] = traces
	f.Tables[ports.EntityLinkClick] = clicks
	return f
}
