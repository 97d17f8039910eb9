package postgres

import (
	"context"
	"fmt"
	"sort"

	"marketing-dashboard-service/internal/dashboard/core/domain"
	"marketing-dashboard-service/internal/dashboard/core/ports"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const probeQuery = `
SELECT table_name, column_name
FROM information_schema.columns
WHERE table_schema = current_schema()
  AND table_name = ANY($1)`

var linkColumns = []string{
	ports.FieldID,
	ports.FieldLinkTitle,
	ports.FieldLinkLabel,
	ports.FieldLinkURL,
	ports.FieldLinkShortURL,
	ports.FieldLinkCount,
}

type columnSet map[string]map[string]bool

func (c columnSet) has(table string, cols ...string) bool {
	t, ok := c[table]
	if !ok {
		return false
	}
	for _, col := range cols {
		if !t[col] {
			return false
		}
	}
	return true
}

// ProbeSchema reads the column catalogue once and reports which optional
// integrations the deployment carries.
func ProbeSchema(ctx context.Context, db DB, tables Tables) (domain.SchemaCapabilities, error) {
	if tables == nil {
		tables = DefaultTables()
	}

	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t)
	}
	sort.Strings(names)

	rows, err := db.QueryContext(ctx, probeQuery, pq.Array(names))
	if err != nil {
		return domain.SchemaCapabilities{}, fmt.Errorf("probe schema: %w", err)
	}
	defer rows.Close()

	cols := make(columnSet)
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return domain.SchemaCapabilities{}, fmt.Errorf("probe schema: %w", err)
		}
		if cols[table] == nil {
			cols[table] = make(map[string]bool)
		}
		cols[table][column] = true
	}
	if err := rows.Err(); err != nil {
		return domain.SchemaCapabilities{}, fmt.Errorf("probe schema: %w", err)
	}

	mailing := tables[ports.EntityMailing]
	trace := tables[ports.EntityTrace]

	// A flag is only set when every column its metric group reads is stored.
	caps := domain.SchemaCapabilities{
		MailingCampaign: cols.has(mailing, ports.FieldMailingCampaignID),
		MailingSource:   cols.has(mailing, ports.FieldSourceID, ports.FieldMailingSent),
		ABTesting:       cols.has(mailing, ports.FieldMailingABTesting),
		InvoicingFields: cols.has(mailing, ports.FieldMailingInvoicedAmount, ports.FieldMailingQuotationCount),
		Orders: cols.has(tables[ports.EntityOrder],
			ports.FieldSourceID, ports.FieldState, ports.FieldOrderInvoiceStatus, ports.FieldOrderAmountTotal),
		Stages: cols.has(tables[ports.EntityStage], ports.FieldID, ports.FieldName, ports.FieldStageSequence) &&
			cols.has(tables[ports.EntityCampaign], ports.FieldCampaignStageID),
		LinkTracking: cols.has(tables[ports.EntityLink], linkColumns...) &&
			cols.has(tables[ports.EntityLinkClick], ports.FieldClickLinkID, ports.FieldClickMailingID),
		TraceStatusField: domain.StatusFieldState,
	}
	if cols.has(trace, string(domain.StatusFieldTraceStatus)) {
		caps.TraceStatusField = domain.StatusFieldTraceStatus
	}

	log.Ctx(ctx).Info().
		Bool("mailing_campaign", caps.MailingCampaign).
		Bool("mailing_source", caps.MailingSource).
		Bool("ab_testing", caps.ABTesting).
		Bool("invoicing_fields", caps.InvoicingFields).
		Bool("orders", caps.Orders).
		Bool("stages", caps.Stages).
		Bool("link_tracking", caps.LinkTracking).
		Str("trace_status_field", string(caps.TraceStatusField)).
		Msg("schema capabilities detected")

	return caps, nil
}
