package domain

// StatusField names the trace column holding the delivery status. Older
// schemas call it "state", newer ones "trace_status".
type StatusField string

const (
	StatusFieldTraceStatus StatusField = "trace_status"
	StatusFieldState       StatusField = "state"
)

func (f StatusField) Valid() bool {
	return f == StatusFieldTraceStatus || f == StatusFieldState
}

// SchemaCapabilities describes which optional integrations are installed in
// the deployment. It is resolved once at startup and never re-probed.
type SchemaCapabilities struct {
	MailingCampaign bool // mailing has campaign_id
	MailingSource   bool // mailing has source_id and a stored sent count
	ABTesting       bool // mailing has ab_testing_enabled
	InvoicingFields bool // mailing has sale_invoiced_amount and sale_quotation_count
	Orders          bool // sale orders exist and carry source_id
	Stages          bool // stage entity exists and campaign has stage_id
	LinkTracking    bool // links and link clicks exist

	TraceStatusField StatusField
}

// StatusColumn returns the trace status field, defaulting to "state".
func (c SchemaCapabilities) StatusColumn() string {
	if c.TraceStatusField.Valid() {
		return string(c.TraceStatusField)
	}
	return string(StatusFieldState)
}

// ConversionEnabled reports whether revenue can be correlated at all.
func (c SchemaCapabilities) ConversionEnabled() bool {
	return c.InvoicingFields && c.Orders && c.MailingSource
}
