package ports

// Field names shared between the use cases and the store adapters.
const (
	FieldID       = "id"
	FieldName     = "name"
	FieldState    = "state"
	FieldSourceID = "source_id"

	FieldCampaignStageID = "stage_id"
	FieldStageSequence   = "sequence"

	FieldMailingSubject        = "subject"
	FieldMailingSentDate       = "sent_date"
	FieldMailingCampaignID     = "campaign_id"
	FieldMailingSent           = "sent"
	FieldMailingABTesting      = "ab_testing_enabled"
	FieldMailingInvoicedAmount = "sale_invoiced_amount"
	FieldMailingQuotationCount = "sale_quotation_count"

	FieldTraceMailingID = "mass_mailing_id"
	FieldTraceOpenedAt  = "open_datetime"
	FieldTraceClickedAt = "links_click_datetime"
	FieldTraceRepliedAt = "reply_datetime"

	FieldContactBlacklisted = "is_blacklisted"
	FieldContactCreatedAt   = "create_date"

	FieldOrderInvoiceStatus = "invoice_status"
	FieldOrderAmountTotal   = "amount_total"

	FieldLinkTitle    = "title"
	FieldLinkLabel    = "label"
	FieldLinkURL      = "url"
	FieldLinkShortURL = "short_url"
	FieldLinkCount    = "count"

	FieldClickLinkID    = "link_id"
	FieldClickMailingID = "mass_mailing_id"
)

// Mailing states shown in the filter dropdown.
var ListedMailingStates = []string{"done", "sending"}
