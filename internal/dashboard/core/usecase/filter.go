package usecase

import (
	"context"
	"strconv"
	"strings"

	"marketing-dashboard-service/internal/dashboard/core/domain"
	"marketing-dashboard-service/internal/dashboard/core/ports"

	"github.com/rs/zerolog/log"
)

// MailingFilter is the resolved campaign/mailing selection of one dashboard request.
type MailingFilter struct {
	CampaignID int64 // 0 when absent or malformed
	MailingID  int64 // 0 when absent or malformed

	// Where selects the mailings in scope. Empty means every mailing.
	Where ports.Predicate
}

func (f MailingFilter) IsEmpty() bool {
	return len(f.Where) == 0
}

// ParseID accepts a positive base-10 integer. Anything else is rejected.
func ParseID(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ResolveFilter turns raw query values into a mailing predicate. Malformed
// values are dropped, and the campaign clause is omitted when mailings carry
// no campaign reference in this deployment.
func ResolveFilter(ctx context.Context, caps domain.SchemaCapabilities, campaignRaw, mailingRaw string) MailingFilter {
	var f MailingFilter

	if id, ok := ParseID(campaignRaw); ok {
		f.CampaignID = id
		if caps.MailingCampaign {
			f.Where = f.Where.And(ports.Eq(ports.FieldMailingCampaignID, id))
		}
	} else if campaignRaw != "" {
		log.Ctx(ctx).Debug().Str("campaign_id", campaignRaw).Msg("ignoring malformed campaign filter")
	}

	if id, ok := ParseID(mailingRaw); ok {
		f.MailingID = id
		f.Where = f.Where.And(ports.Eq(ports.FieldID, id))
	} else if mailingRaw != "" {
		log.Ctx(ctx).Debug().Str("mailing_id", mailingRaw).Msg("ignoring malformed mailing filter")
	}

	return f
}

// Scope is the set of mailings a filter resolved to.
type Scope struct {
	All bool
	IDs []int64
}

// Empty reports a filter that matched no mailing at all.
func (s Scope) Empty() bool {
	return !s.All && len(s.IDs) == 0
}

// Where restricts an entity referencing mailings through field. For the
// unfiltered scope it returns nil, or a NOT NULL test when requireRef is set.
func (s Scope) Where(field string, requireRef bool) ports.Predicate {
	if s.All {
		if requireRef {
			return ports.Predicate{ports.NotNull(field)}
		}
		return nil
	}
	return ports.Predicate{ports.In(field, s.IDs)}
}

func recordIDs(recs []domain.Record, field string) []int64 {
	ids := make([]int64, 0, len(recs))
	for _, r := range recs {
		if r.Has(field) {
			ids = append(ids, r.Int64(field))
		}
	}
	return ids
}

func keyString(k any) string {
	return domain.Record{"k": k}.String("k")
}

func keyInt64(k any) int64 {
	return domain.Record{"k": k}.Int64("k")
}
