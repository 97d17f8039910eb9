package usecase

import (
	"context"
	"sort"
	"strings"

	"marketing-dashboard-service/internal/dashboard/core/domain"
	"marketing-dashboard-service/internal/dashboard/core/ports"
)

// Deliverability classifies every trace in scope by status.
func (uc *GetDashboardUseCase) Deliverability(ctx context.Context, scope Scope) (domain.Deliverability, error) {
	if scope.Empty() {
		return domain.Deliverability{}, nil
	}

	groups, err := uc.store.GroupCount(ctx, ports.EntityTrace,
		scope.Where(ports.FieldTraceMailingID, false), uc.caps.StatusColumn(), 0)
	if err != nil {
		return domain.Deliverability{}, err
	}

	var (
		tally domain.StatusTally
		total int64
	)
	for _, g := range groups {
		tally.Add(keyString(g.Key), g.Count)
		total += g.Count
	}

	attempts := tally.TotalAttempts()

	return domain.Deliverability{
		Sent:          tally.Sent,
		Delivered:     tally.Delivered,
		Bounced:       tally.Bounced,
		Exception:     tally.Exception,
		Total:         total,
		TotalAttempts: attempts,
		DeliveryRate:  domain.Percent(tally.Delivered, attempts),
		BounceRate:    domain.Percent(tally.Bounced, attempts),
		ExceptionRate: domain.Percent(tally.Exception, attempts),
		SentRate:      domain.Percent(tally.Sent, attempts),
	}, nil
}

// Engagement derives open, click and reply rates over delivered traces.
func (uc *GetDashboardUseCase) Engagement(ctx context.Context, scope Scope) (domain.Engagement, error) {
	if scope.Empty() {
		return domain.Engagement{}, nil
	}

	where := scope.Where(ports.FieldTraceMailingID, false)

	delivered, err := uc.store.Count(ctx, ports.EntityTrace,
		where.And(ports.In(uc.caps.StatusColumn(), domain.DeliveredStatuses)))
	if err != nil {
		return domain.Engagement{}, err
	}

	opened, err := uc.store.Count(ctx, ports.EntityTrace, where.And(ports.NotNull(ports.FieldTraceOpenedAt)))
	if err != nil {
		return domain.Engagement{}, err
	}

	clicked, err := uc.store.Count(ctx, ports.EntityTrace, where.And(ports.NotNull(ports.FieldTraceClickedAt)))
	if err != nil {
		return domain.Engagement{}, err
	}

	replied, err := uc.store.Count(ctx, ports.EntityTrace, where.And(ports.NotNull(ports.FieldTraceRepliedAt)))
	if err != nil {
		return domain.Engagement{}, err
	}

	return domain.Engagement{
		Delivered:    delivered,
		TotalOpens:   opened,
		TotalClicks:  clicked,
		TotalReplies: replied,
		OpenRate:     domain.Percent(opened, delivered),
		ClickRate:    domain.Percent(clicked, delivered),
		ReplyRate:    domain.Percent(replied, delivered),
		CTOR:         domain.Percent(clicked, opened),
	}, nil
}

// Conversion correlates orders to the filtered mailings through their UTM
// source. There is no direct mailing to order link, so mailings sharing a
// source share its orders.
func (uc *GetDashboardUseCase) Conversion(ctx context.Context, f MailingFilter) (domain.Conversion, error) {
	if !uc.caps.ConversionEnabled() {
		return domain.Conversion{}, nil
	}

	mailings, err := uc.store.Read(ctx, ports.EntityMailing, ports.ReadQuery{
		Where:  f.Where,
		Fields: []string{ports.FieldID, ports.FieldSourceID, ports.FieldMailingSent},
	})
	if err != nil {
		return domain.Conversion{}, err
	}
	if len(mailings) == 0 {
		return domain.Conversion{}, nil
	}

	var (
		totalSent int64
		seen      = make(map[int64]struct{})
		sources   []int64
	)
	for _, m := range mailings {
		totalSent += m.Int64(ports.FieldMailingSent)
		if !m.Has(ports.FieldSourceID) {
			continue
		}
		src := m.Int64(ports.FieldSourceID)
		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		sources = append(sources, src)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })

	res := domain.Conversion{TotalSent: totalSent}

	if len(sources) > 0 {
		orders, err := uc.store.Read(ctx, ports.EntityOrder, ports.ReadQuery{
			Where: ports.Predicate{ports.In(ports.FieldSourceID, sources)},
			Fields: []string{
				ports.FieldID,
				ports.FieldState,
				ports.FieldOrderInvoiceStatus,
				ports.FieldOrderAmountTotal,
			},
		})
		if err != nil {
			return domain.Conversion{}, err
		}

		for _, o := range orders {
			amount := o.Float64(ports.FieldOrderAmountTotal)
			switch domain.ClassifyOrder(o.String(ports.FieldState), o.String(ports.FieldOrderInvoiceStatus)) {
			case domain.OrderBucketPotential:
				res.PotentialRevenue += amount
				res.PotentialConversions++
			case domain.OrderBucketRealized:
				res.TotalRevenue += amount
				res.TotalConversions++
			}
		}
	}

	res.ConversionRate = domain.Percent(res.TotalConversions, totalSent)
	res.RevenuePerEmail = domain.Ratio(res.TotalRevenue, totalSent)

	return res, nil
}

// ListHealth describes the whole contact base; filters do not apply.
func (uc *GetDashboardUseCase) ListHealth(ctx context.Context) (domain.ListHealth, error) {
	total, err := uc.store.Count(ctx, ports.EntityContact, nil)
	if err != nil {
		return domain.ListHealth{}, err
	}

	blacklisted, err := uc.store.Count(ctx, ports.EntityContact,
		ports.Predicate{ports.Eq(ports.FieldContactBlacklisted, true)})
	if err != nil {
		return domain.ListHealth{}, err
	}

	// create_date is stored without a zone, in UTC
	since := uc.now().UTC().Add(-uc.limits.NewContactsWindow)
	recent, err := uc.store.Count(ctx, ports.EntityContact,
		ports.Predicate{ports.Gte(ports.FieldContactCreatedAt, since)})
	if err != nil {
		return domain.ListHealth{}, err
	}

	return domain.ListHealth{
		TotalContacts:  total,
		ActiveContacts: total - blacklisted,
		Blacklisted:    blacklisted,
		NewContacts30d: recent,
		InactiveRatio:  domain.Percent(blacklisted, total),
	}, nil
}

// CampaignStages counts campaigns per stage in stage sequence order.
func (uc *GetDashboardUseCase) CampaignStages(ctx context.Context, f MailingFilter) (domain.CampaignStages, error) {
	if !uc.caps.Stages {
		return domain.CampaignStages{Stages: []domain.StageCount{}}, nil
	}

	stages, err := uc.store.Read(ctx, ports.EntityStage, ports.ReadQuery{
		Fields:  []string{ports.FieldID, ports.FieldName},
		OrderBy: ports.FieldStageSequence,
	})
	if err != nil {
		return domain.CampaignStages{}, err
	}

	out := domain.CampaignStages{
		Stages:    make([]domain.StageCount, 0, len(stages)),
		HasStages: true,
	}

	for _, s := range stages {
		id := s.Int64(ports.FieldID)
		where := ports.Predicate{ports.Eq(ports.FieldCampaignStageID, id)}
		if f.CampaignID > 0 {
			where = where.And(ports.Eq(ports.FieldID, f.CampaignID))
		}

		n, err := uc.store.Count(ctx, ports.EntityCampaign, where)
		if err != nil {
			return domain.CampaignStages{}, err
		}

		out.Stages = append(out.Stages, domain.StageCount{
			ID:    id,
			Name:  s.String(ports.FieldName),
			Count: n,
		})
	}

	return out, nil
}

// TopLinks ranks links by clicks inside the filter but reports each link's
// global click counter as its count.
func (uc *GetDashboardUseCase) TopLinks(ctx context.Context, scope Scope) ([]domain.TopLink, error) {
	if !uc.caps.LinkTracking || scope.Empty() {
		return []domain.TopLink{}, nil
	}

	groups, err := uc.store.GroupCount(ctx, ports.EntityLinkClick,
		scope.Where(ports.FieldClickMailingID, true), ports.FieldClickLinkID, uc.limits.TopLinks)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(groups))
	for _, g := range groups {
		if g.Key == nil {
			continue
		}
		ids = append(ids, keyInt64(g.Key))
	}
	if len(ids) == 0 {
		return []domain.TopLink{}, nil
	}

	links, err := uc.store.Read(ctx, ports.EntityLink, ports.ReadQuery{
		Where: ports.Predicate{ports.In(ports.FieldID, ids)},
		Fields: []string{
			ports.FieldID,
			ports.FieldLinkTitle,
			ports.FieldLinkLabel,
			ports.FieldLinkURL,
			ports.FieldLinkShortURL,
			ports.FieldLinkCount,
		},
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]domain.Record, len(links))
	for _, l := range links {
		byID[l.Int64(ports.FieldID)] = l
	}

	out := make([]domain.TopLink, 0, len(groups))
	for _, g := range groups {
		if g.Key == nil {
			continue
		}
		l, ok := byID[keyInt64(g.Key)]
		if !ok {
			continue
		}
		out = append(out, domain.TopLink{
			ID:             l.Int64(ports.FieldID),
			Name:           linkDisplayName(l),
			URL:            l.String(ports.FieldLinkURL),
			ShortURL:       l.String(ports.FieldLinkShortURL),
			Count:          l.Int64(ports.FieldLinkCount),
			FilteredClicks: g.Count,
		})
	}

	return out, nil
}

func linkDisplayName(l domain.Record) string {
	parts := make([]string, 0, 2)
	for _, field := range []string{ports.FieldLinkTitle, ports.FieldLinkLabel} {
		if v := strings.TrimSpace(l.String(field)); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " - ")
	}
	if u := l.String(ports.FieldLinkURL); u != "" {
		return u
	}
	return l.String(ports.FieldLinkShortURL)
}

func (uc *GetDashboardUseCase) ABTesting(ctx context.Context, f MailingFilter) (domain.ABTesting, error) {
	if !uc.caps.ABTesting {
		return domain.ABTesting{}, nil
	}

	n, err := uc.store.Count(ctx, ports.EntityMailing, f.Where.And(ports.Eq(ports.FieldMailingABTesting, true)))
	if err != nil {
		return domain.ABTesting{}, err
	}

	return domain.ABTesting{ABTestCount: n}, nil
}

// RevenueRankings returns the best earning campaigns and mailings inside the
// filter, by invoiced amount recorded on the mailings.
func (uc *GetDashboardUseCase) RevenueRankings(ctx context.Context, f MailingFilter) ([]domain.RevenueRank, []domain.RevenueRank, error) {
	if !uc.caps.InvoicingFields {
		return []domain.RevenueRank{}, []domain.RevenueRank{}, nil
	}

	fields := []string{
		ports.FieldID,
		ports.FieldMailingSubject,
		ports.FieldMailingInvoicedAmount,
		ports.FieldMailingQuotationCount,
	}
	if uc.caps.MailingCampaign {
		fields = append(fields, ports.FieldMailingCampaignID)
	}

	mailings, err := uc.store.Read(ctx, ports.EntityMailing, ports.ReadQuery{Where: f.Where, Fields: fields})
	if err != nil {
		return nil, nil, err
	}

	topMailings := make([]domain.RevenueRank, 0, len(mailings))
	perCampaign := make(map[int64]*domain.RevenueRank)

	for _, m := range mailings {
		revenue := m.Float64(ports.FieldMailingInvoicedAmount)
		if revenue <= 0 {
			continue
		}
		conversions := m.Int64(ports.FieldMailingQuotationCount)

		topMailings = append(topMailings, domain.RevenueRank{
			ID:          m.Int64(ports.FieldID),
			Name:        m.String(ports.FieldMailingSubject),
			Revenue:     revenue,
			Conversions: conversions,
		})

		if !uc.caps.MailingCampaign || !m.Has(ports.FieldMailingCampaignID) {
			continue
		}
		cid := m.Int64(ports.FieldMailingCampaignID)
		rank, ok := perCampaign[cid]
		if !ok {
			rank = &domain.RevenueRank{ID: cid}
			perCampaign[cid] = rank
		}
		rank.Revenue += revenue
		rank.Conversions += conversions
	}

	topMailings = topByRevenue(topMailings, uc.limits.TopRevenue)

	topCampaigns := make([]domain.RevenueRank, 0, len(perCampaign))
	for _, r := range perCampaign {
		topCampaigns = append(topCampaigns, *r)
	}
	topCampaigns = topByRevenue(topCampaigns, uc.limits.TopRevenue)

	if len(topCampaigns) > 0 {
		ids := make([]int64, len(topCampaigns))
		for i, r := range topCampaigns {
			ids[i] = r.ID
		}

		campaigns, err := uc.store.Read(ctx, ports.EntityCampaign, ports.ReadQuery{
			Where:  ports.Predicate{ports.In(ports.FieldID, ids)},
			Fields: []string{ports.FieldID, ports.FieldName},
		})
		if err != nil {
			return nil, nil, err
		}

		names := make(map[int64]string, len(campaigns))
		for _, c := range campaigns {
			names[c.Int64(ports.FieldID)] = c.String(ports.FieldName)
		}
		for i := range topCampaigns {
			topCampaigns[i].Name = names[topCampaigns[i].ID]
		}
	}

	return topCampaigns, topMailings, nil
}

func topByRevenue(ranks []domain.RevenueRank, limit int) []domain.RevenueRank {
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Revenue != ranks[j].Revenue {
			return ranks[i].Revenue > ranks[j].Revenue
		}
		return ranks[i].ID < ranks[j].ID
	})
	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}
