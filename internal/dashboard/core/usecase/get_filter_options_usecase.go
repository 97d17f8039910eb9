package usecase

import (
	"context"
	"fmt"
	"time"

	"marketing-dashboard-service/internal/dashboard/core/domain"
	"marketing-dashboard-service/internal/dashboard/core/ports"
)

const DefaultFilterMailingsLimit = 50

type GetFilterOptionsInput struct {
	CampaignID string
	MailingID  string
}

type GetFilterOptionsUseCase struct {
	store ports.RecordStore
	caps  domain.SchemaCapabilities
	limit int
}

func NewGetFilterOptionsUseCase(store ports.RecordStore, caps domain.SchemaCapabilities, limit int) *GetFilterOptionsUseCase {
	if limit <= 0 {
		limit = DefaultFilterMailingsLimit
	}
	return &GetFilterOptionsUseCase{store: store, caps: caps, limit: limit}
}

// Execute lists the campaigns and recently sent mailings a dashboard can be
// filtered by. A selected mailing outside the recent window is appended so the
// dropdown can still show it.
func (uc *GetFilterOptionsUseCase) Execute(ctx context.Context, in GetFilterOptionsInput) (*domain.FilterOptions, error) {
	campaigns, err := uc.campaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("campaigns: %w", err)
	}

	mailings, err := uc.mailings(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("mailings: %w", err)
	}

	return &domain.FilterOptions{Campaigns: campaigns, Mailings: mailings}, nil
}

func (uc *GetFilterOptionsUseCase) campaigns(ctx context.Context) ([]domain.Option, error) {
	recs, err := uc.store.Read(ctx, ports.EntityCampaign, ports.ReadQuery{
		Fields:  []string{ports.FieldID, ports.FieldName},
		OrderBy: ports.FieldName,
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Option, 0, len(recs))
	for _, r := range recs {
		out = append(out, domain.Option{ID: r.Int64(ports.FieldID), Name: r.String(ports.FieldName)})
	}
	return out, nil
}

func (uc *GetFilterOptionsUseCase) mailings(ctx context.Context, in GetFilterOptionsInput) ([]domain.Option, error) {
	fields := []string{ports.FieldID, ports.FieldMailingSubject, ports.FieldMailingSentDate}

	where := ports.Predicate{ports.In(ports.FieldState, ports.ListedMailingStates)}
	if id, ok := ParseID(in.CampaignID); ok && uc.caps.MailingCampaign {
		where = where.And(ports.Eq(ports.FieldMailingCampaignID, id))
	}

	recs, err := uc.store.Read(ctx, ports.EntityMailing, ports.ReadQuery{
		Where:   where,
		Fields:  fields,
		OrderBy: ports.FieldMailingSentDate,
		Desc:    true,
		Limit:   uc.limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Option, 0, len(recs)+1)
	seen := make(map[int64]struct{}, len(recs))
	for _, r := range recs {
		id := r.Int64(ports.FieldID)
		seen[id] = struct{}{}
		out = append(out, domain.Option{ID: id, Name: mailingLabel(r)})
	}

	selected, ok := ParseID(in.MailingID)
	if !ok {
		return out, nil
	}
	if _, listed := seen[selected]; listed {
		return out, nil
	}

	extra, err := uc.store.Read(ctx, ports.EntityMailing, ports.ReadQuery{
		Where:  ports.Predicate{ports.Eq(ports.FieldID, selected)},
		Fields: fields,
		Limit:  1,
	})
	if err != nil {
		return nil, err
	}
	for _, r := range extra {
		out = append(out, domain.Option{ID: r.Int64(ports.FieldID), Name: mailingLabel(r)})
	}

	return out, nil
}

func mailingLabel(r domain.Record) string {
	date := "No Date"
	if t, ok := r.Time(ports.FieldMailingSentDate); ok {
		date = t.Format(time.DateTime)
	}
	return fmt.Sprintf("%s (%s)", r.String(ports.FieldMailingSubject), date)
}
