package usecase

import (
	"context"
	"fmt"
	"time"

	"marketing-dashboard-service/internal/dashboard/core/domain"
	"marketing-dashboard-service/internal/dashboard/core/ports"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type GetDashboardInput struct {
	CampaignID string // raw query value, may be empty or malformed
	MailingID  string
}

type Limits struct {
	TopLinks          int
	TopRevenue        int
	NewContactsWindow time.Duration
}

func DefaultLimits() Limits {
	return Limits{
		TopLinks:          5,
		TopRevenue:        5,
		NewContactsWindow: 30 * 24 * time.Hour,
	}
}

type GetDashboardUseCase struct {
	store  ports.RecordStore
	caps   domain.SchemaCapabilities
	limits Limits
	now    func() time.Time
}

type Option func(*GetDashboardUseCase)

func WithLimits(l Limits) Option {
	return func(uc *GetDashboardUseCase) {
		if l.TopLinks > 0 {
			uc.limits.TopLinks = l.TopLinks
		}
		if l.TopRevenue > 0 {
			uc.limits.TopRevenue = l.TopRevenue
		}
		if l.NewContactsWindow > 0 {
			uc.limits.NewContactsWindow = l.NewContactsWindow
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(uc *GetDashboardUseCase) {
		uc.now = now
	}
}

func NewGetDashboardUseCase(store ports.RecordStore, caps domain.SchemaCapabilities, opts ...Option) *GetDashboardUseCase {
	uc := &GetDashboardUseCase{
		store:  store,
		caps:   caps,
		limits: DefaultLimits(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute computes every metric group for one dashboard refresh. Groups do
// not depend on each other, so they run concurrently; the first store error
// cancels the rest.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, in GetDashboardInput) (*domain.Dashboard, error) {
	f := ResolveFilter(ctx, uc.caps, in.CampaignID, in.MailingID)

	scope, err := uc.ResolveScope(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("resolve mailings: %w", err)
	}

	out := &domain.Dashboard{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res, err := uc.Deliverability(gctx, scope)
		if err != nil {
			return fmt.Errorf("deliverability: %w", err)
		}
		out.Deliverability = res
		return nil
	})

	g.Go(func() error {
		res, err := uc.Engagement(gctx, scope)
		if err != nil {
			return fmt.Errorf("engagement: %w", err)
		}
		out.Engagement = res
		return nil
	})

	g.Go(func() error {
		res, err := uc.Conversion(gctx, f)
		if err != nil {
			return fmt.Errorf("conversion: %w", err)
		}
		out.Conversion = res
		return nil
	})

	g.Go(func() error {
		res, err := uc.ListHealth(gctx)
		if err != nil {
			return fmt.Errorf("list health: %w", err)
		}
		out.ListHealth = res
		return nil
	})

	g.Go(func() error {
		res, err := uc.CampaignStages(gctx, f)
		if err != nil {
			return fmt.Errorf("campaign stages: %w", err)
		}
		out.CampaignStages = res
		return nil
	})

	g.Go(func() error {
		res, err := uc.TopLinks(gctx, scope)
		if err != nil {
			return fmt.Errorf("top links: %w", err)
		}
		out.TopLinks = res
		return nil
	})

	g.Go(func() error {
		res, err := uc.ABTesting(gctx, f)
		if err != nil {
			return fmt.Errorf("ab testing: %w", err)
		}
		out.ABTesting = res
		return nil
	})

	g.Go(func() error {
		campaigns, mailings, err := uc.RevenueRankings(gctx, f)
		if err != nil {
			return fmt.Errorf("revenue rankings: %w", err)
		}
		out.TopCampaigns = campaigns
		out.TopMailings = mailings
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// ResolveScope reads the ids of the mailings selected by f. The unfiltered
// case is not materialised.
func (uc *GetDashboardUseCase) ResolveScope(ctx context.Context, f MailingFilter) (Scope, error) {
	if f.IsEmpty() {
		return Scope{All: true}, nil
	}

	recs, err := uc.store.Read(ctx, ports.EntityMailing, ports.ReadQuery{
		Where:  f.Where,
		Fields: []string{ports.FieldID},
	})
	if err != nil {
		return Scope{}, err
	}

	ids := recordIDs(recs, ports.FieldID)
	if len(ids) == 0 {
		log.Ctx(ctx).Debug().
			Int64("campaign_id", f.CampaignID).
			Int64("mailing_id", f.MailingID).
			Msg("mailing filter matched no mailings")
	}

	return Scope{IDs: ids}, nil
}
