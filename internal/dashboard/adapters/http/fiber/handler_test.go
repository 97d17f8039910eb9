package fiber_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "marketing-dashboard-service/internal/dashboard/adapters/http/fiber"
	"marketing-dashboard-service/internal/dashboard/core/domain"
	"marketing-dashboard-service/internal/dashboard/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type fakeDashboardUseCase struct {
	ExecuteFn func(ctx context.Context, in usecase.GetDashboardInput) (*domain.Dashboard, error)
	lastInput usecase.GetDashboardInput
	called    bool
}

func (f *fakeDashboardUseCase) Execute(ctx context.Context, in usecase.GetDashboardInput) (*domain.Dashboard, error) {
	f.called = true
	f.lastInput = in
	if f.ExecuteFn != nil {
		return f.ExecuteFn(ctx, in)
	}
	return &domain.Dashboard{}, nil
}

type fakeFilterOptionsUseCase struct {
	ExecuteFn func(ctx context.Context, in usecase.GetFilterOptionsInput) (*domain.FilterOptions, error)
	lastInput usecase.GetFilterOptionsInput
}

func (f *fakeFilterOptionsUseCase) Execute(ctx context.Context, in usecase.GetFilterOptionsInput) (*domain.FilterOptions, error) {
	f.lastInput = in
	if f.ExecuteFn != nil {
		return f.ExecuteFn(ctx, in)
	}
	return &domain.FilterOptions{}, nil
}

func setupApp(t *testing.T, dash httpadapter.GetDashboardUseCase, opts httpadapter.GetFilterOptionsUseCase) *fiber.App {
	t.Helper()
	app := fiber.New()
	httpadapter.NewDashboardHandler(dash, opts).Register(app)
	return app
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("invalid json %q: %v", body, err)
	}
	return out
}

// ------------------------------------------------------------
// DASHBOARD
// ------------------------------------------------------------

func TestGetDashboard_Success(t *testing.T) {
	uc := &fakeDashboardUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetDashboardInput) (*domain.Dashboard, error) {
			return &domain.Dashboard{
				Deliverability: domain.Deliverability{Sent: 10, Delivered: 9, TotalAttempts: 10, DeliveryRate: 90},
				Engagement:     domain.Engagement{CTOR: 40},
				CampaignStages: domain.CampaignStages{
					Stages:    []domain.StageCount{{ID: 1, Name: "New", Count: 2}},
					HasStages: true,
				},
				TopLinks: []domain.TopLink{{ID: 3, Name: "Shop", Count: 50, FilteredClicks: 5}},
			}, nil
		},
	}
	app := setupApp(t, uc, &fakeFilterOptionsUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard?campaign_id=4&mailing_id=abc", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	if uc.lastInput.CampaignID != "4" || uc.lastInput.MailingID != "abc" {
		t.Fatalf("raw filter values must be forwarded, got %+v", uc.lastInput)
	}

	body := decode(t, resp)

	deliv, ok := body["deliverability"].(map[string]any)
	if !ok {
		t.Fatalf("missing deliverability: %v", body)
	}
	if deliv["delivery_rate"] != 90.0 || deliv["total_attempts"] != 10.0 {
		t.Fatalf("unexpected deliverability: %v", deliv)
	}

	links, ok := body["top_links"].([]any)
	if !ok || len(links) != 1 {
		t.Fatalf("unexpected top_links: %v", body["top_links"])
	}
	link := links[0].(map[string]any)
	if link["count"] != 50.0 || link["filtered_clicks"] != 5.0 {
		t.Fatalf("unexpected link: %v", link)
	}

	stages := body["campaign_stages"].(map[string]any)
	if stages["has_stages"] != true {
		t.Fatalf("expected has_stages=true, got %v", stages)
	}

	// empty lists serialize as [] not null
	if mailings, ok := body["top_mailings"].([]any); !ok || len(mailings) != 0 {
		t.Fatalf("expected empty top_mailings array, got %v", body["top_mailings"])
	}
}

func TestGetDashboard_InternalError(t *testing.T) {
	uc := &fakeDashboardUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetDashboardInput) (*domain.Dashboard, error) {
			return nil, errors.New("deliverability: db down")
		},
	}
	app := setupApp(t, uc, &fakeFilterOptionsUseCase{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}

	body := decode(t, resp)
	if body["error"] != "internal_server_error" {
		t.Fatalf("unexpected error body: %v", body)
	}
	if _, leaked := body["message"]; leaked {
		t.Fatalf("store errors must not leak to clients: %v", body)
	}
}

// ------------------------------------------------------------
// FILTER OPTIONS
// ------------------------------------------------------------

func TestGetFilterOptions_Success(t *testing.T) {
	opts := &fakeFilterOptionsUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetFilterOptionsInput) (*domain.FilterOptions, error) {
			return &domain.FilterOptions{
				Campaigns: []domain.Option{{ID: 1, Name: "Spring"}},
				Mailings:  []domain.Option{{ID: 7, Name: "Hello (No Date)"}},
			}, nil
		},
	}
	app := setupApp(t, &fakeDashboardUseCase{}, opts)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard/filters?mailing_id=7", nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if opts.lastInput.MailingID != "7" {
		t.Fatalf("expected mailing_id forwarded, got %+v", opts.lastInput)
	}

	body := decode(t, resp)
	mailings := body["mailings"].([]any)
	if len(mailings) != 1 || mailings[0].(map[string]any)["name"] != "Hello (No Date)" {
		t.Fatalf("unexpected mailings: %v", mailings)
	}
}

func TestGetFilterOptions_InternalError(t *testing.T) {
	opts := &fakeFilterOptionsUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetFilterOptionsInput) (*domain.FilterOptions, error) {
			return nil, errors.New("boom")
		},
	}
	app := setupApp(t, &fakeDashboardUseCase{}, opts)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard/filters", nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	app := setupApp(t, &fakeDashboardUseCase{}, &fakeFilterOptionsUseCase{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health response: %d %q", resp.StatusCode, body)
	}
}
