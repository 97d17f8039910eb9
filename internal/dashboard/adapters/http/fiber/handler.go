package fiber

import (
	"context"
	"net/http"

	"marketing-dashboard-service/internal/dashboard/core/domain"
	"marketing-dashboard-service/internal/dashboard/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type GetDashboardUseCase interface {
	Execute(ctx context.Context, in usecase.GetDashboardInput) (*domain.Dashboard, error)
}

type GetFilterOptionsUseCase interface {
	Execute(ctx context.Context, in usecase.GetFilterOptionsInput) (*domain.FilterOptions, error)
}

type DashboardHandler struct {
	dashboard GetDashboardUseCase
	options   GetFilterOptionsUseCase
}

func NewDashboardHandler(dashboard GetDashboardUseCase, options GetFilterOptionsUseCase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, options: options}
}

// GetDashboard godoc
// @Summary Dashboard metrics
// @Description Returns deliverability, engagement, conversion, list health, stage, link, A/B and revenue metrics. Malformed filter values are ignored.
// @Tags Dashboard
// @Produce json
// @Param campaign_id query string false "Campaign id"
// @Param mailing_id query string false "Mailing id"
// @Success 200 {object} DashboardResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	in := usecase.GetDashboardInput{
		CampaignID: c.Query("campaign_id", ""),
		MailingID:  c.Query("mailing_id", ""),
	}

	res, err := h.dashboard.Execute(ctx, in)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).
			Str("campaign_id", in.CampaignID).
			Str("mailing_id", in.MailingID).
			Msg("dashboard computation failed")
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}

	return c.Status(http.StatusOK).JSON(toDashboardResponse(res))
}

// GetFilterOptions godoc
// @Summary Dashboard filter options
// @Description Lists campaigns and recently sent mailings for the dashboard filters.
// @Tags Dashboard
// @Produce json
// @Param campaign_id query string false "Restrict mailings to a campaign"
// @Param mailing_id query string false "Currently selected mailing"
// @Success 200 {object} FilterOptionsResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/filters [get]
func (h *DashboardHandler) GetFilterOptions(c *fiber.Ctx) error {
	ctx := c.UserContext()

	res, err := h.options.Execute(ctx, usecase.GetFilterOptionsInput{
		CampaignID: c.Query("campaign_id", ""),
		MailingID:  c.Query("mailing_id", ""),
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("filter options failed")
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}

	return c.Status(http.StatusOK).JSON(FilterOptionsResponse{
		Campaigns: toOptions(res.Campaigns),
		Mailings:  toOptions(res.Mailings),
	})
}

// Health godoc
// @Summary Liveness probe
// @Tags Health
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func Health(c *fiber.Ctx) error {
	return c.SendString("ok")
}

// Register mounts the dashboard routes on r.
func (h *DashboardHandler) Register(r fiber.Router) {
	r.Get("/dashboard", h.GetDashboard)
	r.Get("/dashboard/filters", h.GetFilterOptions)
	r.Get("/healthz", Health)
}
