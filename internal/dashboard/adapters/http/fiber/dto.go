package fiber

import "marketing-dashboard-service/internal/dashboard/core/domain"

type DeliverabilityResponse struct {
	Sent          int64   `json:"sent"`
	Delivered     int64   `json:"delivered"`
	Bounced       int64   `json:"bounced"`
	Exception     int64   `json:"exception"`
	Total         int64   `json:"total"`
	TotalAttempts int64   `json:"total_attempts"`
	DeliveryRate  float64 `json:"delivery_rate"`
	BounceRate    float64 `json:"bounce_rate"`
	ExceptionRate float64 `json:"exception_rate"`
	SentRate      float64 `json:"sent_rate"`
}

type EngagementResponse struct {
	Delivered    int64   `json:"delivered"`
	TotalOpens   int64   `json:"total_opens"`
	TotalClicks  int64   `json:"total_clicks"`
	TotalReplies int64   `json:"total_replies"`
	OpenRate     float64 `json:"open_rate"`
	ClickRate    float64 `json:"click_rate"`
	ReplyRate    float64 `json:"reply_rate"`
	CTOR         float64 `json:"ctor"`
}

type ConversionResponse struct {
	PotentialRevenue     float64 `json:"potential_revenue"`
	PotentialConversions int64   `json:"potential_conversions"`
	TotalRevenue         float64 `json:"total_revenue"`
	TotalConversions     int64   `json:"total_conversions"`
	TotalSent            int64   `json:"total_sent"`
	ConversionRate       float64 `json:"conversion_rate"`
	RevenuePerEmail      float64 `json:"revenue_per_email"`
}

type ListHealthResponse struct {
	TotalContacts  int64   `json:"total_contacts"`
	ActiveContacts int64   `json:"active_contacts"`
	Blacklisted    int64   `json:"blacklisted"`
	NewContacts30d int64   `json:"new_contacts_30d"`
	InactiveRatio  float64 `json:"inactive_ratio"`
}

type StageCountResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type CampaignStagesResponse struct {
	Stages    []StageCountResponse `json:"stages"`
	HasStages bool                 `json:"has_stages"`
}

type TopLinkResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	URL            string `json:"url"`
	ShortURL       string `json:"short_url"`
	Count          int64  `json:"count"`
	FilteredClicks int64  `json:"filtered_clicks"`
}

type ABTestingResponse struct {
	ABTestCount int64 `json:"ab_test_count"`
}

type RevenueRankResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Revenue     float64 `json:"revenue"`
	Conversions int64   `json:"conversions"`
}

type DashboardResponse struct {
	Deliverability DeliverabilityResponse `json:"deliverability"`
	Engagement     EngagementResponse     `json:"engagement"`
	Conversion     ConversionResponse     `json:"conversion"`
	ListHealth     ListHealthResponse     `json:"list_health"`
	CampaignStages CampaignStagesResponse `json:"campaign_stages"`
	TopLinks       []TopLinkResponse      `json:"top_links"`
	ABTesting      ABTestingResponse      `json:"ab_testing"`
	TopCampaigns   []RevenueRankResponse  `json:"top_campaigns"`
	TopMailings    []RevenueRankResponse  `json:"top_mailings"`
}

type OptionResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type FilterOptionsResponse struct {
	Campaigns []OptionResponse `json:"campaigns"`
	Mailings  []OptionResponse `json:"mailings"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"internal_server_error"`
}

func toDashboardResponse(d *domain.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		Deliverability: DeliverabilityResponse(d.Deliverability),
		Engagement:     EngagementResponse(d.Engagement),
		Conversion:     ConversionResponse(d.Conversion),
		ListHealth:     ListHealthResponse(d.ListHealth),
		CampaignStages: CampaignStagesResponse{
			Stages:    make([]StageCountResponse, 0, len(d.CampaignStages.Stages)),
			HasStages: d.CampaignStages.HasStages,
		},
		TopLinks:     make([]TopLinkResponse, 0, len(d.TopLinks)),
		ABTesting:    ABTestingResponse(d.ABTesting),
		TopCampaigns: toRanks(d.TopCampaigns),
		TopMailings:  toRanks(d.TopMailings),
	}

	for _, s := range d.CampaignStages.Stages {
		resp.CampaignStages.Stages = append(resp.CampaignStages.Stages, StageCountResponse(s))
	}
	for _, l := range d.TopLinks {
		resp.TopLinks = append(resp.TopLinks, TopLinkResponse(l))
	}

	return resp
}

func toRanks(in []domain.RevenueRank) []RevenueRankResponse {
	out := make([]RevenueRankResponse, 0, len(in))
	for _, r := range in {
		out = append(out, RevenueRankResponse(r))
	}
	return out
}

func toOptions(in []domain.Option) []OptionResponse {
	out := make([]OptionResponse, 0, len(in))
	for _, o := range in {
		out = append(out, OptionResponse(o))
	}
	return out
}
