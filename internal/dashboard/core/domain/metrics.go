package domain

type Deliverability struct {
	Sent          int64
	Delivered     int64
	Bounced       int64
	Exception     int64
	Total         int64
	TotalAttempts int64

	DeliveryRate  float64
	BounceRate    float64
	ExceptionRate float64
	SentRate      float64
}

type Engagement struct {
	Delivered    int64
	TotalOpens   int64
	TotalClicks  int64
	TotalReplies int64

	OpenRate  float64
	ClickRate float64
	ReplyRate float64
	CTOR      float64 // clicks / opens
}

type Conversion struct {
	PotentialRevenue     float64
	PotentialConversions int64
	TotalRevenue         float64
	TotalConversions     int64
	TotalSent            int64

	ConversionRate  float64
	RevenuePerEmail float64
}

type ListHealth struct {
	TotalContacts  int64
	ActiveContacts int64
	Blacklisted    int64
	NewContacts30d int64
	InactiveRatio  float64
}

type StageCount struct {
	ID    int64
	Name  string
	Count int64
}

type CampaignStages struct {
	Stages    []StageCount
	HasStages bool
}

type TopLink struct {
	ID       int64
	Name     string
	URL      string
	ShortURL string
	// Count is the link's global click counter, not the filtered one.
	Count int64
	// FilteredClicks is the number of clicks inside the current filter; it drives the ranking.
	FilteredClicks int64
}

type ABTesting struct {
	ABTestCount int64
}

type RevenueRank struct {
	ID          int64
	Name        string
	Revenue     float64
	Conversions int64
}

// Dashboard is the full bundle returned for one dashboard refresh.
type Dashboard struct {
	Deliverability Deliverability
	Engagement     Engagement
	Conversion     Conversion
	ListHealth     ListHealth
	CampaignStages CampaignStages
	TopLinks       []TopLink
	ABTesting      ABTesting
	TopCampaigns   []RevenueRank
	TopMailings    []RevenueRank
}

type Option struct {
	ID   int64
	Name string
}

type FilterOptions struct {
	Campaigns []Option
	Mailings  []Option
}
