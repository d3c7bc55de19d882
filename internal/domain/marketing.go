package domain

import "time"

// MarketingSource records a single "how did you hear about us" attribution
// event. Country is resolved from IPAddress at capture time when a GeoIP
// database is configured.
type MarketingSource struct {
	ID        string
	Source    string
	IPAddress string
	UserAgent string
	Country   string
	CreatedAt time.Time
}

// SourceStat is one row of the attribution breakdown shown on the admin
// dashboard. Percentage is rounded to the nearest whole percent.
type SourceStat struct {
	Source     string `json:"source"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}
