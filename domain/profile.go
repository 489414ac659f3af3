package domain

// ContributionCalendar is the reshaped GitHub contribution heatmap.
type ContributionCalendar struct {
	Contributions       []int  `json:"contributions"`
	TotalContributions  int    `json:"totalContributions"`
	RestrictedCount     int    `json:"restrictedCount"`
	PublicContributions int    `json:"publicContributions"`
	StartDate           string `json:"startDate"`
}

type MediaPost struct {
	ID        string `json:"id"`
	MediaURL  string `json:"media_url"`
	Permalink string `json:"permalink"`
}
