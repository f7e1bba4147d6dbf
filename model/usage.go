package model

import "time"

// CategoryUsage is the per-category bucket of a usage summary.
type CategoryUsage struct {
	Size       int64     `json:"size"`
	LatestDate time.Time `json:"latestDate"`
}

// UsageSummary is the derived, non-persisted storage accounting for one
// user. Capacity is the fixed per-user quota, not a value queried from
// the BaaS.
type UsageSummary struct {
	Image    CategoryUsage `json:"image"`
	Document CategoryUsage `json:"document"`
	Video    CategoryUsage `json:"video"`
	Audio    CategoryUsage `json:"audio"`
	Other    CategoryUsage `json:"other"`
	Used     int64         `json:"used"`
	Capacity int64         `json:"capacity"`
}

// BuildUsageSummary folds a user's owned files into per-category size
// totals and latest modified dates, plus a grand total against the
// given capacity.
func BuildUsageSummary(files []File, capacity int64) UsageSummary {
	s := UsageSummary{Capacity: capacity}

	for _, f := range files {
		c := s.category(f.Type)
		c.Size += f.Size
		if f.UpdatedAt.After(c.LatestDate) {
			c.LatestDate = f.UpdatedAt
		}
		s.Used += f.Size
	}

	return s
}

func (s *UsageSummary) category(t FileType) *CategoryUsage {
	switch t {
	case TypeImage:
		return &s.Image
	case TypeDocument:
		return &s.Document
	case TypeVideo:
		return &s.Video
	case TypeAudio:
		return &s.Audio
	default:
		return &s.Other
	}
}
