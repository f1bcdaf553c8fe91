// Package analytics derives engagement metrics from resolved profiles and
// their content listings.
package analytics

import (
	"time"

	"igspyglass/pkg/instagram"
)

// Report summarizes engagement across a profile's recent posts.
type Report struct {
	Username       string     `json:"username"`
	Followers      int        `json:"followers"`
	PostsAnalyzed  int        `json:"posts_analyzed"`
	TotalLikes     int        `json:"total_likes"`
	TotalComments  int        `json:"total_comments"`
	AvgLikes       float64    `json:"avg_likes"`
	AvgComments    float64    `json:"avg_comments"`
	EngagementRate float64    `json:"engagement_rate"`
	VideoShare     float64    `json:"video_share"`
	MostRecentPost *time.Time `json:"most_recent_post,omitempty"`
	LimitedData    bool       `json:"limited_data"`
}

// Compute builds an engagement report. Preview items carry no authoritative
// engagement numbers, so limited-data profiles always report a zero rate
// rather than a misleading one computed from placeholder zeros.
func Compute(profile *instagram.NormalizedProfile, posts []instagram.ContentItem) *Report {
	if profile == nil {
		return nil
	}

	report := &Report{
		Username:      profile.Username,
		Followers:     profile.Followers,
		PostsAnalyzed: len(posts),
		LimitedData:   profile.IsLimitedData,
	}

	if profile.IsLimitedData || len(posts) == 0 {
		return report
	}

	videos := 0
	for _, post := range posts {
		report.TotalLikes += post.Likes
		report.TotalComments += post.Comments
		if post.IsVideo {
			videos++
		}
		if post.Timestamp != nil {
			if report.MostRecentPost == nil || post.Timestamp.After(*report.MostRecentPost) {
				ts := *post.Timestamp
				report.MostRecentPost = &ts
			}
		}
	}

	n := float64(len(posts))
	report.AvgLikes = float64(report.TotalLikes) / n
	report.AvgComments = float64(report.TotalComments) / n
	report.VideoShare = float64(videos) / n

	if profile.Followers > 0 {
		report.EngagementRate = (report.AvgLikes + report.AvgComments) / float64(profile.Followers) * 100
	}

	return report
}
