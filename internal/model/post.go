package model

// PostRecord is the persisted metadata for one published article.
// Created once per publish; a re-publish overwrites by slug.
type PostRecord struct {
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	PublishedDate string `json:"published_date"`
	UpdatedDate   string `json:"updated_date"`
	ReadingTime   string `json:"reading_time"`
	Category      string `json:"category"`
	Template      string `json:"template"`
	VideoID       string `json:"video_id"`
	YouTubeURL    string `json:"youtube_url"`
	Source        string `json:"source"`
}

// PostIndex is the on-disk shape of the post index document
type PostIndex struct {
	Posts []PostRecord `json:"posts"`
}

// Video is one channel upload as seen in the RSS feed
type Video struct {
	VideoID   string `json:"video_id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Published string `json:"published"` // human date, e.g. "11 Feb 2026"
}
