package scraper

import (
	"encoding/json"
	"fmt"
	"os"
)

// SelectorConfig externalizes the CSS selectors for the trending listing so
// a markup change on RFD's side is a config edit, not a code change.
type SelectorConfig struct {
	Trending TrendingSelectors `json:"trending"`
}

type TrendingSelectors struct {
	// Container is the listing wrapper; when absent the page has no
	// trending section and the scrape yields an empty result.
	Container string           `json:"container"`
	Item      string           `json:"item"`
	Elements  TrendingElements `json:"elements"`
}

type TrendingElements struct {
	TitleLink   string `json:"title_link"`
	UpvoteCount string `json:"upvote_count"`
	ReplyCount  string `json:"reply_count"`
}

// LoadSelectors loads the selector configuration from the specified JSON file.
func LoadSelectors(path string) (SelectorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SelectorConfig{}, fmt.Errorf("failed to read selector config file: %w", err)
	}
	return LoadSelectorsFromBytes(data)
}

// LoadSelectorsFromBytes parses selector configuration from raw JSON bytes.
// This supports loading from embedded data via go:embed.
func LoadSelectorsFromBytes(data []byte) (SelectorConfig, error) {
	var config SelectorConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return SelectorConfig{}, fmt.Errorf("failed to parse selector config JSON: %w", err)
	}
	return config, nil
}

// DefaultSelectors returns the fallback configuration if no JSON is loaded.
func DefaultSelectors() SelectorConfig {
	return SelectorConfig{
		Trending: TrendingSelectors{
			Container: "ul.topiclist.topics.trending.with_categories",
			Item:      "div.thread_main",
			Elements: TrendingElements{
				TitleLink:   "a.thread_title_link",
				UpvoteCount: "div.votes.thread_stat span",
				ReplyCount:  "div.posts.thread_stat span",
			},
		},
	}
}
