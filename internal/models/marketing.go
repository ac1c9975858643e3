// Package models holds the request shapes shared by the HTTP API and the
// marketing job workers.
package models

import (
	"strconv"
	"strings"
)

const (
	DefaultDurationWeeks = 4
	DefaultPostsPerWeek  = 3

	unspecified = "not specified"
)

// CampaignBrief describes a business and the campaign it wants to run.
type CampaignBrief struct {
	BusinessInfo  string   `json:"business_info"`
	CampaignGoal  string   `json:"campaign_goal"`
	ProductInfo   string   `json:"product_info"`
	Audience      string   `json:"audience"`
	Platforms     []string `json:"platforms"`
	WebsiteURL    string   `json:"website_url,omitempty"`
	DurationWeeks int      `json:"duration_weeks,omitempty"`
	PostsPerWeek  int      `json:"posts_per_week,omitempty"`
	Budget        *float64 `json:"budget,omitempty"`
	SeedKeywords  []string `json:"seed_keywords,omitempty"`
}

func (b *CampaignBrief) ApplyDefaults() {
	if b.DurationWeeks == 0 {
		b.DurationWeeks = DefaultDurationWeeks
	}
	if b.PostsPerWeek == 0 {
		b.PostsPerWeek = DefaultPostsPerWeek
	}
}

type SEORequest struct {
	URL            string   `json:"url"`
	TargetKeywords []string `json:"target_keywords,omitempty"`
}

type KeywordRequest struct {
	BusinessInfo string   `json:"business_info"`
	ProductInfo  string   `json:"product_info"`
	Audience     string   `json:"audience"`
	SeedKeywords []string `json:"seed_keywords,omitempty"`
}

// PerformanceRequest asks for a forecast. Campaign, when present, is a
// previously generated campaign document and may stand in for the other
// fields.
type PerformanceRequest struct {
	BusinessInfo  string                 `json:"business_info,omitempty"`
	CampaignGoal  string                 `json:"campaign_goal,omitempty"`
	Platforms     []string               `json:"platforms,omitempty"`
	Budget        *float64               `json:"budget,omitempty"`
	DurationWeeks int                    `json:"duration_weeks,omitempty"`
	PostsPerWeek  int                    `json:"posts_per_week,omitempty"`
	Campaign      map[string]interface{} `json:"campaign,omitempty"`
}

func (p *PerformanceRequest) ApplyDefaults() {
	if p.DurationWeeks == 0 {
		p.DurationWeeks = DefaultDurationWeeks
	}
	if p.PostsPerWeek == 0 {
		p.PostsPerWeek = DefaultPostsPerWeek
	}
}

// JoinList renders a list the way prompts show it: comma separated.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

// OrUnspecified returns s, or a placeholder when s is blank.
func OrUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return unspecified
	}
	return s
}

func FormatBudget(budget *float64) string {
	if budget == nil {
		return unspecified
	}
	return strconv.FormatFloat(*budget, 'f', -1, 64)
}
