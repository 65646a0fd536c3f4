package domain

import "strings"

// CampaignRecord is one cleaned historical campaign as delivered by the
// data-prep pipeline. Records are read-only facts; the engine never mutates
// them.
type CampaignRecord struct {
	Role         string  `json:"role"`
	Industry     string  `json:"industry,omitempty"`
	Platform     string  `json:"platform"`
	Impressions  int64   `json:"impressions"`
	Clicks       int64   `json:"clicks"`
	Spend        float64 `json:"spend"`
	CampaignDays int     `json:"campaign_days"`
}

// MatchKey identifies a group of campaigns with comparable statistics:
// either a role on its own or "role - industry".
type MatchKey string

const keySeparator = " - "

// Role returns the role component of the key.
func (k MatchKey) Role() string {
	return strings.SplitN(string(k), keySeparator, 2)[0]
}

// Industry returns the industry component of the key, or "" for role-only keys.
func (k MatchKey) Industry() string {
	parts := strings.SplitN(string(k), keySeparator, 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// KeyStrategy controls the granularity of matching keys. The engine is
// otherwise identical for role-only and role+industry matching.
type KeyStrategy interface {
	Name() string
	QueryKey(role, industry string) MatchKey
	RecordKey(rec CampaignRecord) MatchKey
}

// RoleKey groups campaigns by role alone, ignoring industry.
type RoleKey struct{}

func (RoleKey) Name() string { return "role" }

func (RoleKey) QueryKey(role, _ string) MatchKey { return MatchKey(role) }

func (RoleKey) RecordKey(rec CampaignRecord) MatchKey { return MatchKey(rec.Role) }

// RoleIndustryKey groups campaigns by role and industry combined. Records or
// queries without an industry fall back to the bare role key.
type RoleIndustryKey struct{}

func (RoleIndustryKey) Name() string { return "role_industry" }

func (RoleIndustryKey) QueryKey(role, industry string) MatchKey {
	if industry == "" {
		return MatchKey(role)
	}
	return MatchKey(role + keySeparator + industry)
}

func (s RoleIndustryKey) RecordKey(rec CampaignRecord) MatchKey {
	return s.QueryKey(rec.Role, rec.Industry)
}

// PlatformStats holds the aggregated performance of one platform under one
// matching key. A stats value only exists when the underlying campaigns had
// positive impressions and clicks, so CTR and CPC are always well defined.
type PlatformStats struct {
	CTR         float64 `json:"ctr"`
	CPC         float64 `json:"cpc"`
	AvgSpend    float64 `json:"avg_spend"`
	TotalSpend  float64 `json:"total_spend"`
	Campaigns   int     `json:"campaigns"`
	Clicks      int64   `json:"clicks"`
	Impressions int64   `json:"impressions"`
}

// StatsTable maps matching key -> platform -> aggregated stats. Built once per
// engine instance and treated as an immutable snapshot afterwards.
type StatsTable map[MatchKey]map[string]PlatformStats
