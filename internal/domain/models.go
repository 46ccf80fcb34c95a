// Package domain defines the persistence models for user profiles, usage
// events, generation cache entries, referrals, and planner slots. These types
// are mapped with GORM and form the core data layer of the creator backend.
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Content types accepted by the generation pipeline. The set is closed;
// anything else is rejected at the boundary.
const (
	TypeHook     = "hook"
	TypeScript   = "script"
	TypeCaption  = "caption"
	TypeHashtags = "hashtags"
)

// ValidContentType reports whether t is one of the supported content types.
func ValidContentType(t string) bool {
	switch t {
	case TypeHook, TypeScript, TypeCaption, TypeHashtags:
		return true
	}
	return false
}

// Usage event kinds recorded in the usage log. Only EventGenerate counts
// against the monthly credit quota; anything else (cache hits, daily-idea
// batches, client-reported events) is observational.
const (
	EventGenerate   = "generate"
	EventCacheHit   = "cache_hit"
	EventDailyIdeas = "daily_ideas"
)

// JSONMap is a free-form JSON object persisted as a TEXT column.
type JSONMap map[string]any

// Value implements driver.Valuer for JSONMap.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSONMap.
func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = JSONMap{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("domain: unsupported JSONMap source type")
	}
	if len(b) == 0 {
		*m = JSONMap{}
		return nil
	}
	return json.Unmarshal(b, m)
}

// BrandVoice captures the per-user stylistic constraints applied to generated
// output: tone, emoji policy, forbidden words, call-to-action strings, and
// base hashtags. It is stored as a JSON blob on the profile row and read as
// an immutable snapshot at request time.
type BrandVoice struct {
	Tone         string   `json:"tone,omitempty"`
	Emojis       *bool    `json:"emojis,omitempty"`
	Forbidden    []string `json:"forbidden,omitempty"`
	CTA          []string `json:"cta,omitempty"`
	HashtagsBase []string `json:"hashtags_base,omitempty"`
}

// DefaultCTAs are used when a profile has no CTA list of its own.
var DefaultCTAs = []string{
	"Save this and try it today.",
	"Comment below for a template.",
	"Follow for more 30-second tactics.",
}

// Normalized returns a copy of the voice with documented defaults applied:
// tone "casual", emojis allowed, built-in CTAs, empty forbidden/hashtag lists.
func (v BrandVoice) Normalized() BrandVoice {
	out := v
	if out.Tone == "" {
		out.Tone = "casual"
	}
	if out.Emojis == nil {
		t := true
		out.Emojis = &t
	}
	if len(out.CTA) == 0 {
		out.CTA = append([]string(nil), DefaultCTAs...)
	}
	if out.Forbidden == nil {
		out.Forbidden = []string{}
	}
	if out.HashtagsBase == nil {
		out.HashtagsBase = []string{}
	}
	return out
}

// EmojisAllowed reports the effective emoji policy (default true).
func (v BrandVoice) EmojisAllowed() bool {
	return v.Emojis == nil || *v.Emojis
}

// Value implements driver.Valuer for BrandVoice.
func (v BrandVoice) Value() (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for BrandVoice.
func (v *BrandVoice) Scan(src any) error {
	if src == nil {
		*v = BrandVoice{}
		return nil
	}
	var b []byte
	switch s := src.(type) {
	case []byte:
		b = s
	case string:
		b = []byte(s)
	default:
		return errors.New("domain: unsupported BrandVoice source type")
	}
	if len(b) == 0 {
		*v = BrandVoice{}
		return nil
	}
	return json.Unmarshal(b, v)
}

// Profile is the per-user public profile row: plan, monthly credit limit, and
// brand voice. UserID is the primary key (external identity provider id).
type Profile struct {
	UserID             string     `json:"user_id"              gorm:"type:varchar(64);primaryKey"`
	Email              string     `json:"email"                gorm:"type:varchar(255)"`
	Plan               string     `json:"plan"                 gorm:"type:varchar(16);not null;default:'free'"`
	MonthlyCreditLimit int        `json:"monthly_credit_limit" gorm:"not null;default:50"`
	BrandVoice         BrandVoice `json:"brand_voice"          gorm:"type:text"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TableName returns the database table name for Profile.
func (Profile) TableName() string { return "profiles" }

// Paid reports whether the profile is on a plan with the unlimited sentinel.
func (p Profile) Paid() bool { return p.Plan == "pro" || p.Plan == "team" }

// UsageEvent is one append-only row in the usage log. Meta carries a free-form
// JSON blob (content type, cache key, engine label). Billable quota reads
// count rows where Event == EventGenerate in the current UTC month.
type UsageEvent struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;index:idx_usage_user_time,priority:1"`
	Event     string    `json:"event"      gorm:"type:varchar(32);not null"`
	Meta      JSONMap   `json:"meta"       gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_usage_user_time,priority:2"`
}

// TableName returns the database table name for UsageEvent.
func (UsageEvent) TableName() string { return "usage_events" }

// CacheEntry maps a request fingerprint to a previously produced output,
// scoped per user. Entries are created once on a cache miss and never updated.
type CacheEntry struct {
	ID          string  `json:"id"           gorm:"type:char(36);primaryKey"`
	CacheKey    string  `json:"cache_key"    gorm:"type:char(64);not null;uniqueIndex:ux_cache_key_user"`
	UserID      string  `json:"user_id"      gorm:"type:varchar(64);not null;uniqueIndex:ux_cache_key_user;index"`
	ContentType string  `json:"content_type" gorm:"type:varchar(16);not null"`
	Payload     JSONMap `json:"payload"      gorm:"type:text"`
	// Variants holds the generated output as a JSON array of strings.
	Variants         Variants  `json:"variants"          gorm:"type:text"`
	Engine           string    `json:"engine"            gorm:"type:varchar(16);not null"`
	Model            string    `json:"model"             gorm:"type:varchar(128)"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	CreatedAt        time.Time `json:"created_at"`
}

// TableName returns the database table name for CacheEntry.
func (CacheEntry) TableName() string { return "cache_entries" }

// Variants is an ordered list of generated strings persisted as a JSON array.
type Variants []string

// Value implements driver.Valuer for Variants.
func (vs Variants) Value() (driver.Value, error) {
	if vs == nil {
		return "[]", nil
	}
	b, err := json.Marshal(vs)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for Variants.
func (vs *Variants) Scan(src any) error {
	if src == nil {
		*vs = Variants{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("domain: unsupported Variants source type")
	}
	if len(b) == 0 {
		*vs = Variants{}
		return nil
	}
	return json.Unmarshal(b, vs)
}

// Referral records one successful referral credited to a referrer. Three
// referrals in a month earn a credit bonus (see services.QuotaService).
type Referral struct {
	ID             string    `json:"id"               gorm:"type:char(36);primaryKey"`
	ReferrerUserID string    `json:"referrer_user_id" gorm:"type:varchar(64);not null;index:idx_ref_user_time,priority:1"`
	ReferredEmail  string    `json:"referred_email"   gorm:"type:varchar(255)"`
	CreatedAt      time.Time `json:"created_at"       gorm:"index:idx_ref_user_time,priority:2"`
}

// TableName returns the database table name for Referral.
func (Referral) TableName() string { return "referrals" }

// PlannerSlot schedules a piece of generated content for publication on a
// platform at a point in time.
type PlannerSlot struct {
	ID           string         `json:"id"            gorm:"type:char(36);primaryKey"`
	UserID       string         `json:"user_id"       gorm:"type:varchar(64);not null;index:idx_slots_user"`
	Platform     string         `json:"platform"      gorm:"type:varchar(32);not null"`
	ScheduledAt  time.Time      `json:"scheduled_at"  gorm:"not null;index"`
	GenerationID string         `json:"generation_id,omitempty" gorm:"type:char(36)"`
	Note         string         `json:"note,omitempty" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-"             gorm:"index"`
}

// TableName returns the database table name for PlannerSlot.
func (PlannerSlot) TableName() string { return "planner_slots" }

// DailyIdea is one of the three ready-to-film content ideas produced for a
// creator per UTC day: a hook, a short script, a caption, and hashtags. The
// batch for one day is immutable once written; a refresh replaces all three
// rows.
type DailyIdea struct {
	ID     string `json:"id"      gorm:"type:char(36);primaryKey"`
	UserID string `json:"user_id" gorm:"type:varchar(64);not null;index:idx_daily_user_day,priority:1"`
	// Day is the UTC calendar date the batch belongs to, "2006-01-02".
	Day       string    `json:"day"      gorm:"type:char(10);not null;index:idx_daily_user_day,priority:2"`
	Position  int       `json:"position" gorm:"not null"`
	Hook      string    `json:"hook"     gorm:"type:text"`
	Script    string    `json:"script"   gorm:"type:text"`
	Caption   string    `json:"caption"  gorm:"type:text"`
	Hashtags  Variants  `json:"hashtags" gorm:"type:text"`
	Engine    string    `json:"engine"   gorm:"type:varchar(16)"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for DailyIdea.
func (DailyIdea) TableName() string { return "daily_ideas" }
