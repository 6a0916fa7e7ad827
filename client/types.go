package client

import (
	"encoding/json"
	"time"
)

// GenerationStatus is the lifecycle state of a generation request.
type GenerationStatus string

const (
	StatusQueued    GenerationStatus = "queued"
	StatusRunning   GenerationStatus = "running"
	StatusCompleted GenerationStatus = "completed"
	StatusFailed    GenerationStatus = "failed"
	StatusCancelled GenerationStatus = "cancelled"
)

// UnmarshalJSON normalizes the backend's wire aliases: "pending" maps
// to queued and "processing" to running.
func (s *GenerationStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw {
	case "pending":
		*s = StatusQueued
	case "processing":
		*s = StatusRunning
	default:
		*s = GenerationStatus(raw)
	}
	return nil
}

// IsTerminal reports whether the status is a final state.
func (s GenerationStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Generation is one image-generation request as reported by the
// backend. The client passes it through unmodified; only the status
// field drives polling termination.
type Generation struct {
	ID               string           `json:"generation_id"`
	Status           GenerationStatus `json:"status"`
	Prompt           string           `json:"prompt"`
	NegativePrompt   string           `json:"negative_prompt,omitempty"`
	Model            string           `json:"model"`
	CreatedAt        time.Time        `json:"created_at"`
	StartedAt        *time.Time       `json:"started_at,omitempty"`
	CompletedAt      *time.Time       `json:"completed_at,omitempty"`
	FailedAt         *time.Time       `json:"failed_at,omitempty"`
	ImageURL         string           `json:"image_url,omitempty"`
	ThumbnailURL     string           `json:"thumbnail_url,omitempty"`
	CDNURL           string           `json:"cdn_url,omitempty"`
	ResultURLs       []string         `json:"result_urls,omitempty"`
	ErrorMessage     string           `json:"error_message,omitempty"`
	ProcessingTimeMS int              `json:"processing_time_ms,omitempty"`
	QueuePosition    *int             `json:"queue_position,omitempty"`
}

// GenerationCreated is the backend's acknowledgement of a new
// generation request.
type GenerationCreated struct {
	ID               string           `json:"generation_id"`
	Status           GenerationStatus `json:"status"`
	Message          string           `json:"message"`
	EstimatedSeconds int              `json:"estimated_time_seconds"`
	CreditsDeducted  int              `json:"credits_deducted"`
	QueuePosition    *int             `json:"queue_position,omitempty"`
}

// GenerationList is one page of generation history.
type GenerationList struct {
	Generations []Generation `json:"generations"`
	Total       int          `json:"total"`
	Page        int          `json:"page"`
	PageSize    int          `json:"page_size"`
}

// UploadResult describes an uploaded source image.
type UploadResult struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	BlobURL   string `json:"blob_url"`
	SizeBytes int64  `json:"size_bytes"`
	Message   string `json:"message,omitempty"`
}

// User is the authenticated account returned by /auth/me.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Tier      string    `json:"tier,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Subscription is the caller's billing subscription.
type Subscription struct {
	Tier              string   `json:"tier"`
	Status            string   `json:"status"`
	CreditsRemaining  int      `json:"credits_remaining"`
	CreditsPerMonth   int      `json:"credits_per_month"`
	IsUnlimited       bool     `json:"is_unlimited"`
	CurrentPeriodEnd  string   `json:"current_period_end"`
	CancelAtPeriodEnd bool     `json:"cancel_at_period_end"`
	Features          []string `json:"features"`
}

// Tier describes one subscription tier on the pricing page.
type Tier struct {
	Name            string   `json:"name"`
	PriceMonthly    float64  `json:"price_monthly"`
	CreditsPerMonth int      `json:"credits_per_month"`
	Features        []string `json:"features"`
}

// CheckoutRequest starts a checkout session for a tier.
type CheckoutRequest struct {
	Tier       string `json:"tier"`
	SuccessURL string `json:"success_url,omitempty"`
	CancelURL  string `json:"cancel_url,omitempty"`
}

// CheckoutSession is the redirect target for a started checkout.
type CheckoutSession struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

// PortalSession is the redirect target for the billing portal.
type PortalSession struct {
	PortalURL string `json:"portal_url"`
}

// CheckoutVerification reports whether a checkout session completed.
type CheckoutVerification struct {
	Verified bool   `json:"verified"`
	Tier     string `json:"tier,omitempty"`
	Status   string `json:"status,omitempty"`
}

// UsageStats is the caller's credit consumption for the current
// period.
type UsageStats struct {
	Tier             string  `json:"tier"`
	CreditsRemaining int     `json:"credits_remaining"`
	CreditsUsed      int     `json:"credits_used"`
	CreditsPerMonth  int     `json:"credits_per_month"`
	IsUnlimited      bool    `json:"is_unlimited"`
	UsagePercentage  float64 `json:"usage_percentage"`
	PeriodEnd        string  `json:"period_end,omitempty"`
}

// UsageHistoryEntry is one day of usage history.
type UsageHistoryEntry struct {
	Date        string `json:"date"`
	CreditsUsed int    `json:"credits_used"`
	Generations int    `json:"generations"`
}

// UsageHistory is a usage time series.
type UsageHistory struct {
	Days    int                 `json:"days"`
	Entries []UsageHistoryEntry `json:"entries"`
}

// ModelUsage is aggregate usage for one model.
type ModelUsage struct {
	Model       string `json:"model"`
	Generations int    `json:"generations"`
	CreditsUsed int    `json:"credits_used"`
}

// UsageByModel is the per-model usage breakdown.
type UsageByModel struct {
	Models []ModelUsage `json:"models"`
}

// HealthStatus is the backend health probe response.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
