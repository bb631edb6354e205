package models

import "time"

// DefaultGracePeriodDays is applied when a quota is created without one.
const DefaultGracePeriodDays = 7

// Quota is a per-user storage limit record. UsedSpace is maintained manually.
type Quota struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Username    string    `json:"username"`
	Path        string    `json:"path"`
	SoftLimit   int64     `json:"softLimit"`
	HardLimit   int64     `json:"hardLimit"`
	UsedSpace   int64     `json:"usedSpace"`
	GracePeriod int       `json:"gracePeriod"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// QuotaCreatePayload is the body of POST /api/quotas.
type QuotaCreatePayload struct {
	Username    string `json:"username" validate:"required,max=64"`
	Path        string `json:"path" validate:"required,max=4096"`
	SoftLimit   int64  `json:"softLimit" validate:"gte=0"`
	HardLimit   int64  `json:"hardLimit" validate:"gte=0,gtefield=SoftLimit"`
	GracePeriod *int   `json:"gracePeriod" validate:"omitempty,gte=0,lte=365"`
}

// QuotaUpdatePayload is the body of PUT /api/quotas/{id}.
type QuotaUpdatePayload struct {
	SoftLimit   int64 `json:"softLimit" validate:"gte=0"`
	HardLimit   int64 `json:"hardLimit" validate:"gte=0,gtefield=SoftLimit"`
	GracePeriod *int  `json:"gracePeriod" validate:"omitempty,gte=0,lte=365"`
}
