package domain

import (
	"errors"
	"time"
)

// Status is the fetch state of the poller.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// MinRefreshInterval is the smallest countdown length, in seconds.
const MinRefreshInterval = 5

// ErrInvalidSettings is returned for settings the poller cannot apply.
var ErrInvalidSettings = errors.New("invalid poller settings")

// Settings are the user-editable poller parameters.
type Settings struct {
	SKUs            []string `json:"skus"`
	PostalCode      string   `json:"postalCode"`
	RefreshInterval int      `json:"refreshInterval"`
}

// Snapshot is a consistent copy of the poller state.
type Snapshot struct {
	Status          Status     `json:"status"`
	AutoRefresh     bool       `json:"autoRefresh"`
	Countdown       int        `json:"countdown"`
	RefreshInterval int        `json:"refreshInterval"`
	SKUs            []string   `json:"skus"`
	PostalCode      string     `json:"postalCode"`
	LastUpdated     *time.Time `json:"lastUpdated,omitempty"`
	Error           string     `json:"error,omitempty"`
	Cards           []Card     `json:"cards"`
	AnyStock        bool       `json:"anyStock"`
	// InFlight is the number of fetches issued but not yet applied.
	InFlight int `json:"inFlight"`
	// FetchSeq is the number of fetches issued so far.
	FetchSeq uint64 `json:"fetchSeq"`
}
