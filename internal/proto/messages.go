// Package proto holds the wire contract of the landlease.v1.LeaseRegistry
// gRPC service: request and response messages, the service descriptor and
// a client stub. Messages travel as JSON through Codec.
package proto

import (
	"time"

	"github.com/dmitrijs2005/landlease/internal/server/models"
)

type CreateAssetRequest struct {
	AssetID     uint64 `json:"asset_id"`
	Owner       string `json:"owner"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type CreateAssetResponse struct {
	Asset models.Asset `json:"asset"`
}

type CreateLeaseRequest struct {
	AssetID       uint64 `json:"asset_id"`
	Owner         string `json:"owner"`
	Lessee        string `json:"lessee"`
	StartTime     uint64 `json:"start_time"`
	EndTime       uint64 `json:"end_time"`
	PaymentAmount uint64 `json:"payment_amount"`
}

type CreateLeaseResponse struct {
	LeaseID uint64 `json:"lease_id"`
}

// LeaseTransitionRequest is used by CompleteLease and ExpireLease.
type LeaseTransitionRequest struct {
	LeaseID uint64 `json:"lease_id"`
}

// Outcome values of LeaseTransitionResponse.
const (
	OutcomeApplied         = "applied"
	OutcomeAlreadyTerminal = "already_terminal"
)

type LeaseTransitionResponse struct {
	Lease   models.Lease `json:"lease" yaml:"lease"`
	Applied bool         `json:"applied" yaml:"applied"`
	Outcome string       `json:"outcome" yaml:"outcome"`
}

type ViewLeaseRequest struct {
	LeaseID uint64 `json:"lease_id"`
}

type ViewLeaseResponse struct {
	Lease models.Lease `json:"lease"`
}

type ViewAssetRequest struct {
	AssetID uint64 `json:"asset_id"`
}

type ViewAssetResponse struct {
	Asset models.Asset `json:"asset"`
}

type ViewAllLeaseStatusRequest struct{}

type ViewAllLeaseStatusResponse struct {
	Status models.LeaseStatus `json:"status"`
}

type ListLeasesRequest struct{}

type ListLeasesResponse struct {
	Leases []models.Lease `json:"leases"`
}

type ListAssetsRequest struct{}

type ListAssetsResponse struct {
	Assets []models.Asset `json:"assets"`
}

type ExportSnapshotRequest struct{}

type ExportSnapshotResponse struct {
	Key       string    `json:"key" yaml:"key"`
	URL       string    `json:"url" yaml:"url"`
	ExpiresAt time.Time `json:"expires_at" yaml:"expires_at"`
	Assets    int       `json:"assets" yaml:"assets"`
	Leases    int       `json:"leases" yaml:"leases"`
}
