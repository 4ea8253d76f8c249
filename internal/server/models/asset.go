// Package models defines the records persisted by the lease registry.
package models

import "time"

// Asset is a registered leasable item. Assets are never deleted.
// IsAvailable is false while an active lease references the asset.
type Asset struct {
	ID           uint64    `json:"asset_id" yaml:"asset_id"`
	Owner        string    `json:"owner" yaml:"owner"`
	Type         string    `json:"type" yaml:"type"`
	Description  string    `json:"description" yaml:"description"`
	IsAvailable  bool      `json:"is_available" yaml:"is_available"`
	RegisteredAt time.Time `json:"registered_at" yaml:"registered_at"`
}
