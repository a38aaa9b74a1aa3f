// Package models holds the rows the storage layer reads and writes.
package models

import "time"

// CachedSet describes a set held in the catalog cache.
type CachedSet struct {
	SetCode   string    `json:"set_code"`
	CardCount int       `json:"card_count"`
	CachedAt  time.Time `json:"cached_at"`
}

// Batch is the stored header of a simulation batch.
type Batch struct {
	ID        string    `json:"id"`
	SetCode   string    `json:"set_code"`
	Seed      uint64    `json:"seed"`
	Selector  string    `json:"selector"`
	Runs      int       `json:"runs"`
	CreatedAt time.Time `json:"created_at"`
}
