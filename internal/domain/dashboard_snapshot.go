package domain

import (
	"time"
)

// DashboardSnapshotEntry representa o resumo diário de um dono armazenado no banco
type DashboardSnapshotEntry struct {
	ID        int64            `json:"id"`
	OwnerID   int              `json:"owner_id"`
	Date      time.Time        `json:"date"`
	Summary   *Summary         `json:"summary"`
	Services  []ServiceRevenue `json:"services"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type HistoryFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}
