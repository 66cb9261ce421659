// internal/models/stats.go
package models

type DashboardStats struct {
	TotalUsers            int64 `json:"totalUsers"`
	NewUsers              int64 `json:"newUsers"`
	ApprovedVerifications int64 `json:"approvedVerifications"`
	RejectedVerifications int64 `json:"rejectedVerifications"`
	PendingVerifications  int64 `json:"pendingVerifications"`
	BlockedUsers          int64 `json:"blockedUsers"`
}

// ReviewedRatio is the share of verifications already decided, 0..1.
func (s DashboardStats) ReviewedRatio() float64 {
	total := s.ApprovedVerifications + s.RejectedVerifications + s.PendingVerifications
	if total == 0 {
		return 0
	}
	return float64(s.ApprovedVerifications+s.RejectedVerifications) / float64(total)
}

type UserGrowthPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type ActivityGrowthPoint struct {
	Label    string  `json:"label,omitempty"`
	Date     string  `json:"date"`
	Pending  int64   `json:"PENDING"`
	Approved int64   `json:"APPROVED"`
	Rejected int64   `json:"REJECTED"`
	Total    int64   `json:"total"`
	Average  float64 `json:"average"`
}
