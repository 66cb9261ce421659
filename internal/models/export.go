// internal/models/export.go
package models

type ExportType string

const (
	ExportParticipants  ExportType = "PARTICIPANTS"
	ExportLeaderboard   ExportType = "LEADERBOARD"
	ExportVerifications ExportType = "VERIFICATIONS"
	ExportSubmissions   ExportType = "SUBMISSIONS"
)

type ExportRequest struct {
	Type    ExportType        `json:"type" validate:"required,oneof=PARTICIPANTS LEADERBOARD VERIFICATIONS SUBMISSIONS"`
	Filters map[string]string `json:"filters"`
}

// ExportJob is what the backend acknowledges; the result arrives over the realtime channel.
type ExportJob struct {
	JobID   FlexibleID `json:"jobId"`
	Message string     `json:"message,omitempty"`
}
