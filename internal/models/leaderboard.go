// internal/models/leaderboard.go
package models

type LeaderboardEntry struct {
	UserID            int64   `json:"userId" validate:"required"`
	Rank              int     `json:"rank" validate:"min=1"`
	Username          string  `json:"username"`
	ProfilePictureURL *string `json:"profilePictureUrl"`
	Country           *string `json:"country"`
	Gender            *Gender `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE"`
	Points            *int    `json:"points,omitempty"`
	Streak            *int    `json:"streak,omitempty"`
}

type LeaderboardPage struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard" validate:"dive"`
	Pagination  Pagination         `json:"pagination"`
}

type LeaderboardQuery struct {
	Timespan  Timespan
	PageIndex int // zero-based, as the table reports it
	PageSize  int
	StartDate string
	EndDate   string
}
