// internal/models/user.go
package models

import "time"

type User struct {
	ID             int64          `json:"id" validate:"required"`
	Name           string         `json:"name"`
	Username       string         `json:"username"`
	Email          string         `json:"email" validate:"required,email"`
	Country        *string        `json:"country"`
	Gender         *Gender        `json:"gender" validate:"omitempty,oneof=MALE FEMALE"`
	PurchaseStatus PurchaseStatus `json:"purchaseStatus" validate:"required,oneof=NOT_VERIFIED PENDING APPROVED REJECTED"`
	IsBanned       bool           `json:"isBanned"`
	CreatedAt      time.Time      `json:"createdAt"`
}

type UserStats struct {
	TotalPoints     int `json:"totalPoints"`
	TotalChallenges int `json:"totalChallenges"`
	TopStreak       int `json:"topStreak"`
	CurrentStreak   int `json:"currentStreak"`
}

type UserDetails struct {
	User
	ProfilePictureURL *string    `json:"profilePictureUrl"`
	BanReason         *string    `json:"banReason"`
	Stats             *UserStats `json:"stats"`
}

type ActivityHistoryEntry struct {
	ID         int64        `json:"id" validate:"required"`
	EventType  string       `json:"eventType"`
	PointsEarn int          `json:"pointsEarn"`
	Status     ReviewStatus `json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
}

type UserFilter struct {
	Name     string
	IsBanned *bool
	Limit    int
}

type BanRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}
