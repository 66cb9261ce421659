// internal/models/verification.go
package models

import "time"

type VerificationUser struct {
	ID    int64  `json:"id" validate:"required"`
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
}

// Verification is a purchase receipt awaiting review.
type Verification struct {
	ID              int64            `json:"id" validate:"required"`
	Status          ReviewStatus     `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED NOT_VERIFIED"`
	ReceiptImageURL string           `json:"receiptImageUrl" validate:"required,url"`
	SubmittedAt     time.Time        `json:"submittedAt"`
	User            VerificationUser `json:"user"`
}

type SubmissionUser struct {
	ID       int64  `json:"id" validate:"required"`
	Username string `json:"username"`
	Email    string `json:"email" validate:"required,email"`
}

// Submission is an activity (challenge) submission awaiting review.
type Submission struct {
	ID                 int64          `json:"id" validate:"required"`
	Status             ReviewStatus   `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED"`
	EventType          string         `json:"eventType"`
	PointsEarn         int            `json:"pointsEarn"`
	SubmissionImageURL string         `json:"submissionImageUrl" validate:"required,url"`
	CreatedAt          time.Time      `json:"createdAt"`
	IsFlagged          *bool          `json:"isFlagged,omitempty"`
	FlagReason         *string        `json:"flagReason,omitempty"`
	User               SubmissionUser `json:"user"`
}

// ReviewFilter drives both verification and submission listings.
// Type only applies to verifications.
type ReviewFilter struct {
	Status      string
	Type        string
	NameOrEmail string
}

type RejectRequest struct {
	RejectionReason string `json:"rejectionReason" validate:"required,max=500"`
}
