// internal/models/report.go
package models

import "time"

type WeeklyReport struct {
	ID            int64        `json:"id" validate:"required"`
	WeekNumber    int          `json:"weekNumber"`
	PeriodStart   time.Time    `json:"periodStart"`
	PeriodEnd     time.Time    `json:"periodEnd"`
	Status        ReportStatus `json:"status" validate:"required,oneof=PENDING SENT FAILED"`
	SentAt        *time.Time   `json:"sentAt"`
	S3FileKey     *string      `json:"s3FileKey"`
	RecipientList *string      `json:"recipientList"`
	DownloadURL   *string      `json:"downloadUrl" validate:"omitempty,url"`
}

type MonthlyReport struct {
	ID            int64        `json:"id" validate:"required"`
	MonthNumber   int          `json:"monthNumber"`
	PeriodStart   time.Time    `json:"periodStart"`
	PeriodEnd     time.Time    `json:"periodEnd"`
	Status        ReportStatus `json:"status" validate:"required,oneof=PENDING SENT FAILED"`
	SentAt        *time.Time   `json:"sentAt"`
	S3FileKey     *string      `json:"s3FileKey"`
	RecipientList *string      `json:"recipientList"`
	DownloadURL   *string      `json:"downloadUrl" validate:"omitempty,url"`
}

// ReportSchedule is one selectable reporting period.
type ReportSchedule struct {
	PeriodID FlexibleID `json:"periodId"`
	Week     int        `json:"week,omitempty"`
	Month    int        `json:"month,omitempty"`
	Label    string     `json:"label"`
	Start    string     `json:"start"`
	End      string     `json:"end"`
}

type ReportKind string

const (
	ReportKindWeekly  ReportKind = "WEEKLY"
	ReportKindMonthly ReportKind = "MONTHLY"
)

type NotifySingleWinnerRequest struct {
	ReportType ReportKind `json:"reportType" validate:"required,oneof=WEEKLY MONTHLY"`
	PeriodID   string     `json:"periodId" validate:"required"`
	UserID     int64      `json:"userId" validate:"required"`
}
