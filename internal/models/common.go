// internal/models/common.go
package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexibleID accepts both JSON numbers and strings. The backend emits numeric
// ids for records but job ids come from the queue as strings.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexibleID(n.String())
	return nil
}

func (f FlexibleID) String() string {
	return string(f)
}

// Pagination mirrors the backend's pagination block.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Enums
type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "ADMIN"
	AdminRoleSuperAdmin AdminRole = "SUPER_ADMIN"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

type PurchaseStatus string

const (
	PurchaseStatusNotVerified PurchaseStatus = "NOT_VERIFIED"
	PurchaseStatusPending     PurchaseStatus = "PENDING"
	PurchaseStatusApproved    PurchaseStatus = "APPROVED"
	PurchaseStatusRejected    PurchaseStatus = "REJECTED"
)

type ReviewStatus string

const (
	ReviewStatusPending     ReviewStatus = "PENDING"
	ReviewStatusApproved    ReviewStatus = "APPROVED"
	ReviewStatusRejected    ReviewStatus = "REJECTED"
	ReviewStatusNotVerified ReviewStatus = "NOT_VERIFIED"
)

// StatusFilterAll is the list filter value meaning "do not filter".
const StatusFilterAll = "ALL"

type ReportStatus string

const (
	ReportStatusPending ReportStatus = "PENDING"
	ReportStatusSent    ReportStatus = "SENT"
	ReportStatusFailed  ReportStatus = "FAILED"
)

type Timespan string

const (
	TimespanAllTime Timespan = "alltime"
	TimespanWeekly  Timespan = "weekly"
	TimespanMonthly Timespan = "monthly"
	TimespanStreak  Timespan = "streak"
)

type GrowthPeriod string

const (
	GrowthPeriodDaily   GrowthPeriod = "daily"
	GrowthPeriodWeekly  GrowthPeriod = "weekly"
	GrowthPeriodMonthly GrowthPeriod = "monthly"
)

func ParseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
