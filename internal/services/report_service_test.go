// internal/services/report_service_test.go
package services

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netflix100plus/admin-console/internal/cache"
	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/utils"
)

func TestSchedulesAreCachedPerKind(t *testing.T) {
	var weeklyCalls, monthlyCalls int32
	client, _ := newBackend(t, func(v1 *gin.RouterGroup) {
		v1.GET("/admin/reports/schedules", func(c *gin.Context) {
			atomic.AddInt32(&weeklyCalls, 1)
			c.JSON(http.StatusOK, gin.H{"data": []gin.H{
				{"periodId": 1, "week": 1, "label": "Week 1", "start": "2024-05-06", "end": "2024-05-12"},
				{"periodId": 2, "week": 2, "label": "Week 2", "start": "2024-05-13", "end": "2024-05-19"},
			}})
		})
		v1.GET("/admin/reports/monthly-schedules", func(c *gin.Context) {
			atomic.AddInt32(&monthlyCalls, 1)
			c.JSON(http.StatusOK, gin.H{"data": []gin.H{
				{"periodId": "2024-05", "month": 5, "label": "May", "start": "2024-05-01", "end": "2024-05-31"},
			}})
		})
	})
	reports := NewReportService(client, cache.NewMemoryCache(), time.Hour, quietLog())
	ctx := context.Background()

	start, end, err := reports.PeriodRange(ctx, models.ReportKindWeekly, "2")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-13", start)
	assert.Equal(t, "2024-05-19", end)

	_, _, err = reports.PeriodRange(ctx, models.ReportKindWeekly, "9")
	assert.ErrorIs(t, err, ErrUnknownPeriod)

	start, _, err = reports.PeriodRange(ctx, models.ReportKindMonthly, "2024-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", start)

	assert.Equal(t, int32(1), atomic.LoadInt32(&weeklyCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&monthlyCalls))
}

func TestReportHistory(t *testing.T) {
	client, _ := newBackend(t, func(v1 *gin.RouterGroup) {
		v1.GET("/admin/reports/weekly-winners", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"data": []gin.H{{
				"id": 3, "weekNumber": 19, "status": "SENT",
				"periodStart": "2024-05-06T00:00:00Z", "periodEnd": "2024-05-12T23:59:59Z",
				"downloadUrl": "https://files.netflix100plus.id/w19.xlsx",
			}}})
		})
		v1.GET("/admin/reports/monthly-winners", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"data": []gin.H{{"id": 1, "monthNumber": 5, "status": "QUEUED"}}})
		})
	})
	reports := NewReportService(client, nil, 0, quietLog())
	ctx := context.Background()

	weekly, err := reports.WeeklyHistory(ctx)
	require.NoError(t, err)
	require.Len(t, weekly, 1)
	assert.Equal(t, models.ReportStatusSent, weekly[0].Status)
	assert.Equal(t, 19, weekly[0].WeekNumber)

	_, err = reports.MonthlyHistory(ctx)
	assert.IsType(t, &utils.ValidationError{}, err)
}

func TestNotifySingleWinner(t *testing.T) {
	var sent map[string]interface{}
	client, _ := newBackend(t, func(v1 *gin.RouterGroup) {
		v1.POST("/admin/reports/notify-single-winner", func(c *gin.Context) {
			c.ShouldBindJSON(&sent)
			c.JSON(http.StatusCreated, gin.H{"message": "sent"})
		})
	})
	reports := NewReportService(client, nil, 0, quietLog())
	ctx := context.Background()

	err := reports.NotifySingleWinner(ctx, &models.NotifySingleWinnerRequest{ReportType: "DAILY", PeriodID: "1", UserID: 4})
	assert.IsType(t, &utils.ValidationError{}, err)
	assert.Nil(t, sent)

	require.NoError(t, reports.NotifySingleWinner(ctx, &models.NotifySingleWinnerRequest{
		ReportType: models.ReportKindWeekly,
		PeriodID:   "2",
		UserID:     4,
	}))
	assert.Equal(t, "WEEKLY", sent["reportType"])
	assert.Equal(t, "2", sent["periodId"])
	assert.Equal(t, float64(4), sent["userId"])
}
