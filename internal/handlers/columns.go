// internal/handlers/columns.go
package handlers

import (
	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/table"
)

func optString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func optInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}

func userColumns() []table.Column[models.User] {
	return []table.Column[models.User]{
		{ID: "id", Header: "ID", Accessor: func(u models.User) any { return u.ID }, EnableSorting: true},
		{ID: "name", Header: "Name", Accessor: func(u models.User) any { return u.Name }, EnableSorting: true, EnableFiltering: true, EnableHiding: true},
		{ID: "username", Header: "Username", Accessor: func(u models.User) any { return u.Username }, EnableSorting: true, EnableFiltering: true, EnableHiding: true},
		{ID: "email", Header: "Email", Accessor: func(u models.User) any { return u.Email }, EnableSorting: true, EnableFiltering: true, EnableHiding: true},
		{ID: "country", Header: "Country", Accessor: func(u models.User) any { return optString(u.Country) }, EnableSorting: true, EnableFiltering: true, EnableHiding: true},
		{ID: "purchaseStatus", Header: "Purchase", Accessor: func(u models.User) any { return string(u.PurchaseStatus) }, EnableFiltering: true, FilterFn: table.InFilter, EnableHiding: true},
		{ID: "isBanned", Header: "Banned", Accessor: func(u models.User) any { return u.IsBanned }, EnableFiltering: true, FilterFn: table.EqualsFilter},
		{ID: "createdAt", Header: "Joined", Accessor: func(u models.User) any { return u.CreatedAt }, EnableSorting: true, EnableHiding: true},
	}
}

func activityColumns() []table.Column[models.ActivityHistoryEntry] {
	return []table.Column[models.ActivityHistoryEntry]{
		{ID: "id", Accessor: func(e models.ActivityHistoryEntry) any { return e.ID }},
		{ID: "eventType", Header: "Event", Accessor: func(e models.ActivityHistoryEntry) any { return e.EventType }},
		{ID: "pointsEarn", Header: "Points", Accessor: func(e models.ActivityHistoryEntry) any { return e.PointsEarn }},
		{ID: "status", Header: "Status", Accessor: func(e models.ActivityHistoryEntry) any { return string(e.Status) }},
		{ID: "createdAt", Header: "Date", Accessor: func(e models.ActivityHistoryEntry) any { return e.CreatedAt }},
	}
}

func verificationColumns() []table.Column[models.Verification] {
	return []table.Column[models.Verification]{
		{ID: "id", Header: "ID", Accessor: func(v models.Verification) any { return v.ID }, EnableSorting: true},
		{ID: "name", Header: "Name", Accessor: func(v models.Verification) any { return v.User.Name }, EnableSorting: true, EnableFiltering: true},
		{ID: "email", Header: "Email", Accessor: func(v models.Verification) any { return v.User.Email }, EnableSorting: true, EnableFiltering: true, EnableHiding: true},
		{ID: "status", Header: "Status", Accessor: func(v models.Verification) any { return string(v.Status) }, EnableFiltering: true, FilterFn: table.InFilter},
		{ID: "submittedAt", Header: "Submitted", Accessor: func(v models.Verification) any { return v.SubmittedAt }, EnableSorting: true, EnableHiding: true},
	}
}

func submissionColumns() []table.Column[models.Submission] {
	return []table.Column[models.Submission]{
		{ID: "id", Header: "ID", Accessor: func(s models.Submission) any { return s.ID }, EnableSorting: true},
		{ID: "username", Header: "Username", Accessor: func(s models.Submission) any { return s.User.Username }, EnableSorting: true, EnableFiltering: true},
		{ID: "email", Header: "Email", Accessor: func(s models.Submission) any { return s.User.Email }, EnableSorting: true, EnableFiltering: true, EnableHiding: true},
		{ID: "eventType", Header: "Event", Accessor: func(s models.Submission) any { return s.EventType }, EnableSorting: true, EnableFiltering: true, FilterFn: table.InFilter},
		{ID: "pointsEarn", Header: "Points", Accessor: func(s models.Submission) any { return s.PointsEarn }, EnableSorting: true},
		{ID: "status", Header: "Status", Accessor: func(s models.Submission) any { return string(s.Status) }, EnableFiltering: true, FilterFn: table.InFilter},
		{ID: "isFlagged", Header: "Flagged", Accessor: func(s models.Submission) any { return s.IsFlagged != nil && *s.IsFlagged }, EnableFiltering: true, FilterFn: table.EqualsFilter},
		{ID: "createdAt", Header: "Submitted", Accessor: func(s models.Submission) any { return s.CreatedAt }, EnableSorting: true, EnableHiding: true},
	}
}

func leaderboardColumns() []table.Column[models.LeaderboardEntry] {
	return []table.Column[models.LeaderboardEntry]{
		{ID: "id", Accessor: func(e models.LeaderboardEntry) any { return e.UserID }},
		{ID: "rank", Header: "Rank", Accessor: func(e models.LeaderboardEntry) any { return e.Rank }},
		{ID: "username", Header: "Username", Accessor: func(e models.LeaderboardEntry) any { return e.Username }},
		{ID: "country", Header: "Country", Accessor: func(e models.LeaderboardEntry) any { return optString(e.Country) }, EnableHiding: true},
		{ID: "points", Header: "Points", Accessor: func(e models.LeaderboardEntry) any { return optInt(e.Points) }},
		{ID: "streak", Header: "Streak", Accessor: func(e models.LeaderboardEntry) any { return optInt(e.Streak) }, EnableHiding: true},
	}
}
