// Package analytics computes administrator reports by scanning a whole
// document snapshot. Nothing here performs I/O; the caller supplies the
// snapshot and, where a report depends on it, the current time.
package analytics

import (
	"cmp"
	"slices"
	"time"

	"github.com/smarttodo/tasks-api/internal/core/domain"
)

const (
	recentActivityLimit = 10
	topCategoriesLimit  = 5
	trendWindowDays     = 30
)

// UserActivity builds the per-user report. Returns domain.ErrUserNotFound when
// userID is not a known user.
func UserActivity(snap *domain.Snapshot, userID string) (*domain.UserActivity, error) {
	if snap.FindUser(userID) < 0 {
		return nil, domain.ErrUserNotFound
	}

	breakdown := make(map[string]int)
	events := make([]domain.ActivityEvent, 0)
	var total, completed int

	for _, t := range snap.Tasks {
		if t.UserID != userID {
			continue
		}
		total++
		if t.Completed {
			completed++
		}
		breakdown[t.Category]++
		events = append(events,
			domain.ActivityEvent{Type: domain.ActivityCreated, TaskID: t.ID, Timestamp: t.CreatedAt},
			domain.ActivityEvent{Type: domain.ActivityUpdated, TaskID: t.ID, Timestamp: t.UpdatedAt},
		)
	}

	slices.SortStableFunc(events, func(a, b domain.ActivityEvent) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if len(events) > recentActivityLimit {
		events = events[:recentActivityLimit]
	}

	return &domain.UserActivity{
		UserID:               userID,
		TaskBreakdown:        breakdown,
		RecentActivity:       events,
		CompletionPercentage: ratio(completed, total),
	}, nil
}

// System aggregates every task in the snapshot. Completion trends cover the
// tasks completed within the 30 days before now, bucketed by UTC date.
func System(snap *domain.Snapshot, now time.Time) *domain.SystemAnalytics {
	cutoff := now.AddDate(0, 0, -trendWindowDays)

	var completed int
	perDay := make(map[string]int)
	perCategory := make(map[string]int)
	categories := make([]string, 0)

	for _, t := range snap.Tasks {
		if t.Completed {
			completed++
			if t.UpdatedAt.After(cutoff) {
				perDay[t.UpdatedAt.UTC().Format(time.DateOnly)]++
			}
		}
		if _, seen := perCategory[t.Category]; !seen {
			categories = append(categories, t.Category)
		}
		perCategory[t.Category]++
	}

	trends := make([]domain.TrendBucket, 0, len(perDay))
	for date, n := range perDay {
		trends = append(trends, domain.TrendBucket{Date: date, Completed: n})
	}
	slices.SortFunc(trends, func(a, b domain.TrendBucket) int {
		return cmp.Compare(a.Date, b.Date)
	})

	// stable sort keeps first-encounter order among equal counts
	slices.SortStableFunc(categories, func(a, b string) int {
		return cmp.Compare(perCategory[b], perCategory[a])
	})
	if len(categories) > topCategoriesLimit {
		categories = categories[:topCategoriesLimit]
	}

	totalTasks := len(snap.Tasks)
	totalUsers := len(snap.Users)
	return &domain.SystemAnalytics{
		TotalUsers:           totalUsers,
		TotalTasks:           totalTasks,
		ActiveTasks:          totalTasks - completed,
		CompletedTasks:       completed,
		CompletionRate:       ratio(completed, totalTasks),
		TaskCompletionTrends: trends,
		AverageTasksPerUser:  ratio(totalTasks, totalUsers),
		MostUsedCategories:   categories,
	}
}

// UsersWithStats projects every user, in insertion order, with task counts.
// The password hash is never part of the projection.
func UsersWithStats(snap *domain.Snapshot) []domain.UserStats {
	type counts struct{ total, completed int }
	byUser := make(map[string]counts, len(snap.Users))
	for _, t := range snap.Tasks {
		c := byUser[t.UserID]
		c.total++
		if t.Completed {
			c.completed++
		}
		byUser[t.UserID] = c
	}

	out := make([]domain.UserStats, 0, len(snap.Users))
	for _, u := range snap.Users {
		c := byUser[u.ID]
		out = append(out, domain.UserStats{
			ID:                 u.ID,
			Email:              u.Email,
			Profile:            u.Profile,
			LastLogin:          u.LastLogin,
			TaskCount:          c.total,
			CompletedTaskCount: c.completed,
		})
	}
	return out
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
