package service

import (
	"sort"
	"time"

	"taskmate/internal/models"
)

// NewBoard groups tasks into the fixed column order. Every column is present.
// Within a column tasks are ordered by deadline, then id.
func NewBoard(user models.UserSummary, tasks []models.Task, now time.Time) models.Board {
	byCategory := make(map[models.Category][]models.Task, len(models.Categories))
	for _, t := range tasks {
		c := models.Classify(t, now)
		byCategory[c] = append(byCategory[c], t)
	}

	columns := make([]models.Column, 0, len(models.Categories))
	for _, c := range models.Categories {
		col := byCategory[c]
		if col == nil {
			col = []models.Task{}
		}
		sort.SliceStable(col, func(i, j int) bool {
			if !col[i].Deadline.Equal(col[j].Deadline) {
				return col[i].Deadline.Before(col[j].Deadline)
			}
			return col[i].ID < col[j].ID
		})
		columns = append(columns, models.Column{Category: c, Tasks: col})
	}
	return models.Board{User: user, Columns: columns}
}
