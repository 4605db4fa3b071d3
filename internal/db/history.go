package db

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Analysis is one saved compatibility analysis.
type Analysis struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	JobTitle      string    `json:"job_title"`
	Score         int       `json:"score"`
	MissingSkills []string  `json:"missing_skills"`
	JobLink       string    `json:"job_link,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Stats aggregates a user's analysis history for the dashboard.
type Stats struct {
	Total            int          `json:"total"`
	MeanScore        float64      `json:"mean_score"`
	BestScore        int          `json:"best_score"`
	ScoreSeries      []int        `json:"score_series"`
	TopMissingSkills []SkillCount `json:"top_missing_skills"`
}

// SkillCount is one entry of the missing-skill frequency ranking.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// SaveAnalysis records one finished analysis for a user.
func (db *DB) SaveAnalysis(ctx context.Context, userID, jobTitle string, score int, missingSkills []string, jobLink string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	if missingSkills == nil {
		missingSkills = []string{}
	}
	skillsJSON, err := json.Marshal(missingSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal missing skills: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO analyses (id, user_id, job_title, score, missing_skills, job_link)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New(), uid, jobTitle, score, skillsJSON, jobLink,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// ListAnalyses retrieves a user's analyses, newest first.
func (db *DB) ListAnalyses(ctx context.Context, userID uuid.UUID, limit int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, job_title, score, missing_skills, job_link, created_at
		 FROM analyses WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []Analysis
	for rows.Next() {
		var a Analysis
		var skillsJSON []byte
		if err := rows.Scan(&a.ID, &a.UserID, &a.JobTitle, &a.Score, &skillsJSON, &a.JobLink, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		if err := json.Unmarshal(skillsJSON, &a.MissingSkills); err != nil {
			a.MissingSkills = []string{}
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}

// HistoryStats aggregates a user's history: totals, mean and best score, the
// chronological score series, and the most frequent missing skills.
func (db *DB) HistoryStats(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT score, missing_skills
		 FROM analyses WHERE user_id = $1
		 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	stats := &Stats{ScoreSeries: []int{}, TopMissingSkills: []SkillCount{}}
	skillCounts := map[string]int{}
	sum := 0

	for rows.Next() {
		var score int
		var skillsJSON []byte
		if err := rows.Scan(&score, &skillsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}

		stats.Total++
		sum += score
		stats.ScoreSeries = append(stats.ScoreSeries, score)
		if score > stats.BestScore {
			stats.BestScore = score
		}

		var skills []string
		if err := json.Unmarshal(skillsJSON, &skills); err == nil {
			for _, s := range skills {
				skillCounts[s]++
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	if stats.Total > 0 {
		stats.MeanScore = float64(sum) / float64(stats.Total)
	}
	stats.TopMissingSkills = topSkills(skillCounts, 5)

	return stats, nil
}

// topSkills ranks skill counts descending, ties broken alphabetically.
func topSkills(counts map[string]int, n int) []SkillCount {
	ranked := make([]SkillCount, 0, len(counts))
	for skill, count := range counts {
		ranked = append(ranked, SkillCount{Skill: skill, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Skill < ranked[j].Skill
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
