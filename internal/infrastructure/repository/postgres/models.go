package postgres

import "time"

type predictionTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	UserID    string    `db:"user_id"`
	MatchID   int64     `db:"match_id"`
	HomeScore int       `db:"home_score"`
	AwayScore int       `db:"away_score"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type predictionInsertModel struct {
	PublicID  string    `db:"public_id"`
	UserID    string    `db:"user_id"`
	MatchID   int64     `db:"match_id"`
	HomeScore int       `db:"home_score"`
	AwayScore int       `db:"away_score"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type resultTableModel struct {
	MatchID   int64     `db:"match_id"`
	HomeScore int       `db:"home_score"`
	AwayScore int       `db:"away_score"`
	CreatedBy string    `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type pointsTableModel struct {
	UserID       string    `db:"user_id"`
	MatchID      int64     `db:"match_id"`
	Points       int       `db:"points"`
	Tier         string    `db:"tier"`
	CalculatedAt time.Time `db:"calculated_at"`
}

type userTableModel struct {
	ID          int64     `db:"id"`
	UserID      string    `db:"user_id"`
	Email       string    `db:"email"`
	DisplayName string    `db:"display_name"`
	TotalPoints int       `db:"total_points"`
	IsAdmin     bool      `db:"is_admin"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type userInsertModel struct {
	UserID      string    `db:"user_id"`
	Email       string    `db:"email"`
	DisplayName string    `db:"display_name"`
	TotalPoints int       `db:"total_points"`
	IsAdmin     bool      `db:"is_admin"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
