package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("*").
		From("predictions").
		Where(Eq("user_id", "u-1"), Eq("match_id", int64(1001))).
		OrderBy("match_id").
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM predictions WHERE user_id = $1 AND match_id = $2 ORDER BY match_id LIMIT 1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "u-1" || args[1] != int64(1001) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_RequiresTable(t *testing.T) {
	if _, _, err := Select("*").ToSQL(); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

func TestInsertModel(t *testing.T) {
	type pointsRow struct {
		UserID  string `db:"user_id"`
		MatchID int64  `db:"match_id"`
		Points  int    `db:"points"`
		Skipped string `db:"-"`
		note    string
	}

	query, args, err := InsertModel("prediction_points", pointsRow{UserID: "u-1", MatchID: 7, Points: 15, note: "x"},
		"ON CONFLICT (user_id, match_id) DO UPDATE SET points = EXCLUDED.points")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO prediction_points (user_id, match_id, points) VALUES ($1, $2, $3) ON CONFLICT (user_id, match_id) DO UPDATE SET points = EXCLUDED.points"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != 15 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_RejectsNonStruct(t *testing.T) {
	if _, _, err := InsertModel("users", 42, ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	var nilRow *struct{ ID int `db:"id"` }
	if _, _, err := InsertModel("users", nilRow, ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
}

func TestUpdateBuilder(t *testing.T) {
	at := time.Date(2026, 6, 11, 19, 0, 0, 0, time.UTC)
	query, args, err := Update("users").
		Set("display_name", "ana").
		Set("updated_at", at).
		SetRaw("total_points", "0").
		Where(Eq("user_id", "u-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE users SET display_name = $1, updated_at = $2, total_points = 0 WHERE user_id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != "u-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_RequiresWhere(t *testing.T) {
	if _, _, err := Update("users").Set("total_points", 0).ToSQL(); err == nil {
		t.Fatalf("expected error for unscoped update")
	}
}
