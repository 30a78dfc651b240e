package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows to be not found")
	}
	if !isNotFound(fmt.Errorf("get user: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("pq: relation users does not exist")) {
		t.Fatalf("expected unrelated error to be ignored")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches unique violation code", func(t *testing.T) {
		err := fmt.Errorf("insert user: %w", &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for 23505")
		}
	})

	t.Run("ignores other pq codes", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "23503"}) {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores non pq errors", func(t *testing.T) {
		if isUniqueViolation(fakeErr("duplicate key")) {
			t.Fatalf("expected false for plain error")
		}
	})
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
