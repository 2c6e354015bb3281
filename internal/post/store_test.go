// internal/post/store_test.go
//
// Unit-tests for Store SQL using sqlmock.  The mock matcher collapses
// whitespace, so expectations are written single-spaced and QuoteMeta'd.
//
// Run: go test ./internal/post -v

package post

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const selectSQL = `SELECT id, mobile_code, seq, name_en, name_tc, name_sc, district_en, district_tc, district_sc, location_en, location_tc, location_sc, address_en, address_tc, address_sc, open_hour, close_hour, day_of_week_code, latitude, longitude, imported_at, updated_at FROM mobile_posts`

var postCols = []string{
	"id", "mobile_code", "seq",
	"name_en", "name_tc", "name_sc",
	"district_en", "district_tc", "district_sc",
	"location_en", "location_tc", "location_sc",
	"address_en", "address_tc", "address_sc",
	"open_hour", "close_hour", "day_of_week_code",
	"latitude", "longitude", "imported_at", "updated_at",
}

// newMockStore wraps a sqlmock connection in the sqlx handle the Store needs.
func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &Store{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

func TestStoreInsert(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO mobile_posts (mobile_code, seq, name_en, name_tc, name_sc, district_en, district_tc, district_sc, location_en, location_tc, location_sc, address_en, address_tc, address_sc, open_hour, close_hour, day_of_week_code, latitude, longitude) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)).WillReturnResult(sqlmock.NewResult(42, 1))

	c := Candidate{NameEN: strPtr("Mobile Post 1"), DistrictEN: strPtr("Central")}
	id, err := s.Insert(context.Background(), c)
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestStoreInsertDuplicate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO mobile_posts`)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := s.Insert(context.Background(), Candidate{NameEN: strPtr("X")})
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	if !IsDuplicate(err) {
		t.Errorf("IsDuplicate = false for MySQL 1062: %v", err)
	}
}

func TestStoreGetByID(t *testing.T) {
	s, mock := newMockStore(t)

	now := time.Now()
	rows := sqlmock.NewRows(postCols).AddRow(
		int64(7), "MP07", 3,
		"Mobile Post 7", nil, nil,
		"Central", "中環", nil,
		nil, nil, nil,
		nil, nil, nil,
		"09:00", "17:00", 3,
		22.3193, 114.1694, now, now,
	)
	mock.ExpectQuery(regexp.QuoteMeta(selectSQL+` WHERE id = ?`)).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	p, err := s.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if p.ID != 7 || *p.NameEN != "Mobile Post 7" || *p.DistrictTC != "中環" {
		t.Errorf("unexpected row: %+v", p)
	}
	if p.Latitude == nil || *p.Latitude != 22.3193 {
		t.Errorf("latitude = %v, want 22.3193", p.Latitude)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestStoreGetByIDNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectSQL+` WHERE id = ?`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(postCols))

	_, err := s.GetByID(context.Background(), 99)
	if !IsNotFound(err) {
		t.Errorf("IsNotFound = false, err = %v", err)
	}
}

func TestStoreUpdatePartial(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE mobile_posts SET name_en = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
	)).WithArgs("Renamed", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.UpdatePartial(context.Background(), 7, Candidate{NameEN: strPtr("Renamed")})
	if err != nil {
		t.Fatalf("UpdatePartial error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM mobile_posts WHERE id = ?`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM mobile_posts WHERE id = ?`)).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := s.Delete(context.Background(), 7)
	if err != nil || !ok {
		t.Errorf("Delete(7) = %v, %v; want true, nil", ok, err)
	}
	ok, err = s.Delete(context.Background(), 99)
	if err != nil || ok {
		t.Errorf("Delete(99) = %v, %v; want false, nil", ok, err)
	}
}

func TestStoreTruncate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`SET FOREIGN_KEY_CHECKS = 0`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`TRUNCATE TABLE mobile_posts`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`SET FOREIGN_KEY_CHECKS = 1`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.Truncate(context.Background()); err != nil {
		t.Fatalf("Truncate error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestCandidateSupplied(t *testing.T) {
	lat := 22.5
	seq := 0
	c := Candidate{Seq: &seq, NameTC: strPtr("名"), Latitude: &lat}

	cols, vals := c.supplied()
	if len(cols) != 3 {
		t.Fatalf("cols = %v, want three entries", cols)
	}
	want := map[string]any{"seq": 0, "name_tc": "名", "latitude": 22.5}
	for i, col := range cols {
		if want[col] != vals[i] {
			t.Errorf("%s = %v, want %v", col, vals[i], want[col])
		}
	}
}
