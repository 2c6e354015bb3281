// internal/post/service_test.go
//
// Service-level tests over a sqlmock-backed Store: error taxonomy mapping,
// openAt validation, and the trilingual list flow end to end.

package post

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/yanizio/mobilepost/internal/apierr"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	store, mock := newMockStore(t)
	return NewService(store, zap.NewNop().Sugar()), mock
}

func TestServiceCreateReturnsStoredRow(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO mobile_posts`)).
		WillReturnResult(sqlmock.NewResult(5, 1))

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(selectSQL+` WHERE id = ?`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(postCols).AddRow(
			int64(5), nil, nil,
			"Mobile Post 5", nil, nil,
			"Central", nil, nil,
			nil, nil, nil,
			nil, nil, nil,
			nil, nil, nil,
			nil, nil, now, now,
		))

	in := Input{NameEN: strPtr("Mobile Post 5"), DistrictEN: strPtr("Central")}
	created, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID != 5 {
		t.Errorf("id = %d, want 5", created.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestServiceCreateDuplicate(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO mobile_posts`)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'MP01'"})

	in := Input{NameEN: strPtr("X"), DistrictEN: strPtr("Y"), MobileCode: strPtr("MP01")}
	_, err := svc.Create(context.Background(), in)
	if got := apierr.CodeOf(err); got != apierr.CodeDuplicateRecord {
		t.Errorf("code = %s, want %s", got, apierr.CodeDuplicateRecord)
	}
}

func TestServiceCreateMissingRequired(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), Input{NameEN: strPtr("no district")})
	if got := apierr.CodeOf(err); got != apierr.CodeMissingRequiredField {
		t.Errorf("code = %s, want %s", got, apierr.CodeMissingRequiredField)
	}
}

func TestServiceGetNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectSQL+` WHERE id = ?`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(postCols))

	_, err := svc.Get(context.Background(), 99, LangEN)
	if got := apierr.CodeOf(err); got != apierr.CodeRecordNotFound {
		t.Errorf("code = %s, want %s", got, apierr.CodeRecordNotFound)
	}
}

func TestServiceUpdateEmptyInput(t *testing.T) {
	svc, mock := newTestService(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(selectSQL+` WHERE id = ?`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(postCols).AddRow(
			int64(7), nil, nil,
			"X", nil, nil,
			"Y", nil, nil,
			nil, nil, nil,
			nil, nil, nil,
			nil, nil, nil,
			nil, nil, now, now,
		))

	_, err := svc.Update(context.Background(), 7, Input{})
	if got := apierr.CodeOf(err); got != apierr.CodeNoUpdatableFields {
		t.Errorf("code = %s, want %s", got, apierr.CodeNoUpdatableFields)
	}
}

func TestServiceRemoveNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM mobile_posts WHERE id = ?`)).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Remove(context.Background(), 99)
	if got := apierr.CodeOf(err); got != apierr.CodeRecordNotFound {
		t.Errorf("code = %s, want %s", got, apierr.CodeRecordNotFound)
	}
}

func TestServiceListRejectsBadOpenAt(t *testing.T) {
	svc, _ := newTestService(t)

	for _, bad := range []string{"9:00", "24:00", "12:60", "noon"} {
		_, _, err := svc.List(context.Background(), Params{OpenAt: bad})
		if got := apierr.CodeOf(err); got != apierr.CodeInvalidTimeFormat {
			t.Errorf("openAt %q: code = %s, want %s", bad, got, apierr.CodeInvalidTimeFormat)
		}
	}
}

func TestServiceListDistrictTC(t *testing.T) {
	svc, mock := newTestService(t)

	whereSQL := ` WHERE (district_en LIKE ? OR district_tc LIKE ? OR district_sc LIKE ?)`
	needle := "%中環%"

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM mobile_posts`+whereSQL)).
		WithArgs(needle, needle, needle).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(selectSQL+whereSQL+` ORDER BY id ASC LIMIT ? OFFSET ?`)).
		WithArgs(needle, needle, needle, 20, 0).
		WillReturnRows(sqlmock.NewRows(postCols).AddRow(
			int64(1), "MP01", 1,
			"Mobile Post 1", "流動郵政局1", nil,
			"Central", "中環", nil,
			nil, nil, nil,
			nil, nil, nil,
			"09:00", "17:00", 1,
			nil, nil, now, now,
		))

	items, meta, err := svc.List(context.Background(), Params{District: "中環", Lang: LangTC})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if meta.Total != 1 || meta.TotalPages != 1 || meta.Lang != LangTC {
		t.Errorf("meta = %+v", meta)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	v, ok := items[0].(View)
	if !ok {
		t.Fatalf("item shape = %T, want View", items[0])
	}
	if v.District != "中環" || v.Name != "流動郵政局1" {
		t.Errorf("projected view = %+v", v)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
