// internal/post/store.go
//
// sqlx persistence for the mobile_posts table.
//
// Context
// -------
// The store is a thin, explicitly passed handle; no hidden singletons and
// no in-process cache.  Every read re-queries.  Transactions are owned by
// callers (the import pipeline) and passed in where needed.
//
// Schema (MySQL):
//
//	mobile_posts (
//	    id BIGINT AUTO_INCREMENT PRIMARY KEY,
//	    mobile_code VARCHAR(20) NULL, seq INT NULL,
//	    name_en/.._tc/.._sc VARCHAR(255) NULL,
//	    district_en/.._tc/.._sc VARCHAR(100) NULL,
//	    location_en/.._tc/.._sc VARCHAR(255) NULL,
//	    address_en/.._tc/.._sc TEXT NULL,
//	    open_hour CHAR(5) NULL, close_hour CHAR(5) NULL,
//	    day_of_week_code TINYINT NULL,
//	    latitude DECIMAL(10,6) NULL, longitude DECIMAL(10,6) NULL,
//	    imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
//	    updated_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
//	)
package post

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Store wraps the shared connection pool.
type Store struct {
	DB *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store { return &Store{DB: db} }

// settableColumns lists every column a client may supply, in Candidate
// argument order.
var settableColumns = []string{
	"mobile_code", "seq",
	"name_en", "name_tc", "name_sc",
	"district_en", "district_tc", "district_sc",
	"location_en", "location_tc", "location_sc",
	"address_en", "address_tc", "address_sc",
	"open_hour", "close_hour", "day_of_week_code",
	"latitude", "longitude",
}

const selectColumns = `id, mobile_code, seq,
       name_en, name_tc, name_sc,
       district_en, district_tc, district_sc,
       location_en, location_tc, location_sc,
       address_en, address_tc, address_sc,
       open_hour, close_hour, day_of_week_code,
       latitude, longitude, imported_at, updated_at`

// args returns the candidate values in settableColumns order.
func (c Candidate) args() []any {
	return []any{
		c.MobileCode, c.Seq,
		c.NameEN, c.NameTC, c.NameSC,
		c.DistrictEN, c.DistrictTC, c.DistrictSC,
		c.LocationEN, c.LocationTC, c.LocationSC,
		c.AddressEN, c.AddressTC, c.AddressSC,
		c.OpenHour, c.CloseHour, c.DayOfWeekCode,
		c.Latitude, c.Longitude,
	}
}

// supplied returns (column, value) pairs for the fields the candidate
// actually sets, driving partial updates.
func (c Candidate) supplied() (cols []string, vals []any) {
	names := settableColumns
	for i, v := range c.args() {
		switch p := v.(type) {
		case *string:
			if p != nil {
				cols, vals = append(cols, names[i]), append(vals, *p)
			}
		case *int:
			if p != nil {
				cols, vals = append(cols, names[i]), append(vals, *p)
			}
		case *float64:
			if p != nil {
				cols, vals = append(cols, names[i]), append(vals, *p)
			}
		}
	}
	return cols, vals
}

var insertSQL = `INSERT INTO mobile_posts (` + strings.Join(settableColumns, ", ") + `)
VALUES (` + strings.TrimSuffix(strings.Repeat("?, ", len(settableColumns)), ", ") + `)`

// Insert writes one record and returns the assigned id.
func (s *Store) Insert(ctx context.Context, c Candidate) (int64, error) {
	res, err := s.DB.ExecContext(ctx, insertSQL, c.args()...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertTx writes one record inside a caller-owned transaction.
func (s *Store) InsertTx(ctx context.Context, tx *sqlx.Tx, c Candidate) error {
	_, err := tx.ExecContext(ctx, insertSQL, c.args()...)
	return err
}

// GetByID fetches one row, or sql.ErrNoRows.
func (s *Store) GetByID(ctx context.Context, id int64) (*Post, error) {
	var p Post
	q := `SELECT ` + selectColumns + ` FROM mobile_posts WHERE id = ?`
	if err := s.DB.GetContext(ctx, &p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// Count runs the total-count query over the shared predicate set.
func (s *Store) Count(ctx context.Context, p Params) (int, error) {
	where, args := buildWhere(p)
	var n int
	err := s.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM mobile_posts`+where, args...)
	return n, err
}

// SelectPage runs the page query: same predicates, resolved sort, and
// LIMIT/OFFSET from Params.
func (s *Store) SelectPage(ctx context.Context, p Params) ([]Post, error) {
	where, args := buildWhere(p)
	q := `SELECT ` + selectColumns + ` FROM mobile_posts` + where + orderClause(p) +
		` LIMIT ? OFFSET ?`
	args = append(args, p.Limit, (p.Page-1)*p.Limit)

	rows := []Post{}
	if err := s.DB.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdatePartial applies only the supplied fields and refreshes updated_at.
// Callers must ensure at least one field is set.
func (s *Store) UpdatePartial(ctx context.Context, id int64, c Candidate) error {
	cols, vals := c.supplied()
	sets := make([]string, len(cols), len(cols)+1)
	for i, col := range cols {
		sets[i] = col + " = ?"
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")

	q := `UPDATE mobile_posts SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	vals = append(vals, id)
	_, err := s.DB.ExecContext(ctx, q, vals...)
	return err
}

// Delete removes one row and reports whether it existed.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM mobile_posts WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CountAll returns the table row count.  Used by the truncate utility.
func (s *Store) CountAll(ctx context.Context) (int, error) {
	var n int
	err := s.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM mobile_posts`)
	return n, err
}

// Truncate empties the table and resets auto-increment.  Foreign-key checks
// are toggled off around the statement.
func (s *Store) Truncate(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, `SET FOREIGN_KEY_CHECKS = 0`); err != nil {
		return err
	}
	if _, err := s.DB.ExecContext(ctx, `TRUNCATE TABLE mobile_posts`); err != nil {
		return err
	}
	_, err := s.DB.ExecContext(ctx, `SET FOREIGN_KEY_CHECKS = 1`)
	return err
}

// IsDuplicate reports a MySQL unique-constraint violation (ER_DUP_ENTRY).
func IsDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// IsNotFound reports the no-rows sentinel.
func IsNotFound(err error) bool { return errors.Is(err, sql.ErrNoRows) }

// isConnLoss reports store-connectivity loss, which the service surfaces as
// transient (503) rather than a plain server error.
func isConnLoss(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	var ne *net.OpError
	return errors.As(err, &ne)
}
