package database

import (
	"context"
	"fmt"
	"log"

	"atrium/models"
)

const (
	userInfoTable   = "pii_data.user_info"
	columnUserID    = "user_id"
	columnFirstName = "first_name"
	columnLastName  = "last_name"
)

// InsertUserInfo adds a display-name row for a principal. The directory
// does not allow duplicates; a second insert for the same principal fails
// at the database layer.
func (db *DB) InsertUserInfo(ctx context.Context, userID string, info models.UserInfo) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
	`, userInfoTable, columnUserID, columnFirstName, columnLastName)

	_, err := db.Pool.Exec(ctx, query, userID, info.FirstName, info.LastName)
	if err != nil {
		return fmt.Errorf("failed to insert user info: %w", err)
	}

	log.Printf("Inserted user info for %s", userID)
	return nil
}

// GetUsersInfo returns display names for every given principal that has a
// row, keyed by principal. Missing principals are simply absent from the
// result; the caller decides whether zero matches is an error.
func (db *DB) GetUsersInfo(ctx context.Context, userIDs []string) (map[string]models.UserInfo, error) {
	qb := NewQueryBuilder()
	qb.WhereIn(columnUserID, userIDs)

	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		%s
	`, columnUserID, columnFirstName, columnLastName, userInfoTable, qb.WhereClause())

	rows, err := db.Pool.Query(ctx, query, qb.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to query user info: %w", err)
	}
	defer rows.Close()

	infos := map[string]models.UserInfo{}
	for rows.Next() {
		var userID string
		var info models.UserInfo
		if err := rows.Scan(&userID, &info.FirstName, &info.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan user info row: %w", err)
		}
		infos[userID] = info
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user info rows: %w", err)
	}

	return infos, nil
}

// GetUserInfo returns the display name for a single principal.
func (db *DB) GetUserInfo(ctx context.Context, userID string) (*models.UserInfo, error) {
	qb := NewQueryBuilder()
	qb.Where(columnUserID, userID)

	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		%s
	`, columnFirstName, columnLastName, userInfoTable, qb.WhereClause())

	var info models.UserInfo
	err := db.Pool.QueryRow(ctx, query, qb.Args()...).Scan(&info.FirstName, &info.LastName)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info for %s: %w", userID, err)
	}

	return &info, nil
}
