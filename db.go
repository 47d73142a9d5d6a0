package main

import (
	"context"
	"database/sql"
	"time"
)

// connOrTx lets the fetch helpers run on either a pooled connection or
// an open transaction.
type connOrTx interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type AdminRow struct {
	ID           int    `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
}

type ViewerRow struct {
	Account          int            `db:"account"`
	Username         string         `db:"username"`
	PasswordHash     string         `db:"password_hash"`
	FirstName        string         `db:"first_name"`
	LastName         string         `db:"last_name"`
	Street           string         `db:"street"`
	City             string         `db:"city"`
	State            string         `db:"state"`
	Zipcode          string         `db:"zipcode"`
	OpenDate         time.Time      `db:"open_date"`
	MonthlyCharge    float64        `db:"monthly_charge"`
	CountryID        int            `db:"country_id"`
	SecurityQuestion sql.NullString `db:"security_question"`
	SecurityAnswer   sql.NullString `db:"security_answer"`
}

type CountryRow struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

type SeriesRow struct {
	ID               int    `db:"id"`
	Name             string `db:"name"`
	EpisodeCount     int    `db:"episode_count"`
	OriginalLanguage string `db:"original_language"`
}

type EpisodeRow struct {
	ID            int       `db:"id"`
	SeriesID      int       `db:"series_id"`
	EpisodeNumber int       `db:"episode_number"`
	ScheduleStart time.Time `db:"schedule_start"`
	ScheduleEnd   time.Time `db:"schedule_end"`
	ViewerCount   int       `db:"viewer_count"`
	Interrupted   bool      `db:"interrupted"`
}

type FeedbackRow struct {
	Account  int       `db:"account"`
	SeriesID int       `db:"series_id"`
	Rating   int       `db:"rating"`
	Body     string    `db:"body"`
	PostedOn time.Time `db:"posted_on"`
}

type PhouseRow struct {
	ID              int    `db:"id"`
	Name            string `db:"name"`
	Street          string `db:"street"`
	City            string `db:"city"`
	State           string `db:"state"`
	Zipcode         string `db:"zipcode"`
	EstablishedYear int    `db:"established_year"`
	CountryID       int    `db:"country_id"`
}

type ProducerRow struct {
	ID        int    `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Street    string `db:"street"`
	City      string `db:"city"`
	State     string `db:"state"`
	Zipcode   string `db:"zipcode"`
	Phone     string `db:"phone"`
	Email     string `db:"email"`
	CountryID int    `db:"country_id"`
}

type CollaborationRow struct {
	ProducerID int `db:"producer_id"`
	PhouseID   int `db:"phouse_id"`
}

type ContractRow struct {
	ID           int       `db:"id"`
	IssuedDate   time.Time `db:"issued_date"`
	EpisodePrice float64   `db:"episode_price"`
	Renewable    bool      `db:"renewable"`
	PhouseID     int       `db:"phouse_id"`
	SeriesID     int       `db:"series_id"`
}

type AdminHistoryRow struct {
	ULID        string    `db:"ulid"`
	AdminID     int       `db:"admin_id"`
	ActedAt     time.Time `db:"acted_at"`
	TargetTable string    `db:"target_table"`
	Action      string    `db:"action"`
	Statement   string    `db:"statement"`
}
