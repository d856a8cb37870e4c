package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

const tableName = "hukum_matches"

const columns = "id, created_at, player1, player2, player3, player4, " +
	"player1_team, player2_team, player3_team, player4_team, " +
	"team_a_score, team_b_score, winner_team, hands_played"

type Service struct {
	db         *sql.DB
	m          *sync.Mutex
	driver     string
	table_name string
}

// New opens the result store and creates its table if needed. driver is
// "sqlite3" or "pgx".
func New(driver, dsn string) (*Service, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	sqlStmt := `
	create table if not exists ` + tableName + ` (
		id text not null primary key,
		created_at text,
		player1 text,
		player2 text,
		player3 text,
		player4 text,
		player1_team text,
		player2_team text,
		player3_team text,
		player4_team text,
		team_a_score integer,
		team_b_score integer,
		winner_team text,
		hands_played integer
	);
	`
	if _, err := db.Exec(sqlStmt); err != nil {
		db.Close()
		return nil, fmt.Errorf("create %s table: %w", tableName, err)
	}

	return &Service{
		db:         db,
		m:          &sync.Mutex{},
		driver:     driver,
		table_name: tableName,
	}, nil
}

func (s *Service) Close() error {
	return s.db.Close()
}

func (s *Service) TableName() string {
	return s.table_name
}

// rebind turns ? placeholders into $1, $2, ... for postgres.
func (s *Service) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (s *Service) GetAll() ([]MatchResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	rows, err := s.db.Query("SELECT " + columns + " FROM " + s.table_name + " ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

func (s *Service) GetByID(id string) (MatchResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	var result MatchResult
	err := s.db.QueryRow(s.rebind("SELECT "+columns+" FROM "+s.table_name+" WHERE id = ?"), id).
		Scan(result.scanTargets()...)
	if err != nil {
		return MatchResult{}, err
	}
	return result, nil
}

// Insert stores a finished match. Missing id and timestamp are filled in.
func (s *Service) Insert(result MatchResult) (MatchResult, error) {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	if result.CreatedAt == "" {
		result.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	s.m.Lock()
	defer s.m.Unlock()
	_, err := s.db.Exec(s.rebind("INSERT INTO "+s.table_name+" ("+columns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		result.ID,
		result.CreatedAt,
		result.Player1,
		result.Player2,
		result.Player3,
		result.Player4,
		result.Player1Team,
		result.Player2Team,
		result.Player3Team,
		result.Player4Team,
		result.TeamAScore,
		result.TeamBScore,
		result.WinnerTeam,
		result.HandsPlayed)
	if err != nil {
		return MatchResult{}, fmt.Errorf("insert match %s: %w", result.ID, err)
	}
	return result, nil
}

// GetByPlayer returns sql.ErrNoRows when the player has no recorded matches.
func (s *Service) GetByPlayer(player_name string) ([]MatchResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	rows, err := s.db.Query(s.rebind("SELECT "+columns+" FROM "+s.table_name+
		" WHERE player1 = ? OR player2 = ? OR player3 = ? OR player4 = ? ORDER BY created_at DESC"),
		player_name,
		player_name,
		player_name,
		player_name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results, err := scanAll(rows)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, sql.ErrNoRows
	}
	return results, nil
}

func scanAll(rows *sql.Rows) ([]MatchResult, error) {
	results := []MatchResult{}
	for rows.Next() {
		var result MatchResult
		if err := rows.Scan(result.scanTargets()...); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
