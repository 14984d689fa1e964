package database

import (
	"database/sql"
	"fmt"
	"time"

	"betatrack/models"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// New creates a new database connection
func New(params ConnectionParams) (*DB, error) {
	// Create PostgreSQL connection string
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Check connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS beta_results (
			id SERIAL PRIMARY KEY,
			asset_symbol TEXT NOT NULL,
			index_symbol TEXT NOT NULL,
			channel TEXT NOT NULL,
			beta DOUBLE PRECISION NOT NULL,
			intercept DOUBLE PRECISION NOT NULL,
			std_error DOUBLE PRECISION NOT NULL,
			ci_lower DOUBLE PRECISION NOT NULL,
			ci_upper DOUBLE PRECISION NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			n_obs INT NOT NULL,
			df INT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)

	return err
}

// SaveAnalysis stores every successful channel result of one pipeline run.
// Failed channels carry no coefficients and are not persisted.
func (db *DB) SaveAnalysis(analysis *models.Analysis) error {
	createdAt := time.Now().UTC()

	for _, ch := range analysis.Channels {
		if ch.Err != nil {
			continue
		}
		r := ch.Result
		_, err := db.Exec(`
			INSERT INTO beta_results
				(asset_symbol, index_symbol, channel, beta, intercept, std_error,
				 ci_lower, ci_upper, confidence, n_obs, df, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`,
			analysis.AssetSymbol, analysis.IndexSymbol, r.Channel,
			r.Beta, r.Intercept, r.StdError,
			r.CILower, r.CIUpper, r.ConfidenceLevel,
			r.NObs, r.DF, createdAt,
		)
		if err != nil {
			return fmt.Errorf("inserting result for channel %s: %w", ch.Channel, err)
		}
	}

	return nil
}

// LatestResults returns the most recently stored run for a symbol pair
func (db *DB) LatestResults(assetSymbol, indexSymbol string) ([]models.RegressionResult, error) {
	rows, err := db.Query(`
		SELECT channel, beta, intercept, std_error, ci_lower, ci_upper, confidence, n_obs, df
		FROM beta_results
		WHERE asset_symbol = $1 AND index_symbol = $2
		  AND created_at = (
			SELECT MAX(created_at) FROM beta_results
			WHERE asset_symbol = $1 AND index_symbol = $2
		  )
		ORDER BY channel
	`, assetSymbol, indexSymbol)
	if err != nil {
		return nil, fmt.Errorf("querying latest results: %w", err)
	}
	defer rows.Close()

	var results []models.RegressionResult
	for rows.Next() {
		var r models.RegressionResult
		if err := rows.Scan(
			&r.Channel, &r.Beta, &r.Intercept, &r.StdError,
			&r.CILower, &r.CIUpper, &r.ConfidenceLevel, &r.NObs, &r.DF,
		); err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}
