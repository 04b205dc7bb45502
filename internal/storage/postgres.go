package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/xaenox/shop-assistant/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

// PostgresStorage implements every collaborator contract on top of
// postgres.
type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config DatabaseConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	storage := &PostgresStorage{db: db}
	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}
	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}
	if _, err := s.db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	query := `
		SELECT user_id, name, communication_style, sustainability, interests, interactions
		FROM profiles
		WHERE user_id = $1`

	profile := &models.UserProfile{}
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Name,
		&profile.CommunicationStyle,
		&profile.Sustainability,
		pq.Array(&profile.Interests),
		&profile.Interactions,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying profile: %w", err)
	}
	return profile, nil
}

func (s *PostgresStorage) Update(ctx context.Context, profile *models.UserProfile) error {
	query := `
		INSERT INTO profiles (user_id, name, communication_style, sustainability, interests, interactions, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			communication_style = EXCLUDED.communication_style,
			sustainability = EXCLUDED.sustainability,
			interests = EXCLUDED.interests,
			interactions = EXCLUDED.interactions,
			updated_at = NOW()`

	_, err := s.db.ExecContext(ctx, query,
		profile.UserID,
		profile.Name,
		profile.CommunicationStyle,
		profile.Sustainability,
		pq.Array(profile.Interests),
		profile.Interactions,
	)
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	return nil
}

func (s *PostgresStorage) TrackInteraction(ctx context.Context, userID, interactionType, data string) error {
	query := `
		INSERT INTO interactions (user_id, type, data)
		VALUES ($1, $2, $3)`

	if _, err := s.db.ExecContext(ctx, query, userID, interactionType, data); err != nil {
		return fmt.Errorf("error tracking interaction: %w", err)
	}

	counter := `
		UPDATE profiles SET interactions = interactions + 1, updated_at = NOW()
		WHERE user_id = $1`
	if _, err := s.db.ExecContext(ctx, counter, userID); err != nil {
		return fmt.Errorf("error incrementing interaction counter: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Lookup(ctx context.Context, orderID string) (*models.OrderStatus, error) {
	query := `
		SELECT order_id, status, location, estimated_delivery
		FROM orders
		WHERE LOWER(order_id) = LOWER($1)`

	status := &models.OrderStatus{}
	err := s.db.QueryRowContext(ctx, query, orderID).Scan(
		&status.OrderID,
		&status.Status,
		&status.Location,
		&status.EstimatedDelivery,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying order: %w", err)
	}

	updates := `
		SELECT created_at, note
		FROM order_updates
		WHERE order_id = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, updates, status.OrderID)
	if err != nil {
		return nil, fmt.Errorf("error querying order updates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var update models.OrderUpdate
		if err := rows.Scan(&update.Timestamp, &update.Note); err != nil {
			return nil, fmt.Errorf("error scanning order update: %w", err)
		}
		status.Updates = append(status.Updates, update)
	}
	return status, rows.Err()
}

func (s *PostgresStorage) Search(ctx context.Context, query string) ([]models.Article, error) {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return nil, nil
	}

	stmt := `
		SELECT title, content, keywords,
			cardinality(ARRAY(SELECT unnest(keywords) INTERSECT SELECT unnest($1::text[]))) AS hits
		FROM articles
		WHERE keywords && $1::text[]
		ORDER BY hits DESC, id`

	rows, err := s.db.QueryContext(ctx, stmt, pq.Array(words))
	if err != nil {
		return nil, fmt.Errorf("error searching articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		var article models.Article
		var hits int
		if err := rows.Scan(&article.Title, &article.Content, pq.Array(&article.Keywords), &hits); err != nil {
			return nil, fmt.Errorf("error scanning article: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func (s *PostgresStorage) Log(ctx context.Context, userID, message string, category models.Category) error {
	query := `
		INSERT INTO interaction_log (user_id, message, category)
		VALUES ($1, $2, $3)`

	if _, err := s.db.ExecContext(ctx, query, userID, message, string(category)); err != nil {
		return fmt.Errorf("error logging interaction: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Record(ctx context.Context, sessionID string, rating int, comment string) error {
	query := `
		INSERT INTO feedback (session_id, rating, comment)
		VALUES ($1, $2, $3)`

	if _, err := s.db.ExecContext(ctx, query, sessionID, rating, comment); err != nil {
		return fmt.Errorf("error recording feedback: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
