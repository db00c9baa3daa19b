package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/botplane/botplane/internal/domain"
)

const chatbotCols = `chatbot_id, chatbot_name, chatbot_title, chatbot_description,
	workspace_id, solde_total, is_active, is_deleted, created_at, updated_at`

type ChatbotRepo struct {
	pool *pgxpool.Pool
}

func NewChatbotRepo(pool *pgxpool.Pool) *ChatbotRepo {
	return &ChatbotRepo{pool: pool}
}

func scanChatbot(row pgx.Row) (*domain.Chatbot, error) {
	var c domain.Chatbot
	err := row.Scan(
		&c.ID, &c.ChatbotName, &c.Title, &c.Description, &c.WorkspaceID,
		&c.SoldeTotal, &c.IsActive, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChatbotRepo) Create(ctx context.Context, c *domain.Chatbot) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO chatbots (chatbot_id, chatbot_name, chatbot_title,
		                       chatbot_description, workspace_id, solde_total,
		                       is_active, is_deleted, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.ChatbotName, c.Title, c.Description, c.WorkspaceID, c.SoldeTotal,
		c.IsActive, c.IsDeleted, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("chatbotRepo.Create: %w", err)
	}

	return nil
}

func (r *ChatbotRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Chatbot, error) {
	c, err := scanChatbot(r.pool.QueryRow(ctx,
		`SELECT `+chatbotCols+` FROM chatbots WHERE chatbot_id = $1`, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("chatbotRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("chatbotRepo.GetByID: %w", err)
	}

	return c, nil
}

func (r *ChatbotRepo) List(ctx context.Context) ([]*domain.Chatbot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+chatbotCols+` FROM chatbots ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("chatbotRepo.List: %w", err)
	}
	defer rows.Close()

	var chatbots []*domain.Chatbot
	for rows.Next() {
		c, scanErr := scanChatbot(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("chatbotRepo.List: scan: %w", scanErr)
		}
		chatbots = append(chatbots, c)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("chatbotRepo.List: rows: %w", err)
	}

	return chatbots, nil
}

func (r *ChatbotRepo) Update(ctx context.Context, c *domain.Chatbot) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE chatbots
		 SET chatbot_name = $1, chatbot_title = $2, chatbot_description = $3,
		     workspace_id = $4, solde_total = $5, updated_at = now()
		 WHERE chatbot_id = $6`,
		c.ChatbotName, c.Title, c.Description, c.WorkspaceID, c.SoldeTotal, c.ID,
	)
	if err != nil {
		return fmt.Errorf("chatbotRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("chatbotRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ChatbotRepo) ToggleDeleted(ctx context.Context, id uuid.UUID) (*domain.Chatbot, error) {
	c, err := scanChatbot(r.pool.QueryRow(ctx,
		`UPDATE chatbots SET is_deleted = NOT is_deleted, updated_at = now()
		 WHERE chatbot_id = $1
		 RETURNING `+chatbotCols, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("chatbotRepo.ToggleDeleted: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("chatbotRepo.ToggleDeleted: %w", err)
	}

	return c, nil
}

func (r *ChatbotRepo) ToggleActive(ctx context.Context, id uuid.UUID) (*domain.Chatbot, error) {
	c, err := scanChatbot(r.pool.QueryRow(ctx,
		`UPDATE chatbots SET is_active = NOT is_active, updated_at = now()
		 WHERE chatbot_id = $1
		 RETURNING `+chatbotCols, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("chatbotRepo.ToggleActive: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("chatbotRepo.ToggleActive: %w", err)
	}

	return c, nil
}

func (r *ChatbotRepo) SetWorkspace(ctx context.Context, chatbotID, workspaceID uuid.UUID) (*domain.Chatbot, error) {
	c, err := scanChatbot(r.pool.QueryRow(ctx,
		`UPDATE chatbots SET workspace_id = $1, updated_at = now()
		 WHERE chatbot_id = $2
		 RETURNING `+chatbotCols, workspaceID, chatbotID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("chatbotRepo.SetWorkspace: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("chatbotRepo.SetWorkspace: %w", err)
	}

	return c, nil
}
