package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fundsight/Fund-Monitor-Backend/internal/model"
)

// ProjectRepository provides data access methods for the project table.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new ProjectRepository with the provided database connection.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Lookup retrieves metadata for the given project IDs, keyed by project ID.
// Unknown IDs are simply absent from the result map; callers treat missing
// metadata as empty. If projectIDs is empty, returns an empty map.
func (s *ProjectRepository) Lookup(ctx context.Context, projectIDs []string) (map[string]model.ProjectMeta, error) {
	meta := make(map[string]model.ProjectMeta)
	if len(projectIDs) == 0 {
		return meta, nil
	}

	placeholders := make([]string, len(projectIDs))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT id, name, COALESCE(stack, ''), COALESCE(tag, ''), COALESCE(sub_tag, ''), COALESCE(coingecko_id, '')
		FROM project
		WHERE id IN (` + strings.Join(placeholders, ",") + `)
	`

	args := make([]any, len(projectIDs))
	for i, id := range projectIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query project table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m model.ProjectMeta

		err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Stack,
			&m.Tag,
			&m.SubTag,
			&m.CoingeckoID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project table results: %w", err)
		}

		meta[m.ID] = m
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project table: %w", err)
	}

	return meta, nil
}
