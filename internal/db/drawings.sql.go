package db

import (
	"context"
)

const createDrawing = `-- name: CreateDrawing :one
INSERT INTO drawings (id, owner_id, name, width, height, script, svg)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, owner_id, name, width, height, script, svg, created_at, updated_at
`

type CreateDrawingParams struct {
	ID      string
	OwnerID string
	Name    string
	Width   float64
	Height  float64
	Script  []byte
	Svg     string
}

func (q *Queries) CreateDrawing(ctx context.Context, arg CreateDrawingParams) (Drawing, error) {
	row := q.db.QueryRow(ctx, createDrawing,
		arg.ID,
		arg.OwnerID,
		arg.Name,
		arg.Width,
		arg.Height,
		arg.Script,
		arg.Svg,
	)
	var i Drawing
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.Name,
		&i.Width,
		&i.Height,
		&i.Script,
		&i.Svg,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getDrawing = `-- name: GetDrawing :one
SELECT id, owner_id, name, width, height, script, svg, created_at, updated_at FROM drawings
WHERE id = $1
`

func (q *Queries) GetDrawing(ctx context.Context, id string) (Drawing, error) {
	row := q.db.QueryRow(ctx, getDrawing, id)
	var i Drawing
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.Name,
		&i.Width,
		&i.Height,
		&i.Script,
		&i.Svg,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listDrawingsForOwner = `-- name: ListDrawingsForOwner :many
SELECT id, owner_id, name, width, height, created_at, updated_at FROM drawings
WHERE owner_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListDrawingsForOwner(ctx context.Context, ownerID string) ([]DrawingSummary, error) {
	rows, err := q.db.Query(ctx, listDrawingsForOwner, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DrawingSummary
	for rows.Next() {
		var i DrawingSummary
		if err := rows.Scan(
			&i.ID,
			&i.OwnerID,
			&i.Name,
			&i.Width,
			&i.Height,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteDrawing = `-- name: DeleteDrawing :exec
DELETE FROM drawings
WHERE id = $1
`

func (q *Queries) DeleteDrawing(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, deleteDrawing, id)
	return err
}
