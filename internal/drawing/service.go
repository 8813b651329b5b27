package drawing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/monet-draw/monet/internal/canvas"
	"github.com/monet-draw/monet/internal/db"
	"github.com/monet-draw/monet/internal/script"
	"github.com/monet-draw/monet/internal/typeid"
)

var (
	ErrNotFound  = errors.New("drawing not found")
	ErrForbidden = errors.New("forbidden")
)

// Store is the part of db.Queries the service needs.
type Store interface {
	CreateDrawing(ctx context.Context, arg db.CreateDrawingParams) (db.Drawing, error)
	GetDrawing(ctx context.Context, id string) (db.Drawing, error)
	ListDrawingsForOwner(ctx context.Context, ownerID string) ([]db.DrawingSummary, error)
	DeleteDrawing(ctx context.Context, id string) error
}

type Service struct {
	store       Store
	maxCommands int
	renderOpts  []canvas.Option
}

// NewService returns a service rendering with opts and refusing scripts
// longer than maxCommands (0 means no limit).
func NewService(store Store, maxCommands int, opts ...canvas.Option) *Service {
	return &Service{store: store, maxCommands: maxCommands, renderOpts: opts}
}

type Drawing struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	OwnerID   string  `json:"ownerId"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// Create renders doc and stores both the script and the SVG. Scripts that
// fail to render are not stored.
func (s *Service) Create(ctx context.Context, ownerID string, doc *script.Document) (*Drawing, error) {
	if err := doc.Validate(s.maxCommands); err != nil {
		return nil, err
	}

	var svg bytes.Buffer
	if err := script.Render(&svg, doc, s.renderOpts...); err != nil {
		return nil, fmt.Errorf("render drawing: %w", err)
	}

	scriptJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal script: %w", err)
	}

	name := doc.Name
	if name == "" {
		name = "Untitled"
	}

	dbDrawing, err := s.store.CreateDrawing(ctx, db.CreateDrawingParams{
		ID:      typeid.NewDrawingID(),
		OwnerID: ownerID,
		Name:    name,
		Width:   doc.Width,
		Height:  doc.Height,
		Script:  scriptJSON,
		Svg:     svg.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("create drawing: %w", err)
	}

	return toDrawing(db.DrawingSummary{
		ID:        dbDrawing.ID,
		OwnerID:   dbDrawing.OwnerID,
		Name:      dbDrawing.Name,
		Width:     dbDrawing.Width,
		Height:    dbDrawing.Height,
		CreatedAt: dbDrawing.CreatedAt,
		UpdatedAt: dbDrawing.UpdatedAt,
	}), nil
}

func (s *Service) List(ctx context.Context, ownerID string) ([]Drawing, error) {
	rows, err := s.store.ListDrawingsForOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}

	drawings := make([]Drawing, len(rows))
	for i, row := range rows {
		drawings[i] = *toDrawing(row)
	}
	return drawings, nil
}

// SVG returns the rendered document of a drawing owned by ownerID.
func (s *Service) SVG(ctx context.Context, drawingID, ownerID string) (string, error) {
	d, err := s.owned(ctx, drawingID, ownerID)
	if err != nil {
		return "", err
	}
	return d.Svg, nil
}

// Script returns the stored script of a drawing owned by ownerID.
func (s *Service) Script(ctx context.Context, drawingID, ownerID string) (*script.Document, error) {
	d, err := s.owned(ctx, drawingID, ownerID)
	if err != nil {
		return nil, err
	}
	doc, err := script.ParseBytes(d.Script)
	if err != nil {
		return nil, fmt.Errorf("decode stored script: %w", err)
	}
	return doc, nil
}

func (s *Service) Delete(ctx context.Context, drawingID, ownerID string) error {
	if _, err := s.owned(ctx, drawingID, ownerID); err != nil {
		return err
	}
	if err := s.store.DeleteDrawing(ctx, drawingID); err != nil {
		return fmt.Errorf("delete drawing: %w", err)
	}
	return nil
}

func (s *Service) owned(ctx context.Context, drawingID, ownerID string) (db.Drawing, error) {
	d, err := s.store.GetDrawing(ctx, drawingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.Drawing{}, ErrNotFound
		}
		return db.Drawing{}, fmt.Errorf("get drawing: %w", err)
	}
	if d.OwnerID != ownerID {
		return db.Drawing{}, ErrForbidden
	}
	return d, nil
}

func toDrawing(d db.DrawingSummary) *Drawing {
	return &Drawing{
		ID:        d.ID,
		Name:      d.Name,
		OwnerID:   d.OwnerID,
		Width:     d.Width,
		Height:    d.Height,
		CreatedAt: d.CreatedAt.Time.UTC().Format(time.RFC3339),
		UpdatedAt: d.UpdatedAt.Time.UTC().Format(time.RFC3339),
	}
}
