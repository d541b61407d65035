package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Thiht/transactor"
	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/benjamonnguyen/cadence"
)

const (
	SelectAllTemplates = "SELECT id, name, repeat, created_at, updated_at FROM templates"
	SelectAllBlocks    = "SELECT template_id, position, label, duration_ms, type FROM template_blocks"
)

type templateEntity struct {
	ID        string
	Name      string
	Repeat    int
	CreatedAt int64
	UpdatedAt int64
}

type blockEntity struct {
	TemplateID string
	Position   int
	Label      string
	DurationMS int64
	Type       string
}

type templateRepo struct {
	tx       transactor.Transactor
	dbGetter txStdLib.DBGetter
	l        *log.Logger
}

func NewTemplateRepo(tx transactor.Transactor, dbGetter txStdLib.DBGetter, logger *log.Logger) *templateRepo {
	return &templateRepo{
		tx:       tx,
		dbGetter: dbGetter,
		l:        logger,
	}
}

// SaveTemplate inserts tpl, or replaces it and its blocks when tpl.ID already exists.
// An empty ID is assigned a new uuid.
func (r *templateRepo) SaveTemplate(ctx context.Context, tpl cadence.SessionTemplate) (cadence.ExistingTemplateRecord, error) {
	if err := tpl.Validate(); err != nil {
		return cadence.ExistingTemplateRecord{}, err
	}
	if tpl.ID == "" {
		tpl.ID = cadence.TemplateID(uuid.NewString())
	}

	var saved cadence.ExistingTemplateRecord
	err := r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := r.getTemplateRow(ctx, tpl.ID)
		switch {
		case errors.Is(err, ErrNotFound):
			saved = cadence.ExistingTemplateRecord{
				ExistingRecord: cadence.NewExistingRecord(tpl.ID),
				Template:       tpl,
			}
			if err := r.insertTemplate(ctx, mapToTemplateEntity(saved)); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			saved = existing
			saved.Template = tpl
			saved.Touch()
			if err := r.updateTemplate(ctx, mapToTemplateEntity(saved)); err != nil {
				return err
			}
			if err := r.deleteBlocks(ctx, tpl.ID); err != nil {
				return err
			}
		}

		for _, b := range mapToBlockEntities(tpl) {
			if err := r.insertBlock(ctx, b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return cadence.ExistingTemplateRecord{}, err
	}

	return saved, nil
}

func (r *templateRepo) GetTemplate(ctx context.Context, id cadence.TemplateID) (cadence.ExistingTemplateRecord, error) {
	rec, err := r.getTemplateRow(ctx, id)
	if err != nil {
		return cadence.ExistingTemplateRecord{}, err
	}
	blocks, err := r.getBlocks(ctx, id)
	if err != nil {
		return cadence.ExistingTemplateRecord{}, err
	}
	rec.Template.Blocks = blocks
	return rec, nil
}

// ListTemplates returns every template, oldest first.
func (r *templateRepo) ListTemplates(ctx context.Context) ([]cadence.ExistingTemplateRecord, error) {
	db := r.dbGetter(ctx)
	query := SelectAllTemplates + " ORDER BY created_at, rowid"
	r.l.Debug("listing templates", "query", query)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	var templates []cadence.ExistingTemplateRecord
	for rows.Next() {
		rec, err := extractTemplate(rows)
		if err != nil {
			rows.Close() //nolint
			return nil, err
		}
		templates = append(templates, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close() //nolint
		return nil, err
	}
	// release the connection before querying blocks
	rows.Close() //nolint

	for i := range templates {
		blocks, err := r.getBlocks(ctx, templates[i].ID)
		if err != nil {
			return nil, err
		}
		templates[i].Template.Blocks = blocks
	}
	return templates, nil
}

func (r *templateRepo) DeleteTemplate(ctx context.Context, id cadence.TemplateID) (cadence.ExistingTemplateRecord, error) {
	var existing cadence.ExistingTemplateRecord
	err := r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		existing, err = r.GetTemplate(ctx, id)
		if err != nil {
			return err
		}
		if err := r.deleteBlocks(ctx, id); err != nil {
			return err
		}

		query := "DELETE FROM templates WHERE id = ?"
		r.l.Debug("deleting template", "query", query, "id", id)
		_, err = r.dbGetter(ctx).ExecContext(ctx, query, id)
		return err
	})
	if err != nil {
		return cadence.ExistingTemplateRecord{}, err
	}

	return existing, nil
}

func (r *templateRepo) getTemplateRow(ctx context.Context, id cadence.TemplateID) (cadence.ExistingTemplateRecord, error) {
	if id == "" {
		return cadence.ExistingTemplateRecord{}, fmt.Errorf("provide id")
	}

	row := r.dbGetter(ctx).QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE id=?", SelectAllTemplates), id,
	)
	return extractTemplate(row)
}

func (r *templateRepo) getBlocks(ctx context.Context, id cadence.TemplateID) ([]cadence.SessionBlock, error) {
	query := fmt.Sprintf("%s WHERE template_id=? ORDER BY position", SelectAllBlocks)
	rows, err := r.dbGetter(ctx).QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	var blocks []cadence.SessionBlock
	for rows.Next() {
		var e blockEntity
		if err := rows.Scan(&e.TemplateID, &e.Position, &e.Label, &e.DurationMS, &e.Type); err != nil {
			return nil, err
		}
		blocks = append(blocks, mapToSessionBlock(e))
	}
	return blocks, rows.Err()
}

func (r *templateRepo) insertTemplate(ctx context.Context, e templateEntity) error {
	args := []any{
		e.ID,
		e.Name,
		e.Repeat,
		e.CreatedAt,
		e.UpdatedAt,
	}
	query := "INSERT INTO templates (id, name, repeat, created_at, updated_at) VALUES " + generateParameters(len(args))
	r.l.Debug("creating template", "query", query, "args", args)
	_, err := r.dbGetter(ctx).ExecContext(ctx, query, args...)
	return err
}

func (r *templateRepo) updateTemplate(ctx context.Context, e templateEntity) error {
	query := "UPDATE templates SET name = ?, repeat = ?, updated_at = ? WHERE id = ?"
	args := []any{
		e.Name,
		e.Repeat,
		e.UpdatedAt,
		e.ID,
	}
	r.l.Debug("updating template", "query", query, "args", args)
	_, err := r.dbGetter(ctx).ExecContext(ctx, query, args...)
	return err
}

func (r *templateRepo) insertBlock(ctx context.Context, e blockEntity) error {
	args := []any{
		e.TemplateID,
		e.Position,
		e.Label,
		e.DurationMS,
		e.Type,
	}
	query := "INSERT INTO template_blocks (template_id, position, label, duration_ms, type) VALUES " + generateParameters(len(args))
	_, err := r.dbGetter(ctx).ExecContext(ctx, query, args...)
	return err
}

func (r *templateRepo) deleteBlocks(ctx context.Context, id cadence.TemplateID) error {
	query := "DELETE FROM template_blocks WHERE template_id = ?"
	r.l.Debug("deleting template blocks", "query", query, "template_id", id)
	_, err := r.dbGetter(ctx).ExecContext(ctx, query, id)
	return err
}

func extractTemplate(s Scannable) (cadence.ExistingTemplateRecord, error) {
	var e templateEntity
	if err := s.Scan(&e.ID, &e.Name, &e.Repeat, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cadence.ExistingTemplateRecord{}, ErrNotFound
		}
		return cadence.ExistingTemplateRecord{}, err
	}

	return mapToExistingTemplateRecord(e), nil
}

func mapToTemplateEntity(rec cadence.ExistingTemplateRecord) templateEntity {
	return templateEntity{
		ID:        string(rec.ID),
		Name:      rec.Template.Name,
		Repeat:    rec.Template.Repeat,
		CreatedAt: rec.CreatedAt.Unix(),
		UpdatedAt: rec.UpdatedAt.Unix(),
	}
}

func mapToBlockEntities(tpl cadence.SessionTemplate) []blockEntity {
	entities := make([]blockEntity, 0, len(tpl.Blocks))
	for i, b := range tpl.Blocks {
		entities = append(entities, blockEntity{
			TemplateID: string(tpl.ID),
			Position:   i,
			Label:      b.Label,
			DurationMS: b.Duration().Milliseconds(),
			Type:       string(b.Type),
		})
	}
	return entities
}

func mapToExistingTemplateRecord(e templateEntity) cadence.ExistingTemplateRecord {
	return cadence.ExistingTemplateRecord{
		ExistingRecord: cadence.ExistingRecord[cadence.TemplateID]{
			ID:        cadence.TemplateID(e.ID),
			CreatedAt: time.Unix(e.CreatedAt, 0),
			UpdatedAt: time.Unix(e.UpdatedAt, 0),
		},
		Template: cadence.SessionTemplate{
			ID:     cadence.TemplateID(e.ID),
			Name:   e.Name,
			Repeat: e.Repeat,
		},
	}
}

func mapToSessionBlock(e blockEntity) cadence.SessionBlock {
	return cadence.SessionBlock{
		Label:           e.Label,
		DurationMinutes: float64(e.DurationMS) / float64(time.Minute/time.Millisecond),
		Type:            cadence.BlockType(e.Type),
	}
}
