package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/tripdocs/constants"
	"github.com/joseph-ayodele/tripdocs/internal/common"
	"github.com/joseph-ayodele/tripdocs/internal/entity"
)

const reservationsTable = "reservations"

var (
	// ReservationsColumns holds the columns for the "reservations" table.
	ReservationsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36},
		{Name: "file_name", Type: field.TypeString},
		{Name: "type", Type: field.TypeString, Size: 16},
		{Name: "scope", Type: field.TypeString},
		{Name: "source", Type: field.TypeString},
		{Name: "quality", Type: field.TypeString},
		{Name: "status", Type: field.TypeString},
		{Name: "display_name", Type: field.TypeString},
		{Name: "provider", Type: field.TypeString},
		{Name: "reservation_code", Type: field.TypeString},
		{Name: "traveler_name", Type: field.TypeString},
		{Name: "start_date", Type: field.TypeString},
		{Name: "start_time", Type: field.TypeString},
		{Name: "end_date", Type: field.TypeString},
		{Name: "end_time", Type: field.TypeString},
		{Name: "origin", Type: field.TypeString},
		{Name: "destination", Type: field.TypeString},
		{Name: "total_amount", Type: field.TypeFloat64, Nullable: true},
		{Name: "currency", Type: field.TypeString},
		{Name: "payment_method", Type: field.TypeString},
		{Name: "points_used", Type: field.TypeInt64, Nullable: true},
		{Name: "confidence", Type: field.TypeFloat64},
		{Name: "record_json", Type: field.TypeString, Size: 2147483647},
		{Name: "saved_at", Type: field.TypeString},
	}
	// ReservationsTable holds the schema information for the "reservations" table.
	ReservationsTable = &schema.Table{
		Name:       reservationsTable,
		Columns:    ReservationsColumns,
		PrimaryKey: []*schema.Column{ReservationsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "reservations_type_start_date",
				Unique:  false,
				Columns: []*schema.Column{ReservationsColumns[2], ReservationsColumns[11]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{ReservationsTable}
)

var reservationColumns = func() []string {
	out := make([]string, len(ReservationsColumns))
	for i, c := range ReservationsColumns {
		out[i] = c.Name
	}
	return out
}()

// SavedReservation is one confirmed record as stored.
type SavedReservation struct {
	ID       uuid.UUID
	FileName string
	SavedAt  time.Time
	Record   *entity.Record
}

// ListFilter narrows List; zero values mean no filter. Dates are YYYY-MM-DD on start_date.
type ListFilter struct {
	Type  constants.ReservationType
	From  string
	To    string
	Limit int
}

// ReservationStore persists confirmed records.
type ReservationStore interface {
	Save(ctx context.Context, itemID uuid.UUID, fileName string, rec *entity.Record) error
	Get(ctx context.Context, id uuid.UUID) (*SavedReservation, error)
	List(ctx context.Context, f ListFilter) ([]SavedReservation, error)
}

type reservationStore struct {
	db      *sql.DB
	dialect string
	now     func() time.Time
	logger  *slog.Logger
}

func NewReservationStore(db *DB, logger *slog.Logger) ReservationStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &reservationStore{db: db.SQL, dialect: db.Dialect, now: time.Now, logger: logger}
}

// Migrate creates or updates the schema through ent's migration engine.
func Migrate(ctx context.Context, db *DB) error {
	m, err := schema.NewMigrate(entsql.OpenDB(db.Dialect, db.SQL))
	if err != nil {
		return common.NewAppError("MIGRATION_ERROR", "prepare migration", errors.Join(common.ErrDatabase, err))
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return common.NewAppError("MIGRATION_ERROR", "create reservations schema", errors.Join(common.ErrDatabase, err))
	}
	return nil
}

// Save upserts the record keyed by the queue item id, so confirming twice
// overwrites instead of duplicating.
func (s *reservationStore) Save(ctx context.Context, itemID uuid.UUID, fileName string, rec *entity.Record) error {
	if rec == nil || !rec.Type.Valid() {
		return common.NewAppError("VALIDATION_ERROR", "record with a valid type is required", common.ErrInvalidInput)
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	values := []any{
		itemID.String(), fileName, string(rec.Type), string(rec.Scope), string(rec.Source), string(rec.Quality), rec.Status,
		rec.DisplayName, rec.Provider, rec.ReservationCode, rec.TravelerName,
		rec.StartDate, rec.StartTime, rec.EndDate, rec.EndTime, rec.Origin, rec.Destination,
		nullFloat(rec.TotalAmount), rec.Currency, rec.PaymentMethod, nullInt(rec.PointsUsed),
		rec.Confidence, string(raw), s.now().UTC().Format(time.RFC3339Nano),
	}
	ins := entsql.Dialect(s.dialect).Insert(reservationsTable).
		Columns(reservationColumns...).
		Values(values...).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		)
	q, args := ins.Query()
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		s.logger.Error("repository.reservation.save_failed", "item_id", itemID, "err", err)
		return common.NewAppError("DB_ERROR", "save reservation", errors.Join(common.ErrDatabase, err))
	}
	s.logger.Info("repository.reservation.saved",
		"item_id", itemID,
		"type", rec.Type,
		"file_name", fileName,
	)
	return nil
}

func (s *reservationStore) Get(ctx context.Context, id uuid.UUID) (*SavedReservation, error) {
	sel := entsql.Dialect(s.dialect).
		Select("id", "file_name", "record_json", "saved_at").
		From(entsql.Table(reservationsTable)).
		Where(entsql.EQ("id", id.String()))
	q, args := sel.Query()
	row := s.db.QueryRowContext(ctx, q, args...)
	out, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewAppError("NOT_FOUND", "reservation "+id.String(), common.ErrNotFound)
	}
	if err != nil {
		s.logger.Error("repository.reservation.get_failed", "id", id, "err", err)
		return nil, err
	}
	return out, nil
}

func (s *reservationStore) List(ctx context.Context, f ListFilter) ([]SavedReservation, error) {
	sel := entsql.Dialect(s.dialect).
		Select("id", "file_name", "record_json", "saved_at").
		From(entsql.Table(reservationsTable))
	var preds []*entsql.Predicate
	if f.Type != "" {
		preds = append(preds, entsql.EQ("type", string(f.Type)))
	}
	if f.From != "" {
		preds = append(preds, entsql.GTE("start_date", f.From))
	}
	if f.To != "" {
		preds = append(preds, entsql.LTE("start_date", f.To))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy("start_date", "saved_at")
	if f.Limit > 0 {
		sel.Limit(f.Limit)
	}
	q, args := sel.Query()
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		s.logger.Error("repository.reservation.list_failed", "err", err)
		return nil, common.NewAppError("DB_ERROR", "list reservations", errors.Join(common.ErrDatabase, err))
	}
	defer func() { _ = rows.Close() }()

	var out []SavedReservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*SavedReservation, error) {
	var (
		id, fileName, raw, savedAt string
	)
	if err := row.Scan(&id, &fileName, &raw, &savedAt); err != nil {
		return nil, err
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse id %q: %w", id, err)
	}
	var rec entity.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", id, err)
	}
	ts, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return nil, fmt.Errorf("parse saved_at %q: %w", savedAt, err)
	}
	return &SavedReservation{ID: uid, FileName: fileName, SavedAt: ts, Record: &rec}, nil
}

func nullFloat(p *float64) sql.NullFloat64 {
	if !entity.IsFinite(p) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func nullInt(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}
