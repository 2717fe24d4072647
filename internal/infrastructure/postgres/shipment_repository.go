package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/AlmacenObra-api/internal/domain"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo envíos sobre PostgreSQL (usable con pool o tx).
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// GetByID devuelve el envío con sus líneas, o nil si no existe.
func (r *ShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	return r.get(id, false)
}

// GetForUpdate igual que GetByID pero bloquea la fila (SELECT FOR UPDATE) dentro
// de la transacción en curso, para que el chequeo de duplicado y la transición
// de estado del GRN sean atómicos.
func (r *ShipmentRepo) GetForUpdate(id string) (*entity.Shipment, error) {
	return r.get(id, true)
}

func (r *ShipmentRepo) get(id string, forUpdate bool) (*entity.Shipment, error) {
	query := `
		SELECT id, date, status, received_at, created_at
		FROM shipments WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var s entity.Shipment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Date, &s.Status, &s.ReceivedAt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("get shipment", err)
	}
	lines, err := r.linesOf(s.ID)
	if err != nil {
		return nil, err
	}
	s.Lines = lines
	return &s, nil
}

func (r *ShipmentRepo) linesOf(shipmentID string) ([]entity.ShipmentLine, error) {
	query := `
		SELECT item_code, description, quantity, unit
		FROM shipment_lines WHERE shipment_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, shipmentID)
	if err != nil {
		return nil, storageError("list shipment lines", err)
	}
	defer rows.Close()
	var lines []entity.ShipmentLine
	for rows.Next() {
		var l entity.ShipmentLine
		if err := rows.Scan(&l.ItemCode, &l.Description, &l.Quantity, &l.Unit); err != nil {
			return nil, storageError("scan shipment line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("read shipment lines", err)
	}
	return lines, nil
}

// List devuelve todos los envíos con sus líneas, del más reciente al más antiguo.
func (r *ShipmentRepo) List() ([]*entity.Shipment, error) {
	query := `
		SELECT id, date, status, received_at, created_at
		FROM shipments ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, storageError("list shipments", err)
	}
	defer rows.Close()
	shipments := make([]*entity.Shipment, 0)
	for rows.Next() {
		var s entity.Shipment
		if err := rows.Scan(&s.ID, &s.Date, &s.Status, &s.ReceivedAt, &s.CreatedAt); err != nil {
			return nil, storageError("scan shipment", err)
		}
		shipments = append(shipments, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("read shipments", err)
	}
	for _, s := range shipments {
		lines, err := r.linesOf(s.ID)
		if err != nil {
			return nil, err
		}
		s.Lines = lines
	}
	return shipments, nil
}

// Create inserta el envío y sus líneas. Llamar dentro del TxRunner para que el
// alta sea atómica.
func (r *ShipmentRepo) Create(s *entity.Shipment) error {
	query := `
		INSERT INTO shipments (id, date, status, received_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, s.ID, s.Date, s.Status, s.ReceivedAt, s.CreatedAt)
	if err != nil {
		return storageError("create shipment", err)
	}
	lineQuery := `
		INSERT INTO shipment_lines (shipment_id, position, item_code, description, quantity, unit)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i, l := range s.Lines {
		_, err := r.q.Exec(context.Background(), lineQuery,
			s.ID, i, l.ItemCode, l.Description, l.Quantity, l.Unit)
		if err != nil {
			return storageError("create shipment line", err)
		}
	}
	return nil
}

// MarkReceived transiciona pending -> received. Cero filas afectadas significa
// que el envío ya no estaba pendiente.
func (r *ShipmentRepo) MarkReceived(id string, receivedAt time.Time) error {
	query := `
		UPDATE shipments SET status = $2, received_at = $3
		WHERE id = $1 AND status = $4`
	tag, err := r.q.Exec(context.Background(), query,
		id, entity.ShipmentStatusReceived, receivedAt, entity.ShipmentStatusPending)
	if err != nil {
		return storageError("mark shipment received", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyReceived
	}
	return nil
}
