// Package memory implementa los puertos de persistencia en memoria de proceso.
// Es el medio de los tests y del modo de desarrollo: mismas garantías que el
// adaptador PostgreSQL (orden de append, visibilidad de lote completo,
// exclusión mutua de las mutaciones) sin servidor de por medio.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/AlmacenObra-api/internal/application/stock"
	"github.com/jhoicas/AlmacenObra-api/internal/domain"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/repository"
)

var (
	_ stock.TxRunner                = (*Store)(nil)
	_ repository.LedgerRepository   = (*Store)(nil)
	_ repository.ShipmentRepository = (*Store)(nil)
)

// Store guarda el ledger y los envíos bajo un RWMutex. Las escrituras pasan por
// Run o por los métodos directos (lock exclusivo); las lecturas sueltas toman el
// RLock y ven siempre el último estado confirmado, nunca un lote a medias.
// Los asientos son inmutables: ambos lados comparten los punteros sin riesgo.
type Store struct {
	mu        sync.RWMutex
	entries   []*entity.LedgerEntry // más reciente primero
	shipments []*entity.Shipment    // más reciente primero
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{}
}

// Run ejecuta fn bajo el lock exclusivo del ledger con repos que acumulan los
// cambios en un estado provisional; si fn retorna nil todo se publica de una vez,
// si retorna error nada provisional queda visible.
func (s *Store) Run(_ context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	shipmentRepo repository.ShipmentRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txState{store: s, received: make(map[string]time.Time)}
	if err := fn(&txLedgerRepo{tx: tx}, &txShipmentRepo{tx: tx}); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// ── Lecturas sueltas y escrituras directas (fuera de Run) ────────────────────

// AppendBatch publica el lote completo de una vez, el más nuevo delante, como el
// archivo de stock original.
func (s *Store) AppendBatch(entries []*entity.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = prependEntries(s.entries, entries)
	return nil
}

// ListAll devuelve el log confirmado, del más reciente al más antiguo.
func (s *Store) ListAll() ([]*entity.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.LedgerEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// ListByKey filtra el log confirmado por clave de saldo.
func (s *Store) ListByKey(description, unit string) ([]*entity.LedgerEntry, error) {
	key := entity.NewBalanceKey(description, unit)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.LedgerEntry, 0)
	for _, e := range s.entries {
		if e.Key() == key {
			out = append(out, e)
		}
	}
	return out, nil
}

// GetByID devuelve una copia del envío, o nil si no existe.
func (s *Store) GetByID(id string) (*entity.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyShipment(findShipment(s.shipments, id)), nil
}

// GetForUpdate fuera de una transacción equivale a GetByID: el lock exclusivo lo
// aporta Run.
func (s *Store) GetForUpdate(id string) (*entity.Shipment, error) {
	return s.GetByID(id)
}

// List devuelve copias de los envíos, del más reciente al más antiguo.
func (s *Store) List() ([]*entity.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Shipment, 0, len(s.shipments))
	for _, sh := range s.shipments {
		out = append(out, copyShipment(sh))
	}
	return out, nil
}

// Create registra un envío pendiente.
func (s *Store) Create(shipment *entity.Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shipments = append([]*entity.Shipment{copyShipment(shipment)}, s.shipments...)
	return nil
}

// MarkReceived transiciona pending -> received sobre el estado confirmado.
func (s *Store) MarkReceived(id string, receivedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return markReceivedLocked(s.shipments, id, receivedAt)
}

// ── Estado provisional de una transacción ────────────────────────────────────

type txState struct {
	store    *Store
	pending  []*entity.LedgerEntry // lotes provisionales, el más nuevo delante
	created  []*entity.Shipment    // altas provisionales, la más nueva delante
	received map[string]time.Time  // transiciones provisionales
}

// commit publica todo el estado provisional de una vez. Se llama con el lock
// exclusivo tomado por Run.
func (tx *txState) commit() {
	s := tx.store
	s.entries = append(tx.pending, s.entries...)
	s.shipments = append(tx.created, s.shipments...)
	for id, at := range tx.received {
		_ = markReceivedLocked(s.shipments, id, at)
	}
}

// shipmentView busca un envío viendo altas y transiciones provisionales.
func (tx *txState) shipmentView(id string) *entity.Shipment {
	sh := findShipment(tx.created, id)
	if sh == nil {
		sh = findShipment(tx.store.shipments, id)
	}
	view := copyShipment(sh)
	if view == nil {
		return nil
	}
	if at, ok := tx.received[id]; ok {
		view.Status = entity.ShipmentStatusReceived
		view.ReceivedAt = &at
	}
	return view
}

type txLedgerRepo struct {
	tx *txState
}

func (r *txLedgerRepo) AppendBatch(entries []*entity.LedgerEntry) error {
	r.tx.pending = prependEntries(r.tx.pending, entries)
	return nil
}

func (r *txLedgerRepo) ListAll() ([]*entity.LedgerEntry, error) {
	out := make([]*entity.LedgerEntry, 0, len(r.tx.pending)+len(r.tx.store.entries))
	out = append(out, r.tx.pending...)
	out = append(out, r.tx.store.entries...)
	return out, nil
}

func (r *txLedgerRepo) ListByKey(description, unit string) ([]*entity.LedgerEntry, error) {
	key := entity.NewBalanceKey(description, unit)
	all, _ := r.ListAll()
	out := make([]*entity.LedgerEntry, 0)
	for _, e := range all {
		if e.Key() == key {
			out = append(out, e)
		}
	}
	return out, nil
}

type txShipmentRepo struct {
	tx *txState
}

func (r *txShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	return r.tx.shipmentView(id), nil
}

func (r *txShipmentRepo) GetForUpdate(id string) (*entity.Shipment, error) {
	return r.tx.shipmentView(id), nil
}

func (r *txShipmentRepo) List() ([]*entity.Shipment, error) {
	out := make([]*entity.Shipment, 0, len(r.tx.created)+len(r.tx.store.shipments))
	for _, sh := range r.tx.created {
		out = append(out, r.tx.shipmentView(sh.ID))
	}
	for _, sh := range r.tx.store.shipments {
		out = append(out, r.tx.shipmentView(sh.ID))
	}
	return out, nil
}

func (r *txShipmentRepo) Create(shipment *entity.Shipment) error {
	r.tx.created = append([]*entity.Shipment{copyShipment(shipment)}, r.tx.created...)
	return nil
}

func (r *txShipmentRepo) MarkReceived(id string, receivedAt time.Time) error {
	view := r.tx.shipmentView(id)
	if view == nil {
		return domain.ErrNotFound
	}
	if view.Status != entity.ShipmentStatusPending {
		return domain.ErrAlreadyReceived
	}
	r.tx.received[id] = receivedAt
	return nil
}

// ── Auxiliares ───────────────────────────────────────────────────────────────

// prependEntries antepone el lote preservando su orden interno.
func prependEntries(existing, batch []*entity.LedgerEntry) []*entity.LedgerEntry {
	out := make([]*entity.LedgerEntry, 0, len(batch)+len(existing))
	out = append(out, batch...)
	return append(out, existing...)
}

func findShipment(shipments []*entity.Shipment, id string) *entity.Shipment {
	for _, sh := range shipments {
		if sh.ID == id {
			return sh
		}
	}
	return nil
}

func copyShipment(sh *entity.Shipment) *entity.Shipment {
	if sh == nil {
		return nil
	}
	out := *sh
	if sh.ReceivedAt != nil {
		at := *sh.ReceivedAt
		out.ReceivedAt = &at
	}
	out.Lines = make([]entity.ShipmentLine, len(sh.Lines))
	copy(out.Lines, sh.Lines)
	return &out
}

func markReceivedLocked(shipments []*entity.Shipment, id string, receivedAt time.Time) error {
	sh := findShipment(shipments, id)
	if sh == nil {
		return domain.ErrNotFound
	}
	if sh.Status != entity.ShipmentStatusPending {
		return domain.ErrAlreadyReceived
	}
	sh.Status = entity.ShipmentStatusReceived
	sh.ReceivedAt = &receivedAt
	return nil
}
