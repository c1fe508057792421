// Package lifecycle implements the reversible delete lifecycle shared by
// orders, clients and products: mark deleted, restore, purge after the
// retention window. Expenses are not part of the set; their deletion is
// hard by design.
package lifecycle

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("registro não encontrado")
	ErrAlreadyDeleted = errors.New("registro já está na lixeira")
	ErrNotDeleted     = errors.New("registro não está na lixeira")
)

// DefaultRetentionDays is how long a soft-deleted row survives before a
// purge sweep may remove it.
const DefaultRetentionDays = 30

// Entity names one soft-deleting table. The set is closed: operations take
// one of the package-level descriptors, never a free-form table name.
type Entity struct {
	Label string
	Table string
}

var (
	Ordens   = Entity{Label: "ordem de serviço", Table: "ordem_servico"}
	Clientes = Entity{Label: "cliente", Table: "clientes"}
	Produtos = Entity{Label: "produto", Table: "produtos"}
)

// Deletable returns every entity participating in the soft-delete lifecycle.
func Deletable() []Entity {
	return []Entity{Ordens, Clientes, Produtos}
}

// Manager is the shared engine behind the per-entity delete/restore
// operations. Every state change commits immediately; there is no batching
// across tables.
type Manager struct {
	db *gorm.DB
}

func NewManager(db *gorm.DB) *Manager { return &Manager{db: db} }

// state fetches the deleted_at value for one row, NotFound when absent.
func (m *Manager) state(e Entity, id uint) (sql.NullTime, error) {
	var row struct{ DeletedAt sql.NullTime }
	err := m.db.Table(e.Table).Select("deleted_at").Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sql.NullTime{}, fmt.Errorf("%s %d: %w", e.Label, id, ErrNotFound)
	}
	if err != nil {
		return sql.NullTime{}, fmt.Errorf("consultar %s %d: %w", e.Label, id, err)
	}
	return row.DeletedAt, nil
}

// MarkDeleted moves one row to the trash by stamping deleted_at.
func (m *Manager) MarkDeleted(e Entity, id uint) (string, error) {
	deletedAt, err := m.state(e, id)
	if err != nil {
		return "", err
	}
	if deletedAt.Valid {
		return "", fmt.Errorf("%s %d: %w", e.Label, id, ErrAlreadyDeleted)
	}
	if err := m.db.Table(e.Table).Where("id = ?", id).Update("deleted_at", time.Now()).Error; err != nil {
		return "", fmt.Errorf("excluir %s %d: %w", e.Label, id, err)
	}
	return fmt.Sprintf("%s %d movido(a) para a lixeira", e.Label, id), nil
}

// Restore clears deleted_at, bringing the row back into normal listings.
func (m *Manager) Restore(e Entity, id uint) (string, error) {
	deletedAt, err := m.state(e, id)
	if err != nil {
		return "", err
	}
	if !deletedAt.Valid {
		return "", fmt.Errorf("%s %d: %w", e.Label, id, ErrNotDeleted)
	}
	if err := m.db.Table(e.Table).Where("id = ?", id).Update("deleted_at", nil).Error; err != nil {
		return "", fmt.Errorf("restaurar %s %d: %w", e.Label, id, err)
	}
	return fmt.Sprintf("%s %d restaurado(a)", e.Label, id), nil
}

// CountDeleted reports how many rows of one entity sit in the trash.
func (m *Manager) CountDeleted(e Entity) (int64, error) {
	var n int64
	err := m.db.Table(e.Table).Where("deleted_at IS NOT NULL").Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("contar lixeira de %s: %w", e.Label, err)
	}
	return n, nil
}

// PurgeOlderThan physically removes, from every deletable table, rows that
// have sat in the trash for the full retention window or longer.
func (m *Manager) PurgeOlderThan(days int) (int64, string, error) {
	if days <= 0 {
		days = DefaultRetentionDays
	}
	total := m.purgeBefore(time.Now().AddDate(0, 0, -days))
	msg := fmt.Sprintf("%d registro(s) removido(s) definitivamente (retenção de %d dias)", total, days)
	return total, msg, nil
}

// purgeBefore deletes rows trashed at or before the cutoff. Each table is
// swept independently: a failure on one is logged and does not stop the
// others.
func (m *Manager) purgeBefore(cutoff time.Time) int64 {
	var total int64
	for _, e := range Deletable() {
		res := m.db.Exec(
			"DELETE FROM "+e.Table+" WHERE deleted_at IS NOT NULL AND deleted_at <= ?", cutoff)
		if res.Error != nil {
			log.Printf("[lixeira] limpeza de %s falhou: %v", e.Table, res.Error)
			continue
		}
		total += res.RowsAffected
	}
	return total
}
