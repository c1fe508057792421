package services

import (
	"encoding/json"
	"fmt"

	"github.com/example/ordem-servico/internal/lifecycle"
	"github.com/example/ordem-servico/internal/models"
	"gorm.io/gorm"
)

// OrderService is the ordem_servico table CRUD surface.
type OrderService struct {
	db *gorm.DB
	lc *lifecycle.Manager
}

func NewOrderService(db *gorm.DB, lc *lifecycle.Manager) *OrderService {
	return &OrderService{db: db, lc: lc}
}

// NextNumber returns the next human-facing sequential number. Trashed
// orders still hold their number, so the scan ignores the soft-delete
// filter.
func (s *OrderService) NextNumber() (int, error) {
	var max int
	err := s.db.Unscoped().Model(&models.Ordem{}).
		Select("COALESCE(MAX(numero_os), 0)").Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("próximo numero_os: %w", err)
	}
	return max + 1, nil
}

// Create inserts a new order with the next sequential numero_os, encoding
// the payload and refreshing the valor_produto cache from its item list.
func (s *OrderService) Create(o *models.Ordem, p models.OrdemPayload) error {
	n, err := s.NextNumber()
	if err != nil {
		return err
	}
	o.NumeroOS = n
	if err := o.SetPayload(p); err != nil {
		return fmt.Errorf("codificar dados_json: %w", err)
	}
	if err := s.db.Create(o).Error; err != nil {
		return fmt.Errorf("criar ordem: %w", err)
	}
	return nil
}

// Update persists changes to an existing order, re-encoding the payload and
// refreshing the cached product value.
func (s *OrderService) Update(o *models.Ordem, p models.OrdemPayload) error {
	if o.ID == 0 {
		return fmt.Errorf("atualizar ordem: %w", gorm.ErrRecordNotFound)
	}
	if err := o.SetPayload(p); err != nil {
		return fmt.Errorf("codificar dados_json: %w", err)
	}
	if err := s.db.Save(o).Error; err != nil {
		return fmt.Errorf("atualizar ordem %d: %w", o.ID, err)
	}
	return nil
}

// UpdateStatus writes the new status into the dados_json payload only; the
// relational status column stays untouched and keeps acting as a fallback
// for rows predating the payload.
func (s *OrderService) UpdateStatus(id uint, status string) error {
	var o models.Ordem
	if err := s.db.First(&o, id).Error; err != nil {
		return err
	}
	p := o.Payload()
	p.Status = status
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("codificar dados_json: %w", err)
	}
	err = s.db.Model(&models.Ordem{}).Where("id = ?", id).
		Update("dados_json", string(raw)).Error
	if err != nil {
		return fmt.Errorf("atualizar status da ordem %d: %w", id, err)
	}
	return nil
}

// Get returns one non-deleted order.
func (s *OrderService) Get(id uint) (*models.Ordem, error) {
	var o models.Ordem
	if err := s.db.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByNumber returns one non-deleted order by its numero_os.
func (s *OrderService) GetByNumber(numero int) (*models.Ordem, error) {
	var o models.Ordem
	if err := s.db.Where("numero_os = ?", numero).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns every non-deleted order, newest number first.
func (s *OrderService) List() ([]models.Ordem, error) {
	var ordens []models.Ordem
	if err := s.db.Order("numero_os desc").Find(&ordens).Error; err != nil {
		return nil, fmt.Errorf("listar ordens: %w", err)
	}
	return ordens, nil
}

// Delete moves the order to the trash (reversible).
func (s *OrderService) Delete(id uint) (string, error) {
	return s.lc.MarkDeleted(lifecycle.Ordens, id)
}

// Restore brings a trashed order back.
func (s *OrderService) Restore(id uint) (string, error) {
	return s.lc.Restore(lifecycle.Ordens, id)
}

// ListDeleted returns trashed orders, most recently deleted first.
func (s *OrderService) ListDeleted() ([]models.Ordem, error) {
	var ordens []models.Ordem
	err := s.db.Unscoped().
		Where("deleted_at IS NOT NULL").
		Order("deleted_at desc").
		Find(&ordens).Error
	if err != nil {
		return nil, fmt.Errorf("listar lixeira de ordens: %w", err)
	}
	return ordens, nil
}
