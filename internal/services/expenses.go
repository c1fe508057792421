package services

import (
	"fmt"
	"time"

	"github.com/example/ordem-servico/internal/models"
	"gorm.io/gorm"
)

// ExpenseService is the gastos table CRUD surface. Unlike the other
// entities, expense deletion is a hard removal with no restore path.
type ExpenseService struct {
	db *gorm.DB
}

func NewExpenseService(db *gorm.DB) *ExpenseService { return &ExpenseService{db: db} }

// Create inserts an expense line, defaulting the date to today.
func (s *ExpenseService) Create(g *models.Gasto) error {
	if g.Data.IsZero() {
		g.Data = time.Now()
	}
	if err := s.db.Create(g).Error; err != nil {
		return fmt.Errorf("criar gasto: %w", err)
	}
	return nil
}

// List returns every expense, newest first.
func (s *ExpenseService) List() ([]models.Gasto, error) {
	var gastos []models.Gasto
	if err := s.db.Order("data desc").Find(&gastos).Error; err != nil {
		return nil, fmt.Errorf("listar gastos: %w", err)
	}
	return gastos, nil
}

// ListBetween returns expenses inside a date range, newest first.
func (s *ExpenseService) ListBetween(from, to time.Time) ([]models.Gasto, error) {
	var gastos []models.Gasto
	err := s.db.Where("data >= ? AND data <= ?", from, to).
		Order("data desc").Find(&gastos).Error
	if err != nil {
		return nil, fmt.Errorf("listar gastos por período: %w", err)
	}
	return gastos, nil
}

// TotalBetween sums expense values inside a date range.
func (s *ExpenseService) TotalBetween(from, to time.Time) (float64, error) {
	var total float64
	err := s.db.Model(&models.Gasto{}).
		Where("data >= ? AND data <= ?", from, to).
		Select("COALESCE(SUM(valor), 0)").Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("total de gastos: %w", err)
	}
	return total, nil
}

// Delete removes an expense permanently.
func (s *ExpenseService) Delete(id uint) error {
	res := s.db.Delete(&models.Gasto{}, id)
	if res.Error != nil {
		return fmt.Errorf("excluir gasto %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
