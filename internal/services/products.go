package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/ordem-servico/internal/lifecycle"
	"github.com/example/ordem-servico/internal/models"
	"gorm.io/gorm"
)

var ErrDuplicateName = errors.New("produto com este nome já existe")

// ProductService is the produtos catalog CRUD surface.
type ProductService struct {
	db *gorm.DB
	lc *lifecycle.Manager
}

func NewProductService(db *gorm.DB, lc *lifecycle.Manager) *ProductService {
	return &ProductService{db: db, lc: lc}
}

// Save creates the product when it has no id yet and updates it otherwise.
func (s *ProductService) Save(p *models.Produto) error {
	if p.ID == 0 {
		if err := s.db.Create(p).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("produto %q: %w", p.Nome, ErrDuplicateName)
			}
			return fmt.Errorf("criar produto: %w", err)
		}
		return nil
	}
	if err := s.db.Save(p).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("produto %q: %w", p.Nome, ErrDuplicateName)
		}
		return fmt.Errorf("atualizar produto %d: %w", p.ID, err)
	}
	return nil
}

// Get returns one non-deleted catalog entry.
func (s *ProductService) Get(id uint) (*models.Produto, error) {
	var p models.Produto
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns the non-deleted catalog ordered by name.
func (s *ProductService) List() ([]models.Produto, error) {
	var produtos []models.Produto
	if err := s.db.Order("nome asc").Find(&produtos).Error; err != nil {
		return nil, fmt.Errorf("listar produtos: %w", err)
	}
	return produtos, nil
}

// FindByCode returns the catalog entry with the given code.
func (s *ProductService) FindByCode(codigo string) (*models.Produto, error) {
	var p models.Produto
	if err := s.db.Where("codigo = ?", codigo).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByDescription binds a sold line description to a catalog entry:
// exact name match first, then a case-insensitive substring fallback.
// The fallback is a heuristic and can pick the wrong entry when catalog
// names overlap.
func (s *ProductService) FindByDescription(desc string) (*models.Produto, error) {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var p models.Produto
	err := s.db.Where("nome = ?", desc).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	like := "%" + strings.ToLower(desc) + "%"
	if err := s.db.Where("lower(nome) LIKE ?", like).Order("id asc").First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete moves the catalog entry to the trash (reversible).
func (s *ProductService) Delete(id uint) (string, error) {
	return s.lc.MarkDeleted(lifecycle.Produtos, id)
}

// Restore brings a trashed catalog entry back.
func (s *ProductService) Restore(id uint) (string, error) {
	return s.lc.Restore(lifecycle.Produtos, id)
}

// ListDeleted returns trashed catalog entries, most recently deleted first.
func (s *ProductService) ListDeleted() ([]models.Produto, error) {
	var produtos []models.Produto
	err := s.db.Unscoped().
		Where("deleted_at IS NOT NULL").
		Order("deleted_at desc").
		Find(&produtos).Error
	if err != nil {
		return nil, fmt.Errorf("listar lixeira de produtos: %w", err)
	}
	return produtos, nil
}
