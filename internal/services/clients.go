package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/ordem-servico/internal/lifecycle"
	"github.com/example/ordem-servico/internal/models"
	"gorm.io/gorm"
)

var ErrDuplicateDocument = errors.New("cpf/cnpj já cadastrado")

// digitsColumn builds the SQL expression comparing a stored document
// digits-only, so "123.456.789-01" matches "12345678901". Works on both
// SQLite and PostgreSQL.
func digitsColumn(col string) string {
	return "replace(replace(replace(replace(" + col + ",'.',''),'-',''),'/',''),' ','')"
}

// ClientService is the clientes table CRUD surface.
type ClientService struct {
	db *gorm.DB
	lc *lifecycle.Manager
}

func NewClientService(db *gorm.DB, lc *lifecycle.Manager) *ClientService {
	return &ClientService{db: db, lc: lc}
}

// Save creates the client when it has no id yet and updates it otherwise.
// The create-vs-update decision is made here, never left to the unique
// document constraint.
func (s *ClientService) Save(c *models.Cliente) error {
	if c.ID == 0 {
		if err := s.db.Create(c).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("cliente %q: %w", c.Nome, ErrDuplicateDocument)
			}
			return fmt.Errorf("criar cliente: %w", err)
		}
		return nil
	}
	if err := s.db.Save(c).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("cliente %q: %w", c.Nome, ErrDuplicateDocument)
		}
		return fmt.Errorf("atualizar cliente %d: %w", c.ID, err)
	}
	return nil
}

// Get returns one non-deleted client.
func (s *ClientService) Get(id uint) (*models.Cliente, error) {
	var c models.Cliente
	if err := s.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns every non-deleted client ordered by name.
func (s *ClientService) List() ([]models.Cliente, error) {
	var clientes []models.Cliente
	if err := s.db.Order("nome asc").Find(&clientes).Error; err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	return clientes, nil
}

// FindByDocument looks a client up by CPF or CNPJ, comparing digits only on
// both sides.
func (s *ClientService) FindByDocument(doc string) (*models.Cliente, error) {
	digits := models.NormalizeDocument(doc)
	if digits == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var c models.Cliente
	err := s.db.
		Where(digitsColumn("cpf")+" = ? OR "+digitsColumn("cnpj")+" = ?", digits, digits).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// IncrementPurchases bumps the denormalized purchase counter of the client
// matching the given document.
func (s *ClientService) IncrementPurchases(doc string) error {
	digits := models.NormalizeDocument(doc)
	if digits == "" {
		return nil
	}
	return s.db.Model(&models.Cliente{}).
		Where(digitsColumn("cpf")+" = ? OR "+digitsColumn("cnpj")+" = ?", digits, digits).
		Update("numero_compras", gorm.Expr("numero_compras + 1")).Error
}

// Delete moves the client to the trash (reversible).
func (s *ClientService) Delete(id uint) (string, error) {
	return s.lc.MarkDeleted(lifecycle.Clientes, id)
}

// Restore brings a trashed client back.
func (s *ClientService) Restore(id uint) (string, error) {
	return s.lc.Restore(lifecycle.Clientes, id)
}

// ListDeleted returns trashed clients, most recently deleted first.
func (s *ClientService) ListDeleted() ([]models.Cliente, error) {
	var clientes []models.Cliente
	err := s.db.Unscoped().
		Where("deleted_at IS NOT NULL").
		Order("deleted_at desc").
		Find(&clientes).Error
	if err != nil {
		return nil, fmt.Errorf("listar lixeira de clientes: %w", err)
	}
	return clientes, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
