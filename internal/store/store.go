// Package store wires the data-access facade: one shared connection, the
// schema/migration startup sequence and the per-entity services behind a
// single handle. The composition root builds exactly one Store and passes
// it to every consumer; there is no hidden global instance.
package store

import (
	"errors"
	"fmt"
	"log"

	"github.com/example/ordem-servico/internal/config"
	"github.com/example/ordem-servico/internal/db"
	"github.com/example/ordem-servico/internal/lifecycle"
	"github.com/example/ordem-servico/internal/models"
	"github.com/example/ordem-servico/internal/services"
	"gorm.io/gorm"
)

// Store owns the shared *gorm.DB and composes the operation surface the
// presentation and export layers consume.
type Store struct {
	db            *gorm.DB
	retentionDays int

	Lifecycle *lifecycle.Manager
	Orders    *services.OrderService
	Clients   *services.ClientService
	Products  *services.ProductService
	Expenses  *services.ExpenseService
	Reports   *services.ReportService
}

// Open connects and runs the one-time startup sequence: schema creation,
// additive migrations and the purchase-counter sync. Meant to be called
// once per process, from the composition root.
func Open(cfg *config.Config) (*Store, error) {
	conn, err := db.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if sqlMigrationsApply(cfg) {
		path := cfg.Database.Path
		if path == "" {
			if path, err = db.DefaultDatabasePath(); err != nil {
				return nil, err
			}
		}
		if err := db.RunSQLMigrations(path); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	}
	if err := db.EnsureSchema(conn); err != nil {
		return nil, err
	}
	st := New(conn, cfg.App.RetentionDays)
	if err := st.syncPurchaseCounters(); err != nil {
		log.Printf("[store] sincronizar numero_compras: %v", err)
	}
	return st, nil
}

// sqlMigrationsApply reports whether the versioned SQL migrations run at
// startup. The shipped migration files are SQLite dialect, so a configured
// postgres DSN bypasses them; the bypass is logged so the operator knows
// MIGRATIONS=1 had no effect.
func sqlMigrationsApply(cfg *config.Config) bool {
	if !cfg.App.Migrations {
		return false
	}
	if cfg.Database.DSN != "" {
		log.Printf("[store] MIGRATIONS=1 ignorado: DATABASE_DSN definido e os arquivos de migração são dialeto sqlite")
		return false
	}
	return true
}

// New assembles a Store over an already opened and migrated connection.
func New(conn *gorm.DB, retentionDays int) *Store {
	if retentionDays <= 0 {
		retentionDays = lifecycle.DefaultRetentionDays
	}
	lc := lifecycle.NewManager(conn)
	return &Store{
		db:            conn,
		retentionDays: retentionDays,
		Lifecycle:     lc,
		Orders:        services.NewOrderService(conn, lc),
		Clients:       services.NewClientService(conn, lc),
		Products:      services.NewProductService(conn, lc),
		Expenses:      services.NewExpenseService(conn),
		Reports:       services.NewReportService(conn),
	}
}

// DB exposes the shared connection for the few callers that need raw
// access (exports, ad hoc queries).
func (s *Store) DB() *gorm.DB { return s.db }

// RetentionDays is the configured soft-delete retention window.
func (s *Store) RetentionDays() int { return s.retentionDays }

// PurgeExpired sweeps every deletable table, permanently removing rows
// trashed longer ago than the retention window.
func (s *Store) PurgeExpired() (int64, string, error) {
	return s.Lifecycle.PurgeOlderThan(s.retentionDays)
}

// OrderDetail is the composite read of one order: the row, the decoded
// payload, the reconciled money fields and, when the document snapshot
// matches a registered client, that client and its rendered address.
type OrderDetail struct {
	Ordem    models.Ordem
	Payload  models.OrdemPayload
	Status   string
	Total    float64
	Restante float64
	Cliente  *models.Cliente
	Endereco string
}

// OrderDetail merges the relational columns of one order with its payload
// (payload wins) and resolves the client's full address by normalized
// document lookup.
func (s *Store) OrderDetail(id uint) (*OrderDetail, error) {
	o, err := s.Orders.Get(id)
	if err != nil {
		return nil, err
	}
	d := &OrderDetail{
		Ordem:    *o,
		Payload:  o.Payload(),
		Status:   o.EffectiveStatus(),
		Total:    o.Total(),
		Restante: o.Restante(),
	}
	c, err := s.Clients.FindByDocument(o.CPFCliente)
	switch {
	case err == nil:
		d.Cliente = c
		d.Endereco = c.EnderecoCompleto()
	case errors.Is(err, gorm.ErrRecordNotFound):
		// order keeps its snapshot; no registered client is fine
	default:
		return nil, err
	}
	return d, nil
}

// OrderProducts extracts the sold items of an order. The payload item list
// is preferred; orders predating it fall back to parsing the free-text
// product summary.
func (s *Store) OrderProducts(o *models.Ordem) []models.ItemPedido {
	if p := o.Payload(); len(p.Produtos) > 0 {
		return p.Produtos
	}
	return services.ParseResumoProdutos(o.DetalhesProduto)
}

// syncPurchaseCounters recounts clientes.numero_compras from the
// non-deleted orders matching each client's document. Runs at startup so
// the denormalized counter survives direct edits and restored rows.
func (s *Store) syncPurchaseCounters() error {
	var clientes []models.Cliente
	if err := s.db.Find(&clientes).Error; err != nil {
		return err
	}
	var ordens []models.Ordem
	if err := s.db.Select("cpf_cliente").Find(&ordens).Error; err != nil {
		return err
	}
	counts := map[string]int{}
	for i := range ordens {
		if d := models.NormalizeDocument(ordens[i].CPFCliente); d != "" {
			counts[d]++
		}
	}
	for i := range clientes {
		want := counts[models.NormalizeDocument(clientes[i].Documento())]
		if clientes[i].NumeroCompras == want {
			continue
		}
		err := s.db.Model(&models.Cliente{}).
			Where("id = ?", clientes[i].ID).
			Update("numero_compras", want).Error
		if err != nil {
			return err
		}
	}
	return nil
}
