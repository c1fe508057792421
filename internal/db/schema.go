package db

import (
	"fmt"
	"log"
	"strings"

	"github.com/example/ordem-servico/internal/models"
	"gorm.io/gorm"
)

// Models lists every persisted entity, in creation order.
func Models() []interface{} {
	return []interface{}{
		&models.Cliente{}, &models.Produto{}, &models.Ordem{}, &models.Gasto{},
	}
}

// columnMigration is one additive schema step. The whole list runs on every
// startup; steps that already applied are no-ops and a failing step never
// blocks the ones after it.
type columnMigration struct {
	table  string
	column string
	ddl    string
}

var columnMigrations = []columnMigration{
	{"clientes", "cnpj", "ALTER TABLE clientes ADD COLUMN cnpj TEXT"},
	{"clientes", "inscricao_estadual", "ALTER TABLE clientes ADD COLUMN inscricao_estadual TEXT"},
	{"clientes", "cep", "ALTER TABLE clientes ADD COLUMN cep TEXT"},
	{"clientes", "referencia", "ALTER TABLE clientes ADD COLUMN referencia TEXT"},
	{"clientes", "numero_compras", "ALTER TABLE clientes ADD COLUMN numero_compras INTEGER DEFAULT 0"},
	{"ordem_servico", "status", "ALTER TABLE ordem_servico ADD COLUMN status TEXT DEFAULT 'Em andamento'"},
	{"ordem_servico", "deleted_at", "ALTER TABLE ordem_servico ADD COLUMN deleted_at DATETIME"},
	{"clientes", "deleted_at", "ALTER TABLE clientes ADD COLUMN deleted_at DATETIME"},
	{"produtos", "deleted_at", "ALTER TABLE produtos ADD COLUMN deleted_at DATETIME"},
}

// The CPF/CNPJ indexes are partial so that clients carrying only one of the
// two documents do not collide on the empty value.
var indexStatements = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_clientes_cpf ON clientes(cpf) WHERE cpf IS NOT NULL AND cpf <> ''",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_clientes_cnpj ON clientes(cnpj) WHERE cnpj IS NOT NULL AND cnpj <> ''",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_produtos_nome ON produtos(nome)",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_ordem_numero ON ordem_servico(numero_os)",
	"CREATE INDEX IF NOT EXISTS idx_ordem_data ON ordem_servico(data_criacao)",
	"CREATE INDEX IF NOT EXISTS idx_ordem_cpf ON ordem_servico(cpf_cliente)",
	"CREATE INDEX IF NOT EXISTS idx_ordem_nome ON ordem_servico(nome_cliente)",
}

// EnsureSchema creates the four tables and their indices if absent, then
// applies the additive column migrations. Safe to run on every startup:
// a second run against the same database changes nothing.
func EnsureSchema(db *gorm.DB) error {
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	ensureIndexes(db)
	applyColumnMigrations(db)
	return nil
}

func ensureIndexes(db *gorm.DB) {
	for _, stmt := range indexStatements {
		if err := db.Exec(stmt).Error; err != nil {
			log.Printf("[schema] índice falhou (%s): %v", stmt, err)
		}
	}
}

func applyColumnMigrations(db *gorm.DB) {
	for _, m := range columnMigrations {
		if db.Migrator().HasColumn(m.table, m.column) {
			continue
		}
		if err := db.Exec(m.ddl).Error; err != nil {
			if isDuplicateColumn(err) {
				continue
			}
			log.Printf("[schema] migração %s.%s falhou: %v", m.table, m.column, err)
		}
	}
}

func isDuplicateColumn(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate column") || strings.Contains(msg, "already exists")
}
