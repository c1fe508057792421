package models

import "time"

// Expense types.
const (
	GastoProduto = "produto"
	GastoServico = "servico"
)

// Gasto is a business expense line. Expenses have no deleted_at column:
// deleting one is a hard, irreversible removal.
type Gasto struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	Tipo      string    `gorm:"column:tipo"`
	Descricao string    `gorm:"column:descricao"`
	Valor     float64   `gorm:"column:valor"`
	Data      time.Time `gorm:"column:data"`
}

func (Gasto) TableName() string { return "gastos" }
