package models

import (
	"time"

	"gorm.io/gorm"
)

// Produto is a catalog entry used for code lookup and reuse when filling
// orders. It is not the record of what was sold; that lives in the order
// payload item list.
type Produto struct {
	ID          uint           `gorm:"primaryKey;column:id"`
	Nome        string         `gorm:"column:nome;not null"`
	Codigo      string         `gorm:"column:codigo"`
	Preco       float64        `gorm:"column:preco"`
	Descricao   string         `gorm:"column:descricao"`
	Categoria   string         `gorm:"column:categoria"`
	DataCriacao time.Time      `gorm:"column:data_criacao;autoCreateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Produto) TableName() string { return "produtos" }
