package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Cliente is a registered client. A client is identified by CPF or CNPJ,
// never required to carry both; each is unique when present. Documents are
// stored with their original punctuation and compared digits-only.
type Cliente struct {
	ID                uint           `gorm:"primaryKey;column:id"`
	Nome              string         `gorm:"column:nome;not null"`
	CPF               string         `gorm:"column:cpf"`
	CNPJ              string         `gorm:"column:cnpj"`
	InscricaoEstadual string         `gorm:"column:inscricao_estadual"` // only meaningful alongside a CNPJ
	Telefone          string         `gorm:"column:telefone"`
	Email             string         `gorm:"column:email"`
	CEP               string         `gorm:"column:cep"`
	Rua               string         `gorm:"column:rua"`
	Numero            string         `gorm:"column:numero"`
	Bairro            string         `gorm:"column:bairro"`
	Cidade            string         `gorm:"column:cidade"`
	Estado            string         `gorm:"column:estado"`
	Referencia        string         `gorm:"column:referencia"`
	NumeroCompras     int            `gorm:"column:numero_compras;default:0"`
	DataCriacao       time.Time      `gorm:"column:data_criacao;autoCreateTime"`
	DeletedAt         gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Cliente) TableName() string { return "clientes" }

// Documento returns whichever identity document the client carries,
// CPF first.
func (c Cliente) Documento() string {
	if c.CPF != "" {
		return c.CPF
	}
	return c.CNPJ
}

// EnderecoCompleto renders the structured address for display, skipping
// empty parts.
func (c Cliente) EnderecoCompleto() string {
	var parts []string
	if c.Rua != "" {
		line := c.Rua
		if c.Numero != "" {
			line += ", " + c.Numero
		}
		parts = append(parts, line)
	}
	if c.Bairro != "" {
		parts = append(parts, c.Bairro)
	}
	switch {
	case c.Cidade != "" && c.Estado != "":
		parts = append(parts, c.Cidade+"/"+c.Estado)
	case c.Cidade != "":
		parts = append(parts, c.Cidade)
	case c.Estado != "":
		parts = append(parts, c.Estado)
	}
	if c.CEP != "" {
		parts = append(parts, "CEP "+c.CEP)
	}
	return strings.Join(parts, " - ")
}

// NormalizeDocument strips everything but digits from a CPF/CNPJ so that
// "123.456.789-01" and "12345678901" compare equal.
func NormalizeDocument(doc string) string {
	var b strings.Builder
	for _, r := range doc {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
