package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Ordem is a service order. The relational columns carry a snapshot of the
// client and a cached product value; the dados_json column holds the
// authoritative detail payload (see OrdemPayload). Column names are a
// compatibility surface for external reports and must not change.
type Ordem struct {
	ID              uint           `gorm:"primaryKey;column:id"`
	NumeroOS        int            `gorm:"column:numero_os"`
	DataCriacao     time.Time      `gorm:"column:data_criacao;autoCreateTime"`
	NomeCliente     string         `gorm:"column:nome_cliente"`
	CPFCliente      string         `gorm:"column:cpf_cliente"`
	TelefoneCliente string         `gorm:"column:telefone_cliente"`
	DetalhesProduto string         `gorm:"column:detalhes_produto"`
	ValorProduto    float64        `gorm:"column:valor_produto"`
	ValorEntrada    float64        `gorm:"column:valor_entrada"`
	Frete           float64        `gorm:"column:frete"`
	FormaPagamento  string         `gorm:"column:forma_pagamento"`
	Prazo           int            `gorm:"column:prazo"`
	NomePDF         string         `gorm:"column:nome_pdf"`
	Status          string         `gorm:"column:status;default:'Em andamento'"` // migration fallback; payload status wins
	DadosJSON       string         `gorm:"column:dados_json"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Ordem) TableName() string { return "ordem_servico" }

// Payload decodes dados_json. A missing or malformed payload yields the
// zero value so reads never fail on legacy rows.
func (o *Ordem) Payload() OrdemPayload {
	var p OrdemPayload
	if o.DadosJSON == "" {
		return p
	}
	if err := json.Unmarshal([]byte(o.DadosJSON), &p); err != nil {
		return OrdemPayload{}
	}
	return p
}

// SetPayload encodes p into dados_json and refreshes the valor_produto
// cache when the payload carries an item list.
func (o *Ordem) SetPayload(p OrdemPayload) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	o.DadosJSON = string(raw)
	if len(p.Produtos) > 0 {
		o.ValorProduto = p.TotalProdutos()
	}
	return nil
}

// EffectiveStatus prefers the payload status over the relational column.
func (o *Ordem) EffectiveStatus() string {
	if s := o.Payload().Status; s != "" {
		return s
	}
	return o.Status
}

// ValorProdutos is the effective product value: the sum of the payload
// item list when present, the cached column otherwise.
func (o *Ordem) ValorProdutos() float64 {
	if p := o.Payload(); len(p.Produtos) > 0 {
		return p.TotalProdutos()
	}
	return o.ValorProduto
}

// Total = produtos + frete - desconto.
func (o *Ordem) Total() float64 {
	return o.ValorProdutos() + o.Frete - o.Payload().Desconto
}

// Restante is what the client still owes after the down payment.
func (o *Ordem) Restante() float64 {
	return o.Total() - o.ValorEntrada
}
