package models

// OrdemPayload is the detail payload embedded in ordem_servico.dados_json.
// When both a relational column and a payload field carry the same fact,
// the payload value is authoritative.
type OrdemPayload struct {
	Status      string       `json:"status,omitempty"`
	Desconto    float64      `json:"desconto,omitempty"`
	Observacoes string       `json:"observacoes,omitempty"`
	Produtos    []ItemPedido `json:"produtos,omitempty"`
}

// TotalProdutos sums the per-item subtotals of the item list.
func (p OrdemPayload) TotalProdutos() float64 {
	var total float64
	for _, it := range p.Produtos {
		total += it.Subtotal()
	}
	return total
}

// ItemPedido is one sold line inside an order payload. Old rows use the
// descricao/valor keys, newer ones nome/preco; both are accepted. Color is
// either the legacy flat cor string or the structured cor_data variant.
type ItemPedido struct {
	Descricao  string   `json:"descricao,omitempty"`
	Nome       string   `json:"nome,omitempty"`
	Quantidade float64  `json:"quantidade,omitempty"`
	Valor      float64  `json:"valor,omitempty"`
	Preco      float64  `json:"preco,omitempty"`
	Cor        string   `json:"cor,omitempty"`
	CorData    *CorData `json:"cor_data,omitempty"`
}

// Label resolves the descricao|nome alias.
func (i ItemPedido) Label() string {
	if i.Descricao != "" {
		return i.Descricao
	}
	return i.Nome
}

// ValorUnitario resolves the valor|preco alias.
func (i ItemPedido) ValorUnitario() float64 {
	if i.Valor != 0 {
		return i.Valor
	}
	return i.Preco
}

// Subtotal is unit value times quantity. Legacy rows may omit quantidade,
// which counts as a single unit.
func (i ItemPedido) Subtotal() float64 {
	q := i.Quantidade
	if q <= 0 {
		q = 1
	}
	return i.ValorUnitario() * q
}

// DescricaoCor renders the item color for display, whichever shape it uses.
func (i ItemPedido) DescricaoCor() string {
	if i.CorData != nil {
		return i.CorData.Descricao()
	}
	return i.Cor
}

// CorData is the structured color variant: tipo "unica" carries a single
// cor, tipo "separadas" carries tampa and corpo.
type CorData struct {
	Tipo  string `json:"tipo"`
	Cor   string `json:"cor,omitempty"`
	Tampa string `json:"tampa,omitempty"`
	Corpo string `json:"corpo,omitempty"`
}

const (
	CorUnica     = "unica"
	CorSeparadas = "separadas"
)

func (c CorData) Descricao() string {
	if c.Tipo == CorSeparadas {
		return "Tampa: " + c.Tampa + " / Corpo: " + c.Corpo
	}
	return c.Cor
}
