package models

import (
	"testing"
)

func TestOrdem_TotalFromPayload(t *testing.T) {
	o := &Ordem{ValorProduto: 999, Frete: 3.0} // stale cache must lose to the payload
	err := o.SetPayload(OrdemPayload{
		Desconto: 2.0,
		Produtos: []ItemPedido{
			{Descricao: "Caneca", Valor: 10.0, Quantidade: 2},
			{Descricao: "Adesivo", Valor: 5.0, Quantidade: 1},
		},
	})
	if err != nil {
		t.Fatalf("set payload: %v", err)
	}
	if got := o.ValorProdutos(); got != 25.0 {
		t.Errorf("ValorProdutos() = %f, want 25.0", got)
	}
	if got := o.Total(); got != 26.0 {
		t.Errorf("Total() = %f, want 26.0", got)
	}
}

func TestOrdem_TotalFallsBackToCache(t *testing.T) {
	o := &Ordem{ValorProduto: 40, Frete: 10, ValorEntrada: 15}
	if got := o.Total(); got != 50 {
		t.Errorf("Total() = %f, want 50", got)
	}
	if got := o.Restante(); got != 35 {
		t.Errorf("Restante() = %f, want 35", got)
	}
}

func TestOrdem_SetPayloadRefreshesCache(t *testing.T) {
	o := &Ordem{ValorProduto: 1}
	if err := o.SetPayload(OrdemPayload{Produtos: []ItemPedido{{Valor: 7, Quantidade: 3}}}); err != nil {
		t.Fatalf("set payload: %v", err)
	}
	if o.ValorProduto != 21 {
		t.Errorf("valor_produto cache = %f, want 21", o.ValorProduto)
	}
}

func TestOrdem_EffectiveStatus(t *testing.T) {
	tests := []struct {
		name   string
		column string
		json   string
		want   string
	}{
		{"payload wins", "Em andamento", `{"status":"Concluído"}`, "Concluído"},
		{"column fallback", "Em andamento", "", "Em andamento"},
		{"empty payload status", "Em andamento", `{"desconto":1}`, "Em andamento"},
		{"malformed json", "Em andamento", `{oops`, "Em andamento"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Ordem{Status: tt.column, DadosJSON: tt.json}
			if got := o.EffectiveStatus(); got != tt.want {
				t.Errorf("EffectiveStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOrdem_PayloadMalformed(t *testing.T) {
	o := &Ordem{DadosJSON: `not json at all`}
	p := o.Payload()
	if p.Status != "" || len(p.Produtos) != 0 {
		t.Errorf("malformed payload should decode to zero value, got %+v", p)
	}
}

func TestItemPedido_Aliases(t *testing.T) {
	tests := []struct {
		name      string
		item      ItemPedido
		wantLabel string
		wantValor float64
	}{
		{"legacy keys", ItemPedido{Descricao: "Caneca", Valor: 10}, "Caneca", 10},
		{"new keys", ItemPedido{Nome: "Adesivo", Preco: 5}, "Adesivo", 5},
		{"legacy wins when both", ItemPedido{Descricao: "A", Nome: "B", Valor: 1, Preco: 2}, "A", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.Label(); got != tt.wantLabel {
				t.Errorf("Label() = %q, want %q", got, tt.wantLabel)
			}
			if got := tt.item.ValorUnitario(); got != tt.wantValor {
				t.Errorf("ValorUnitario() = %f, want %f", got, tt.wantValor)
			}
		})
	}
}

func TestItemPedido_SubtotalDefaultsQuantity(t *testing.T) {
	it := ItemPedido{Valor: 12.5}
	if got := it.Subtotal(); got != 12.5 {
		t.Errorf("Subtotal() = %f, want 12.5", got)
	}
}

func TestItemPedido_Cores(t *testing.T) {
	tests := []struct {
		name string
		item ItemPedido
		want string
	}{
		{"flat cor", ItemPedido{Cor: "Azul"}, "Azul"},
		{"unica", ItemPedido{CorData: &CorData{Tipo: CorUnica, Cor: "Verde"}}, "Verde"},
		{"separadas", ItemPedido{CorData: &CorData{Tipo: CorSeparadas, Tampa: "Preta", Corpo: "Branco"}}, "Tampa: Preta / Corpo: Branco"},
		{"cor_data wins over flat", ItemPedido{Cor: "Azul", CorData: &CorData{Tipo: CorUnica, Cor: "Rosa"}}, "Rosa"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.DescricaoCor(); got != tt.want {
				t.Errorf("DescricaoCor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeDocument(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123.456.789-01", "12345678901"},
		{"12345678901", "12345678901"},
		{"12.345.678/0001-99", "12345678000199"},
		{" 111 222 ", "111222"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeDocument(tt.in); got != tt.want {
			t.Errorf("NormalizeDocument(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCliente_Documento(t *testing.T) {
	if got := (Cliente{CPF: "111", CNPJ: "222"}).Documento(); got != "111" {
		t.Errorf("Documento() = %q, want cpf first", got)
	}
	if got := (Cliente{CNPJ: "222"}).Documento(); got != "222" {
		t.Errorf("Documento() = %q, want cnpj fallback", got)
	}
}

func TestCliente_EnderecoCompleto(t *testing.T) {
	tests := []struct {
		name    string
		cliente Cliente
		want    string
	}{
		{
			name: "full address",
			cliente: Cliente{
				Rua: "Rua das Flores", Numero: "123", Bairro: "Centro",
				Cidade: "Curitiba", Estado: "PR", CEP: "80000-000",
			},
			want: "Rua das Flores, 123 - Centro - Curitiba/PR - CEP 80000-000",
		},
		{
			name:    "only city",
			cliente: Cliente{Cidade: "Curitiba"},
			want:    "Curitiba",
		},
		{
			name:    "street without number",
			cliente: Cliente{Rua: "Rua A", Cidade: "Londrina"},
			want:    "Rua A - Londrina",
		},
		{
			name:    "empty",
			cliente: Cliente{},
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cliente.EnderecoCompleto(); got != tt.want {
				t.Errorf("EnderecoCompleto() = %q, want %q", got, tt.want)
			}
		})
	}
}
