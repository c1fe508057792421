package services

import (
	"errors"
	"testing"
	"time"

	"github.com/example/ordem-servico/internal/models"
	"gorm.io/gorm"
)

func TestExpenseCreateListDelete(t *testing.T) {
	conn := setupTestDB(t)
	expenses := NewExpenseService(conn)

	g := &models.Gasto{Tipo: models.GastoProduto, Descricao: "Canecas lisas", Valor: 120}
	if err := expenses.Create(g); err != nil {
		t.Fatalf("create: %v", err)
	}
	if g.Data.IsZero() {
		t.Error("expected Data defaulted to today")
	}

	list, err := expenses.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list has %d rows, want 1", len(list))
	}

	// hard delete: gone for good, no trash
	if err := expenses.Delete(g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var count int64
	if err := conn.Model(&models.Gasto{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("expense row survived hard delete")
	}

	if err := expenses.Delete(g.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("delete missing: err = %v, want ErrRecordNotFound", err)
	}
}

func TestExpenseTotalsByPeriod(t *testing.T) {
	conn := setupTestDB(t)
	expenses := NewExpenseService(conn)

	now := time.Now()
	seed := []models.Gasto{
		{Tipo: models.GastoProduto, Descricao: "dentro 1", Valor: 100, Data: now.AddDate(0, 0, -1)},
		{Tipo: models.GastoServico, Descricao: "dentro 2", Valor: 50, Data: now.AddDate(0, 0, -2)},
		{Tipo: models.GastoProduto, Descricao: "fora", Valor: 999, Data: now.AddDate(0, 0, -60)},
	}
	for i := range seed {
		if err := expenses.Create(&seed[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	from := now.AddDate(0, 0, -7)
	total, err := expenses.TotalBetween(from, now)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 150 {
		t.Errorf("TotalBetween = %f, want 150", total)
	}
	inside, err := expenses.ListBetween(from, now)
	if err != nil {
		t.Fatalf("list between: %v", err)
	}
	if len(inside) != 2 {
		t.Errorf("ListBetween has %d rows, want 2", len(inside))
	}
}
