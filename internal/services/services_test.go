package services

import (
	"fmt"
	"testing"

	"github.com/example/ordem-servico/internal/db"
	"github.com/example/ordem-servico/internal/lifecycle"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.EnsureSchema(conn); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return conn
}

func newManagers(conn *gorm.DB) (*lifecycle.Manager, *OrderService, *ClientService, *ProductService) {
	lc := lifecycle.NewManager(conn)
	return lc, NewOrderService(conn, lc), NewClientService(conn, lc), NewProductService(conn, lc)
}
