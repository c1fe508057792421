package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/example/ordem-servico/internal/models"
	"gorm.io/gorm"
)

// PeriodSummary aggregates order totals over a date range.
type PeriodSummary struct {
	Pedidos int
	Total   float64
	Media   float64
}

// DailySales is one point of the daily revenue series.
type DailySales struct {
	Dia     string // 2006-01-02
	Pedidos int
	Total   float64
}

// TopClient ranks a client snapshot name by order count, then total spend.
type TopClient struct {
	NomeCliente string
	Pedidos     int
	Total       float64
}

// DeletedStats summarizes trashed orders over a trailing window.
type DeletedStats struct {
	Pedidos int
	Valor   float64
}

// ReportService serves the read-only aggregation and search queries. Order
// totals are computed through the payload reconciliation (JSON wins), so
// aggregates happen in memory after a filtered fetch; volumes here are a
// single shop's history.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService { return &ReportService{db: db} }

// OrdersBetween returns non-deleted orders created inside the range.
func (s *ReportService) OrdersBetween(from, to time.Time) ([]models.Ordem, error) {
	var ordens []models.Ordem
	err := s.db.Where("data_criacao >= ? AND data_criacao <= ?", from, to).
		Order("data_criacao asc").Find(&ordens).Error
	if err != nil {
		return nil, fmt.Errorf("ordens por período: %w", err)
	}
	return ordens, nil
}

// OrdersByClientName searches the client name snapshot, case-insensitive
// substring.
func (s *ReportService) OrdersByClientName(nome string) ([]models.Ordem, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(nome)) + "%"
	var ordens []models.Ordem
	err := s.db.Where("lower(nome_cliente) LIKE ?", like).
		Order("numero_os desc").Find(&ordens).Error
	if err != nil {
		return nil, fmt.Errorf("ordens por cliente: %w", err)
	}
	return ordens, nil
}

// OrdersByDocument returns the orders whose client document matches,
// digits-only comparison on both sides.
func (s *ReportService) OrdersByDocument(doc string) ([]models.Ordem, error) {
	digits := models.NormalizeDocument(doc)
	if digits == "" {
		return nil, nil
	}
	var ordens []models.Ordem
	err := s.db.Where(digitsColumn("cpf_cliente")+" = ?", digits).
		Order("numero_os desc").Find(&ordens).Error
	if err != nil {
		return nil, fmt.Errorf("ordens por documento: %w", err)
	}
	return ordens, nil
}

// SalesSummary computes count, total and average ticket for a period.
func (s *ReportService) SalesSummary(from, to time.Time) (PeriodSummary, error) {
	ordens, err := s.OrdersBetween(from, to)
	if err != nil {
		return PeriodSummary{}, err
	}
	sum := PeriodSummary{Pedidos: len(ordens)}
	for i := range ordens {
		sum.Total += ordens[i].Total()
	}
	if sum.Pedidos > 0 {
		sum.Media = sum.Total / float64(sum.Pedidos)
	}
	return sum, nil
}

// DailySales builds the revenue series for the last N days, one point per
// day that had orders.
func (s *ReportService) DailySales(days int) ([]DailySales, error) {
	since := time.Now().AddDate(0, 0, -days)
	var ordens []models.Ordem
	err := s.db.Where("data_criacao >= ?", since).
		Order("data_criacao asc").Find(&ordens).Error
	if err != nil {
		return nil, fmt.Errorf("vendas diárias: %w", err)
	}
	byDay := map[string]*DailySales{}
	for i := range ordens {
		dia := ordens[i].DataCriacao.Format("2006-01-02")
		p, ok := byDay[dia]
		if !ok {
			p = &DailySales{Dia: dia}
			byDay[dia] = p
		}
		p.Pedidos++
		p.Total += ordens[i].Total()
	}
	serie := make([]DailySales, 0, len(byDay))
	for _, p := range byDay {
		serie = append(serie, *p)
	}
	sort.Slice(serie, func(i, j int) bool { return serie[i].Dia < serie[j].Dia })
	return serie, nil
}

// TopClients ranks client snapshot names by order count, breaking ties by
// total spend.
func (s *ReportService) TopClients(n int) ([]TopClient, error) {
	var ordens []models.Ordem
	if err := s.db.Find(&ordens).Error; err != nil {
		return nil, fmt.Errorf("top clientes: %w", err)
	}
	byName := map[string]*TopClient{}
	for i := range ordens {
		nome := strings.TrimSpace(ordens[i].NomeCliente)
		if nome == "" {
			continue
		}
		t, ok := byName[nome]
		if !ok {
			t = &TopClient{NomeCliente: nome}
			byName[nome] = t
		}
		t.Pedidos++
		t.Total += ordens[i].Total()
	}
	ranking := make([]TopClient, 0, len(byName))
	for _, t := range byName {
		ranking = append(ranking, *t)
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Pedidos != ranking[j].Pedidos {
			return ranking[i].Pedidos > ranking[j].Pedidos
		}
		return ranking[i].Total > ranking[j].Total
	})
	if n > 0 && len(ranking) > n {
		ranking = ranking[:n]
	}
	return ranking, nil
}

// DeletedOrderStats targets only trashed orders deleted inside the trailing
// window; every other report excludes them.
func (s *ReportService) DeletedOrderStats(days int) (DeletedStats, error) {
	since := time.Now().AddDate(0, 0, -days)
	var ordens []models.Ordem
	err := s.db.Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at >= ?", since).
		Find(&ordens).Error
	if err != nil {
		return DeletedStats{}, fmt.Errorf("estatísticas da lixeira: %w", err)
	}
	st := DeletedStats{Pedidos: len(ordens)}
	for i := range ordens {
		st.Valor += ordens[i].Total()
	}
	return st, nil
}
