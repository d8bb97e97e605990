package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"garderob/internal/domain"
	"garderob/internal/repository"
)

// ReportService агрегаты для дашборда и проекция календаря.
// Чистая отчётность поверх журнала заказов, ничего не хранит.
type ReportService struct {
	sets   repository.ClothingSetRepository
	orders repository.OrderRepository
}

func NewReportService(sets repository.ClothingSetRepository, orders repository.OrderRepository) *ReportService {
	return &ReportService{sets: sets, orders: orders}
}

// DashboardStats сводка дашборда
type DashboardStats struct {
	TotalSets      int             `json:"total_sets"`
	ActiveRentals  int             `json:"active_rentals"`
	PendingReturns int             `json:"pending_returns"`
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"`
}

// DashboardStats считает: активные комплекты каталога; прокаты, идущие
// сегодня; заказы, у которых дата возврата прошла, а статус не конечный
// (вычисляемый признак, отдельного состояния «просрочен» нет); выручку по
// заказам текущего месяца без отменённых.
func (s *ReportService) DashboardStats(ctx context.Context, now time.Time) (*DashboardStats, error) {
	sets, err := s.sets.List(ctx, repository.SetFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.List(ctx, repository.OrderFilter{})
	if err != nil {
		return nil, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	stats := &DashboardStats{TotalSets: len(sets), MonthlyRevenue: decimal.Zero}
	for _, o := range orders {
		if o.Status != domain.OrderStatusCancelled && o.Overlaps(today, today) {
			stats.ActiveRentals++
		}
		if o.HoldsInventory() && o.EndDate.Before(today) {
			stats.PendingReturns++
		}
		if o.Status != domain.OrderStatusCancelled &&
			!o.CreatedAt.Before(monthStart) && o.CreatedAt.Before(monthEnd) {
			stats.MonthlyRevenue = stats.MonthlyRevenue.Add(o.TotalAmount)
		}
	}
	return stats, nil
}

// CalendarEvent одно событие календаря: день внутри периода проката
type CalendarEvent struct {
	ID        string             `json:"id"`
	OrderID   int64              `json:"order_id"`
	Title     string             `json:"title"`
	Customer  string             `json:"customer"`
	Phone     string             `json:"phone"`
	Date      string             `json:"date"`
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
	Status    domain.OrderStatus `json:"status"`
	Items     []CalendarItem     `json:"items"`
}

// CalendarItem позиция события календаря
type CalendarItem struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int64  `json:"quantity"`
}

// CalendarEvents разворачивает неотменённые заказы, пересекающие месяц,
// в события по одному на каждый день периода проката
func (s *ReportService) CalendarEvents(ctx context.Context, year int, month time.Month) ([]CalendarEvent, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	orders, err := s.orders.List(ctx, repository.OrderFilter{
		OverlapsStart: &monthStart,
		OverlapsEnd:   &monthEnd,
	})
	if err != nil {
		return nil, err
	}

	events := make([]CalendarEvent, 0)
	for _, o := range orders {
		if o.Status == domain.OrderStatusCancelled {
			continue
		}
		names := make([]string, 0, len(o.Items))
		items := make([]CalendarItem, 0, len(o.Items))
		for _, it := range o.Items {
			names = append(names, it.ClothingSet.Name)
			items = append(items, CalendarItem{
				Name:     it.ClothingSet.Name,
				Category: it.ClothingSet.Category,
				Quantity: it.Quantity,
			})
		}
		title := strings.Join(names, ", ")
		for day := o.StartDate; !day.After(o.EndDate); day = day.AddDate(0, 0, 1) {
			date := day.Format("2006-01-02")
			events = append(events, CalendarEvent{
				ID:        fmt.Sprintf("%d-%s", o.ID, date),
				OrderID:   o.ID,
				Title:     title,
				Customer:  o.CustomerName,
				Phone:     o.CustomerPhone,
				Date:      date,
				StartDate: o.StartDate,
				EndDate:   o.EndDate,
				Status:    o.Status,
				Items:     items,
			})
		}
	}
	return events, nil
}
