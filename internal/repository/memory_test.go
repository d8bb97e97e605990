package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"garderob/internal/domain"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestMemoryStore_SetCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := domain.ClothingSet{Name: "Vest A", Category: "Vest", Quantity: 3, PricePerDay: decimal.NewFromInt(20), IsActive: true}
	if err := store.Create(ctx, &s); err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.ID == 0 {
		t.Fatalf("no id")
	}

	got, err := store.GetByID(ctx, s.ID)
	if err != nil || got.ID != s.ID {
		t.Fatalf("get: %v", err)
	}

	s.Quantity = 5
	if err := store.Update(ctx, &s); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = store.GetByID(ctx, s.ID)
	if got.Quantity != 5 {
		t.Fatalf("quantity not updated")
	}

	if _, err := store.GetByID(ctx, 999); err != ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryStore_SetFilters(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	add := func(name, category string, active bool) {
		s := domain.ClothingSet{Name: name, Category: category, Quantity: 1, PricePerDay: decimal.NewFromInt(10), IsActive: active}
		if err := store.Create(ctx, &s); err != nil {
			t.Fatal(err)
		}
	}
	add("Vest A", "Vest", true)
	add("Vest B", "Vest", false)
	add("Ao dai", "Ao dai", true)

	list, _ := store.List(ctx, SetFilter{ActiveOnly: true})
	if len(list) != 2 {
		t.Fatalf("active only: expected 2, got %d", len(list))
	}

	list, _ = store.List(ctx, SetFilter{ActiveOnly: true, Category: "Vest"})
	if len(list) != 1 || list[0].Name != "Vest A" {
		t.Fatalf("category filter failed: %v", list)
	}

	list, _ = store.List(ctx, SetFilter{NameSubstring: "vest"})
	if len(list) != 2 {
		t.Fatalf("name filter: expected 2, got %d", len(list))
	}
}

func TestMemoryCategories_UniqueName(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	cats := NewMemoryCategories(store)

	c := domain.Category{Name: "Vest", IsActive: true}
	if err := cats.Create(ctx, &c); err != nil {
		t.Fatalf("create: %v", err)
	}
	dup := domain.Category{Name: "Vest", IsActive: true}
	if err := cats.Create(ctx, &dup); err != ErrDuplicateName {
		t.Fatalf("expected duplicate name, got %v", err)
	}

	other := domain.Category{Name: "Ao dai", IsActive: true}
	if err := cats.Create(ctx, &other); err != nil {
		t.Fatalf("create other: %v", err)
	}
	other.Name = "Vest"
	if err := cats.Update(ctx, &other); err != ErrDuplicateName {
		t.Fatalf("expected duplicate name on update, got %v", err)
	}
}

func TestMemoryOrders_CreateAssignsNumber(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	orders := NewMemoryOrders(store)

	set := domain.ClothingSet{Name: "Vest A", Category: "Vest", Quantity: 3, PricePerDay: decimal.NewFromInt(20), IsActive: true}
	if err := store.Create(ctx, &set); err != nil {
		t.Fatal(err)
	}

	o := domain.Order{
		CustomerName:  "Ngoc",
		CustomerPhone: "+84901234567",
		StartDate:     date(t, "2024-07-01"),
		EndDate:       date(t, "2024-07-05"),
		Status:        domain.OrderStatusUpcoming,
		TotalAmount:   decimal.NewFromInt(200),
	}
	created, err := orders.Create(ctx, &o, []domain.OrderItem{
		{ClothingSetID: set.ID, Quantity: 2, PricePerDay: decimal.NewFromInt(20), TotalPrice: decimal.NewFromInt(200)},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	prefix := "ORD-" + time.Now().UTC().Format("2006") + "-"
	if !strings.HasPrefix(created.OrderNumber, prefix) {
		t.Fatalf("order number %q lacks prefix %q", created.OrderNumber, prefix)
	}
	if len(created.Items) != 1 || created.Items[0].OrderID != created.ID {
		t.Fatalf("items not linked: %+v", created.Items)
	}
	if created.Items[0].ClothingSet.Name != "Vest A" {
		t.Fatalf("item set not resolved")
	}

	second, err := orders.Create(ctx, &domain.Order{
		CustomerName:  "Lan",
		CustomerPhone: "+84907654321",
		StartDate:     date(t, "2024-08-01"),
		EndDate:       date(t, "2024-08-03"),
		Status:        domain.OrderStatusUpcoming,
		TotalAmount:   decimal.Zero,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if second.OrderNumber == created.OrderNumber {
		t.Fatalf("order numbers must be unique")
	}
}

func TestMemoryOrders_ListFilters(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	orders := NewMemoryOrders(store)

	mk := func(start, end string, status domain.OrderStatus) {
		o := domain.Order{
			CustomerName:  "C",
			CustomerPhone: "+84900000000",
			StartDate:     date(t, start),
			EndDate:       date(t, end),
			Status:        status,
			TotalAmount:   decimal.Zero,
		}
		if _, err := orders.Create(ctx, &o, nil); err != nil {
			t.Fatal(err)
		}
	}
	mk("2024-06-01", "2024-06-10", domain.OrderStatusUpcoming)
	mk("2024-06-05", "2024-06-07", domain.OrderStatusCancelled)
	mk("2024-06-08", "2024-06-12", domain.OrderStatusReturned)
	mk("2024-07-01", "2024-07-05", domain.OrderStatusActive)

	qs, qe := date(t, "2024-06-09"), date(t, "2024-06-15")
	list, err := orders.List(ctx, OrderFilter{HoldingOnly: true, OverlapsStart: &qs, OverlapsEnd: &qe})
	if err != nil {
		t.Fatal(err)
	}
	// cancelled and returned are out, the july order does not overlap
	if len(list) != 1 || !list[0].StartDate.Equal(date(t, "2024-06-01")) {
		t.Fatalf("expected only the june upcoming order, got %d", len(list))
	}

	all, _ := orders.List(ctx, OrderFilter{})
	if len(all) != 4 {
		t.Fatalf("expected 4 orders, got %d", len(all))
	}

	// a lone bound does not form a window and must not filter anything
	half, _ := orders.List(ctx, OrderFilter{OverlapsStart: &qs})
	if len(half) != 4 {
		t.Fatalf("half-set window must be ignored, got %d orders", len(half))
	}
	half, _ = orders.List(ctx, OrderFilter{OverlapsEnd: &qe})
	if len(half) != 4 {
		t.Fatalf("half-set window must be ignored, got %d orders", len(half))
	}
}

func TestMemoryOrders_ResolveSurvivesSetDeactivation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	orders := NewMemoryOrders(store)

	set := domain.ClothingSet{Name: "Vest A", Category: "Vest", Quantity: 2, PricePerDay: decimal.NewFromInt(20), IsActive: true}
	if err := store.Create(ctx, &set); err != nil {
		t.Fatal(err)
	}
	o := domain.Order{
		CustomerName:  "Ngoc",
		CustomerPhone: "+84901234567",
		StartDate:     date(t, "2024-07-01"),
		EndDate:       date(t, "2024-07-05"),
		Status:        domain.OrderStatusUpcoming,
		TotalAmount:   decimal.NewFromInt(100),
	}
	created, err := orders.Create(ctx, &o, []domain.OrderItem{
		{ClothingSetID: set.ID, Quantity: 1, PricePerDay: decimal.NewFromInt(20), TotalPrice: decimal.NewFromInt(100)},
	})
	if err != nil {
		t.Fatal(err)
	}

	set.IsActive = false
	if err := store.Update(ctx, &set); err != nil {
		t.Fatal(err)
	}

	got, err := orders.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 1 || got.Items[0].ClothingSet.Name != "Vest A" {
		t.Fatalf("deactivated set must still resolve on order items: %+v", got.Items)
	}
}

func TestMemoryTx_AdmissionIsAtomic(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	orders := NewMemoryOrders(store)
	tx := NewMemoryTx(store)

	set := domain.ClothingSet{Name: "Vest A", Category: "Vest", Quantity: 1, PricePerDay: decimal.NewFromInt(20), IsActive: true}
	if err := store.Create(ctx, &set); err != nil {
		t.Fatal(err)
	}

	// emulate check-then-insert inside one transaction boundary
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := orders.List(ctx, OrderFilter{HoldingOnly: true})
		if err != nil {
			return err
		}
		if len(existing) != 0 {
			t.Fatalf("precondition: ledger must be empty")
		}
		o := domain.Order{
			CustomerName:  "Ngoc",
			CustomerPhone: "+84901234567",
			StartDate:     date(t, "2024-07-01"),
			EndDate:       date(t, "2024-07-05"),
			Status:        domain.OrderStatusUpcoming,
			TotalAmount:   decimal.NewFromInt(100),
		}
		_, err = orders.Create(ctx, &o, []domain.OrderItem{{ClothingSetID: set.ID, Quantity: 1, PricePerDay: decimal.NewFromInt(20), TotalPrice: decimal.NewFromInt(100)}})
		return err
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	all, _ := orders.List(context.Background(), OrderFilter{})
	if len(all) != 1 {
		t.Fatalf("expected one order, got %d", len(all))
	}
}
