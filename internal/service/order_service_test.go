package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"garderob/internal/domain"
	"garderob/internal/repository"
)

func setup(t *testing.T) (*SetService, *OrderService) {
	t.Helper()
	store := repository.NewMemoryStore()
	ordersRepo := repository.NewMemoryOrders(store)
	tx := repository.NewMemoryTx(store)
	av := NewAvailabilityService(store, ordersRepo)
	sets := NewSetService(store)
	orders := NewOrderService(store, ordersRepo, av, tx)
	return sets, orders
}

func testDraft(t *testing.T, start, end string) OrderDraft {
	t.Helper()
	return OrderDraft{
		CustomerName:  "Ngoc",
		CustomerPhone: "+84 90 123 4567",
		StartDate:     date(t, start),
		EndDate:       date(t, end),
	}
}

func TestCreateOrder_CleanBooking(t *testing.T) {
	ctx := context.Background()
	sets, orders := setup(t)
	set, err := sets.Create(ctx, domain.ClothingSet{Name: "Vest A", Category: "Vest", Quantity: 3, PricePerDay: decimal.NewFromInt(20)})
	if err != nil {
		t.Fatalf("create set: %v", err)
	}

	o, err := orders.CreateOrder(ctx, testDraft(t, "2024-07-01", "2024-07-05"), []ItemRequest{
		{ClothingSetID: set.ID, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if o.Status != domain.OrderStatusUpcoming {
		t.Fatalf("expected upcoming, got %s", o.Status)
	}
	if o.OrderNumber == "" {
		t.Fatalf("no order number")
	}
	// 2 units × 20/day × 5 days
	if !o.TotalAmount.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("total expected 200, got %s", o.TotalAmount)
	}
	if len(o.Items) != 1 || !o.Items[0].PricePerDay.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("price snapshot missing: %+v", o.Items)
	}

	available, _, err := orders.availability.AvailableQuantity(ctx, set.ID, date(t, "2024-07-03"), date(t, "2024-07-08"))
	if err != nil {
		t.Fatal(err)
	}
	if available != 1 {
		t.Fatalf("overlapping availability expected 1, got %d", available)
	}
}

func TestCreateOrder_Exhaustion(t *testing.T) {
	ctx := context.Background()
	sets, orders := setup(t)
	set, _ := sets.Create(ctx, domain.ClothingSet{Name: "Vest A", Category: "Vest", Quantity: 3, PricePerDay: decimal.NewFromInt(20)})

	if _, err := orders.CreateOrder(ctx, testDraft(t, "2024-07-01", "2024-07-05"), []ItemRequest{{ClothingSetID: set.ID, Quantity: 2}}); err != nil {
		t.Fatalf("first order: %v", err)
	}

	_, err := orders.CreateOrder(ctx, testDraft(t, "2024-07-03", "2024-07-06"), []ItemRequest{{ClothingSetID: set.ID, Quantity: 2}})
	var inv *InsufficientInventoryError
	if !errors.As(err, &inv) {
		t.Fatalf("expected insufficient inventory, got %v", err)
	}
	if inv.Available != 1 || inv.Requested != 2 || inv.ClothingSetID != set.ID {
		t.Fatalf("wrong detail: %+v", inv)
	}

	// failed admission leaves no partial order behind
	list, err := orders.ListOrders(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 order in the ledger, got %d", len(list))
	}
}

func TestCreateOrder_NonOverlappingDates(t *testing.T) {
	ctx := context.Background()
	sets, orders := setup(t)
	set, _ := sets.Create(ctx, domain.ClothingSet{Name: "Vest A", Category: "Vest", Quantity: 3, PricePerDay: decimal.NewFromInt(20)})

	if _, err := orders.CreateOrder(ctx, testDraft(t, "2024-07-01", "2024-07-05"), []ItemRequest{{ClothingSetID: set.ID, Quantity: 2}}); err != nil {
		t.Fatalf("july order: %v", err)
	}
	if _, err := orders.CreateOrder(ctx, testDraft(t, "2024-08-01", "2024-08-03"), []ItemRequest{{ClothingSetID: set.ID, Quantity: 3}}); err != nil {
		t.Fatalf("non-overlapping august order must succeed: %v", err)
	}

	// july availability unaffected by the august booking
	available, _, err := orders.availability.AvailableQuantity(ctx, set.ID, date(t, "2024-07-02"), date(t, "2024-07-04"))
	if err != nil {
		t.Fatal(err)
	}
	if available != 1 {
		t.Fatalf("july availability expected 1, got %d", available)
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	ctx := context.Background()
	sets, orders := setup(t)
	set, _ := sets.Create(ctx, domain.ClothingSet{Name: "Vest A", Category: "Vest", Quantity: 3, PricePerDay: decimal.NewFromInt(20)})

	ok := testDraft(t, "2024-07-01", "2024-07-05")
	items := []ItemRequest{{ClothingSetID: set.ID, Quantity: 1}}

	noName := ok
	noName.CustomerName = ""
	if _, err := orders.CreateOrder(ctx, noName, items); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty name, got %v", err)
	}

	badPhone := ok
	badPhone.CustomerPhone = "call me"
	if _, err := orders.CreateOrder(ctx, badPhone, items); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for phone, got %v", err)
	}

	badEmail := ok
	badEmail.CustomerEmail = "not-an-email"
	if _, err := orders.CreateOrder(ctx, badEmail, items); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for email, got %v", err)
	}

	badRange := ok
	badRange.EndDate = badRange.StartDate
	if _, err := orders.CreateOrder(ctx, badRange, items); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for range, got %v", err)
	}

	if _, err := orders.CreateOrder(ctx, ok, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty items, got %v", err)
	}
	if _, err := orders.CreateOrder(ctx, ok, []ItemRequest{{ClothingSetID: set.ID, Quantity: 0}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for zero quantity, got %v", err)
	}
	if _, err := orders.CreateOrder(ctx, ok, []ItemRequest{{ClothingSetID: 999, Quantity: 1}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown set, got %v", err)
	}
}

func TestCreateOrder_PriceSnapshotDecoupled(t *testing.T) {
	ctx := context.Background()
	sets, orders := setup(t)
	set, _ := sets.Create(ctx, domain.ClothingSet{Name: "Vest A", Category: "Vest", Quantity: 3, PricePerDay: decimal.NewFromInt(20)})

	o, err := orders.CreateOrder(ctx, testDraft(t, "2024-07-01", "2024-07-05"), []ItemRequest{{ClothingSetID: set.ID, Quantity: 1}})
	if err != nil {
		t.Fatal(err)
	}

	// raise the catalog price after admission
	set.PricePerDay = decimal.NewFromInt(50)
	if _, err := sets.Update(ctx, *set); err != nil {
		t.Fatal(err)
	}

	reloaded, err := orders.GetOrder(ctx, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !reloaded.Items[0].PricePerDay.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("snapshot must not follow catalog price: %s", reloaded.Items[0].PricePerDay)
	}
}

func TestUpdateStatus_Transitions(t *testing.T) {
	ctx := context.Background()
	sets, orders := setup(t)
	set, _ := sets.Create(ctx, domain.ClothingSet{Name: "Vest A", Category: "Vest", Quantity: 3, PricePerDay: decimal.NewFromInt(20)})
	o, err := orders.CreateOrder(ctx, testDraft(t, "2024-07-01", "2024-07-05"), []ItemRequest{{ClothingSetID: set.ID, Quantity: 1}})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := orders.UpdateStatus(ctx, o.ID, "shipped"); err != nil {
		t.Fatalf("upcoming->shipped: %v", err)
	}
	if _, err := orders.UpdateStatus(ctx, o.ID, "upcoming"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("backward transition must fail, got %v", err)
	}
	// skipping ahead is allowed (early return)
	if _, err := orders.UpdateStatus(ctx, o.ID, "returned"); err != nil {
		t.Fatalf("shipped->returned: %v", err)
	}
	if _, err := orders.UpdateStatus(ctx, o.ID, "cancelled"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("terminal order must be immutable, got %v", err)
	}
	if _, err := orders.UpdateStatus(ctx, o.ID, "express"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown status must fail, got %v", err)
	}
}

func TestUpdateStatus_ReturnedFreesInventory(t *testing.T) {
	ctx := context.Background()
	sets, orders := setup(t)
	set, _ := sets.Create(ctx, domain.ClothingSet{Name: "Vest A", Category: "Vest", Quantity: 1, PricePerDay: decimal.NewFromInt(20)})
	o, err := orders.CreateOrder(ctx, testDraft(t, "2024-07-01", "2024-07-05"), []ItemRequest{{ClothingSetID: set.ID, Quantity: 1}})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := orders.CreateOrder(ctx, testDraft(t, "2024-07-03", "2024-07-06"), []ItemRequest{{ClothingSetID: set.ID, Quantity: 1}}); err == nil {
		t.Fatalf("expected insufficient inventory while held")
	}

	if _, err := orders.UpdateStatus(ctx, o.ID, "returned"); err != nil {
		t.Fatal(err)
	}
	if _, err := orders.CreateOrder(ctx, testDraft(t, "2024-07-03", "2024-07-06"), []ItemRequest{{ClothingSetID: set.ID, Quantity: 1}}); err != nil {
		t.Fatalf("returned order must not hold inventory: %v", err)
	}
}

func TestCreateOrder_ConcurrentAdmissionNoDoubleBooking(t *testing.T) {
	ctx := context.Background()
	sets, orders := setup(t)
	set, err := sets.Create(ctx, domain.ClothingSet{Name: "Vest A", Category: "Vest", Quantity: 1, PricePerDay: decimal.NewFromInt(20)})
	if err != nil {
		t.Fatal(err)
	}

	// race N admissions for the last remaining unit over the same range:
	// the check and the insert share one transaction, so exactly one may win
	const n = 16
	var wg sync.WaitGroup
	var admitted int64
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := orders.CreateOrder(ctx, testDraft(t, "2024-07-01", "2024-07-05"), []ItemRequest{
				{ClothingSetID: set.ID, Quantity: 1},
			})
			if err == nil {
				atomic.AddInt64(&admitted, 1)
				return
			}
			var inv *InsufficientInventoryError
			if !errors.As(err, &inv) {
				t.Errorf("unexpected admission error: %v", err)
			}
		}()
	}
	wg.Wait()

	if admitted != 1 {
		t.Fatalf("expected exactly 1 admission, got %d", admitted)
	}
	available, _, err := orders.availability.AvailableQuantity(ctx, set.ID, date(t, "2024-07-01"), date(t, "2024-07-05"))
	if err != nil {
		t.Fatal(err)
	}
	if available != 0 {
		t.Fatalf("availability after the race expected 0, got %d", available)
	}
	list, err := orders.ListOrders(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("ledger must hold exactly 1 order, got %d", len(list))
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	ctx := context.Background()
	_, orders := setup(t)
	if _, err := orders.UpdateStatus(ctx, 999, "shipped"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
