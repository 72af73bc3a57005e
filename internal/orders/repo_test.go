package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sivermarket/siver-backend/pkg/db/models"
	"github.com/sivermarket/siver-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	communes := `
CREATE TABLE IF NOT EXISTS communes (
  id TEXT PRIMARY KEY,
  department_id TEXT NOT NULL,
  code TEXT NOT NULL,
  name TEXT NOT NULL,
  local_delivery_fee REAL NOT NULL DEFAULT 0,
  operational_fee REAL NOT NULL DEFAULT 0,
  insurance_rate_percent REAL NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	customerOrders := `
CREATE TABLE IF NOT EXISTS customer_orders (
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL UNIQUE,
  source TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  payment_status TEXT NOT NULL DEFAULT 'unpaid',
  commune_id TEXT NOT NULL,
  unit_count INTEGER NOT NULL DEFAULT 0,
  weight_grams REAL NOT NULL DEFAULT 0,
  total_amount NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderPOLinks := `
CREATE TABLE IF NOT EXISTS order_po_links (
  id TEXT PRIMARY KEY,
  purchase_order_id TEXT NOT NULL,
  order_id TEXT NOT NULL UNIQUE,
  source TEXT NOT NULL,
  hybrid_tracking_id TEXT,
  unit_count INTEGER NOT NULL DEFAULT 0,
  current_status TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`

	for _, stmt := range []string{communes, customerOrders, orderPOLinks} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, number string, status enums.OrderStatus, payment enums.PaymentStatus, createdAt time.Time) models.CustomerOrder {
	t.Helper()
	order := models.CustomerOrder{
		ID:            uuid.New(),
		OrderNumber:   number,
		Source:        enums.OrderSourceB2C,
		Status:        status,
		PaymentStatus: payment,
		CommuneID:     uuid.New(),
		UnitCount:     2,
		WeightGrams:   1500,
		TotalAmount:   decimal.NewFromInt(40),
		CreatedAt:     createdAt,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestFindEligibleUnlinked(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	base := time.Now().Add(-time.Hour)

	eligibleOld := seedOrder(t, db, "ORD-0001", enums.OrderStatusPending, enums.PaymentStatusPaid, base)
	eligibleNew := seedOrder(t, db, "ORD-0002", enums.OrderStatusConfirmed, enums.PaymentStatusPaid, base.Add(10*time.Minute))
	seedOrder(t, db, "ORD-0003", enums.OrderStatusPending, enums.PaymentStatusUnpaid, base)

	linked := seedOrder(t, db, "ORD-0004", enums.OrderStatusConfirmed, enums.PaymentStatusPaid, base)
	link := models.OrderPOLink{
		ID:              uuid.New(),
		PurchaseOrderID: uuid.New(),
		OrderID:         linked.ID,
		Source:          linked.Source,
		UnitCount:       linked.UnitCount,
		CurrentStatus:   enums.POStatusOpen,
	}
	require.NoError(t, db.Create(&link).Error)

	found, err := repo.FindEligibleUnlinked(context.Background())
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, eligibleOld.ID, found[0].ID)
	assert.Equal(t, eligibleNew.ID, found[1].ID)
}

func TestFindByPurchaseOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	poID := uuid.New()
	base := time.Now().Add(-time.Hour)

	first := seedOrder(t, db, "ORD-0101", enums.OrderStatusConfirmed, enums.PaymentStatusPaid, base)
	second := seedOrder(t, db, "ORD-0102", enums.OrderStatusConfirmed, enums.PaymentStatusPaid, base.Add(time.Minute))
	seedOrder(t, db, "ORD-0103", enums.OrderStatusConfirmed, enums.PaymentStatusPaid, base)

	for _, order := range []models.CustomerOrder{first, second} {
		link := models.OrderPOLink{
			ID:              uuid.New(),
			PurchaseOrderID: poID,
			OrderID:         order.ID,
			Source:          order.Source,
			UnitCount:       order.UnitCount,
			CurrentStatus:   enums.POStatusOpen,
		}
		require.NoError(t, db.Create(&link).Error)
	}

	found, err := repo.FindByPurchaseOrder(context.Background(), poID)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, first.ID, found[0].ID)
	assert.Equal(t, second.ID, found[1].ID)
}

func TestUpdateStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	base := time.Now()

	target := seedOrder(t, db, "ORD-0201", enums.OrderStatusPending, enums.PaymentStatusPaid, base)
	untouched := seedOrder(t, db, "ORD-0202", enums.OrderStatusPending, enums.PaymentStatusPaid, base)

	require.NoError(t, repo.UpdateStatus(context.Background(), []uuid.UUID{target.ID}, enums.OrderStatusInCycle))

	var reloaded models.CustomerOrder
	require.NoError(t, db.Where("id = ?", target.ID).First(&reloaded).Error)
	assert.Equal(t, enums.OrderStatusInCycle, reloaded.Status)

	var reloadedUntouched models.CustomerOrder
	require.NoError(t, db.Where("id = ?", untouched.ID).First(&reloadedUntouched).Error)
	assert.Equal(t, enums.OrderStatusPending, reloadedUntouched.Status)

	// empty id slice is a no-op
	require.NoError(t, repo.UpdateStatus(context.Background(), nil, enums.OrderStatusInCycle))
}
