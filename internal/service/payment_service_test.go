package service

import (
	"errors"
	"testing"

	"github.com/gemstone-shop/gemstone/internal/constants"
	"github.com/gemstone-shop/gemstone/internal/models"
	"github.com/gemstone-shop/gemstone/internal/repository"

	"gorm.io/gorm"
)

func newPaymentServiceForTest(db *gorm.DB) *PaymentService {
	return NewPaymentService(repository.NewPaymentRepository(db), repository.NewOrderRepository(db))
}

func placeTestOrder(t *testing.T, db *gorm.DB, userID uint, productName string) *models.Order {
	t.Helper()
	product := createTestProduct(t, db, productName, "100.00", 10)
	cartSvc := newCartServiceForTest(db)
	if _, err := cartSvc.AddItem(userID, product.ID, 1); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	order, err := newOrderServiceForTest(db).Checkout(checkoutInput(userID))
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	return order
}

func TestPaymentOneToOnePerOrder(t *testing.T) {
	db := setupTestDB(t, "payment_one")
	user := createTestUser(t, db, "pay@example.com")
	order := placeTestOrder(t, db, user.ID, "Gold Grain Pouch")
	svc := newPaymentServiceForTest(db)

	input := CreatePaymentInput{
		UserID:        user.ID,
		OrderID:       order.ID,
		PaymentID:     "pmt_00001",
		Amount:        order.TotalPrice,
		PaymentMethod: "bank_transfer",
	}
	payment, err := svc.Create(input)
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	if payment.Status != constants.PaymentStatusPending {
		t.Fatalf("status want pending got %s", payment.Status)
	}

	if _, err := svc.Create(input); !errors.Is(err, ErrPaymentExists) {
		t.Fatalf("want ErrPaymentExists got %v", err)
	}
}

func TestPaymentPaidStatusMirroredOntoOrder(t *testing.T) {
	db := setupTestDB(t, "payment_mirror")
	user := createTestUser(t, db, "mirror@example.com")
	order := placeTestOrder(t, db, user.ID, "Silver Round")
	svc := newPaymentServiceForTest(db)

	_, err := svc.Create(CreatePaymentInput{
		UserID:  user.ID,
		OrderID: order.ID,
		Amount:  order.TotalPrice,
		Status:  constants.PaymentStatusPaid,
	})
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("order payment status want paid got %s", reloaded.PaymentStatus)
	}
}

func TestPaymentScopedToOrderOwner(t *testing.T) {
	db := setupTestDB(t, "payment_scope")
	owner := createTestUser(t, db, "payowner@example.com")
	other := createTestUser(t, db, "payother@example.com")
	order := placeTestOrder(t, db, owner.ID, "Platinum Ingot")
	svc := newPaymentServiceForTest(db)

	// paying someone else's order reads as a missing order
	_, err := svc.Create(CreatePaymentInput{UserID: other.ID, OrderID: order.ID, Amount: order.TotalPrice})
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound got %v", err)
	}

	payment, err := svc.Create(CreatePaymentInput{UserID: owner.ID, OrderID: order.ID, Amount: order.TotalPrice})
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}

	if _, err := svc.Get(payment.ID, other.ID, false); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("want ErrPaymentNotFound got %v", err)
	}
	if _, err := svc.Get(payment.ID, other.ID, true); err != nil {
		t.Fatalf("staff get failed: %v", err)
	}
	if _, err := svc.Get(payment.ID, owner.ID, false); err != nil {
		t.Fatalf("owner get failed: %v", err)
	}
}
