package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cardealer/cardealer_backend/models"
)

func customer(email string) *models.User {
	return &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Casey Brown",
		Email: email,
		Role:  models.RoleCustomer,
	}
}

func carWithUnits(price float64, units ...models.CarUnit) *models.Car {
	return &models.Car{
		ID:    primitive.NewObjectID(),
		Brand: "Toyota",
		Model: "Camry",
		Price: price,
		Units: units,
	}
}

func TestInitiatePurchaseUnknownUser(t *testing.T) {
	svc := NewPurchaseService(newFakeCarStore(), newFakeUserStore(), newFakeTransactionStore(), &fakeGateway{})

	_, err := svc.InitiatePurchase(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	requireServiceError(t, err, 404, "User not found")
}

func TestInitiatePurchaseUnknownCar(t *testing.T) {
	buyer := customer("casey@customer.test")
	svc := NewPurchaseService(newFakeCarStore(), newFakeUserStore(buyer), newFakeTransactionStore(), &fakeGateway{})

	_, err := svc.InitiatePurchase(context.Background(), buyer.ID, primitive.NewObjectID())
	requireServiceError(t, err, 404, "Car not found")
}

func TestInitiatePurchaseOutOfStock(t *testing.T) {
	buyer := customer("casey@customer.test")
	car := carWithUnits(25000)
	svc := NewPurchaseService(newFakeCarStore(car), newFakeUserStore(buyer), newFakeTransactionStore(), &fakeGateway{})

	_, err := svc.InitiatePurchase(context.Background(), buyer.ID, car.ID)
	requireServiceError(t, err, 400, "Car is out of stock")
}

func TestInitiatePurchaseGatewayFailureLeavesNoTransaction(t *testing.T) {
	buyer := customer("casey@customer.test")
	car := carWithUnits(25000, models.CarUnit{VIN: "VIN00000000000001", IsAvailable: true})
	transactions := newFakeTransactionStore()
	gateway := &fakeGateway{initErr: errors.New("paystack API error: Invalid key")}
	svc := NewPurchaseService(newFakeCarStore(car), newFakeUserStore(buyer), transactions, gateway)

	_, err := svc.InitiatePurchase(context.Background(), buyer.ID, car.ID)
	requireServiceError(t, err, 400, "paystack API error: Invalid key")
	assert.Empty(t, transactions.byRef)
}

func TestInitiatePurchaseRecordsPendingTransaction(t *testing.T) {
	buyer := customer("casey@customer.test")
	car := carWithUnits(25000, models.CarUnit{VIN: "VIN00000000000001", IsAvailable: true})
	transactions := newFakeTransactionStore()
	gateway := &fakeGateway{initData: &models.PaystackInitData{
		AuthorizationURL: "https://checkout.paystack.com/abc123",
		Reference:        "ref-abc123",
	}}
	svc := NewPurchaseService(newFakeCarStore(car), newFakeUserStore(buyer), transactions, gateway)

	link, err := svc.InitiatePurchase(context.Background(), buyer.ID, car.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc123", link)

	// amount reaches the gateway in minor units
	assert.Equal(t, int64(2500000), gateway.lastAmount)
	assert.Equal(t, buyer.Email, gateway.lastEmail)

	tx, _ := transactions.FindByReference(context.Background(), "ref-abc123")
	require.NotNil(t, tx)
	assert.Equal(t, models.StatusPending, tx.Status)
	assert.Equal(t, 25000.0, tx.Amount)
	assert.Equal(t, buyer.ID, tx.Metadata.User)
	assert.Equal(t, car.ID, tx.Metadata.Car)
}

func TestInitiatePurchaseRoundsMinorUnits(t *testing.T) {
	cases := map[float64]int64{
		4.35:     435,
		29.35:    2935,
		19999.99: 1999999,
		25000:    2500000,
	}
	for price, wantMinor := range cases {
		buyer := customer("casey@customer.test")
		car := carWithUnits(price, models.CarUnit{VIN: "VIN00000000000001", IsAvailable: true})
		gateway := &fakeGateway{initData: &models.PaystackInitData{
			AuthorizationURL: "https://checkout.paystack.com/abc123",
			Reference:        "ref-abc123",
		}}
		svc := NewPurchaseService(newFakeCarStore(car), newFakeUserStore(buyer), newFakeTransactionStore(), gateway)

		_, err := svc.InitiatePurchase(context.Background(), buyer.ID, car.ID)
		require.NoError(t, err)
		assert.Equal(t, wantMinor, gateway.lastAmount, "price %v", price)
	}
}

func TestCompletePurchaseRequiresReference(t *testing.T) {
	svc := NewPurchaseService(newFakeCarStore(), newFakeUserStore(), newFakeTransactionStore(), &fakeGateway{})

	_, err := svc.CompletePurchase(context.Background(), primitive.NewObjectID(), " ")
	requireServiceError(t, err, 400, "Reference is required!")
}

func TestCompletePurchasePaymentNotSuccessful(t *testing.T) {
	buyer := customer("casey@customer.test")
	gateway := &fakeGateway{verifyData: &models.PaystackVerifyData{Status: "failed", Reference: "ref-abc123"}}
	svc := NewPurchaseService(newFakeCarStore(), newFakeUserStore(buyer), newFakeTransactionStore(), gateway)

	_, err := svc.CompletePurchase(context.Background(), buyer.ID, "ref-abc123")
	requireServiceError(t, err, 400, "Payment not successful")
}

func TestCompletePurchaseUnknownReference(t *testing.T) {
	buyer := customer("casey@customer.test")
	gateway := &fakeGateway{verifyData: &models.PaystackVerifyData{Status: "success", Reference: "ref-abc123"}}
	svc := NewPurchaseService(newFakeCarStore(), newFakeUserStore(buyer), newFakeTransactionStore(), gateway)

	_, err := svc.CompletePurchase(context.Background(), buyer.ID, "ref-abc123")
	requireServiceError(t, err, 404, "Transaction not found or already completed")
}

func TestCompletePurchaseConsumesOneUnit(t *testing.T) {
	buyer := customer("casey@customer.test")
	car := carWithUnits(25000,
		models.CarUnit{VIN: "VIN00000000000001", IsAvailable: false},
		models.CarUnit{VIN: "VIN00000000000002", IsAvailable: true},
		models.CarUnit{VIN: "VIN00000000000003", IsAvailable: true},
	)
	tx := &models.Transaction{
		Email:     buyer.Email,
		Amount:    car.Price,
		Reference: "ref-abc123",
		Status:    models.StatusPending,
		Metadata:  models.TransactionMetadata{User: buyer.ID, Car: car.ID},
	}

	cars := newFakeCarStore(car)
	users := newFakeUserStore(buyer)
	transactions := newFakeTransactionStore(tx)
	gateway := &fakeGateway{verifyData: &models.PaystackVerifyData{Status: "success", Reference: "ref-abc123"}}
	svc := NewPurchaseService(cars, users, transactions, gateway)

	vin, err := svc.CompletePurchase(context.Background(), buyer.ID, "ref-abc123")
	require.NoError(t, err)
	assert.Equal(t, "VIN00000000000002", vin)

	gotCar, _ := cars.FindByID(context.Background(), car.ID)
	assert.Equal(t, 1, gotCar.AvailableUnits())

	gotBuyer, _ := users.FindByID(context.Background(), buyer.ID)
	require.Len(t, gotBuyer.CarsPurchased, 1)
	assert.Equal(t, car.ID, gotBuyer.CarsPurchased[0].Car)
	assert.Equal(t, "VIN00000000000002", gotBuyer.CarsPurchased[0].VIN)
	assert.Equal(t, 25000.0, gotBuyer.CarsPurchased[0].Price)

	gotTx, _ := transactions.FindByReference(context.Background(), "ref-abc123")
	assert.Equal(t, models.StatusSuccess, gotTx.Status)
}

func TestCompletePurchaseTwiceConflicts(t *testing.T) {
	buyer := customer("casey@customer.test")
	car := carWithUnits(25000,
		models.CarUnit{VIN: "VIN00000000000001", IsAvailable: true},
		models.CarUnit{VIN: "VIN00000000000002", IsAvailable: true},
	)
	tx := &models.Transaction{
		Email:     buyer.Email,
		Amount:    car.Price,
		Reference: "ref-abc123",
		Status:    models.StatusPending,
		Metadata:  models.TransactionMetadata{User: buyer.ID, Car: car.ID},
	}

	cars := newFakeCarStore(car)
	users := newFakeUserStore(buyer)
	transactions := newFakeTransactionStore(tx)
	gateway := &fakeGateway{verifyData: &models.PaystackVerifyData{Status: "success", Reference: "ref-abc123"}}
	svc := NewPurchaseService(cars, users, transactions, gateway)

	_, err := svc.CompletePurchase(context.Background(), buyer.ID, "ref-abc123")
	require.NoError(t, err)

	_, err = svc.CompletePurchase(context.Background(), buyer.ID, "ref-abc123")
	requireServiceError(t, err, 409, "Payment has been verified already")

	// the second call must not touch inventory or the purchase log
	gotCar, _ := cars.FindByID(context.Background(), car.ID)
	assert.Equal(t, 1, gotCar.AvailableUnits())

	gotBuyer, _ := users.FindByID(context.Background(), buyer.ID)
	assert.Len(t, gotBuyer.CarsPurchased, 1)
}

func TestCompletePurchaseNoAvailableUnit(t *testing.T) {
	buyer := customer("casey@customer.test")
	car := carWithUnits(25000, models.CarUnit{VIN: "VIN00000000000001", IsAvailable: false})
	tx := &models.Transaction{
		Email:     buyer.Email,
		Amount:    car.Price,
		Reference: "ref-abc123",
		Status:    models.StatusPending,
		Metadata:  models.TransactionMetadata{User: buyer.ID, Car: car.ID},
	}
	gateway := &fakeGateway{verifyData: &models.PaystackVerifyData{Status: "success", Reference: "ref-abc123"}}
	svc := NewPurchaseService(newFakeCarStore(car), newFakeUserStore(buyer), newFakeTransactionStore(tx), gateway)

	_, err := svc.CompletePurchase(context.Background(), buyer.ID, "ref-abc123")
	requireServiceError(t, err, 400, "No available unit found for this car")
}

func TestGetPurchasedCar(t *testing.T) {
	carID := primitive.NewObjectID()
	buyer := customer("casey@customer.test")
	buyer.CarsPurchased = []models.PurchasedCar{{Car: carID, VIN: "VIN00000000000001", Price: 25000}}

	svc := NewPurchaseService(newFakeCarStore(), newFakeUserStore(buyer), newFakeTransactionStore(), &fakeGateway{})

	purchase, err := svc.GetPurchasedCar(context.Background(), buyer.ID, carID)
	require.NoError(t, err)
	assert.Equal(t, "VIN00000000000001", purchase.VIN)
	assert.Equal(t, 25000.0, purchase.Price)

	_, err = svc.GetPurchasedCar(context.Background(), buyer.ID, primitive.NewObjectID())
	requireServiceError(t, err, 404, "Purchased car not found")
}
