package services_test

import (
	"testing"
	"time"

	"kirana/internal/models"
	"kirana/internal/repositories"
	"kirana/internal/services"
	"kirana/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of services.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishOrderEvent(event rabbitmq.OrderEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockOrderStore is a mock implementation of repositories.OrderRepository
// for tests that need to observe or fail individual calls.
type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) GetAll() ([]models.Order, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderStore) GetByUser(userID string) ([]models.Order, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderStore) GetByID(id string) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderStore) Create(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderStore) Update(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderStore) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

type checkoutFixture struct {
	service   *services.CheckoutService
	userRepo  *repositories.MockUserRepository
	cartRepo  *repositories.MockCartRepository
	orderRepo *repositories.MockOrderRepository
	user      *models.User
}

func newCheckoutFixture(t *testing.T, events services.EventPublisher) *checkoutFixture {
	t.Helper()

	userRepo := repositories.NewMockUserRepository()
	cartRepo := repositories.NewMockCartRepository()
	orderRepo := repositories.NewMockOrderRepository()

	user := &models.User{
		ID:          "user_1",
		Email:       "asha@example.com",
		Name:        "Asha",
		PhoneNumber: "9876543210",
		HomeAddress: "12 Market Road",
	}
	assert.NoError(t, userRepo.Create(user))

	carts := services.NewCartService(cartRepo)
	users := services.NewUserService(userRepo)
	service := services.NewCheckoutService(orderRepo, carts, users, events)

	return &checkoutFixture{
		service:   service,
		userRepo:  userRepo,
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		user:      user,
	}
}

func billItems() []models.LineItem {
	return []models.LineItem{
		{ItemID: "item_1", ItemName: "Tomato", Rate: 40.00, Quantity: 2},
		{ItemID: "item_2", ItemName: "Milk", Rate: 28.00, Quantity: 1},
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newCheckoutFixture(t, nil)

	order, err := f.service.Checkout(f.user, services.CheckoutInput{})

	assert.ErrorIs(t, err, services.ErrEmptyCart)
	assert.Nil(t, order)
}

func TestCheckout_ZeroQuantityRejected(t *testing.T) {
	f := newCheckoutFixture(t, nil)

	order, err := f.service.Checkout(f.user, services.CheckoutInput{
		Items: []models.LineItem{{ItemID: "item_1", ItemName: "Tomato", Rate: 40.00, Quantity: 0}},
	})

	assert.ErrorIs(t, err, services.ErrInvalidQuantity)
	assert.Nil(t, order)

	orders, err := f.orderRepo.GetByUser(f.user.ID)
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckout_SuspendsWhenProfileIncomplete(t *testing.T) {
	f := newCheckoutFixture(t, nil)

	newcomer := &models.User{ID: "user_2", Email: "ravi@example.com", Name: "Ravi"}
	assert.NoError(t, f.userRepo.Create(newcomer))

	order, err := f.service.Checkout(newcomer, services.CheckoutInput{Items: billItems()})

	assert.ErrorIs(t, err, services.ErrProfileIncomplete)
	assert.Nil(t, order)

	orders, err := f.orderRepo.GetByUser(newcomer.ID)
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckout_ShortPhoneRejected(t *testing.T) {
	f := newCheckoutFixture(t, nil)

	newcomer := &models.User{ID: "user_2", Email: "ravi@example.com", Name: "Ravi"}
	assert.NoError(t, f.userRepo.Create(newcomer))

	order, err := f.service.Checkout(newcomer, services.CheckoutInput{
		Items:       billItems(),
		PhoneNumber: "12345",
		HomeAddress: "12 Market Road",
	})

	assert.ErrorIs(t, err, services.ErrInvalidProfile)
	assert.Nil(t, order)

	// The rejected values must not have leaked onto the profile.
	stored, err := f.userRepo.GetByID(newcomer.ID)
	assert.NoError(t, err)
	assert.Empty(t, stored.PhoneNumber)

	orders, err := f.orderRepo.GetByUser(newcomer.ID)
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckout_CreatesOrderAndClearsCart(t *testing.T) {
	events := new(MockEventPublisher)
	events.On("PublishOrderEvent", mock.Anything).Return(nil).Once()
	f := newCheckoutFixture(t, events)

	assert.NoError(t, f.cartRepo.Put(&models.Cart{UserID: f.user.ID, Items: billItems()}))

	order, err := f.service.Checkout(f.user, services.CheckoutInput{Items: billItems()})

	assert.NoError(t, err)
	assert.NotEmpty(t, order.OrderID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 108.00, order.GrandTotal)
	assert.Equal(t, 80.00, order.Items[0].Total)
	assert.Equal(t, 28.00, order.Items[1].Total)

	// The order snapshots the customer's contact info at checkout time.
	assert.Equal(t, "Asha", order.UserName)
	assert.Equal(t, "asha@example.com", order.UserEmail)
	assert.Equal(t, "9876543210", order.UserPhone)
	assert.Equal(t, "12 Market Road", order.UserAddress)

	_, err = f.cartRepo.Get(f.user.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	events.AssertExpectations(t)
	published := events.Calls[0].Arguments.Get(0).(rabbitmq.OrderEvent)
	assert.Equal(t, rabbitmq.EventOrderCreated, published.Type)
	assert.Equal(t, order.OrderID, published.OrderID)
}

func TestCheckout_ProfilePersistsBeforeOrderWrite(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	cartRepo := repositories.NewMockCartRepository()
	orderRepo := new(MockOrderStore)

	newcomer := &models.User{ID: "user_2", Email: "ravi@example.com", Name: "Ravi"}
	assert.NoError(t, userRepo.Create(newcomer))

	// At the moment the order write happens, the supplied contact info must
	// already be on the stored profile.
	orderRepo.On("Create", mock.Anything).Run(func(args mock.Arguments) {
		stored, err := userRepo.GetByID(newcomer.ID)
		assert.NoError(t, err)
		assert.Equal(t, "9876543210", stored.PhoneNumber)
		assert.Equal(t, "12 Market Road", stored.HomeAddress)
	}).Return(nil).Once()

	service := services.NewCheckoutService(orderRepo, services.NewCartService(cartRepo), services.NewUserService(userRepo), nil)

	order, err := service.Checkout(newcomer, services.CheckoutInput{
		Items:       billItems(),
		PhoneNumber: "9876543210",
		HomeAddress: "12 Market Road",
	})

	assert.NoError(t, err)
	assert.Equal(t, "9876543210", order.UserPhone)
	orderRepo.AssertExpectations(t)
}

func TestCheckout_EditRewritesBillOnly(t *testing.T) {
	f := newCheckoutFixture(t, nil)

	createdAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	existing := &models.Order{
		OrderID:     "order_abc123def456",
		UserID:      f.user.ID,
		Items:       billItems(),
		GrandTotal:  108.00,
		Status:      models.OrderStatusConfirmed,
		UserName:    "Asha",
		UserEmail:   "asha@example.com",
		UserPhone:   "9876543210",
		UserAddress: "12 Market Road",
		CreatedAt:   createdAt,
	}
	assert.NoError(t, f.orderRepo.Create(existing))

	order, err := f.service.Checkout(f.user, services.CheckoutInput{
		Items: []models.LineItem{{ItemID: "item_3", ItemName: "Apple", Rate: 120.00, Quantity: 3}},
		Edit:  &services.EditSession{OrderID: existing.OrderID},
	})

	assert.NoError(t, err)
	assert.Equal(t, existing.OrderID, order.OrderID)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, 360.00, order.GrandTotal)

	// Status, customer snapshot and creation time survive the edit. An edit
	// after confirmation stays last-write-wins on the bill alone.
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.Equal(t, "9876543210", order.UserPhone)
	assert.Equal(t, createdAt, order.CreatedAt)
}

func TestCheckout_EditAnotherUsersOrder(t *testing.T) {
	f := newCheckoutFixture(t, nil)

	assert.NoError(t, f.orderRepo.Create(&models.Order{
		OrderID: "order_abc123def456",
		UserID:  "user_other",
		Status:  models.OrderStatusPending,
	}))

	order, err := f.service.Checkout(f.user, services.CheckoutInput{
		Items: billItems(),
		Edit:  &services.EditSession{OrderID: "order_abc123def456"},
	})

	assert.ErrorIs(t, err, services.ErrForbidden)
	assert.Nil(t, order)
}

func TestCheckout_EditUnknownOrder(t *testing.T) {
	f := newCheckoutFixture(t, nil)

	order, err := f.service.Checkout(f.user, services.CheckoutInput{
		Items: billItems(),
		Edit:  &services.EditSession{OrderID: "order_missing00000"},
	})

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, order)
}

func TestCheckout_PublishFailureDoesNotFailCheckout(t *testing.T) {
	events := new(MockEventPublisher)
	events.On("PublishOrderEvent", mock.Anything).Return(assert.AnError).Once()
	f := newCheckoutFixture(t, events)

	order, err := f.service.Checkout(f.user, services.CheckoutInput{Items: billItems()})

	assert.NoError(t, err)
	assert.NotNil(t, order)
	events.AssertExpectations(t)
}
