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

var (
	orderOwner = &models.User{ID: "user_1", Email: "asha@example.com", Name: "Asha"}
	otherUser  = &models.User{ID: "user_2", Email: "ravi@example.com", Name: "Ravi"}
	adminUser  = &models.User{ID: "user_admin", Email: "admin@example.com", Name: "Store Admin", IsAdmin: true}
)

func seedOrder(t *testing.T, repo repositories.OrderRepository, status string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderID:    "order_abc123def456",
		UserID:     orderOwner.ID,
		Items:      []models.LineItem{{ItemID: "item_1", ItemName: "Tomato", Rate: 40.00, Quantity: 2, Total: 80.00}},
		GrandTotal: 80.00,
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	}
	assert.NoError(t, repo.Create(order))
	return order
}

func TestOrderService_ListAllRequiresAdmin(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	_, err := service.ListAll(orderOwner)
	assert.ErrorIs(t, err, services.ErrForbidden)

	orders, err := service.ListAll(adminUser)
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_ListByUserNewestFirst(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	older := &models.Order{OrderID: "order_old", UserID: orderOwner.ID, CreatedAt: time.Now().Add(-time.Hour)}
	newer := &models.Order{OrderID: "order_new", UserID: orderOwner.ID, CreatedAt: time.Now()}
	assert.NoError(t, repo.Create(older))
	assert.NoError(t, repo.Create(newer))
	assert.NoError(t, repo.Create(&models.Order{OrderID: "order_foreign", UserID: otherUser.ID, CreatedAt: time.Now()}))

	orders, err := service.ListByUser(orderOwner.ID)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, "order_new", orders[0].OrderID)
	assert.Equal(t, "order_old", orders[1].OrderID)
}

func TestOrderService_DeleteByOwner(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)
	order := seedOrder(t, repo, models.OrderStatusPending)

	assert.NoError(t, service.Delete(orderOwner, order.OrderID))

	_, err := repo.GetByID(order.OrderID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestOrderService_DeleteByAdmin(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)
	order := seedOrder(t, repo, models.OrderStatusPending)

	assert.NoError(t, service.Delete(adminUser, order.OrderID))
}

func TestOrderService_DeleteByStrangerForbidden(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)
	order := seedOrder(t, repo, models.OrderStatusPending)

	err := service.Delete(otherUser, order.OrderID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	// The order must still be there.
	_, err = repo.GetByID(order.OrderID)
	assert.NoError(t, err)
}

func TestOrderService_ConfirmRequiresAdmin(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)
	order := seedOrder(t, repo, models.OrderStatusPending)

	_, err := service.Confirm(orderOwner, order.OrderID)
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestOrderService_Confirm(t *testing.T) {
	events := new(MockEventPublisher)
	events.On("PublishOrderEvent", mock.Anything).Return(nil).Once()
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, events)
	order := seedOrder(t, repo, models.OrderStatusPending)

	confirmed, err := service.Confirm(adminUser, order.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, confirmed.Status)

	stored, err := repo.GetByID(order.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, stored.Status)

	events.AssertExpectations(t)
	published := events.Calls[0].Arguments.Get(0).(rabbitmq.OrderEvent)
	assert.Equal(t, rabbitmq.EventOrderConfirmed, published.Type)
	assert.Equal(t, models.OrderStatusConfirmed, published.Status)
}

func TestOrderService_ConfirmAlreadyConfirmedIsNoOp(t *testing.T) {
	// The mock store proves no Update (and no event) happens on the second
	// confirm.
	repo := new(MockOrderStore)
	service := services.NewOrderService(repo, nil)

	confirmed := &models.Order{OrderID: "order_abc123def456", UserID: orderOwner.ID, Status: models.OrderStatusConfirmed}
	repo.On("GetByID", confirmed.OrderID).Return(confirmed, nil).Once()

	order, err := service.Confirm(adminUser, confirmed.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	repo.AssertNotCalled(t, "Update", mock.Anything)
	repo.AssertExpectations(t)
}
