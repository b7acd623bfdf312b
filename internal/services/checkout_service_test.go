package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zoru/internal/models"
	"zoru/internal/repositories"
	"zoru/pkg/mercadopago"
	"zoru/pkg/rabbitmq"
)

// fakeGateway captures the preference request and serves a canned
// payment for webhook lookups.
type fakeGateway struct {
	lastPref mercadopago.PreferenceRequest
	payment  *mercadopago.Payment
	failPref bool
}

func (g *fakeGateway) CreatePreference(_ context.Context, pref mercadopago.PreferenceRequest) (*mercadopago.Preference, error) {
	if g.failPref {
		return nil, errors.New("gateway unavailable")
	}
	g.lastPref = pref
	return &mercadopago.Preference{
		ID:               "pref-123",
		InitPoint:        "https://www.mercadopago.com/init",
		SandboxInitPoint: "https://sandbox.mercadopago.com/init",
	}, nil
}

func (g *fakeGateway) GetPayment(_ context.Context, paymentID string) (*mercadopago.Payment, error) {
	if g.payment == nil {
		return nil, errors.New("payment " + paymentID + " not found")
	}
	return g.payment, nil
}

type fakePublisher struct {
	events []rabbitmq.OrderEvent
}

func (p *fakePublisher) PublishOrderEvent(event rabbitmq.OrderEvent) error {
	p.events = append(p.events, event)
	return nil
}

type sentEmail struct {
	to      string
	subject string
	html    string
}

type fakeSender struct {
	emails []sentEmail
	fail   bool
}

func (s *fakeSender) Send(_ context.Context, to, subject, html string) error {
	if s.fail {
		return errors.New("email provider unavailable")
	}
	s.emails = append(s.emails, sentEmail{to: to, subject: subject, html: html})
	return nil
}

type checkoutFixture struct {
	service   *CheckoutService
	orderRepo *repositories.MockOrderRepository
	cartRepo  *repositories.MockCartRepository
	userRepo  *repositories.MockUserRepository
	gateway   *fakeGateway
	publisher *fakePublisher
	sender    *fakeSender
	user      *models.User
}

var testShipping = ShippingInfo{
	Name:     "Lucía Torres",
	Phone:    "987654321",
	District: "Miraflores",
	Address:  "Av. Larco 345",
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	f := &checkoutFixture{
		orderRepo: repositories.NewMockOrderRepository(),
		cartRepo:  repositories.NewMockCartRepository(),
		userRepo:  repositories.NewMockUserRepository(),
		gateway:   &fakeGateway{},
		publisher: &fakePublisher{},
		sender:    &fakeSender{},
	}
	f.user = &models.User{Name: "Lucía Torres", Email: "lucia@example.com", Password: "hash"}
	require.NoError(t, f.userRepo.Create(f.user))

	f.service = NewCheckoutService(
		f.orderRepo, f.cartRepo, f.userRepo,
		f.gateway, f.publisher, f.sender, "http://localhost:8080")
	return f
}

func (f *checkoutFixture) fillCart(t *testing.T) {
	t.Helper()
	require.NoError(t, f.cartRepo.Create(&models.CartItem{
		UserID: f.user.ID, ProductID: "prod-1", Size: "M",
		Title: "ZORU Noise Tee", UnitPrice: 89.90, Quantity: 2,
	}))
	require.NoError(t, f.cartRepo.Create(&models.CartItem{
		UserID: f.user.ID, ProductID: "prod-2", Size: "L",
		Title: "Static Hoodie", UnitPrice: 199.90, Quantity: 1,
	}))
}

func TestCheckoutHostedCreatesPreference(t *testing.T) {
	f := newCheckoutFixture(t)
	f.fillCart(t)

	checkout, err := f.service.CheckoutHosted(context.Background(), f.user.ID, testShipping)
	require.NoError(t, err)

	assert.Equal(t, "pref-123", checkout.ID)
	assert.Equal(t, "https://www.mercadopago.com/init", checkout.InitPoint)

	pref := f.gateway.lastPref
	require.Len(t, pref.Items, 2)
	assert.Equal(t, "PEN", pref.Items[0].CurrencyID)
	assert.Equal(t, f.user.Email, pref.Payer.Email)
	assert.True(t, pref.Expires)

	expiry, err := time.Parse("2006-01-02T15:04:05.000-07:00", pref.ExpirationDateTo)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiry, 5*time.Second)

	orders, err := f.orderRepo.GetByUser(f.user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	order := orders[0]
	assert.Equal(t, pref.ExternalReference, order.ID)
	assert.Equal(t, models.OrderStatusPendingPayment, order.Status)
	assert.Equal(t, models.PaymentMethodGateway, order.PaymentMethod)
	assert.Equal(t, "pref-123", order.PreferenceID)
	assert.InDelta(t, 2*89.90+199.90, order.Total, 0.001)
	assert.Len(t, order.Items, 2)

	// The cart survives until the webhook confirms the payment.
	lines, err := f.cartRepo.GetByUser(f.user.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestCheckoutHostedEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.service.CheckoutHosted(context.Background(), f.user.ID, testShipping)
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestCheckoutHostedGatewayFailureLeavesNoOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	f.fillCart(t)
	f.gateway.failPref = true

	_, err := f.service.CheckoutHosted(context.Background(), f.user.ID, testShipping)
	require.Error(t, err)

	orders, err := f.orderRepo.GetByUser(f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, f.publisher.events)
}

func TestCheckoutManualPersistsOrderAndClearsCart(t *testing.T) {
	f := newCheckoutFixture(t)
	f.fillCart(t)

	order, err := f.service.CheckoutManual(context.Background(), f.user.ID, testShipping, models.PaymentMethodCOD)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusAwaitingPayment, order.Status)
	assert.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)
	assert.Len(t, order.Items, 2)

	stored, err := f.orderRepo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusAwaitingPayment, stored.Status)

	lines, err := f.cartRepo.GetByUser(f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, rabbitmq.EventOrderCreated, f.publisher.events[0].Type)
	assert.Equal(t, order.ID, f.publisher.events[0].OrderID)

	require.Len(t, f.sender.emails, 1)
	assert.Equal(t, f.user.Email, f.sender.emails[0].to)
}

func TestCheckoutManualAwardsPoints(t *testing.T) {
	f := newCheckoutFixture(t)
	f.fillCart(t)

	order, err := f.service.CheckoutManual(context.Background(), f.user.ID, testShipping, models.PaymentMethodTransfer)
	require.NoError(t, err)

	user, err := f.userRepo.GetByID(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, int(order.Total), user.Points)
}

func TestCheckoutManualRejectsUnknownMethod(t *testing.T) {
	f := newCheckoutFixture(t)
	f.fillCart(t)

	_, err := f.service.CheckoutManual(context.Background(), f.user.ID, testShipping, "paypal")
	assert.ErrorIs(t, err, ErrPaymentMethodInvalid)
}

func TestCheckoutManualEmailFailureDoesNotFailOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	f.fillCart(t)
	f.sender.fail = true

	order, err := f.service.CheckoutManual(context.Background(), f.user.ID, testShipping, models.PaymentMethodCOD)
	require.NoError(t, err)

	_, err = f.orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
}

func TestWebhookApprovedMarksOrderPaidAndClearsCart(t *testing.T) {
	f := newCheckoutFixture(t)
	f.fillCart(t)

	_, err := f.service.CheckoutHosted(context.Background(), f.user.ID, testShipping)
	require.NoError(t, err)
	orders, _ := f.orderRepo.GetByUser(f.user.ID)
	require.Len(t, orders, 1)

	f.gateway.payment = &mercadopago.Payment{
		ID: 555, Status: "approved", ExternalReference: orders[0].ID,
	}
	notif := WebhookNotification{Type: "payment"}
	notif.Data.ID = "555"
	f.service.HandlePaymentNotification(context.Background(), notif)

	updated, err := f.orderRepo.GetByID(orders[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, updated.Status)

	lines, err := f.cartRepo.GetByUser(f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	last := f.publisher.events[len(f.publisher.events)-1]
	assert.Equal(t, rabbitmq.EventPaymentUpdated, last.Type)
	assert.Equal(t, models.OrderStatusPaid, last.Status)
}

func TestWebhookRejectedKeepsCart(t *testing.T) {
	f := newCheckoutFixture(t)
	f.fillCart(t)

	_, err := f.service.CheckoutHosted(context.Background(), f.user.ID, testShipping)
	require.NoError(t, err)
	orders, _ := f.orderRepo.GetByUser(f.user.ID)
	require.Len(t, orders, 1)

	f.gateway.payment = &mercadopago.Payment{
		ID: 556, Status: "rejected", ExternalReference: orders[0].ID,
	}
	notif := WebhookNotification{Type: "payment"}
	notif.Data.ID = "556"
	f.service.HandlePaymentNotification(context.Background(), notif)

	updated, err := f.orderRepo.GetByID(orders[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusRejected, updated.Status)

	lines, err := f.cartRepo.GetByUser(f.user.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestWebhookInProcessLeavesOrderUntouched(t *testing.T) {
	f := newCheckoutFixture(t)
	f.fillCart(t)

	_, err := f.service.CheckoutHosted(context.Background(), f.user.ID, testShipping)
	require.NoError(t, err)
	orders, _ := f.orderRepo.GetByUser(f.user.ID)
	require.Len(t, orders, 1)

	f.gateway.payment = &mercadopago.Payment{
		ID: 557, Status: "in_process", ExternalReference: orders[0].ID,
	}
	notif := WebhookNotification{Type: "payment"}
	notif.Data.ID = "557"
	f.service.HandlePaymentNotification(context.Background(), notif)

	updated, err := f.orderRepo.GetByID(orders[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPendingPayment, updated.Status)
}

func TestWebhookSwallowsUnknownPayment(t *testing.T) {
	f := newCheckoutFixture(t)

	notif := WebhookNotification{Type: "payment"}
	notif.Data.ID = "does-not-exist"
	f.service.HandlePaymentNotification(context.Background(), notif)

	notif = WebhookNotification{Type: "merchant_order"}
	f.service.HandlePaymentNotification(context.Background(), notif)
}
