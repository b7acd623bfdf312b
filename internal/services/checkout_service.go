package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"zoru/internal/models"
	"zoru/internal/repositories"
	"zoru/pkg/email"
	"zoru/pkg/mercadopago"
	"zoru/pkg/rabbitmq"
)

// Catalog prices are in Peruvian soles.
const currencyID = "PEN"

// preferenceWindow is how long a hosted checkout preference stays valid.
const preferenceWindow = 30 * time.Minute

// ShippingInfo is the contact form collected at checkout. Email is
// optional; when empty, the account email is used for the gateway payer.
type ShippingInfo struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"required,min=6,max=20"`
	District string `json:"district" validate:"required,max=100"`
	Address  string `json:"address" validate:"required,max=200"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// HostedCheckout is what the client needs to hand the browser over to
// the hosted gateway.
type HostedCheckout struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// WebhookNotification is the gateway's callback body.
type WebhookNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// PaymentGateway abstracts the hosted payment provider.
type PaymentGateway interface {
	CreatePreference(ctx context.Context, pref mercadopago.PreferenceRequest) (*mercadopago.Preference, error)
	GetPayment(ctx context.Context, paymentID string) (*mercadopago.Payment, error)
}

// EventPublisher abstracts the order event queue.
type EventPublisher interface {
	PublishOrderEvent(event rabbitmq.OrderEvent) error
}

// CheckoutService turns a cart into an order, either through the hosted
// gateway or through a manually coordinated payment.
type CheckoutService struct {
	orderRepo     repositories.OrderRepository
	cartRepo      repositories.CartRepository
	userRepo      repositories.UserRepository
	gateway       PaymentGateway
	events        EventPublisher
	sender        email.Sender
	publicBaseURL string
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	orderRepo repositories.OrderRepository,
	cartRepo repositories.CartRepository,
	userRepo repositories.UserRepository,
	gateway PaymentGateway,
	events EventPublisher,
	sender email.Sender,
	publicBaseURL string,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:     orderRepo,
		cartRepo:      cartRepo,
		userRepo:      userRepo,
		gateway:       gateway,
		events:        events,
		sender:        sender,
		publicBaseURL: publicBaseURL,
	}
}

// CheckoutHosted creates a gateway preference for the user's cart, one
// line item per cart line with a 30-minute expiration window, persists
// the order as pending_payment and returns the redirect URLs. The cart
// is only cleared once the webhook reports an approved payment.
func (s *CheckoutService) CheckoutHosted(ctx context.Context, userID string, info ShippingInfo) (*HostedCheckout, error) {
	items, order, err := s.buildOrder(userID, info)
	if err != nil {
		return nil, err
	}
	order.PaymentMethod = models.PaymentMethodGateway
	order.Status = models.OrderStatusPendingPayment

	payerEmail := info.Email
	if payerEmail == "" {
		if user, userErr := s.userRepo.GetByID(userID); userErr == nil {
			payerEmail = user.Email
		}
	}

	prefItems := make([]mercadopago.Item, 0, len(items))
	for _, it := range items {
		prefItems = append(prefItems, mercadopago.Item{
			Title:      it.Title,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			CurrencyID: currencyID,
		})
	}

	pref, err := s.gateway.CreatePreference(ctx, mercadopago.PreferenceRequest{
		Items: prefItems,
		Payer: mercadopago.Payer{Email: payerEmail},
		BackURLs: mercadopago.BackURLs{
			Success: s.publicBaseURL + "/checkout/success",
			Failure: s.publicBaseURL + "/checkout/failure",
			Pending: s.publicBaseURL + "/checkout/pending",
		},
		ExternalReference: order.ID,
		Expires:           true,
		ExpirationDateTo:  mercadopago.ExpirationFrom(time.Now(), preferenceWindow),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment preference: %w", err)
	}
	order.PreferenceID = pref.ID

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	s.afterOrderCreated(order)

	return &HostedCheckout{
		ID:               pref.ID,
		InitPoint:        pref.InitPoint,
		SandboxInitPoint: pref.SandboxInitPoint,
	}, nil
}

// CheckoutManual records an order to be paid by cash on delivery or
// peer transfer. The order is persisted durably, the cart is cleared,
// and an acknowledgement email is sent best-effort.
func (s *CheckoutService) CheckoutManual(ctx context.Context, userID string, info ShippingInfo, method string) (*models.Order, error) {
	if method != models.PaymentMethodCOD && method != models.PaymentMethodTransfer {
		return nil, ErrPaymentMethodInvalid
	}

	_, order, err := s.buildOrder(userID, info)
	if err != nil {
		return nil, err
	}
	order.PaymentMethod = method
	order.Status = models.OrderStatusAwaitingPayment

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	s.afterOrderCreated(order)

	if err := s.cartRepo.Clear(userID); err != nil {
		log.Printf("Warning: failed to clear cart after order %s: %v", order.ID, err)
	}

	to := info.Email
	if to == "" {
		if user, userErr := s.userRepo.GetByID(userID); userErr == nil {
			to = user.Email
		}
	}
	if to != "" {
		body := fmt.Sprintf(
			"<p>Hola %s,</p><p>Recibimos tu pedido <strong>%s</strong> por S/ %.2f. Coordinaremos el pago y la entrega por teléfono.</p>",
			order.CustomerName, order.ID, order.Total,
		)
		if err := s.sender.Send(ctx, to, "Recibimos tu pedido — ZORU", body); err != nil {
			log.Printf("Warning: failed to send acknowledgement for order %s: %v", order.ID, err)
		}
	}

	return order, nil
}

// HandlePaymentNotification resolves a gateway webhook into an order
// status change. It never fails the webhook: every problem is logged
// and swallowed so the gateway always gets its acknowledgement.
func (s *CheckoutService) HandlePaymentNotification(ctx context.Context, notif WebhookNotification) {
	log.Printf("Payment webhook received: type=%s id=%s", notif.Type, notif.Data.ID)

	if notif.Type != "payment" || notif.Data.ID == "" {
		return
	}
	if s.gateway == nil {
		log.Println("Payment gateway is not configured. Skipping payment lookup.")
		return
	}

	payment, err := s.gateway.GetPayment(ctx, notif.Data.ID)
	if err != nil {
		log.Printf("Warning: failed to look up payment %s: %v", notif.Data.ID, err)
		return
	}
	log.Printf("Payment %d status=%s order=%s", payment.ID, payment.Status, payment.ExternalReference)

	order, err := s.orderRepo.GetByID(payment.ExternalReference)
	if err != nil {
		log.Printf("Warning: no order for payment %d (reference %q): %v", payment.ID, payment.ExternalReference, err)
		return
	}

	var status string
	switch payment.Status {
	case "approved":
		status = models.OrderStatusPaid
	case "rejected":
		status = models.OrderStatusRejected
	case "cancelled":
		status = models.OrderStatusCancelled
	default:
		return // in_process etc: leave the order as is
	}

	if err := s.orderRepo.UpdateStatus(order.ID, status); err != nil {
		log.Printf("Warning: failed to update order %s status: %v", order.ID, err)
		return
	}

	if status == models.OrderStatusPaid {
		if err := s.cartRepo.Clear(order.UserID); err != nil {
			log.Printf("Warning: failed to clear cart for paid order %s: %v", order.ID, err)
		}
	}

	if s.events != nil {
		if err := s.events.PublishOrderEvent(rabbitmq.OrderEvent{
			Type:    rabbitmq.EventPaymentUpdated,
			OrderID: order.ID,
			UserID:  order.UserID,
			Status:  status,
			Total:   order.Total,
		}); err != nil {
			log.Printf("Warning: failed to publish payment update for order %s: %v", order.ID, err)
		}
	}
}

// GetOrdersByUser returns the user's order history.
func (s *CheckoutService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// buildOrder snapshots the user's cart into an unsaved order with a
// pre-generated ID, so the hosted path can reference the order before
// it is persisted.
func (s *CheckoutService) buildOrder(userID string, info ShippingInfo) ([]models.OrderItem, *models.Order, error) {
	lines, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	if len(lines) == 0 {
		return nil, nil, ErrCartEmpty
	}

	var total float64
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Title:     line.Title,
			Size:      line.Size,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
		total += line.UnitPrice * float64(line.Quantity)
	}

	order := &models.Order{
		ID:           uuid.New().String(),
		UserID:       userID,
		CustomerName: info.Name,
		Phone:        info.Phone,
		District:     info.District,
		Address:      info.Address,
		Email:        info.Email,
		Total:        total,
		Items:        items,
	}
	return items, order, nil
}

// afterOrderCreated publishes the order.created event and awards
// loyalty points, both best-effort.
func (s *CheckoutService) afterOrderCreated(order *models.Order) {
	if s.events != nil {
		if err := s.events.PublishOrderEvent(rabbitmq.OrderEvent{
			Type:    rabbitmq.EventOrderCreated,
			OrderID: order.ID,
			UserID:  order.UserID,
			Status:  order.Status,
			Total:   order.Total,
		}); err != nil {
			log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
		}
	} else {
		log.Println("Event publisher is not initialized. Skipping message publication.")
	}

	// One point per whole sol spent.
	if points := int(order.Total); points > 0 {
		if err := s.userRepo.AddPoints(order.UserID, points); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Warning: failed to award points for order %s: %v", order.ID, err)
		}
	}
}
