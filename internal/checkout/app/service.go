package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strconv"
	"strings"

	"github.com/forcedowels/storefront/internal/apperr"
	cart "github.com/forcedowels/storefront/internal/cart/domain"
	"github.com/forcedowels/storefront/internal/checkout/domain"
	"github.com/forcedowels/storefront/internal/notify"
	order "github.com/forcedowels/storefront/internal/order/domain"
	"github.com/forcedowels/storefront/internal/pricing"
)

// orderSummaryTier marks the per-session summary row that accompanies the
// line-item rows.
const orderSummaryTier = "summary"

// OrderWriter is the slice of the order service the orchestrator needs.
type OrderWriter interface {
	CreateOrder(ctx context.Context, in order.CreateOrderInput) (order.Order, error)
	MarkSessionPayment(ctx context.Context, sessionID, paymentStatus string) (int64, error)
}

type Service struct {
	provider PaymentProvider
	orders   OrderWriter
	table    *pricing.Table
	sender   notify.Sender
	tmpl     notify.Templates
	log      *slog.Logger

	kitPriceCents int64
}

func NewService(provider PaymentProvider, orders OrderWriter, table *pricing.Table, sender notify.Sender, tmpl notify.Templates, kitPriceCents int64, log *slog.Logger) *Service {
	return &Service{
		provider:      provider,
		orders:        orders,
		table:         table,
		sender:        sender,
		tmpl:          tmpl,
		kitPriceCents: kitPriceCents,
		log:           log,
	}
}

type pricedLine struct {
	item       cart.CartItem
	tier       string
	totalCents int64
	provider   ProviderLineItem
}

// CreateSession prices the cart, opens a provider checkout session, and fans
// the order out into local rows sharing the session id. Provider failure
// persists nothing.
func (s *Service) CreateSession(ctx context.Context, req domain.CheckoutRequest) (domain.Session, error) {
	if len(req.Items) == 0 {
		return domain.Session{}, apperr.New(apperr.Invalid, "cart is empty")
	}
	if _, err := mail.ParseAddress(req.Contact.Email); err != nil {
		return domain.Session{}, apperr.New(apperr.Invalid, "a valid contact email is required")
	}
	if req.ShippingCents < 0 || req.TaxCents < 0 {
		return domain.Session{}, apperr.New(apperr.Invalid, "shipping and tax cannot be negative")
	}

	if req.Contact.Guest {
		v := cart.ValidateGuestCheckout(req.Items)
		if !v.Allowed {
			return domain.Session{}, apperr.New(apperr.Forbidden, v.Reason)
		}
	}

	lines, itemsTotal, err := s.priceLines(req.Items)
	if err != nil {
		return domain.Session{}, err
	}

	providerItems := make([]ProviderLineItem, 0, len(lines)+2)
	for _, line := range lines {
		providerItems = append(providerItems, line.provider)
	}
	if req.ShippingCents > 0 {
		providerItems = append(providerItems, ProviderLineItem{Name: "Shipping", AmountCents: req.ShippingCents, Quantity: 1})
	}
	if req.TaxCents > 0 {
		providerItems = append(providerItems, ProviderLineItem{Name: "Sales Tax", AmountCents: req.TaxCents, Quantity: 1})
	}

	grandTotal := itemsTotal + req.ShippingCents + req.TaxCents
	totalQuantity := int64(0)
	for _, line := range lines {
		totalQuantity += line.item.Quantity
	}

	sess, err := s.provider.CreateSession(ctx, ProviderSessionRequest{
		CustomerEmail: req.Contact.Email,
		LineItems:     providerItems,
		Metadata: map[string]string{
			"user_id":     req.Contact.UserID,
			"user_name":   req.Contact.Name,
			"guest":       strconv.FormatBool(req.Contact.Guest),
			"quantity":    strconv.FormatInt(totalQuantity, 10),
			"tier":        dominantTier(lines),
			"total_cents": strconv.FormatInt(grandTotal, 10),
		},
	})
	if err != nil {
		return domain.Session{}, apperr.Wrap(apperr.Upstream, "create checkout session", err)
	}

	if err := s.persistOrders(ctx, req, lines, sess.ID, grandTotal, totalQuantity); err != nil {
		return domain.Session{}, err
	}

	return sess, nil
}

func (s *Service) priceLines(items []cart.CartItem) ([]pricedLine, int64, error) {
	lines := make([]pricedLine, 0, len(items))
	var total int64

	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, 0, apperr.Newf(apperr.Invalid, "item %q: quantity must be positive", item.Name)
		}

		if item.IsKit() {
			lineTotal := s.kitPriceCents * item.Quantity
			lines = append(lines, pricedLine{
				item:       item,
				tier:       "kit",
				totalCents: lineTotal,
				provider: ProviderLineItem{
					Name:        item.Name,
					AmountCents: s.kitPriceCents,
					Quantity:    item.Quantity,
				},
			})
			total += lineTotal
			continue
		}

		res := s.table.Lookup(item.Quantity)
		if !res.Found {
			return nil, 0, apperr.Newf(apperr.Invalid,
				"item %q: minimum order is %d dowels, got %d", item.Name, s.table.Min(), item.Quantity)
		}
		if res.Clamped {
			s.log.Warn("quantity above top pricing tier, clamping",
				slog.Int64("quantity", item.Quantity),
				slog.String("tier", res.Tier.Range),
			)
		}

		lineTotal := pricing.CentsTotal(item.Quantity, res.Tier.UnitPriceMicros)
		lines = append(lines, pricedLine{
			item:       item,
			tier:       res.Tier.Range,
			totalCents: lineTotal,
			provider: ProviderLineItem{
				Name:        fmt.Sprintf("%s (%s units @ $%.4f)", item.Name, formatQuantity(item.Quantity), res.Tier.UnitPrice()),
				AmountCents: lineTotal,
				Quantity:    1,
			},
		})
		total += lineTotal
	}

	return lines, total, nil
}

// persistOrders writes one row per cart line plus the summary row, all
// sharing the session id. Order creation failure after a session exists is a
// core persistence failure and surfaces to the caller.
func (s *Service) persistOrders(ctx context.Context, req domain.CheckoutRequest, lines []pricedLine, sessionID string, grandTotal, totalQuantity int64) error {
	userID := req.Contact.UserID
	if userID == "" {
		userID = "guest:" + req.Contact.Email
	}

	base := order.CreateOrderInput{
		UserID:          userID,
		UserEmail:       req.Contact.Email,
		UserName:        req.Contact.Name,
		PaymentStatus:   order.PaymentStatusUnpaid,
		StripeSessionID: sessionID,
		ShippingInfo:    req.Shipping,
		BillingInfo:     req.Billing,
	}

	for _, line := range lines {
		in := base
		in.Quantity = line.item.Quantity
		in.Tier = line.tier
		in.TotalCents = line.totalCents
		if _, err := s.orders.CreateOrder(ctx, in); err != nil {
			return apperr.Wrap(apperr.Internal, "persist order line", err)
		}
	}

	summary := base
	summary.Quantity = totalQuantity
	summary.Tier = orderSummaryTier
	summary.TotalCents = grandTotal
	if _, err := s.orders.CreateOrder(ctx, summary); err != nil {
		return apperr.Wrap(apperr.Internal, "persist order summary", err)
	}

	return nil
}

// SessionStatus polls the provider and reconciles a paid session into local
// rows before reporting.
func (s *Service) SessionStatus(ctx context.Context, sessionID string) (domain.Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return domain.Session{}, apperr.New(apperr.Invalid, "session_id is required")
	}

	sess, err := s.provider.GetSession(ctx, sessionID)
	if err != nil {
		return domain.Session{}, apperr.Wrap(apperr.Upstream, "fetch checkout session", err)
	}

	if sess.PaymentStatus == domain.SessionPaymentPaid {
		if err := s.HandlePaymentEvent(ctx, sess); err != nil {
			return domain.Session{}, err
		}
	}

	return sess, nil
}

// HandlePaymentEvent reconciles a provider payment-status update. Safe for
// at-least-once delivery: rows already carrying the status are not touched
// again, and a session with no local rows is logged and ignored.
func (s *Service) HandlePaymentEvent(ctx context.Context, sess domain.Session) error {
	if sess.ID == "" {
		return apperr.New(apperr.Invalid, "session id is required")
	}

	affected, err := s.orders.MarkSessionPayment(ctx, sess.ID, sess.PaymentStatus)
	if err != nil {
		return err
	}

	if affected == 0 {
		s.log.Info("payment event matched no local orders",
			slog.String("session_id", sess.ID),
			slog.String("payment_status", sess.PaymentStatus),
		)
		return nil
	}

	if sess.PaymentStatus == domain.SessionPaymentPaid {
		s.sendConfirmation(ctx, sess)
	}

	return nil
}

func (s *Service) sendConfirmation(ctx context.Context, sess domain.Session) {
	to := sess.CustomerEmail
	if to == "" {
		s.log.Warn("paid session has no customer email", slog.String("session_id", sess.ID))
		return
	}

	quantity, _ := strconv.ParseInt(sess.Metadata["quantity"], 10, 64)
	totalCents, _ := strconv.ParseInt(sess.Metadata["total_cents"], 10, 64)

	email := s.tmpl.OrderConfirmation(to, sess.Metadata["user_name"], quantity, sess.Metadata["tier"], totalCents)
	notify.BestEffort(ctx, s.log, s.sender, email)
}

// dominantTier is the first dowel tier in the cart, for the session summary;
// kit-only carts report "kit".
func dominantTier(lines []pricedLine) string {
	for _, line := range lines {
		if line.tier != "kit" {
			return line.tier
		}
	}
	return "kit"
}

func formatQuantity(q int64) string {
	raw := strconv.FormatInt(q, 10)
	var b strings.Builder
	for i, r := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
