package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/forcedowels/storefront/internal/auth"
	checkoutapp "github.com/forcedowels/storefront/internal/checkout/app"
	checkoutdomain "github.com/forcedowels/storefront/internal/checkout/domain"
	distributionapp "github.com/forcedowels/storefront/internal/distribution/app"
	distributionmemory "github.com/forcedowels/storefront/internal/distribution/infra/memory"
	"github.com/forcedowels/storefront/internal/notify"
	orderapp "github.com/forcedowels/storefront/internal/order/app"
	ordermemory "github.com/forcedowels/storefront/internal/order/infra/memory"
	"github.com/forcedowels/storefront/internal/pricing"
	shippingapp "github.com/forcedowels/storefront/internal/shipping/app"
	shippingdomain "github.com/forcedowels/storefront/internal/shipping/domain"
	"github.com/forcedowels/storefront/pkg/logger"
)

type stubPaymentProvider struct {
	sessions map[string]checkoutdomain.Session
	nextID   int
}

func (p *stubPaymentProvider) CreateSession(_ context.Context, req checkoutapp.ProviderSessionRequest) (checkoutdomain.Session, error) {
	p.nextID++
	sess := checkoutdomain.Session{
		ID:            fmt.Sprintf("cs_test_%d", p.nextID),
		URL:           "https://pay.example/cs",
		Status:        "open",
		PaymentStatus: checkoutdomain.SessionPaymentUnpaid,
		CustomerEmail: req.CustomerEmail,
		Metadata:      req.Metadata,
	}
	p.sessions[sess.ID] = sess
	return sess, nil
}

func (p *stubPaymentProvider) GetSession(_ context.Context, id string) (checkoutdomain.Session, error) {
	sess, ok := p.sessions[id]
	if !ok {
		return checkoutdomain.Session{}, errors.New("no such session")
	}
	return sess, nil
}

type stubRateProvider struct {
	carrier string
}

func (s stubRateProvider) Rates(_ context.Context, _ shippingdomain.Destination, weight int64) ([]shippingdomain.RateOption, error) {
	return []shippingdomain.RateOption{
		{Carrier: s.carrier, Service: "standard", AmountCents: weight * 10},
	}, nil
}

type nopSender struct{}

func (nopSender) Send(context.Context, notify.Email) error { return nil }

type testEnv struct {
	app      *App
	router   http.Handler
	provider *stubPaymentProvider
	orders   *ordermemory.Store
}

func setupApp(t *testing.T) *testEnv {
	t.Helper()

	log := logger.Nop()
	orderStore := ordermemory.New()
	orders := orderapp.NewService(orderStore)
	provider := &stubPaymentProvider{sessions: map[string]checkoutdomain.Session{}}
	tmpl := notify.Templates{From: "orders@example.com", BusinessEmail: "info@example.com", BaseURL: "https://example.com"}

	app := &App{
		Orders:   orders,
		Checkout: checkoutapp.NewService(provider, orders, pricing.DefaultTable(), nopSender{}, tmpl, 3600, log),
		Shipping: shippingapp.NewService(
			stubRateProvider{carrier: shippingdomain.CarrierParcel},
			stubRateProvider{carrier: shippingdomain.CarrierFreight},
			150,
		),
		Distribution: distributionapp.NewService(
			distributionmemory.NewRequestStore(),
			distributionmemory.NewDistributorStore(),
			nopSender{}, tmpl, log,
		),
		Pricing:  pricing.DefaultTable(),
		Verifier: auth.NewStaticVerifier(map[string]string{"tok-alice": "alice:alice@example.com:Alice"}),
		Webhook: func(payload []byte, signature string) (checkoutdomain.Session, bool, error) {
			if signature != "valid" {
				return checkoutdomain.Session{}, false, errors.New("bad signature")
			}
			var sess checkoutdomain.Session
			if err := json.Unmarshal(payload, &sess); err != nil {
				return checkoutdomain.Session{}, false, err
			}
			return sess, true, nil
		},
		Log: log,
	}

	return &testEnv{app: app, router: NewRouter(app), provider: provider, orders: orderStore}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return m
}

func TestHealthz(t *testing.T) {
	env := setupApp(t)
	rr := env.do(t, http.MethodGet, "/healthz", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestCreateOrderRequiresAuth(t *testing.T) {
	env := setupApp(t)

	rr := env.do(t, http.MethodPost, "/orders", "", map[string]any{"quantity": 5000, "totalCents": 36000})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}

	rr = env.do(t, http.MethodPost, "/orders", "tok-bogus", map[string]any{"quantity": 5000, "totalCents": 36000})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", rr.Code)
	}
}

func TestCreateAndListOrders(t *testing.T) {
	env := setupApp(t)

	rr := env.do(t, http.MethodPost, "/orders", "tok-alice", map[string]any{
		"quantity":      5000,
		"tier":          "5,000-20,000",
		"totalCents":    36000,
		"paymentStatus": "paid",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	order := body["order"].(map[string]any)
	if order["status"] != "confirmed" {
		t.Fatalf("paid order should be confirmed, got %v", order["status"])
	}

	rr = env.do(t, http.MethodGet, "/orders", "tok-alice", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	list := decodeBody(t, rr)
	if orders := list["orders"].([]any); len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
}

func TestCreateOrderRejectsUnknownFields(t *testing.T) {
	env := setupApp(t)

	rr := env.do(t, http.MethodPost, "/orders", "tok-alice", map[string]any{
		"quantity": 5000, "totalCents": 36000, "surprise": true,
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestGuestCheckoutSession(t *testing.T) {
	env := setupApp(t)

	t.Run("within limit", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/checkout/session", "", map[string]any{
			"items":    []map[string]any{{"id": "dowels", "name": "Force Dowels", "quantity": 5000}},
			"customer": map[string]any{"email": "guest@example.com", "name": "Guest"},
		})
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		body := decodeBody(t, rr)
		if body["url"] == "" || body["sessionId"] == "" {
			t.Fatalf("expected session id and url, got %v", body)
		}
	})

	t.Run("over limit", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/checkout/session", "", map[string]any{
			"items":    []map[string]any{{"id": "dowels", "name": "Force Dowels", "quantity": 5001}},
			"customer": map[string]any{"email": "guest@example.com", "name": "Guest"},
		})
		if rr.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rr.Code)
		}
		body := decodeBody(t, rr)
		if !strings.Contains(body["error"].(string), "5001") {
			t.Fatalf("error should cite the quantity: %v", body["error"])
		}
	})

	t.Run("missing contact", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/checkout/session", "", map[string]any{
			"items": []map[string]any{{"id": "dowels", "name": "Force Dowels", "quantity": 5000}},
		})
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})
}

func TestAuthenticatedCheckoutSkipsGuestGate(t *testing.T) {
	env := setupApp(t)

	rr := env.do(t, http.MethodPost, "/checkout/session", "tok-alice", map[string]any{
		"items": []map[string]any{{"id": "dowels", "name": "Force Dowels", "quantity": 50000}},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestSessionStatusReconciles(t *testing.T) {
	env := setupApp(t)

	rr := env.do(t, http.MethodPost, "/checkout/session", "tok-alice", map[string]any{
		"items": []map[string]any{{"id": "dowels", "name": "Force Dowels", "quantity": 5000}},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("create session: %d", rr.Code)
	}
	sessionID := decodeBody(t, rr)["sessionId"].(string)

	sess := env.provider.sessions[sessionID]
	sess.PaymentStatus = checkoutdomain.SessionPaymentPaid
	sess.Status = "complete"
	env.provider.sessions[sessionID] = sess

	rr = env.do(t, http.MethodGet, "/checkout/session/status?session_id="+sessionID, "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["paymentStatus"] != "paid" {
		t.Fatalf("expected paid, got %v", body["paymentStatus"])
	}

	orders, _ := env.orders.ListByUser(context.Background(), "alice")
	for _, o := range orders {
		if o.Status != "confirmed" {
			t.Fatalf("order %d not confirmed after reconcile", o.ID)
		}
	}
}

func TestSessionStatusRequiresID(t *testing.T) {
	env := setupApp(t)

	rr := env.do(t, http.MethodGet, "/checkout/session/status", "", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestWebhook(t *testing.T) {
	env := setupApp(t)

	payload, _ := json.Marshal(checkoutdomain.Session{
		ID:            "cs_unknown",
		PaymentStatus: checkoutdomain.SessionPaymentPaid,
	})

	t.Run("bad signature", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/checkout/webhook", bytes.NewReader(payload))
		req.Header.Set("Stripe-Signature", "forged")
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("unknown session acknowledged", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/checkout/webhook", bytes.NewReader(payload))
		req.Header.Set("Stripe-Signature", "valid")
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("unknown session must be acknowledged, got %d", rr.Code)
		}
	})
}

func TestShippingRates(t *testing.T) {
	env := setupApp(t)

	rr := env.do(t, http.MethodPost, "/shipping/rates", "", map[string]any{
		"destination": map[string]any{
			"street": "4455 S Fig St", "city": "Tempe", "state": "AZ", "zip": "85282",
		},
		"items": []map[string]any{{"id": "dowels", "name": "Force Dowels", "quantity": 5000}},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	quote := decodeBody(t, rr)["quote"].(map[string]any)
	if quote["carrier"] != "usps" {
		t.Fatalf("50 lb cart should quote parcel, got %v", quote["carrier"])
	}
}

func TestDistributionWorkflow(t *testing.T) {
	env := setupApp(t)

	rr := env.do(t, http.MethodPost, "/distributor-application", "", map[string]any{
		"businessName": "Cabinet Co",
		"fullName":     "Dana Smith",
		"emailAddress": "dana@cabinet.example",
		"territory":    "Arizona",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	created := decodeBody(t, rr)["request"].(map[string]any)
	uniqueID := created["uniqueId"].(string)

	rr = env.do(t, http.MethodGet, "/distribution/accept/"+uniqueID, "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("accept: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if status := decodeBody(t, rr)["status"]; status != "accepted" {
		t.Fatalf("expected accepted, got %v", status)
	}

	rr = env.do(t, http.MethodGet, "/distribution/decline/"+uniqueID, "", nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("replayed link must 409, got %d", rr.Code)
	}

	rr = env.do(t, http.MethodGet, "/distribution/accept/does-not-exist", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown id must 404, got %d", rr.Code)
	}
}

func TestPricingTiers(t *testing.T) {
	env := setupApp(t)

	rr := env.do(t, http.MethodGet, "/pricing/tiers", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	tiers := decodeBody(t, rr)["tiers"].([]any)
	if len(tiers) != 3 {
		t.Fatalf("expected 3 tiers, got %d", len(tiers))
	}
	first := tiers[0].(map[string]any)
	if first["pricePerUnit"].(float64) != 0.072 {
		t.Fatalf("first tier price wrong: %v", first["pricePerUnit"])
	}
}
