package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"astroconsult/internal/domain"
	"astroconsult/internal/gateway/razorpay"
	"astroconsult/internal/modules/flow"
)

type fakeGateway struct {
	createErr   error
	verifyOK    bool
	createCalls int
	verifyCalls int
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*razorpay.Order, error) {
	g.createCalls++
	if g.createErr != nil {
		return nil, g.createErr
	}
	return &razorpay.Order{ID: "order_test1", Amount: amount, Currency: currency, Receipt: receipt, Status: "created"}, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	g.verifyCalls++
	return g.verifyOK
}

func (g *fakeGateway) CheckoutOptions(order *razorpay.Order, merchantName, description, themeColor string, contact domain.ContactDetails) razorpay.CheckoutOptions {
	return razorpay.CheckoutOptions{
		Key:      "key_test",
		Amount:   order.Amount,
		Currency: order.Currency,
		Name:     merchantName,
		OrderID:  order.ID,
	}
}

type memStore struct {
	orders map[string]*domain.PaymentOrder
}

func newMemStore() *memStore {
	return &memStore{orders: make(map[string]*domain.PaymentOrder)}
}

func (m *memStore) Create(_ context.Context, p *domain.PaymentOrder) error {
	m.orders[p.OrderID] = p
	return nil
}

func (m *memStore) GetByOrderID(_ context.Context, orderID string) (*domain.PaymentOrder, error) {
	p, ok := m.orders[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) MarkPaidIdempotent(_ context.Context, orderID, paymentID, signature string, paidAt time.Time) (bool, error) {
	p, ok := m.orders[orderID]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if p.Status == domain.OrderPaid {
		return false, nil
	}
	p.Status = domain.OrderPaid
	p.PaymentID = paymentID
	p.Signature = signature
	p.PaidAt = &paidAt
	return true, nil
}

func (m *memStore) MarkFailed(_ context.Context, orderID, reason string) error {
	p, ok := m.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if p.Status != domain.OrderPaid {
		p.Status = domain.OrderFailed
		p.FailureReason = reason
	}
	return nil
}

func (m *memStore) MarkCancelled(_ context.Context, orderID string) error {
	p, ok := m.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if p.Status != domain.OrderPaid {
		p.Status = domain.OrderCancelled
	}
	return nil
}

type fakeNotifier struct {
	kinds    []string
	messages []string
}

func (n *fakeNotifier) Show(_ int64, kind, message string) {
	n.kinds = append(n.kinds, kind)
	n.messages = append(n.messages, message)
}

type fakeLinks struct{}

func (fakeLinks) BuildLink(sel domain.Selection) string {
	if !sel.Complete() {
		return "#"
	}
	return "https://calendar.example/event"
}

type deniedSlots struct{}

func (deniedSlots) CheckSlot(context.Context, time.Time, string) (bool, error) {
	return false, nil
}

type testOfferings struct{}

func (testOfferings) OfferingByID(id string) (*domain.Offering, error) {
	return &domain.Offering{ID: id, Name: "Career & Business Consultation", DurationMin: 45, Price: 299900}, nil
}

type testSchedule struct{}

func (testSchedule) HasDate(time.Time) bool { return true }
func (testSchedule) HasSlot(string) bool    { return true }

type fixture struct {
	svc      *Service
	gateway  *fakeGateway
	store    *memStore
	flow     *flow.Service
	notifier *fakeNotifier
}

func newFixture(t *testing.T, opts ...func(*fixture)) *fixture {
	t.Helper()
	f := &fixture{
		gateway:  &fakeGateway{verifyOK: true},
		store:    newMemStore(),
		flow:     flow.NewService(testOfferings{}, testSchedule{}),
		notifier: &fakeNotifier{},
	}
	f.svc = NewService(f.gateway, f.store, f.flow, f.notifier, fakeLinks{}, nil, Config{MerchantName: "AstroTech Wealth", ThemeColor: "#d97706"})
	for _, o := range opts {
		o(f)
	}
	return f
}

// readySession walks a session to the details step with a complete selection.
func (f *fixture) readySession(t *testing.T, userID int64) string {
	t.Helper()
	sess := f.flow.Start(userID)
	_, err := f.flow.SelectOffering(sess.ID, userID, "career")
	require.NoError(t, err)
	_, err = f.flow.SelectDate(sess.ID, userID, "2026-09-14")
	require.NoError(t, err)
	_, err = f.flow.SelectTime(sess.ID, userID, "02:00 PM")
	require.NoError(t, err)
	_, err = f.flow.EnterDetails(sess.ID, userID, domain.ContactDetails{
		Name: "Asha", Email: "asha@example.com", Phone: "+911234567890",
	})
	require.NoError(t, err)
	return sess.ID
}

func TestInitiate_RejectsIncompleteSession(t *testing.T) {
	f := newFixture(t)
	sess := f.flow.Start(1)

	_, err := f.svc.Initiate(context.Background(), 1, sess.ID)
	assert.ErrorIs(t, err, ErrPreconditionFailed)
	assert.Zero(t, f.gateway.createCalls, "no gateway call before preconditions pass")
	assert.Equal(t, []string{"error"}, f.notifier.kinds)
	assert.Contains(t, f.notifier.messages[0], "required fields")
}

func TestInitiate_CreatesOrderAndAttempt(t *testing.T) {
	f := newFixture(t)
	sessID := f.readySession(t, 1)

	resp, err := f.svc.Initiate(context.Background(), 1, sessID)
	require.NoError(t, err)
	assert.Equal(t, "order_test1", resp.OrderID)
	assert.NotEmpty(t, resp.AttemptToken)
	assert.Equal(t, int64(299900), resp.Checkout.Amount)

	stored := f.store.orders["order_test1"]
	require.NotNil(t, stored)
	assert.Equal(t, sessID, stored.SessionID)
	assert.Equal(t, resp.AttemptToken, stored.AttemptToken)
	assert.Equal(t, domain.OrderCreated, stored.Status)
}

func TestInitiate_RetryMintsFreshAttemptToken(t *testing.T) {
	f := newFixture(t)
	sessID := f.readySession(t, 1)

	first, err := f.svc.Initiate(context.Background(), 1, sessID)
	require.NoError(t, err)
	second, err := f.svc.Initiate(context.Background(), 1, sessID)
	require.NoError(t, err)

	assert.NotEqual(t, first.AttemptToken, second.AttemptToken)
}

func TestInitiate_SlotUnavailable(t *testing.T) {
	f := newFixture(t)
	f.svc = NewService(f.gateway, f.store, f.flow, f.notifier, fakeLinks{}, deniedSlots{}, Config{})
	sessID := f.readySession(t, 1)

	_, err := f.svc.Initiate(context.Background(), 1, sessID)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Zero(t, f.gateway.createCalls)
	assert.Equal(t, []string{"error"}, f.notifier.kinds)
}

func TestInitiate_GatewayFailureLeavesSelectionIntact(t *testing.T) {
	f := newFixture(t)
	f.gateway.createErr = errors.New("gateway down")
	sessID := f.readySession(t, 1)

	_, err := f.svc.Initiate(context.Background(), 1, sessID)
	assert.ErrorIs(t, err, ErrPaymentSetupFailed)

	// exactly one error surfaced through the notifier
	require.Len(t, f.notifier.messages, 1)
	assert.Equal(t, []string{"error"}, f.notifier.kinds)

	// the session is untouched and a retry works once the gateway recovers
	sess, err := f.flow.Get(sessID, 1)
	require.NoError(t, err)
	assert.Equal(t, flow.StepEnteringDetails, sess.Step)
	assert.Equal(t, "career", sess.Selection.Offering.ID)

	f.gateway.createErr = nil
	_, err = f.svc.Initiate(context.Background(), 1, sessID)
	assert.NoError(t, err)
	assert.Len(t, f.notifier.messages, 1, "a successful retry adds no message")
}

func TestComplete_ConfirmsBookingOnce(t *testing.T) {
	f := newFixture(t)
	sessID := f.readySession(t, 1)
	init, err := f.svc.Initiate(context.Background(), 1, sessID)
	require.NoError(t, err)

	req := CompleteRequest{
		RazorpayOrderID:   init.OrderID,
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "sig",
		AttemptToken:      init.AttemptToken,
	}

	resp, err := f.svc.Complete(context.Background(), 1, req)
	require.NoError(t, err)
	assert.True(t, resp.Confirmed)
	assert.Equal(t, "https://calendar.example/event", resp.CalendarLink)

	sess, err := f.flow.Get(sessID, 1)
	require.NoError(t, err)
	assert.Equal(t, flow.StepConfirmed, sess.Step)

	// replayed callback: still ok, but no second notification
	resp2, err := f.svc.Complete(context.Background(), 1, req)
	require.NoError(t, err)
	assert.True(t, resp2.Confirmed)
	assert.Equal(t, []string{"success"}, f.notifier.kinds)
}

func TestComplete_RejectsBadSignature(t *testing.T) {
	f := newFixture(t)
	f.gateway.verifyOK = false
	sessID := f.readySession(t, 1)
	init, err := f.svc.Initiate(context.Background(), 1, sessID)
	require.NoError(t, err)

	_, err = f.svc.Complete(context.Background(), 1, CompleteRequest{
		RazorpayOrderID:   init.OrderID,
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "forged",
		AttemptToken:      init.AttemptToken,
	})
	assert.ErrorIs(t, err, ErrVerificationFailed)

	// booking not confirmed, order marked failed, user told to contact support
	sess, err := f.flow.Get(sessID, 1)
	require.NoError(t, err)
	assert.NotEqual(t, flow.StepConfirmed, sess.Step)
	assert.Equal(t, domain.OrderFailed, f.store.orders[init.OrderID].Status)
	require.Len(t, f.notifier.messages, 1)
	assert.Contains(t, f.notifier.messages[0], "contact support")
}

func TestComplete_RejectsStaleAttemptToken(t *testing.T) {
	f := newFixture(t)
	sessID := f.readySession(t, 1)
	first, err := f.svc.Initiate(context.Background(), 1, sessID)
	require.NoError(t, err)

	_, err = f.svc.Complete(context.Background(), 1, CompleteRequest{
		RazorpayOrderID:   first.OrderID,
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "sig",
		AttemptToken:      "some-other-attempt",
	})
	assert.ErrorIs(t, err, ErrAttemptMismatch)
	assert.Zero(t, f.gateway.verifyCalls, "no verification for a mismatched attempt")
}

func TestComplete_UnknownOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Complete(context.Background(), 1, CompleteRequest{
		RazorpayOrderID:   "order_missing",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "sig",
		AttemptToken:      "tok",
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Zero(t, f.gateway.verifyCalls)
}

func TestComplete_RejectsForeignOrder(t *testing.T) {
	f := newFixture(t)
	sessID := f.readySession(t, 1)
	init, err := f.svc.Initiate(context.Background(), 1, sessID)
	require.NoError(t, err)

	_, err = f.svc.Complete(context.Background(), 9, CompleteRequest{
		RazorpayOrderID:   init.OrderID,
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "sig",
		AttemptToken:      init.AttemptToken,
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestFail_RecordsReasonAndNotifies(t *testing.T) {
	f := newFixture(t)
	sessID := f.readySession(t, 1)
	init, err := f.svc.Initiate(context.Background(), 1, sessID)
	require.NoError(t, err)

	err = f.svc.Fail(context.Background(), 1, FailureRequest{OrderID: init.OrderID, Description: "card declined"})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderFailed, f.store.orders[init.OrderID].Status)
	assert.Equal(t, "card declined", f.store.orders[init.OrderID].FailureReason)
	assert.Equal(t, []string{"error"}, f.notifier.kinds)

	// the selection survives for a retry
	sess, err := f.flow.Get(sessID, 1)
	require.NoError(t, err)
	assert.Equal(t, flow.StepEnteringDetails, sess.Step)
	assert.True(t, sess.Selection.Complete())
}

func TestFail_DefaultsDescription(t *testing.T) {
	f := newFixture(t)
	sessID := f.readySession(t, 1)
	init, err := f.svc.Initiate(context.Background(), 1, sessID)
	require.NoError(t, err)

	err = f.svc.Fail(context.Background(), 1, FailureRequest{OrderID: init.OrderID})
	require.NoError(t, err)
	assert.Contains(t, f.notifier.messages[0], "Please try again")
}

func TestDismiss_CancelsOrder(t *testing.T) {
	f := newFixture(t)
	sessID := f.readySession(t, 1)
	init, err := f.svc.Initiate(context.Background(), 1, sessID)
	require.NoError(t, err)

	err = f.svc.Dismiss(context.Background(), 1, DismissRequest{OrderID: init.OrderID})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, f.store.orders[init.OrderID].Status)

	sess, err := f.flow.Get(sessID, 1)
	require.NoError(t, err)
	assert.Equal(t, flow.StepEnteringDetails, sess.Step)
}
