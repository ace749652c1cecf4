// internal/domain/order/service_test.go
package order

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

type stubMailer struct {
	mu     sync.Mutex
	calls  int
	email  string
	number string
	amount float64
	err    error
}

func (m *stubMailer) SendOrderConfirmationEmail(ctx context.Context, userEmail, userName, orderNumber string, amount float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.email = userEmail
	m.number = orderNumber
	m.amount = amount
	return m.err
}

func TestComputeTaxFloorsToWholeAmount(t *testing.T) {
	// 2% of 1250.00 is 25.0 exactly
	assert.Equal(t, 25.0, ComputeTax(1250.00, 0.02))
	// 2% of 1249.00 is 24.98, floored to 24
	assert.Equal(t, 24.0, ComputeTax(1249.00, 0.02))
	// 2% of 49.00 is 0.98, floored to 0
	assert.Equal(t, 0.0, ComputeTax(49.00, 0.02))
}

func TestGenerateOrderNumberFormat(t *testing.T) {
	n := GenerateOrderNumber("AB12CD34")
	assert.Regexp(t, `^ORD-\d{8}-AB12CD34$`, n)
}

func TestOrderConfirmationReachesBuyer(t *testing.T) {
	mailer := &stubMailer{}
	s := &Service{logger: testLogger(), mailer: mailer}

	s.sendOrderConfirmation("buyer@example.com", "Buyer", "ORD-20260831-AB12CD34", 1275)

	assert.Equal(t, 1, mailer.calls)
	assert.Equal(t, "buyer@example.com", mailer.email)
	assert.Equal(t, "ORD-20260831-AB12CD34", mailer.number)
	assert.Equal(t, 1275.0, mailer.amount)
}

func TestOrderConfirmationFailureIsNonFatal(t *testing.T) {
	mailer := &stubMailer{err: errors.New("smtp down")}
	s := &Service{logger: testLogger(), mailer: mailer}

	s.sendOrderConfirmation("buyer@example.com", "Buyer", "ORD-20260831-AB12CD34", 1275)

	assert.Equal(t, 1, mailer.calls)
}

func TestCanBeCancelled(t *testing.T) {
	assert.True(t, (&Order{Status: OrderStatusPlaced}).CanBeCancelled())
	assert.True(t, (&Order{Status: OrderStatusProcessing}).CanBeCancelled())
	assert.False(t, (&Order{Status: OrderStatusShipped}).CanBeCancelled())
	assert.False(t, (&Order{Status: OrderStatusDelivered}).CanBeCancelled())
}
