package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	argsCall := m.Called(name, durable, autoDelete, exclusive, noWait, args)
	return argsCall.Get(0).(amqp.Queue), argsCall.Error(1)
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(exchange, key, mandatory, immediate, msg).Error(0)
}

func (m *MockChannel) Close() error {
	return m.Called().Error(0)
}

func TestPublishOrderEvent(t *testing.T) {
	ch := &MockChannel{}
	ch.On("QueueDeclare", "order_events", true, false, false, false, amqp.Table(nil)).Return(amqp.Queue{Name: "order_events"}, nil)

	var published amqp.Publishing
	ch.On("PublishWithContext", "", "order_events", false, false, mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(4).(amqp.Publishing) }).
		Return(nil)

	p, err := NewChannelPublisher(ch, "order_events")
	require.NoError(t, err)

	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	err = p.Publish(context.Background(), OrderEvent{
		Type:          OrderCreated,
		OrderID:       "ORD-2024-001",
		CustomerID:    "CUST-001",
		Status:        "pending",
		PaymentStatus: "paid",
		TotalAmount:   decimal.RequireFromString("259.98"),
		OccurredAt:    at,
	})
	require.NoError(t, err)
	ch.AssertExpectations(t)

	assert.Equal(t, "application/json", published.ContentType)
	assert.Equal(t, amqp.Persistent, published.DeliveryMode)
	assert.Equal(t, OrderCreated, published.Type)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(published.Body, &body))
	assert.Equal(t, "ORD-2024-001", body["order_id"])
	assert.Equal(t, "259.98", body["total_amount"])
}

func TestPublishFailureIsWrapped(t *testing.T) {
	ch := &MockChannel{}
	ch.On("QueueDeclare", "q", true, false, false, false, amqp.Table(nil)).Return(amqp.Queue{}, nil)
	ch.On("PublishWithContext", "", "q", false, false, mock.Anything).Return(amqp.ErrClosed)

	p, err := NewChannelPublisher(ch, "q")
	require.NoError(t, err)

	err = p.Publish(context.Background(), OrderEvent{Type: OrderDeleted, OrderID: "ORD-1"})
	assert.ErrorIs(t, err, amqp.ErrClosed)
	assert.Contains(t, err.Error(), "order.deleted")
}

func TestQueueDeclareFailureClosesChannel(t *testing.T) {
	ch := &MockChannel{}
	ch.On("QueueDeclare", "q", true, false, false, false, amqp.Table(nil)).Return(amqp.Queue{}, errors.New("access refused"))
	ch.On("Close").Return(nil)

	_, err := NewChannelPublisher(ch, "q")
	require.Error(t, err)
	ch.AssertCalled(t, "Close")
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), OrderEvent{}))
	assert.NoError(t, p.Close())
}
