package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"basket/internal/core/domain/model/kernel"
	"basket/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func TestParseBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, ParseBrokers(" a:9092, ,b:9092 "))
	assert.Empty(t, ParseBrokers(""))
}

func TestNewPublisher_NoBrokers(t *testing.T) {
	_, err := NewPublisher(nil, "basket.orders")

	require.ErrorIs(t, err, ErrNoBrokers)
}

func TestPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	id := kernel.NewUUID()

	writer := new(MockWriter)
	writer.On("WriteMessages", ctx, mock.MatchedBy(func(msgs []kafka.Message) bool {
		return len(msgs) == 1 &&
			string(msgs[0].Key) == "7" &&
			string(msgs[0].Value) == `{"order_id":7}` &&
			msgs[0].Time.Equal(at) &&
			string(msgs[0].Headers[0].Value) == "order.changed" &&
			string(msgs[0].Headers[1].Value) == id.String()
	})).Return(nil).Once()

	publisher := newPublisher(writer)
	err := publisher.Publish(ctx, ports.OutboxMessage{
		ID:         id,
		Name:       "order.changed",
		Key:        "7",
		Payload:    []byte(`{"order_id":7}`),
		OccurredAt: at,
	})

	require.NoError(t, err)
	writer.AssertExpectations(t)
}

func TestPublisher_Publish_Empty(t *testing.T) {
	writer := new(MockWriter)

	require.NoError(t, newPublisher(writer).Publish(context.Background()))
	writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestPublisher_Publish_WriterError(t *testing.T) {
	brokerDown := errors.New("broker down")
	writer := new(MockWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(brokerDown)

	err := newPublisher(writer).Publish(context.Background(), ports.OutboxMessage{ID: kernel.NewUUID(), Key: "1"})

	require.ErrorIs(t, err, brokerDown)
}
