package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/luissevero/ignitegofinances/internal/entity/transaction"
	"github.com/luissevero/ignitegofinances/internal/model/register"
)

type warmerMock struct {
	mock.Mock
}

func (m *warmerMock) WarmUp(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func Test_Producer_ShouldPublishEventAsJSON(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event register.Event
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event.UserID != "42" || event.Transaction.ID != "tx-1" {
			return errors.New("unexpected event")
		}
		return nil
	})

	p := newProducer(sp, "txs")
	err := p.PublishTransactionCreated(context.Background(), register.Event{
		UserID:      "42",
		Transaction: transaction.Record{ID: "tx-1", Type: transaction.Negative},
	})
	require.NoError(t, err)
	p.Close()
}

func Test_Consumer_ShouldWarmUpUserDashboard(t *testing.T) {
	w := &warmerMock{}
	w.On("WarmUp", mock.Anything, "42").Return(nil).Once()
	c := &Consumer{warmer: w}

	payload, err := json.Marshal(register.Event{UserID: "42", Transaction: transaction.Record{ID: "tx-1"}})
	require.NoError(t, err)

	c.handleMessage(context.Background(), &sarama.ConsumerMessage{
		Value:   payload,
		Headers: []*sarama.RecordHeader{{Key: []byte(eventTypeHeader), Value: []byte(TransactionCreated)}},
	})
	w.AssertExpectations(t)
}

func Test_Consumer_ShouldSkipBadMessages(t *testing.T) {
	w := &warmerMock{}
	c := &Consumer{warmer: w}

	c.handleMessage(context.Background(), &sarama.ConsumerMessage{Value: []byte("{oops")})
	c.handleMessage(context.Background(), &sarama.ConsumerMessage{Value: []byte(`{"userId":""}`)})
	c.handleMessage(context.Background(), &sarama.ConsumerMessage{
		Value:   []byte(`{"userId":"42"}`),
		Headers: []*sarama.RecordHeader{{Key: []byte(eventTypeHeader), Value: []byte("transaction.deleted")}},
	})

	w.AssertNotCalled(t, "WarmUp", mock.Anything, mock.Anything)
}

func Test_Consumer_WarmUpFailureIsLogged(t *testing.T) {
	w := &warmerMock{}
	w.On("WarmUp", mock.Anything, "42").Return(errors.New("cache down")).Once()
	c := &Consumer{warmer: w}

	assert.NotPanics(t, func() {
		c.handleMessage(context.Background(), &sarama.ConsumerMessage{Value: []byte(`{"userId":"42"}`)})
	})
	w.AssertExpectations(t)
}
