package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/aussiebroadwan/market/internal/market/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

type recordingChannel struct {
	mu       sync.Mutex
	keys     []string
	messages []amqp.Publishing
	closed   bool
}

func (c *recordingChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = append(c.keys, key)
	c.messages = append(c.messages, msg)
	return nil
}

func (c *recordingChannel) Close() error {
	c.closed = true
	return nil
}

func TestAMQPPublisherPublish(t *testing.T) {
	ch := &recordingChannel{}
	p := &AMQPPublisher{ch: ch, exchange: "market"}

	offer := domain.Offer{ID: "o1", OwnerID: "u1", Name: "Shoes", Price: 42}
	require.NoError(t, p.Publish(context.Background(), NewOfferEvent(OfferPublished, offer)))

	require.Equal(t, []string{"offer.published"}, ch.keys)
	msg := ch.messages[0]
	require.Equal(t, "application/json", msg.ContentType)
	require.Equal(t, amqp.Persistent, msg.DeliveryMode)

	var got OfferEvent
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	require.Equal(t, OfferPublished, got.Type)
	require.Equal(t, "o1", got.OfferID)
	require.Equal(t, "u1", got.OwnerID)
	require.Equal(t, 42.0, got.Price)

	require.NoError(t, p.Close())
	require.True(t, ch.closed)
}

func TestAMQPPublisherConcurrentPublish(t *testing.T) {
	ch := &recordingChannel{}
	p := &AMQPPublisher{ch: ch, exchange: "market"}

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			_ = p.Publish(context.Background(), NewOfferEvent(OfferDeleted, domain.Offer{ID: "o"}))
		})
	}
	wg.Wait()

	require.Len(t, ch.messages, 20)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	require.NoError(t, p.Publish(context.Background(), OfferEvent{}))
	require.NoError(t, p.Close())
}
