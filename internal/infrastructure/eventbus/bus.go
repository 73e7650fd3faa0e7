// Package eventbus is the in-process application event bus. A single Bus is built in main and
// passed by reference to publishers and subscribers; there is no package-level dispatcher.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/mikiasgoitom/Coursely/internal/domain/contract"
	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
)

type Bus struct {
	pubsub *gochannel.GoChannel
	logger usecasecontract.IAppLogger
	wg     sync.WaitGroup
}

var _ contract.IEventPublisher = (*Bus)(nil)

func New(logger usecasecontract.IAppLogger) *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, NewWatermillLogger(logger)),
		logger: logger,
	}
}

// Publish JSON-encodes event and hands it to current subscribers of topic.
// Events published before anyone subscribes are dropped.
func (b *Bus) Publish(_ context.Context, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", topic, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Subscribe decodes every message on topic into T and calls handler until ctx is done or
// the bus is closed. Handler errors are logged; messages are always acked so a poison
// event cannot be redelivered forever.
func Subscribe[T any](ctx context.Context, b *Bus, topic string, handler func(context.Context, T) error) error {
	messages, err := b.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for msg := range messages {
			var event T
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				b.logger.Errorf("eventbus: dropping undecodable %s message %s: %v", topic, msg.UUID, err)
				msg.Ack()
				continue
			}
			if err := handler(ctx, event); err != nil {
				b.logger.Errorf("eventbus: %s handler failed for message %s: %v", topic, msg.UUID, err)
			}
			msg.Ack()
		}
	}()
	return nil
}

// Close stops delivery and waits for running handlers to return.
func (b *Bus) Close() error {
	err := b.pubsub.Close()
	b.wg.Wait()
	return err
}
