package eventbus

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"link-catalog/internal/domain/event"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

type EventBusTestSuite struct {
	suite.Suite
	sut *EventBus
}

func TestEventBusTestSuite(t *testing.T) {
	suite.Run(t, new(EventBusTestSuite))
}

func (s *EventBusTestSuite) SetupTest() {
	s.sut = NewEventBus(watermill.NopLogger{})
}

func (s *EventBusTestSuite) TearDownTest() {
	if s.sut != nil {
		s.sut.Close()
	}
}

func (s *EventBusTestSuite) TestPublishWithoutSubscribers() {
	err := s.sut.Publish(context.Background(), event.NewLinkSelected("https://a/1.png", "x"))

	s.NoError(err)
}

func (s *EventBusTestSuite) TestEventToMessage() {
	evt := event.NewLinkSelected("https://a/1.png", "x")

	msg, err := EventToMessage(evt)

	s.Require().NoError(err)
	s.Equal(evt.EventID(), msg.UUID)
	s.Equal(event.NameLinkSelected, msg.Metadata.Get(MetadataEventName))
	s.Equal("https://a/1.png", msg.Metadata.Get(MetadataAggregateID))
	s.JSONEq(mustJSON(s.T(), evt), string(msg.Payload))
}

func (s *EventBusTestSuite) TestMessageToEnvelope() {
	evt := event.NewLinksAppended(3, 2, 10)
	msg, err := EventToMessage(evt)
	s.Require().NoError(err)

	envelope, err := MessageToEnvelope(msg)

	s.Require().NoError(err)
	s.Equal(evt.EventID(), envelope.EventID)
	s.Equal(event.NameLinksAppended, envelope.EventName)
	s.Equal(event.CatalogID, envelope.AggregateID)
	s.True(evt.OccurredAt().Equal(envelope.OccurredAt))

	var decoded event.LinksAppended
	s.Require().NoError(envelope.Decode(&decoded))
	s.Equal(2, decoded.Added)
	s.Equal(10, decoded.Total)
}

func (s *EventBusTestSuite) TestMessageToEnvelope_Invalid() {
	_, err := MessageToEnvelope(message.NewMessage(watermill.NewUUID(), []byte(`{}`)))
	s.ErrorIs(err, ErrMissingEventName)

	msg := message.NewMessage(watermill.NewUUID(), []byte(`{}`))
	msg.Metadata.Set(MetadataEventName, event.NameLinkSelected)
	msg.Metadata.Set(MetadataOccurredAt, "yesterday")
	_, err = MessageToEnvelope(msg)
	s.Error(err)
}

func (s *EventBusTestSuite) TestPublishAndSubscribe() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	messages, err := s.sut.Subscriber().Subscribe(ctx, CatalogEventsTopic)
	s.Require().NoError(err)

	err = s.sut.Publish(ctx, event.NewLinksDeleted(1, 4))
	s.Require().NoError(err)

	select {
	case msg := <-messages:
		envelope, err := MessageToEnvelope(msg)
		s.NoError(err)
		s.Equal(event.NameLinksDeleted, envelope.EventName)
		msg.Ack()
	case <-ctx.Done():
		s.Fail("timeout waiting for message")
	}
}

func (s *EventBusTestSuite) TestPublishDetachesContext() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	messages, err := s.sut.Subscriber().Subscribe(ctx, CatalogEventsTopic)
	s.Require().NoError(err)

	reqCtx, reqCancel := context.WithCancel(context.Background())
	s.Require().NoError(s.sut.Publish(reqCtx, event.NewLinkSelected("https://a/1.png", "x")))
	reqCancel()

	select {
	case msg := <-messages:
		s.NoError(msg.Context().Err())
		msg.Ack()
	case <-ctx.Done():
		s.Fail("timeout waiting for message")
	}
}
