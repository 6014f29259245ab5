//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"famcard/internal/audit"
	"famcard/internal/audit/kafka"
	"famcard/pkg/testutil/containers"
)

type PublisherSuite struct {
	suite.Suite
	redpanda  *containers.RedpandaContainer
	publisher *kafka.Publisher
	topic     string
}

func TestPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupSuite() {
	s.redpanda = containers.GetManager().GetRedpanda(s.T())
	s.topic = "famcard.audit.test"

	p, err := kafka.New([]string{s.redpanda.Broker}, kafka.WithTopic(s.topic))
	s.Require().NoError(err)
	s.publisher = p

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.Require().NoError(p.EnsureTopic(ctx, 1, 1))
	s.Require().NoError(p.EnsureTopic(ctx, 1, 1), "ensuring twice is idempotent")
}

func (s *PublisherSuite) TearDownSuite() {
	if s.publisher != nil {
		s.NoError(s.publisher.Close())
	}
}

func (s *PublisherSuite) TestPublishIsKeyedByEventID() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	event := audit.Event{
		Action:        audit.ActionFamilyLookup,
		SubjectIDHash: audit.HashSubject("900101300123"),
		Outcome:       "ok",
		Source:        audit.SourceBackend,
		MemberCount:   2,
	}.Normalize(time.Now())
	s.Require().NoError(s.publisher.Publish(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Broker),
		kgo.ConsumeTopics(s.topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	for {
		fetches := consumer.PollFetches(ctx)
		s.Require().NoError(ctx.Err(), "no record consumed before timeout")
		var found bool
		fetches.EachRecord(func(r *kgo.Record) {
			if string(r.Key) != event.ID.String() {
				return
			}
			var got audit.Event
			s.Require().NoError(json.Unmarshal(r.Value, &got))
			s.Equal(event.SubjectIDHash, got.SubjectIDHash)
			s.Equal(2, got.MemberCount)
			found = true
		})
		if found {
			return
		}
	}
}
