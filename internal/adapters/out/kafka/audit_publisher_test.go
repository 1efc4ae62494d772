package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fleetops/internal/core/domain/model/activity"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/shipper"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type writerMock struct {
	mock.Mock
}

func (m *writerMock) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

type AuditPublisherSuite struct {
	suite.Suite
	wm    *writerMock
	p     *AuditPublisher
	entry *activity.Entry
}

func (s *AuditPublisherSuite) SetupTest() {
	s.wm = &writerMock{}
	s.p = newAuditPublisherWithWriter(s.wm, "fleet.audit")

	entry, err := activity.NewEntry(
		kernel.MustID("L1"),
		activity.Actor{ID: "A1", Email: "ops@fleet.io", Role: shipper.RoleAdmin},
		"MISSION_ASSIGNED",
		"Order O1 assigned to Lan",
		time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
	)
	s.Require().NoError(err)
	s.entry = entry
}

func (s *AuditPublisherSuite) TestNewAuditPublisher_NotNil() {
	p := NewAuditPublisher([]string{"localhost:0"}, "t")
	s.Require().NotNil(p)
	s.Require().NoError(p.Close())
}

func (s *AuditPublisherSuite) TestPublish_OK() {
	s.wm.
		On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
			if len(msgs) != 1 || msgs[0].Topic != "fleet.audit" || string(msgs[0].Key) != "A1" {
				return false
			}
			var m auditMessage
			if err := json.Unmarshal(msgs[0].Value, &m); err != nil {
				return false
			}
			return m.ID == "L1" && m.Event == "MISSION_ASSIGNED" && m.Role == "admin" && m.Status == activity.StatusSuccess
		})).
		Return(nil).
		Once()

	s.Require().NoError(s.p.Publish(context.Background(), s.entry))
	s.wm.AssertExpectations(s.T())
}

func (s *AuditPublisherSuite) TestPublish_ErrorWrapped() {
	want := errors.New("boom")
	s.wm.On("WriteMessages", mock.Anything, mock.Anything).Return(want).Once()

	err := s.p.Publish(context.Background(), s.entry)

	s.Require().Error(err)
	s.Require().ErrorIs(err, want)
	s.Contains(err.Error(), "kafka publish")
	s.wm.AssertExpectations(s.T())
}

func TestAuditPublisherSuite(t *testing.T) {
	suite.Run(t, new(AuditPublisherSuite))
}
