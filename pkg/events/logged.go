package events

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LoggedPublisher logs every publish and swallows broker failures, so a
// broker outage never surfaces as a failed booking.
type LoggedPublisher struct {
	next Publisher
	log  logrus.FieldLogger
}

func Logged(next Publisher, log logrus.FieldLogger) *LoggedPublisher {
	return &LoggedPublisher{next: next, log: log}
}

func (p *LoggedPublisher) Publish(ctx context.Context, ev Event) error {
	entry := p.log.WithFields(logrus.Fields{
		"event":          ev.Type,
		"reservation_id": ev.ReservationID,
	})
	if err := p.next.Publish(ctx, ev); err != nil {
		entry.WithError(err).Warn("failed to publish reservation event")
		return nil
	}
	entry.Debug("reservation event published")
	return nil
}

func (p *LoggedPublisher) Close() error {
	return p.next.Close()
}
