// SPDX-License-Identifier: EPL-2.0

package remote

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ik5/sfsynth/synth"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Conn is the part of *nats.Conn the subscriber uses.
type Conn interface {
	Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error)
	Close()
}

// Sink receives converted commands. *synth.Renderer implements it.
type Sink interface {
	Send(cmd synth.Command) error
}

// Connect dials a NATS server, retrying while the server is unreachable.
func Connect(url string, attempts int, logger *zap.Logger) (*nats.Conn, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	attempts = max(attempts, 1)

	var (
		nc  *nats.Conn
		err error
	)
	for i := range attempts {
		nc, err = nats.Connect(url,
			nats.Name("sfsynth"),
			nats.MaxReconnects(-1),
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				logger.Warn("nats disconnected", zap.Error(err))
			}),
			nats.ReconnectHandler(func(c *nats.Conn) {
				logger.Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
			}),
		)
		if err == nil {
			break
		}

		logger.Warn("nats connect failed",
			zap.String("url", url),
			zap.Int("attempt", i+1),
			zap.Int("attempts", attempts),
			zap.Error(err),
		)

		if i < attempts-1 {
			time.Sleep(time.Second)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConnect, url, err)
	}

	logger.Info("nats connected", zap.String("url", url))

	return nc, nil
}

// Subscriber turns messages published on a subject into synthesizer
// commands. The NATS client calls the handler on its own goroutine, so the
// sink must be safe for concurrent Send; synth.Renderer is.
type Subscriber struct {
	conn    Conn
	subject string
	sink    Sink
	logger  *zap.Logger

	received atomic.Uint64
	dropped  atomic.Uint64
}

func NewSubscriber(conn Conn, subject string, sink Sink, logger *zap.Logger) *Subscriber {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Subscriber{
		conn:    conn,
		subject: subject,
		sink:    sink,
		logger:  logger,
	}
}

// Start subscribes to the subject. Messages arrive until Close.
func (s *Subscriber) Start() error {
	if _, err := s.conn.Subscribe(s.subject, s.handle); err != nil {
		return fmt.Errorf("subscribe %s: %w", s.subject, err)
	}

	s.logger.Info("listening for events", zap.String("subject", s.subject))

	return nil
}

func (s *Subscriber) handle(msg *nats.Msg) {
	events, err := Decode(msg.Data)
	if err != nil {
		s.dropped.Add(1)
		s.logger.Warn("event dropped", zap.String("subject", msg.Subject), zap.Error(err))
		return
	}

	for _, ev := range events {
		s.received.Add(1)

		cmd, err := ev.Command()
		if err == nil {
			err = s.sink.Send(cmd)
		}

		if err != nil {
			s.dropped.Add(1)
			s.logger.Warn("event dropped",
				zap.String("subject", msg.Subject),
				zap.String("type", ev.Type),
				zap.Error(err),
			)
		}
	}
}

// Stats returns the number of events received and how many of them were
// dropped, undecodable message bodies included.
func (s *Subscriber) Stats() (received, dropped uint64) {
	return s.received.Load(), s.dropped.Load()
}

// Close closes the connection, which ends the subscription.
func (s *Subscriber) Close() {
	s.conn.Close()
	s.logger.Info("nats connection closed")
}
