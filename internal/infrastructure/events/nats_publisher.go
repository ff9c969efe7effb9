package events

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go"

	"deskbridge/internal/bootstrap/logging"
	"deskbridge/internal/errs"
)

// Publisher announces completed cycles on a NATS subject. An empty URL
// disables publishing entirely; cycle outcomes never depend on delivery.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

func NewPublisher(url string, subject string) (*Publisher, error) {
	if strings.TrimSpace(url) == "" {
		return &Publisher{}, nil
	}

	conn, err := nats.Connect(url, nats.Name("deskbridge"))
	if err != nil {
		return nil, errs.Wrap(err, "connect nats")
	}
	return &Publisher{conn: conn, subject: subject}, nil
}

func (p *Publisher) PublishCycleCompleted(ctx context.Context, payload []byte) error {
	if p.conn == nil {
		return nil
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return errs.Wrap(err, "publish cycle event")
	}
	logging.Info(ctx, "cycle event published", slog.String("subject", p.subject))
	return nil
}

func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Drain()
	}
}
