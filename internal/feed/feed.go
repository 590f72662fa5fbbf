// Package feed publishes newly stored incidents to NATS so downstream
// consumers see new records without polling the database.
package feed

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"avherald_scraper/internal/incident"
)

// DefaultSubject is the subject new incidents are published to.
const DefaultSubject = "avherald.incidents.new"

// Publisher publishes incidents as JSON messages on a NATS subject.
type Publisher struct {
	nc      *nats.Conn
	subject string
}

// Connect dials the NATS server. An empty subject falls back to
// DefaultSubject.
func Connect(url, subject string) (*Publisher, error) {
	if subject == "" {
		subject = DefaultSubject
	}
	nc, err := nats.Connect(url, nats.Name("avherald-scraper"))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Publisher{nc: nc, subject: subject}, nil
}

// Publish sends one incident.
func (p *Publisher) Publish(inc incident.Incident) error {
	data, err := json.Marshal(inc)
	if err != nil {
		return fmt.Errorf("marshal incident: %w", err)
	}
	if err := p.nc.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish incident: %w", err)
	}
	return nil
}

// PublishAll sends a batch of incidents, stopping at the first error.
func (p *Publisher) PublishAll(incs []incident.Incident) error {
	for _, inc := range incs {
		if err := p.Publish(inc); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *Publisher) Close() {
	if p.nc == nil {
		return
	}
	_ = p.nc.Drain()
}
