package gateway

import (
	"context"
	"encoding/json"
	"net/url"
	"time"
)

// AppointmentOption narrows an appointment listing.
type AppointmentOption func(url.Values)

// WithStatus filters appointments by status (SCHEDULED, COMPLETED, CANCELLED).
func WithStatus(status string) AppointmentOption {
	return func(q url.Values) { q.Set("status", status) }
}

// WithFromDate filters appointments booked at or after t.
func WithFromDate(t time.Time) AppointmentOption {
	return func(q url.Values) { q.Set("fromDate", t.Format(time.RFC3339)) }
}

// WithToDate filters appointments booked at or before t.
func WithToDate(t time.Time) AppointmentOption {
	return func(q url.Values) { q.Set("toDate", t.Format(time.RFC3339)) }
}

// Appointments lists a customer's appointments.
// An empty list with a nil error means the customer has none.
func (c *Client) Appointments(ctx context.Context, customerID, token string, opts ...AppointmentOption) ([]Appointment, error) {
	q := url.Values{"customerId": []string{customerID}}
	for _, opt := range opts {
		opt(q)
	}

	var appointments []Appointment
	if err := c.getJSON(ctx, "appointment-service", c.appointment, "/api/appointments", q, token, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// AppointmentByID fetches one appointment. Absence returns (nil, nil).
func (c *Client) AppointmentByID(ctx context.Context, id, token string) (*Appointment, error) {
	var appointment *Appointment
	if err := c.getJSON(ctx, "appointment-service", c.appointment, "/api/appointments/"+url.PathEscape(id), nil, token, &appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// AppointmentStatistics fetches the aggregate counts. No identity required;
// this backs the anonymous appointment summary. The service wraps the counts
// in a {success, data, message} envelope; absent keys decode to zero.
func (c *Client) AppointmentStatistics(ctx context.Context, token string) (Statistics, error) {
	var env envelope
	if err := c.getJSON(ctx, "appointment-service", c.appointment, "/api/appointments/statistics", nil, token, &env); err != nil {
		return Statistics{}, err
	}

	var stats Statistics
	if env.dataIsAbsent() {
		return stats, nil
	}
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		// Shape surprise: all-zero counts, never raised.
		c.logger.Warn("unexpected statistics payload shape", "error", err)
		return Statistics{}, nil
	}
	return stats, nil
}
