package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/CharukaVithana/ServeXa/internal/classify"
	"github.com/CharukaVithana/ServeXa/internal/format"
)

const (
	msgAppointmentTrouble = "I'm having trouble accessing appointment information right now. Please try again later."
	msgVehicleTrouble     = "I'm having trouble accessing vehicle information right now. Please try again later."
	msgFetchTrouble       = "I encountered an error while fetching your information. Please try again later."
	msgUnmatchedQuestion  = "I'm not sure how to answer that question. Please try asking about appointments, vehicles, or notifications."
)

// resolveServiceQuery answers a business question against the downstream
// services. The sub-question is re-classified here: the model only picked
// the capability, not the service.
func (r *Router) resolveServiceQuery(ctx context.Context, question, customerID, token string) string {
	switch classify.ServiceCategory(question) {
	case classify.CategoryAppointment:
		return r.appointmentAnswer(ctx, customerID, token)
	case classify.CategoryVehicle:
		return r.vehicleAnswer(ctx, customerID, token)
	case classify.CategoryNotification:
		return r.notificationAnswer(ctx, question, customerID, token)
	default:
		return msgUnmatchedQuestion
	}
}

func (r *Router) appointmentAnswer(ctx context.Context, customerID, token string) string {
	if customerID == "" {
		stats, err := r.services.AppointmentStatistics(ctx, token)
		if err != nil {
			r.logger.Error("statistics fetch failed", "error", err)
			return msgFetchTrouble
		}
		return format.Statistics(stats)
	}

	appointments, err := r.services.Appointments(ctx, customerID, token)
	if err != nil {
		r.logger.Error("appointments fetch failed", "customer_id", customerID, "error", err)
		return msgAppointmentTrouble
	}
	if len(appointments) == 0 {
		return "You don't have any appointments currently."
	}
	return format.Appointments(appointments)
}

func (r *Router) vehicleAnswer(ctx context.Context, customerID, token string) string {
	if customerID == "" {
		return "Please log in to view vehicle information."
	}

	vehicles, err := r.services.Vehicles(ctx, customerID, token)
	if err != nil {
		r.logger.Error("vehicles fetch failed", "customer_id", customerID, "error", err)
		return msgVehicleTrouble
	}
	if len(vehicles) == 0 {
		return "You don't have any vehicles registered."
	}
	return format.Vehicles(vehicles)
}

func (r *Router) notificationAnswer(ctx context.Context, question, customerID, token string) string {
	if customerID == "" {
		return "Please log in to view your notifications."
	}

	if strings.Contains(strings.ToLower(question), "unread") {
		count, err := r.services.UnreadCount(ctx, customerID, token)
		if err != nil {
			r.logger.Error("unread count fetch failed", "customer_id", customerID, "error", err)
			return msgFetchTrouble
		}
		return fmt.Sprintf("You have %d unread notifications.", count)
	}

	notifications, err := r.services.Notifications(ctx, customerID, token)
	if err != nil {
		r.logger.Error("notifications fetch failed", "customer_id", customerID, "error", err)
		return msgFetchTrouble
	}
	return format.Notifications(notifications)
}
