// Package format renders service records into the fixed chat phrasings.
//
// Every function here is pure: records in, string out. Missing optional
// fields degrade to "N/A" or are omitted; a formatter never fails.
package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/CharukaVithana/ServeXa/internal/gateway"
)

const (
	appointmentsLink   = "[View All Appointments →](/customer/profile/appointments)"
	serviceHistoryLink = "[View Service History →](/customer/profile/service-history)"
	footerLinks        = "[Book New Appointment](/cus-dashboard/appointments) | [View All Appointments](/customer/profile/appointments) | [Service History](/customer/profile/service-history)"

	maxScheduledShown = 5
	maxCompletedShown = 3
	maxDetailLines    = 10
)

// Appointments renders an appointment list as a markdown summary:
// upcoming first (at most 5), then completed (at most 3, if the
// response is still short), then a cancelled count, then footer links.
// Entries are ordered by their raw booking timestamp, earliest first.
func Appointments(appointments []gateway.Appointment) string {
	if len(appointments) == 0 {
		return "No appointments found."
	}

	sorted := make([]gateway.Appointment, len(appointments))
	copy(sorted, appointments)
	// ISO-8601 timestamps sort correctly as strings.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BookingDateTime < sorted[j].BookingDateTime
	})

	var scheduled, completed, cancelled []gateway.Appointment
	for _, a := range sorted {
		switch a.Status {
		case gateway.StatusScheduled:
			scheduled = append(scheduled, a)
		case gateway.StatusCompleted:
			completed = append(completed, a)
		case gateway.StatusCancelled:
			cancelled = append(cancelled, a)
		}
	}

	lines := []string{fmt.Sprintf("You have **%d** total appointments:", len(appointments))}

	if len(scheduled) > 0 {
		lines = append(lines, fmt.Sprintf("\n**Upcoming (%d):** %s", len(scheduled), appointmentsLink))
		for i, a := range scheduled {
			if i == maxScheduledShown {
				break
			}
			line := appointmentLine(i+1, a)
			if a.MechanicName != "" {
				line += " with " + a.MechanicName
			}
			lines = append(lines, line)
		}
	}

	if len(completed) > 0 && len(lines) < maxDetailLines {
		lines = append(lines, fmt.Sprintf("\n**Completed (%d):** %s", len(completed), serviceHistoryLink))
		for i, a := range completed {
			if i == maxCompletedShown {
				break
			}
			lines = append(lines, appointmentLine(i+1, a))
		}
	}

	if len(cancelled) > 0 {
		lines = append(lines, fmt.Sprintf("\n**Cancelled: %d**", len(cancelled)))
	}

	lines = append(lines, "\n---", footerLinks)
	return strings.Join(lines, "\n")
}

func appointmentLine(n int, a gateway.Appointment) string {
	serviceType := a.ServiceType
	if serviceType == "" {
		serviceType = "Service"
	}
	date, clock := splitBookingTime(a.BookingDateTime)
	return fmt.Sprintf("%d. %s - %s at %s", n, serviceType, date, clock)
}

// splitBookingTime breaks an ISO-8601 timestamp into date and time parts.
// Anything unparseable renders as N/A rather than failing the response.
func splitBookingTime(raw string) (date, clock string) {
	if raw == "" {
		return "N/A", "N/A"
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse("2006-01-02T15:04:05", raw)
	}
	if err != nil {
		return "N/A", "N/A"
	}
	return t.Format("2006-01-02"), t.Format("15:04")
}

// Vehicles renders a vehicle list. A single vehicle gets its registration
// number; multiple vehicles list at most three as "year make model".
func Vehicles(vehicles []gateway.Vehicle) string {
	if len(vehicles) == 0 {
		return "No vehicles found."
	}

	if len(vehicles) == 1 {
		v := vehicles[0]
		registration := v.RegistrationNumber
		if registration == "" {
			registration = "N/A"
		}
		return fmt.Sprintf("You have 1 vehicle registered: %s, Registration: %s.", vehicleLabel(v), registration)
	}

	labels := make([]string, 0, 3)
	for _, v := range vehicles {
		if len(labels) == 3 {
			break
		}
		labels = append(labels, vehicleLabel(v))
	}
	return fmt.Sprintf("You have %d vehicles registered: %s.", len(vehicles), strings.Join(labels, ", "))
}

func vehicleLabel(v gateway.Vehicle) string {
	parts := make([]string, 0, 3)
	if v.Year != 0 {
		parts = append(parts, strconv.Itoa(v.Year))
	}
	if v.Make != "" {
		parts = append(parts, v.Make)
	}
	if v.Model != "" {
		parts = append(parts, v.Model)
	}
	return strings.Join(parts, " ")
}

// Notifications renders total and unread counts.
func Notifications(notifications []gateway.Notification) string {
	if len(notifications) == 0 {
		return "You have no notifications."
	}

	unread := 0
	for _, n := range notifications {
		if n.Status == gateway.NotificationUnread {
			unread++
		}
	}
	if unread > 0 {
		return fmt.Sprintf("You have %d notifications, %d unread.", len(notifications), unread)
	}
	return fmt.Sprintf("You have %d notifications, all read.", len(notifications))
}

// Statistics renders the anonymous appointment summary.
func Statistics(stats gateway.Statistics) string {
	return fmt.Sprintf("ServeXa has %d total appointments: %d scheduled, %d completed.",
		stats.Total, stats.Scheduled, stats.Completed)
}
