package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CharukaVithana/ServeXa/internal/gateway"
)

func TestAppointments_Empty(t *testing.T) {
	assert.Equal(t, "No appointments found.", Appointments(nil))
}

func TestAppointments_OrderedByBookingTime(t *testing.T) {
	got := Appointments([]gateway.Appointment{
		{ServiceType: "Brake Check", BookingDateTime: "2024-03-01T10:00:00Z", Status: gateway.StatusScheduled},
		{ServiceType: "Oil Change", BookingDateTime: "2024-01-05T09:30:00Z", Status: gateway.StatusScheduled},
	})

	oil := strings.Index(got, "Oil Change")
	brake := strings.Index(got, "Brake Check")
	assert.Greater(t, oil, -1)
	assert.Greater(t, brake, -1)
	assert.Less(t, oil, brake, "earlier booking must render first")

	assert.Contains(t, got, "You have **2** total appointments:")
	assert.Contains(t, got, "**Upcoming (2):** [View All Appointments →](/customer/profile/appointments)")
	assert.Contains(t, got, "1. Oil Change - 2024-01-05 at 09:30")
	assert.Contains(t, got, "2. Brake Check - 2024-03-01 at 10:00")
}

func TestAppointments_MechanicAppended(t *testing.T) {
	got := Appointments([]gateway.Appointment{
		{ServiceType: "Tire Rotation", BookingDateTime: "2024-02-10T14:00:00Z", Status: gateway.StatusScheduled, MechanicName: "Sam Silva"},
	})
	assert.Contains(t, got, "1. Tire Rotation - 2024-02-10 at 14:00 with Sam Silva")
}

func TestAppointments_ScheduledCap(t *testing.T) {
	var appointments []gateway.Appointment
	for i := 0; i < 7; i++ {
		appointments = append(appointments, gateway.Appointment{
			ServiceType:     "Oil Change",
			BookingDateTime: "2024-01-0" + string(rune('1'+i)) + "T10:00:00Z",
			Status:          gateway.StatusScheduled,
		})
	}
	got := Appointments(appointments)

	assert.Contains(t, got, "**Upcoming (7):**")
	assert.Contains(t, got, "5. Oil Change")
	assert.NotContains(t, got, "6. Oil Change")
}

func TestAppointments_Sections(t *testing.T) {
	got := Appointments([]gateway.Appointment{
		{ServiceType: "Oil Change", BookingDateTime: "2024-01-05T09:00:00Z", Status: gateway.StatusCompleted},
		{ServiceType: "Brake Check", BookingDateTime: "2024-02-01T10:00:00Z", Status: gateway.StatusScheduled},
		{ServiceType: "Detailing", BookingDateTime: "2024-02-02T10:00:00Z", Status: gateway.StatusCancelled},
	})

	assert.Contains(t, got, "You have **3** total appointments:")
	assert.Contains(t, got, "**Upcoming (1):**")
	assert.Contains(t, got, "**Completed (1):** [View Service History →](/customer/profile/service-history)")
	assert.Contains(t, got, "**Cancelled: 1**")
	assert.Contains(t, got, "\n---\n")
	assert.Contains(t, got, "[Book New Appointment](/cus-dashboard/appointments) | [View All Appointments](/customer/profile/appointments) | [Service History](/customer/profile/service-history)")

	upcoming := strings.Index(got, "**Upcoming")
	completed := strings.Index(got, "**Completed")
	cancelled := strings.Index(got, "**Cancelled")
	assert.Less(t, upcoming, completed)
	assert.Less(t, completed, cancelled)
}

func TestAppointments_UnparseableTimestamp(t *testing.T) {
	got := Appointments([]gateway.Appointment{
		{ServiceType: "Oil Change", BookingDateTime: "soon", Status: gateway.StatusScheduled},
		{Status: gateway.StatusScheduled},
	})
	assert.Contains(t, got, "Oil Change - N/A at N/A")
	assert.Contains(t, got, "Service - N/A at N/A")
}

func TestAppointments_Idempotent(t *testing.T) {
	appointments := []gateway.Appointment{
		{ServiceType: "B", BookingDateTime: "2024-03-01T10:00:00Z", Status: gateway.StatusScheduled},
		{ServiceType: "A", BookingDateTime: "2024-01-05T09:30:00Z", Status: gateway.StatusCompleted},
	}
	first := Appointments(appointments)
	second := Appointments(appointments)
	assert.Equal(t, first, second)
}

func TestVehicles(t *testing.T) {
	tests := []struct {
		name     string
		vehicles []gateway.Vehicle
		want     string
	}{
		{
			name: "empty",
			want: "No vehicles found.",
		},
		{
			name:     "single",
			vehicles: []gateway.Vehicle{{Year: 2020, Make: "Toyota", Model: "Corolla", RegistrationNumber: "ABC123"}},
			want:     "You have 1 vehicle registered: 2020 Toyota Corolla, Registration: ABC123.",
		},
		{
			name:     "single missing registration",
			vehicles: []gateway.Vehicle{{Year: 2018, Make: "Honda", Model: "Civic"}},
			want:     "You have 1 vehicle registered: 2018 Honda Civic, Registration: N/A.",
		},
		{
			name: "many capped at three",
			vehicles: []gateway.Vehicle{
				{Year: 2020, Make: "Toyota", Model: "Corolla"},
				{Year: 2018, Make: "Honda", Model: "Civic"},
				{Year: 2021, Make: "Ford", Model: "Ranger"},
				{Year: 2019, Make: "Mazda", Model: "3"},
			},
			want: "You have 4 vehicles registered: 2020 Toyota Corolla, 2018 Honda Civic, 2021 Ford Ranger.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Vehicles(tt.vehicles))
		})
	}
}

func TestNotifications(t *testing.T) {
	assert.Equal(t, "You have no notifications.", Notifications(nil))

	assert.Equal(t, "You have 3 notifications, 2 unread.", Notifications([]gateway.Notification{
		{Status: gateway.NotificationUnread},
		{Status: gateway.NotificationRead},
		{Status: gateway.NotificationUnread},
	}))

	assert.Equal(t, "You have 2 notifications, all read.", Notifications([]gateway.Notification{
		{Status: gateway.NotificationRead},
		{Status: gateway.NotificationRead},
	}))
}

func TestStatistics(t *testing.T) {
	assert.Equal(t,
		"ServeXa has 10 total appointments: 4 scheduled, 5 completed.",
		Statistics(gateway.Statistics{Total: 10, Scheduled: 4, Completed: 5}))

	assert.Equal(t,
		"ServeXa has 0 total appointments: 0 scheduled, 0 completed.",
		Statistics(gateway.Statistics{}))
}
