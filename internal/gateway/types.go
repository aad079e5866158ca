package gateway

// Appointment is one service booking as returned by the appointment service.
// Field schemas are owned by the service; the formatter tolerates absent
// optional fields, so everything stays a plain value with a zero default.
type Appointment struct {
	ID              string `json:"id"`
	ServiceType     string `json:"serviceType"`
	BookingDateTime string `json:"bookingDateTime"` // ISO-8601, kept raw for stable sorting
	Status          string `json:"status"`          // SCHEDULED, COMPLETED, CANCELLED
	MechanicName    string `json:"mechanicName"`    // optional
}

// Appointment status values used by the formatter.
const (
	StatusScheduled = "SCHEDULED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// Statistics are the aggregate appointment counts. Keys absent from the
// service payload decode to zero.
type Statistics struct {
	Total     int `json:"totalAppointments"`
	Scheduled int `json:"scheduledAppointments"`
	Completed int `json:"completedAppointments"`
}

// Vehicle is one registered vehicle.
type Vehicle struct {
	ID                 string `json:"id"`
	Year               int    `json:"year"`
	Make               string `json:"make"`
	Model              string `json:"model"`
	RegistrationNumber string `json:"registrationNumber"`
}

// Notification is one user notification. Only Status drives formatting; the
// remaining fields are carried for logging and future use.
type Notification struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Status  string `json:"status"` // READ or UNREAD
}

// Notification status values.
const (
	NotificationRead   = "READ"
	NotificationUnread = "UNREAD"
)

// Profile is the raw profile payload from the auth service. The schema is
// owned by that service, so it stays a map and callers use Field for
// presence-checked access.
type Profile map[string]any

// Field returns the named profile field as a non-empty string.
// Missing, null, empty, or non-string values report false.
func (p Profile) Field(name string) (string, bool) {
	v, ok := p[name]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
