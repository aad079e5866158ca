// Package classify implements the lexical question classifier shared by the
// intent router and the service query resolver.
//
// Classification is pure string matching: the question is lower-cased and
// tested for fixed keyword substrings, first match wins within each tier.
// Personal-field triggers are checked before category triggers.
package classify

import "strings"

// Field identifies a profile field resolvable by the identity fast path.
// Values match the field names returned by the auth service.
type Field string

const (
	FieldFullName    Field = "fullName"
	FieldEmail       Field = "email"
	FieldPhoneNumber Field = "phoneNumber"
)

// Label returns the spoken name of the field for use in answer text,
// e.g. "Your name is ..." / "I don't know your phone number."
func (f Field) Label() string {
	switch f {
	case FieldFullName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldPhoneNumber:
		return "phone number"
	default:
		return string(f)
	}
}

// Category is the lexical topic of a service-data question.
type Category string

const (
	CategoryAppointment  Category = "appointment"
	CategoryVehicle      Category = "vehicle"
	CategoryNotification Category = "notification"
	CategoryUnknown      Category = ""
)

// personalFieldTriggers maps each profile field to its trigger substrings.
// Slice order fixes the match priority: name before email before phone.
var personalFieldTriggers = []struct {
	field    Field
	keywords []string
}{
	{FieldFullName, []string{"my name", "who am i", "full name"}},
	{FieldEmail, []string{"my email", "email address"}},
	{FieldPhoneNumber, []string{"my phone", "phone number"}},
}

// personalDataKeywords flag a question as asking for caller-specific data.
// A match with no caller identifier triggers the login prompt instead of any
// downstream or model call.
var personalDataKeywords = []string{
	"appointment", "booking", "my car", "my vehicle", "my service",
	"vehicle details", "car details", "service status", "my booking",
	"when is my", "status of my", "my vehicles", "my appointments",
	"notification", "alert", "message",
}

// categoryTriggers fix the category match priority: appointment, vehicle,
// notification.
var categoryTriggers = []struct {
	category Category
	keywords []string
}{
	{CategoryAppointment, []string{"appointment", "booking", "scheduled", "service"}},
	{CategoryVehicle, []string{"vehicle", "car", "registration"}},
	{CategoryNotification, []string{"notification", "alert", "message"}},
}

// Result is the full classification of a question.
type Result struct {
	IsPersonalData   bool
	PersonalField    Field // empty unless HasPersonalField
	HasPersonalField bool
	Category         Category
}

// Classify runs all tiers over the question. Pure; no side effects.
func Classify(question string) Result {
	r := Result{Category: ServiceCategory(question)}
	r.IsPersonalData = IsPersonalData(question)
	r.PersonalField, r.HasPersonalField = PersonalField(question)
	return r
}

// PersonalField reports whether the question asks for a specific profile
// field, and which one. Checked before category triggers.
func PersonalField(question string) (Field, bool) {
	q := strings.ToLower(question)
	for _, t := range personalFieldTriggers {
		for _, kw := range t.keywords {
			if strings.Contains(q, kw) {
				return t.field, true
			}
		}
	}
	return "", false
}

// IsPersonalData reports whether the question asks for caller-specific data
// (appointments, vehicles, notifications, service status).
func IsPersonalData(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range personalDataKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// ServiceCategory returns the service topic of the question, or
// CategoryUnknown when no category keyword matches.
func ServiceCategory(question string) Category {
	q := strings.ToLower(question)
	for _, t := range categoryTriggers {
		for _, kw := range t.keywords {
			if strings.Contains(q, kw) {
				return t.category
			}
		}
	}
	return CategoryUnknown
}
