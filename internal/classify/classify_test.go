package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersonalField(t *testing.T) {
	tests := []struct {
		question string
		want     Field
		ok       bool
	}{
		{"What is my name?", FieldFullName, true},
		{"who am I", FieldFullName, true},
		{"Please show my FULL NAME", FieldFullName, true},
		{"what's my email?", FieldEmail, true},
		{"show me my email address", FieldEmail, true},
		{"what is my phone?", FieldPhoneNumber, true},
		{"do you have my phone number", FieldPhoneNumber, true},
		{"when is my next appointment", "", false},
		{"tell me about ServeXa", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			got, ok := PersonalField(tt.question)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPersonalField_NameBeforePhone(t *testing.T) {
	// "my name" and "phone number" both present; name tier wins.
	got, ok := PersonalField("is my name linked to this phone number?")
	assert.True(t, ok)
	assert.Equal(t, FieldFullName, got)
}

func TestIsPersonalData(t *testing.T) {
	personal := []string{
		"When is my appointment?",
		"show my booking",
		"status of my car service",
		"any unread NOTIFICATION?",
		"my vehicles please",
		"do I have a new message",
	}
	for _, q := range personal {
		assert.True(t, IsPersonalData(q), "question %q should be personal data", q)
	}

	general := []string{
		"What are your opening hours?",
		"tell me about ServeXa pricing",
		"how do I reset my password",
	}
	for _, q := range general {
		assert.False(t, IsPersonalData(q), "question %q should not be personal data", q)
	}
}

func TestServiceCategory(t *testing.T) {
	tests := []struct {
		question string
		want     Category
	}{
		{"my appointments", CategoryAppointment},
		{"is my booking confirmed", CategoryAppointment},
		{"anything scheduled this week?", CategoryAppointment},
		{"car registration details", CategoryVehicle},
		{"what vehicle do I own", CategoryVehicle},
		{"unread notifications", CategoryNotification},
		{"any new alert?", CategoryNotification},
		{"what is the weather", CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, ServiceCategory(tt.question))
		})
	}
}

func TestServiceCategory_AppointmentBeforeVehicle(t *testing.T) {
	// "service" (appointment tier) and "car" (vehicle tier) both match;
	// appointment is checked first.
	assert.Equal(t, CategoryAppointment, ServiceCategory("car service status"))
}

func TestClassify(t *testing.T) {
	r := Classify("when is my appointment?")
	assert.True(t, r.IsPersonalData)
	assert.False(t, r.HasPersonalField)
	assert.Equal(t, CategoryAppointment, r.Category)

	r = Classify("what's my email address")
	assert.True(t, r.HasPersonalField)
	assert.Equal(t, FieldEmail, r.PersonalField)
	assert.Equal(t, CategoryUnknown, r.Category)
}

func TestFieldLabel(t *testing.T) {
	assert.Equal(t, "name", FieldFullName.Label())
	assert.Equal(t, "email", FieldEmail.Label())
	assert.Equal(t, "phone number", FieldPhoneNumber.Label())
}
