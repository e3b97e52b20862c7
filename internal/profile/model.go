package profile

import "time"

// Profile represents a registered digital-contact tag owner.
type Profile struct {
	ID                 string    `json:"id"`
	FullName           string    `json:"fullName"`
	ContactNumber      string    `json:"contactNumber"`
	EmergencyNumber    string    `json:"emergencyNumber"`
	SecretHash         []byte    `json:"secretHash"`
	AllowEmergencyCall bool      `json:"allowEmergencyCall"`
	CreatedAt          time.Time `json:"createdAt"`
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	FullName           string
	ContactNumber      string
	EmergencyNumber    string
	Secret             string
	ConfirmSecret      string
	AllowEmergencyCall bool
}
