package validator_test

import (
	"strings"
	"testing"

	"seatq/shared/failure"
	"seatq/shared/validator"
)

type partyRequest struct {
	Name      string `validate:"required,max=20"     json:"name"`
	Phone     string `validate:"required,phone"      json:"phone"`
	Email     string `validate:"omitempty,email"     json:"email"`
	PartySize int    `validate:"gte=1,lte=12"        json:"party_size"`
	Status    string `validate:"oneof=waiting assigned removed" json:"status"`
}

func validParty() partyRequest {
	return partyRequest{
		Name:      "Rivera",
		Phone:     "+62 812-3456-7890",
		PartySize: 4,
		Status:    "waiting",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(p *partyRequest)
		expectError bool
		message     string
	}{
		{
			name:   "valid struct",
			mutate: func(_ *partyRequest) {},
		},
		{
			name:        "missing name",
			mutate:      func(p *partyRequest) { p.Name = "" },
			expectError: true,
			message:     "Name is required",
		},
		{
			name:        "invalid email",
			mutate:      func(p *partyRequest) { p.Email = "not-an-email" },
			expectError: true,
			message:     "Email must be a valid email address",
		},
		{
			name:        "party too large",
			mutate:      func(p *partyRequest) { p.PartySize = 13 },
			expectError: true,
			message:     "PartySize must be less than or equal to 12",
		},
		{
			name:        "empty party",
			mutate:      func(p *partyRequest) { p.PartySize = 0 },
			expectError: true,
			message:     "PartySize must be greater than or equal to 1",
		},
		{
			name:        "unknown status",
			mutate:      func(p *partyRequest) { p.Status = "seated" },
			expectError: true,
			message:     "Status must be one of waiting assigned removed",
		},
		{
			name:        "letters in phone",
			mutate:      func(p *partyRequest) { p.Phone = "call me maybe" },
			expectError: true,
			message:     "Phone must be a valid phone number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validParty()
			tt.mutate(&data)

			err := validator.ValidateStruct(&data)

			if tt.expectError && err == nil {
				t.Fatal("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Fatalf("expected no validation error, got: %v", err)
			}

			if tt.expectError {
				if err.Error() != tt.message {
					t.Errorf("expected message %q, got %q", tt.message, err.Error())
				}

				if failure.GetCode(err) != 400 {
					t.Errorf("expected code 400, got %d", failure.GetCode(err))
				}
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "plain digits phone", field: "5551234567", tag: "phone"},
		{name: "international phone", field: "+44 20 7946 0958", tag: "phone"},
		{name: "too short phone", field: "12345", tag: "phone", expectError: true},
		{name: "trailing dash phone", field: "555-123-", tag: "phone", expectError: true},
		{name: "number in range", field: 25, tag: "gte=0,lte=100"},
		{name: "number out of range", field: 150, tag: "gte=0,lte=100", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:     "valid JSON",
			jsonBody: `{"name":"Rivera","phone":"5551234567","party_size":2,"status":"waiting"}`,
		},
		{
			name:        "invalid field",
			jsonBody:    `{"name":"Rivera","phone":"5551234567","party_size":0,"status":"waiting"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"name":"Rivera","phone":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data partyRequest

			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}
