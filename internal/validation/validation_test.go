package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "player@example.com", wantErr: false},
		{name: "valid with plus", email: "player+quiz@example.co.uk", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "missing domain", email: "player@", wantErr: true},
		{name: "missing at sign", email: "player.example.com", wantErr: true},
		{name: "whitespace only", email: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid password", password: "longenough", wantErr: false},
		{name: "empty", password: "", wantErr: true},
		{name: "too short", password: "short", wantErr: true},
		{name: "exactly eight", password: "12345678", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid name", value: "Regis", wantErr: false},
		{name: "empty", value: "", wantErr: true},
		{name: "single character", value: "R", wantErr: true},
		{name: "whitespace only", value: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAnswerKey(t *testing.T) {
	for _, key := range []string{"a", "b", "c", "d"} {
		if err := ValidateAnswerKey(key); err != nil {
			t.Errorf("ValidateAnswerKey(%q) error = %v", key, err)
		}
	}
	for _, key := range []string{"", "e", "A", "ab", "1"} {
		if err := ValidateAnswerKey(key); err == nil {
			t.Errorf("ValidateAnswerKey(%q) accepted an invalid key", key)
		}
	}
}
