package domain

import (
	"errors"
	"testing"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		userName string
		wantErr  error
	}{
		{name: "valid user", id: "user-1", userName: "Alice"},
		{name: "empty id", id: "", userName: "Alice", wantErr: ErrEmptyUserID},
		{name: "empty name", id: "user-1", userName: "", wantErr: ErrEmptyUserName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUser(tt.id, tt.userName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewUser() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewUser() unexpected error: %v", err)
			}
			if u.ID() != tt.id || u.Name() != tt.userName {
				t.Fatalf("NewUser() = %q/%q, want %q/%q", u.ID(), u.Name(), tt.id, tt.userName)
			}
		})
	}
}
