package refund

import (
	"errors"
	"math"
	"testing"
)

func TestSelectRule(t *testing.T) {
	tests := []struct {
		name     string
		daysDiff float64
		want     Rule
		wantErr  error
	}{
		{name: "well ahead of check-in", daysDiff: 10, want: Full},
		{name: "just over a week", daysDiff: 7.5, want: Full},
		{name: "exactly seven days", daysDiff: 7, want: Partial},
		{name: "a few days before", daysDiff: 3, want: Partial},
		{name: "check-in day", daysDiff: 0, want: None},
		{name: "after check-in", daysDiff: -2, want: None},
		{name: "not a number", daysDiff: math.NaN(), wantErr: ErrInvalidDaysDiff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectRule(tt.daysDiff)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SelectRule(%v) error = %v, want %v", tt.daysDiff, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SelectRule(%v) unexpected error: %v", tt.daysDiff, err)
			}
			if got != tt.want {
				t.Fatalf("SelectRule(%v) = %v, want %v", tt.daysDiff, got, tt.want)
			}
		})
	}
}

func TestRule_CalculateRefund(t *testing.T) {
	tests := []struct {
		name       string
		rule       Rule
		totalPrice float64
		want       float64
	}{
		{name: "full refund retains nothing", rule: Full, totalPrice: 1000, want: 0},
		{name: "partial refund retains half", rule: Partial, totalPrice: 1500, want: 750},
		{name: "no refund retains everything", rule: None, totalPrice: 810, want: 810},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.CalculateRefund(tt.totalPrice); got != tt.want {
				t.Fatalf("CalculateRefund(%v) = %v, want %v", tt.totalPrice, got, tt.want)
			}
		})
	}
}

func TestRule_String(t *testing.T) {
	tests := []struct {
		rule Rule
		want string
	}{
		{rule: Full, want: "full"},
		{rule: Partial, want: "partial"},
		{rule: None, want: "none"},
	}

	for _, tt := range tests {
		if got := tt.rule.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}
