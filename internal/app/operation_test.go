package app

import (
	"testing"
	"time"
)

func TestNewSession(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		now       time.Time
		wantID    string
	}{
		{
			name:      "utc start",
			operation: "AddPost",
			now:       time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			wantID:    "20240115T103000Z",
		},
		{
			name:      "offset start is normalized",
			operation: "Feed",
			now:       time.Date(2024, 1, 15, 16, 0, 5, 0, time.FixedZone("IST", 5*3600+1800)),
			wantID:    "20240115T103005Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(tt.operation, tt.now)

			if s.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", s.ID, tt.wantID)
			}
			if s.Operation != tt.operation {
				t.Errorf("Operation = %q, want %q", s.Operation, tt.operation)
			}
			if s.Status != "success" {
				t.Errorf("Status = %q, want %q", s.Status, "success")
			}
			if s.Failed() {
				t.Error("Failed() = true for a new session")
			}
		})
	}
}

func TestSession_Fail(t *testing.T) {
	s := NewSession("VotePoll", time.Now())
	s.Fail()

	if !s.Failed() {
		t.Error("Failed() = false after Fail")
	}
	if s.Status != "error" {
		t.Errorf("Status = %q, want %q", s.Status, "error")
	}
}
