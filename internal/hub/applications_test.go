package hub_test

import (
	"errors"
	"reflect"
	"testing"

	"careerhub/internal/hub"
	"careerhub/internal/testutil"
)

func counsellorDraft() hub.CounsellorDraft {
	return hub.CounsellorDraft{
		Name:            "X",
		Email:           "x@example.com",
		Phone:           "+91 98765 43210",
		Qualification:   "M.A. Psychology",
		Specialization:  "Career transitions",
		ExperienceYears: 6,
		Languages:       []string{"English", "Hindi"},
		Bio:             "Helping students choose streams since 2018.",
	}
}

func TestStore_AddCounsellorApplication_ThenApprove(t *testing.T) {
	s := newStore(t)

	app := s.AddCounsellorApplication(counsellorDraft())

	if app.Status != hub.StatusPending {
		t.Errorf("Status = %q, want pending", app.Status)
	}
	if app.SubmittedAt != "2024-01-15" {
		t.Errorf("SubmittedAt = %q, want the clock date 2024-01-15", app.SubmittedAt)
	}
	if app.ID != 1 {
		t.Errorf("ID = %d, want 1 from the stub generator", app.ID)
	}
	if !reflect.DeepEqual(app.CounsellorDraft, counsellorDraft()) {
		t.Errorf("draft fields = %+v, want %+v", app.CounsellorDraft, counsellorDraft())
	}

	if err := s.UpdateApplicationStatus(app.ID, hub.StatusApproved); err != nil {
		t.Fatalf("UpdateApplicationStatus() error = %v", err)
	}

	apps := s.CounsellorApplications()
	if len(apps) != 1 {
		t.Fatalf("len(CounsellorApplications()) = %d, want 1", len(apps))
	}
	want := app
	want.Status = hub.StatusApproved
	if !reflect.DeepEqual(apps[0], want) {
		t.Errorf("application = %+v, want only status changed: %+v", apps[0], want)
	}
}

func TestStore_AddMentorApplication(t *testing.T) {
	s := newStore(t)

	draft := hub.MentorDraft{
		Name:            "Kavya Rao",
		Email:           "kavya@example.com",
		Company:         "Acme Analytics",
		Role:            "Senior Data Scientist",
		Expertise:       []string{"ML", "Interview prep"},
		ExperienceYears: 9,
		Motivation:      "Give back to first-generation graduates.",
	}
	first := s.AddMentorApplication(draft)
	second := s.AddMentorApplication(draft)

	if first.Status != hub.StatusPending || first.SubmittedAt != "2024-01-15" {
		t.Errorf("first = %+v, want pending on 2024-01-15", first.ApplicationMeta)
	}
	if first.ID == second.ID {
		t.Errorf("duplicate ids %d", first.ID)
	}

	if err := s.UpdateMentorApplicationStatus(second.ID, hub.StatusRejected); err != nil {
		t.Fatalf("UpdateMentorApplicationStatus() error = %v", err)
	}
	apps := s.MentorApplications()
	if apps[0].Status != hub.StatusPending || apps[1].Status != hub.StatusRejected {
		t.Errorf("statuses = %q, %q; want pending, rejected", apps[0].Status, apps[1].Status)
	}

	// The returned records are copies.
	first.Expertise[0] = "changed"
	if s.MentorApplications()[0].Expertise[0] != "ML" {
		t.Error("caller mutation leaked into the store")
	}
}

func TestStore_UpdateApplicationStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    hub.ApplicationStatus
		to      hub.ApplicationStatus
		wantErr error
		want    hub.ApplicationStatus
	}{
		{name: "pending to approved", from: hub.StatusPending, to: hub.StatusApproved, want: hub.StatusApproved},
		{name: "pending to rejected", from: hub.StatusPending, to: hub.StatusRejected, want: hub.StatusRejected},
		{name: "pending to pending", from: hub.StatusPending, to: hub.StatusPending, want: hub.StatusPending},
		{name: "approved to approved", from: hub.StatusApproved, to: hub.StatusApproved, want: hub.StatusApproved},
		{name: "approved to rejected", from: hub.StatusApproved, to: hub.StatusRejected, wantErr: hub.ErrInvalidTransition, want: hub.StatusApproved},
		{name: "rejected to pending", from: hub.StatusRejected, to: hub.StatusPending, wantErr: hub.ErrInvalidTransition, want: hub.StatusRejected},
		{name: "invalid status", from: hub.StatusPending, to: "archived", wantErr: hub.ErrInvalidStatus, want: hub.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			app := s.AddCounsellorApplication(counsellorDraft())
			if tt.from != hub.StatusPending {
				if err := s.UpdateApplicationStatus(app.ID, tt.from); err != nil {
					t.Fatalf("moving to %q: %v", tt.from, err)
				}
			}

			err := s.UpdateApplicationStatus(app.ID, tt.to)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("UpdateApplicationStatus() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("UpdateApplicationStatus() error = %v, want %v", err, tt.wantErr)
			}
			if got := s.CounsellorApplications()[0].Status; got != tt.want {
				t.Errorf("Status = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStore_UpdateApplicationStatus_UnknownID(t *testing.T) {
	s := newStore(t)
	s.AddCounsellorApplication(counsellorDraft())

	if err := s.UpdateApplicationStatus(999, hub.StatusApproved); err != nil {
		t.Errorf("UpdateApplicationStatus(unknown) error = %v, want nil", err)
	}
	if err := s.UpdateMentorApplicationStatus(999, hub.StatusApproved); err != nil {
		t.Errorf("UpdateMentorApplicationStatus(unknown) error = %v, want nil", err)
	}
	if got := s.CounsellorApplications()[0].Status; got != hub.StatusPending {
		t.Errorf("Status = %q, want pending", got)
	}
}

func TestStore_ApplicationIDs_UniqueUnderRapidCalls(t *testing.T) {
	// Every call lands in the same clock millisecond.
	clock := testutil.FixedClock()
	s := hub.NewStore(testutil.NewTestStorage(), hub.Seed{}, nil, clock, nil, hub.Options{})
	s.Init()
	defer s.Dispose()

	seen := make(map[int64]bool)
	var last int64
	for i := 0; i < 1000; i++ {
		var id int64
		if i%2 == 0 {
			id = s.AddCounsellorApplication(counsellorDraft()).ID
		} else {
			id = s.AddMentorApplication(hub.MentorDraft{Name: "m"}).ID
		}
		if seen[id] {
			t.Fatalf("call %d: duplicate id %d", i, id)
		}
		if id <= last {
			t.Fatalf("call %d: id %d not after %d", i, id, last)
		}
		seen[id] = true
		last = id
	}
}

func TestStore_ApplicationIDs_UniqueAcrossRestarts(t *testing.T) {
	backing := testutil.NewTestStorage()
	clock := testutil.FixedClock()

	first := hub.NewStore(backing, hub.Seed{}, nil, clock, nil, hub.Options{})
	first.Init()
	a := first.AddCounsellorApplication(counsellorDraft())
	b := first.AddCounsellorApplication(counsellorDraft())
	first.Dispose()

	second := hub.NewStore(backing, hub.Seed{}, nil, clock, nil, hub.Options{})
	second.Init()
	defer second.Dispose()
	c := second.AddCounsellorApplication(counsellorDraft())

	if c.ID == a.ID || c.ID == b.ID {
		t.Errorf("id %d reused after restart (existing %d, %d)", c.ID, a.ID, b.ID)
	}
	if got := len(second.CounsellorApplications()); got != 3 {
		t.Errorf("len(CounsellorApplications()) = %d, want 3", got)
	}
}
