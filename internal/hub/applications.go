package hub

import "fmt"

// submittedAtLayout is the date format of ApplicationMeta.SubmittedAt.
const submittedAtLayout = "2006-01-02"

// application is satisfied by pointers to the application record types.
type application[T any] interface {
	*T
	meta() *ApplicationMeta
}

// transition moves the application with the given id to status.
// Pending may become approved or rejected; both of those are terminal.
// changed is false for unknown IDs and for same-status updates.
func transition[T any, P application[T]](list []T, id int64, status ApplicationStatus) (changed bool, err error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	for i := range list {
		m := P(&list[i]).meta()
		if m.ID != id {
			continue
		}
		if m.Status == status {
			return false, nil
		}
		if m.Status.Terminal() {
			return false, fmt.Errorf("%w: application %d is %s", ErrInvalidTransition, id, m.Status)
		}
		m.Status = status
		return true, nil
	}
	return false, nil
}

func (s *Store) newApplicationMeta() ApplicationMeta {
	return ApplicationMeta{
		ID:          s.idgen.Next(),
		Status:      StatusPending,
		SubmittedAt: s.clock.Now().Format(submittedAtLayout),
	}
}

// AddCounsellorApplication records a new pending counsellor application and
// returns it. A disposed store records nothing and returns the zero value.
func (s *Store) AddCounsellorApplication(draft CounsellorDraft) CounsellorApplication {
	var created CounsellorApplication
	ok := s.mutate("AddCounsellorApplication", func() []Change {
		created = CounsellorApplication{ApplicationMeta: s.newApplicationMeta(), CounsellorDraft: draft}
		created = created.clone()
		s.counsellorApps = append(s.counsellorApps, created)
		return []Change{{Collection: CollectionCounsellorApplications, IDs: []int64{created.ID}}}
	})
	if !ok {
		return CounsellorApplication{}
	}
	s.logger.Info("counsellor application submitted", "id", created.ID)
	return created.clone()
}

// AddMentorApplication records a new pending mentor application and returns it.
// A disposed store records nothing and returns the zero value.
func (s *Store) AddMentorApplication(draft MentorDraft) MentorApplication {
	var created MentorApplication
	ok := s.mutate("AddMentorApplication", func() []Change {
		created = MentorApplication{ApplicationMeta: s.newApplicationMeta(), MentorDraft: draft}
		created = created.clone()
		s.mentorApps = append(s.mentorApps, created)
		return []Change{{Collection: CollectionMentorApplications, IDs: []int64{created.ID}}}
	})
	if !ok {
		return MentorApplication{}
	}
	s.logger.Info("mentor application submitted", "id", created.ID)
	return created.clone()
}

// UpdateApplicationStatus changes the status of a counsellor application.
// Only the status field changes. Unknown IDs are ignored.
func (s *Store) UpdateApplicationStatus(id int64, status ApplicationStatus) error {
	var err error
	s.mutate("UpdateApplicationStatus", func() []Change {
		var changed bool
		changed, err = transition(s.counsellorApps, id, status)
		if !changed {
			return nil
		}
		return []Change{{Collection: CollectionCounsellorApplications, IDs: []int64{id}}}
	})
	if err != nil {
		return fmt.Errorf("updating counsellor application %d: %w", id, err)
	}
	return nil
}

// UpdateMentorApplicationStatus changes the status of a mentor application.
// Only the status field changes. Unknown IDs are ignored.
func (s *Store) UpdateMentorApplicationStatus(id int64, status ApplicationStatus) error {
	var err error
	s.mutate("UpdateMentorApplicationStatus", func() []Change {
		var changed bool
		changed, err = transition(s.mentorApps, id, status)
		if !changed {
			return nil
		}
		return []Change{{Collection: CollectionMentorApplications, IDs: []int64{id}}}
	})
	if err != nil {
		return fmt.Errorf("updating mentor application %d: %w", id, err)
	}
	return nil
}
