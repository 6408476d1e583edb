package hub

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidVisibility is returned for visibility values outside the closed set.
	ErrInvalidVisibility = errors.New("invalid visibility")

	// ErrInvalidStatus is returned for application statuses outside the closed set.
	ErrInvalidStatus = errors.New("invalid application status")

	// ErrInvalidTransition is returned when an application leaves a terminal status.
	ErrInvalidTransition = errors.New("invalid application status transition")
)

// Visibility controls who may see a post.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityFollowers Visibility = "followers"
	VisibilityPrivate   Visibility = "private"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityFollowers, VisibilityPrivate:
		return true
	}
	return false
}

// ParseVisibility converts s into a Visibility, rejecting unknown values.
func ParseVisibility(s string) (Visibility, error) {
	v := Visibility(s)
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidVisibility, s)
	}
	return v, nil
}

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
	NotificationMention NotificationType = "mention"
	NotificationShare   NotificationType = "share"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationLike, NotificationComment, NotificationFollow, NotificationMention, NotificationShare:
		return true
	}
	return false
}

// ApplicationStatus is the review state of a counsellor or mentor application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed out of s.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ParseApplicationStatus converts s into an ApplicationStatus, rejecting unknown values.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// UnmarshalText rejects statuses outside the closed set so malformed
// persisted applications fall back to the default on load.
func (s *ApplicationStatus) UnmarshalText(text []byte) error {
	st, err := ParseApplicationStatus(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Poll is an optional single-choice poll embedded in a post.
// Votes is parallel to Options. HasVoted is true iff UserVote is non-nil.
type Poll struct {
	Options  []string `json:"options"`
	Votes    []int    `json:"votes"`
	HasVoted bool     `json:"hasVoted"`
	UserVote *int     `json:"userVote"`
}

func (p *Poll) clone() *Poll {
	if p == nil {
		return nil
	}
	cp := &Poll{
		Options:  append([]string(nil), p.Options...),
		Votes:    append([]int(nil), p.Votes...),
		HasVoted: p.HasVoted,
	}
	if p.UserVote != nil {
		v := *p.UserVote
		cp.UserVote = &v
	}
	return cp
}

// TotalVotes returns the sum of every option's votes.
func (p *Poll) TotalVotes() int {
	total := 0
	for _, v := range p.Votes {
		total += v
	}
	return total
}

// Post is a feed entry.
type Post struct {
	ID               int64      `json:"id"`
	AuthorID         int64      `json:"authorId"`
	Content          string     `json:"content"`
	Timestamp        time.Time  `json:"timestamp"`
	Likes            int        `json:"likes"`
	Comments         int        `json:"comments"`
	Shares           int        `json:"shares"`
	Image            *string    `json:"image,omitempty"`
	IsPinned         bool       `json:"isPinned"`
	Visibility       Visibility `json:"visibility"`
	CommentsDisabled bool       `json:"commentsDisabled"`
	Poll             *Poll      `json:"poll,omitempty"`
}

func (p Post) clone() Post {
	cp := p
	if p.Image != nil {
		img := *p.Image
		cp.Image = &img
	}
	cp.Poll = p.Poll.clone()
	return cp
}

// PostDraft holds the caller-supplied fields of a new post.
// PollOptions, when non-empty, attaches a fresh poll with zeroed votes.
type PostDraft struct {
	AuthorID    int64
	Content     string
	Image       *string
	Visibility  Visibility
	PollOptions []string
}

// ImageUpdate tells UpdatePost what to do with a post's image.
// The zero value keeps the current image.
type ImageUpdate struct {
	set   bool
	value *string
}

// KeepImage leaves the image unchanged.
func KeepImage() ImageUpdate { return ImageUpdate{} }

// SetImage replaces the image with url.
func SetImage(url string) ImageUpdate { return ImageUpdate{set: true, value: &url} }

// ClearImage removes the image.
func ClearImage() ImageUpdate { return ImageUpdate{set: true} }

// Notification is an activity item shown to the current user.
type Notification struct {
	ID        int64            `json:"id"`
	Type      NotificationType `json:"type"`
	Username  string           `json:"username"`
	Avatar    string           `json:"avatar"`
	Action    string           `json:"action"`
	Content   *string          `json:"content,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
}

func (n Notification) clone() Notification {
	cp := n
	if n.Content != nil {
		c := *n.Content
		cp.Content = &c
	}
	return cp
}

// ApplicationMeta carries the store-assigned fields shared by every kind of application.
type ApplicationMeta struct {
	ID          int64             `json:"id"`
	Status      ApplicationStatus `json:"status"`
	SubmittedAt string            `json:"submittedAt"` // YYYY-MM-DD
}

func (m *ApplicationMeta) meta() *ApplicationMeta { return m }

// CounsellorDraft holds the form fields of a counsellor application.
type CounsellorDraft struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Qualification   string   `json:"qualification"`
	Specialization  string   `json:"specialization"`
	ExperienceYears int      `json:"experienceYears"`
	Languages       []string `json:"languages,omitempty"`
	Bio             string   `json:"bio"`
}

// CounsellorApplication is a submitted request to become a counsellor.
type CounsellorApplication struct {
	ApplicationMeta
	CounsellorDraft
}

func (a CounsellorApplication) clone() CounsellorApplication {
	cp := a
	cp.Languages = append([]string(nil), a.Languages...)
	return cp
}

// MentorDraft holds the form fields of a mentor application.
type MentorDraft struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Company         string   `json:"company"`
	Role            string   `json:"role"`
	Expertise       []string `json:"expertise,omitempty"`
	ExperienceYears int      `json:"experienceYears"`
	LinkedIn        string   `json:"linkedIn,omitempty"`
	Motivation      string   `json:"motivation"`
}

// MentorApplication is a submitted request to become a mentor.
type MentorApplication struct {
	ApplicationMeta
	MentorDraft
}

func (a MentorApplication) clone() MentorApplication {
	cp := a
	cp.Expertise = append([]string(nil), a.Expertise...)
	return cp
}

// Seed is the bundled fixture content the store starts from.
type Seed struct {
	Posts         []Post
	Notifications []Notification
}
