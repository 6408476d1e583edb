package main

import (
	"fmt"

	"careerhub/internal/app"
	"careerhub/internal/hub"

	"github.com/spf13/cobra"
)

// notifications command
var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "View and clear notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		unreadOnly, _ := cmd.Flags().GetBool("unread")

		return withApp("Notifications", func(a *app.CareerHubApp) error {
			s := a.Store()
			fmt.Printf("%d unread\n", s.UnreadCount())
			for _, n := range s.Notifications() {
				if unreadOnly && n.Read {
					continue
				}
				mark := " "
				if !n.Read {
					mark = "*"
				}
				line := fmt.Sprintf("%s #%d  %s  %s %s", mark, n.ID, n.Timestamp.Local().Format("2006-01-02 15:04"), n.Username, n.Action)
				if n.Content != nil {
					line += fmt.Sprintf(": %q", *n.Content)
				}
				fmt.Println(line)
			}
			return nil
		})
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read ID",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withApp("MarkNotificationRead", func(a *app.CareerHubApp) error {
			a.Store().MarkNotificationRead(id)
			fmt.Printf("%d unread\n", a.Store().UnreadCount())
			return nil
		})
	},
}

var notificationsReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification as read",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp("MarkAllNotificationsRead", func(a *app.CareerHubApp) error {
			a.Store().MarkAllNotificationsRead()
			fmt.Println("All notifications read")
			return nil
		})
	},
}

// apply command
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply to become a counsellor or mentor",
}

var applyCounsellorCmd = &cobra.Command{
	Use:   "counsellor",
	Short: "Submit a counsellor application",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		var d hub.CounsellorDraft
		d.Name, _ = f.GetString("name")
		d.Email, _ = f.GetString("email")
		d.Phone, _ = f.GetString("phone")
		d.Qualification, _ = f.GetString("qualification")
		d.Specialization, _ = f.GetString("specialization")
		d.ExperienceYears, _ = f.GetInt("experience")
		d.Languages, _ = f.GetStringSlice("languages")
		d.Bio, _ = f.GetString("bio")

		return withApp("AddCounsellorApplication", func(a *app.CareerHubApp) error {
			created := a.Store().AddCounsellorApplication(d)
			fmt.Printf("Counsellor application %d submitted on %s (%s)\n", created.ID, created.SubmittedAt, created.Status)
			return nil
		})
	},
}

var applyMentorCmd = &cobra.Command{
	Use:   "mentor",
	Short: "Submit a mentor application",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		var d hub.MentorDraft
		d.Name, _ = f.GetString("name")
		d.Email, _ = f.GetString("email")
		d.Phone, _ = f.GetString("phone")
		d.Company, _ = f.GetString("company")
		d.Role, _ = f.GetString("role")
		d.Expertise, _ = f.GetStringSlice("expertise")
		d.ExperienceYears, _ = f.GetInt("experience")
		d.LinkedIn, _ = f.GetString("linkedin")
		d.Motivation, _ = f.GetString("motivation")

		return withApp("AddMentorApplication", func(a *app.CareerHubApp) error {
			created := a.Store().AddMentorApplication(d)
			fmt.Printf("Mentor application %d submitted on %s (%s)\n", created.ID, created.SubmittedAt, created.Status)
			return nil
		})
	},
}

// applications command
var applicationsCmd = &cobra.Command{
	Use:   "applications",
	Short: "Review counsellor and mentor applications",
}

var applicationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		if kind != "" && kind != string(app.KindCounsellor) && kind != string(app.KindMentor) {
			return fmt.Errorf("unknown application kind: %q", kind)
		}

		return withApp("Applications", func(a *app.CareerHubApp) error {
			s := a.Store()
			if kind == "" || kind == string(app.KindCounsellor) {
				for _, c := range s.CounsellorApplications() {
					fmt.Printf("counsellor  %d  %s  %-8s  %s <%s>  %s\n", c.ID, c.SubmittedAt, c.Status, c.Name, c.Email, c.Specialization)
				}
			}
			if kind == "" || kind == string(app.KindMentor) {
				for _, m := range s.MentorApplications() {
					fmt.Printf("mentor      %d  %s  %-8s  %s <%s>  %s at %s\n", m.ID, m.SubmittedAt, m.Status, m.Name, m.Email, m.Role, m.Company)
				}
			}
			return nil
		})
	},
}

func reviewCommand(use string, status hub.ApplicationStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " counsellor|mentor ID",
		Short: "Mark an application " + string(status),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			return withApp("UpdateApplicationStatus", func(a *app.CareerHubApp) error {
				if err := a.SetApplicationStatus(app.ApplicationKind(args[0]), id, string(status)); err != nil {
					return err
				}
				fmt.Printf("%s application %d %s\n", args[0], id, status)
				return nil
			})
		},
	}
}

func init() {
	notificationsListCmd.Flags().Bool("unread", false, "Only unread notifications")
	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsReadAllCmd)

	cf := applyCounsellorCmd.Flags()
	cf.String("name", "", "Full name")
	cf.String("email", "", "Email address")
	cf.String("phone", "", "Phone number")
	cf.String("qualification", "", "Highest qualification")
	cf.String("specialization", "", "Area of specialization")
	cf.Int("experience", 0, "Years of experience")
	cf.StringSlice("languages", nil, "Languages spoken (comma separated)")
	cf.String("bio", "", "Short bio")
	applyCounsellorCmd.MarkFlagRequired("name")
	applyCounsellorCmd.MarkFlagRequired("email")

	mf := applyMentorCmd.Flags()
	mf.String("name", "", "Full name")
	mf.String("email", "", "Email address")
	mf.String("phone", "", "Phone number")
	mf.String("company", "", "Current company")
	mf.String("role", "", "Current role")
	mf.StringSlice("expertise", nil, "Areas of expertise (comma separated)")
	mf.Int("experience", 0, "Years of experience")
	mf.String("linkedin", "", "LinkedIn profile URL")
	mf.String("motivation", "", "Why you want to mentor")
	applyMentorCmd.MarkFlagRequired("name")
	applyMentorCmd.MarkFlagRequired("email")

	applyCmd.AddCommand(applyCounsellorCmd)
	applyCmd.AddCommand(applyMentorCmd)

	applicationsListCmd.Flags().String("kind", "", "counsellor or mentor (default both)")
	applicationsCmd.AddCommand(applicationsListCmd)
	applicationsCmd.AddCommand(reviewCommand("approve", hub.StatusApproved))
	applicationsCmd.AddCommand(reviewCommand("reject", hub.StatusRejected))

	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(applicationsCmd)
}
