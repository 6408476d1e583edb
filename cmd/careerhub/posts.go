package main

import (
	"fmt"
	"strconv"
	"strings"

	"careerhub/internal/app"
	"careerhub/internal/hub"

	"github.com/spf13/cobra"
)

func printPost(p hub.Post, liked, saved bool) {
	var flags []string
	if p.IsPinned {
		flags = append(flags, "pinned")
	}
	if p.Visibility != hub.VisibilityPublic {
		flags = append(flags, string(p.Visibility))
	}
	if p.CommentsDisabled {
		flags = append(flags, "comments off")
	}
	if liked {
		flags = append(flags, "liked")
	}
	if saved {
		flags = append(flags, "saved")
	}
	tag := ""
	if len(flags) > 0 {
		tag = "  [" + strings.Join(flags, ", ") + "]"
	}

	fmt.Printf("#%d  user %d  %s%s\n", p.ID, p.AuthorID, p.Timestamp.Local().Format("2006-01-02 15:04"), tag)
	fmt.Printf("    %s\n", p.Content)
	if p.Image != nil {
		fmt.Printf("    image: %s\n", *p.Image)
	}
	if p.Poll != nil {
		printPoll(*p.Poll)
	}
	fmt.Printf("    %d likes  %d comments  %d shares\n", p.Likes, p.Comments, p.Shares)
}

func printPoll(poll hub.Poll) {
	total := poll.TotalVotes()
	for i, opt := range poll.Options {
		mark := " "
		if poll.UserVote != nil && *poll.UserVote == i {
			mark = "*"
		}
		pct := 0
		if total > 0 {
			pct = poll.Votes[i] * 100 / total
		}
		fmt.Printf("    %s %d) %-24s %4d  %3d%%\n", mark, i+1, opt, poll.Votes[i], pct)
	}
}

// feed command
var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		following, _ := cmd.Flags().GetBool("following")
		saved, _ := cmd.Flags().GetBool("saved")

		return withApp("Feed", func(a *app.CareerHubApp) error {
			posts := a.Feed(following, saved)
			if len(posts) == 0 {
				fmt.Println("No posts.")
				return nil
			}
			s := a.Store()
			for _, p := range posts {
				printPost(p, s.IsLiked(p.ID), s.IsSaved(p.ID))
			}
			return nil
		})
	},
}

// post command
var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Create and manage posts",
}

var postAddCmd = &cobra.Command{
	Use:   "add CONTENT",
	Short: "Publish a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		image, _ := cmd.Flags().GetString("image")
		visibility, _ := cmd.Flags().GetString("visibility")
		poll, _ := cmd.Flags().GetStringArray("poll")

		return withApp("AddPost", func(a *app.CareerHubApp) error {
			p, err := a.AddPost(args[0], image, visibility, poll)
			if err != nil {
				return err
			}
			fmt.Printf("Posted #%d\n", p.ID)
			return nil
		})
	},
}

var postEditCmd = &cobra.Command{
	Use:   "edit ID CONTENT",
	Short: "Edit a post",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		image, _ := cmd.Flags().GetString("image")
		clearImage, _ := cmd.Flags().GetBool("clear-image")
		if image != "" && clearImage {
			return fmt.Errorf("--image and --clear-image are mutually exclusive")
		}

		return withApp("UpdatePost", func(a *app.CareerHubApp) error {
			if err := a.EditPost(id, args[1], image, clearImage); err != nil {
				return err
			}
			fmt.Printf("Updated #%d\n", id)
			return nil
		})
	},
}

// postIDCommand builds a subcommand taking a single post ID.
func postIDCommand(use, short, operation string, fn func(a *app.CareerHubApp, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(operation, func(a *app.CareerHubApp) error {
				if _, ok := a.Store().Post(id); !ok {
					return fmt.Errorf("post %d not found", id)
				}
				return fn(a, id)
			})
		},
	}
}

var postDeleteCmd = postIDCommand("delete", "Delete a post", "DeletePost", func(a *app.CareerHubApp, id int64) error {
	a.Store().DeletePost(id)
	fmt.Printf("Deleted #%d\n", id)
	return nil
})

var postPinCmd = postIDCommand("pin", "Pin or unpin a post", "PinPost", func(a *app.CareerHubApp, id int64) error {
	if a.Store().PinPost(id) {
		fmt.Printf("Pinned #%d\n", id)
	} else {
		fmt.Printf("Unpinned #%d\n", id)
	}
	return nil
})

var postCommentsCmd = postIDCommand("comments", "Enable or disable comments", "ToggleCommentsStatus", func(a *app.CareerHubApp, id int64) error {
	if a.Store().ToggleCommentsStatus(id) {
		fmt.Printf("Comments disabled on #%d\n", id)
	} else {
		fmt.Printf("Comments enabled on #%d\n", id)
	}
	return nil
})

var postLikeCmd = postIDCommand("like", "Like or unlike a post", "ToggleLike", func(a *app.CareerHubApp, id int64) error {
	liked := a.Store().ToggleLike(id)
	p, _ := a.Store().Post(id)
	if liked {
		fmt.Printf("Liked #%d (%d likes)\n", id, p.Likes)
	} else {
		fmt.Printf("Unliked #%d (%d likes)\n", id, p.Likes)
	}
	return nil
})

var postSaveCmd = postIDCommand("save", "Save or unsave a post", "ToggleSave", func(a *app.CareerHubApp, id int64) error {
	if a.Store().ToggleSave(id) {
		fmt.Printf("Saved #%d\n", id)
	} else {
		fmt.Printf("Removed #%d from saved\n", id)
	}
	return nil
})

var postVisibilityCmd = &cobra.Command{
	Use:   "visibility ID public|followers|private",
	Short: "Change who can see a post",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withApp("UpdatePostVisibility", func(a *app.CareerHubApp) error {
			if err := a.SetVisibility(id, args[1]); err != nil {
				return err
			}
			fmt.Printf("#%d is now %s\n", id, args[1])
			return nil
		})
	},
}

// poll command
var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Vote in polls",
}

var pollVoteCmd = &cobra.Command{
	Use:   "vote POST_ID OPTION",
	Short: "Vote for an option (1-based); voting again for the same option retracts",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		option, err := strconv.Atoi(args[1])
		if err != nil || option < 1 {
			return fmt.Errorf("invalid option %q", args[1])
		}

		return withApp("VotePoll", func(a *app.CareerHubApp) error {
			poll, err := a.Vote(id, option-1)
			if err != nil {
				return err
			}
			printPoll(poll)
			return nil
		})
	},
}

// user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Follow and mute users",
}

func userIDCommand(use, short, operation string, fn func(a *app.CareerHubApp, id int64)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " USER_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(operation, func(a *app.CareerHubApp) error {
				fn(a, id)
				return nil
			})
		},
	}
}

var userFollowCmd = userIDCommand("follow", "Follow or unfollow a user", "ToggleFollow", func(a *app.CareerHubApp, id int64) {
	if a.Store().ToggleFollow(id) {
		fmt.Printf("Following user %d\n", id)
	} else {
		fmt.Printf("Unfollowed user %d\n", id)
	}
})

var userMuteCmd = userIDCommand("mute", "Mute or unmute a user", "ToggleMuteUser", func(a *app.CareerHubApp, id int64) {
	if a.Store().ToggleMuteUser(id) {
		fmt.Printf("Muted user %d\n", id)
	} else {
		fmt.Printf("Unmuted user %d\n", id)
	}
})

func init() {
	feedCmd.Flags().Bool("following", false, "Only posts by followed users")
	feedCmd.Flags().Bool("saved", false, "Only saved posts")

	postAddCmd.Flags().String("image", "", "Image URL")
	postAddCmd.Flags().String("visibility", "public", "public, followers, or private")
	postAddCmd.Flags().StringArray("poll", nil, "Poll option (repeat for each option)")
	postEditCmd.Flags().String("image", "", "Replace the image URL")
	postEditCmd.Flags().Bool("clear-image", false, "Remove the image")

	postCmd.AddCommand(postAddCmd)
	postCmd.AddCommand(postEditCmd)
	postCmd.AddCommand(postDeleteCmd)
	postCmd.AddCommand(postPinCmd)
	postCmd.AddCommand(postVisibilityCmd)
	postCmd.AddCommand(postCommentsCmd)
	postCmd.AddCommand(postLikeCmd)
	postCmd.AddCommand(postSaveCmd)
	pollCmd.AddCommand(pollVoteCmd)
	userCmd.AddCommand(userFollowCmd)
	userCmd.AddCommand(userMuteCmd)

	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(pollCmd)
	rootCmd.AddCommand(userCmd)
}
