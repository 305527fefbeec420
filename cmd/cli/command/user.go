package command

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
)

// meCmd shows or edits the signed-in account
var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := newClient().Me(cmd.Context())
		if err != nil {
			return err
		}
		printUser(user)
		return nil
	},
}

var meUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Edit your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := newClient().UpdateMe(cmd.Context(), userRequestFromFlags(cmd))
		if err != nil {
			return err
		}
		color.Green("✓ Profile updated")
		printUser(user)
		return nil
	},
}

// userCmd groups the admin-only user management commands
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "User management commands (admin)",
}

var listUsersCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		page := pageFlags(cmd)
		users, err := newClient().ListUsers(cmd.Context(), search, page)
		if err != nil {
			return err
		}
		for _, u := range users.Results {
			fmt.Printf("%s %s %s\n", label(u.Username), u.Email, faint(u.Role))
		}
		printPageFooter(users, page.Offset)
		return nil
	},
}

var getUserCmd = &cobra.Command{
	Use:   "get [username]",
	Short: "Show a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := newClient().GetUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printUser(user)
		return nil
	},
}

var createUserCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := newClient().CreateUser(cmd.Context(), userRequestFromFlags(cmd))
		if err != nil {
			return err
		}
		color.Green("✓ User created")
		printUser(user)
		return nil
	},
}

var updateUserCmd = &cobra.Command{
	Use:   "update [username]",
	Short: "Edit a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := newClient().UpdateUser(cmd.Context(), args[0], userRequestFromFlags(cmd))
		if err != nil {
			return err
		}
		color.Green("✓ User updated")
		printUser(user)
		return nil
	},
}

var deleteUserCmd = &cobra.Command{
	Use:   "delete [username]",
	Short: "Delete a user with their reviews and comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().DeleteUser(cmd.Context(), args[0]); err != nil {
			return err
		}
		color.Green("✓ User %s deleted", args[0])
		return nil
	},
}

func addUserFlags(cmd *cobra.Command, withRole bool) {
	cmd.Flags().String("username", "", "Username")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("first-name", "", "First name")
	cmd.Flags().String("last-name", "", "Last name")
	cmd.Flags().String("bio", "", "Biography")
	if withRole {
		cmd.Flags().String("role", "", "Role: user, moderator or admin")
	}
}

// userRequestFromFlags only fills the fields whose flags were given.
func userRequestFromFlags(cmd *cobra.Command) dto.UserRequest {
	req := dto.UserRequest{
		Username:  changedString(cmd, "username"),
		Email:     changedString(cmd, "email"),
		FirstName: changedString(cmd, "first-name"),
		LastName:  changedString(cmd, "last-name"),
		Bio:       changedString(cmd, "bio"),
	}
	if cmd.Flags().Lookup("role") != nil {
		if role := changedString(cmd, "role"); role != nil {
			r := models.Role(*role)
			req.Role = &r
		}
	}
	return req
}

func init() {
	meCmd.AddCommand(meUpdateCmd)
	addUserFlags(meUpdateCmd, false)

	userCmd.AddCommand(listUsersCmd, getUserCmd, createUserCmd, updateUserCmd, deleteUserCmd)
	listUsersCmd.Flags().String("search", "", "Match part of the username")
	addPageFlags(listUsersCmd)
	addUserFlags(createUserCmd, true)
	createUserCmd.MarkFlagRequired("username")
	createUserCmd.MarkFlagRequired("email")
	addUserFlags(updateUserCmd, true)
}
