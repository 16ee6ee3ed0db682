package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/2beens/aitrainer/pkg/client"
)

func (a *app) signupCmd() *cobra.Command {
	var req client.SignupRequest
	var username, firstName, lastName, country string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlags(cmd, "email", "password"); err != nil {
				return err
			}
			req.Username = optional(username)
			req.FirstName = optional(firstName)
			req.LastName = optional(lastName)
			req.Country = optional(country)

			ctx, cancel := a.ctx(cmd)
			defer cancel()
			msg, err := a.api.Signup(ctx, req)
			if err != nil {
				return err
			}
			printOK("%s", msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "email, used to log in")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&country, "country", "", "country, resolved from the IP when empty")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlags(cmd, "email", "password"); err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			if err := a.api.Login(ctx, email, password); err != nil {
				return err
			}
			printOK("logged in as %s", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session and forget the token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			if err := a.api.Logout(ctx); err != nil {
				return err
			}
			printOK("logged out")
			return nil
		},
	}
}

func (a *app) meCmd() *cobra.Command {
	var update client.ProfileUpdate
	var username, firstName, lastName, phone, address, zip, country string
	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show the profile, or update it when any field flag is given",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()

			var (
				user *client.User
				err  error
			)
			if anyChanged(cmd, "username", "first-name", "last-name", "phone", "address", "zip", "country") {
				update.Username = optional(username)
				update.FirstName = optional(firstName)
				update.LastName = optional(lastName)
				update.Phone = optional(phone)
				update.Address = optional(address)
				update.ZipCode = optional(zip)
				update.Country = optional(country)
				user, err = a.api.UpdateMe(ctx, update)
			} else {
				user, err = a.api.Me(ctx)
			}
			if err != nil {
				return err
			}

			printHeader("%s (#%d)", user.Email, user.ID)
			fmt.Printf("username:   %s\n", orDash(user.Username))
			fmt.Printf("name:       %s %s\n", orDash(user.FirstName), orDash(user.LastName))
			fmt.Printf("phone:      %s\n", orDash(user.Phone))
			fmt.Printf("address:    %s %s\n", orDash(user.Address), orDash(user.ZipCode))
			fmt.Printf("country:    %s\n", orDash(user.Country))
			fmt.Printf("avatar:     %s\n", orDash(user.ProfileImage))
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "new username")
	cmd.Flags().StringVar(&firstName, "first-name", "", "new first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "new last name")
	cmd.Flags().StringVar(&phone, "phone", "", "new phone")
	cmd.Flags().StringVar(&address, "address", "", "new address")
	cmd.Flags().StringVar(&zip, "zip", "", "new zip code")
	cmd.Flags().StringVar(&country, "country", "", "new country")
	return cmd
}

func (a *app) passwordCmd() *cobra.Command {
	var req client.ChangePasswordRequest
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change the password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlags(cmd, "old", "new"); err != nil {
				return err
			}
			if req.ConfirmPassword == "" {
				req.ConfirmPassword = req.NewPassword
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			if err := a.api.ChangePassword(ctx, req); err != nil {
				return err
			}
			printOK("password updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&req.OldPassword, "old", "", "current password")
	cmd.Flags().StringVar(&req.NewPassword, "new", "", "new password")
	cmd.Flags().StringVar(&req.ConfirmPassword, "confirm", "", "new password again (defaults to --new)")
	return cmd
}

func (a *app) avatarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "avatar <image file>",
		Short: "Upload a profile image (jpeg, png or webp, up to 5 MB)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			ctx, cancel := a.ctx(cmd)
			defer cancel()
			user, err := a.api.UploadProfileImage(ctx, filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			printOK("profile image: %s", orDash(user.ProfileImage))
			return nil
		},
	}
}

func (a *app) contactCmd() *cobra.Command {
	var msg client.ContactMessage
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message to the AI Trainer team",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlags(cmd, "name", "email", "message"); err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			resp, err := a.api.Contact(ctx, msg)
			if err != nil {
				return err
			}
			printOK("%s", resp)
			return nil
		},
	}
	cmd.Flags().StringVar(&msg.Name, "name", "", "your name")
	cmd.Flags().StringVar(&msg.Email, "email", "", "your email")
	cmd.Flags().StringVar(&msg.Message, "message", "", "the message")
	return cmd
}
