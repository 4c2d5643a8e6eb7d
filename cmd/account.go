package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/AlecAivazis/survey/v2"
	"github.com/clipwave/clipwave/auth"
	"github.com/clipwave/clipwave/backend"
	"github.com/clipwave/clipwave/color"
	"github.com/clipwave/clipwave/constant"
	"github.com/clipwave/clipwave/icon"
	"github.com/clipwave/clipwave/log"
	"github.com/clipwave/clipwave/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// ask fills v from a prompt unless it is already set by a flag.
func ask(prompt survey.Prompt, v *string, opts ...survey.AskOpt) {
	if *v != "" {
		return
	}
	handleErr(survey.AskOne(prompt, v, opts...))
}

func greet(s auth.Session) {
	fmt.Printf(
		"%s signed in as %s %s\n",
		style.Fg(color.Green)(icon.Get(icon.Success)),
		style.Bold("@"+s.Username),
		style.Faint("("+s.Role+")"),
	)
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringP("username", "u", "", "Account username")
	loginCmd.Flags().StringP("password", "p", "", "Account password")
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to ClipWave",
	Run: func(cmd *cobra.Command, args []string) {
		username := lo.Must(cmd.Flags().GetString("username"))
		password := lo.Must(cmd.Flags().GetString("password"))

		ask(&survey.Input{Message: "Username"}, &username, survey.WithValidator(survey.Required))
		ask(&survey.Password{Message: "Password"}, &password, survey.WithValidator(survey.Required))

		ctx, cancel := interruptible()
		defer cancel()

		session, err := backend.NewFromConfig().Login(ctx, username, password)
		if errors.Is(err, backend.ErrUnauthorized) {
			handleErr(errors.New("wrong username or password"))
		}
		handleErr(err)
		handleErr(auth.Save(session))

		log.WithFields(log.Fields{"user": session.Username, "role": session.Role}).Info("signed in")
		greet(session)
	},
}

func init() {
	rootCmd.AddCommand(signupCmd)
	signupCmd.Flags().StringP("username", "u", "", "Account username")
	signupCmd.Flags().StringP("email", "e", "", "Account email")
	signupCmd.Flags().StringP("role", "r", "", "Account role, user or creator")
	lo.Must0(signupCmd.RegisterFlagCompletionFunc("role", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{constant.RoleUser, constant.RoleCreator}, cobra.ShellCompDirectiveNoFileComp
	}))
}

var signupCmd = &cobra.Command{
	Use:     "signup",
	Short:   "Create a ClipWave account",
	Aliases: []string{"register"},
	Run: func(cmd *cobra.Command, args []string) {
		r := backend.Registration{
			Username: lo.Must(cmd.Flags().GetString("username")),
			Email:    lo.Must(cmd.Flags().GetString("email")),
			Role:     lo.Must(cmd.Flags().GetString("role")),
		}

		ask(&survey.Input{Message: "Username"}, &r.Username, survey.WithValidator(survey.Required))
		ask(&survey.Input{Message: "Email"}, &r.Email, survey.WithValidator(survey.Required))
		ask(&survey.Select{
			Message: "Role",
			Options: []string{constant.RoleUser, constant.RoleCreator},
			Default: constant.RoleUser,
			Help:    "Creators can upload videos",
		}, &r.Role)
		ask(&survey.Password{Message: "Password"}, &r.Password, survey.WithValidator(survey.Required))

		var confirm string
		ask(&survey.Password{Message: "Confirm password"}, &confirm)
		if confirm != r.Password {
			handleErr(errors.New("passwords do not match"))
		}

		handleErr(r.Validate())

		ctx, cancel := interruptible()
		defer cancel()

		client := backend.NewFromConfig()
		session, err := client.Register(ctx, r)
		handleErr(err)

		if !session.Authenticated() {
			session, err = client.Login(ctx, r.Username, r.Password)
			handleErr(err)
		}

		handleErr(auth.Save(session))
		log.WithFields(log.Fields{"user": session.Username, "role": session.Role}).Info("signed up")
		greet(session)
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.Delete())
		fmt.Printf("%s signed out\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	whoamiCmd.SetOut(os.Stdout)
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed in account",
	Run: func(cmd *cobra.Command, args []string) {
		session, err := auth.Load()
		if errors.Is(err, auth.ErrNoSession) {
			cmd.Println(style.Faint("not signed in"))
			return
		}
		handleErr(err)

		cmd.Printf("%s %s\n", style.Bold("@"+session.Username), style.Faint(session.Role))
		cmd.Printf("%s %s\n", style.Faint("id"), session.ID)

		if exp, ok := session.ExpiresAt(); ok {
			state := style.Fg(color.Green)("valid until " + exp.Local().Format("2006-01-02 15:04"))
			if !session.Valid() {
				state = style.Fg(color.Red)("expired, run clipwave login")
			}
			cmd.Printf("%s %s\n", style.Faint("session"), state)
		}
	},
}
