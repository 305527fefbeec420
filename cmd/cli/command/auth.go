package command

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// authCmd represents the auth command for authentication related subcommands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long: `Sign in to YaMDb. There are no passwords: request a code with "auth email",
then exchange it with "auth token". The token is saved to the config file.`,
}

// emailCmd asks the server to send a confirmation code
var emailCmd = &cobra.Command{
	Use:   "email [email]",
	Short: "Send a confirmation code to an email address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newClient().RequestCode(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		color.Green("✓ Confirmation code sent to %s", resp.Email)
		color.HiBlack("Run: yamdbCLI auth token %s <code>", resp.Email)
		return nil
	},
}

// tokenCmd exchanges the code for a token and stores it
var tokenCmd = &cobra.Command{
	Use:   "token [email] [code]",
	Short: "Exchange a confirmation code for an access token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := newClient().ObtainToken(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if err := saveSession(token, args[0]); err != nil {
			return err
		}
		color.Green("✓ Signed in as %s", args[0])
		if show, _ := cmd.Flags().GetBool("show"); show {
			printField("Token", token)
		}
		return nil
	},
}

// logoutCmd forgets the stored token
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString(keyToken) == "" {
			color.Yellow("Not signed in.")
			return nil
		}
		if err := saveSession("", ""); err != nil {
			return err
		}
		color.Green("✓ Signed out.")
		return nil
	},
}

func init() {
	authCmd.AddCommand(emailCmd, tokenCmd, logoutCmd)
	tokenCmd.Flags().Bool("show", false, "Print the token after saving it")
}
