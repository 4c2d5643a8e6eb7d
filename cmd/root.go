// Package cmd is the clipwave command line.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/clipwave/clipwave/auth"
	"github.com/clipwave/clipwave/backend"
	"github.com/clipwave/clipwave/color"
	"github.com/clipwave/clipwave/constant"
	"github.com/clipwave/clipwave/feed"
	"github.com/clipwave/clipwave/icon"
	"github.com/clipwave/clipwave/key"
	"github.com/clipwave/clipwave/log"
	"github.com/clipwave/clipwave/player"
	"github.com/clipwave/clipwave/style"
	"github.com/clipwave/clipwave/tui"
	"github.com/clipwave/clipwave/util"
	"github.com/clipwave/clipwave/version"
	"github.com/clipwave/clipwave/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Icons variant")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Save watched videos to history")
	lo.Must0(viper.BindPFlag(key.HistorySaveOnWatch, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().String("backend", "", "Backend base URL")
	lo.Must0(viper.BindPFlag(key.BackendURL, rootCmd.PersistentFlags().Lookup("backend")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// leftover ipc sockets from crashed sessions
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

var rootCmd = &cobra.Command{
	Use:   constant.Clipwave,
	Short: "Scroll the ClipWave short video feed from your terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Scroll the ClipWave short video feed from your terminal"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		handleErr(tui.Run(&tui.Options{
			API:     backend.NewFromConfig(),
			Session: requireSession(),
			Player:  player.NewMPV(),
		}))
	},
}

// Execute runs the command line.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// requireSession loads the stored session and exits when it is missing or expired.
func requireSession() auth.Session {
	session, err := auth.Load()
	if err != nil && !errors.Is(err, auth.ErrNoSession) {
		handleErr(err)
	}

	if !session.Valid() {
		if session.Authenticated() {
			log.Info("stored session expired")
			_ = auth.Delete()
		}
		handleErr(feed.ErrAuth)
	}

	return session
}

func backendURL() string {
	return viper.GetString(key.BackendURL)
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(backend.Message(err), " \n"))
		os.Exit(1)
	}
}
