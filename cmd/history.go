package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/clipwave/clipwave/color"
	"github.com/clipwave/clipwave/history"
	"github.com/clipwave/clipwave/icon"
	"github.com/clipwave/clipwave/open"
	"github.com/clipwave/clipwave/style"
	"github.com/clipwave/clipwave/util"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolP("json", "j", false, "Output as json")
	historyCmd.Flags().IntP("limit", "n", 0, "Show at most this many entries")
	historyCmd.SetOut(os.Stdout)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List watched videos, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := history.List()
		handleErr(err)

		if limit := lo.Must(cmd.Flags().GetInt("limit")); limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(entries))
			return
		}

		if len(entries) == 0 {
			cmd.Println(style.Faint("nothing watched yet"))
			return
		}

		for i, w := range entries {
			liked := ""
			if w.Liked {
				liked = " " + style.Fg(color.Red)(icon.Get(icon.Liked))
			}

			cmd.Printf(
				"%s %s%s %s\n",
				style.Faint(fmt.Sprintf("%2d", i+1)),
				style.Bold(w.String()),
				liked,
				style.Faint(fmt.Sprintf("%s, %s", util.Quantify(w.Times, "view", "views"), humanize.Time(w.WatchedAt))),
			)
		}
	},
}

// entryOf resolves a history entry by its list position or video id.
func entryOf(arg string) *history.Watched {
	entries, err := history.List()
	handleErr(err)

	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(entries) {
		return entries[n-1]
	}

	w, ok := lo.Find(entries, func(w *history.Watched) bool { return w.ID == arg })
	if !ok {
		handleErr(fmt.Errorf("no history entry %q", arg))
	}
	return w
}

func init() {
	historyCmd.AddCommand(historyRemoveCmd)
}

var historyRemoveCmd = &cobra.Command{
	Use:     "remove ENTRY",
	Short:   "Remove an entry by position or video id",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		w := entryOf(args[0])
		handleErr(history.Remove(w.ID))
		fmt.Printf("%s removed %s\n", icon.Get(icon.Success), w)
	},
}

func init() {
	historyCmd.AddCommand(historyOpenCmd)
}

var historyOpenCmd = &cobra.Command{
	Use:   "open ENTRY",
	Short: "Open a watched video in the browser",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		w := entryOf(args[0])
		if w.URL == "" {
			handleErr(errors.New("entry has no url"))
		}
		handleErr(open.Start(w.URL))
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every watched video",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(history.Clear())
		fmt.Printf("%s history cleared\n", icon.Get(icon.Success))
	},
}
