package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/clipwave/clipwave/backend"
	"github.com/clipwave/clipwave/style"
	"github.com/clipwave/clipwave/tui"
	"github.com/clipwave/clipwave/upload"
	"github.com/clipwave/clipwave/util"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringP("title", "t", "", "Video title, defaults to the file name")
	uploadCmd.Flags().StringP("description", "d", "", "Video description")
	uploadCmd.Flags().BoolP("yes", "y", false, "Do not ask for missing details")
}

var uploadCmd = &cobra.Command{
	Use:     "upload FILE",
	Short:   "Upload a video to your creator account",
	Example: "clipwave upload ./sunset.mp4 --title Sunset",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		uploader := upload.New(backend.NewFromConfig(), requireSession())

		info, err := uploader.Validate(path)
		handleErr(err)

		meta := backend.Metadata{
			Title:       lo.Must(cmd.Flags().GetString("title")),
			Description: lo.Must(cmd.Flags().GetString("description")),
		}

		if !lo.Must(cmd.Flags().GetBool("yes")) {
			ask(&survey.Input{Message: "Title", Default: util.FileStem(path)}, &meta.Title)
			ask(&survey.Multiline{Message: "Description"}, &meta.Description)
		}
		meta.Title = lo.Ternary(meta.Title == "", util.FileStem(path), meta.Title)

		fmt.Println(style.Faint(fmt.Sprintf("%s, %s", info.Name(), humanize.IBytes(uint64(info.Size())))))

		ctx, cancel := interruptible()
		defer cancel()

		_, err = tui.Upload(ctx, uploader, path, meta)
		handleErr(err)
	},
}
