package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/clipwave/clipwave/backend"
	"github.com/clipwave/clipwave/feed"
	"github.com/clipwave/clipwave/filesystem"
	"github.com/clipwave/clipwave/inline"
	"github.com/clipwave/clipwave/util"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("pages", "p", "1", `Number of feed pages to load, or "all"`)
	inlineCmd.Flags().BoolP("json", "j", false, "Output as json")
	inlineCmd.Flags().Bool("playback", false, "Print the playback url (the HLS manifest when there is one)")
	inlineCmd.Flags().StringP("output", "o", "", "Write the output to a file")
}

var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Print the feed without the interactive interface",
	Long: `Load feed pages with the stored session and print them.

Text output is one line per video: id, title, author and url separated by tabs.`,
	Example: "clipwave inline --pages 3 --json",
	Run: func(cmd *cobra.Command, args []string) {
		pages, err := inline.ParsePages(lo.Must(cmd.Flags().GetString("pages")))
		handleErr(err)

		var out io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer util.Ignore(file.Close)
			out = file
		}

		session := requireSession()
		store := feed.NewStore(backend.NewFromConfig(), session, feed.OptionsFromConfig())

		ctx, cancel := interruptible()
		defer cancel()

		handleErr(inline.Run(ctx, store, session.Username, &inline.Options{
			Out:      out,
			Pages:    pages,
			Json:     lo.Must(cmd.Flags().GetBool("json")),
			Playback: lo.Must(cmd.Flags().GetBool("playback")),
		}))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the json schema of inline output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(&inline.Output{})))
	},
}
