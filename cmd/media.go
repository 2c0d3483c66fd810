package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/m3client/vampiresquid"
)

var (
	mediaVideoReference string
	mediaSequence       string
	mediaFilename       string
)

// mediaCmd represents the media command
var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Look up media in the video catalog",
	Long: `Look up media records in the vampiresquid catalog by video reference
uuid, video sequence name, or filename. Exactly one selector is required.`,
	RunE: runMedia,
}

func init() {
	rootCmd.AddCommand(mediaCmd)

	mediaCmd.Flags().StringVar(&mediaVideoReference, "video-reference", "", "video reference uuid")
	mediaCmd.Flags().StringVar(&mediaSequence, "sequence", "", "video sequence name")
	mediaCmd.Flags().StringVar(&mediaFilename, "filename", "", "video reference filename")
}

func runMedia(cmd *cobra.Command, args []string) error {
	if catalogClient == nil {
		return fmt.Errorf("vampiresquid is not configured")
	}

	selectors := 0
	for _, s := range []string{mediaVideoReference, mediaSequence, mediaFilename} {
		if s != "" {
			selectors++
		}
	}
	if selectors != 1 {
		return fmt.Errorf("exactly one of --video-reference, --sequence or --filename is required")
	}

	ctx := context.Background()

	var media []*vampiresquid.Media
	switch {
	case mediaVideoReference != "":
		m, err := catalogClient.MediaByVideoReference(ctx, mediaVideoReference)
		if err != nil {
			return err
		}
		media = []*vampiresquid.Media{m}
	case mediaFilename != "":
		m, err := catalogClient.MediaByFilename(ctx, mediaFilename)
		if err != nil {
			return err
		}
		media = []*vampiresquid.Media{m}
	default:
		var err error
		media, err = catalogClient.MediaByVideoSequence(ctx, mediaSequence)
		if err != nil {
			return err
		}
	}

	if len(media) == 0 {
		fmt.Println("No media found.")
		return nil
	}

	fmt.Println(strings.Repeat("━", 100))
	fmt.Printf("%-38s %-30s %-12s %s\n", "VIDEO REFERENCE", "VIDEO", "DURATION", "URI")
	fmt.Println(strings.Repeat("━", 100))
	for _, m := range media {
		fmt.Printf("%-38s %-30s %-12s %s\n",
			m.VideoReferenceUUID, m.VideoName, formatMillis(m.DurationMillis), m.URI)
	}
	fmt.Println(strings.Repeat("━", 100))
	return nil
}

func formatMillis(millis int64) string {
	if millis <= 0 {
		return "-"
	}
	seconds := millis / 1000
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds/60)%60, seconds%60)
}
