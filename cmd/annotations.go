package cmd

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/m3client/filter"
)

var (
	annotationFilter string
	annotationLimit  int
)

// annotationsCmd represents the annotations command
var annotationsCmd = &cobra.Command{
	Use:   "annotations <video-reference-uuid>",
	Short: "List the annotations on a video reference",
	Long: `List the annotations recorded on a video reference, optionally narrowed
by a filter expression, e.g.:

  m3 annotations 9f5c... --filter 'contains(Annotation.Concept, "sebastes")'
  m3 annotations 9f5c... --filter 'hasAssociation("identity-reference")'`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotations,
}

func init() {
	rootCmd.AddCommand(annotationsCmd)

	annotationsCmd.Flags().StringVarP(&annotationFilter, "filter", "f", "", "filter expression")
	annotationsCmd.Flags().IntVar(&annotationLimit, "limit", 0, "maximum annotations to request (0 for server default)")
}

func runAnnotations(cmd *cobra.Command, args []string) error {
	if annoClient == nil {
		return fmt.Errorf("annosaurus is not configured")
	}

	ctx := context.Background()
	videoReference := args[0]

	params := url.Values{}
	if annotationLimit > 0 {
		params.Set("limit", fmt.Sprint(annotationLimit))
	}

	annotations, err := annoClient.AnnotationsByVideoReference(ctx, videoReference, params)
	if err != nil {
		return fmt.Errorf("failed to list annotations: %w", err)
	}

	if annotationFilter != "" {
		f, err := filter.Compile(annotationFilter)
		if err != nil {
			return err
		}
		annotations, err = f.Apply(annotations)
		if err != nil {
			return err
		}
	}

	if len(annotations) == 0 {
		fmt.Println("No annotations found.")
		return nil
	}

	fmt.Println(strings.Repeat("━", 90))
	fmt.Printf("%-30s %-14s %-24s %s\n", "CONCEPT", "OBSERVER", "RECORDED", "ASSOCIATIONS")
	fmt.Println(strings.Repeat("━", 90))
	for _, obs := range annotations {
		links := make([]string, 0, len(obs.Associations))
		for _, assoc := range obs.Associations {
			links = append(links, assoc.LinkName)
		}
		fmt.Printf("%-30s %-14s %-24s %s\n",
			obs.Concept, obs.Observer, obs.RecordedTimestamp, strings.Join(links, ", "))
	}
	fmt.Println(strings.Repeat("━", 90))

	annotationText := "annotation"
	if len(annotations) != 1 {
		annotationText = "annotations"
	}
	fmt.Printf("%d %s\n", len(annotations), annotationText)
	return nil
}
