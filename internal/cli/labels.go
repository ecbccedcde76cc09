package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jd09-test/product-model/internal/metadata"
)

var (
	labelsEdges  bool
	labelsFilter []string
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Print the compiled graph schema as JSON",
	Long: "Prints vertex labels with their property names, or edge labels with their join columns, derived " +
		"from the graph model. Query tooling built on this output can never reference a property that was " +
		"not compiled.",
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := loadModel()
		if err != nil {
			return err
		}
		catalog := metadata.FromModel(model)

		var out interface{}
		if labelsEdges {
			if len(labelsFilter) > 0 {
				out = catalog.EdgeLabelsFiltered(labelsFilter)
			} else {
				out = catalog.EdgeLabels()
			}
		} else {
			if len(labelsFilter) > 0 {
				out = catalog.VertexLabelsFiltered(labelsFilter)
			} else {
				out = catalog.VertexLabels()
			}
		}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	labelsCmd.Flags().BoolVar(&labelsEdges, "edges", false, "Print edge labels instead of vertex labels")
	labelsCmd.Flags().StringSliceVar(&labelsFilter, "filter", nil, "Only print the named labels")

	rootCmd.AddCommand(labelsCmd)
}
