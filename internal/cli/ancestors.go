package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jd09-test/product-model/internal/database/oracle"
	"github.com/jd09-test/product-model/internal/traversal"
)

var (
	ancestorsInclusive bool
	ancestorsMaxHops   int
)

var ancestorsCmd = &cobra.Command{
	Use:   "ancestors <product-object-number>",
	Short: "Compute the ancestor closure of a product",
	Long: "Walks the relationship graph upward from a product and prints every transitive parent, " +
		"discovered through both the direct product path and the relationship domain path.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID := args[0]

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := connectOracle(cfg, "target")
		if err != nil {
			return err
		}
		defer client.Close()

		querier := oracle.NewAncestryQuerier(client, effectiveGraphName(cfg))
		t := traversal.New(querier,
			traversal.WithMaxHops(ancestorsMaxHops),
			traversal.WithLogger(log.WithComponent("traversal")))

		ctx := context.Background()
		var ancestors []string
		if ancestorsInclusive {
			ancestors, err = t.AncestorsInclusive(ctx, productID)
		} else {
			ancestors, err = t.Ancestors(ctx, productID)
		}
		if err != nil {
			return err
		}

		if len(ancestors) == 0 {
			fmt.Printf("%s has no ancestors\n", productID)
			return nil
		}
		for _, id := range ancestors {
			fmt.Println(id)
		}
		return nil
	},
}

func init() {
	ancestorsCmd.Flags().BoolVar(&ancestorsInclusive, "inclusive", false, "Include the start product in the output")
	ancestorsCmd.Flags().IntVar(&ancestorsMaxHops, "max-hops", 0, "Bound the walk to this many levels (0 = unbounded)")
}
