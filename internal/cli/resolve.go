package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jd09-test/product-model/internal/database/oracle"
	"github.com/jd09-test/product-model/internal/versioning"
)

var (
	resolveProduct string
	resolveNumber  int
	resolveAsOf    string
	resolveCurrent bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the effective version of a product",
	Long: "Resolves which version of a product is in effect: an explicit version number, the version valid " +
		"at a given date, or the version flagged current. Overlapping validity intervals and duplicate " +
		"current flags are reported as errors, never tie-broken.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if resolveProduct == "" {
			return fmt.Errorf("--product is required")
		}

		sel, err := buildSelector(cmd)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := connectOracle(cfg, "target")
		if err != nil {
			return err
		}
		defer client.Close()

		store := oracle.NewVersionStore(client, effectiveGraphName(cfg))
		number, err := versioning.NewResolver(store).Resolve(context.Background(), resolveProduct, sel)
		if err != nil {
			return err
		}

		fmt.Printf("%s: version %d\n", resolveProduct, number)
		return nil
	},
}

// buildSelector maps the mutually exclusive selection flags onto one
// resolution strategy.
func buildSelector(cmd *cobra.Command) (versioning.Selector, error) {
	set := 0
	if cmd.Flags().Changed("version") {
		set++
	}
	if resolveAsOf != "" {
		set++
	}
	if resolveCurrent {
		set++
	}
	if set != 1 {
		return versioning.Selector{}, fmt.Errorf("exactly one of --version, --as-of or --current is required")
	}

	switch {
	case cmd.Flags().Changed("version"):
		return versioning.Explicit(resolveNumber), nil
	case resolveAsOf != "":
		d, err := time.Parse("2006-01-02", resolveAsOf)
		if err != nil {
			return versioning.Selector{}, fmt.Errorf("invalid --as-of date %q, expected YYYY-MM-DD", resolveAsOf)
		}
		return versioning.AsOf(d), nil
	default:
		return versioning.Current(), nil
	}
}

func init() {
	resolveCmd.Flags().StringVar(&resolveProduct, "product", "", "Product object number")
	resolveCmd.Flags().IntVar(&resolveNumber, "version", 0, "Explicit version number")
	resolveCmd.Flags().StringVar(&resolveAsOf, "as-of", "", "Resolve the version valid at this date (YYYY-MM-DD)")
	resolveCmd.Flags().BoolVar(&resolveCurrent, "current", false, "Resolve the version flagged current")
}
