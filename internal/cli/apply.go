package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jd09-test/product-model/internal/compiler"
	"github.com/jd09-test/product-model/internal/database/oracle"
	"github.com/jd09-test/product-model/pkg/confirm"
)

var (
	applyConfirm string
	dropConfirm  string
	dropFirst    bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Execute the compiled DDL against the target database",
	Long: "Compiles the graph model and executes the staging table and property graph DDL in the target " +
		"database. Requires --confirm yes; with --drop, existing staging tables are dropped first, which " +
		"additionally requires --confirm-drop drop.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		model, err := loadModel()
		if err != nil {
			return err
		}

		client, err := connectOracle(cfg, "target")
		if err != nil {
			return err
		}
		defer client.Close()

		ctx := context.Background()
		target := oracle.NewTarget(client, log.WithComponent("oracle-target"))
		artifacts := compiler.New(effectiveGraphName(cfg)).Compile(model)

		if dropFirst {
			report, err := target.DropTables(ctx, model.TableNames(), confirm.WithToken(dropConfirm))
			if err != nil {
				return err
			}
			if report.Skipped {
				return fmt.Errorf("--drop requires --confirm-drop %s", confirm.TokenDrop)
			}
			log.Infof("dropped %d table(s), %d skipped", report.Executed, len(report.Failures))
		}

		script := artifacts.RelationalDDL + "\n\n" + artifacts.GraphDDL + ";\n"
		report, err := target.ApplyDDL(ctx, script, confirm.WithToken(applyConfirm))
		if err != nil {
			return err
		}
		if report.Skipped {
			return fmt.Errorf("apply requires --confirm %s", confirm.TokenApply)
		}

		log.Infof("executed %d DDL statement(s)", report.Executed)
		for _, f := range report.Failures {
			log.Warnf("failed statement: %s", f.Err)
		}
		if len(report.Failures) > 0 {
			return fmt.Errorf("%d DDL statement(s) failed", len(report.Failures))
		}
		return nil
	},
}

func init() {
	applyCmd.Flags().StringVar(&applyConfirm, "confirm", "", "Confirmation token, must be 'yes'")
	applyCmd.Flags().BoolVar(&dropFirst, "drop", false, "Drop existing staging tables before creating")
	applyCmd.Flags().StringVar(&dropConfirm, "confirm-drop", "", "Drop confirmation token, must be 'drop'")
}
