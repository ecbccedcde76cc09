package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jd09-test/product-model/internal/compiler"
)

var ddlOutput string

var ddlCmd = &cobra.Command{
	Use:   "ddl",
	Short: "Compile the graph model into relational and property graph DDL",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		model, err := loadModel()
		if err != nil {
			return err
		}

		artifacts := compiler.New(effectiveGraphName(cfg)).Compile(model)

		script := artifacts.RelationalDDL + "\n\n" + artifacts.GraphDDL + ";\n"
		if ddlOutput == "" {
			fmt.Print(script)
			return nil
		}
		if err := os.WriteFile(ddlOutput, []byte(script), 0o644); err != nil {
			return fmt.Errorf("could not write DDL output: %w", err)
		}
		log.Infof("wrote DDL for %d node(s) to %s", len(model.Nodes()), ddlOutput)
		return nil
	},
}

func init() {
	ddlCmd.Flags().StringVar(&ddlOutput, "ddl-output", "", "Write DDL to this file instead of stdout")
}
