// Command highslp loads a YAML model, applies the configured user scale
// and solves it.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bartolsthoorn/highslp/highs"
	"github.com/bartolsthoorn/highslp/internal/config"
	"github.com/bartolsthoorn/highslp/internal/logging"
	"github.com/bartolsthoorn/highslp/internal/modelfile"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath   string
		validateOnly bool
	)
	cmd := &cobra.Command{
		Use:   "highslp MODEL.yaml",
		Short: "Solve a YAML linear program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := cfg.Logger()
			if err != nil {
				return err
			}
			logging.SetLogger(logger)

			model, err := modelfile.Load(args[0])
			if err != nil {
				return err
			}
			opts := append(cfg.SolveOptions(), highs.WithEngine(defaultEngine()))
			solver, err := highs.NewSolver(opts...)
			if err != nil {
				return err
			}
			if err := solver.PassModel(model); err != nil {
				return err
			}
			if validateOnly {
				if err := solver.Lp().Validate(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Model %q OK: %d columns, %d rows, %d nonzeros\n",
					model.Name, solver.NumCol(), solver.NumRow(), solver.NumNonzero())
				return nil
			}

			solution, err := solver.RunContext(cmd.Context())
			if err != nil {
				return err
			}
			report(cmd.OutOrStdout(), solver, solution)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	cmd.Flags().BoolVar(&validateOnly, "validate-only", false, "check the model without solving it")
	config.BindFlags(cmd.Flags())
	cmd.SilenceUsage = true
	return cmd
}

func report(w io.Writer, solver *highs.Solver, solution *highs.Solution) {
	lp := solver.Lp()
	fmt.Fprintf(w, "Status = %s\n", solution.Status)
	if !solution.HasSolution() {
		return
	}
	fmt.Fprintf(w, "Objective = %g\n", solution.Objective)
	for col, x := range solution.ColValues {
		name := fmt.Sprintf("c%d", col)
		if col < len(lp.ColNames) {
			name = lp.ColNames[col]
		}
		if solution.DualValid {
			fmt.Fprintf(w, "%s = %g (reduced cost %g)\n", name, x, solution.ColDuals[col])
		} else {
			fmt.Fprintf(w, "%s = %g\n", name, x)
		}
	}
	info := solver.Info()
	fmt.Fprintf(w, "Primal infeasibilities = %d (max %g)\n", info.NumPrimalInfeasibilities, info.MaxPrimalInfeasibility)
}
