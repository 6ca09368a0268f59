package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/stockpad/stockpad/pkg/stockpad/project"
	"github.com/stockpad/stockpad/pkg/stockpad/render"
)

func newExportCmd(a *app) *cobra.Command {
	var v viewFlags
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the watchlist view as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := a.resolveColumns(v.cols, v.sets)
			if err != nil {
				return err
			}
			filter, sort, err := v.view(cmd)
			if err != nil {
				return err
			}
			if err := a.openSession(cmd.Context()); err != nil {
				return err
			}

			rows := project.Project(a.sess.Records(), active, filter, sort)

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return render.NewCSVRenderer().Render(w, active, rows, render.Options{})
		},
	}
	v.register(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to a file instead of stdout")
	return cmd
}
