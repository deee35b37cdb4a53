package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ninja-fellowship/internal/directory"
	"ninja-fellowship/internal/render"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		view           string
		columns        int
		checkPortraits bool
		probeTimeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the directory as cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vt, err := directory.ParseViewType(view)
			if err != nil {
				return err
			}
			m, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			m.SetViewType(vt)

			v := m.View()
			opts := render.Options{Columns: columns}
			if checkPortraits && v.Loaded {
				reachable, errs := render.NewPortraitChecker(probeTimeout).Check(cmd.Context(), v.Employees)
				for _, err := range errs {
					a.logger.WithError(err).Debug("portrait probe failed")
				}
				opts.Reachable = reachable
			}

			out := render.View(v, m.State().OfficeFilters, opts)
			if out != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&view, "view", string(directory.ViewGrid), "layout: grid or list")
	f.IntVar(&columns, "columns", render.DefaultColumns, "cards per row in grid view")
	f.BoolVar(&checkPortraits, "check-portraits", false, "hide portraits that cannot be fetched")
	f.DurationVar(&probeTimeout, "portrait-timeout", 5*time.Second, "timeout per portrait probe")
	return cmd
}
