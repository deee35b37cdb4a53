// Command directory browses the employee directory served by the proxy.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ninja-fellowship/internal/config"
	"ninja-fellowship/internal/directory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// viewFlags are the pipeline inputs shared by every subcommand.
type viewFlags struct {
	proxyURL string
	sort     string
	search   string
	offices  []string
}

type app struct {
	cfg    config.CLI
	logger *logrus.Logger
	flags  viewFlags
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "directory",
		Short:         "Browse the employee directory",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadCLI()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = config.Logger(cfg.LogLevel)
			a.logger.SetOutput(cmd.ErrOrStderr())
			if a.flags.proxyURL == "" {
				a.flags.proxyURL = cfg.ProxyURL
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.proxyURL, "proxy-url", "", "employee proxy URL (default $DIRECTORY_PROXY_URL)")
	pf.StringVar(&a.flags.sort, "sort", string(directory.NameAscending), "sort mode: nameAscending, nameDescending, officeAscending, officeDescending")
	pf.StringVar(&a.flags.search, "search", "", "name search query")
	pf.StringArrayVar(&a.flags.offices, "office", nil, "toggle an office filter (repeatable)")

	root.AddCommand(newShowCmd(a), newOfficesCmd(a), newExportCmd(a))
	return root
}

// load fetches the list once and applies the pipeline flags. A failed load
// leaves the model without employees; the failure is logged by the loader.
func (a *app) load(ctx context.Context) (*directory.Model, error) {
	mode, err := directory.ParseSortMode(a.flags.sort)
	if err != nil {
		return nil, err
	}

	m := directory.NewModel()
	m.SetSortMode(mode)
	m.SetSearchQuery(a.flags.search)
	for _, o := range a.flags.offices {
		m.ToggleOffice(o)
	}

	_ = directory.NewLoader(a.flags.proxyURL, a.logger).Load(ctx, m)
	return m, nil
}

func newOfficesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "offices",
		Short: "List the offices present in the directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			for _, o := range m.View().Offices {
				fmt.Fprintln(cmd.OutOrStdout(), o)
			}
			return nil
		},
	}
}
