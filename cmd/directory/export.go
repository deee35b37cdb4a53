package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ninja-fellowship/internal/export"
	"ninja-fellowship/internal/sftpclient"
)

var errNotLoaded = errors.New("employee list not loaded")

func newExportCmd(a *app) *cobra.Command {
	var (
		outPath    string
		upload     bool
		remoteName string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered and sorted directory to CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			v := m.View()
			if !v.Loaded {
				return errNotLoaded
			}

			if err := export.WriteDirectoryCSVFile(outPath, v.Employees); err != nil {
				return err
			}
			a.logger.WithFields(logrus.Fields{
				"path":      outPath,
				"employees": len(v.Employees),
			}).Info("directory exported")
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d employees to %s\n", len(v.Employees), outPath)

			if !upload {
				return nil
			}
			if remoteName == "" {
				remoteName = filepath.Base(outPath)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			if err := sftpclient.UploadFile(ctx, sftpclient.FromOptions(a.cfg.SFTP), outPath, remoteName); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s to %s\n", remoteName, a.cfg.SFTP.Dir)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&outPath, "out", "out/directory.csv", "output CSV path")
	f.BoolVar(&upload, "sftp", false, "upload the CSV over SFTP")
	f.StringVar(&remoteName, "remote-name", "", "remote file name (default: base name of --out)")
	f.DurationVar(&timeout, "sftp-timeout", 2*time.Minute, "SFTP upload timeout")
	return cmd
}
