package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/conn-castle/ucrtfix/internal/cabextract"
	"github.com/conn-castle/ucrtfix/internal/fetch"
	"github.com/conn-castle/ucrtfix/internal/install"
	"github.com/conn-castle/ucrtfix/internal/messages"
	"github.com/conn-castle/ucrtfix/internal/prefix"
	"github.com/conn-castle/ucrtfix/internal/repair"
)

var (
	defaultLayout = prefix.DefaultLayout
	defaultSource = fetch.DefaultSource
	newTool       = func() cabextract.Tool { return cabextract.Tool{} }
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepair(cmd.Context(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().Bool("version", false, messages.RootVersionFlag)
	cmd.AddCommand(newDoctorCmd())
	return cmd
}

// runRepair checks for cabextract, then scans, fetches and installs.
func runRepair(ctx context.Context, out io.Writer) error {
	tool := newTool()
	version, err := tool.Probe(ctx)
	if err != nil {
		return err
	}
	if version == "" {
		version = cabextract.DefaultBinary
	}
	_, _ = fmt.Fprintf(out, messages.PreflightFoundFmt, version)

	layout := defaultLayout()
	_, err = repair.Run(ctx, repair.Deps{
		Scanner:     prefix.Scanner{Layout: layout},
		Fetcher:     &fetch.Fetcher{Source: defaultSource(), Extractor: tool, Out: out},
		Installer:   install.Installer{Out: out},
		LibraryName: layout.LibraryName,
		Out:         out,
	})
	return err
}
