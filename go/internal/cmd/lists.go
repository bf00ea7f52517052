package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mcdev12/playclock/go/internal/session"
	"github.com/spf13/cobra"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every saved list as a JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeStore, err := openSession(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			data, err := json.MarshalIndent(sess.ExportLists(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode export: %w", err)
			}
			data = append(data, '\n')

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d lists to %s\n", len(sess.SavedLists()), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Merge saved lists from an exported JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read import file: %w", err)
			}

			sess, closeStore, err := openSession(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			confirmer := session.AlwaysConfirm
			if !replace {
				confirmer = newPromptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
			}

			res, err := sess.ImportLists(cmd.Context(), data, confirmer)
			if err != nil {
				return fmt.Errorf("%s: %w", session.Message(err), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d lists (%d replaced), skipped %d\n", res.Added, res.Replaced, res.Skipped)
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "replace existing lists with the same name without asking")
	return cmd
}

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print players ordered by time played",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeStore, err := openSession(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			report := sess.Summary()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			if len(report.Rows) == 0 {
				fmt.Fprintln(out, "No players")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tPLAYER\tTIME\tACTIVE")
			for _, row := range report.Rows {
				active := ""
				if row.IsActive {
					active = "yes"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", row.Rank, row.Name, row.Formatted, active)
			}
			fmt.Fprintf(tw, "\tTOTAL\t%s\t%d\n", report.Total, report.ActivePlayers)
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

// promptConfirmer asks on out and reads a y/N answer from in
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptConfirmer(in io.Reader, out io.Writer) *promptConfirmer {
	return &promptConfirmer{in: bufio.NewReader(in), out: out}
}

func (p *promptConfirmer) Confirm(_ context.Context, prompt session.Prompt) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", prompt.Message)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
