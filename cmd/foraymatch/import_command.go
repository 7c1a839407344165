package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"foraymatch/internal/ingest"
	"foraymatch/internal/store"
	"foraymatch/internal/taxon"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Load CSV inputs into the local database",
	}

	importCmd.AddCommand(newImportForayCommand(ctx))
	importCmd.AddCommand(newImportMycoBankCommand(ctx))

	return importCmd
}

func newImportForayCommand(ctx *commandContext) *cobra.Command {
	var clearFlag bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "foray [csv-path]",
		Short: "Import the ForayNL specimen export",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var specimens []taxon.SpecimenRecord
			if len(args) == 1 {
				var err error
				specimens, err = ingest.ReadSpecimens(args[0])
				if err != nil {
					return fmt.Errorf("read foray csv: %w", err)
				}
			} else if !clearFlag {
				return errors.New("a csv path is required unless --clear is set")
			}

			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Would import %d specimens (dry run)\n", len(specimens))
				return nil
			}

			return withStore(ctx, func(st *store.Store) error {
				if err := st.ReplaceSpecimens(cmd.Context(), specimens); err != nil {
					return fmt.Errorf("store specimens: %w", err)
				}
				if len(args) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Cleared specimen table")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d specimens\n", len(specimens))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&clearFlag, "clear", false, "Clear existing rows (and allow running without a csv path)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and report without writing to the database")
	return cmd
}

func newImportMycoBankCommand(ctx *commandContext) *cobra.Command {
	var clearFlag bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "mycobank [csv-path]",
		Short: "Import the MycoBank reference list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var references []taxon.ReferenceRecord
			if len(args) == 1 {
				var err error
				references, err = ingest.ReadReferences(args[0])
				if err != nil {
					return fmt.Errorf("read mycobank csv: %w", err)
				}
			} else if !clearFlag {
				return errors.New("a csv path is required unless --clear is set")
			}

			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Would import %d references (dry run)\n", len(references))
				return nil
			}

			return withStore(ctx, func(st *store.Store) error {
				if err := st.ReplaceReferences(cmd.Context(), references); err != nil {
					return fmt.Errorf("store references: %w", err)
				}
				if len(args) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Cleared reference table")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d references\n", len(references))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&clearFlag, "clear", false, "Clear existing rows (and allow running without a csv path)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and report without writing to the database")
	return cmd
}

func withStore(ctx *commandContext, fn func(*store.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	return fn(st)
}
