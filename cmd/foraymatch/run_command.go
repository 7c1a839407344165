package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"foraymatch/internal/config"
	"foraymatch/internal/ingest"
	"foraymatch/internal/logging"
	"foraymatch/internal/match"
	"foraymatch/internal/pipeline"
	"foraymatch/internal/store"
	"foraymatch/internal/taxon"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var forayPath string
	var mycobankPath string
	var workersFlag int
	var skipOriginals bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Match every specimen against the reference list and store the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			st, err := store.Open(cfg)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			release, err := st.AcquireRunLock()
			if err != nil {
				if errors.Is(err, store.ErrRunActive) {
					return errors.New("another matching run is already active for this data directory")
				}
				return err
			}
			defer release()

			specimens, specimensFromCSV, err := loadSpecimens(cmd, cfg, st, forayPath)
			if err != nil {
				return err
			}
			references, referencesFromCSV, err := loadReferences(cmd, cfg, st, mycobankPath)
			if err != nil {
				return err
			}

			saveOriginals := !skipOriginals && !cfg.Matching.SkipSaveOriginals
			if saveOriginals {
				if specimensFromCSV {
					if err := st.ReplaceSpecimens(cmd.Context(), specimens); err != nil {
						return fmt.Errorf("persist specimens: %w", err)
					}
				}
				if referencesFromCSV {
					if err := st.ReplaceReferences(cmd.Context(), references); err != nil {
						return fmt.Errorf("persist references: %w", err)
					}
				}
			}

			workers := resolveWorkers(workersFlag, cfg, logger)

			index := match.NewIndex(references, nil)
			matcher := match.NewMatcher(index, cfg.Matching.CacheCapacity)

			opts := pipeline.Options{
				Workers: workers,
				Logger:  logger,
			}
			var bar *progressbar.ProgressBar
			if isatty.IsTerminal(os.Stderr.Fd()) {
				bar = progressbar.NewOptions(len(specimens),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionSetDescription("matching"),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
				opts.Progress = func(done, total int) { _ = bar.Set(done) }
			}

			started := time.Now().UTC()
			results := pipeline.Run(cmd.Context(), specimens, matcher, opts)
			if bar != nil {
				_ = bar.Finish()
			}
			if err := cmd.Context().Err(); err != nil {
				return err
			}

			info := store.RunInfo{
				RunID:          results.RunID,
				StartedAt:      started,
				FinishedAt:     started.Add(results.Elapsed),
				SpecimenCount:  len(specimens),
				ReferenceCount: len(references),
				Workers:        pipeline.WorkerCount(workers),
			}
			if err := st.SaveResults(cmd.Context(), &results, info); err != nil {
				return fmt.Errorf("save results: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Matched %d specimens against %d references in %s\n",
				len(specimens), len(references), results.Elapsed.Round(time.Millisecond))
			fmt.Fprintf(out, "Perfect matches: %d (exact MycoBank hits: %d)\n",
				len(results.PerfectMatches), len(results.PerfectReferenceMatches))
			fmt.Fprintf(out, "Mismatches: %d\n", len(results.Mismatches))
			fmt.Fprintln(out, "Run `foraymatch report` for the full breakdown.")
			return nil
		},
	}

	cmd.Flags().StringVar(&forayPath, "foray", "", "ForayNL specimen CSV (defaults to inputs.foray_csv, then persisted rows)")
	cmd.Flags().StringVar(&mycobankPath, "mycobank", "", "MycoBank reference CSV (defaults to inputs.mycobank_csv, then persisted rows)")
	cmd.Flags().IntVar(&workersFlag, "workers", 0, "Worker pool size (0 selects the CPU-derived default)")
	cmd.Flags().BoolVar(&skipOriginals, "skip-originals", false, "Do not persist the raw input rows")
	return cmd
}

func loadSpecimens(cmd *cobra.Command, cfg *config.Config, st *store.Store, flagPath string) ([]taxon.SpecimenRecord, bool, error) {
	path := strings.TrimSpace(flagPath)
	if path == "" {
		path = cfg.Inputs.ForayCSV
	}
	if path != "" {
		specimens, err := ingest.ReadSpecimens(path)
		if err != nil {
			return nil, false, fmt.Errorf("load foray csv: %w", err)
		}
		return specimens, true, nil
	}

	specimens, err := st.Specimens(cmd.Context())
	if err != nil {
		return nil, false, fmt.Errorf("load persisted specimens: %w", err)
	}
	if len(specimens) == 0 {
		return nil, false, errors.New("no specimen data: pass --foray, set inputs.foray_csv, or run `foraymatch import foray` first")
	}
	return specimens, false, nil
}

func loadReferences(cmd *cobra.Command, cfg *config.Config, st *store.Store, flagPath string) ([]taxon.ReferenceRecord, bool, error) {
	path := strings.TrimSpace(flagPath)
	if path == "" {
		path = cfg.Inputs.MycoBankCSV
	}
	if path != "" {
		references, err := ingest.ReadReferences(path)
		if err != nil {
			return nil, false, fmt.Errorf("load mycobank csv: %w", err)
		}
		return references, true, nil
	}

	references, err := st.References(cmd.Context())
	if err != nil {
		return nil, false, fmt.Errorf("load persisted references: %w", err)
	}
	if len(references) == 0 {
		return nil, false, errors.New("no reference data: pass --mycobank, set inputs.mycobank_csv, or run `foraymatch import mycobank` first")
	}
	return references, false, nil
}

// resolveWorkers applies the override precedence: command flag, then the
// environment variable, then the config file. Unparseable environment
// values are logged and skipped.
func resolveWorkers(flagValue int, cfg *config.Config, logger *slog.Logger) int {
	if flagValue > 0 {
		return flagValue
	}
	if raw := strings.TrimSpace(os.Getenv(config.WorkersEnvVar)); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			logger.Warn("ignoring invalid worker override",
				logging.String("var", config.WorkersEnvVar),
				logging.String("value", raw),
			)
		} else {
			return value
		}
	}
	return cfg.Matching.Workers
}
