package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/checklist/internal/config"
	"github.com/BuzzLyutic/checklist/internal/model"
	"github.com/BuzzLyutic/checklist/internal/repo"
	"github.com/BuzzLyutic/checklist/internal/service"
	"github.com/BuzzLyutic/checklist/internal/worker"
)

var Version = "dev"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds what one CLI invocation opens. Every command loads the store,
// applies at most one change and saves before exiting.
type app struct {
	store   string
	path    string
	verbose bool

	logger  *zap.Logger
	backend repo.Backend
	undoKey string
	service *service.TaskService
}

// undoRecord is the undo slot as kept between invocations.
type undoRecord struct {
	Task  model.Task `json:"task"`
	Index int        `json:"index"`
}

func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	a := &app{}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	defer a.close()

	return root.ExecuteContext(ctx)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "checklist",
		Short:             "Checklist - track game progress tasks",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.open,
	}

	root.PersistentFlags().StringVar(&a.store, "store", "", "Store kind (file, sqlite, memory, postgres, redis)")
	root.PersistentFlags().StringVar(&a.path, "path", "", "Directory for the file and sqlite stores")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(a.addCmd())
	root.AddCommand(a.listCmd())
	root.AddCommand(a.sortCmd())
	root.AddCommand(a.rotateCmd())
	root.AddCommand(a.editCmd())
	root.AddCommand(a.deleteCmd())
	root.AddCommand(a.undoCmd())
	root.AddCommand(a.categoriesCmd())

	return root
}

func (a *app) open(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.store != "" {
		cfg.Store = a.store
	}
	if a.path != "" {
		cfg.StorePath = a.path
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.logger, err = newLogger(a.verbose)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a.backend, err = repo.OpenBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store, err)
	}

	taskRepo := repo.NewTaskRepo(a.backend, cfg.StorageKey, a.logger)
	a.undoKey = cfg.StorageKey + ".undo"
	a.service = service.NewTaskService(ctx, taskRepo, worker.Immediate{Repo: taskRepo}, a.logger, cfg.Categories)

	return a.loadUndo(ctx)
}

func (a *app) close() {
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.logger.Warn("Failed to close store", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) loadUndo(ctx context.Context) error {
	raw, err := a.backend.Get(ctx, a.undoKey)
	if errors.Is(err, repo.ErrorNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read undo slot: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}

	var rec undoRecord
	if err := sonic.ConfigStd.Unmarshal(raw, &rec); err != nil {
		a.logger.Warn("Discarding unreadable undo slot", zap.Error(err))
		return nil
	}
	a.service.SeedUndo(rec.Task, rec.Index)
	return nil
}

// saveUndo writes the current undo slot, or clears it when empty.
func (a *app) saveUndo(ctx context.Context) error {
	raw := []byte{}
	if t, index, ok := a.service.PendingUndo(); ok {
		var err error
		raw, err = sonic.ConfigStd.Marshal(undoRecord{Task: t, Index: index})
		if err != nil {
			return fmt.Errorf("encode undo slot: %w", err)
		}
	}
	if err := a.backend.Put(ctx, a.undoKey, raw); err != nil {
		return fmt.Errorf("save undo slot: %w", err)
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}

func printTasks(w io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "(no tasks)")
		return
	}
	for _, t := range tasks {
		fmt.Fprintf(w, "%d  %-11s  %s  %s\n", t.ID, t.Status, t.Category, t.Title)
		if memo := strings.TrimSpace(t.Memo); memo != "" {
			fmt.Fprintf(w, "    memo: %s\n", memo)
		}
	}
}
