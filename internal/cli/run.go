package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"lifesim/internal/pattern"
	"lifesim/internal/session"
)

func init() {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a board headless and report statistics",
		Long: "Run a board for a number of generations. The board comes from --from (a pattern\n" +
			"document), --pattern (a preset) or a random fill. Ctrl-C stops early.",
		Run: runRun,
	}

	addBoardFlags(cmd)
	cmd.Flags().IntP("gens", "g", 100, "Generations to run (0 runs until interrupted)")
	cmd.Flags().Int("gps", 0, "Generations per second (0 runs as fast as possible)")
	cmd.Flags().Int("every", 0, "Print a sample every N generations (0 prints only the summary)")
	cmd.Flags().StringP("out", "o", "", "Write the final board as a pattern document to this file")
	cmd.Flags().Bool("save", false, "Save the final board to the pattern library")

	RootCmd.AddCommand(cmd)
}

func runRun(cmd *cobra.Command, args []string) {
	gens, _ := cmd.Flags().GetInt("gens")
	gps, _ := cmd.Flags().GetInt("gps")
	every, _ := cmd.Flags().GetInt("every")
	out, _ := cmd.Flags().GetString("out")
	save, _ := cmd.Flags().GetBool("save")

	s, err := newBoard(cmd)
	if err != nil {
		exitErr("board", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	slog.Info("run starting", "rows", s.Rows(), "cols", s.Cols(), "population", s.Population(), "gens", gens, "gps", gps)
	if err := drive(ctx, s, gens, gps, every); err != nil {
		exitErr("run", err)
	}
	slog.Info("run finished", "generation", s.Generation(), "class", s.Class())

	doc := s.Export()
	if out != "" {
		if err := writeDocument(out, doc); err != nil {
			exitErr("write pattern", err)
		}
	}
	if save {
		lib, err := openLibrary()
		if err != nil {
			exitErr("open library", err)
		}
		defer lib.Close()
		entry, err := lib.Save(ctx, doc)
		if err != nil {
			exitErr("save pattern", err)
		}
		slog.Info("pattern saved", "id", entry.ID)
	}

	if textOutput() {
		sum := s.Summary()
		fmt.Fprintf(cmd.OutOrStdout(), "generation %d  population %d (max %d, avg %.1f)  entropy %.3f  %s\n",
			sum.Generation, sum.Population, sum.MaxPopulation, sum.AveragePopulation, sum.Entropy, sum.Class)
		return
	}
	writeJSON(cmd.OutOrStdout(), s.Summary())
}

// drive steps the session on a runner goroutine while a reporter goroutine
// prints samples. Only the runner touches the session until both return.
func drive(ctx context.Context, s *session.Session, gens, gps, every int) error {
	events := make(chan session.StepEvent, 64)
	g, gctx := errgroup.WithContext(ctx)

	s.Start()
	g.Go(func() error {
		defer close(events)
		return session.NewRunner(s, gps).Run(gctx, gens, events)
	})
	g.Go(func() error {
		for ev := range events {
			if every <= 0 || ev.Generation%every != 0 {
				continue
			}
			if textOutput() {
				fmt.Printf("%6d  pop %6d  +%-5d -%-5d  H=%.3f  %s\n",
					ev.Generation, ev.Sample.Population, ev.Births, ev.Deaths, ev.Sample.Entropy, ev.Class)
				continue
			}
			printJSON(ev.Sample)
		}
		return nil
	})

	err := g.Wait()
	s.Stop()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func writeDocument(path string, doc pattern.Document) error {
	data, err := pattern.Marshal(doc)
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
