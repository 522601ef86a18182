package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/JacopoBartoli/game-of-life/internal/app"
	"github.com/JacopoBartoli/game-of-life/internal/config"
	"github.com/JacopoBartoli/game-of-life/internal/life"
	"github.com/JacopoBartoli/game-of-life/internal/pattern"
	"github.com/JacopoBartoli/game-of-life/internal/state"
)

func main() {
	log.SetFlags(log.Ltime)
	log.SetPrefix("gol: ")

	configPath := flag.String("config", "", "YAML configuration file")
	steps := flag.Int("steps", 100, "generations to run (0 runs until interrupted)")
	load := flag.String("load", "", "pattern file to load instead of the base pattern")
	save := flag.String("save", "", "write the final grid to this pattern file")
	every := flag.Int("report", 10, "log the counters every N generations (0 disables)")
	list := flag.Bool("list", false, "list the patterns in the pattern directory and exit")
	check := flag.Bool("check", false, "check that every pattern fits the grid and exit")

	flags := config.DefaultConfig()
	flags.Bind(flag.CommandLine)
	flag.Parse()

	cfg := flags
	if *configPath != "" {
		fileCfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = fileCfg.Override(flags, flag.CommandLine)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	catalog := pattern.Catalog{Dir: cfg.PatternDir}
	switch {
	case *list:
		names, err := catalog.Names()
		if err != nil {
			log.Fatal(err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	case *check:
		if err := checkPatterns(ctx, catalog, cfg); err != nil {
			log.Fatal(err)
		}
		return
	}

	st, err := state.New(state.Config{
		Size:        cfg.Size(),
		Speed:       cfg.Speed,
		BasePattern: cfg.BasePattern,
		Stepper:     life.Engine{Workers: cfg.Workers},
	})
	if err != nil {
		log.Fatal(err)
	}
	ctl := app.NewController(st, catalog, log.Default())

	if *load != "" {
		err = ctl.LoadFile(*load)
	} else {
		err = ctl.SelectPattern(cfg.BasePattern)
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("%s grid, base pattern %q, %d alive", st.Size(), st.BasePatternName(), st.AliveCount())

	if *every > 0 {
		reported := 0
		st.Subscribe(func(s *state.State) {
			if n := s.ElapsedSteps(); n != reported && n%*every == 0 {
				reported = n
				log.Printf("step %d: %d alive", n, s.AliveCount())
			}
		})
	}

	done, err := app.NewRunner(ctl).Run(ctx, *steps)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
	log.Printf("stopped after %d generations: %d alive", done, st.AliveCount())

	if *save != "" {
		if _, err := ctl.Save(*save); err != nil {
			log.Fatal(err)
		}
	}
}

func checkPatterns(ctx context.Context, catalog pattern.Catalog, cfg config.Config) error {
	results, err := catalog.Check(ctx, cfg.Size())
	if err != nil {
		return err
	}
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			log.Printf("%s: %v", res.Name, res.Err)
			continue
		}
		log.Printf("%s: %s ok", res.Name, res.Size)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d patterns do not fit a %s grid", failed, len(results), cfg.Size())
	}
	return nil
}
