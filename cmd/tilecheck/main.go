package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/automoto/tilekit/assets"
	"github.com/automoto/tilekit/config"
	"github.com/automoto/tilekit/pipeline"
	"github.com/automoto/tilekit/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	dir := flag.String("dir", "", "Asset directory (empty = embedded assets)")
	tileset := flag.String("tileset", "tilesets/jungle.tsx", "Tileset (.tsx) to check")
	previous := flag.String("previous", "", "Earlier revision of the tileset; logs tiles whose collision changed")
	grid := flag.String("grid", "", "Terrain grid to resolve")
	wangset := flag.String("wangset", "", "Wang set used for the grid (empty = first)")
	tmx := flag.String("map", "", "TMX map whose tile layer is placed instead of a grid")
	layer := flag.String("layer", "collision", "Tile layer of -map")
	tolerance := flag.Float64("tolerance", 0, "Snapping tolerance in pixels (default from config)")
	workers := flag.Int("workers", 0, "Parallel workers (default from config)")
	spawn := flag.Bool("spawn", false, "Place the resolved grid's collision into a physics space")
	envFile := flag.String("env", "", "Optional .env file with TILEKIT_* overrides")
	trace := flag.Bool("telemetry", false, "Export traces over OTLP HTTP")
	flag.Parse()

	if err := config.LoadEnv(*envFile); err != nil {
		log.Fatalf("[tilecheck] %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tolerance":
			config.Shape.Tolerance = *tolerance
		case "workers":
			config.Resolve.Workers = *workers
		case "telemetry":
			config.Telemetry.Enabled = *trace
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if config.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, config.Telemetry.ServiceName)
		if err != nil {
			log.Printf("[tilecheck] telemetry setup failed, continuing without: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Printf("[tilecheck] telemetry shutdown: %v", err)
				}
			}()
		}
	}

	var fsys fs.FS = assets.FS()
	if *dir != "" {
		fsys = os.DirFS(*dir)
	}

	res, err := pipeline.Run(ctx, pipeline.Options{
		FS:       fsys,
		Tileset:  *tileset,
		Previous: *previous,
		Grid:     *grid,
		WangSet:  *wangset,
		Map:      *tmx,
		Layer:    *layer,
		Spawn:    *spawn,
	})
	if err != nil {
		log.Printf("[tilecheck] %v", err)
		return 1
	}

	res.Report.Log("tilecheck")
	log.Printf("[tilecheck] %s: %d tiles with collision, %d bodies, %d wang sets (tolerance %g)",
		res.Tileset.Name, res.Table.Len(), res.Table.BodyCount(), len(res.Rules.Sets()), config.Shape.Tolerance)

	if *previous != "" {
		if len(res.Changed) == 0 {
			log.Printf("[tilecheck] no collision changes since %s", *previous)
		}
		for _, id := range res.Changed {
			log.Printf("[tilecheck] tile %s: collision geometry changed", id)
		}
	}

	if res.Tiles != nil {
		fmt.Print(res.Tiles.String())
	}
	if *spawn {
		log.Printf("[tilecheck] spawned %d bodies", res.Bodies)
	}

	if n := res.Report.Issues(); n > 0 {
		counts := res.Report.Counts()
		kinds := make([]string, 0, len(counts))
		for k := range counts {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			log.Printf("[tilecheck] %d x %s", counts[k], k)
		}
		return 1
	}
	return 0
}
