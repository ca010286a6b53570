// Package pipeline runs a tileset through load, collision build, wang
// indexing and, optionally, terrain resolution and physics placement.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/automoto/tilekit/config"
	"github.com/automoto/tilekit/physics"
	"github.com/automoto/tilekit/shared/collision"
	"github.com/automoto/tilekit/shared/mapdata"
	"github.com/automoto/tilekit/shared/terrain"
	"github.com/automoto/tilekit/shared/tiledef"
	"github.com/automoto/tilekit/shared/tsxdata"
	"github.com/automoto/tilekit/shared/wang"
	"github.com/automoto/tilekit/telemetry"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrUnknownWangSet is returned when Options.WangSet names no set in the
// tileset, or a grid is given for a tileset without wang sets.
var ErrUnknownWangSet = errors.New("unknown wang set")

// ErrConflictingInputs is returned when both a grid and a map are given.
var ErrConflictingInputs = errors.New("grid and map are mutually exclusive")

// Options selects what Run does. Paths are relative to FS.
type Options struct {
	FS       fs.FS
	Tileset  string // .tsx path
	Previous string // optional earlier revision of the tileset to diff against
	Grid     string // optional terrain grid to resolve
	WangSet  string // set used for the grid; first set when empty
	Map      string // optional TMX map whose layer is placed instead of a grid
	Layer    string // tile layer of Map

	Tolerance float64 // <= 0 uses config.Shape.Tolerance
	Workers   int     // <= 0 uses config.Resolve.Workers

	// Spawn places the resolved grid's collision into an ECS world.
	Spawn bool
}

// Result holds every stage's output. Stages that did not run leave their
// fields nil.
type Result struct {
	Tileset *tsxdata.Tileset
	Table   *collision.Table
	Rules   *wang.RuleTable
	Tiles   *terrain.TileGrid
	Changed []tiledef.TileID
	World   *ecs.ECS
	Bodies  int
	Report  Report
}

// Run executes the pipeline. Only I/O and configuration problems return an
// error; per-object, per-tile and per-cell failures are collected in the
// report and the remaining output is still produced.
func Run(ctx context.Context, opts Options) (*Result, error) {
	tracer := telemetry.Tracer("pipeline")
	ctx, span := tracer.Start(ctx, "pipeline.run")
	defer span.End()
	span.SetAttributes(attribute.String("tileset", opts.Tileset))

	tolerance := opts.Tolerance
	if tolerance <= 0 {
		tolerance = config.Shape.Tolerance
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = config.Resolve.Workers
	}

	if opts.Grid != "" && opts.Map != "" {
		return nil, ErrConflictingInputs
	}

	res := &Result{}
	fail := func(err error) (*Result, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	ts, err := load(ctx, opts.FS, opts.Tileset)
	if err != nil {
		return fail(err)
	}
	res.Tileset = ts
	res.Report.Warnings = append(res.Report.Warnings, ts.Warnings...)

	builder := &collision.Builder{Tolerance: tolerance, Workers: workers}
	res.Table, res.Report.Collision = build(ctx, builder, ts)

	res.Rules, res.Report.Wang = index(ctx, ts)

	if opts.Previous != "" {
		prev, err := load(ctx, opts.FS, opts.Previous)
		if err != nil {
			return fail(err)
		}
		prevTable, _ := build(ctx, builder, prev)
		res.Changed = res.Table.Changed(prevTable)
	}

	if opts.Grid != "" {
		tiles, errs, err := resolve(ctx, opts, res.Rules, workers)
		if err != nil {
			return fail(err)
		}
		res.Tiles = tiles
		res.Report.Terrain = errs
	}

	if opts.Map != "" {
		layer, err := mapdata.LoadLayer(opts.FS, opts.Map, opts.Layer, ts.Name)
		if err != nil {
			return fail(err)
		}
		if layer.Foreign > 0 {
			res.Report.Warnings = append(res.Report.Warnings,
				fmt.Errorf("%s: %d cells use another tileset and were skipped", opts.Map, layer.Foreign))
		}
		res.Tiles = layer.Tiles
	}

	if opts.Spawn && res.Tiles != nil {
		world, n, err := spawn(ctx, res.Tiles, res.Table, ts)
		res.World, res.Bodies = world, n
		if err != nil {
			res.Report.Physics = append(res.Report.Physics, err)
		}
	}

	span.SetAttributes(attribute.Int("issues", res.Report.Issues()))
	return res, nil
}

func load(ctx context.Context, fsys fs.FS, p string) (*tsxdata.Tileset, error) {
	_, span := telemetry.Tracer("pipeline").Start(ctx, "pipeline.load")
	defer span.End()

	ts, err := tsxdata.LoadTileset(fsys, p)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("path", p),
		attribute.Int("tiles", len(ts.Tiles)),
		attribute.Int("wangsets", len(ts.WangSets)),
	)
	return ts, nil
}

func build(ctx context.Context, b *collision.Builder, ts *tsxdata.Tileset) (*collision.Table, []error) {
	_, span := telemetry.Tracer("pipeline").Start(ctx, "pipeline.build")
	defer span.End()

	table, errs := b.BuildTable(ts.Tiles)
	span.SetAttributes(
		attribute.Int("entries", table.Len()),
		attribute.Int("bodies", table.BodyCount()),
		attribute.Int("errors", len(errs)),
	)
	return table, errs
}

func index(ctx context.Context, ts *tsxdata.Tileset) (*wang.RuleTable, []error) {
	_, span := telemetry.Tracer("pipeline").Start(ctx, "pipeline.index")
	defer span.End()

	rt, errs := wang.Index(ts.WangSets)
	span.SetAttributes(
		attribute.Int("sets", len(rt.Sets())),
		attribute.Int("errors", len(errs)),
	)
	return rt, errs
}

func resolve(ctx context.Context, opts Options, rt *wang.RuleTable, workers int) (*terrain.TileGrid, []error, error) {
	_, span := telemetry.Tracer("pipeline").Start(ctx, "pipeline.resolve")
	defer span.End()

	rules, err := pickRules(rt, opts.WangSet)
	if err != nil {
		return nil, nil, err
	}
	r, err := terrain.NewResolver(rules, workers)
	if err != nil {
		return nil, nil, err
	}

	f, err := opts.FS.Open(opts.Grid)
	if err != nil {
		return nil, nil, fmt.Errorf("open grid %s: %w", opts.Grid, err)
	}
	defer f.Close()
	grid, err := terrain.ParseGrid(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opts.Grid, err)
	}

	tiles, errs := r.Resolve(grid)
	span.SetAttributes(
		attribute.String("wangset", rules.Name),
		attribute.Int("cells", grid.Width*grid.Height),
		attribute.Int("errors", len(errs)),
	)
	return tiles, errs, nil
}

func pickRules(rt *wang.RuleTable, name string) (*wang.Rules, error) {
	if name == "" {
		sets := rt.Sets()
		if len(sets) == 0 {
			return nil, fmt.Errorf("%w: tileset has no wang sets", ErrUnknownWangSet)
		}
		return sets[0], nil
	}
	rules, ok := rt.Rules(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWangSet, name)
	}
	return rules, nil
}

func spawn(ctx context.Context, tiles *terrain.TileGrid, table *collision.Table, ts *tsxdata.Tileset) (*ecs.ECS, int, error) {
	_, span := telemetry.Tracer("pipeline").Start(ctx, "pipeline.spawn")
	defer span.End()

	world := ecs.NewECS(donburi.NewWorld())
	physics.CreateSpace(world,
		tiles.Width*ts.TileWidth, tiles.Height*ts.TileHeight,
		config.Physics.CellWidth, config.Physics.CellHeight)

	n, err := physics.SpawnGrid(world, tiles, table, float64(ts.TileWidth), float64(ts.TileHeight))
	span.SetAttributes(attribute.Int("bodies", n))
	return world, n, err
}
