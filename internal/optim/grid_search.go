package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/config"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/experiment"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

// Builder turns one grid point into a runnable configuration.
type Builder func(params map[string]float64) (*config.Config, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	workers    int
	maximize   bool
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Maximize flips the objective; by default the smallest metric wins.
func (g *GridSearch) Maximize() *GridSearch {
	g.maximize = true
	return g
}

// Workers bounds how many grid points run at once.
func (g *GridSearch) Workers(n int) *GridSearch {
	g.workers = n
	return g
}

// Points enumerates the cartesian product of the ranges in order.
func (g *GridSearch) Points() []map[string]float64 {
	var points []map[string]float64
	g.collect(0, map[string]float64{}, &points)
	return points
}

func (g *GridSearch) collect(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		*out = append(*out, current)
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val
		g.collect(depth+1, newParams, out)
	}
}

// Search runs every grid point concurrently and returns the best point and
// its metric value. Ties keep the earlier point.
func (g *GridSearch) Search(ctx context.Context, build Builder, metricName string) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("%d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	points := g.Points()
	configs := make([]*config.Config, len(points))
	runs := make([]sim.Config, len(points))
	for i, p := range points {
		cfg, err := build(p)
		if err != nil {
			return nil, 0, fmt.Errorf("point %v: %w", p, err)
		}
		configs[i] = cfg
		runs[i] = cfg.SimConfig()
	}

	registry := experiment.NewRegistry()
	factory := func(i int, _ sim.Config) (*sim.Simulator, error) {
		m, err := registry.GetMetric(metricName)
		if err != nil {
			return nil, err
		}
		exp := experiment.New(configs[i])
		if err := exp.Setup([]sim.Metric{m}); err != nil {
			return nil, err
		}
		return exp.GetSimulator(), nil
	}

	results, err := sim.NewEnsemble(factory, g.workers).Run(ctx, runs)
	if err != nil {
		return nil, 0, err
	}

	best := math.Inf(1)
	if g.maximize {
		best = math.Inf(-1)
	}
	var bestParams map[string]float64
	for i, r := range results {
		val := r.Metrics[metricName]
		if g.better(val, best) {
			best = val
			bestParams = points[i]
		}
	}
	return bestParams, best, nil
}

func (g *GridSearch) better(val, best float64) bool {
	if g.maximize {
		return val > best
	}
	return val < best
}
