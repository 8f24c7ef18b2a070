package main

import (
	"flag"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"life-canvas/internal/core"
	"life-canvas/internal/engine"
	"life-canvas/internal/ledger"
	"life-canvas/internal/life"
)

type scenario struct {
	mode    core.Mode
	seed    int64
	density float64
}

func (s scenario) String() string {
	return fmt.Sprintf("mode=%s seed=%d density=%.2f", s.mode, s.seed, s.density)
}

type scenarioResult struct {
	scenario   scenario
	score      int
	earned     int
	settledAt  int
	population int
	walls      int
}

func main() {
	steps := flag.Int("steps", 2000, "maximum generations per scenario")
	cols := flag.Int("cols", 80, "grid side length")
	seeds := flag.Int("seeds", 8, "seeds per mode and density")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	rulesFlag := flag.String("rules", "", "rule overrides as k=v pairs")
	flag.Parse()

	rules := engine.DefaultConfig().Apply(engine.ParsePairs(*rulesFlag)).Rules

	densities := []float64{0.15, 0.25, 0.35}
	var sets []scenario
	for _, m := range core.Modes() {
		for _, d := range densities {
			for s := 0; s < *seeds; s++ {
				sets = append(sets, scenario{mode: m, seed: int64(1337 + s), density: d})
			}
		}
	}

	fmt.Printf("Sweeping %d scenarios (%d workers, %d steps, %dx%d)\n", len(sets), *workers, *steps, *cols, *cols)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(*cols, rules, sc, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	perMode := map[core.Mode][]scenarioResult{}
	for res := range results {
		all = append(all, res)
		perMode[res.scenario.mode] = append(perMode[res.scenario.mode], res)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].score > all[j].score })
	elapsed := time.Since(start)

	fmt.Printf("\nPer mode (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for _, m := range core.Modes() {
		rs := perMode[m]
		if len(rs) == 0 {
			continue
		}
		var score, earned, settled, unsettled int
		for _, r := range rs {
			score += r.score
			earned += r.earned
			if r.settledAt > 0 {
				settled += r.settledAt
			} else {
				unsettled++
			}
		}
		n := len(rs)
		avgSettled := "n/a"
		if n > unsettled {
			avgSettled = fmt.Sprint(settled / (n - unsettled))
		}
		fmt.Printf("%-10s avgScore=%d avgEarned=%.1f avgSettled=%s unsettled=%d/%d\n",
			m, score/n, float64(earned)/float64(n), avgSettled, unsettled, n)
	}

	fmt.Printf("\nTop 5 scenarios:\n")
	for i := 0; i < len(all) && i < 5; i++ {
		res := all[i]
		fmt.Printf("%2d) score=%d earned=%d settled=%d population=%d walls=%d %s\n",
			i+1, res.score, res.earned, res.settledAt, res.population, res.walls, res.scenario)
	}
}

// runScenario fills a grid and steps it until it settles or the step limit
// is reached. settledAt is zero when the grid never settled.
func runScenario(cols int, rules life.Rules, sc scenario, steps int) scenarioResult {
	g := life.NewGrid(cols)
	g.Fill(core.NewRNG(sc.seed), sc.density)
	l := ledger.New(0, 0)

	res := scenarioResult{scenario: sc}
	for step := 1; step <= steps; step++ {
		out := g.Step(sc.mode, rules)
		res.earned += l.Add(out.Score)
		if !out.Changed {
			res.settledAt = step
			break
		}
	}
	res.score = l.Score()
	for _, c := range g.Cells() {
		if c.Alive {
			res.population++
		}
		if rules.IsWall(c, sc.mode) {
			res.walls++
		}
	}
	return res
}
