package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/plus3/invaders/ecs"
	"github.com/plus3/invaders/game"
)

type Report struct {
	// Configuration
	Ticks    uint64
	Duration time.Duration
	Seed     uint64
	EnemyMax uint32

	// Results
	TotalTicks     uint64
	SimulatedTime  time.Duration
	TotalTime      time.Duration
	UpdateTime     Stats
	Final          game.Snapshot
	Games          int
	Deaths         int
	BestScore      uint32
	PeakEnemies    uint32
	Systems        []ecs.SystemStats
	Storage        ecs.StorageStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats

	lastLife  uint32
	lastState game.State
}

// Observe folds one post-tick snapshot into the gameplay counters.
func (r *Report) Observe(snap game.Snapshot) {
	if r.TotalTicks > 0 && snap.PlayerLife < r.lastLife {
		r.Deaths += int(r.lastLife - snap.PlayerLife)
	}
	if snap.State == game.StateEnd && r.lastState != game.StateEnd {
		r.Games++
	}

	r.BestScore = max(r.BestScore, snap.Score)
	r.PeakEnemies = max(r.PeakEnemies, snap.EnemyCount)

	r.lastLife = snap.PlayerLife
	r.lastState = snap.State
	r.Final = snap
	r.TotalTicks++
	r.SimulatedTime = time.Duration(float64(r.TotalTicks) * float64(game.TimeStep) * float64(time.Second))
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Invaders Soak Report

## Run Configuration
- **Tick Limit:** {{if .Ticks}}{{.Ticks}}{{else}}none{{end}}
- **Wall Clock Limit:** {{if .Duration}}{{.Duration}}{{else}}none{{end}}
- **Seed:** {{.Seed}}
- **Enemy Max:** {{.EnemyMax}}

## Gameplay
- **Ticks:** {{.TotalTicks}} ({{.SimulatedTime}} simulated)
- **Games Finished:** {{.Games}}
- **Lives Lost:** {{.Deaths}}
- **Best Score:** {{.BestScore}}
- **Peak Enemies:** {{.PeakEnemies}}
- **Final State:** {{.Final.State}} (score {{.Final.Score}}, life {{.Final.PlayerLife}}, enemies {{.Final.EnemyCount}})

## Performance Results
- **Total Run Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

| System | Runs | Avg | Max | Total |
|---|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} | {{.TotalDuration}} |
{{- end}}

## Storage
- **Archetypes:** {{.Storage.ArchetypeCount}}
- **Live Entities:** {{.Storage.TotalEntityCount}}
- **Singletons:** {{.Storage.SingletonCount}}
{{range .Storage.ArchetypeBreakdown}}{{if .EntityCount}}
- archetype {{.ID}}: {{.EntityCount}} x {{join .ComponentTypes}}{{end}}{{end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{ns (bsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}
{{end}}`

var reportFuncs = template.FuncMap{
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns int64) string {
		return time.Duration(ns).String()
	},
	"join": func(names []string) string {
		return strings.Join(names, ", ")
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}
	if err := tmpl.Execute(w, r); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
