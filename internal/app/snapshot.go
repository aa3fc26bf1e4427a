package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/42Prague/skillgenome/internal/domain/cluster"
	"github.com/42Prague/skillgenome/internal/domain/graph"
	"github.com/42Prague/skillgenome/internal/domain/insight"
	"github.com/42Prague/skillgenome/internal/domain/model"
	"github.com/42Prague/skillgenome/internal/domain/trend"
	"github.com/42Prague/skillgenome/internal/domain/types"
	"github.com/42Prague/skillgenome/pkg/metrics"
)

// topRanked caps the hub and bridge skill lists in the network view.
const topRanked = 10

// Snapshot is the fully derived analytics state published after a rebuild.
// It is immutable after construction; readers share it without locking.
type Snapshot struct {
	Corpus    *model.Corpus
	Trends    map[string]trend.Analysis
	Genomes   map[cluster.Method]types.Genome
	Evolution types.Evolution
	Network   types.Network
	Insights  types.Insights
	BuiltAt   time.Time
	Events    int
}

// buildSnapshot derives every analytics view from the full event history.
// The context bounds the rebuild; a cancelled context aborts between engine
// stages and leaves the previous snapshot in place.
func (s *Service) buildSnapshot(ctx context.Context, events []model.SkillEvent) (*Snapshot, error) {
	corpus := model.BuildCorpus(events)

	snap := &Snapshot{
		Corpus:  corpus,
		Genomes: make(map[cluster.Method]types.Genome, 2),
		BuiltAt: time.Now(),
		Events:  len(events),
	}

	snap.Trends = s.buildTrends(corpus)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, method := range []cluster.Method{cluster.MethodDensity, cluster.MethodHierarchical} {
		genome, err := s.buildGenome(corpus, snap.Trends, method)
		if err != nil {
			return nil, err
		}
		snap.Genomes[method] = genome
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	snap.Evolution = s.buildEvolution(corpus, snap.Trends)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap.Network = s.buildNetwork(corpus)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	snap.Insights = s.insights.Compute(insight.Inputs{
		Corpus:   corpus,
		Trends:   snap.Trends,
		Analyzer: s.analyzer,
	})
	metrics.RecordEngineDuration("insights", float64(time.Since(start).Milliseconds()))

	return snap, nil
}

func (s *Service) buildTrends(c *model.Corpus) map[string]trend.Analysis {
	start := time.Now()
	trends := make(map[string]trend.Analysis, len(c.Skills))
	for name, sk := range c.Skills {
		trends[name] = s.analyzer.Analyze(sk.YearlyCounts)
	}
	metrics.RecordEngineDuration("trends", float64(time.Since(start).Milliseconds()))
	return trends
}

func (s *Service) buildGenome(c *model.Corpus, trends map[string]trend.Analysis, method cluster.Method) (types.Genome, error) {
	start := time.Now()

	features := make([]cluster.Features, 0, len(c.Skills))
	for name, sk := range c.Skills {
		features = append(features, cluster.Features{
			Name:       name,
			Popularity: sk.Popularity(),
			Growth:     trends[name].GrowthRate,
			Category:   sk.Category,
		})
	}

	result, err := s.clusterer.Run(features, method)
	if err != nil {
		return types.Genome{}, err
	}

	genome := types.Genome{
		Method:  method.String(),
		Nodes:   make([]types.GenomeNode, 0, len(c.Skills)),
		Links:   make([]types.GenomeLink, 0, len(c.CoOccurrence)),
		Quality: result.Quality,
	}
	for _, name := range c.SkillNames() {
		sk := c.Skills[name]
		coord := result.Coordinates[name]
		genome.Nodes = append(genome.Nodes, types.GenomeNode{
			Name:       name,
			Category:   sk.Category,
			Cluster:    result.Assignments[name],
			X:          coord[0],
			Y:          coord[1],
			Popularity: sk.Popularity(),
			Growth:     trends[name].GrowthRate,
		})
	}

	pairs := make([][2]string, 0, len(c.CoOccurrence))
	for pair := range c.CoOccurrence {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	for _, pair := range pairs {
		genome.Links = append(genome.Links, types.GenomeLink{
			Source: pair[0],
			Target: pair[1],
			Weight: c.CoOccurrence[pair],
		})
	}

	metrics.RecordEngineDuration("clustering", float64(time.Since(start).Milliseconds()))
	return genome, nil
}

func (s *Service) buildEvolution(c *model.Corpus, trends map[string]trend.Analysis) types.Evolution {
	start := time.Now()

	ev := types.Evolution{
		Timeline:       make([]types.TimelinePoint, 0, len(c.Years)),
		CategoryTrends: make(map[string]float64),
		Forecasts:      make([]types.Forecast, 0, len(c.Skills)),
	}

	categorySeries := make(map[string]map[int]float64)
	for _, year := range c.Years {
		total := 0.0
		for _, sk := range c.Skills {
			v := sk.YearlyCounts[year]
			total += v
			series, ok := categorySeries[sk.Category]
			if !ok {
				series = make(map[int]float64)
				categorySeries[sk.Category] = series
			}
			series[year] += v
		}
		ev.Timeline = append(ev.Timeline, types.TimelinePoint{Year: year, Total: total})
	}

	for category, series := range categorySeries {
		// A single observed year leaves the growth undefined; such
		// categories are omitted so the bundle stays encodable.
		if g := trend.GrowthRate(series); !math.IsNaN(g) && !math.IsInf(g, 0) {
			ev.CategoryTrends[category] = g
		}
	}

	for _, name := range c.SkillNames() {
		a := trends[name]
		f := types.Forecast{
			Skill:      name,
			Trend:      a.Trend,
			GrowthRate: a.GrowthRate,
			Confidence: a.Confidence,
			Points:     forecastPoints(a.Forecast),
		}
		if a.Err != nil {
			f.Error = a.Err.Error()
		}
		ev.Forecasts = append(ev.Forecasts, f)
	}

	metrics.RecordEngineDuration("evolution", float64(time.Since(start).Milliseconds()))
	return ev
}

func (s *Service) buildNetwork(c *model.Corpus) types.Network {
	start := time.Now()

	g := graph.Build(c.CoOccurrence)
	for _, name := range c.SkillNames() {
		g.AddNode(name)
	}

	network := types.Network{
		HubSkills:             rankedSkills(graph.RankByScore(g.Centrality(), topRanked)),
		BridgeSkills:          rankedSkills(graph.RankByScore(g.Betweenness(), topRanked)),
		Communities:           g.Communities(),
		Density:               g.Density(),
		ClusteringCoefficient: g.ClusteringCoefficient(),
	}

	metrics.RecordEngineDuration("network", float64(time.Since(start).Milliseconds()))
	return network
}

func forecastPoints(pts []trend.Point) []types.ForecastPoint {
	out := make([]types.ForecastPoint, len(pts))
	for i, p := range pts {
		out[i] = types.ForecastPoint{Year: p.Year, Value: p.Value}
	}
	return out
}

func rankedSkills(ranked []graph.Ranked) []types.RankedSkill {
	out := make([]types.RankedSkill, len(ranked))
	for i, r := range ranked {
		out[i] = types.RankedSkill{Name: r.Name, Score: r.Score}
	}
	return out
}
