// Package pipeline sequences the aggregation run: per-source
// collection, search supplement, dedup, date filter, classification
// and truncation.
package pipeline

import (
	"time"

	"github.com/openclaw/ainews/internal/article"
	"github.com/openclaw/ainews/internal/classify"
	"github.com/openclaw/ainews/internal/config"
	"github.com/openclaw/ainews/internal/dates"
	"github.com/openclaw/ainews/internal/dedup"
	"github.com/openclaw/ainews/internal/extract"
	"github.com/openclaw/ainews/internal/fetch"
	"github.com/openclaw/ainews/internal/logger"
	"github.com/openclaw/ainews/internal/metrics"
	"github.com/openclaw/ainews/internal/rss"
)

// Search queries are a supplement, not a main source; cap them.
const maxSearchQueries = 3

// boundSource is a source with its extraction strategy resolved once,
// at load time.
type boundSource struct {
	config.Source
	strategy extract.StrategyFunc
}

// Pipeline runs one aggregation pass over all configured sources and
// queries. Everything is sequential, every network failure degrades to
// "fewer candidates", and no state survives the run.
type Pipeline struct {
	cfg        *config.Config
	fetcher    *fetch.Client
	extractor  *extract.Extractor
	classifier *classify.Classifier
	sources    []boundSource
}

func New(cfg *config.Config) *Pipeline {
	extractor := extract.New()

	sources := make([]boundSource, 0, len(cfg.Sources))
	for _, src := range cfg.Sources {
		sources = append(sources, boundSource{
			Source:   src,
			strategy: extractor.Resolve(src.URL),
		})
	}

	return &Pipeline{
		cfg:        cfg,
		fetcher:    fetch.NewWithTimeout(cfg.RequestTimeout),
		extractor:  extractor,
		classifier: classify.New(),
		sources:    sources,
	}
}

// Classifier exposes the category table for renderers.
func (p *Pipeline) Classifier() *classify.Classifier {
	return p.classifier
}

// Run executes one full pass and returns the final ordered article
// list. An empty list is a valid degraded outcome, not an error.
func (p *Pipeline) Run() []article.Article {
	started := time.Now()
	defer func() {
		metrics.Global.RecordRun(time.Since(started))
	}()

	var all []article.Article

	for _, src := range p.sources {
		logger.Info("collecting source", "source", src.Name, "url", src.URL)
		items := p.collect(src)
		if len(items) == 0 {
			logger.Warn("source yielded no articles", "source", src.Name)
			metrics.Global.AddSourcesFailed(1)
			continue
		}
		logger.Info("source collected", "source", src.Name, "articles", len(items))
		metrics.Global.AddSourcesFetched(1)
		all = append(all, items...)
	}

	for i, query := range p.cfg.SearchQueries {
		if i >= maxSearchQueries {
			break
		}
		logger.Info("search supplement", "query", query)
		all = append(all, p.extractor.Search(p.fetcher, query)...)
	}
	metrics.Global.AddArticlesExtracted(len(all))

	unique := dedup.Deduplicate(all)
	metrics.Global.AddDuplicatesFiltered(len(all) - len(unique))

	if p.cfg.TodayOnly {
		unique = p.filterToday(unique)
	}

	for i := range unique {
		unique[i].Category = p.classifier.Classify(unique[i].Title, unique[i].Summary)
	}

	if len(unique) > p.cfg.MaxArticles {
		unique = unique[:p.cfg.MaxArticles]
	}

	logger.Info("pipeline finished", "articles", len(unique))
	return unique
}

// collect gathers raw candidates from one source.
func (p *Pipeline) collect(src boundSource) []article.Article {
	if src.Type == "rss" {
		return rss.FetchFeed(src.Source)
	}

	doc, err := p.fetcher.Document(src.URL)
	if err != nil {
		logger.Warn("source fetch failed", "source", src.Name, "error", err)
		return nil
	}
	return src.strategy(doc, src.URL, src.Name)
}

// filterToday keeps only articles published on the current local
// calendar date, enriching missing dates from the article pages. An
// article whose date cannot be determined is dropped.
func (p *Pipeline) filterToday(items []article.Article) []article.Article {
	kept := make([]article.Article, 0, len(items))
	for _, a := range items {
		t, ok := dates.Enrich(p.fetcher, &a)
		if !ok || !dates.IsToday(t) {
			continue
		}
		kept = append(kept, a)
	}
	metrics.Global.AddDroppedByDate(len(items) - len(kept))
	logger.Info("same-day filter applied", "kept", len(kept), "total", len(items))
	return kept
}
