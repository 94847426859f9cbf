package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"go.uber.org/zap"
)

const (
	textField     = "text"
	metadataField = "metadata"
	vectorField   = "embedding"

	// nprobe for the IVF_FLAT index used by the ingestion side.
	searchNProbe = 10
)

// Embedder turns query text into the vector the collections were built with.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// milvusSearcher is the subset of the Milvus client the store uses.
type milvusSearcher interface {
	Search(ctx context.Context, collName string, partitions []string, expr string, outputFields []string, vectors []entity.Vector, vectorField string, metricType entity.MetricType, topK int, sp entity.SearchParam, opts ...client.SearchQueryOptionFunc) ([]client.SearchResult, error)
	Query(ctx context.Context, collName string, partitions []string, expr string, outputFields []string, opts ...client.SearchQueryOptionFunc) (client.ResultSet, error)
}

// MilvusConfig carries the connection and collection settings.
type MilvusConfig struct {
	Address             string `mapstructure:"address"`
	UseCaseCollection   string `mapstructure:"usecase-collection"`
	FrameworkCollection string `mapstructure:"framework-collection"`
}

// Milvus is a Store backed by two Milvus collections: use cases and
// framework docs. Documents carry a text field, a JSON metadata field and an
// embedding; query text is embedded on the fly.
type Milvus struct {
	searcher milvusSearcher
	embedder Embedder
	logger   *zap.Logger
	cfg      MilvusConfig
}

// NewMilvus connects to Milvus and returns the store.
func NewMilvus(ctx context.Context, cfg MilvusConfig, embedder Embedder, logger *zap.Logger) (*Milvus, error) {
	c, err := client.NewClient(ctx, client.Config{Address: cfg.Address})
	if err != nil {
		return nil, fmt.Errorf("connect to milvus at %s: %w", cfg.Address, err)
	}

	return &Milvus{searcher: c, embedder: embedder, logger: logger, cfg: cfg}, nil
}

func (m *Milvus) SearchUseCases(ctx context.Context, query string, n int) ([]Document, error) {
	return m.search(ctx, m.cfg.UseCaseCollection, query, "", n)
}

func (m *Milvus) SearchFrameworkDocs(ctx context.Context, query string, f Filters, n int) ([]Document, error) {
	return m.search(ctx, m.cfg.FrameworkCollection, query, filterExpr(f), n)
}

func (m *Milvus) GetFactsheet(ctx context.Context, framework string) (*Factsheet, error) {
	yes := true
	expr := filterExpr(Filters{Framework: framework, IsFactsheet: &yes})

	facts, err := m.queryFactsheets(ctx, expr)
	if err != nil {
		return nil, err
	}
	if len(facts) == 0 {
		return nil, nil
	}
	return &facts[0], nil
}

func (m *Milvus) ListFactsheets(ctx context.Context) ([]Factsheet, error) {
	yes := true
	return m.queryFactsheets(ctx, filterExpr(Filters{IsFactsheet: &yes}))
}

func (m *Milvus) search(ctx context.Context, collection, query, expr string, n int) ([]Document, error) {
	if n <= 0 {
		return nil, nil
	}

	vec, err := m.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	sp, err := entity.NewIndexIvfFlatSearchParam(searchNProbe)
	if err != nil {
		return nil, fmt.Errorf("create search params: %w", err)
	}

	m.logger.Debug("searching milvus",
		zap.String("collection", collection),
		zap.String("expr", expr),
		zap.Int("n_results", n),
	)

	results, err := m.searcher.Search(
		ctx,
		collection,
		nil,
		expr,
		[]string{textField, metadataField},
		[]entity.Vector{entity.FloatVector(vec)},
		vectorField,
		entity.L2,
		n,
		sp,
	)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", collection, err)
	}

	var docs []Document
	for _, result := range results {
		texts, metas, err := parseColumns(result.Fields)
		if err != nil {
			return nil, fmt.Errorf("parse %s results: %w", collection, err)
		}
		for i := range texts {
			doc := Document{Text: texts[i], Metadata: metas[i]}
			if i < len(result.Scores) {
				distance := float64(result.Scores[i])
				doc.Distance = &distance
			}
			docs = append(docs, doc)
		}
	}

	return docs, nil
}

func (m *Milvus) queryFactsheets(ctx context.Context, expr string) ([]Factsheet, error) {
	rs, err := m.searcher.Query(ctx, m.cfg.FrameworkCollection, nil, expr, []string{textField, metadataField})
	if err != nil {
		return nil, fmt.Errorf("query factsheets: %w", err)
	}

	texts, metas, err := parseColumns(rs)
	if err != nil {
		return nil, fmt.Errorf("parse factsheet results: %w", err)
	}

	facts := make([]Factsheet, 0, len(texts))
	for i := range texts {
		meta, err := DecodeFactsheetMeta(metas[i])
		if err != nil || meta.Framework == "" {
			continue
		}
		facts = append(facts, Factsheet{
			Framework: meta.Framework,
			Text:      texts[i],
			Dims:      meta.DimsMap(),
			URL:       meta.URL,
		})
	}
	return facts, nil
}

func parseColumns(rs client.ResultSet) ([]string, []map[string]any, error) {
	textCol, ok := rs.GetColumn(textField).(*entity.ColumnVarChar)
	if !ok {
		return nil, nil, fmt.Errorf("missing %q column", textField)
	}
	metaCol, ok := rs.GetColumn(metadataField).(*entity.ColumnJSONBytes)
	if !ok {
		return nil, nil, fmt.Errorf("missing %q column", metadataField)
	}

	texts := textCol.Data()
	metas := make([]map[string]any, len(texts))
	for i, raw := range metaCol.Data() {
		if i >= len(texts) {
			break
		}
		meta := map[string]any{}
		// Malformed metadata degrades to an empty map instead of failing
		// the whole search.
		_ = json.Unmarshal(raw, &meta)
		metas[i] = meta
	}

	return texts, metas, nil
}

// filterExpr builds a Milvus boolean expression over the JSON metadata field.
func filterExpr(f Filters) string {
	expr := ""
	if f.Framework != "" {
		expr = fmt.Sprintf(`%s["framework"] == %s`, metadataField, strconv.Quote(f.Framework))
	}
	if f.IsFactsheet != nil {
		clause := fmt.Sprintf(`%s["is_factsheet"] == %t`, metadataField, *f.IsFactsheet)
		if expr != "" {
			expr += " && " + clause
		} else {
			expr = clause
		}
	}
	return expr
}
