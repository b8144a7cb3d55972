package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"
	"github.com/latchbio-nfcore/rnadnavar/logx"
	"github.com/latchbio-nfcore/rnadnavar/models"
	"github.com/latchbio-nfcore/rnadnavar/models/indexes"
	"github.com/latchbio-nfcore/rnadnavar/services/runs"
	"github.com/mitchellh/mapstructure"
)

const defaultRunsPageSize = 25

type (
	RunsRepository struct {
		Es7Client *elasticsearch.Client
		Index     string
	}
)

func NewRunsRepository(es *elasticsearch.Client, cfg *models.Config) *RunsRepository {
	return &RunsRepository{
		Es7Client: es,
		Index:     cfg.Elasticsearch.RunsIndex,
	}
}

// EnsureRunsIndex creates the runs index with its mapping when missing.
func (r *RunsRepository) EnsureRunsIndex(ctx context.Context) error {
	es := r.Es7Client

	exists, err := es.Indices.Exists([]string{r.Index}, es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return err
	}
	exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return nil
	}

	mapping, err := json.Marshal(map[string]interface{}{"mappings": indexes.RUN_RECORD_MAPPING})
	if err != nil {
		return err
	}

	res, err := es.Indices.Create(r.Index,
		es.Indices.Create.WithContext(ctx),
		es.Indices.Create.WithBody(bytes.NewReader(mapping)),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("creating index %s: %s", r.Index, res.Status())
	}
	logx.Log.Info().Str("index", r.Index).Msg("created runs index")
	return nil
}

func (r *RunsRepository) SaveRun(ctx context.Context, record indexes.RunRecord) error {
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      r.Index,
		DocumentID: record.Id,
		Body:       bytes.NewReader(b),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, r.Es7Client)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("indexing run %s: %s", record.Id, res.Status())
	}
	return nil
}

func (r *RunsRepository) GetRun(ctx context.Context, id string) (*indexes.RunRecord, error) {
	es := r.Es7Client

	res, err := es.Get(r.Index, id, es.Get.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, runs.ErrRunNotFound
	}
	if res.IsError() {
		return nil, fmt.Errorf("getting run %s: %s", id, res.Status())
	}

	var doc map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, err
	}

	var record indexes.RunRecord
	if err := mapstructure.Decode(doc["_source"], &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// GetRuns returns the most recently updated runs first.
func (r *RunsRepository) GetRuns(ctx context.Context, size int) ([]indexes.RunRecord, error) {
	es := r.Es7Client
	if size <= 0 {
		size = defaultRunsPageSize
	}

	var buf bytes.Buffer
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"match_all": map[string]interface{}{},
		},
		"sort": []map[string]interface{}{
			{"updated_at": map[string]interface{}{"order": "desc"}},
		},
	}
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, err
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(r.Index),
		es.Search.WithBody(&buf),
		es.Search.WithSize(size),
		es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	// no run was ever recorded
	if res.StatusCode == http.StatusNotFound {
		return []indexes.RunRecord{}, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("searching runs: %s", res.Status())
	}

	var result map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, err
	}

	// gather data from "hits"
	hits, _ := result["hits"].(map[string]interface{})
	allDocHits := []map[string]interface{}{}
	if err := mapstructure.Decode(hits["hits"], &allDocHits); err != nil {
		return nil, err
	}

	records := make([]indexes.RunRecord, 0, len(allDocHits))
	for _, hit := range allDocHits {
		var record indexes.RunRecord
		if err := mapstructure.Decode(hit["_source"], &record); err != nil {
			logx.Log.Warn().Err(err).Interface("id", hit["_id"]).Msg("skipping malformed run record")
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *RunsRepository) DeleteRunsUpdatedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	es := r.Es7Client

	query := fmt.Sprintf(`{"query":{"range":{"updated_at":{"lt":%q}}}}`, cutoff.UTC().Format(time.RFC3339))

	res, err := es.DeleteByQuery(
		[]string{r.Index},
		strings.NewReader(query),
		es.DeleteByQuery.WithContext(ctx),
		es.DeleteByQuery.WithRefresh(true),
	)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return 0, nil
	}
	if res.IsError() {
		return 0, fmt.Errorf("deleting runs: %s", res.Status())
	}

	var result struct {
		Deleted int `json:"deleted"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return 0, err
	}
	return result.Deleted, nil
}
