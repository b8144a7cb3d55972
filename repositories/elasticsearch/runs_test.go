package elasticsearch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	rs "github.com/latchbio-nfcore/rnadnavar/models/constants/run-state"
	"github.com/latchbio-nfcore/rnadnavar/models/indexes"
	"github.com/latchbio-nfcore/rnadnavar/services/runs"
	"github.com/latchbio-nfcore/rnadnavar/utils"
	"github.com/latchbio-nfcore/rnadnavar/utils/testconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEs keeps documents of a single index in memory and answers the
// handful of endpoints the runs repository uses.
type fakeEs struct {
	mu          sync.Mutex
	index       string
	indexExists bool
	docs        map[string]map[string]interface{}
	lastQuery   map[string]interface{}
	deleted     int
}

func (f *fakeEs) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(r.URL.Path, "/")
	segments := strings.Split(path, "/")
	body, _ := io.ReadAll(r.Body)

	switch {
	case path == "":
		w.Write([]byte(`{"version": {"number": "7.17.7", "build_flavor": "default"}, "tagline": "You Know, for Search"}`))

	case r.Method == http.MethodHead && path == f.index:
		if !f.indexExists {
			w.WriteHeader(http.StatusNotFound)
		}

	case r.Method == http.MethodPut && path == f.index:
		f.indexExists = true
		w.Write([]byte(`{"acknowledged": true}`))

	case len(segments) == 3 && segments[1] == "_doc" && (r.Method == http.MethodPut || r.Method == http.MethodPost):
		var doc map[string]interface{}
		json.Unmarshal(body, &doc)
		f.docs[segments[2]] = doc
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"result": "created"}`))

	case len(segments) == 3 && segments[1] == "_doc" && r.Method == http.MethodGet:
		doc, ok := f.docs[segments[2]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"found": false}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"_id": segments[2], "found": true, "_source": doc})

	case len(segments) == 2 && segments[1] == "_search":
		if !f.indexExists {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": {"type": "index_not_found_exception"}}`))
			return
		}
		json.Unmarshal(body, &f.lastQuery)
		hits := []map[string]interface{}{}
		for id, doc := range f.docs {
			hits = append(hits, map[string]interface{}{"_id": id, "_source": doc})
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"hits": map[string]interface{}{"total": map[string]interface{}{"value": len(hits)}, "hits": hits},
		})

	case len(segments) == 2 && segments[1] == "_delete_by_query":
		json.Unmarshal(body, &f.lastQuery)
		json.NewEncoder(w).Encode(map[string]interface{}{"deleted": f.deleted})

	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func newTestRepository(t *testing.T, fake *fakeEs) *RunsRepository {
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	cfg := testconfig.InitConfig()
	cfg.Elasticsearch.Url = server.URL
	fake.index = cfg.Elasticsearch.RunsIndex
	if fake.docs == nil {
		fake.docs = map[string]map[string]interface{}{}
	}

	es, err := utils.CreateEsConnection(cfg)
	require.NoError(t, err)
	require.NotNil(t, es)

	return NewRunsRepository(es, cfg)
}

func TestEnsureRunsIndexCreatesMissingIndex(t *testing.T) {
	fake := &fakeEs{}
	repo := newTestRepository(t, fake)

	require.NoError(t, repo.EnsureRunsIndex(context.Background()))
	assert.True(t, fake.indexExists)

	// second call finds the index
	require.NoError(t, repo.EnsureRunsIndex(context.Background()))
}

func TestSaveAndGetRun(t *testing.T) {
	fake := &fakeEs{indexExists: true}
	repo := newTestRepository(t, fake)

	record := indexes.RunRecord{
		Id:           "4b3f8a2e-95b8-4a51-9e2b-3c6f1f3b0d51",
		Pipeline:     "nf_nf_core_rnadnavar",
		StorageClaim: "pvc-1",
		State:        rs.Error,
		CommandLine:  []string{"/root/nextflow", "run", "/nf-workdir/main.nf"},
		ExitCode:     3,
		Message:      "workflow engine exited with status 3",
		CreatedAt:    "2026-10-19T10:00:00Z",
		UpdatedAt:    "2026-10-19T11:00:00Z",
	}
	require.NoError(t, repo.SaveRun(context.Background(), record))

	got, err := repo.GetRun(context.Background(), record.Id)
	require.NoError(t, err)
	assert.Equal(t, record, *got)

	_, err = repo.GetRun(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.True(t, errors.Is(err, runs.ErrRunNotFound))
}

func TestGetRuns(t *testing.T) {
	fake := &fakeEs{indexExists: true}
	repo := newTestRepository(t, fake)

	for _, id := range []string{"a", "b"} {
		require.NoError(t, repo.SaveRun(context.Background(), indexes.RunRecord{Id: id, State: rs.Done}))
	}

	records, err := repo.GetRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, []interface{}{
		map[string]interface{}{"updated_at": map[string]interface{}{"order": "desc"}},
	}, fake.lastQuery["sort"])
}

func TestGetRunsWithoutIndex(t *testing.T) {
	repo := newTestRepository(t, &fakeEs{})

	records, err := repo.GetRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDeleteRunsUpdatedBefore(t *testing.T) {
	fake := &fakeEs{indexExists: true, deleted: 4}
	repo := newTestRepository(t, fake)

	cutoff := time.Date(2026, 9, 19, 4, 0, 0, 0, time.UTC)
	deleted, err := repo.DeleteRunsUpdatedBefore(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, 4, deleted)
	assert.Equal(t, map[string]interface{}{
		"range": map[string]interface{}{
			"updated_at": map[string]interface{}{"lt": "2026-09-19T04:00:00Z"},
		},
	}, fake.lastQuery["query"])
}
