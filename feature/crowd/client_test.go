package crowd_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/reconcile"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/feature/crowd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, cfg crowd.Config, handler http.HandlerFunc) *crowd.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg.BaseURL = server.URL
	return crowd.NewClient(cfg, server.Client(), nil)
}

func TestLookupSizes(t *testing.T) {
	client := newClient(t, crowd.Config{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/apps", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			IDs []int `json:"ids"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []int{10, 20, 30}, body.IDs)

		w.Write([]byte(`[{"AppId":10,"Size":1073741824,"Name":"A"},{"AppId":30,"Size":5,"Name":"C"}]`))
	})

	records, err := client.LookupSizes(context.Background(), []int{10, 20, 30})
	require.NoError(t, err)

	assert.Equal(t, []reconcile.CrowdSizeRecord{
		{AppID: 10, Size: 1073741824, Name: "A"},
		{AppID: 30, Size: 5, Name: "C"},
	}, records)
}

func TestLookupSizes_InvalidResponse(t *testing.T) {
	t.Run("NotJSON", func(t *testing.T) {
		client := newClient(t, crowd.Config{}, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"message": "Internal server error"`))
		})

		_, err := client.LookupSizes(context.Background(), []int{1})
		assert.ErrorIs(t, err, crowd.ErrInvalidResponse)
	})

	t.Run("ServerError", func(t *testing.T) {
		client := newClient(t, crowd.Config{}, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.LookupSizes(context.Background(), []int{1})
		assert.ErrorIs(t, err, crowd.ErrInvalidResponse)
		assert.Contains(t, err.Error(), "502")
	})
}

func TestLookupAllThroughClient(t *testing.T) {
	batches := 0
	client := newClient(t, crowd.Config{}, func(w http.ResponseWriter, r *http.Request) {
		batches++
		var body struct {
			IDs []int `json:"ids"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.LessOrEqual(t, len(body.IDs), reconcile.BatchSize)

		records := make([]reconcile.CrowdSizeRecord, 0, len(body.IDs))
		for _, id := range body.IDs {
			records = append(records, reconcile.CrowdSizeRecord{AppID: id, Size: int64(id)})
		}
		json.NewEncoder(w).Encode(records)
	})

	appids := make([]int, 250)
	for i := range appids {
		appids[i] = i + 1
	}

	index, err := reconcile.LookupAll(context.Background(), client, appids, reconcile.BatchSize)
	require.NoError(t, err)

	assert.Equal(t, 3, batches)
	assert.Len(t, index, 250)
	assert.Equal(t, int64(250), index[250].Size)
}

func TestGetSize(t *testing.T) {
	client := newClient(t, crowd.Config{}, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/app/10":
			w.Write([]byte(`{"AppId":10,"Size":2048,"Name":"A"}`))
		case "/app/11":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	record, err := client.GetSize(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, &reconcile.CrowdSizeRecord{AppID: 10, Size: 2048, Name: "A"}, record)

	record, err = client.GetSize(context.Background(), 11)
	assert.NoError(t, err)
	assert.Nil(t, record)

	_, err = client.GetSize(context.Background(), 12)
	assert.ErrorIs(t, err, crowd.ErrInvalidResponse)
}

func TestWrites(t *testing.T) {
	type call struct {
		method, path, size, name string
	}
	var calls []call
	client := newClient(t, crowd.Config{}, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path, r.URL.Query().Get("size"), r.URL.Query().Get("name")})
		if r.URL.Path == "/app/3" {
			w.WriteHeader(http.StatusForbidden)
		}
	})

	require.NoError(t, client.AddSize(context.Background(), 1, 2147483648, "Half-Life & Co"))
	require.NoError(t, client.UpdateSize(context.Background(), 2, 99, "B"))

	err := client.AddSize(context.Background(), 3, 1, "C")
	assert.ErrorIs(t, err, crowd.ErrWriteRejected)

	assert.Equal(t, []call{
		{http.MethodPost, "/app/1", "2147483648", "Half-Life & Co"},
		{http.MethodPut, "/app/2", "99", "B"},
		{http.MethodPost, "/app/3", "1", "C"},
	}, calls)
}

func TestRateLimit(t *testing.T) {
	client := newClient(t, crowd.Config{RequestsPerSecond: 20}, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.LookupSizes(context.Background(), []int{i})
		require.NoError(t, err)
	}

	// burst of one: the second and third requests wait 50ms each
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestRateLimit_ContextCancelled(t *testing.T) {
	client := newClient(t, crowd.Config{RequestsPerSecond: 0.001}, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := client.LookupSizes(context.Background(), []int{1})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.LookupSizes(ctx, []int{2})
	assert.Error(t, err)
}
