package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/v1/posts", "GET", 200)
	m.RecordRequest("/api/v1/posts", "GET", 200)
	m.RecordError("/api/v1/posts/:id", "GET", "FORBIDDEN")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/api/v1/posts|GET|200"])
	assert.Equal(t, int64(1), snap.Errors["/api/v1/posts/:id|GET|FORBIDDEN"])

	// the snapshot is a copy
	snap.Requests["/api/v1/posts|GET|200"] = 99
	assert.Equal(t, int64(2), m.Snapshot().Requests["/api/v1/posts|GET|200"])
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200)
	m.RecordError("/", "GET", "X")
	assert.Empty(t, m.Snapshot().Requests)
}
