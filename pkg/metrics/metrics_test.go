package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveKey(t *testing.T) {
	m := New()
	m.ObserveKey(KindNode, time.Now())
	m.ObserveKey(KindNode, time.Now())
	m.ObserveKey(KindValidator, time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.KeysGenerated.WithLabelValues(KindNode)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.KeysGenerated.WithLabelValues(KindValidator)))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveKey(KindValidator, time.Now())
	m.FilesWritten.Add(2)
	m.EntropyReseeds.Set(3)

	path := filepath.Join(t.TempDir(), "keygen.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `keygen_keys_generated_total{kind="validator"} 1`)
	assert.Contains(t, out, "keygen_files_written_total 2")
	assert.Contains(t, out, "keygen_entropy_reseeds 3")
	assert.True(t, strings.Contains(out, "keygen_last_run_timestamp_seconds"))
}

func TestRegistriesAreIndependent(t *testing.T) {
	a := New()
	b := New()
	a.FilesWritten.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.FilesWritten))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.FilesWritten))
}
