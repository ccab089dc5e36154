package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kmeanspp/blobstore"
)

const (
	tableA = "1,0\n2,0\n3,1\n4,20\n5,20\n6,21\n7,99\n"
	tableB = "6,20\n5,21\n4,20\n3,0\n2,1\n1,0\n8,50\n"
)

func testStore() *blobstore.MemoryStore {
	store := blobstore.NewMemoryStore()
	store.Put("a.csv", []byte(tableA))
	store.Put("b.csv", []byte(tableB))
	store.Put("other.csv", []byte("100,1\n101,2\n"))
	return store
}

func execute(t *testing.T, store blobstore.BlobStore, args ...string) (string, error) {
	t.Helper()

	a := &app{
		flags: defaultConfig(),
		openStore: func(context.Context, config) (blobstore.BlobStore, error) {
			return store, nil
		},
	}
	cmd := a.command()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseArgs(t *testing.T) {
	t.Run("without iter", func(t *testing.T) {
		in := parseArgs([]string{"3", "0.01", "a.csv", "b.csv"})

		assert.Equal(t, 3, in.k)
		assert.True(t, in.kOK)
		assert.Equal(t, 300, in.maxIter)
		assert.True(t, in.maxIterOK)
		assert.Equal(t, 0.01, in.epsilon)
		assert.True(t, in.epsilonOK)
		assert.Equal(t, "a.csv", in.fileA)
		assert.Equal(t, "b.csv", in.fileB)
	})

	t.Run("with iter", func(t *testing.T) {
		in := parseArgs([]string{"3", "100", "0", "a.csv", "b.csv"})

		assert.Equal(t, 100, in.maxIter)
		assert.True(t, in.maxIterOK)
		assert.Equal(t, 0.0, in.epsilon)
		assert.Equal(t, "a.csv", in.fileA)
		assert.Equal(t, "b.csv", in.fileB)
	})

	t.Run("non-numeric", func(t *testing.T) {
		in := parseArgs([]string{"three", "x", "eps", "a.csv", "b.csv"})

		assert.False(t, in.kOK)
		assert.False(t, in.maxIterOK)
		assert.False(t, in.epsilonOK)
	})
}

func TestInvocation_Diagnostics(t *testing.T) {
	tests := []struct {
		name string
		args []string
		n    int
		want []string
	}{
		{"valid", []string{"2", "0.1", "a", "b"}, 6, nil},
		{"k is n-1", []string{"5", "0.1", "a", "b"}, 6, []string{MsgInvalidK}},
		{"k too small", []string{"1", "0.1", "a", "b"}, 6, []string{MsgInvalidK}},
		{"iter too large", []string{"2", "1000", "0.1", "a", "b"}, 6, []string{MsgInvalidMaxIter}},
		{"negative epsilon", []string{"2", "-1", "a", "b"}, 6, []string{MsgInvalidEpsilon}},
		{"all", []string{"x", "1", "-1", "a", "b"}, 6, []string{MsgInvalidK, MsgInvalidMaxIter, MsgInvalidEpsilon}},
		{"no points", []string{"2", "0.1", "a", "b"}, 0, []string{MsgInvalidK}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseArgs(tt.args).diagnostics(tt.n))
		})
	}
}

func TestRootCmd(t *testing.T) {
	t.Run("clusters joined tables", func(t *testing.T) {
		out, err := execute(t, testStore(), "--distinct", "2", "0.001", "a.csv", "b.csv")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 3)

		ids := strings.Split(lines[0], ",")
		require.Len(t, ids, 2)
		assert.NotEqual(t, ids[0], ids[1])
		for _, id := range ids {
			assert.Contains(t, []string{"1", "2", "3", "4", "5", "6"}, id)
		}

		assert.ElementsMatch(t, []string{"0.3333,0.3333", "20.3333,20.3333"}, lines[1:])
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := execute(t, testStore(), "--seed", "7", "2", "50", "0.001", "a.csv", "b.csv")
		require.NoError(t, err)
		second, err := execute(t, testStore(), "--seed", "7", "--workers", "3", "2", "50", "0.001", "a.csv", "b.csv")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("prints every diagnostic", func(t *testing.T) {
		out, err := execute(t, testStore(), "5", "1000", "-0.5", "a.csv", "b.csv")
		require.NoError(t, err)
		assert.Equal(t, MsgInvalidK+"\n"+MsgInvalidMaxIter+"\n"+MsgInvalidEpsilon+"\n", out)
	})

	t.Run("empty join", func(t *testing.T) {
		out, err := execute(t, testStore(), "2", "0.1", "a.csv", "other.csv")
		require.NoError(t, err)
		assert.Equal(t, MsgInvalidK+"\n", out)
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := execute(t, testStore(), "2", "0.1", "a.csv", "missing.csv")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("wrong argument count", func(t *testing.T) {
		_, err := execute(t, testStore(), "2", "a.csv", "b.csv")
		assert.Error(t, err)
	})

	t.Run("unknown weighting", func(t *testing.T) {
		_, err := execute(t, testStore(), "--weighting", "cubic", "2", "0.1", "a.csv", "b.csv")
		assert.Error(t, err)
	})

	t.Run("memory limit", func(t *testing.T) {
		_, err := execute(t, testStore(), "--memory-limit", "16", "2", "0.1", "a.csv", "b.csv")
		assert.Error(t, err)
	})
}

func TestRootCmd_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kmeanspp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weighting: cubic\nseed: 3\nlog_level: error\n"), 0o600))

	t.Run("file values apply", func(t *testing.T) {
		_, err := execute(t, testStore(), "--config", path, "2", "0.1", "a.csv", "b.csv")
		assert.ErrorContains(t, err, "cubic")
	})

	t.Run("flags override file", func(t *testing.T) {
		_, err := execute(t, testStore(), "--config", path, "--weighting", "squared", "2", "0.1", "a.csv", "b.csv")
		assert.NoError(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, testStore(), "--config", filepath.Join(dir, "nope.yaml"), "2", "0.1", "a.csv", "b.csv")
		assert.Error(t, err)
	})
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	store, err := openStore(ctx, config{Store: "local"})
	require.NoError(t, err)
	assert.IsType(t, &blobstore.LocalStore{}, store)

	_, err = openStore(ctx, config{Store: "s3"})
	assert.ErrorIs(t, err, errMissingBucket)

	_, err = openStore(ctx, config{Store: "minio"})
	assert.ErrorIs(t, err, errMissingBucket)

	_, err = openStore(ctx, config{Store: "ftp"})
	assert.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	assert.Equal(t, "1.0000,-2.5000,0.3333", formatVector([]float64{1, -2.5, 1.0 / 3}))
}
