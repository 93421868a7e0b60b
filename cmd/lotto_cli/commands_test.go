package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHistoryCSV(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("1st lotto history\n")
	b.WriteString("n1,n2,n3,n4,n5,n6,bonus\n")
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&b, "%d,%d,%d,%d,%d,%d,%d\n", i, i+5, i+10, i+15, i+20, i+25, i+30)
	}
	path := filepath.Join(t.TempDir(), "draws.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerateCommand(t *testing.T) {
	path := writeHistoryCSV(t)

	out, _, err := run("generate", "--file", path, "--games", "3", "--fixed", "7,14", "--seed", "7")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	for i, prefix := range []string{"A ", "B ", "C "} {
		assert.True(t, strings.HasPrefix(lines[i], prefix), lines[i])
		assert.Len(t, strings.Fields(lines[i]), 7)
	}
	assert.Contains(t, out, "fixed:     7 14")
	assert.Contains(t, out, "history:  10 first-prize combinations")

	// 相同種子得到相同結果
	again, _, err := run("generate", "--file", path, "--games", "3", "--fixed", "7,14", "--seed", "7")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestGenerateCommand_Errors(t *testing.T) {
	path := writeHistoryCSV(t)

	_, _, err := run("generate", "--file", path, "--games", "11")
	assert.Error(t, err)

	_, _, err = run("generate", "--file", path, "--fixed", "1,2,3,4,5,6")
	assert.Error(t, err)

	_, _, err = run("generate", "--file", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestAnalyzeCommand(t *testing.T) {
	out, _, err := run("analyze", "--file", writeHistoryCSV(t))
	require.NoError(t, err)

	assert.Contains(t, out, "draws: 10")
	assert.Contains(t, out, "rank  number  count  weight")
	assert.Contains(t, out, "dropped:")
}

func TestFetchCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		round := r.URL.Query().Get("drwNo")
		w.Header().Set("Content-Type", "application/json")
		if round == "3" {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"returnValue": "fail"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"returnValue": "success",
			"drwNo":       map[string]int{"1": 1, "2": 2}[round],
			"drwNoDate":   "2002-12-07",
			"drwtNo1":     10, "drwtNo2": 23, "drwtNo3": 29, "drwtNo4": 33, "drwtNo5": 37, "drwtNo6": 40,
			"bnusNo": 16,
		})
	}))
	defer server.Close()

	out, _, err := run("fetch", "--from", "1", "--max", "5", "--base-url", server.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "fetched 2 rounds from 1, stopped at 3")
	assert.Contains(t, out, "2002-12-07")
}

func TestFetchCommand_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	out, _, err := run("fetch", "--from", "5", "--base-url", server.URL)
	assert.Error(t, err)
	assert.Contains(t, out, "fetched 0 rounds from 5")
	assert.Contains(t, out, "error:")
}
