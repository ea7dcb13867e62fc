package gtts

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitChunks(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want []string
	}{
		{"single short chunk", "hello world", 200, []string{"hello world"}},
		{"splits on word boundary", "one two three", 7, []string{"one two", "three"}},
		{"exact fit", "abc def", 7, []string{"abc def"}},
		{"overlong token hard split", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"collapses whitespace", "a   b\n\tc", 10, []string{"a b c"}},
	}

	for _, test := range tests {
		got := splitChunks(test.text, test.max)
		if len(got) != len(test.want) {
			t.Errorf("%s: got %v, want %v", test.name, got, test.want)
			continue
		}
		for i := range got {
			if got[i] != test.want[i] {
				t.Errorf("%s: chunk %d = %q, want %q", test.name, i, got[i], test.want[i])
			}
		}
	}
}

func TestSplitChunksRespectsLimit(t *testing.T) {
	text := strings.Repeat("word ", 200)
	for _, chunk := range splitChunks(text, maxChunkLen) {
		if n := len([]rune(chunk)); n > maxChunkLen {
			t.Errorf("chunk of %d runes exceeds limit", n)
		}
	}
}

func TestSynthesizeWritesConcatenatedAudio(t *testing.T) {
	var queries []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("[" + r.URL.Query().Get("q") + "]"))
	}))
	defer ts.Close()

	client := New()
	client.BaseURL = ts.URL

	outPath := filepath.Join(t.TempDir(), "out.mp3")
	longText := strings.Repeat("alpha beta gamma ", 30)
	if err := client.Synthesize(context.Background(), longText, outPath); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if len(queries) < 2 {
		t.Errorf("expected long text to be chunked, got %d requests", len(queries))
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	var want bytes.Buffer
	for _, q := range queries {
		want.WriteString("[" + q + "]")
	}
	if !bytes.Equal(data, want.Bytes()) {
		t.Error("output is not the concatenation of the chunk responses")
	}
}

func TestSynthesizeRejectsEmptyText(t *testing.T) {
	client := New()
	outPath := filepath.Join(t.TempDir(), "out.mp3")
	if err := client.Synthesize(context.Background(), "   ", outPath); err == nil {
		t.Fatal("expected error for empty text")
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Error("no output file may be created for empty text")
	}
}

func TestSynthesizeRemovesOutputOnHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := New()
	client.BaseURL = ts.URL

	outPath := filepath.Join(t.TempDir(), "out.mp3")
	if err := client.Synthesize(context.Background(), "hello", outPath); err == nil {
		t.Fatal("expected error from failing endpoint")
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Error("partial output must be removed on failure")
	}
}
