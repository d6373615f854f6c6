package wordfreq

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestExtractWordlistOrderAndLength(t *testing.T) {
	data := encodeBuckets(t, [][]string{
		{"hello", "a", "go-1", "Stare"},
		{"world", "go", "crane"},
	})
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/large_en.msgpack.gz": gzipBytes(t, data),
	})

	words, err := ExtractWordlist(wheelPath, "en", "large", Options{Limit: 10, Length: 5})
	if err != nil {
		t.Fatalf("ExtractWordlist failed: %v", err)
	}
	expected := []string{"hello", "stare", "world", "crane"}
	if !reflect.DeepEqual(words, expected) {
		t.Fatalf("expected %v, got %v", expected, words)
	}
}

func TestExtractWordlistLimit(t *testing.T) {
	data := encodeBuckets(t, [][]string{
		{"hello", "world", "again"},
		{"more", "words"},
	})
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/small_en.msgpack": data,
	})

	words, err := ExtractWordlist(wheelPath, "en", "small", Options{Limit: 2})
	if err != nil {
		t.Fatalf("ExtractWordlist failed: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
}

func TestExtractWordlistMissingLanguage(t *testing.T) {
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/large_en.msgpack": encodeBuckets(t, [][]string{{"hello"}}),
	})
	if _, err := ExtractWordlist(wheelPath, "de", "large", Options{Limit: 5}); err == nil {
		t.Fatalf("expected error for missing language")
	}
}

func TestListLanguageTypes(t *testing.T) {
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/large_en.msgpack.gz": nil,
		"wordfreq/data/small_en.msgpack.gz": nil,
		"wordfreq/data/small_de.msgpack.gz": nil,
		"wordfreq/__init__.py":              nil,
	})
	types, err := ListLanguageTypes(wheelPath)
	if err != nil {
		t.Fatalf("ListLanguageTypes: %v", err)
	}
	if got := LanguagesFromTypes(types); !reflect.DeepEqual(got, []string{"de", "en"}) {
		t.Fatalf("unexpected languages: %v", got)
	}
	if got, ok := SelectType(types["de"], "large"); !ok || got != "small" {
		t.Fatalf("expected fallback to small, got %q %v", got, ok)
	}
	if got, ok := SelectType(types["en"], "large"); !ok || got != "large" {
		t.Fatalf("expected large, got %q %v", got, ok)
	}
}

func encodeBuckets(t *testing.T, buckets [][]string) []byte {
	t.Helper()
	payload := []interface{}{map[string]interface{}{"format": "cB", "version": 1}}
	for _, b := range buckets {
		payload = append(payload, b)
	}
	data, err := msgpack.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal buckets: %v", err)
	}
	return data
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func writeTestWheel(t *testing.T, files map[string][]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wordfreq.whl")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create wheel: %v", err)
	}
	zw := zip.NewWriter(file)
	for name, data := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry: %v", err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("write entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("close wheel: %v", err)
	}
	return path
}
