// Package wordfreq builds puzzle word lists from the wordfreq dataset.
package wordfreq

import (
	"archive/zip"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/verte-zerg/wordhint/internal/wordlist"
)

const (
	pypiEndpoint = "https://pypi.org/pypi/wordfreq/json"
	dataDir      = "wordfreq/data/"
)

// Wheel describes a cached wordfreq wheel.
type Wheel struct {
	Version  string
	Path     string
	Filename string
	Cached   bool
}

// Options controls word list extraction.
type Options struct {
	// Limit is the maximum number of words returned.
	Limit int
	// Length keeps only words with exactly this many letters when > 0.
	Length int
}

type pypiFile struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Packagetype string `json:"packagetype"`
}

type pypiResponse struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	URLs []pypiFile `json:"urls"`
}

// DownloadLatestWheel fetches the latest wordfreq wheel into cacheDir.
func DownloadLatestWheel(ctx context.Context, cacheDir string) (Wheel, error) {
	if cacheDir == "" {
		return Wheel{}, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return Wheel{}, fmt.Errorf("failed to create cache dir: %w", err)
	}

	var payload pypiResponse
	if err := getJSON(ctx, pypiEndpoint, &payload); err != nil {
		return Wheel{}, err
	}
	if payload.Info.Version == "" {
		return Wheel{}, fmt.Errorf("missing version in pypi response")
	}
	file, ok := pickWheel(payload.URLs)
	if !ok {
		return Wheel{}, fmt.Errorf("no suitable wordfreq wheel found")
	}

	wheel := Wheel{Version: payload.Info.Version, Path: filepath.Join(cacheDir, file.Filename), Filename: file.Filename}
	if _, err := os.Stat(wheel.Path); err == nil {
		wheel.Cached = true
		return wheel, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Wheel{}, fmt.Errorf("failed to stat cached wheel: %w", err)
	}
	if err := download(ctx, file.URL, wheel.Path); err != nil {
		return Wheel{}, err
	}
	return wheel, nil
}

func getJSON(ctx context.Context, url string, out any) error {
	resp, err := httpRequest(ctx, url)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected pypi status: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode pypi response: %w", err)
	}
	return nil
}

func download(ctx context.Context, url, dest string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(dest), "wordfreq-*.whl")
	if err != nil {
		return fmt.Errorf("failed to create temp wheel: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	resp, err := httpRequest(ctx, url)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected wheel status: %s", resp.Status)
	}
	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return fmt.Errorf("failed to download wheel: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp wheel: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to move wheel into cache: %w", err)
	}
	return nil
}

func httpRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func pickWheel(files []pypiFile) (pypiFile, bool) {
	var fallback *pypiFile
	for i, f := range files {
		if f.Packagetype != "bdist_wheel" {
			continue
		}
		if strings.HasSuffix(f.Filename, "py3-none-any.whl") {
			return f, true
		}
		if fallback == nil {
			fallback = &files[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return pypiFile{}, false
}

// ExtractWordlist reads the lang/listType frequency list from the wheel and
// returns the most frequent alphabetic words, most frequent first.
func ExtractWordlist(wheelPath, lang, listType string, opts Options) ([]string, error) {
	if wheelPath == "" {
		return nil, fmt.Errorf("wheel path is required")
	}
	lang = strings.ToLower(lang)
	if lang == "" {
		return nil, fmt.Errorf("unsupported language")
	}
	if listType == "" {
		return nil, fmt.Errorf("word list type is required")
	}
	if opts.Limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}

	buckets, err := readBuckets(wheelPath, lang, listType)
	if err != nil {
		return nil, err
	}

	keep := []wordlist.FilterFunc{isAlpha, wordlist.FilterForLang(lang), wordlist.FilterLength(opts.Length)}
	words := make([]string, 0, opts.Limit)
	seen := make(map[string]struct{})
	for _, bucket := range buckets {
		for _, word := range bucket {
			word = strings.ToLower(word)
			if _, ok := seen[word]; ok {
				continue
			}
			if len(wordlist.Apply([]string{word}, keep...)) == 0 {
				continue
			}
			if opts.Length <= 0 {
				if n := utf8.RuneCountInString(word); n < 2 || n > 20 {
					continue
				}
			}
			seen[word] = struct{}{}
			words = append(words, word)
			if len(words) >= opts.Limit {
				return words, nil
			}
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no words found for %s/%s", lang, listType)
	}
	return words, nil
}

// readBuckets decodes a cB frequency file: a header map followed by one
// array of words per centibel bucket, most frequent bucket first.
func readBuckets(wheelPath, lang, listType string) ([][]string, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	var dataFile *zip.File
	for _, file := range reader.File {
		fileLang, fileType := parseLanguageAndType(file.Name)
		if fileLang == lang && fileType == listType {
			dataFile = file
			break
		}
	}
	if dataFile == nil {
		return nil, fmt.Errorf("no data file found for %s/%s", lang, listType)
	}

	rc, err := dataFile.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	var r io.Reader = rc
	if strings.HasSuffix(dataFile.Name, ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		r = gz
	}
	return decodeBuckets(r)
}

func decodeBuckets(r io.Reader) ([][]string, error) {
	var raw []msgpack.RawMessage
	if err := msgpack.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode wordfreq data: %w", err)
	}
	if len(raw) < 2 {
		return nil, fmt.Errorf("wordfreq data contained no entries")
	}
	var header struct {
		Format  string `msgpack:"format"`
		Version int    `msgpack:"version"`
	}
	if err := msgpack.Unmarshal(raw[0], &header); err != nil {
		return nil, fmt.Errorf("failed to decode wordfreq header: %w", err)
	}
	if header.Format != "cB" {
		return nil, fmt.Errorf("unsupported wordfreq format %q", header.Format)
	}
	buckets := make([][]string, 0, len(raw)-1)
	for i, item := range raw[1:] {
		var words []string
		if err := msgpack.Unmarshal(item, &words); err != nil {
			return nil, fmt.Errorf("failed to decode bucket %d: %w", i, err)
		}
		buckets = append(buckets, words)
	}
	return buckets, nil
}

// LanguageTypes maps language codes to available list types.
type LanguageTypes map[string]map[string]struct{}

// ListLanguageTypes returns available languages and list types in the wheel.
func ListLanguageTypes(wheelPath string) (LanguageTypes, error) {
	if wheelPath == "" {
		return nil, fmt.Errorf("wheel path is required")
	}
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	langs := make(LanguageTypes)
	for _, file := range reader.File {
		lang, listType := parseLanguageAndType(file.Name)
		if lang == "" || listType == "" {
			continue
		}
		if _, ok := langs[lang]; !ok {
			langs[lang] = make(map[string]struct{})
		}
		langs[lang][listType] = struct{}{}
	}
	if len(langs) == 0 {
		return nil, fmt.Errorf("no languages found in wordfreq wheel")
	}
	return langs, nil
}

// LanguagesFromTypes returns sorted language codes from the map.
func LanguagesFromTypes(types LanguageTypes) []string {
	out := make([]string, 0, len(types))
	for lang := range types {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// SelectType picks desired when available, falling back from large to small.
func SelectType(available map[string]struct{}, desired string) (string, bool) {
	if _, ok := available[desired]; ok {
		return desired, true
	}
	if desired == "large" {
		if _, ok := available["small"]; ok {
			return "small", true
		}
	}
	return "", false
}

func parseLanguageAndType(name string) (string, string) {
	name = strings.ToLower(name)
	if !strings.HasPrefix(name, dataDir) {
		return "", ""
	}
	base := strings.TrimPrefix(name, dataDir)
	base = strings.TrimSuffix(base, ".gz")
	if !strings.HasSuffix(base, ".msgpack") {
		return "", ""
	}
	base = strings.TrimSuffix(base, ".msgpack")
	for _, listType := range []string{"large", "small"} {
		if lang, ok := strings.CutPrefix(base, listType+"_"); ok && lang != "" {
			return lang, listType
		}
	}
	return "", ""
}

func isAlpha(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return word != ""
}

// WriteAttribution writes attribution and license files based on the wheel.
func WriteAttribution(wheelPath, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	attrText := strings.Join([]string{
		"Word lists generated from the wordfreq dataset.",
		"Source: https://github.com/rspeer/wordfreq",
		"Data license: Creative Commons Attribution-ShareAlike 4.0 International (CC BY-SA 4.0).",
		"Changes were made: filtered to alphabetic words of the puzzle length and truncated to the requested size.",
		"Please attribute wordfreq when redistributing derived word lists.",
		"",
	}, "\n")
	if err := os.WriteFile(filepath.Join(outDir, "ATTRIBUTION.txt"), []byte(attrText), 0o644); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}

	licenseText, err := readWheelLicense(wheelPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "LICENSE.txt"), licenseText, 0o644); err != nil {
		return fmt.Errorf("failed to write license: %w", err)
	}
	return nil
}

// IsAttributionFile reports whether name is one of the files written by WriteAttribution.
func IsAttributionFile(name string) bool {
	return name == "ATTRIBUTION.txt" || name == "LICENSE.txt"
}

func readWheelLicense(wheelPath string) ([]byte, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel for license: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	for _, file := range reader.File {
		if !strings.Contains(strings.ToLower(file.Name), "license") {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open license: %w", err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read license: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("license file not found in wheel")
}
