// internal/importer/load.go
//
// Source loading for the batch import pipeline.
//
// Context
// -------
// A source is either an http(s) URL or a local file path.  URL payloads
// are not always a bare array; feeds wrap their records under "data",
// "records", or some other top-level key.  unwrapRecords searches those
// shapes in priority order: the payload itself, payload.data,
// payload.records, then the first array-valued top-level property (sorted
// key order, so the choice is deterministic).  No array anywhere is a
// fatal load error; nothing has touched the store yet.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/yanizio/mobilepost/internal/post"
)

// ErrNoSource is the usage error for a missing source argument.
var ErrNoSource = errors.New("no data source provided")

// Load resolves a source into its raw record set.
func Load(ctx context.Context, client *http.Client, source string) ([]post.Input, error) {
	if source == "" {
		return nil, ErrNoSource
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return loadURL(ctx, client, source)
	}
	return loadFile(source)
}

func loadURL(ctx context.Context, client *http.Client, url string) ([]post.Input, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return unwrapRecords(body)
}

func loadFile(path string) ([]post.Input, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read file %s: %w", path, err)
	}
	var records []post.Input
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("file %s is not a valid record array: %w", path, err)
	}
	return records, nil
}

// unwrapRecords finds the record array inside an API payload.
func unwrapRecords(body []byte) ([]post.Input, error) {
	var records []post.Input
	if err := json.Unmarshal(body, &records); err == nil {
		if len(records) == 0 {
			return nil, errors.New("unable to find array of records in API response")
		}
		return records, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("payload is not valid JSON: %w", err)
	}

	isArray := func(raw json.RawMessage) bool {
		t := strings.TrimSpace(string(raw))
		return strings.HasPrefix(t, "[")
	}

	candidates := []string{"data", "records"}
	keys := make([]string, 0, len(wrapper))
	for k := range wrapper {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k != "data" && k != "records" && isArray(wrapper[k]) {
			candidates = append(candidates, k)
		}
	}

	for _, k := range candidates {
		raw, ok := wrapper[k]
		if !ok || !isArray(raw) {
			continue
		}
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("payload property %q is not a record array: %w", k, err)
		}
		if len(records) > 0 {
			return records, nil
		}
	}
	return nil, errors.New("unable to find array of records in API response")
}
