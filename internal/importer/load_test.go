// internal/importer/load_test.go
//
// Unit-tests for source loading and payload unwrapping.

package importer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRequiresSource(t *testing.T) {
	_, err := Load(context.Background(), http.DefaultClient, "")
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("err = %v, want ErrNoSource", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")
	body := `[{"nameEN":"A","districtEN":"B","latitude":22.3,"longitude":114.2}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := Load(context.Background(), http.DefaultClient, path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(records) != 1 || *records[0].NameEN != "A" {
		t.Errorf("records = %+v", records)
	}
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"header":{"success":true},"data":[{"nameEN":"A","districtEN":"B"}]}`))
	}))
	defer srv.Close()

	records, err := Load(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(records) != 1 || *records[0].NameEN != "A" {
		t.Errorf("records = %+v", records)
	}
}

func TestLoadURLBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := Load(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestUnwrapRecords(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{"bare array", `[{"nameEN":"A"},{"nameEN":"B"}]`, 2, false},
		{"data property", `{"data":[{"nameEN":"A"}]}`, 1, false},
		{"records property", `{"records":[{"nameEN":"A"}]}`, 1, false},
		{"data wins over records", `{"records":[{"nameEN":"R"},{"nameEN":"R2"}],"data":[{"nameEN":"D"}]}`, 1, false},
		{"first other array key", `{"meta":{"total":1},"items":[{"nameEN":"A"}]}`, 1, false},
		{"empty data skipped for other key", `{"data":[],"items":[{"nameEN":"A"}]}`, 1, false},
		{"no array anywhere", `{"header":{"success":true}}`, 0, true},
		{"empty bare array", `[]`, 0, true},
	}
	for _, tc := range cases {
		records, err := unwrapRecords([]byte(tc.body))
		if tc.wantErr {
			if err == nil {
				t.Errorf("%s: expected error", tc.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
			continue
		}
		if len(records) != tc.want {
			t.Errorf("%s: records = %d, want %d", tc.name, len(records), tc.want)
		}
	}

	records, err := unwrapRecords([]byte(`{"records":[{"nameEN":"R"},{"nameEN":"R2"}],"data":[{"nameEN":"D"}]}`))
	if err != nil {
		t.Fatalf("unwrap error: %v", err)
	}
	if *records[0].NameEN != "D" {
		t.Errorf("nameEN = %q, want data property to win", *records[0].NameEN)
	}
}
