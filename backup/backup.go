/*
Package backup exports and imports the ledger's persisted state as a
single JSON bundle.

PURPOSE:
  The bundle carries the parsed value of every ledger storage key, so a
  user can move their history between devices or keep a file backup.
  Import writes the entries back under the same keys; the caller then
  reloads the ledger from the store.

BUNDLE SHAPE:
  {
    "appName":    "Gastei",
    "appVersion": "1.2.0",
    "exportDate": "2026-09-01T10:00:00Z",
    "data":       { "gastei:transactions": [...], "gastei:accountBalance": 1000, ... }
  }

  Values are embedded as raw JSON (the stored form is already JSON), so
  export/import round-trips byte-for-byte. Import rejects bundles that
  carry keys outside the known set.

SEE ALSO:
  - ledger/ledger.go: StorageKeys() defines the key set
*/
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/suxen/gastei/ledger"
	"github.com/suxen/gastei/ledger/kv"
)

const (
	AppName    = "Gastei"
	AppVersion = "1.2.0"
)

// Bundle is the export format.
type Bundle struct {
	AppName    string                     `json:"appName"`
	AppVersion string                     `json:"appVersion"`
	ExportDate time.Time                  `json:"exportDate"`
	Data       map[string]json.RawMessage `json:"data"`
}

// Export reads every ledger storage key present in the store and packs
// it into a bundle. Absent keys are simply omitted.
func Export(ctx context.Context, store kv.Store) (Bundle, error) {
	values, err := store.MultiGet(ctx, ledger.StorageKeys())
	if err != nil {
		return Bundle{}, err
	}

	data := make(map[string]json.RawMessage, len(values))
	for key, raw := range values {
		if !json.Valid([]byte(raw)) {
			return Bundle{}, fmt.Errorf("stored value for %s is not valid JSON", key)
		}
		data[key] = json.RawMessage(raw)
	}

	return Bundle{
		AppName:    AppName,
		AppVersion: AppVersion,
		ExportDate: time.Now().UTC(),
		Data:       data,
	}, nil
}

// Import writes the bundle's entries back under their keys in one
// batch. Bundles carrying unknown keys are rejected before any write.
func Import(ctx context.Context, store kv.Store, b Bundle) error {
	known := make(map[string]bool, len(ledger.StorageKeys()))
	for _, k := range ledger.StorageKeys() {
		known[k] = true
	}

	pairs := make(map[string]string, len(b.Data))
	for key, raw := range b.Data {
		if !known[key] {
			return fmt.Errorf("bundle contains unknown key %q", key)
		}
		if !json.Valid(raw) {
			return fmt.Errorf("bundle value for %s is not valid JSON", key)
		}
		pairs[key] = string(raw)
	}
	if len(pairs) == 0 {
		return fmt.Errorf("bundle contains no data")
	}
	return store.MultiSet(ctx, pairs)
}
