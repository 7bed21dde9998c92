// Package knowledge loads the bilingual question/answer corpus from
// JSON files and projects it into vector-store documents.
package knowledge

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/thunai-ai/thunai/schema"
)

// ErrLoad marks a knowledge-base file that is missing, unreadable or
// not valid JSON. Loading is fatal at startup: callers get no partial
// result.
var ErrLoad = errors.New("knowledge: load failed")

// Load reads each path as JSON and returns the concatenated records.
// A file holding a JSON array contributes all of its elements; a file
// holding a single object contributes one record. No deduplication and
// no schema validation beyond parseable JSON.
func Load(paths []string) ([]schema.QARecord, error) {
	var records []schema.QARecord
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
		}
		batch, err := decode(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
		}
		records = append(records, batch...)
	}
	return records, nil
}

func decode(data []byte) ([]schema.QARecord, error) {
	var list []schema.QARecord
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var single schema.QARecord
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	return []schema.QARecord{single}, nil
}
