package journal

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

func encodeEntries(entries []Entry) ([]byte, error) {
	for _, e := range entries {
		if !finiteEntry(e) {
			return nil, fmt.Errorf("entry %s has non-finite prices", e.ID)
		}
	}
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(entries)
}

// decodeEntries never fails: unreadable state is logged and treated as
// an empty journal.
func decodeEntries(data []byte, key string, log logrus.FieldLogger) []Entry {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var out []Entry
	if err := json.Unmarshal(data, &out); err != nil {
		log.WithError(err).WithField("key", key).Warn("unreadable journal state, starting empty")
		return nil
	}
	return out
}
