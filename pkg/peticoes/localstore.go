package peticoes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// localStore is the degraded-mode sink: a json file per concern in a cache
// directory. Single process, single tenant. It exists so a signing attempt
// during an outage is not lost outright, not as a cache of the real data.
type localStore struct {
	mu  sync.Mutex
	dir string
}

const (
	signaturesFile = "signatures.json"
	linkPageFile   = "link_page.json"
)

func newLocalStore(dir string) *localStore {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = os.TempDir()
		}
		dir = filepath.Join(base, "peticoes")
	}

	return &localStore{dir: dir}
}

func (ls *localStore) saveSignature(sig Signature) (*Signature, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	var existing []Signature
	_ = ls.readJSON(signaturesFile, &existing)

	now := time.Now()
	sig.ID = fmt.Sprintf("local-%d", now.UnixNano())
	sig.CreatedDate = &now
	existing = append(existing, sig)

	if err := ls.writeJSON(signaturesFile, existing); err != nil {
		return nil, err
	}

	return &sig, nil
}

func (ls *localStore) listSignatures() ([]Signature, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	var out []Signature
	if err := ls.readJSON(signaturesFile, &out); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	return out, nil
}

// Link pages are a single-record store: the last write wins.
func (ls *localStore) saveLinkPage(page LinkPage) (*LinkPage, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	now := time.Now()
	if page.ID == "" {
		page.ID = fmt.Sprintf("local-%d", now.UnixNano())
	}
	page.CreatedDate = &now

	if err := ls.writeJSON(linkPageFile, page); err != nil {
		return nil, err
	}

	return &page, nil
}

func (ls *localStore) readJSON(name string, out any) error {
	raw, err := os.ReadFile(filepath.Join(ls.dir, name))
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, out)
}

func (ls *localStore) writeJSON(name string, value any) error {
	if err := os.MkdirAll(ls.dir, 0o755); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	// Write then rename so a crash never leaves a torn file behind.
	tmp := filepath.Join(ls.dir, name+".tmp")
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, filepath.Join(ls.dir, name))
}
