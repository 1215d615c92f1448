package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/philipp01105/sinklog/core"
)

// snapshotVersion is bumped when the record layout changes.
const snapshotVersion = 1

// snapshot is the CBOR form of a registry. Integer keys keep it compact.
type snapshot struct {
	Version int           `cbor:"1,keyasint"`
	Systems []labelRecord `cbor:"2,keyasint,omitempty"`
	Errors  []labelRecord `cbor:"3,keyasint,omitempty"`
}

type labelRecord struct {
	ID   int    `cbor:"1,keyasint"`
	Text string `cbor:"2,keyasint"`
}

var (
	snapEncMode cbor.EncMode
	snapDecMode cbor.DecMode
)

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}
	snapEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthAllowed,
	}
	snapDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot CBOR decoder mode: %v", err))
	}
}

// WriteSnapshot encodes every system and error of reg to w.
func WriteSnapshot(w io.Writer, reg *core.Registry) error {
	s := snapshot{Version: snapshotVersion}
	for _, l := range reg.Systems() {
		s.Systems = append(s.Systems, labelRecord{ID: l.ID, Text: l.Text})
	}
	for _, l := range reg.Errors() {
		s.Errors = append(s.Errors, labelRecord{ID: l.ID, Text: l.Text})
	}
	return snapEncMode.NewEncoder(w).Encode(s)
}

// ReadSnapshot decodes a snapshot from r and merges it into reg. Entries
// already present with the same text are skipped; an id bound to a
// different text is a configuration error.
func ReadSnapshot(r io.Reader, reg *core.Registry) error {
	var s snapshot
	if err := snapDecMode.NewDecoder(r).Decode(&s); err != nil {
		return fmt.Errorf("%w: decode registry snapshot: %v", core.ErrConfiguration, err)
	}
	if s.Version != snapshotVersion {
		return core.Configf("registry_snapshot", "unsupported version %d", s.Version)
	}
	for _, rec := range s.Systems {
		if err := mergeSystem(reg, core.SystemID(rec.ID), rec.Text); err != nil {
			return err
		}
	}
	for _, rec := range s.Errors {
		if err := mergeError(reg, core.ErrorID(rec.ID), rec.Text); err != nil {
			return err
		}
	}
	return nil
}

// SaveSnapshot writes a snapshot of reg to the file at path.
func SaveSnapshot(path string, reg *core.Registry) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteSnapshot(f, reg)
}

// LoadSnapshot merges the snapshot file at path into reg.
func LoadSnapshot(path string, reg *core.Registry) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open registry snapshot: %w", err)
	}
	defer f.Close()
	return ReadSnapshot(f, reg)
}

func mergeSystem(reg *core.Registry, id core.SystemID, name string) error {
	if existing, ok := reg.SystemName(id); ok {
		if existing == strings.TrimSpace(name) {
			return nil
		}
		return core.Configf("systems", "id %d already registered as %q", id, existing)
	}
	_, err := reg.RegisterSystemID(name, id)
	return err
}

func mergeError(reg *core.Registry, id core.ErrorID, description string) error {
	if existing, ok := reg.ErrorDescription(id); ok {
		if existing == strings.TrimSpace(description) {
			return nil
		}
		return core.Configf("errors", "id %d already registered as %q", id, existing)
	}
	_, err := reg.RegisterErrorID(description, id)
	return err
}
