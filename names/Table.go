/*
Copyright 2011-2025 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package names persists the mapping from sequence id (the ssa package's
// seqID: a sentinel row's sorted rank) to the record's original name and
// length, addressable during search/align output without reconstructing
// names from the index itself.
package names

import (
	"encoding/binary"
	"fmt"
	"io"

	"modernc.org/kv"
)

// ByID is a kv.Options.Compare function ordering keys by the sequence id
// they encode, in the same spirit as kortschak-ins's
// store.GroupByQueryOrderSubjectLeft: decode both keys to their typed form
// before comparing rather than relying on byte-order coincidence.
func ByID(x, y []byte) int {
	ix := decodeKey(x)
	iy := decodeKey(y)
	switch {
	case ix < iy:
		return -1
	case ix > iy:
		return 1
	default:
		return 0
	}
}

func encodeKey(id uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], id)
	return b[:]
}

func decodeKey(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}

// Record is one entry of the table: the name and base length (sentinel
// excluded) of sequence id SeqID.
type Record struct {
	SeqID  uint64
	Name   string
	Length int
}

// Table wraps a modernc.org/kv database keyed by sequence id.
type Table struct {
	db *kv.DB
}

// Create makes a new, empty table at path.
func Create(path string) (*Table, error) {
	db, err := kv.Create(path, &kv.Options{Compare: ByID})
	if err != nil {
		return nil, fmt.Errorf("names: create %s: %w", path, err)
	}
	return &Table{db: db}, nil
}

// Open reopens an existing table at path.
func Open(path string) (*Table, error) {
	db, err := kv.Open(path, &kv.Options{Compare: ByID})
	if err != nil {
		return nil, fmt.Errorf("names: open %s: %w", path, err)
	}
	return &Table{db: db}, nil
}

// Close releases the underlying database file.
func (t *Table) Close() error {
	return t.db.Close()
}

// PutAll writes every record in one transaction, the batched-commit shape
// kortschak-ins's runBlastTabular uses around kv.Set calls.
func (t *Table) PutAll(records []Record) error {
	if err := t.db.BeginTransaction(); err != nil {
		return err
	}

	for _, r := range records {
		val := marshalValue(r.Name, r.Length)
		if err := t.db.Set(encodeKey(r.SeqID), val); err != nil {
			_ = t.db.Rollback()
			return err
		}
	}

	return t.db.Commit()
}

// Lookup returns the name and length recorded for id, ok false if absent.
func (t *Table) Lookup(id uint64) (name string, length int, ok bool, err error) {
	val, err := t.db.Get(nil, encodeKey(id))
	if err != nil {
		return "", 0, false, err
	}
	if val == nil {
		return "", 0, false, nil
	}
	name, length = unmarshalValue(val)
	return name, length, true, nil
}

// All iterates every record in ascending sequence id order.
func (t *Table) All() ([]Record, error) {
	it, err := t.db.SeekFirst()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []Record
	for {
		k, v, nerr := it.Next()
		if nerr == io.EOF {
			break
		}
		if nerr != nil {
			return out, nerr
		}
		name, length := unmarshalValue(v)
		out = append(out, Record{SeqID: decodeKey(k), Name: name, Length: length})
	}
	return out, nil
}

func marshalValue(name string, length int) []byte {
	buf := make([]byte, 8+len(name))
	binary.BigEndian.PutUint64(buf[:8], uint64(length))
	copy(buf[8:], name)
	return buf
}

func unmarshalValue(v []byte) (name string, length int) {
	length = int(binary.BigEndian.Uint64(v[:8]))
	name = string(v[8:])
	return name, length
}
