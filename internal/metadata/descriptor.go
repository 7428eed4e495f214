package metadata

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tagurit/levelpack/pkg/levelpack"
)

// FormatTimestamp renders t the way it is stored in meta.ini: RFC 3339 in UTC,
// with fractional seconds only when t has them.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// WriteDescriptor writes the meta.ini projection of m to w.
//
// Name and author are trimmed. An absent description is written as an empty
// value. m is expected to have passed validation.
func WriteDescriptor(w io.Writer, m *levelpack.LevelMetaData) error {
	description := ""
	if d, ok := m.Description.Get(); ok {
		description = strings.TrimSpace(d)
	}

	fields := []DescriptorField{
		{levelpack.DescriptorKeyName, strings.TrimSpace(m.Name)},
		{levelpack.DescriptorKeyDescription, description},
		{levelpack.DescriptorKeyAuthor, strings.TrimSpace(m.Author)},
		{levelpack.DescriptorKeyCreated, FormatTimestamp(m.CreationTime)},
		{levelpack.DescriptorKeyLastUpdated, FormatTimestamp(m.LastUpdated)},
		{levelpack.DescriptorKeyVersion, strconv.Itoa(m.Version)},
	}

	bw := bufio.NewWriter(w)
	for _, f := range fields {
		if _, err := fmt.Fprintf(bw, "%s=%s\n", f.Key, f.Value); err != nil {
			return fmt.Errorf("failed to write descriptor key %s: %w", f.Key, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write descriptor: %w", err)
	}
	return nil
}

// EncodeDescriptor returns the meta.ini projection of m.
func EncodeDescriptor(m *levelpack.LevelMetaData) []byte {
	var buf bytes.Buffer
	_ = WriteDescriptor(&buf, m) // bytes.Buffer writes do not fail
	return buf.Bytes()
}

// DescriptorField is one key=value line of a descriptor.
type DescriptorField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Descriptor is a parsed meta.ini, fields in file order.
type Descriptor struct {
	Fields []DescriptorField
}

// Get returns the value of the first field named key.
func (d *Descriptor) Get(key string) (string, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// ParseDescriptor parses meta.ini content.
// Blank lines are skipped; every other line must contain '='. Values are not unescaped.
func ParseDescriptor(content []byte) (*Descriptor, error) {
	d := &Descriptor{}
	for i, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("malformed descriptor line %d: %q (expected key=value)", i+1, line)
		}
		d.Fields = append(d.Fields, DescriptorField{Key: key, Value: value})
	}
	return d, nil
}

// Metadata converts the descriptor back into a metadata record.
// The thumbnail path is not part of the descriptor and stays absent.
func (d *Descriptor) Metadata() (*levelpack.LevelMetaData, error) {
	m := &levelpack.LevelMetaData{}

	for _, key := range levelpack.DescriptorKeys() {
		if _, ok := d.Get(key); !ok {
			return nil, fmt.Errorf("descriptor is missing key %q", key)
		}
	}

	m.Name, _ = d.Get(levelpack.DescriptorKeyName)
	m.Author, _ = d.Get(levelpack.DescriptorKeyAuthor)
	if desc, _ := d.Get(levelpack.DescriptorKeyDescription); desc != "" {
		m.Description = levelpack.Some(desc)
	}

	var err error
	created, _ := d.Get(levelpack.DescriptorKeyCreated)
	if m.CreationTime, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("descriptor key %q: %w", levelpack.DescriptorKeyCreated, err)
	}
	updated, _ := d.Get(levelpack.DescriptorKeyLastUpdated)
	if m.LastUpdated, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("descriptor key %q: %w", levelpack.DescriptorKeyLastUpdated, err)
	}
	version, _ := d.Get(levelpack.DescriptorKeyVersion)
	if m.Version, err = strconv.Atoi(version); err != nil {
		return nil, fmt.Errorf("descriptor key %q: %w", levelpack.DescriptorKeyVersion, err)
	}

	return m, nil
}
