package feedcodec

import (
	"strings"

	"github.com/valyala/bytebufferpool"
)

const (
	RecordSeparator = "~"
	FieldSeparator  = "¬"
	ValueSeparator  = "÷"

	// IDCode marks a chunk as a match record. Chunks without it are header or footer noise.
	IDCode = "AA"
)

// Record is one decoded feed entry. Codes keep the position of their first occurrence;
// a repeated code overwrites the value.
type Record struct {
	codes  []string
	values map[string]string
}

func NewRecord() Record {
	return Record{values: make(map[string]string)}
}

func (r *Record) Set(code, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, exists := r.values[code]; !exists {
		r.codes = append(r.codes, code)
	}
	r.values[code] = value
}

func (r Record) Get(code string) string {
	return r.values[code]
}

func (r Record) Lookup(code string) (string, bool) {
	value, ok := r.values[code]
	return value, ok
}

func (r Record) Codes() []string {
	out := make([]string, len(r.codes))
	copy(out, r.codes)
	return out
}

func (r Record) Len() int {
	return len(r.codes)
}

// Decode splits a feed payload into records. It never fails: chunks that carry no
// key/value pair or no match id are dropped.
func Decode(payload string) []Record {
	if strings.TrimSpace(payload) == "" {
		return []Record{}
	}

	chunks := strings.Split(payload, RecordSeparator)
	out := make([]Record, 0, len(chunks))
	for _, chunk := range chunks {
		record, ok := decodeChunk(chunk)
		if !ok {
			continue
		}
		out = append(out, record)
	}

	return out
}

func decodeChunk(chunk string) (Record, bool) {
	if !strings.Contains(chunk, ValueSeparator) {
		return Record{}, false
	}

	record := NewRecord()
	for _, piece := range strings.Split(chunk, FieldSeparator) {
		code, value, found := strings.Cut(piece, ValueSeparator)
		if !found || code == "" {
			continue
		}
		record.Set(code, value)
	}

	if _, ok := record.Lookup(IDCode); !ok {
		return Record{}, false
	}
	return record, true
}

// Encode is the inverse of Decode for well-formed records.
func Encode(records []Record) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, record := range records {
		if i > 0 {
			_, _ = buf.WriteString(RecordSeparator)
		}
		for j, code := range record.codes {
			if j > 0 {
				_, _ = buf.WriteString(FieldSeparator)
			}
			_, _ = buf.WriteString(code)
			_, _ = buf.WriteString(ValueSeparator)
			_, _ = buf.WriteString(record.values[code])
		}
	}

	return buf.String()
}
