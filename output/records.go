package output

import (
	"encoding/json"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lumen-language/Lumen-Kit/lexer"
)

// Record is the serialized form of a token, for tools rather than people.
// Offsets are bytes; Column counts runes.
type Record struct {
	Type   string `json:"type" msgpack:"type"`
	Text   string `json:"text" msgpack:"text"`
	Start  uint32 `json:"start" msgpack:"start"`
	End    uint32 `json:"end" msgpack:"end"`
	Line   uint32 `json:"line" msgpack:"line"`
	Column uint32 `json:"column" msgpack:"column"`
}

// NewRecord converts tok. It fails for positions beyond 4 GiB.
func NewRecord(src []byte, tok lexer.Token) (Record, error) {
	rec := Record{Type: tok.Type.String(), Text: tok.String(src)}

	var err error
	if rec.Start, err = safecast.Conv[uint32](tok.Start); err != nil {
		return rec, fmt.Errorf("token offset: %w", err)
	}
	if rec.End, err = safecast.Conv[uint32](tok.End); err != nil {
		return rec, fmt.Errorf("token offset: %w", err)
	}
	if rec.Line, err = safecast.Conv[uint32](tok.Line); err != nil {
		return rec, fmt.Errorf("token line: %w", err)
	}
	if rec.Column, err = safecast.Conv[uint32](tok.Column); err != nil {
		return rec, fmt.Errorf("token column: %w", err)
	}
	return rec, nil
}

// Records converts tokens, dropping EOF.
func Records(src []byte, tokens []lexer.Token) ([]Record, error) {
	records := make([]Record, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == lexer.EOF {
			continue
		}
		rec, err := NewRecord(src, tok)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteJSON writes tokens as an indented JSON array of records.
func WriteJSON(w io.Writer, src []byte, tokens []lexer.Token) error {
	records, err := Records(src, tokens)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode tokens: %w", err)
	}
	return nil
}

// WriteMsgpack writes tokens as a MessagePack array of records.
func WriteMsgpack(w io.Writer, src []byte, tokens []lexer.Token) error {
	records, err := Records(src, tokens)
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(w).Encode(records); err != nil {
		return fmt.Errorf("failed to encode tokens: %w", err)
	}
	return nil
}
