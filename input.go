package pagescrape

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
)

// Input is the job input record. URL is nil when the field is absent or null.
type Input struct {
	URL *string `json:"url"`
}

// NewInput returns an Input carrying url.
func NewInput(url string) Input {
	return Input{URL: &url}
}

// DecodeInputs reads input records from r. It accepts a single JSON object,
// a JSON array of objects, or a stream of objects (e.g., JSON lines).
// Empty input yields a single empty record, i.e. one without a URL.
func DecodeInputs(r io.Reader) ([]Input, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if errors.Is(err, io.EOF) {
		return []Input{{}}, nil
	}
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(br)
	if first == '[' {
		var inputs []Input
		if err := dec.Decode(&inputs); err != nil {
			return nil, Errorf(EINVALID, "invalid input: %v", err)
		}
		return inputs, nil
	}

	var inputs []Input
	for {
		var in Input
		err := dec.Decode(&in)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, Errorf(EINVALID, "invalid input: %v", err)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// peekNonSpace returns the first non-whitespace byte without consuming it.
func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}
