package completion

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Result is one of the provider response shapes the client understands.
type Result interface {
	Text() string
	isResult()
}

// ChoiceText is the completions shape: {"choices":[{"text":"..."}]}.
type ChoiceText struct{ Value string }

// OutputText is the flat shape: {"output":"..."}.
type OutputText struct{ Value string }

// Unknown is any other JSON payload; its text is the payload itself.
type Unknown struct{ Raw json.RawMessage }

func (r ChoiceText) Text() string { return r.Value }
func (r OutputText) Text() string { return r.Value }
func (r Unknown) Text() string    { return string(r.Raw) }

func (ChoiceText) isResult() {}
func (OutputText) isResult() {}
func (Unknown) isResult()    {}

type envelope struct {
	Choices []struct {
		Text json.RawMessage `json:"text"`
	} `json:"choices"`
	Output json.RawMessage `json:"output"`
}

// decodeResult tries choices[0].text, then output, then falls back to the raw payload.
func decodeResult(body []byte) (Result, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("response is not valid JSON")
	}

	var env envelope
	// non-object payloads (arrays, strings) simply carry no known fields
	_ = json.Unmarshal(body, &env)

	if len(env.Choices) > 0 && present(env.Choices[0].Text) {
		return ChoiceText{Value: textOf(env.Choices[0].Text)}, nil
	}
	if present(env.Output) {
		return OutputText{Value: textOf(env.Output)}, nil
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err != nil {
		return nil, fmt.Errorf("failed to compact response: %w", err)
	}
	return Unknown{Raw: compact.Bytes()}, nil
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// textOf returns JSON strings unquoted and any other value as its JSON text.
func textOf(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
