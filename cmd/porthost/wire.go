// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"code.hybscloud.com/port"
)

// wireCommand is one stdin line. Tag selects the command; the navigation
// tags match the browser companion's message names.
type wireCommand struct {
	Tag       string             `json:"tag"`
	URL       string             `json:"url,omitempty"`
	State     json.RawMessage    `json:"state,omitempty"`
	Steps     int                `json:"steps,omitempty"`
	ID        port.CorrelationID `json:"id,omitempty"`
	Kind      string             `json:"kind,omitempty"`
	Operation string             `json:"operation,omitempty"`
	Args      json.RawMessage    `json:"args,omitempty"`
}

// wireFailure is the error half of a result line.
type wireFailure struct {
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}

// navigationLine and resultLine are the stdout lines.
type navigationLine struct {
	Tag   string     `json:"tag"`
	Href  string     `json:"href"`
	State port.Value `json:"state"`
}

type resultLine struct {
	Tag       string             `json:"tag"`
	ID        port.CorrelationID `json:"id"`
	Kind      string             `json:"kind"`
	Operation string             `json:"operation"`
	OK        bool               `json:"ok"`
	Value     port.Value         `json:"value,omitempty"`
	Error     *wireFailure       `json:"error,omitempty"`
}

var errMissingTag = errors.New("command has no tag")

// decodeCommand parses one line. An effect without an id is assigned a
// fresh correlation id.
func decodeCommand(line []byte) (port.Command, error) {
	var w wireCommand
	if err := json.Unmarshal(line, &w); err != nil {
		return nil, fmt.Errorf("decode command: %w", err)
	}
	switch w.Tag {
	case "pushUrl":
		return port.PushURL{URL: w.URL}, nil
	case "pushState":
		return port.PushState{URL: w.URL, State: rawOrNil(w.State)}, nil
	case "replaceUrl":
		return port.ReplaceURL{URL: w.URL}, nil
	case "go":
		return port.Go{Steps: w.Steps}, nil
	case "effect":
		id := w.ID
		if id == 0 {
			id = port.NextCorrelation()
		}
		return port.EffectRequest{ID: id, Kind: w.Kind, Operation: w.Operation, Args: rawOrNil(w.Args)}, nil
	case "":
		return nil, errMissingTag
	}
	return nil, fmt.Errorf("%w: %q", port.ErrUnknownCommand, w.Tag)
}

// rawOrNil keeps JSON null and absent fields as a nil Value.
func rawOrNil(raw json.RawMessage) port.Value {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return raw
}

// encodeEvent renders ev as one line without the trailing newline.
func encodeEvent(ev port.Event) ([]byte, error) {
	switch e := ev.(type) {
	case port.NavigationEvent:
		return json.Marshal(navigationLine{Tag: "navigation", Href: e.Href, State: e.State})
	case port.EffectResult:
		line := resultLine{Tag: "result", ID: e.ID, Kind: e.Kind, Operation: e.Operation, OK: e.OK()}
		if v, ok := e.Value(); ok {
			line.Value = v
		}
		if f, ok := e.Failure(); ok {
			line.Error = &wireFailure{Code: f.Code.String(), Detail: f.Detail}
		}
		return json.Marshal(line)
	}
	return nil, fmt.Errorf("encode event: unexpected %T", ev)
}
