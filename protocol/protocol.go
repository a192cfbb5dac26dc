// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package protocol encodes and decodes the text messages between
// the client and the display server. Each message is the message
// name, a colon, and a JSON payload: NAME:{...}. Messages without
// a payload may leave it empty.
package protocol

import (
	"encoding/json"
	"fmt"
	"strings"

	"cogentcore.org/wallscope/base/errors"
	"cogentcore.org/wallscope/command"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrUnknownMessage is returned for a message with an unknown name.
	ErrUnknownMessage = errors.New("protocol: unknown message")

	// ErrMalformed is returned for a message whose payload does not parse
	// or is not valid.
	ErrMalformed = errors.New("protocol: malformed payload")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Message is one decoded message. Payload is a pointer to the
// payload type of the name, or nil for messages without one.
type Message struct {
	Name    Names
	Payload any
}

func (m *Message) String() string {
	return string(m.Name)
}

// Encode returns the text of a message with the given name and
// payload, which may be nil for messages without one.
func Encode(name Names, payload any) (string, error) {
	if _, ok := newPayload(name); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMessage, name)
	}
	if payload == nil {
		if !optionalPayload(name) {
			return "", fmt.Errorf("%w: %s requires a payload", ErrMalformed, name)
		}
		return string(name) + ":", nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(name) + ":" + string(b), nil
}

// Decode parses the text of a message. It returns [ErrUnknownMessage]
// or [ErrMalformed] (wrapped) for messages that must be ignored.
func Decode(text string) (*Message, error) {
	name, body, _ := strings.Cut(strings.TrimSpace(text), ":")
	msg := &Message{Name: Names(name)}
	pl, ok := newPayload(msg.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, name)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		if !optionalPayload(msg.Name) {
			return nil, fmt.Errorf("%w: %s: empty payload", ErrMalformed, name)
		}
		if pl != nil {
			msg.Payload = pl
		}
		return msg, nil
	}
	if pl == nil {
		return msg, nil
	}
	dec := json.NewDecoder(strings.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(pl); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, name, err)
	}
	if err := validate.Struct(pl); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, name, err)
	}
	if v, ok := pl.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, name, err)
		}
	}
	msg.Payload = pl
	return msg, nil
}

// ToCommand returns the command for an execute message.
func ToCommand(msg *Message) (*command.Command, error) {
	switch pl := msg.Payload.(type) {
	case *Slice:
		return command.NewSlice(pl.ActionID, pl.Targets, pl.Plane(), *pl.Separation), nil
	case *Destroy:
		return command.NewDestroy(pl.ActionID, pl.Target), nil
	}
	return nil, fmt.Errorf("protocol: %s is not a command message", msg.Name)
}

// FromCommand returns the execute message for a command.
func FromCommand(c *command.Command) (Names, any) {
	switch c.Kind {
	case command.Slice:
		p := &c.Slice
		return ExecuteSliceAction, NewSlice(c.ActionID, p.Targets, p.Plane, p.Separation)
	default:
		return ExecuteDestroyAction, &Destroy{ActionID: c.ActionID, Target: c.Destroy.Target}
	}
}
