package live

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/monet-draw/monet/internal/canvas"
	"github.com/monet-draw/monet/internal/script"
)

var (
	ErrNotDrawing     = errors.New("no drawing in progress")
	ErrAlreadyDrawing = errors.New("drawing already in progress")
)

// Sender delivers server messages to the peer.
type Sender interface {
	Send(msg *Message) error
}

// Session drives one canvas from the messages of one connection. It is not
// safe for concurrent use; the connection's read loop owns it.
type Session struct {
	ID     string
	UserID string

	out         Sender
	opts        []canvas.Option
	maxCommands int

	canvas   *canvas.Canvas
	commands int
	bytes    int64
	seq      int64
	discard  bool
}

func NewSession(id, userID string, out Sender, maxCommands int, opts ...canvas.Option) *Session {
	return &Session{
		ID:          id,
		UserID:      userID,
		out:         out,
		opts:        opts,
		maxCommands: maxCommands,
	}
}

// Drawing reports whether a canvas is open.
func (s *Session) Drawing() bool { return s.canvas != nil }

// Handle processes one client message. Bad input is answered with an error
// message and the session goes on; the returned error means the output can
// no longer be delivered and the connection must be closed.
func (s *Session) Handle(msg *Message) error {
	switch msg.Type {
	case TypeDrawBegin:
		return s.begin(msg.Payload)
	case TypeDrawCommand:
		return s.command(msg.Payload)
	case TypeDrawEnd:
		return s.end()
	}
	return s.reject(fmt.Errorf("unknown message type %q", msg.Type), 0)
}

func (s *Session) begin(payload json.RawMessage) error {
	if s.canvas != nil {
		return s.reject(ErrAlreadyDrawing, 0)
	}

	var p BeginPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return s.reject(fmt.Errorf("invalid draw.begin payload: %w", err), 0)
	}
	if err := (&script.Document{Width: p.Width, Height: p.Height}).Validate(0); err != nil {
		return s.reject(err, 0)
	}

	c, err := canvas.New(fragmentWriter{s}, p.Width, p.Height, s.opts...)
	if err != nil {
		return fmt.Errorf("start canvas: %w", err)
	}
	s.canvas = c
	s.commands = 0
	s.bytes = 0
	slog.Debug("drawing started", "session", s.ID, "name", p.Name, "width", p.Width, "height", p.Height)
	return nil
}

func (s *Session) command(payload json.RawMessage) error {
	if s.canvas == nil {
		return s.reject(ErrNotDrawing, 0)
	}
	s.commands++
	if s.maxCommands > 0 && s.commands > s.maxCommands {
		return s.reject(script.ErrTooManyCommands, s.commands)
	}

	var cmd script.Command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return s.reject(fmt.Errorf("%w: %w", script.ErrOperand, err), s.commands)
	}
	if err := script.Apply(s.canvas, cmd); err != nil {
		return s.reject(err, s.commands)
	}
	if err := s.canvas.Err(); err != nil {
		return fmt.Errorf("stream fragment: %w", err)
	}
	return nil
}

func (s *Session) end() error {
	if s.canvas == nil {
		return s.reject(ErrNotDrawing, 0)
	}

	c := s.canvas
	s.canvas = nil
	if err := c.Close(); err != nil {
		return fmt.Errorf("finish canvas: %w", err)
	}

	slog.Debug("drawing done", "session", s.ID, "commands", s.commands, "bytes", s.bytes)
	return s.send(TypeDrawDone, DonePayload{Commands: s.commands, Bytes: s.bytes})
}

// Abort drops the open canvas, if any, without sending its closing tags.
func (s *Session) Abort() {
	if s.canvas == nil {
		return
	}
	s.discard = true
	s.canvas.Close()
	s.canvas = nil
}

func (s *Session) reject(err error, command int) error {
	return s.send(TypeError, ErrorPayload{Message: err.Error(), Command: command})
}

func (s *Session) send(typ string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", typ, err)
	}
	s.seq++
	return s.out.Send(&Message{Type: typ, SessionID: s.ID, Seq: s.seq, Payload: data})
}

// fragmentWriter turns every canvas write into a draw.fragment message.
type fragmentWriter struct {
	s *Session
}

func (w fragmentWriter) Write(p []byte) (int, error) {
	if w.s.discard {
		return len(p), nil
	}
	if err := w.s.send(TypeDrawFragment, FragmentPayload{SVG: string(p)}); err != nil {
		return 0, err
	}
	w.s.bytes += int64(len(p))
	return len(p), nil
}
