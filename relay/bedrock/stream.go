package bedrock

import (
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/nanokit/bedrock-relay/relay/model"
)

// ChunkStream is a finite, forward-only sequence of translated chunks.
// Consuming it twice requires a new vendor call. Close must always be called,
// including when consumption is abandoned partway, so the underlying vendor
// connection is released.
type ChunkStream interface {
	// Events yields chunks in arrival order. The channel closes when the
	// vendor stream ends or Close is called.
	Events() <-chan model.StreamChunk
	// Err reports the terminal failure, if any, once Events is closed.
	Err() error
	Close() error
}

var _ ChunkStream = (*Stream)(nil)

// Stream adapts the SDK's event stream into ChunkStream.
type Stream struct {
	events chan model.StreamChunk
	done   chan struct{}
	sdk    *bedrockruntime.InvokeModelWithResponseStreamEventStream

	closeOnce sync.Once
	closeErr  error

	mu  sync.Mutex
	err error
}

func newStream(sdk *bedrockruntime.InvokeModelWithResponseStreamEventStream) *Stream {
	s := &Stream{
		events: make(chan model.StreamChunk),
		done:   make(chan struct{}),
		sdk:    sdk,
	}
	go s.pump()
	return s
}

func (s *Stream) pump() {
	defer close(s.events)

	for event := range s.sdk.Events() {
		part, ok := event.(*types.ResponseStreamMemberChunk)
		if !ok {
			// Non-payload members (unknown union values) are skipped.
			continue
		}
		chunk, emit, err := TranslateStreamEvent(part.Value.Bytes)
		if err != nil {
			s.setErr(err)
			return
		}
		if !emit {
			continue
		}
		select {
		case s.events <- chunk:
		case <-s.done:
			return
		}
	}

	if err := s.sdk.Err(); err != nil {
		s.setErr(Classify(err))
	}
}

func (s *Stream) Events() <-chan model.StreamChunk {
	return s.events
}

func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Stream) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// Close releases the underlying SDK stream. Safe to call more than once and
// concurrently with consumption.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.closeErr = s.sdk.Close()
	})
	return s.closeErr
}
