package analyze

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/brandnewmax/searchintentanalyze/internal/domain/analysis"
)

const keepAliveFrame = ": keep-alive\n\n"

// completionChunk mimics the chat-completion chunk shape so clients render
// synthetic status frames and relayed AI chunks uniformly.
type completionChunk struct {
	ID      string        `json:"id"`
	Object  string        `json:"object"`
	Choices []chunkChoice `json:"choices"`
}

type chunkChoice struct {
	Index        int        `json:"index"`
	Delta        chunkDelta `json:"delta"`
	FinishReason *string    `json:"finish_reason"`
}

type chunkDelta struct {
	Content string `json:"content"`
}

// sseSink writes pipeline frames to the client as server-sent events.
// Status and keep-alive write failures are swallowed: those frames are
// best-effort and a dead client surfaces soon enough through Chunk.
type sseSink struct {
	writer gin.ResponseWriter
}

var _ analysis.StreamSink = (*sseSink)(nil)

func newSSESink(reqCtx *gin.Context) *sseSink {
	return &sseSink{writer: reqCtx.Writer}
}

func (s *sseSink) Status(message string) {
	if err := s.writeFrame(encodeStatusFrame(message, nil)); err != nil {
		log.Debug().Err(err).Msg("dropped status frame, client gone")
	}
}

func (s *sseSink) Chunk(p []byte) error {
	if _, err := s.writer.Write(p); err != nil {
		return err
	}
	s.writer.Flush()
	return nil
}

func (s *sseSink) KeepAlive() {
	if err := s.writeFrame([]byte(keepAliveFrame)); err != nil {
		log.Debug().Err(err).Msg("dropped keep-alive frame, client gone")
	}
}

func (s *sseSink) Error(message string) {
	finish := "stop"
	if err := s.writeFrame(encodeStatusFrame("[Error] "+message, &finish)); err != nil {
		log.Debug().Err(err).Msg("dropped error frame, client gone")
	}
}

func (s *sseSink) writeFrame(frame []byte) error {
	if _, err := s.writer.Write(frame); err != nil {
		return err
	}
	s.writer.Flush()
	return nil
}

func encodeStatusFrame(content string, finishReason *string) []byte {
	chunk := completionChunk{
		ID:     "status",
		Object: "chat.completion.chunk",
		Choices: []chunkChoice{
			{Index: 0, Delta: chunkDelta{Content: content + "\n"}, FinishReason: finishReason},
		},
	}
	payload, err := json.Marshal(chunk)
	if err != nil {
		return nil
	}
	frame := make([]byte, 0, len(payload)+8)
	frame = append(frame, "data: "...)
	frame = append(frame, payload...)
	frame = append(frame, "\n\n"...)
	return frame
}
