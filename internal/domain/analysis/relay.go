package analysis

import (
	"context"
	"io"
	"time"

	"github.com/brandnewmax/searchintentanalyze/internal/infrastructure/metrics"
)

const relayBufferSize = 4 * 1024

type readEvent struct {
	data []byte
	err  error
}

// relay forwards the upstream byte stream to the sink verbatim. Before each
// chunk it races the pending read against a keep-alive timer: when the
// upstream stalls past the interval a comment frame is pushed to the client
// and the same in-flight read stays armed, so no upstream byte is lost or
// duplicated around a keep-alive. Returns nil on clean end-of-stream.
func relay(ctx context.Context, upstream io.Reader, sink StreamSink, keepAlive time.Duration) error {
	events := make(chan readEvent, 16)

	go func() {
		buf := make([]byte, relayBufferSize)
		for {
			n, err := upstream.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				select {
				case events <- readEvent{data: chunk}:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				select {
				case events <- readEvent{err: err}:
				case <-ctx.Done():
				}
				return
			}
		}
	}()

	timer := time.NewTimer(keepAlive)
	defer timer.Stop()

	for {
		select {
		case ev := <-events:
			if ev.err != nil {
				if ev.err == io.EOF {
					return nil
				}
				return ev.err
			}
			if err := sink.Chunk(ev.data); err != nil {
				// Client gone; no point relaying further.
				return err
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(keepAlive)

		case <-timer.C:
			sink.KeepAlive()
			metrics.KeepAlivesTotal.Inc()
			timer.Reset(keepAlive)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
