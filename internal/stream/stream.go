// Package stream serves the presented frames to a browser over a websocket
// and feeds the browser's key presses back into the viewer.
package stream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"mandelview/hal"

	"github.com/coder/websocket"
)

// Options configures the stream server.
type Options struct {
	Addr string
	// Poll is how often a connection checks for a newly presented frame.
	Poll time.Duration
	// OriginPatterns lists extra origins allowed to open the websocket.
	OriginPatterns []string
}

// Server streams frames from src and injects keys into in.
type Server struct {
	src  hal.FrameSource
	in   hal.Injector
	log  hal.Logger
	opts Options
}

// New creates a Server. in and log may be nil.
func New(src hal.FrameSource, in hal.Injector, log hal.Logger, opts Options) *Server {
	if opts.Poll <= 0 {
		opts.Poll = 30 * time.Millisecond
	}
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	return &Server{src: src, in: in, log: log, opts: opts}
}

// Handler returns the index page at / and the websocket at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, indexHTML, s.src.Width(), s.src.Height())
	})
	return mux
}

// ListenAndServe serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logf("stream: listening on http://localhost%s", s.opts.Addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.opts.OriginPatterns,
	})
	if err != nil {
		s.logf("stream: accept: %v", err)
		return
	}
	defer c.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go s.readKeys(ctx, cancel, c)

	err = s.writeFrames(ctx, c)
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return
	}
	if err != nil && ctx.Err() == nil {
		s.logf("stream: %v", err)
	}
	c.Close(websocket.StatusNormalClosure, "")
}

func (s *Server) readKeys(ctx context.Context, cancel context.CancelFunc, c *websocket.Conn) {
	defer cancel()
	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			continue
		}
		ev, err := hal.ParseKey(string(data))
		if err != nil {
			s.logf("stream: %v", err)
			continue
		}
		if s.in != nil && !s.in.Inject(ev) {
			s.logf("stream: key queue full, dropped %q", data)
		}
	}
}

func (s *Server) writeFrames(ctx context.Context, c *websocket.Conn) error {
	img := image.NewRGBA(image.Rect(0, 0, s.src.Width(), s.src.Height()))
	var buf bytes.Buffer
	var last uint64

	t := time.NewTicker(s.opts.Poll)
	defer t.Stop()
	for {
		if seq := s.src.PresentedSeq(); seq != 0 && seq != last {
			last = s.src.SnapshotRGBA(img.Pix)
			buf.Reset()
			if err := png.Encode(&buf, img); err != nil {
				return fmt.Errorf("encode frame %d: %w", last, err)
			}
			if err := c.Write(ctx, websocket.MessageBinary, buf.Bytes()); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

func (s *Server) logf(format string, args ...any) {
	if s.log == nil {
		return
	}
	s.log.WriteLineString(fmt.Sprintf(format, args...))
}

const indexHTML = `<!doctype html>
<html>
<head><title>mandelview</title></head>
<body style="background:#000;color:#ccc;font-family:monospace">
<img id="frame" width="%d" height="%d" alt="">
<p>arrows pan, z/x zoom, +/- iterations</p>
<script>
const img = document.getElementById("frame");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.binaryType = "blob";
ws.onmessage = (m) => {
  const old = img.src;
  img.src = URL.createObjectURL(m.data);
  if (old) URL.revokeObjectURL(old);
};
const names = {ArrowUp: "up", ArrowDown: "down", ArrowLeft: "left", ArrowRight: "right"};
document.addEventListener("keydown", (e) => {
  const name = names[e.key] || (e.key.length === 1 ? e.key : "");
  if (name && ws.readyState === WebSocket.OPEN) {
    ws.send(name);
    e.preventDefault();
  }
});
</script>
</body>
</html>
`
