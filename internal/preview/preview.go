// Package preview serves a live-reloading browser preview of a single
// Mermaid file. The file is watched for writes; every change is pushed
// to connected browsers over a WebSocket and re-rendered client-side.
package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// update is the outgoing WebSocket message format.
type update struct {
	Code string       `json:"code"`
	Type diagram.Type `json:"type"`
}

// Server watches a Mermaid file and serves the live preview.
type Server struct {
	path string
	port int

	mu      sync.Mutex
	clients map[*websocket.Conn]bool

	httpServer *http.Server
}

// New creates a preview server for the given .mmd file.
func New(path string, port int) *Server {
	return &Server{
		path:    path,
		port:    port,
		clients: make(map[*websocket.Conn]bool),
	}
}

// Start serves the preview until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: most editors replace the
	// file on save, which drops a direct watch.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watching %s: %w", s.path, err)
	}

	go s.watchLoop(ctx, watcher)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handlePage)
	r.Get("/ws", s.handleWebSocket)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
	}()

	log.Printf("preview: watching %s, serving on http://localhost:%d", s.path, s.port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Handler returns the preview routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.handlePage)
	r.Get("/ws", s.handleWebSocket)
	return r
}

func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			s.Broadcast()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("preview: watcher: %v", err)
		}
	}
}

// Broadcast reads the watched file and pushes its content to every
// connected client.
func (s *Server) Broadcast() {
	code, err := os.ReadFile(s.path)
	if err != nil {
		log.Printf("preview: reading %s: %v", s.path, err)
		return
	}

	msg, err := json.Marshal(update{
		Code: string(code),
		Type: diagram.DetectType(string(code)),
	})
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("preview: websocket upgrade: %v", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	// Send the current content right away so the page renders without
	// waiting for the first save.
	s.Broadcast()

	// Drain reads until the client disconnects.
	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("preview: websocket read: %v", err)
				}
				return
			}
		}
	}()
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageHTML, filepath.Base(s.path))
}

const pageHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s - mermaidkeep preview</title>
<script src="https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"></script>
<style>
  body { font-family: sans-serif; margin: 2rem; }
  #diagram { display: flex; justify-content: center; }
  #error { color: #b91c1c; white-space: pre-wrap; font-family: monospace; }
</style>
</head>
<body>
<div id="diagram"></div>
<pre id="error"></pre>
<script>
mermaid.initialize({ startOnLoad: false });
let counter = 0;
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = async (ev) => {
  const msg = JSON.parse(ev.data);
  const el = document.getElementById("diagram");
  const errEl = document.getElementById("error");
  try {
    const { svg } = await mermaid.render("m" + (++counter), msg.code);
    el.innerHTML = svg;
    errEl.textContent = "";
  } catch (err) {
    errEl.textContent = String(err);
  }
};
ws.onclose = () => {
  document.getElementById("error").textContent = "preview server disconnected";
};
</script>
</body>
</html>
`
