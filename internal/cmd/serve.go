// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/example/studydeck/internal/engine"
)

func newServeCmd(deps *Deps) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web view",
		Long: `Start a local web interface for studying.

The page shows your stats and due queue, renders card content as
Markdown, and lets you submit reviews. State is autosaved periodically
and on every review.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, err := loadEngine(ctx, deps)
			if err != nil {
				return err
			}

			srv, err := newStudyServer(deps, eng)
			if err != nil {
				return err
			}

			// Periodic snapshot so a killed server loses at most one
			// autosave interval of cursor movement.
			sched := gocron.NewScheduler(time.Local)
			sched.Every(30).Seconds().Do(func() {
				srv.mu.Lock()
				defer srv.mu.Unlock()
				saveEngine(ctx, deps, srv.eng)
			})
			sched.StartAsync()
			defer sched.Stop()

			addr := deps.Config.ServeAddr
			if bind != "" {
				addr = bind
			}

			mux := http.NewServeMux()
			mux.HandleFunc("/", srv.handleIndex)
			mux.HandleFunc("/api/stats", srv.handleStats)
			mux.HandleFunc("/api/due", srv.handleDue)
			mux.HandleFunc("/api/item/", srv.handleItem)
			mux.HandleFunc("/api/review", srv.handleReview)

			fmt.Printf("Serving studydeck on http://%s\n", addr)
			fmt.Println("Press Ctrl+C to stop")
			return http.ListenAndServe(addr, mux)
		},
	}

	cmd.Flags().StringVarP(&bind, "bind", "b", "", "Bind address (overrides config serve_addr)")
	return cmd
}

// studyServer serializes all engine access behind mu: the engine itself is
// not safe for concurrent use, and reviews must apply one at a time.
type studyServer struct {
	deps *Deps
	eng  *engine.Engine
	mu   sync.Mutex

	rendered *lru.Cache[string, template.HTML]
}

func newStudyServer(deps *Deps, eng *engine.Engine) (*studyServer, error) {
	cache, err := lru.New[string, template.HTML](256)
	if err != nil {
		return nil, err
	}
	return &studyServer{deps: deps, eng: eng, rendered: cache}, nil
}

// renderMarkdown converts card content to HTML, memoized per item. The deck
// is immutable for the life of the process, so the item id is a safe key.
func (s *studyServer) renderMarkdown(id, content string) template.HTML {
	if html, ok := s.rendered.Get(id); ok {
		return html
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		s.deps.Logger.Warn("markdown render failed", zap.String("item", id), zap.Error(err))
		return template.HTML(template.HTMLEscapeString(content))
	}
	html := template.HTML(buf.String())
	s.rendered.Add(id, html)
	return html
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *studyServer) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stats := s.eng.XPStats()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, stats)
}

type dueEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Tag   string `json:"tag"`
	Level int    `json:"level"`
	Due   string `json:"due,omitempty"`
}

func (s *studyServer) handleDue(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ids := s.eng.Due()
	entries := make([]dueEntry, 0, len(ids))
	for _, id := range ids {
		it, ok := s.eng.Item(id)
		if !ok {
			continue
		}
		p := s.eng.Progress(id)
		e := dueEntry{ID: it.ID, Title: it.Title, Tag: it.Tag, Level: p.Level}
		if p.NextReview != nil {
			e.Due = p.NextReview.Format(time.RFC3339)
		}
		entries = append(entries, e)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, entries)
}

type itemView struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Tag      string        `json:"tag"`
	ImageURL string        `json:"image_url,omitempty"`
	HTML     template.HTML `json:"html"`
	Level    int           `json:"level"`
	Due      bool          `json:"due"`
}

func (s *studyServer) handleItem(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/item/")
	if id == "" {
		http.Error(w, "missing item id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	it, ok := s.eng.Item(id)
	if !ok {
		s.mu.Unlock()
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	p := s.eng.Progress(id)
	due := p.Due(time.Now())
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, itemView{
		ID:       it.ID,
		Title:    it.Title,
		Tag:      it.Tag,
		ImageURL: it.ImageURL,
		HTML:     s.renderMarkdown(it.ID, it.Content),
		Level:    p.Level,
		Due:      due,
	})
}

type reviewRequest struct {
	ItemID  string `json:"item_id"`
	Correct bool   `json:"correct"`
}

func (s *studyServer) handleReview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	res, err := s.eng.Apply(engine.SubmitReview{ItemID: req.ItemID, Correct: req.Correct})
	saveEngine(r.Context(), s.deps, s.eng)
	s.mu.Unlock()

	if err != nil {
		var rl *engine.RateLimitError
		switch {
		case errors.As(err, &rl):
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"error":               rl.Reason,
				"retry_after_seconds": int(rl.RetryAfter.Seconds()),
			})
		case errors.Is(err, engine.ErrNoSuchItem):
			http.Error(w, "item not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *studyServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}

const indexPage = `<!DOCTYPE html>
<html>
<head>
	<title>studydeck</title>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<style>
		* { box-sizing: border-box; margin: 0; padding: 0; }
		body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; }
		h1 { margin-bottom: 20px; color: #2c3e50; }
		.stats { display: flex; gap: 20px; margin-bottom: 20px; flex-wrap: wrap; }
		.stat { background: #f8f9fa; padding: 10px 20px; border-radius: 4px; }
		.stat-value { font-size: 24px; font-weight: bold; color: #3498db; }
		.stat-label { font-size: 12px; color: #666; text-transform: uppercase; }
		.card { background: white; border: 1px solid #e0e0e0; border-radius: 8px; padding: 24px; margin-bottom: 16px; }
		.card-title { font-size: 20px; font-weight: 600; margin-bottom: 8px; }
		.card-tag { display: inline-block; background: #e3f2fd; color: #1976d2; padding: 4px 12px; border-radius: 12px; font-size: 12px; margin-bottom: 12px; }
		.card-body { display: none; margin-top: 12px; }
		.card-body img { max-width: 100%; }
		.buttons { margin-top: 16px; display: flex; gap: 12px; }
		button { padding: 10px 24px; font-size: 15px; border: none; border-radius: 4px; cursor: pointer; }
		.btn-show { background: #3498db; color: white; }
		.btn-right { background: #2ecc71; color: white; }
		.btn-wrong { background: #e74c3c; color: white; }
		.msg { padding: 12px; border-radius: 4px; margin-bottom: 16px; display: none; }
		.msg.ok { background: #eafaf1; color: #1e8449; display: block; }
		.msg.err { background: #fdecea; color: #c0392b; display: block; }
		.loading { text-align: center; padding: 40px; color: #666; }
	</style>
</head>
<body>
	<h1>studydeck</h1>

	<div class="stats" id="stats"></div>
	<div class="msg" id="msg"></div>
	<div id="queue"><div class="loading">Loading...</div></div>

	<script>
		let queue = [];

		async function loadStats() {
			const res = await fetch('/api/stats');
			const s = await res.json();
			const cells = [
				[s.total_xp, 'Total XP'],
				[s.daily_xp, 'XP Today'],
				[s.streak_days, 'Streak'],
				[s.cards_today + ' / ' + s.daily_goal, 'Cards Today'],
			];
			document.getElementById('stats').innerHTML = cells.map(function(c) {
				return '<div class="stat"><div class="stat-value">' + c[0] + '</div><div class="stat-label">' + c[1] + '</div></div>';
			}).join('');
		}

		async function loadQueue() {
			const res = await fetch('/api/due');
			queue = await res.json();
			showNext();
		}

		async function showNext() {
			const container = document.getElementById('queue');
			if (queue.length === 0) {
				container.innerHTML = '<div class="loading">Nothing due. Come back later.</div>';
				return;
			}
			const res = await fetch('/api/item/' + encodeURIComponent(queue[0].id));
			const item = await res.json();
			let html = '<div class="card">';
			html += '<span class="card-tag">' + escapeHtml(item.tag) + '</span>';
			html += '<div class="card-title">' + escapeHtml(item.title) + '</div>';
			html += '<div class="card-body" id="body">' + item.html;
			if (item.image_url) {
				html += '<img src="' + encodeURI(item.image_url) + '">';
			}
			html += '</div>';
			html += '<div class="buttons" id="pre"><button class="btn-show" onclick="reveal()">Show answer</button></div>';
			html += '<div class="buttons" id="post" style="display:none">';
			html += '<button class="btn-right" onclick="submit(true)">Got it</button>';
			html += '<button class="btn-wrong" onclick="submit(false)">Missed it</button>';
			html += '</div></div>';
			container.innerHTML = html;
		}

		function reveal() {
			document.getElementById('body').style.display = 'block';
			document.getElementById('pre').style.display = 'none';
			document.getElementById('post').style.display = 'flex';
		}

		async function submit(correct) {
			const id = queue[0].id;
			const res = await fetch('/api/review', {
				method: 'POST',
				headers: {'Content-Type': 'application/json'},
				body: JSON.stringify({item_id: id, correct: correct}),
			});
			const msg = document.getElementById('msg');
			if (res.status === 429) {
				const body = await res.json();
				msg.className = 'msg err';
				msg.textContent = 'Rejected: ' + body.error;
			} else if (res.ok) {
				const r = await res.json();
				msg.className = 'msg ok';
				msg.textContent = '+' + r.XPEarned + ' XP (level ' + r.Level + ')';
				queue.shift();
			} else {
				msg.className = 'msg err';
				msg.textContent = 'Review failed (' + res.status + ')';
			}
			await loadStats();
			await showNext();
		}

		function escapeHtml(s) {
			const div = document.createElement('div');
			div.textContent = s || '';
			return div.innerHTML;
		}

		loadStats();
		loadQueue();
	</script>
</body>
</html>
`
