// README: Smoke-test cases; includes HTTP, DB, Redis, and performance checks.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "SKIP", Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "SKIP", Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "HTTP: health",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				status, _, err := r.get(ctx, base+"/health")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status %d", status)}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name: "HTTP: blog list",
			Run: func(ctx context.Context, r *Runner) Result {
				status, body, err := r.get(ctx, base+"/api/blog")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status %d", status)}
				}
				var resp struct {
					Count    int             `json:"count"`
					Articles json.RawMessage `json:"articles"`
				}
				if err := json.Unmarshal(body, &resp); err != nil {
					return Result{Status: "FAIL", Note: "bad json: " + err.Error()}
				}
				return Result{Status: "PASS", Note: fmt.Sprintf("%d articles", resp.Count)}
			},
		},
		{
			Name: "HTTP: unknown blog slug returns 404",
			Run: func(ctx context.Context, r *Runner) Result {
				status, _, err := r.get(ctx, base+"/api/blog/no-such-article")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusNotFound {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status %d", status)}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "HTTP: image proxy rejects plain http",
			Run: func(ctx context.Context, r *Runner) Result {
				status, _, err := r.get(ctx, base+"/api/images/proxy?url=http%3A%2F%2Fexample.com%2Fa.jpg")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusBadRequest && status != http.StatusForbidden {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status %d", status)}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "HTTP: generate rejects unknown intake type",
			Run: func(ctx context.Context, r *Runner) Result {
				status, _, err := r.postJSON(ctx, base+"/api/gifts/generate", `{"type":"bogus"}`)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusBadRequest {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status %d", status)}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "HTTP: random generate end to end",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				status, body, err := r.postJSON(ctx, base+"/api/gifts/generate", `{"type":"random"}`)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status == http.StatusInternalServerError && strings.Contains(string(body), "not_configured") {
					return Result{Status: "PENDING", Note: "provider or AI credentials missing"}
				}
				if status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status %d body=%s", status, truncate(body, 120))}
				}
				var resp struct {
					Count int `json:"count"`
				}
				if err := json.Unmarshal(body, &resp); err != nil || resp.Count == 0 {
					return Result{Status: "FAIL", Note: "no proposals in response"}
				}
				return Result{Status: "PASS", Latency: time.Since(start), Note: fmt.Sprintf("%d proposals", resp.Count)}
			},
		},
		{
			Name: "Perf: health throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				ctx, cancel := context.WithTimeout(ctx, r.cfg.Duration)
				defer cancel()

				var total, failed int64
				var wg sync.WaitGroup
				for i := 0; i < r.cfg.Concurrency; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						for ctx.Err() == nil {
							status, _, err := r.get(ctx, base+"/health")
							if ctx.Err() != nil {
								return
							}
							atomic.AddInt64(&total, 1)
							if err != nil || status != http.StatusOK {
								atomic.AddInt64(&failed, 1)
							}
						}
					}()
				}
				wg.Wait()

				if total == 0 {
					return Result{Status: "FAIL", Note: "no requests completed"}
				}
				if failed > 0 {
					return Result{Status: "FAIL", Note: fmt.Sprintf("%d/%d failed", failed, total)}
				}
				rps := float64(total) / r.cfg.Duration.Seconds()
				return Result{Status: "PASS", Note: fmt.Sprintf("%.0f req/s", rps)}
			},
		},
	}
}

func (r *Runner) get(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func (r *Runner) postJSON(ctx context.Context, url, payload string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader([]byte(payload)))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
