// Load harness for the relay: spins up a mock upstream and an in-process
// relay instance, then drives POST /chat with vegeta and reports latency
// percentiles.
package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
	"go.uber.org/zap"

	"github.com/reaxo/reaxo/internal/config"
	"github.com/reaxo/reaxo/internal/server"
)

var (
	streamChunks = []string{
		`data: {"choices":[{"delta":{"content":"Bench"}}]}` + "\n\n",
		`data: {"choices":[{"delta":{"content":"mark"}}]}` + "\n\n",
		`data: {"choices":[{"delta":{"content":" response"}}]}` + "\n\n",
		"data: [DONE]\n\n",
	}
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "Duration of the test")
	rate := flag.Int("rate", 50, "Requests per second")
	chunkDelay := flag.Duration("chunk-delay", 5*time.Millisecond, "Delay between mock SSE chunks")
	flag.Parse()

	upstreamAddr, err := startMockUpstream(*chunkDelay)
	if err != nil {
		fmt.Println("failed to start mock upstream:", err)
		return
	}

	relayAddr, err := startRelay(upstreamAddr)
	if err != nil {
		fmt.Println("failed to start relay:", err)
		return
	}

	waitForHealth("http://" + relayAddr + "/health")

	fmt.Printf("Streaming benchmark: %s duration, %d req/s\n", *duration, *rate)

	body := []byte(`{"model": "gemini-2.5-flash", "messages": [{"role": "user", "content": "Hello"}]}`)
	targeter := func(t *vegeta.Target) error {
		t.Method = "POST"
		t.URL = "http://" + relayAddr + "/chat"
		t.Body = body
		t.Header = http.Header{
			"Content-Type": []string{"application/json"},
		}
		return nil
	}

	attacker := vegeta.NewAttacker(vegeta.KeepAlive(true))
	var metrics vegeta.Metrics

	for res := range attacker.Attack(targeter, vegeta.Rate{Freq: *rate, Per: time.Second}, *duration, "relay") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("--------------------------------------------------")
	fmt.Println("99th percentile: ", metrics.Latencies.P99)
	fmt.Println("Mean:            ", metrics.Latencies.Mean)
	fmt.Println("Max:             ", metrics.Latencies.Max)
	fmt.Printf("Success:         %.2f%%\n", metrics.Success*100)
	fmt.Printf("Throughput:      %.2f req/s\n", metrics.Throughput)
	fmt.Println("--------------------------------------------------")

	if len(metrics.Errors) > 0 {
		fmt.Println("Errors (first 5 unique):")
		seen := make(map[string]bool)
		for _, msg := range metrics.Errors {
			if seen[msg] {
				continue
			}
			fmt.Println(" ", msg)
			seen[msg] = true
			if len(seen) == 5 {
				break
			}
		}
	}
}

func startMockUpstream(chunkDelay time.Duration) (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"gemini-2.5-flash","object":"model"}]}`))
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, chunk := range streamChunks {
			time.Sleep(chunkDelay)
			_, _ = w.Write([]byte(chunk))
			flusher.Flush()
		}
	})

	go func() {
		_ = http.Serve(ln, mux)
	}()
	return ln.Addr().String(), nil
}

func startRelay(upstreamAddr string) (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}

	cfg := &config.Config{}
	cfg.Server.Env = "production"
	cfg.Upstream.CompletionsURL = "http://" + upstreamAddr + "/v1/chat/completions"
	cfg.Upstream.ModelsURL = "http://" + upstreamAddr + "/v1/models"
	cfg.Upstream.APIKey = "bench-key"
	cfg.Upstream.DefaultModel = "gemini-2.5-flash"
	cfg.RateLimit.RequestsPerSecond = 1_000_000
	cfg.RateLimit.Burst = 1_000_000

	srv := server.New(cfg, zap.NewNop(), server.Deps{Version: "bench"})
	go func() {
		_ = http.Serve(ln, srv.Handler())
	}()
	return ln.Addr().String(), nil
}

func waitForHealth(url string) {
	for i := 0; i < 50; i++ {
		resp, err := http.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
}
