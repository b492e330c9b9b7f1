package solana

import (
	"context"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
)

// RPCCheckResult represents the result of checking an RPC endpoint
type RPCCheckResult struct {
	URL     string        `json:"url"`
	OK      bool          `json:"ok"`
	Latency time.Duration `json:"latency"`
	Error   string        `json:"error,omitempty"`
}

// checkRPC runs getHealth against a single endpoint
func checkRPC(ctx context.Context, url string, timeout time.Duration) RPCCheckResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	health, err := rpc.New(url).GetHealth(ctx)
	latency := time.Since(start)
	if err != nil {
		return RPCCheckResult{URL: url, OK: false, Latency: latency, Error: err.Error()}
	}
	if health != rpc.HealthOk {
		return RPCCheckResult{URL: url, OK: false, Latency: latency, Error: "node reported " + health}
	}
	return RPCCheckResult{URL: url, OK: true, Latency: latency}
}

// CheckRPCListAsync checks multiple RPC endpoints concurrently.
// Results keep the order of rpcList.
func CheckRPCListAsync(ctx context.Context, rpcList []string, timeout time.Duration) []RPCCheckResult {
	results := make([]RPCCheckResult, len(rpcList))

	var wg sync.WaitGroup
	for i, url := range rpcList {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			results[i] = checkRPC(ctx, url, timeout)
		}(i, url)
	}
	wg.Wait()

	return results
}
