// internal/proxy/pool.go
package proxy

import (
	"sync"
	"time"
)

// ProxyPool rotates through a list of proxy URLs, skipping ones that
// failed recently.
type ProxyPool struct {
	proxies []string
	index   int
	current string
	mu      sync.Mutex
	failed  map[string]time.Time
}

// NewPool creates a pool over the given proxy URLs
func NewPool(proxies []string) *ProxyPool {
	return &ProxyPool{
		proxies: proxies,
		failed:  make(map[string]time.Time),
	}
}

// GetNext returns the next healthy proxy from the pool
func (p *ProxyPool) GetNext() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}

	start := p.index
	for {
		candidate := p.proxies[p.index]
		p.index = (p.index + 1) % len(p.proxies)

		if failTime, ok := p.failed[candidate]; ok {
			if time.Since(failTime) < 5*time.Minute {
				// Still considered failed. If every proxy is failed, hand
				// out the current one anyway rather than stalling.
				if p.index == start {
					p.current = candidate
					return candidate
				}
				continue
			}
			// Failure expired
			delete(p.failed, candidate)
		}

		p.current = candidate
		return candidate
	}
}

// Current returns the proxy most recently handed out by GetNext
func (p *ProxyPool) Current() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// MarkFailed marks a proxy as failed so it will be skipped for a while
func (p *ProxyPool) MarkFailed(proxy string) {
	if proxy == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed[proxy] = time.Now()
}

// MarkHealthy clears the failure status of a proxy
func (p *ProxyPool) MarkHealthy(proxy string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.failed, proxy)
}
