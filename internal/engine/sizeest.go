package engine

import (
	"log"
	"sync"
)

// ProbeFunc fetches one page of an unbounded list resource and reports
// how many items it contained. An error is treated the same as an empty
// page: a network failure must never be mistaken for "the collection
// continues here".
type ProbeFunc func(page int) (int, error)

// SizeEstimate is the result of probing an unbounded paginated resource.
// Recomputed fresh on every request; the collection can change size
// between visits, so this is never cached.
type SizeEstimate struct {
	LastValidPage     int `json:"last_valid_page"`
	LastPageItemCount int `json:"last_page_item_count"`
	TotalEstimate     int `json:"total_estimate"`
}

// Coarse probe pages, monotonically increasing. Chosen to bracket the
// auction house at its historical size range within one request batch.
var coarseProbePages = []int{100, 500, 1000, 1500, 2000, 2500}

const (
	// binaryGap is the interval width at which binary narrowing stops
	// and the fine confirmation sweep takes over.
	binaryGap = 50
	// fineStep / fineSpan control the confirmation sweep: every 10th
	// page in [low, low+60], probed concurrently.
	fineStep = 10
	fineSpan = 60
)

// DefaultMaxProbePage is the safety bound used when every coarse probe
// comes back non-empty.
const DefaultMaxProbePage = 10000

// EstimateSize discovers the approximate size of a paginated resource
// that exposes no total-count field. Three phases:
//
//  1. Coarse concurrent probes bracket the boundary between non-empty
//     and empty pages.
//  2. Sequential binary narrowing shrinks the bracket to at most
//     binaryGap pages. Each step depends on the previous result, so
//     this phase must not be parallelized.
//  3. A concurrent fine sweep over [low, low+fineSpan] in steps of
//     fineStep confirms the last non-empty page and its item count.
//
// The fine sweep can skip the exact boundary by up to fineStep-1 pages;
// the result is presented as an abbreviated estimate, so that error is
// acceptable.
func EstimateSize(probe ProbeFunc, itemsPerPage, maxPage int) SizeEstimate {
	if maxPage <= 0 {
		maxPage = DefaultMaxProbePage
	}

	// Phase 1: coarse parallel probe.
	counts := probeBatch(probe, coarseProbePages)

	low, high := 1, maxPage
	for _, page := range coarseProbePages {
		if counts[page] > 0 {
			low = page
		} else {
			high = page
			break
		}
	}
	log.Printf("[DEBUG] EstimateSize: coarse bracket low=%d high=%d", low, high)

	// Phase 2: sequential binary narrowing.
	for high-low > binaryGap {
		mid := (low + high) / 2
		n, err := probe(mid)
		if err == nil && n > 0 {
			low = mid
		} else {
			high = mid
		}
	}
	log.Printf("[DEBUG] EstimateSize: narrowed bracket low=%d high=%d", low, high)

	// Phase 3: concurrent fine confirmation sweep.
	var finePages []int
	for p := low; p <= low+fineSpan; p += fineStep {
		finePages = append(finePages, p)
	}
	fineCounts := probeBatch(probe, finePages)

	lastPage, lastCount := 0, 0
	for _, p := range finePages {
		if fineCounts[p] > 0 {
			lastPage, lastCount = p, fineCounts[p]
		}
	}
	if lastPage == 0 {
		// Even the low bound came back empty: the collection is gone
		// (or was empty all along).
		return SizeEstimate{}
	}

	return SizeEstimate{
		LastValidPage:     lastPage,
		LastPageItemCount: lastCount,
		TotalEstimate:     (lastPage-1)*itemsPerPage + lastCount,
	}
}

// probeBatch issues all probes concurrently and waits for the whole
// batch to settle. Failed probes report zero items; a slow or failed
// probe never blocks the others, but the batch result is only available
// once every request has resolved.
func probeBatch(probe ProbeFunc, pages []int) map[int]int {
	counts := make(map[int]int, len(pages))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, page := range pages {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			n, err := probe(p)
			if err != nil {
				n = 0
			}
			mu.Lock()
			counts[p] = n
			mu.Unlock()
		}(page)
	}
	wg.Wait()
	return counts
}
