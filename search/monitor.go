package search

import "github.com/poiesic/mailsift/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps during search.
type SearchMonitor interface {
	Start(query string)
	AfterEmbedding(dimensions int)
	AfterVectorSearch(ids []uint64)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                 {}
func (n *noopMonitor) AfterEmbedding(_ int)           {}
func (n *noopMonitor) AfterVectorSearch(_ []uint64)   {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)  {}
