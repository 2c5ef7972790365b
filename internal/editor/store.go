package editor

import (
	"context"
	"sync"
	"time"
)

// Store 按用户保存编辑页面；长时间未访问的页面被回收
type Store struct {
	mu      sync.Mutex
	screens map[string]*storeEntry
	idleTTL time.Duration
	now     func() time.Time
}

type storeEntry struct {
	editor   *Editor
	lastSeen time.Time
}

// NewStore 创建页面存储；idleTTL <= 0 表示不回收
func NewStore(idleTTL time.Duration) *Store {
	return &Store{
		screens: make(map[string]*storeEntry),
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// Put 保存（替换）用户的页面
func (s *Store) Put(userID string, e *Editor) {
	s.mu.Lock()
	s.screens[userID] = &storeEntry{editor: e, lastSeen: s.now()}
	s.mu.Unlock()
}

// Get 取出用户的页面并刷新访问时间
func (s *Store) Get(userID string) (*Editor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.screens[userID]
	if !ok {
		return nil, false
	}
	entry.lastSeen = s.now()
	return entry.editor, true
}

// Discard 丢弃用户的页面；进行中的请求完成后仅作用于已丢弃的实例
func (s *Store) Discard(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.screens[userID]; !ok {
		return false
	}
	delete(s.screens, userID)
	return true
}

// Len 当前页面数
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.screens)
}

// Sweep 回收空闲页面，返回回收数量
func (s *Store) Sweep() int {
	if s.idleTTL <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTTL)
	removed := 0
	for id, entry := range s.screens {
		if entry.lastSeen.Before(cutoff) {
			delete(s.screens, id)
			removed++
		}
	}
	return removed
}

// Run 周期性回收，直到 ctx 结束
func (s *Store) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	if s.idleTTL <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
