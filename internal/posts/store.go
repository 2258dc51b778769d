package posts

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// State tracks the store's initialization lifecycle. The store starts
// uninitialized, moves through loading while a build installs a snapshot, and
// serves queries only once ready.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Store holds the post collection for query access. A snapshot, once
// installed, is immutable; Load replaces it wholesale. Readers never observe
// a partially updated collection.
type Store struct {
	mu       sync.RWMutex
	state    State
	snapshot []*Post
	bySlug   map[string]*Post
	logger   interfaces.Logger
}

// NewStore constructs an empty store. A nil logger falls back to the no-op
// implementation.
func NewStore(logger interfaces.Logger) *Store {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Store{
		bySlug: map[string]*Post{},
		logger: logger,
	}
}

// State reports the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// BeginLoad marks the store as loading. Queries keep serving the previous
// snapshot, if any, until Load installs the replacement.
func (s *Store) BeginLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateUninitialized {
		s.state = StateLoading
	}
}

// Load installs a new snapshot sorted descending by date (ties break
// ascending by slug) and marks the store ready. The input slice is copied so
// later caller mutations cannot leak into the snapshot.
func (s *Store) Load(list []*Post) {
	snapshot := make([]*Post, len(list))
	copy(snapshot, list)
	sortPosts(snapshot)

	index := make(map[string]*Post, len(snapshot))
	for _, post := range snapshot {
		index[post.Slug] = post
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.bySlug = index
	s.state = StateReady
	s.mu.Unlock()

	s.logger.Debug("store.load", "posts", len(snapshot))
}

// Reset discards the snapshot and returns the store to uninitialized. It
// exists for testability and for hosts that need an explicit invalidation
// hook.
func (s *Store) Reset() {
	s.mu.Lock()
	s.snapshot = nil
	s.bySlug = map[string]*Post{}
	s.state = StateUninitialized
	s.mu.Unlock()
}

// All returns every post, sorted descending by date.
func (s *Store) All() ([]*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		return nil, ErrStoreNotReady
	}
	out := make([]*Post, len(s.snapshot))
	copy(out, s.snapshot)
	return out, nil
}

// BySlug returns the post with the given slug.
func (s *Store) BySlug(slug string) (*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		return nil, ErrStoreNotReady
	}
	post, ok := s.bySlug[strings.TrimSpace(slug)]
	if !ok {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Tags returns the union of every post's tags, deduplicated and sorted
// alphabetically.
func (s *Store) Tags() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		return nil, ErrStoreNotReady
	}

	seen := map[string]string{}
	for _, post := range s.snapshot {
		for _, tag := range post.Tags {
			key := strings.ToLower(tag)
			if _, ok := seen[key]; !ok {
				seen[key] = tag
			}
		}
	}

	out := make([]string, 0, len(seen))
	for _, tag := range seen {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out, nil
}

// ByTag returns the posts carrying the given tag, in date-descending order.
// The match is case-insensitive.
func (s *Store) ByTag(tag string) ([]*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		return nil, ErrStoreNotReady
	}

	needle := strings.ToLower(strings.TrimSpace(tag))
	var out []*Post
	for _, post := range s.snapshot {
		for _, candidate := range post.Tags {
			if strings.ToLower(candidate) == needle {
				out = append(out, post)
				break
			}
		}
	}
	return out, nil
}

// Recent returns the first n posts of the date-descending order.
func (s *Store) Recent(n int) ([]*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		return nil, ErrStoreNotReady
	}
	if n < 0 {
		n = 0
	}
	if n > len(s.snapshot) {
		n = len(s.snapshot)
	}
	out := make([]*Post, n)
	copy(out, s.snapshot[:n])
	return out, nil
}

// Search returns the posts whose title, excerpt, content, or any tag
// contains the query as a case-insensitive substring. The corpus is tens to
// low hundreds of posts, so a linear scan is deliberate; no index. A blank
// query matches nothing.
func (s *Store) Search(query string) ([]*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		return nil, ErrStoreNotReady
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, nil
	}

	var out []*Post
	for _, post := range s.snapshot {
		if postMatches(post, needle) {
			out = append(out, post)
		}
	}
	return out, nil
}

// Navigation returns the neighbours of the post with the given slug in the
// date-descending order: Previous is the next-most-recent post, Next the
// next-least-recent.
func (s *Store) Navigation(slug string) (Navigation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		return Navigation{}, ErrStoreNotReady
	}

	for i, post := range s.snapshot {
		if post.Slug != slug {
			continue
		}
		nav := Navigation{}
		if i > 0 {
			nav.Previous = s.snapshot[i-1]
		}
		if i < len(s.snapshot)-1 {
			nav.Next = s.snapshot[i+1]
		}
		return nav, nil
	}
	return Navigation{}, ErrPostNotFound
}

func postMatches(post *Post, needle string) bool {
	if strings.Contains(strings.ToLower(post.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(post.Excerpt), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(post.Content), needle) {
		return true
	}
	for _, tag := range post.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
