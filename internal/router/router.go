// Package router maps hash locations such as "#/orders" to the view that
// should be active and tells subscribers when the location changes.
package router

import (
	"strings"
	"sync"
)

// Match is the result of resolving a location against the declared routes.
type Match struct {
	View     string            `json:"view"`
	Pattern  string            `json:"pattern"`
	Location string            `json:"location"`
	Params   map[string]string `json:"params"`
}

type route struct {
	pattern  string
	view     string
	segments []segment
}

type subscription struct {
	id int
	fn func(location string)
}

// Router owns no business state: only the declared routes, the current
// location and the location-change subscribers.
type Router struct {
	mu      sync.RWMutex
	routes  []route
	current string

	subsMu sync.Mutex
	subs   []subscription
	nextID int

	// navMu serializes Navigate so each change is fully delivered before
	// the next one starts.
	navMu sync.Mutex

	redirectMu sync.Mutex
	delivering bool
	redirects  []string
}

func New() *Router {
	return &Router{current: "/"}
}

// Register declares a route. Registration order matters: when several
// patterns match a location the earliest registered one wins. Duplicates are
// not rejected.
func (r *Router) Register(pattern, view string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route{
		pattern:  pattern,
		view:     view,
		segments: compile(pattern),
	})
}

// Resolve returns the first registered route matching location. No match is
// not an error; the caller renders nothing.
func (r *Router) Resolve(location string) (Match, bool) {
	location = Normalize(location)
	parts := split(location)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rt := range r.routes {
		if params, ok := match(rt.segments, parts); ok {
			return Match{
				View:     rt.view,
				Pattern:  rt.pattern,
				Location: location,
				Params:   params,
			}, true
		}
	}
	return Match{}, false
}

// Current returns the last location passed to Navigate, normalized.
func (r *Router) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// ResolveCurrent resolves the current location.
func (r *Router) ResolveCurrent() (Match, bool) {
	return r.Resolve(r.Current())
}

// Subscribe registers fn for location changes. The returned function removes
// the subscription; calling it more than once is safe.
func (r *Router) Subscribe(fn func(location string)) (unsubscribe func()) {
	r.subsMu.Lock()
	r.nextID++
	id := r.nextID
	r.subs = append(r.subs, subscription{id: id, fn: fn})
	r.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.subsMu.Lock()
			defer r.subsMu.Unlock()
			for i, s := range r.subs {
				if s.id == id {
					r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Subscribers reports the number of live subscriptions.
func (r *Router) Subscribers() int {
	r.subsMu.Lock()
	defer r.subsMu.Unlock()
	return len(r.subs)
}

// Navigate records a new location and notifies subscribers synchronously, in
// subscription order. Subscribers may call Resolve and Current. A subscriber
// must not call Navigate, which blocks until the current delivery ends; it
// calls Redirect instead.
func (r *Router) Navigate(location string) {
	r.navMu.Lock()
	defer r.navMu.Unlock()

	r.redirectMu.Lock()
	r.delivering = true
	r.redirectMu.Unlock()

	for {
		r.deliver(Normalize(location))

		r.redirectMu.Lock()
		if len(r.redirects) == 0 {
			r.delivering = false
			r.redirectMu.Unlock()
			return
		}
		location = r.redirects[0]
		r.redirects = r.redirects[1:]
		r.redirectMu.Unlock()
	}
}

// Redirect navigates to location once the change being delivered has reached
// every subscriber. The Navigate in progress delivers it before returning.
// Outside a delivery Redirect is Navigate.
func (r *Router) Redirect(location string) {
	r.redirectMu.Lock()
	if r.delivering {
		r.redirects = append(r.redirects, location)
		r.redirectMu.Unlock()
		return
	}
	r.redirectMu.Unlock()
	r.Navigate(location)
}

func (r *Router) deliver(location string) {
	r.mu.Lock()
	r.current = location
	r.mu.Unlock()

	r.subsMu.Lock()
	subs := make([]subscription, len(r.subs))
	copy(subs, r.subs)
	r.subsMu.Unlock()

	for _, s := range subs {
		s.fn(location)
	}
}

// Normalize strips a leading '#', adds the leading slash and maps the empty
// location to "/".
func Normalize(location string) string {
	location = strings.TrimPrefix(location, "#")
	if location == "" {
		return "/"
	}
	if !strings.HasPrefix(location, "/") {
		location = "/" + location
	}
	return location
}

// Link returns the hash form of a location, e.g. "#/cart".
func Link(to string) string {
	return "#" + Normalize(to)
}
