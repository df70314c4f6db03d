package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Span times one stage of a request, e.g. training a model
type Span struct {
	Name    string `json:"name"`
	startTs time.Time

	Elapsed *int64 `json:"elapsedMs"`
}

type profileContextKey struct{}

// Profile is the list of spans recorded while serving one request. a
// nil *Profile is valid and records nothing, so code paths without a
// profile in their context don't need to check. not thread safe
type Profile struct {
	Spans   []*Span `json:"spans"`
	startTs time.Time
	TotalMs *int64 `json:"totalMs"`
}

func NewProfile() (newProfile *Profile, endNewProfile func()) {
	newProfile = &Profile{
		Spans:   []*Span{},
		startTs: time.Now(),
	}
	return newProfile, newProfile.End
}

func NewContextWithProfile(ctx context.Context, p *Profile) context.Context {
	return context.WithValue(ctx, profileContextKey{}, p)
}

// ProfileFromContext returns nil when ctx carries no profile
func ProfileFromContext(ctx context.Context) *Profile {
	p, _ := ctx.Value(profileContextKey{}).(*Profile)
	return p
}

func (p *Profile) End() {
	if p == nil {
		return
	}
	if len(p.Spans) > 0 {
		p.Spans[len(p.Spans)-1].End()
	}
	if p.TotalMs == nil {
		t := time.Since(p.startTs).Milliseconds()
		p.TotalMs = &t
	}
}

func (s *Span) End() {
	if s == nil || s.Elapsed != nil {
		return
	}
	t := time.Since(s.startTs).Milliseconds()
	s.Elapsed = &t
}

// StartNewSpan ends the last span and begins a new one
func (p *Profile) StartNewSpan(name string) (newSpan *Span, endSpan func()) {
	if p == nil {
		return nil, func() {}
	}
	if len(p.Spans) > 0 {
		p.Spans[len(p.Spans)-1].End()
	}
	newSpan = &Span{
		Name:    name,
		startTs: time.Now(),
	}
	p.Spans = append(p.Spans, newSpan)
	return newSpan, newSpan.End
}

func (p *Profile) ToJsonBytes() ([]byte, error) {
	return json.Marshal(p)
}
