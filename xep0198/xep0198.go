/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xep0198

import (
	"math"
	"strconv"

	"github.com/ortuman/canary/xmpp"
)

const (
	// Namespace represents the stream management namespace (XEP-0198).
	Namespace = "urn:xmpp:sm:3"

	// ErrorNamespace represents the namespace of stanza error defined conditions.
	ErrorNamespace = "urn:ietf:params:xml:ns:xmpp-stanzas"
)

// UnknownCondition is the reserved condition reported when a failure
// carries no defined condition element. It is distinct from every
// condition name defined in RFC 6120.
const UnknownCondition = "unknown"

const (
	enableName     = "enable"
	enabledName    = "enabled"
	resumeName     = "resume"
	resumedName    = "resumed"
	failedName     = "failed"
	ackRequestName = "r"
	ackAnswerName  = "a"
)

// UnspecifiedMax is the 'max' attribute sentinel value meaning no
// resumption window hint was given.
const UnspecifiedMax = -1

// Condition represents a stanza error defined condition.
type Condition struct {
	Name      string
	Namespace string
}

// Enable represents a stream management 'enable' stanza.
type Enable struct {
	resume bool
	max    int
}

// NewEnable builds an 'enable' stanza requesting a resumable session
// when resume is set. Pass UnspecifiedMax to omit the window hint.
func NewEnable(resume bool, max int) *Enable {
	return &Enable{resume: resume, max: max}
}

// Resume returns whether session resumption is being requested.
func (e *Enable) Resume() bool { return e.resume }

// Max returns the requested resumption window hint in seconds.
func (e *Enable) Max() int { return e.max }

// Element returns the stanza XML element.
func (e *Enable) Element() xmpp.XElement {
	elem := xmpp.NewElementNamespace(enableName, Namespace)
	if e.resume {
		elem.SetAttribute("resume", "true")
	}
	if e.max >= 0 {
		elem.SetAttribute("max", strconv.Itoa(e.max))
	}
	return elem
}

// Enabled represents a stream management 'enabled' stanza.
type Enabled struct {
	id       string
	resume   bool
	location string
	max      int
}

// NewEnabled builds an 'enabled' stanza value.
func NewEnabled(id string, resume bool, location string, max int) *Enabled {
	return &Enabled{id: id, resume: resume, location: location, max: max}
}

// ID returns the session token issued by the server.
func (e *Enabled) ID() string { return e.id }

// Resume returns whether session resumption is permitted.
func (e *Enabled) Resume() bool { return e.resume }

// Location returns the preferred resumption reconnect target.
func (e *Enabled) Location() string { return e.location }

// Max returns the resumption window hint in seconds, or UnspecifiedMax.
func (e *Enabled) Max() int { return e.max }

// Element returns the stanza XML element.
func (e *Enabled) Element() xmpp.XElement {
	elem := xmpp.NewElementNamespace(enabledName, Namespace)
	if len(e.id) > 0 {
		elem.SetID(e.id)
	}
	if e.resume {
		elem.SetAttribute("resume", "true")
	}
	if len(e.location) > 0 {
		elem.SetAttribute("location", e.location)
	}
	if e.max >= 0 {
		elem.SetAttribute("max", strconv.Itoa(e.max))
	}
	return elem
}

// ResumeRequest represents a stream management 'resume' stanza.
type ResumeRequest struct {
	h      uint64
	prevID string
}

// NewResumeRequest builds a 'resume' stanza value.
func NewResumeRequest(h uint64, prevID string) *ResumeRequest {
	return &ResumeRequest{h: h, prevID: prevID}
}

// H returns the handled stanza count being reported.
func (r *ResumeRequest) H() uint64 { return r.h }

// PrevID returns the token of the session being resumed.
func (r *ResumeRequest) PrevID() string { return r.prevID }

// Element returns the stanza XML element.
func (r *ResumeRequest) Element() xmpp.XElement {
	elem := xmpp.NewElementNamespace(resumeName, Namespace)
	elem.SetAttribute("h", strconv.FormatUint(r.h, 10))
	if len(r.prevID) > 0 {
		elem.SetAttribute("previd", r.prevID)
	}
	return elem
}

// Resumed represents a stream management 'resumed' stanza.
type Resumed struct {
	h      uint64
	prevID string
}

// NewResumed builds a 'resumed' stanza value.
func NewResumed(h uint64, prevID string) *Resumed {
	return &Resumed{h: h, prevID: prevID}
}

// H returns the handled stanza count reported by the server.
func (r *Resumed) H() uint64 { return r.h }

// PrevID returns the token of the session that was resumed.
func (r *Resumed) PrevID() string { return r.prevID }

// Element returns the stanza XML element.
func (r *Resumed) Element() xmpp.XElement {
	elem := xmpp.NewElementNamespace(resumedName, Namespace)
	elem.SetAttribute("h", strconv.FormatUint(r.h, 10))
	if len(r.prevID) > 0 {
		elem.SetAttribute("previd", r.prevID)
	}
	return elem
}

// Failed represents a stream management 'failed' stanza.
type Failed struct {
	condition Condition
}

// NewFailed builds a 'failed' stanza value carrying a defined condition.
func NewFailed(condition string) *Failed {
	return &Failed{condition: Condition{Name: condition, Namespace: ErrorNamespace}}
}

// Condition returns the failure defined condition.
func (f *Failed) Condition() Condition { return f.condition }

// Element returns the stanza XML element.
func (f *Failed) Element() xmpp.XElement {
	elem := xmpp.NewElementNamespace(failedName, Namespace)
	elem.AppendElement(xmpp.NewElementNamespace(f.condition.Name, f.condition.Namespace))
	return elem
}

// AckRequest represents a stream management 'r' stanza.
type AckRequest struct{}

// NewAckRequest builds an 'r' stanza value.
func NewAckRequest() *AckRequest { return &AckRequest{} }

// Element returns the stanza XML element.
func (r *AckRequest) Element() xmpp.XElement {
	return xmpp.NewElementNamespace(ackRequestName, Namespace)
}

// AckAnswer represents a stream management 'a' stanza.
type AckAnswer struct {
	h uint64
}

// NewAckAnswer builds an 'a' stanza value.
func NewAckAnswer(h uint64) *AckAnswer {
	return &AckAnswer{h: h}
}

// H returns the acknowledged stanza count.
func (a *AckAnswer) H() uint64 { return a.h }

// Element returns the stanza XML element.
func (a *AckAnswer) Element() xmpp.XElement {
	elem := xmpp.NewElementNamespace(ackAnswerName, Namespace)
	elem.SetAttribute("h", strconv.FormatUint(a.h, 10))
	return elem
}

// IncH increments an 'h' counter applying stream management wrapping.
func IncH(h uint32) uint32 {
	if h == math.MaxUint32-1 {
		return 0
	}
	return h + 1
}
