package model

import (
	"errors"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// DegradedMessage is reported for a fallback whose cause carries no
// domain-level message
const DegradedMessage = "upstream unavailable, fallback data used"

// Result is what every domain adapter returns. Success is false only when the
// input was rejected or nothing could be produced. Degraded is true when any
// part of Data comes from a fallback instead of a live source, in which case
// Error summarizes the swallowed cause.
type Result[T any] struct {
	Success  bool   `json:"success"`
	Degraded bool   `json:"degraded"`
	Data     T      `json:"data"`
	Error    string `json:"error,omitempty"`
}

// OK builds a successful, non-degraded result
func OK[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Degraded builds a successful result whose data came partly or fully from
// fallbacks. Only goerr messages reach Error; transport and upstream text
// such as request URLs is dropped.
func Degraded[T any](data T, cause error) Result[T] {
	r := Result[T]{Success: true, Degraded: true, Data: data}
	if cause != nil {
		r.Error = PublicMessage(cause)
	}
	return r
}

// Failed builds an unsuccessful result
func Failed[T any](cause error) Result[T] {
	r := Result[T]{}
	if cause != nil {
		r.Error = cause.Error()
	}
	return r
}

// PublicMessage reduces err to the messages of its deepest goerr errors.
// Joined errors yield one message each, de-duplicated.
func PublicMessage(err error) string {
	var msgs []string
	seen := map[string]bool{}
	for _, msg := range publicMessages(err) {
		if !seen[msg] {
			seen[msg] = true
			msgs = append(msgs, msg)
		}
	}
	if len(msgs) == 0 {
		return DegradedMessage
	}
	return strings.Join(msgs, "; ")
}

func publicMessages(err error) []string {
	var deepest *goerr.Error
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		if joined, ok := cur.(interface{ Unwrap() []error }); ok {
			var msgs []string
			for _, e := range joined.Unwrap() {
				msgs = append(msgs, publicMessages(e)...)
			}
			return msgs
		}
		if ge, ok := cur.(*goerr.Error); ok {
			deepest = ge
		}
	}

	if deepest == nil {
		return []string{DegradedMessage}
	}
	msg := deepest.Error()
	if cause := deepest.Unwrap(); cause != nil {
		msg = strings.TrimSuffix(msg, cause.Error())
		msg = strings.TrimSuffix(msg, ": ")
	}
	if msg == "" {
		return []string{DegradedMessage}
	}
	return []string{msg}
}
