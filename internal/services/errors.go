// Package services defines the business logic for generation, quotas,
// profiles, and the content planner. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

// Generation-related errors.
var (
	// ErrUnsupportedType is returned when the requested content type is
	// outside the supported set (hook, script, caption, hashtags).
	ErrUnsupportedType = errors.New("unsupported content type")

	// ErrEmptyTopic is returned when a generation request has a blank topic.
	ErrEmptyTopic = errors.New("topic is empty")

	// ErrTopicTooShort is returned when the trimmed topic has fewer than two
	// characters.
	ErrTopicTooShort = errors.New("topic too short")

	// ErrTopicTooLong is returned when the topic exceeds the maximum
	// configured length limit.
	ErrTopicTooLong = errors.New("topic too long")

	// ErrInvalidEngine is returned when the engine preference is outside
	// auto, remote, local.
	ErrInvalidEngine = errors.New("unsupported engine preference")

	// ErrQuotaExceeded is returned when the user has no monthly credits left.
	ErrQuotaExceeded = errors.New("monthly credit quota exceeded")
)

// Usage-tracking errors.
var (
	// ErrEmptyEvent is returned when a usage event is recorded without an
	// event kind.
	ErrEmptyEvent = errors.New("event is empty")
)

// Profile and planner errors.
var (
	// ErrProfileNotFound indicates that the requested profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrSlotNotFound indicates that the requested planner slot does not
	// exist or is not accessible to the current user.
	ErrSlotNotFound = errors.New("planner slot not found")

	// ErrInvalidPlatform is returned when a planner slot names a platform
	// outside the allowed set.
	ErrInvalidPlatform = errors.New("unsupported platform")

	// ErrInvalidSchedule is returned when a planner slot's scheduled time is
	// missing or in the past.
	ErrInvalidSchedule = errors.New("scheduled time must be in the future")
)
