package domain

import "errors"

// ErrUnknownName is returned when a screen or action name is not part of the enumeration.
var ErrUnknownName = errors.New("unknown name")

// ErrNoPath is returned when the target screen cannot be reached from the current screen.
var ErrNoPath = errors.New("no path to screen")

// ErrUnknownAction is returned when an action is not defined in the graph.
var ErrUnknownAction = errors.New("action not defined in graph")

// ErrActionUnavailable is returned when no host screen of an action is reachable.
var ErrActionUnavailable = errors.New("action unavailable from current screen")

// ErrInvalidUserState is returned when an action receives a configuration it cannot honor.
var ErrInvalidUserState = errors.New("invalid user state")

// ErrWaitTimeout is returned when a polled condition did not hold before its deadline.
var ErrWaitTimeout = errors.New("timed out waiting for condition")

// ErrElementNotFound is returned by drivers when no element matches a selector.
var ErrElementNotFound = errors.New("element not found")

// ErrNotLaunched is returned by drivers when the application has not been launched.
var ErrNotLaunched = errors.New("application not launched")

// ErrReportNotFound is returned when a report ID cannot be found in the store.
var ErrReportNotFound = errors.New("report not found")
