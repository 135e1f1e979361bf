// Package discover implements the optional source auto-discovery helper:
// given textual inputs and a set of loaded source classes, it weighs each
// input against every queryable class's "babeltrace.support-info" response
// and groups inputs by winning class and group key.
//
// Grounded on the teacher's internal/source registry (tracking loaded
// sources by identity) generalized from schema sources to plugin source
// classes, and on schema/load's directory-recursion shape for the
// unclaimed-string-as-path fallback.
package discover
