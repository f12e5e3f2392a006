// Package filter provides constructors for [jsonproc.ItemFilter], the
// per-node gate deciding whether a registered callback runs. Location
// filters select by object key or array index, value filters by string
// format, and [Valid] adapts ozzo-validation rules. Combine them with
// [And], [Or] and [Not].
package filter
