// Package xmlinstance loads and saves model.Instance values in the XML
// instance format used throughout this ecosystem: a <SPInstance> root
// carrying a job-indexed flow vector, processing/setup/due-date tables
// (each with an optional "default" attribute and per-pair overrides),
// and absolute deadlines. It is the one package in this module that
// reaches for the standard library's encoding/xml instead of a
// third-party dependency: no XML library appears anywhere in the
// example pack this module was grounded on, so there is nothing to
// adopt instead (see this module's design notes).
package xmlinstance
