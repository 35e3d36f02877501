// Package analyzers derives pattern signals from activity records: anomalous
// days, productive streaks, app loyalty, context-switch gaps, rule-based
// workflow insights, summary cards and development-language trends.
//
// Every analyzer is a total function of its records, explicit parameters and
// the reference instant now. Inputs are never modified and analyzers that
// exclude the current day use now's local calendar date.
package analyzers
