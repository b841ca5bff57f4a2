// Package plan holds the result of a planning run: routes that ship, receipted
// previews, undelivered and never deliverable orders, and recorded failures.
package plan
