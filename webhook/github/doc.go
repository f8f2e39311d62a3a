// Package github implements a webhook.IDExtractor for GitHub (cloud or
// enterprise) webhook deliveries. Configure the event type with a Config; the
// extractor returns the numeric repository.id of the payload as a decimal
// string.
package github
