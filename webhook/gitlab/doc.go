// Package gitlab implements a webhook.IDExtractor for GitLab (gitlab.com or
// self-managed) webhook deliveries. The extractor returns the numeric project
// ID of the payload as a decimal string.
package gitlab
