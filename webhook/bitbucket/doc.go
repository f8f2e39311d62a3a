// Package bitbucket implements a webhook.IDExtractor for Bitbucket Cloud and
// Bitbucket Server webhook deliveries. Cloud payloads identify repositories by
// a braced UUID, Server payloads by a numeric ID.
package bitbucket
