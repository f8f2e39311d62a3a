// Package webhook turns git hosting platform webhook payloads into short,
// stable repository fingerprints.
//
// The IDExtractor interface abstracts pulling the platform's repository
// identifier out of a raw payload. Implementations exist for GitHub, GitLab,
// and Bitbucket in sub-packages. IDExtractorFunc is a convenience adapter that
// lets plain functions satisfy the interface. Fingerprint hashes the
// extracted identifier with a hasher.Hasher.
package webhook
