// Package provider abstracts the asynchronous inference service that turns
// article text into a summary. Submission returns a job id immediately; the
// result arrives later on the service's callback endpoint.
package provider

import "context"

// SubmitRequest carries one summarization job.
type SubmitRequest struct {
	Text        string
	Headline    string
	CallbackURL string
}

// Client submits summarization jobs. Implementations must register the
// callback URL with the submission so the provider can deliver the outcome.
type Client interface {
	// Submit hands the job to the provider and returns its job id. A
	// synchronous error means the job was never accepted and nothing will
	// call back.
	Submit(ctx context.Context, req SubmitRequest) (string, error)
	// Name is the tag recorded on cache entries produced by this provider.
	Name() string
}
