package rackspace

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Async job states.
const (
	JobInitialized = "INITIALIZED"
	JobRunning     = "RUNNING"
	JobCompleted   = "COMPLETED"
	JobError       = "ERROR"
)

// Job is the status of an asynchronous request.
// Response holds the result once the job completed and details were requested.
type Job struct {
	JobID       string          `json:"jobId"`
	Status      string          `json:"status"`
	Verb        string          `json:"verb,omitempty"`
	RequestURL  string          `json:"requestUrl,omitempty"`
	CallbackURL string          `json:"callbackUrl,omitempty"`
	Request     string          `json:"request,omitempty"`
	Response    json.RawMessage `json:"response,omitempty"`
	Error       *JobFault       `json:"error,omitempty"`
}

// JobFault describes why a job ended in the ERROR state.
type JobFault struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

// Done reports whether the job has finished, successfully or not.
func (j *Job) Done() bool {
	return j.Status == JobCompleted || j.Status == JobError
}

// JobStatus polls the status of a single asynchronous job once.
func (d *DNS) JobStatus(ctx context.Context, jobID string, showDetails bool) (*Job, error) {
	job := &Job{}

	params := url.Values{"showDetails": {boolString(showDetails)}}

	err := d.call(ctx, http.MethodGet, "/status/"+url.PathEscape(jobID), params, nil, job)
	if err != nil {
		return nil, err
	}

	return job, nil
}

// JobStatuses returns the status of every recent asynchronous job.
func (d *DNS) JobStatuses(ctx context.Context, showDetails bool) ([]Job, error) {
	result := &struct {
		AsyncResponses []Job `json:"asyncResponses"`
	}{}

	params := url.Values{"showDetails": {boolString(showDetails)}}

	err := d.call(ctx, http.MethodGet, "/status", params, nil, result)
	if err != nil {
		return nil, err
	}

	return result.AsyncResponses, nil
}
