package toolbox

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   Kind
		wantStatus int
	}{
		{
			name:     "classified error passes through",
			err:      Errorf(KindSend, "bad recipient"),
			wantKind: KindSend,
		},
		{
			name:     "wrapped classified error passes through",
			err:      fmt.Errorf("sending: %w", Errorf(KindValidation, "nope")),
			wantKind: KindValidation,
		},
		{
			name:     "deadline exceeded",
			err:      context.DeadlineExceeded,
			wantKind: KindTimeout,
		},
		{
			name:     "context canceled",
			err:      context.Canceled,
			wantKind: KindTimeout,
		},
		{
			name:       "googleapi 404",
			err:        &googleapi.Error{Code: 404, Message: "message not found"},
			wantKind:   KindNotFound,
			wantStatus: 404,
		},
		{
			name:       "googleapi 504",
			err:        &googleapi.Error{Code: 504, Message: "gateway timeout"},
			wantKind:   KindTimeout,
			wantStatus: 504,
		},
		{
			name:       "googleapi 500",
			err:        &googleapi.Error{Code: 500, Message: "backend error"},
			wantKind:   KindUpstream,
			wantStatus: 500,
		},
		{
			name:       "googleapi 429",
			err:        &googleapi.Error{Code: 429, Message: "rate limit"},
			wantKind:   KindUpstream,
			wantStatus: 429,
		},
		{
			name:     "plain error",
			err:      errors.New("connection reset"),
			wantKind: KindUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantStatus, got.UpstreamStatus)
		})
	}
}

func TestClassifyNil(t *testing.T) {
	assert.Nil(t, Classify(nil))
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "network failure without status", err: &Error{Kind: KindUpstream}, want: true},
		{name: "rate limited", err: &Error{Kind: KindUpstream, UpstreamStatus: 429}, want: true},
		{name: "server error", err: &Error{Kind: KindUpstream, UpstreamStatus: 503}, want: true},
		{name: "client error", err: &Error{Kind: KindUpstream, UpstreamStatus: 400}, want: false},
		{name: "not found", err: &Error{Kind: KindNotFound, UpstreamStatus: 404}, want: false},
		{name: "validation", err: &Error{Kind: KindValidation}, want: false},
		{name: "timeout", err: &Error{Kind: KindTimeout}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retryable(tt.err))
		})
	}
}

func TestErrorString(t *testing.T) {
	e := &Error{Kind: KindUpstream, Message: "boom", UpstreamStatus: 502}
	assert.Equal(t, "upstream_error: boom (upstream status 502)", e.Error())

	e = &Error{Kind: KindValidation, Message: "missing field"}
	assert.Equal(t, "validation_error: missing field", e.Error())
}
