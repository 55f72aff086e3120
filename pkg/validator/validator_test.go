package validator

import (
	"strings"
	"testing"
)

type urlRequest struct {
	URL      string `validate:"required,media_url"`
	Language string `validate:"omitempty,oneof=english indonesian"`
}

func TestCustomValidator(t *testing.T) {
	cv := New()

	tests := []struct {
		name    string
		req     urlRequest
		wantErr string
	}{
		{"valid https", urlRequest{URL: "https://youtu.be/dQw4w9WgXcQ"}, ""},
		{"valid http with language", urlRequest{URL: "http://example.com/a.mp3", Language: "indonesian"}, ""},
		{"missing url", urlRequest{}, "URL is required"},
		{"ftp scheme", urlRequest{URL: "ftp://example.com/a.mp3"}, "URL must be an http or https URL"},
		{"relative", urlRequest{URL: "/a.mp3"}, "URL must be an http or https URL"},
		{"bad language", urlRequest{URL: "https://example.com", Language: "french"}, "Language must be one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cv.Validate(tt.req)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			msgs := Messages(err)
			if len(msgs) != 1 || !strings.HasPrefix(msgs[0], tt.wantErr) {
				t.Errorf("Messages() = %v, want prefix %q", msgs, tt.wantErr)
			}
		})
	}
}
