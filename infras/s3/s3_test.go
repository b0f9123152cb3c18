package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	tests := []struct {
		name     string
		public   string
		endpoint string
		want     string
	}{
		{
			name:     "public domain wins",
			public:   "https://cdn.example.com/",
			endpoint: "https://s3.example.com",
			want:     "https://cdn.example.com/queue-archive/a.json",
		},
		{
			name:     "path style endpoint",
			endpoint: "https://s3.example.com/",
			want:     "https://s3.example.com/archive/queue-archive/a.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, objectURL(tt.public, tt.endpoint, "archive", "queue-archive/a.json"))
		})
	}
}
