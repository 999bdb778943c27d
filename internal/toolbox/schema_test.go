package toolbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidate(t *testing.T) {
	schema := Schema{
		{Name: "query", Type: TypeString, Required: true},
		{Name: "max_results", Type: TypeInt, Default: int64(10)},
		{Name: "include_spam", Type: TypeBool},
		{Name: "after", Type: TypeTime},
		{Name: "labels", Type: TypeStringList},
	}

	tests := []struct {
		name    string
		raw     map[string]any
		want    Args
		wantErr bool
	}{
		{
			name: "all fields provided",
			raw: map[string]any{
				"query":        "is:unread",
				"max_results":  float64(25),
				"include_spam": true,
				"after":        "2026-01-15T09:00:00Z",
				"labels":       []any{"INBOX", "IMPORTANT"},
			},
			want: Args{
				"query":        "is:unread",
				"max_results":  int64(25),
				"include_spam": true,
				"after":        time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
				"labels":       []string{"INBOX", "IMPORTANT"},
			},
		},
		{
			name: "defaults applied when absent",
			raw:  map[string]any{"query": "from:alice"},
			want: Args{"query": "from:alice", "max_results": int64(10)},
		},
		{
			name:    "missing required field",
			raw:     map[string]any{"max_results": float64(5)},
			wantErr: true,
		},
		{
			name:    "empty string counts as absent",
			raw:     map[string]any{"query": "   "},
			wantErr: true,
		},
		{
			name:    "explicit null counts as absent",
			raw:     map[string]any{"query": nil},
			wantErr: true,
		},
		{
			name: "unknown fields ignored",
			raw:  map[string]any{"query": "x", "shiny_new_arg": 42},
			want: Args{"query": "x", "max_results": int64(10)},
		},
		{
			name: "date-only timestamp accepted",
			raw:  map[string]any{"query": "x", "after": "2026-02-01"},
			want: Args{
				"query":       "x",
				"max_results": int64(10),
				"after":       time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "comma-separated list shorthand",
			raw:  map[string]any{"query": "x", "labels": "a@x.com, b@x.com"},
			want: Args{
				"query":       "x",
				"max_results": int64(10),
				"labels":      []string{"a@x.com", "b@x.com"},
			},
		},
		{
			name: "integer given as string",
			raw:  map[string]any{"query": "x", "max_results": "7"},
			want: Args{"query": "x", "max_results": int64(7)},
		},
		{
			name:    "wrong type for integer",
			raw:     map[string]any{"query": "x", "max_results": "lots"},
			wantErr: true,
		},
		{
			name:    "wrong type for boolean",
			raw:     map[string]any{"query": "x", "include_spam": "kinda"},
			wantErr: true,
		},
		{
			name:    "malformed timestamp",
			raw:     map[string]any{"query": "x", "after": "yesterday"},
			wantErr: true,
		},
		{
			name:    "list with non-string element",
			raw:     map[string]any{"query": "x", "labels": []any{"ok", 3}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := schema.Validate(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				var terr *Error
				require.ErrorAs(t, err, &terr)
				assert.Equal(t, KindValidation, terr.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArgsAccessors(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	args := Args{
		"s":    "hello",
		"i":    int64(42),
		"b":    true,
		"t":    now,
		"list": []string{"a", "b"},
	}

	assert.Equal(t, "hello", args.String("s"))
	assert.Equal(t, int64(42), args.Int("i"))
	assert.True(t, args.Bool("b"))
	assert.Equal(t, now, args.Time("t"))
	assert.Equal(t, []string{"a", "b"}, args.StringList("list"))

	assert.True(t, args.Has("s"))
	assert.False(t, args.Has("missing"))
	assert.Equal(t, "", args.String("missing"))
	assert.Equal(t, int64(0), args.Int("missing"))
	assert.True(t, args.Time("missing").IsZero())
	assert.Nil(t, args.StringList("missing"))
}
