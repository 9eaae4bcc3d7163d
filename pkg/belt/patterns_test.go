package belt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestIsEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.com", true},
		{"first.last@example.co.uk", true},
		{"user+tag@sub-domain.example.org", true},
		{`"quoted name"@example.com`, true},
		{"admin@[192.168.0.1]", true},
		{"not-an-email", false},
		{"a@b", false},
		{"a@b.c", false},
		{"@example.com", false},
		{"a..b@example.com", false},
		{"a b@example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmail(tt.in))
		})
	}
}

func TestGetPattern(t *testing.T) {
	logs := observeDiagnostics(t)

	require.NotNil(t, GetPattern(PatternEmail))
	assert.Zero(t, logs.Len())

	assert.Nil(t, GetPattern("nonexistent"))
	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "pattern", warnings[0].LoggerName)
	assert.Contains(t, warnings[0].Message, "nonexistent")
}

func TestLookupPattern(t *testing.T) {
	re, err := LookupPattern(PatternEmail)
	require.NoError(t, err)
	assert.True(t, re.MatchString("a@b.com"))

	re, err = LookupPattern("nonexistent")
	assert.Nil(t, re)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `"nonexistent"`)
}

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry(map[string]string{
		"zip":  `^\d{5}$`,
		"slug": `^[a-z0-9-]+$`,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"email", "slug", "zip"}, r.Names())
	assert.True(t, r.Test("zip", "12345"))
	assert.False(t, r.Test("zip", "1234"))
	assert.True(t, r.IsEmail("a@b.com"))

	// The default registry is untouched.
	assert.Equal(t, []string{"email"}, DefaultRegistry().Names())
	assert.Nil(t, GetPattern("zip"))
}

func TestNewRegistry_OverrideBuiltin(t *testing.T) {
	r, err := NewRegistry(map[string]string{PatternEmail: `^[a-z]+@corp\.example$`})
	require.NoError(t, err)
	assert.True(t, r.IsEmail("alice@corp.example"))
	assert.False(t, r.IsEmail("a@b.com"))
}

func TestNewRegistry_InvalidPattern(t *testing.T) {
	r, err := NewRegistry(map[string]string{"broken": `([a-z`})
	assert.Nil(t, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"broken"`)
}

func TestRegistry_MissingPatternFailsClosed(t *testing.T) {
	var empty *Registry
	assert.False(t, empty.IsEmail("a@b.com"))
	assert.False(t, empty.Test("anything", "x"))
	assert.Nil(t, empty.Names())

	_, err := empty.Lookup(PatternEmail)
	assert.ErrorIs(t, err, ErrNotFound)

	r, err := NewRegistry(nil)
	require.NoError(t, err)
	assert.False(t, r.Test("nonexistent", "x"))
}
