package sliceutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b", "c"}, "b"))
	assert.False(t, Contains([]string{"a", "b", "c"}, "d"))
	assert.False(t, Contains(nil, "a"))
}

func TestRemoveDuplicates(t *testing.T) {
	type test struct {
		desc  string
		input []string
		want  []string
	}

	tests := []test{
		{desc: "no duplicates", input: []string{"a", "b"}, want: []string{"a", "b"}},
		{desc: "adjacent duplicates", input: []string{"a", "a", "b"}, want: []string{"a", "b"}},
		{desc: "keeps first occurrence", input: []string{"b", "a", "b"}, want: []string{"b", "a"}},
		{desc: "empty", input: nil, want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.want, RemoveDuplicates(tc.input))
		})
	}
}
