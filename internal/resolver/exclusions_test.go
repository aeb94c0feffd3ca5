package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSystemLibrary(t *testing.T) {
	type test struct {
		name string
		want bool
	}

	tests := []test{
		{name: "KERNEL32.dll", want: true},
		{name: "kernel32.dll", want: true},
		{name: "api-ms-win-crt-runtime-l1-1-0.dll", want: true},
		{name: "ext-ms-win-gaming-net-l1-1-0.dll", want: true},
		{name: "libgtk-3-0.dll", want: false},
		{name: "libwinpthread-1.dll", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsSystemLibrary(tc.name))
		})
	}
}
