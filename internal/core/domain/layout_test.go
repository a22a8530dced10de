package domain_test

import (
	"path/filepath"
	"testing"

	"go.trai.ch/pinfile/internal/core/domain"
)

func TestLayoutPaths(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "DefaultStatePath",
			got:      domain.DefaultStatePath(),
			expected: ".pinfile",
		},
		{
			name:     "StorePath",
			got:      domain.StorePath(".pinfile"),
			expected: filepath.Join(".pinfile", "store"),
		},
		{
			name:     "InventoryPath",
			got:      domain.InventoryPath("/tmp/state"),
			expected: filepath.Join("/tmp/state", "inventory.db"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s() = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}
