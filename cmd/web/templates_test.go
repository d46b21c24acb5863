package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHumanDate(t *testing.T) {
	tests := []struct {
		name string
		tm   time.Time
		want string
	}{
		{"UTC", time.Date(2025, 3, 17, 10, 15, 0, 0, time.UTC), "17 Mar 2025 at 10:15"},
		{"Empty", time.Time{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, humanDate(tt.tm))
		})
	}
}

func TestCartLineTotal(t *testing.T) {
	line := &cartLine{Quantity: 2.5}
	line.Product = &testProduct
	assert.Equal(t, 25.0, line.LineTotal())
}
