package main

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"freshcart/internal/models"
)

var testProduct = models.Product{Name: "Sourdough Loaf", Price: 10}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"Valid", "2.5", 2.5},
		{"Whole", "3", 3},
		{"Empty", "", 1},
		{"NonNumeric", "abc", 1},
		{"Zero", "0", 1},
		{"Negative", "-4", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseQuantity(tt.raw))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, splitList(" a.jpg , b.jpg ,"))
	assert.Empty(t, splitList(""))
}

func TestIsXHR(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/cart/add/abc", nil)
	assert.False(t, isXHR(r))

	r.Header.Set("X-Requested-With", "XMLHttpRequest")
	assert.True(t, isXHR(r))
}

func TestRedirectBack(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/wishlist/add/abc", nil)
	r.Header.Set("Referer", "/product/abc")
	w := httptest.NewRecorder()

	redirectBack(w, r, "/wishlist")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/product/abc", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	r.Header.Del("Referer")
	redirectBack(w, r, "/wishlist")
	assert.Equal(t, "/wishlist", w.Header().Get("Location"))
}

func TestLockUserSerializes(t *testing.T) {
	app := &application{}
	app.userLocks.locks = make(map[string]*sync.Mutex)

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := app.lockUser("user-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}
