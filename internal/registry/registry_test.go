package registry

import (
	"testing"

	"github.com/TanishqM1/ladderbook/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestGet_CreatesOnFirstReference(t *testing.T) {
	r := New()

	b := r.Get("AAPL")
	assert.NotNil(t, b)
	assert.Equal(t, 0, b.Size())
	assert.ElementsMatch(t, []string{"AAPL"}, r.Names())
}

func TestGet_ReturnsSameBookForSameName(t *testing.T) {
	r := New()

	b1 := r.Get("AAPL")
	b1.AddOrder(domain.NewOrder(1, domain.Buy, domain.GoodTillCancel, 10000, 100))

	b2 := r.Get("AAPL")
	assert.Same(t, b1, b2)
	assert.Equal(t, 1, b2.Size())
}

func TestGet_SeparatesDifferentBooks(t *testing.T) {
	r := New()

	aapl := r.Get("AAPL")
	msft := r.Get("MSFT")
	assert.NotSame(t, aapl, msft)
	assert.ElementsMatch(t, []string{"AAPL", "MSFT"}, r.Names())
}
