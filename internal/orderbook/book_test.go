package orderbook

import (
	"testing"

	"github.com/TanishqM1/ladderbook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(id uint64, side domain.Side, tif domain.TimeInForce, price int32, qty uint32) *domain.Order {
	return domain.NewOrder(id, side, tif, price, qty)
}

func TestAddOrder_RestsWhenNoCross(t *testing.T) {
	b := NewBook()

	trades := b.AddOrder(newOrder(1, domain.Sell, domain.GoodTillCancel, 10010, 1000))
	assert.Empty(t, trades)

	_, asks := b.LevelSnapshot()
	require.Len(t, asks, 1)
	assert.Equal(t, int32(10010), asks[0].Price)
	assert.Equal(t, uint32(1000), asks[0].Quantity)
	assert.Equal(t, 1, b.Size())
}

func TestAddOrder_AggregatesAtSamePrice(t *testing.T) {
	b := NewBook()

	b.AddOrder(newOrder(1, domain.Sell, domain.GoodTillCancel, 10010, 500))
	b.AddOrder(newOrder(2, domain.Sell, domain.GoodTillCancel, 10010, 300))

	_, asks := b.LevelSnapshot()
	require.Len(t, asks, 1)
	assert.Equal(t, uint32(800), asks[0].Quantity)
}

func TestLevelSnapshot_BestPriceOrdering(t *testing.T) {
	b := NewBook()

	b.AddOrder(newOrder(1, domain.Buy, domain.GoodTillCancel, 9990, 100))
	b.AddOrder(newOrder(2, domain.Buy, domain.GoodTillCancel, 10000, 100))
	b.AddOrder(newOrder(3, domain.Buy, domain.GoodTillCancel, 9980, 100))

	bids, _ := b.LevelSnapshot()
	require.Len(t, bids, 3)
	assert.Equal(t, int32(10000), bids[0].Price, "best bid is the highest price")
	assert.Equal(t, int32(9990), bids[1].Price)
	assert.Equal(t, int32(9980), bids[2].Price)
}

func TestAddOrder_FullFillAtMakerPrice(t *testing.T) {
	b := NewBook()

	b.AddOrder(newOrder(1, domain.Sell, domain.GoodTillCancel, 10010, 1000))
	trades := b.AddOrder(newOrder(2, domain.Buy, domain.GoodTillCancel, 10010, 1000))

	require.Len(t, trades, 1)
	tr := trades[0]
	assert.Equal(t, uint32(1000), tr.Bid.Quantity)
	assert.Equal(t, uint32(1000), tr.Ask.Quantity)
	assert.Equal(t, int32(10010), tr.Bid.Price)
	assert.Equal(t, int32(10010), tr.Ask.Price)
	assert.Equal(t, uint64(1), tr.Ask.OrderID)
	assert.Equal(t, uint64(2), tr.Bid.OrderID)

	assert.Equal(t, 0, b.Size())
}

func TestAddOrder_TradePriceIsRestingOrders(t *testing.T) {
	b := NewBook()

	// resting sell at 10000; aggressive buy willing to pay up to 10050
	b.AddOrder(newOrder(1, domain.Sell, domain.GoodTillCancel, 10000, 100))
	trades := b.AddOrder(newOrder(2, domain.Buy, domain.GoodTillCancel, 10050, 100))

	require.Len(t, trades, 1)
	assert.Equal(t, int32(10000), trades[0].Bid.Price, "trade executes at the resting (maker) price")
	assert.Equal(t, int32(10000), trades[0].Ask.Price)
}

func TestAddOrder_PartialFillLeavesResidual(t *testing.T) {
	b := NewBook()

	b.AddOrder(newOrder(1, domain.Sell, domain.GoodTillCancel, 10010, 1000))
	trades := b.AddOrder(newOrder(2, domain.Buy, domain.GoodTillCancel, 10010, 200))

	require.Len(t, trades, 1)
	assert.Equal(t, uint32(200), trades[0].Bid.Quantity)

	_, asks := b.LevelSnapshot()
	require.Len(t, asks, 1)
	assert.Equal(t, uint32(800), asks[0].Quantity, "residual of the maker order remains resting")
	assert.Equal(t, 1, b.Size())
}

func TestAddOrder_FIFOWithinLevel(t *testing.T) {
	b := NewBook()

	b.AddOrder(newOrder(1, domain.Sell, domain.GoodTillCancel, 10010, 100))
	b.AddOrder(newOrder(2, domain.Sell, domain.GoodTillCancel, 10010, 100))

	trades := b.AddOrder(newOrder(3, domain.Buy, domain.GoodTillCancel, 10010, 100))

	require.Len(t, trades, 1)
	assert.Equal(t, uint64(1), trades[0].Ask.OrderID, "the older resting order fills first")
	assert.True(t, b.CancelOrder(2))
}

func TestAddOrder_FillAndKillNoCrossIsDropped(t *testing.T) {
	b := NewBook()

	trades := b.AddOrder(newOrder(1, domain.Buy, domain.FillAndKill, 10000, 500))
	assert.Empty(t, trades)
	assert.Equal(t, 0, b.Size(), "a FillAndKill order with nothing to cross against never rests")
}

func TestAddOrder_FillAndKillPartialResidualCancelled(t *testing.T) {
	b := NewBook()

	b.AddOrder(newOrder(1, domain.Sell, domain.GoodTillCancel, 10010, 100))
	trades := b.AddOrder(newOrder(2, domain.Buy, domain.FillAndKill, 10010, 1000))

	require.Len(t, trades, 1)
	assert.Equal(t, uint32(100), trades[0].Bid.Quantity)
	assert.Equal(t, 0, b.Size(), "the unfilled remainder of a FillAndKill order is discarded, not rested")
}

func TestAddOrder_DuplicateIDIgnored(t *testing.T) {
	b := NewBook()

	b.AddOrder(newOrder(1, domain.Buy, domain.GoodTillCancel, 9990, 100))
	trades := b.AddOrder(newOrder(1, domain.Buy, domain.GoodTillCancel, 9990, 50))

	assert.Empty(t, trades)
	assert.Equal(t, 1, b.Size())

	bids, _ := b.LevelSnapshot()
	require.Len(t, bids, 1)
	assert.Equal(t, uint32(100), bids[0].Quantity, "the duplicate insert did not change resting quantity")
}

func TestCancelOrder(t *testing.T) {
	b := NewBook()

	b.AddOrder(newOrder(1, domain.Buy, domain.GoodTillCancel, 9990, 100))
	assert.True(t, b.CancelOrder(1))
	assert.False(t, b.CancelOrder(1), "cancelling an already-cancelled id is a no-op")
	assert.False(t, b.CancelOrder(999), "cancelling an unknown id is a no-op")

	bids, _ := b.LevelSnapshot()
	assert.Empty(t, bids, "the price level is erased once its last order is cancelled")
}

func TestModifyOrder_ForfeitsTimePriority(t *testing.T) {
	b := NewBook()

	b.AddOrder(newOrder(1, domain.Buy, domain.GoodTillCancel, 10000, 100))
	b.AddOrder(newOrder(2, domain.Buy, domain.GoodTillCancel, 10000, 100))

	// order 1 re-quotes at the same price; it should lose its place to order 2
	trades := b.ModifyOrder(1, domain.Buy, 10000, 100)
	assert.Empty(t, trades)

	fill := b.AddOrder(newOrder(3, domain.Sell, domain.GoodTillCancel, 10000, 100))
	require.Len(t, fill, 1)
	assert.Equal(t, uint64(2), fill[0].Bid.OrderID, "order 2 now has priority over the re-quoted order 1")
}

func TestModifyOrder_UnknownIDIsNoOp(t *testing.T) {
	b := NewBook()
	trades := b.ModifyOrder(42, domain.Buy, 10000, 100)
	assert.Nil(t, trades)
}

func TestMatchLoop_SweepsMultipleLevels(t *testing.T) {
	b := NewBook()

	b.AddOrder(newOrder(1, domain.Sell, domain.GoodTillCancel, 10000, 100))
	b.AddOrder(newOrder(2, domain.Sell, domain.GoodTillCancel, 10010, 100))
	b.AddOrder(newOrder(3, domain.Sell, domain.GoodTillCancel, 10020, 100))

	trades := b.AddOrder(newOrder(4, domain.Buy, domain.GoodTillCancel, 10020, 250))

	require.Len(t, trades, 3)
	assert.Equal(t, int32(10000), trades[0].Ask.Price)
	assert.Equal(t, int32(10010), trades[1].Ask.Price)
	assert.Equal(t, int32(10020), trades[2].Ask.Price)
	assert.Equal(t, uint32(50), trades[2].Ask.Quantity, "the sweep stops partway through the last level")

	_, asks := b.LevelSnapshot()
	require.Len(t, asks, 1)
	assert.Equal(t, uint32(50), asks[0].Quantity)
}

func TestBookNeverCrosses(t *testing.T) {
	b := NewBook()

	b.AddOrder(newOrder(1, domain.Buy, domain.GoodTillCancel, 10000, 100))
	b.AddOrder(newOrder(2, domain.Sell, domain.GoodTillCancel, 10050, 100))
	b.AddOrder(newOrder(3, domain.Buy, domain.GoodTillCancel, 10060, 50))

	bids, asks := b.LevelSnapshot()
	require.NotEmpty(t, bids)
	require.NotEmpty(t, asks)
	assert.Less(t, bids[0].Price, asks[0].Price, "best bid must stay below best ask after every operation")
}
