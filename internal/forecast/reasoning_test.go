package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopReasons_PriorityBands(t *testing.T) {
	items := []ReasoningItem{
		{Type: ReasonInfo, Message: "Supplier confirmed pricing"},
		{Type: ReasonCalculation, Message: "Coverage after arrival: 40 days"},
		{Type: ReasonWarning, Message: "Below safety stock threshold"},
		{Type: ReasonWarning, Message: "Projected stockout before arrival - must order now"},
		{Type: ReasonWarning, Message: "Demand spike detected"},
	}

	top := TopReasons(items, 3)

	require.Len(t, top, 3)
	assert.Equal(t, "Projected stockout before arrival - must order now", top[0].Message)
	assert.Equal(t, "Below safety stock threshold", top[1].Message)
	assert.Equal(t, "Coverage after arrival: 40 days", top[2].Message)
}

func TestTopReasons_StableWithinBand(t *testing.T) {
	items := []ReasoningItem{
		{Type: ReasonWarning, Message: "Stockout projected for June 14"},
		{Type: ReasonWarning, Message: "Lead time exceeds reorder window"},
		{Type: ReasonWarning, Message: "Must order before Friday"},
	}

	top := TopReasons(items, 3)

	require.Len(t, top, 3)
	assert.Equal(t, items[0], top[0])
	assert.Equal(t, items[1], top[1])
	assert.Equal(t, items[2], top[2])
}

func TestTopReasons_InfoNeverSurfaced(t *testing.T) {
	items := []ReasoningItem{
		{Type: ReasonInfo, Message: "Stockout history available"},
		{Type: ReasonInfo, Message: "Lead time from supplier catalog"},
	}

	assert.Empty(t, TopReasons(items, 3))
}

func TestTopReasons_OtherWarningsLast(t *testing.T) {
	items := []ReasoningItem{
		{Type: ReasonWarning, Message: "Unusual return volume"},
		{Type: ReasonCalculation, Message: "Total lead time: 54 days"},
	}

	top := TopReasons(items, 3)

	require.Len(t, top, 2)
	assert.Equal(t, "Total lead time: 54 days", top[0].Message)
	assert.Equal(t, "Unusual return volume", top[1].Message)
}

func TestTopReasons_CalculationFilter(t *testing.T) {
	items := []ReasoningItem{
		{Type: ReasonCalculation, Message: "Unit cost: $4.20"},
		{Type: ReasonCalculation, Message: "Coverage: 18 days"},
	}

	top := TopReasons(items, 3)

	// Calculations only rank when they mention lead time, coverage or days.
	require.Len(t, top, 1)
	assert.Equal(t, "Coverage: 18 days", top[0].Message)
}

func TestTopReasons_TruncatesToMax(t *testing.T) {
	items := []ReasoningItem{
		{Type: ReasonWarning, Message: "Stockout risk A"},
		{Type: ReasonWarning, Message: "Stockout risk B"},
		{Type: ReasonWarning, Message: "Stockout risk C"},
		{Type: ReasonWarning, Message: "Stockout risk D"},
	}

	assert.Len(t, TopReasons(items, 2), 2)
	assert.Len(t, TopReasons(items, 0), DefaultMaxReasons)
}
