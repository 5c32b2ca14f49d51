package usage_test

import (
	"sync"
	"testing"

	"github.com/XXpE3/goose/pkg/modeladapter/usage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsage_TokenCount(t *testing.T) {
	u := usage.Usage{
		InputTokens:  usage.Ptr(10),
		OutputTokens: usage.Ptr(5),
		TotalTokens:  usage.Ptr(15),
	}

	tc := u.TokenCount()
	assert.Equal(t, 10, tc.InputTokens)
	assert.Equal(t, 5, tc.OutputTokens)
	assert.Equal(t, 15, tc.Total())
}

func TestUsage_TokenCount_AbsentFields(t *testing.T) {
	tc := usage.Usage{}.TokenCount()

	assert.Zero(t, tc.InputTokens)
	assert.Zero(t, tc.OutputTokens)
	assert.Zero(t, tc.Total())
}

func TestProviderUsage_New(t *testing.T) {
	pu := usage.New("gpt-4o", usage.Usage{InputTokens: usage.Ptr(1)})

	assert.Equal(t, "gpt-4o", pu.Model)
	require.NotNil(t, pu.Usage.InputTokens)
	assert.Equal(t, 1, *pu.Usage.InputTokens)
	assert.Nil(t, pu.Usage.TotalTokens)
}

func TestTracker_AddLastTotal(t *testing.T) {
	var tr usage.Tracker

	_, ok := tr.Last()
	assert.False(t, ok)

	tr.Add(usage.TokenCount{InputTokens: 10, OutputTokens: 5})
	tr.Add(usage.TokenCount{InputTokens: 3, OutputTokens: 2})

	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, 3, last.InputTokens)

	total := tr.Total()
	assert.Equal(t, 13, total.InputTokens)
	assert.Equal(t, 7, total.OutputTokens)
	assert.Equal(t, 2, tr.Count())

	tr.Reset()
	assert.Zero(t, tr.Count())
}

func TestTracker_ConcurrentAdd(t *testing.T) {
	var tr usage.Tracker
	var wg sync.WaitGroup

	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Add(usage.TokenCount{InputTokens: 1, OutputTokens: 1})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, tr.Count())
	assert.Equal(t, 100, tr.Total().Total())
}
