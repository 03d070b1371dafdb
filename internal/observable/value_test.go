package observable

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe_ReplaysCurrentValue(t *testing.T) {
	v := New("initial")

	var got []string
	cancel := v.Subscribe(func(s string) { got = append(got, s) })
	defer cancel()

	require.Equal(t, []string{"initial"}, got)
}

func TestSet_DeliversToAllSubscribersInOrder(t *testing.T) {
	v := New(0)

	var a, b []int
	cancelA := v.Subscribe(func(i int) { a = append(a, i) })
	defer cancelA()
	v.Set(1)
	cancelB := v.Subscribe(func(i int) { b = append(b, i) })
	defer cancelB()
	v.Set(2)
	v.Set(3)

	assert.Equal(t, []int{0, 1, 2, 3}, a)
	assert.Equal(t, []int{1, 2, 3}, b)
	assert.Equal(t, 3, v.Get())
}

func TestCancel_StopsDeliveryAndIsIdempotent(t *testing.T) {
	v := New(0)

	var got []int
	cancel := v.Subscribe(func(i int) { got = append(got, i) })
	require.Equal(t, 1, v.Subscribers())

	cancel()
	cancel()
	v.Set(5)

	assert.Equal(t, []int{0}, got)
	assert.Equal(t, 0, v.Subscribers())
}

func TestCallbackMayReadValue(t *testing.T) {
	v := New(1)
	var seen int
	cancel := v.Subscribe(func(int) { seen = v.Get() })
	defer cancel()

	v.Set(7)
	assert.Equal(t, 7, seen)
}

func TestConcurrentSet_SubscribersSeeIdenticalSequences(t *testing.T) {
	v := New(-1)

	var muA, muB sync.Mutex
	var a, b []int
	defer v.Subscribe(func(i int) { muA.Lock(); a = append(a, i); muA.Unlock() })()
	defer v.Subscribe(func(i int) { muB.Lock(); b = append(b, i); muB.Unlock() })()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v.Set(i)
		}(i)
	}
	wg.Wait()

	require.Len(t, a, 51)
	assert.Equal(t, a, b)
	assert.Equal(t, a[len(a)-1], v.Get())
}
