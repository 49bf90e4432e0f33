package eventstream

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream(t *testing.T) {
	t.Run("With Subscription", func(t *testing.T) {
		stream := New()

		sub := stream.AddSubscriber()
		require.NotNil(t, sub)
		require.NotEmpty(t, sub.ID())
		stream.Subscribe(sub, "t1")
		stream.Subscribe(sub, "t2")

		require.EqualValues(t, 1, stream.SubscribersCount("t1"))
		require.EqualValues(t, 1, stream.SubscribersCount("t2"))
		assert.ElementsMatch(t, []string{"t1", "t2"}, sub.Topics())

		stream.RemoveSubscriber(sub)
		assert.Zero(t, stream.SubscribersCount("t1"))
		assert.Zero(t, stream.SubscribersCount("t2"))
		assert.False(t, sub.Active())

		// a removed subscriber can't sign up again
		stream.Subscribe(sub, "t3")
		assert.Zero(t, stream.SubscribersCount("t3"))

		t.Cleanup(func() {
			stream.Close()
		})
	})
	t.Run("With Unsubscription", func(t *testing.T) {
		stream := New()

		sub := stream.AddSubscriber()
		require.NotNil(t, sub)
		stream.Subscribe(sub, "t1")
		stream.Subscribe(sub, "t2")

		stream.Unsubscribe(sub, "t1")
		assert.Zero(t, stream.SubscribersCount("t1"))
		require.EqualValues(t, 1, stream.SubscribersCount("t2"))
		assert.ElementsMatch(t, []string{"t2"}, sub.Topics())

		t.Cleanup(func() {
			stream.Close()
		})
	})
	t.Run("With Publication", func(t *testing.T) {
		stream := New()

		sub := stream.AddSubscriber()
		require.NotNil(t, sub)
		stream.Subscribe(sub, "t1")
		stream.Subscribe(sub, "t2")

		stream.Publish("t1", "hi")
		stream.Publish("t2", "hello")
		// nobody listens on t3
		stream.Publish("t3", "dropped")

		var messages []*Message
		for message := range sub.Iterator() {
			messages = append(messages, message)
		}

		require.Len(t, messages, 2)
		assert.Equal(t, "t1", messages[0].Topic)
		assert.Equal(t, "hi", messages[0].Payload)
		assert.Equal(t, "t2", messages[1].Topic)
		assert.Equal(t, "hello", messages[1].Payload)

		t.Cleanup(func() {
			stream.Close()
		})
	})
	t.Run("With concurrent publishers", func(t *testing.T) {
		stream := New()

		sub := stream.AddSubscriber()
		stream.Subscribe(sub, "t1")

		const publishers = 10
		const each = 100
		var wg sync.WaitGroup
		wg.Add(publishers)
		for i := 0; i < publishers; i++ {
			go func() {
				defer wg.Done()
				for j := 0; j < each; j++ {
					stream.Publish("t1", j)
				}
			}()
		}
		wg.Wait()

		var count int
		for range sub.Iterator() {
			count++
		}
		assert.Equal(t, publishers*each, count)

		t.Cleanup(func() {
			stream.Close()
		})
	})
	t.Run("With Close", func(t *testing.T) {
		stream := New()

		sub := stream.AddSubscriber()
		stream.Subscribe(sub, "t1")

		stream.Close()
		assert.False(t, sub.Active())
		assert.Zero(t, stream.SubscribersCount("t1"))

		// publishing after close is a no-op
		stream.Publish("t1", "hi")
	})
}
