package hub

import (
	"context"
	"testing"
	"time"

	"github.com/DoyleJ11/portal-race/internal/config"
	"github.com/DoyleJ11/portal-race/internal/lobby"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	setup, err := config.DefaultLayout().Setup()
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewHub(ctx, lobby.NewFactory(setup, nil, time.Millisecond, 1, nil), nil)
}

func TestHub_Create_Get_SamePointer(t *testing.T) {
	h := newTestHub(t)
	reply := make(chan *lobby.Lobby, 1)

	h.Inbox() <- CreateLobby{Code: "ZED123", Reply: reply}
	lb1 := <-reply

	h.Inbox() <- GetLobby{Code: "ZED123", Reply: reply}
	lb2 := <-reply

	require.NotNil(t, lb1)
	assert.Same(t, lb1, lb2)

	h.Inbox() <- CreateLobby{Code: "ZED123", Reply: reply}
	assert.Same(t, lb1, <-reply, "creating an existing code returns it")
}

func TestHub_ListAndRemove(t *testing.T) {
	h := newTestHub(t)
	reply := make(chan *lobby.Lobby, 1)
	for _, code := range []string{"BBB222", "AAA111"} {
		h.Inbox() <- CreateLobby{Code: code, Reply: reply}
		require.NotNil(t, <-reply)
	}

	codes := make(chan []string, 1)
	h.Inbox() <- ListLobbies{Reply: codes}
	assert.Equal(t, []string{"AAA111", "BBB222"}, <-codes)

	h.Inbox() <- GetLobby{Code: "AAA111", Reply: reply}
	removed := <-reply
	h.Inbox() <- RemoveLobby{Code: "AAA111"}

	select {
	case <-removed.Done():
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("removed lobby still running")
	}

	h.Inbox() <- GetLobby{Code: "AAA111", Reply: reply}
	assert.Nil(t, <-reply)
}

func TestHub_ShutdownStopsLobbies(t *testing.T) {
	h := newTestHub(t)
	reply := make(chan *lobby.Lobby, 1)
	h.Inbox() <- CreateLobby{Code: "QWE789", Reply: reply}
	lb := <-reply

	h.Inbox() <- ShutdownHub{}

	for _, done := range []<-chan struct{}{h.Done(), lb.Done()} {
		select {
		case <-done:
		case <-time.After(500 * time.Millisecond):
			t.Fatalf("hub shutdown left something running")
		}
	}
}
