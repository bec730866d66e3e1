package ws

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirectory_SetOverwrites(t *testing.T) {
	req := require.New(t)
	d := NewDirectory()
	c1 := &fakeConn{}
	c2 := &fakeConn{}

	d.Set("u1", c1, "a_b")
	d.Set("u1", c2, "a_c")

	e, ok := d.Get("u1")
	req.True(ok)
	req.Equal(Conn(c2), e.Conn)
	req.Equal("a_c", e.ConversationID)
}

func TestDirectory_GetAbsent(t *testing.T) {
	req := require.New(t)
	d := NewDirectory()

	_, ok := d.Get("nobody")
	req.False(ok)
}

func TestDirectory_Clear(t *testing.T) {
	req := require.New(t)
	d := NewDirectory()
	d.Set("u1", &fakeConn{}, "a_b")

	d.Clear("u1")

	_, ok := d.Get("u1")
	req.False(ok)
}

func TestDirectory_ClearConn_OnlyOwnEntry(t *testing.T) {
	req := require.New(t)
	d := NewDirectory()
	stale := &fakeConn{}
	fresh := &fakeConn{}

	// пользователь переподключился: запись уже указывает на новый сокет
	d.Set("u1", stale, "a_b")
	d.Set("u1", fresh, "a_b")

	_, cleared := d.ClearConn("u1", stale)
	req.False(cleared)

	e, ok := d.Get("u1")
	req.True(ok)
	req.Equal(Conn(fresh), e.Conn)

	got, cleared := d.ClearConn("u1", fresh)
	req.True(cleared)
	req.Equal("a_b", got.ConversationID)

	_, ok = d.Get("u1")
	req.False(ok)
}
