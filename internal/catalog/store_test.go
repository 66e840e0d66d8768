package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(DefaultPosts(), WithIDGenerator(NewSequenceGenerator("id-", 1)))
	require.NoError(t, err)
	return s
}

func TestNewStore_Seeds(t *testing.T) {
	s := newTestStore(t)

	assert.Len(t, s.Posts(), 4)
	assert.Len(t, s.Comments(), 2)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		assert.Equal(t, SenderBot, m.Sender)
		assert.Equal(t, NowLabel, m.Timestamp)
	}
	assert.Equal(t, DefaultGreetings()[0], msgs[0].Text)
	assert.Equal(t, DefaultGreetings()[1], msgs[1].Text)
}

func TestNewStore_InvalidCatalog(t *testing.T) {
	tests := []struct {
		name  string
		posts []Post
	}{
		{
			name:  "empty id",
			posts: []Post{{Username: "someone"}},
		},
		{
			name:  "empty username",
			posts: []Post{{ID: "1"}},
		},
		{
			name:  "negative likes",
			posts: []Post{{ID: "1", Username: "a", LikeCount: -1}},
		},
		{
			name:  "negative comments",
			posts: []Post{{ID: "1", Username: "a", CommentCount: -3}},
		},
		{
			name:  "duplicate id",
			posts: []Post{{ID: "1", Username: "a"}, {ID: "1", Username: "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore(tt.posts)
			assert.Error(t, err)
		})
	}
}

func TestStore_PostsStableOrder(t *testing.T) {
	s := newTestStore(t)

	first := s.Posts()
	second := s.Posts()
	assert.Equal(t, first, second)

	// Mutating the returned slice must not leak into the catalog
	first[0].Username = "changed"
	assert.Equal(t, "techguru", s.Posts()[0].Username)
}

func TestStore_Post(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Post("3")
	require.NoError(t, err)
	assert.Equal(t, "foodie_life", p.Username)

	_, err = s.Post("missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.False(t, s.HasPost("missing"))
	assert.True(t, s.HasPost("1"))
}

func TestStore_AppendBlankRejected(t *testing.T) {
	inputs := []string{"", " ", "\t", "\n  \r\n", "   \t  "}

	for _, in := range inputs {
		s := newTestStore(t)
		comments := len(s.Comments())
		messages := len(s.Messages())

		_, err := s.AppendComment(in)
		assert.ErrorIs(t, err, ErrBlankText, "comment %q", in)
		assert.Len(t, s.Comments(), comments)

		_, err = s.AppendMessage(in)
		assert.ErrorIs(t, err, ErrBlankText, "message %q", in)
		assert.Len(t, s.Messages(), messages)
	}
}

func TestStore_AppendComment(t *testing.T) {
	s := newTestStore(t)
	before := s.Comments()

	c, err := s.AppendComment("love it")
	require.NoError(t, err)

	after := s.Comments()
	require.Len(t, after, len(before)+1)
	assert.Equal(t, c, after[len(after)-1])
	assert.Equal(t, "love it", c.Text)
	assert.Equal(t, CommentAuthor, c.Username)
	assert.Equal(t, NowLabel, c.Timestamp)
	assert.True(t, c.IsOwn())

	for _, existing := range before {
		assert.NotEqual(t, existing.ID, c.ID)
	}
}

func TestStore_AppendTrimsText(t *testing.T) {
	s := newTestStore(t)

	c, err := s.AppendComment("  link please \n")
	require.NoError(t, err)
	assert.Equal(t, "link please", c.Text)

	m, err := s.AppendMessage("\tHere you go ")
	require.NoError(t, err)
	assert.Equal(t, "Here you go", m.Text)
}

func TestStore_AppendMessage(t *testing.T) {
	s := newTestStore(t)
	before := s.Messages()

	m, err := s.AppendMessage("Here is your link")
	require.NoError(t, err)

	after := s.Messages()
	require.Len(t, after, len(before)+1)
	assert.Equal(t, m, after[len(after)-1])
	assert.Equal(t, SenderUser, m.Sender)
	assert.False(t, m.FromBot())
	// Seeded greetings stay in place
	assert.Equal(t, before, after[:len(before)])
}

func TestStore_UniqueIDsUnderRapidAppends(t *testing.T) {
	for _, gen := range []IDGenerator{UUIDGenerator{}, NewSequenceGenerator("", 0)} {
		s, err := NewStore(DefaultPosts(), WithIDGenerator(gen))
		require.NoError(t, err)

		for i := 0; i < 500; i++ {
			_, err := s.AppendComment("kw")
			require.NoError(t, err)
			_, err = s.AppendMessage("msg")
			require.NoError(t, err)
		}

		seen := make(map[string]bool)
		for _, c := range s.Comments() {
			assert.False(t, seen[c.ID], "duplicate comment id %s", c.ID)
			seen[c.ID] = true
		}
		seen = make(map[string]bool)
		for _, m := range s.Messages() {
			assert.False(t, seen[m.ID], "duplicate message id %s", m.ID)
			seen[m.ID] = true
		}
	}
}

func TestStore_Options(t *testing.T) {
	s, err := NewStore(DefaultPosts(),
		WithSeedComments(nil),
		WithGreetings([]string{"hi"}),
	)
	require.NoError(t, err)

	assert.Empty(t, s.Comments())
	require.Len(t, s.Messages(), 1)
	assert.Equal(t, "hi", s.Messages()[0].Text)
}

func TestSequenceGenerator(t *testing.T) {
	g := NewSequenceGenerator("m-", 7)
	assert.Equal(t, "m-7", g.NewID())
	assert.Equal(t, "m-8", g.NewID())
	assert.Equal(t, "m-9", g.NewID())
}
